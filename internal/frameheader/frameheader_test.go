// Copyright 2017 Hajime Hoshi
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package frameheader

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soundcore-go/mp3/internal/consts"
)

// fakeReader serves a fixed byte slice as the frame-header read seam.
type fakeReader struct {
	buf []byte
}

func (f *fakeReader) ReadFull(p []byte) (int, error) {
	n := copy(p, f.buf)
	f.buf = f.buf[n:]
	if n < len(p) {
		return n, errShort
	}
	return n, nil
}

var errShort = &shortReadError{}

type shortReadError struct{}

func (e *shortReadError) Error() string { return "short read" }

// makeWord assembles a 4-byte MPEG header from its fields using the
// same bit positions FrameHeader's accessors read from, so a test
// failure here means the accessors themselves disagree with the
// layout, not a hand-copied magic number.
func makeWord(version consts.Version, layer consts.Layer, protection, bitrateIdx, samplingFreq, padding, mode, modeExt int) []byte {
	w := uint32(0xffe00000)
	w |= uint32(version) << 19
	w |= uint32(layer) << 17
	w |= uint32(protection) << 16
	w |= uint32(bitrateIdx) << 12
	w |= uint32(samplingFreq) << 10
	w |= uint32(padding) << 9
	w |= uint32(mode) << 6
	w |= uint32(modeExt) << 4
	return []byte{byte(w >> 24), byte(w >> 16), byte(w >> 8), byte(w)}
}

func TestReadValidMpeg1Layer3Header(t *testing.T) {
	buf := makeWord(consts.Version1, consts.Layer3, 1, 9, 0, 1, int(consts.ModeJointStereo), 2)
	r := &fakeReader{buf: buf}
	h, pos, err := Read(r, 0)
	require.NoError(t, err)
	require.Equal(t, int64(4), pos)
	require.True(t, h.IsValid())
	require.True(t, h.IsSupported())
	require.Equal(t, 44100, h.SamplingFrequencyValue())
	require.Equal(t, 2, h.NumberOfChannels())
	require.Equal(t, 2, h.Granules())
	require.Equal(t, 1, h.PaddingBit())
	require.True(t, h.UseMSStereo())
	require.False(t, h.UseIntensityStereo())
}

func TestReadRejectsLostSync(t *testing.T) {
	r := &fakeReader{buf: []byte{0x00, 0x00, 0x00, 0x00}}
	_, _, err := Read(r, 0)
	require.Error(t, err)
	_, ok := err.(*consts.CanNotFindFrameSyncError)
	require.True(t, ok)
}

func TestReadRejectsUnsupportedVersion(t *testing.T) {
	buf := makeWord(consts.Version2, consts.Layer3, 1, 9, 0, 0, int(consts.ModeStereo), 0)
	r := &fakeReader{buf: buf}
	_, _, err := Read(r, 0)
	require.Error(t, err)
	_, ok := err.(*consts.UnsupportedMpegVersionError)
	require.True(t, ok)
}

func TestReadRejectsShortInput(t *testing.T) {
	r := &fakeReader{buf: []byte{0xff, 0xfb}}
	_, _, err := Read(r, 0)
	require.Error(t, err)
}

func TestSideInfoSizeMonoVsStereo(t *testing.T) {
	stereo := makeWord(consts.Version1, consts.Layer3, 1, 9, 0, 0, int(consts.ModeStereo), 0)
	mono := makeWord(consts.Version1, consts.Layer3, 1, 9, 0, 0, int(consts.ModeSingleChannel), 0)

	hs, _, err := Read(&fakeReader{buf: stereo}, 0)
	require.NoError(t, err)
	require.Equal(t, 32, hs.SideInfoSize())

	hm, _, err := Read(&fakeReader{buf: mono}, 0)
	require.NoError(t, err)
	require.Equal(t, 17, hm.SideInfoSize())
	require.Equal(t, 1, hm.NumberOfChannels())
}

func TestFrameSizeMatchesBitrateFormula(t *testing.T) {
	buf := makeWord(consts.Version1, consts.Layer3, 1, 9, 0, 1, int(consts.ModeStereo), 0)
	h, _, err := Read(&fakeReader{buf: buf}, 0)
	require.NoError(t, err)
	want := 144*consts.BitrateKbps(9)*1000/44100 + 1
	require.Equal(t, want, h.FrameSize())
}

func TestUseIntensityStereoOnlyUnderJointStereo(t *testing.T) {
	buf := makeWord(consts.Version1, consts.Layer3, 1, 9, 0, 0, int(consts.ModeJointStereo), 1)
	h, _, err := Read(&fakeReader{buf: buf}, 0)
	require.NoError(t, err)
	require.True(t, h.UseIntensityStereo())
	require.False(t, h.UseMSStereo())

	plain := makeWord(consts.Version1, consts.Layer3, 1, 9, 0, 0, int(consts.ModeStereo), 1)
	hp, _, err := Read(&fakeReader{buf: plain}, 0)
	require.NoError(t, err)
	require.False(t, hp.UseIntensityStereo())
}
