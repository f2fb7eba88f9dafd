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

// Package frameheader decodes the 4-byte MPEG audio frame header.
package frameheader

import (
	"github.com/soundcore-go/mp3/internal/consts"
)

// FrameHeader is the 32-bit sync+header word of an MPEG audio frame.
// The high 11 bits are the all-ones sync pattern (mask 0xFFE00000,
// checked by IsValid); the low 21 bits carry the header fields,
// starting with the 2-bit version ID in bits 20 and 19.
type FrameHeader uint32

// FullReader is the minimal read seam FrameHeader needs from its
// source, matching the sideinfo/maindata/frame packages' own
// FullReader interfaces so all of them can share one concrete source
// type without an import cycle.
type FullReader interface {
	ReadFull([]byte) (int, error)
}

// ID returns the MPEG version field stored in bits 20,19.
func (h FrameHeader) ID() consts.Version {
	return consts.Version((h & 0x00180000) >> 19)
}

// Layer returns the MPEG layer field stored in bits 18,17.
func (h FrameHeader) Layer() consts.Layer {
	return consts.Layer((h & 0x00060000) >> 17)
}

// ProtectionBit returns the protection bit (0 = CRC follows).
func (h FrameHeader) ProtectionBit() int {
	return int(h&0x00010000) >> 16
}

// BitrateIndex returns the 4-bit bitrate index.
func (h FrameHeader) BitrateIndex() int {
	return int(h&0x0000f000) >> 12
}

// SamplingFrequency returns the 2-bit sampling_frequency field.
func (h FrameHeader) SamplingFrequency() consts.SamplingFrequency {
	return consts.SamplingFrequency(int(h&0x00000c00) >> 10)
}

// PaddingBit returns the padding bit.
func (h FrameHeader) PaddingBit() int {
	return int(h&0x00000200) >> 9
}

// PrivateBit returns the private bit (unused by decode).
func (h FrameHeader) PrivateBit() int {
	return int(h&0x00000100) >> 8
}

// Mode returns the channel mode field.
func (h FrameHeader) Mode() consts.Mode {
	return consts.Mode((h & 0x000000c0) >> 6)
}

// ModeExtension returns the 2-bit mode_extension field, meaningful
// only when Mode() == ModeJointStereo.
func (h FrameHeader) ModeExtension() int {
	return int(h&0x00000030) >> 4
}

// Copyright returns the copyright bit (ISO layout: bit 3 of byte 3).
func (h FrameHeader) Copyright() int {
	return int(h&0x00000008) >> 3
}

// OriginalOrCopy returns the original/copy bit (ISO layout: bit 2 of
// byte 3).
func (h FrameHeader) OriginalOrCopy() int {
	return int(h&0x00000004) >> 2
}

// Emphasis returns the 2-bit emphasis field.
func (h FrameHeader) Emphasis() int {
	return int(h&0x00000003) >> 0
}

// IsValid reports whether h begins with a valid sync word and carries
// no reserved field values.
func (h FrameHeader) IsValid() bool {
	const sync = 0xffe00000
	if h&sync != sync {
		return false
	}
	if h.ID() == consts.VersionReserved {
		return false
	}
	if h.BitrateIndex() == 15 {
		return false
	}
	if h.SamplingFrequency() == 3 {
		return false
	}
	if h.Layer() == consts.LayerReserved {
		return false
	}
	if h.Emphasis() == 2 {
		return false
	}
	return true
}

// IsSupported reports whether h is MPEG-1 Layer III, the only
// decodable combination in this core.
func (h FrameHeader) IsSupported() bool {
	return h.ID() == consts.Version1 && h.Layer() == consts.Layer3
}

// NumberOfChannels returns 1 for single-channel mode, 2 otherwise.
func (h FrameHeader) NumberOfChannels() int {
	if h.Mode() == consts.ModeSingleChannel {
		return 1
	}
	return 2
}

// Granules returns the number of granules per frame. MPEG-1 always
// has 2; MPEG-2/2.5 (acknowledged but not decoded by this core) would
// have 1.
func (h FrameHeader) Granules() int {
	if h.ID() == consts.Version1 {
		return 2
	}
	return 1
}

// SamplingFrequencyValue returns the sample rate in Hz.
func (h FrameHeader) SamplingFrequencyValue() int {
	return h.SamplingFrequency().Int()
}

// FrameSize returns the total frame length in bytes, including the
// 4-byte header.
func (h FrameHeader) FrameSize() int {
	br := consts.BitrateKbps(h.BitrateIndex())
	return 144*br*1000/h.SamplingFrequencyValue() + h.PaddingBit()
}

// SideInfoSize returns the side-information block length in bytes:
// 17 for mono, 32 for any two-channel mode.
func (h FrameHeader) SideInfoSize() int {
	if h.NumberOfChannels() == 1 {
		return 17
	}
	return 32
}

// UseMSStereo reports whether mid/side joint stereo decorrelation
// should be applied to this frame.
func (h FrameHeader) UseMSStereo() bool {
	return h.Mode() == consts.ModeJointStereo && h.ModeExtension()&0x2 != 0
}

// UseIntensityStereo reports whether the header requests intensity
// stereo. The core recognizes this (see spec section 4.8) but does
// not apply it; see internal/stereo.
func (h FrameHeader) UseIntensityStereo() bool {
	return h.Mode() == consts.ModeJointStereo && h.ModeExtension()&0x1 != 0
}

// Read decodes the 4-byte header at the reader's current position. It
// does not resync: a missing sync word is reported, not scanned past,
// matching spec.md's "lost sync fails the frame" semantics.
func Read(source FullReader, position int64) (FrameHeader, int64, error) {
	buf := make([]byte, 4)
	n, err := source.ReadFull(buf)
	if n < 4 {
		if err != nil {
			return 0, 0, err
		}
		return 0, 0, &consts.UnexpectedEOF{At: "frameheader.Read"}
	}
	word := uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3])
	h := FrameHeader(word)
	if !h.IsValid() {
		return 0, 0, &consts.CanNotFindFrameSyncError{}
	}
	if !h.IsSupported() {
		return 0, 0, &consts.UnsupportedMpegVersionError{Version: h.ID(), Layer: h.Layer()}
	}
	return h, position + 4, nil
}
