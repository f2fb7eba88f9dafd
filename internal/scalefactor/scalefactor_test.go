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

package scalefactor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soundcore-go/mp3/internal/bitio"
	"github.com/soundcore-go/mp3/internal/sideinfo"
)

func TestReadLongBlockConsumesSlenPerBandGroup(t *testing.T) {
	si := &sideinfo.SideInfo{}
	si.Granule[0][0].ScalefacCompress = 0 // slen1=0, slen2=0: every value reads as 0 bits
	r := bitio.New([]byte{0xff, 0xff, 0xff, 0xff})
	f := Read(r, si, 0, 0, nil)
	for _, v := range f.Long {
		require.Equal(t, 0, v)
	}
}

func TestReadLongBlockScfsiCopiesFromGranuleZero(t *testing.T) {
	si := &sideinfo.SideInfo{}
	si.Granule[0][0].ScalefacCompress = 9 // slen1=2, slen2=2
	si.Granule[1][0].ScalefacCompress = 9
	si.Scfsi[0][0] = 1 // copy band group 0 (sfb 0..5)

	prev := &[23]int{}
	for sfb := 0; sfb < 6; sfb++ {
		prev[sfb] = sfb + 1
	}

	r := bitio.New(make([]byte, 32))
	f := Read(r, si, 1, 0, prev)
	for sfb := 0; sfb < 6; sfb++ {
		require.Equal(t, prev[sfb], f.Long[sfb])
	}
}

func TestReadShortBlockFillsAllThreeWindows(t *testing.T) {
	si := &sideinfo.SideInfo{}
	g := &si.Granule[0][0]
	g.WinSwitchFlag = 1
	g.BlockType = 2
	g.MixedBlockFlag = 0
	g.ScalefacCompress = 0

	r := bitio.New(make([]byte, 8))
	f := Read(r, si, 0, 0, nil)
	for sfb := 0; sfb < 12; sfb++ {
		for win := 0; win < 3; win++ {
			require.Equal(t, 0, f.Short[sfb][win])
		}
	}
}

func TestReadMixedBlockSplitsLongAndShort(t *testing.T) {
	si := &sideinfo.SideInfo{}
	g := &si.Granule[0][0]
	g.WinSwitchFlag = 1
	g.BlockType = 2
	g.MixedBlockFlag = 1
	g.ScalefacCompress = 0

	r := bitio.New(make([]byte, 8))
	f := Read(r, si, 0, 0, nil)
	require.NoError(t, r.Err())
	require.Equal(t, 0, f.Long[7])
	require.Equal(t, 0, f.Short[11][2])
}
