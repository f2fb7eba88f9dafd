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

// Package scalefactor decodes part2 of a granule's main data: the
// scalefactor values applied before requantization, including the
// SCFSI copy-from-granule-0 behavior on long blocks (spec.md section
// 4.5).
//
// Grounded on the teacher's readMainL3 in the root maindata.go, which
// inlines this same long/short/mixed split and the scfsi band-group
// copy. Splitting it out lets the granule/channel loop in
// internal/frame stay about the pipeline, not the bitstream layout.
package scalefactor

import (
	"github.com/soundcore-go/mp3/internal/bitio"
	"github.com/soundcore-go/mp3/internal/consts"
	"github.com/soundcore-go/mp3/internal/sideinfo"
)

// Factors holds one granule/channel's decoded scalefactors: long-block
// values by band, short-block values by band and window.
type Factors struct {
	Long  [23]int
	Short [13][3]int
}

// scfsiBandGroups maps the four SCFSI flag bits to their long-block
// scalefactor band ranges (ISO 11172-3 section 2.4.3.4.5).
var scfsiBandGroups = [4][2]int{{0, 6}, {6, 11}, {11, 16}, {16, 21}}

// Read decodes granule gr's scalefactors for channel ch out of r,
// consulting prevLong (granule 0's long-block factors for the same
// channel, ignored when gr == 0) for SCFSI-copied bands.
func Read(r *bitio.Reader, si *sideinfo.SideInfo, gr, ch int, prevLong *[23]int) *Factors {
	g := &si.Granule[gr][ch]
	slen1, slen2 := consts.SLEN[g.ScalefacCompress][0], consts.SLEN[g.ScalefacCompress][1]
	f := &Factors{}

	if g.WinSwitchFlag == 1 && g.BlockType == 2 {
		if g.MixedBlockFlag != 0 {
			for sfb := 0; sfb < 8; sfb++ {
				f.Long[sfb] = r.Read(slen1)
			}
			for sfb := 3; sfb < 12; sfb++ {
				nbits := slen2
				if sfb < 6 {
					nbits = slen1
				}
				for win := 0; win < 3; win++ {
					f.Short[sfb][win] = r.Read(nbits)
				}
			}
		} else {
			for sfb := 0; sfb < 12; sfb++ {
				nbits := slen2
				if sfb < 6 {
					nbits = slen1
				}
				for win := 0; win < 3; win++ {
					f.Short[sfb][win] = r.Read(nbits)
				}
			}
		}
		return f
	}

	for band, rng := range scfsiBandGroups {
		nbits := slen1
		if band >= 2 {
			nbits = slen2
		}
		copyFromGr0 := gr == 1 && si.Scfsi[ch][band] == 1
		if copyFromGr0 && prevLong != nil {
			for sfb := rng[0]; sfb < rng[1]; sfb++ {
				f.Long[sfb] = prevLong[sfb]
			}
			continue
		}
		for sfb := rng[0]; sfb < rng[1]; sfb++ {
			f.Long[sfb] = r.Read(nbits)
		}
	}
	return f
}
