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

// Package reorder restores frequency order within short-block
// scalefactor bands: requantized lines of each band arrive window by
// window (all of window 0, then window 1, then window 2), but
// short-block synthesis needs the three windows interleaved line by
// line, so line j of window w lands at 3*j+w within the band (spec.md
// section 4.8).
//
// Grounded on Frame.reorder in the teacher's internal/frame/frame.go.
package reorder

import (
	"github.com/soundcore-go/mp3/internal/consts"
	"github.com/soundcore-go/mp3/internal/sideinfo"
)

// Process reorders is in place for short and mixed blocks; long
// blocks are left untouched.
func Process(is *[consts.SamplesPerGr]float32, g *sideinfo.ChannelGranule, shortBands []int) {
	if g.WinSwitchFlag != 1 || g.BlockType != 2 {
		return
	}
	re := make([]float32, consts.SamplesPerGr)

	sfb := 0
	if g.MixedBlockFlag != 0 {
		sfb = 3
	}
	nextSfb := shortBands[sfb+1] * 3
	winLen := shortBands[sfb+1] - shortBands[sfb]
	i := 0
	if g.MixedBlockFlag != 0 {
		i = 36
	}
	for i < consts.SamplesPerGr {
		if i == nextSfb {
			j := 3 * shortBands[sfb]
			copy(is[j:j+3*winLen], re[0:3*winLen])
			if i >= g.Count1 {
				return
			}
			sfb++
			nextSfb = shortBands[sfb+1] * 3
			winLen = shortBands[sfb+1] - shortBands[sfb]
		}
		for win := 0; win < 3; win++ {
			for j := 0; j < winLen; j++ {
				re[j*3+win] = is[i]
				i++
			}
		}
	}
	j := 3 * shortBands[12]
	copy(is[j:j+3*winLen], re[0:3*winLen])
}
