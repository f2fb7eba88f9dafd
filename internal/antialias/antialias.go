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

// Package antialias butterflies samples across the 8 boundary lines
// of each pair of adjacent subbands to cancel polyphase-filterbank
// aliasing (spec.md section 4.10). Skipped entirely for pure short
// blocks, and limited to the two leading (long-block) subbands for
// mixed blocks.
//
// Grounded on Frame.antialias in the teacher's internal/frame/frame.go.
package antialias

import (
	"github.com/soundcore-go/mp3/internal/consts"
	"github.com/soundcore-go/mp3/internal/sideinfo"
)

// Process applies the antialias butterfly to is in place.
func Process(is *[consts.SamplesPerGr]float32, g *sideinfo.ChannelGranule) {
	if g.WinSwitchFlag == 1 && g.BlockType == 2 && g.MixedBlockFlag == 0 {
		return
	}
	sblim := 32
	if g.WinSwitchFlag == 1 && g.BlockType == 2 && g.MixedBlockFlag == 1 {
		sblim = 2
	}
	for sb := 1; sb < sblim; sb++ {
		for i := 0; i < 8; i++ {
			li := 18*sb - 1 - i
			ui := 18*sb + i
			lb := is[li]*consts.CS[i] - is[ui]*consts.CA[i]
			ub := is[ui]*consts.CS[i] + is[li]*consts.CA[i]
			is[li] = lb
			is[ui] = ub
		}
	}
}
