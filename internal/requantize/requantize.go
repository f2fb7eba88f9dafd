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

// Package requantize turns the Huffman-decoded integer frequency
// lines of a granule/channel into real-valued spectral samples
// (spec.md section 4.7): is_pos = sign(v) * |v|^(4/3) * 2^((gain -
// 210)/4 - scale*sf), long or short depending on block type.
//
// Grounded on Frame.requantizeProcessLong/Short and Frame.requantize
// in the teacher's internal/frame/frame.go, generalized to take the
// scalefactor and sfb-index inputs as parameters instead of reaching
// into a monolithic Frame.
package requantize

import (
	"math"

	"github.com/soundcore-go/mp3/internal/consts"
	"github.com/soundcore-go/mp3/internal/scalefactor"
	"github.com/soundcore-go/mp3/internal/sideinfo"
)

// powtab34 caches x^(4/3) for the integer magnitudes a Huffman
// decode can produce, avoiding a math.Pow call per sample.
var powtab34 [8207]float64

func init() {
	for i := range powtab34 {
		powtab34[i] = math.Pow(float64(i), 4.0/3.0)
	}
}

func pow34(v float32) float64 {
	if v < 0 {
		return -powtab34[int(-v)]
	}
	return powtab34[int(v)]
}

// Process requantizes is in place. is holds count1 valid integer
// magnitudes (as float32) followed by zeros. g is the granule's side
// info, sf its decoded scalefactors, and longBands/shortBands the
// sample-rate scalefactor band tables.
func Process(is *[consts.SamplesPerGr]float32, g *sideinfo.ChannelGranule, sf *scalefactor.Factors, longBands, shortBands []int) {
	if g.WinSwitchFlag == 1 && g.BlockType == 2 {
		if g.MixedBlockFlag != 0 {
			processLong(is, g, longBands, 0, 36, sf)
			processShort(is, g, shortBands, 3, 36, g.Count1, sf)
		} else {
			processShort(is, g, shortBands, 0, 0, g.Count1, sf)
		}
		return
	}
	processLong(is, g, longBands, 0, g.Count1, sf)
}

func processLong(is *[consts.SamplesPerGr]float32, g *sideinfo.ChannelGranule, longBands []int, start, stop int, sf *scalefactor.Factors) {
	sfMult := 0.5
	if g.ScalefacScale != 0 {
		sfMult = 1.0
	}
	sfb := 0
	for longBands[sfb+1] <= start {
		sfb++
	}
	nextSfb := longBands[sfb+1]
	for i := start; i < stop; i++ {
		if i == nextSfb {
			sfb++
			nextSfb = longBands[sfb+1]
		}
		pfxpt := float64(g.Preflag) * consts.Pretab[sfb]
		idx := -(sfMult*(float64(sf.Long[sfb])+pfxpt)) + 0.25*(float64(g.GlobalGain)-210)
		is[i] = float32(math.Pow(2.0, idx) * pow34(is[i]))
	}
}

func processShort(is *[consts.SamplesPerGr]float32, g *sideinfo.ChannelGranule, shortBands []int, sfb, start, stop int, sf *scalefactor.Factors) {
	sfMult := 0.5
	if g.ScalefacScale != 0 {
		sfMult = 1.0
	}
	nextSfb := shortBands[sfb+1] * 3
	winLen := shortBands[sfb+1] - shortBands[sfb]
	i := start
	for i < stop {
		if i == nextSfb {
			sfb++
			nextSfb = shortBands[sfb+1] * 3
			winLen = shortBands[sfb+1] - shortBands[sfb]
		}
		for win := 0; win < 3; win++ {
			idx := -(sfMult*float64(sf.Short[sfb][win])) + 0.25*(float64(g.GlobalGain)-210.0-8.0*float64(g.SubblockGain[win]))
			gain := math.Pow(2.0, idx)
			for j := 0; j < winLen; j++ {
				is[i] = float32(gain * pow34(is[i]))
				i++
			}
		}
	}
}
