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

// Package imdct performs the hybrid synthesis stage of the decode
// pipeline: a 36-point inverse MDCT for long blocks, or three
// 12-point inverse MDCTs for short blocks, windowed and overlapped
// with the tail of the previous block (spec.md section 4.11).
//
// Win is carried over unchanged from the teacher's sibling fork's
// internal/imdct/imdct.go; the teacher itself only calls out to this
// package without shipping it in the retrieved pack. Overlap
// generalizes the [2][32][18]float32 store field embedded directly
// in the teacher's Frame struct into its own type, parametrized by
// channel count instead of hardcoded to stereo.
package imdct

import (
	"math"

	"github.com/soundcore-go/mp3/internal/consts"
)

var imdctWinData = [4][36]float32{}

func init() {
	for i := 0; i < 36; i++ {
		imdctWinData[0][i] = float32(math.Sin(math.Pi / 36 * (float64(i) + 0.5)))
	}
	for i := 0; i < 18; i++ {
		imdctWinData[1][i] = float32(math.Sin(math.Pi / 36 * (float64(i) + 0.5)))
	}
	for i := 18; i < 24; i++ {
		imdctWinData[1][i] = 1.0
	}
	for i := 24; i < 30; i++ {
		imdctWinData[1][i] = float32(math.Sin(math.Pi / 12 * (float64(i) + 0.5 - 18.0)))
	}
	for i := 30; i < 36; i++ {
		imdctWinData[1][i] = 0.0
	}
	for i := 0; i < 12; i++ {
		imdctWinData[2][i] = float32(math.Sin(math.Pi / 12 * (float64(i) + 0.5)))
	}
	for i := 12; i < 36; i++ {
		imdctWinData[2][i] = 0.0
	}
	for i := 0; i < 6; i++ {
		imdctWinData[3][i] = 0.0
	}
	for i := 6; i < 12; i++ {
		imdctWinData[3][i] = float32(math.Sin(math.Pi / 12 * (float64(i) + 0.5 - 6.0)))
	}
	for i := 12; i < 18; i++ {
		imdctWinData[3][i] = 1.0
	}
	for i := 18; i < 36; i++ {
		imdctWinData[3][i] = float32(math.Sin(math.Pi / 36 * (float64(i) + 0.5)))
	}
}

var cosN12 = [6][12]float32{}

func init() {
	const N = 12
	for i := 0; i < 6; i++ {
		for j := 0; j < 12; j++ {
			cosN12[i][j] = float32(math.Cos(math.Pi / (2 * N) * (2*float64(j) + 1 + N/2) * (2*float64(i) + 1)))
		}
	}
}

var cosN36 = [18][36]float32{}

func init() {
	const N = 36
	for i := 0; i < 18; i++ {
		for j := 0; j < 36; j++ {
			cosN36[i][j] = float32(math.Cos(math.Pi / (2 * N) * (2*float64(j) + 1 + N/2) * (2*float64(i) + 1)))
		}
	}
}

// Win computes the 36-sample windowed IMDCT output for one subband's
// 18 frequency lines. blockType follows the side-info encoding: 0
// (and the long-block half of a mixed block) uses the 36-point form;
// 2 uses three overlapping 12-point forms.
func Win(in []float32, blockType int) []float32 {
	out := make([]float32, 36)
	if blockType == 2 {
		iwd := imdctWinData[blockType]
		const N = 12
		for i := 0; i < 3; i++ {
			for p := 0; p < N; p++ {
				sum := float32(0.0)
				for m := 0; m < N/2; m++ {
					sum += in[i+3*m] * cosN12[m][p]
				}
				out[6*i+p+6] += sum * iwd[p]
			}
		}
		return out
	}
	const N = 36
	iwd := imdctWinData[blockType]
	for p := 0; p < N; p++ {
		sum := float32(0.0)
		for m := 0; m < N/2; m++ {
			sum += in[m] * cosN36[m][p]
		}
		out[p] = sum * iwd[p]
	}
	return out
}

// Overlap holds the trailing 18 samples of each of 32 subbands, per
// channel, carried forward from one granule to the next so hybrid
// synthesis can overlap-add consecutive IMDCT blocks.
type Overlap struct {
	store [][32][18]float32
}

// NewOverlap returns a zeroed Overlap sized for nch channels.
func NewOverlap(nch int) *Overlap {
	return &Overlap{store: make([][32][18]float32, nch)}
}

// HybridSynthesis runs Win over each of is's 32 subbands in place,
// overlap-adding with the stored tail from the previous granule and
// saving the new tail for next time. blockType is the granule's
// nominal block type; mixed blocks use long-block windows (type 0)
// for subbands 0 and 1 regardless.
func (o *Overlap) HybridSynthesis(ch int, is *[consts.SamplesPerGr]float32, blockType int, mixedBlock bool) {
	for sb := 0; sb < 32; sb++ {
		bt := blockType
		if mixedBlock && sb < 2 {
			bt = 0
		}
		in := make([]float32, 18)
		copy(in, is[sb*18:sb*18+18])
		rawout := Win(in, bt)
		for i := 0; i < 18; i++ {
			is[sb*18+i] = rawout[i] + o.store[ch][sb][i]
			o.store[ch][sb][i] = rawout[i+18]
		}
	}
}
