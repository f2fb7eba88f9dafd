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

// Package stereo undoes mid/side joint-stereo decorrelation (spec.md
// section 4.9). Intensity stereo is recognized via
// frameheader.UseIntensityStereo but deliberately not decoded: doing
// so correctly needs the scalefactor band position information this
// core already discards once requantize/reorder have run, and mid/
// side is overwhelmingly the more common encoder choice in practice.
//
// Grounded on Frame.stereo in the teacher's internal/frame/frame.go,
// keeping only the M/S branch.
package stereo

import (
	"math"

	"github.com/soundcore-go/mp3/internal/consts"
)

const invSqrt2 = math.Sqrt2 / 2

// ApplyMS undoes mid/side decorrelation on channels 0 and 1 in
// place, up to maxPos frequency lines (the larger of the two
// channels' count1 region, per the teacher's logic: the shorter
// channel's trailing zeros don't affect the sum/difference).
func ApplyMS(left, right *[consts.SamplesPerGr]float32, maxPos int) {
	for i := 0; i < maxPos; i++ {
		l := (left[i] + right[i]) * invSqrt2
		r := (left[i] - right[i]) * invSqrt2
		left[i] = l
		right[i] = r
	}
}
