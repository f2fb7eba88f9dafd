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

// Package freqinv negates odd-indexed samples of odd subbands ahead
// of polyphase synthesis, correcting the frequency inversion that
// the synthesis filterbank would otherwise introduce in every other
// subband (spec.md section 4.12).
//
// Grounded on Frame.frequencyInversion in the teacher's
// internal/frame/frame.go.
package freqinv

import "github.com/soundcore-go/mp3/internal/consts"

// Process negates is in place.
func Process(is *[consts.SamplesPerGr]float32) {
	for sb := 1; sb < 32; sb += 2 {
		for i := 1; i < 18; i += 2 {
			is[sb*18+i] = -is[sb*18+i]
		}
	}
}
