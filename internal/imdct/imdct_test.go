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

package imdct

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soundcore-go/mp3/internal/consts"
)

func TestWinLongBlockSilenceStaysSilent(t *testing.T) {
	in := make([]float32, 18)
	out := Win(in, 0)
	require.Len(t, out, 36)
	for _, v := range out {
		require.Equal(t, float32(0), v)
	}
}

func TestWinShortBlockSilenceStaysSilent(t *testing.T) {
	in := make([]float32, 18)
	out := Win(in, 2)
	for _, v := range out {
		require.Equal(t, float32(0), v)
	}
}

func TestWinProducesNonzeroOutputForNonzeroInput(t *testing.T) {
	in := make([]float32, 18)
	in[0] = 1
	out := Win(in, 0)
	nonzero := false
	for _, v := range out {
		if v != 0 {
			nonzero = true
			break
		}
	}
	require.True(t, nonzero)
}

func TestHybridSynthesisOverlapsAcrossGranules(t *testing.T) {
	o := NewOverlap(1)
	var is [consts.SamplesPerGr]float32
	for i := 0; i < 18; i++ {
		is[i] = 1
	}
	o.HybridSynthesis(0, &is, 0, false)

	var is2 [consts.SamplesPerGr]float32
	o.HybridSynthesis(0, &is2, 0, false)
	// The tail saved from the first call should feed into the second
	// call's output even though is2's fresh input is silent.
	require.NotEqual(t, is2, [consts.SamplesPerGr]float32{})
}
