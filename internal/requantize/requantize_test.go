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

package requantize

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soundcore-go/mp3/internal/consts"
	"github.com/soundcore-go/mp3/internal/scalefactor"
	"github.com/soundcore-go/mp3/internal/sideinfo"
)

func TestProcessLongBlockZeroStaysZero(t *testing.T) {
	longBands, _ := consts.SfBandIndicesForRate(0)
	g := &sideinfo.ChannelGranule{GlobalGain: 128, Count1: 576}
	sf := &scalefactor.Factors{}

	var is [consts.SamplesPerGr]float32
	Process(&is, g, sf, longBands, nil)
	require.Equal(t, float32(0), is[0])
}

func TestProcessLongBlockPreservesSign(t *testing.T) {
	longBands, _ := consts.SfBandIndicesForRate(0)
	g := &sideinfo.ChannelGranule{GlobalGain: 210, Count1: 576}
	sf := &scalefactor.Factors{}

	var is [consts.SamplesPerGr]float32
	is[0] = -5
	is[1] = 5
	Process(&is, g, sf, longBands, nil)
	require.Less(t, is[0], float32(0))
	require.Greater(t, is[1], float32(0))
	require.InDelta(t, -is[0], is[1], 1e-6)
}

func TestProcessShortBlockAppliesSubblockGain(t *testing.T) {
	_, shortBands := consts.SfBandIndicesForRate(0)
	winLen := shortBands[1] - shortBands[0]
	sf := &scalefactor.Factors{}

	mk := func(gain int) float32 {
		g := &sideinfo.ChannelGranule{
			WinSwitchFlag: 1,
			BlockType:     2,
			GlobalGain:    210,
			Count1:        576,
		}
		g.SubblockGain[1] = gain
		var is [consts.SamplesPerGr]float32
		is[winLen] = 4 // first sample of window 1
		Process(&is, g, sf, nil, shortBands)
		return is[winLen]
	}

	low := mk(0)
	high := mk(4)
	require.Greater(t, low, high)
}
