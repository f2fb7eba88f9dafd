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

package maindata

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soundcore-go/mp3/internal/bitio"
	"github.com/soundcore-go/mp3/internal/consts"
	"github.com/soundcore-go/mp3/internal/sideinfo"
)

func TestDecodeHuffmanZeroLengthGranuleIsAllZeros(t *testing.T) {
	g := &sideinfo.ChannelGranule{Part2_3Length: 0}
	var is [consts.SamplesPerGr]float32
	r := bitio.New(make([]byte, 4))
	longBands, _ := consts.SfBandIndicesForRate(0)

	err := decodeHuffman(r, g, &is, 0, longBands)
	require.NoError(t, err)
	require.Equal(t, 0, g.Count1)
	for _, v := range is {
		require.Equal(t, float32(0), v)
	}
}

func TestDecodeHuffmanRejectsOutOfRangeRegion0Count(t *testing.T) {
	g := &sideinfo.ChannelGranule{
		Part2_3Length: 100,
		BigValues:     10,
		Region0Count:  30, // longBands has far fewer than 30 entries
	}
	var is [consts.SamplesPerGr]float32
	r := bitio.New(make([]byte, 32))
	longBands, _ := consts.SfBandIndicesForRate(0)

	err := decodeHuffman(r, g, &is, 0, longBands)
	require.Error(t, err)
}
