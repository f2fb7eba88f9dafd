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

package stereo

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soundcore-go/mp3/internal/consts"
)

func TestApplyMSIsItsOwnInverse(t *testing.T) {
	var left, right [consts.SamplesPerGr]float32
	left[0] = 10
	right[0] = 2

	ApplyMS(&left, &right, 1)
	ApplyMS(&left, &right, 1)
	require.InDelta(t, 10, left[0], 1e-4)
	require.InDelta(t, 2, right[0], 1e-4)
}

func TestApplyMSOnlyTouchesUpToMaxPos(t *testing.T) {
	var left, right [consts.SamplesPerGr]float32
	left[5] = 1
	right[5] = 1
	ApplyMS(&left, &right, 3)
	require.Equal(t, float32(1), left[5])
	require.Equal(t, float32(1), right[5])
}

func TestApplyMSEqualChannelsProducesZeroSide(t *testing.T) {
	var left, right [consts.SamplesPerGr]float32
	left[0] = 3
	right[0] = 3
	ApplyMS(&left, &right, 1)
	require.InDelta(t, float32(0), right[0], 1e-5)
}
