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

package mp3

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewDecoderRejectsStreamWithNoFrameSync(t *testing.T) {
	b := &bytesReadCloser{bytes.NewReader([]byte("not an mp3 file at all"))}
	_, err := NewDecoder(b)
	require.Error(t, err)
}

func TestNewDecoderSkipsLeadingID3Tag(t *testing.T) {
	tag := []byte("ID3\x04\x00\x00\x00\x00\x00\x0b")
	frame := []byte("TIT2\x00\x00\x00\x01\x00\x00X")
	payload := append(append([]byte{}, tag...), frame...)
	payload = append(payload, "garbage, no sync word here"...)

	b := &bytesReadCloser{bytes.NewReader(payload)}
	_, err := NewDecoder(b)
	// The tag itself must be consumed without error; decoding still
	// fails afterward because there's no real audio frame, but the
	// failure must come from the frame-sync check, not tag parsing.
	require.Error(t, err)
}

func TestNewDecoderOnEmptyStreamReturnsEOF(t *testing.T) {
	b := &bytesReadCloser{bytes.NewReader(nil)}
	_, err := NewDecoder(b)
	require.ErrorIs(t, err, io.EOF)
}
