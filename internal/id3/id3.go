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

// Package id3 skips a leading ID3v2 tag, if any, and exposes the
// metadata it carries. Audio decoding never depends on tag
// recognition, but a real file on disk almost always starts with one,
// and the frame-header reader does not scan for a sync word, so a tag
// left in place makes the very first header read fail. This is a
// feature the distilled spec doesn't mention but
// the original_source/src/id3 module implements, so it's carried
// forward here as a supplement rather than left out.
//
// Skip reads forward and pushes unconsumed bytes back with Unread
// rather than requiring io.Seeker, the same pattern the teacher's
// source.skipTags uses for its "TAG"/"ID3" sniff.
package id3

import (
	"bytes"

	id3v2 "github.com/bogem/id3v2/v2"
)

// PeekReader is the read seam Skip needs: sequential reads plus the
// ability to push bytes back onto the front of the stream.
type PeekReader interface {
	ReadFull([]byte) (int, error)
	Unread([]byte)
}

// Tags is the subset of ID3v2 metadata callers are likely to want.
type Tags struct {
	Title  string
	Artist string
	Album  string
	Year   string
}

// Skip reads a leading ID3v2 tag from r, if present, and returns the
// total byte length of the tag (0 if none was found, in which case
// the sniffed bytes are pushed back via Unread) along with its
// parsed metadata.
func Skip(r PeekReader) (tagLen int64, tags *Tags, err error) {
	header := make([]byte, 10)
	n, err := r.ReadFull(header)
	if n < 10 {
		if n > 0 {
			r.Unread(header[:n])
		}
		return 0, nil, err
	}
	if string(header[:3]) != "ID3" {
		r.Unread(header)
		return 0, nil, nil
	}

	size := syncsafe(header[6:10])
	body := make([]byte, size)
	if n, err := r.ReadFull(body); n < size {
		return 0, nil, err
	}

	full := make([]byte, 0, len(header)+len(body))
	full = append(full, header...)
	full = append(full, body...)
	tag, perr := id3v2.ParseReader(bytes.NewReader(full), id3v2.Options{Parse: true})
	if perr != nil {
		// Malformed tag body; the header's declared size is still
		// trustworthy for skipping, so don't fail the whole decode.
		return int64(10 + size), nil, nil
	}
	defer tag.Close()

	return int64(10 + size), &Tags{
		Title:  tag.Title(),
		Artist: tag.Artist(),
		Album:  tag.Album(),
		Year:   tag.Year(),
	}, nil
}

// syncsafe decodes a 4-byte syncsafe integer (7 significant bits per
// byte, MSB of each byte always 0), the encoding ID3v2 uses for its
// tag size field specifically so the value can never be mistaken for
// a frame sync word.
func syncsafe(b []byte) int {
	return int(b[0])<<21 | int(b[1])<<14 | int(b[2])<<7 | int(b[3])
}
