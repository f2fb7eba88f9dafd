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

import "io"

// source wraps the caller's io.ReadCloser with the push-back buffer
// every internal package's FullReader seam needs, and an optional
// Seek passthrough. Grounded on the teacher's source.go.
type source struct {
	reader io.ReadCloser
	buf    []byte
	pos    int64
}

// ReadFull fills buf completely from the pushed-back buffer first,
// then the underlying reader, returning io.EOF (never
// io.ErrUnexpectedEOF) on a short final read -- the same
// normalization the teacher's source.ReadFull applies so callers only
// ever have to check for one EOF sentinel.
func (s *source) ReadFull(buf []byte) (int, error) {
	read := 0
	if s.buf != nil {
		read = copy(buf, s.buf)
		s.pos += int64(read)
		if len(s.buf) > read {
			s.buf = s.buf[read:]
		} else {
			s.buf = nil
		}
		if len(buf) == read {
			return read, nil
		}
	}
	n, err := io.ReadFull(s.reader, buf[read:])
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	s.pos += int64(n)
	return n + read, err
}

// Unread pushes buf back onto the front of the stream, for the
// ID3v2 sniff-and-rewind in internal/id3.
func (s *source) Unread(buf []byte) {
	s.buf = append(append([]byte{}, buf...), s.buf...)
	s.pos -= int64(len(buf))
}

// Seek delegates to the wrapped reader if it implements io.Seeker,
// and panics otherwise -- matching the teacher's contract that Seek
// is only ever called after NewDecoder has confirmed seekability.
func (s *source) Seek(position int64, whence int) (int64, error) {
	seeker, ok := s.reader.(io.Seeker)
	if !ok {
		panic("mp3: source must be io.Seeker")
	}
	s.buf = nil
	n, err := seeker.Seek(position, whence)
	if err != nil {
		return 0, err
	}
	s.pos = n
	return n, nil
}

func (s *source) Close() error {
	s.buf = nil
	return s.reader.Close()
}

func (s *source) rewind() error {
	if _, err := s.Seek(0, io.SeekStart); err != nil {
		return err
	}
	s.pos = 0
	s.buf = nil
	return nil
}
