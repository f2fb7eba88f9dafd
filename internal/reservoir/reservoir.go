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

// Package reservoir maintains the rolling "bit reservoir" byte buffer
// that lets a granule's main data begin in a previous frame, per
// spec.md section 4.4.
//
// The logic here is the same byte-queue idea the teacher inlines in
// maindata.go's getMainData (and its internal/maindata sibling): a
// granule's main data can start mainDataBegin bytes before the end of
// whatever was appended so far. Giving it an explicit type makes the
// "frame is the transactional boundary" invariant in spec.md section 5
// visible at one call site instead of re-derived at every frame.
package reservoir

import "fmt"

// Reservoir holds up to a few hundred bytes of main-data carried over
// from prior frames (bounded in practice by the 9-bit main_data_begin
// field, so at most 511 bytes are ever referenced backward).
type Reservoir struct {
	buf []byte
}

// New returns an empty reservoir.
func New() *Reservoir {
	return &Reservoir{}
}

// Window appends fresh (this frame's freshly-read main-data bytes) to
// the reservoir, then returns the byte slice that should be exposed to
// the bit reader for every granule/channel of this frame: the
// mainDataBegin bytes that preceded the new data, plus the new data
// itself.
//
// If mainDataBegin bytes aren't available yet (the very first frames
// after construction, or a corrupt begin value), fresh is still
// appended so future frames can reference it, but an error is
// returned: the caller should still advance the bitstream past this
// frame's main data without attempting to decode it, matching
// spec.md's "skip decoding but keep consuming bytes" behavior from
// maindata.Read in the teacher.
func (r *Reservoir) Window(fresh []byte, mainDataBegin int) ([]byte, error) {
	if mainDataBegin > len(r.buf) {
		r.buf = append(r.buf, fresh...)
		return nil, fmt.Errorf("reservoir: main_data_begin=%d exceeds available %d bytes", mainDataBegin, len(r.buf)-len(fresh))
	}
	tail := r.buf[len(r.buf)-mainDataBegin:]
	window := append(append([]byte{}, tail...), fresh...)
	r.buf = append(r.buf, fresh...)
	// Trim the reservoir so it never grows without bound; nothing
	// before the start of the just-appended window can ever be
	// referenced again (main_data_begin only ever looks backward from
	// the current frame's end).
	if keep := mainDataBegin + len(fresh); keep < len(r.buf) {
		r.buf = r.buf[len(r.buf)-keep:]
	}
	return window, nil
}

// Len returns the number of bytes currently retained.
func (r *Reservoir) Len() int {
	return len(r.buf)
}
