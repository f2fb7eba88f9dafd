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

// Package mp3 decodes MPEG-1 Layer III audio streams to float32 PCM.
//
// Grounded throughout on github.com/hajimehoshi/go-mp3's decode.go:
// the same frame-at-a-time Decoder, the same length-scanning pass in
// NewDecoder when the source is seekable, the same Seek bookkeeping
// against a table of per-frame byte offsets. The primary output
// shifted from packed int16 bytes to float32 samples in [-1, 1]
// (still reachable as bytes through Read, an io.Reader adapter), and
// a per-Decoder Observer replaces the teacher's "// TODO: Log here?"
// comments with an actual extension point.
package mp3

import (
	"fmt"
	"io"
	"time"

	"github.com/soundcore-go/mp3/internal/consts"
	"github.com/soundcore-go/mp3/internal/frame"
	"github.com/soundcore-go/mp3/internal/id3"
	"github.com/soundcore-go/mp3/internal/reservoir"
)

// Observer receives frame-level decode notifications. See
// frame.Observer; exported here so callers never need to import an
// internal package.
type Observer = frame.Observer

// Option configures a Decoder at construction time.
type Option func(*Decoder)

// WithObserver attaches an Observer that is notified as frames
// decode.
func WithObserver(o Observer) Option {
	return func(d *Decoder) {
		d.observer = o
	}
}

// Decoder decodes an MPEG-1 Layer III stream on the fly.
type Decoder struct {
	source      *source
	res         *reservoir.Reservoir
	observer    Observer
	sampleRate  int
	length      int64
	frameStarts []int64
	nch         int

	pcmBuf []float32
	pcmPos int64 // position in Read's byte stream

	frame *frame.Frame

	// Tags holds any ID3v2 metadata found before the first frame, or
	// nil if none was present.
	Tags *id3.Tags
}

func (d *Decoder) readFrame() error {
	var err error
	d.frame, _, err = frame.Read(d.source, d.res, 0, d.frame, d.observer)
	if err != nil {
		if _, ok := err.(*consts.UnexpectedEOF); ok {
			return io.EOF
		}
		if _, ok := err.(*consts.CanNotFindFrameSyncError); ok {
			return io.EOF
		}
		return err
	}
	pcm, err := d.frame.Decode()
	if err != nil {
		return err
	}
	d.pcmBuf = append(d.pcmBuf, pcm...)
	return nil
}

// DecodeFrame decodes and returns the next frame's interleaved
// float32 PCM samples in [-1, 1] (consts.SamplesPerFrame frames, 2
// channels always; mono input is duplicated into both). It returns
// io.EOF once the stream is exhausted.
func (d *Decoder) DecodeFrame() ([]float32, error) {
	if err := d.readFrame(); err != nil {
		return nil, err
	}
	out := d.pcmBuf
	d.pcmBuf = nil
	return out, nil
}

// Read is io.Reader's Read, emitting 16-bit little-endian PCM (the
// conventional byte shape for piping into an audio backend such as
// oto), 2 channels always, converted from DecodeFrame's float32
// output.
func (d *Decoder) Read(buf []byte) (int, error) {
	for len(d.pcmBuf) == 0 {
		if err := d.readFrame(); err != nil {
			return 0, err
		}
	}
	n := 0
	for n+4 <= len(buf) && len(d.pcmBuf) >= 2 {
		putInt16LE(buf[n:], d.pcmBuf[0])
		putInt16LE(buf[n+2:], d.pcmBuf[1])
		d.pcmBuf = d.pcmBuf[2:]
		n += 4
	}
	d.pcmPos += int64(n)
	return n, nil
}

func putInt16LE(buf []byte, sample float32) {
	s := int32(sample * 32767)
	if s > 32767 {
		s = 32767
	} else if s < -32767 {
		s = -32767
	}
	buf[0] = byte(s)
	buf[1] = byte(s >> 8)
}

// Seek is io.Seeker's Seek. It panics when the underlying source is
// not io.Seeker.
func (d *Decoder) Seek(offset int64, whence int) (int64, error) {
	npos := int64(0)
	switch whence {
	case io.SeekStart:
		npos = offset
	case io.SeekCurrent:
		npos = d.pcmPos + offset
	case io.SeekEnd:
		npos = d.length + offset
	default:
		panic(fmt.Sprintf("mp3: invalid whence: %v", whence))
	}
	d.pcmPos = npos
	d.pcmBuf = nil
	d.frame = nil
	d.res = reservoir.New()
	f := npos / consts.BytesPerFrame
	if f > 0 {
		f--
		if _, err := d.source.Seek(d.frameStarts[f], io.SeekStart); err != nil {
			return 0, err
		}
		// The previous frame only warms the reservoir and overlap; its
		// own main data may reach back past the reset reservoir, in
		// which case it yields no PCM.
		warm := d.readFrame() == nil
		if err := d.readFrame(); err != nil {
			return 0, err
		}
		skip := npos % consts.BytesPerFrame
		if warm {
			skip += consts.BytesPerFrame
		}
		d.pcmBuf = d.pcmBuf[skip/4*2:]
	} else {
		if _, err := d.source.Seek(d.frameStarts[f], io.SeekStart); err != nil {
			return 0, err
		}
		if err := d.readFrame(); err != nil {
			return 0, err
		}
		d.pcmBuf = d.pcmBuf[npos/4*2:]
	}
	return npos, nil
}

// Close is io.Closer's Close.
func (d *Decoder) Close() error {
	return d.source.Close()
}

// SampleRate returns the stream's sample rate, e.g. 44100.
func (d *Decoder) SampleRate() int {
	return d.sampleRate
}

// Length returns the total PCM byte stream length as Read would
// produce it, or -1 if the source isn't seekable.
func (d *Decoder) Length() int64 {
	return d.length
}

// Duration returns the stream's playback duration, or 0 if Length is
// unavailable.
func (d *Decoder) Duration() time.Duration {
	if d.length < 0 {
		return 0
	}
	frames := d.length / 4
	return time.Duration(frames) * time.Second / time.Duration(d.sampleRate)
}

// ElapsedTime returns how far Read has progressed into the decoded
// stream.
func (d *Decoder) ElapsedTime() time.Duration {
	frames := d.pcmPos / 4
	return time.Duration(frames) * time.Second / time.Duration(d.sampleRate)
}

// NewDecoder decodes r as an MPEG-1 Layer III stream.
//
// If r is also an io.Seeker, NewDecoder makes a pre-pass to record
// every frame's start offset so Length and Seek work; otherwise
// Length returns -1 and Seek panics.
func NewDecoder(r io.ReadCloser, opts ...Option) (*Decoder, error) {
	s := &source{reader: r}
	d := &Decoder{
		source: s,
		res:    reservoir.New(),
		length: -1,
	}
	for _, opt := range opts {
		opt(d)
	}

	_, tags, err := id3.Skip(s)
	if err != nil {
		return nil, err
	}
	d.Tags = tags

	if _, ok := r.(io.Seeker); ok {
		l := int64(0)
		var f *frame.Frame
		res := reservoir.New()
		for {
			startPos := s.pos
			var err error
			f, _, err = frame.Read(s, res, 0, f, nil)
			if err != nil {
				if _, ok := err.(*consts.UnexpectedEOF); ok {
					break
				}
				if _, ok := err.(*consts.CanNotFindFrameSyncError); ok {
					break
				}
				return nil, err
			}
			d.frameStarts = append(d.frameStarts, startPos)
			d.nch = f.NumberOfChannels()
			l += consts.BytesPerFrame
		}
		if err := s.rewind(); err != nil {
			return nil, err
		}
		if _, _, err := id3.Skip(s); err != nil {
			return nil, err
		}
		d.length = l
	}

	if err := d.readFrame(); err != nil {
		return nil, err
	}
	d.sampleRate = d.frame.SamplingFrequency()
	d.nch = d.frame.NumberOfChannels()
	return d, nil
}
