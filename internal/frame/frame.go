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

// Package frame reads and decodes one complete MPEG-1 Layer III
// frame: header, side info, main data, and the full per-granule
// transform pipeline down to float32 PCM (spec.md section 5).
//
// Grounded on Frame.Decode in the teacher's internal/frame/frame.go,
// which is the same granule/channel loop calling requantize, reorder,
// stereo, antialias, hybrid synthesis, frequency inversion and
// subband synthesis in that order; each stage now lives in its own
// package instead of being a method on one large Frame type.
package frame

import (
	"github.com/soundcore-go/mp3/internal/antialias"
	"github.com/soundcore-go/mp3/internal/consts"
	"github.com/soundcore-go/mp3/internal/freqinv"
	"github.com/soundcore-go/mp3/internal/frameheader"
	"github.com/soundcore-go/mp3/internal/imdct"
	"github.com/soundcore-go/mp3/internal/maindata"
	"github.com/soundcore-go/mp3/internal/reorder"
	"github.com/soundcore-go/mp3/internal/requantize"
	"github.com/soundcore-go/mp3/internal/reservoir"
	"github.com/soundcore-go/mp3/internal/sideinfo"
	"github.com/soundcore-go/mp3/internal/stereo"
	"github.com/soundcore-go/mp3/internal/synthesis"
)

// FullReader is the read seam Read needs from its source.
type FullReader interface {
	ReadFull([]byte) (int, error)
}

// Observer is notified of frame-level decode events. Implementations
// are optional; a nil Observer disables all notifications. This
// replaces the teacher's global mutable debug flags with a value a
// caller can scope to one Decoder.
type Observer interface {
	FrameDecoded(header frameheader.FrameHeader, si *sideinfo.SideInfo)
	IntensityStereoSkipped(header frameheader.FrameHeader)
}

// Frame is one decoded MPEG-1 Layer III frame, carrying the IMDCT
// overlap and synthesis FIFOs that must persist across frames.
type Frame struct {
	header   frameheader.FrameHeader
	sideInfo *sideinfo.SideInfo
	mainData *maindata.MainData

	overlap  *imdct.Overlap
	synth    [2]*synthesis.State
	observer Observer
}

// Read decodes the next frame's header, side info and main data from
// source at position, continuing prev's bit reservoir and
// overlap/synthesis state if prev is non-nil.
func Read(source FullReader, res *reservoir.Reservoir, position int64, prev *Frame, observer Observer) (f *Frame, nextPosition int64, err error) {
	h, pos, err := frameheader.Read(source, position)
	if err != nil {
		return nil, 0, err
	}
	if h.ProtectionBit() == 0 {
		crc := make([]byte, 2)
		if n, _ := source.ReadFull(crc); n < 2 {
			return nil, 0, &consts.UnexpectedEOF{At: "frame.Read (crc)"}
		}
	}

	si, err := sideinfo.Read(source, h)
	if err != nil {
		return nil, 0, err
	}

	md, err := maindata.Read(source, res, h, si)
	if err != nil {
		return nil, 0, err
	}

	nf := &Frame{
		header:   h,
		sideInfo: si,
		mainData: md,
		observer: observer,
	}
	nch := h.NumberOfChannels()
	if prev != nil {
		nf.overlap = prev.overlap
		nf.synth = prev.synth
	} else {
		nf.overlap = imdct.NewOverlap(2)
		for ch := 0; ch < nch; ch++ {
			nf.synth[ch] = synthesis.NewState()
		}
	}
	for ch := 0; ch < nch; ch++ {
		if nf.synth[ch] == nil {
			nf.synth[ch] = synthesis.NewState()
		}
	}
	if observer != nil {
		observer.FrameDecoded(h, si)
		if h.UseIntensityStereo() {
			observer.IntensityStereoSkipped(h)
		}
	}
	return nf, pos, nil
}

// SamplingFrequency returns the frame's sample rate in Hz.
func (f *Frame) SamplingFrequency() int {
	return f.header.SamplingFrequencyValue()
}

// NumberOfChannels returns 1 or 2.
func (f *Frame) NumberOfChannels() int {
	return f.header.NumberOfChannels()
}

// Decode runs the full transform pipeline and returns interleaved
// float32 PCM samples in [-1, 1], SamplesPerFrame frames per channel
// (duplicated across both channels for mono input, matching the
// teacher's always-stereo-output convention).
func (f *Frame) Decode() ([]float32, error) {
	nch := f.header.NumberOfChannels()
	longBands, shortBands := consts.SfBandIndicesForRate(f.header.SamplingFrequency())

	out := make([][]float32, 2)
	for gr := 0; gr < f.header.Granules(); gr++ {
		for ch := 0; ch < nch; ch++ {
			g := &f.sideInfo.Granule[gr][ch]
			sf := f.mainData.Sf[gr][ch]
			is := &f.mainData.Is[gr][ch]
			requantize.Process(is, g, sf, longBands, shortBands)
			reorder.Process(is, g, shortBands)
		}

		if f.header.UseMSStereo() && nch == 2 {
			maxPos := f.sideInfo.Granule[gr][1].Count1
			if f.sideInfo.Granule[gr][0].Count1 > maxPos {
				maxPos = f.sideInfo.Granule[gr][0].Count1
			}
			stereo.ApplyMS(&f.mainData.Is[gr][0], &f.mainData.Is[gr][1], maxPos)
		}

		for ch := 0; ch < nch; ch++ {
			g := &f.sideInfo.Granule[gr][ch]
			is := &f.mainData.Is[gr][ch]
			antialias.Process(is, g)
			f.overlap.HybridSynthesis(ch, is, g.BlockType, g.WinSwitchFlag == 1 && g.MixedBlockFlag == 1)
			freqinv.Process(is)
			out[ch] = f.synth[ch].Process(is, out[ch])
		}
	}

	pcm := make([]float32, 0, consts.SamplesPerFrame*2)
	for i := 0; i < consts.SamplesPerFrame; i++ {
		if nch == 1 {
			pcm = append(pcm, out[0][i], out[0][i])
			continue
		}
		pcm = append(pcm, out[0][i], out[1][i])
	}
	return pcm, nil
}
