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

// Package consts holds the shared enums, ISO 11172-3 tables, and error
// kinds used across the decode pipeline.
package consts

import "fmt"

// Version is the MPEG version field of the frame header.
type Version int

const (
	Version2_5     Version = 0
	VersionReserved Version = 1
	Version2       Version = 2
	Version1       Version = 3
)

// Layer is the MPEG layer field of the frame header.
type Layer int

const (
	LayerReserved Layer = 0
	Layer3        Layer = 1
	Layer2        Layer = 2
	Layer1        Layer = 3
)

// Mode is the channel mode field of the frame header.
type Mode int

const (
	ModeStereo Mode = iota
	ModeJointStereo
	ModeDualChannel
	ModeSingleChannel
)

// SamplingFrequency is the 2-bit sampling_frequency field, indexing
// into the per-version frequency table.
type SamplingFrequency int

// mpeg1SampleRates holds the three MPEG-1 sample rates in Hz, indexed
// by the header's sampling_frequency field.
var mpeg1SampleRates = [3]int{44100, 48000, 32000}

// Int returns the sample rate in Hz for an MPEG-1 Layer III stream.
func (s SamplingFrequency) Int() int {
	return mpeg1SampleRates[s]
}

// SamplesPerGr is the number of frequency lines per granule/channel.
const SamplesPerGr = 576

// BytesPerFrame is the number of bytes of 16-bit stereo PCM a decoded
// MPEG-1 Layer III frame always produces (1152 samples * 2 channels *
// 2 bytes/sample), matching the Read()-based io.Reader adapter.
const BytesPerFrame = 1152 * 2 * 2

// SamplesPerFrame is the number of PCM sample frames (one value per
// channel) produced per decoded MPEG-1 Layer III frame.
const SamplesPerFrame = 1152

// EndOfFileError, CanNotFindFrameSyncError, UnsupportedMpegVersionError
// and ReadFileError are the error kinds defined for the core (spec.md
// section 7). They are plain values, not panics: callers inspect them
// with errors.As/errors.Is. Of these, only CanNotFindFrameSyncError and
// UnsupportedMpegVersionError are returned by this module's packages;
// EndOfFileError and ReadFileError are not returned anywhere: end of
// input surfaces as io.EOF, and I/O errors from the source are passed
// through unwrapped. mp3.Decoder also reports CanNotFindFrameSyncError
// and UnexpectedEOF to its callers as io.EOF.

// EndOfFileError reports that the input was exhausted at a frame
// boundary.
type EndOfFileError struct{}

func (e *EndOfFileError) Error() string { return "mp3: end of file" }

// UnexpectedEOF reports that the input ended in the middle of reading
// a frame, side-info block, or main-data payload. Unlike EndOfFileError
// this is reported at a point where a complete frame was expected to
// still be available.
type UnexpectedEOF struct {
	At string
}

func (u *UnexpectedEOF) Error() string {
	return fmt.Sprintf("mp3: unexpected EOF at %s", u.At)
}

// CanNotFindFrameSyncError reports that the four bytes at the current
// position do not form a valid frame header (no 11-bit sync word, or a
// reserved field value). The input is not scanned for a later sync
// word.
type CanNotFindFrameSyncError struct{}

func (e *CanNotFindFrameSyncError) Error() string {
	return "mp3: can not find a frame sync word"
}

// UnsupportedMpegVersionError reports a reserved or unsupported
// MPEG version/layer combination.
type UnsupportedMpegVersionError struct {
	Version Version
	Layer   Layer
}

func (e *UnsupportedMpegVersionError) Error() string {
	return fmt.Sprintf("mp3: unsupported MPEG version/layer combination (version=%d, layer=%d)", e.Version, e.Layer)
}

// ReadFileError wraps an underlying I/O failure.
type ReadFileError struct {
	Err error
}

func (e *ReadFileError) Error() string {
	return fmt.Sprintf("mp3: read error: %v", e.Err)
}

func (e *ReadFileError) Unwrap() error {
	return e.Err
}

// SLEN holds the (slen1, slen2) scalefactor bit-widths indexed by
// scalefac_compress (ISO 11172-3 Table B.6).
var SLEN = [16][2]int{
	{0, 0}, {0, 1}, {0, 2}, {0, 3}, {3, 0}, {1, 1}, {1, 2}, {1, 3},
	{2, 1}, {2, 2}, {2, 3}, {3, 1}, {3, 2}, {3, 3}, {4, 2}, {4, 3},
}

// Pretab is the fixed scalefactor-band pretab table (ISO 11172-3
// Table B.6 addendum), applied when the preflag bit is set. Index by
// scalefactor band (0..20); the array is sized 23 to match the sf_l
// storage width used elsewhere.
var Pretab = [23]float64{
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 3, 3, 3, 2, 0, 0,
}

// CS and CA are the 8 antialias butterfly coefficients (ISO 11172-3
// Table B.9).
var (
	CS = [8]float32{0.857493, 0.881742, 0.949629, 0.983315, 0.995518, 0.999161, 0.999899, 0.999993}
	CA = [8]float32{-0.514496, -0.471732, -0.313377, -0.181913, -0.094574, -0.040966, -0.014199, -0.003700}
)

// SfBandIndicesLong and SfBandIndicesShort number the long and short
// band tables in the order SfBandIndicesForRate returns them.
const (
	SfBandIndicesLong = iota
	SfBandIndicesShort
)

// sfBandIndexSet holds both the long- and short-block scalefactor
// band boundary tables for one sample rate.
type sfBandIndexSet struct {
	long  []int
	short []int
}

// sfBandIndexTables holds the ISO 11172-3 Annex B scalefactor band
// index tables for MPEG-1, indexed by SamplingFrequency. The long table has 23
// entries (22 band boundaries + a closing 576); the short table has
// 14 entries (13 band boundaries + a closing 192).
var sfBandIndexTables = [3]sfBandIndexSet{
	// 44100 Hz
	{
		long:  []int{0, 4, 8, 12, 16, 20, 24, 30, 36, 44, 52, 62, 74, 90, 110, 134, 162, 196, 238, 288, 342, 418, 576},
		short: []int{0, 4, 8, 12, 16, 22, 30, 40, 52, 66, 84, 106, 136, 192},
	},
	// 48000 Hz
	{
		long:  []int{0, 4, 8, 12, 16, 20, 24, 30, 36, 42, 50, 60, 72, 88, 106, 128, 156, 190, 230, 276, 330, 384, 576},
		short: []int{0, 4, 8, 12, 16, 22, 28, 38, 50, 64, 80, 100, 126, 192},
	},
	// 32000 Hz
	{
		long:  []int{0, 4, 8, 12, 16, 20, 24, 30, 36, 44, 54, 66, 82, 102, 126, 156, 194, 240, 296, 364, 448, 550, 576},
		short: []int{0, 4, 8, 12, 16, 22, 30, 42, 58, 78, 104, 138, 180, 192},
	},
}

// SfBandIndicesForRate returns the (long, short) scalefactor band
// index tables for the given MPEG-1 sample rate index.
func SfBandIndicesForRate(sr SamplingFrequency) (long []int, short []int) {
	t := sfBandIndexTables[sr]
	return t.long, t.short
}

// BitrateKbps returns the bitrate in kbps for Layer III, indexed by
// bitrate_index (0 = free format, 15 = reserved; both are invalid).
var layer3Bitrates = [16]int{
	0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 0,
}

func BitrateKbps(index int) int {
	return layer3Bitrates[index]
}
