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

// Package maindata reads and decodes one frame's main-data block:
// the reservoir-backed scalefactors and Huffman-coded spectral lines
// for every granule and channel (spec.md section 4).
//
// Grounded on the teacher's root-level readMainL3/getMainData/
// readHuffman (maindata.go, read.go), which is the "more complete"
// of the two parallel paths the teacher carries for region-boundary
// and count1 handling; the per-channel struct shape follows its
// internal/maindata/maindata.go sibling instead.
package maindata

import (
	"fmt"

	"github.com/soundcore-go/mp3/internal/bitio"
	"github.com/soundcore-go/mp3/internal/consts"
	"github.com/soundcore-go/mp3/internal/frameheader"
	"github.com/soundcore-go/mp3/internal/huffman"
	"github.com/soundcore-go/mp3/internal/reservoir"
	"github.com/soundcore-go/mp3/internal/scalefactor"
	"github.com/soundcore-go/mp3/internal/sideinfo"
)

// FullReader is the read seam Read needs from its source.
type FullReader interface {
	ReadFull([]byte) (int, error)
}

// MainData holds every granule/channel's decoded spectral lines,
// requantize-ready (raw Huffman magnitudes as float32, not yet
// requantized) plus the scalefactors requantize needs alongside them.
type MainData struct {
	Is [2][2][consts.SamplesPerGr]float32
	Sf [2][2]*scalefactor.Factors
}

// Read consumes this frame's main-data bytes from source, folds them
// through res (the bit reservoir), and decodes scalefactors and
// Huffman data for every granule/channel. si.Granule[gr][ch].Count1
// is populated as a side effect, matching the teacher's mutation of
// sideInfo.count1 inside readHuffman.
func Read(source FullReader, res *reservoir.Reservoir, header frameheader.FrameHeader, si *sideinfo.SideInfo) (*MainData, error) {
	frameSize := header.FrameSize()
	mainDataSize := frameSize - header.SideInfoSize() - 4
	if header.ProtectionBit() == 0 {
		mainDataSize -= 2
	}
	if mainDataSize < 0 || mainDataSize > 1500 {
		return nil, fmt.Errorf("mp3: invalid main_data size %d", mainDataSize)
	}
	fresh := make([]byte, mainDataSize)
	if n, err := source.ReadFull(fresh); n < mainDataSize {
		if err != nil {
			return nil, &consts.UnexpectedEOF{At: "maindata.Read"}
		}
	}
	window, err := res.Window(fresh, si.MainDataBegin)
	if err != nil {
		return nil, err
	}

	r := bitio.New(window)
	longBands, _ := consts.SfBandIndicesForRate(header.SamplingFrequency())
	nch := header.NumberOfChannels()

	md := &MainData{}
	for gr := 0; gr < 2; gr++ {
		for ch := 0; ch < nch; ch++ {
			g := &si.Granule[gr][ch]
			part2Start := r.BitOffset()

			var prevLong *[23]int
			if gr == 1 && md.Sf[0][ch] != nil {
				prevLong = &md.Sf[0][ch].Long
			}
			md.Sf[gr][ch] = scalefactor.Read(r, si, gr, ch, prevLong)

			if err := decodeHuffman(r, g, &md.Is[gr][ch], part2Start, longBands); err != nil {
				return nil, err
			}
		}
	}
	return md, nil
}

// decodeHuffman decodes one granule/channel's big_values and count1
// regions, mirroring the teacher's readHuffman.
func decodeHuffman(r *bitio.Reader, g *sideinfo.ChannelGranule, is *[consts.SamplesPerGr]float32, part2Start int, longBands []int) error {
	if g.Part2_3Length == 0 {
		g.Count1 = 0
		return nil
	}
	bitPosEnd := part2Start + g.Part2_3Length - 1
	if g.BigValues*2 > consts.SamplesPerGr {
		return fmt.Errorf("mp3: big_values %d exceeds granule size", g.BigValues)
	}

	var region1Start, region2Start int
	if g.WinSwitchFlag == 1 && g.BlockType == 2 {
		region1Start = 36
		region2Start = consts.SamplesPerGr
	} else {
		i := g.Region0Count + 1
		if i < 0 || i >= len(longBands) {
			return fmt.Errorf("mp3: invalid region0_count index %d", i)
		}
		region1Start = longBands[i]
		j := g.Region0Count + g.Region1Count + 2
		if j < 0 || j >= len(longBands) {
			return fmt.Errorf("mp3: invalid region1_count index %d", j)
		}
		region2Start = longBands[j]
	}

	isPos := 0
	for isPos < g.BigValues*2 {
		tableNum := g.TableSelect[2]
		if isPos < region1Start {
			tableNum = g.TableSelect[0]
		} else if isPos < region2Start {
			tableNum = g.TableSelect[1]
		}
		x, y, err := huffman.BigValue(r, tableNum)
		if err != nil {
			return fmt.Errorf("mp3: huffman big_values decode: %w", err)
		}
		is[isPos] = float32(x)
		isPos++
		is[isPos] = float32(y)
		isPos++
	}

	tableB := g.Count1TableSelect == 1
	for isPos <= 572 && r.BitOffset() <= bitPosEnd {
		v, w, x, y, err := huffman.Quadruple(r, tableB)
		if err != nil {
			return fmt.Errorf("mp3: huffman count1 decode: %w", err)
		}
		is[isPos] = float32(v)
		isPos++
		if isPos >= consts.SamplesPerGr {
			break
		}
		is[isPos] = float32(w)
		isPos++
		if isPos >= consts.SamplesPerGr {
			break
		}
		is[isPos] = float32(x)
		isPos++
		if isPos >= consts.SamplesPerGr {
			break
		}
		is[isPos] = float32(y)
		isPos++
	}
	if r.BitOffset() > bitPosEnd+1 {
		isPos -= 4
	}
	g.Count1 = isPos
	for isPos < consts.SamplesPerGr {
		is[isPos] = 0
		isPos++
	}
	r.SetBitOffset(bitPosEnd + 1)
	return nil
}
