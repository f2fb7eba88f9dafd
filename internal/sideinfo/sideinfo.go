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

// Package sideinfo decodes the per-frame side-information block that
// follows the 4-byte header.
package sideinfo

import (
	"fmt"

	"github.com/soundcore-go/mp3/internal/bitio"
	"github.com/soundcore-go/mp3/internal/consts"
	"github.com/soundcore-go/mp3/internal/frameheader"
)

// FullReader is the read seam sideinfo.Read needs from its source.
type FullReader interface {
	ReadFull([]byte) (int, error)
}

// ChannelGranule is the per-granule, per-channel subset of side info
// (spec.md section 3).
type ChannelGranule struct {
	Part2_3Length    int
	BigValues        int
	GlobalGain       int
	ScalefacCompress int
	WinSwitchFlag    int

	BlockType      int
	MixedBlockFlag int
	TableSelect    [3]int
	SubblockGain   [3]int

	Region0Count int
	Region1Count int

	Preflag           int
	ScalefacScale     int
	Count1TableSelect int
	Count1            int // not in the bitstream; set by the Huffman decoder
}

// SideInfo is MPEG-1 Layer III side information. Indices are
// [gr][ch] unless noted otherwise.
type SideInfo struct {
	MainDataBegin int
	PrivateBits   int
	Scfsi         [2][4]int
	Granule       [2][2]ChannelGranule
}

// Read decodes the side-information block immediately following
// header in the bitstream.
func Read(source FullReader, header frameheader.FrameHeader) (*SideInfo, error) {
	nch := header.NumberOfChannels()
	size := header.SideInfoSize()

	buf := make([]byte, size)
	n, err := source.ReadFull(buf)
	if n < size {
		if err != nil {
			return nil, &consts.UnexpectedEOF{At: "sideinfo.Read"}
		}
		return nil, fmt.Errorf("mp3: couldn't read %d bytes of side info: %w", size, err)
	}
	r := bitio.New(buf)

	si := &SideInfo{}
	si.MainDataBegin = r.Read(9)
	if header.Mode() == consts.ModeSingleChannel {
		si.PrivateBits = r.Read(5)
	} else {
		si.PrivateBits = r.Read(3)
	}
	for ch := 0; ch < nch; ch++ {
		for band := 0; band < 4; band++ {
			si.Scfsi[ch][band] = r.Read(1)
		}
	}
	for gr := 0; gr < 2; gr++ {
		for ch := 0; ch < nch; ch++ {
			g := &si.Granule[gr][ch]
			g.Part2_3Length = r.Read(12)
			g.BigValues = r.Read(9)
			g.GlobalGain = r.Read(8)
			g.ScalefacCompress = r.Read(4)
			g.WinSwitchFlag = r.Read(1)
			if g.WinSwitchFlag == 1 {
				g.BlockType = r.Read(2)
				g.MixedBlockFlag = r.Read(1)
				for region := 0; region < 2; region++ {
					g.TableSelect[region] = r.Read(5)
				}
				for win := 0; win < 3; win++ {
					g.SubblockGain[win] = r.Read(3)
				}
				// Not transmitted when blocksplit_flag=1: 8 for a
				// pure short block (block_type=2, no mixed flag), 7
				// for every other window-switched block.
				if g.BlockType == 2 && g.MixedBlockFlag == 0 {
					g.Region0Count = 8
				} else {
					g.Region0Count = 7
				}
				g.Region1Count = 20 - g.Region0Count
			} else {
				for region := 0; region < 3; region++ {
					g.TableSelect[region] = r.Read(5)
				}
				g.Region0Count = r.Read(4)
				g.Region1Count = r.Read(3)
				g.BlockType = 0
			}
			g.Preflag = r.Read(1)
			g.ScalefacScale = r.Read(1)
			g.Count1TableSelect = r.Read(1)
		}
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("mp3: side info truncated: %w", err)
	}
	return si, nil
}
