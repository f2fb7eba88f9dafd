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

package huffman

import (
	"testing"

	"github.com/soundcore-go/mp3/internal/bitio"
)

// bitWriter is a tiny MSB-first bit packer used only by this test to
// build synthetic bitstreams.
type bitWriter struct {
	bits []byte // one bit per entry, 0 or 1
}

func (w *bitWriter) writeBits(n int, v uint32) {
	for i := n - 1; i >= 0; i-- {
		w.bits = append(w.bits, byte((v>>uint(i))&1))
	}
}

func (w *bitWriter) pack() []byte {
	out := make([]byte, (len(w.bits)+7)/8)
	for i, b := range w.bits {
		if b != 0 {
			out[i/8] |= 1 << uint(7-i%8)
		}
	}
	return out
}

func TestBigValueRoundTrip(t *testing.T) {
	for tableNum := 1; tableNum < 32; tableNum++ {
		if tableMetas[tableNum].xlen <= 1 {
			continue
		}
		tbl := bigValueTables[tableNum]
		if tbl == nil {
			t.Fatalf("table %d not built", tableNum)
		}
		codes := buildCanonical(tbl.meta.xlen)
		for _, c := range codes {
			w := &bitWriter{}
			w.writeBits(c.length, c.bits)
			lb := tbl.meta.linbits
			wantX, wantY := c.x, c.y
			if c.x == tbl.meta.xlen-1 && lb > 0 {
				w.writeBits(lb, 0)
			}
			if c.x > 0 {
				w.writeBits(1, 0)
			}
			if c.y == tbl.meta.xlen-1 && lb > 0 {
				w.writeBits(lb, 0)
			}
			if c.y > 0 {
				w.writeBits(1, 0)
			}
			r := bitio.New(w.pack())
			x, y, err := BigValue(r, tableNum)
			if err != nil {
				t.Fatalf("table %d: BigValue: %v", tableNum, err)
			}
			if x != wantX || y != wantY {
				t.Errorf("table %d: got (%d,%d), want (%d,%d)", tableNum, x, y, wantX, wantY)
			}
		}
	}
}

func TestBigValueSignBit(t *testing.T) {
	tbl := bigValueTables[1]
	codes := buildCanonical(tbl.meta.xlen)
	var withSign *code
	for i := range codes {
		if codes[i].x > 0 {
			withSign = &codes[i]
			break
		}
	}
	if withSign == nil {
		t.Fatal("table 1 has no code with x>0 to exercise sign bit")
	}
	w := &bitWriter{}
	w.writeBits(withSign.length, withSign.bits)
	w.writeBits(1, 1) // negative
	if withSign.y > 0 {
		w.writeBits(1, 0)
	}
	r := bitio.New(w.pack())
	x, _, err := BigValue(r, 1)
	if err != nil {
		t.Fatalf("BigValue: %v", err)
	}
	if x != -withSign.x {
		t.Errorf("got x=%d, want %d", x, -withSign.x)
	}
}

func TestTableZeroAlwaysZero(t *testing.T) {
	r := bitio.New(nil)
	x, y, err := BigValue(r, 0)
	if err != nil || x != 0 || y != 0 {
		t.Errorf("table 0: got (%d,%d,%v), want (0,0,nil)", x, y, err)
	}
}

func TestQuadrupleTableB(t *testing.T) {
	r := bitio.New([]byte{0b1010_0000})
	v, w, x, y, err := Quadruple(r, true)
	if err != nil {
		t.Fatalf("Quadruple: %v", err)
	}
	if v != 1 || w != 0 || x != 1 || y != 0 {
		t.Errorf("got (%d,%d,%d,%d), want (1,0,1,0)", v, w, x, y)
	}
}

func TestQuadrupleTableARoundTrip(t *testing.T) {
	codes := buildQuad()
	for _, c := range codes {
		bw := &bitWriter{}
		bw.writeBits(c.length, c.bits)
		nonzero := 0
		for b := 3; b >= 0; b-- {
			if c.x&(1<<uint(b)) != 0 {
				nonzero++
				bw.writeBits(1, 0)
			}
		}
		r := bitio.New(bw.pack())
		v, w, x, y, err := Quadruple(r, false)
		if err != nil {
			t.Fatalf("Quadruple: %v", err)
		}
		wantV := (c.x >> 3) & 1
		wantW := (c.x >> 2) & 1
		wantX := (c.x >> 1) & 1
		wantY := c.x & 1
		if v != wantV || w != wantW || x != wantX || y != wantY {
			t.Errorf("mask %04b: got (%d,%d,%d,%d), want (%d,%d,%d,%d)", c.x, v, w, x, y, wantV, wantW, wantX, wantY)
		}
	}
}

func TestLinbits(t *testing.T) {
	if got := Linbits(16); got != 1 {
		t.Errorf("Linbits(16) = %d, want 1", got)
	}
	if got := Linbits(31); got != 13 {
		t.Errorf("Linbits(31) = %d, want 13", got)
	}
	if got := Linbits(0); got != 0 {
		t.Errorf("Linbits(0) = %d, want 0", got)
	}
}
