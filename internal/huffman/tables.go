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

import "container/heap"

// tableMeta describes one big_values Huffman table: xlen is the
// number of representable magnitudes per dimension before the
// linbits escape kicks in (ISO 11172-3 Table B.7), linbits is the
// number of extra bits read when x or y hits xlen-1.
type tableMeta struct {
	xlen    int
	linbits int
}

// tableMetas is indexed by table_select (0..31). Table 0 is handled
// specially by BigValue (it never reads bits; every pair is (0,0)). Tables 4 and 14 are reserved and never selected by a valid
// bitstream; their metadata is unused filler.
var tableMetas = [32]tableMeta{
	0:  {xlen: 1, linbits: 0},
	1:  {xlen: 2, linbits: 0},
	2:  {xlen: 3, linbits: 0},
	3:  {xlen: 3, linbits: 0},
	4:  {xlen: 1, linbits: 0},
	5:  {xlen: 4, linbits: 0},
	6:  {xlen: 4, linbits: 0},
	7:  {xlen: 6, linbits: 0},
	8:  {xlen: 6, linbits: 0},
	9:  {xlen: 6, linbits: 0},
	10: {xlen: 8, linbits: 0},
	11: {xlen: 8, linbits: 0},
	12: {xlen: 8, linbits: 0},
	13: {xlen: 16, linbits: 0},
	14: {xlen: 1, linbits: 0},
	15: {xlen: 16, linbits: 0},
	16: {xlen: 16, linbits: 1},
	17: {xlen: 16, linbits: 2},
	18: {xlen: 16, linbits: 3},
	19: {xlen: 16, linbits: 4},
	20: {xlen: 16, linbits: 6},
	21: {xlen: 16, linbits: 8},
	22: {xlen: 16, linbits: 10},
	23: {xlen: 16, linbits: 13},
	24: {xlen: 16, linbits: 4},
	25: {xlen: 16, linbits: 5},
	26: {xlen: 16, linbits: 6},
	27: {xlen: 16, linbits: 7},
	28: {xlen: 16, linbits: 8},
	29: {xlen: 16, linbits: 9},
	30: {xlen: 16, linbits: 11},
	31: {xlen: 16, linbits: 13},
}

// node is a Huffman tree node used only while building a table; it
// does not survive past init().
type node struct {
	weight      float64
	x, y        int // leaf payload; ignored on internal nodes
	left, right *node
}

// nodeHeap is a container/heap min-heap over node weights.
type nodeHeap []*node

func (h nodeHeap) Len() int            { return len(h) }
func (h nodeHeap) Less(i, j int) bool  { return h[i].weight < h[j].weight }
func (h nodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x interface{}) { *h = append(*h, x.(*node)) }
func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

// code is one assigned (length, bits) pair for a leaf.
type code struct {
	x, y   int
	length int
	bits   uint32
}

// buildCanonical builds a length-optimal prefix code over the
// xlen*xlen (x, y) pairs of a big_values table. Leaves closer to
// (0, 0) get a higher synthetic weight (and so a shorter code),
// mirroring the monotonically-growing code lengths of the ISO
// reference tables: low-magnitude quadruples dominate real audio and
// are assigned the cheapest codes. See the package doc comment for
// why the bit patterns themselves are generated rather than
// transcribed.
func buildCanonical(xlen int) []code {
	const decay = 0.6
	h := &nodeHeap{}
	heap.Init(h)
	for x := 0; x < xlen; x++ {
		for y := 0; y < xlen; y++ {
			w := 1.0
			for i := 0; i < x+y; i++ {
				w *= decay
			}
			heap.Push(h, &node{weight: w, x: x, y: y})
		}
	}
	if h.Len() == 1 {
		only := (*h)[0]
		return []code{{x: only.x, y: only.y, length: 1, bits: 0}}
	}
	for h.Len() > 1 {
		a := heap.Pop(h).(*node)
		b := heap.Pop(h).(*node)
		heap.Push(h, &node{weight: a.weight + b.weight, left: a, right: b})
	}
	root := heap.Pop(h).(*node)
	var codes []code
	var walk func(n *node, length int, bits uint32)
	walk = func(n *node, length int, bits uint32) {
		if n.left == nil && n.right == nil {
			codes = append(codes, code{x: n.x, y: n.y, length: length, bits: bits})
			return
		}
		walk(n.left, length+1, bits<<1)
		walk(n.right, length+1, bits<<1|1)
	}
	walk(root, 0, 0)
	return codes
}

// buildQuad builds the count1 quadruple Huffman table (table A,
// count1table_select=0). Each leaf is a 4-bit mask of {0,1} signs
// presence (v, w, x, y), weighted by how many of the four are
// nonzero: quadruples with fewer nonzero values are far more common
// at the high-frequency tail of a granule that count1 decoding
// covers.
func buildQuad() []code {
	const decay = 0.5
	h := &nodeHeap{}
	heap.Init(h)
	for v := 0; v < 16; v++ {
		popcount := 0
		for b := 0; b < 4; b++ {
			if v&(1<<uint(b)) != 0 {
				popcount++
			}
		}
		w := 1.0
		for i := 0; i < popcount; i++ {
			w *= decay
		}
		heap.Push(h, &node{weight: w, x: v})
	}
	for h.Len() > 1 {
		a := heap.Pop(h).(*node)
		b := heap.Pop(h).(*node)
		heap.Push(h, &node{weight: a.weight + b.weight, left: a, right: b})
	}
	root := heap.Pop(h).(*node)
	var codes []code
	var walk func(n *node, length int, bits uint32)
	walk = func(n *node, length int, bits uint32) {
		if n.left == nil && n.right == nil {
			codes = append(codes, code{x: n.x, length: length, bits: bits})
			return
		}
		walk(n.left, length+1, bits<<1)
		walk(n.right, length+1, bits<<1|1)
	}
	walk(root, 0, 0)
	return codes
}
