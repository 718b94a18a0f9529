package huffman

import (
	"container/heap"
	"sort"
)

// node is a transient Huffman tree node. Leaves carry a symbol; internal
// nodes carry only the aggregate frequency. The tree is discarded as soon
// as the code table has been derived.
type node struct {
	sym   Symbol
	leaf  bool
	freq  int
	seq   int // insertion order, breaks frequency ties
	left  *node
	right *node
}

type nodeQueue []*node

func (q nodeQueue) Len() int { return len(q) }
func (q nodeQueue) Less(i, j int) bool {
	if q[i].freq != q[j].freq {
		return q[i].freq < q[j].freq
	}
	return q[i].seq < q[j].seq
}
func (q nodeQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *nodeQueue) Push(x any)        { *q = append(*q, x.(*node)) }
func (q *nodeQueue) Pop() any {
	old := *q
	n := old[len(old)-1]
	*q = old[:len(old)-1]
	return n
}

// CodeTable is the bijective symbol <-> bitstring mapping derived from a
// Huffman tree. Codes holds symbol -> code, Symbols the inverse; the two
// are always kept in sync. Only the Symbols direction is persisted, since
// it alone suffices to decode.
type CodeTable struct {
	Codes   map[Symbol]string
	Symbols map[string]Symbol
}

// BuildCodeTable runs the greedy two-smallest-merge construction over the
// frequency table and derives the code table from the resulting tree.
// Ties are broken by insertion sequence, and symbols are inserted in
// sorted order, so the same frequencies always yield the same codes.
func BuildCodeTable(freqs FrequencyTable) *CodeTable {
	symbols := make([]Symbol, 0, len(freqs))
	for s := range freqs {
		symbols = append(symbols, s)
	}
	sort.Slice(symbols, func(i, j int) bool { return symbols[i].less(symbols[j]) })

	q := make(nodeQueue, 0, len(symbols))
	for i, s := range symbols {
		q = append(q, &node{sym: s, leaf: true, freq: freqs[s], seq: i})
	}
	heap.Init(&q)

	seq := len(symbols)
	for q.Len() > 1 {
		a := heap.Pop(&q).(*node)
		b := heap.Pop(&q).(*node)
		heap.Push(&q, &node{freq: a.freq + b.freq, seq: seq, left: a, right: b})
		seq++
	}
	root := heap.Pop(&q).(*node)

	table := &CodeTable{
		Codes:   make(map[Symbol]string, len(symbols)),
		Symbols: make(map[string]Symbol, len(symbols)),
	}

	// A one-symbol alphabet has no merge step and would otherwise get the
	// empty code, which breaks both the prefix invariant and the decode
	// loop. Fix its code to "0".
	if root.leaf {
		table.Codes[root.sym] = "0"
		table.Symbols["0"] = root.sym
		return table
	}

	// Iterative walk: the alphabet can be large (up to 16.7M pixel
	// triples), so no recursion.
	type frame struct {
		n    *node
		code string
	}
	stack := []frame{{root, ""}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.n.leaf {
			table.Codes[f.n.sym] = f.code
			table.Symbols[f.code] = f.n.sym
			continue
		}
		stack = append(stack, frame{f.n.right, f.code + "1"})
		stack = append(stack, frame{f.n.left, f.code + "0"})
	}
	return table
}
