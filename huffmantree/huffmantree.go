// Package huffmantree builds and restores the binary trees the codec
// uses to map bytes to variable-length codewords. Nodes live in a flat
// arena slice addressed by int32 index rather than as linked pointer
// nodes, the same layout the teacher's bzip2 decoder uses for its own
// Huffman tree (internal/bzip2/huffman.go), adapted here to a
// tree-shape-serialized, not canonical, encoding.
package huffmantree

import (
	"sort"

	"github.com/bytepacker/huffman/bitbuffer"
	"github.com/bytepacker/huffman/histogram"
	"github.com/bytepacker/huffman/internal/herrors"
)

// noChild marks an absent child index, mirroring the teacher's
// invalidNodeValue sentinel.
const noChild = int32(-1)

type node struct {
	freq         uint64
	left, right  int32
	parent       int32
	isRightChild bool
	leafID       int32
	byteVal      byte
}

func (n *node) isLeaf() bool {
	return n.left == noChild && n.right == noChild
}

// Codebook maps each byte value to its assigned codeword. A nil entry
// means the byte never appeared in the histogram the tree was built
// from and has no codeword.
type Codebook [histogram.AlphabetSize]*bitbuffer.Buffer

// Tree is a Huffman tree together with the derived encoding tables
// needed to both emit and later restore it.
type Tree struct {
	nodes []node
	root  int32

	Codebook      Codebook
	ShapeBits     *bitbuffer.Buffer
	AlphabetBytes []byte
	LeafByteTable []byte
}

type candidate struct {
	ok   bool
	idx  int32
	freq uint64
}

// less4 reproduces the tree-shape tie-break policy of the original
// two-queue merge: prefer merging whichever pair of candidates (a
// leaf-ordered pair, then an internal-ordered pair) has the smaller
// combined frequency, treating an absent candidate as infinitely
// expensive.
func less4(a, b, c, d candidate) bool {
	if !a.ok || !b.ok {
		return false
	}
	if !c.ok || !d.ok {
		return true
	}
	return a.freq+b.freq <= c.freq+d.freq
}

// Build constructs a tree from a byte histogram using the classic
// two-queue O(n) merge: q1 holds leaves sorted ascending by frequency,
// q2 accumulates freshly merged internal nodes, and at each step the
// two cheapest available candidates (leaf+leaf, leaf+internal, or
// internal+internal) are combined.
func Build(hist histogram.Histogram) *Tree {
	entries := make([]histogram.Entry, len(hist))
	copy(entries, hist[:])
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count < entries[j].Count
	})

	idx0 := 0
	for idx0 < len(entries) && entries[idx0].Count == 0 {
		idx0++
	}
	n := len(entries) - idx0

	t := &Tree{ShapeBits: bitbuffer.New()}

	switch {
	case n == 0:
		t.nodes = []node{{left: noChild, right: noChild, leafID: noChild}}
		t.root = 0
	case n == 1:
		leaf := node{freq: entries[idx0].Count, left: noChild, right: noChild, leafID: noChild, byteVal: entries[idx0].Symbol}
		empty := node{left: noChild, right: noChild, leafID: noChild}
		t.nodes = append(t.nodes, leaf, empty)
		rootIdx := int32(len(t.nodes))
		t.nodes = append(t.nodes, node{freq: leaf.freq, left: 0, right: 1, parent: noChild, leafID: noChild})
		t.nodes[0].parent = rootIdx
		t.nodes[1].parent = rootIdx
		t.nodes[1].isRightChild = true
		t.root = rootIdx
	default:
		leaves := entries[idx0:]
		q1 := make([]int32, n)
		for j, e := range leaves {
			t.nodes = append(t.nodes, node{freq: e.Count, left: noChild, right: noChild, leafID: noChild, byteVal: e.Symbol})
			q1[j] = int32(len(t.nodes) - 1)
		}
		q2 := make([]int32, n-1)
		q2ok := make([]bool, n-1)

		i1, i2 := 0, 0
		var last int32
		for k := 0; k < n-1; k++ {
			cand := func(idx int32, ok bool) candidate {
				if !ok {
					return candidate{}
				}
				return candidate{ok: true, idx: idx, freq: t.nodes[idx].freq}
			}
			q11ok := i1 < n
			q12ok := i1+1 < n
			q21ok := i2 < k && q2ok[i2]
			q22ok := i2+1 < k && q2ok[i2+1]

			var q11, q12, q21, q22 candidate
			if q11ok {
				q11 = cand(q1[i1], true)
			}
			if q12ok {
				q12 = cand(q1[i1+1], true)
			}
			if q21ok {
				q21 = cand(q2[i2], true)
			}
			if q22ok {
				q22 = cand(q2[i2+1], true)
			}

			var left, right int32
			switch {
			case less4(q11, q12, q21, q22) && less4(q11, q12, q11, q21):
				left, right = q1[i1], q1[i1+1]
				i1 += 2
			case less4(q11, q21, q11, q12) && less4(q11, q21, q21, q22):
				left, right = q1[i1], q2[i2]
				i1++
				i2++
			default:
				left, right = q2[i2], q2[i2+1]
				i2 += 2
			}

			mergedFreq := t.nodes[left].freq + t.nodes[right].freq
			t.nodes = append(t.nodes, node{freq: mergedFreq, left: left, right: right, leafID: noChild})
			mergedIdx := int32(len(t.nodes) - 1)
			t.nodes[left].parent = mergedIdx
			t.nodes[right].parent = mergedIdx
			t.nodes[right].isRightChild = true
			q2[k] = mergedIdx
			q2ok[k] = true
			last = mergedIdx
		}
		t.root = last
	}

	t.dfs(t.root, bitbuffer.New())
	return t
}

func (t *Tree) dfs(idx int32, code *bitbuffer.Buffer) {
	n := &t.nodes[idx]
	if n.isLeaf() {
		n.leafID = int32(len(t.AlphabetBytes))
		t.ShapeBits.Push(0)
		t.AlphabetBytes = append(t.AlphabetBytes, n.byteVal)
		t.Codebook[n.byteVal] = code.Clone()
		return
	}
	t.ShapeBits.Push(1)
	code.Push(0)
	t.dfs(n.left, code)
	code.Flip(code.Len() - 1)
	t.dfs(n.right, code)
	code.Pop()
}

// Root returns the index of the tree's root node.
func (t *Tree) Root() int32 {
	return t.root
}

// IsLeaf reports whether idx names a leaf node.
func (t *Tree) IsLeaf(idx int32) bool {
	return t.nodes[idx].isLeaf()
}

// LeafByte returns the byte value stored at leaf idx.
func (t *Tree) LeafByte(idx int32) byte {
	return t.nodes[idx].byteVal
}

// Step advances cur by one bit (1 means take the right child) and
// reports the new node index. It returns herrors.Corrupted if the
// indicated child does not exist, which can only happen against a
// malformed tree.
func (t *Tree) Step(cur int32, bit byte) (int32, error) {
	n := &t.nodes[cur]
	var next int32
	if bit != 0 {
		next = n.right
	} else {
		next = n.left
	}
	if next == noChild {
		return 0, herrors.Corrupted("decode cursor reached a missing child")
	}
	return next, nil
}

// Restore rebuilds a Tree from the shape+alphabet body of a tree
// frame. The body begins with a pre-order bitstring describing the
// tree's shape (1 = internal node, 0 = leaf), padded out to a byte
// boundary, followed by one byte per leaf in visitation order giving
// that leaf's byte value.
func Restore(body []byte) (*Tree, error) {
	if len(body) == 0 {
		return nil, herrors.Corrupted("empty tree body")
	}

	t := &Tree{}
	t.nodes = append(t.nodes, node{left: noChild, right: noChild, parent: noChild, leafID: noChild})
	t.root = 0
	numLeaves := 0

	bitPos := 0
	totalBits := len(body) * 8

	// Walk the shape bits in pre-order using an explicit stack: each
	// node is visited before its children, and pushing right before
	// left ensures the left subtree is popped (and so visited) first.
	stack := []int32{0}
	for len(stack) > 0 {
		if bitPos >= totalBits {
			return nil, herrors.Corrupted("tree shape truncated")
		}
		bit := (body[bitPos>>3] >> uint(7-(bitPos&7))) & 1
		bitPos++

		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if bit == 1 {
			leftIdx := int32(len(t.nodes))
			t.nodes = append(t.nodes, node{left: noChild, right: noChild, parent: top, leafID: noChild})
			rightIdx := int32(len(t.nodes))
			t.nodes = append(t.nodes, node{left: noChild, right: noChild, parent: top, leafID: noChild, isRightChild: true})
			t.nodes[top].left = leftIdx
			t.nodes[top].right = rightIdx
			stack = append(stack, rightIdx, leftIdx)
		} else {
			t.nodes[top].leafID = int32(numLeaves)
			numLeaves++
		}
	}

	bodyStart := (bitPos + 7) / 8
	if len(body) < bodyStart+numLeaves {
		return nil, herrors.Corrupted("tree alphabet truncated")
	}
	t.LeafByteTable = make([]byte, numLeaves)
	copy(t.LeafByteTable, body[bodyStart:bodyStart+numLeaves])

	for i := range t.nodes {
		if t.nodes[i].isLeaf() {
			t.nodes[i].byteVal = t.LeafByteTable[t.nodes[i].leafID]
		}
	}

	t.ShapeBits = bitbuffer.New()
	for i := 0; i < bitPos; i++ {
		bit := (body[i>>3] >> uint(7-(i&7))) & 1
		t.ShapeBits.Push(bit)
	}
	t.AlphabetBytes = t.LeafByteTable

	return t, nil
}
