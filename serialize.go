package ftrie

import (
	"bytes"
	"encoding/binary"
	"io"
)

// Serialize renders the trie into a compact pre-order byte image plus a
// parallel table of stored values, per spec.md §4.6. Each record is
// {label (4 bytes, big-endian — a rune needs the full width, unlike the
// source's 1-byte-or-implementation-wide field), value_index (uvarint),
// child_count (uvarint — widened from the source's 1 byte since a node's
// fan-out is not bounded to 255 once labels are arbitrary runes)}.
// value_index 0 is the null sentinel; values[1:] holds the rest in the
// order nodes were visited.
func (t *Trie[V]) Serialize() (nodeCount int, height int, memUsage int64, blob []byte, values []V) {
	var buf bytes.Buffer
	values = make([]V, 1, t.itemCount+1)

	var scratch [binary.MaxVarintLen64]byte
	var labelBuf [4]byte

	var visit func(n *node[V])
	visit = func(n *node[V]) {
		binary.BigEndian.PutUint32(labelBuf[:], uint32(n.label))
		buf.Write(labelBuf[:])

		var valueIndex uint64
		if n.hasValue {
			values = append(values, n.value)
			valueIndex = uint64(len(values) - 1)
		}
		m := binary.PutUvarint(scratch[:], valueIndex)
		buf.Write(scratch[:m])

		childCount := 0
		if n.children != nil {
			childCount = n.children.len()
		}
		m = binary.PutUvarint(scratch[:], uint64(childCount))
		buf.Write(scratch[:m])

		if n.children != nil {
			cur := n.children.newCursor()
			for ch := cur.next(); ch != nil; ch = cur.next() {
				visit(ch)
			}
		}
	}

	visit(t.root)
	return t.nodeCount, t.height, t.memUsage, buf.Bytes(), values
}

// Deserialize replaces the trie's contents in place with the state encoded
// by a prior Serialize call. On any parse error the trie is left untouched
// — the new tree is built up in local variables and only swapped in once
// parsing has fully succeeded, per spec.md §7's "not partially mutated"
// contract.
func (t *Trie[V]) Deserialize(nodeCount int, height int, memUsage int64, blob []byte, values []V) error {
	if len(values) == 0 {
		return wrapMalformedState("values")
	}

	r := bytes.NewReader(blob)
	var labelBuf [4]byte
	seen := 0

	var build func() (*node[V], error)
	build = func() (*node[V], error) {
		if _, err := io.ReadFull(r, labelBuf[:]); err != nil {
			return nil, wrapMalformedState("label")
		}
		label := rune(binary.BigEndian.Uint32(labelBuf[:]))

		valueIndex, err := binary.ReadUvarint(r)
		if err != nil {
			return nil, wrapMalformedState("value_index")
		}
		childCount, err := binary.ReadUvarint(r)
		if err != nil {
			return nil, wrapMalformedState("child_count")
		}

		n := newNode[V](label)
		seen++

		if valueIndex != 0 {
			if valueIndex >= uint64(len(values)) {
				return nil, wrapMalformedState("value_index")
			}
			n.value = values[valueIndex]
			n.hasValue = true
		}

		if childCount > 0 {
			n.children = t.newChildIndex()
			for i := uint64(0); i < childCount; i++ {
				child, err := build()
				if err != nil {
					return nil, err
				}
				n.children.insert(child)
			}
		}

		return n, nil
	}

	root, err := build()
	if err != nil {
		return err
	}
	if r.Len() != 0 {
		return wrapMalformedState("trailing bytes")
	}
	if seen != nodeCount {
		return wrapMalformedState("node_count")
	}

	t.root = root
	t.nodeCount = nodeCount
	t.height = height
	t.memUsage = memUsage
	t.itemCount = len(values) - 1
	t.dirty = true
	return nil
}
