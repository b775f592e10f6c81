//
// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.
//

package btree

import "fmt"

// verify walks the whole tree and checks every structural invariant from
// §4.6: power-of-two slot arrays, capacity and occupancy bounds, parent
// pointers, sibling chain consistency, sortedness, and aggregate
// correctness. It returns ErrInvariantViolation wrapping a description of
// the first violation found, or nil if the tree is structurally sound.
func (t *tree[E, K]) verify() error {
	if t.root.parent != nil {
		return t.fail("root has a non-nil parent")
	}
	if t.root.prev != nil || t.root.next != nil {
		return t.fail("root participates in a sibling chain")
	}

	levels := map[int][]*node[E, K]{}
	leaves, err := t.verifyNode(t.root, true, 0, levels)
	if err != nil {
		return err
	}

	for depth, nodes := range levels {
		if err := t.verifyLevelChain(depth, nodes); err != nil {
			return err
		}
	}

	if t.first != nil && len(leaves) > 0 && t.first != leaves[0] {
		return t.fail("tree.first does not point at the leftmost leaf")
	}

	if t.mode == modeSize && t.root.treeSize != t.count {
		return t.fail(fmt.Sprintf("root.treeSize=%d does not match element count=%d", t.root.treeSize, t.count))
	}

	return nil
}

// verifyNode recursively validates n, records it under its depth in levels
// for the later per-level chain/sibling-pair checks, and returns the leaves
// of its subtree in left-to-right order.
func (t *tree[E, K]) verifyNode(n *node[E, K], isRoot bool, depth int, levels map[int][]*node[E, K]) ([]*node[E, K], error) {
	if err := t.verifySlotArray(n); err != nil {
		return nil, err
	}
	levels[depth] = append(levels[depth], n)

	used := n.used()
	if !isRoot && used*2 < t.nodeCapacity {
		return nil, t.fail(fmt.Sprintf("non-root node underflows: used=%d capacity=%d", used, t.nodeCapacity))
	}
	if !isRoot && used == 0 {
		return nil, t.fail("non-root node is empty")
	}
	if isRoot && !n.leaf && used < 2 {
		return nil, t.fail(fmt.Sprintf("internal root has fewer than 2 children: used=%d", used))
	}

	if n.leaf {
		if err := t.verifyLeafContent(n); err != nil {
			return nil, err
		}
		return []*node[E, K]{n}, nil
	}

	var leaves []*node[E, K]
	children := n.children.slice()
	for i, c := range children {
		if c.parent != n {
			return nil, t.fail("child's parent pointer does not point back to its parent")
		}
		if c.indexInParent() != i {
			return nil, t.fail("child is not at the array index its parent records")
		}
		if t.mode == modeKey {
			want := c.firstDescendantKey(t.keyOf)
			if t.compare.Compare(&c.firstKey, &want) != 0 {
				return nil, t.fail("child.firstKey does not match its own leftmost descendant key")
			}
			if i == 0 {
				if t.compare.Compare(&n.firstKey, &c.firstKey) != 0 {
					return nil, t.fail("parent.firstKey does not match its first child's firstKey")
				}
			}
		}
		childLeaves, err := t.verifyNode(c, false, depth+1, levels)
		if err != nil {
			return nil, err
		}
		leaves = append(leaves, childLeaves...)
	}

	if t.mode == modeSize {
		sum := 0
		for _, c := range children {
			sum += c.treeSize
		}
		if sum != n.treeSize {
			return nil, t.fail(fmt.Sprintf("treeSize=%d does not equal sum of children's treeSize=%d", n.treeSize, sum))
		}
	}

	return leaves, nil
}

// verifySlotArray checks the power-of-two and occupancy invariants of §4.1.
func (t *tree[E, K]) verifySlotArray(n *node[E, K]) error {
	length := n.slotsLen()
	if length < 1 || length&(length-1) != 0 {
		return t.fail(fmt.Sprintf("slot array length %d is not a power of two", length))
	}
	if length > t.nodeCapacity {
		return t.fail(fmt.Sprintf("slot array length %d exceeds node capacity %d", length, t.nodeCapacity))
	}
	used := n.used()
	if used > length {
		return t.fail(fmt.Sprintf("used count %d exceeds slot array length %d", used, length))
	}
	if used > t.nodeCapacity {
		return t.fail(fmt.Sprintf("used count %d exceeds node capacity %d", used, t.nodeCapacity))
	}
	if used > 0 && used*2 <= length {
		return t.fail(fmt.Sprintf("slot array is under-filled: used=%d length=%d", used, length))
	}
	return nil
}

// verifyLeafContent checks that a leaf's items are strictly ordered by key
// (K-tree/V-tree) and, for modeKey trees, that firstKey matches item 0.
func (t *tree[E, K]) verifyLeafContent(n *node[E, K]) error {
	items := n.items.slice()
	if t.keyOf == nil {
		return nil
	}
	for i := 1; i < len(items); i++ {
		a, b := t.keyOf(items[i-1]), t.keyOf(items[i])
		if t.compare.Compare(&a, &b) >= 0 {
			return t.fail("leaf items are not strictly increasing by key")
		}
	}
	if t.mode == modeKey && len(items) > 0 {
		want := t.keyOf(items[0])
		if t.compare.Compare(&n.firstKey, &want) != 0 {
			return t.fail("leaf.firstKey does not match its first item's key")
		}
	}
	return nil
}

// verifyLevelChain checks that a single level's doubly linked list visits
// exactly the nodes found by the top-down walk, in the same order, with
// consistent prev/next pointers, and that every adjacent sibling pair
// satisfies the §4.6 packing invariant: a.slots.length + b.slots.length
// must exceed nodeCapacity, i.e. two neighbours could never have been
// merged into one node within capacity.
func (t *tree[E, K]) verifyLevelChain(depth int, nodes []*node[E, K]) error {
	for i, n := range nodes {
		var wantPrev, wantNext *node[E, K]
		if i > 0 {
			wantPrev = nodes[i-1]
		}
		if i < len(nodes)-1 {
			wantNext = nodes[i+1]
		}
		if n.prev != wantPrev {
			return t.fail(fmt.Sprintf("level %d chain prev pointer does not match tree order", depth))
		}
		if n.next != wantNext {
			return t.fail(fmt.Sprintf("level %d chain next pointer does not match tree order", depth))
		}
		if wantNext != nil && n.slotsLen()+wantNext.slotsLen() <= t.nodeCapacity {
			return t.fail(fmt.Sprintf("level %d siblings could be merged within capacity: %d+%d <= %d", depth, n.slotsLen(), wantNext.slotsLen(), t.nodeCapacity))
		}
	}
	return nil
}

func (t *tree[E, K]) fail(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvariantViolation, msg)
}
