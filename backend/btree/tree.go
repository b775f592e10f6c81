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

// aggMode selects which of the node's two mutually exclusive aggregates is
// meaningful for a given tree instance.
type aggMode int

const (
	modeSize aggMode = iota // I-tree: treeSize, positional locate
	modeKey                 // K/V-tree: firstKey, keyed locate
)

// tree is the shared engine behind Sequence, Set and OrderedMap. E is the
// leaf payload type, K the key type (unused for modeSize).
type tree[E any, K any] struct {
	root *node[E, K]
	first *node[E, K]

	nodeCapacity int
	mode         aggMode
	compare      Comparator[K]
	keyOf        func(E) K

	count int
}

func newTree[E any, K any](nodeCapacity int, mode aggMode, compare Comparator[K], keyOf func(E) K) *tree[E, K] {
	root := newLeaf[E, K]()
	return &tree[E, K]{
		root:         root,
		first:        root,
		nodeCapacity: normalizeCapacity(nodeCapacity),
		mode:         mode,
		compare:      compare,
		keyOf:        keyOf,
	}
}

func (t *tree[E, K]) size() int { return t.count }

// ---- aggregate maintenance (§4.2) ----

// refreshAggregate recomputes n's own aggregate from its current content
// and propagates the change: the size delta all the way to the root, or
// the new first key upward for as long as n remains slot 0 of its parent.
func (t *tree[E, K]) refreshAggregate(n *node[E, K]) {
	switch t.mode {
	case modeSize:
		var newVal int
		if n.leaf {
			newVal = n.items.usedCount()
		} else {
			for _, c := range n.children.slice() {
				newVal += c.treeSize
			}
		}
		delta := newVal - n.treeSize
		if delta != 0 {
			for cur := n; cur != nil; cur = cur.parent {
				cur.treeSize += delta
			}
		}
	case modeKey:
		if n.used() == 0 {
			return
		}
		n.firstKey = n.firstDescendantKey(t.keyOf)
		cur := n
		for cur.parent != nil && cur.indexInParent() == 0 {
			p := cur.parent
			p.firstKey = cur.firstKey
			cur = p
		}
	}
}

// ---- locate (§4.3.1) ----

// locateByOffset clamps offset into [0, size] and descends to the leaf
// holding it, returning the leaf and the in-leaf index (which may equal
// the leaf's used count: the past-the-end sentinel of the last leaf).
func (t *tree[E, K]) locateByOffset(offset int) (*node[E, K], int) {
	total := t.root.treeSize
	if offset < 0 {
		offset += total
	}
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}

	n := t.root
	for !n.isLeaf() {
		i := 0
		used := n.children.usedCount()
		for i < used-1 {
			c := n.children.at(i)
			if offset < c.treeSize {
				break
			}
			offset -= c.treeSize
			i++
		}
		n = n.children.at(i)
	}
	return n, offset
}

// locateByKey descends to the leaf that would hold key, returning the leaf
// and the in-leaf index of key (or of the first item greater than key, if
// absent).
func (t *tree[E, K]) locateByKey(key K) (*node[E, K], int) {
	n := t.root
	for !n.isLeaf() {
		used := n.children.usedCount()
		j := 0
		lo, hi := 1, used-1
		for lo <= hi {
			mid := (lo + hi) / 2
			fk := n.children.at(mid).firstKey
			if t.compare.Compare(&fk, &key) <= 0 {
				j = mid
				lo = mid + 1
			} else {
				hi = mid - 1
			}
		}
		n = n.children.at(j)
	}
	return n, t.findInLeaf(n, key)
}

// findInLeaf is the leaf-level binary search, mirroring the teacher's
// LeafNode.findItem: returns the index of key if present, otherwise the
// index at which it would be inserted to keep the leaf ordered.
func (t *tree[E, K]) findInLeaf(n *node[E, K], key K) int {
	items := n.items.slice()
	lo, hi := 0, len(items)-1
	mid, res := 0, 0
	for lo <= hi {
		mid = (lo + hi) / 2
		k := t.keyOf(items[mid])
		res = t.compare.Compare(&k, &key)
		if res == 0 {
			return mid
		} else if res < 0 {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	if res < 0 {
		mid++
	}
	return mid
}

// ---- rebalancer (§4.4) ----

// pairWithSmallest returns the sibling pair containing self, preferring
// whichever neighbour is smaller so redistribution is maximally effective.
func pairWithSmallest[E any, K any](self *node[E, K]) (left, right *node[E, K], ok bool) {
	if self.prev != nil && (self.next == nil || self.next.used() > self.prev.used()) {
		return self.prev, self, true
	}
	if self.next != nil {
		return self, self.next, true
	}
	return nil, nil, false
}

// ---- insertion (§4.3.3) ----

func (t *tree[E, K]) insertLeaf(leaf *node[E, K], index int, item E) {
	if leaf.used() < t.nodeCapacity {
		leaf.insertItemSlot(index, item, t.nodeCapacity)
		t.refreshAggregate(leaf)
		t.count++
		return
	}

	// left-donation shortcut
	if index == 0 && leaf.prev != nil && leaf.prev.used() < t.nodeCapacity {
		leaf.prev.insertItemSlot(leaf.prev.used(), item, t.nodeCapacity)
		t.refreshAggregate(leaf.prev)
		t.count++
		return
	}

	if leaf.parent != nil {
		if left, right, ok := pairWithSmallest[E, K](leaf); ok {
			sum := left.used() + right.used() + 1
			if sum <= 2*t.nodeCapacity {
				t.redistributeLeafForInsert(left, right, leaf, index, item)
				t.count++
				return
			}
		}
	}

	sibling := t.splitLeafAndInsert(leaf, index, item)
	t.count++
	if leaf == t.root {
		t.promoteNewRoot(leaf, sibling)
		return
	}
	t.insertChildIntoParent(leaf.parent, leaf.indexInParent()+1, sibling)
}

// insertChildIntoParent re-applies the same capacity/redistribute/split
// decision tree one level up, for the internal node a split promotes.
func (t *tree[E, K]) insertChildIntoParent(parent *node[E, K], index int, child *node[E, K]) {
	for {
		if parent.used() < t.nodeCapacity {
			parent.insertChildSlot(index, child, t.nodeCapacity)
			t.refreshAggregate(parent)
			return
		}

		if index == 0 && parent.prev != nil && parent.prev.used() < t.nodeCapacity {
			parent.prev.insertChildSlot(parent.prev.used(), child, t.nodeCapacity)
			t.refreshAggregate(parent.prev)
			return
		}

		if parent.parent != nil {
			if left, right, ok := pairWithSmallest[E, K](parent); ok {
				sum := left.used() + right.used() + 1
				if sum <= 2*t.nodeCapacity {
					t.redistributeInternalForInsert(left, right, parent, index, child)
					return
				}
			}
		}

		sibling := t.splitInternalAndInsert(parent, index, child)
		if parent == t.root {
			t.promoteNewRoot(parent, sibling)
			return
		}
		gp := parent.parent
		gpIndex := parent.indexInParent() + 1
		parent, index, child = gp, gpIndex, sibling
	}
}

func (t *tree[E, K]) redistributeLeafForInsert(left, right, target *node[E, K], index int, item E) {
	combined := make([]E, 0, left.used()+right.used()+1)
	combined = append(combined, left.items.slice()...)
	combined = append(combined, right.items.slice()...)
	globalIndex := index
	if target == right {
		globalIndex = left.used() + index
	}
	combined = insertAt(combined, globalIndex, item)

	half := len(combined) / 2
	left.assignItems(combined[:half], t.nodeCapacity)
	right.assignItems(combined[half:], t.nodeCapacity)
	t.refreshAggregate(left)
	t.refreshAggregate(right)
}

func (t *tree[E, K]) redistributeInternalForInsert(left, right, target *node[E, K], index int, child *node[E, K]) {
	combined := make([]*node[E, K], 0, left.used()+right.used()+1)
	combined = append(combined, left.children.slice()...)
	combined = append(combined, right.children.slice()...)
	globalIndex := index
	if target == right {
		globalIndex = left.used() + index
	}
	combined = insertAt(combined, globalIndex, child)

	half := len(combined) / 2
	left.assignChildren(combined[:half], t.nodeCapacity)
	right.assignChildren(combined[half:], t.nodeCapacity)
	t.refreshAggregate(left)
	t.refreshAggregate(right)
}

func (t *tree[E, K]) splitLeafAndInsert(self *node[E, K], index int, item E) *node[E, K] {
	combined := append([]E(nil), self.items.slice()...)
	half := len(combined) / 2

	sibling := newLeaf[E, K]()
	sibling.linkAfter(self)

	self.assignItems(combined[:half], t.nodeCapacity)
	sibling.assignItems(combined[half:], t.nodeCapacity)

	if index <= half {
		self.insertItemSlot(index, item, t.nodeCapacity)
	} else {
		sibling.insertItemSlot(index-half, item, t.nodeCapacity)
	}
	t.refreshAggregate(self)
	t.refreshAggregate(sibling)
	return sibling
}

func (t *tree[E, K]) splitInternalAndInsert(self *node[E, K], index int, child *node[E, K]) *node[E, K] {
	combined := append([]*node[E, K](nil), self.children.slice()...)
	half := len(combined) / 2

	sibling := newInternal[E, K]()
	sibling.linkAfter(self)

	self.assignChildren(combined[:half], t.nodeCapacity)
	sibling.assignChildren(combined[half:], t.nodeCapacity)

	if index <= half {
		self.insertChildSlot(index, child, t.nodeCapacity)
	} else {
		sibling.insertChildSlot(index-half, child, t.nodeCapacity)
	}
	t.refreshAggregate(self)
	t.refreshAggregate(sibling)
	return sibling
}

func (t *tree[E, K]) promoteNewRoot(oldRoot, sibling *node[E, K]) {
	newRoot := newInternal[E, K]()
	newRoot.insertChildSlot(0, oldRoot, t.nodeCapacity)
	newRoot.insertChildSlot(1, sibling, t.nodeCapacity)
	t.root = newRoot
	t.refreshAggregate(newRoot)
}

// insertAt returns a copy of s with v inserted at index i.
func insertAt[T any](s []T, i int, v T) []T {
	s = append(s, v)
	copy(s[i+1:], s[i:len(s)-1])
	s[i] = v
	return s
}

// ---- deletion (§4.3.4) ----

func (t *tree[E, K]) removeItem(leaf *node[E, K], index int) {
	leaf.removeItemSlot(index)
	t.refreshAggregate(leaf)
	t.count--
	t.rebalanceAfterRemove(leaf)
}

func (t *tree[E, K]) rebalanceAfterRemove(self *node[E, K]) {
	for {
		if self.parent == nil || self.used()*2 > t.nodeCapacity {
			return
		}

		left, right, ok := pairWithSmallest[E, K](self)
		if !ok {
			// self has no siblings: it becomes the root (demotion).
			self.parent = nil
			t.root = self
			return
		}

		sum := left.used() + right.used()
		if sum > t.nodeCapacity {
			half := sum >> 1
			if self.used() == half {
				// boundary: self would already end up with half, so
				// redistributing would shift zero slots into it.
				return
			}
			leftCount := half
			if self == right {
				leftCount = sum - half
			}
			t.redistributeAfterRemove(left, right, leftCount)
			return
		}

		t.mergeSiblings(left, right)
		parent := right.parent
		idx := right.indexInParent()
		parent.removeChildSlot(idx)
		t.refreshAggregate(parent)
		if parent == t.root && parent.used() == 1 {
			// the merge left the root with a single child, which
			// replaces it (demotion).
			onlyChild := parent.children.at(0)
			onlyChild.parent = nil
			t.root = onlyChild
			return
		}
		self = parent
	}
}

func (t *tree[E, K]) redistributeAfterRemove(left, right *node[E, K], half int) {
	if left.leaf {
		combined := make([]E, 0, left.used()+right.used())
		combined = append(combined, left.items.slice()...)
		combined = append(combined, right.items.slice()...)
		left.assignItems(combined[:half], t.nodeCapacity)
		right.assignItems(combined[half:], t.nodeCapacity)
	} else {
		combined := make([]*node[E, K], 0, left.used()+right.used())
		combined = append(combined, left.children.slice()...)
		combined = append(combined, right.children.slice()...)
		left.assignChildren(combined[:half], t.nodeCapacity)
		right.assignChildren(combined[half:], t.nodeCapacity)
	}
	t.refreshAggregate(left)
	t.refreshAggregate(right)
}

func (t *tree[E, K]) mergeSiblings(left, right *node[E, K]) {
	if left.leaf {
		combined := append(append([]E(nil), left.items.slice()...), right.items.slice()...)
		left.assignItems(combined, t.nodeCapacity)
	} else {
		combined := append(append([]*node[E, K](nil), left.children.slice()...), right.children.slice()...)
		left.assignChildren(combined, t.nodeCapacity)
	}
	t.refreshAggregate(left)
}

// String dumps the tree's full structure, recursing from the root down to
// the leaves, grounded on the teacher's BTree.String() delegating to its
// root node's own String().
func (t *tree[E, K]) String() string {
	return t.root.String()
}
