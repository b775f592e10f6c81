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

import (
	"fmt"
	"strings"
	"unsafe"
)

// Footprint is a diagnostic breakdown of a tree's in-memory size, grouped
// by the engine's own structural buckets rather than a generic recursive
// tree of named subcomponents: the node headers themselves, the leaf item
// slots, and the internal child slots, each counted including currently
// unused capacity. It does not attempt to account for the size of E/K's
// own pointed-to data, only the engine's own bookkeeping.
type Footprint struct {
	Nodes    uintptr // node headers (both leaf and internal), bytes
	Leaves   int     // number of leaf nodes
	Items    uintptr // leaf item slots, including unused, bytes
	Children uintptr // internal child slots, including unused, bytes
}

// Total returns the combined byte count across every bucket.
func (f Footprint) Total() uintptr {
	return f.Nodes + f.Items + f.Children
}

// String renders the footprint as a short multi-line report, one bucket
// per line followed by the total.
func (f Footprint) String() string {
	var sb strings.Builder
	writeByteAmount(&sb, f.Nodes)
	sb.WriteString(" nodes\n")
	writeByteAmount(&sb, f.Items)
	fmt.Fprintf(&sb, " items (%d leaves)\n", f.Leaves)
	writeByteAmount(&sb, f.Children)
	sb.WriteString(" children\n")
	writeByteAmount(&sb, f.Total())
	sb.WriteString(" total\n")
	return sb.String()
}

func writeByteAmount(sb *strings.Builder, n uintptr) {
	const unit = 1024
	const prefixes = " KMGTPE"
	div, exp := uintptr(1), 0
	for v := n; v >= unit && exp+1 < len(prefixes); v /= unit {
		div *= unit
		exp++
	}
	fmt.Fprintf(sb, "%6.1f %cB", float64(n)/float64(div), prefixes[exp])
}

// getFootprint produces t's Footprint by walking every node once.
func (t *tree[E, K]) getFootprint() Footprint {
	var dummyNode node[E, K]
	var dummyItem E
	var dummyChild *node[E, K]
	nodeSize := unsafe.Sizeof(dummyNode)
	itemSize := unsafe.Sizeof(dummyItem)
	slotSize := unsafe.Sizeof(dummyChild)

	nodes, leaves, itemSlots, childSlots := t.countStructure(t.root)

	return Footprint{
		Nodes:    uintptr(nodes) * nodeSize,
		Leaves:   leaves,
		Items:    uintptr(itemSlots) * itemSize,
		Children: uintptr(childSlots) * slotSize,
	}
}

// countStructure walks the tree once, counting total nodes, leaves, and
// the combined slot-array lengths at the leaf and internal levels.
func (t *tree[E, K]) countStructure(n *node[E, K]) (nodes, leaves, itemSlots, childSlots int) {
	nodes = 1
	if n.leaf {
		leaves = 1
		itemSlots = n.items.length()
		return
	}
	childSlots = n.children.length()
	for _, c := range n.children.slice() {
		cn, cl, ci, cc := t.countStructure(c)
		nodes += cn
		leaves += cl
		itemSlots += ci
		childSlots += cc
	}
	return
}
