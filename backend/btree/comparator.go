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

import "golang.org/x/exp/constraints"

// Comparator is a deterministic strict weak ordering over K, the contract
// required by §6 for the keyed variants (Set, OrderedMap).
type Comparator[K any] interface {
	Compare(a, b *K) int
}

// OrderedComparator is a ready-made Comparator for any naturally ordered
// key type, so callers of Set/OrderedMap are not forced to hand-write a
// comparator for int, string, and similar built-ins.
type OrderedComparator[K constraints.Ordered] struct{}

func (OrderedComparator[K]) Compare(a, b *K) int {
	switch {
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	default:
		return 0
	}
}
