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

// ConstError is an error type usable as an immutable error constant,
// comparable with errors.Is.
type ConstError string

func (e ConstError) Error() string { return string(e) }

// ErrInvariantViolation is returned by Verify when a structural invariant
// does not hold. No public mutating operation should ever cause it on a
// previously valid tree; seeing it means there is a bug in this package.
const ErrInvariantViolation = ConstError("bptree: invariant violation")

const minNodeCapacity = 2

// normalizeCapacity coerces a caller-supplied node capacity to the minimum
// the engine supports, per §6: "Implementations may require even capacity;
// the reference accepts any integer ≥ 2".
func normalizeCapacity(nodeCapacity int) int {
	if nodeCapacity < minNodeCapacity {
		return minNodeCapacity
	}
	return nodeCapacity
}
