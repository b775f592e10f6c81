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
	"slices"
	"testing"
)

func TestSlotArray_InsertExternalGrows(t *testing.T) {
	s := newSlotArray[int]()
	for i := 0; i < 8; i++ {
		s.insertExternal(i, i, 8)
	}
	if got, want := s.usedCount(), 8; got != want {
		t.Fatalf("usedCount() = %d, want %d", got, want)
	}
	if got, want := s.length(), 8; got != want {
		t.Fatalf("length() = %d, want %d (power of two, capped at capacity)", got, want)
	}
	if !slices.Equal(s.slice(), []int{0, 1, 2, 3, 4, 5, 6, 7}) {
		t.Fatalf("slice() = %v", s.slice())
	}
}

func TestSlotArray_WipeShiftsAndShrinks(t *testing.T) {
	s := newSlotArray[int]()
	for i := 0; i < 8; i++ {
		s.insertExternal(i, i, 8)
	}
	s.wipe(6, 8)
	if got, want := s.usedCount(), 6; got != want {
		t.Fatalf("usedCount() = %d, want %d", got, want)
	}
	if !slices.Equal(s.slice(), []int{0, 1, 2, 3, 4, 5}) {
		t.Fatalf("slice() = %v", s.slice())
	}

	s.wipe(0, 4)
	if got, want := s.usedCount(), 2; got != want {
		t.Fatalf("usedCount() = %d, want %d", got, want)
	}
	if !slices.Equal(s.slice(), []int{4, 5}) {
		t.Fatalf("slice() = %v", s.slice())
	}
	if got, want := s.length(), 2; got != want {
		t.Fatalf("length() = %d, want %d (shrunk to fit)", got, want)
	}
}

func TestSlotArray_ResetSizesToSmallestPowerOfTwo(t *testing.T) {
	s := newSlotArray[int]()
	s.reset([]int{1, 2, 3, 4, 5}, 8)
	if got, want := s.length(), 8; got != want {
		t.Fatalf("length() = %d, want %d", got, want)
	}
	if got, want := s.usedCount(), 5; got != want {
		t.Fatalf("usedCount() = %d, want %d", got, want)
	}
}

func TestSlotArray_FreedTailIsZeroed(t *testing.T) {
	s := newSlotArray[int]()
	for i := 0; i < 4; i++ {
		s.insertExternal(i, i+1, 4)
	}
	s.wipe(2, 4)
	for i := s.usedCount(); i < s.length(); i++ {
		if s.at(i) != 0 {
			t.Fatalf("slot %d not zeroed after wipe: %v", i, s.at(i))
		}
	}
}
