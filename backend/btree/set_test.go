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
	"math/rand"
	"slices"
	"sort"
	"testing"
)

const numSetKeys = 1000

func collectSet(s *Set[uint32]) []uint32 {
	var out []uint32
	it := s.Iterator(0)
	for it.HasNext() {
		out = append(out, it.Next())
	}
	return out
}

func TestSet_InsertSorted(t *testing.T) {
	s := NewSet[uint32](4, OrderedComparator[uint32]{})
	for _, key := range []uint32{5, 3, 8, 1, 9, 2, 7, 4, 6, 10} {
		s.Insert(key)
	}
	if err := s.Verify(); err != nil {
		t.Fatalf("Verify() failed: %v", err)
	}
	want := []uint32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	if got := collectSet(s); !slices.Equal(got, want) {
		t.Fatalf("set = %v, want %v", got, want)
	}
	for _, key := range want {
		if !s.Has(key) {
			t.Errorf("key %d should be present", key)
		}
	}
}

func TestSet_InsertDuplicateIsNoOp(t *testing.T) {
	s := NewSet[uint32](4, OrderedComparator[uint32]{})
	s.Insert(5)
	s.Insert(5)
	s.Insert(5)
	if got, want := s.Len(), 1; got != want {
		t.Fatalf("Len() = %d, want %d (insert of a set is idempotent)", got, want)
	}
	if err := s.Verify(); err != nil {
		t.Fatalf("Verify() failed: %v", err)
	}
}

func TestSet_RemoveNonExisting(t *testing.T) {
	s := NewSet[uint32](4, OrderedComparator[uint32]{})
	s.Insert(1)
	s.Insert(2)
	s.Remove(99)
	if got, want := s.Len(), 2; got != want {
		t.Fatalf("Len() = %d, want %d", got, want)
	}
	if err := s.Verify(); err != nil {
		t.Fatalf("Verify() failed: %v", err)
	}
}

func TestSet_LoadTest(t *testing.T) {
	for _, width := range []int{2, 4, 8, 16} {
		t.Run(fmt.Sprintf("set, capacity %d, keys %d", width, numSetKeys), func(t *testing.T) {
			s := NewSet[uint32](width, OrderedComparator[uint32]{})
			data := make([]uint32, numSetKeys)
			for i := range data {
				data[i] = uint32(rand.Intn(10 * numSetKeys))
			}

			present := map[uint32]bool{}
			for _, key := range data {
				s.Insert(key)
				present[key] = true
				if err := s.Verify(); err != nil {
					t.Fatalf("Verify() failed after inserting %d: %v", key, err)
				}
			}

			var want []uint32
			for key := range present {
				want = append(want, key)
			}
			sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })
			if got := collectSet(s); !slices.Equal(got, want) {
				t.Fatalf("set = %v, want %v", got, want)
			}

			rand.Shuffle(len(data), func(i, j int) { data[i], data[j] = data[j], data[i] })
			for _, key := range data {
				s.Remove(key)
				delete(present, key)
				if err := s.Verify(); err != nil {
					t.Fatalf("Verify() failed after removing %d: %v", key, err)
				}
			}
			if got, want := s.Len(), 0; got != want {
				t.Fatalf("Len() = %d, want %d", got, want)
			}
		})
	}
}
