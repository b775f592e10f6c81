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
	"testing"
)

const numSeqItems = 1000

func collectSequence[E any](s *Sequence[E]) []E {
	var out []E
	it := s.Iterator(0)
	for it.HasNext() {
		out = append(out, it.Next())
	}
	return out
}

func TestSequence_InsertAtEndKeepsOrder(t *testing.T) {
	s := NewSequence[int](4)
	for i := 0; i < 20; i++ {
		s.InsertItemAt(s.Len(), i)
	}
	if err := s.Verify(); err != nil {
		t.Fatalf("Verify() failed: %v", err)
	}
	if got, want := collectSequence(s), makeRange(20); !slices.Equal(got, want) {
		t.Fatalf("sequence = %v, want %v", got, want)
	}
}

func TestSequence_InsertAtFrontReversesOrder(t *testing.T) {
	s := NewSequence[int](4)
	for i := 0; i < 20; i++ {
		s.InsertItemAt(0, i)
	}
	if err := s.Verify(); err != nil {
		t.Fatalf("Verify() failed: %v", err)
	}
	want := makeRange(20)
	slices.Reverse(want)
	if got := collectSequence(s); !slices.Equal(got, want) {
		t.Fatalf("sequence = %v, want %v", got, want)
	}
}

func TestSequence_GetSetItemAt(t *testing.T) {
	s := NewSequence[int](4)
	for i := 0; i < 10; i++ {
		s.InsertItemAt(s.Len(), i)
	}
	s.SetItemAt(3, 99)
	if got, want := s.GetItemAt(3), 99; got != want {
		t.Fatalf("GetItemAt(3) = %d, want %d", got, want)
	}
	if err := s.Verify(); err != nil {
		t.Fatalf("Verify() failed: %v", err)
	}
}

func TestSequence_RemoveShiftsTail(t *testing.T) {
	s := NewSequence[int](4)
	for i := 0; i < 10; i++ {
		s.InsertItemAt(s.Len(), i)
	}
	removed := s.RemoveItemAt(3)
	if got, want := removed, 3; got != want {
		t.Fatalf("RemoveItemAt(3) = %d, want %d", got, want)
	}
	if err := s.Verify(); err != nil {
		t.Fatalf("Verify() failed: %v", err)
	}
	if got, want := collectSequence(s), []int{0, 1, 2, 4, 5, 6, 7, 8, 9}; !slices.Equal(got, want) {
		t.Fatalf("sequence = %v, want %v", got, want)
	}
}

func TestSequence_LoadTest(t *testing.T) {
	for _, width := range []int{2, 4, 8, 16} {
		t.Run(fmt.Sprintf("sequence, capacity %d, items %d", width, numSeqItems), func(t *testing.T) {
			s := NewSequence[int](width)
			for i := 0; i < numSeqItems; i++ {
				offset := rand.Intn(s.Len() + 1)
				s.InsertItemAt(offset, i)
				if err := s.Verify(); err != nil {
					t.Fatalf("Verify() failed after inserting at %d: %v", offset, err)
				}
			}
			if got, want := s.Len(), numSeqItems; got != want {
				t.Fatalf("Len() = %d, want %d", got, want)
			}

			for s.Len() > 0 {
				offset := rand.Intn(s.Len())
				s.RemoveItemAt(offset)
				if err := s.Verify(); err != nil {
					t.Fatalf("Verify() failed after removing at %d: %v", offset, err)
				}
			}
		})
	}
}

func TestSequence_InsertRemoveInterleavedPreservesOrder(t *testing.T) {
	s := NewSequence[int](4)
	var model []int
	for i := 0; i < 200; i++ {
		if len(model) == 0 || rand.Intn(3) != 0 {
			offset := rand.Intn(len(model) + 1)
			s.InsertItemAt(offset, i)
			model = append(model, 0)
			copy(model[offset+1:], model[offset:])
			model[offset] = i
		} else {
			offset := rand.Intn(len(model))
			s.RemoveItemAt(offset)
			model = append(model[:offset], model[offset+1:]...)
		}
		if err := s.Verify(); err != nil {
			t.Fatalf("Verify() failed at step %d: %v", i, err)
		}
	}
	if got := collectSequence(s); !slices.Equal(got, model) {
		t.Fatalf("sequence = %v, want %v", got, model)
	}
}

func makeRange(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
