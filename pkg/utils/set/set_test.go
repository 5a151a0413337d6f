package set

import (
	"slices"
	"testing"
)

func TestInsertReportsNewMembers(t *testing.T) {
	s := New[string]()

	if !s.Insert("a") {
		t.Fatal("first insert of a should report true")
	}
	if s.Insert("a") {
		t.Fatal("second insert of a should report false")
	}
	if !s.Has("a") || s.Len() != 1 {
		t.Fatalf("unexpected set state: %v", s.Values())
	}
}

func TestFromSlice(t *testing.T) {
	s := FromSlice([]int{3, 1, 3, 2})

	got := s.Values()
	slices.Sort(got)

	if !slices.Equal(got, []int{1, 2, 3}) {
		t.Fatalf("Values() = %v, want [1 2 3]", got)
	}

	s.Delete(2)
	if s.Has(2) {
		t.Fatal("2 should have been deleted")
	}
}
