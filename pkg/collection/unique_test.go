package collection

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type entry struct {
	Key int
	V   string
}

func byKey(e entry) int { return e.Key }

func uniqueItems(t *testing.T, u *UniqueEditor[entry, int]) []entry {
	t.Helper()
	got, err := u.Items(context.Background())
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	return got
}

func TestUniqueLastWriteWins(t *testing.T) {
	u := NewUnique(Static(entry{1, "a"}), byKey)
	u.Add(entry{1, "b"})

	if diff := cmp.Diff([]entry{{1, "b"}}, uniqueItems(t, u)); diff != "" {
		t.Fatalf("Items mismatch (-want +got):\n%s", diff)
	}
}

func TestUniqueWinnerKeepsItsPosition(t *testing.T) {
	u := NewUnique(Static(entry{1, "a"}, entry{2, "b"}, entry{3, "c"}), byKey)
	u.Add(entry{1, "z"})

	want := []entry{{2, "b"}, {3, "c"}, {1, "z"}}
	if diff := cmp.Diff(want, uniqueItems(t, u)); diff != "" {
		t.Fatalf("Items mismatch (-want +got):\n%s", diff)
	}
}

func TestUniqueDuplicateBase(t *testing.T) {
	u := NewUnique(Static(entry{1, "a"}, entry{2, "b"}, entry{1, "c"}), byKey)

	want := []entry{{2, "b"}, {1, "c"}}
	if diff := cmp.Diff(want, uniqueItems(t, u)); diff != "" {
		t.Fatalf("Items mismatch (-want +got):\n%s", diff)
	}
}

func TestUniqueSetOverridesInheritedItem(t *testing.T) {
	u := NewUnique(Static(entry{1, "a"}, entry{2, "b"}), byKey)
	u.Set(1, entry{1, "override"})

	want := []entry{{2, "b"}, {1, "override"}}
	if diff := cmp.Diff(want, uniqueItems(t, u)); diff != "" {
		t.Fatalf("Items mismatch (-want +got):\n%s", diff)
	}

	actions := u.Actions()
	if len(actions) != 2 || actions[0].Kind != ActionRemove || actions[1].Kind != ActionAdd {
		t.Fatalf("Set should log remove then add, got %+v", actions)
	}
}

func TestUniqueGetAndDelete(t *testing.T) {
	ctx := context.Background()
	u := NewUnique(Static(entry{1, "a"}, entry{2, "b"}), byKey)

	got, ok, err := u.Get(ctx, 2)
	if err != nil || !ok || got.V != "b" {
		t.Fatalf("Get(2) = %+v, %v, %v", got, ok, err)
	}

	u.Delete(2)
	if _, ok, _ := u.Get(ctx, 2); ok {
		t.Fatal("Get(2) should miss after Delete")
	}
	if u.Key(entry{Key: 9}) != 9 {
		t.Fatal("Key should apply the selector")
	}
}

func TestDedupeKeepsLastOccurrence(t *testing.T) {
	got := Dedupe([]string{"a", "b", "a", "c", "b"}, func(s string) string { return s })
	if diff := cmp.Diff([]string{"a", "c", "b"}, got); diff != "" {
		t.Fatalf("Dedupe mismatch (-want +got):\n%s", diff)
	}
}
