package decks

import (
	"reflect"
	"testing"
)

func TestNewSet(t *testing.T) {
	set := NewSet(3, 1, 70, 1)
	expected := []int{1, 3, 70}
	if !reflect.DeepEqual(set.AsSlice(), expected) {
		t.Errorf("got unexpected decks: %v, expected %v", set.AsSlice(), expected)
	}

	if set.Len() != 3 {
		t.Errorf("set has len %d, expected %d", set.Len(), 3)
	}
}

func TestIsEmpty(t *testing.T) {
	if !NewSet().IsEmpty() {
		t.Error("new set should be empty")
	}

	if NewSet(100).IsEmpty() {
		t.Error("set with a deck in the high word should not be empty")
	}
}

func TestContains(t *testing.T) {
	set := NewSet(0, 63, 64, 127)
	for _, deck := range []int{0, 63, 64, 127} {
		if !set.Contains(deck) {
			t.Errorf("set %v should contain %d", set, deck)
		}
	}

	for _, deck := range []int{1, 62, 65, 126} {
		if set.Contains(deck) {
			t.Errorf("set %v should not contain %d", set, deck)
		}
	}
}

func TestRemove(t *testing.T) {
	set := NewSet(1, 2, 3)
	set.Remove(2)
	if !reflect.DeepEqual(set.AsSlice(), []int{1, 3}) {
		t.Errorf("got unexpected decks after remove: %v", set)
	}
}

func TestRemove_Panic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic when removing non-existent deck")
		}
	}()

	set := NewSet(1)
	set.Remove(2)
}

func TestAdd_OutOfRangePanic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic when adding deck %d", MaxDecks)
		}
	}()

	var set Set
	set.Add(MaxDecks)
}

func TestWithout(t *testing.T) {
	set := NewSet(1, 2, 3)
	without := set.Without(2)
	if !reflect.DeepEqual(without.AsSlice(), []int{1, 3}) {
		t.Errorf("got unexpected decks: %v", without)
	}

	// The original is unchanged.
	if set.Len() != 3 {
		t.Errorf("Without modified the receiver: %v", set)
	}

	if set.Without(9) != set {
		t.Error("removing a missing deck should be a no-op")
	}
}

func TestUnionDifference(t *testing.T) {
	a := NewSet(1, 2, 3, 90)
	b := NewSet(2, 90, 100)
	if got := a.Union(b).AsSlice(); !reflect.DeepEqual(got, []int{1, 2, 3, 90, 100}) {
		t.Errorf("got unexpected union: %v", got)
	}

	if got := a.Difference(b).AsSlice(); !reflect.DeepEqual(got, []int{1, 3}) {
		t.Errorf("got unexpected difference: %v", got)
	}
}

func TestSubsets(t *testing.T) {
	set := NewSet(1, 2, 3)
	expected := []Set{NewSet(1, 2), NewSet(1, 3), NewSet(2, 3)}
	if got := set.Subsets(2); !reflect.DeepEqual(got, expected) {
		t.Errorf("got unexpected subsets: %v, expected %v", got, expected)
	}

	if got := set.Subsets(0); len(got) != 1 || !got[0].IsEmpty() {
		t.Errorf("expected only the empty subset, got %v", got)
	}

	if got := set.Subsets(4); len(got) != 0 {
		t.Errorf("expected no subsets larger than the set, got %v", got)
	}
}

func TestSubsets_Count(t *testing.T) {
	set := NewSet(0, 1, 2, 3, 4, 5)
	if n := len(set.Subsets(3)); n != 20 {
		t.Errorf("got %d subsets of size 3, expected %d", n, 20)
	}
}

func TestString(t *testing.T) {
	if s := NewSet(4, 0, 2).String(); s != "{0, 2, 4}" {
		t.Errorf("got unexpected string: %q", s)
	}
}
