package metrics

import (
	"testing"

	"github.com/timpalpant/hearthnash"
)

func TestTreeCache(t *testing.T) {
	matches, err := SampleMatches(3, 3, PureRandom, 7)
	if err != nil {
		t.Fatal(err)
	}

	cache, err := NewTreeCache(2, hearthnash.Evaluator{Verify: true})
	if err != nil {
		t.Fatal(err)
	}

	first, err := cache.Get(matches[0], conquestBO3)
	if err != nil {
		t.Fatal(err)
	}

	again, err := cache.Get(matches[0], conquestBO3)
	if err != nil {
		t.Fatal(err)
	}

	if first != again {
		t.Error("cached tree was evaluated again")
	}

	// The same match under other rules is a different tree.
	lhs := conquestBO3
	lhs.Name = "Last Hero Standing BO3"
	lhs.RemoveWinnerDeck, lhs.RemoveLoserDeck, lhs.WinnerMaySwitch = false, true, false
	other, err := cache.Get(matches[0], lhs)
	if err != nil {
		t.Fatal(err)
	}

	if other == first || other.Rules != lhs {
		t.Errorf("expected a tree for %v, got one for %v", lhs, other.Rules)
	}

	if cache.Len() != 2 {
		t.Errorf("expected 2 cached trees, got %d", cache.Len())
	}

	// Evicts the least recently used tree.
	if _, err := cache.Get(matches[1], conquestBO3); err != nil {
		t.Fatal(err)
	}

	if cache.Len() != 2 {
		t.Errorf("expected the cache to stay at 2 trees, got %d", cache.Len())
	}
}

func TestTreeCache_Error(t *testing.T) {
	matches, err := SampleMatches(1, 2, PureRandom, 7)
	if err != nil {
		t.Fatal(err)
	}

	cache, err := NewTreeCache(4, hearthnash.Evaluator{})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := cache.Get(matches[0], conquestBO3); err == nil {
		t.Error("expected an error for a match with too few decks")
	}

	if cache.Len() != 0 {
		t.Errorf("a failed evaluation was cached")
	}
}

func TestNewTreeCache_Invalid(t *testing.T) {
	if _, err := NewTreeCache(0, hearthnash.Evaluator{}); err == nil {
		t.Error("expected an error for an empty cache")
	}
}
