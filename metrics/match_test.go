package metrics

import (
	"testing"
)

func TestSampleMatches(t *testing.T) {
	matches, err := SampleMatches(10, 3, PureRandom, 42)
	if err != nil {
		t.Fatal(err)
	}

	if len(matches) != 10 {
		t.Fatalf("expected 10 matches, got %d", len(matches))
	}

	seen := make(map[string]bool)
	for _, m := range matches {
		if seen[m.ID.String()] {
			t.Errorf("duplicate match ID %v", m.ID)
		}
		seen[m.ID.String()] = true

		if m.Meta.N() != 6 {
			t.Errorf("expected a meta of 6 decks, got %d", m.Meta.N())
		}

		if MetaType(m.Meta.MetaType()) != PureRandom {
			t.Errorf("expected a %v meta, got %v", PureRandom, MetaType(m.Meta.MetaType()))
		}

		decks := m.StartingDecks()
		if len(decks) != 2 || len(decks[0]) != 3 || decks[0][0] != 0 || decks[1][0] != 3 || decks[1][2] != 5 {
			t.Errorf("unexpected starting decks: %v", decks)
		}
	}

	again, err := SampleMatches(10, 3, PureRandom, 42)
	if err != nil {
		t.Fatal(err)
	}

	for i := range matches {
		if matches[i].Meta.Winrate(0, 5) != again[i].Meta.Winrate(0, 5) {
			t.Errorf("match %d differs between samples with the same seed", i)
		}
	}
}

func TestSampleMatches_Invalid(t *testing.T) {
	if _, err := SampleMatches(0, 3, PureRandom, 1); err == nil {
		t.Error("expected an error for zero matches")
	}

	if _, err := SampleMatches(1, 0, PureRandom, 1); err == nil {
		t.Error("expected an error for zero decks")
	}

	if _, err := SampleMatches(1, 3, LegendRank10, 1); err == nil {
		t.Error("expected an error for an unsupported meta type")
	}
}
