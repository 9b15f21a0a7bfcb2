package main

import (
	"math/rand"
	"testing"

	"github.com/timpalpant/hearthnash"
	"github.com/timpalpant/hearthnash/formats"
	"github.com/timpalpant/hearthnash/metrics"
)

func TestCrossCheck(t *testing.T) {
	rules, ok := formats.Lookup("Conquest BO3")
	if !ok {
		t.Fatal("format not found")
	}

	matches, err := metrics.SampleMatches(1, rules.DecksPerPlayer, metrics.PureRandom, 11)
	if err != nil {
		t.Fatal(err)
	}

	tree, err := hearthnash.Evaluate(matches[0].StartingDecks(), rules, matches[0].Meta)
	if err != nil {
		t.Fatal(err)
	}

	n, err := crossCheck(tree, 500, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}

	if n == 0 {
		t.Error("no decisions were checked")
	}
}
