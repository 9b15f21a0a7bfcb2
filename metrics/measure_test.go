package metrics

import (
	"context"
	"math"
	"testing"

	"github.com/pkg/errors"

	"github.com/timpalpant/hearthnash"
)

func TestMeasure(t *testing.T) {
	matches, err := SampleMatches(8, conquestBO3.DecksPerPlayer, PureRandom, 3)
	if err != nil {
		t.Fatal(err)
	}

	cache, err := NewTreeCache(len(matches), hearthnash.Evaluator{})
	if err != nil {
		t.Fatal(err)
	}

	opts := MeasureOptions{Workers: 3, Cache: cache}
	results, err := Measure(context.Background(), MatchLength{}, conquestBO3, matches, opts)
	if err != nil {
		t.Fatal(err)
	}

	if results.NumMatches != 8 || results.MetaType != PureRandom || results.Rules != conquestBO3 {
		t.Errorf("unexpected results metadata: %+v", results)
	}

	if results.Info != (MatchLength{}).Info() {
		t.Errorf("unexpected info: %+v", results.Info)
	}

	total := 0.0
	for _, pt := range results.Points {
		total += pt.Y
	}
	if math.Abs(total-1) > 1e-8 {
		t.Errorf("average match length distribution sums to %v", total)
	}

	// The average equals the mean of the individual measurements.
	var measurements []Series
	for _, m := range matches {
		tree, err := cache.Get(m, conquestBO3)
		if err != nil {
			t.Fatal(err)
		}

		series, err := MatchLength{}.MeasureMatch(tree)
		if err != nil {
			t.Fatal(err)
		}
		measurements = append(measurements, series)
	}

	want, err := Average(measurements)
	if err != nil {
		t.Fatal(err)
	}

	for i := range want {
		if math.Abs(want[i].Y-results.Points[i].Y) > 1e-12 {
			t.Errorf("point %d: expected %v, got %v", i, want[i], results.Points[i])
		}
	}
}

func TestMeasure_WithoutCache(t *testing.T) {
	matches, err := SampleMatches(2, oneGame.DecksPerPlayer, PureRandom, 5)
	if err != nil {
		t.Fatal(err)
	}

	results, err := Measure(context.Background(), SkillSensitivityWide{}, oneGame, matches, MeasureOptions{})
	if err != nil {
		t.Fatal(err)
	}

	if len(results.Points) != len(Epsilons) {
		t.Errorf("expected %d points, got %d", len(Epsilons), len(results.Points))
	}
}

func TestMeasure_Errors(t *testing.T) {
	if _, err := Measure(context.Background(), MatchLength{}, conquestBO3, nil, MeasureOptions{}); err == nil {
		t.Error("expected an error for no matches")
	}

	matches, err := SampleMatches(4, 2, PureRandom, 5)
	if err != nil {
		t.Fatal(err)
	}

	_, err = Measure(context.Background(), MatchLength{}, conquestBO3, matches, MeasureOptions{Workers: 2})
	if errors.Cause(err) != hearthnash.ErrEvaluationPrecondition {
		t.Errorf("expected a precondition error, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	matches, err = SampleMatches(4, conquestBO3.DecksPerPlayer, PureRandom, 5)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := Measure(ctx, MatchLength{}, conquestBO3, matches, MeasureOptions{}); errors.Cause(err) != context.Canceled {
		t.Errorf("expected cancellation, got %v", err)
	}
}

func TestMeasure_MixedMetaTypes(t *testing.T) {
	matches, err := SampleMatches(3, conquestBO3.DecksPerPlayer, PureRandom, 5)
	if err != nil {
		t.Fatal(err)
	}

	matches[2].Meta = matches[2].Meta.WithMetaType(int(LegendRank10))
	results, err := Measure(context.Background(), MatchLength{}, conquestBO3, matches, MeasureOptions{})
	if err == nil {
		t.Errorf("expected an error for mixed meta types, got %+v", results)
	}
}
