package metrics

import (
	"math"
	"testing"

	"github.com/timpalpant/hearthnash"
)

func TestSkillSensitivity_EvenOneGame(t *testing.T) {
	tree, err := hearthnash.Evaluate([][]int{{0}, {1}}, oneGame, evenMeta(t, 2))
	if err != nil {
		t.Fatal(err)
	}

	wide, err := SkillSensitivityWide{}.MeasureMatch(tree)
	if err != nil {
		t.Fatal(err)
	}

	tall, err := SkillSensitivityTall{}.MeasureMatch(tree)
	if err != nil {
		t.Fatal(err)
	}

	if len(wide) != len(Epsilons) || len(tall) != len(Epsilons) {
		t.Fatalf("expected %d points, got %d and %d", len(Epsilons), len(wide), len(tall))
	}

	// With a single game, the advantage in the one matchup played is the
	// advantage in the match.
	for i, eps := range Epsilons {
		if wide[i].X != eps || math.Abs(wide[i].Y-eps) > 1e-12 {
			t.Errorf("wide: expected (%v, %v), got %v", eps, eps, wide[i])
		}

		if tall[i].X != eps || tall[i].Y <= 0 || math.Abs(tall[i].Y-eps) > 1e-12 {
			t.Errorf("tall: expected (%v, %v), got %v", eps, eps, tall[i])
		}
	}
}

func TestSkillSensitivity_SampledMatches(t *testing.T) {
	epsilons := []float64{0.01, 0.16}
	for seed := int64(0); seed < 3; seed++ {
		tree := sampleTree(t, conquestBO3, seed)
		for _, metric := range []Metric{
			SkillSensitivityWide{Epsilons: epsilons},
			SkillSensitivityTall{Epsilons: epsilons},
		} {
			series, err := metric.MeasureMatch(tree)
			if err != nil {
				t.Fatal(err)
			}

			if len(series) != len(epsilons) {
				t.Fatalf("%v: expected %d points, got %d", metric.Info().Title, len(epsilons), len(series))
			}

			for i, pt := range series {
				if pt.X != epsilons[i] || math.IsNaN(pt.Y) || math.Abs(pt.Y) > 1 {
					t.Errorf("%v: unexpected point %v", metric.Info().Title, pt)
				}
			}
		}
	}
}

func TestSkillSensitivity_VerifiedEvaluator(t *testing.T) {
	epsilons := []float64{0.02}
	tree := sampleTree(t, conquestBO3, 7)
	testCases := []struct {
		plain, verified Metric
	}{
		{
			SkillSensitivityWide{Epsilons: epsilons},
			SkillSensitivityWide{Epsilons: epsilons, Evaluator: hearthnash.Evaluator{Verify: true}},
		},
		{
			SkillSensitivityTall{Epsilons: epsilons},
			SkillSensitivityTall{Epsilons: epsilons, Evaluator: hearthnash.Evaluator{Verify: true}},
		},
	}

	for _, tc := range testCases {
		want, err := tc.plain.MeasureMatch(tree)
		if err != nil {
			t.Fatal(err)
		}

		got, err := tc.verified.MeasureMatch(tree)
		if err != nil {
			t.Fatalf("%v: perturbed match failed verification: %v", tc.verified.Info().Title, err)
		}

		if len(got) != len(want) || math.Abs(got[0].Y-want[0].Y) > 1e-12 {
			t.Errorf("%v: verified evaluation gave %v, expected %v", tc.verified.Info().Title, got, want)
		}
	}
}

func TestWidePerturbation(t *testing.T) {
	winrates := [][]float64{
		{0.5, 0.99},
		{0.01, 0.5},
	}

	perturbed := widePerturbation(winrates, 0.02)
	want := [][]float64{
		{0.5, 0.99, 0.52, 1},
		{0.01, 0.5, 0.03, 0.52},
		{0.48, 0.97, 0.5, 0.99},
		{0, 0.48, 0.01, 0.5},
	}
	checkMatrix(t, perturbed, want)

	if _, err := hearthnash.NewMetaModel(perturbed, nil); err != nil {
		t.Errorf("perturbed winrates are not a valid meta: %v", err)
	}
}

func TestTallPerturbation(t *testing.T) {
	winrates := [][]float64{
		{0.5, 0.7},
		{0.3, 0.5},
	}

	// Boost player 1's mirrored copy of deck 0.
	perturbed := tallPerturbation(winrates, 0.1, 2)
	want := [][]float64{
		{0.5, 0.7, 0.4, 0.7},
		{0.3, 0.5, 0.2, 0.5},
		{0.6, 0.8, 0.5, 0.8},
		{0.3, 0.5, 0.2, 0.5},
	}
	checkMatrix(t, perturbed, want)

	if _, err := hearthnash.NewMetaModel(perturbed, nil); err != nil {
		t.Errorf("perturbed winrates are not a valid meta: %v", err)
	}
}

func checkMatrix(t *testing.T, got, want [][]float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(got))
	}

	for r := range want {
		for c := range want[r] {
			if math.Abs(got[r][c]-want[r][c]) > 1e-12 {
				t.Errorf("[%d][%d]: expected %v, got %v", r, c, want[r][c], got[r][c])
			}
		}
	}
}
