package metrics

import (
	"math"
	"testing"

	"github.com/timpalpant/hearthnash"
)

func TestMatchLength_OneGame(t *testing.T) {
	tree, err := hearthnash.Evaluate([][]int{{0}, {1}}, oneGame, evenMeta(t, 2))
	if err != nil {
		t.Fatal(err)
	}

	series, err := MatchLength{}.MeasureMatch(tree)
	if err != nil {
		t.Fatal(err)
	}

	want := Series{{X: 0, Y: 0}, {X: 1, Y: 1}}
	if len(series) != len(want) || series[0] != want[0] || series[1] != want[1] {
		t.Errorf("expected %v, got %v", want, series)
	}
}

func TestMatchLength_EvenConquest(t *testing.T) {
	rules := hearthnash.FormatRules{
		RemoveWinnerDeck: true,
		WinnerMaySwitch:  true,
		LoserMaySwitch:   true,
		GamesToWin:       2,
		DecksPerPlayer:   2,
	}
	tree, err := hearthnash.Evaluate([][]int{{0, 1}, {2, 3}}, rules, evenMeta(t, 4))
	if err != nil {
		t.Fatal(err)
	}

	distribution, err := MatchLengthDistribution(tree)
	if err != nil {
		t.Fatal(err)
	}

	want := []float64{0, 0, 0.5, 0.5}
	for i := range want {
		if math.Abs(distribution[i]-want[i]) > 1e-12 {
			t.Errorf("expected %v, got %v", want, distribution)
			break
		}
	}
}

func TestMatchLength_SampledMatches(t *testing.T) {
	for _, rules := range []hearthnash.FormatRules{oneGame, conquestBO3, scenarioFormat()} {
		for seed := int64(0); seed < 5; seed++ {
			tree := sampleTree(t, rules, seed)
			distribution, err := MatchLengthDistribution(tree)
			if err != nil {
				t.Fatal(err)
			}

			if len(distribution) != 2*rules.GamesToWin {
				t.Fatalf("%v: expected %d lengths, got %d", rules, 2*rules.GamesToWin, len(distribution))
			}

			total := 0.0
			for length, p := range distribution {
				total += p
				if length < rules.GamesToWin && p != 0 {
					t.Errorf("%v: match of length %d has probability %v", rules, length, p)
				}
			}

			if math.Abs(total-1) > 1e-8 {
				t.Errorf("%v: distribution sums to %v", rules, total)
			}
		}
	}
}

func scenarioFormat() hearthnash.FormatRules {
	return hearthnash.FormatRules{
		RemoveWinnerDeck: true,
		WinnerMaySwitch:  true,
		LoserMaySwitch:   true,
		Protects:         1,
		Bans:             1,
		GamesToWin:       2,
		DecksPerPlayer:   3,
	}
}

func BenchmarkMatchLength(b *testing.B) {
	tree := sampleTree(b, conquestBO3, 1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := MatchLengthDistribution(tree); err != nil {
			b.Fatal(err)
		}
	}
}
