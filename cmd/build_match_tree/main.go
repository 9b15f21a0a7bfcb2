// Build and solve the match tree of one random match, and describe it.
package main

import (
	"expvar"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	_ "net/http/pprof"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/timpalpant/hearthnash"
	"github.com/timpalpant/hearthnash/formats"
	"github.com/timpalpant/hearthnash/matrixgame"
	"github.com/timpalpant/hearthnash/metrics"
)

func main() {
	formatName := flag.String("format", "Shield Phase Conquest BO3", "Name of the format to play")
	metaType := flag.Int("meta_type", int(metrics.PureRandom), "Type of random meta to draw winrates from")
	seed := flag.Int64("seed", 123, "Random seed")
	verify := flag.Bool("verify", false, "Verify the equilibrium of every solved vertex")
	numPlayouts := flag.Int("num_playouts", 1, "Number of sampled playouts to print")
	crossCheckIters := flag.Int("cross_check_iters", 0,
		"If positive, check every solved decision against this many rounds of fictitious play")
	debugAddr := flag.String("debug_addr", "", "If set, serve pprof and expvar on this address")
	flag.Parse()

	if *debugAddr != "" {
		go http.ListenAndServe(*debugAddr, nil)
	}

	rules, ok := formats.Lookup(*formatName)
	if !ok {
		glog.Fatalf("Unknown format: %q", *formatName)
	}

	matches, err := metrics.SampleMatches(1, rules.DecksPerPlayer, metrics.MetaType(*metaType), *seed)
	if err != nil {
		glog.Fatal(err)
	}
	match := matches[0]

	evaluator := hearthnash.Evaluator{Verify: *verify}
	tree, err := evaluator.Evaluate(match.StartingDecks(), rules, match.Meta)
	if err != nil {
		glog.Fatal(err)
	}

	fmt.Printf("Match %v: %v\n", match.ID, rules)
	for r, row := range match.Meta.Winrates() {
		fmt.Printf("  %2d: %.3f\n", r, row)
	}

	fmt.Printf("%d vertices (%v memo hits), %d paths to an outcome.\n",
		tree.Len(), expvar.Get("vertices_built/memo_hits"), tree.CountOutcomePaths())
	for _, kind := range []hearthnash.Kind{hearthnash.Protect, hearthnash.Ban, hearthnash.DeckChoice, hearthnash.Game, hearthnash.Outcome} {
		fmt.Printf("  %-10v %d\n", kind, tree.CountKind(kind))
	}

	vp := tree.VictoryProbabilities()
	fmt.Printf("Victory probabilities: %.4f vs %.4f\n", vp[hearthnash.Player0], vp[hearthnash.Player1])

	lengths, err := metrics.MatchLengthDistribution(tree)
	if err != nil {
		glog.Fatal(err)
	}
	fmt.Printf("Match length distribution: %.4f\n", lengths)

	rng := rand.New(rand.NewSource(*seed))
	if *crossCheckIters > 0 {
		n, err := crossCheck(tree, *crossCheckIters, rng)
		if err != nil {
			glog.Fatal(err)
		}
		fmt.Printf("Cross-checked %d decisions with fictitious play.\n", n)
	}

	for i := 0; i < *numPlayouts; i++ {
		fmt.Printf("Playout %d:\n", i)
		for _, idx := range tree.SamplePath(rng) {
			fmt.Printf("  %v\n", tree.Vertex(idx))
		}
	}
}

// crossCheck checks the value of every decision with more than one choice
// against fictitious play, and returns the number of decisions checked.
func crossCheck(tree *hearthnash.Tree, nIter int, rng *rand.Rand) (int, error) {
	n := 0
	for i, v := range tree.Vertices() {
		if !v.Kind.IsDecision() || v.NumChoices(hearthnash.Player0)*v.NumChoices(hearthnash.Player1) == 1 {
			continue
		}

		payoffs, solution, err := tree.Game(i)
		if err != nil {
			return n, err
		}

		if err := matrixgame.CrossCheck(payoffs, solution, nIter, rng); err != nil {
			return n, errors.Wrapf(err, "cross-checking %v", &v)
		}
		n++
	}

	return n, nil
}
