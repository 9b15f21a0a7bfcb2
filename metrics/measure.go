package metrics

import (
	"context"
	"runtime"
	"time"

	"github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/timpalpant/hearthnash"
)

// Results is the average of a metric over a set of matches.
type Results struct {
	ID         uuid.UUID
	Info       Info
	Rules      hearthnash.FormatRules
	MetaType   MetaType
	NumMatches int
	Points     Series
}

// MeasureOptions controls how Measure evaluates matches.
type MeasureOptions struct {
	// Number of matches measured in parallel. Defaults to GOMAXPROCS.
	Workers int
	// Cache of evaluated trees. If nil, every match is evaluated with the
	// default Evaluator and then discarded.
	Cache *TreeCache
}

// Measure measures the metric on every match under the given rules, and
// averages the results. All matches must be sampled from the same type of
// meta, which is recorded in the Results.
func Measure(ctx context.Context, metric Metric, rules hearthnash.FormatRules, matches []Match, opts MeasureOptions) (*Results, error) {
	if len(matches) == 0 {
		return nil, errors.New("no matches to measure")
	}

	metaType := MetaType(matches[0].Meta.MetaType())
	for _, m := range matches[1:] {
		if mt := MetaType(m.Meta.MetaType()); mt != metaType {
			return nil, errors.Errorf("match %v has meta type %v, expected %v", m.ID, mt, metaType)
		}
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	info := metric.Info()
	glog.Infof("Measuring %v over %d matches of %v with %d workers", info.Title, len(matches), rules, workers)
	start := time.Now()

	measurements := make([]Series, len(matches))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range matches {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			tree, err := evaluate(matches[i], rules, opts.Cache)
			if err != nil {
				return errors.Wrapf(err, "evaluating match %v", matches[i].ID)
			}

			measurements[i], err = metric.MeasureMatch(tree)
			return errors.Wrapf(err, "measuring %v on match %v", info.Title, matches[i].ID)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	points, err := Average(measurements)
	if err != nil {
		return nil, err
	}

	glog.V(1).Infof("Measured %v on %v in %v", info.Title, rules, time.Since(start))
	return &Results{
		ID:         uuid.New(),
		Info:       info,
		Rules:      rules,
		MetaType:   metaType,
		NumMatches: len(matches),
		Points:     points,
	}, nil
}

func evaluate(m Match, rules hearthnash.FormatRules, cache *TreeCache) (*hearthnash.Tree, error) {
	if cache != nil {
		return cache.Get(m, rules)
	}

	return hearthnash.Evaluate(m.StartingDecks(), rules, m.Meta)
}
