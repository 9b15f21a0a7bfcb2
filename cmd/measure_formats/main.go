// Measure every metric on every format over a set of random matches.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/pterm/pterm"

	"github.com/timpalpant/hearthnash"
	"github.com/timpalpant/hearthnash/formats"
	"github.com/timpalpant/hearthnash/internal/config"
	"github.com/timpalpant/hearthnash/metrics"
)

// allMetrics returns every metric by name, solving any matches they
// evaluate with the given Evaluator.
func allMetrics(evaluator hearthnash.Evaluator) map[string]metrics.Metric {
	return map[string]metrics.Metric{
		"match_length":           metrics.MatchLength{},
		"skill_sensitivity_wide": metrics.SkillSensitivityWide{Evaluator: evaluator},
		"skill_sensitivity_tall": metrics.SkillSensitivityTall{Evaluator: evaluator},
	}
}

func main() {
	configPath := flag.String("config", "", "Optional YAML file with the run configuration")
	debugAddr := flag.String("debug_addr", "", "If set, serve pprof and expvar on this address")
	flag.Parse()

	if *debugAddr != "" {
		go http.ListenAndServe(*debugAddr, nil)
	}

	cfg, err := config.Setup(*configPath)
	if err != nil {
		glog.Fatal(err)
	}

	selectedFormats, err := selectFormats(cfg.Formats)
	if err != nil {
		glog.Fatal(err)
	}

	evaluator := hearthnash.Evaluator{Verify: cfg.Verify}
	selectedMetrics, err := selectMetrics(cfg.Metrics, evaluator)
	if err != nil {
		glog.Fatal(err)
	}

	cache, err := metrics.NewTreeCache(cfg.CacheSize, evaluator)
	if err != nil {
		glog.Fatal(err)
	}

	ctx := context.Background()
	metaType := metrics.MetaType(cfg.MetaType)
	var results []*metrics.Results
	for _, rules := range selectedFormats {
		matches, err := metrics.SampleMatches(cfg.NumMatches, rules.DecksPerPlayer, metaType, cfg.Seed)
		if err != nil {
			glog.Fatal(err)
		}

		for _, metric := range selectedMetrics {
			r, err := metrics.Measure(ctx, metric, rules, matches, metrics.MeasureOptions{
				Workers: cfg.Workers,
				Cache:   cache,
			})
			if err != nil {
				glog.Fatal(err)
			}

			results = append(results, r)
		}
	}

	for _, metric := range selectedMetrics {
		if err := render(metric.Info(), metaType, results); err != nil {
			glog.Fatal(err)
		}
	}
}

func selectFormats(names []string) ([]hearthnash.FormatRules, error) {
	if len(names) == 0 {
		return formats.Core(), nil
	}

	result := make([]hearthnash.FormatRules, 0, len(names))
	for _, name := range names {
		rules, ok := formats.Lookup(name)
		if !ok {
			return nil, errors.Errorf("unknown format: %q", name)
		}

		result = append(result, rules)
	}

	return result, nil
}

func selectMetrics(names []string, evaluator hearthnash.Evaluator) ([]metrics.Metric, error) {
	available := allMetrics(evaluator)
	result := make([]metrics.Metric, 0, len(names))
	for _, name := range names {
		metric, ok := available[name]
		if !ok {
			return nil, errors.Errorf("unknown metric: %q", name)
		}

		result = append(result, metric)
	}

	return result, nil
}

// render prints one table per metric, with a row for each format and
// a column for each x value.
func render(info metrics.Info, metaType metrics.MetaType, results []*metrics.Results) error {
	var data pterm.TableData
	for _, r := range results {
		if r.Info != info {
			continue
		}

		if data == nil {
			header := []string{"Format"}
			for _, pt := range r.Points {
				header = append(header, fmt.Sprintf("%v", pt.X))
			}
			data = append(data, header)
		}

		row := []string{r.Rules.String()}
		for _, pt := range r.Points {
			row = append(row, fmt.Sprintf("%.4f", pt.Y))
		}
		data = append(data, row)
	}

	if data == nil {
		return nil
	}

	pterm.DefaultSection.Println(info.Title)
	pterm.Info.Printfln("%s by %s, %v metas", info.YAxis, info.XAxis, metaType)
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
