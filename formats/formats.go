// Package formats provides named tournament formats.
package formats

import (
	"bytes"
	_ "embed"
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/timpalpant/hearthnash"
)

//go:embed presets.yaml
var presetsYAML []byte

var core = mustParse(presetsYAML)

// presetFile is the top-level structure of a presets file.
type presetFile struct {
	Formats []preset `yaml:"formats"`
}

// preset is a single format in a presets file. Omitted fields are zero.
type preset struct {
	Name             string `yaml:"name"`
	RemoveWinnerDeck bool   `yaml:"remove_winner_deck"`
	RemoveLoserDeck  bool   `yaml:"remove_loser_deck"`
	WinnerMaySwitch  bool   `yaml:"winner_may_switch"`
	LoserMaySwitch   bool   `yaml:"loser_may_switch"`
	Protects         int    `yaml:"protects"`
	Bans             int    `yaml:"bans"`
	GamesToWin       int    `yaml:"games_to_win"`
	DecksPerPlayer   int    `yaml:"decks_per_player"`
	AllowExcessDecks bool   `yaml:"allow_excess_decks"`
}

func (p preset) rules() hearthnash.FormatRules {
	return hearthnash.FormatRules{
		Name:             p.Name,
		RemoveWinnerDeck: p.RemoveWinnerDeck,
		RemoveLoserDeck:  p.RemoveLoserDeck,
		WinnerMaySwitch:  p.WinnerMaySwitch,
		LoserMaySwitch:   p.LoserMaySwitch,
		Protects:         p.Protects,
		Bans:             p.Bans,
		GamesToWin:       p.GamesToWin,
		DecksPerPlayer:   p.DecksPerPlayer,
		AllowExcessDecks: p.AllowExcessDecks,
	}
}

// Parse reads a YAML table of formats and validates each of them.
// Formats are returned in the order they appear.
func Parse(r io.Reader) ([]hearthnash.FormatRules, error) {
	var pf presetFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&pf); err != nil {
		return nil, errors.Wrap(err, "parse formats YAML")
	}

	seen := make(map[string]bool, len(pf.Formats))
	result := make([]hearthnash.FormatRules, 0, len(pf.Formats))
	for i, p := range pf.Formats {
		if p.Name == "" {
			return nil, errors.Errorf("format %d has no name", i)
		}

		if seen[p.Name] {
			return nil, errors.Errorf("format %q is defined more than once", p.Name)
		}
		seen[p.Name] = true

		rules, err := hearthnash.NewFormatRules(p.rules())
		if err != nil {
			return nil, err
		}

		result = append(result, rules)
	}

	return result, nil
}

func mustParse(data []byte) []hearthnash.FormatRules {
	result, err := Parse(bytes.NewReader(data))
	if err != nil {
		panic(err)
	}

	return result
}

// Core returns the built-in tournament formats.
func Core() []hearthnash.FormatRules {
	return append([]hearthnash.FormatRules(nil), core...)
}

// Lookup returns the built-in format with the given name.
func Lookup(name string) (hearthnash.FormatRules, bool) {
	for _, f := range core {
		if f.Name == name {
			return f, true
		}
	}

	return hearthnash.FormatRules{}, false
}
