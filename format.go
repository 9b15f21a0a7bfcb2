package hearthnash

import (
	"fmt"

	"github.com/pkg/errors"
)

// FormatRules describes the structure of a match: the pre-match protect and
// ban phases, how many games must be won, and what happens to each player's
// decks after every game.
//
// FormatRules is a plain value. Construct it with NewFormatRules to validate
// it; the engine re-validates the rules it is given.
type FormatRules struct {
	Name string
	// RemoveWinnerDeck removes the deck that won a game from its owner's
	// remaining decks (Conquest).
	RemoveWinnerDeck bool
	// RemoveLoserDeck removes the deck that lost a game from its owner's
	// remaining decks (Last Hero Standing).
	RemoveLoserDeck bool
	// WinnerMaySwitch allows the winner of a game to choose a new deck for
	// the next game. Otherwise they must play the same deck again.
	WinnerMaySwitch bool
	// LoserMaySwitch allows the loser of a game to choose a new deck.
	LoserMaySwitch bool
	// Protects is the number of their own decks each player protects
	// from being banned.
	Protects int
	// Bans is the number of the opponent's decks each player bans.
	Bans int
	// GamesToWin is the number of game wins needed to win the match.
	GamesToWin int
	// DecksPerPlayer is the number of decks each player brings.
	DecksPerPlayer int
	// AllowExcessDecks permits formats in which players may still choose
	// between several decks for the deciding game. By default such formats
	// are rejected as almost certainly misconfigured.
	AllowExcessDecks bool
}

// NewFormatRules validates the given rules and returns them.
func NewFormatRules(rules FormatRules) (FormatRules, error) {
	if err := rules.Validate(); err != nil {
		return FormatRules{}, err
	}

	return rules, nil
}

// Validate checks that the rules describe a match that can always be
// played to completion.
func (f FormatRules) Validate() error {
	if f.GamesToWin <= 0 || f.DecksPerPlayer <= 0 || f.Protects < 0 || f.Bans < 0 {
		return errors.Wrapf(ErrConfiguration,
			"format %v has invalid games to win (%d), decks per player (%d), protects (%d) or bans (%d)",
			f, f.GamesToWin, f.DecksPerPlayer, f.Protects, f.Bans)
	}

	if f.Protects+f.Bans > f.DecksPerPlayer {
		return errors.Wrapf(ErrConfiguration,
			"format %v: %d decks per player cannot cover %d protects and %d bans",
			f, f.DecksPerPlayer, f.Protects, f.Bans)
	}

	// Each player may win or lose at most GamesToWin-1 games before the
	// deciding one, and must still have a deck left for it.
	maxEliminations := f.Bans
	if f.RemoveWinnerDeck {
		maxEliminations += f.GamesToWin - 1
	}
	if f.RemoveLoserDeck {
		maxEliminations += f.GamesToWin - 1
	}

	if maxEliminations >= f.DecksPerPlayer {
		return errors.Wrapf(ErrConfiguration,
			"format %v: %d decks per player may run out after %d eliminations",
			f, f.DecksPerPlayer, maxEliminations)
	}

	if !f.AllowExcessDecks && maxEliminations+1 != f.DecksPerPlayer {
		return errors.Wrapf(ErrConfiguration,
			"format %v has excess decks: players may choose between %d decks for the final game",
			f, f.DecksPerPlayer-maxEliminations)
	}

	return nil
}

// MaySwitch returns whether player p may choose a new deck, given the
// winner of the previous game.
func (f FormatRules) MaySwitch(p, previousGameWinner Player) bool {
	switch previousGameWinner {
	case NoPlayer:
		return true
	case p:
		return f.WinnerMaySwitch
	default:
		return f.LoserMaySwitch
	}
}

// MaxMatchLength is the largest number of games a match can last.
func (f FormatRules) MaxMatchLength() int {
	return 2*f.GamesToWin - 1
}

// String implements fmt.Stringer.
func (f FormatRules) String() string {
	if f.Name != "" {
		return f.Name
	}

	return fmt.Sprintf("%s%s %s%s - P%dB%d G%dD%d",
		b2s(f.RemoveWinnerDeck), b2s(f.RemoveLoserDeck),
		b2s(f.WinnerMaySwitch), b2s(f.LoserMaySwitch),
		f.Protects, f.Bans, f.GamesToWin, f.DecksPerPlayer)
}

func b2s(b bool) string {
	if b {
		return "T"
	}

	return "F"
}
