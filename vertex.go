package hearthnash

import (
	"fmt"

	"github.com/timpalpant/hearthnash/decks"
)

// Kind represents the stage of the match at a given vertex.
type Kind uint8

const (
	InvalidKind Kind = iota
	// Root wraps the whole match and has exactly one child.
	Root
	// Protect is the simultaneous choice of which of their own decks
	// each player protects from bans.
	Protect
	// Ban is the simultaneous choice of which of the opponent's decks
	// each player bans.
	Ban
	// DeckChoice is the simultaneous choice of the deck to play next.
	DeckChoice
	// Game is a single game between two chosen decks, decided by chance.
	Game
	// Outcome is the end of the match.
	Outcome
)

var kindStr = [...]string{
	"Invalid",
	"Root",
	"Protect",
	"Ban",
	"DeckChoice",
	"Game",
	"Outcome",
}

func (k Kind) String() string {
	return kindStr[k]
}

// IsDecision returns whether vertices of this kind are solved as a
// simultaneous-choice matrix game.
func (k Kind) IsDecision() bool {
	return k == Protect || k == Ban || k == DeckChoice
}

// Vertex is one state of the match in the extensive-form match tree.
//
// Which fields are meaningful depends on Kind. Fields that do not apply
// to a Kind hold their zero value, or NoPlayer for players.
type Vertex struct {
	Kind Kind
	// Number of games won so far by each player.
	Wins [2]int
	// Decks each player may still play (or protect, or have banned).
	DecksRemaining [2]decks.Set

	// Ban: decks each player protected from the opponent's bans.
	DecksProtected [2]decks.Set

	// DeckChoice: the decks played in the previous game, if there was one,
	// and who won it.
	PreviousDecks      [2]int
	HasPreviousDecks   bool
	PreviousGameWinner Player

	// Game: the deck each player is playing.
	CurrentDecks [2]int

	// Outcome: the winner of the match.
	Winner Player

	// Children are arena indices of the possible next states. For decision
	// vertices, the child for player 0's choice i and player 1's choice j is
	// Children[i*len(Strategies[1])+j]. For Game vertices, Children[p] is the
	// state after player p wins the game.
	Children []int
	// Strategies is the equilibrium mixed strategy of each player at a
	// decision vertex, over the same choice order as Children.
	Strategies [2][]float64
	// VictoryProbabilities is each player's probability of winning the match
	// from this state, assuming equilibrium play from here on.
	VictoryProbabilities [2]float64
}

// stateKey identifies vertices that represent the same state of the match.
type stateKey struct {
	kind               Kind
	wins               [2]int
	decksRemaining     [2]decks.Set
	decksProtected     [2]decks.Set
	previousDecks      [2]int
	hasPreviousDecks   bool
	previousGameWinner Player
	currentDecks       [2]int
	winner             Player
}

func (v *Vertex) key() stateKey {
	return stateKey{
		kind:               v.Kind,
		wins:               v.Wins,
		decksRemaining:     v.DecksRemaining,
		decksProtected:     v.DecksProtected,
		previousDecks:      v.PreviousDecks,
		hasPreviousDecks:   v.HasPreviousDecks,
		previousGameWinner: v.PreviousGameWinner,
		currentDecks:       v.CurrentDecks,
		winner:             v.Winner,
	}
}

// NumChoices returns the number of choices available to player p at a
// decision vertex.
func (v *Vertex) NumChoices(p Player) int {
	return len(v.Strategies[p])
}

// String implements fmt.Stringer.
func (v *Vertex) String() string {
	switch v.Kind {
	case Ban:
		return fmt.Sprintf("%v at %d-%d. Remaining: %v vs %v. Protected: %v vs %v",
			v.Kind, v.Wins[Player0], v.Wins[Player1], v.DecksRemaining[Player0], v.DecksRemaining[Player1],
			v.DecksProtected[Player0], v.DecksProtected[Player1])
	case DeckChoice:
		if v.HasPreviousDecks {
			return fmt.Sprintf("%v at %d-%d. Remaining: %v vs %v. Previous: %d vs %d, won by %v",
				v.Kind, v.Wins[Player0], v.Wins[Player1], v.DecksRemaining[Player0], v.DecksRemaining[Player1],
				v.PreviousDecks[Player0], v.PreviousDecks[Player1], v.PreviousGameWinner)
		}
	case Game:
		return fmt.Sprintf("%v at %d-%d. Playing: %d vs %d. Remaining: %v vs %v",
			v.Kind, v.Wins[Player0], v.Wins[Player1], v.CurrentDecks[Player0], v.CurrentDecks[Player1],
			v.DecksRemaining[Player0], v.DecksRemaining[Player1])
	case Outcome:
		return fmt.Sprintf("%v at %d-%d. %v wins", v.Kind, v.Wins[Player0], v.Wins[Player1], v.Winner)
	}

	return fmt.Sprintf("%v at %d-%d. Remaining: %v vs %v",
		v.Kind, v.Wins[Player0], v.Wins[Player1], v.DecksRemaining[Player0], v.DecksRemaining[Player1])
}
