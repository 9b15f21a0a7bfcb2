package metrics

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/timpalpant/hearthnash"
	"github.com/timpalpant/hearthnash/internal/metagen"
)

// MetaType identifies the distribution random metas are drawn from.
type MetaType = metagen.MetaType

const (
	PureRandom   = metagen.PureRandom
	LegendRank10 = metagen.LegendRank10
	Rank11To20   = metagen.Rank11To20
)

// Match is a simulated match: a meta, and the decks each player brings.
type Match struct {
	ID    uuid.UUID
	Meta  *hearthnash.MetaModel
	Decks [2][]int
}

// StartingDecks returns the decks of each player, in the form taken by
// hearthnash.Evaluate.
func (m Match) StartingDecks() [][]int {
	return [][]int{m.Decks[hearthnash.Player0], m.Decks[hearthnash.Player1]}
}

// SampleMatches generates n matches, each in its own random meta of
// 2*decksPerPlayer decks. Player 0 brings the first half of the decks
// and player 1 the second half.
func SampleMatches(n, decksPerPlayer int, metaType MetaType, seed int64) ([]Match, error) {
	if n <= 0 || decksPerPlayer <= 0 {
		return nil, errors.Errorf("cannot sample %d matches with %d decks per player", n, decksPerPlayer)
	}

	var decks [2][]int
	for i := 0; i < decksPerPlayer; i++ {
		decks[hearthnash.Player0] = append(decks[hearthnash.Player0], i)
		decks[hearthnash.Player1] = append(decks[hearthnash.Player1], decksPerPlayer+i)
	}

	gen := metagen.NewGenerator(seed)
	result := make([]Match, n)
	for i := range result {
		winrates, err := gen.Winrates(2*decksPerPlayer, metaType)
		if err != nil {
			return nil, err
		}

		meta, err := hearthnash.NewMetaModel(winrates, nil)
		if err != nil {
			return nil, err
		}

		result[i] = Match{
			ID:    uuid.New(),
			Meta:  meta.WithMetaType(int(metaType)),
			Decks: decks,
		}
	}

	return result, nil
}
