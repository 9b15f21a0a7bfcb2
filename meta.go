package hearthnash

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// The two directions of a matchup may miss summing to 1 by rounding in the
// source data.
const complementEpsilon = 0.0015

// Archetype identifies one deck of the meta, as reported by HSReplay.
type Archetype struct {
	ID    int
	Name  string
	Class string
}

// MetaModel holds the matchup winrates between every pair of decks in
// a meta. Deck indices used throughout the engine index into it.
//
// A MetaModel is immutable once constructed and may be shared between
// concurrent evaluations.
type MetaModel struct {
	// winrates[a][b] is the probability that deck a beats deck b.
	winrates   [][]float64
	archetypes []Archetype
	metaType   int
}

// NewMetaModel validates the given winrate matrix and builds a MetaModel
// from a copy of it. The archetypes may be nil, in which case placeholders
// are generated for each deck.
func NewMetaModel(winrates [][]float64, archetypes []Archetype) (*MetaModel, error) {
	n := len(winrates)
	if n < 1 {
		return nil, errors.Wrap(ErrMetaValidation, "winrates matrix must be non-empty")
	}

	for r, row := range winrates {
		if len(row) != n {
			return nil, errors.Wrapf(ErrMetaValidation,
				"winrates is not a square matrix: row %d has %d entries, expected %d", r, len(row), n)
		}
	}

	for r, row := range winrates {
		for c, v := range row {
			if !(v >= 0 && v <= 1) {
				return nil, errors.Wrapf(ErrMetaValidation,
					"winrates[%d][%d] = %v is outside of [0, 1]", r, c, v)
			}

			if math.Abs(v+winrates[c][r]-1) > complementEpsilon {
				return nil, errors.Wrapf(ErrMetaValidation,
					"winrates[%d][%d] = %v and winrates[%d][%d] = %v must sum to 1",
					r, c, v, c, r, winrates[c][r])
			}
		}
	}

	if archetypes == nil {
		archetypes = make([]Archetype, n)
		for i := range archetypes {
			archetypes[i] = Archetype{ID: i, Name: fmt.Sprintf("Deck %d", i)}
		}
	} else if len(archetypes) != n {
		return nil, errors.Wrapf(ErrMetaValidation,
			"%d archetypes given for a %dx%d winrates matrix", len(archetypes), n, n)
	}

	return &MetaModel{
		winrates:   copyMatrix(winrates),
		archetypes: append([]Archetype(nil), archetypes...),
		metaType:   -1,
	}, nil
}

// WithMetaType returns a copy of the MetaModel tagged with the given meta
// type, which records where its winrates came from.
func (m *MetaModel) WithMetaType(metaType int) *MetaModel {
	result := *m
	result.metaType = metaType
	return &result
}

// MetaType returns the meta type tag, or -1 if none was set.
func (m *MetaModel) MetaType() int {
	return m.metaType
}

// N returns the number of decks in the meta.
func (m *MetaModel) N() int {
	return len(m.winrates)
}

// Winrate returns the probability that deck a beats deck b.
func (m *MetaModel) Winrate(a, b int) float64 {
	return m.winrates[a][b]
}

// Winrates returns a copy of the full winrate matrix.
func (m *MetaModel) Winrates() [][]float64 {
	return copyMatrix(m.winrates)
}

// Archetypes returns the identity of each deck, indexed like the winrates.
func (m *MetaModel) Archetypes() []Archetype {
	return append([]Archetype(nil), m.archetypes...)
}

func copyMatrix(m [][]float64) [][]float64 {
	result := make([][]float64, len(m))
	for i, row := range m {
		result[i] = append([]float64(nil), row...)
	}
	return result
}
