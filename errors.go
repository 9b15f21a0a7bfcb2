package hearthnash

import "github.com/pkg/errors"

var (
	// ErrConfiguration is returned for FormatRules that cannot be played.
	ErrConfiguration = errors.New("invalid format rules")
	// ErrMetaValidation is returned for malformed winrate matrices.
	ErrMetaValidation = errors.New("invalid meta model")
	// ErrEvaluationPrecondition is returned when the starting decks of a
	// match do not fit the format or the meta.
	ErrEvaluationPrecondition = errors.New("invalid match evaluation input")
)
