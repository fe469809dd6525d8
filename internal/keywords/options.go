package keywords

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Option defaults.
const (
	DefaultMinWordLength      = 2
	DefaultMaxWordLength      = 30
	DefaultScoreCapPerKeyword = 5
	DefaultMinPartialLength   = 3
)

// WeightedScoreCap bounds each keyword's contribution to the weighted score.
// It is independent of Options.ScoreCapPerKeyword.
const WeightedScoreCap = 5

var validate = validator.New()

// Options configures extraction. Zero numeric fields take their defaults.
type Options struct {
	MinWordLength      int  `json:"min_word_length" yaml:"min_word_length" validate:"gte=1"`
	MaxWordLength      int  `json:"max_word_length" yaml:"max_word_length" validate:"gte=1,gtefield=MinWordLength"`
	ScoreCapPerKeyword int  `json:"score_cap_per_keyword" yaml:"score_cap_per_keyword" validate:"gte=1"`
	StrictMode         bool `json:"strict_mode" yaml:"strict_mode"`
	// MinPartialLength is the shortest string allowed on the contained side
	// of a partial match.
	MinPartialLength int `json:"min_partial_length" yaml:"min_partial_length" validate:"gte=1"`
}

// DefaultOptions returns the default extraction options.
func DefaultOptions() Options {
	return Options{
		MinWordLength:      DefaultMinWordLength,
		MaxWordLength:      DefaultMaxWordLength,
		ScoreCapPerKeyword: DefaultScoreCapPerKeyword,
		MinPartialLength:   DefaultMinPartialLength,
	}
}

// WithDefaults returns a copy of o with zero numeric fields set to defaults.
func (o Options) WithDefaults() Options {
	if o.MinWordLength == 0 {
		o.MinWordLength = DefaultMinWordLength
	}
	if o.MaxWordLength == 0 {
		o.MaxWordLength = DefaultMaxWordLength
	}
	if o.ScoreCapPerKeyword == 0 {
		o.ScoreCapPerKeyword = DefaultScoreCapPerKeyword
	}
	if o.MinPartialLength == 0 {
		o.MinPartialLength = DefaultMinPartialLength
	}
	return o
}

// Validate checks the options as given, without applying defaults.
func (o Options) Validate() error {
	err := validate.Struct(o)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ConfigError{Message: "validation failed", Cause: err}
	}

	fe := verrs[0]
	msg := fmt.Sprintf("failed %s check", fe.Tag())
	switch fe.Tag() {
	case "gte":
		msg = fmt.Sprintf("must be at least %s, got %v", fe.Param(), fe.Value())
	case "gtefield":
		msg = fmt.Sprintf("must not be less than %s, got %v", fe.Param(), fe.Value())
	}
	return &ConfigError{Field: fe.Field(), Message: msg, Cause: err}
}
