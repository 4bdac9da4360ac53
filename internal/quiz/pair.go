package quiz

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultLearningTime is how long each pair stays on screen while learning.
const DefaultLearningTime = 5 * time.Second

// WordPair is a question word and the word it is paired with.
type WordPair struct {
	Question    string `validate:"required"`
	RightAnswer string `validate:"required"`
}

// DefaultPairs returns the built-in pair list.
func DefaultPairs() []WordPair {
	return []WordPair{
		{Question: "ペミ", RightAnswer: "ロチ"},
		{Question: "テス", RightAnswer: "トン"},
		{Question: "モン", RightAnswer: "ダイ"},
	}
}

// Config is everything a Machine needs from the outside. It is fixed for
// the lifetime of the Machine.
type Config struct {
	Pairs        []WordPair    `validate:"required,min=1,dive"`
	LearningTime time.Duration `validate:"gt=0"`
}

// DefaultConfig returns the built-in pairs with the default learning time.
func DefaultConfig() Config {
	return Config{
		Pairs:        DefaultPairs(),
		LearningTime: DefaultLearningTime,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the config and returns an error wrapping ErrInvalidConfig.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
