package store

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidPost is returned when a post misses a field the store requires.
var ErrInvalidPost = errors.New("invalid post")

// Post is a generated image shared with the community.
type Post struct {
	ID     string `json:"id"`
	Name   string `json:"name" validate:"required"`
	Prompt string `json:"prompt" validate:"required"`
	Photo  string `json:"photo" validate:"required"`
}

var validate = validator.New()

// Validate enforces the storage policy: name, prompt and photo must be present.
func (p Post) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPost, err)
	}
	return nil
}
