// Package prompts holds the "surprise me" prompt list.
package prompts

import (
	_ "embed"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrEmpty is returned when a prompt file holds no prompts.
var ErrEmpty = errors.New("prompt list is empty")

// maxAttempts bounds the rejection loop in Random.
const maxAttempts = 32

//go:embed prompts.yaml
var defaultFile []byte

type file struct {
	Prompts []string `yaml:"prompts"`
}

type List struct {
	prompts []string
	intN    func(n int) int
}

// New returns a list over prompts.
func New(prompts []string) (*List, error) {
	if len(prompts) == 0 {
		return nil, ErrEmpty
	}
	return &List{prompts: append([]string(nil), prompts...), intN: rand.IntN}, nil
}

// Default returns the built-in list.
func Default() *List {
	l, err := parse(defaultFile)
	if err != nil {
		panic(fmt.Sprintf("embedded prompt list: %v", err))
	}
	return l
}

// Load reads a YAML file with a top-level "prompts" sequence. An empty path
// yields the built-in list.
func Load(path string) (*List, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", path, err)
	}
	l, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", path, err)
	}
	return l, nil
}

func parse(data []byte) (*List, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return New(f.Prompts)
}

// All returns a copy of the prompts.
func (l *List) All() []string {
	return append([]string(nil), l.prompts...)
}

// Random picks a prompt that differs from current whenever the list has an
// alternative. A single-entry list always returns that entry.
func (l *List) Random(current string) string {
	if len(l.prompts) == 1 {
		return l.prompts[0]
	}
	for i := 0; i < maxAttempts; i++ {
		if p := l.prompts[l.intN(len(l.prompts))]; p != current {
			return p
		}
	}
	for _, p := range l.prompts {
		if p != current {
			return p
		}
	}
	return l.prompts[0]
}
