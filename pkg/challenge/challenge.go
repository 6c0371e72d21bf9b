// Package challenge generates the short human-verification codes shown next
// to the inquiry form and checks user input against them.
package challenge

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"
)

const (
	// DefaultLength matches the code length shown in the inquiry sheet.
	DefaultLength = 6
	// DefaultAlphabet skips characters that are easy to confuse (0/O, 1/I/l).
	DefaultAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
)

// Challenge is an opaque verification code.
type Challenge string

// String returns the code text.
func (c Challenge) String() string { return string(c) }

// Policy decides how user input is compared with the current challenge.
type Policy int

const (
	// CaseSensitive requires an exact match.
	CaseSensitive Policy = iota
	// CaseInsensitive folds case before comparing.
	CaseInsensitive
)

// Option configures a Generator.
type Option func(*Generator)

// WithLength sets the number of characters per code.
func WithLength(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.length = n
		}
	}
}

// WithAlphabet restricts the characters used in codes.
func WithAlphabet(alphabet string) Option {
	return func(g *Generator) {
		if alphabet != "" {
			g.alphabet = []rune(alphabet)
		}
	}
}

// WithRandom swaps the entropy source, mainly for tests.
func WithRandom(r io.Reader) Option {
	return func(g *Generator) {
		if r != nil {
			g.random = r
		}
	}
}

// WithPolicy selects the comparison policy used by Verify.
func WithPolicy(policy Policy) Option {
	return func(g *Generator) {
		g.policy = policy
	}
}

// Generator produces random alphanumeric codes.
type Generator struct {
	length   int
	alphabet []rune
	random   io.Reader
	policy   Policy
}

// NewGenerator builds a Generator with crypto/rand as the default source.
func NewGenerator(options ...Option) *Generator {
	g := &Generator{
		length:   DefaultLength,
		alphabet: []rune(DefaultAlphabet),
		random:   rand.Reader,
	}
	for _, opt := range options {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Generate returns a fresh code. Errors only surface when the entropy source
// fails.
func (g *Generator) Generate() (Challenge, error) {
	if len(g.alphabet) == 0 {
		return "", errors.New("challenge: alphabet is empty")
	}
	max := big.NewInt(int64(len(g.alphabet)))

	var builder strings.Builder
	builder.Grow(g.length)
	for i := 0; i < g.length; i++ {
		n, err := rand.Int(g.random, max)
		if err != nil {
			return "", fmt.Errorf("challenge: read entropy: %w", err)
		}
		builder.WriteRune(g.alphabet[n.Int64()])
	}
	return Challenge(builder.String()), nil
}

// Verify compares input with current under the generator's policy.
func (g *Generator) Verify(input string, current Challenge) bool {
	return Verify(input, current, g.policy)
}

// Verify compares input with current in constant time. Input is taken as
// typed, surrounding whitespace included. An empty challenge never verifies.
func Verify(input string, current Challenge, policy Policy) bool {
	expected := string(current)
	if expected == "" {
		return false
	}
	if policy == CaseInsensitive {
		input = strings.ToLower(input)
		expected = strings.ToLower(expected)
	}
	return subtle.ConstantTimeCompare([]byte(input), []byte(expected)) == 1
}
