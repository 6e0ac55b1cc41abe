// pkg/generator/generator.go

// Package generator produces random passwords whose composition covers every
// requested character class. Candidates are drawn whole, checked, and
// discarded until one contains all enabled classes.
package generator

import (
	"context"
	"crypto/rand"
	"io"
	"math/big"
	"strings"

	"github.com/CodeMonkeyCybersecurity/secret/pkg/charclass"
	"github.com/cockroachdb/errors"
)

const (
	// DefaultLength is the length used by DefaultOptions.
	DefaultLength = 16

	// MaxAttempts bounds the rejection-sampling loop.
	MaxAttempts = 10000
)

var (
	// ErrInvalidConfiguration is returned when options cannot produce a
	// password: no class enabled, negative length, or a length shorter than
	// the number of classes that must appear.
	ErrInvalidConfiguration = errors.New("invalid generator configuration")

	// ErrAttemptsExhausted is returned when no valid candidate was found
	// within the attempt limit.
	ErrAttemptsExhausted = errors.New("password generation attempts exhausted")
)

// Options selects the length and eligible character classes.
type Options struct {
	Length         int  `json:"length" yaml:"length"`
	SmallLetters   bool `json:"small_letters" yaml:"small_letters"`
	CapitalLetters bool `json:"capital_letters" yaml:"capital_letters"`
	Numbers        bool `json:"numbers" yaml:"numbers"`
	SpecialChars   bool `json:"special_chars" yaml:"special_chars"`
}

// DefaultOptions returns length 16 with all four classes enabled.
func DefaultOptions() Options {
	return Options{
		Length:         DefaultLength,
		SmallLetters:   true,
		CapitalLetters: true,
		Numbers:        true,
		SpecialChars:   true,
	}
}

// Classes returns the enabled classes in canonical order.
func (o Options) Classes() []charclass.Class {
	var out []charclass.Class
	if o.SmallLetters {
		out = append(out, charclass.Lower)
	}
	if o.CapitalLetters {
		out = append(out, charclass.Upper)
	}
	if o.Numbers {
		out = append(out, charclass.Digit)
	}
	if o.SpecialChars {
		out = append(out, charclass.Special)
	}
	return out
}

// Alphabet concatenates the character sets of the enabled classes.
func (o Options) Alphabet() string {
	var sb strings.Builder
	for _, c := range o.Classes() {
		sb.WriteString(c.Charset())
	}
	return sb.String()
}

// Validate checks the options before any sampling happens.
func (o Options) Validate() error {
	required := len(o.Classes())
	if required == 0 {
		return errors.WithHint(
			errors.Wrap(ErrInvalidConfiguration, "no character class enabled"),
			"enable at least one of small letters, capital letters, numbers or special characters")
	}
	if o.Length < 0 {
		return errors.Wrapf(ErrInvalidConfiguration, "negative length %d", o.Length)
	}
	if o.Length < required {
		return errors.WithHintf(
			errors.Wrapf(ErrInvalidConfiguration, "length %d cannot hold %d required character classes", o.Length, required),
			"use a length of at least %d or enable fewer classes", required)
	}
	return nil
}

// Satisfied reports whether candidate contains every enabled class.
func (o Options) Satisfied(candidate string) bool {
	for _, c := range o.Classes() {
		if !charclass.Contains(candidate, c) {
			return false
		}
	}
	return true
}

// Generator draws passwords from a uniform random source.
type Generator struct {
	random      io.Reader
	maxAttempts int
}

// Option configures a Generator.
type Option func(*Generator)

// WithRandom replaces the random source. It must be safe for the caller's
// concurrency; crypto/rand.Reader is.
func WithRandom(r io.Reader) Option {
	return func(g *Generator) {
		g.random = r
	}
}

// WithMaxAttempts overrides the attempt limit. Values below 1 are ignored.
func WithMaxAttempts(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxAttempts = n
		}
	}
}

// New returns a Generator backed by crypto/rand.
func New(opts ...Option) *Generator {
	g := &Generator{
		random:      rand.Reader,
		maxAttempts: MaxAttempts,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

var defaultGenerator = New()

// Generate produces a password with the package default generator.
func Generate(opts Options) (string, error) {
	return defaultGenerator.Generate(opts)
}

// Generate produces a password satisfying opts.
func (g *Generator) Generate(opts Options) (string, error) {
	return g.GenerateContext(context.Background(), opts)
}

// GenerateContext is Generate with cancellation checked between attempts.
func (g *Generator) GenerateContext(ctx context.Context, opts Options) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}

	alphabet := opts.Alphabet()
	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", errors.Wrap(err, "password generation interrupted")
		}

		candidate, err := g.draw(alphabet, opts.Length)
		if err != nil {
			return "", err
		}
		if opts.Satisfied(candidate) {
			return candidate, nil
		}
	}

	return "", errors.Wrapf(ErrAttemptsExhausted, "no valid candidate after %d attempts", g.maxAttempts)
}

// draw samples length characters from alphabet with replacement.
func (g *Generator) draw(alphabet string, length int) (string, error) {
	var sb strings.Builder
	sb.Grow(length)

	for i := 0; i < length; i++ {
		c, err := g.randomChar(alphabet)
		if err != nil {
			return "", err
		}
		sb.WriteByte(c)
	}
	return sb.String(), nil
}

func (g *Generator) randomChar(charset string) (byte, error) {
	n, err := rand.Int(g.random, big.NewInt(int64(len(charset))))
	if err != nil {
		return 0, errors.Wrap(err, "read random source")
	}
	return charset[n.Int64()], nil
}
