// pkg/secret/secret.go

// Package secret is the library entry point: it checks password strength and
// generates passwords by forwarding to the strength and generator packages.
package secret

import (
	"context"

	"github.com/CodeMonkeyCybersecurity/secret/pkg/generator"
	"github.com/CodeMonkeyCybersecurity/secret/pkg/strength"
)

// Password bundles the classifier and the generator.
type Password struct {
	gen *generator.Generator
}

// Option configures a Password.
type Option func(*Password)

// WithGenerator replaces the default crypto/rand backed generator.
func WithGenerator(g *generator.Generator) Option {
	return func(p *Password) {
		if g != nil {
			p.gen = g
		}
	}
}

// New returns a ready to use Password facade.
func New(opts ...Option) *Password {
	p := &Password{gen: generator.New()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Check rates password.
func (p *Password) Check(password string) strength.Strength {
	return strength.Classify(password)
}

// Assess rates password and reports which rules decided the rating.
func (p *Password) Assess(password string) strength.Assessment {
	return strength.Assess(password)
}

// Generate returns a random password satisfying opts.
func (p *Password) Generate(opts generator.Options) (string, error) {
	return p.gen.Generate(opts)
}

// GenerateContext is Generate with cancellation between attempts.
func (p *Password) GenerateContext(ctx context.Context, opts generator.Options) (string, error) {
	return p.gen.GenerateContext(ctx, opts)
}
