// pkg/strength/strength.go

// Package strength rates passwords as weak, medium or strong using a fixed
// policy: minimum length, a small blocklist, then character-class diversity.
package strength

import (
	"slices"

	"github.com/CodeMonkeyCybersecurity/secret/pkg/charclass"
)

// Strength is the verdict of the classifier. Values are ordered by severity.
type Strength int

const (
	Weak Strength = iota
	Medium
	Strong
)

const (
	// MinLength is the shortest password that can rate above Weak.
	MinLength = 8

	// mediumClasses and strongClasses are the class counts needed for each level.
	mediumClasses = 2
	strongClasses = 4
)

// blocklist holds common passwords that always rate Weak. Matching is exact
// and case-sensitive.
var blocklist = []string{
	"qwerty",
	"password",
	"secret",
}

func (s Strength) String() string {
	switch s {
	case Weak:
		return "WEAK"
	case Medium:
		return "MEDIUM"
	case Strong:
		return "STRONG"
	default:
		return "UNKNOWN"
	}
}

// MarshalText encodes the label for JSON/YAML output.
func (s Strength) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Assessment explains how a verdict was reached.
type Assessment struct {
	Strength    Strength          `json:"strength" yaml:"strength"`
	Length      int               `json:"length" yaml:"length"`
	TooShort    bool              `json:"too_short" yaml:"too_short"`
	Blocklisted bool              `json:"blocklisted" yaml:"blocklisted"`
	Classes     []charclass.Class `json:"classes" yaml:"classes"`
}

// IsBlocklisted reports whether password exactly matches a blocklist entry.
func IsBlocklisted(password string) bool {
	return slices.Contains(blocklist, password)
}

// Blocklist returns a copy of the blocklisted passwords.
func Blocklist() []string {
	return slices.Clone(blocklist)
}

// Classify rates password. It accepts any string, including the empty one.
func Classify(password string) Strength {
	if len(password) < MinLength || IsBlocklisted(password) {
		return Weak
	}
	return fromClassCount(charclass.Count(password))
}

// Assess runs the same rules as Classify and records which of them fired.
// Length and blocklist checks short-circuit diversity scoring, so Classes is
// only populated when both pass.
func Assess(password string) Assessment {
	a := Assessment{
		Length:   len(password),
		TooShort: len(password) < MinLength,
		Classes:  []charclass.Class{},
	}

	if a.TooShort {
		a.Strength = Weak
		return a
	}

	if IsBlocklisted(password) {
		a.Blocklisted = true
		a.Strength = Weak
		return a
	}

	a.Classes = charclass.Present(password)
	a.Strength = fromClassCount(len(a.Classes))
	return a
}

func fromClassCount(n int) Strength {
	switch {
	case n < mediumClasses:
		return Weak
	case n < strongClasses:
		return Medium
	default:
		return Strong
	}
}
