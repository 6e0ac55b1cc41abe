// pkg/charclass/charclass.go

// Package charclass defines the four ASCII character classes shared by the
// strength classifier and the password generator.
package charclass

import "strings"

// Class identifies one of the four character classes.
type Class int

const (
	Lower Class = iota
	Upper
	Digit
	Special
)

// Per-class character sets used to build generation alphabets.
const (
	LowerSet   = "abcdefghijklmnopqrstuvwxyz"
	UpperSet   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	DigitSet   = "0123456789"
	SpecialSet = "`~!@#$%^&*()-_=+\\/;:'\",.?<>[]{}|"
)

// All lists the classes in canonical order.
var All = []Class{Lower, Upper, Digit, Special}

func (c Class) String() string {
	switch c {
	case Lower:
		return "lowercase"
	case Upper:
		return "uppercase"
	case Digit:
		return "digit"
	case Special:
		return "special"
	default:
		return "unknown"
	}
}

// MarshalText encodes the class by name for JSON/YAML output.
func (c Class) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Charset returns the generation character set for the class.
func (c Class) Charset() string {
	switch c {
	case Lower:
		return LowerSet
	case Upper:
		return UpperSet
	case Digit:
		return DigitSet
	case Special:
		return SpecialSet
	default:
		return ""
	}
}

// Of reports the class a single rune belongs to. Anything outside
// [a-zA-Z0-9] is Special.
func Of(r rune) Class {
	switch {
	case r >= 'a' && r <= 'z':
		return Lower
	case r >= 'A' && r <= 'Z':
		return Upper
	case r >= '0' && r <= '9':
		return Digit
	default:
		return Special
	}
}

// Contains reports whether s holds at least one character of class c.
func Contains(s string, c Class) bool {
	return strings.IndexFunc(s, func(r rune) bool { return Of(r) == c }) >= 0
}

// Present returns the classes found in s, in canonical order.
func Present(s string) []Class {
	var seen [4]bool
	for _, r := range s {
		seen[Of(r)] = true
	}

	out := make([]Class, 0, len(All))
	for _, c := range All {
		if seen[c] {
			out = append(out, c)
		}
	}
	return out
}

// Count returns how many distinct classes appear in s.
func Count(s string) int {
	return len(Present(s))
}
