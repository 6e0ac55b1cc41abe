// pkg/generator/format.go

package generator

import "strings"

// Format markers accepted on the command line.
const (
	MarkerSmall   = 'a'
	MarkerCapital = 'A'
	MarkerNumber  = '1'
	MarkerSpecial = '@'

	DefaultFormat = "aA1@"
)

// ParseFormat builds options of the given length from a marker string.
// Marker order and repetition do not matter; unknown characters are ignored.
func ParseFormat(length int, format string) Options {
	return Options{
		Length:         length,
		SmallLetters:   strings.ContainsRune(format, MarkerSmall),
		CapitalLetters: strings.ContainsRune(format, MarkerCapital),
		Numbers:        strings.ContainsRune(format, MarkerNumber),
		SpecialChars:   strings.ContainsRune(format, MarkerSpecial),
	}
}

// Format renders the enabled classes back into marker form.
func (o Options) Format() string {
	var sb strings.Builder
	if o.SmallLetters {
		sb.WriteRune(MarkerSmall)
	}
	if o.CapitalLetters {
		sb.WriteRune(MarkerCapital)
	}
	if o.Numbers {
		sb.WriteRune(MarkerNumber)
	}
	if o.SpecialChars {
		sb.WriteRune(MarkerSpecial)
	}
	return sb.String()
}
