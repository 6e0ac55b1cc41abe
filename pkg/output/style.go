package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/CodeMonkeyCybersecurity/secret/pkg/strength"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Colour policies accepted by --color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Severity colours, in the terminal's own 16-colour palette.
var (
	colorWeak   = lipgloss.Color("1")
	colorMedium = lipgloss.Color("3")
	colorStrong = lipgloss.Color("2")
)

// NewRenderer returns a lipgloss renderer for w honouring the colour policy.
// auto colours only when w is a terminal and NO_COLOR is unset.
func NewRenderer(w io.Writer, policy string) (*lipgloss.Renderer, error) {
	r := lipgloss.NewRenderer(w)
	switch strings.ToLower(strings.TrimSpace(policy)) {
	case ColorAuto, "":
	case ColorAlways:
		r.SetColorProfile(termenv.ANSI)
	case ColorNever:
		r.SetColorProfile(termenv.Ascii)
	default:
		return nil, fmt.Errorf("unknown color policy %q (want auto, always or never)", policy)
	}
	return r, nil
}

// StrengthStyle picks the severity colour for s.
func StrengthStyle(r *lipgloss.Renderer, s strength.Strength) lipgloss.Style {
	style := r.NewStyle()
	switch s {
	case strength.Weak:
		return style.Foreground(colorWeak)
	case strength.Medium:
		return style.Foreground(colorMedium)
	case strength.Strong:
		return style.Foreground(colorStrong)
	default:
		return style
	}
}

// StrengthLabel renders the label of s in its severity colour.
func StrengthLabel(r *lipgloss.Renderer, s strength.Strength) string {
	return StrengthStyle(r, s).Render(s.String())
}
