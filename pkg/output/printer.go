// pkg/output/printer.go

package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/CodeMonkeyCybersecurity/secret/pkg/charclass"
	"github.com/CodeMonkeyCybersecurity/secret/pkg/generator"
	"github.com/CodeMonkeyCybersecurity/secret/pkg/strength"
	"github.com/charmbracelet/lipgloss"
)

// Format is an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts text, json or yaml in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
	}
}

// Generated is the structured form of a generate result.
type Generated struct {
	Length    int      `json:"length" yaml:"length"`
	Format    string   `json:"format" yaml:"format"`
	Passwords []string `json:"passwords" yaml:"passwords"`
}

// VersionInfo is the structured form of the version command.
type VersionInfo struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit,omitempty" yaml:"commit,omitempty"`
}

// Printer writes command results in one format.
type Printer struct {
	w        io.Writer
	format   Format
	renderer *lipgloss.Renderer
}

// NewPrinter validates format and colour policy and binds them to w.
func NewPrinter(w io.Writer, format, color string) (*Printer, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	r, err := NewRenderer(w, color)
	if err != nil {
		return nil, err
	}
	return &Printer{w: w, format: f, renderer: r}, nil
}

// Format reports the encoding in use.
func (p *Printer) Format() Format {
	return p.format
}

// Assessment prints a check result. Text output is the single line
// "Your password is: <LABEL>", followed by the reasons when explain is set.
// Structured output always carries the full assessment.
func (p *Printer) Assessment(a strength.Assessment, explain bool) error {
	switch p.format {
	case FormatJSON:
		return JSONTo(p.w, a)
	case FormatYAML:
		return YAMLTo(p.w, a)
	}

	if _, err := fmt.Fprintf(p.w, "Your password is: %s\n", StrengthLabel(p.renderer, a.Strength)); err != nil {
		return err
	}
	if !explain {
		return nil
	}
	_, err := io.WriteString(p.w, explainAssessment(a))
	return err
}

// Passwords prints generated passwords, one per line in text mode.
func (p *Printer) Passwords(opts generator.Options, passwords []string) error {
	switch p.format {
	case FormatJSON:
		return JSONTo(p.w, generatedFrom(opts, passwords))
	case FormatYAML:
		return YAMLTo(p.w, generatedFrom(opts, passwords))
	}

	for _, pw := range passwords {
		if _, err := fmt.Fprintln(p.w, pw); err != nil {
			return err
		}
	}
	return nil
}

// Version prints version information.
func (p *Printer) Version(v VersionInfo) error {
	switch p.format {
	case FormatJSON:
		return JSONTo(p.w, v)
	case FormatYAML:
		return YAMLTo(p.w, v)
	}

	line := "secret " + v.Version
	if v.Commit != "" {
		line += " (" + v.Commit + ")"
	}
	_, err := fmt.Fprintln(p.w, line)
	return err
}

func generatedFrom(opts generator.Options, passwords []string) Generated {
	if passwords == nil {
		passwords = []string{}
	}
	return Generated{Length: opts.Length, Format: opts.Format(), Passwords: passwords}
}

func explainAssessment(a strength.Assessment) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "  length:      %d (minimum %d)\n", a.Length, strength.MinLength)
	if a.TooShort {
		sb.WriteString("  too short:   yes\n")
		return sb.String()
	}

	if a.Blocklisted {
		sb.WriteString("  blocklisted: yes\n")
		return sb.String()
	}
	sb.WriteString("  blocklisted: no\n")

	names := make([]string, 0, len(a.Classes))
	for _, c := range a.Classes {
		names = append(names, c.String())
	}
	fmt.Fprintf(&sb, "  classes:     %d of %d", len(a.Classes), len(charclass.All))
	if len(names) > 0 {
		fmt.Fprintf(&sb, " (%s)", strings.Join(names, ", "))
	}
	sb.WriteString("\n")
	return sb.String()
}
