package output

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Format selects how results are written.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat maps a flag value onto a Format. Empty means table.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatTable:
		return FormatTable, nil
	case FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table, json or yaml)", s)
	}
}

// Result is what a command prints: Data for the structured formats and
// Headers/Rows for tables.
type Result struct {
	Data    any
	Headers []string
	Rows    [][]string
}

// Printer writes results in one format.
type Printer struct {
	w      io.Writer
	format Format
	styled bool
}

// New returns a printer for w. Tables get borders and colour only when w
// is a terminal.
func New(w io.Writer, format Format) *Printer {
	return &Printer{w: w, format: format, styled: IsTerminal(w)}
}

// Styled forces table styling on or off.
func (p *Printer) Styled(styled bool) *Printer {
	p.styled = styled
	return p
}

// Format returns the printer's format.
func (p *Printer) Format() Format {
	return p.format
}

// IsTerminal reports whether w is backed by a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// Print writes r.
func (p *Printer) Print(r Result) error {
	switch p.format {
	case FormatJSON:
		return writeJSON(p.w, r.Data)
	case FormatYAML:
		return writeYAML(p.w, r.Data)
	default:
		return p.writeTable(r)
	}
}

// Done reports a completed write. Tables print message; the structured
// formats print data, or the message as an object when data is nil.
func (p *Printer) Done(message string, data any) error {
	if p.format == FormatTable {
		_, err := fmt.Fprintln(p.w, message)
		return err
	}
	if data == nil {
		data = map[string]string{"message": message}
	}
	return p.Print(Result{Data: data})
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#719cd6")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#39506d"))
	plainStyle  = lipgloss.NewStyle().PaddingRight(2)
)

func (p *Printer) writeTable(r Result) error {
	if len(r.Rows) == 0 {
		_, err := fmt.Fprintln(p.w, "No results.")
		return err
	}

	t := table.New().Headers(r.Headers...).Rows(r.Rows...)
	if p.styled {
		t = t.Border(lipgloss.RoundedBorder()).
			BorderStyle(borderStyle).
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return cellStyle
			})
	} else {
		t = t.Border(lipgloss.HiddenBorder()).
			BorderTop(false).
			BorderBottom(false).
			BorderLeft(false).
			BorderRight(false).
			BorderHeader(false).
			BorderColumn(false).
			StyleFunc(func(_, _ int) lipgloss.Style { return plainStyle })
	}

	var b strings.Builder
	for _, line := range strings.Split(t.Render(), "\n") {
		b.WriteString(strings.TrimRight(line, " "))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(p.w, b.String())
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(normalizeNilSlice(v)); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(normalizeNilSlice(v)); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// normalizeNilSlice turns a nil slice into an empty one so lists encode
// as [] rather than null.
func normalizeNilSlice(value any) any {
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Slice && v.IsNil() {
		return reflect.MakeSlice(v.Type(), 0, 0).Interface()
	}
	return value
}
