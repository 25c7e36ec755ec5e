package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/opline/parsing"
)

// diagnostic renders parse failures with the input line and a caret under
// the failing offset, colored when w is a terminal.
type diagnostic struct {
	w       io.Writer
	label   lipgloss.Style
	message lipgloss.Style
	caret   lipgloss.Style
	gutter  lipgloss.Style
}

func newDiagnostic(w io.Writer) *diagnostic {
	r := lipgloss.NewRenderer(w)

	return &diagnostic{
		w:       w,
		label:   r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		message: r.NewStyle().Bold(true),
		caret:   r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		gutter:  r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// report writes err for the line numbered num.
func (d *diagnostic) report(num int, err error) {
	fmt.Fprintf(d.w, "%s %s\n", d.label.Render("error:"), d.message.Render(err.Error()))

	var pe *parsing.Error
	if !errors.As(err, &pe) || pe.Caret() == "" {
		return
	}

	gutter := fmt.Sprintf("%4d | ", num)
	blank := strings.Repeat(" ", len(gutter)-2) + "| "
	start := 0

	for i, l := range strings.Split(pe.Input(), "\n") {
		g := blank
		if i == 0 {
			g = gutter
		}

		fmt.Fprintf(d.w, "%s%s\n", d.gutter.Render(g), l)

		n := utf8.RuneCountInString(l)
		if off := pe.Offset() - start; off >= 0 && off <= n {
			fmt.Fprintf(d.w, "%s%s%s\n", d.gutter.Render(blank), strings.Repeat(" ", off), d.caret.Render("^"))
		}

		// the line break is one rune
		start += n + 1
	}
}
