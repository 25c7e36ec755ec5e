package inspect

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/opline/parsing"
	"github.com/ardnew/opline/request"
)

const prompt = "> "

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	labelStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

func formatCommand(input string) string {
	return promptStyle.Render(prompt) + inputStyle.Render(input)
}

// renderCandidateBar builds the single-line completion bar, ellipsized to
// fit width. The selected candidate uses the selected style while tabbing.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += sepWidth
		}

		if i > 0 && used+entryWidth+ellipsisWidth > width {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a candidate with its matched characters
// highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	baseStyle := suggestionStyle
	highlightStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("4")).
		Bold(true)

	if selected {
		baseStyle = selectedStyle
		highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4")).
			Bold(true)
	}

	var b strings.Builder

	// MatchedIndexes are byte offsets.
	for i, r := range match.Str {
		if slices.Contains(match.MatchedIndexes, i) {
			b.WriteString(highlightStyle.Render(string(r)))
		} else {
			b.WriteString(baseStyle.Render(string(r)))
		}
	}

	return b.String()
}

// snapshot is what the inspector shows about the current input.
type snapshot struct {
	summary    request.Summary
	valueIndex int
	model      string
	err        error
}

func (s snapshot) render() string {
	var b strings.Builder

	field := func(label, text string) {
		if text == "" {
			return
		}

		b.WriteString(labelStyle.Render(fmt.Sprintf("%-10s", label)))
		b.WriteString(text)
		b.WriteString("\n")
	}

	sum := s.summary

	field("command", sum.Command)
	field("address", sum.Address)
	field("operation", sum.Operation)

	if len(sum.Properties) > 0 {
		props := make([]string, len(sum.Properties))
		for i, p := range sum.Properties {
			props[i] = p.String()
		}

		field("params", strings.Join(props, " "))
	}

	if len(sum.Headers) > 0 {
		names := slices.Sorted(maps.Keys(sum.Headers))

		hdrs := make([]string, len(names))
		for i, k := range names {
			hdrs[i] = k + "=" + sum.Headers[k]
		}

		field("headers", strings.Join(hdrs, " "))
	}

	field("output", sum.Output)

	b.WriteString(hintStyle.Render(fmt.Sprintf(
		"ends-on %s  complete=%t  value-index=%d",
		sum.EndsOn, sum.Complete, s.valueIndex,
	)))
	b.WriteString("\n")

	if s.err != nil {
		b.WriteString(renderError(s.err))
	} else if s.model != "" {
		b.WriteString(resultStyle.Render(s.model))
		b.WriteString("\n")
	}

	return b.String()
}

// renderError renders err, followed by the input and a caret under the
// failing character when err is positioned.
func renderError(err error) string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("error: " + err.Error()))
	b.WriteString("\n")

	var pe *parsing.Error
	if errors.As(err, &pe) && pe.Caret() != "" {
		b.WriteString(hintStyle.Render(pe.Caret()))
		b.WriteString("\n")
	}

	return b.String()
}
