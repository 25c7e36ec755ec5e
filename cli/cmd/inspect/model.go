package inspect

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/opline/log"
	"github.com/ardnew/opline/request"
)

func helpMessage() string {
	return `
Type an operation request or a command line to see how it parses.

  /subsystem=logging:read-resource(recursive=true)
  :read-attribute(name=release-version){rollback-on-runtime-failure=false}
  deploy app.war --force > out.txt

Completions appear as you type. Node types, node names, operations and
parameter names are learned from entered lines and history.

  Tab / Shift-Tab   cycle through candidates
  Enter             record the line and print its request model
  Up / Down         navigate history
  Esc               restore the line from before tab-cycling
  Ctrl+E            edit the line in $VISUAL or $EDITOR
  Ctrl+C            clear the line, or exit on an empty line
  Ctrl+D            exit on an empty line

Commands: help, clear, quit
`
}

// model is the Bubble Tea model of the inspector.
type model struct {
	ctxFunc      func() context.Context
	logger       log.Logger
	handler      *request.Handler // parses the whole input
	scratch      *request.Handler // parses the text before the cursor word
	input        textinput.Model
	history      *History
	historyIdx   int
	catalog      *catalog
	comp         Completion
	view         snapshot
	suggIdx      int
	tabActive    bool
	preTabText   string
	preTabCursor int
	width        int
	quitting     bool
}

const defaultWidth = 80

func newModel(
	ctx context.Context,
	opts []request.Option,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.Focus()
	ti.CharLimit = 4096
	ti.Width = defaultWidth

	cat := newCatalog()
	learner := request.New(opts...)

	for _, line := range history.Entries() {
		cat.learn(ctx, learner, line)
	}

	m := model{
		ctxFunc:    func() context.Context { return ctx },
		logger:     logger,
		handler:    request.New(opts...),
		scratch:    request.New(opts...),
		input:      ti,
		history:    history,
		historyIdx: history.Len(),
		catalog:    cat,
		suggIdx:    -1,
		width:      defaultWidth,
	}

	m.refresh()

	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-lipgloss.Width(prompt)-2, 1)

		return m, nil

	case editedMsg:
		if msg.line != "" {
			m.input.SetValue(msg.line)
			m.input.CursorEnd()
			m.tabActive = false
			m.historyIdx = m.history.Len()
			m.refresh()
		}

		return m, nil

	case editErrorMsg:
		return m, tea.Println(errorStyle.Render("error: editor: " + msg.err.Error()))
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch {
	case m.historyIdx < m.history.Len():
		hint := fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len())
		b.WriteString(hintStyle.Render(hint))

	case strings.TrimSpace(m.input.Value()) == "":
		b.WriteString(hintStyle.Render("Type a request, or help for usage"))

	case len(m.comp.Matches) > 0:
		b.WriteString(hintStyle.Render(m.comp.Kind.String() + ": "))
		b.WriteString(renderCandidateBar(
			m.comp.Matches, m.suggIdx, m.tabActive,
			m.width-lipgloss.Width(m.comp.Kind.String())-2,
		))
	}

	b.WriteString("\n")

	if strings.TrimSpace(m.input.Value()) != "" {
		b.WriteString(m.view.render())
	}

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(
		m.ctxFunc(),
		"inspect keypress",
		slog.String("key", msg.String()),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		m.refresh()

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyCtrlE:
		return m, editLine(m.ctxFunc, m.input.Value())

	case tea.KeyEnter:
		if m.tabActive {
			m.tabActive = false
			m.refresh()

			return m, nil
		}

		return m.executeInput()

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.historyMove(-1), nil

	case tea.KeyDown:
		return m.historyMove(1), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			m.refresh()
		}

		return m, nil
	}

	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	m.refresh()

	return m, cmd
}

// cursor returns the byte offset of the input cursor.
func (m model) cursor() int {
	runes := []rune(m.input.Value())
	pos := min(m.input.Position(), len(runes))

	return len(string(runes[:pos]))
}

// refresh parses the input and recomputes the completion at the cursor.
func (m *model) refresh() {
	ctx := m.ctxFunc()
	line := m.input.Value()

	err := m.handler.ParseLine(ctx, line)

	m.view = snapshot{
		summary:    m.handler.Summary(line),
		valueIndex: m.handler.ValueIndex(),
		err:        err,
	}

	if err == nil && m.handler.HasOperationName() && !m.handler.IsCommand() {
		if n, err := m.handler.ToModel(ctx); err != nil {
			m.view.err = err
		} else {
			m.view.model = n.String()
		}
	}

	if m.tabActive {
		return
	}

	m.comp = m.catalog.complete(ctx, m.scratch, line, m.cursor())
	m.suggIdx = -1
}

// cycle replaces the word at the cursor with the next candidate in
// direction dir.
func (m model) cycle(dir int) model {
	n := len(m.comp.Matches)
	if n == 0 {
		return m
	}

	if n == 1 {
		m.replaceWord(m.comp.Matches[0].Str)
		m.tabActive = false
		m.refresh()

		return m
	}

	if !m.tabActive {
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()
		m.suggIdx = -1

		if dir < 0 {
			m.suggIdx = 0
		}
	}

	m.suggIdx = (m.suggIdx + dir + n) % n
	m.replaceWord(m.comp.Matches[m.suggIdx].Str)
	m.refresh()

	return m
}

// replaceWord replaces the completed word and moves the cursor after it.
func (m *model) replaceWord(replacement string) {
	input := m.input.Value()
	start := min(m.comp.Start, len(input))
	end := min(max(m.comp.End, start), len(input))

	out := input[:start] + replacement + input[end:]

	m.input.SetValue(out)
	m.input.SetCursor(utf8.RuneCountInString(out[:start+len(replacement)]))

	m.comp.End = start + len(replacement)
}

func (m model) historyMove(dir int) model {
	idx := m.historyIdx + dir

	switch {
	case idx < 0:
		return m
	case idx >= m.history.Len():
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
	default:
		entry, err := m.history.Get(idx)
		if err != nil {
			return m
		}

		m.historyIdx = idx
		m.input.SetValue(entry)
		m.input.CursorEnd()
	}

	m.tabActive = false
	m.refresh()

	return m
}

func (m model) executeInput() (model, tea.Cmd) {
	ctx := m.ctxFunc()
	line := strings.TrimSpace(m.input.Value())

	if line == "" {
		return m, nil
	}

	m.input.SetValue(line)
	m.refresh()

	view := m.view

	m.input.SetValue("")
	m.refresh()

	echo := tea.Println(formatCommand(line))

	if view.err == nil && view.summary.Command != "" {
		switch view.summary.Command {
		case "q", "quit", "exit":
			m.quitting = true

			return m, tea.Sequence(echo, tea.Quit)
		case "h", "help":
			return m, tea.Sequence(echo, tea.Println(helpMessage()))
		case "clear", "cls":
			return m, tea.ClearScreen
		}
	}

	if err := m.history.Add(line); err != nil {
		m.logger.WarnContext(ctx, "history write failed", slog.Any("error", err))
	}

	m.historyIdx = m.history.Len()
	m.catalog.learn(ctx, m.scratch, line)
	m.refresh()

	m.logger.TraceContext(
		ctx,
		"inspect line",
		slog.String("line", line),
		slog.Bool("ok", view.err == nil),
	)

	return m, tea.Sequence(echo, tea.Println(strings.TrimSuffix(view.render(), "\n")))
}
