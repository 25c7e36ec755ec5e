package inspect

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/opline/log"
)

func testModel(t *testing.T, entries ...string) model {
	t.Helper()

	h := NewHistory("")
	for _, e := range entries {
		if err := h.Add(e); err != nil {
			t.Fatal(err)
		}
	}

	return newModel(context.Background(), nil, h, log.Logger{})
}

func update(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()

	next, cmd := m.Update(msg)

	out, ok := next.(model)
	if !ok {
		t.Fatalf("expected model, got %T", next)
	}

	return out, cmd
}

func typeText(t *testing.T, m model, text string) model {
	t.Helper()

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})

	return m
}

func TestModelParsesInput(t *testing.T) {
	m := typeText(t, testModel(t), "/subsystem=logging:read-resource(recursive=true)")

	if got := m.view.summary.Operation; got != "read-resource" {
		t.Errorf("expected read-resource, got %q", got)
	}

	if !m.view.summary.Complete {
		t.Error("expected complete request")
	}

	if m.view.err != nil {
		t.Fatalf("expected no error, got %v", m.view.err)
	}

	view := m.View()

	for _, want := range []string{
		"/subsystem=logging",
		"recursive=true",
		`"operation" => "read-resource"`,
		"complete=true",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestModelShowsError(t *testing.T) {
	m := typeText(t, testModel(t), ":op(a=1")

	if m.view.err == nil {
		t.Fatal("expected an error")
	}

	view := m.View()
	if !strings.Contains(view, "error: ") || !strings.Contains(view, "^") {
		t.Errorf("expected error with caret in view:\n%s", view)
	}
}

func TestModelEnter(t *testing.T) {
	m := typeText(t, testModel(t), "/subsystem=logging:custom-op")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Error("expected output command")
	}

	if m.input.Value() != "" {
		t.Errorf("expected cleared input, got %q", m.input.Value())
	}

	if m.history.Len() != 1 {
		t.Errorf("expected 1 history entry, got %d", m.history.Len())
	}

	if _, ok := m.catalog.ops["custom-op"]; !ok {
		t.Error("expected entered operation to be learned")
	}
}

func TestModelQuitCommand(t *testing.T) {
	m := typeText(t, testModel(t), "quit")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.quitting {
		t.Error("expected quitting")
	}

	if m.View() != "" {
		t.Error("expected empty view after quit")
	}
}

func TestModelTabCompletes(t *testing.T) {
	m := typeText(t, testModel(t, "/subsystem=logging:read-resource"), "/subsystem=lo")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})

	if got := m.input.Value(); got != "/subsystem=logging" {
		t.Errorf("expected /subsystem=logging, got %q", got)
	}
}

func TestModelTabCycles(t *testing.T) {
	m := typeText(t, testModel(t, "/a=x:read-resource", "/b=y:read-resource"), "/")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if got := m.input.Value(); got != "/a" {
		t.Errorf("expected /a, got %q", got)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if got := m.input.Value(); got != "/b" {
		t.Errorf("expected /b, got %q", got)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if got := m.input.Value(); got != "/" {
		t.Errorf("expected restored input, got %q", got)
	}
}

func TestModelHistory(t *testing.T) {
	m := testModel(t, ":first", ":second")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if got := m.input.Value(); got != ":second" {
		t.Errorf("expected :second, got %q", got)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})

	if got := m.input.Value(); got != ":first" {
		t.Errorf("expected :first, got %q", got)
	}

	if !strings.Contains(m.View(), "1/2") {
		t.Errorf("expected history position in view:\n%s", m.View())
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})

	if got := m.input.Value(); got != "" {
		t.Errorf("expected empty input past newest entry, got %q", got)
	}
}

func TestModelCtrlC(t *testing.T) {
	m := typeText(t, testModel(t), ":op")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if m.input.Value() != "" || m.quitting {
		t.Fatal("expected cleared input without quitting")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if !m.quitting {
		t.Error("expected quitting on empty input")
	}
}

func TestModelWindowSize(t *testing.T) {
	m, _ := update(t, testModel(t), tea.WindowSizeMsg{Width: 120, Height: 40})

	if m.width != 120 {
		t.Errorf("expected width 120, got %d", m.width)
	}
}

func TestModelEdited(t *testing.T) {
	m, _ := update(t, testModel(t), editedMsg{line: ":read-resource(recursive)"})

	if got := m.input.Value(); got != ":read-resource(recursive)" {
		t.Errorf("expected edited line, got %q", got)
	}

	if got := m.view.summary.Operation; got != "read-resource" {
		t.Errorf("expected the edited line to be parsed, got %q", got)
	}
}
