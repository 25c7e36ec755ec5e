package inspect

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const defaultEditor = "vi"

// editedMsg carries the line read back from the editor.
type editedMsg struct{ line string }

// editErrorMsg is sent when the editor could not be run.
type editErrorMsg struct{ err error }

// editLineCommand implements [tea.ExecCommand]. It writes the input line
// to a temporary file, opens the user's editor on it, and reads the first
// request back. Continuation lines ending in a backslash are joined.
type editLineCommand struct {
	ctxFunc func() context.Context
	line    string
	result  string
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

func (c *editLineCommand) SetStdin(r io.Reader)  { c.stdin = r }
func (c *editLineCommand) SetStdout(w io.Writer) { c.stdout = w }
func (c *editLineCommand) SetStderr(w io.Writer) { c.stderr = w }

func (c *editLineCommand) Run() error {
	f, err := os.CreateTemp(os.TempDir(), "opline-*.cli")
	if err != nil {
		return err
	}

	path := f.Name()
	defer os.Remove(path)

	_, err = f.WriteString(c.line + "\n")
	if cerr := f.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		return err
	}

	editor := os.Getenv("VISUAL")
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}

	if editor == "" {
		editor = defaultEditor
	}

	cmd := exec.CommandContext(c.ctxFunc(), editor, path)
	cmd.Stdin = c.stdin
	cmd.Stdout = c.stdout
	cmd.Stderr = c.stderr

	if err := cmd.Run(); err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	c.result = firstRequest(string(data))

	return nil
}

// editLine returns the command that edits line in an external editor.
func editLine(ctxFunc func() context.Context, line string) tea.Cmd {
	c := &editLineCommand{ctxFunc: ctxFunc, line: line}

	return tea.Exec(c, func(err error) tea.Msg {
		if err != nil {
			return editErrorMsg{err: err}
		}

		return editedMsg{line: c.result}
	})
}

// firstRequest returns the first line of text that is neither blank nor a
// '#' comment, joined with the lines it continues onto.
func firstRequest(text string) string {
	var sb strings.Builder

	for l := range strings.Lines(text) {
		l = strings.TrimRight(l, "\r\n")

		if sb.Len() == 0 {
			if t := strings.TrimSpace(l); t == "" || strings.HasPrefix(t, "#") {
				continue
			}
		}

		n := len(l) - len(strings.TrimRight(l, `\`))
		if n%2 == 1 {
			sb.WriteString(l[:len(l)-1])

			continue
		}

		sb.WriteString(l)

		break
	}

	return strings.TrimSpace(sb.String())
}
