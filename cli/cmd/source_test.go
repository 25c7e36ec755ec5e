package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()

	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	return dir
}

// pipeStdin replaces os.Stdin with a pipe carrying content.
func pipeStdin(t *testing.T, content string) {
	t.Helper()

	old := os.Stdin

	t.Cleanup(func() { os.Stdin = old })

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}

	os.Stdin = r

	go func() {
		defer w.Close()

		_, _ = io.WriteString(w, content)
	}()
}

func readSources(t *testing.T, sources []string) (string, []string) {
	t.Helper()

	src := sourceFilesFrom(WithSourceFiles(context.Background(), sources))
	if src == nil {
		t.Fatal("expected source files")
	}

	data, err := io.ReadAll(src)
	if err != nil {
		t.Fatalf("reading source files: %v", err)
	}

	return string(data), src.Names()
}

func TestWithSourceFilesNone(t *testing.T) {
	for _, sources := range [][]string{nil, {}, {"/nonexistent/a.cli", "/nonexistent/b.cli"}} {
		if src := sourceFilesFrom(WithSourceFiles(context.Background(), sources)); src != nil {
			t.Errorf("%v: expected no source files", sources)
		}
	}
}

func TestWithSourceFiles(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.cli": ":read-resource\n",
		"b.cli": "/subsystem=logging:remove\n",
	})
	a, b := filepath.Join(dir, "a.cli"), filepath.Join(dir, "b.cli")

	if err := os.Symlink(a, filepath.Join(dir, "link.cli")); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		sources []string
		data    string
		names   []string
	}{
		{
			name:    "in order",
			sources: []string{a, b},
			data:    ":read-resource\n/subsystem=logging:remove\n",
			names:   []string{a, b},
		},
		{
			name:    "duplicates read once",
			sources: []string{b, a, b, a},
			data:    "/subsystem=logging:remove\n:read-resource\n",
			names:   []string{b, a},
		},
		{
			name:    "symlink read once",
			sources: []string{a, filepath.Join(dir, "link.cli")},
			data:    ":read-resource\n",
			names:   []string{a},
		},
		{
			name:    "missing skipped",
			sources: []string{"/nonexistent/x.cli", a},
			data:    ":read-resource\n",
			names:   []string{a},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, names := readSources(t, tt.sources)

			if data != tt.data {
				t.Errorf("got %q, want %q", data, tt.data)
			}

			if diff := cmp.Diff(tt.names, names); diff != "" {
				t.Errorf("names mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWithSourceFilesRelative(t *testing.T) {
	dir := writeFiles(t, map[string]string{"ops.cli": ":op\n"})

	t.Chdir(dir)

	data, _ := readSources(t, []string{"ops.cli", filepath.Join(dir, "ops.cli")})
	if data != ":op\n" {
		t.Errorf("got %q, want the file once", data)
	}
}

func TestWithSourceFilesStdinLast(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.cli": "file\n"})

	pipeStdin(t, "stdin\n")

	data, names := readSources(t, []string{"-", filepath.Join(dir, "a.cli"), "-"})

	if data != "file\nstdin\n" {
		t.Errorf("got %q, want stdin once and last", data)
	}

	if diff := cmp.Diff([]string{filepath.Join(dir, "a.cli"), "-"}, names); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
}

func collect(t *testing.T, input string) []Line {
	t.Helper()

	var lines []Line

	for line, err := range ReadLines(strings.NewReader(input)) {
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		lines = append(lines, line)
	}

	return lines
}

func TestReadLines(t *testing.T) {
	input := "/subsystem=logging:add(a=1, \\\n  b=2)\n" +
		"\n" +
		"   # comment\n" +
		":read-resource\r\n" +
		`:op(path=c:\\)` + "\n" +
		"last\\"

	want := []Line{
		{Number: 1, Text: "/subsystem=logging:add(a=1, \\\n  b=2)"},
		{Number: 5, Text: ":read-resource"},
		{Number: 6, Text: `:op(path=c:\\)`},
		{Number: 7, Text: `last\`},
	}

	if diff := cmp.Diff(want, collect(t, input)); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestReadLinesStop(t *testing.T) {
	n := 0

	for range ReadLines(strings.NewReader("a\nb\nc\n")) {
		n++

		break
	}

	if n != 1 {
		t.Errorf("expected to stop after one line, got %d", n)
	}
}

func TestInputRead(t *testing.T) {
	in := Input{Lines: []string{":a", ":b"}}

	var got []Line

	for line, err := range in.read(context.Background()) {
		if err != nil {
			t.Fatal(err)
		}

		got = append(got, line)
	}

	want := []Line{{Number: 1, Text: ":a"}, {Number: 2, Text: ":b"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}

	dir := writeFiles(t, map[string]string{"ops.cli": ":c\n"})
	ctx := WithSourceFiles(context.Background(), []string{filepath.Join(dir, "ops.cli")})

	got = nil

	for line, err := range (Input{}).read(ctx) {
		if err != nil {
			t.Fatal(err)
		}

		got = append(got, line)
	}

	if diff := cmp.Diff([]Line{{Number: 1, Text: ":c"}}, got); diff != "" {
		t.Errorf("source lines mismatch (-want +got):\n%s", diff)
	}
}
