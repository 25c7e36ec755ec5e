package cmd

import (
	"bufio"
	"context"
	"io"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/klauspost/readahead"
)

type sourceFilesKey struct{}

// SourceFiles reads the files named by the global --source flag in order.
type SourceFiles interface {
	io.Reader
	// Names returns the names of the files read, "-" for stdin.
	Names() []string
}

type sourceFiles struct {
	names    []string
	files    []*os.File
	hasStdin bool
	r        io.Reader
}

func (s *sourceFiles) Names() []string {
	names := append([]string(nil), s.names...)
	if s.hasStdin {
		names = append(names, stdinSource)
	}

	return names
}

// Read implements io.Reader by reading from all source files in order,
// then stdin if present.
func (s *sourceFiles) Read(p []byte) (int, error) {
	if s.r == nil {
		readers := make([]io.Reader, 0, len(s.files)+1)
		for _, f := range s.files {
			readers = append(readers, f)
		}

		if s.hasStdin {
			readers = append(readers, os.Stdin)
		}

		s.r = io.MultiReader(readers...)
	}

	return s.r.Read(p)
}

// fileKey uniquely identifies a file by its device and inode numbers.
type fileKey struct {
	dev uint64
	ino uint64
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// WithSourceFiles returns a new context.Context containing a [SourceFiles]
// that reads from the given sources.
//
// Paths that resolve to the same file are read once. All occurrences of "-"
// are replaced with a single stdin reader placed last.
func WithSourceFiles(ctx context.Context, sources []string) context.Context {
	return context.WithValue(ctx, sourceFilesKey{}, buildSourceFiles(sources))
}

func buildSourceFiles(sources []string) SourceFiles {
	if len(sources) == 0 {
		return nil
	}

	var srcs sourceFiles

	seen := make(map[fileKey]struct{})

	stdinInfo, _ := os.Stdin.Stat()
	stdinKey, _ := makeFileKey(stdinInfo)

	for _, src := range sources {
		if src == stdinSource {
			seen[stdinKey] = struct{}{}

			continue
		}

		if f, ok := openUniqueFile(src, seen); ok {
			srcs.names = append(srcs.names, src)
			srcs.files = append(srcs.files, f)
		}
	}

	// stdin may also have been named by path
	_, srcs.hasStdin = seen[stdinKey]

	if len(srcs.files) == 0 && !srcs.hasStdin {
		return nil
	}

	return &srcs
}

// openUniqueFile opens the file at path unless a file with the same device
// and inode was seen before.
func openUniqueFile(path string, seen map[fileKey]struct{}) (*os.File, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, false
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, false
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, false
	}

	key, ok := makeFileKey(info)
	if !ok {
		return nil, false
	}

	if _, exists := seen[key]; exists {
		return nil, false
	}

	seen[key] = struct{}{}

	file, err := os.Open(resolved)
	if err != nil {
		return nil, false
	}

	return file, true
}

func makeFileKey(info os.FileInfo) (fileKey, bool) {
	if info == nil {
		return fileKey{}, false
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return fileKey{}, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true
}

func sourceFilesFrom(ctx context.Context) SourceFiles {
	r, _ := ctx.Value(sourceFilesKey{}).(SourceFiles)

	return r
}

// Line is one logical input line.
type Line struct {
	// Number is the 1-based number of the first physical line.
	Number int
	Text   string
}

// Input selects the lines a command reads.
type Input struct {
	Lines []string `arg:"" help:"Lines to read. Without any, lines are read from --source or stdin." optional:""`
}

// read returns the lines to process: the positional lines if any, else
// the source files in ctx, else stdin.
func (in Input) read(ctx context.Context) iter.Seq2[Line, error] {
	if len(in.Lines) > 0 {
		return func(yield func(Line, error) bool) {
			for i, text := range in.Lines {
				if !yield(Line{Number: i + 1, Text: text}, nil) {
					return
				}
			}
		}
	}

	var r io.Reader = os.Stdin
	if src := sourceFilesFrom(ctx); src != nil {
		r = src
	}

	return ReadLines(r)
}

// ReadLines splits r into logical lines.
//
// A physical line ending in an unescaped backslash continues on the next
// line; the line break is kept so the parser elides it together with the
// backslash. Blank lines and lines starting with '#' are skipped.
func ReadLines(r io.Reader) iter.Seq2[Line, error] {
	return func(yield func(Line, error) bool) {
		ra := readahead.NewReader(r)
		defer ra.Close()

		sc := bufio.NewScanner(ra)

		var (
			sb    strings.Builder
			first int
			num   int
		)

		for sc.Scan() {
			num++

			text := strings.TrimSuffix(sc.Text(), "\r")

			if sb.Len() == 0 {
				first = num

				trimmed := strings.TrimSpace(text)
				if trimmed == "" || strings.HasPrefix(trimmed, "#") {
					continue
				}
			}

			sb.WriteString(text)

			if continues(text) {
				sb.WriteByte('\n')

				continue
			}

			if !yield(Line{Number: first, Text: sb.String()}, nil) {
				return
			}

			sb.Reset()
		}

		if err := sc.Err(); err != nil {
			yield(Line{}, ErrReadInput.Wrap(err))

			return
		}

		if sb.Len() > 0 {
			yield(Line{Number: first, Text: strings.TrimSuffix(sb.String(), "\n")}, nil)
		}
	}
}

// continues reports whether text ends in an odd number of backslashes.
func continues(text string) bool {
	n := len(text) - len(strings.TrimRight(text, `\`))

	return n%2 == 1
}
