package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles of a pretty handler, bound to the color
// profile of its output.
type palette struct {
	key, str, num, time, null lipgloss.Style

	level map[slog.Level]lipgloss.Style
}

func newPalette(w io.Writer) *palette {
	r := lipgloss.NewRenderer(w)

	return &palette{
		key:  r.NewStyle().Foreground(lipgloss.Color("8")),
		str:  r.NewStyle().Foreground(lipgloss.Color("6")),
		num:  r.NewStyle().Foreground(lipgloss.Color("3")),
		time: r.NewStyle().Foreground(lipgloss.Color("4")),
		null: r.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
		level: map[slog.Level]lipgloss.Style{
			slog.Level(LevelTrace): r.NewStyle().Foreground(lipgloss.Color("5")),
			slog.LevelDebug:        r.NewStyle().Foreground(lipgloss.Color("4")),
			slog.LevelInfo:         r.NewStyle().Foreground(lipgloss.Color("2")),
			slog.LevelWarn:         r.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
			slog.LevelError:        r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		},
	}
}

func (p *palette) levelStyle(l slog.Level) lipgloss.Style {
	switch {
	case l >= slog.LevelError:
		return p.level[slog.LevelError]
	case l >= slog.LevelWarn:
		return p.level[slog.LevelWarn]
	case l >= slog.LevelInfo:
		return p.level[slog.LevelInfo]
	case l >= slog.LevelDebug:
		return p.level[slog.LevelDebug]
	}

	return p.level[slog.Level(LevelTrace)]
}

// prettyHandler writes one line per record: time, level, source and
// message followed by key=value attributes, styled with lipgloss.
type prettyHandler struct {
	opts       slog.HandlerOptions
	formatTime FormatTime
	style      *palette
	mu         *sync.Mutex
	w          io.Writer
	prefix     string
	attrs      []byte
}

func newPrettyHandler(w io.Writer, opts *slog.HandlerOptions, ft FormatTime) *prettyHandler {
	return &prettyHandler{
		opts:       *opts,
		formatTime: ft,
		style:      newPalette(w),
		mu:         &sync.Mutex{},
		w:          w,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	if !r.Time.IsZero() {
		if s := h.formatTime(r.Time); s != "" {
			buf.WriteString(h.style.time.Render(s))
			buf.WriteByte(' ')
		}
	}

	buf.WriteString(h.style.levelStyle(r.Level).Render(
		fmt.Sprintf("%-5s", strings.ToUpper(Level(r.Level).String())),
	))

	if h.opts.AddSource && r.PC != 0 {
		if src := r.Source(); src != nil {
			buf.WriteByte(' ')
			buf.WriteString(h.style.key.Render(
				fmt.Sprintf("%s:%d", filepath.Base(src.File), src.Line),
			))
		}
	}

	buf.WriteByte(' ')
	buf.WriteString(r.Message)
	buf.Write(h.attrs)

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(buf, h.prefix, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h

	buf := bytes.NewBuffer(append([]byte(nil), h.attrs...))
	for _, a := range attrs {
		h.writeAttr(buf, h.prefix, a)
	}

	c.attrs = buf.Bytes()

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix = h.prefix + name + "."

	return &c
}

func (h *prettyHandler) writeAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()

	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}

		for _, g := range a.Value.Group() {
			h.writeAttr(buf, prefix, g)
		}

		return
	}

	buf.WriteByte(' ')
	buf.WriteString(h.style.key.Render(prefix + a.Key + "="))
	h.writeValue(buf, a.Value)
}

func (h *prettyHandler) writeValue(buf *bytes.Buffer, v slog.Value) {
	switch v.Kind() {
	case slog.KindString:
		s := v.String()
		if s == "" || strings.ContainsAny(s, " \t\n\"=") {
			s = strconv.Quote(s)
		}

		buf.WriteString(h.style.str.Render(s))
	case slog.KindInt64, slog.KindUint64, slog.KindFloat64, slog.KindBool, slog.KindDuration:
		buf.WriteString(h.style.num.Render(v.String()))
	case slog.KindTime:
		buf.WriteString(h.style.time.Render(h.formatTime(v.Time())))
	default:
		if v.Any() == nil {
			buf.WriteString(h.style.null.Render("<nil>"))

			return
		}

		buf.WriteString(h.style.str.Render(strconv.Quote(v.String())))
	}
}
