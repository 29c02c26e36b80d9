package logger

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/modelcache/internal/ui/output"
	"go.trai.ch/modelcache/internal/ui/style"
)

// Attribute keys naming the model a record is about. zerr metadata uses the
// same keys, so errors and plain records render their subject alike.
const (
	ModelKey   = "model"
	ProjectKey = "project"
	AddressKey = "address"
)

// subject is the cache entry a record refers to.
type subject struct {
	model, project, address string
}

func (s *subject) set(key, value string) bool {
	switch key {
	case ModelKey:
		s.model = value
	case ProjectKey:
		s.project = value
	case AddressKey:
		s.address = value
	default:
		return false
	}
	return true
}

// String renders "[<model or project> <address>]", or "" when nothing is set.
// A model key already names its project, so project is shown only without one.
func (s subject) String() string {
	parts := make([]string, 0, 2)
	switch {
	case s.model != "":
		parts = append(parts, s.model)
	case s.project != "":
		parts = append(parts, s.project)
	}
	if s.address != "" {
		parts = append(parts, s.address)
	}
	if len(parts) == 0 {
		return ""
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// ConsoleHandler is a slog.Handler writing one colored line per record.
// The model, project and address attributes are pulled out of the attribute
// list and printed after the first line of the message.
type ConsoleHandler struct {
	out    *termenv.Output
	level  slog.Leveler
	attrs  []slog.Attr
	prefix string
}

// NewConsoleHandler creates a handler writing to w, or to stderr if w is nil.
func NewConsoleHandler(w io.Writer, opts *slog.HandlerOptions) *ConsoleHandler {
	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}
	return &ConsoleHandler{out: output.New(w), level: level}
}

// Enabled reports whether records at level are written.
func (h *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle writes r.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *ConsoleHandler) Handle(_ context.Context, r slog.Record) error {
	icon, color := levelStyle(r.Level)

	var subj subject
	var rest []string
	collect := func(prefix string, attr slog.Attr) {
		flatten(prefix, attr, func(key string, value slog.Value) {
			if prefix == "" && subj.set(key, value.String()) {
				return
			}
			rest = append(rest, key+"="+value.String())
		})
	}
	for _, attr := range h.attrs {
		collect("", attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		collect(h.prefix, attr)
		return true
	})

	first, more, _ := strings.Cut(r.Message, "\n")
	if icon != "" {
		first = icon + " " + first
	}

	var b strings.Builder
	b.WriteString(h.out.String(first).Foreground(color).String())
	if s := subj.String(); s != "" {
		b.WriteString(" " + h.out.String(s).Foreground(termenv.RGBColor(string(style.Iris))).String())
	}
	if len(rest) > 0 {
		b.WriteString(" " + h.out.String(strings.Join(rest, " ")).Foreground(termenv.RGBColor(string(style.Slate))).String())
	}
	if more != "" {
		b.WriteString("\n" + h.out.String(more).Foreground(color).String())
	}
	b.WriteString("\n")

	_, err := h.out.WriteString(b.String())
	return err
}

// WithAttrs returns a handler that adds attrs to every record.
func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	next := *h
	next.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	next.attrs = append(next.attrs, h.attrs...)
	for _, attr := range attrs {
		if h.prefix != "" {
			attr = slog.Attr{Key: h.prefix + attr.Key, Value: attr.Value}
		}
		next.attrs = append(next.attrs, attr)
	}
	return &next
}

// WithGroup returns a handler that qualifies later attribute keys with name.
// Groups nest, so "a" then "b" yields keys "a.b.<key>".
func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}

func levelStyle(level slog.Level) (string, termenv.Color) {
	switch {
	case level >= slog.LevelError:
		return style.Cross, termenv.RGBColor(string(style.Red))
	case level >= slog.LevelWarn:
		return style.Warning, termenv.RGBColor(string(style.Yellow))
	default:
		return "", termenv.RGBColor(string(style.Slate))
	}
}

// flatten resolves attr and calls emit for each leaf, expanding groups.
func flatten(prefix string, attr slog.Attr, emit func(key string, value slog.Value)) {
	if attr.Equal(slog.Attr{}) {
		return
	}
	value := attr.Value.Resolve()
	if value.Kind() != slog.KindGroup {
		emit(prefix+attr.Key, value)
		return
	}
	if attr.Key != "" {
		prefix += attr.Key + "."
	}
	for _, child := range value.Group() {
		flatten(prefix, child, emit)
	}
}
