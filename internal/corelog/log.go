// Package corelog provides the section-filtered slog logger of the type core.
// typetable and checker log through it; its enabled sections also name
// subtype, bounds and implresolve.
package corelog

import (
	"context"
	"log/slog"
	"os"
	"slices"
	"strings"
)

// enabledSections gates which "section" attributes are allowed through at
// DEBUG/INFO level. WARN and above are never filtered.
var enabledSections = []string{
	"typetable",
	"subtype",
	"bounds",
	"implresolve",
	"checker",
}

var handlerOpts = &slog.HandlerOptions{
	AddSource: true,
	Level:     slog.LevelDebug,
	ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == "time" {
			return slog.Attr{}
		}
		return a
	},
}

var level = new(slog.LevelVar)

// Default is the logger every core component should derive its
// `.With("section", "...")` child logger from.
var Default = slog.New(&filteringHandler{underlying: slog.NewTextHandler(os.Stdout, handlerOpts)})

// SetLevel adjusts the minimum level handled, for the CLI's --log-level flag.
func SetLevel(l slog.Level) {
	level.Set(l)
	handlerOpts.Level = level
}

var _ slog.Handler = &filteringHandler{}

type filteringHandler struct {
	underlying slog.Handler
	sections   []string
}

func (f *filteringHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return l >= level.Level() && f.underlying.Enabled(ctx, l)
}

func (f *filteringHandler) Handle(ctx context.Context, record slog.Record) error {
	if record.Level >= slog.LevelWarn {
		return f.underlying.Handle(ctx, record)
	}
	wantSection := len(f.sections) > 0
	record.Attrs(func(attr slog.Attr) bool {
		wantSection = wantSection || attr.Key == "section" && slices.ContainsFunc(enabledSections, func(section string) bool {
			return strings.HasPrefix(attr.Value.String(), section)
		})
		return !wantSection
	})
	if !wantSection {
		return nil
	}
	return f.underlying.Handle(ctx, record)
}

func (f *filteringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var newAttrs []slog.Attr
	var sections []string
	for _, attr := range attrs {
		if attr.Key == "section" && slices.ContainsFunc(enabledSections, func(section string) bool {
			return section == attr.Value.String()
		}) {
			sections = append(sections, attr.Value.String())
		} else {
			newAttrs = append(newAttrs, attr)
		}
	}
	return &filteringHandler{
		underlying: f.underlying.WithAttrs(newAttrs),
		sections:   sections,
	}
}

func (f *filteringHandler) WithGroup(name string) slog.Handler {
	return &filteringHandler{
		underlying: f.underlying.WithGroup(name),
		sections:   f.sections,
	}
}
