// Package diag is the checker's diagnostic surface (spec.md §6/§7): reports
// by (Loc, message), with positional `{…}` placeholders and advisory style
// tags. It mirrors the collector shape of cottand-ile's frontend/ilerr
// (Errors.With/Merge/HasError), but captures stacks through
// github.com/pkg/errors instead of runtime/debug.Stack so a diagnostic's
// origin can be inspected with errors.StackTrace without hand-rolled
// frame-skipping.
package diag

import (
	"fmt"
	"go/token"
	"log/slog"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Severity is a style tag (spec.md §6). Only SeverityError diagnostics count
// toward the pass's error total (Bag.HasError, the checker's ErrorCount).
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "error"
	}
}

// Code is one of the closed set of error kinds spec.md §7 names.
type Code int

const (
	Mismatch Code = iota
	Unsized
	UnresolvedImpl
	AmbiguousBounds
	ArityMismatch
	Cycle
	Invalid
)

func (c Code) String() string {
	switch c {
	case Mismatch:
		return "mismatch"
	case Unsized:
		return "unsized"
	case UnresolvedImpl:
		return "unresolved-impl"
	case AmbiguousBounds:
		return "ambiguous-bounds"
	case ArityMismatch:
		return "arity-mismatch"
	case Cycle:
		return "cycle"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Loc is the minimal location a diagnostic is anchored to; ast.Range
// satisfies it without diag needing to import the ast package back.
type Loc interface {
	Pos() token.Pos
}

// Diagnostic is one (Loc, message) report. Message already has its `{…}`
// placeholders substituted — see New.
type Diagnostic struct {
	Code     Code
	Severity Severity
	Loc      Loc
	Message  string
	cause    error
}

// Error satisfies the error interface so a Diagnostic can be wrapped,
// logged, or returned directly from a fallible internal helper.
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("(%s E%03d) %s", d.Severity, d.Code, d.Message)
}

// Cause returns the github.com/pkg/errors-wrapped value carrying this
// diagnostic's stack trace.
func (d *Diagnostic) Cause() error { return d.cause }

// New builds a Diagnostic at loc with the given code and severity,
// substituting positional `{0}`, `{1}`, ... placeholders in template with
// args' string forms (spec.md §6), and records a stack trace via
// github.com/pkg/errors.
func New(loc Loc, code Code, severity Severity, template string, args ...any) *Diagnostic {
	msg := template
	for i, a := range args {
		msg = strings.ReplaceAll(msg, "{"+strconv.Itoa(i)+"}", fmt.Sprint(a))
	}
	d := &Diagnostic{Code: code, Severity: severity, Loc: loc, Message: msg}
	d.cause = errors.WithStack(d)
	return d
}

// Bag collects diagnostics across a type-check pass; the pass itself never
// unwinds on a diagnostic (spec.md §7), it keeps walking and accumulates.
type Bag struct {
	diags []*Diagnostic
}

func (b *Bag) With(d ...*Diagnostic) *Bag {
	if b == nil {
		return &Bag{diags: d}
	}
	b.diags = append(b.diags, d...)
	return b
}

func (b *Bag) Merge(other *Bag) *Bag {
	if b == nil {
		return other
	}
	if other == nil || len(other.diags) == 0 {
		return b
	}
	return b.With(other.diags...)
}

func (b *Bag) Diagnostics() []*Diagnostic { return b.diags }

// HasError reports whether any collected diagnostic is SeverityError — a
// non-zero error count aborts downstream compilation (spec.md §7).
func (b *Bag) HasError() bool {
	if b == nil {
		return false
	}
	for _, d := range b.diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// LogValue lets a Bag be passed straight to slog attrs, mirroring
// ilerr.Errors.LogValue.
func (b *Bag) LogValue() slog.Value {
	if b == nil {
		return slog.GroupValue()
	}
	attrs := make([]slog.Attr, len(b.diags))
	for i, d := range b.diags {
		attrs[i] = slog.Attr{Key: fmt.Sprintf("d%d", i), Value: slog.StringValue(d.Error())}
	}
	return slog.GroupValue(attrs...)
}
