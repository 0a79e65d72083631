// Package errors provides errors that carry slog annotations and the source
// location they were raised at, alongside re-exports of the standard library
// helpers so callers only need one errors import.
package errors

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
)

// Re-exported standard library helpers.

func New(text string) error { return stderrors.New(text) }

func Is(err, target error) bool { return stderrors.Is(err, target) }

func As(err error, target any) bool { return stderrors.As(err, target) }

func Unwrap(err error) error { return stderrors.Unwrap(err) }

func Join(errs ...error) error { return stderrors.Join(errs...) }

// AnnotatedError wraps an error with a message, structured annotations and
// the program counters of the call site.
type AnnotatedError struct {
	msg         string
	err         error
	annotations []slog.Attr
	stack       []uintptr
}

// NewSentinel creates an error suitable for package-level sentinels.
func NewSentinel(msg string) *AnnotatedError {
	return &AnnotatedError{msg: msg, stack: callers(3)}
}

// Wrap annotates an error with a message and optional slog attributes. The
// wrapped error may be nil when only the message and call site matter.
func Wrap(err error, msg string, annotations ...slog.Attr) *AnnotatedError {
	return &AnnotatedError{msg: msg, err: err, annotations: annotations, stack: callers(3)}
}

func callers(skip int) []uintptr {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(skip, pcs)
	return pcs[:n]
}

func (e *AnnotatedError) Error() string {
	if e.err == nil {
		return e.msg
	}
	wrapped := e.err.Error()
	if wrapped == "" {
		return e.msg
	}
	return e.msg + ": " + wrapped
}

func (e *AnnotatedError) Unwrap() error {
	return e.err
}

// source resolves the first frame of the recorded stack to file:line.
func (e *AnnotatedError) source() string {
	if len(e.stack) == 0 {
		return ""
	}
	frames := runtime.CallersFrames(e.stack)
	frame, _ := frames.Next()
	if frame.File == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", frame.File, frame.Line)
}

// DecoratePanic converts a recovered panic value into an error whose source
// points at the panic site rather than the recovery handler.
func DecoratePanic(recovered any) error {
	if recovered == nil {
		return nil
	}

	pcs := make([]uintptr, 64)
	n := runtime.Callers(1, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	// Skip everything up to and including runtime.gopanic so the first
	// recorded frame is where the panic happened.
	var stack []uintptr
	seenPanic := false
	for {
		frame, more := frames.Next()
		if seenPanic {
			stack = append(stack, frame.PC)
		} else if strings.HasPrefix(frame.Function, "runtime.gopanic") || frame.Function == "runtime.panicmem" {
			seenPanic = true
		}
		if !more {
			break
		}
	}

	return &AnnotatedError{msg: fmt.Sprintf("panic: %v", recovered), stack: stack}
}

// SlogError renders an error as a structured attribute with its message,
// originating source location and any annotations found in the error tree.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.Group("error", slog.String("message", "<nil>"))
	}

	var annotations []slog.Attr
	var source string
	collect(err, &annotations, &source)

	attrs := []any{slog.String("message", err.Error())}
	if source != "" {
		attrs = append(attrs, slog.String("source", source))
	}
	if len(annotations) > 0 {
		groupArgs := make([]any, 0, len(annotations))
		for _, a := range annotations {
			groupArgs = append(groupArgs, a)
		}
		attrs = append(attrs, slog.Group("annotations", groupArgs...))
	}
	return slog.Group("error", attrs...)
}

// collect walks the error tree gathering annotations and the outermost
// annotated error's source location.
func collect(err error, annotations *[]slog.Attr, source *string) {
	if err == nil {
		return
	}
	var annotated *AnnotatedError
	if ok := stderrors.As(err, &annotated); !ok || annotated == nil {
		return
	}
	*annotations = append(*annotations, annotated.annotations...)
	if *source == "" {
		*source = annotated.source()
	}
	collect(annotated.err, annotations, source)
}
