// Package errlog is the append-only exception log of the register.
//
// A Sink is opened once by the program, passed to every component that reports
// failures, and closed on shutdown. Each logged error becomes one JSON line with
// the time, the error message, its apperror kind and a trace of where it came from.
package errlog

import (
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"pos-register/pkg/apperror"

	"github.com/pkg/errors"
)

const DefaultFileName = "pos-application-log.txt"

type stackTracer interface {
	StackTrace() errors.StackTrace
}

type Sink struct {
	logger *slog.Logger
	closer io.Closer
}

// Open appends to the file at path, creating it if needed.
func Open(path string) (*Sink, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open error log %s", path)
	}
	sink := NewSink(file)
	sink.closer = file
	return sink, nil
}

func NewSink(w io.Writer) *Sink {
	return &Sink{logger: slog.New(slog.NewJSONHandler(w, nil))}
}

// LogException never fails: write errors are dropped by the handler.
func (s *Sink) LogException(err error) {
	if err == nil {
		return
	}
	s.logger.Error(err.Error(),
		"kind", apperror.KindOf(err).String(),
		"trace", originTrail(err))
}

func (s *Sink) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// originTrail formats the deepest stack trace recorded in err's chain. When no
// error in the chain carries one, the stack of LogException's caller is used.
func originTrail(err error) string {
	var trace errors.StackTrace
	for e := err; e != nil; e = stderrors.Unwrap(e) {
		if st, ok := e.(stackTracer); ok {
			trace = st.StackTrace()
		}
	}
	if trace == nil {
		trace = errors.New("").(stackTracer).StackTrace()
		if len(trace) > 2 {
			trace = trace[2:]
		}
	}
	return strings.TrimSpace(fmt.Sprintf("%+v", trace))
}

// ExceptionLogger is what components that report failures depend on.
type ExceptionLogger interface {
	LogException(err error)
}

var _ ExceptionLogger = &Sink{}
