package reconcile

import (
	"errors"
	"strings"
	"time"

	"stock-reconciler/core/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// session is the state of one run. It is owned by a single goroutine.
type session struct {
	id      string
	mode    Mode
	total   int
	started time.Time

	processed int
	skipped   int
	found     int
	errors    []string
	summary   *Summary

	sink   Sink
	logger *zap.Logger
}

func newSession(mode Mode, sink Sink, l *zap.Logger) *session {
	id := uuid.NewString()
	return &session{
		id:      id,
		mode:    mode,
		started: time.Now(),
		errors:  []string{},
		sink:    sink,
		logger:  logger.WithRun(l, id, string(mode)),
	}
}

// emit converts a sink failure into cancellation of the run.
func (s *session) emit(err error) error {
	if err != nil {
		s.logger.Debug("Sink rejected event", zap.Error(err))
		return ErrCanceled
	}
	return nil
}

func (s *session) progress(msg string, current, total int) error {
	return s.emit(s.sink.Progress(msg, current, total))
}

func (s *session) result(res AnalysisResult) error {
	s.processed++
	return s.emit(s.sink.Result(res))
}

// softError records a per-item failure and forwards it to the sink.
func (s *session) softError(err error) error {
	msg := err.Error()
	s.errors = append(s.errors, msg)
	s.logger.Warn("Item skipped", zap.Error(err))
	return s.emit(s.sink.SoftError(msg))
}

func (s *session) report() *Report {
	return &Report{
		RunID:     s.id,
		Mode:      s.mode,
		Total:     s.total,
		Processed: s.processed,
		Skipped:   s.skipped,
		Found:     s.found,
		Errors:    s.errors,
		Summary:   s.summary,
		Duration:  time.Since(s.started),
	}
}

// canceled reports whether err stems from the caller going away.
func canceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// NormalizeKeys trims keys, drops empties and removes duplicates while
// keeping the caller's order.
func NormalizeKeys(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// SplitKeys parses a comma or whitespace separated key list.
func SplitKeys(raw string) []string {
	return NormalizeKeys(strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\n' || r == '\t' || r == '\r'
	}))
}
