package stream

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"stock-reconciler/core/reconcile"

	"github.com/goccy/go-json"
)

// State is the lifecycle position of a Publisher.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateComplete
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateComplete:
		return "complete"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

var (
	// ErrStreamClosed is returned for any event after the terminal one.
	ErrStreamClosed = errors.New("stream already terminated")
	// ErrSummaryEmitted is returned when a second summary is published.
	ErrSummaryEmitted = errors.New("summary already emitted")
)

type flusher interface {
	Flush() error
}

// Publisher frames events onto a one-way stream. It implements reconcile.Sink
// and adds the terminal Complete and Fail events. A write error moves the
// publisher to StateFailed and is returned so the producer stops.
type Publisher struct {
	mu      sync.Mutex
	w       io.Writer
	state   State
	summary bool
	results int
	errors  []string
}

// NewPublisher creates a publisher writing to w. When w has a
// Flush() error method, it is flushed after every frame.
func NewPublisher(w io.Writer) *Publisher {
	return &Publisher{w: w}
}

// State returns the current lifecycle state.
func (p *Publisher) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Progress publishes a progress event.
func (p *Publisher) Progress(message string, current, total int) error {
	return p.publish(Event{Type: TypeProgress, Message: message, Current: current, Total: total})
}

// Result publishes one analysis result.
func (p *Publisher) Result(result reconcile.AnalysisResult) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.writeLocked(Event{Type: TypeResult, Result: &result}); err != nil {
		return err
	}
	p.results++
	return nil
}

// Summary publishes the run summary. It may be called at most once.
func (p *Publisher) Summary(summary reconcile.Summary) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.summary {
		return ErrSummaryEmitted
	}
	if err := p.writeLocked(Event{Type: TypeSummary, Summary: &summary}); err != nil {
		return err
	}
	p.summary = true
	return nil
}

// SoftError publishes a non-terminal error and records it for Complete.
func (p *Publisher) SoftError(message string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.writeLocked(Event{Type: TypeError, Message: message}); err != nil {
		return err
	}
	p.errors = append(p.errors, message)
	return nil
}

// Heartbeat writes a comment frame that readers ignore. It keeps idle
// connections from being reaped by proxies.
func (p *Publisher) Heartbeat() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.terminatedLocked() {
		return ErrStreamClosed
	}
	return p.flushLocked([]byte(": ping\n\n"))
}

// Complete ends the stream successfully. total is the candidate count.
func (p *Publisher) Complete(total int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	errs := append([]string(nil), p.errors...)
	if err := p.writeLocked(Event{Type: TypeComplete, Results: p.results, Errors: errs, Total: total}); err != nil {
		return err
	}
	p.state = StateComplete
	return nil
}

// Fail ends the stream with a fatal error.
func (p *Publisher) Fail(message string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.writeLocked(Event{Type: TypeError, Message: message, Fatal: true}); err != nil {
		return err
	}
	p.state = StateFailed
	return nil
}

func (p *Publisher) publish(e Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.writeLocked(e)
}

func (p *Publisher) terminatedLocked() bool {
	return p.state == StateComplete || p.state == StateFailed
}

func (p *Publisher) writeLocked(e Event) error {
	if p.terminatedLocked() {
		return ErrStreamClosed
	}
	frame, err := Encode(e)
	if err != nil {
		return err
	}
	if err := p.flushLocked(frame); err != nil {
		return err
	}
	if p.state == StateIdle {
		p.state = StateRunning
	}
	return nil
}

func (p *Publisher) flushLocked(frame []byte) error {
	if _, err := p.w.Write(frame); err != nil {
		p.state = StateFailed
		return fmt.Errorf("write frame: %w", err)
	}
	if f, ok := p.w.(flusher); ok {
		if err := f.Flush(); err != nil {
			p.state = StateFailed
			return fmt.Errorf("flush frame: %w", err)
		}
	}
	return nil
}

// Encode renders e as one "data: <json>\n\n" frame.
func Encode(e Event) ([]byte, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encode %s event: %w", e.Type, err)
	}
	frame := make([]byte, 0, len(payload)+8)
	frame = append(frame, "data: "...)
	frame = append(frame, payload...)
	frame = append(frame, '\n', '\n')
	return frame, nil
}
