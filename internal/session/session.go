package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"binder/internal/identify"
	"binder/internal/logging"
	"binder/internal/normalize"
	"binder/internal/scan"
)

// Frame is one OCR reading handed in by the frame source.
type Frame struct {
	RawText            string
	RawCollectorNumber string
	RawSetCode         string
}

// Events are the callbacks a confirmation surface hooks into. Nil
// callbacks are skipped.
type Events struct {
	// Feedback surfaces a live reading that did not trigger a lookup.
	Feedback func(name string)
	// Identified delivers a completed identification with candidates.
	Identified func(result identify.Result)
	// NotFound reports a lookup that matched nothing; the surface shows a
	// not-found state and must not retry automatically.
	NotFound func(name string)
	// LookupFailed reports a recoverable catalog failure.
	LookupFailed func(name string, err error)
}

// Option configures a Session.
type Option func(*Session)

// WithClock injects the time source, letting tests drive the gate
// without sleeping.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// Session owns the gate state for one camera stream.
type Session struct {
	pipeline *identify.Pipeline
	windows  scan.Windows
	events   Events
	logger   *slog.Logger
	now      func() time.Time

	mu     sync.Mutex
	state  scan.State
	gen    int
	closed bool

	wg sync.WaitGroup
}

// New constructs a session around a pipeline and gate windows.
func New(pipeline *identify.Pipeline, windows scan.Windows, events Events, logger *slog.Logger, opts ...Option) *Session {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Session{
		pipeline: pipeline,
		windows:  windows,
		events:   events,
		logger:   logger.With(logging.String(logging.FieldComponent, "session")),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HandleFrame processes one reading in arrival order. It never blocks on
// the catalog: an approved frame starts its lookup on a goroutine and
// returns immediately.
func (s *Session) HandleFrame(ctx context.Context, frame Frame) {
	name := normalize.Name(frame.RawText)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	state, action := scan.Step(s.state, name, s.now(), s.windows)
	s.state = state
	gen := s.gen
	s.mu.Unlock()

	switch action.Kind {
	case scan.ActionFeedback:
		if s.events.Feedback != nil {
			s.events.Feedback(action.Text)
		}
	case scan.ActionLookup:
		s.logger.DebugContext(ctx, "stable reading approved", logging.String("name", action.Text))
		s.wg.Add(1)
		go s.lookup(ctx, gen, frame, action.Text)
	}
}

// Close abandons the session. Frames after Close are ignored and any
// in-flight lookup result is discarded when it lands.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.gen++
	s.mu.Unlock()
}

// Wait blocks until any in-flight lookup goroutine has finished.
func (s *Session) Wait() {
	s.wg.Wait()
}

func (s *Session) lookup(ctx context.Context, gen int, frame Frame, name string) {
	defer s.wg.Done()

	result, err := s.pipeline.Identify(ctx, identify.Reading{
		RawName:            frame.RawText,
		RawCollectorNumber: frame.RawCollectorNumber,
		RawSetCode:         frame.RawSetCode,
	})

	matched := err == nil && len(result.Candidates) > 0

	s.mu.Lock()
	stale := s.closed || gen != s.gen
	if !stale {
		// Failure or empty result evicts the dedup entry so the card can
		// retry on a later frame.
		s.state = scan.Complete(s.state, matched)
	}
	s.mu.Unlock()

	if stale {
		s.logger.Debug("discarding lookup result after session close", logging.String("name", name))
		return
	}

	switch {
	case err != nil:
		s.logger.Warn("identification lookup failed", logging.String("name", name), logging.Error(err))
		if s.events.LookupFailed != nil {
			s.events.LookupFailed(name, err)
		}
	case !matched:
		if s.events.NotFound != nil {
			s.events.NotFound(name)
		}
	default:
		if s.events.Identified != nil {
			s.events.Identified(result)
		}
	}
}
