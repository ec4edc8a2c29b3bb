package identify

import (
	"context"
	"fmt"
	"log/slog"

	"binder/internal/catalog"
	"binder/internal/logging"
	"binder/internal/normalize"
)

// Default decision thresholds. Calibration values.
const (
	DefaultAutoConfirmThreshold = 80
	DefaultDisambiguationMargin = 20
	DefaultCandidateFloor       = 20
	DefaultCandidateLimit       = 3
)

// Options tunes the pipeline's decision policy. Zero fields take defaults.
type Options struct {
	AutoConfirmThreshold int
	DisambiguationMargin int
	CandidateFloor       int
	CandidateLimit       int
}

func (o Options) withDefaults() Options {
	if o.AutoConfirmThreshold <= 0 {
		o.AutoConfirmThreshold = DefaultAutoConfirmThreshold
	}
	if o.DisambiguationMargin <= 0 {
		o.DisambiguationMargin = DefaultDisambiguationMargin
	}
	if o.CandidateFloor <= 0 {
		o.CandidateFloor = DefaultCandidateFloor
	}
	if o.CandidateLimit <= 0 {
		o.CandidateLimit = DefaultCandidateLimit
	}
	return o
}

// Reading carries the raw OCR fields of one frame.
type Reading struct {
	RawName            string
	RawCollectorNumber string
	RawSetCode         string
}

// Result is the pipeline output handed to the confirmation surface.
type Result struct {
	Normalized    normalize.Reading
	Candidates    []catalog.Candidate
	AutoConfirmed bool
}

// Top returns the best candidate, or false when there is none.
func (r Result) Top() (catalog.Candidate, bool) {
	if len(r.Candidates) == 0 {
		return catalog.Candidate{}, false
	}
	return r.Candidates[0], true
}

// Pipeline runs Normalizer then catalog search for gate-approved readings.
type Pipeline struct {
	index  catalog.Index
	logger *slog.Logger
	opts   Options
}

// New constructs a pipeline over the supplied catalog index.
func New(index catalog.Index, logger *slog.Logger, opts Options) (*Pipeline, error) {
	if index == nil {
		return nil, fmt.Errorf("identify: catalog index required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{
		index:  index,
		logger: logger.With(logging.String(logging.FieldComponent, "identify")),
		opts:   opts.withDefaults(),
	}, nil
}

// Identify normalizes the reading, ranks catalog candidates, and applies
// the auto-confirm policy. An empty candidate list with a nil error means
// no catalog match; the caller shows "not found" rather than retrying.
func (p *Pipeline) Identify(ctx context.Context, reading Reading) (Result, error) {
	normalized := normalize.FromRaw(reading.RawName, reading.RawCollectorNumber, reading.RawSetCode)

	candidates, err := p.index.Search(ctx, catalog.Query{
		Name:            normalized.Name,
		CollectorNumber: normalized.CollectorNumber,
		SetCode:         normalized.SetCode,
		Limit:           p.opts.CandidateLimit,
	})
	if err != nil {
		return Result{}, fmt.Errorf("catalog search: %w", err)
	}

	result := Result{
		Normalized: normalized,
		Candidates: filterFloor(candidates, p.opts.CandidateFloor),
	}
	result.AutoConfirmed = p.decide(result.Candidates)

	attrs := []logging.Attr{
		logging.String("query", normalized.Name),
		logging.Int("ocr_confidence", normalized.Confidence),
		logging.Int("candidates", len(result.Candidates)),
		logging.Bool("auto_confirmed", result.AutoConfirmed),
	}
	if top, ok := result.Top(); ok {
		attrs = append(attrs,
			logging.String("top_id", string(top.Entry.ID)),
			logging.String("top_name", top.Entry.Name),
			logging.Int("top_score", top.Score))
	}
	p.logger.InfoContext(ctx, "identification decision", logging.Args(attrs...)...)

	return result, nil
}

// decide applies the auto-confirm policy: the top candidate is accepted
// without interaction iff it clears the threshold and either stands alone
// or leads the runner-up by more than the disambiguation margin.
func (p *Pipeline) decide(candidates []catalog.Candidate) bool {
	if len(candidates) == 0 {
		return false
	}
	top := candidates[0]
	if top.Score < p.opts.AutoConfirmThreshold {
		return false
	}
	if len(candidates) == 1 {
		return true
	}
	return top.Score-candidates[1].Score > p.opts.DisambiguationMargin
}

func filterFloor(candidates []catalog.Candidate, floor int) []catalog.Candidate {
	filtered := candidates[:0]
	for _, c := range candidates {
		if c.Score >= floor {
			filtered = append(filtered, c)
		}
	}
	return filtered
}
