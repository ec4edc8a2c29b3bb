package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"binder/internal/config"
	"binder/internal/identify"
	"binder/internal/ledger"
	"binder/internal/ledger/store"
	"binder/internal/notifications"
	"binder/internal/scan"
	"binder/internal/session"
	"binder/internal/textutil"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var inputPath string
	var frameInterval time.Duration
	var location string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Feed OCR frame readings through the gate and record confirmed cards",
		Long: `Read OCR frames from a file or stdin, one frame per line. Each line is
the raw card name, optionally followed by tab-separated collector number
and set code:

  Lightning Bolt
  Lightning Bolt	141	M21

Frames are treated as evenly spaced at --frame-interval. Readings that
hold stable across the stability window trigger a catalog lookup;
auto-confirmed matches are appended to the ledger as single-copy adds.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			reader, closeInput, err := openFrameInput(inputPath, cmd.InOrStdin())
			if err != nil {
				return err
			}
			defer closeInput()

			logger, err := ctx.buildLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			index, err := ctx.buildIndex()
			if err != nil {
				return err
			}
			pipeline, err := identify.New(index, logger, identify.Options{
				AutoConfirmThreshold: cfg.Identify.AutoConfirmThreshold,
				DisambiguationMargin: cfg.Identify.DisambiguationMargin,
				CandidateFloor:       cfg.Identify.CandidateFloor,
				CandidateLimit:       cfg.Identify.CandidateLimit,
			})
			if err != nil {
				return err
			}

			collector := &scanCollector{}
			windows := scan.Windows{
				Stability: time.Duration(cfg.Scan.StabilityWindowMS) * time.Millisecond,
				Dedup:     time.Duration(cfg.Scan.DedupWindowSeconds) * time.Second,
			}

			// Frames from a file carry no wall-clock timing, so the gate
			// runs on a synthetic clock spaced at the frame interval.
			clock := time.Now()
			s := session.New(pipeline, windows, collector.events(), logger,
				session.WithClock(func() time.Time { return clock }))

			frames := 0
			scanner := bufio.NewScanner(reader)
			for scanner.Scan() {
				frame := parseFrame(scanner.Text())
				s.HandleFrame(cmd.Context(), frame)
				clock = clock.Add(frameInterval)
				frames++
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read frames: %w", err)
			}
			s.Wait()
			s.Close()

			notifier := notifications.NewService(cfg)
			return ctx.withStore(func(st *store.Store, _ *config.Config) error {
				return collector.report(cmd, st, notifier, textutil.SanitizeToken(location), asJSON)
			})
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Frame file (default: stdin)")
	cmd.Flags().DurationVar(&frameInterval, "frame-interval", 500*time.Millisecond, "Synthetic spacing between frames")
	cmd.Flags().StringVar(&location, "location", "", "Storage location for confirmed adds")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of text output")
	return cmd
}

func openFrameInput(path string, stdin io.Reader) (io.Reader, func(), error) {
	path = strings.TrimSpace(path)
	if path == "" || path == "-" {
		return stdin, func() {}, nil
	}
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve input path: %w", err)
	}
	file, err := os.Open(expanded)
	if err != nil {
		return nil, nil, fmt.Errorf("open frame file: %w", err)
	}
	return file, func() { _ = file.Close() }, nil
}

func parseFrame(line string) session.Frame {
	fields := strings.Split(line, "\t")
	frame := session.Frame{RawText: fields[0]}
	if len(fields) > 1 {
		frame.RawCollectorNumber = fields[1]
	}
	if len(fields) > 2 {
		frame.RawSetCode = fields[2]
	}
	return frame
}

// scanCollector accumulates session outcomes so the command can apply
// and print them after all frames are fed.
type scanCollector struct {
	mu         sync.Mutex
	identified []identify.Result
	notFound   []string
	failures   []scanFailure
}

type scanFailure struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

func (c *scanCollector) events() session.Events {
	return session.Events{
		Identified: func(result identify.Result) {
			c.mu.Lock()
			c.identified = append(c.identified, result)
			c.mu.Unlock()
		},
		NotFound: func(name string) {
			c.mu.Lock()
			c.notFound = append(c.notFound, name)
			c.mu.Unlock()
		},
		LookupFailed: func(name string, err error) {
			c.mu.Lock()
			c.failures = append(c.failures, scanFailure{Name: name, Error: err.Error()})
			c.mu.Unlock()
		},
	}
}

// scanReport is the JSON projection of one scan run.
type scanReport struct {
	Added    []scanAdded       `json:"added"`
	Review   []scanReviewEntry `json:"review"`
	NotFound []string          `json:"not_found"`
	Failures []scanFailure     `json:"failures"`
}

type scanAdded struct {
	Entry string `json:"entry"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

type scanReviewEntry struct {
	Query      string          `json:"query"`
	Candidates []scanCandidate `json:"candidates"`
}

type scanCandidate struct {
	Entry string `json:"entry"`
	Name  string `json:"name"`
	Set   string `json:"set"`
	Score int    `json:"score"`
}

func (c *scanCollector) report(cmd *cobra.Command, st *store.Store, notifier notifications.Service, location string, asJSON bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := cmd.OutOrStdout()
	report := scanReport{
		NotFound: c.notFound,
		Failures: c.failures,
	}

	for _, result := range c.identified {
		top, ok := result.Top()
		if !ok {
			continue
		}
		if result.AutoConfirmed {
			ev := ledger.Add{
				Meta:     ledger.NewMeta(top.Entry.ID, time.Now()),
				Quantity: 1,
				Location: location,
			}
			if err := st.Append(cmd.Context(), ev); err != nil {
				return err
			}
			if err := notifier.NotifyCardAdded(cmd.Context(), top.Entry.Name, 1); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "notify add: %v\n", err)
			}
			report.Added = append(report.Added, scanAdded{
				Entry: string(top.Entry.ID),
				Name:  top.Entry.Name,
				Score: top.Score,
			})
			continue
		}

		review := scanReviewEntry{Query: result.Normalized.Name}
		for _, candidate := range result.Candidates {
			review.Candidates = append(review.Candidates, scanCandidate{
				Entry: string(candidate.Entry.ID),
				Name:  candidate.Entry.Name,
				Set:   candidate.Entry.SetCode,
				Score: candidate.Score,
			})
		}
		report.Review = append(report.Review, review)
		if err := notifier.NotifyReviewNeeded(cmd.Context(), result.Normalized.Name, len(result.Candidates)); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "notify review: %v\n", err)
		}
	}

	for _, name := range c.notFound {
		if err := notifier.NotifyNotFound(cmd.Context(), name); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "notify not-found: %v\n", err)
		}
	}

	if asJSON {
		return writeJSON(cmd, report)
	}

	for _, added := range report.Added {
		fmt.Fprintf(out, "Added %s (%s, score %d)\n", added.Name, added.Entry, added.Score)
	}
	for _, review := range report.Review {
		fmt.Fprintf(out, "Review needed for %q:\n", review.Query)
		rows := make([][]string, 0, len(review.Candidates))
		for _, candidate := range review.Candidates {
			rows = append(rows, []string{candidate.Entry, candidate.Name, candidate.Set, fmt.Sprintf("%d", candidate.Score)})
		}
		fmt.Fprintln(out, renderTable(
			[]string{"Entry", "Name", "Set", "Score"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight},
		))
	}
	for _, name := range report.NotFound {
		fmt.Fprintf(out, "Not found: %s\n", name)
	}
	for _, failure := range report.Failures {
		fmt.Fprintf(out, "Lookup failed for %s: %s\n", failure.Name, failure.Error)
	}
	fmt.Fprintf(out, "Scan complete: %d added, %d for review, %d not found, %d failed\n",
		len(report.Added), len(report.Review), len(report.NotFound), len(report.Failures))
	return nil
}
