// Package sweep drives the build/run cycle over a range of parameter values
// and assembles the experiment report.
//
// For each value, in ascending order, the controller compiles the benchmark,
// runs the artifact once, and records a section. A build failure aborts the
// whole sweep and no report is produced. A run failure is recorded in its
// section and the sweep moves on.
//
// With Workers > 1 the values are processed by a bounded pool. Sections are
// still assembled by value, so the report is identical to a sequential one.
package sweep

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/mrz1836/keysweep/internal/bench"
	"github.com/mrz1836/keysweep/internal/build"
	"github.com/mrz1836/keysweep/internal/clock"
	"github.com/mrz1836/keysweep/internal/constants"
	"github.com/mrz1836/keysweep/internal/errors"
)

// Builder compiles the benchmark for one value.
type Builder interface {
	Build(ctx context.Context, value int) (*build.Result, error)
}

// Runner executes a compiled artifact.
type Runner interface {
	Run(ctx context.Context, value int, artifact string) bench.Outcome
}

// Range is an inclusive range of parameter values.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// DefaultRange returns 1..99.
func DefaultRange() Range {
	return Range{Start: constants.DefaultRangeStart, End: constants.DefaultRangeEnd}
}

// Validate checks that the range is non-empty and starts at 1 or above.
func (r Range) Validate() error {
	if r.Start < 1 {
		return errors.Wrapf(errors.ErrInvalidRange, "start must be at least 1, got %d", r.Start)
	}
	if r.End < r.Start {
		return errors.Wrapf(errors.ErrInvalidRange, "end %d is below start %d", r.End, r.Start)
	}
	return nil
}

// Len returns the number of values in the range.
func (r Range) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start + 1
}

// Values returns every value in ascending order.
func (r Range) Values() []int {
	values := make([]int, 0, r.Len())
	for v := r.Start; v <= r.End; v++ {
		values = append(values, v)
	}
	return values
}

// EventKind identifies a progress event.
type EventKind string

// Progress event kinds.
const (
	EventStarting  EventKind = "starting"
	EventCompleted EventKind = "completed"
	EventFailed    EventKind = "failed"
)

// Event reports progress on one value. Outcome is set for completed and
// failed events.
type Event struct {
	Kind    EventKind
	Value   int
	Index   int
	Total   int
	Outcome *bench.Outcome
}

// ProgressFunc receives progress events. Calls are serialized.
type ProgressFunc func(Event)

// Config configures a Controller.
type Config struct {
	Range    Range
	Workers  int
	Progress ProgressFunc
	Clock    clock.Clock
}

// Controller runs sweeps.
type Controller struct {
	builder Builder
	runner  Runner
	cfg     Config

	progressMu sync.Mutex
}

// NewController creates a sweep controller.
func NewController(builder Builder, runner Runner, cfg Config) *Controller {
	if cfg.Workers < 1 {
		cfg.Workers = constants.DefaultWorkers
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.RealClock{}
	}
	return &Controller{
		builder: builder,
		runner:  runner,
		cfg:     cfg,
	}
}

// Run performs the sweep. It returns the assembled report, or the first
// fatal error: a build failure, an invalid range, or context cancellation.
// No partial report is ever returned alongside an error.
func (c *Controller) Run(ctx context.Context) (*Report, error) {
	if err := c.cfg.Range.Validate(); err != nil {
		return nil, err
	}

	report := &Report{
		ID:        uuid.NewString(),
		Range:     c.cfg.Range,
		StartedAt: c.cfg.Clock.Now(),
	}

	logger := zerolog.Ctx(ctx).With().
		Str("component", "sweep").
		Str("sweep_id", report.ID).
		Logger()
	ctx = logger.WithContext(ctx)

	logger.Info().
		Int("start", c.cfg.Range.Start).
		Int("end", c.cfg.Range.End).
		Int("workers", c.cfg.Workers).
		Msg("starting sweep")

	var (
		sections []Section
		err      error
	)
	if c.cfg.Workers > 1 {
		sections, err = c.runParallel(ctx)
	} else {
		sections, err = c.runSequential(ctx)
	}
	if err != nil {
		logger.Error().Err(err).Msg("sweep aborted")
		return nil, err
	}

	report.Sections = sections
	report.CompletedAt = c.cfg.Clock.Now()

	logger.Info().
		Int("succeeded", report.Succeeded()).
		Int("failed", report.Failed()).
		Dur("duration_ms", report.Duration()).
		Msg("sweep completed")

	return report, nil
}

// runSequential processes values one at a time, in order.
func (c *Controller) runSequential(ctx context.Context) ([]Section, error) {
	values := c.cfg.Range.Values()
	sections := make([]Section, 0, len(values))

	for i, v := range values {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		section, err := c.runOne(ctx, v, i+1, len(values))
		if err != nil {
			return nil, err
		}
		sections = append(sections, section)
	}

	return sections, nil
}

// runParallel processes values with a bounded worker pool. The first fatal
// error cancels every other worker.
func (c *Controller) runParallel(ctx context.Context) ([]Section, error) {
	values := c.cfg.Range.Values()
	sections := make([]Section, len(values))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.Workers)

	for i, v := range values {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			section, err := c.runOne(gctx, v, i+1, len(values))
			if err != nil {
				return err
			}
			sections[i] = section
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return sections, nil
}

// runOne builds and runs a single value.
func (c *Controller) runOne(ctx context.Context, value, index, total int) (Section, error) {
	c.emit(Event{Kind: EventStarting, Value: value, Index: index, Total: total})

	built, err := c.builder.Build(ctx, value)
	if err != nil {
		return Section{}, err
	}

	outcome := c.runner.Run(ctx, value, built.Artifact)
	if outcome.Canceled {
		if err := ctx.Err(); err != nil {
			return Section{}, err
		}
		return Section{}, errors.ErrInterrupted
	}

	kind := EventCompleted
	if !outcome.Success {
		kind = EventFailed
		zerolog.Ctx(ctx).Warn().Err(outcome.Err()).
			Dur("duration", outcome.Duration).
			Msg("run recorded as failure")
	}
	c.emit(Event{Kind: kind, Value: value, Index: index, Total: total, Outcome: &outcome})

	return Section{Value: value, Outcome: outcome}, nil
}

// emit forwards an event to the progress callback, one at a time.
func (c *Controller) emit(e Event) {
	if c.cfg.Progress == nil {
		return
	}
	c.progressMu.Lock()
	defer c.progressMu.Unlock()
	c.cfg.Progress(e)
}
