// services/seeder.go
package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"time"

	"boacompra-loader/config"
	"boacompra-loader/data"
	"boacompra-loader/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrMissingPrerequisite     = errors.New("missing prerequisite data")
	ErrUnresolvedReference     = errors.New("unresolved reference")
	ErrCandidateSpaceExhausted = errors.New("candidate space exhausted")
	ErrInvalidLine             = errors.New("invalid order line")
	ErrInvalidStepOrder        = errors.New("invalid step order")
	ErrInvalidValue            = errors.New("generated value fails validation")
)

// Rows is a generated batch ready for the bulk writer.
type Rows struct {
	Data any // a slice of models
	Len  int
}

func rowsOf[T any](rows []T) Rows {
	return Rows{Data: rows, Len: len(rows)}
}

// Generator produces the rows of one table.
type Generator interface {
	Table() string
	DependsOn() []string
	Generate(ctx context.Context, s *Seeder) (Rows, error)
}

// PostWriter runs after its generator's rows were written.
type PostWriter interface {
	AfterWrite(ctx context.Context, s *Seeder) error
}

type StepStatus string

const (
	StepInserted StepStatus = "inserted"
	StepSkipped  StepStatus = "skipped"
	StepFailed   StepStatus = "failed"
)

type StepResult struct {
	Table    string        `json:"table"`
	Status   StepStatus    `json:"status"`
	Rows     int64         `json:"rows"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`
}

// RunSummary is the outcome of one pipeline run.
type RunSummary struct {
	RunID      string       `json:"runId"`
	Seed       int64        `json:"seed"`
	StartedAt  time.Time    `json:"startedAt"`
	FinishedAt time.Time    `json:"finishedAt"`
	Steps      []StepResult `json:"steps"`
}

func (r RunSummary) Failed() []StepResult {
	var out []StepResult
	for _, st := range r.Steps {
		if st.Status == StepFailed {
			out = append(out, st)
		}
	}
	return out
}

func (r RunSummary) Inserted() int64 {
	var n int64
	for _, st := range r.Steps {
		if st.Status == StepInserted {
			n += st.Rows
		}
	}
	return n
}

// Seeder runs the generators in order against one store.
type Seeder struct {
	store    store.Store
	settings config.SeedSettings
	log      zerolog.Logger
	seed     int64
	rng      *rand.Rand
	faker    *Faker
	steps    []Generator
	notifier RunNotifier
	now      func() time.Time
	refs     fs.FS
}

type Option func(*Seeder)

// WithSteps replaces DefaultSteps.
func WithSteps(steps ...Generator) Option {
	return func(s *Seeder) { s.steps = steps }
}

func WithNotifier(n RunNotifier) Option {
	return func(s *Seeder) { s.notifier = n }
}

func WithClock(now func() time.Time) Option {
	return func(s *Seeder) { s.now = now }
}

// WithReferenceFS sets where states.csv and cities.csv are read from.
func WithReferenceFS(fsys fs.FS) Option {
	return func(s *Seeder) { s.refs = fsys }
}

func NewSeeder(st store.Store, settings config.SeedSettings, log zerolog.Logger, opts ...Option) (*Seeder, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("seed settings: %w", err)
	}
	seed := settings.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s := &Seeder{
		store:    st,
		settings: settings,
		log:      log,
		seed:     seed,
		rng:      rand.New(rand.NewSource(seed)),
		faker:    NewFaker(seed),
		steps:    DefaultSteps(),
		notifier: noopNotifier{},
		now:      time.Now,
		refs:     data.FS(settings.CSVBasePath),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := ValidateOrder(s.steps); err != nil {
		return nil, err
	}
	return s, nil
}

// DefaultSteps is the full pipeline in dependency order.
func DefaultSteps() []Generator {
	return []Generator{
		RegionGenerator{},
		MunicipalityGenerator{},
		CustomerGenerator{},
		AddressGenerator{},
		EmailGenerator{},
		ContactGenerator{},
		CategoryGenerator{},
		UnitGenerator{},
		ProductGenerator{},
		OrderStatusGenerator{},
		OrderGenerator{},
		OrderItemGenerator{},
	}
}

// ValidateOrder checks that no table appears twice and that every
// dependency listed in steps runs before its dependants. Dependencies that
// are not part of steps are expected to be loaded already.
func ValidateOrder(steps []Generator) error {
	pos := make(map[string]int, len(steps))
	for i, g := range steps {
		if _, dup := pos[g.Table()]; dup {
			return fmt.Errorf("%w: %s appears twice", ErrInvalidStepOrder, g.Table())
		}
		pos[g.Table()] = i
	}
	for i, g := range steps {
		for _, dep := range g.DependsOn() {
			if j, ok := pos[dep]; ok && j > i {
				return fmt.Errorf("%w: %s runs before its dependency %s", ErrInvalidStepOrder, g.Table(), dep)
			}
		}
	}
	return nil
}

// Run executes every step. A failing step is logged and recorded; the run
// always goes on to the next one.
func (s *Seeder) Run(ctx context.Context) RunSummary {
	summary := RunSummary{
		RunID:     uuid.NewString(),
		Seed:      s.seed,
		StartedAt: s.now(),
	}
	log := s.log.With().Str("run_id", summary.RunID).Logger()
	log.Info().Int64("seed", s.seed).Int("steps", len(s.steps)).Msg("seed run started")

	for _, g := range s.steps {
		summary.Steps = append(summary.Steps, s.runStep(ctx, log, g))
	}
	summary.FinishedAt = s.now()

	failed := len(summary.Failed())
	event := log.Info()
	if failed > 0 {
		event = log.Warn()
	}
	event.Int64("rows", summary.Inserted()).Int("failed_steps", failed).Msg("seed run finished")

	if err := s.notifier.NotifyRun(ctx, summary); err != nil {
		log.Error().Err(err).Msg("Error publishing run summary")
	}
	return summary
}

func (s *Seeder) runStep(ctx context.Context, runLog zerolog.Logger, g Generator) StepResult {
	table := g.Table()
	log := runLog.With().Str("table", table).Logger()
	ctx = log.WithContext(ctx)
	started := time.Now()
	result := StepResult{Table: table}
	fail := func(err error, msg string) StepResult {
		log.Error().Err(err).Msg(msg)
		result.Status = StepFailed
		result.Error = err.Error()
		result.Duration = time.Since(started)
		return result
	}

	empty, err := s.tableIsEmpty(ctx, table)
	if err != nil {
		return fail(err, "Error checking whether table is empty")
	}
	if !empty {
		log.Info().Msgf("%s already contains data", table)
		result.Status = StepSkipped
		result.Duration = time.Since(started)
		return result
	}

	rows, err := g.Generate(ctx, s)
	if err != nil {
		return fail(err, "Error generating rows")
	}
	if rows.Len > 0 {
		n, err := s.store.Append(ctx, table, rows.Data)
		result.Rows = n
		if err != nil {
			return fail(err, "Error writing rows")
		}
	}
	if pw, ok := g.(PostWriter); ok {
		if err := pw.AfterWrite(ctx, s); err != nil {
			return fail(err, "Error in post-write step")
		}
	}

	result.Status = StepInserted
	result.Duration = time.Since(started)
	log.Info().Int64("rows", result.Rows).Dur("took", result.Duration).Msgf("%s loaded", table)
	return result
}

// tableIsEmpty is the idempotency gate: only an empty table is generated.
func (s *Seeder) tableIsEmpty(ctx context.Context, table string) (bool, error) {
	n, err := s.store.Count(ctx, table)
	if err != nil {
		return false, err
	}
	return n == 0, nil
}
