package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ehr/healthgen/internal/reference"
)

const (
	DefaultPatientRounds    = 1
	DefaultVisitsPerPatient = 100
	DefaultMaxCodeAttempts  = 1_000_000

	// WarnCodeAttempts is the number of consecutive collisions after which
	// a single warning is logged.
	WarnCodeAttempts = 1000

	nationalCodeDigits = 10
)

// Options sizes a run.
type Options struct {
	PatientRounds    int
	VisitsPerPatient int
	MaxCodeAttempts  int
}

func DefaultOptions() Options {
	return Options{
		PatientRounds:    DefaultPatientRounds,
		VisitsPerPatient: DefaultVisitsPerPatient,
		MaxCodeAttempts:  DefaultMaxCodeAttempts,
	}
}

// Generator produces the dependent entity lists. It is not safe for
// concurrent use.
type Generator struct {
	catalog *reference.Catalog
	rnd     Source
	ledger  Ledger
	logger  zerolog.Logger
	opts    Options
}

// New checks that the catalog fits the cost model and returns a generator.
func New(catalog *reference.Catalog, rnd Source, ledger Ledger, logger zerolog.Logger, opts Options) (*Generator, error) {
	if catalog == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	if rnd == nil || ledger == nil {
		return nil, fmt.Errorf("random source and ledger are required")
	}
	if opts.PatientRounds < 0 || opts.VisitsPerPatient < 0 {
		return nil, fmt.Errorf("patient rounds and visits per patient must not be negative")
	}
	if opts.MaxCodeAttempts <= 0 {
		opts.MaxCodeAttempts = DefaultMaxCodeAttempts
	}
	if err := checkCostBounds(catalog); err != nil {
		return nil, err
	}
	return &Generator{catalog: catalog, rnd: rnd, ledger: ledger, logger: logger, opts: opts}, nil
}

func checkCostBounds(c *reference.Catalog) error {
	if len(c.Departments) > len(DepartmentCostEffect) {
		return fmt.Errorf("%d departments but cost effects exist for %d: %w",
			len(c.Departments), len(DepartmentCostEffect), ErrReferenceDataMissing)
	}
	for key, t := range c.Treatments.Types {
		if t.Effect < 1 || t.Effect > maxTreatmentEffect {
			return fmt.Errorf("treatment type %q effect %d outside [1, %d]", key, t.Effect, maxTreatmentEffect)
		}
	}
	for d, row := range c.Treatments.Descriptions {
		if len(row) > maxIndexEffect {
			return fmt.Errorf("department %d lists %d treatments, at most %d allowed", d+1, len(row), maxIndexEffect)
		}
	}
	return nil
}

// NationalCode draws 10-digit codes until the ledger accepts one.
func (g *Generator) NationalCode(ctx context.Context) (string, error) {
	for attempt := 1; attempt <= g.opts.MaxCodeAttempts; attempt++ {
		code := digits(g.rnd, nationalCodeDigits)
		ok, err := g.ledger.Reserve(ctx, code)
		if err != nil {
			return "", fmt.Errorf("reserve national code: %w", err)
		}
		if ok {
			return code, nil
		}
		if attempt == WarnCodeAttempts {
			g.logger.Warn().Int("attempts", attempt).Msg("national code draws keep colliding")
		}
	}
	return "", fmt.Errorf("after %d attempts: %w", g.opts.MaxCodeAttempts, ErrUniquenessExhausted)
}

// Run generates every entity in dependency order.
func (g *Generator) Run(ctx context.Context) (*Dataset, error) {
	start := time.Now()
	ds := &Dataset{}
	var err error

	ds.Departments = g.Departments()

	if ds.Doctors, err = g.Doctors(ctx, ds.Departments); err != nil {
		return nil, fmt.Errorf("generate doctors: %w", err)
	}
	if ds.Patients, err = g.Patients(ctx); err != nil {
		return nil, fmt.Errorf("generate patients: %w", err)
	}
	if ds.Visits, err = g.Visits(ds.Doctors, ds.Patients); err != nil {
		return nil, fmt.Errorf("generate visits: %w", err)
	}
	if ds.Treatments, err = g.Treatments(ds.Visits, ds.Departments); err != nil {
		return nil, fmt.Errorf("generate treatments: %w", err)
	}
	if ds.Medications, err = g.Medications(ds.Treatments, ds.Visits); err != nil {
		return nil, fmt.Errorf("generate medications: %w", err)
	}
	if ds.Billings, err = g.Billings(ds.Visits, ds.Treatments, ds.Medications); err != nil {
		return nil, fmt.Errorf("generate billing: %w", err)
	}

	g.logger.Info().
		Int("departments", len(ds.Departments)).
		Int("doctors", len(ds.Doctors)).
		Int("patients", len(ds.Patients)).
		Int("visits", len(ds.Visits)).
		Int("treatments", len(ds.Treatments)).
		Int("medications", len(ds.Medications)).
		Int("billings", len(ds.Billings)).
		Dur("elapsed", time.Since(start)).
		Msg("dataset generated")

	return ds, nil
}
