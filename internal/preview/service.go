package preview

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ehr/healthgen/internal/generator"
	"github.com/ehr/healthgen/internal/reference"
	"github.com/ehr/healthgen/internal/sink"
	"github.com/ehr/healthgen/internal/timedim"
)

const (
	MaxRounds           = 2
	MaxVisitsPerPatient = 5
	MaxYearSpan         = 5

	maxCachedDatasets = 8
)

var ErrUnknownTable = errors.New("unknown table")

// Key identifies one generated preview dataset.
type Key struct {
	Seed             uint64
	Rounds           int
	VisitsPerPatient int
}

func (k Key) validate() error {
	if k.Rounds < 1 || k.Rounds > MaxRounds {
		return fmt.Errorf("rounds must be between 1 and %d", MaxRounds)
	}
	if k.VisitsPerPatient < 1 || k.VisitsPerPatient > MaxVisitsPerPatient {
		return fmt.Errorf("visits_per_patient must be between 1 and %d", MaxVisitsPerPatient)
	}
	return nil
}

// Service generates small datasets in memory and caches them by Key.
type Service struct {
	catalog *reference.Catalog
	conv    timedim.Converter
	logger  zerolog.Logger

	mu    sync.Mutex
	cache map[Key]*generator.Dataset
}

func NewService(catalog *reference.Catalog, conv timedim.Converter, logger zerolog.Logger) *Service {
	return &Service{
		catalog: catalog,
		conv:    conv,
		logger:  logger,
		cache:   make(map[Key]*generator.Dataset),
	}
}

// Dataset returns the cached dataset for key, generating it on first use.
func (s *Service) Dataset(ctx context.Context, key Key) (*generator.Dataset, error) {
	if err := key.validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if ds, ok := s.cache[key]; ok {
		return ds, nil
	}

	opts := generator.DefaultOptions()
	opts.PatientRounds = key.Rounds
	opts.VisitsPerPatient = key.VisitsPerPatient

	g, err := generator.New(s.catalog, generator.NewSource(key.Seed), generator.NewMemoryLedger(), s.logger, opts)
	if err != nil {
		return nil, err
	}
	ds, err := g.Run(ctx)
	if err != nil {
		return nil, err
	}

	if len(s.cache) >= maxCachedDatasets {
		s.cache = make(map[Key]*generator.Dataset)
	}
	s.cache[key] = ds
	return ds, nil
}

// Table returns the named table of the dataset for key.
func (s *Service) Table(ctx context.Context, key Key, name string) (sink.Table, error) {
	if !knownTable(name) {
		return sink.Table{}, fmt.Errorf("%q: %w", name, ErrUnknownTable)
	}
	ds, err := s.Dataset(ctx, key)
	if err != nil {
		return sink.Table{}, err
	}
	t, _ := ds.Table(name)
	return t, nil
}

// TimeTable generates the time dimension for a span of at most MaxYearSpan
// years.
func (s *Service) TimeTable(startYear, endYear int) (sink.Table, error) {
	if endYear < startYear {
		return sink.Table{}, fmt.Errorf("end_year must not precede start_year")
	}
	if endYear-startYear >= MaxYearSpan {
		return sink.Table{}, fmt.Errorf("at most %d years can be previewed", MaxYearSpan)
	}
	rows, err := timedim.Generate(startYear, endYear, s.conv)
	if err != nil {
		return sink.Table{}, err
	}
	return timedim.Table(rows), nil
}

func knownTable(name string) bool {
	for _, n := range generator.TableNames {
		if n == name {
			return true
		}
	}
	return false
}
