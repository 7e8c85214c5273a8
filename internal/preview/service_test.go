package preview

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ehr/healthgen/internal/reference"
	"github.com/ehr/healthgen/internal/timedim"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	catalog, err := reference.Default()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return NewService(catalog, timedim.PTime{}, zerolog.Nop())
}

func TestService_DatasetIsCached(t *testing.T) {
	svc := newTestService(t)
	key := Key{Seed: 3, Rounds: 1, VisitsPerPatient: 1}

	first, err := svc.Dataset(context.Background(), key)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Dataset(context.Background(), key)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Error("expected the cached dataset on the second call")
	}
	if len(first.Visits) != len(first.Patients) {
		t.Errorf("expected one visit per patient, got %d visits for %d patients", len(first.Visits), len(first.Patients))
	}
}

func TestService_CacheIsBounded(t *testing.T) {
	svc := newTestService(t)
	for seed := uint64(1); seed <= maxCachedDatasets+1; seed++ {
		if _, err := svc.Dataset(context.Background(), Key{Seed: seed, Rounds: 1, VisitsPerPatient: 1}); err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
	}
	if len(svc.cache) > maxCachedDatasets {
		t.Errorf("expected at most %d cached datasets, got %d", maxCachedDatasets, len(svc.cache))
	}
}

func TestService_KeyValidation(t *testing.T) {
	svc := newTestService(t)
	tests := []Key{
		{Seed: 1, Rounds: 0, VisitsPerPatient: 1},
		{Seed: 1, Rounds: MaxRounds + 1, VisitsPerPatient: 1},
		{Seed: 1, Rounds: 1, VisitsPerPatient: 0},
		{Seed: 1, Rounds: 1, VisitsPerPatient: MaxVisitsPerPatient + 1},
	}
	for _, key := range tests {
		if _, err := svc.Dataset(context.Background(), key); err == nil {
			t.Errorf("expected error for %+v", key)
		}
	}
	if len(svc.cache) != 0 {
		t.Errorf("expected nothing cached, got %d", len(svc.cache))
	}
}

func TestService_Table(t *testing.T) {
	svc := newTestService(t)
	key := Key{Seed: 1, Rounds: 1, VisitsPerPatient: 1}

	tbl, err := svc.Table(context.Background(), key, "Department")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tbl.Rows) != 7 {
		t.Errorf("expected 7 departments, got %d", len(tbl.Rows))
	}

	_, err = svc.Table(context.Background(), key, "Nurse")
	if !errors.Is(err, ErrUnknownTable) {
		t.Errorf("expected ErrUnknownTable, got %v", err)
	}
}

func TestService_TimeTable(t *testing.T) {
	svc := newTestService(t)

	tbl, err := svc.TimeTable(2023, 2024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tbl.Rows) != 365+366 {
		t.Errorf("expected 731 rows, got %d", len(tbl.Rows))
	}
	if tbl.Name != timedim.TableName {
		t.Errorf("expected table %s, got %s", timedim.TableName, tbl.Name)
	}

	if _, err := svc.TimeTable(2024, 2023); err == nil {
		t.Error("expected error for reversed range")
	}
	if _, err := svc.TimeTable(2020, 2020+MaxYearSpan); err == nil {
		t.Error("expected error for oversized range")
	}
}
