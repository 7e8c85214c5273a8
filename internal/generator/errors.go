package generator

import (
	"errors"

	"github.com/ehr/healthgen/internal/reference"
)

var (
	// ErrReferenceDataMissing is a failed catalog lookup. It aborts the run.
	ErrReferenceDataMissing = reference.ErrDataMissing

	// ErrUniquenessExhausted means the ledger refused every candidate code
	// within the attempt limit.
	ErrUniquenessExhausted = errors.New("national code space exhausted")

	// ErrBillingOrder means treatments or medications were not sorted by
	// visit_id with at most one entry per visit.
	ErrBillingOrder = errors.New("billing inputs out of visit order")
)
