package generator

import (
	"context"
	"sync"
)

// Ledger records issued national codes. Reserve claims code and reports
// whether it was still free.
type Ledger interface {
	Reserve(ctx context.Context, code string) (bool, error)
}

// MemoryLedger is an in-process Ledger.
type MemoryLedger struct {
	mu    sync.Mutex
	codes map[string]struct{}
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{codes: make(map[string]struct{})}
}

func (l *MemoryLedger) Reserve(_ context.Context, code string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, taken := l.codes[code]; taken {
		return false, nil
	}
	l.codes[code] = struct{}{}
	return true, nil
}

// Len returns the number of issued codes.
func (l *MemoryLedger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.codes)
}
