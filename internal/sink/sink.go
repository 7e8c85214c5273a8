package sink

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Table is one batch of rows bound for a named table. Every row holds one
// value per column, in column order.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]interface{}
}

// Sink persists whole batches.
type Sink interface {
	Write(ctx context.Context, t Table) error
}

// Execer runs a single free-form statement against the sink's store.
type Execer interface {
	Exec(ctx context.Context, statement string) error
}

// PostLoadHook runs once after every batch was written.
type PostLoadHook func(ctx context.Context, ex Execer) error

// ErrHookUnsupported is returned when a hook is set but the sink cannot
// execute statements.
var ErrHookUnsupported = errors.New("sink does not support post-load statements")

// WriteError reports a rejected batch. Row is the zero-based row that failed,
// or -1 when the failure is not attributable to a single row.
type WriteError struct {
	Table string
	Row   int
	Err   error
}

func (e *WriteError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("write %s: %v", e.Table, e.Err)
	}
	return fmt.Sprintf("write %s row %d: %v", e.Table, e.Row, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Load writes each table in order and then runs hook, if any.
func Load(ctx context.Context, s Sink, tables []Table, hook PostLoadHook, logger zerolog.Logger) error {
	for _, t := range tables {
		start := time.Now()
		if err := s.Write(ctx, t); err != nil {
			return err
		}
		logger.Info().
			Str("table", t.Name).
			Int("rows", len(t.Rows)).
			Dur("elapsed", time.Since(start)).
			Msg("batch written")
	}

	if hook == nil {
		return nil
	}
	ex, ok := s.(Execer)
	if !ok {
		return ErrHookUnsupported
	}
	if err := hook(ctx, ex); err != nil {
		return fmt.Errorf("post-load hook: %w", err)
	}
	logger.Info().Msg("post-load hook completed")
	return nil
}
