package sink

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Mode selects how the pgx sink moves rows.
type Mode int

const (
	// ModeInsert executes one generated INSERT per row inside a transaction.
	ModeInsert Mode = iota
	// ModeCopy streams the batch through COPY FROM.
	ModeCopy
)

// PG writes batches to PostgreSQL through a pgx pool.
type PG struct {
	pool   *pgxpool.Pool
	schema string
	mode   Mode
}

func NewPG(pool *pgxpool.Pool, schema string, mode Mode) *PG {
	return &PG{pool: pool, schema: schema, mode: mode}
}

func (s *PG) Write(ctx context.Context, t Table) error {
	if len(t.Rows) == 0 {
		return nil
	}
	for i, row := range t.Rows {
		if err := checkRow(t, i, row); err != nil {
			return err
		}
	}
	if s.mode == ModeCopy {
		return s.copy(ctx, t)
	}
	return s.insert(ctx, t)
}

func (s *PG) insert(ctx context.Context, t Table) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return &WriteError{Table: t.Name, Row: -1, Err: fmt.Errorf("begin transaction: %w", err)}
	}
	defer tx.Rollback(ctx)

	for i, row := range t.Rows {
		if _, err := tx.Exec(ctx, Postgres.InsertStatement(s.schema, t, row)); err != nil {
			return &WriteError{Table: t.Name, Row: i, Err: err}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return &WriteError{Table: t.Name, Row: -1, Err: fmt.Errorf("commit: %w", err)}
	}
	return nil
}

func (s *PG) copy(ctx context.Context, t Table) error {
	rows := make([][]interface{}, len(t.Rows))
	for i, row := range t.Rows {
		typed := make([]interface{}, len(row))
		for j, v := range row {
			typed[j] = typedValue(v)
		}
		rows[i] = typed
	}

	ident := pgx.Identifier{t.Name}
	if s.schema != "" {
		ident = pgx.Identifier{s.schema, t.Name}
	}

	copied, err := s.pool.CopyFrom(ctx, ident, t.Columns, pgx.CopyFromRows(rows))
	if err != nil {
		return &WriteError{Table: t.Name, Row: -1, Err: fmt.Errorf("copy: %w", err)}
	}
	if copied != int64(len(rows)) {
		return &WriteError{Table: t.Name, Row: -1, Err: fmt.Errorf("copied %d of %d rows", copied, len(rows))}
	}
	return nil
}

func (s *PG) Exec(ctx context.Context, statement string) error {
	if _, err := s.pool.Exec(ctx, statement); err != nil {
		return fmt.Errorf("exec: %w", err)
	}
	return nil
}
