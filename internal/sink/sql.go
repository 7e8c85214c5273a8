package sink

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "github.com/microsoft/go-mssqldb"
)

// SQL writes batches through database/sql by executing generated INSERT
// statements, one transaction per batch.
type SQL struct {
	db      *sql.DB
	schema  string
	dialect Dialect
}

func NewSQL(db *sql.DB, schema string, dialect Dialect) *SQL {
	return &SQL{db: db, schema: schema, dialect: dialect}
}

// OpenSQL opens a connection with the driver registered for dialect and
// verifies it.
func OpenSQL(ctx context.Context, dialect Dialect, databaseURL string, maxConns int) (*sql.DB, error) {
	db, err := sql.Open(dialect.DriverName(), databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(maxConns)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

func (s *SQL) Write(ctx context.Context, t Table) error {
	if len(t.Rows) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &WriteError{Table: t.Name, Row: -1, Err: fmt.Errorf("begin transaction: %w", err)}
	}

	for i, row := range t.Rows {
		if err := checkRow(t, i, row); err != nil {
			tx.Rollback()
			return err
		}
		if _, err := tx.ExecContext(ctx, s.dialect.InsertStatement(s.schema, t, row)); err != nil {
			tx.Rollback()
			return &WriteError{Table: t.Name, Row: i, Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &WriteError{Table: t.Name, Row: -1, Err: fmt.Errorf("commit: %w", err)}
	}
	return nil
}

func (s *SQL) Exec(ctx context.Context, statement string) error {
	if _, err := s.db.ExecContext(ctx, statement); err != nil {
		return fmt.Errorf("exec: %w", err)
	}
	return nil
}
