package sink

import (
	"bufio"
	"context"
	"fmt"
	"io"
)

// Script renders every batch as INSERT statements to a writer, one statement
// per line. Nothing is executed.
type Script struct {
	w       *bufio.Writer
	schema  string
	dialect Dialect
}

func NewScript(w io.Writer, schema string, dialect Dialect) *Script {
	return &Script{w: bufio.NewWriter(w), schema: schema, dialect: dialect}
}

func (s *Script) Write(ctx context.Context, t Table) error {
	for i, row := range t.Rows {
		if err := ctx.Err(); err != nil {
			return &WriteError{Table: t.Name, Row: i, Err: err}
		}
		if err := checkRow(t, i, row); err != nil {
			return err
		}
		if err := s.line(s.dialect.InsertStatement(s.schema, t, row)); err != nil {
			return &WriteError{Table: t.Name, Row: i, Err: err}
		}
	}
	return s.w.Flush()
}

func (s *Script) Exec(_ context.Context, statement string) error {
	if err := s.line(statement); err != nil {
		return err
	}
	return s.w.Flush()
}

func (s *Script) line(statement string) error {
	_, err := fmt.Fprintf(s.w, "%s;\n", statement)
	return err
}
