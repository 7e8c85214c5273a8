package timedim

import (
	"context"
	"fmt"
	"strings"

	"github.com/ehr/healthgen/internal/sink"
)

// PartitionTable holds the day boundaries on stores without partition
// functions.
const PartitionTable = "DayPartition"

// PartitionStatement declares one partition boundary per row's time_key.
func PartitionStatement(rows []Row, dialect sink.Dialect, schema string) (string, error) {
	if len(rows) == 0 {
		return "", fmt.Errorf("no time rows to partition")
	}

	boundaries := make([]string, len(rows))
	for i, r := range rows {
		boundaries[i] = dialect.DateLiteral(r.TimeKey)
	}

	if dialect == sink.SQLServer {
		return fmt.Sprintf("CREATE PARTITION FUNCTION %s (date) AS RANGE LEFT FOR VALUES (%s)",
			dialect.QuoteIdent(PartitionTable), strings.Join(boundaries, ", ")), nil
	}

	values := make([]string, len(boundaries))
	for i, b := range boundaries {
		values[i] = "(" + b + ")"
	}
	return fmt.Sprintf("INSERT INTO %s (boundary) VALUES %s",
		dialect.QualifiedName(schema, PartitionTable), strings.Join(values, ", ")), nil
}

// PartitionHook runs PartitionStatement after the rows are loaded.
func PartitionHook(rows []Row, dialect sink.Dialect, schema string) sink.PostLoadHook {
	return func(ctx context.Context, ex sink.Execer) error {
		stmt, err := PartitionStatement(rows, dialect, schema)
		if err != nil {
			return err
		}
		return ex.Exec(ctx, stmt)
	}
}
