package sink

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
)

// Dialect selects how identifiers and literals are rendered.
type Dialect int

const (
	Postgres Dialect = iota
	SQLServer
)

// ParseDialect maps a configuration value to a Dialect.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(s) {
	case "", "postgres", "postgresql":
		return Postgres, nil
	case "sqlserver", "mssql":
		return SQLServer, nil
	default:
		return Postgres, fmt.Errorf("unknown SQL dialect %q", s)
	}
}

func (d Dialect) String() string {
	if d == SQLServer {
		return "sqlserver"
	}
	return "postgres"
}

// DriverName is the database/sql driver that accepts this dialect: lib/pq
// for Postgres, go-mssqldb for SQL Server.
func (d Dialect) DriverName() string {
	if d == SQLServer {
		return "sqlserver"
	}
	return "postgres"
}

var isoDatePattern = regexp.MustCompile(`^(?:(?:(?:19|20)\d{2})-(?:(?:0[1-9]|1[0-2]))-(?:0[1-9]|1\d|2\d|3[01]))$`)

// IsDate reports whether s is an ISO YYYY-MM-DD date in the 1900–2099 range.
func IsDate(s string) bool {
	return isoDatePattern.MatchString(s)
}

// QuoteIdent quotes a single identifier.
func (d Dialect) QuoteIdent(name string) string {
	if d == SQLServer {
		return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
	}
	return pq.QuoteIdentifier(name)
}

// QualifiedName returns schema.table, or just the table when schema is empty.
func (d Dialect) QualifiedName(schema, table string) string {
	if schema == "" {
		return d.QuoteIdent(table)
	}
	return d.QuoteIdent(schema) + "." + d.QuoteIdent(table)
}

// DateLiteral renders an ISO date as a typed date.
func (d Dialect) DateLiteral(iso string) string {
	if d == SQLServer {
		return "CONVERT(DATE, '" + iso + "', 120)"
	}
	return "DATE '" + iso + "'"
}

// StringLiteral renders s with quotes escaped for the target store.
func (d Dialect) StringLiteral(s string) string {
	if d == SQLServer {
		return "N'" + strings.ReplaceAll(s, "'", "''") + "'"
	}
	return pq.QuoteLiteral(s)
}

// Literal renders a Go value. Strings that look like ISO dates become typed
// dates.
func (d Dialect) Literal(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case string:
		if IsDate(val) {
			return d.DateLiteral(val)
		}
		return d.StringLiteral(val)
	case bool:
		if d == SQLServer {
			if val {
				return "1"
			}
			return "0"
		}
		if val {
			return "TRUE"
		}
		return "FALSE"
	case int:
		return strconv.Itoa(val)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case time.Time:
		return d.DateLiteral(val.Format("2006-01-02"))
	default:
		return d.StringLiteral(fmt.Sprint(val))
	}
}

// InsertStatement renders one INSERT for row of t.
func (d Dialect) InsertStatement(schema string, t Table, row []interface{}) string {
	cols := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = d.QuoteIdent(c)
	}
	vals := make([]string, len(row))
	for i, v := range row {
		vals[i] = d.Literal(v)
	}

	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(d.QualifiedName(schema, t.Name))
	b.WriteString(" (")
	b.WriteString(strings.Join(cols, ", "))
	b.WriteString(") VALUES (")
	b.WriteString(strings.Join(vals, ", "))
	b.WriteString(")")
	return b.String()
}

// typedValue converts ISO date strings to time.Time so drivers bind them as
// dates.
func typedValue(v interface{}) interface{} {
	s, ok := v.(string)
	if !ok || !IsDate(s) {
		return v
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return v
	}
	return t
}

func checkRow(t Table, i int, row []interface{}) error {
	if len(row) != len(t.Columns) {
		return &WriteError{Table: t.Name, Row: i, Err: fmt.Errorf("row has %d values for %d columns", len(row), len(t.Columns))}
	}
	return nil
}
