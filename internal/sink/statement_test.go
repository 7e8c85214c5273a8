package sink

import (
	"testing"
	"time"
)

func TestIsDate(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"2021-03-09", true},
		{"1995-12-31", true},
		{"2099-01-01", true},
		{"1899-01-01", false},
		{"2021-13-01", false},
		{"2021-00-10", false},
		{"2021-1-5", false},
		{"2021-01-32", false},
		{"Lorem ipsum", false},
		{"9123456789", false},
	}
	for _, tt := range tests {
		if got := IsDate(tt.in); got != tt.want {
			t.Errorf("IsDate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDialect_Literal_Postgres(t *testing.T) {
	tests := []struct {
		in   interface{}
		want string
	}{
		{"O'Brien", `'O''Brien'`},
		{"2022-07-14", "DATE '2022-07-14'"},
		{true, "TRUE"},
		{false, "FALSE"},
		{42, "42"},
		{int64(7), "7"},
		{12500.5, "12500.5"},
		{7200000.0, "7200000"},
		{nil, "NULL"},
		{time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), "DATE '2024-02-29'"},
	}
	for _, tt := range tests {
		if got := Postgres.Literal(tt.in); got != tt.want {
			t.Errorf("Postgres.Literal(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestDialect_Literal_SQLServer(t *testing.T) {
	tests := []struct {
		in   interface{}
		want string
	}{
		{"it's", "N'it''s'"},
		{"2022-07-14", "CONVERT(DATE, '2022-07-14', 120)"},
		{true, "1"},
		{false, "0"},
		{3.25, "3.25"},
	}
	for _, tt := range tests {
		if got := SQLServer.Literal(tt.in); got != tt.want {
			t.Errorf("SQLServer.Literal(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestDialect_InsertStatement(t *testing.T) {
	tbl := Table{
		Name:    "Patient",
		Columns: []string{"patient_id", "lastname", "dob"},
	}
	row := []interface{}{1, "D'Souza", "2001-04-05"}

	got := Postgres.InsertStatement("health", tbl, row)
	want := `INSERT INTO "health"."Patient" ("patient_id", "lastname", "dob") VALUES (1, 'D''Souza', DATE '2001-04-05')`
	if got != want {
		t.Errorf("postgres statement:\n got %s\nwant %s", got, want)
	}

	got = SQLServer.InsertStatement("Health", tbl, row)
	want = `INSERT INTO [Health].[Patient] ([patient_id], [lastname], [dob]) VALUES (1, N'D''Souza', CONVERT(DATE, '2001-04-05', 120))`
	if got != want {
		t.Errorf("sqlserver statement:\n got %s\nwant %s", got, want)
	}
}

func TestDialect_QualifiedName_NoSchema(t *testing.T) {
	if got := Postgres.QualifiedName("", "Visit"); got != `"Visit"` {
		t.Errorf("expected bare quoted name, got %s", got)
	}
}

func TestParseDialect(t *testing.T) {
	if d, err := ParseDialect("SQLServer"); err != nil || d != SQLServer {
		t.Errorf("expected SQLServer, got %v (%v)", d, err)
	}
	if d, err := ParseDialect(""); err != nil || d != Postgres {
		t.Errorf("expected Postgres default, got %v (%v)", d, err)
	}
	if _, err := ParseDialect("oracle"); err == nil {
		t.Error("expected error for unknown dialect")
	}
}

func TestTypedValue(t *testing.T) {
	v := typedValue("2023-11-02")
	tm, ok := v.(time.Time)
	if !ok {
		t.Fatalf("expected time.Time, got %T", v)
	}
	if tm.Year() != 2023 || tm.Month() != time.November || tm.Day() != 2 {
		t.Errorf("unexpected date %v", tm)
	}
	if v := typedValue("hello"); v != "hello" {
		t.Errorf("expected plain string to pass through, got %v", v)
	}
	if v := typedValue(5); v != 5 {
		t.Errorf("expected int to pass through, got %v", v)
	}
}
