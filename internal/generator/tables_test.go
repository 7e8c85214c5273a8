package generator

import "testing"

func TestTables_ColumnsMatchRows(t *testing.T) {
	ds := &Dataset{
		Departments: []Department{{1, "Cardiology"}},
		Doctors:     []Doctor{{DoctorID: 1}},
		Patients:    []Patient{{PatientID: 1}},
		Visits:      []Visit{{VisitID: 1}},
		Treatments:  []Treatment{{TreatmentID: 1}},
		Medications: []Medication{{MedicationID: 1}},
		Billings:    []Billing{{BillingID: 1}},
	}

	tables := ds.Tables()
	if len(tables) != len(TableNames) {
		t.Fatalf("expected %d tables, got %d", len(TableNames), len(tables))
	}
	for i, tbl := range tables {
		if tbl.Name != TableNames[i] {
			t.Errorf("table %d: expected %s, got %s", i, TableNames[i], tbl.Name)
		}
		if len(tbl.Rows) != 1 {
			t.Fatalf("%s: expected 1 row, got %d", tbl.Name, len(tbl.Rows))
		}
		if len(tbl.Rows[0]) != len(tbl.Columns) {
			t.Errorf("%s: %d values for %d columns", tbl.Name, len(tbl.Rows[0]), len(tbl.Columns))
		}
	}
}

func TestTable_Lookup(t *testing.T) {
	ds := &Dataset{Visits: []Visit{{VisitID: 1}, {VisitID: 2}}}

	tbl, ok := ds.Table(TableVisit)
	if !ok {
		t.Fatal("expected Visit table")
	}
	if len(tbl.Rows) != 2 || tbl.Columns[0] != "visit_id" {
		t.Errorf("unexpected table %+v", tbl)
	}
	if _, ok := ds.Table("Nurse"); ok {
		t.Error("expected unknown table to be rejected")
	}
}
