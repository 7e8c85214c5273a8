package generator

import (
	"errors"
	"testing"
)

func TestVisitCost(t *testing.T) {
	tests := []struct {
		name       string
		department int
		doctor     int
		checkup    bool
		want       float64
	}{
		{"cardiology regular", 1, 10, false, 100000},
		{"cardiology checkup", 1, 10, true, 50000},
		{"neurology regular", 2, 3, false, 105000},
		{"general medicine checkup", 5, 7, true, 17500},
		{"dermatology regular", 7, 1, false, 25000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := VisitCost(tt.department, tt.doctor, tt.checkup)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("VisitCost(%d, %d, %v) = %v, want %v", tt.department, tt.doctor, tt.checkup, got, tt.want)
			}
		})
	}
}

func TestVisitCost_UnknownDepartment(t *testing.T) {
	for _, dept := range []int{0, 8, -1} {
		if _, err := VisitCost(dept, 1, false); !errors.Is(err, ErrReferenceDataMissing) {
			t.Errorf("department %d: expected ErrReferenceDataMissing, got %v", dept, err)
		}
	}
}

func TestTreatmentCost(t *testing.T) {
	tests := []struct {
		typeEffect, deptEffect, index int
		want                          float64
	}{
		{5, 7, 3, 7200000},
		{10, 7, 15, 11000000},
		{1, 1, 0, 1171428.57},
		{3, 2, 0, 2942857.14},
	}

	for _, tt := range tests {
		got := TreatmentCost(tt.typeEffect, tt.deptEffect, tt.index)
		if got != tt.want {
			t.Errorf("TreatmentCost(%d, %d, %d) = %v, want %v", tt.typeEffect, tt.deptEffect, tt.index, got, tt.want)
		}
	}
}

func TestFrequencyMinutes(t *testing.T) {
	tests := []struct {
		unit string
		want int
	}{
		{UnitMinute, 2},
		{UnitHour, 120},
		{UnitDay, 2880},
		{UnitWeek, 20160},
		{UnitMonth, 604800},
	}

	for _, tt := range tests {
		got, err := FrequencyMinutes(2, tt.unit)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.unit, err)
		}
		if got != tt.want {
			t.Errorf("FrequencyMinutes(2, %s) = %d, want %d", tt.unit, got, tt.want)
		}
	}
}

func TestMedicationCost(t *testing.T) {
	got, err := MedicationCost(0.5, 8, UnitHour, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 150000 {
		t.Errorf("expected 150000, got %v", got)
	}

	got, err = MedicationCost(3.2, 1, UnitDay, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 64000 {
		t.Errorf("expected 64000, got %v", got)
	}
}

func TestMedicationCost_UnknownUnit(t *testing.T) {
	if _, err := MedicationCost(1, 1, "fortnight", 1); !errors.Is(err, ErrReferenceDataMissing) {
		t.Errorf("expected ErrReferenceDataMissing, got %v", err)
	}
}

func TestMedicationCost_ZeroFrequency(t *testing.T) {
	if _, err := MedicationCost(1, 0, UnitHour, 1); err == nil {
		t.Error("expected error for zero frequency")
	}
}
