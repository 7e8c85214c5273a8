package generator

import (
	"fmt"
)

const (
	visitStartYear = 2021
	visitEndYear   = 2023

	checkupWeight    = 10
	nonCheckupWeight = 90

	minDiagnosisLength = 50

	minuteFrequencyMin = 30
	minuteFrequencyMax = 480
	frequencyMin       = 1
	frequencyMax       = 12
	durationMaxDays    = 30
	dosageMinMG        = 30
	dosageMaxMG        = 1000
)

// DiagnosisText is the filler every diagnosis is a prefix of.
const DiagnosisText = "Lorem ipsum dolor sit amet, consectetur adipiscing elit, " +
	"sed do eiusmod tempor incididunt ut labore et dolore magna aliqua. " +
	"Ut enim ad minim veniam, quis nostrud exercitation ullamco laboris " +
	"nisi ut aliquip ex ea commodo consequat. Duis aute irure dolor in " +
	"reprehenderit in voluptate velit esse cillum dolore eu fugiat nulla pariatur. " +
	"Excepteur sint occaecat cupidatat non proident, sunt in culpa qui officia " +
	"deserunt mollit anim id est laborum."

// Visits emits VisitsPerPatient visits for every patient, in patient order.
// Visit ids are dense, start at 1 and follow emission order.
func (g *Generator) Visits(doctors []Doctor, patients []Patient) ([]Visit, error) {
	if len(doctors) == 0 {
		return nil, fmt.Errorf("no doctors to assign visits to")
	}
	visits := make([]Visit, 0, len(patients)*g.opts.VisitsPerPatient)
	id := 1

	for _, patient := range patients {
		for n := 0; n < g.opts.VisitsPerPatient; n++ {
			doctor := doctors[g.rnd.Number(0, len(doctors)-1)]
			checkup := WeightedChoice(g.rnd,
				Weighted[bool]{Value: true, Weight: checkupWeight},
				Weighted[bool]{Value: false, Weight: nonCheckupWeight},
			)
			date := RandomDate(g.rnd, visitStartYear, visitEndYear)
			diagnosis := DiagnosisText[:g.rnd.Number(minDiagnosisLength, len(DiagnosisText)-1)]

			cost, err := VisitCost(doctor.DepartmentID, doctor.DoctorID, checkup)
			if err != nil {
				return nil, fmt.Errorf("visit %d: %w", id, err)
			}

			visits = append(visits, Visit{
				VisitID:   id,
				PatientID: patient.PatientID,
				DoctorID:  doctor.DoctorID,
				VisitDate: date,
				Diagnosis: diagnosis,
				VisitCost: cost,
				IsCheckUp: checkup,
			})
			id++
		}
	}
	return visits, nil
}

// Treatments emits one treatment per non-checkup visit, in visit order, so
// the result is sorted by visit_id with at most one entry per visit.
func (g *Generator) Treatments(visits []Visit, departments []Department) ([]Treatment, error) {
	treatments := make([]Treatment, 0, len(visits))
	id := 1

	for _, visit := range visits {
		if visit.IsCheckUp {
			continue
		}

		deptIndex := g.rnd.Number(0, len(departments)-1)
		row := g.catalog.Treatments.Descriptions[deptIndex]
		index := g.rnd.Number(0, len(row)-1)
		entry := row[index]

		kind, err := g.catalog.TreatmentType(entry.Type)
		if err != nil {
			return nil, fmt.Errorf("visit %d: %w", visit.VisitID, err)
		}

		treatments = append(treatments, Treatment{
			TreatmentID:  id,
			VisitID:      visit.VisitID,
			Type:         kind.Label,
			Description:  entry.Description,
			Cost:         TreatmentCost(kind.Effect, DepartmentCostEffect[deptIndex], index),
			DepartmentID: departments[deptIndex].DepartmentID,
		})
		id++
	}
	return treatments, nil
}

// Medications emits at most one medication per treatment, in treatment
// order. Treatments whose catalog entry lists no medications get none.
func (g *Generator) Medications(treatments []Treatment, visits []Visit) ([]Medication, error) {
	visitDates := make(map[int]string, len(visits))
	for _, v := range visits {
		visitDates[v.VisitID] = v.VisitDate
	}

	medications := make([]Medication, 0, len(treatments))
	id := 1

	for _, t := range treatments {
		deptIndex := t.DepartmentID - 1
		index := g.catalog.TreatmentIndex(deptIndex, t.Description)
		if index < 0 {
			return nil, fmt.Errorf("treatment %d %q in department %d: %w",
				t.TreatmentID, t.Description, t.DepartmentID, ErrReferenceDataMissing)
		}

		names := g.catalog.MedicationNames(deptIndex, index)
		if len(names) == 0 {
			continue
		}

		name := names[g.rnd.Number(0, len(names)-1)]
		unit := FrequencyUnits[g.rnd.Number(0, len(FrequencyUnits)-1)]

		var frequency int
		if unit == UnitMinute {
			frequency = g.rnd.Number(minuteFrequencyMin, minuteFrequencyMax)
		} else {
			frequency = g.rnd.Number(frequencyMin, frequencyMax)
		}

		duration := g.rnd.Number(1, durationMaxDays)
		if unit != UnitMinute {
			duration = g.rnd.Number(1+frequency, durationMaxDays*frequency)
		}

		dosage := g.rnd.Number(dosageMinMG, dosageMaxMG)

		effect, err := g.catalog.MedicationEffect(name)
		if err != nil {
			return nil, fmt.Errorf("treatment %d: %w", t.TreatmentID, err)
		}
		cost, err := MedicationCost(effect, frequency, unit, duration)
		if err != nil {
			return nil, fmt.Errorf("treatment %d: %w", t.TreatmentID, err)
		}

		date, ok := visitDates[t.VisitID]
		if !ok {
			return nil, fmt.Errorf("visit %d of treatment %d: %w", t.VisitID, t.TreatmentID, ErrReferenceDataMissing)
		}

		medications = append(medications, Medication{
			MedicationID:     id,
			VisitID:          t.VisitID,
			Name:             name,
			Dosage:           dosage,
			Frequency:        frequency,
			FrequencyUnit:    unit,
			Cost:             cost,
			PrescriptionDate: date,
			Duration:         duration,
		})
		id++
	}
	return medications, nil
}

// Billings emits exactly one bill per visit. treatments and medications must
// each be sorted by visit_id with at most one entry per visit; any other
// input returns ErrBillingOrder.
func (g *Generator) Billings(visits []Visit, treatments []Treatment, medications []Medication) ([]Billing, error) {
	billings := make([]Billing, 0, len(visits))
	ti, mi := 0, 0

	for i, visit := range visits {
		insurance := float64(g.rnd.Number(10, 30)) / 100
		tax := float64(g.rnd.Number(15, 30)) / 100

		var treatmentCost, medicationCost float64

		if ti < len(treatments) {
			switch t := treatments[ti]; {
			case t.VisitID == visit.VisitID:
				treatmentCost = t.Cost
				ti++
			case t.VisitID < visit.VisitID:
				return nil, fmt.Errorf("treatment %d for visit %d found at visit %d: %w",
					t.TreatmentID, t.VisitID, visit.VisitID, ErrBillingOrder)
			}
		}

		if mi < len(medications) {
			switch m := medications[mi]; {
			case m.VisitID == visit.VisitID:
				medicationCost = m.Cost
				mi++
			case m.VisitID < visit.VisitID:
				return nil, fmt.Errorf("medication %d for visit %d found at visit %d: %w",
					m.MedicationID, m.VisitID, visit.VisitID, ErrBillingOrder)
			}
		}

		totalWithoutTax := visit.VisitCost + treatmentCost + medicationCost
		taxAmount := tax * totalWithoutTax
		totalAmount := totalWithoutTax + taxAmount
		coverage := totalWithoutTax * insurance

		billings = append(billings, Billing{
			BillingID:         i + 1,
			VisitID:           visit.VisitID,
			TotalAmount:       totalAmount,
			PaidAmount:        totalAmount - coverage,
			TaxAmount:         taxAmount,
			InsuranceCoverage: coverage,
		})
	}

	if ti != len(treatments) {
		return nil, fmt.Errorf("%d treatments left unbilled: %w", len(treatments)-ti, ErrBillingOrder)
	}
	if mi != len(medications) {
		return nil, fmt.Errorf("%d medications left unbilled: %w", len(medications)-mi, ErrBillingOrder)
	}
	return billings, nil
}
