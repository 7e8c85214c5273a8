package generator

import (
	"fmt"
	"math"
)

// DepartmentCostEffect is the per-department multiplier, indexed by
// department_id - 1.
var DepartmentCostEffect = [7]int{2, 7, 4, 3, 1, 6, 5}

const (
	visitUnit = 5000

	maxTreatmentEffect  = 10
	maxDepartmentEffect = 7
	maxIndexEffect      = 15

	// effectLCM is the least common multiple of the three maxima above.
	effectLCM = 210

	treatmentEffectWeight  = 6
	departmentEffectWeight = 4
	indexEffectWeight      = 1
	treatmentUnit          = 1_000_000

	medicationUnit = 10_000
)

// Frequency units in draw order.
const (
	UnitMinute = "minute"
	UnitHour   = "hour"
	UnitDay    = "day"
	UnitWeek   = "week"
	UnitMonth  = "month"
)

var FrequencyUnits = [5]string{UnitMinute, UnitHour, UnitDay, UnitWeek, UnitMonth}

const (
	hourMinutes  = 60
	dayMinutes   = 24 * hourMinutes
	weekMinutes  = 7 * dayMinutes
	monthMinutes = 30 * weekMinutes
)

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func departmentEffect(departmentID int) (int, error) {
	if departmentID < 1 || departmentID > len(DepartmentCostEffect) {
		return 0, fmt.Errorf("cost effect for department %d: %w", departmentID, ErrReferenceDataMissing)
	}
	return DepartmentCostEffect[departmentID-1], nil
}

// VisitCost is effect(department) * doctorID * 5000, halved for checkups.
func VisitCost(departmentID, doctorID int, checkup bool) (float64, error) {
	effect, err := departmentEffect(departmentID)
	if err != nil {
		return 0, err
	}
	cost := float64(effect * doctorID * visitUnit)
	if checkup {
		return cost / 2, nil
	}
	return cost, nil
}

// TreatmentCost normalizes the three effects to a common scale, weights them
// 6:4:1 and rounds to cents.
func TreatmentCost(typeEffect, departmentEffect, index int) float64 {
	normType := float64(typeEffect) * (effectLCM / maxTreatmentEffect)
	normDepartment := float64(departmentEffect) * (effectLCM / maxDepartmentEffect)
	normIndex := float64(index) * (effectLCM / maxIndexEffect)

	sum := normType*treatmentEffectWeight*treatmentUnit +
		normDepartment*departmentEffectWeight*treatmentUnit +
		normIndex*indexEffectWeight*treatmentUnit

	return round2(sum / effectLCM)
}

// FrequencyMinutes converts a dosing frequency to minutes.
func FrequencyMinutes(frequency int, unit string) (int, error) {
	switch unit {
	case UnitMinute:
		return frequency, nil
	case UnitHour:
		return frequency * hourMinutes, nil
	case UnitDay:
		return frequency * dayMinutes, nil
	case UnitWeek:
		return frequency * weekMinutes, nil
	case UnitMonth:
		return frequency * monthMinutes, nil
	default:
		return 0, fmt.Errorf("frequency unit %q: %w", unit, ErrReferenceDataMissing)
	}
}

// MedicationCost is effect * (duration / frequency) * 10000, with both
// durations in minutes, rounded to cents.
func MedicationCost(effect float64, frequency int, unit string, durationDays int) (float64, error) {
	freq, err := FrequencyMinutes(frequency, unit)
	if err != nil {
		return 0, err
	}
	if freq <= 0 {
		return 0, fmt.Errorf("frequency %d %s must be positive", frequency, unit)
	}
	cycles := float64(durationDays*dayMinutes) / float64(freq)
	return round2(effect * cycles * medicationUnit), nil
}
