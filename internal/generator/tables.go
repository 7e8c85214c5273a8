package generator

import (
	"github.com/ehr/healthgen/internal/sink"
)

// Table names in load order.
const (
	TableDepartment = "Department"
	TableDoctor     = "Doctor"
	TablePatient    = "Patient"
	TableVisit      = "Visit"
	TableTreatment  = "Treatment"
	TableMedication = "Medication"
	TableBilling    = "Billing"
)

var TableNames = []string{
	TableDepartment, TableDoctor, TablePatient, TableVisit,
	TableTreatment, TableMedication, TableBilling,
}

var columns = map[string][]string{
	TableDepartment: {"department_id", "department_name"},
	TableDoctor:     {"doctor_id", "national_code", "firstname", "lastname", "gender", "phone", "specializations", "department_id"},
	TablePatient:    {"patient_id", "national_code", "firstname", "lastname", "dob", "gender", "phone"},
	TableVisit:      {"visit_id", "patient_id", "doctor_id", "visit_date", "diagnosis", "visit_cost", "is_check_up"},
	TableTreatment:  {"treatment_id", "visit_id", "treatment_type", "treatment_description", "treatment_cost", "department_id"},
	TableMedication: {"medication_id", "visit_id", "medication_name", "dosage", "frequency", "frequency_unit", "medication_cost", "prescription_date", "duration"},
	TableBilling:    {"billing_id", "visit_id", "total_amount", "paid_amount", "tax_amount", "insurance_coverage"},
}

type rowValuer interface {
	values() []interface{}
}

func (d Department) values() []interface{} {
	return []interface{}{d.DepartmentID, d.DepartmentName}
}

func (d Doctor) values() []interface{} {
	return []interface{}{d.DoctorID, d.NationalCode, d.Firstname, d.Lastname, d.Gender, d.Phone, d.Specialization, d.DepartmentID}
}

func (p Patient) values() []interface{} {
	return []interface{}{p.PatientID, p.NationalCode, p.Firstname, p.Lastname, p.DOB, p.Gender, p.Phone}
}

func (v Visit) values() []interface{} {
	return []interface{}{v.VisitID, v.PatientID, v.DoctorID, v.VisitDate, v.Diagnosis, v.VisitCost, v.IsCheckUp}
}

func (t Treatment) values() []interface{} {
	return []interface{}{t.TreatmentID, t.VisitID, t.Type, t.Description, t.Cost, t.DepartmentID}
}

func (m Medication) values() []interface{} {
	return []interface{}{m.MedicationID, m.VisitID, m.Name, m.Dosage, m.Frequency, m.FrequencyUnit, m.Cost, m.PrescriptionDate, m.Duration}
}

func (b Billing) values() []interface{} {
	return []interface{}{b.BillingID, b.VisitID, b.TotalAmount, b.PaidAmount, b.TaxAmount, b.InsuranceCoverage}
}

func toTable[T rowValuer](name string, items []T) sink.Table {
	rows := make([][]interface{}, len(items))
	for i, item := range items {
		rows[i] = item.values()
	}
	return sink.Table{Name: name, Columns: columns[name], Rows: rows}
}

// Tables converts the dataset into sink batches in load order.
func (d *Dataset) Tables() []sink.Table {
	return []sink.Table{
		toTable(TableDepartment, d.Departments),
		toTable(TableDoctor, d.Doctors),
		toTable(TablePatient, d.Patients),
		toTable(TableVisit, d.Visits),
		toTable(TableTreatment, d.Treatments),
		toTable(TableMedication, d.Medications),
		toTable(TableBilling, d.Billings),
	}
}

// Table returns the named batch and whether the name is known.
func (d *Dataset) Table(name string) (sink.Table, bool) {
	switch name {
	case TableDepartment:
		return toTable(name, d.Departments), true
	case TableDoctor:
		return toTable(name, d.Doctors), true
	case TablePatient:
		return toTable(name, d.Patients), true
	case TableVisit:
		return toTable(name, d.Visits), true
	case TableTreatment:
		return toTable(name, d.Treatments), true
	case TableMedication:
		return toTable(name, d.Medications), true
	case TableBilling:
		return toTable(name, d.Billings), true
	}
	return sink.Table{}, false
}
