package generator

// Department maps to the Department table.
type Department struct {
	DepartmentID   int    `db:"department_id" json:"department_id" parquet:"department_id"`
	DepartmentName string `db:"department_name" json:"department_name" parquet:"department_name"`
}

// Doctor maps to the Doctor table.
type Doctor struct {
	DoctorID       int    `db:"doctor_id" json:"doctor_id" parquet:"doctor_id"`
	NationalCode   string `db:"national_code" json:"national_code" parquet:"national_code"`
	Firstname      string `db:"firstname" json:"firstname" parquet:"firstname"`
	Lastname       string `db:"lastname" json:"lastname" parquet:"lastname"`
	Gender         string `db:"gender" json:"gender" parquet:"gender"`
	Phone          string `db:"phone" json:"phone" parquet:"phone"`
	Specialization string `db:"specializations" json:"specializations" parquet:"specializations"`
	DepartmentID   int    `db:"department_id" json:"department_id" parquet:"department_id"`
}

// Patient maps to the Patient table.
type Patient struct {
	PatientID    int    `db:"patient_id" json:"patient_id" parquet:"patient_id"`
	NationalCode string `db:"national_code" json:"national_code" parquet:"national_code"`
	Firstname    string `db:"firstname" json:"firstname" parquet:"firstname"`
	Lastname     string `db:"lastname" json:"lastname" parquet:"lastname"`
	DOB          string `db:"dob" json:"dob" parquet:"dob"`
	Gender       string `db:"gender" json:"gender" parquet:"gender"`
	Phone        string `db:"phone" json:"phone" parquet:"phone"`
}

// Visit maps to the Visit table.
type Visit struct {
	VisitID   int     `db:"visit_id" json:"visit_id" parquet:"visit_id"`
	PatientID int     `db:"patient_id" json:"patient_id" parquet:"patient_id"`
	DoctorID  int     `db:"doctor_id" json:"doctor_id" parquet:"doctor_id"`
	VisitDate string  `db:"visit_date" json:"visit_date" parquet:"visit_date"`
	Diagnosis string  `db:"diagnosis" json:"diagnosis" parquet:"diagnosis"`
	VisitCost float64 `db:"visit_cost" json:"visit_cost" parquet:"visit_cost"`
	IsCheckUp bool    `db:"is_check_up" json:"is_check_up" parquet:"is_check_up"`
}

// Treatment maps to the Treatment table. DepartmentID is the department the
// treatment was drawn from, not necessarily the visiting doctor's.
type Treatment struct {
	TreatmentID  int     `db:"treatment_id" json:"treatment_id" parquet:"treatment_id"`
	VisitID      int     `db:"visit_id" json:"visit_id" parquet:"visit_id"`
	Type         string  `db:"treatment_type" json:"treatment_type" parquet:"treatment_type"`
	Description  string  `db:"treatment_description" json:"treatment_description" parquet:"treatment_description"`
	Cost         float64 `db:"treatment_cost" json:"treatment_cost" parquet:"treatment_cost"`
	DepartmentID int     `db:"department_id" json:"department_id" parquet:"department_id"`
}

// Medication maps to the Medication table. Dosage is in milligrams and
// Duration in days.
type Medication struct {
	MedicationID     int     `db:"medication_id" json:"medication_id" parquet:"medication_id"`
	VisitID          int     `db:"visit_id" json:"visit_id" parquet:"visit_id"`
	Name             string  `db:"medication_name" json:"medication_name" parquet:"medication_name"`
	Dosage           int     `db:"dosage" json:"dosage" parquet:"dosage"`
	Frequency        int     `db:"frequency" json:"frequency" parquet:"frequency"`
	FrequencyUnit    string  `db:"frequency_unit" json:"frequency_unit" parquet:"frequency_unit"`
	Cost             float64 `db:"medication_cost" json:"medication_cost" parquet:"medication_cost"`
	PrescriptionDate string  `db:"prescription_date" json:"prescription_date" parquet:"prescription_date"`
	Duration         int     `db:"duration" json:"duration" parquet:"duration"`
}

// Billing maps to the Billing table.
type Billing struct {
	BillingID         int     `db:"billing_id" json:"billing_id" parquet:"billing_id"`
	VisitID           int     `db:"visit_id" json:"visit_id" parquet:"visit_id"`
	TotalAmount       float64 `db:"total_amount" json:"total_amount" parquet:"total_amount"`
	PaidAmount        float64 `db:"paid_amount" json:"paid_amount" parquet:"paid_amount"`
	TaxAmount         float64 `db:"tax_amount" json:"tax_amount" parquet:"tax_amount"`
	InsuranceCoverage float64 `db:"insurance_coverage" json:"insurance_coverage" parquet:"insurance_coverage"`
}

// Dataset is the output of one run, in load order.
type Dataset struct {
	Departments []Department `json:"departments"`
	Doctors     []Doctor     `json:"doctors"`
	Patients    []Patient    `json:"patients"`
	Visits      []Visit      `json:"visits"`
	Treatments  []Treatment  `json:"treatments"`
	Medications []Medication `json:"medications"`
	Billings    []Billing    `json:"billings"`
}
