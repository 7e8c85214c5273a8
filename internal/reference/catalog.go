package reference

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrDataMissing reports a reference lookup that did not find an entry the
// generators depend on.
var ErrDataMissing = errors.New("reference data missing")

// SpecializationSlots is the number of specializations every department lists.
const SpecializationSlots = 5

// Person is a first name paired with its gender.
type Person struct {
	Firstname string
	Gender    string
}

func (p *Person) UnmarshalJSON(b []byte) error {
	var pair [2]string
	if err := json.Unmarshal(b, &pair); err != nil {
		return fmt.Errorf("decode firstname/gender pair: %w", err)
	}
	p.Firstname, p.Gender = pair[0], pair[1]
	return nil
}

// Names holds the two lists whose cartesian product yields people.
type Names struct {
	Firstnames []Person `json:"firstnames_gender"`
	Lastnames  []string `json:"lastnames"`
}

// Size is the number of people one pass over the cartesian product yields.
func (n Names) Size() int {
	return len(n.Firstnames) * len(n.Lastnames)
}

// TreatmentType is the display label and cost effect of a treatment type.
type TreatmentType struct {
	Label  string
	Effect int
}

func (t *TreatmentType) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("decode treatment type: %w", err)
	}
	if len(raw) != 2 {
		return fmt.Errorf("decode treatment type: want [label, effect], got %d elements", len(raw))
	}
	if err := json.Unmarshal(raw[0], &t.Label); err != nil {
		return fmt.Errorf("decode treatment type label: %w", err)
	}
	if err := json.Unmarshal(raw[1], &t.Effect); err != nil {
		return fmt.Errorf("decode treatment type effect: %w", err)
	}
	return nil
}

// Treatment is one catalog entry of a department.
type Treatment struct {
	Description string
	Type        string
}

func (t *Treatment) UnmarshalJSON(b []byte) error {
	var pair [2]string
	if err := json.Unmarshal(b, &pair); err != nil {
		return fmt.Errorf("decode treatment: %w", err)
	}
	t.Description, t.Type = pair[0], pair[1]
	return nil
}

// Treatments is the treatment catalog. Descriptions is indexed by
// department index, then by treatment index.
type Treatments struct {
	Types        map[string]TreatmentType `json:"treatment_types"`
	Descriptions [][]Treatment            `json:"treatment_descriptions"`
}

// MedicationEffect pairs a medication name with its cost effect.
type MedicationEffect struct {
	Name   string
	Effect float64
}

func (m *MedicationEffect) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("decode medication cost: %w", err)
	}
	if len(raw) != 2 {
		return fmt.Errorf("decode medication cost: want [name, effect], got %d elements", len(raw))
	}
	if err := json.Unmarshal(raw[0], &m.Name); err != nil {
		return fmt.Errorf("decode medication name: %w", err)
	}
	if err := json.Unmarshal(raw[1], &m.Effect); err != nil {
		return fmt.Errorf("decode medication effect: %w", err)
	}
	return nil
}

// Medications is the medication catalog. Names is indexed like
// Treatments.Descriptions; a nil entry means the treatment prescribes nothing.
type Medications struct {
	Costs []MedicationEffect `json:"medications_cost"`
	Names [][][]string       `json:"medication_names"`
}

// Catalog bundles every static lookup table the generators read.
type Catalog struct {
	Departments     []string
	Specializations [][]string
	DoctorNames     Names
	PatientNames    Names
	Treatments      Treatments
	Medications     Medications
}

// TreatmentIndex returns the position of description within the department's
// treatment list, or -1.
func (c *Catalog) TreatmentIndex(department int, description string) int {
	if department < 0 || department >= len(c.Treatments.Descriptions) {
		return -1
	}
	for i, t := range c.Treatments.Descriptions[department] {
		if t.Description == description {
			return i
		}
	}
	return -1
}

// MedicationNames returns the medications a treatment may prescribe. A nil
// result means none.
func (c *Catalog) MedicationNames(department, treatment int) []string {
	if department < 0 || department >= len(c.Medications.Names) {
		return nil
	}
	row := c.Medications.Names[department]
	if treatment < 0 || treatment >= len(row) {
		return nil
	}
	return row[treatment]
}

// MedicationEffect returns the effect of the first cost entry matching name.
func (c *Catalog) MedicationEffect(name string) (float64, error) {
	for _, m := range c.Medications.Costs {
		if m.Name == name {
			return m.Effect, nil
		}
	}
	return 0, fmt.Errorf("medication effect for %q: %w", name, ErrDataMissing)
}

// TreatmentType resolves a treatment type key.
func (c *Catalog) TreatmentType(key string) (TreatmentType, error) {
	t, ok := c.Treatments.Types[key]
	if !ok {
		return TreatmentType{}, fmt.Errorf("treatment type %q: %w", key, ErrDataMissing)
	}
	return t, nil
}

// Validate checks that the catalogs line up the way the generators index
// them.
func (c *Catalog) Validate() error {
	if len(c.Departments) == 0 {
		return fmt.Errorf("departments: empty list: %w", ErrDataMissing)
	}
	seen := make(map[string]bool, len(c.Departments))
	for _, d := range c.Departments {
		if seen[d] {
			return fmt.Errorf("departments: duplicate name %q", d)
		}
		seen[d] = true
	}

	if len(c.Specializations) != len(c.Departments) {
		return fmt.Errorf("specializations: %d rows for %d departments: %w",
			len(c.Specializations), len(c.Departments), ErrDataMissing)
	}
	for i, row := range c.Specializations {
		if len(row) < SpecializationSlots {
			return fmt.Errorf("specializations: department %d has %d slots, want %d: %w",
				i+1, len(row), SpecializationSlots, ErrDataMissing)
		}
	}

	for name, n := range map[string]Names{"doctor": c.DoctorNames, "patient": c.PatientNames} {
		if n.Size() == 0 {
			return fmt.Errorf("%s names: empty firstname or lastname list: %w", name, ErrDataMissing)
		}
	}

	if len(c.Treatments.Descriptions) != len(c.Departments) {
		return fmt.Errorf("treatments: %d rows for %d departments: %w",
			len(c.Treatments.Descriptions), len(c.Departments), ErrDataMissing)
	}
	if len(c.Medications.Names) != len(c.Departments) {
		return fmt.Errorf("medications: %d rows for %d departments: %w",
			len(c.Medications.Names), len(c.Departments), ErrDataMissing)
	}

	for d, row := range c.Treatments.Descriptions {
		if len(row) == 0 {
			return fmt.Errorf("treatments: department %d has no treatments: %w", d+1, ErrDataMissing)
		}
		if len(c.Medications.Names[d]) != len(row) {
			return fmt.Errorf("medications: department %d has %d entries for %d treatments: %w",
				d+1, len(c.Medications.Names[d]), len(row), ErrDataMissing)
		}
		for i, t := range row {
			if _, err := c.TreatmentType(t.Type); err != nil {
				return fmt.Errorf("treatments: department %d entry %d: %w", d+1, i, err)
			}
			for _, name := range c.Medications.Names[d][i] {
				if _, err := c.MedicationEffect(name); err != nil {
					return fmt.Errorf("medications: department %d entry %d: %w", d+1, i, err)
				}
			}
		}
	}

	return nil
}
