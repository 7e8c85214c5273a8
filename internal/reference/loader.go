package reference

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
)

//go:embed data/*.json
var embedded embed.FS

const (
	departmentsFile     = "departments.json"
	specializationsFile = "specializations.json"
	doctorNamesFile     = "doctors_names.json"
	patientNamesFile    = "patient_names.json"
	treatmentsFile      = "treatments.json"
	medicationsFile     = "medications.json"
)

// Default returns the catalogs compiled into the binary.
func Default() (*Catalog, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("open embedded reference data: %w", err)
	}
	return Load(sub)
}

// LoadDir reads the catalogs from a directory holding the same JSON files as
// the embedded set.
func LoadDir(dir string) (*Catalog, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("reference directory: %w", err)
	}
	return Load(os.DirFS(dir))
}

// Load decodes and validates every catalog file in fsys.
func Load(fsys fs.FS) (*Catalog, error) {
	c := &Catalog{}

	files := []struct {
		name string
		dst  interface{}
	}{
		{departmentsFile, &c.Departments},
		{specializationsFile, &c.Specializations},
		{doctorNamesFile, &c.DoctorNames},
		{patientNamesFile, &c.PatientNames},
		{treatmentsFile, &c.Treatments},
		{medicationsFile, &c.Medications},
	}

	for _, f := range files {
		if err := decodeFile(fsys, f.name, f.dst); err != nil {
			return nil, err
		}
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate reference data: %w", err)
	}
	return c, nil
}

func decodeFile(fsys fs.FS, name string, dst interface{}) error {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}
