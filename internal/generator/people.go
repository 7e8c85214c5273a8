package generator

import (
	"context"

	"github.com/ehr/healthgen/internal/reference"
)

const (
	dobStartYear = 1995
	dobEndYear   = 2010
)

// Departments numbers the reference department names from 1.
func (g *Generator) Departments() []Department {
	departments := make([]Department, len(g.catalog.Departments))
	for i, name := range g.catalog.Departments {
		departments[i] = Department{DepartmentID: i + 1, DepartmentName: name}
	}
	return departments
}

// Doctors emits one doctor per (firstname, lastname) pair, each in a random
// department with a random specialization of it, then shuffles the list.
func (g *Generator) Doctors(ctx context.Context, departments []Department) ([]Doctor, error) {
	names := g.catalog.DoctorNames
	doctors := make([]Doctor, 0, names.Size())
	id := 1

	for _, person := range names.Firstnames {
		for _, lastname := range names.Lastnames {
			deptIndex := g.rnd.Number(0, len(departments)-1)
			slot := g.rnd.Number(0, reference.SpecializationSlots-1)

			code, err := g.NationalCode(ctx)
			if err != nil {
				return nil, err
			}

			doctors = append(doctors, Doctor{
				DoctorID:       id,
				NationalCode:   code,
				Firstname:      person.Firstname,
				Lastname:       lastname,
				Gender:         person.Gender,
				Phone:          Phone(g.rnd),
				Specialization: g.catalog.Specializations[deptIndex][slot],
				DepartmentID:   departments[deptIndex].DepartmentID,
			})
			id++
		}
	}

	shuffle(g.rnd, doctors)
	return doctors, nil
}

// Patients repeats the (firstname, lastname) product PatientRounds times. Name
// pairs repeat across rounds; ids and national codes never do. The list is
// shuffled before it is returned.
func (g *Generator) Patients(ctx context.Context) ([]Patient, error) {
	names := g.catalog.PatientNames
	patients := make([]Patient, 0, names.Size()*g.opts.PatientRounds)
	id := 1

	for round := 0; round < g.opts.PatientRounds; round++ {
		for _, person := range names.Firstnames {
			for _, lastname := range names.Lastnames {
				code, err := g.NationalCode(ctx)
				if err != nil {
					return nil, err
				}
				dob := RandomDate(g.rnd, dobStartYear, dobEndYear)
				phone := Phone(g.rnd)

				patients = append(patients, Patient{
					PatientID:    id,
					NationalCode: code,
					Firstname:    person.Firstname,
					Lastname:     lastname,
					DOB:          dob,
					Gender:       person.Gender,
					Phone:        phone,
				})
				id++
			}
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	shuffle(g.rnd, patients)
	return patients, nil
}
