package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"

	"github.com/ehr/healthgen/internal/generator"
	"github.com/ehr/healthgen/internal/timedim"
)

const flushInterval = 100_000

// File records one written parquet file.
type File struct {
	Table string
	Path  string
	Rows  int
}

func writeFile[T any](dir, table string, rows []T) (File, error) {
	path := filepath.Join(dir, table+".parquet")
	f, err := os.Create(path)
	if err != nil {
		return File{}, fmt.Errorf("failed to create parquet file: %w", err)
	}

	w := parquet.NewGenericWriter[T](f, parquet.Compression(&parquet.Snappy))

	for start := 0; start < len(rows); start += flushInterval {
		end := start + flushInterval
		if end > len(rows) {
			end = len(rows)
		}
		if _, err := w.Write(rows[start:end]); err != nil {
			f.Close()
			return File{}, fmt.Errorf("failed to write %s rows: %w", table, err)
		}
		if err := w.Flush(); err != nil {
			f.Close()
			return File{}, fmt.Errorf("failed to flush %s row group: %w", table, err)
		}
	}

	if err := w.Close(); err != nil {
		f.Close()
		return File{}, fmt.Errorf("failed to close parquet writer: %w", err)
	}
	if err := f.Close(); err != nil {
		return File{}, err
	}
	return File{Table: table, Path: path, Rows: len(rows)}, nil
}

// WriteParquet writes one Snappy-compressed file per entity table into dir.
func WriteParquet(dir string, ds *generator.Dataset) ([]File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var files []File
	add := func(f File, err error) error {
		if err != nil {
			return err
		}
		files = append(files, f)
		return nil
	}

	if err := add(writeFile(dir, generator.TableDepartment, ds.Departments)); err != nil {
		return nil, err
	}
	if err := add(writeFile(dir, generator.TableDoctor, ds.Doctors)); err != nil {
		return nil, err
	}
	if err := add(writeFile(dir, generator.TablePatient, ds.Patients)); err != nil {
		return nil, err
	}
	if err := add(writeFile(dir, generator.TableVisit, ds.Visits)); err != nil {
		return nil, err
	}
	if err := add(writeFile(dir, generator.TableTreatment, ds.Treatments)); err != nil {
		return nil, err
	}
	if err := add(writeFile(dir, generator.TableMedication, ds.Medications)); err != nil {
		return nil, err
	}
	if err := add(writeFile(dir, generator.TableBilling, ds.Billings)); err != nil {
		return nil, err
	}
	return files, nil
}

// WriteTimeParquet writes the time dimension into dir.
func WriteTimeParquet(dir string, rows []timedim.Row) (File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return File{}, fmt.Errorf("create output dir: %w", err)
	}
	return writeFile(dir, timedim.TableName, rows)
}
