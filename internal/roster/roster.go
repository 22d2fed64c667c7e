package roster

import (
	"encoding/csv"
	"fmt"
	"os"
)

// Student is one row of the enrollment roster exported by the student
// registry. PersonCode is the stable key used by both pipelines to
// derive the judging-system username.
type Student struct {
	PersonCode string
	IDNumber   string
	Name       string
	Email      string
}

// Column headers of the roster export. The column order varies between
// exports, so rows are read by header name.
const (
	columnPersonCode = "Codice persona"
	columnIDNumber   = "Matricola"
	columnName       = "Cognome-Nome"
	columnEmail      = "E-mail"
)

// Load parses the students CSV file into one Student per data row.
func Load(path string) ([]Student, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("roster %s: missing header row", path)
	}

	columns := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		columns[name] = i
	}
	for _, required := range []string{columnPersonCode, columnIDNumber, columnName, columnEmail} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("roster %s: missing column %q", path, required)
		}
	}

	students := make([]Student, 0, len(records)-1)
	for _, row := range records[1:] {
		students = append(students, Student{
			PersonCode: row[columns[columnPersonCode]],
			IDNumber:   row[columns[columnIDNumber]],
			Name:       row[columns[columnName]],
			Email:      row[columns[columnEmail]],
		})
	}

	return students, nil
}
