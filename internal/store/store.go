// Package store loads the delimited tables the site is built from.
// Tables are reloaded fresh on every run; there is no caching layer.
package store

import (
	"encoding/csv"
	"fmt"
	"os"
)

// Row maps a column name to the raw string value of one record.
type Row map[string]string

// LoadError reports a missing or malformed input table. Nothing is
// written to the output tree once one of these is raised.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ReadTable reads a CSV file with a header row and returns its records
// in file order. Every record must have the same number of fields as
// the header.
func ReadTable(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	if len(records) == 0 {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("missing header row")}
	}

	header := records[0]
	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(Row, len(header))
		for i, name := range header {
			row[name] = rec[i]
		}
		rows = append(rows, row)
	}
	return rows, nil
}
