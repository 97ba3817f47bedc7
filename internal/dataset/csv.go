// Package dataset reads the tabular training data for the price model.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Record is one row of the training dataset.
type Record struct {
	Make         string
	Body         string
	Fuel         string
	Transmission string
	Year         float64
	Mileage      float64
	Price        float64
}

// Fields returns the record's feature columns keyed by schema column name.
func (r Record) Fields() map[string]string {
	return map[string]string{
		"make":         r.Make,
		"body":         r.Body,
		"fuel":         r.Fuel,
		"transmission": r.Transmission,
		"year":         strconv.FormatFloat(r.Year, 'f', -1, 64),
		"mileage":      strconv.FormatFloat(r.Mileage, 'f', -1, 64),
	}
}

// loadError covers a missing or malformed dataset. Fatal at training time.
type loadError struct {
	path string
	line int
	msg  string
}

func (e loadError) Error() string {
	if e.line > 0 {
		return fmt.Sprintf("dataset %s line %d: %s", e.path, e.line, e.msg)
	}
	return fmt.Sprintf("dataset %s: %s", e.path, e.msg)
}

// IsLoadError reports whether err indicates a missing or malformed dataset.
func IsLoadError(err error) bool {
	_, ok := err.(loadError)
	return ok
}

var requiredColumns = []string{"make", "body", "fuel", "transmission", "year", "mileage", "price"}

// ReadCSV loads the dataset. The header row is required and column order is
// free. Any unparseable row aborts the load with its line number.
func ReadCSV(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, loadError{path: path, msg: err.Error()}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, loadError{path: path, msg: "missing header row"}
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, loadError{path: path, msg: "missing column " + name}
		}
	}

	var records []Record
	line := 1
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, loadError{path: path, line: line, msg: err.Error()}
		}
		rec, err := parseRow(row, cols)
		if err != nil {
			return nil, loadError{path: path, line: line, msg: err.Error()}
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, loadError{path: path, msg: "no data rows"}
	}
	return records, nil
}

func parseRow(row []string, cols map[string]int) (Record, error) {
	get := func(name string) string { return strings.TrimSpace(row[cols[name]]) }
	num := func(name string) (float64, error) {
		v, err := strconv.ParseFloat(get(name), 64)
		if err != nil {
			return 0, fmt.Errorf("column %s: %q is not a number", name, get(name))
		}
		return v, nil
	}

	rec := Record{
		Make:         get("make"),
		Body:         get("body"),
		Fuel:         get("fuel"),
		Transmission: get("transmission"),
	}
	for _, name := range []string{"make", "body", "fuel", "transmission"} {
		if get(name) == "" {
			return Record{}, fmt.Errorf("column %s: empty value", name)
		}
	}
	var err error
	if rec.Year, err = num("year"); err != nil {
		return Record{}, err
	}
	if rec.Mileage, err = num("mileage"); err != nil {
		return Record{}, err
	}
	if rec.Price, err = num("price"); err != nil {
		return Record{}, err
	}
	if rec.Price < 0 {
		return Record{}, fmt.Errorf("column price: negative value %v", rec.Price)
	}
	return rec, nil
}
