package model

import (
	"errors"
	"sort"
	"strings"
)

// Encoder maps a categorical column to ordinal codes. Classes are the sorted
// vocabulary seen at training time; Fallback is the most frequent training
// value and substitutes for unknown or omitted inputs.
type Encoder struct {
	Column   string   `json:"column"`
	Classes  []string `json:"classes"`
	Fallback string   `json:"fallback"`

	index map[string]int
}

// synonyms folds UI-level variants onto the vocabulary used in the dataset.
var synonyms = map[string]map[string]string{
	"body": {
		"hatch":     "hatchback",
		"muv":       "suv",
		"mpv":       "suv",
		"crossover": "suv",
	},
	"fuel": {
		"gasoline": "petrol",
		"gas":      "petrol",
		"ev":       "electric",
		"hybrid":   "petrol",
	},
	"transmission": {
		"auto": "automatic",
		"at":   "automatic",
		"mt":   "manual",
	},
}

// Normalize lowercases and trims a categorical value and folds known synonyms
// for the column onto their canonical form.
func Normalize(column, value string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	if m, ok := synonyms[column]; ok {
		if canon, ok := m[v]; ok {
			return canon
		}
	}
	return v
}

// FitEncoder builds an encoder over the normalized training values of one
// column. The fallback level is the most frequent value, ties broken
// alphabetically.
func FitEncoder(column string, values []string) (*Encoder, error) {
	if len(values) == 0 {
		return nil, errors.New("no values to encode for column " + column)
	}
	counts := make(map[string]int)
	for _, v := range values {
		counts[Normalize(column, v)]++
	}
	classes := make([]string, 0, len(counts))
	for c := range counts {
		classes = append(classes, c)
	}
	sort.Strings(classes)

	fallback := classes[0]
	for _, c := range classes {
		if counts[c] > counts[fallback] {
			fallback = c
		}
	}

	e := &Encoder{Column: column, Classes: classes, Fallback: fallback}
	e.rebuild()
	return e, nil
}

// rebuild reconstructs the class lookup after Fit or artifact load.
func (e *Encoder) rebuild() {
	e.index = make(map[string]int, len(e.Classes))
	for i, c := range e.Classes {
		e.index[c] = i
	}
}

// Transform returns the ordinal code for a normalized value. Unknown values
// map to the fallback level and known reports false.
func (e *Encoder) Transform(value string) (code float64, known bool) {
	if e.index == nil {
		e.rebuild()
	}
	v := Normalize(e.Column, value)
	if i, ok := e.index[v]; ok {
		return float64(i), true
	}
	return float64(e.index[e.Fallback]), false
}
