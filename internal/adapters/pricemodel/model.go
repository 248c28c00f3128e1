package pricemodel

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"propwise/internal/adapters/observability"
)

const (
	colSqft = "total_sqft"
	colBath = "bath"
	colBHK  = "bhk"

	locationPrefix = "site_location_"
)

// Model is a linear regression over a fixed, ordered feature-column set.
// It is immutable after construction and safe for concurrent use.
type Model struct {
	intercept float64
	coef      []float64
	columns   []string
	index     map[string]int
	locations []string
}

func New(columns []string, intercept float64, coef []float64) (*Model, error) {
	if len(columns) != len(coef) {
		return nil, fmt.Errorf("pricemodel: %d columns but %d coefficients", len(columns), len(coef))
	}
	m := &Model{
		intercept: intercept,
		coef:      append([]float64(nil), coef...),
		columns:   append([]string(nil), columns...),
		index:     make(map[string]int, len(columns)),
	}
	for i, c := range m.columns {
		if _, dup := m.index[c]; dup {
			return nil, fmt.Errorf("pricemodel: duplicate column %q", c)
		}
		m.index[c] = i
		if strings.HasPrefix(c, locationPrefix) {
			m.locations = append(m.locations, strings.TrimPrefix(c, locationPrefix))
		}
	}
	for _, c := range []string{colSqft, colBath, colBHK} {
		if _, ok := m.index[c]; !ok {
			return nil, fmt.Errorf("pricemodel: required column %q missing", c)
		}
	}
	sort.Strings(m.locations)
	return m, nil
}

// PredictPrice builds a zero feature row, fills the numeric features and the
// location one-hot column, and returns the model's estimate in lakhs.
// An unknown location simply contributes no signal.
func (m *Model) PredictPrice(location string, sqft float64, bath, bhk int) (float64, error) {
	if math.IsNaN(sqft) || math.IsInf(sqft, 0) {
		return 0, fmt.Errorf("pricemodel: sqft is not a finite number")
	}
	row := make([]float64, len(m.columns))
	row[m.index[colSqft]] = sqft
	row[m.index[colBath]] = float64(bath)
	row[m.index[colBHK]] = float64(bhk)
	if i, ok := m.index[locationPrefix+location]; ok {
		row[i] = 1
	}

	y := m.intercept
	for i, x := range row {
		y += m.coef[i] * x
	}
	observability.ObservePrediction()
	return y, nil
}

func (m *Model) Locations() []string {
	return append([]string(nil), m.locations...)
}

// Columns returns the ordered feature-column list.
func (m *Model) Columns() []string {
	return append([]string(nil), m.columns...)
}
