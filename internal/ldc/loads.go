package ldc

import (
	"fmt"
	"math"
)

// DefaultConversionFactor converts cubic-feet-per-second flow times a per-100mL
// concentration into units per day: 28316.8 mL per cubic foot times 86400
// seconds per day. Deployments with other units supply their own constant.
const DefaultConversionFactor = 28316.8 * 86400

// Converter derives daily pollutant loads from flow and concentration values.
type Converter struct {
	// Standard is the regulatory concentration threshold, in units per 100 mL
	// (e.g. 126 for the E. coli geometric-mean criterion).
	Standard float64

	// K is the unit-conversion constant; see DefaultConversionFactor.
	K float64
}

// NewConverter validates the regulatory standard and conversion constant.
func NewConverter(standard, k float64) (*Converter, error) {
	if !(standard > 0) || math.IsInf(standard, 0) {
		return nil, fmt.Errorf("%w: regulatory standard must be positive and finite, got %v",
			ErrInvalidConfiguration, standard)
	}
	if !(k > 0) || math.IsInf(k, 0) {
		return nil, fmt.Errorf("%w: conversion constant must be positive and finite, got %v",
			ErrInvalidConfiguration, k)
	}
	return &Converter{Standard: standard, K: k}, nil
}

// AllowableLoad is the load permitted at the given flow under the configured
// standard, in units per day.
func (c *Converter) AllowableLoad(flow float64) float64 {
	return c.Standard / 100 * flow * c.K
}

// MeasuredLoad is the observed load implied by a paired concentration sample.
func (c *Converter) MeasuredLoad(flow, concentration float64) float64 {
	return concentration / 100 * flow * c.K
}

// BuildLoads left-joins concentration samples onto the ranked flow series by
// exact calendar-date equality. Every flow date is retained; unmatched dates
// get nil Concentration and MeasuredLoad. When more than one sample shares a
// date, the first record wins and a diagnostic is emitted.
//
// A zero, negative, or non-finite concentration is rejected with ErrInvalidInput:
// the downstream geometric-mean estimator is undefined there, and silently
// skipping would hide a data-quality problem.
func (c *Converter) BuildLoads(ranked []FlowExceedanceRecord, samples []ConcentrationRecord) ([]LoadRecord, []Diagnostic, error) {
	var diags []Diagnostic

	byDate := make(map[string]float64, len(samples))
	for i, s := range samples {
		if math.IsNaN(s.Concentration) || math.IsInf(s.Concentration, 0) || s.Concentration <= 0 {
			return nil, nil, fmt.Errorf("%w: %s: concentration %v at sample %d (%s) is not a positive finite value",
				ErrInvalidInput, StageLoads, s.Concentration, i, dateKey(s.Date))
		}
		key := dateKey(s.Date)
		if _, dup := byDate[key]; dup {
			diags = append(diags, Diagnostic{
				Stage:   StageLoads,
				Message: fmt.Sprintf("duplicate concentration sample on %s: keeping first", key),
			})
			continue
		}
		byDate[key] = s.Concentration
	}

	out := make([]LoadRecord, len(ranked))
	for i, r := range ranked {
		rec := LoadRecord{
			FlowExceedanceRecord: r,
			AllowableLoad:        c.AllowableLoad(r.Flow),
		}
		if conc, ok := byDate[dateKey(r.Date)]; ok {
			load := c.MeasuredLoad(r.Flow, conc)
			rec.Concentration = &conc
			rec.MeasuredLoad = &load
		}
		out[i] = rec
	}
	return out, diags, nil
}
