package ldc

import (
	"errors"
	"math"
	"testing"
	"time"
)

func day(n int) time.Time {
	return time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func flowSeries(flows ...float64) []FlowRecord {
	records := make([]FlowRecord, len(flows))
	for i, f := range flows {
		records[i] = FlowRecord{Date: day(i), Flow: f}
	}
	return records
}

func TestRank(t *testing.T) {
	tests := []struct {
		name     string
		flows    []float64
		expected []float64
		epsilon  float64
	}{
		{
			name:     "four ascending days",
			flows:    []float64{10, 20, 30, 40},
			expected: []float64{1.0, 0.75, 0.5, 0.25},
			epsilon:  1e-12,
		},
		{
			name:     "single record",
			flows:    []float64{42},
			expected: []float64{1.0},
			epsilon:  1e-12,
		},
		{
			name:     "descending input",
			flows:    []float64{40, 30, 20, 10},
			expected: []float64{0.25, 0.5, 0.75, 1.0},
			epsilon:  1e-12,
		},
		{
			name:  "ties get distinct ranks, first occurrence lower",
			flows: []float64{5, 5, 10},
			// 10 is rank 1; the two 5s keep input order: ranks 2 and 3.
			expected: []float64{2.0 / 3.0, 1.0, 1.0 / 3.0},
			epsilon:  1e-12,
		},
		{
			name:     "zero flow is valid",
			flows:    []float64{0, 1},
			expected: []float64{1.0, 0.5},
			epsilon:  1e-12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranked, err := Rank(flowSeries(tt.flows...))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(ranked) != len(tt.expected) {
				t.Fatalf("expected %d records, got %d", len(tt.expected), len(ranked))
			}
			for i, r := range ranked {
				if math.Abs(r.Exceedance-tt.expected[i]) > tt.epsilon {
					t.Errorf("record %d: expected exceedance %v, got %v", i, tt.expected[i], r.Exceedance)
				}
				if r.Flow != tt.flows[i] {
					t.Errorf("record %d: input ordering not preserved", i)
				}
			}
		})
	}
}

func TestRankErrors(t *testing.T) {
	tests := []struct {
		name    string
		records []FlowRecord
	}{
		{name: "empty series", records: nil},
		{name: "negative flow", records: flowSeries(10, -1)},
		{name: "NaN flow", records: flowSeries(10, math.NaN())},
		{name: "infinite flow", records: flowSeries(math.Inf(1))},
		{
			name: "duplicate date",
			records: []FlowRecord{
				{Date: day(0), Flow: 10},
				{Date: day(0), Flow: 20},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Rank(tt.records)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

// Exceedance values must be exactly the set {1/n, 2/n, ..., 1}.
func TestRankPermutationProperty(t *testing.T) {
	flows := []float64{3.2, 180, 0.5, 44, 44, 12, 7.1, 96, 2.2, 61}
	ranked, err := Rank(flowSeries(flows...))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	n := len(flows)
	got := make(map[float64]bool, n)
	for _, r := range ranked {
		got[r.Exceedance] = true
	}
	for k := 1; k <= n; k++ {
		want := float64(k) / float64(n)
		if !got[want] {
			t.Errorf("exceedance %v missing from ranked output", want)
		}
	}
	if len(got) != n {
		t.Errorf("expected %d distinct exceedance values, got %d", n, len(got))
	}
}

// For tie-free input, larger flow never has larger exceedance.
func TestRankMonotonicity(t *testing.T) {
	flows := []float64{15, 3, 92, 41, 8, 66, 27, 54}
	ranked, err := Rank(flowSeries(flows...))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range ranked {
		for j := range ranked {
			if ranked[i].Flow > ranked[j].Flow && ranked[i].Exceedance > ranked[j].Exceedance {
				t.Errorf("flow %v has exceedance %v but smaller flow %v has %v",
					ranked[i].Flow, ranked[i].Exceedance, ranked[j].Flow, ranked[j].Exceedance)
			}
		}
	}
}
