package ldc

import (
	"math"
	"testing"
)

func TestQuantileType5(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		p        float64
		expected float64
	}{
		{name: "median of odd count", values: []float64{3, 1, 2}, p: 0.5, expected: 2},
		{name: "median of even count", values: []float64{4, 1, 3, 2}, p: 0.5, expected: 2.5},
		{name: "single value", values: []float64{7}, p: 0.5, expected: 7},
		{name: "p below first plotting position", values: []float64{10, 20, 30}, p: 0.01, expected: 10},
		{name: "p above last plotting position", values: []float64{10, 20, 30}, p: 0.99, expected: 30},
		// h = 4*0.25 + 0.5 = 1.5 → halfway between 1st and 2nd order statistic
		{name: "lower quartile interpolates", values: []float64{1, 2, 3, 4}, p: 0.25, expected: 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := quantileType5(tt.values, tt.p)
			if math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestQuantileType5DoesNotReorderInput(t *testing.T) {
	values := []float64{9, 1, 5}
	quantileType5(values, 0.5)
	if values[0] != 9 || values[1] != 1 || values[2] != 5 {
		t.Errorf("input slice was mutated: %v", values)
	}
}

func TestGeometricMean(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
		epsilon  float64
	}{
		{name: "repeated value", values: []float64{5, 5, 5, 5}, expected: 5, epsilon: 1e-9},
		{name: "two values", values: []float64{2, 8}, expected: 4, epsilon: 1e-9},
		{name: "log-normal-ish spread", values: []float64{10, 100, 1000}, expected: 100, epsilon: 1e-6},
		{name: "single value", values: []float64{126}, expected: 126, epsilon: 1e-9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := geometricMean(tt.values)
			if math.Abs(got-tt.expected) > tt.epsilon {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestRound3(t *testing.T) {
	if got := round3(1.23456); got != 1.235 {
		t.Errorf("expected 1.235, got %v", got)
	}
	if got := round3(2.0); got != 2.0 {
		t.Errorf("expected 2.0, got %v", got)
	}
}
