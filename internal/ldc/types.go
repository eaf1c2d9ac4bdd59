// Package ldc implements the flow-duration / load-duration computation engine:
// exceedance-probability ranking of a daily streamflow series, conversion of flow
// and concentration into pollutant loads, and per-regime statistical summaries
// suitable for comparison against a regulatory concentration standard.
package ldc

import "time"

// FlowRecord is one day of observed streamflow, in cubic feet per second.
// Dates are calendar dates; one record per date.
type FlowRecord struct {
	Date time.Time `json:"date"`
	Flow float64   `json:"flow"`
}

// ConcentrationRecord is one water-quality sample, in units per 100 mL.
// The sample series is sparse and independent of the flow series.
type ConcentrationRecord struct {
	Date          time.Time `json:"date"`
	Concentration float64   `json:"concentration"`
}

// FlowExceedanceRecord is a FlowRecord annotated with the empirical probability
// that flow on a randomly chosen day equals or exceeds this day's flow.
type FlowExceedanceRecord struct {
	FlowRecord
	Exceedance float64 `json:"exceedance"`
}

// LoadRecord extends a ranked flow record with daily pollutant loads.
// AllowableLoad is always defined; Concentration and MeasuredLoad are nil for
// dates with no matching sample, never coerced to zero.
type LoadRecord struct {
	FlowExceedanceRecord
	FlowCondition Regime   `json:"flow_condition,omitempty"`
	AllowableLoad float64  `json:"allowable_load"`
	Concentration *float64 `json:"concentration,omitempty"`
	MeasuredLoad  *float64 `json:"measured_load"`
}

// Regime is one of the five named flow conditions partitioning the exceedance axis.
type Regime string

const (
	RegimeHighest  Regime = "Highest Flows"
	RegimeMoist    Regime = "Moist Conditions"
	RegimeMidRange Regime = "Mid-Range Flows"
	RegimeDry      Regime = "Dry Conditions"
	RegimeLowest   Regime = "Lowest Flows"
)

// Regimes returns the five flow regimes in order of increasing exceedance.
func Regimes() [5]Regime {
	return [5]Regime{RegimeHighest, RegimeMoist, RegimeMidRange, RegimeDry, RegimeLowest}
}

// RegimeSummary is one row of the per-regime summary table. Exactly five rows
// exist per computation, one per regime; a regime with no underlying data keeps
// its row with nil derived fields so downstream consumers see a complete axis.
type RegimeSummary struct {
	Regime                   Regime   `json:"regime"`
	RepresentativeExceedance float64  `json:"representative_exceedance"`
	RepresentativeFlow       *float64 `json:"representative_flow"`
	GeomeanConcentration     *float64 `json:"geomean_concentration"`
	RepresentativeLoad       *float64 `json:"representative_load"`
	FlowCount                int      `json:"flow_count"`
	SampleCount              int      `json:"sample_count"`
}

// Diagnostic is a recoverable condition surfaced to the caller alongside the
// computed tables. Diagnostics are accumulated, never raised and never dropped.
type Diagnostic struct {
	Stage   string `json:"stage"`
	Regime  Regime `json:"regime,omitempty"`
	Message string `json:"message"`
}

// Stage names used in diagnostics and error context.
const (
	StageRank    = "rank"
	StageLoads   = "loads"
	StageRegimes = "regimes"
)

func dateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
