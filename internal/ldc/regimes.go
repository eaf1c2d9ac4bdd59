package ldc

import "fmt"

// The two boundary conventions are deliberately asymmetric and both are
// preserved from the reference tool: the labeling pass closes each interval at
// the left, the representative-point pass closes at the right. A record with
// exceedance exactly on an interior cut (0.1, 0.4, 0.6, 0.9) therefore carries
// the label of the higher-exceedance regime while being summarized with the
// lower-exceedance one.
type regimeBin struct {
	regime Regime
	repP   float64
	lo, hi float64
}

var regimeBins = [5]regimeBin{
	{RegimeHighest, 0.05, 0.0, 0.1},
	{RegimeMoist, 0.25, 0.1, 0.4},
	{RegimeMidRange, 0.5, 0.4, 0.6},
	{RegimeDry, 0.75, 0.6, 0.9},
	{RegimeLowest, 0.95, 0.9, 1.0},
}

// LabelFor returns the flow-condition name for an exceedance probability,
// using intervals closed at the left: [0,0.1) [0.1,0.4) [0.4,0.6) [0.6,0.9) [0.9,1].
func LabelFor(exceedance float64) (Regime, bool) {
	if exceedance < 0 || exceedance > 1 {
		return "", false
	}
	for i, b := range regimeBins {
		if i == len(regimeBins)-1 {
			return b.regime, true
		}
		if exceedance < b.hi {
			return b.regime, true
		}
	}
	return "", false
}

// representativeBin groups by intervals open at the left: (0,0.1] (0.1,0.4]
// (0.4,0.6] (0.6,0.9] (0.9,1]. Exceedance 0 falls through; Rank guarantees
// exceedance >= 1/n so callers never see that.
func representativeBin(exceedance float64) (int, bool) {
	if exceedance <= 0 || exceedance > 1 {
		return 0, false
	}
	for i, b := range regimeBins {
		if exceedance <= b.hi {
			return i, true
		}
	}
	return 0, false
}

// Label returns a copy of the load table with each record's FlowCondition set.
// The input is never mutated.
func Label(records []LoadRecord) ([]LoadRecord, error) {
	out := make([]LoadRecord, len(records))
	for i, r := range records {
		regime, ok := LabelFor(r.Exceedance)
		if !ok {
			return nil, fmt.Errorf("%w: %s: exceedance %v at record %d (%s) outside [0,1]",
				ErrInvalidInput, StageRegimes, r.Exceedance, i, dateKey(r.Date))
		}
		out[i] = r
		out[i].FlowCondition = regime
	}
	return out, nil
}

// Summarize partitions the load table into the five flow regimes and computes,
// per regime, the median flow (type-5 quantile, rounded to 3 decimals), the
// geometric mean of the paired concentration samples, and the representative
// load at the regime's canonical exceedance probability.
//
// A regime with no flow records or no concentration samples is a recoverable
// condition: its derived fields stay nil, a diagnostic is appended, and the
// remaining regimes compute normally. All five rows are always returned.
func Summarize(records []LoadRecord, conv *Converter) ([]RegimeSummary, []Diagnostic, error) {
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%w: %s: empty load table", ErrInvalidInput, StageRegimes)
	}

	var flows [5][]float64
	var concs [5][]float64
	for i, r := range records {
		bin, ok := representativeBin(r.Exceedance)
		if !ok {
			return nil, nil, fmt.Errorf("%w: %s: exceedance %v at record %d (%s) outside (0,1]",
				ErrInvalidInput, StageRegimes, r.Exceedance, i, dateKey(r.Date))
		}
		flows[bin] = append(flows[bin], r.Flow)
		if r.Concentration != nil {
			concs[bin] = append(concs[bin], *r.Concentration)
		}
	}

	var diags []Diagnostic
	out := make([]RegimeSummary, len(regimeBins))
	for i, b := range regimeBins {
		s := RegimeSummary{
			Regime:                   b.regime,
			RepresentativeExceedance: b.repP,
			FlowCount:                len(flows[i]),
			SampleCount:              len(concs[i]),
		}

		if len(flows[i]) == 0 {
			diags = append(diags, Diagnostic{
				Stage:   StageRegimes,
				Regime:  b.regime,
				Message: "no flow records in regime",
			})
			out[i] = s
			continue
		}
		median := round3(quantileType5(flows[i], 0.5))
		s.RepresentativeFlow = &median

		if len(concs[i]) == 0 {
			diags = append(diags, Diagnostic{
				Stage:   StageRegimes,
				Regime:  b.regime,
				Message: "no concentration samples in regime",
			})
			out[i] = s
			continue
		}
		gm := geometricMean(concs[i])
		load := conv.MeasuredLoad(median, gm)
		s.GeomeanConcentration = &gm
		s.RepresentativeLoad = &load
		out[i] = s
	}
	return out, diags, nil
}
