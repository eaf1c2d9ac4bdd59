package ldc

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func testPipeline(t *testing.T) *Pipeline {
	t.Helper()
	conv, err := NewConverter(126, DefaultConversionFactor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return NewPipeline(conv, "08057000", zap.NewNop().Sugar())
}

func TestPipelineRun(t *testing.T) {
	p := testPipeline(t)

	// 20 distinct flows: exceedance k/20 spans all five regimes.
	flows := make([]FlowRecord, 20)
	for i := range flows {
		flows[i] = FlowRecord{Date: day(i), Flow: float64(1000 - i*37)}
	}

	// Samples only on low-flow days; the Highest Flows regime keeps its flow
	// records but has zero paired samples.
	samples := []ConcentrationRecord{
		{Date: day(15), Concentration: 240},
		{Date: day(18), Concentration: 580},
	}

	res, err := p.Run(context.Background(), flows, samples)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.RunID == "" {
		t.Error("expected a run ID")
	}
	if res.SiteID != "08057000" {
		t.Errorf("expected site ID to propagate, got %q", res.SiteID)
	}
	if len(res.Curve) != 20 {
		t.Fatalf("expected 20 curve rows, got %d", len(res.Curve))
	}
	if len(res.Regimes) != 5 {
		t.Fatalf("expected 5 regime rows, got %d", len(res.Regimes))
	}

	for i, r := range res.Curve {
		if r.FlowCondition == "" {
			t.Errorf("curve row %d: missing flow condition label", i)
		}
		if r.AllowableLoad <= 0 {
			t.Errorf("curve row %d: allowable load not computed", i)
		}
	}

	byRegime := make(map[Regime]RegimeSummary)
	for _, s := range res.Regimes {
		byRegime[s.Regime] = s
	}

	// Flows are descending with date, so the sampled low-flow days land in the
	// high-exceedance regimes.
	highest := byRegime[RegimeHighest]
	if highest.FlowCount == 0 {
		t.Error("highest flows: expected flow records")
	}
	if highest.RepresentativeFlow == nil {
		t.Error("highest flows: expected a median flow")
	}
	if highest.RepresentativeLoad != nil {
		t.Error("highest flows: expected undefined load with zero samples")
	}

	foundEmptyHighest := false
	for _, d := range res.Diagnostics {
		if d.Regime == RegimeHighest {
			foundEmptyHighest = true
		}
	}
	if !foundEmptyHighest {
		t.Error("expected a diagnostic for the sample-less Highest Flows regime")
	}
}

func TestPipelineRunPropagatesStageErrors(t *testing.T) {
	p := testPipeline(t)

	if _, err := p.Run(context.Background(), nil, nil); err == nil {
		t.Error("expected error for empty flow series")
	}

	flows := []FlowRecord{{Date: day(0), Flow: 10}}
	samples := []ConcentrationRecord{{Date: day(0), Concentration: -1}}
	if _, err := p.Run(context.Background(), flows, samples); err == nil {
		t.Error("expected error for negative concentration")
	}
}

func TestPipelineRunHonorsCancelledContext(t *testing.T) {
	p := testPipeline(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	flows := []FlowRecord{{Date: day(0), Flow: 10}}
	if _, err := p.Run(ctx, flows, nil); err == nil {
		t.Error("expected error from cancelled context")
	}
}
