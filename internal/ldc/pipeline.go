package ldc

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Result is the complete output of one load-duration computation: the labeled
// per-day load table, the five-row regime summary, and every diagnostic
// accumulated along the way.
type Result struct {
	RunID       string          `json:"run_id"`
	SiteID      string          `json:"site_id,omitempty"`
	ComputedAt  time.Time       `json:"computed_at"`
	Curve       []LoadRecord    `json:"curve"`
	Regimes     []RegimeSummary `json:"regimes"`
	Diagnostics []Diagnostic    `json:"diagnostics"`
}

// Pipeline chains the three engine stages. Each stage returns a fresh table;
// independent site computations may run concurrently on separate Pipelines or
// share one, since Run touches no shared state.
type Pipeline struct {
	conv   *Converter
	siteID string
	logger *zap.SugaredLogger
}

// NewPipeline creates a pipeline for one site's computations.
func NewPipeline(conv *Converter, siteID string, logger *zap.SugaredLogger) *Pipeline {
	return &Pipeline{conv: conv, siteID: siteID, logger: logger}
}

// Run executes rank → loads → label → summarize over the supplied tables.
// Fatal errors abort with stage context; recoverable conditions accumulate
// into the result's diagnostics list.
func (p *Pipeline) Run(ctx context.Context, flows []FlowRecord, samples []ConcentrationRecord) (*Result, error) {
	res := &Result{
		RunID:      uuid.NewString(),
		SiteID:     p.siteID,
		ComputedAt: time.Now().UTC(),
	}
	p.logger.Infof("starting load-duration computation %s: %d flow records, %d samples",
		res.RunID, len(flows), len(samples))

	ranked, err := Rank(flows)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	loads, loadDiags, err := p.conv.BuildLoads(ranked, samples)
	if err != nil {
		return nil, err
	}
	res.Diagnostics = append(res.Diagnostics, loadDiags...)

	labeled, err := Label(loads)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	summaries, regimeDiags, err := Summarize(labeled, p.conv)
	if err != nil {
		return nil, err
	}
	res.Diagnostics = append(res.Diagnostics, regimeDiags...)

	res.Curve = labeled
	res.Regimes = summaries

	for _, d := range res.Diagnostics {
		p.logger.Warnf("diagnostic [%s] %s %s", d.Stage, d.Regime, d.Message)
	}
	p.logger.Infof("computation %s complete: %d curve rows, %d diagnostics",
		res.RunID, len(res.Curve), len(res.Diagnostics))
	return res, nil
}
