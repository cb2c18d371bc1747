package report

import (
	"io"

	"github.com/louisbranch/dicepool/internal/core/dice"
	"github.com/louisbranch/dicepool/internal/core/probability"
	"github.com/louisbranch/dicepool/internal/core/simulate"
	apperrors "github.com/louisbranch/dicepool/internal/platform/errors"
)

// Renderer is a report that can draw itself as text.
type Renderer interface {
	Render(w io.Writer) error
}

// SummaryReport renders a roll summary tree.
type SummaryReport struct {
	Summary dice.Summary
	Options Options
}

func (r SummaryReport) Render(w io.Writer) error {
	return WriteSummary(w, r.Summary, r.Options)
}

// HitsChart renders the hit distribution of a pool.
type HitsChart struct {
	Hits    probability.Hits
	Target  int
	Options Options
}

func (r HitsChart) Render(w io.Writer) error {
	return WriteHitsChart(w, r.Hits, r.Target, r.Options)
}

// TotalChart renders the total distribution of a pool.
type TotalChart struct {
	Total   probability.Total
	Target  int
	Options Options
}

func (r TotalChart) Render(w io.Writer) error {
	return WriteTotalChart(w, r.Total, r.Target, r.Options)
}

// AnalysisReport renders the success and glitch chances of a pool.
type AnalysisReport struct {
	Analysis probability.Analysis
	Options  Options
}

func (r AnalysisReport) Render(w io.Writer) error {
	return WriteAnalysis(w, r.Analysis, r.Options)
}

// SimulationReport renders observed rates beside the exact ones.
type SimulationReport struct {
	Result   simulate.Result
	Analysis probability.Analysis
	Options  Options
}

func (r SimulationReport) Render(w io.Writer) error {
	return WriteSimulation(w, r.Result, r.Analysis, r.Options)
}

// Warning renders a non-fatal problem.
type Warning struct {
	Err     *apperrors.Error
	Options Options
}

func (r Warning) Render(w io.Writer) error {
	return WriteWarning(w, r.Err, r.Options)
}

// RenderAll renders each report in order and stops at the first error.
func RenderAll(w io.Writer, reports ...Renderer) error {
	for _, r := range reports {
		if err := r.Render(w); err != nil {
			return err
		}
	}
	return nil
}
