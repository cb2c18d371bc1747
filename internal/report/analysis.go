package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/louisbranch/dicepool/internal/core/probability"
	"github.com/louisbranch/dicepool/internal/core/simulate"
)

// WriteAnalysis writes the success, glitch and critical glitch chances of a
// pool. The success lines depend on which targets were supplied: both targets
// get a line each, a single target gets one "success" line and no target
// leaves only the glitch lines.
func WriteAnalysis(w io.Writer, analysis probability.Analysis, opts Options) error {
	var b strings.Builder
	b.WriteByte('\n')
	switch {
	case analysis.HasTotalTarget && analysis.HasHitTarget:
		fmt.Fprintf(&b, "Probability of %d total:\t\t%s%%\n", analysis.TotalTarget, opts.paint(bold, percent(analysis.TotalProbability)))
		fmt.Fprintf(&b, "Probability of %d hits:\t\t%s%%\n", analysis.HitTarget, opts.paint(bold, percent(analysis.HitProbability)))
	case analysis.HasHitTarget:
		fmt.Fprintf(&b, "Probability of success:\t\t%s%%\n", opts.paint(bold, percent(analysis.HitProbability)))
	case analysis.HasTotalTarget:
		fmt.Fprintf(&b, "Probability of success:\t\t%s%%\n", opts.paint(bold, percent(analysis.TotalProbability)))
	}
	fmt.Fprintf(&b, "Probability of glitch:\t\t%s%%\n", opts.paint(yellow, percent(analysis.Glitch)))
	fmt.Fprintf(&b, "Probability of critical glitch:\t%s%%\n", opts.paint(red, percent(analysis.CriticalGlitch)))
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteSimulation writes the observed rates of a Monte Carlo run next to the
// exact chances in analysis.
func WriteSimulation(w io.Writer, result simulate.Result, analysis probability.Analysis, opts Options) error {
	p := opts.printer()
	var b strings.Builder
	b.WriteString("\n" + opts.paint(bold, p.Sprintf("Simulated %d trials", result.Trials)) + "\n")
	b.WriteString("\t\t\tExact\t\tObserved\n")

	row := func(label string, exact, observed float64) {
		fmt.Fprintf(&b, "%s\t%s%%\t%s%%\n", label, percent(exact), percent(observed))
	}
	if analysis.HasTotalTarget {
		row(fmt.Sprintf("Total of %d:\t", analysis.TotalTarget), analysis.TotalProbability, result.TotalRateAtLeast(analysis.TotalTarget+analysis.TotalModifier))
	}
	row(fmt.Sprintf("%d or more hits:\t", analysis.HitTarget), analysis.HitProbability, result.HitRateAtLeast(analysis.HitTarget))
	row("Glitch:\t\t", analysis.Glitch, result.GlitchRate())
	row("Critical glitch:", analysis.CriticalGlitch, result.CriticalGlitchRate())

	hits := result.HitStats()
	totals := result.TotalStats()
	fmt.Fprintf(&b, "Hits:\t\tmean %.2f, sd %.2f, range %d-%d\n", hits.Mean, hits.StdDev, hits.Min, hits.Max)
	fmt.Fprintf(&b, "Total:\t\tmean %.2f, sd %.2f, range %d-%d\n", totals.Mean, totals.StdDev, totals.Min, totals.Max)
	if result.Truncated > 0 {
		b.WriteString(opts.paint(yellow, p.Sprintf("%d trials stopped at the reroll limit", result.Truncated)) + "\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func percent(p float64) string {
	return fmt.Sprintf("%7.4f", 100*p)
}
