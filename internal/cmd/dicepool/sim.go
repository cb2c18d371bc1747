package dicepool

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/louisbranch/dicepool/internal/core/probability"
	"github.com/louisbranch/dicepool/internal/platform/cmd"
	"github.com/louisbranch/dicepool/internal/report"
	"github.com/louisbranch/dicepool/internal/services/engine"
)

type simOptions struct {
	hits        int
	total       int
	showTotals  bool
	showHits    bool
	hideSummary bool
	trials      int
}

func (a *app) simCommand() *cobra.Command {
	var o simOptions
	c := &cobra.Command{
		Use:   "sim [dice...]",
		Short: "Simulate and predict probabilities of possible outcomes",
		Long: `Computes the exact hit, total and glitch odds of every expression on its own.
"x" counts as zero since nothing has been rolled. With --trials the pool is also
rolled that many times and the observed rates are printed beside the exact ones.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return a.runSim(c, args, o)
		},
	}
	fs := c.Flags()
	fs.IntVarP(&o.hits, "nhits", "n", 0, "Number of hits that counts as a success.")
	fs.IntVar(&o.total, "sum-total", 0, "Unmodified dice sum that counts as a success.")
	fs.BoolVarP(&o.showTotals, "show-totals", "t", false, "Chart the odds of every total.")
	fs.BoolVarP(&o.showHits, "show-hits", "p", false, "Chart the odds of every hit count.")
	fs.BoolVarP(&o.hideSummary, "hide-summary", "z", false, "Hide the probability summary.")
	fs.IntVar(&o.trials, "trials", 0, "Also roll each pool this many times and compare.")
	return c
}

func (a *app) runSim(c *cobra.Command, args []string, o simOptions) error {
	if o.trials < 0 {
		return invalidConfig("trials must not be negative")
	}
	var targets probability.Targets
	if c.Flags().Changed("nhits") {
		targets.Hits = &o.hits
	}
	if c.Flags().Changed("sum-total") {
		targets.Total = &o.total
	}

	return cmd.RunWithTelemetry(c.Context(), cmd.ServiceCLI, func(ctx context.Context) error {
		svc, exprs, settings, err := a.resolve(c, args)
		if err != nil {
			return err
		}
		resp, err := svc.Probability(ctx, engine.ProbabilityRequest{
			Expressions: exprs,
			Settings:    settings,
			Targets:     targets,
			Trials:      o.trials,
			Seed:        a.cfg.Seed,
		})
		if err != nil {
			return err
		}

		out := c.OutOrStdout()
		opts := a.reportOptions(out)
		if err := writeWarnings(c.ErrOrStderr(), resp.Warnings, opts); err != nil {
			return err
		}
		var reports []report.Renderer
		for _, r := range resp.Reports {
			if o.showTotals {
				reports = append(reports, report.TotalChart{Total: r.Total, Target: o.total, Options: opts})
			}
			if o.showHits {
				reports = append(reports, report.HitsChart{Hits: r.Hits, Target: o.hits, Options: opts})
			}
			if !o.hideSummary {
				reports = append(reports, report.AnalysisReport{Analysis: r.Analysis, Options: opts})
			}
			if r.Simulation != nil {
				reports = append(reports, report.SimulationReport{Result: *r.Simulation, Analysis: r.Analysis, Options: opts})
			}
		}
		return report.RenderAll(out, reports...)
	})
}
