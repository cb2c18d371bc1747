package dicepool

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/louisbranch/dicepool/internal/platform/cmd"
	"github.com/louisbranch/dicepool/internal/report"
	"github.com/louisbranch/dicepool/internal/services/engine"
)

func (a *app) rollCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "roll [dice...]",
		Short: "Roll a chain of dice expressions",
		Long: `Rolls each expression in order. "x" in an expression stands for the hits of
the expression before it, so "3*1d20+8 x*1d8+4" rolls damage for every attack
that hit.`,
		Args: cobra.ArbitraryArgs,
		RunE: a.runRoll,
	}
}

func (a *app) runRoll(c *cobra.Command, args []string) error {
	return cmd.RunWithTelemetry(c.Context(), cmd.ServiceCLI, func(ctx context.Context) error {
		svc, exprs, settings, err := a.resolve(c, args)
		if err != nil {
			return err
		}
		resp, err := svc.Roll(ctx, engine.RollRequest{
			Expressions: exprs,
			Settings:    settings,
			Seed:        a.cfg.Seed,
		})
		if err != nil {
			return err
		}

		opts := a.reportOptions(c.OutOrStdout())
		if err := writeWarnings(c.ErrOrStderr(), resp.Warnings, opts); err != nil {
			return err
		}
		if len(resp.Rolls) == 0 {
			return nil
		}
		opts.Timestamp = a.now()
		return report.SummaryReport{Summary: resp.Summary, Options: opts}.Render(c.OutOrStdout())
	})
}
