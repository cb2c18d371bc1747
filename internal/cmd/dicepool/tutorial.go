package dicepool

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/louisbranch/dicepool/internal/core/dice"
	"github.com/louisbranch/dicepool/internal/platform/cmd"
	"github.com/louisbranch/dicepool/internal/report"
	"github.com/louisbranch/dicepool/internal/services/engine"
)

// lesson is one tutorial paragraph followed by a worked roll.
type lesson struct {
	text    string
	command string
	dice    []string
	success int
}

var lessons = []lesson{
	{
		text: `Specify the number and type of dice in 'x*ndm+c' format. For example five
six-sided dice is 5d6.`,
		command: `dicepool -d "5d6"`,
		dice:    []string{"5d6"},
		success: dice.Unreachable,
	},
	{
		text: `Multiple arguments may be listed with spaces by surrounding the dice with
quotations: '-d "3d4 6d6..."'. Dice arguments may contain a constant modifier by
using a plus sign at the end of the dice: '2d6+4' rolls two six-sided dice with a
+4 modifier. The modifier may be applied to multiple dice using the
multiplication operator: '2*1d20+8' rolls two twenty-sided dice and applies a +8
modifier to each roll.`,
		command: `dicepool -d "2*1d20+8" -s 20`,
		dice:    []string{"2*1d20+8"},
		success: 20,
	},
	{
		text: `Arguments may refer to the previous number of hits using the letter 'x'. The
dice sequence "2*1d20+8 x*1d8+4" rolls a d8 with a +4 modifier for every hit
received on the previous set of twenty-sided dice.`,
		command: `dicepool -d "3*1d20+8 x*1d8+4" -s 14`,
		dice:    []string{"3*1d20+8", "x*1d8+4"},
		success: 14,
	},
}

func (a *app) helpDiceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "help-dice",
		Short: "Show more information on dice syntax and behavior",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return cmd.RunWithTelemetry(c.Context(), cmd.ServiceCLI, func(ctx context.Context) error {
				svc, err := a.newEngine()
				if err != nil {
					return err
				}
				return a.writeTutorial(ctx, c.OutOrStdout(), svc)
			})
		},
	}
}

// writeTutorial prints every lesson and rolls its example with default rules
// apart from the lesson's success value.
func (a *app) writeTutorial(ctx context.Context, w io.Writer, svc *engine.Service) error {
	opts := a.reportOptions(w)
	fmt.Fprint(w, "\nDice Format Tutorial\n")
	for _, l := range lessons {
		settings := engine.DefaultSettings()
		settings.Success = l.success

		resp, err := svc.Roll(ctx, engine.RollRequest{
			Expressions: l.dice,
			Settings:    settings,
			Seed:        a.cfg.Seed,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "\n%s\n\n>> %s\n -->\n", l.text, l.command)
		if err := (report.SummaryReport{Summary: resp.Summary, Options: opts}).Render(w); err != nil {
			return err
		}
	}
	return nil
}
