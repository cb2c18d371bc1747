package report

import (
	"fmt"
	"io"

	apperrors "github.com/louisbranch/dicepool/internal/platform/errors"
)

// WriteWarning writes a non-fatal problem with its user-facing message.
// Empty-dice warnings also name the flag that supplies dice.
func WriteWarning(w io.Writer, warning *apperrors.Error, opts Options) error {
	if warning == nil {
		return nil
	}
	label := opts.paint(yellow, "warning:")
	if warning.Code == apperrors.CodeDiceExpressionEmpty {
		_, err := fmt.Fprintf(w, "\n%s The following suggested arguments were not provided:\n\t%s\n\nThe dice roller has no dice to roll...\n\n",
			label, opts.paint(green, "--dice <Dice>"))
		return err
	}
	_, err := fmt.Fprintf(w, "%s %s\n", label, warning.UserMessage())
	return err
}
