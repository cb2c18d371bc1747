package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/louisbranch/dicepool/internal/core/dice"
)

const separator = "____________________________________"

// WriteSummary writes a summary tree depth first.
//
// A leaf prints its dice, hits, modified total and glitch state followed by a
// separator. An internal node prints an optional timestamp and a separator
// before its children.
func WriteSummary(w io.Writer, summary dice.Summary, opts Options) error {
	var b strings.Builder
	writeSummary(&b, summary, opts)
	_, err := io.WriteString(w, b.String())
	return err
}

func writeSummary(b *strings.Builder, s dice.Summary, opts Options) {
	results := s.Results()
	children := s.Children()

	switch {
	case len(results) == 0 && len(children) > 0:
		if !opts.Timestamp.IsZero() {
			b.WriteString(opts.Timestamp.Format(timestampLayout))
			b.WriteByte('\n')
		}
		b.WriteString(separator + "\n")
	case len(results) == 0:
		b.WriteString(separator + "\n")
	default:
		if !opts.Brief {
			for _, result := range results {
				writeResult(b, result, opts)
			}
		}
		fmt.Fprintf(b, "Hits:\t\t%d\n", s.Hits)
		fmt.Fprintf(b, "Total (+%d):\t%d\n", s.TotalModifier, s.Total)
		switch {
		case s.CriticalGlitch():
			b.WriteString(opts.paint(red, "Critical glitch!") + "\n")
		case s.Glitch():
			b.WriteString(opts.paint(yellow, "Glitch!") + "\n")
		}
		b.WriteString(separator + "\n")
	}

	for _, child := range children {
		writeSummary(b, child, opts)
	}
}

func writeResult(b *strings.Builder, result dice.RollResult, opts Options) {
	if result.Modifier != 0 {
		fmt.Fprintf(b, " d%d (+%d)\t", result.Sides, result.Modifier)
	} else {
		fmt.Fprintf(b, " d%d\t\t", result.Sides)
	}
	b.WriteByte('\t')

	value := strconv.Itoa(result.Value)
	switch {
	case result.Crit:
		value = opts.paint(yellow, value)
	case result.Hit:
		value = opts.paint(green, value)
	case result.CriticalFail:
		value = opts.paint(red, value)
	}
	b.WriteString(value)
	b.WriteByte('\n')
}
