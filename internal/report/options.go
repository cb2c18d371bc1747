// Package report renders roll summaries, probability charts and simulation
// comparisons as terminal text.
package report

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultBarWidth is the number of cells the tallest chart bar fills.
const DefaultBarWidth = 40

const timestampLayout = "2006-01-02 15:04:05 -07:00"

// Options controls how reports are rendered.
type Options struct {
	// Color wraps hits, crits and glitches in ANSI escapes.
	Color bool
	// Timestamp heads every grouped summary when non-zero.
	Timestamp time.Time
	// Brief omits the per-die lines of a summary.
	Brief bool
	// BarWidth overrides DefaultBarWidth when positive.
	BarWidth int
	// Printer formats counts. Nil uses English.
	Printer *message.Printer
}

func (o Options) barWidth() int {
	if o.BarWidth > 0 {
		return o.BarWidth
	}
	return DefaultBarWidth
}

func (o Options) printer() *message.Printer {
	if o.Printer != nil {
		return o.Printer
	}
	return message.NewPrinter(language.English)
}

type color string

const (
	green  color = "\x1b[32m"
	yellow color = "\x1b[33m"
	red    color = "\x1b[31m"
	bold   color = "\x1b[1m"
	reset        = "\x1b[0m"
)

func (o Options) paint(c color, text string) string {
	if !o.Color || text == "" {
		return text
	}
	return string(c) + text + reset
}
