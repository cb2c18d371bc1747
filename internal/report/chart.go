package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/louisbranch/dicepool/internal/core/probability"
)

const fullBlock = "█"

// eighths holds the partial blocks for one to seven eighths of a cell.
var eighths = [...]string{"▏", "▎", "▍", "▌", "▋", "▊", "▉"}

// WriteHitsChart writes one bar per possible hit count. Rows with at least
// target hits are highlighted when target is positive.
func WriteHitsChart(w io.Writer, hits probability.Hits, target int, opts Options) error {
	return writeChart(w, "Hits", hits.Points(), func(value int) bool {
		return target > 0 && value >= target
	}, opts)
}

// WriteTotalChart writes one bar per possible modified total, led by an
// empty row one below the lowest total so the chart opens at zero. Rows whose
// unmodified sum reaches target are highlighted when target is positive.
func WriteTotalChart(w io.Writer, total probability.Total, target int, opts Options) error {
	points := total.Points()
	if len(points) > 0 {
		points = append([]probability.Point{{Value: points[0].Value - 1}}, points...)
	}
	return writeChart(w, "Total", points, func(value int) bool {
		return target > 0 && value-total.Modifier() >= target
	}, opts)
}

func writeChart(w io.Writer, title string, points []probability.Point, highlight func(int) bool, opts Options) error {
	var b strings.Builder
	b.WriteString("\n" + opts.paint(bold, title) + "\n")

	peak := 0.0
	for _, point := range points {
		peak = max(peak, point.Percent)
	}
	for _, point := range points {
		line := fmt.Sprintf("%d:\t%7.4f%% %s", point.Value, point.Percent, Bar(point.Percent, peak, opts.barWidth()))
		if highlight(point.Value) {
			line = opts.paint(green, line)
		}
		b.WriteString(line + "\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Bar draws value as a horizontal bar where peak fills width cells. The last
// cell uses eighth blocks for the fractional remainder.
func Bar(value, peak float64, width int) string {
	if peak <= 0 || value <= 0 || width <= 0 {
		return ""
	}
	cells := min(value/peak, 1) * float64(width)
	full := int(cells)
	bar := strings.Repeat(fullBlock, full)
	if eighth := int((cells - float64(full)) * 8); eighth > 0 {
		bar += eighths[eighth-1]
	}
	return bar
}
