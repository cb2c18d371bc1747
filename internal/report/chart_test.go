package report

import (
	"strings"
	"testing"

	"github.com/louisbranch/dicepool/internal/core/dice"
	"github.com/louisbranch/dicepool/internal/core/probability"
)

func TestBar(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		peak  float64
		width int
		want  string
	}{
		{"peak fills width", 100, 100, 4, "████"},
		{"half", 50, 100, 10, "█████"},
		{"fraction", 3, 16, 8, "█▌"},
		{"one eighth", 1, 64, 8, "▏"},
		{"too small", 1, 100, 4, ""},
		{"zero", 0, 100, 4, ""},
		{"no peak", 10, 0, 4, ""},
		{"clamped", 200, 100, 3, "███"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Bar(tt.value, tt.peak, tt.width); got != tt.want {
				t.Fatalf("Bar(%v, %v, %d) = %q, want %q", tt.value, tt.peak, tt.width, got, tt.want)
			}
		})
	}
}

func TestWriteHitsChart(t *testing.T) {
	pool, _ := dice.Parse("2d6", dice.ParseOptions{HitThreshold: 5})
	var b strings.Builder
	if err := WriteHitsChart(&b, probability.NewHits(pool), 0, Options{BarWidth: 4}); err != nil {
		t.Fatalf("WriteHitsChart() error = %v", err)
	}

	lines := strings.Split(b.String(), "\n")
	if len(lines) != 6 || lines[1] != "Hits" {
		t.Fatalf("WriteHitsChart() =\n%q", b.String())
	}
	full := 0
	for i, prefix := range []string{"0:\t44.4444% ", "1:\t44.4444% ", "2:\t11.1111% "} {
		line := lines[i+2]
		if !strings.HasPrefix(line, prefix) {
			t.Fatalf("row %d = %q, want prefix %q", i, line, prefix)
		}
		if strings.TrimPrefix(line, prefix) == "████" {
			full++
		}
	}
	if full == 0 {
		t.Fatal("the most likely row should fill the bar width")
	}
}

func TestWriteTotalChartHighlightsTarget(t *testing.T) {
	pool, _ := dice.Parse("1d6+2", dice.ParseOptions{HitThreshold: 5})
	var b strings.Builder
	if err := WriteTotalChart(&b, probability.NewTotal(pool), 5, Options{Color: true, BarWidth: 2}); err != nil {
		t.Fatalf("WriteTotalChart() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	if len(lines) != 8 {
		t.Fatalf("lines = %d, want title, a leading empty row and six rows:\n%s", len(lines), b.String())
	}
	for _, line := range lines[1:] {
		highlighted := strings.HasPrefix(line, string(green))
		value := strings.TrimPrefix(line, string(green))
		wantHighlight := strings.HasPrefix(value, "7:") || strings.HasPrefix(value, "8:")
		if highlighted != wantHighlight {
			t.Fatalf("line %q highlighted = %v, want %v", line, highlighted, wantHighlight)
		}
	}
	if lines[1] != "2:\t 0.0000% " {
		t.Fatalf("leading row = %q, want an empty row at 2", lines[1])
	}
	if !strings.HasPrefix(strings.TrimPrefix(lines[2], string(green)), "3:") {
		t.Fatalf("first total row = %q, want modified total 3", lines[2])
	}
}
