package dicepool

import (
	"bytes"
	"context"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/dicepool/internal/core/dice"
	"github.com/louisbranch/dicepool/internal/services/engine"
)

// maxSource always rolls the highest face.
type maxSource struct{}

func (maxSource) Intn(n int) int { return n - 1 }

var fixedTime = time.Date(2024, 3, 9, 18, 30, 0, 0, time.UTC)

func testConfig(t *testing.T) Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.PresetsPath = filepath.Join(t.TempDir(), "presets.yaml")
	return cfg
}

func testOptions() []Option {
	return []Option{
		WithEngineOptions(engine.WithSourceFactory(func(int64) dice.Source { return maxSource{} })),
		WithClock(func() time.Time { return fixedTime }),
	}
}

func runCommand(t *testing.T, cfg Config, args ...string) (string, string, error) {
	t.Helper()
	root := NewCommand(cfg, testOptions()...)
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestRollCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "dice flag",
			args: []string{"-d", "3d6", "-s", "5"},
			want: []string{"2024-03-09 18:30:00 +00:00", "Hits:\t\t3", "Total (+0):\t18"},
		},
		{
			name: "positional dice",
			args: []string{"2d6+1"},
			want: []string{"Total (+1):\t13"},
		},
		{
			name: "roll subcommand chains hits",
			args: []string{"roll", "-d", "3*1d20+8 x*1d8+4", "-s", "14"},
			want: []string{"Total (+24):\t84", "Total (+12):\t36"},
		},
		{
			name: "preset",
			args: []string{"--preset", "attack-damage"},
			want: []string{"Hits:\t\t3", "Total (+12):\t36"},
		},
		{
			name: "flag overrides preset",
			args: []string{"--preset", "attack-damage", "-s", "30"},
			want: []string{"Hits:\t\t0", "Total (+24):\t84"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, err := runCommand(t, testConfig(t), tt.args...)
			if err != nil {
				t.Fatalf("execute: %v", err)
			}
			if stderr != "" {
				t.Fatalf("unexpected stderr %q", stderr)
			}
			for _, want := range tt.want {
				if !strings.Contains(stdout, want) {
					t.Fatalf("expected output to contain %q, got:\n%s", want, stdout)
				}
			}
		})
	}
}

func TestRollBriefOmitsDice(t *testing.T) {
	stdout, _, err := runCommand(t, testConfig(t), "--brief", "-d", "2d8")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if strings.Contains(stdout, " d8") {
		t.Fatalf("expected no die lines, got:\n%s", stdout)
	}
	if !strings.Contains(stdout, "Total (+0):\t16") {
		t.Fatalf("expected total, got:\n%s", stdout)
	}
}

func TestRollWithoutDiceWarns(t *testing.T) {
	stdout, stderr, err := runCommand(t, testConfig(t))
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if stdout != "" {
		t.Fatalf("expected no summary, got %q", stdout)
	}
	if !strings.Contains(stderr, "The dice roller has no dice to roll") {
		t.Fatalf("expected empty dice warning, got %q", stderr)
	}
}

func TestRollUsesEnvDice(t *testing.T) {
	cfg := testConfig(t)
	cfg.Dice = []string{"1d4"}
	stdout, _, err := runCommand(t, cfg)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(stdout, "Total (+0):\t4") {
		t.Fatalf("expected env dice to roll, got:\n%s", stdout)
	}
}

func TestSimCommand(t *testing.T) {
	stdout, _, err := runCommand(t, testConfig(t),
		"sim", "-d", "2d6", "-s", "5", "-n", "1", "--sum-total", "10", "-p", "-t", "--trials", "500", "--seed", "3")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	for _, want := range []string{
		"\nTotal\n",
		"\nHits\n",
		"Probability of 10 total:",
		"Probability of 1 hits:",
		"Probability of glitch:",
		"Simulated 500 trials",
	} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, stdout)
		}
	}
}

func TestSimHideSummary(t *testing.T) {
	stdout, _, err := runCommand(t, testConfig(t), "sim", "-z", "-d", "3d6")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if stdout != "" {
		t.Fatalf("expected no output, got %q", stdout)
	}
}

func TestSimRejectsNegativeTrials(t *testing.T) {
	_, _, err := runCommand(t, testConfig(t), "sim", "-d", "3d6", "--trials", "-1")
	if err == nil || !strings.Contains(describe(err), "trials must not be negative") {
		t.Fatalf("expected negative trials error, got %v", err)
	}
}

func TestHelpDice(t *testing.T) {
	stdout, _, err := runCommand(t, testConfig(t), "help-dice")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	for _, want := range []string{
		"Dice Format Tutorial",
		`>> dicepool -d "5d6"`,
		`>> dicepool -d "3*1d20+8 x*1d8+4" -s 14`,
		"Total (+0):\t30",
		"Total (+12):\t36",
	} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("expected tutorial to contain %q, got:\n%s", want, stdout)
		}
	}
}

func TestVersion(t *testing.T) {
	stdout, _, err := runCommand(t, testConfig(t), "version")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.HasPrefix(stdout, "dicepool version dev\n") {
		t.Fatalf("unexpected version output %q", stdout)
	}
}

func TestExecuteExitCodes(t *testing.T) {
	t.Setenv(EnvFile, "")
	t.Setenv("DICEPOOL_PRESETS", filepath.Join(t.TempDir(), "presets.yaml"))
	t.Chdir(t.TempDir())

	tests := []struct {
		name   string
		args   []string
		code   int
		stderr string
	}{
		{name: "ok", args: []string{"-d", "1d6"}, code: 0},
		{name: "unbounded reroll", args: []string{"-d", "1d6", "-r", "1"}, code: 2, stderr: "forever"},
		{name: "unknown preset", args: []string{"--preset", "nope"}, code: 3, stderr: `No preset named "nope"`},
		{name: "bad flag", args: []string{"--success", "many"}, code: 2, stderr: "Invalid configuration"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := Execute(context.Background(), tt.args, &stdout, &stderr, testOptions()...)
			if code != tt.code {
				t.Fatalf("exit code = %d, want %d (stderr %q)", code, tt.code, stderr.String())
			}
			if !strings.Contains(stderr.String(), tt.stderr) {
				t.Fatalf("expected stderr to contain %q, got %q", tt.stderr, stderr.String())
			}
		})
	}
}

func TestExecuteReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dicepool.env")
	if err := writeFile(path, "DICEPOOL_DICE=2d4\n"); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv(EnvFile, path)
	t.Setenv("DICEPOOL_PRESETS", filepath.Join(dir, "presets.yaml"))
	t.Setenv("DICEPOOL_DICE", "")
	unsetenv(t, "DICEPOOL_DICE")

	var stdout, stderr bytes.Buffer
	if code := Execute(context.Background(), nil, &stdout, &stderr, testOptions()...); code != 0 {
		t.Fatalf("exit code = %d, stderr %q", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "Total (+0):\t8") {
		t.Fatalf("expected env file dice to roll, got:\n%s", stdout.String())
	}
}

func TestSplitDice(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{name: "none", in: nil, want: nil},
		{name: "spaces", in: []string{"3*1d20+8  x*1d8+4"}, want: []string{"3*1d20+8", "x*1d8+4"}},
		{name: "repeated", in: []string{"1d6", "2d8"}, want: []string{"1d6", "2d8"}},
		{name: "blank kept", in: []string{"  ", "1d6"}, want: []string{"", "1d6"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := splitDice(tt.in); !slices.Equal(got, tt.want) {
				t.Fatalf("splitDice() = %q, want %q", got, tt.want)
			}
		})
	}
}
