package dicepool

import (
	"strings"

	"github.com/spf13/pflag"

	mcpcmd "github.com/louisbranch/dicepool/internal/cmd/mcp"
	"github.com/louisbranch/dicepool/internal/services/engine"
)

// Config holds the settings shared by every dicepool command. Environment
// variables supply the defaults and flags override them.
type Config struct {
	Dice          []string `env:"DICEPOOL_DICE" envSeparator:" "`
	Success       int      `env:"DICEPOOL_SUCCESS" envDefault:"65535"`
	Reroll        int      `env:"DICEPOOL_REROLL" envDefault:"65535"`
	Crit          int      `env:"DICEPOOL_CRIT" envDefault:"65535"`
	NoShittyCrits bool     `env:"DICEPOOL_NSC"`
	MaxBatches    int      `env:"DICEPOOL_MAX_REROLL_BATCHES" envDefault:"1000"`
	Seed          int64    `env:"DICEPOOL_SEED"`
	Preset        string   `env:"DICEPOOL_PRESET"`
	PresetsPath   string   `env:"DICEPOOL_PRESETS"`
	Brief         bool     `env:"DICEPOOL_BRIEF"`
	// NoColor follows the NO_COLOR convention: any non-empty value disables
	// ANSI colors.
	NoColor string `env:"NO_COLOR"`

	MCP mcpcmd.Config
}

// DefaultConfig returns the configuration used when no environment is set.
func DefaultConfig() Config {
	s := engine.DefaultSettings()
	return Config{
		Success:    s.Success,
		Reroll:     s.Reroll,
		Crit:       s.Crit,
		MaxBatches: s.MaxBatches,
		MCP: mcpcmd.Config{
			HTTPAddr:  "localhost:8081",
			Transport: "stdio",
		},
	}
}

// settings returns the configured rules as the base layer of a request.
func (c Config) settings() engine.Settings {
	return engine.Settings{
		Success:       c.Success,
		Reroll:        c.Reroll,
		Crit:          c.Crit,
		NoShittyCrits: c.NoShittyCrits,
		MaxBatches:    c.MaxBatches,
	}
}

// overrides collects the rules whose flags were set on the command line, so
// they win over a preset. Environment values stay underneath the preset.
func (c *Config) overrides(fs *pflag.FlagSet) engine.Overrides {
	var o engine.Overrides
	if fs.Changed("success") {
		o.Success = &c.Success
	}
	if fs.Changed("reroll") {
		o.Reroll = &c.Reroll
	}
	if fs.Changed("count-crits") {
		o.Crit = &c.Crit
	}
	if fs.Changed("no-shitty-crits") {
		o.NoShittyCrits = &c.NoShittyCrits
	}
	if fs.Changed("max-reroll-batches") {
		o.MaxBatches = &c.MaxBatches
	}
	return o
}

// splitDice splits every value on whitespace. A blank value stays as one
// empty expression so the engine can warn about it.
func splitDice(values []string) []string {
	var exprs []string
	for _, v := range values {
		fields := strings.Fields(v)
		if len(fields) == 0 {
			exprs = append(exprs, "")
			continue
		}
		exprs = append(exprs, fields...)
	}
	return exprs
}
