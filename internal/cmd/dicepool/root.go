// Package dicepool builds the dicepool command tree: rolling dice chains,
// predicting pool outcomes, the dice tutorial and the MCP server.
package dicepool

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/louisbranch/dicepool/internal/platform/cmd"
	"github.com/louisbranch/dicepool/internal/platform/config"
	apperrors "github.com/louisbranch/dicepool/internal/platform/errors"
	"github.com/louisbranch/dicepool/internal/preset"
	"github.com/louisbranch/dicepool/internal/report"
	"github.com/louisbranch/dicepool/internal/services/engine"
)

// EnvFile names an env file loaded before the environment is parsed. When
// unset, a .env file in the working directory is loaded if present.
const EnvFile = "DICEPOOL_ENV_FILE"

// Option customizes the command tree.
type Option func(*app)

// WithEngineOptions passes options to every engine the commands build.
func WithEngineOptions(opts ...engine.Option) Option {
	return func(a *app) {
		a.engineOpts = append(a.engineOpts, opts...)
	}
}

// WithClock replaces the clock used for roll timestamps.
func WithClock(now func() time.Time) Option {
	return func(a *app) {
		if now != nil {
			a.now = now
		}
	}
}

type app struct {
	cfg        Config
	dice       []string
	noColor    bool
	engineOpts []engine.Option
	now        func() time.Time
}

// NewCommand returns the root command. Running it without a subcommand rolls
// the given dice.
func NewCommand(cfg Config, opts ...Option) *cobra.Command {
	a := &app{cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}

	root := &cobra.Command{
		Use:   "dicepool [dice...]",
		Short: "Roll dice pools and predict their outcomes",
		Long: `Rolls chains of dice expressions such as "3*1d20+8 x*1d8+4", counting hits,
crits and glitches, and predicts the exact odds of a pool with the sim command.`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          a.runRoll,
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return invalidConfig(err.Error())
	})

	fs := root.PersistentFlags()
	fs.StringArrayVarP(&a.dice, "dice", "d", nil, `Dice to roll, separated by spaces, e.g. "3*1d20+8 x*1d8+4". See help-dice for the format.`)
	fs.IntVarP(&a.cfg.Success, "success", "s", a.cfg.Success, "Value a die must reach to count as a hit.")
	fs.IntVarP(&a.cfg.Reroll, "reroll", "r", a.cfg.Reroll, "Dice at or above this value are rolled again.")
	fs.IntVarP(&a.cfg.Crit, "count-crits", "c", a.cfg.Crit, "Natural value that counts as a critical.")
	fs.BoolVarP(&a.cfg.NoShittyCrits, "no-shitty-crits", "q", a.cfg.NoShittyCrits, "Crits carried into the next expression roll their maximum face.")
	fs.IntVar(&a.cfg.MaxBatches, "max-reroll-batches", a.cfg.MaxBatches, "Stop rerolling after this many batches.")
	fs.Int64Var(&a.cfg.Seed, "seed", a.cfg.Seed, "Seed for reproducible rolls. Zero picks a random seed.")
	fs.StringVar(&a.cfg.Preset, "preset", a.cfg.Preset, "Named preset supplying dice and rules.")
	fs.StringVar(&a.cfg.PresetsPath, "presets", a.cfg.PresetsPath, "YAML or TOML preset file merged over the built-in presets.")
	fs.BoolVar(&a.cfg.Brief, "brief", a.cfg.Brief, "Only print hits and totals.")
	fs.BoolVar(&a.noColor, "no-color", false, "Disable colored output.")

	root.AddCommand(
		a.rollCommand(),
		a.simCommand(),
		a.helpDiceCommand(),
		a.mcpCommand(),
		versionCommand(),
	)
	return root
}

// Execute loads the environment, runs the command line in args and returns
// the process exit status.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer, opts ...Option) int {
	envFile, required := ".env", false
	if path := os.Getenv(EnvFile); path != "" {
		envFile, required = path, true
	}
	if err := config.LoadDotEnv(envFile, required); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	cfg := DefaultConfig()
	if err := cmd.ParseConfig(&cfg); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return apperrors.CodeConfigInvalid.ExitCode()
	}

	root := NewCommand(cfg, opts...)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "error: %s\n", describe(err))
		return apperrors.CodeOf(err).ExitCode()
	}
	return 0
}

// describe prefers the user-facing message of a coded error.
func describe(err error) string {
	var coded *apperrors.Error
	if errors.As(err, &coded) {
		return coded.UserMessage()
	}
	return err.Error()
}

func invalidConfig(reason string) error {
	return apperrors.WithMetadata(apperrors.CodeConfigInvalid, reason, map[string]string{"Reason": reason})
}

// newEngine builds an engine over the built-in presets merged with the
// configured or discovered preset file.
func (a *app) newEngine() (*engine.Service, error) {
	path := strings.TrimSpace(a.cfg.PresetsPath)
	if path == "" {
		path = preset.DefaultPath()
	}
	catalog, err := preset.Load(path)
	if err != nil {
		return nil, err
	}
	return engine.New(catalog, a.engineOpts...), nil
}

// resolve layers preset and flags into the expressions and settings of a
// request. Dice come from --dice and positional arguments, then from
// DICEPOOL_DICE, then from the preset.
func (a *app) resolve(c *cobra.Command, args []string) (*engine.Service, []string, engine.Settings, error) {
	svc, err := a.newEngine()
	if err != nil {
		return nil, nil, engine.Settings{}, err
	}

	exprs := append(splitDice(a.dice), splitDice(args)...)
	if len(exprs) == 0 {
		exprs = a.cfg.Dice
	}
	exprs, settings, err := svc.Resolve(a.cfg.settings(), a.cfg.Preset, exprs, a.cfg.overrides(c.Flags()))
	if err != nil {
		return nil, nil, engine.Settings{}, err
	}
	return svc, exprs, settings, nil
}

func (a *app) reportOptions(w io.Writer) report.Options {
	return report.Options{
		Color: a.color(w),
		Brief: a.cfg.Brief,
	}
}

// color reports whether w is a terminal that accepts ANSI colors.
func (a *app) color(w io.Writer) bool {
	if a.noColor || a.cfg.NoColor != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

func writeWarnings(w io.Writer, warnings []*apperrors.Error, opts report.Options) error {
	reports := make([]report.Renderer, 0, len(warnings))
	for _, warning := range warnings {
		reports = append(reports, report.Warning{Err: warning, Options: opts})
	}
	return report.RenderAll(w, reports...)
}
