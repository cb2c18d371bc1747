package engine

import (
	"fmt"
	"strconv"

	"github.com/louisbranch/dicepool/internal/core/dice"
	apperrors "github.com/louisbranch/dicepool/internal/platform/errors"
	"github.com/louisbranch/dicepool/internal/preset"
)

// Settings are the rule knobs shared by every expression in a request.
type Settings struct {
	Success       int
	Reroll        int
	Crit          int
	NoShittyCrits bool
	MaxBatches    int
}

// DefaultSettings leaves every threshold unreachable.
func DefaultSettings() Settings {
	return Settings{
		Success:    dice.Unreachable,
		Reroll:     dice.Unreachable,
		Crit:       dice.Unreachable,
		MaxBatches: dice.DefaultMaxBatches,
	}
}

// Rules converts the settings into roller rules.
func (s Settings) Rules() dice.Rules {
	return dice.Rules{
		Success:       s.Success,
		CritValue:     s.Crit,
		Reroll:        s.Reroll,
		NoShittyCrits: s.NoShittyCrits,
		MaxBatches:    s.MaxBatches,
	}
}

// WithPreset returns s with every rule the preset sets applied on top.
func (s Settings) WithPreset(p preset.Preset) Settings {
	if p.Success != nil {
		s.Success = *p.Success
	}
	if p.Reroll != nil {
		s.Reroll = *p.Reroll
	}
	if p.Crit != nil {
		s.Crit = *p.Crit
	}
	if p.NSC != nil {
		s.NoShittyCrits = *p.NSC
	}
	return s
}

// Validate rejects settings the roller cannot honor.
func (s Settings) Validate() error {
	if s.Reroll <= 1 {
		return apperrors.WithMetadata(
			apperrors.CodeRerollUnbounded,
			fmt.Sprintf("reroll threshold %d rerolls every face", s.Reroll),
			map[string]string{"Reroll": strconv.Itoa(s.Reroll)},
		)
	}
	if s.Success < 0 || s.Crit < 0 {
		return apperrors.WithMetadata(
			apperrors.CodeConfigInvalid,
			"thresholds must not be negative",
			map[string]string{"Reason": "thresholds must not be negative"},
		)
	}
	if s.MaxBatches < 0 {
		return apperrors.WithMetadata(
			apperrors.CodeConfigInvalid,
			"max reroll batches must not be negative",
			map[string]string{"Reason": "max reroll batches must not be negative"},
		)
	}
	return nil
}

// Overrides are rule values a caller set explicitly. Nil fields keep the
// value underneath.
type Overrides struct {
	Success       *int
	Reroll        *int
	Crit          *int
	NoShittyCrits *bool
	MaxBatches    *int
}

// WithOverrides returns s with every non-nil override applied.
func (s Settings) WithOverrides(o Overrides) Settings {
	if o.Success != nil {
		s.Success = *o.Success
	}
	if o.Reroll != nil {
		s.Reroll = *o.Reroll
	}
	if o.Crit != nil {
		s.Crit = *o.Crit
	}
	if o.NoShittyCrits != nil {
		s.NoShittyCrits = *o.NoShittyCrits
	}
	if o.MaxBatches != nil {
		s.MaxBatches = *o.MaxBatches
	}
	return s
}
