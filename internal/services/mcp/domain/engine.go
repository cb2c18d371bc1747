package domain

import (
	"context"
	"errors"

	apperrors "github.com/louisbranch/dicepool/internal/platform/errors"
	"github.com/louisbranch/dicepool/internal/preset"
	"github.com/louisbranch/dicepool/internal/services/engine"
)

// Engine is the dice engine the tools call into.
type Engine interface {
	Roll(ctx context.Context, req engine.RollRequest) (engine.RollResponse, error)
	Probability(ctx context.Context, req engine.ProbabilityRequest) (engine.ProbabilityResponse, error)
	Resolve(base engine.Settings, presetName string, exprs []string, overrides engine.Overrides) ([]string, engine.Settings, error)
	Presets() []preset.Preset
}

func warningMessages(warnings []*apperrors.Error) []string {
	if len(warnings) == 0 {
		return nil
	}
	out := make([]string, 0, len(warnings))
	for _, w := range warnings {
		out = append(out, w.UserMessage())
	}
	return out
}

func userMessage(err error) string {
	var coded *apperrors.Error
	if errors.As(err, &coded) {
		return coded.UserMessage()
	}
	return ""
}
