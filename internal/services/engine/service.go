package engine

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/dicepool/internal/core/dice"
	"github.com/louisbranch/dicepool/internal/core/probability"
	"github.com/louisbranch/dicepool/internal/core/simulate"
	apperrors "github.com/louisbranch/dicepool/internal/platform/errors"
	"github.com/louisbranch/dicepool/internal/platform/otel"
	"github.com/louisbranch/dicepool/internal/preset"
	"github.com/louisbranch/dicepool/internal/random"
)

// Service runs roll and probability requests.
type Service struct {
	mu        sync.RWMutex
	presets   preset.Catalog
	newSource func(seed int64) dice.Source
	tracer    trace.Tracer
}

// Option customizes a Service.
type Option func(*Service)

// WithSourceFactory replaces the seeded generator used for rolls.
func WithSourceFactory(factory func(seed int64) dice.Source) Option {
	return func(s *Service) {
		if factory != nil {
			s.newSource = factory
		}
	}
}

// WithTracer replaces the tracer taken from the global provider.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// New returns a service over presets.
func New(presets preset.Catalog, opts ...Option) *Service {
	s := &Service{
		presets:   presets,
		newSource: func(seed int64) dice.Source { return random.New(seed) },
		tracer:    otel.Tracer(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Presets lists the available presets.
func (s *Service) Presets() []preset.Preset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.presets.List()
}

// Preset returns the preset called name.
func (s *Service) Preset(name string) (preset.Preset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.presets.Lookup(name)
}

// SetPresets replaces the catalog served by Presets and Preset.
func (s *Service) SetPresets(presets preset.Catalog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.presets = presets
}

// RollRequest asks for a chain of expressions to be rolled in order.
type RollRequest struct {
	Expressions []string
	Settings    Settings
	// Seed makes the roll reproducible. Zero picks a fresh seed.
	Seed int64
}

// ExpressionRoll is the outcome of one expression in a chain.
type ExpressionRoll struct {
	Expression string
	Summary    dice.Summary
	// Batches is how many reroll batches the expression took.
	Batches int
}

// RollResponse holds a rolled chain.
type RollResponse struct {
	Seed  int64
	Rolls []ExpressionRoll
	// Summary groups every expression's leaf in order.
	Summary  dice.Summary
	Warnings []*apperrors.Error
}

// Roll rolls each expression in order. Every expression sees the previous
// roll's hits in place of "x" and, under no-shitty-crits, its crits.
//
// Blank expressions are skipped with a warning. An expression without a "d"
// separator contributes an empty roll and resets the chain. A roll stopped
// by the batch cap keeps its partial results and adds a warning.
func (s *Service) Roll(ctx context.Context, req RollRequest) (resp RollResponse, err error) {
	ctx, span := s.tracer.Start(ctx, "engine.Roll", trace.WithAttributes(
		attribute.Int("dice.expressions", len(req.Expressions)),
		attribute.Bool("dice.nsc", req.Settings.NoShittyCrits),
	))
	defer func() { endSpan(span, err) }()

	if err := req.Settings.Validate(); err != nil {
		return RollResponse{}, err
	}
	seed, err := random.Resolve(req.Seed)
	if err != nil {
		return RollResponse{}, fmt.Errorf("resolve seed: %w", err)
	}
	span.SetAttributes(attribute.Int64("dice.seed", seed))

	src := s.newSource(seed)
	rules := req.Settings.Rules()
	resp = RollResponse{Seed: seed}
	if len(req.Expressions) == 0 {
		resp.Warnings = append(resp.Warnings, emptyExpression())
	}

	var previous dice.Summary
	leaves := make([]dice.Summary, 0, len(req.Expressions))
	for _, expr := range req.Expressions {
		if err := ctx.Err(); err != nil {
			return RollResponse{}, err
		}
		if strings.TrimSpace(expr) == "" {
			resp.Warnings = append(resp.Warnings, emptyExpression())
			continue
		}

		pool, ok := dice.Parse(expr, dice.ParseOptions{
			HitThreshold:  req.Settings.Success,
			Previous:      previous.Hits,
			Crits:         previous.Crits,
			NoShittyCrits: req.Settings.NoShittyCrits,
		})
		if !ok {
			resp.Warnings = append(resp.Warnings, invalidExpression(expr))
		}

		roller, err := dice.NewRoller(pool, rules, src)
		if err != nil {
			return RollResponse{}, fromDiceError(err, req.Settings)
		}
		if err := roller.Roll(); err != nil {
			if !errors.Is(err, dice.ErrRerollLimit) {
				return RollResponse{}, fromDiceError(err, req.Settings)
			}
			resp.Warnings = append(resp.Warnings, fromDiceError(err, req.Settings))
		}

		summary := roller.Summary()
		span.AddEvent("expression.rolled", trace.WithAttributes(
			attribute.String("dice.expression", expr),
			attribute.Int("dice.count", pool.Count()),
			attribute.Int("dice.hits", summary.Hits),
			attribute.Int("dice.batches", roller.Batches()),
		))
		resp.Rolls = append(resp.Rolls, ExpressionRoll{
			Expression: expr,
			Summary:    summary,
			Batches:    roller.Batches(),
		})
		leaves = append(leaves, summary)
		previous = summary
	}

	resp.Summary = dice.Group(leaves...)
	return resp, nil
}

// ProbabilityRequest asks for exact statistics of each expression.
type ProbabilityRequest struct {
	Expressions []string
	Settings    Settings
	Targets     probability.Targets
	// Trials, when positive, adds a Monte Carlo run of that many rolls.
	Trials int
	Seed   int64
}

// PoolReport holds the exact statistics of one expression.
type PoolReport struct {
	Expression string
	Pool       dice.Pool
	Hits       probability.Hits
	Total      probability.Total
	Analysis   probability.Analysis
	// Simulation is nil unless trials were requested.
	Simulation *simulate.Result
}

// ProbabilityResponse holds one report per usable expression.
type ProbabilityResponse struct {
	Seed     int64
	Reports  []PoolReport
	Warnings []*apperrors.Error
}

// Probability analyzes each expression on its own. "x" reads as zero and no
// crits carry over, since nothing has been rolled.
func (s *Service) Probability(ctx context.Context, req ProbabilityRequest) (resp ProbabilityResponse, err error) {
	ctx, span := s.tracer.Start(ctx, "engine.Probability", trace.WithAttributes(
		attribute.Int("dice.expressions", len(req.Expressions)),
		attribute.Int("dice.trials", req.Trials),
	))
	defer func() { endSpan(span, err) }()

	if err := req.Settings.Validate(); err != nil {
		return ProbabilityResponse{}, err
	}
	if req.Trials > 0 {
		seed, err := random.Resolve(req.Seed)
		if err != nil {
			return ProbabilityResponse{}, fmt.Errorf("resolve seed: %w", err)
		}
		resp.Seed = seed
	}
	if len(req.Expressions) == 0 {
		resp.Warnings = append(resp.Warnings, emptyExpression())
	}

	var src dice.Source
	if req.Trials > 0 {
		src = s.newSource(resp.Seed)
	}
	for _, expr := range req.Expressions {
		if err := ctx.Err(); err != nil {
			return ProbabilityResponse{}, err
		}
		if strings.TrimSpace(expr) == "" {
			resp.Warnings = append(resp.Warnings, emptyExpression())
			continue
		}

		pool, ok := dice.Parse(expr, dice.ParseOptions{
			HitThreshold:  req.Settings.Success,
			NoShittyCrits: req.Settings.NoShittyCrits,
		})
		if !ok {
			resp.Warnings = append(resp.Warnings, invalidExpression(expr))
		}

		report := PoolReport{
			Expression: expr,
			Pool:       pool,
			Hits:       probability.NewHits(pool),
			Total:      probability.NewTotal(pool),
			Analysis:   probability.Analyze(pool, req.Targets),
		}
		if req.Trials > 0 {
			result, err := simulate.Run(ctx, pool, req.Settings.Rules(), src, req.Trials, report.Analysis.HitTarget)
			if err != nil {
				return ProbabilityResponse{}, fromDiceError(err, req.Settings)
			}
			report.Simulation = &result
			if result.Truncated > 0 {
				resp.Warnings = append(resp.Warnings, fromDiceError(dice.ErrRerollLimit, req.Settings))
			}
		}
		span.AddEvent("expression.analyzed", trace.WithAttributes(
			attribute.String("dice.expression", expr),
			attribute.Int("dice.count", pool.Count()),
			attribute.Float64("dice.glitch", report.Analysis.Glitch),
		))
		resp.Reports = append(resp.Reports, report)
	}
	return resp, nil
}

func emptyExpression() *apperrors.Error {
	return apperrors.New(apperrors.CodeDiceExpressionEmpty, "no dice to roll")
}

func invalidExpression(expr string) *apperrors.Error {
	return apperrors.WithMetadata(
		apperrors.CodeDiceExpressionInvalid,
		fmt.Sprintf("expression %q has no dice separator", expr),
		map[string]string{"Expression": expr},
	)
}

// fromDiceError converts core roll errors into coded errors.
func fromDiceError(err error, settings Settings) *apperrors.Error {
	switch {
	case errors.Is(err, dice.ErrUnboundedReroll):
		return apperrors.WrapWithMetadata(
			apperrors.CodeRerollUnbounded,
			err.Error(),
			map[string]string{"Reroll": strconv.Itoa(settings.Reroll)},
			err,
		)
	case errors.Is(err, dice.ErrRerollLimit):
		batches := settings.MaxBatches
		if batches <= 0 {
			batches = dice.DefaultMaxBatches
		}
		return apperrors.WrapWithMetadata(
			apperrors.CodeRerollLimit,
			err.Error(),
			map[string]string{"Batches": strconv.Itoa(batches)},
			err,
		)
	default:
		return apperrors.Wrap(apperrors.CodeUnknown, err.Error(), err)
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// Resolve layers a request's settings: base first, then the named preset,
// then explicit overrides. Expressions default to the preset's dice when
// exprs is empty. An empty preset name skips the preset layer.
func (s *Service) Resolve(base Settings, presetName string, exprs []string, overrides Overrides) ([]string, Settings, error) {
	settings := base
	if strings.TrimSpace(presetName) != "" {
		p, err := s.Preset(presetName)
		if err != nil {
			return nil, Settings{}, err
		}
		settings = settings.WithPreset(p)
		if len(exprs) == 0 {
			exprs = p.Dice
		}
	}
	return exprs, settings.WithOverrides(overrides), nil
}
