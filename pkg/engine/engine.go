// Package engine forecasts football match outcomes, goal-total markets and
// both-teams-to-score probability from team performance statistics, scores
// the forecast's trustworthiness, and evaluates it against bookmaker odds
// for betting value.
//
// The pipeline is pure and synchronous: immutable TeamRecord and
// MatchContext snapshots go in, a fresh PredictionResult comes out. No
// parameter is fitted at runtime; all coefficients live in Config.
package engine

import (
	"fmt"

	"github.com/oddsmith/predictor/internal/logger"
)

// Engine composes the estimator, the outcome engine, the confidence scorer
// and the value evaluator into one prediction pipeline.
type Engine struct {
	cfg           *Config
	estimator     *Estimator
	outcomes      *OutcomeEngine
	confidence    *ConfidenceScorer
	value         *ValueEvaluator
	promoteWinner bool
}

// Option customizes an Engine at construction.
type Option func(*Engine)

// WithBlendPolicy swaps the Poisson/rating blend weight policy.
func WithBlendPolicy(p BlendPolicy) Option {
	return func(e *Engine) {
		e.outcomes = NewOutcomeEngine(e.cfg, p)
	}
}

// WithWinnerPromotion enables the product-driven post-processing step that
// forces the predicted winner to carry the highest confidence. It is a
// presentation choice layered on top of the scorer, never part of it.
func WithWinnerPromotion() Option {
	return func(e *Engine) {
		e.promoteWinner = true
	}
}

// New builds an Engine from a calibration snapshot. A nil config selects
// DefaultConfig.
func New(cfg *Config, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}
	e := &Engine{
		cfg:        cfg,
		estimator:  NewEstimator(cfg),
		outcomes:   NewOutcomeEngine(cfg, nil),
		confidence: NewConfidenceScorer(cfg),
		value:      NewValueEvaluator(cfg),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Config exposes the calibration the engine was built with.
func (e *Engine) Config() *Config { return e.cfg }

// Predict runs one query through the full pipeline. Validation failures
// return before any numeric computation with no partial result.
func (e *Engine) Predict(mc *MatchContext) (*PredictionResult, error) {
	if mc == nil {
		return nil, &ValidationError{Messages: []string{"match context must not be nil"}}
	}
	if err := validateContext(mc); err != nil {
		return nil, err
	}

	exp := e.estimator.Estimate(mc)
	probs := e.outcomes.Probabilities(exp, mc)
	conf, goalsConf, bttsConf, reliability, factors := e.confidence.Score(probs, exp, mc)
	bets := e.value.EvaluateAll(probs, mc.Odds)

	result := &PredictionResult{
		HomeExpectedGoals: exp.Home,
		AwayExpectedGoals: exp.Away,
		Probabilities:     probs.Outcomes,
		Goals:             probs.Goals,
		BTTSYes:           probs.BTTSYes,
		BTTSNo:            1 - probs.BTTSYes,
		Confidence:        conf,
		GoalsConfidence:   goalsConf,
		BTTSConfidence:    bttsConf,
		Reliability:       reliability,
		ValueBets:         bets,
		Diagnostics: Diagnostics{
			PoissonWeight: probs.PoissonWeight,
			RatingGap:     mc.Home.Rating - mc.Away.Rating,
			Damping:       exp.Damping,
			Factors:       factors,
		},
	}

	if e.promoteWinner {
		PromoteWinnerConfidence(result)
	}

	return result, nil
}

// PromoteWinnerConfidence raises the predicted winner's confidence to the
// top of the three outcome confidences. This is an explicit post-processing
// override kept out of the scorer: it breaks the separation between
// probability estimation and confidence scoring and exists only for
// presentation parity with earlier product behavior.
func PromoteWinnerConfidence(r *PredictionResult) {
	top := r.Confidence.HomeWin
	if r.Confidence.Draw > top {
		top = r.Confidence.Draw
	}
	if r.Confidence.AwayWin > top {
		top = r.Confidence.AwayWin
	}

	p := r.Probabilities
	switch {
	case p.HomeWin >= p.Draw && p.HomeWin >= p.AwayWin:
		r.Confidence.HomeWin = top
	case p.AwayWin >= p.Draw:
		r.Confidence.AwayWin = top
	default:
		r.Confidence.Draw = top
	}
}

// DefaultTeamRecord is the conservative fallback used when a lookup fails:
// league-average rates, average tier and neutral home advantage. The
// prediction proceeds with a warning instead of failing.
func DefaultTeamRecord(name, league string, cfg *Config) *TeamRecord {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	baseline := cfg.leagueBaseline(league)
	logger.Warn("Falling back to default team record", name, league)
	return &TeamRecord{
		Name:            name,
		League:          league,
		AttackRate:      baseline,
		ConcedeRate:     baseline,
		MatchesObserved: cfg.ReferenceWindow,
		FormTrend:       0,
		CleanSheetPct:   30,
		BTTSPct:         50,
		Tier:            TierAverage,
		Rating:          1600,
		HomeAdv: HomeAdvantage{
			Strength:   HomeAdvModerate,
			PPGDiff:    0.30,
			GoalsBoost: 0.30 * cfg.HomeBoostScale,
		},
	}
}
