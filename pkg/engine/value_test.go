package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateWorkedExample(t *testing.T) {
	v := NewValueEvaluator(DefaultConfig())

	// 55% at evens-plus: ev = 0.55*1.0 - 0.45 = 0.10, ratio = 1.10,
	// raw Kelly = 0.10/1.0, quarter Kelly 0.025 capped at the max stake.
	bet := v.Evaluate(0.55, 2.0)

	assert.InDelta(t, 0.10, bet.EV, 1e-12)
	assert.InDelta(t, 1.10, bet.ValueRatio, 1e-12)
	assert.InDelta(t, 0.10, bet.RawKelly, 1e-12)
	assert.InDelta(t, 0.02, bet.SafeKelly, 1e-12)
	assert.InDelta(t, 0.50, bet.ImpliedProb, 1e-12)
	assert.Equal(t, RatingGood, bet.Rating)
}

func TestEvaluateRejectsUnpayableOdds(t *testing.T) {
	v := NewValueEvaluator(DefaultConfig())

	for _, odds := range []float64{1.0, 0.9, -2.0} {
		bet := v.Evaluate(0.5, odds)
		assert.Equal(t, RatingInvalid, bet.Rating, "odds %v", odds)
		assert.Equal(t, -1.0, bet.EV)
		assert.Equal(t, 0.0, bet.SafeKelly)
	}
}

func TestEvaluateRejectsOutOfRangeProbability(t *testing.T) {
	v := NewValueEvaluator(DefaultConfig())

	assert.Equal(t, RatingInvalid, v.Evaluate(-0.1, 2.0).Rating)
	assert.Equal(t, RatingInvalid, v.Evaluate(1.1, 2.0).Rating)
}

func TestNoEdgeMeansZeroKelly(t *testing.T) {
	v := NewValueEvaluator(DefaultConfig())

	// p*odds <= 1: negative expectation never earns a stake.
	bet := v.Evaluate(0.40, 2.5)
	assert.InDelta(t, 0.0, bet.EV, 1e-12)
	assert.Equal(t, 0.0, bet.RawKelly)
	assert.Equal(t, 0.0, bet.SafeKelly)

	bet = v.Evaluate(0.30, 2.0)
	assert.Less(t, bet.EV, 0.0)
	assert.Equal(t, 0.0, bet.RawKelly)
	assert.Equal(t, RatingPoor, bet.Rating)
}

func TestSafeKellyIsCappedFractionOfRaw(t *testing.T) {
	cfg := DefaultConfig()
	v := NewValueEvaluator(cfg)

	// Small edge: the quarter-Kelly fraction stays under the cap.
	bet := v.Evaluate(0.52, 2.0)
	require.Greater(t, bet.RawKelly, 0.0)
	assert.InDelta(t, bet.RawKelly*cfg.KellyFraction, bet.SafeKelly, 1e-12)

	// Huge edge: the cap binds.
	bet = v.Evaluate(0.80, 3.0)
	assert.Equal(t, cfg.MaxStake, bet.SafeKelly)
}

func TestRatingTiersAreStrictestFirst(t *testing.T) {
	v := NewValueEvaluator(DefaultConfig())

	assert.Equal(t, RatingExcellent, v.rating(0.15, 1.15))
	// Clearing one excellent floor but not both drops to good.
	assert.Equal(t, RatingGood, v.rating(0.10, 1.10))
	assert.Equal(t, RatingFair, v.rating(0.02, 1.03))
	assert.Equal(t, RatingPoor, v.rating(0.005, 1.01))
}

func TestEvaluateAllFlagsMissingOdds(t *testing.T) {
	v := NewValueEvaluator(DefaultConfig())
	probs := MarketProbs{
		Outcomes: OutcomeProbs{HomeWin: 0.5, Draw: 0.27, AwayWin: 0.23},
		Goals:    GoalMarkets{Over2p5: 0.55},
	}

	bets := v.EvaluateAll(probs, OddsQuartet{Home: 2.1, Over2p5: 1.9})
	require.Len(t, bets, 4)

	assert.NotEqual(t, RatingMissingOdds, bets[MarketHome].Rating)
	assert.Equal(t, RatingMissingOdds, bets[MarketDraw].Rating)
	assert.Equal(t, RatingMissingOdds, bets[MarketAway].Rating)
	assert.NotEqual(t, RatingMissingOdds, bets[MarketOver2p5].Rating)

	// Missing markets still report the model's probability.
	assert.Equal(t, 0.27, bets[MarketDraw].ModelProb)
	assert.Equal(t, 0.0, bets[MarketDraw].SafeKelly)
}
