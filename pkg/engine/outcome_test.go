package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbabilitiesTripleSumsToOne(t *testing.T) {
	cfg := DefaultConfig()
	oe := NewOutcomeEngine(cfg, nil)
	est := NewEstimator(cfg)

	mc := testContext()
	probs := oe.Probabilities(est.Estimate(mc), mc)

	assert.InDelta(t, 1.0, probs.Outcomes.Sum(), 1e-9)
	assert.GreaterOrEqual(t, probs.PoissonWeight, cfg.BlendMin)
	assert.LessOrEqual(t, probs.PoissonWeight, cfg.BlendMax)
}

func TestProbabilitiesUsesInjectedBlendPolicy(t *testing.T) {
	cfg := DefaultConfig()
	est := NewEstimator(cfg)
	mc := testContext()
	exp := est.Estimate(mc)

	// A constant-zero policy means the rating model decides alone.
	ratingOnly := NewOutcomeEngine(cfg, func(_, _, _ int) float64 { return 0 })
	got := ratingOnly.Probabilities(exp, mc)

	want := ratingProbs(mc.Home, mc.Away, cfg)
	assert.InDelta(t, want.HomeWin, got.Outcomes.HomeWin, 1e-9)
	assert.Equal(t, 0.0, got.PoissonWeight)
}

func TestGoalMarketsAreOrderedAndClamped(t *testing.T) {
	cfg := DefaultConfig()
	oe := NewOutcomeEngine(cfg, nil)
	est := NewEstimator(cfg)

	mc := testContext()
	g := oe.Probabilities(est.Estimate(mc), mc).Goals

	// Higher lines can never be more likely than lower ones.
	assert.GreaterOrEqual(t, g.Over1p5, g.Over2p5)
	assert.GreaterOrEqual(t, g.Over2p5, g.Over3p5)

	assert.GreaterOrEqual(t, g.Over1p5, cfg.OverClamp1p5[0])
	assert.LessOrEqual(t, g.Over1p5, cfg.OverClamp1p5[1])
	assert.GreaterOrEqual(t, g.Over3p5, cfg.OverClamp3p5[0])
	assert.LessOrEqual(t, g.Over3p5, cfg.OverClamp3p5[1])
}

func TestDefensiveConsistencyPullsOversDown(t *testing.T) {
	cfg := DefaultConfig()
	oe := NewOutcomeEngine(cfg, nil)
	est := NewEstimator(cfg)

	leaky := testContext()
	leaky.Home.CleanSheetPct = 10
	leaky.Away.CleanSheetPct = 10

	solid := testContext()
	solid.Home.CleanSheetPct = 60
	solid.Away.CleanSheetPct = 60

	// Same expectancies, different defensive records.
	exp := est.Estimate(testContext())
	assert.Greater(t, oe.Probabilities(exp, leaky).Goals.Over2p5,
		oe.Probabilities(exp, solid).Goals.Over2p5)
}

func TestBTTSLeansOnHistoryWhenSignalIsWeak(t *testing.T) {
	cfg := DefaultConfig()
	oe := NewOutcomeEngine(cfg, nil)

	mc := testContext()
	mc.Home.BTTSPct = 90
	mc.Away.BTTSPct = 90

	weak := Expectancy{Home: 0.5, Away: 0.5, Damping: 1}
	strong := Expectancy{Home: 1.8, Away: 1.6, Damping: 1}

	// With near-certain historical BTTS, the low-signal blend sits closer
	// to history than the high-signal blend does.
	require.Greater(t, oe.btts(weak, mc), oe.btts(weak, testContext()))
	assert.Greater(t, oe.btts(weak, mc), 0.5)
	assert.LessOrEqual(t, oe.btts(strong, mc), cfg.BTTSClamp[1])
}

func TestBTTSIsClamped(t *testing.T) {
	cfg := DefaultConfig()
	oe := NewOutcomeEngine(cfg, nil)

	mc := testContext()
	mc.Home.BTTSPct = 0
	mc.Away.BTTSPct = 0

	got := oe.btts(Expectancy{Home: 0.1, Away: 0.1, Damping: 1}, mc)
	assert.Equal(t, cfg.BTTSClamp[0], got)
}
