package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCertaintyAtCoinFlipIsZero(t *testing.T) {
	assert.InDelta(t, 0.0, Certainty(0.5), 1e-12)
}

func TestCertaintyApproachesOneAtExtremes(t *testing.T) {
	assert.Greater(t, Certainty(0.99), 0.9)
	assert.Greater(t, Certainty(0.01), 0.9)
	assert.InDelta(t, Certainty(0.2), Certainty(0.8), 1e-12)
}

func TestCertaintyIsMonotoneAwayFromHalf(t *testing.T) {
	prev := Certainty(0.5)
	for _, p := range []float64{0.6, 0.7, 0.8, 0.9, 0.99} {
		c := Certainty(p)
		assert.Greater(t, c, prev, "p=%v", p)
		prev = c
	}
}

func TestConfidenceIsIndependentOfWhichOutcomeLeads(t *testing.T) {
	scorer := NewConfidenceScorer(DefaultConfig())
	mc := testContext()

	// Mirrored triples must produce mirrored confidence.
	a := MarketProbs{Outcomes: OutcomeProbs{HomeWin: 0.6, Draw: 0.25, AwayWin: 0.15}, BTTSYes: 0.5}
	b := MarketProbs{Outcomes: OutcomeProbs{HomeWin: 0.15, Draw: 0.25, AwayWin: 0.6}, BTTSYes: 0.5}
	exp := Expectancy{Home: 1.4, Away: 1.2, Damping: 1}

	confA, _, _, _, _ := scorer.Score(a, exp, mc)
	confB, _, _, _, _ := scorer.Score(b, exp, mc)

	assert.InDelta(t, confA.HomeWin, confB.AwayWin, 1e-9)
	assert.InDelta(t, confA.Draw, confB.Draw, 1e-9)
}

func TestDrawConfidenceIsScaledDown(t *testing.T) {
	scorer := NewConfidenceScorer(DefaultConfig())
	mc := testContext()

	// Equal probabilities isolate the draw scaling.
	probs := MarketProbs{Outcomes: OutcomeProbs{HomeWin: 0.15, Draw: 0.15, AwayWin: 0.70}, BTTSYes: 0.5}
	conf, _, _, _, _ := scorer.Score(probs, Expectancy{Home: 1.4, Away: 1.2, Damping: 1}, mc)

	assert.Less(t, conf.Draw, conf.HomeWin)
}

func TestConfidenceStaysWithinBounds(t *testing.T) {
	cfg := DefaultConfig()
	scorer := NewConfidenceScorer(cfg)
	mc := testContext()

	probs := MarketProbs{Outcomes: OutcomeProbs{HomeWin: 0.98, Draw: 0.01, AwayWin: 0.01}, BTTSYes: 0.95}
	conf, goalsConf, bttsConf, _, _ := scorer.Score(probs, Expectancy{Home: 2.4, Away: 2.2, Damping: 1}, mc)

	for _, c := range []float64{conf.HomeWin, conf.Draw, conf.AwayWin} {
		assert.GreaterOrEqual(t, c, cfg.ConfidenceFloor)
		assert.LessOrEqual(t, c, cfg.ConfidenceCap)
	}
	assert.GreaterOrEqual(t, goalsConf, 30.0)
	assert.LessOrEqual(t, goalsConf, 95.0)
	assert.GreaterOrEqual(t, bttsConf, 30.0)
	assert.LessOrEqual(t, bttsConf, 95.0)
}

func TestInjuriesDragReliabilityDown(t *testing.T) {
	scorer := NewConfidenceScorer(DefaultConfig())

	healthy, hFactors := scorer.contextReliability(testContext())

	mc := testContext()
	mc.HomeInjuries = InjuryCrisis
	mc.AwayInjuries = InjuryCrisis
	injured, iFactors := scorer.contextReliability(mc)

	require.Less(t, injured, healthy)
	assert.Less(t, iFactors.InjuryStability, hFactors.InjuryStability)
}

func TestRestBalanceTiers(t *testing.T) {
	assert.Equal(t, 1.0, restBalance(7, 7))
	assert.Equal(t, 1.0, restBalance(5, 7))
	assert.Equal(t, 0.8, restBalance(3, 7))
	assert.Equal(t, 0.6, restBalance(2, 9))
	// Symmetric in which side rested longer.
	assert.Equal(t, restBalance(3, 7), restBalance(7, 3))
}

func TestDataQualitySaturatesAtReferenceWindow(t *testing.T) {
	scorer := NewConfidenceScorer(DefaultConfig())
	assert.Equal(t, 1.0, scorer.dataQuality(5, 8))
	assert.Equal(t, 1.0, scorer.dataQuality(20, 20))
	assert.Equal(t, 0.4, scorer.dataQuality(2, 9))
	assert.Equal(t, 0.0, scorer.dataQuality(0, 5))
}

func TestTeamPredictabilityPenalizesNoisyBTTS(t *testing.T) {
	steady := testRecord("Steady", 1.2, 1.0)
	steady.BTTSPct = 90

	noisy := testRecord("Noisy", 1.2, 1.0)
	noisy.BTTSPct = 50

	assert.Greater(t, teamPredictability(steady), teamPredictability(noisy))
}

func TestGoalsConfidenceGrowsWithDistanceFromLine(t *testing.T) {
	scorer := NewConfidenceScorer(DefaultConfig())

	near := scorer.goalsConfidence(Expectancy{Home: 1.3, Away: 1.2, Damping: 1}, 1.0)
	far := scorer.goalsConfidence(Expectancy{Home: 2.4, Away: 1.6, Damping: 1}, 1.0)

	assert.Greater(t, far, near)
}

func TestReliabilityLevelsAndAdvice(t *testing.T) {
	scorer := NewConfidenceScorer(DefaultConfig())
	probs := MarketProbs{Outcomes: OutcomeProbs{HomeWin: 0.5, Draw: 0.25, AwayWin: 0.25}, BTTSYes: 0.5}
	exp := Expectancy{Home: 1.4, Away: 1.2, Damping: 1}

	// Clean inputs: full windows, no injuries, balanced rest.
	_, _, _, rel, _ := scorer.Score(probs, exp, testContext())
	assert.Equal(t, ReliabilityHigh, rel.Level)
	assert.Equal(t, adviceHigh, rel.Advice)

	// Degrade everything at once and the verdict must fall to low.
	mc := testContext()
	mc.Home.MatchesObserved = 1
	mc.Away.MatchesObserved = 1
	mc.HomeInjuries = InjuryCrisis
	mc.AwayInjuries = InjuryCrisis
	mc.HomeRestDays = 2
	mc.AwayRestDays = 10
	mc.Home.HomeAdv.Strength = HomeAdvWeak
	_, _, _, rel, _ = scorer.Score(probs, exp, mc)
	assert.Equal(t, ReliabilityLow, rel.Level)
	assert.Equal(t, adviceLow, rel.Advice)
	assert.Less(t, rel.Score, 55.0)
}
