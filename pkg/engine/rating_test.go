package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatingProbsEqualRatingsFavorHome(t *testing.T) {
	cfg := DefaultConfig()
	home := testRecord("Arsenal", 1.5, 1.2)
	away := testRecord("Everton", 1.5, 1.2)

	probs := ratingProbs(home, away, cfg)
	// The home-field bonus is the only difference, so it decides.
	assert.Greater(t, probs.HomeWin, probs.AwayWin)
	assert.InDelta(t, 1.0, probs.Sum(), 1e-9)
}

func TestRatingProbsDrawShrinksWithRatingGap(t *testing.T) {
	cfg := DefaultConfig()
	home := testRecord("Arsenal", 1.5, 1.2)
	away := testRecord("Everton", 1.5, 1.2)

	even := ratingProbs(home, away, cfg)

	home.Rating = 1900
	away.Rating = 1400
	lopsided := ratingProbs(home, away, cfg)

	assert.Greater(t, even.Draw, lopsided.Draw)
	assert.Greater(t, lopsided.HomeWin, even.HomeWin)
}

func TestRatingProbsLargeGapStaysNormalized(t *testing.T) {
	cfg := DefaultConfig()
	home := testRecord("Arsenal", 1.5, 1.2)
	away := testRecord("Everton", 1.5, 1.2)
	home.Rating = 2400
	away.Rating = 1200

	probs := ratingProbs(home, away, cfg)
	assert.InDelta(t, 1.0, probs.Sum(), 1e-9)
	assert.Greater(t, probs.HomeWin, 0.8)
	assert.Greater(t, probs.Draw, 0.0)
}

func TestDefaultBlendPolicy(t *testing.T) {
	cfg := DefaultConfig()
	policy := DefaultBlendPolicy(cfg)

	// A full window with no quality or injury gap gets the base weight.
	assert.InDelta(t, cfg.BlendBase, policy(5, 0, 0), 1e-12)

	// Short windows shift weight toward the rating model.
	assert.InDelta(t, cfg.BlendBase-3*cfg.BlendSampleStep, policy(2, 0, 0), 1e-12)

	// More matches than the window earn no extra credit.
	assert.InDelta(t, policy(5, 0, 0), policy(20, 0, 0), 1e-12)

	// Tier and injury gaps each discount the performance weight.
	assert.InDelta(t, cfg.BlendBase-2*cfg.BlendTierStep, policy(5, 2, 0), 1e-12)
	assert.InDelta(t, cfg.BlendBase-3*cfg.BlendInjuryStep, policy(5, 0, 3), 1e-12)

	// Compounding discounts bottom out at the clamp.
	assert.Equal(t, cfg.BlendMin, policy(0, 3, 4))
}

func TestBlendTriplesRenormalizes(t *testing.T) {
	a := OutcomeProbs{HomeWin: 0.5, Draw: 0.3, AwayWin: 0.2}
	b := OutcomeProbs{HomeWin: 0.2, Draw: 0.3, AwayWin: 0.5}

	mixed := blendTriples(a, b, 0.5)
	assert.InDelta(t, 1.0, mixed.Sum(), 1e-12)
	assert.InDelta(t, mixed.HomeWin, mixed.AwayWin, 1e-12)

	// Full performance weight reproduces the performance triple.
	assert.InDelta(t, a.HomeWin, blendTriples(a, b, 1.0).HomeWin, 1e-12)
}
