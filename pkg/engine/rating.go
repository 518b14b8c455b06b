package engine

import "math"

// BlendPolicy decides how much weight the Poisson (performance) model gets
// versus the rating (quality) model, as a pure function of sample size,
// quality-tier gap and injury-severity gap. Injected as a strategy so
// alternative policies can be swapped and tested in isolation.
type BlendPolicy func(minMatches, tierGap, injuryGap int) float64

// DefaultBlendPolicy weights the performance model down when the recent
// window is short, when the known quality gap is large (short-window noise
// must not override it) and when the injury picture is lopsided.
func DefaultBlendPolicy(cfg *Config) BlendPolicy {
	return func(minMatches, tierGap, injuryGap int) float64 {
		w := cfg.BlendBase
		if minMatches > cfg.ReferenceWindow {
			minMatches = cfg.ReferenceWindow
		}
		w -= float64(cfg.ReferenceWindow-minMatches) * cfg.BlendSampleStep
		w -= float64(tierGap) * cfg.BlendTierStep
		w -= float64(injuryGap) * cfg.BlendInjuryStep
		if w < cfg.BlendMin {
			w = cfg.BlendMin
		}
		if w > cfg.BlendMax {
			w = cfg.BlendMax
		}
		return w
	}
}

// ratingProbs converts the strength-rating difference into an outcome
// triple via the standard base-10 logistic curve with a fixed home-field
// bonus. The draw share grows as the gap shrinks; the remaining mass splits
// between home and away proportional to the raw logistic values.
func ratingProbs(home, away *TeamRecord, cfg *Config) OutcomeProbs {
	diff := home.Rating - away.Rating + cfg.HomeFieldRatingBonus

	homeRaw := 1.0 / (1.0 + math.Pow(10, -diff/cfg.RatingScale))
	awayRaw := 1.0 - homeRaw

	closeness := 1.0 - math.Abs(diff)/cfg.RatingClosenessRange
	if closeness < 0 {
		closeness = 0
	}
	draw := cfg.BaseDrawRate * (0.6 + 0.4*closeness)

	remaining := 1.0 - draw
	denom := homeRaw + awayRaw
	var probs OutcomeProbs
	if denom <= 0 {
		probs = OutcomeProbs{HomeWin: remaining / 2, Draw: draw, AwayWin: remaining / 2}
	} else {
		probs = OutcomeProbs{
			HomeWin: remaining * homeRaw / denom,
			Draw:    draw,
			AwayWin: remaining * awayRaw / denom,
		}
	}
	return normalizeTriple(probs)
}

// blendTriples mixes the performance and quality triples with the given
// performance weight and renormalizes.
func blendTriples(performance, quality OutcomeProbs, perfWeight float64) OutcomeProbs {
	qw := 1.0 - perfWeight
	return normalizeTriple(OutcomeProbs{
		HomeWin: perfWeight*performance.HomeWin + qw*quality.HomeWin,
		Draw:    perfWeight*performance.Draw + qw*quality.Draw,
		AwayWin: perfWeight*performance.AwayWin + qw*quality.AwayWin,
	})
}
