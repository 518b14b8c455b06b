package engine

import "math"

// poissonPMF returns the Poisson probability mass at k for rate lambda.
// Computed in log space so large k and small lambda stay stable.
func poissonPMF(k int, lambda float64) float64 {
	if lambda <= 0 {
		if k == 0 {
			return 1
		}
		return 0
	}
	lg, _ := math.Lgamma(float64(k) + 1)
	return math.Exp(float64(k)*math.Log(lambda) - lambda - lg)
}

// poissonCDF returns P(X <= k) for rate lambda.
func poissonCDF(k int, lambda float64) float64 {
	if k < 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i <= k; i++ {
		sum += poissonPMF(i, lambda)
	}
	if sum > 1 {
		sum = 1
	}
	return sum
}

// outcomeGrid accumulates the joint score distribution for goal counts
// 0..maxGoals per side into win/draw/loss buckets. The residual tail mass
// beyond the grid is redistributed proportionally between the home and away
// buckets so total mass stays 1; a degenerate grid falls back to the
// uniform triple.
func outcomeGrid(lambdaHome, lambdaAway float64, maxGoals int) OutcomeProbs {
	homePMF := make([]float64, maxGoals+1)
	awayPMF := make([]float64, maxGoals+1)
	for i := 0; i <= maxGoals; i++ {
		homePMF[i] = poissonPMF(i, lambdaHome)
		awayPMF[i] = poissonPMF(i, lambdaAway)
	}

	var probs OutcomeProbs
	for i := 0; i <= maxGoals; i++ {
		for j := 0; j <= maxGoals; j++ {
			p := homePMF[i] * awayPMF[j]
			switch {
			case i > j:
				probs.HomeWin += p
			case i == j:
				probs.Draw += p
			default:
				probs.AwayWin += p
			}
		}
	}

	// The tail is dominated by high-scoring games, which are far more
	// likely to be decisive than drawn, so it splits between the two win
	// buckets in proportion to the mass already accumulated.
	if tail := 1 - probs.Sum(); tail > 0 {
		if decisive := probs.HomeWin + probs.AwayWin; decisive > 0 {
			probs.HomeWin += tail * probs.HomeWin / decisive
			probs.AwayWin += tail * probs.AwayWin / decisive
		}
	}

	return normalizeTriple(probs)
}

// normalizeTriple scales a triple to sum to 1, falling back to the uniform
// distribution when the mass is degenerate.
func normalizeTriple(p OutcomeProbs) OutcomeProbs {
	if p.HomeWin < 0 {
		p.HomeWin = 0
	}
	if p.Draw < 0 {
		p.Draw = 0
	}
	if p.AwayWin < 0 {
		p.AwayWin = 0
	}
	total := p.Sum()
	if total <= 0 || math.IsNaN(total) {
		third := 1.0 / 3.0
		return OutcomeProbs{HomeWin: third, Draw: third, AwayWin: third}
	}
	return OutcomeProbs{
		HomeWin: p.HomeWin / total,
		Draw:    p.Draw / total,
		AwayWin: p.AwayWin / total,
	}
}

// clampProb bounds p to [lo, hi].
func clampProb(p, lo, hi float64) float64 {
	if p < lo {
		return lo
	}
	if p > hi {
		return hi
	}
	return p
}
