package engine

import "math"

// OutcomeEngine computes the discrete-distribution outcome grid and the
// rating-based estimate, and blends them with a context-sensitive weight.
type OutcomeEngine struct {
	cfg   *Config
	blend BlendPolicy
}

// NewOutcomeEngine returns an outcome engine using the given blend policy;
// a nil policy selects DefaultBlendPolicy.
func NewOutcomeEngine(cfg *Config, blend BlendPolicy) *OutcomeEngine {
	if blend == nil {
		blend = DefaultBlendPolicy(cfg)
	}
	return &OutcomeEngine{cfg: cfg, blend: blend}
}

// MarketProbs is the full probability output for one match.
type MarketProbs struct {
	Outcomes      OutcomeProbs
	Goals         GoalMarkets
	BTTSYes       float64
	PoissonWeight float64
}

// Probabilities produces the blended outcome triple, the goal-total markets
// and the BTTS probability for the given expectancies.
func (o *OutcomeEngine) Probabilities(exp Expectancy, mc *MatchContext) MarketProbs {
	cfg := o.cfg

	poisson := outcomeGrid(exp.Home, exp.Away, cfg.GridMaxGoals)
	rating := ratingProbs(mc.Home, mc.Away, cfg)

	minMatches := mc.Home.MatchesObserved
	if mc.Away.MatchesObserved < minMatches {
		minMatches = mc.Away.MatchesObserved
	}
	tierGap := TierGap(mc.Home.Tier, mc.Away.Tier)
	injuryGap := mc.HomeInjuries.Level() - mc.AwayInjuries.Level()
	if injuryGap < 0 {
		injuryGap = -injuryGap
	}

	weight := o.blend(minMatches, tierGap, injuryGap)
	outcomes := blendTriples(poisson, rating, weight)

	return MarketProbs{
		Outcomes:      outcomes,
		Goals:         o.goalMarkets(exp, mc),
		BTTSYes:       o.btts(exp, mc),
		PoissonWeight: weight,
	}
}

// goalMarkets reads the over/under probabilities from the summed-Poisson
// total-goals distribution, adjusted for how defensively consistent both
// teams are: two high clean-sheet sides pull the over-probabilities down.
func (o *OutcomeEngine) goalMarkets(exp Expectancy, mc *MatchContext) GoalMarkets {
	cfg := o.cfg
	totalLambda := exp.Home + exp.Away

	over1p5 := 1.0 - poissonCDF(1, totalLambda)
	over2p5 := 1.0 - poissonCDF(2, totalLambda)
	over3p5 := 1.0 - poissonCDF(3, totalLambda)

	defenseConsistency := (mc.Home.CleanSheetPct + mc.Away.CleanSheetPct) / 200.0
	factor := 1.0 + (0.5-defenseConsistency)*cfg.ConsistencyImpact

	return GoalMarkets{
		Over1p5: clampProb(over1p5*factor, cfg.OverClamp1p5[0], cfg.OverClamp1p5[1]),
		Over2p5: clampProb(over2p5*factor, cfg.OverClamp2p5[0], cfg.OverClamp2p5[1]),
		Over3p5: clampProb(over3p5*factor, cfg.OverClamp3p5[0], cfg.OverClamp3p5[1]),
	}
}

// btts blends the independent-marginals Poisson estimate with the teams'
// historical both-teams-scored rates. The historical figure dominates when
// either expectancy is too low to trust the Poisson signal.
func (o *OutcomeEngine) btts(exp Expectancy, mc *MatchContext) float64 {
	cfg := o.cfg

	probHomeScores := 1.0 - math.Exp(-exp.Home)
	probAwayScores := 1.0 - math.Exp(-exp.Away)
	poissonBTTS := probHomeScores * probAwayScores

	historical := (mc.Home.BTTSPct + mc.Away.BTTSPct) / 200.0

	histWeight := cfg.BTTSHistWeightHigh
	if exp.Home < cfg.BTTSLowSignalLambda || exp.Away < cfg.BTTSLowSignalLambda {
		histWeight = cfg.BTTSHistWeightLow
	}

	btts := histWeight*historical + (1.0-histWeight)*poissonBTTS
	return clampProb(btts, cfg.BTTSClamp[0], cfg.BTTSClamp[1])
}
