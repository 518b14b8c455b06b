package engine

// ValueEvaluator compares model probabilities to quoted market odds to
// produce expected value, a risk-capped stake fraction, a value ratio and a
// qualitative rating.
type ValueEvaluator struct {
	cfg *Config
}

// NewValueEvaluator returns an evaluator bound to a calibration snapshot.
func NewValueEvaluator(cfg *Config) *ValueEvaluator {
	return &ValueEvaluator{cfg: cfg}
}

// Evaluate scores one market. Unusable inputs yield an explicit invalid
// record rather than an error.
func (v *ValueEvaluator) Evaluate(prob, odds float64) ValueBet {
	if prob < 0 || prob > 1 {
		return v.invalid(prob, odds, RatingInvalid)
	}
	if odds <= 1.0 {
		return v.invalid(prob, odds, RatingInvalid)
	}

	ev := prob*(odds-1) - (1 - prob)
	valueRatio := prob * odds

	rawKelly := 0.0
	if valueRatio > 1 {
		rawKelly = (valueRatio - 1) / (odds - 1)
	}

	// Fractional Kelly with a hard stake cap bounds variance regardless of
	// how large the raw edge appears.
	safeKelly := rawKelly * v.cfg.KellyFraction
	if safeKelly > v.cfg.MaxStake {
		safeKelly = v.cfg.MaxStake
	}

	return ValueBet{
		EV:          ev,
		RawKelly:    rawKelly,
		SafeKelly:   safeKelly,
		ValueRatio:  valueRatio,
		Rating:      v.rating(ev, valueRatio),
		ImpliedProb: 1 / odds,
		ModelProb:   prob,
	}
}

// EvaluateAll scores every quoted market; unquoted markets are flagged
// missing rather than omitted.
func (v *ValueEvaluator) EvaluateAll(probs MarketProbs, odds OddsQuartet) map[Market]ValueBet {
	bets := make(map[Market]ValueBet, 4)
	for _, m := range []struct {
		market Market
		prob   float64
		odds   float64
	}{
		{MarketHome, probs.Outcomes.HomeWin, odds.Home},
		{MarketDraw, probs.Outcomes.Draw, odds.Draw},
		{MarketAway, probs.Outcomes.AwayWin, odds.Away},
		{MarketOver2p5, probs.Goals.Over2p5, odds.Over2p5},
	} {
		if m.odds == 0 {
			bets[m.market] = v.invalid(m.prob, 0, RatingMissingOdds)
			continue
		}
		bets[m.market] = v.Evaluate(m.prob, m.odds)
	}
	return bets
}

// rating evaluates the tiers strictest-first; a market must clear both the
// EV and value-ratio floors of a tier to earn it.
func (v *ValueEvaluator) rating(ev, valueRatio float64) ValueRating {
	for _, tier := range []ValueRating{RatingExcellent, RatingGood, RatingFair} {
		t := v.cfg.ValueThresholds[tier]
		if ev >= t.EV && valueRatio >= t.ValueRatio {
			return tier
		}
	}
	return RatingPoor
}

func (v *ValueEvaluator) invalid(prob, odds float64, rating ValueRating) ValueBet {
	implied := 0.0
	if odds > 0 {
		implied = 1 / odds
	}
	modelProb := prob
	if modelProb < 0 || modelProb > 1 {
		modelProb = 0
	}
	return ValueBet{
		EV:          -1,
		RawKelly:    0,
		SafeKelly:   0,
		ValueRatio:  0,
		Rating:      rating,
		ImpliedProb: implied,
		ModelProb:   modelProb,
	}
}
