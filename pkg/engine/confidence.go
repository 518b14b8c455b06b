package engine

import "math"

// ConfidenceScorer converts probabilities and input-quality signals into
// per-outcome confidence and an overall reliability verdict. Confidence
// measures trust in the estimate, deliberately independent of the
// probability's magnitude.
type ConfidenceScorer struct {
	cfg *Config
}

// NewConfidenceScorer returns a scorer bound to a calibration snapshot.
func NewConfidenceScorer(cfg *Config) *ConfidenceScorer {
	return &ConfidenceScorer{cfg: cfg}
}

const (
	adviceHigh     = "Inputs are trustworthy; the forecast can be acted on at normal stakes."
	adviceModerate = "Inputs carry some noise; treat the forecast as indicative and reduce exposure."
	adviceLow      = "Inputs are weak or unstable; treat the forecast as informational only."
)

// Score produces per-outcome confidence, the market confidences and the
// overall reliability verdict for one prediction.
func (s *ConfidenceScorer) Score(probs MarketProbs, exp Expectancy, mc *MatchContext) (OutcomeConfidence, float64, float64, Reliability, ReliabilityFactors) {
	cfg := s.cfg

	reliability, factors := s.contextReliability(mc)

	conf := OutcomeConfidence{
		HomeWin: s.outcomeConfidence(probs.Outcomes.HomeWin, reliability, 1.0),
		Draw:    s.outcomeConfidence(probs.Outcomes.Draw, reliability, cfg.DrawConfidenceScale),
		AwayWin: s.outcomeConfidence(probs.Outcomes.AwayWin, reliability, 1.0),
	}

	goalsConf := s.goalsConfidence(exp, reliability)
	bttsConf := s.bttsConfidence(probs.BTTSYes, exp, mc)

	// The verdict grades the inputs, not the forecast: a confident forecast
	// from shaky inputs is still a shaky forecast.
	score := reliability * 100.0
	level := ReliabilityLow
	advice := adviceLow
	switch {
	case score >= cfg.ReliabilityHighMin:
		level, advice = ReliabilityHigh, adviceHigh
	case score >= cfg.ReliabilityModMin:
		level, advice = ReliabilityModerate, adviceModerate
	}

	return conf, goalsConf, bttsConf, Reliability{Score: score, Level: level, Advice: advice}, factors
}

// outcomeConfidence maps one probability to a bounded 0-100 confidence.
func (s *ConfidenceScorer) outcomeConfidence(p, reliability, scale float64) float64 {
	cfg := s.cfg
	conf := Certainty(p) * reliability * 100.0 * scale
	if conf < cfg.ConfidenceFloor {
		conf = cfg.ConfidenceFloor
	}
	if conf > cfg.ConfidenceCap {
		conf = cfg.ConfidenceCap
	}
	return conf
}

// Certainty maps a probability to [0,1] via normalized binary Shannon
// entropy: 0 at p=0.5, approaching 1 as p approaches 0 or 1.
func Certainty(p float64) float64 {
	const eps = 1e-9
	if p < eps {
		p = eps
	}
	if p > 1-eps {
		p = 1 - eps
	}
	entropy := -(p*math.Log2(p) + (1-p)*math.Log2(1-p))
	c := 1.0 - entropy
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

// contextReliability is the weighted sum of the five input-quality factors,
// each in [0,1].
func (s *ConfidenceScorer) contextReliability(mc *MatchContext) (float64, ReliabilityFactors) {
	cfg := s.cfg

	factors := ReliabilityFactors{
		DataQuality:        s.dataQuality(mc.Home.MatchesObserved, mc.Away.MatchesObserved),
		Predictability:     (teamPredictability(mc.Home) + teamPredictability(mc.Away)) / 2.0,
		InjuryStability:    (cfg.InjuryStabilityByLv[mc.HomeInjuries] + cfg.InjuryStabilityByLv[mc.AwayInjuries]) / 2.0,
		RestBalance:        restBalance(mc.HomeRestDays, mc.AwayRestDays),
		HomeAdvConsistency: cfg.HomeAdvConsistency[mc.Home.HomeAdv.Strength],
	}

	w := cfg.ConfidenceWeights
	reliability := factors.DataQuality*w.DataQuality +
		factors.Predictability*w.Predictability +
		factors.InjuryStability*w.InjuryStability +
		factors.RestBalance*w.RestBalance +
		factors.HomeAdvConsistency*w.HomeAdvConsistency
	if reliability < 0 {
		reliability = 0
	}
	if reliability > 1 {
		reliability = 1
	}
	return reliability, factors
}

// dataQuality is the smaller observation window relative to the reference.
func (s *ConfidenceScorer) dataQuality(homeMatches, awayMatches int) float64 {
	ref := s.cfg.ReferenceWindow
	m := homeMatches
	if awayMatches < m {
		m = awayMatches
	}
	if m > ref {
		m = ref
	}
	if m < 0 {
		m = 0
	}
	return float64(m) / float64(ref)
}

// teamPredictability rewards defensively consistent sides whose BTTS rate
// sits near either extreme; a 50% BTTS rate is maximally noisy.
func teamPredictability(t *TeamRecord) float64 {
	cleanSheet := t.CleanSheetPct / 100.0
	bttsConsistency := 1.0 - math.Abs(t.BTTSPct-50.0)/50.0
	v := (cleanSheet + bttsConsistency) / 2.0
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// restBalance tiers the rest-days imbalance between the sides.
func restBalance(homeRest, awayRest int) float64 {
	diff := homeRest - awayRest
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff <= 2:
		return 1.0
	case diff <= 4:
		return 0.8
	default:
		return 0.6
	}
}

// goalsConfidence tiers trust in the over/under estimate by how far the
// expected total sits from the 2.5 decision line, scaled by reliability.
func (s *ConfidenceScorer) goalsConfidence(exp Expectancy, reliability float64) float64 {
	dist := math.Abs(exp.Home + exp.Away - 2.5)
	var base float64
	switch {
	case dist >= 1.0:
		base = 80
	case dist >= 0.6:
		base = 70
	case dist >= 0.3:
		base = 60
	default:
		base = 50
	}
	return clampProb(base*reliability, 30, 95)
}

// bttsConfidence grows with distance from 50% and with agreement between
// the model estimate and the teams' historical BTTS rates; strong
// disagreement pulls it down.
func (s *ConfidenceScorer) bttsConfidence(btts float64, exp Expectancy, mc *MatchContext) float64 {
	base := 45.0 + math.Abs(btts-0.5)*90.0

	historical := (mc.Home.BTTSPct + mc.Away.BTTSPct) / 200.0
	base += math.Abs(historical-0.5) / 0.5 * 10.0

	poissonBTTS := (1.0 - math.Exp(-exp.Home)) * (1.0 - math.Exp(-exp.Away))
	if disagreement := math.Abs(poissonBTTS - historical); disagreement > 0.25 {
		base -= (disagreement - 0.25) * 60.0
	}

	return clampProb(base, 30, 95)
}
