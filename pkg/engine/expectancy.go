package engine

import (
	"math"

	"github.com/oddsmith/predictor/internal/logger"
)

// Estimator converts raw per-match attack/concede rates plus match context
// into expected-goals parameters for each side.
type Estimator struct {
	cfg *Config
}

// NewEstimator returns an estimator bound to a calibration snapshot.
func NewEstimator(cfg *Config) *Estimator {
	return &Estimator{cfg: cfg}
}

// Expectancy holds the expected-goals pair and the damping factor that was
// applied to reach it (1.0 when no damping occurred).
type Expectancy struct {
	Home    float64
	Away    float64
	Damping float64
}

// Estimate produces strictly positive expected goals for both sides.
// Missing or out-of-range inputs fall back to documented defaults rather
// than failing; structural validation happens before this point.
func (e *Estimator) Estimate(mc *MatchContext) Expectancy {
	cfg := e.cfg
	baseline := cfg.leagueBaseline(mc.League)

	// Defensive injuries raise the injured side's effective concede rate,
	// which feeds the opponent's expectancy.
	homeConcede := effectiveConcede(mc.Home.ConcedeRate, cfg.InjuryDefenseMult[mc.HomeInjuries], baseline)
	awayConcede := effectiveConcede(mc.Away.ConcedeRate, cfg.InjuryDefenseMult[mc.AwayInjuries], baseline)

	lambdaHome := normalizeAttack(mc.Home.AttackRate, awayConcede, baseline, cfg.SofteningExponent)
	lambdaAway := normalizeAttack(mc.Away.AttackRate, homeConcede, baseline, cfg.SofteningExponent)

	lambdaHome *= cfg.InjuryAttackMult[mc.HomeInjuries]
	lambdaAway *= cfg.InjuryAttackMult[mc.AwayInjuries]

	lambdaHome *= cfg.fatigueMultiplier(mc.HomeRestDays)
	lambdaAway *= cfg.fatigueMultiplier(mc.AwayRestDays)

	lambdaHome *= formMultiplier(mc.Home.FormTrend, cfg)
	lambdaAway *= formMultiplier(mc.Away.FormTrend, cfg)

	// Home boost is additive and applied exactly once, here. The away side
	// pays a partial penalty reflecting its own away form.
	lambdaHome += mc.Home.HomeAdv.GoalsBoost
	lambdaAway -= mc.Away.HomeAdv.GoalsBoost * cfg.AwayPenaltyFactor

	// Reality clamps.
	damping := 1.0
	ceiling := cfg.totalCeiling(mc.League)
	if total := lambdaHome + lambdaAway; total > ceiling {
		excess := math.Min(total-ceiling, cfg.DampingMaxExcess)
		damping = cfg.DampingBase - cfg.DampingSlope*excess
		if damping < cfg.DampingFloor {
			damping = cfg.DampingFloor
		}
		if damping > 1.0 {
			damping = 1.0
		}
		lambdaHome *= damping
		lambdaAway *= damping
		logger.Debug("Damped combined expectancy", mc.Home.Name, mc.Away.Name, total, damping)
	}

	lambdaHome = math.Min(lambdaHome, cfg.tierCap(mc.Home.Tier))
	lambdaAway = math.Min(lambdaAway, cfg.tierCap(mc.Away.Tier))

	lambdaHome = math.Max(lambdaHome, cfg.MinGoalExpectancy)
	lambdaAway = math.Max(lambdaAway, cfg.MinGoalExpectancy)

	return Expectancy{Home: lambdaHome, Away: lambdaAway, Damping: damping}
}

// normalizeAttack scales an attack rate by the opponent's concede rate
// relative to the league baseline, under the softening exponent.
func normalizeAttack(attack, oppConcede, baseline, exponent float64) float64 {
	if attack <= 0 {
		return 0
	}
	if oppConcede <= 0 || baseline <= 0 {
		return attack
	}
	return attack * math.Pow(oppConcede/baseline, exponent)
}

// effectiveConcede raises a concede rate when the defending side carries
// injuries. The defense multiplier is a reduction of defensive capability,
// so dividing by it inflates the goals the side can expect to concede. A
// missing rate falls back to the league baseline.
func effectiveConcede(concede, defenseMult, baseline float64) float64 {
	if concede <= 0 {
		concede = baseline
	}
	if defenseMult <= 0 {
		return concede
	}
	return concede / defenseMult
}

// formMultiplier converts the bounded form trend into a multiplier around 1.
func formMultiplier(trend float64, cfg *Config) float64 {
	if trend > cfg.FormTrendClamp {
		trend = cfg.FormTrendClamp
	}
	if trend < -cfg.FormTrendClamp {
		trend = -cfg.FormTrendClamp
	}
	return 1 + trend*cfg.FormImpact
}
