package engine

import (
	"fmt"
	"math"
)

// Config centralizes every calibration constant that influences a
// prediction. None of these values are fitted at runtime; they are fixed
// calibration supplied at construction so changes are auditable and
// testable independently of the algorithm.
type Config struct {
	// Version identifies the calibration snapshot in diagnostics and logs.
	Version string

	// === GOAL EXPECTANCY ===

	// League baseline goals per match, used to normalize opponent concede
	// rates. Leagues not listed fall back to DefaultLeagueBaseline.
	LeagueBaselines       map[string]float64
	DefaultLeagueBaseline float64

	// SofteningExponent tempers the opponent-defense normalization so a
	// defensive mismatch influences but does not dominate the estimate.
	SofteningExponent float64

	// Injury multipliers per severity level. Attack multipliers scale the
	// injured side's own expectancy; defense multipliers raise the injured
	// side's effective concede rate (missing defenders cost more goals than
	// missing attackers save).
	InjuryAttackMult  map[InjurySeverity]float64
	InjuryDefenseMult map[InjurySeverity]float64

	// Fatigue multipliers keyed by rest days; requests outside
	// [MinRestDays, MaxRestDays] clamp to the nearest table entry.
	FatigueByRestDays map[int]float64
	MinRestDays       int
	MaxRestDays       int

	// Form trend handling: the trend is clamped to ±FormTrendClamp and
	// scaled by FormImpact into a multiplier around 1.0.
	FormTrendClamp float64
	FormImpact     float64

	// Home advantage: the away side concedes half of its own historical
	// boost as a penalty for playing away from home.
	AwayPenaltyFactor float64
	// HomeBoostScale converts a points-per-game differential into a goals
	// boost when the data collaborator derives HomeAdvantage.GoalsBoost.
	HomeBoostScale float64

	// Reality clamps. When the combined expectancy exceeds the per-league
	// ceiling, both sides are damped by
	// clamp(DampingBase - DampingSlope*min(excess, DampingMaxExcess), DampingFloor, 1).
	LeagueTotalCeilings map[string]float64
	DefaultTotalCeiling float64
	DampingBase         float64
	DampingSlope        float64
	DampingMaxExcess    float64
	DampingFloor        float64

	// Per-side expectancy caps by quality tier, and the global floor that
	// keeps the distribution math well defined.
	TierGoalCaps      map[QualityTier]float64
	MinGoalExpectancy float64

	// === OUTCOME PROBABILITIES ===

	// GridMaxGoals bounds the Poisson grid at 0..GridMaxGoals per side.
	GridMaxGoals int

	// Defensive-consistency adjustment to over/under probabilities and the
	// clamps keeping them in a safe range per line.
	ConsistencyImpact float64
	OverClamp1p5      [2]float64
	OverClamp2p5      [2]float64
	OverClamp3p5      [2]float64

	// BTTS blend between the Poisson estimate and the historical rate. The
	// historical figure gets BTTSHistWeightLow when either expectancy is
	// below BTTSLowSignalLambda (weak signal), BTTSHistWeightHigh otherwise.
	BTTSLowSignalLambda float64
	BTTSHistWeightLow   float64
	BTTSHistWeightHigh  float64
	BTTSClamp           [2]float64

	// Rating (Elo-style) model.
	HomeFieldRatingBonus float64
	RatingScale          float64
	RatingClosenessRange float64
	BaseDrawRate         float64

	// Blend policy defaults (see DefaultBlendPolicy).
	ReferenceWindow  int
	BlendBase        float64
	BlendSampleStep  float64
	BlendTierStep    float64
	BlendInjuryStep  float64
	BlendMin         float64
	BlendMax         float64

	// === CONFIDENCE ===

	ConfidenceWeights   ReliabilityFactors // weights, must sum to ~1.0
	InjuryStabilityByLv map[InjurySeverity]float64
	HomeAdvConsistency  map[HomeAdvStrength]float64
	DrawConfidenceScale float64
	ConfidenceFloor     float64
	ConfidenceCap       float64
	ReliabilityHighMin  float64
	ReliabilityModMin   float64

	// === VALUE BETTING ===

	ValueThresholds map[ValueRating]ValueThreshold
	KellyFraction   float64
	MaxStake        float64
}

// ValueThreshold is the pair of floors a market must clear for a rating.
type ValueThreshold struct {
	EV         float64
	ValueRatio float64
}

// DefaultConfig returns the standard calibration.
func DefaultConfig() *Config {
	return &Config{
		Version: "2026.08",

		LeagueBaselines: map[string]float64{
			"Premier League": 1.45,
			"La Liga":        1.38,
			"Bundesliga":     1.52,
			"Serie A":        1.42,
			"Ligue 1":        1.40,
			"RFPL":           1.35,
		},
		DefaultLeagueBaseline: 1.40,
		SofteningExponent:     0.75,

		InjuryAttackMult: map[InjurySeverity]float64{
			InjuryNone:        1.00,
			InjuryMinor:       0.95,
			InjuryModerate:    0.90,
			InjurySignificant: 0.82,
			InjuryCrisis:      0.70,
		},
		InjuryDefenseMult: map[InjurySeverity]float64{
			InjuryNone:        1.00,
			InjuryMinor:       0.94,
			InjuryModerate:    0.85,
			InjurySignificant: 0.72,
			InjuryCrisis:      0.58,
		},

		FatigueByRestDays: map[int]float64{
			2: 0.85, 3: 0.88, 4: 0.91, 5: 0.94, 6: 0.96,
			7: 0.98, 8: 1.00, 9: 1.01, 10: 1.02, 11: 1.03,
			12: 1.03, 13: 1.03, 14: 1.03,
		},
		MinRestDays: 2,
		MaxRestDays: 14,

		FormTrendClamp: 0.2,
		FormImpact:     0.2,

		AwayPenaltyFactor: 0.5,
		HomeBoostScale:    0.33,

		LeagueTotalCeilings: map[string]float64{
			"Premier League": 3.6,
			"Bundesliga":     3.8,
			"Serie A":        3.3,
			"La Liga":        3.4,
			"Ligue 1":        3.4,
			"RFPL":           3.2,
		},
		DefaultTotalCeiling: 3.5,
		DampingBase:         0.95,
		DampingSlope:        0.03,
		DampingMaxExcess:    3.0,
		DampingFloor:        0.75,

		TierGoalCaps: map[QualityTier]float64{
			TierElite:   2.6,
			TierStrong:  2.1,
			TierAverage: 1.9,
			TierWeak:    1.7,
		},
		MinGoalExpectancy: 0.1,

		GridMaxGoals: 8,

		ConsistencyImpact: 0.35,
		OverClamp1p5:      [2]float64{0.02, 0.995},
		OverClamp2p5:      [2]float64{0.02, 0.98},
		OverClamp3p5:      [2]float64{0.01, 0.95},

		BTTSLowSignalLambda: 1.2,
		BTTSHistWeightLow:   0.6,
		BTTSHistWeightHigh:  0.4,
		BTTSClamp:           [2]float64{0.05, 0.95},

		HomeFieldRatingBonus: 80,
		RatingScale:          400,
		RatingClosenessRange: 600,
		BaseDrawRate:         0.24,

		ReferenceWindow: 5,
		BlendBase:       0.58,
		BlendSampleStep: 0.03,
		BlendTierStep:   0.07,
		BlendInjuryStep: 0.04,
		BlendMin:        0.30,
		BlendMax:        0.70,

		ConfidenceWeights: ReliabilityFactors{
			DataQuality:        0.18,
			Predictability:     0.18,
			InjuryStability:    0.22,
			RestBalance:        0.12,
			HomeAdvConsistency: 0.30,
		},
		InjuryStabilityByLv: map[InjurySeverity]float64{
			InjuryNone:        1.00,
			InjuryMinor:       0.90,
			InjuryModerate:    0.75,
			InjurySignificant: 0.60,
			InjuryCrisis:      0.40,
		},
		HomeAdvConsistency: map[HomeAdvStrength]float64{
			HomeAdvStrong:   0.95,
			HomeAdvModerate: 0.85,
			HomeAdvWeak:     0.70,
		},
		DrawConfidenceScale: 0.90,
		ConfidenceFloor:     5,
		ConfidenceCap:       95,
		ReliabilityHighMin:  70,
		ReliabilityModMin:   55,

		ValueThresholds: map[ValueRating]ValueThreshold{
			RatingExcellent: {EV: 0.08, ValueRatio: 1.12},
			RatingGood:      {EV: 0.04, ValueRatio: 1.06},
			RatingFair:      {EV: 0.01, ValueRatio: 1.02},
		},
		KellyFraction: 0.25,
		MaxStake:      0.02,
	}
}

// Validate ensures the calibration is internally consistent before an
// Engine accepts it.
func (c *Config) Validate() error {
	if c.SofteningExponent <= 0 || c.SofteningExponent > 1 {
		return fmt.Errorf("softening exponent must be in (0,1], got %f", c.SofteningExponent)
	}
	if c.DefaultLeagueBaseline <= 0 {
		return fmt.Errorf("default league baseline must be positive, got %f", c.DefaultLeagueBaseline)
	}
	if c.MinGoalExpectancy <= 0 {
		return fmt.Errorf("goal expectancy floor must be positive, got %f", c.MinGoalExpectancy)
	}
	if c.GridMaxGoals < 3 {
		return fmt.Errorf("grid must cover at least 0..3 goals, got %d", c.GridMaxGoals)
	}
	if c.DampingFloor <= 0 || c.DampingFloor > 1 {
		return fmt.Errorf("damping floor must be in (0,1], got %f", c.DampingFloor)
	}

	for lv := InjuryNone; lv <= InjuryCrisis; lv++ {
		am, ok := c.InjuryAttackMult[lv]
		if !ok || am <= 0 || am > 1 {
			return fmt.Errorf("injury attack multiplier for %s must be in (0,1]", lv)
		}
		dm, ok := c.InjuryDefenseMult[lv]
		if !ok || dm <= 0 || dm > 1 {
			return fmt.Errorf("injury defense multiplier for %s must be in (0,1]", lv)
		}
		if dm > am {
			return fmt.Errorf("defense multiplier for %s must not be laxer than attack", lv)
		}
	}

	prev := 0.0
	for d := c.MinRestDays; d <= c.MaxRestDays; d++ {
		m, ok := c.FatigueByRestDays[d]
		if !ok {
			return fmt.Errorf("fatigue table missing rest days %d", d)
		}
		if m < prev {
			return fmt.Errorf("fatigue table must be monotonically increasing at %d days", d)
		}
		prev = m
	}

	w := c.ConfidenceWeights
	sum := w.DataQuality + w.Predictability + w.InjuryStability + w.RestBalance + w.HomeAdvConsistency
	if math.Abs(sum-1.0) > 0.01 {
		return fmt.Errorf("confidence weights must sum to 1.0, got %f", sum)
	}

	if c.BlendMin < 0 || c.BlendMax > 1 || c.BlendMin > c.BlendMax {
		return fmt.Errorf("blend weight bounds [%f,%f] invalid", c.BlendMin, c.BlendMax)
	}
	if c.KellyFraction <= 0 || c.KellyFraction > 1 {
		return fmt.Errorf("kelly fraction must be in (0,1], got %f", c.KellyFraction)
	}
	if c.MaxStake <= 0 || c.MaxStake > 0.25 {
		return fmt.Errorf("max stake must be in (0,0.25], got %f", c.MaxStake)
	}
	return nil
}

// leagueBaseline returns the baseline goals rate for a league, falling back
// to the default when the league is unknown.
func (c *Config) leagueBaseline(league string) float64 {
	if b, ok := c.LeagueBaselines[league]; ok {
		return b
	}
	return c.DefaultLeagueBaseline
}

// totalCeiling returns the per-league combined expectancy ceiling.
func (c *Config) totalCeiling(league string) float64 {
	if t, ok := c.LeagueTotalCeilings[league]; ok {
		return t
	}
	return c.DefaultTotalCeiling
}

// fatigueMultiplier looks up the fatigue factor, clamping rest days to the
// table's domain.
func (c *Config) fatigueMultiplier(restDays int) float64 {
	if restDays < c.MinRestDays {
		restDays = c.MinRestDays
	}
	if restDays > c.MaxRestDays {
		restDays = c.MaxRestDays
	}
	return c.FatigueByRestDays[restDays]
}

// tierCap returns the per-side expectancy cap for a quality tier.
func (c *Config) tierCap(tier QualityTier) float64 {
	if v, ok := c.TierGoalCaps[tier]; ok {
		return v
	}
	return c.TierGoalCaps[TierAverage]
}
