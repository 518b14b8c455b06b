package engine

import "fmt"

// InjurySeverity is the closed set of squad-availability labels attached
// to each side of a match.
type InjurySeverity int

const (
	InjuryNone InjurySeverity = iota
	InjuryMinor
	InjuryModerate
	InjurySignificant
	InjuryCrisis
)

func (s InjurySeverity) String() string {
	switch s {
	case InjuryNone:
		return "None"
	case InjuryMinor:
		return "Minor"
	case InjuryModerate:
		return "Moderate"
	case InjurySignificant:
		return "Significant"
	case InjuryCrisis:
		return "Crisis"
	default:
		return "Unknown"
	}
}

// Level returns the ordinal used when measuring the injury gap between
// two sides (None=0 .. Crisis=4).
func (s InjurySeverity) Level() int { return int(s) }

// ParseInjurySeverity maps an external label onto the closed set,
// defaulting to None for anything unrecognised.
func ParseInjurySeverity(label string) (InjurySeverity, error) {
	switch label {
	case "", "None":
		return InjuryNone, nil
	case "Minor":
		return InjuryMinor, nil
	case "Moderate":
		return InjuryModerate, nil
	case "Significant":
		return InjurySignificant, nil
	case "Crisis":
		return InjuryCrisis, nil
	default:
		return InjuryNone, fmt.Errorf("unknown injury severity %q", label)
	}
}

// QualityTier is the closed team-strength classification derived from
// rating and squad valuation by the data collaborator.
type QualityTier int

const (
	TierWeak QualityTier = iota
	TierAverage
	TierStrong
	TierElite
)

func (t QualityTier) String() string {
	switch t {
	case TierElite:
		return "elite"
	case TierStrong:
		return "strong"
	case TierAverage:
		return "average"
	case TierWeak:
		return "weak"
	default:
		return "unknown"
	}
}

// ParseQualityTier maps an external tier label onto the closed set.
func ParseQualityTier(label string) (QualityTier, error) {
	switch label {
	case "elite":
		return TierElite, nil
	case "strong":
		return TierStrong, nil
	case "", "average":
		return TierAverage, nil
	case "weak":
		return TierWeak, nil
	default:
		return TierAverage, fmt.Errorf("unknown quality tier %q", label)
	}
}

// TierGap returns the absolute tier distance between two teams.
func TierGap(a, b QualityTier) int {
	d := int(a) - int(b)
	if d < 0 {
		d = -d
	}
	return d
}

// HomeAdvStrength labels how consistent a team's home advantage is.
type HomeAdvStrength int

const (
	HomeAdvWeak HomeAdvStrength = iota
	HomeAdvModerate
	HomeAdvStrong
)

func (h HomeAdvStrength) String() string {
	switch h {
	case HomeAdvStrong:
		return "strong"
	case HomeAdvModerate:
		return "moderate"
	case HomeAdvWeak:
		return "weak"
	default:
		return "unknown"
	}
}

// ParseHomeAdvStrength maps an external label onto the closed set.
func ParseHomeAdvStrength(label string) (HomeAdvStrength, error) {
	switch label {
	case "strong":
		return HomeAdvStrong, nil
	case "", "moderate":
		return HomeAdvModerate, nil
	case "weak":
		return HomeAdvWeak, nil
	default:
		return HomeAdvModerate, fmt.Errorf("unknown home advantage strength %q", label)
	}
}

// HomeAdvantage captures a team's historical home-vs-away edge. GoalsBoost
// is derived from the points-per-game differential by the data collaborator
// (PPGDiff scaled by the configured factor) so the estimator never applies
// the differential twice.
type HomeAdvantage struct {
	Strength   HomeAdvStrength `json:"strength"`
	PPGDiff    float64         `json:"ppgDiff"`
	GoalsBoost float64         `json:"goalsBoost"`
}

// TeamRecord is one team in one venue role. Rates are per-match over the
// recent window. Constructed by the data collaborator, immutable for the
// duration of one prediction.
type TeamRecord struct {
	Name            string        `json:"name"`
	League          string        `json:"league"`
	AttackRate      float64       `json:"attackRate"`  // goals scored per match (xG proxy)
	ConcedeRate     float64       `json:"concedeRate"` // goals conceded per match (xGA proxy)
	MatchesObserved int           `json:"matchesObserved"`
	FormTrend       float64       `json:"formTrend"` // bounded roughly in [-0.2, 0.2]
	CleanSheetPct   float64       `json:"cleanSheetPct"`
	BTTSPct         float64       `json:"bttsPct"`
	Tier            QualityTier   `json:"tier"`
	Rating          float64       `json:"rating"`
	HomeAdv         HomeAdvantage `json:"homeAdvantage"`
}

// Validate reports structural problems that must fail the prediction
// outright, as opposed to soft gaps that fall back to defaults.
func (t *TeamRecord) Validate() error {
	if t == nil {
		return fmt.Errorf("nil team record")
	}
	if t.AttackRate < 0 {
		return fmt.Errorf("team %s: negative attack rate %.2f", t.Name, t.AttackRate)
	}
	if t.ConcedeRate < 0 {
		return fmt.Errorf("team %s: negative concede rate %.2f", t.Name, t.ConcedeRate)
	}
	if t.MatchesObserved < 0 {
		return fmt.Errorf("team %s: negative matches observed %d", t.Name, t.MatchesObserved)
	}
	return nil
}

// OddsQuartet carries the quoted decimal odds for the four supported
// markets. Zero means the market was not quoted.
type OddsQuartet struct {
	Home    float64 `json:"home"`
	Draw    float64 `json:"draw"`
	Away    float64 `json:"away"`
	Over2p5 float64 `json:"over2p5"`
}

// MatchContext is one prediction query.
type MatchContext struct {
	Home         *TeamRecord    `json:"home"`
	Away         *TeamRecord    `json:"away"`
	HomeInjuries InjurySeverity `json:"homeInjuries"`
	AwayInjuries InjurySeverity `json:"awayInjuries"`
	HomeRestDays int            `json:"homeRestDays"`
	AwayRestDays int            `json:"awayRestDays"`
	League       string         `json:"league"`
	Odds         OddsQuartet    `json:"odds"`
}

// Market identifies one of the four bettable markets.
type Market string

const (
	MarketHome    Market = "home"
	MarketDraw    Market = "draw"
	MarketAway    Market = "away"
	MarketOver2p5 Market = "over_2.5"
)

// ValueRating is the qualitative verdict on a market's model-vs-price edge.
type ValueRating string

const (
	RatingExcellent   ValueRating = "excellent"
	RatingGood        ValueRating = "good"
	RatingFair        ValueRating = "fair"
	RatingPoor        ValueRating = "poor"
	RatingInvalid     ValueRating = "invalid"
	RatingMissingOdds ValueRating = "missing_odds"
)

// ValueBet is the evaluation of one market against its quoted price.
type ValueBet struct {
	EV          float64     `json:"ev"`
	RawKelly    float64     `json:"rawKelly"`
	SafeKelly   float64     `json:"safeKelly"` // fractional Kelly, capped at the max stake
	ValueRatio  float64     `json:"valueRatio"`
	Rating      ValueRating `json:"rating"`
	ImpliedProb float64     `json:"impliedProb"`
	ModelProb   float64     `json:"modelProb"`
}

// OutcomeProbs is the normalized win/draw/loss triple.
type OutcomeProbs struct {
	HomeWin float64 `json:"homeWin"`
	Draw    float64 `json:"draw"`
	AwayWin float64 `json:"awayWin"`
}

// Sum is the total probability mass of the triple.
func (o OutcomeProbs) Sum() float64 { return o.HomeWin + o.Draw + o.AwayWin }

// Max returns the largest outcome probability.
func (o OutcomeProbs) Max() float64 {
	m := o.HomeWin
	if o.Draw > m {
		m = o.Draw
	}
	if o.AwayWin > m {
		m = o.AwayWin
	}
	return m
}

// GoalMarkets carries over-probabilities at the fixed total-goals lines.
// Under-probabilities are the complements.
type GoalMarkets struct {
	Over1p5 float64 `json:"over1p5"`
	Over2p5 float64 `json:"over2p5"`
	Over3p5 float64 `json:"over3p5"`
}

// OutcomeConfidence is per-outcome trust in the estimate (0-100), which is
// deliberately independent of the probability's magnitude.
type OutcomeConfidence struct {
	HomeWin float64 `json:"homeWin"`
	Draw    float64 `json:"draw"`
	AwayWin float64 `json:"awayWin"`
}

// Mean averages the three outcome confidences.
func (c OutcomeConfidence) Mean() float64 {
	return (c.HomeWin + c.Draw + c.AwayWin) / 3.0
}

// ReliabilityLevel is the categorical verdict on input trustworthiness.
type ReliabilityLevel int

const (
	ReliabilityLow ReliabilityLevel = iota
	ReliabilityModerate
	ReliabilityHigh
)

func (r ReliabilityLevel) String() string {
	switch r {
	case ReliabilityHigh:
		return "High"
	case ReliabilityModerate:
		return "Moderate"
	case ReliabilityLow:
		return "Low"
	default:
		return "Unknown"
	}
}

// Reliability pairs the numeric reliability score with its tier and the
// fixed advisory text for that tier.
type Reliability struct {
	Score  float64          `json:"score"`
	Level  ReliabilityLevel `json:"level"`
	Advice string           `json:"advice"`
}

// ReliabilityFactors are the five context signals behind the reliability
// score, each in [0,1]. Surfaced for diagnostics rather than recomputed by
// callers.
type ReliabilityFactors struct {
	DataQuality        float64 `json:"dataQuality"`
	Predictability     float64 `json:"predictability"`
	InjuryStability    float64 `json:"injuryStability"`
	RestBalance        float64 `json:"restBalance"`
	HomeAdvConsistency float64 `json:"homeAdvConsistency"`
}

// Diagnostics exposes the intermediate signals a reviewer needs to audit a
// prediction without re-running it.
type Diagnostics struct {
	PoissonWeight float64            `json:"poissonWeight"`
	RatingGap     float64            `json:"ratingGap"`
	Damping       float64            `json:"damping"`
	Factors       ReliabilityFactors `json:"factors"`
}

// PredictionResult is the output aggregate for one query. Created fresh per
// prediction, never mutated afterwards.
type PredictionResult struct {
	HomeExpectedGoals float64             `json:"homeExpectedGoals"`
	AwayExpectedGoals float64             `json:"awayExpectedGoals"`
	Probabilities     OutcomeProbs        `json:"probabilities"`
	Goals             GoalMarkets         `json:"goals"`
	BTTSYes           float64             `json:"bttsYes"`
	BTTSNo            float64             `json:"bttsNo"`
	Confidence        OutcomeConfidence   `json:"confidence"`
	GoalsConfidence   float64             `json:"goalsConfidence"`
	BTTSConfidence    float64             `json:"bttsConfidence"`
	Reliability       Reliability         `json:"reliability"`
	ValueBets         map[Market]ValueBet `json:"valueBets"`
	Diagnostics       Diagnostics         `json:"diagnostics"`
}
