package engine

import (
	"fmt"
	"strings"
)

// ValidationError carries the full list of human-readable problems found
// before any numeric computation. No partial result accompanies it.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "invalid match context: " + strings.Join(e.Messages, "; ")
}

// validateContext checks the structural invariants of one query. Soft gaps
// (missing stats, unknown league) are not errors; they fall back to
// defaults downstream.
func validateContext(mc *MatchContext) error {
	var msgs []string

	if mc.Home == nil || mc.Away == nil {
		msgs = append(msgs, "both team records must be supplied")
		return &ValidationError{Messages: msgs}
	}

	if err := mc.Home.Validate(); err != nil {
		msgs = append(msgs, err.Error())
	}
	if err := mc.Away.Validate(); err != nil {
		msgs = append(msgs, err.Error())
	}

	if mc.Home.Name != "" && mc.Home.Name == mc.Away.Name {
		msgs = append(msgs, "cannot select the same team for both home and away")
	}
	if mc.Home.League != "" && mc.Away.League != "" && mc.Home.League != mc.Away.League {
		msgs = append(msgs, fmt.Sprintf("teams must be from the same league: %s is in %s, %s is in %s",
			mc.Home.Name, mc.Home.League, mc.Away.Name, mc.Away.League))
	}

	for _, q := range []struct {
		market Market
		odds   float64
	}{
		{MarketHome, mc.Odds.Home},
		{MarketDraw, mc.Odds.Draw},
		{MarketAway, mc.Odds.Away},
		{MarketOver2p5, mc.Odds.Over2p5},
	} {
		// Zero means the market was not quoted, which is fine; anything
		// else at or below 1.0 cannot pay out and is a data error.
		if q.odds != 0 && q.odds <= 1.0 {
			msgs = append(msgs, fmt.Sprintf("odds for %s market must exceed 1.0, got %.2f", q.market, q.odds))
		}
	}

	if len(msgs) > 0 {
		return &ValidationError{Messages: msgs}
	}
	return nil
}
