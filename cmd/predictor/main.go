package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/oddsmith/predictor/internal/logger"
	"github.com/oddsmith/predictor/pkg/engine"
	"github.com/oddsmith/predictor/pkg/stats"
)

func main() {
	var (
		dbPath       = flag.String("db", "predictor.db", "path to the statistics database")
		league       = flag.String("league", "Premier League", "league identifier")
		homeTeam     = flag.String("home", "", "home team name")
		awayTeam     = flag.String("away", "", "away team name")
		homeInjuries = flag.String("home-injuries", "None", "home injury severity (None|Minor|Moderate|Significant|Crisis)")
		awayInjuries = flag.String("away-injuries", "None", "away injury severity")
		homeRest     = flag.Int("home-rest", 7, "home rest days")
		awayRest     = flag.Int("away-rest", 7, "away rest days")
		homeOdds     = flag.Float64("home-odds", 0, "decimal odds for home win (0 = not quoted)")
		drawOdds     = flag.Float64("draw-odds", 0, "decimal odds for draw")
		awayOdds     = flag.Float64("away-odds", 0, "decimal odds for away win")
		overOdds     = flag.Float64("over-odds", 0, "decimal odds for over 2.5 goals")
		verbose      = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *verbose {
		logger.SetLevel(logger.DEBUG)
	}
	if *homeTeam == "" || *awayTeam == "" {
		fmt.Fprintln(os.Stderr, "both -home and -away are required")
		flag.Usage()
		os.Exit(2)
	}

	hi, err := engine.ParseInjurySeverity(*homeInjuries)
	if err != nil {
		logger.Fatal("Invalid home injuries", err)
	}
	ai, err := engine.ParseInjurySeverity(*awayInjuries)
	if err != nil {
		logger.Fatal("Invalid away injuries", err)
	}

	cfg := engine.DefaultConfig()

	store, err := stats.Open(*dbPath)
	if err != nil {
		logger.Fatal("Could not open statistics store", err)
	}
	defer store.Close()

	snap, err := store.LoadSnapshot()
	if err != nil {
		logger.Fatal("Could not load statistics snapshot", err)
	}
	provider := stats.NewProvider(snap, cfg)

	mc := &engine.MatchContext{
		Home:         provider.Lookup(*homeTeam, stats.VenueHome, *league),
		Away:         provider.Lookup(*awayTeam, stats.VenueAway, *league),
		HomeInjuries: hi,
		AwayInjuries: ai,
		HomeRestDays: *homeRest,
		AwayRestDays: *awayRest,
		League:       *league,
		Odds: engine.OddsQuartet{
			Home:    *homeOdds,
			Draw:    *drawOdds,
			Away:    *awayOdds,
			Over2p5: *overOdds,
		},
	}

	eng, err := engine.New(cfg)
	if err != nil {
		logger.Fatal("Could not build engine", err)
	}

	result, err := eng.Predict(mc)
	if err != nil {
		logger.Fatal("Prediction failed", err)
	}

	printResult(*homeTeam, *awayTeam, result)
}

func printResult(home, away string, r *engine.PredictionResult) {
	fmt.Printf("%s vs %s\n", home, away)
	fmt.Printf("  expected goals    %.2f - %.2f\n", r.HomeExpectedGoals, r.AwayExpectedGoals)
	fmt.Printf("  home win          %5.1f%%  (confidence %.0f)\n", r.Probabilities.HomeWin*100, r.Confidence.HomeWin)
	fmt.Printf("  draw              %5.1f%%  (confidence %.0f)\n", r.Probabilities.Draw*100, r.Confidence.Draw)
	fmt.Printf("  away win          %5.1f%%  (confidence %.0f)\n", r.Probabilities.AwayWin*100, r.Confidence.AwayWin)
	fmt.Printf("  over 1.5 / 2.5 / 3.5  %.1f%% / %.1f%% / %.1f%%\n",
		r.Goals.Over1p5*100, r.Goals.Over2p5*100, r.Goals.Over3p5*100)
	fmt.Printf("  btts yes          %5.1f%%  (confidence %.0f)\n", r.BTTSYes*100, r.BTTSConfidence)
	fmt.Printf("  reliability       %s (%.0f): %s\n", r.Reliability.Level, r.Reliability.Score, r.Reliability.Advice)

	for _, m := range []engine.Market{engine.MarketHome, engine.MarketDraw, engine.MarketAway, engine.MarketOver2p5} {
		bet := r.ValueBets[m]
		if bet.Rating == engine.RatingMissingOdds {
			continue
		}
		fmt.Printf("  value %-9s ev %+.3f  ratio %.3f  stake %.3f  %s\n",
			m, bet.EV, bet.ValueRatio, bet.SafeKelly, bet.Rating)
	}
}
