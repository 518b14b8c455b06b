// Package stats is the data collaborator for the prediction engine: a
// SQLite-backed store of per-team, per-venue statistics and league
// baselines, exposed to readers as immutable snapshots that are swapped
// atomically on refresh.
package stats

import (
	"database/sql"
	"fmt"

	"github.com/oddsmith/predictor/internal/logger"
	"github.com/oddsmith/predictor/pkg/engine"
	_ "modernc.org/sqlite"
)

// VenueRole distinguishes a team's home form from its away form; records
// are tracked separately per role.
type VenueRole string

const (
	VenueHome VenueRole = "home"
	VenueAway VenueRole = "away"
)

// Store persists team records and league baselines.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the statistics database and ensures the schema
// exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open statistics database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping statistics database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	logger.Info("Statistics database ready", path)
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createTables() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS team_records (
			name TEXT NOT NULL,
			venue TEXT NOT NULL,
			league TEXT NOT NULL,
			attack_rate REAL NOT NULL DEFAULT 0.0,
			concede_rate REAL NOT NULL DEFAULT 0.0,
			matches_observed INTEGER NOT NULL DEFAULT 0,
			form_trend REAL NOT NULL DEFAULT 0.0,
			clean_sheet_pct REAL NOT NULL DEFAULT 0.0,
			btts_pct REAL NOT NULL DEFAULT 50.0,
			tier TEXT NOT NULL DEFAULT 'average',
			rating REAL NOT NULL DEFAULT 1600.0,
			home_adv_strength TEXT NOT NULL DEFAULT 'moderate',
			ppg_diff REAL NOT NULL DEFAULT 0.0,
			goals_boost REAL NOT NULL DEFAULT 0.0,
			PRIMARY KEY (name, venue, league)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_team_records_league ON team_records(league)`,
		`CREATE TABLE IF NOT EXISTS league_baselines (
			league TEXT NOT NULL PRIMARY KEY,
			avg_goals REAL NOT NULL
		)`,
	}
	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// SaveTeamRecord upserts one team record for a venue role.
func (s *Store) SaveTeamRecord(role VenueRole, rec *engine.TeamRecord) error {
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("refusing to save malformed record: %w", err)
	}
	_, err := s.db.Exec(`
		INSERT INTO team_records (
			name, venue, league, attack_rate, concede_rate, matches_observed,
			form_trend, clean_sheet_pct, btts_pct, tier, rating,
			home_adv_strength, ppg_diff, goals_boost
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name, venue, league) DO UPDATE SET
			attack_rate = excluded.attack_rate,
			concede_rate = excluded.concede_rate,
			matches_observed = excluded.matches_observed,
			form_trend = excluded.form_trend,
			clean_sheet_pct = excluded.clean_sheet_pct,
			btts_pct = excluded.btts_pct,
			tier = excluded.tier,
			rating = excluded.rating,
			home_adv_strength = excluded.home_adv_strength,
			ppg_diff = excluded.ppg_diff,
			goals_boost = excluded.goals_boost`,
		rec.Name, string(role), rec.League, rec.AttackRate, rec.ConcedeRate,
		rec.MatchesObserved, rec.FormTrend, rec.CleanSheetPct, rec.BTTSPct,
		rec.Tier.String(), rec.Rating, rec.HomeAdv.Strength.String(),
		rec.HomeAdv.PPGDiff, rec.HomeAdv.GoalsBoost)
	if err != nil {
		return fmt.Errorf("failed to save team record %s/%s: %w", rec.Name, role, err)
	}
	return nil
}

// SaveLeagueBaseline upserts the average goals-per-match rate for a league.
func (s *Store) SaveLeagueBaseline(league string, avgGoals float64) error {
	if avgGoals <= 0 {
		return fmt.Errorf("league baseline must be positive, got %f", avgGoals)
	}
	_, err := s.db.Exec(`
		INSERT INTO league_baselines (league, avg_goals) VALUES (?, ?)
		ON CONFLICT(league) DO UPDATE SET avg_goals = excluded.avg_goals`,
		league, avgGoals)
	if err != nil {
		return fmt.Errorf("failed to save baseline for %s: %w", league, err)
	}
	return nil
}

// LoadSnapshot reads the whole store into an immutable in-memory snapshot.
func (s *Store) LoadSnapshot() (*Snapshot, error) {
	rows, err := s.db.Query(`
		SELECT name, venue, league, attack_rate, concede_rate, matches_observed,
			form_trend, clean_sheet_pct, btts_pct, tier, rating,
			home_adv_strength, ppg_diff, goals_boost
		FROM team_records`)
	if err != nil {
		return nil, fmt.Errorf("failed to query team records: %w", err)
	}
	defer rows.Close()

	snap := newSnapshot()
	for rows.Next() {
		var rec engine.TeamRecord
		var venue, tier, strength string
		err := rows.Scan(&rec.Name, &venue, &rec.League, &rec.AttackRate,
			&rec.ConcedeRate, &rec.MatchesObserved, &rec.FormTrend,
			&rec.CleanSheetPct, &rec.BTTSPct, &tier, &rec.Rating,
			&strength, &rec.HomeAdv.PPGDiff, &rec.HomeAdv.GoalsBoost)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team record: %w", err)
		}

		if rec.Tier, err = engine.ParseQualityTier(tier); err != nil {
			logger.Warn("Stored record has unknown tier, using average", rec.Name, tier)
		}
		if rec.HomeAdv.Strength, err = engine.ParseHomeAdvStrength(strength); err != nil {
			logger.Warn("Stored record has unknown home advantage strength", rec.Name, strength)
		}

		snap.teams[teamKey{name: rec.Name, venue: VenueRole(venue), league: rec.League}] = &rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed while reading team records: %w", err)
	}

	baselines, err := s.db.Query(`SELECT league, avg_goals FROM league_baselines`)
	if err != nil {
		return nil, fmt.Errorf("failed to query league baselines: %w", err)
	}
	defer baselines.Close()

	for baselines.Next() {
		var league string
		var avg float64
		if err := baselines.Scan(&league, &avg); err != nil {
			return nil, fmt.Errorf("failed to scan league baseline: %w", err)
		}
		snap.baselines[league] = avg
	}
	if err := baselines.Err(); err != nil {
		return nil, fmt.Errorf("failed while reading league baselines: %w", err)
	}

	logger.Info("Loaded statistics snapshot", len(snap.teams), "team records")
	return snap, nil
}
