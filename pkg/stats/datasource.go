package stats

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/oddsmith/predictor/internal/logger"
	"github.com/oddsmith/predictor/pkg/engine"
	"github.com/oddsmith/predictor/pkg/transport"
)

// Datasource fetches published per-team statistics tables and converts the
// rows into TeamRecords. Parsing is best effort: a malformed row is
// skipped with a warning rather than failing the refresh.
type Datasource struct {
	BaseURL string
	cfg     *engine.Config
}

// NewDatasource returns a datasource rooted at the given URL. The config
// supplies the boost scale used to derive goal boosts from PPG
// differentials.
func NewDatasource(baseURL string, cfg *engine.Config) *Datasource {
	if cfg == nil {
		cfg = engine.DefaultConfig()
	}
	return &Datasource{BaseURL: strings.TrimRight(baseURL, "/"), cfg: cfg}
}

// FetchLeague downloads and parses the stats table for one league.
func (d *Datasource) FetchLeague(league string) ([]*engine.TeamRecord, []VenueRole, error) {
	url := fmt.Sprintf("%s/stats/%s", d.BaseURL, strings.ReplaceAll(league, " ", "-"))
	body, err := transport.FetchHTML(url)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch league stats for %s: %w", league, err)
	}
	return d.ParseLeagueTable(body, league)
}

// ParseLeagueTable extracts team records from a stats table. Expected row
// layout:
//
//	team | venue | matches | goals/match | conceded/match | form trend |
//	clean sheet % | btts % | tier | rating | home adv | ppg diff
func (d *Datasource) ParseLeagueTable(html []byte, league string) ([]*engine.TeamRecord, []VenueRole, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse stats page: %w", err)
	}

	var records []*engine.TeamRecord
	var roles []VenueRole

	doc.Find("table.team-stats tbody tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td").Map(func(_ int, c *goquery.Selection) string {
			return strings.TrimSpace(c.Text())
		})
		rec, role, err := d.parseRow(cells, league)
		if err != nil {
			logger.Warn("Skipping stats row", i, err)
			return
		}
		records = append(records, rec)
		roles = append(roles, role)
	})

	if len(records) == 0 {
		return nil, nil, fmt.Errorf("no usable team rows found for %s", league)
	}
	return records, roles, nil
}

func (d *Datasource) parseRow(cells []string, league string) (*engine.TeamRecord, VenueRole, error) {
	if len(cells) < 12 {
		return nil, "", fmt.Errorf("expected 12 cells, got %d", len(cells))
	}

	name := cells[0]
	if name == "" {
		return nil, "", fmt.Errorf("empty team name")
	}

	var role VenueRole
	switch strings.ToLower(cells[1]) {
	case "home":
		role = VenueHome
	case "away":
		role = VenueAway
	default:
		return nil, "", fmt.Errorf("unknown venue role %q", cells[1])
	}

	nums := make([]float64, 0, 9)
	for _, c := range []string{cells[2], cells[3], cells[4], cells[5], cells[6], cells[7], cells[9], cells[11]} {
		f, err := strconv.ParseFloat(strings.TrimSuffix(c, "%"), 64)
		if err != nil {
			return nil, "", fmt.Errorf("bad numeric cell %q: %w", c, err)
		}
		nums = append(nums, f)
	}

	tier, err := engine.ParseQualityTier(strings.ToLower(cells[8]))
	if err != nil {
		logger.Warn("Unknown tier label, using average", name, cells[8])
	}
	strength, err := engine.ParseHomeAdvStrength(strings.ToLower(cells[10]))
	if err != nil {
		logger.Warn("Unknown home advantage label, using moderate", name, cells[10])
	}

	rec := &engine.TeamRecord{
		Name:            name,
		League:          league,
		MatchesObserved: int(nums[0]),
		AttackRate:      nums[1],
		ConcedeRate:     nums[2],
		FormTrend:       nums[3],
		CleanSheetPct:   nums[4],
		BTTSPct:         nums[5],
		Tier:            tier,
		Rating:          nums[6],
		HomeAdv: engine.HomeAdvantage{
			Strength:   strength,
			PPGDiff:    nums[7],
			GoalsBoost: nums[7] * d.cfg.HomeBoostScale,
		},
	}
	if err := rec.Validate(); err != nil {
		return nil, "", err
	}
	return rec, role, nil
}

// Refresh fetches a league's table, persists the rows and returns how many
// records were written.
func (d *Datasource) Refresh(store *Store, league string) (int, error) {
	records, roles, err := d.FetchLeague(league)
	if err != nil {
		return 0, err
	}
	saved := 0
	for i, rec := range records {
		if err := store.SaveTeamRecord(roles[i], rec); err != nil {
			logger.Warn("Failed to save fetched record", rec.Name, err)
			continue
		}
		saved++
	}
	return saved, nil
}
