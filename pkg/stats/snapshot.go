package stats

import (
	"sync/atomic"
	"time"

	"github.com/oddsmith/predictor/internal/logger"
	"github.com/oddsmith/predictor/pkg/engine"
)

type teamKey struct {
	name   string
	venue  VenueRole
	league string
}

// Snapshot is a read-only view of the statistics store, valid until it is
// replaced wholesale. Predictions running against an old snapshot keep it
// alive; nothing is ever mutated in place while reads are in flight.
type Snapshot struct {
	loadedAt  time.Time
	teams     map[teamKey]*engine.TeamRecord
	baselines map[string]float64
}

func newSnapshot() *Snapshot {
	return &Snapshot{
		loadedAt:  time.Now(),
		teams:     make(map[teamKey]*engine.TeamRecord),
		baselines: make(map[string]float64),
	}
}

// LoadedAt reports when this snapshot was built.
func (s *Snapshot) LoadedAt() time.Time { return s.loadedAt }

// TeamRecord looks up one team in one venue role.
func (s *Snapshot) TeamRecord(name string, venue VenueRole, league string) (*engine.TeamRecord, bool) {
	rec, ok := s.teams[teamKey{name: name, venue: venue, league: league}]
	return rec, ok
}

// LeagueBaseline returns the stored average goals rate for a league.
func (s *Snapshot) LeagueBaseline(league string) (float64, bool) {
	b, ok := s.baselines[league]
	return b, ok
}

// Provider hands out the current snapshot and swaps in replacements
// atomically. Concurrent predictions need no coordination: each takes the
// pointer once and works against that view.
type Provider struct {
	current atomic.Pointer[Snapshot]
	cfg     *engine.Config
}

// NewProvider wraps an initial snapshot. The config supplies defaults for
// failed lookups.
func NewProvider(initial *Snapshot, cfg *engine.Config) *Provider {
	if cfg == nil {
		cfg = engine.DefaultConfig()
	}
	p := &Provider{cfg: cfg}
	if initial == nil {
		initial = newSnapshot()
	}
	p.current.Store(initial)
	return p
}

// Current returns the active snapshot.
func (p *Provider) Current() *Snapshot {
	return p.current.Load()
}

// Swap atomically replaces the active snapshot.
func (p *Provider) Swap(next *Snapshot) {
	if next == nil {
		return
	}
	p.current.Store(next)
	logger.Info("Statistics snapshot swapped", len(next.teams), "team records")
}

// Lookup returns the record for a team in a venue role, falling back to
// the conservative default record when the team is missing. One absent
// lookup never fails a prediction.
func (p *Provider) Lookup(name string, venue VenueRole, league string) *engine.TeamRecord {
	if rec, ok := p.Current().TeamRecord(name, venue, league); ok {
		return rec
	}
	return engine.DefaultTeamRecord(name, league, p.cfg)
}
