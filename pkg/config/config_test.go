package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mistakia/league-sub002/internal/league"
)

const leagueYAML = `
starters:
  QB: 1
  RB: 2
  WR: 2
  TE: 1
  "RB/WR": 1
  "RB/WR/TE": 1
bench: 7
practice_squad: 4
reserve: 3
cap: 200
min_bid: 1
num_teams: 12
num_divisions: 4
regular_season_weeks: 14
playoff_spots: 6
extension_increment: 5
extension_deadline_week: 1
scoring:
  weights:
    py: 0.04
    tdp: 4
    ry: 0.1
    rec: 1
  reception_rates:
    RB: 0.5
  points_allowed_floor: 17
  yards_allowed_floor: 300
franchise_amounts:
  QB: 40
tag_limits:
  franchise: 1
baseline_overrides:
  QB: 18.5
`

func writeLeagueFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "league.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadLeague(t *testing.T) {
	cfg, err := LoadLeague(writeLeagueFile(t, leagueYAML))
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.TotalStarters())
	assert.Equal(t, 1, cfg.Starters[league.SlotRBWR])
	assert.Equal(t, 7, cfg.Bench)
	assert.Equal(t, 200, cfg.Cap)
	assert.Equal(t, 4, cfg.NumDivisions)
	assert.InDelta(t, 0.5, cfg.Scoring.ReceptionRate(league.RB), 1e-9)
	assert.InDelta(t, 1.0, cfg.Scoring.ReceptionRate(league.WR), 1e-9, "falls back to the rec weight")
	assert.Equal(t, 40, cfg.FranchiseAmounts[league.QB])
	assert.Equal(t, 1, cfg.TagLimit(league.TagFranchise))
	assert.Equal(t, -1, cfg.TagLimit(league.TagRookie), "unconfigured tags are unlimited")
	assert.InDelta(t, 18.5, cfg.BaselineOverrides[league.QB], 1e-9)
}

func TestLoadLeague_InvalidDivisions(t *testing.T) {
	_, err := LoadLeague(writeLeagueFile(t, `
starters:
  RB: 1
cap: 200
num_teams: 9
num_divisions: 3
`))
	require.Error(t, err)
	assert.ErrorIs(t, err, league.ErrInvalidConfig)
}

func TestLoadLeague_MissingFile(t *testing.T) {
	_, err := LoadLeague(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 10000, cfg.SimulationTrials)
	assert.Equal(t, 4, cfg.SimulationWorkers)
	assert.True(t, cfg.IsDevelopment())
}
