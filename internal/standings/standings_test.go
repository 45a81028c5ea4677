package standings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mistakia/league-sub002/internal/league"
	"github.com/mistakia/league-sub002/internal/roster"
)

func standingsConfig(divisions int) *league.Config {
	return &league.Config{
		Starters: map[league.Slot]int{
			league.SlotRB: 1, league.SlotWR: 1,
		},
		Bench:              4,
		Cap:                200,
		NumTeams:           8,
		NumDivisions:       divisions,
		RegularSeasonWeeks: 14,
		PlayoffSpots:       6,
	}
}

func eightTeams(divisions int) []Team {
	perDiv := 8 / divisions
	teams := make([]Team, 0, 8)
	for i := 0; i < 8; i++ {
		teams = append(teams, Team{
			TeamID:   string(rune('a' + i)),
			Division: i / perDiv,
		})
	}
	return teams
}

func week(scores map[string]float64, wk int) map[string]TeamWeek {
	out := make(map[string]TeamWeek, len(scores))
	for id, pts := range scores {
		out[id] = TeamWeek{TeamID: id, Week: wk, Points: pts}
	}
	return out
}

func TestScoreWeek_ActualAndPotential(t *testing.T) {
	cfg := standingsConfig(2)
	entries := []roster.Entry{
		{PlayerID: "rb1", Position: league.RB, Slot: league.SlotRB},
		{PlayerID: "wr1", Position: league.WR, Slot: league.SlotWR},
		{PlayerID: "wr2", Position: league.WR, Slot: league.SlotBench},
		{PlayerID: "rb2", Position: league.RB, Slot: league.SlotPS},
	}
	points := map[string]float64{"rb1": 10, "wr1": 5, "wr2": 20, "rb2": 30}

	tw, err := ScoreWeek("alpha", 3, entries, points, cfg)
	require.NoError(t, err)

	assert.InDelta(t, 15.0, tw.Points, 1e-9, "only current starters count")
	assert.InDelta(t, 30.0, tw.PotentialPoints, 1e-9, "bench wr2 starts in the optimal lineup; practice squad never does")
	assert.InDelta(t, 10.0, tw.BySlot[league.SlotRB], 1e-9)
	assert.InDelta(t, 5.0, tw.ByPosition[league.WR], 1e-9)
}

func TestScoreWeek_ThinRosterUsesBaselines(t *testing.T) {
	cfg := standingsConfig(2)
	entries := []roster.Entry{
		{PlayerID: "rb1", Position: league.RB, Slot: league.SlotRB},
	}
	points := map[string]float64{"rb1": 12}

	tw, err := ScoreWeek("alpha", 1, entries, points, cfg)
	require.NoError(t, err)
	assert.InDelta(t, 12.0, tw.PotentialPoints, 1e-9, "missing WR filled by a zero-point baseline")
}

func TestApplyWeek_RecordsAndAllPlay(t *testing.T) {
	cfg := standingsConfig(2)
	teams := []Team{
		{TeamID: "a", Division: 0}, {TeamID: "b", Division: 0},
		{TeamID: "c", Division: 1}, {TeamID: "d", Division: 1},
	}
	e := NewEngine(cfg, teams)

	matchups := []Matchup{
		{Week: 1, Home: "a", Away: "b"},
		{Week: 1, Home: "c", Away: "d"},
	}
	err := e.ApplyWeek(1, matchups, week(map[string]float64{
		"a": 100, "b": 90, "c": 80, "d": 80,
	}, 1))
	require.NoError(t, err)

	a, b, c, d := e.teams["a"], e.teams["b"], e.teams["c"], e.teams["d"]
	assert.Equal(t, 1, a.Wins)
	assert.Equal(t, 1, b.Losses)
	assert.Equal(t, 1, c.Ties)
	assert.Equal(t, 1, d.Ties)

	assert.Equal(t, 3, a.AllPlayWins, "a outscored everyone")
	assert.Equal(t, 2, b.AllPlayWins)
	assert.Equal(t, 1, b.AllPlayLosses)
	assert.Equal(t, 1, c.AllPlayTies, "c and d tied each other")
	assert.Equal(t, 2, c.AllPlayLosses)

	assert.InDelta(t, 90.0, a.PointsAgainst, 1e-9)
	assert.Equal(t, 1, a.WeeklyHighScores)
	assert.Equal(t, 0, b.WeeklyHighScores)
}

func TestApplyWeek_UnknownTeam(t *testing.T) {
	e := NewEngine(standingsConfig(2), []Team{{TeamID: "a"}, {TeamID: "b"}})
	err := e.ApplyWeek(1, []Matchup{{Week: 1, Home: "a", Away: "zz"}}, nil)
	assert.Error(t, err)
}

func TestCompareRecord_TieBreakOrder(t *testing.T) {
	tests := []struct {
		name string
		a, b SeasonStats
		want bool
	}{
		{"more wins first", SeasonStats{Wins: 5}, SeasonStats{Wins: 4, PointsFor: 999}, true},
		{"fewer losses first", SeasonStats{Wins: 5, Losses: 2}, SeasonStats{Wins: 5, Losses: 3}, true},
		{"more ties first", SeasonStats{Wins: 5, Ties: 1}, SeasonStats{Wins: 5}, true},
		{"points for breaks equal records", SeasonStats{Wins: 5, PointsFor: 800}, SeasonStats{Wins: 5, PointsFor: 700}, true},
		{"all-play last", SeasonStats{Wins: 5, PointsFor: 800, AllPlayWins: 40}, SeasonStats{Wins: 5, PointsFor: 800, AllPlayWins: 30}, true},
		{"fully equal keeps order", SeasonStats{Wins: 5}, SeasonStats{Wins: 5}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, compareRecord(&tc.a, &tc.b))
		})
	}
}

func TestFinalize_FourDivisions(t *testing.T) {
	cfg := standingsConfig(4)
	e := NewEngine(cfg, eightTeams(4))

	// Divisions: {a,b} {c,d} {e,f} {g,h}. One round of scores makes a,c,e,g
	// the division winners with descending all-play strength.
	matchups := []Matchup{
		{Week: 1, Home: "a", Away: "b"}, {Week: 1, Home: "c", Away: "d"},
		{Week: 1, Home: "e", Away: "f"}, {Week: 1, Home: "g", Away: "h"},
	}
	err := e.ApplyWeek(1, matchups, week(map[string]float64{
		"a": 120, "b": 60, "c": 110, "d": 55,
		"e": 100, "f": 50, "g": 90, "h": 85,
	}, 1))
	require.NoError(t, err)

	ranked, err := e.Finalize()
	require.NoError(t, err)
	require.Len(t, ranked, 8)

	bySeed := make(map[int]string)
	for _, t2 := range ranked {
		if t2.PlayoffSeed != nil {
			bySeed[*t2.PlayoffSeed] = t2.TeamID
		}
	}
	assert.Equal(t, "a", bySeed[1])
	assert.Equal(t, "c", bySeed[2])
	assert.Equal(t, "e", bySeed[3])
	assert.Equal(t, "g", bySeed[4])

	a, g, h := e.teams["a"], e.teams["g"], e.teams["h"]
	assert.True(t, a.DivisionWinner)
	assert.True(t, a.FirstRoundBye)
	assert.True(t, g.DivisionWinner)
	assert.False(t, g.FirstRoundBye, "seed 4 plays the wildcard round")

	// PlayoffSpots is 6: the two best non-winners by points-for get in.
	assert.True(t, h.Wildcard, "h@85 leads the rest on points-for")
	assert.True(t, e.teams["b"].Wildcard, "b@60 takes the last spot")
	assert.False(t, e.teams["f"].Wildcard)
	assert.Nil(t, e.teams["f"].PlayoffSeed)
	require.NotNil(t, h.PlayoffSeed)
	assert.Equal(t, 5, *h.PlayoffSeed)
}

func TestFinalize_TwoDivisionsRunnersUpSeeded(t *testing.T) {
	cfg := standingsConfig(2)
	e := NewEngine(cfg, eightTeams(2))

	// Divisions: {a..d} {e..h}. a and e win their divisions; b and f are the
	// runners-up, with f ahead of b on all-play wins.
	matchups := []Matchup{
		{Week: 1, Home: "a", Away: "c"}, {Week: 1, Home: "b", Away: "d"},
		{Week: 1, Home: "e", Away: "g"}, {Week: 1, Home: "f", Away: "h"},
	}
	err := e.ApplyWeek(1, matchups, week(map[string]float64{
		"a": 120, "b": 70, "c": 65, "d": 40,
		"e": 110, "f": 95, "g": 60, "h": 30,
	}, 1))
	require.NoError(t, err)

	ranked, err := e.Finalize()
	require.NoError(t, err)

	bySeed := make(map[int]string)
	for _, t2 := range ranked {
		if t2.PlayoffSeed != nil {
			bySeed[*t2.PlayoffSeed] = t2.TeamID
		}
	}
	assert.Equal(t, "a", bySeed[1], "a has the better all-play row")
	assert.Equal(t, "e", bySeed[2])
	assert.Equal(t, "f", bySeed[3], "runner-up with more all-play wins")
	assert.Equal(t, "b", bySeed[4])
	assert.False(t, e.teams["f"].DivisionWinner)
	assert.False(t, e.teams["f"].FirstRoundBye)

	rank := e.teams["a"].RegularSeasonRank
	require.NotNil(t, rank)
	assert.Equal(t, 1, *rank)
}

func TestFinalize_UnsupportedDivisions(t *testing.T) {
	cfg := standingsConfig(2)
	cfg.NumDivisions = 3
	e := NewEngine(cfg, eightTeams(2))
	_, err := e.Finalize()
	assert.ErrorIs(t, err, ErrUnsupportedDivisions)
}

func TestFinalize_ScoreStdDev(t *testing.T) {
	cfg := standingsConfig(2)
	e := NewEngine(cfg, eightTeams(2))

	for wk := 1; wk <= 3; wk++ {
		scores := map[string]float64{
			"a": 100, "b": 90, "c": 80, "d": 70,
			"e": 60, "f": 50, "g": 40, "h": 30,
		}
		scores["a"] = 90 + 10*float64(wk) // 100, 110, 120
		require.NoError(t, e.ApplyWeek(wk, nil, week(scores, wk)))
	}

	_, err := e.Finalize()
	require.NoError(t, err)
	assert.InDelta(t, 10.0, e.teams["a"].ScoreStdDev, 1e-9, "sample std dev of 100,110,120")
	assert.InDelta(t, 0.0, e.teams["b"].ScoreStdDev, 1e-9)
}
