// Package standings aggregates weekly results into season records: wins and
// losses, all-play tallies, potential-points ceilings, division ranking and
// playoff seeding.
package standings

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/mistakia/league-sub002/internal/league"
	"github.com/mistakia/league-sub002/internal/optimizer"
	"github.com/mistakia/league-sub002/internal/roster"
)

// ErrUnsupportedDivisions reports a league with a division count the seeding
// rules do not cover. Raised immediately, never silently guessed at.
var ErrUnsupportedDivisions = errors.New("unsupported division count")

var errUnknownTeam = errors.New("unknown team")

// Matchup is one week's head-to-head pairing.
type Matchup struct {
	Week int
	Home string
	Away string
}

// TeamWeek is one team's computed scoring for one week.
type TeamWeek struct {
	TeamID          string
	Week            int
	Points          float64
	PotentialPoints float64
	BySlot          map[league.Slot]float64
	ByPosition      map[league.Position]float64
}

// ScoreWeek computes a team's actual score (current starters only) and its
// potential-points ceiling (optimal lineup over all active players) for one
// week. points maps player id to that week's fantasy points.
func ScoreWeek(teamID string, week int, entries []roster.Entry, points map[string]float64, cfg *league.Config) (TeamWeek, error) {
	tw := TeamWeek{
		TeamID:     teamID,
		Week:       week,
		BySlot:     make(map[league.Slot]float64),
		ByPosition: make(map[league.Position]float64),
	}

	pool := make([]optimizer.Player, 0, len(entries))
	for _, e := range entries {
		pts := points[e.PlayerID]
		if e.Slot.IsStarting() {
			tw.Points += pts
			tw.BySlot[e.Slot] += pts
			tw.ByPosition[e.Position] += pts
		}
		if e.Slot.IsActive() {
			pool = append(pool, optimizer.Player{ID: e.PlayerID, Position: e.Position, Points: pts})
		}
	}

	sol, err := optimizer.OptimizeLineup(pool, cfg, optimizer.WithBaselinePlayers(nil))
	if err != nil {
		return TeamWeek{}, fmt.Errorf("potential points for %s week %d: %w", teamID, week, err)
	}
	tw.PotentialPoints = sol.Objective
	return tw, nil
}

// Team identifies a league member and its division.
type Team struct {
	TeamID   string
	Division int
}

// SeasonStats is the cumulative aggregate for one team. Finish ranks are nil
// until computed, never defaulted to zero.
type SeasonStats struct {
	TeamID   string
	Division int

	Wins   int
	Losses int
	Ties   int

	PointsFor       float64
	PointsAgainst   float64
	PotentialPoints float64

	AllPlayWins   int
	AllPlayLosses int
	AllPlayTies   int

	WeeklyHighScores int

	BySlot     map[league.Slot]float64
	ByPosition map[league.Position]float64

	ScoreStdDev float64

	DivisionRank      *int
	RegularSeasonRank *int
	PlayoffSeed       *int

	DivisionWinner bool
	FirstRoundBye  bool
	Wildcard       bool

	weeklyScores []float64
}

// Engine accumulates weekly results for a season.
type Engine struct {
	cfg   *league.Config
	teams map[string]*SeasonStats
	order []string
}

// NewEngine creates a standings engine for the given teams.
func NewEngine(cfg *league.Config, teams []Team) *Engine {
	e := &Engine{cfg: cfg, teams: make(map[string]*SeasonStats, len(teams))}
	for _, t := range teams {
		e.teams[t.TeamID] = &SeasonStats{
			TeamID:     t.TeamID,
			Division:   t.Division,
			BySlot:     make(map[league.Slot]float64),
			ByPosition: make(map[league.Position]float64),
		}
		e.order = append(e.order, t.TeamID)
	}
	return e
}

// ApplyWeek folds one week's matchups and team scores into the season
// aggregates: head-to-head records, all-play tallies against every other
// team's score, and the weekly high-score counter.
func (e *Engine) ApplyWeek(week int, matchups []Matchup, weeks map[string]TeamWeek) error {
	for _, m := range matchups {
		home, hok := e.teams[m.Home]
		away, aok := e.teams[m.Away]
		if !hok || !aok {
			return fmt.Errorf("%w: matchup %s vs %s", errUnknownTeam, m.Home, m.Away)
		}
		hw, aw := weeks[m.Home], weeks[m.Away]
		home.PointsAgainst += aw.Points
		away.PointsAgainst += hw.Points
		switch {
		case hw.Points > aw.Points:
			home.Wins++
			away.Losses++
		case hw.Points < aw.Points:
			home.Losses++
			away.Wins++
		default:
			home.Ties++
			away.Ties++
		}
	}

	high := ""
	for id, tw := range weeks {
		team, ok := e.teams[id]
		if !ok {
			return fmt.Errorf("%w: %s", errUnknownTeam, id)
		}
		team.PointsFor += tw.Points
		team.PotentialPoints += tw.PotentialPoints
		team.weeklyScores = append(team.weeklyScores, tw.Points)
		for slot, pts := range tw.BySlot {
			team.BySlot[slot] += pts
		}
		for pos, pts := range tw.ByPosition {
			team.ByPosition[pos] += pts
		}
		if high == "" || tw.Points > weeks[high].Points {
			high = id
		}

		// All-play: this team's score against every other score this week,
		// independent of the bracket.
		for other, ow := range weeks {
			if other == id {
				continue
			}
			switch {
			case tw.Points > ow.Points:
				team.AllPlayWins++
			case tw.Points < ow.Points:
				team.AllPlayLosses++
			default:
				team.AllPlayTies++
			}
		}
	}
	if high != "" {
		e.teams[high].WeeklyHighScores++
	}
	return nil
}

// compareRecord is the exact tie-break order: wins desc, losses asc, ties
// desc, points-for desc, all-play-wins desc. The sort using it is stable, so
// ties beyond all-play-wins keep insertion order.
func compareRecord(a, b *SeasonStats) bool {
	if a.Wins != b.Wins {
		return a.Wins > b.Wins
	}
	if a.Losses != b.Losses {
		return a.Losses < b.Losses
	}
	if a.Ties != b.Ties {
		return a.Ties > b.Ties
	}
	if a.PointsFor != b.PointsFor {
		return a.PointsFor > b.PointsFor
	}
	return a.AllPlayWins > b.AllPlayWins
}

// Finalize ranks divisions, assigns playoff seeding, and computes per-team
// score deviation. Returns teams in regular-season rank order.
func (e *Engine) Finalize() ([]*SeasonStats, error) {
	if e.cfg.NumDivisions != 2 && e.cfg.NumDivisions != 4 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedDivisions, e.cfg.NumDivisions)
	}

	divisions := make(map[int][]*SeasonStats)
	for _, id := range e.order {
		t := e.teams[id]
		if len(t.weeklyScores) > 1 {
			t.ScoreStdDev = stat.StdDev(t.weeklyScores, nil)
		}
		divisions[t.Division] = append(divisions[t.Division], t)
	}

	var winners, runnersUp []*SeasonStats
	for _, div := range sortedDivisionKeys(divisions) {
		teams := divisions[div]
		sort.SliceStable(teams, func(i, j int) bool { return compareRecord(teams[i], teams[j]) })
		for i, t := range teams {
			rank := i + 1
			t.DivisionRank = &rank
		}
		teams[0].DivisionWinner = true
		winners = append(winners, teams[0])
		if len(teams) > 1 {
			runnersUp = append(runnersUp, teams[1])
		}
	}

	sort.SliceStable(winners, func(i, j int) bool {
		if winners[i].AllPlayWins != winners[j].AllPlayWins {
			return winners[i].AllPlayWins > winners[j].AllPlayWins
		}
		return winners[i].PointsFor > winners[j].PointsFor
	})

	// Seeds 1-4: in a 4-division league the winners fill them, the top two
	// by all-play wins drawing byes. In a 2-division league the runners-up
	// take seeds 3-4 behind the winners.
	var seeded []*SeasonStats
	switch e.cfg.NumDivisions {
	case 4:
		seeded = winners
	case 2:
		sort.SliceStable(runnersUp, func(i, j int) bool {
			if runnersUp[i].AllPlayWins != runnersUp[j].AllPlayWins {
				return runnersUp[i].AllPlayWins > runnersUp[j].AllPlayWins
			}
			return runnersUp[i].PointsFor > runnersUp[j].PointsFor
		})
		seeded = append(append([]*SeasonStats{}, winners...), runnersUp...)
	}

	inSeeded := make(map[string]bool, len(seeded))
	for i, t := range seeded {
		seed := i + 1
		t.PlayoffSeed = &seed
		t.FirstRoundBye = seed <= 2
		inSeeded[t.TeamID] = true
	}

	// Remaining teams rank by points-for; those inside the playoff cutoff
	// are wildcards.
	var rest []*SeasonStats
	for _, id := range e.order {
		if !inSeeded[id] {
			rest = append(rest, e.teams[id])
		}
	}
	sort.SliceStable(rest, func(i, j int) bool { return rest[i].PointsFor > rest[j].PointsFor })

	ranked := append(append([]*SeasonStats{}, seeded...), rest...)
	for i, t := range ranked {
		rank := i + 1
		t.RegularSeasonRank = &rank
		if rank > len(seeded) && rank <= e.cfg.PlayoffSpots {
			seed := rank
			t.PlayoffSeed = &seed
			t.Wildcard = true
		}
	}
	return ranked, nil
}

func sortedDivisionKeys(divisions map[int][]*SeasonStats) []int {
	keys := make([]int, 0, len(divisions))
	for k := range divisions {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
