// Package baseline derives the position-by-position replacement level: the
// points of the worst rostered starter and of the best available free agent,
// once every roster's starting slots have been optimally filled and the
// remaining league-wide slots topped up from the free-agent pool.
package baseline

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/mistakia/league-sub002/internal/league"
	"github.com/mistakia/league-sub002/internal/roster"
	"github.com/mistakia/league-sub002/pkg/logger"
)

// Baseline is the replacement-level record for one position. Either pointer
// is nil when no replacement exists; callers must treat nil as "no
// replacement available".
type Baseline struct {
	Starter   *league.Player
	Available *league.Player
}

// TeamRoster is one team's roster snapshot input.
type TeamRoster struct {
	TeamID  string
	Entries []roster.Entry
}

// teamState tracks a single team's hypothetical optimal starters while the
// league-wide fill runs.
type teamState struct {
	id       string
	active   []league.Player
	assigned map[string]league.Slot
	open     []league.Slot
}

// Compute derives baselines for every position in the pool. It is a pure
// function of (pool, rosters, cfg, week); rosters are rebuilt fresh on every
// call so prior starter assignments never leak in.
func Compute(pool []league.Player, rosters []TeamRoster, cfg *league.Config, week int) (map[league.Position]Baseline, error) {
	log := logger.WithLeagueContext("").WithFields(logrus.Fields{
		"week":      week,
		"pool_size": len(pool),
		"teams":     len(rosters),
	})

	sorted := make([]league.Player, len(pool))
	copy(sorted, pool)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Points > sorted[j].Points })

	byID := make(map[string]league.Player, len(sorted))
	for _, p := range sorted {
		byID[p.ID] = p
	}

	rostered := make(map[string]bool)
	teams := make([]*teamState, 0, len(rosters))
	for _, tr := range rosters {
		// Instantiate the aggregate so snapshot legality and extension
		// salary rules apply before any starter is considered.
		r, err := roster.New(tr.Entries, cfg, week)
		if err != nil {
			return nil, err
		}
		ts := &teamState{id: tr.TeamID, assigned: make(map[string]league.Slot)}
		for _, e := range r.Active() {
			rostered[e.PlayerID] = true
			if p, ok := byID[e.PlayerID]; ok {
				ts.active = append(ts.active, p)
			}
		}
		sort.SliceStable(ts.active, func(i, j int) bool { return ts.active[i].Points > ts.active[j].Points })
		teams = append(teams, ts)
	}

	// Phase 1: each roster greedily fills its own starting slots in league
	// slot order, always taking the highest-scoring eligible player.
	for _, ts := range teams {
		for _, slot := range league.StartingSlots {
			for n := 0; n < cfg.StarterCount(slot); n++ {
				if best := ts.bestEligible(slot); best != nil {
					ts.assigned[best.ID] = slot
				} else {
					ts.open = append(ts.open, slot)
				}
			}
		}
	}

	// Phase 2: top up remaining league-wide slots from the free-agent pool,
	// best player first, evicting the worst bench player when a roster is at
	// active capacity.
	freeAgents := make([]league.Player, 0, len(sorted))
	for _, p := range sorted {
		if !rostered[p.ID] {
			freeAgents = append(freeAgents, p)
		}
	}
	freeAgents = fillOpenSlots(teams, freeAgents, cfg)

	// Phase 3: group starters by slot and take the worst last-ranked starter
	// among each position's eligible slot groups.
	bySlot := make(map[league.Slot][]league.Player)
	for _, ts := range teams {
		for id, slot := range ts.assigned {
			bySlot[slot] = append(bySlot[slot], byID[id])
		}
	}
	for slot := range bySlot {
		group := bySlot[slot]
		sort.SliceStable(group, func(i, j int) bool { return group[i].Points > group[j].Points })
	}

	baselines := make(map[league.Position]Baseline)
	for _, pos := range league.Positions {
		b := Baseline{Available: bestAtPosition(freeAgents, pos)}
		starter := worstStarter(bySlot, pos)
		if starter == nil {
			starter = b.Available
		}
		b.Starter = starter
		baselines[pos] = b
	}

	log.WithField("free_agents_left", len(freeAgents)).Debug("baseline computation complete")
	return baselines, nil
}

// bestEligible returns the team's highest-scoring unassigned active player
// eligible for slot.
func (ts *teamState) bestEligible(slot league.Slot) *league.Player {
	for i := range ts.active {
		p := &ts.active[i]
		if _, taken := ts.assigned[p.ID]; taken {
			continue
		}
		if slot.Eligible(p.Position) {
			return p
		}
	}
	return nil
}

// fillOpenSlots assigns free agents to teams' unfilled starting slots until
// the league-wide starter count is exhausted, returning the free agents that
// remain unassigned (including any bench players evicted to make room).
// Each round places the best remaining free agent that fits any open slot,
// so an evicted bench player re-enters consideration immediately.
func fillOpenSlots(teams []*teamState, freeAgents []league.Player, cfg *league.Config) []league.Player {
	for {
		faIdx, slotIdx := -1, -1
		var target *teamState
	scan:
		for i := range freeAgents {
			for _, ts := range teams {
				for j, slot := range ts.open {
					if slot.Eligible(freeAgents[i].Position) {
						faIdx, slotIdx, target = i, j, ts
						break scan
					}
				}
			}
		}
		if faIdx < 0 {
			return freeAgents
		}
		fa := freeAgents[faIdx]
		freeAgents = append(freeAgents[:faIdx], freeAgents[faIdx+1:]...)
		if evicted := target.makeRoom(cfg); evicted != nil {
			freeAgents = insertByPoints(freeAgents, *evicted)
		}
		target.active = append(target.active, fa)
		target.assigned[fa.ID] = target.open[slotIdx]
		target.open = append(target.open[:slotIdx], target.open[slotIdx+1:]...)
	}
}

// makeRoom evicts the team's worst unassigned bench player when the roster
// is at active capacity. Returns the evicted player, or nil when room
// already exists.
func (ts *teamState) makeRoom(cfg *league.Config) *league.Player {
	if len(ts.active) < cfg.ActiveRosterLimit() {
		return nil
	}
	worst := -1
	for i := range ts.active {
		if _, starting := ts.assigned[ts.active[i].ID]; starting {
			continue
		}
		if worst < 0 || ts.active[i].Points < ts.active[worst].Points {
			worst = i
		}
	}
	if worst < 0 {
		return nil
	}
	evicted := ts.active[worst]
	ts.active = append(ts.active[:worst], ts.active[worst+1:]...)
	return &evicted
}

// insertByPoints keeps the free-agent list in points-descending order.
func insertByPoints(players []league.Player, p league.Player) []league.Player {
	at := sort.Search(len(players), func(i int) bool { return players[i].Points < p.Points })
	players = append(players, league.Player{})
	copy(players[at+1:], players[at:])
	players[at] = p
	return players
}

func bestAtPosition(players []league.Player, pos league.Position) *league.Player {
	for i := range players {
		if players[i].Position == pos {
			p := players[i]
			return &p
		}
	}
	return nil
}

// worstStarter finds the lowest-scoring last-ranked starter among the slot
// groups eligible for pos.
func worstStarter(bySlot map[league.Slot][]league.Player, pos league.Position) *league.Player {
	var worst *league.Player
	for slot, group := range bySlot {
		if len(group) == 0 || !slot.Eligible(pos) {
			continue
		}
		last := group[len(group)-1]
		if worst == nil || last.Points < worst.Points {
			p := last
			worst = &p
		}
	}
	return worst
}
