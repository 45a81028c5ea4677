// Package simulator Monte-Carlo projects the remainder of a season: weekly
// scores drawn from per-team normal distributions, division races, byes,
// wildcards and a three-round playoff bracket, accumulated into per-team
// odds.
package simulator

import (
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	xrand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/mistakia/league-sub002/internal/league"
	"github.com/mistakia/league-sub002/internal/standings"
	"github.com/mistakia/league-sub002/pkg/logger"
	"github.com/mistakia/league-sub002/pkg/metrics"
)

const (
	// DefaultTrials is the simulation depth when the caller does not set one.
	DefaultTrials = 10000

	// defaultScoreStdDev is the fixed weekly score variance applied to every
	// team's distribution.
	defaultScoreStdDev = 25.0
)

// TeamState is a team's season position entering the simulation: current
// record plus its optimizer-derived weekly baseline score.
type TeamState struct {
	TeamID      string
	Division    int
	Wins        int
	Losses      int
	Ties        int
	PointsFor   float64
	AllPlayWins int

	// Baseline centers the team's weekly score distribution, normally the
	// optimal-lineup total from the optimizer.
	Baseline float64
}

// SeasonState is the read-only simulation input.
type SeasonState struct {
	Teams     []TeamState
	Remaining []standings.Matchup
}

// Config controls simulation depth and reproducibility.
type Config struct {
	Trials  int
	Workers int
	// Seed drives the pseudorandom sources; zero falls back to time-based
	// seeding. A fixed seed with a fixed worker count reproduces results
	// exactly.
	Seed        int64
	ScoreStdDev float64
}

// Counters accumulate per-team outcomes across trials.
type Counters struct {
	PlayoffAppearances      int
	DivisionTitles          int
	ByeAppearances          int
	ChampionshipAppearances int
	Championships           int
}

// Odds are counters normalized by trial count.
type Odds struct {
	Playoff                float64
	DivisionTitle          float64
	Bye                    float64
	ChampionshipAppearance float64
	Championship           float64
}

// Result holds accumulated counters for every team.
type Result struct {
	Trials   int
	Counters map[string]*Counters
}

// Odds converts counters to probabilities (count / trials).
func (r *Result) Odds() map[string]Odds {
	odds := make(map[string]Odds, len(r.Counters))
	n := float64(r.Trials)
	for id, c := range r.Counters {
		odds[id] = Odds{
			Playoff:                float64(c.PlayoffAppearances) / n,
			DivisionTitle:          float64(c.DivisionTitles) / n,
			Bye:                    float64(c.ByeAppearances) / n,
			ChampionshipAppearance: float64(c.ChampionshipAppearances) / n,
			Championship:           float64(c.Championships) / n,
		}
	}
	return odds
}

// Simulate runs the Monte Carlo projection. Trials are sharded across
// workers, each with its own derived random source and its own accumulator;
// inputs are never written.
func Simulate(state SeasonState, cfg *league.Config, simCfg Config) (*Result, error) {
	if cfg.NumDivisions != 2 && cfg.NumDivisions != 4 {
		return nil, fmt.Errorf("%w: %d", standings.ErrUnsupportedDivisions, cfg.NumDivisions)
	}
	if len(state.Teams) == 0 {
		return nil, fmt.Errorf("simulate: no teams")
	}

	trials := simCfg.Trials
	if trials <= 0 {
		trials = DefaultTrials
	}
	workers := simCfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > trials {
		workers = trials
	}
	stdDev := simCfg.ScoreStdDev
	if stdDev <= 0 {
		stdDev = defaultScoreStdDev
	}
	seed := simCfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	simID := uuid.New().String()
	log := logger.WithSimulationContext(simID, trials).WithFields(logrus.Fields{
		"teams":   len(state.Teams),
		"workers": workers,
	})
	log.Info("starting season simulation")
	start := time.Now()

	sim := newSeasonSim(state, cfg, stdDev)

	results := make([]map[string]*Counters, workers)
	var wg sync.WaitGroup
	per := trials / workers
	extra := trials % workers
	for w := 0; w < workers; w++ {
		n := per
		if w < extra {
			n++
		}
		wg.Add(1)
		go func(w, n int) {
			defer wg.Done()
			src := xrand.NewSource(uint64(seed) + uint64(w)*0x9e3779b97f4a7c15)
			acc := sim.emptyCounters()
			for t := 0; t < n; t++ {
				sim.runTrial(src, acc)
			}
			results[w] = acc
		}(w, n)
	}
	wg.Wait()

	result := &Result{Trials: trials, Counters: sim.emptyCounters()}
	for _, acc := range results {
		for id, c := range acc {
			total := result.Counters[id]
			total.PlayoffAppearances += c.PlayoffAppearances
			total.DivisionTitles += c.DivisionTitles
			total.ByeAppearances += c.ByeAppearances
			total.ChampionshipAppearances += c.ChampionshipAppearances
			total.Championships += c.Championships
		}
	}

	metrics.SimulationTrials.Add(float64(trials))
	metrics.SimulationDuration.Observe(time.Since(start).Seconds())
	log.WithField("elapsed", time.Since(start)).Info("season simulation complete")
	return result, nil
}

// seasonSim is the immutable trial context: team index, per-week matchup
// schedule and score distributions.
type seasonSim struct {
	cfg      *league.Config
	teams    []TeamState
	index    map[string]int
	weeks    []int
	byWeek   map[int][]standings.Matchup
	stdDev   float64
	playoffs int
}

func newSeasonSim(state SeasonState, cfg *league.Config, stdDev float64) *seasonSim {
	s := &seasonSim{
		cfg:      cfg,
		teams:    state.Teams,
		index:    make(map[string]int, len(state.Teams)),
		byWeek:   make(map[int][]standings.Matchup),
		stdDev:   stdDev,
		playoffs: cfg.PlayoffSpots,
	}
	for i, t := range state.Teams {
		s.index[t.TeamID] = i
	}
	for _, m := range state.Remaining {
		if len(s.byWeek[m.Week]) == 0 {
			s.weeks = append(s.weeks, m.Week)
		}
		s.byWeek[m.Week] = append(s.byWeek[m.Week], m)
	}
	sort.Ints(s.weeks)
	return s
}

func (s *seasonSim) emptyCounters() map[string]*Counters {
	acc := make(map[string]*Counters, len(s.teams))
	for _, t := range s.teams {
		acc[t.TeamID] = &Counters{}
	}
	return acc
}

// trialRecord is one team's mutable record inside a single trial.
type trialRecord struct {
	wins, losses, ties int
	pointsFor          float64
	allPlayWins        int
}

func (s *seasonSim) sample(src xrand.Source, team int) float64 {
	dist := distuv.Normal{Mu: s.teams[team].Baseline, Sigma: s.stdDev, Src: src}
	return dist.Rand()
}

// runTrial plays out the remaining weeks and the playoff bracket once,
// writing only into acc.
func (s *seasonSim) runTrial(src xrand.Source, acc map[string]*Counters) {
	records := make([]trialRecord, len(s.teams))
	for i, t := range s.teams {
		records[i] = trialRecord{
			wins:        t.Wins,
			losses:      t.Losses,
			ties:        t.Ties,
			pointsFor:   t.PointsFor,
			allPlayWins: t.AllPlayWins,
		}
	}

	scores := make([]float64, len(s.teams))
	playing := make([]int, 0, len(s.teams))
	for _, week := range s.weeks {
		playing = playing[:0]
		for _, m := range s.byWeek[week] {
			hi, ai := s.index[m.Home], s.index[m.Away]
			scores[hi] = s.sample(src, hi)
			scores[ai] = s.sample(src, ai)
			playing = append(playing, hi, ai)
		}
		for _, m := range s.byWeek[week] {
			hi, ai := s.index[m.Home], s.index[m.Away]
			records[hi].pointsFor += scores[hi]
			records[ai].pointsFor += scores[ai]
			switch {
			case scores[hi] > scores[ai]:
				records[hi].wins++
				records[ai].losses++
			case scores[hi] < scores[ai]:
				records[hi].losses++
				records[ai].wins++
			default:
				records[hi].ties++
				records[ai].ties++
			}
		}
		for _, i := range playing {
			for _, j := range playing {
				if i != j && scores[i] > scores[j] {
					records[i].allPlayWins++
				}
			}
		}
	}

	winners := s.divisionWinners(records)
	sort.SliceStable(winners, func(a, b int) bool {
		if records[winners[a]].allPlayWins != records[winners[b]].allPlayWins {
			return records[winners[a]].allPlayWins > records[winners[b]].allPlayWins
		}
		return records[winners[a]].pointsFor > records[winners[b]].pointsFor
	})

	isWinner := make(map[int]bool, len(winners))
	for _, w := range winners {
		isWinner[w] = true
		acc[s.teams[w].TeamID].DivisionTitles++
	}

	// Wildcards: remaining teams by points-for fill the playoff field.
	var rest []int
	for i := range s.teams {
		if !isWinner[i] {
			rest = append(rest, i)
		}
	}
	sort.SliceStable(rest, func(a, b int) bool {
		return records[rest[a]].pointsFor > records[rest[b]].pointsFor
	})
	field := append(append([]int{}, winners...), rest...)
	if len(field) > s.playoffs {
		field = field[:s.playoffs]
	}
	for _, i := range field {
		acc[s.teams[i].TeamID].PlayoffAppearances++
	}

	s.runBracket(src, field, acc)
}

// runBracket plays the fixed three-round bracket: seeds 1-2 draw byes, the
// remaining field plays a single-week wildcard round with the top two scores
// advancing, then a championship round decided on a two-week combined score.
func (s *seasonSim) runBracket(src xrand.Source, field []int, acc map[string]*Counters) {
	if len(field) < 2 {
		return
	}
	byes := field[:2]
	for _, i := range byes {
		acc[s.teams[i].TeamID].ByeAppearances++
	}

	wildcard := field[2:]
	advancers := make([]int, len(wildcard))
	copy(advancers, wildcard)
	if len(wildcard) > 2 {
		wcScores := make(map[int]float64, len(wildcard))
		for _, i := range wildcard {
			wcScores[i] = s.sample(src, i)
		}
		sort.SliceStable(advancers, func(a, b int) bool {
			return wcScores[advancers[a]] > wcScores[advancers[b]]
		})
		advancers = advancers[:2]
	}

	finalists := append(append([]int{}, byes...), advancers...)
	champ, best := -1, 0.0
	for _, i := range finalists {
		acc[s.teams[i].TeamID].ChampionshipAppearances++
		combined := s.sample(src, i) + s.sample(src, i)
		if champ < 0 || combined > best {
			champ, best = i, combined
		}
	}
	acc[s.teams[champ].TeamID].Championships++
}

// divisionWinners picks each division's winner by wins, ties, then
// points-for.
func (s *seasonSim) divisionWinners(records []trialRecord) []int {
	best := make(map[int]int)
	for i, t := range s.teams {
		cur, ok := best[t.Division]
		if !ok || s.better(records, i, cur) {
			best[t.Division] = i
		}
	}
	divs := make([]int, 0, len(best))
	for d := range best {
		divs = append(divs, d)
	}
	sort.Ints(divs)
	winners := make([]int, 0, len(divs))
	for _, d := range divs {
		winners = append(winners, best[d])
	}
	return winners
}

func (s *seasonSim) better(records []trialRecord, a, b int) bool {
	ra, rb := records[a], records[b]
	if ra.wins != rb.wins {
		return ra.wins > rb.wins
	}
	if ra.ties != rb.ties {
		return ra.ties > rb.ties
	}
	return ra.pointsFor > rb.pointsFor
}
