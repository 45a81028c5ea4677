package optimizer

import (
	"sort"

	"github.com/mistakia/league-sub002/internal/league"
)

// Player is an optimizer input: a scored (or projected) player.
type Player struct {
	ID       string
	Position league.Position
	Points   float64
}

// Variable is one binary decision in the model, tagged with the position it
// satisfies. Synthetic variables stand in for missing real players at a
// position.
type Variable struct {
	ID        string
	Position  league.Position
	Points    float64
	Synthetic bool
}

// Constraint bounds how many starters a position may contribute: at least
// the fixed single-position slot count, at most that plus every flex slot
// the position is eligible for.
type Constraint struct {
	Min int
	Max int
}

// Model is the integer program: binary variables, per-position bounds, and
// an exact total-starter count.
type Model struct {
	Variables     []Variable
	Constraints   map[league.Position]Constraint
	TotalStarters int
}

// Selection is one selected variable in a solution.
type Selection struct {
	ID        string
	Position  league.Position
	Points    float64
	Synthetic bool
}

// Solution is the solver output: the optimal objective and the selected
// player/position set.
type Solution struct {
	Objective float64
	Selected  []Selection
}

type modelOptions struct {
	baselinePoints map[league.Position]float64
	useBaselines   bool
}

// Option configures model construction.
type Option func(*modelOptions)

// WithBaselinePlayers adds synthetic per-position variables wherever the
// real pool cannot satisfy the minimum constraints, scored at the given
// baseline points (zero when a position is absent from the map). This is the
// feasibility fallback for potential-points runs over thin rosters.
func WithBaselinePlayers(points map[league.Position]float64) Option {
	return func(o *modelOptions) {
		o.baselinePoints = points
		o.useBaselines = true
	}
}

// BuildModel constructs the integer program for a player pool under the
// league's starting-slot configuration. Flex eligibility chains are widened
// in declared order so flexes absorb only the overflow beyond fixed
// single-position minimums.
func BuildModel(players []Player, cfg *league.Config, opts ...Option) *Model {
	var o modelOptions
	for _, opt := range opts {
		opt(&o)
	}

	constraints := make(map[league.Position]Constraint, len(league.Positions))
	for _, pos := range league.Positions {
		c := Constraint{Min: cfg.StarterCount(league.SingleSlot(pos))}
		c.Max = c.Min
		for _, flex := range league.FlexSlots {
			if flex.Eligible(pos) {
				c.Max += cfg.StarterCount(flex)
			}
		}
		constraints[pos] = c
	}

	m := &Model{
		Constraints:   constraints,
		TotalStarters: cfg.TotalStarters(),
	}

	avail := make(map[league.Position]int)
	for _, p := range players {
		m.Variables = append(m.Variables, Variable{ID: p.ID, Position: p.Position, Points: p.Points})
		avail[p.Position]++
	}

	if o.useBaselines {
		addBaselineVariables(m, avail, o.baselinePoints)
	}

	sort.SliceStable(m.Variables, func(i, j int) bool {
		return m.Variables[i].Points > m.Variables[j].Points
	})
	return m
}

// addBaselineVariables pads the pool with synthetic players until every
// minimum is coverable and overall capacity reaches the starter count.
func addBaselineVariables(m *Model, avail map[league.Position]int, points map[league.Position]float64) {
	add := func(pos league.Position) {
		m.Variables = append(m.Variables, Variable{
			ID:        "baseline-" + string(pos),
			Position:  pos,
			Points:    points[pos],
			Synthetic: true,
		})
		avail[pos]++
	}

	for _, pos := range league.Positions {
		for avail[pos] < m.Constraints[pos].Min {
			add(pos)
		}
	}

	capacity := func() int {
		total := 0
		for pos, c := range m.Constraints {
			n := avail[pos]
			if n > c.Max {
				n = c.Max
			}
			total += n
		}
		return total
	}
	for capacity() < m.TotalStarters {
		grew := false
		for _, pos := range league.Positions {
			if avail[pos] < m.Constraints[pos].Max {
				add(pos)
				grew = true
				break
			}
		}
		if !grew {
			// Constraints cap out below the starter count; the model is a
			// configuration defect and the solver will report infeasible.
			return
		}
	}
}
