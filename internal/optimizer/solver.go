package optimizer

import (
	"errors"

	"github.com/mistakia/league-sub002/internal/league"
)

// ErrInfeasible reports a model whose minimum constraints cannot be
// satisfied by the available variables. This is a caller configuration
// defect; no automatic relaxation is attempted.
var ErrInfeasible = errors.New("optimizer model infeasible")

// Solver solves a built Model. The default implementation is exact; the
// interface exists so an external MIP binding can replace it.
type Solver interface {
	Solve(m *Model) (*Solution, error)
}

// NewSolver returns the default exact branch-and-bound solver.
func NewSolver() Solver { return &branchBoundSolver{} }

// branchBoundSolver explores include/exclude decisions over the
// points-descending variable list, pruning on an optimistic remaining-points
// bound and on per-position feasibility.
type branchBoundSolver struct{}

type searchState struct {
	m *Model

	// prefix[i] is the sum of the best i variable points; since variables
	// are sorted descending, prefix[k+need]-prefix[k] bounds what any `need`
	// further picks can add.
	prefix []float64

	// remaining[pos][i] counts variables at pos in vars[i:].
	remaining map[league.Position][]int

	selected     []int
	bestSelected []int
	best         float64
	found        bool
}

func (s *branchBoundSolver) Solve(m *Model) (*Solution, error) {
	n := len(m.Variables)
	st := &searchState{
		m:         m,
		prefix:    make([]float64, n+1),
		remaining: make(map[league.Position][]int, len(m.Constraints)),
		best:      0,
	}
	for i, v := range m.Variables {
		st.prefix[i+1] = st.prefix[i] + v.Points
	}
	for pos := range m.Constraints {
		st.remaining[pos] = make([]int, n+1)
	}
	for _, p := range league.Positions {
		if _, ok := st.remaining[p]; !ok {
			st.remaining[p] = make([]int, n+1)
		}
	}
	for i := n - 1; i >= 0; i-- {
		pos := m.Variables[i].Position
		for p, counts := range st.remaining {
			counts[i] = counts[i+1]
			if p == pos {
				counts[i]++
			}
		}
	}

	counts := make(map[league.Position]int)
	st.search(0, 0, 0, counts)

	if !st.found {
		return nil, ErrInfeasible
	}

	sol := &Solution{Objective: st.best, Selected: make([]Selection, 0, len(st.bestSelected))}
	for _, idx := range st.bestSelected {
		v := m.Variables[idx]
		sol.Selected = append(sol.Selected, Selection{
			ID:        v.ID,
			Position:  v.Position,
			Points:    v.Points,
			Synthetic: v.Synthetic,
		})
	}
	return sol, nil
}

func (st *searchState) search(i, picked int, points float64, counts map[league.Position]int) {
	need := st.m.TotalStarters - picked
	if need == 0 {
		for pos, c := range st.m.Constraints {
			if counts[pos] < c.Min {
				return
			}
		}
		if !st.found || points > st.best {
			st.found = true
			st.best = points
			st.bestSelected = append(st.bestSelected[:0], st.selected...)
		}
		return
	}
	if i+need > len(st.m.Variables) {
		return
	}

	// Optimistic bound: even taking the next `need` best variables cannot
	// beat the incumbent.
	if st.found && points+st.prefix[i+need]-st.prefix[i] <= st.best {
		return
	}

	// Feasibility: every unmet minimum must be coverable by what remains,
	// and the deficits must fit in the picks left.
	deficit := 0
	for pos, c := range st.m.Constraints {
		if gap := c.Min - counts[pos]; gap > 0 {
			if st.remaining[pos][i] < gap {
				return
			}
			deficit += gap
		}
	}
	if deficit > need {
		return
	}

	v := st.m.Variables[i]
	if counts[v.Position] < st.m.Constraints[v.Position].Max {
		counts[v.Position]++
		st.selected = append(st.selected, i)
		st.search(i+1, picked+1, points+v.Points, counts)
		st.selected = st.selected[:len(st.selected)-1]
		counts[v.Position]--
	}
	st.search(i+1, picked, points, counts)
}
