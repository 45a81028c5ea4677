// Package optimizer solves for the point-maximizing legal starting lineup
// under a league's position and flex constraints.
package optimizer

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mistakia/league-sub002/internal/league"
	"github.com/mistakia/league-sub002/pkg/logger"
	"github.com/mistakia/league-sub002/pkg/metrics"
)

// OptimizeLineup builds a model for the player pool and solves it with the
// default solver.
func OptimizeLineup(players []Player, cfg *league.Config, opts ...Option) (*Solution, error) {
	runID := uuid.New().String()
	log := logger.WithOptimizationContext(runID).WithFields(logrus.Fields{
		"pool_size": len(players),
		"starters":  cfg.TotalStarters(),
	})

	start := time.Now()
	model := BuildModel(players, cfg, opts...)
	solution, err := NewSolver().Solve(model)
	metrics.OptimizerRuns.Inc()
	metrics.OptimizeDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.OptimizerInfeasible.Inc()
		log.WithError(err).Warn("lineup optimization failed")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"objective": solution.Objective,
		"selected":  len(solution.Selected),
	}).Debug("lineup optimized")
	return solution, nil
}

// OptimizeWeeks solves one lineup per week, for season-long projections.
// Weeks are independent and share no mutable state, so callers can shard
// them if the sequential loop is too slow.
func OptimizeWeeks(byWeek map[int][]Player, cfg *league.Config, opts ...Option) (map[int]*Solution, error) {
	solutions := make(map[int]*Solution, len(byWeek))
	for week, players := range byWeek {
		sol, err := OptimizeLineup(players, cfg, opts...)
		if err != nil {
			return nil, err
		}
		solutions[week] = sol
	}
	return solutions, nil
}
