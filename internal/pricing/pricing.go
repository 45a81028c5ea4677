// Package pricing converts points above replacement level into a
// league-normalized salary-cap dollar value. Money math runs through
// decimals so the cap-conservation property survives rounding.
package pricing

import (
	"math"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/mistakia/league-sub002/internal/baseline"
	"github.com/mistakia/league-sub002/internal/league"
	"github.com/mistakia/league-sub002/pkg/logger"
)

// NoValue marks a player the pricing model declines to value. Kickers are
// always assigned it: replacement level at the position is too volatile to
// price against.
const NoValue = -999.0

// ValuedPlayer is a player annotated with points-added and pricing output.
type ValuedPlayer struct {
	ID       string
	Position league.Position

	// WeekPoints is the player's scored points per week.
	WeekPoints map[int]float64

	// PointsAdded stores the per-week surplus over the applicable baseline,
	// negatives included. TotalPointsAdded is the sum used for pricing.
	PointsAdded      map[int]float64
	TotalPointsAdded float64

	// ContractValue is the player's prior contract salary, zero when none.
	ContractValue int

	MarketSalary              int
	SalaryAdjustedPointsAdded float64
}

// CalculateValues fills each player's per-week and total points-added
// against the weekly baselines and returns the league-wide total of positive
// points-added.
//
// A configured historical baseline override takes precedence over the
// computed starter baseline for its position.
func CalculateValues(players []*ValuedPlayer, baselines map[int]map[league.Position]baseline.Baseline, cfg *league.Config) float64 {
	total := 0.0
	for _, p := range players {
		p.PointsAdded = make(map[int]float64, len(p.WeekPoints))
		p.TotalPointsAdded = 0

		if p.Position == league.K {
			for week := range p.WeekPoints {
				p.PointsAdded[week] = NoValue
			}
			p.TotalPointsAdded = NoValue
			continue
		}

		for week, points := range p.WeekPoints {
			base, ok := baselinePoints(baselines[week], p.Position, cfg)
			if !ok {
				continue
			}
			p.PointsAdded[week] = points - base
			p.TotalPointsAdded += points - base
		}
		if p.TotalPointsAdded > 0 {
			total += p.TotalPointsAdded
		}
	}

	logger.GetLogger().WithFields(logrus.Fields{
		"players":            len(players),
		"total_points_added": total,
	}).Debug("player values calculated")
	return total
}

// CalculateValuesRestOfSeason recomputes totals over weeks >= currentWeek,
// excluding negative weekly values from the sum while leaving them stored,
// and returns the league-wide positive total for repricing against a
// remaining-season cap pool.
func CalculateValuesRestOfSeason(players []*ValuedPlayer, currentWeek int) float64 {
	total := 0.0
	for _, p := range players {
		if p.TotalPointsAdded == NoValue {
			continue
		}
		p.TotalPointsAdded = 0
		for week, pa := range p.PointsAdded {
			if week < currentWeek || pa <= 0 {
				continue
			}
			p.TotalPointsAdded += pa
		}
		total += p.TotalPointsAdded
	}
	return total
}

// CalculatePrices derives the linear rate capPool / totalPointsAdded and
// prices every player with positive points-added at it. A zero or negative
// total yields a zero rate rather than NaN: no surplus value means nothing
// is worth paying for yet.
func CalculatePrices(players []*ValuedPlayer, totalPointsAdded float64, capPool int) {
	rate := decimal.Zero
	if totalPointsAdded > 0 {
		rate = decimal.NewFromInt(int64(capPool)).Div(decimal.NewFromFloat(totalPointsAdded))
	}

	for _, p := range players {
		p.MarketSalary = 0
		p.SalaryAdjustedPointsAdded = 0
		if p.TotalPointsAdded <= 0 || p.TotalPointsAdded == NoValue || rate.IsZero() {
			continue
		}
		pa := decimal.NewFromFloat(p.TotalPointsAdded)
		p.MarketSalary = int(rate.Mul(pa).Round(0).IntPart())
		if p.ContractValue > 0 {
			// Net out over/under-payment relative to market rate, floored
			// at zero.
			paidFor, _ := decimal.NewFromInt(int64(p.ContractValue)).Div(rate).Float64()
			p.SalaryAdjustedPointsAdded = math.Max(0, p.TotalPointsAdded-paidFor)
		}
	}
}

// RemainingCapPool prorates the league-wide cap pool to the weeks left in
// the regular season.
func RemainingCapPool(cfg *league.Config, currentWeek int) int {
	if cfg.RegularSeasonWeeks <= 0 {
		return 0
	}
	remaining := cfg.RegularSeasonWeeks - currentWeek + 1
	if remaining < 0 {
		remaining = 0
	}
	pool := decimal.NewFromInt(int64(cfg.Cap * cfg.NumTeams)).
		Mul(decimal.NewFromInt(int64(remaining))).
		Div(decimal.NewFromInt(int64(cfg.RegularSeasonWeeks)))
	return int(pool.Round(0).IntPart())
}

// baselinePoints resolves the applicable baseline for a position: the
// historical override when configured, else the computed starter baseline.
func baselinePoints(weekBaselines map[league.Position]baseline.Baseline, pos league.Position, cfg *league.Config) (float64, bool) {
	if override, ok := cfg.BaselineOverrides[pos]; ok {
		return override, true
	}
	b, ok := weekBaselines[pos]
	if !ok || b.Starter == nil {
		return 0, false
	}
	return b.Starter.Points, true
}
