// Package scoring converts raw stat lines into fantasy points under a
// league's scoring configuration. All functions are pure.
package scoring

import (
	"math"
	"strings"

	"github.com/mistakia/league-sub002/internal/league"
)

// PointsResult is the per-stat point breakdown for one (StatLine, position,
// config) triple, plus the total. Immutable once computed.
type PointsResult struct {
	ByStat map[string]float64
	Total  float64
}

// Stat codes with non-linear handling.
const (
	statReception     = "rec"
	statFGYards       = "fgy"
	statPointsAllowed = "dpa"
	statYardsAllowed  = "dya"
)

func isFGBucket(stat string) bool {
	return strings.HasPrefix(stat, "fg") && stat != statFGYards
}

// Points scores a stat line for a player at pos. Missing stat keys default
// to zero; there are no error conditions.
//
// Receptions use the position-specific rate with fallback to the generic
// rate. Kicking uses the distance-bucketed table unless a single "fgy" stat
// is present, in which case yards/10 substitutes for the buckets. The
// defense points-allowed and yards-allowed terms penalize only the excess
// above their configured floors.
func Points(stats league.StatLine, pos league.Position, cfg *league.Config) PointsResult {
	rules := cfg.Scoring
	result := PointsResult{ByStat: make(map[string]float64, len(stats))}

	useYardsFormula := pos == league.K && stats.Has(statFGYards)

	for stat, count := range stats {
		var pts float64
		switch {
		case stat == statReception:
			pts = count * rules.ReceptionRate(pos)
		case stat == statFGYards:
			if useYardsFormula {
				pts = count / 10
			}
		case isFGBucket(stat) && useYardsFormula:
			// yards formula substitutes for the bucketed table
		case stat == statPointsAllowed:
			pts = math.Max(0, count-rules.PointsAllowedFloor) * rules.Weights[stat]
		case stat == statYardsAllowed:
			pts = math.Max(0, count-rules.YardsAllowedFloor) * rules.Weights[stat]
		default:
			pts = count * rules.Weights[stat]
		}
		result.ByStat[stat] = pts
		result.Total += pts
	}

	return result
}
