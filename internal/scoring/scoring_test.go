package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mistakia/league-sub002/internal/league"
)

func scoringConfig() *league.Config {
	return &league.Config{
		Scoring: league.ScoringRules{
			Weights: map[string]float64{
				"py":   0.04,
				"tdp":  4,
				"ints": -1,
				"ry":   0.1,
				"tdr":  6,
				"rec":  0.5,
				"recy": 0.1,
				"fuml": -2,
				"fg19": 3, "fg29": 3, "fg39": 3, "fg49": 4, "fg50": 5,
				"xpm": 1,
				"dsk": 1, "dint": 2, "dff": 1, "drf": 1, "dtd": 6, "dsf": 2, "dblk": 2,
				"dpa": -0.2,
				"dya": -0.01,
			},
			ReceptionRates:     map[league.Position]float64{league.RB: 1.0},
			PointsAllowedFloor: 17,
			YardsAllowedFloor:  300,
		},
	}
}

func TestPoints_RushingLine(t *testing.T) {
	// ry 50 at 0.1 plus one rushing TD at 6.
	cfg := scoringConfig()
	result := Points(league.StatLine{"ry": 50, "tdr": 1}, league.RB, cfg)

	assert.InDelta(t, 11.0, result.Total, 1e-9)
	assert.InDelta(t, 5.0, result.ByStat["ry"], 1e-9)
	assert.InDelta(t, 6.0, result.ByStat["tdr"], 1e-9)
}

func TestPoints_MissingStatsDefaultZero(t *testing.T) {
	cfg := scoringConfig()
	result := Points(league.StatLine{}, league.QB, cfg)
	assert.Zero(t, result.Total)

	result = Points(league.StatLine{"unknown_stat": 10}, league.QB, cfg)
	assert.Zero(t, result.Total, "unknown stat categories carry no weight")
}

func TestPoints_PositionSpecificReceptions(t *testing.T) {
	cfg := scoringConfig()

	rb := Points(league.StatLine{"rec": 4}, league.RB, cfg)
	assert.InDelta(t, 4.0, rb.Total, 1e-9, "RB reception override applies")

	wr := Points(league.StatLine{"rec": 4}, league.WR, cfg)
	assert.InDelta(t, 2.0, wr.Total, 1e-9, "generic rate applies without an override")
}

func TestPoints_KickerBuckets(t *testing.T) {
	cfg := scoringConfig()
	result := Points(league.StatLine{"fg29": 1, "fg50": 2, "xpm": 3}, league.K, cfg)
	assert.InDelta(t, 3+10+3, result.Total, 1e-9)
}

func TestPoints_KickerYardsFormulaSubstitutes(t *testing.T) {
	cfg := scoringConfig()
	// With fgy present, yards/10 replaces the bucketed table entirely.
	result := Points(league.StatLine{"fgy": 85, "fg49": 1, "xpm": 2}, league.K, cfg)
	assert.InDelta(t, 8.5+2, result.Total, 1e-9)
	assert.Zero(t, result.ByStat["fg49"])
}

func TestPoints_KickerYardsIgnoredForOtherPositions(t *testing.T) {
	cfg := scoringConfig()
	result := Points(league.StatLine{"fgy": 85}, league.WR, cfg)
	assert.Zero(t, result.Total)
}

func TestPoints_DefenseThresholds(t *testing.T) {
	cfg := scoringConfig()

	tests := []struct {
		name     string
		stats    league.StatLine
		expected float64
	}{
		{"events only", league.StatLine{"dsk": 3, "dint": 2, "dtd": 1}, 3 + 4 + 6},
		{"points allowed under floor", league.StatLine{"dpa": 10}, 0},
		{"points allowed over floor", league.StatLine{"dpa": 27}, -2.0},
		{"yards allowed under floor", league.StatLine{"dya": 250}, 0},
		{"yards allowed over floor", league.StatLine{"dya": 400}, -1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Points(tt.stats, league.DST, cfg)
			assert.InDelta(t, tt.expected, result.Total, 1e-9)
		})
	}
}

func TestPoints_Pure(t *testing.T) {
	cfg := scoringConfig()
	stats := league.StatLine{"ry": 50, "tdr": 1}
	first := Points(stats, league.RB, cfg)
	second := Points(stats, league.RB, cfg)
	assert.Equal(t, first, second)
	assert.InDelta(t, 50.0, stats["ry"], 1e-9, "input stat line is untouched")
}
