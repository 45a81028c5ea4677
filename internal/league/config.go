package league

import (
	"errors"
	"fmt"
)

// StatLine maps stat-category codes to counts for one player in one week.
// Missing keys read as zero.
type StatLine map[string]float64

// Has reports whether a stat category was recorded at all, which is distinct
// from a recorded zero (the kicker yards formula keys off presence).
func (s StatLine) Has(stat string) bool {
	_, ok := s[stat]
	return ok
}

// Player is a scored player for some scope (usually one week).
type Player struct {
	ID       string
	Position Position
	Points   float64
}

// ScoringRules holds the league's per-stat scoring weights.
type ScoringRules struct {
	// Weights maps stat codes to points per unit, e.g. {"ry": 0.1, "tdr": 6}.
	Weights map[string]float64 `mapstructure:"weights"`

	// ReceptionRates overrides the generic "rec" weight for specific
	// positions (e.g. a running-back-specific reception rate).
	ReceptionRates map[Position]float64 `mapstructure:"reception_rates"`

	// Defense/special-teams thresholds: only the excess of points-allowed and
	// yards-allowed above these floors is penalized, at the "dpa" and "dya"
	// weights respectively.
	PointsAllowedFloor float64 `mapstructure:"points_allowed_floor"`
	YardsAllowedFloor  float64 `mapstructure:"yards_allowed_floor"`
}

// ReceptionRate returns the per-reception weight for a position, falling back
// to the generic rate.
func (r ScoringRules) ReceptionRate(pos Position) float64 {
	if rate, ok := r.ReceptionRates[pos]; ok {
		return rate
	}
	return r.Weights["rec"]
}

// Config is a league's immutable settings. All engine components treat it as
// read-only.
type Config struct {
	// Starters maps each starting slot to its per-team count. Slots absent
	// from the map have a count of zero. Iteration order for fill logic is
	// StartingSlots, never the map itself.
	Starters map[Slot]int `mapstructure:"starters"`

	Bench         int `mapstructure:"bench"`
	PracticeSquad int `mapstructure:"practice_squad"`
	Reserve       int `mapstructure:"reserve"`

	Cap    int `mapstructure:"cap"`
	MinBid int `mapstructure:"min_bid"`

	Scoring ScoringRules `mapstructure:"scoring"`

	// TagLimits caps per-team usage of contractual tags. Tags absent from the
	// map are unlimited.
	TagLimits map[Tag]int `mapstructure:"tag_limits"`

	// FranchiseAmounts is the position-indexed franchise tag salary.
	FranchiseAmounts map[Position]int `mapstructure:"franchise_amounts"`

	// ExtensionIncrement is added to a regular-tagged player's salary once
	// per prior extension when the roster is built before the deadline week.
	ExtensionIncrement    int `mapstructure:"extension_increment"`
	ExtensionDeadlineWeek int `mapstructure:"extension_deadline_week"`

	NumTeams           int `mapstructure:"num_teams"`
	NumDivisions       int `mapstructure:"num_divisions"`
	RegularSeasonWeeks int `mapstructure:"regular_season_weeks"`
	PlayoffSpots       int `mapstructure:"playoff_spots"`

	// BaselineOverrides pins a position's replacement level to a historical
	// league-specific value instead of the computed starter baseline.
	BaselineOverrides map[Position]float64 `mapstructure:"baseline_overrides"`
}

var (
	ErrInvalidConfig = errors.New("invalid league config")
)

// Validate checks the config at load time so downstream components never
// have to re-check slot names or division counts.
func (c *Config) Validate() error {
	if c.Cap <= 0 {
		return fmt.Errorf("%w: cap must be positive, got %d", ErrInvalidConfig, c.Cap)
	}
	if c.NumTeams < 2 {
		return fmt.Errorf("%w: num_teams must be at least 2, got %d", ErrInvalidConfig, c.NumTeams)
	}
	if c.NumDivisions != 2 && c.NumDivisions != 4 {
		return fmt.Errorf("%w: num_divisions must be 2 or 4, got %d", ErrInvalidConfig, c.NumDivisions)
	}
	total := 0
	for slot, count := range c.Starters {
		if !slot.IsStarting() {
			return fmt.Errorf("%w: %q is not a starting slot", ErrInvalidConfig, slot)
		}
		if count < 0 {
			return fmt.Errorf("%w: negative count for slot %q", ErrInvalidConfig, slot)
		}
		total += count
	}
	if total == 0 {
		return fmt.Errorf("%w: at least one starting slot is required", ErrInvalidConfig)
	}
	if c.Bench < 0 || c.PracticeSquad < 0 || c.Reserve < 0 {
		return fmt.Errorf("%w: negative roster tier capacity", ErrInvalidConfig)
	}
	if c.PlayoffSpots > c.NumTeams {
		return fmt.Errorf("%w: playoff_spots exceeds num_teams", ErrInvalidConfig)
	}
	return nil
}

// StarterCount returns the per-team count for a starting slot.
func (c *Config) StarterCount(slot Slot) int { return c.Starters[slot] }

// TotalStarters is the number of starting slots per team.
func (c *Config) TotalStarters() int {
	total := 0
	for _, count := range c.Starters {
		total += count
	}
	return total
}

// ActiveRosterLimit is the active-slot occupant ceiling: starters plus bench.
func (c *Config) ActiveRosterLimit() int { return c.TotalStarters() + c.Bench }

// TagLimit returns the per-team quota for a tag, or -1 when unlimited.
func (c *Config) TagLimit(tag Tag) int {
	if limit, ok := c.TagLimits[tag]; ok {
		return limit
	}
	return -1
}
