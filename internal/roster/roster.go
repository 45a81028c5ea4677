// Package roster owns the per-team ledger of player-to-slot assignments:
// capacity, eligibility and salary-cap legality for one team's roster.
package roster

import (
	"fmt"
	"sort"

	"github.com/mistakia/league-sub002/internal/league"
)

// Entry is one player's assignment on a roster.
type Entry struct {
	PlayerID   string
	Position   league.Position
	Slot       league.Slot
	Value      int
	Tag        league.Tag
	Extensions int
}

// Roster is the mutable aggregate for one team's roster snapshot. The
// backing map is never exposed; derived views return copies computed on
// demand.
type Roster struct {
	cfg     *league.Config
	entries map[string]*Entry
}

// New builds a roster from a persisted snapshot. Entries are added through
// the same legality checks as Add, so an illegal snapshot is rejected.
//
// When asOfWeek is before the league's extension deadline, each entry's
// effective salary is recomputed from its tag: a regular tag adds the
// extension increment once per prior extension, a franchise tag uses the
// position-indexed franchise amount, and rookie/restricted tags pass the
// stored value through. After the deadline the stored value is used
// unchanged.
func New(snapshot []Entry, cfg *league.Config, asOfWeek int) (*Roster, error) {
	r := &Roster{
		cfg:     cfg,
		entries: make(map[string]*Entry, len(snapshot)),
	}
	for _, e := range snapshot {
		value := e.Value
		if asOfWeek < cfg.ExtensionDeadlineWeek {
			value = extensionAmount(e, cfg)
		}
		if err := r.add(e.Slot, e.PlayerID, e.Position, value, e.Tag, e.Extensions); err != nil {
			return nil, fmt.Errorf("snapshot entry %s: %w", e.PlayerID, err)
		}
	}
	return r, nil
}

// extensionAmount computes the pre-deadline effective salary for an entry.
func extensionAmount(e Entry, cfg *league.Config) int {
	switch e.Tag {
	case league.TagFranchise:
		return cfg.FranchiseAmounts[e.Position]
	case league.TagRookie, league.TagRestricted:
		return e.Value
	default:
		return e.Value + cfg.ExtensionIncrement*e.Extensions
	}
}

// Add places a player into a slot, enforcing every capacity invariant before
// mutating state.
func (r *Roster) Add(slot league.Slot, playerID string, pos league.Position, value int, tag league.Tag) error {
	return r.add(slot, playerID, pos, value, tag, 0)
}

func (r *Roster) add(slot league.Slot, playerID string, pos league.Position, value int, tag league.Tag, extensions int) error {
	if _, ok := r.entries[playerID]; ok {
		return fmt.Errorf("%w: %s", ErrPlayerExists, playerID)
	}
	if err := r.checkSlot(slot, pos, ""); err != nil {
		return err
	}
	if slot.IsActive() {
		if r.CapUsed()+value > r.cfg.Cap {
			return fmt.Errorf("%w: %d over cap %d", ErrCapExceeded, r.CapUsed()+value, r.cfg.Cap)
		}
	}
	if limit := r.cfg.TagLimit(tag); limit >= 0 && len(r.ByTag(tag)) >= limit {
		return fmt.Errorf("%w: %s limit %d", ErrTagQuotaExceeded, tag, limit)
	}
	r.entries[playerID] = &Entry{
		PlayerID:   playerID,
		Position:   pos,
		Slot:       slot,
		Value:      value,
		Tag:        tag,
		Extensions: extensions,
	}
	return nil
}

// checkSlot enforces slot-type capacity, excluding excludeID from occupancy
// counts so a player can be moved into a slot family they already occupy.
func (r *Roster) checkSlot(slot league.Slot, pos league.Position, excludeID string) error {
	switch {
	case slot.IsPracticeSquad():
		if r.countPracticeSquad(excludeID) >= r.cfg.PracticeSquad {
			return fmt.Errorf("%w: limit %d", ErrPracticeSquadFull, r.cfg.PracticeSquad)
		}
	case slot.IsReserve():
		if r.countReserve(excludeID) >= r.cfg.Reserve {
			return fmt.Errorf("%w: limit %d", ErrReserveFull, r.cfg.Reserve)
		}
	default:
		if r.countActive(excludeID) >= r.cfg.ActiveRosterLimit() {
			return fmt.Errorf("%w: limit %d", ErrRosterFull, r.cfg.ActiveRosterLimit())
		}
		if slot != league.SlotBench {
			if !slot.Eligible(pos) {
				return fmt.Errorf("%w: %s in %s", ErrIneligibleSlot, pos, slot)
			}
			if r.countSlot(slot, excludeID) >= r.cfg.StarterCount(slot) {
				return fmt.Errorf("%w: %s slots filled (%d)", ErrIneligibleSlot, slot, r.cfg.StarterCount(slot))
			}
		}
	}
	return nil
}

// Remove drops a player from the roster. No legality re-check applies on
// removal.
func (r *Roster) Remove(playerID string) error {
	if _, ok := r.entries[playerID]; !ok {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}
	delete(r.entries, playerID)
	return nil
}

// UpdateSlot moves a rostered player to a new slot, re-checking slot
// eligibility and capacity for the target.
func (r *Roster) UpdateSlot(playerID string, slot league.Slot) error {
	e, ok := r.entries[playerID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}
	if e.Slot == slot {
		return nil
	}
	if err := r.checkSlot(slot, e.Position, playerID); err != nil {
		return err
	}
	e.Slot = slot
	return nil
}

// UpdateValue replaces a rostered player's salary value in place.
func (r *Roster) UpdateValue(playerID string, value int) error {
	e, ok := r.entries[playerID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}
	e.Value = value
	return nil
}

// Get returns a copy of the entry for playerID.
func (r *Roster) Get(playerID string) (Entry, bool) {
	e, ok := r.entries[playerID]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Size is the total entry count across all tiers.
func (r *Roster) Size() int { return len(r.entries) }

// ActiveLimit is the active-roster occupant ceiling from the league config.
func (r *Roster) ActiveLimit() int { return r.cfg.ActiveRosterLimit() }

// Active returns the players occupying active (starting or bench) slots.
func (r *Roster) Active() []Entry {
	return r.filter(func(e *Entry) bool { return e.Slot.IsActive() })
}

// Starters returns the players occupying starting slots.
func (r *Roster) Starters() []Entry {
	return r.filter(func(e *Entry) bool { return e.Slot.IsStarting() })
}

// Bench returns the players on the bench.
func (r *Roster) Bench() []Entry {
	return r.filter(func(e *Entry) bool { return e.Slot == league.SlotBench })
}

// PracticeSquad returns the practice-squad players across both sub-types.
func (r *Roster) PracticeSquad() []Entry {
	return r.filter(func(e *Entry) bool { return e.Slot.IsPracticeSquad() })
}

// Reserve returns the reserve-slot players.
func (r *Roster) Reserve() []Entry {
	return r.filter(func(e *Entry) bool { return e.Slot.IsReserve() })
}

// BySlot returns the players occupying exactly the given slot.
func (r *Roster) BySlot(slot league.Slot) []Entry {
	return r.filter(func(e *Entry) bool { return e.Slot == slot })
}

// ByTag returns the players carrying the given tag.
func (r *Roster) ByTag(tag league.Tag) []Entry {
	return r.filter(func(e *Entry) bool { return e.Tag == tag })
}

// CapUsed is the sum of active players' salary values.
func (r *Roster) CapUsed() int {
	used := 0
	for _, e := range r.entries {
		if e.Slot.IsActive() {
			used += e.Value
		}
	}
	return used
}

// CapSpace is the remaining room under the league salary cap.
func (r *Roster) CapSpace() int { return r.cfg.Cap - r.CapUsed() }

func (r *Roster) filter(keep func(*Entry) bool) []Entry {
	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		if keep(e) {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out
}

func (r *Roster) countActive(excludeID string) int {
	n := 0
	for id, e := range r.entries {
		if id != excludeID && e.Slot.IsActive() {
			n++
		}
	}
	return n
}

func (r *Roster) countPracticeSquad(excludeID string) int {
	n := 0
	for id, e := range r.entries {
		if id != excludeID && e.Slot.IsPracticeSquad() {
			n++
		}
	}
	return n
}

func (r *Roster) countReserve(excludeID string) int {
	n := 0
	for id, e := range r.entries {
		if id != excludeID && e.Slot.IsReserve() {
			n++
		}
	}
	return n
}

func (r *Roster) countSlot(slot league.Slot, excludeID string) int {
	n := 0
	for id, e := range r.entries {
		if id != excludeID && e.Slot == slot {
			n++
		}
	}
	return n
}
