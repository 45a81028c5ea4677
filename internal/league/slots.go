package league

import "strings"

// Position is a player's real-world position.
type Position string

const (
	QB  Position = "QB"
	RB  Position = "RB"
	WR  Position = "WR"
	TE  Position = "TE"
	K   Position = "K"
	DST Position = "DST"
)

// Positions lists every known position.
var Positions = []Position{QB, RB, WR, TE, K, DST}

// Slot is a roster slot a player can occupy. Starting slots are named by the
// positions they accept; a flex slot's name carries every eligible position
// token (e.g. "RB/WR").
type Slot string

const (
	SlotQB       Slot = "QB"
	SlotRB       Slot = "RB"
	SlotWR       Slot = "WR"
	SlotTE       Slot = "TE"
	SlotK        Slot = "K"
	SlotDST      Slot = "DST"
	SlotRBWR     Slot = "RB/WR"
	SlotWRTE     Slot = "WR/TE"
	SlotRBWRTE   Slot = "RB/WR/TE"
	SlotQBRBWRTE Slot = "QB/RB/WR/TE"

	SlotBench Slot = "BENCH"
	SlotPS    Slot = "PS"  // practice squad, signed
	SlotPSD   Slot = "PSD" // practice squad, drafted
	SlotIR    Slot = "IR"
)

// StartingSlots is the league-declared fill order: single-position slots
// first, then flex slots from narrowest to widest so flexes absorb only the
// overflow beyond fixed single-position requirements.
var StartingSlots = []Slot{
	SlotQB, SlotRB, SlotWR, SlotTE, SlotK, SlotDST,
	SlotRBWR, SlotWRTE, SlotRBWRTE, SlotQBRBWRTE,
}

var startingSlotSet = func() map[Slot]bool {
	m := make(map[Slot]bool, len(StartingSlots))
	for _, s := range StartingSlots {
		m[s] = true
	}
	return m
}()

// Positions returns the positions a starting slot accepts. Non-starting
// slots return nil.
func (s Slot) Positions() []Position {
	if !startingSlotSet[s] {
		return nil
	}
	tokens := strings.Split(string(s), "/")
	positions := make([]Position, len(tokens))
	for i, t := range tokens {
		positions[i] = Position(t)
	}
	return positions
}

// Eligible reports whether a player at pos may occupy the slot. Bench,
// practice-squad and reserve slots accept any position; a starting slot
// accepts a position only when its name carries that position token.
func (s Slot) Eligible(pos Position) bool {
	if !startingSlotSet[s] {
		return true
	}
	for _, p := range s.Positions() {
		if p == pos {
			return true
		}
	}
	return false
}

// IsStarting reports whether the slot is a starting slot.
func (s Slot) IsStarting() bool { return startingSlotSet[s] }

// IsActive reports whether the slot counts against the active roster limit
// and the salary cap.
func (s Slot) IsActive() bool { return startingSlotSet[s] || s == SlotBench }

// IsPracticeSquad reports whether the slot is a practice-squad tier.
func (s Slot) IsPracticeSquad() bool { return s == SlotPS || s == SlotPSD }

// IsReserve reports whether the slot is a reserve tier.
func (s Slot) IsReserve() bool { return s == SlotIR }

// FlexSlots lists the flex starting slots in widening eligibility order.
var FlexSlots = []Slot{SlotRBWR, SlotWRTE, SlotRBWRTE, SlotQBRBWRTE}

// SingleSlot returns the single-position starting slot for pos.
func SingleSlot(pos Position) Slot { return Slot(pos) }

// Tag is a contractual designation governing salary computation and per-team
// quotas.
type Tag string

const (
	TagRegular    Tag = "regular"
	TagFranchise  Tag = "franchise"
	TagRookie     Tag = "rookie"
	TagRestricted Tag = "restricted"
)
