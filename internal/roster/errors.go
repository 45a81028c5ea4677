package roster

import "errors"

// Capacity errors are raised synchronously on the offending operation, never
// deferred. Callers match with errors.Is.
var (
	ErrRosterFull        = errors.New("active roster full")
	ErrIneligibleSlot    = errors.New("position not eligible for slot")
	ErrPracticeSquadFull = errors.New("practice squad full")
	ErrReserveFull       = errors.New("reserve full")
	ErrTagQuotaExceeded  = errors.New("tag quota exceeded")
	ErrCapExceeded       = errors.New("salary cap exceeded")
	ErrPlayerExists      = errors.New("player already rostered")
	ErrPlayerNotFound    = errors.New("player not on roster")
)
