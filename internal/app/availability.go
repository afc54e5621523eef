package app

import (
	"github.com/rs/zerolog/log"

	"stayfinder/internal/domain"
)

// OverlapPolicy selects the cross-booking conflict strategy.
type OverlapPolicy string

const (
	// OverlapNone performs no cross-booking check.
	OverlapNone OverlapPolicy = "none"
	// OverlapExclusive denies a booking whose night range intersects any
	// existing booking for the same hotel.
	OverlapExclusive OverlapPolicy = "exclusive"
)

// ParseOverlapPolicy resolves the configured policy name; anything it does not
// recognize falls back to OverlapExclusive with a warning.
func ParseOverlapPolicy(s string) OverlapPolicy {
	switch s {
	case string(OverlapNone):
		return OverlapNone
	case string(OverlapExclusive):
		return OverlapExclusive
	}
	log.Warn().Str("policy", s).Msg("unknown overlap policy, using exclusive")
	return OverlapExclusive
}

// AvailabilityChecker decides bookability. It is read-only: callers pass the
// hotel they already hold and get a nil error or a denial with a reason code.
type AvailabilityChecker struct {
	policy OverlapPolicy
}

func NewAvailabilityChecker(policy OverlapPolicy) *AvailabilityChecker {
	return &AvailabilityChecker{policy: policy}
}

func (c *AvailabilityChecker) Check(h domain.Hotel, dates domain.DateRange, occ domain.Occupancy) error {
	if !dates.Valid() {
		return domain.Denied(domain.ReasonInvalidRange)
	}
	if occ.Total() > h.Capacity() {
		return domain.Denied(domain.ReasonCapacityExceeded)
	}
	if c.policy == OverlapExclusive {
		for _, b := range h.Bookings {
			if dates.Overlaps(b.Range()) {
				return domain.Denied(domain.ReasonDateConflict)
			}
		}
	}
	return nil
}
