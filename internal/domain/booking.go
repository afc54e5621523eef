package domain

import "time"

// DateRange is a half-open stay interval: nights are [CheckIn, CheckOut).
type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

func (d DateRange) Valid() bool { return d.CheckIn.Before(d.CheckOut) }

func (d DateRange) Nights() int {
	return int(d.CheckOut.Sub(d.CheckIn).Hours() / 24)
}

// Overlaps reports whether two half-open ranges share at least one night.
// Back-to-back stays (one checks out the day the other checks in) do not overlap.
func (d DateRange) Overlaps(o DateRange) bool {
	return d.CheckIn.Before(o.CheckOut) && o.CheckIn.Before(d.CheckOut)
}

type Occupancy struct {
	Adults   int
	Children int
}

func (o Occupancy) Total() int { return o.Adults + o.Children }

type Booking struct {
	ID         string
	UserID     string
	FirstName  string
	LastName   string
	Email      string
	AdultCount int
	ChildCount int
	CheckIn    time.Time
	CheckOut   time.Time

	// TotalCost is snapshotted from the hotel's price at submission time and
	// never recomputed afterwards.
	TotalCost float64

	// IdempotencyKey deduplicates retried submissions; empty means no dedup.
	IdempotencyKey string

	CreatedAt time.Time
}

func (b Booking) Range() DateRange { return DateRange{CheckIn: b.CheckIn, CheckOut: b.CheckOut} }
