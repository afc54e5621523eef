package app_test

import (
	"errors"
	"testing"

	"stayfinder/internal/app"
	"stayfinder/internal/domain"
)

func reason(t *testing.T, err error) string {
	t.Helper()
	var aerr *domain.AvailabilityError
	if !errors.As(err, &aerr) {
		t.Fatalf("expected AvailabilityError, got %v", err)
	}
	return aerr.Reason
}

func TestCheck_CapacityExceeded(t *testing.T) {
	c := app.NewAvailabilityChecker(app.OverlapExclusive)
	h := hotel("h1", func(h *domain.Hotel) { h.AdultCount = 2; h.ChildCount = 2 })

	err := c.Check(h, domain.DateRange{CheckIn: day(1), CheckOut: day(3)},
		domain.Occupancy{Adults: 2, Children: 3})
	if got := reason(t, err); got != domain.ReasonCapacityExceeded {
		t.Fatalf("reason = %q", got)
	}

	// exactly at capacity is allowed
	if err := c.Check(h, domain.DateRange{CheckIn: day(1), CheckOut: day(3)},
		domain.Occupancy{Adults: 2, Children: 2}); err != nil {
		t.Fatalf("at-capacity: %v", err)
	}
}

func TestCheck_InvalidRange(t *testing.T) {
	c := app.NewAvailabilityChecker(app.OverlapExclusive)
	h := hotel("h1", nil)

	err := c.Check(h, domain.DateRange{CheckIn: day(2), CheckOut: day(2)}, domain.Occupancy{Adults: 1})
	if got := reason(t, err); got != domain.ReasonInvalidRange {
		t.Fatalf("checkIn==checkOut reason = %q", got)
	}
	err = c.Check(h, domain.DateRange{CheckIn: day(3), CheckOut: day(2)}, domain.Occupancy{Adults: 1})
	if got := reason(t, err); got != domain.ReasonInvalidRange {
		t.Fatalf("inverted range reason = %q", got)
	}
}

func TestCheck_OverlapPolicy(t *testing.T) {
	booked := hotel("h1", func(h *domain.Hotel) {
		h.Bookings = []domain.Booking{{CheckIn: day(10), CheckOut: day(14)}}
	})
	overlapping := domain.DateRange{CheckIn: day(12), CheckOut: day(16)}

	exclusive := app.NewAvailabilityChecker(app.OverlapExclusive)
	err := exclusive.Check(booked, overlapping, domain.Occupancy{Adults: 1})
	if got := reason(t, err); got != domain.ReasonDateConflict {
		t.Fatalf("reason = %q", got)
	}

	// back-to-back checkout/checkin is not a conflict
	if err := exclusive.Check(booked, domain.DateRange{CheckIn: day(14), CheckOut: day(16)},
		domain.Occupancy{Adults: 1}); err != nil {
		t.Fatalf("back-to-back: %v", err)
	}

	none := app.NewAvailabilityChecker(app.OverlapNone)
	if err := none.Check(booked, overlapping, domain.Occupancy{Adults: 1}); err != nil {
		t.Fatalf("policy none: %v", err)
	}
}

func TestParseOverlapPolicy(t *testing.T) {
	cases := map[string]app.OverlapPolicy{
		"none":      app.OverlapNone,
		"exclusive": app.OverlapExclusive,
		"non":       app.OverlapExclusive, // typos fall back to the default
		"":          app.OverlapExclusive,
	}
	for in, want := range cases {
		if got := app.ParseOverlapPolicy(in); got != want {
			t.Errorf("ParseOverlapPolicy(%q) = %q, want %q", in, got, want)
		}
	}
}
