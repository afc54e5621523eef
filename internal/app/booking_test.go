package app_test

import (
	"context"
	"testing"

	"stayfinder/internal/app"
	"stayfinder/internal/domain"
)

func newBookingFixture(t *testing.T) (*app.BookingService, *fakeRepo, *fakeUsers) {
	t.Helper()
	repo := &fakeRepo{}
	users := newFakeUsers()
	users.users["u1"] = domain.User{ID: "u1", Email: "ana@example.com", FirstName: "Ana", LastName: "Silva"}
	return app.NewBookingService(repo, users, &fakeCache{}), repo, users
}

func TestRecord_SnapshotsPriceIntoTotalCost(t *testing.T) {
	svc, repo, _ := newBookingFixture(t)
	repo.seed(hotel("h1", func(h *domain.Hotel) { h.PricePerNight = 100 }))
	ctx := context.Background()
	principal := domain.Principal{UserID: "u1"}

	b, err := svc.Record(ctx, "h1", principal, app.BookingRequest{
		FirstName: "Ana", LastName: "Silva", Email: "ana@example.com",
		Occupancy: domain.Occupancy{Adults: 2},
		Dates:     domain.DateRange{CheckIn: day(1), CheckOut: day(3)},
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if b.TotalCost != 200 {
		t.Fatalf("totalCost = %v, want 200 (2 nights x 100)", b.TotalCost)
	}

	// raise the price; the stored booking must keep its original cost
	h, _ := repo.GetHotel(ctx, "h1")
	h.PricePerNight = 150
	if err := repo.UpdateHotel(ctx, h); err != nil {
		t.Fatalf("update: %v", err)
	}
	h, _ = repo.GetHotel(ctx, "h1")
	if len(h.Bookings) != 1 || h.Bookings[0].TotalCost != 200 {
		t.Fatalf("booking after price change: %+v", h.Bookings)
	}
}

func TestRecord_IdempotencyKeyDeduplicates(t *testing.T) {
	svc, repo, _ := newBookingFixture(t)
	repo.seed(hotel("h1", nil))
	ctx := context.Background()
	principal := domain.Principal{UserID: "u1"}

	req := app.BookingRequest{
		FirstName: "Ana", LastName: "Silva", Email: "ana@example.com",
		Occupancy:      domain.Occupancy{Adults: 1},
		Dates:          domain.DateRange{CheckIn: day(1), CheckOut: day(2)},
		IdempotencyKey: "retry-1",
	}
	first, err := svc.Record(ctx, "h1", principal, req)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	second, err := svc.Record(ctx, "h1", principal, req)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("retry produced a new booking: %s vs %s", first.ID, second.ID)
	}
	h, _ := repo.GetHotel(ctx, "h1")
	if len(h.Bookings) != 1 {
		t.Fatalf("stored bookings = %d, want 1", len(h.Bookings))
	}
}

func TestRecord_NoKeyMeansNoDedup(t *testing.T) {
	svc, repo, _ := newBookingFixture(t)
	repo.seed(hotel("h1", nil))
	ctx := context.Background()
	principal := domain.Principal{UserID: "u1"}

	req := app.BookingRequest{
		FirstName: "Ana", LastName: "Silva", Email: "ana@example.com",
		Occupancy: domain.Occupancy{Adults: 1},
		Dates:     domain.DateRange{CheckIn: day(1), CheckOut: day(2)},
	}
	if _, err := svc.Record(ctx, "h1", principal, req); err != nil {
		t.Fatalf("record: %v", err)
	}
	if _, err := svc.Record(ctx, "h1", principal, req); err != nil {
		t.Fatalf("record: %v", err)
	}
	h, _ := repo.GetHotel(ctx, "h1")
	if len(h.Bookings) != 2 {
		t.Fatalf("stored bookings = %d, want 2", len(h.Bookings))
	}
}

func TestRecord_ContactDefaultsFromProfile(t *testing.T) {
	svc, repo, _ := newBookingFixture(t)
	repo.seed(hotel("h1", nil))

	b, err := svc.Record(context.Background(), "h1", domain.Principal{UserID: "u1"}, app.BookingRequest{
		Occupancy: domain.Occupancy{Adults: 1},
		Dates:     domain.DateRange{CheckIn: day(1), CheckOut: day(2)},
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if b.FirstName != "Ana" || b.LastName != "Silva" || b.Email != "ana@example.com" {
		t.Fatalf("contact defaults: %+v", b)
	}
}

func TestRecord_UnknownHotel(t *testing.T) {
	svc, _, _ := newBookingFixture(t)
	_, err := svc.Record(context.Background(), "nope", domain.Principal{UserID: "u1"}, app.BookingRequest{
		FirstName: "A", LastName: "B", Email: "a@b.c",
		Occupancy: domain.Occupancy{Adults: 1},
		Dates:     domain.DateRange{CheckIn: day(1), CheckOut: day(2)},
	})
	if err != domain.ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
