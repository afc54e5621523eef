package app

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"stayfinder/internal/adapters/observability"
	"stayfinder/internal/domain"
)

// BookingRequest is a validated submission; the boundary has already rejected
// malformed fields, and the caller has already passed the availability check.
type BookingRequest struct {
	FirstName      string
	LastName       string
	Email          string
	Occupancy      domain.Occupancy
	Dates          domain.DateRange
	IdempotencyKey string
}

// BookingService appends confirmed bookings. TotalCost is computed from the
// hotel's price inside the repo transaction, so a later price edit never
// touches an existing booking.
type BookingService struct {
	repo  domain.HotelRepository
	users domain.UserRepository
	cache domain.Cache
}

func NewBookingService(r domain.HotelRepository, u domain.UserRepository, c domain.Cache) *BookingService {
	return &BookingService{repo: r, users: u, cache: c}
}

// Hotel is the fresh (uncached) read used to compose availability checks; the
// detail cache may lag behind recent bookings.
func (s *BookingService) Hotel(ctx context.Context, id string) (domain.Hotel, error) {
	return s.repo.GetHotel(ctx, id)
}

func (s *BookingService) Record(ctx context.Context, hotelID string, p domain.Principal, req BookingRequest) (domain.Booking, error) {
	b := domain.Booking{
		ID:             uuid.NewString(),
		UserID:         p.UserID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		AdultCount:     req.Occupancy.Adults,
		ChildCount:     req.Occupancy.Children,
		CheckIn:        req.Dates.CheckIn,
		CheckOut:       req.Dates.CheckOut,
		IdempotencyKey: req.IdempotencyKey,
		CreatedAt:      time.Now().UTC(),
	}

	// Contact info falls back to the booker's profile when the form left it out.
	if b.FirstName == "" || b.LastName == "" || b.Email == "" {
		if u, err := s.users.GetUser(ctx, p.UserID); err == nil {
			if b.FirstName == "" {
				b.FirstName = u.FirstName
			}
			if b.LastName == "" {
				b.LastName = u.LastName
			}
			if b.Email == "" {
				b.Email = u.Email
			}
		}
	}

	stored, err := s.repo.AppendBooking(ctx, hotelID, b)
	if err != nil {
		observability.ObserveBooking("failed")
		return domain.Booking{}, err
	}
	if stored.ID != b.ID {
		// idempotency key matched an earlier submission
		observability.ObserveBooking("duplicate")
		log.Info().
			Str("hotel_id", hotelID).
			Str("booking_id", stored.ID).
			Msg("retried booking deduplicated")
		return stored, nil
	}
	observability.ObserveBooking("confirmed")

	invalidateHotel(ctx, s.cache, hotelID)
	return stored, nil
}
