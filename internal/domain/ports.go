package domain

import (
	"context"
	"time"
)

type HotelRepository interface {
	// Owner-facing write paths
	CreateHotel(ctx context.Context, h Hotel) error
	UpdateHotel(ctx context.Context, h Hotel) error

	// Read paths
	GetHotel(ctx context.Context, id string) (Hotel, error)
	GetOwnedHotel(ctx context.Context, id, ownerID string) (Hotel, error)
	ListOwnedHotels(ctx context.Context, ownerID string) ([]Hotel, error)

	// Snapshot returns every hotel in stable insertion order; the search
	// pipeline runs over this slice without touching the store again.
	Snapshot(ctx context.Context) ([]Hotel, error)

	// AppendBooking persists b against the hotel, computing TotalCost from the
	// hotel's current price inside the same transaction. A booking with a known
	// idempotency key returns the previously stored booking unchanged.
	AppendBooking(ctx context.Context, hotelID string, b Booking) (Booking, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, u User) error
	UpdateUser(ctx context.Context, u User) error
	GetUser(ctx context.Context, id string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// ImageStore is the external image-upload collaborator.
type ImageStore interface {
	Upload(ctx context.Context, objectName, contentType string, data []byte) (url string, err error)
}

// TokenVerifier resolves a bearer token into a Principal. Token minting lives
// outside this service.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (Principal, error)
}
