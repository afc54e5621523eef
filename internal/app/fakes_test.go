package app_test

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"stayfinder/internal/domain"
)

// ---- in-memory repo fake ----

// fakeRepo keeps hotels in insertion order and mirrors the store's booking
// contract: cost snapshotted from the current price, idempotency keys
// deduplicated per hotel.
type fakeRepo struct {
	mu     sync.Mutex
	hotels []domain.Hotel
}

func (f *fakeRepo) seed(hs ...domain.Hotel) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hotels = append(f.hotels, hs...)
}

func (f *fakeRepo) CreateHotel(ctx context.Context, h domain.Hotel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hotels = append(f.hotels, h)
	return nil
}

func (f *fakeRepo) UpdateHotel(ctx context.Context, h domain.Hotel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, cur := range f.hotels {
		if cur.ID == h.ID && cur.OwnerID == h.OwnerID {
			h.Bookings = cur.Bookings
			f.hotels[i] = h
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeRepo) GetHotel(ctx context.Context, id string) (domain.Hotel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, h := range f.hotels {
		if h.ID == id {
			return copyHotel(h), nil
		}
	}
	return domain.Hotel{}, domain.ErrNotFound
}

func (f *fakeRepo) GetOwnedHotel(ctx context.Context, id, ownerID string) (domain.Hotel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, h := range f.hotels {
		if h.ID == id && h.OwnerID == ownerID {
			return copyHotel(h), nil
		}
	}
	return domain.Hotel{}, domain.ErrNotFound
}

func (f *fakeRepo) ListOwnedHotels(ctx context.Context, ownerID string) ([]domain.Hotel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Hotel
	for _, h := range f.hotels {
		if h.OwnerID == ownerID {
			out = append(out, copyHotel(h))
		}
	}
	return out, nil
}

func (f *fakeRepo) Snapshot(ctx context.Context) ([]domain.Hotel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Hotel, 0, len(f.hotels))
	for _, h := range f.hotels {
		out = append(out, copyHotel(h))
	}
	return out, nil
}

func (f *fakeRepo) AppendBooking(ctx context.Context, hotelID string, b domain.Booking) (domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, h := range f.hotels {
		if h.ID != hotelID {
			continue
		}
		if b.IdempotencyKey != "" {
			for _, prev := range h.Bookings {
				if prev.IdempotencyKey == b.IdempotencyKey {
					return prev, nil
				}
			}
		}
		b.TotalCost = float64(b.Range().Nights()) * h.PricePerNight
		f.hotels[i].Bookings = append(f.hotels[i].Bookings, b)
		return b, nil
	}
	return domain.Booking{}, domain.ErrNotFound
}

func copyHotel(h domain.Hotel) domain.Hotel {
	out := h
	out.Facilities = append([]string(nil), h.Facilities...)
	out.ImageURLs = append([]string(nil), h.ImageURLs...)
	out.Bookings = append([]domain.Booking(nil), h.Bookings...)
	return out
}

// ---- user repo fake ----

type fakeUsers struct {
	mu    sync.Mutex
	users map[string]domain.User // by id
}

func newFakeUsers() *fakeUsers { return &fakeUsers{users: map[string]domain.User{}} }

func (f *fakeUsers) CreateUser(ctx context.Context, u domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, cur := range f.users {
		if cur.Email == u.Email {
			return domain.ErrEmailTaken
		}
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUsers) UpdateUser(ctx context.Context, u domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUsers) GetUser(ctx context.Context, id string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

// ---- cache fake ----

// fakeCache round-trips values through JSON so it stays type-agnostic, like
// the real adapter.
type fakeCache struct {
	mu    sync.Mutex
	store map[string][]byte
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = b
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	return nil
}

// ---- image store fake ----

// fakeImages echoes the payload into the URL so tests can assert ordering.
type fakeImages struct {
	mu       sync.Mutex
	failData string // payload that triggers a rejected upload
	uploaded int
}

func (f *fakeImages) Upload(ctx context.Context, objectName, contentType string, data []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failData != "" && string(data) == f.failData {
		return "", fmt.Errorf("upload rejected")
	}
	f.uploaded++
	return "https://img.test/" + string(data), nil
}

// ---- helpers ----

func day(d int) time.Time {
	return time.Date(2026, time.June, d, 0, 0, 0, 0, time.UTC)
}

func hotel(id string, mut func(*domain.Hotel)) domain.Hotel {
	h := domain.Hotel{
		ID:            id,
		OwnerID:       "owner-1",
		Name:          "Hotel " + id,
		City:          "Lisbon",
		Country:       "Portugal",
		Description:   "desc",
		Type:          "Budget",
		AdultCount:    2,
		ChildCount:    2,
		Facilities:    []string{"wifi"},
		PricePerNight: 100,
		StarRating:    3,
		LastUpdated:   day(1),
	}
	if mut != nil {
		mut(&h)
	}
	return h
}
