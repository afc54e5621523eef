package domain

import "time"

const (
	MinStarRating = 1
	MaxStarRating = 5

	// MaxImageFiles bounds the number of image uploads per create/update request.
	MaxImageFiles = 6
)

type Hotel struct {
	ID            string
	OwnerID       string
	Name          string
	City          string
	Country       string
	Description   string
	Type          string
	AdultCount    int
	ChildCount    int
	Facilities    []string
	PricePerNight float64
	StarRating    int
	ImageURLs     []string // display order
	LastUpdated   time.Time
	Bookings      []Booking
}

// Capacity is the maximum occupancy a single booking may request.
func (h Hotel) Capacity() int { return h.AdultCount + h.ChildCount }

func (h Hotel) HasFacility(name string) bool {
	for _, f := range h.Facilities {
		if f == name {
			return true
		}
	}
	return false
}
