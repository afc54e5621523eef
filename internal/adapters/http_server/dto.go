package httpserver

import (
	"time"

	"stayfinder/internal/domain"
)

const dateLayout = "2006-01-02"

type hotelJSON struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	City          string   `json:"city"`
	Country       string   `json:"country"`
	Description   string   `json:"description"`
	Type          string   `json:"type"`
	AdultCount    int      `json:"adultCount"`
	ChildCount    int      `json:"childCount"`
	Facilities    []string `json:"facilities"`
	PricePerNight float64  `json:"pricePerNight"`
	StarRating    int      `json:"starRating"`
	ImageURLs     []string `json:"imageUrls"`
	LastUpdated   string   `json:"lastUpdated"`
}

type bookingJSON struct {
	ID         string  `json:"id"`
	HotelID    string  `json:"hotelId"`
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	Email      string  `json:"email"`
	AdultCount int     `json:"adultCount"`
	ChildCount int     `json:"childCount"`
	CheckIn    string  `json:"checkIn"`
	CheckOut   string  `json:"checkOut"`
	TotalCost  float64 `json:"totalCost"`
}

type userJSON struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type searchJSON struct {
	Data       []hotelJSON       `json:"data"`
	Pagination domain.Pagination `json:"pagination"`
}

func toHotelJSON(h domain.Hotel) hotelJSON {
	return hotelJSON{
		ID:            h.ID,
		Name:          h.Name,
		City:          h.City,
		Country:       h.Country,
		Description:   h.Description,
		Type:          h.Type,
		AdultCount:    h.AdultCount,
		ChildCount:    h.ChildCount,
		Facilities:    h.Facilities,
		PricePerNight: h.PricePerNight,
		StarRating:    h.StarRating,
		ImageURLs:     h.ImageURLs,
		LastUpdated:   h.LastUpdated.UTC().Format(time.RFC3339),
	}
}

func toHotelsJSON(hs []domain.Hotel) []hotelJSON {
	out := make([]hotelJSON, 0, len(hs))
	for _, h := range hs {
		out = append(out, toHotelJSON(h))
	}
	return out
}

func toBookingJSON(hotelID string, b domain.Booking) bookingJSON {
	return bookingJSON{
		ID:         b.ID,
		HotelID:    hotelID,
		FirstName:  b.FirstName,
		LastName:   b.LastName,
		Email:      b.Email,
		AdultCount: b.AdultCount,
		ChildCount: b.ChildCount,
		CheckIn:    b.CheckIn.UTC().Format(dateLayout),
		CheckOut:   b.CheckOut.UTC().Format(dateLayout),
		TotalCost:  b.TotalCost,
	}
}

func toUserJSON(u domain.User) userJSON {
	return userJSON{ID: u.ID, Email: u.Email, FirstName: u.FirstName, LastName: u.LastName}
}
