package httpserver

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"stayfinder/internal/app"
	"stayfinder/internal/domain"
)

const (
	maxImageFileSize = 5 << 20 // per file
	maxFormMemory    = 32 << 20
)

// parseSearchRequest coerces the stringified query fields into a typed
// request. Malformed numerics and dates fail here with field messages; the
// query pipeline never sees them.
func parseSearchRequest(r *http.Request) (domain.SearchRequest, *domain.ValidationError) {
	q := r.URL.Query()
	verr := domain.NewValidationError()

	req := domain.SearchRequest{
		Destination: strings.TrimSpace(q.Get("destination")),
		Types:       q["types"],
		Facilities:  q["facilities"],
		Page:        1,
	}

	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			verr.Add("page", "must be an integer >= 1")
		} else {
			req.Page = n
		}
	}
	for _, s := range q["stars"] {
		n, err := strconv.Atoi(s)
		if err != nil {
			verr.Add("stars", "must be integers")
			break
		}
		req.Stars = append(req.Stars, n)
	}
	if v := q.Get("maxPrice"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			verr.Add("maxPrice", "must be a number")
		} else {
			req.MaxPrice = &f
		}
	}
	if v := q.Get("adultCount"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			verr.Add("adultCount", "must be a non-negative integer")
		} else {
			req.Occupancy.Adults = n
		}
	}
	if v := q.Get("childCount"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			verr.Add("childCount", "must be a non-negative integer")
		} else {
			req.Occupancy.Children = n
		}
	}
	if v := q.Get("checkIn"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			verr.Add("checkIn", "must be an ISO date")
		} else {
			req.Dates.CheckIn = t
		}
	}
	if v := q.Get("checkOut"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			verr.Add("checkOut", "must be an ISO date")
		} else {
			req.Dates.CheckOut = t
		}
	}
	if v := domain.SortKey(q.Get("sortOption")); v.Valid() {
		req.Sort = v
	} else if q.Get("sortOption") != "" {
		verr.Add("sortOption", "unknown sort option")
	}

	if !verr.Empty() {
		return domain.SearchRequest{}, verr
	}
	return req, nil
}

type bookingBody struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	AdultCount string `json:"adultCount"`
	ChildCount string `json:"childCount"`
	CheckIn    string `json:"checkIn"`
	CheckOut   string `json:"checkOut"`
}

func (b bookingBody) toRequest(idemKey string) (app.BookingRequest, *domain.ValidationError) {
	verr := domain.NewValidationError()
	out := app.BookingRequest{
		FirstName:      strings.TrimSpace(b.FirstName),
		LastName:       strings.TrimSpace(b.LastName),
		Email:          strings.TrimSpace(b.Email),
		IdempotencyKey: idemKey,
	}
	out.Occupancy.Adults = parseCount(verr, "adultCount", b.AdultCount)
	out.Occupancy.Children = parseCount(verr, "childCount", b.ChildCount)
	if t, err := parseDate(b.CheckIn); err != nil {
		verr.Add("checkIn", "must be an ISO date")
	} else {
		out.Dates.CheckIn = t
	}
	if t, err := parseDate(b.CheckOut); err != nil {
		verr.Add("checkOut", "must be an ISO date")
	} else {
		out.Dates.CheckOut = t
	}
	if !verr.Empty() {
		return app.BookingRequest{}, verr
	}
	return out, nil
}

func parseCount(verr *domain.ValidationError, field, v string) int {
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		verr.Add(field, "must be a non-negative integer")
		return 0
	}
	return n
}

// parseHotelForm reads the multipart create/update submission: scalar fields,
// kept image URLs, and up to MaxImageFiles uploaded files of 5 MiB each.
func parseHotelForm(r *http.Request) (app.HotelInput, []app.ImageUpload, *domain.ValidationError) {
	verr := domain.NewValidationError()
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		verr.Add("body", "must be multipart/form-data")
		return app.HotelInput{}, nil, verr
	}

	in := app.HotelInput{
		Name:          strings.TrimSpace(r.FormValue("name")),
		City:          strings.TrimSpace(r.FormValue("city")),
		Country:       strings.TrimSpace(r.FormValue("country")),
		Description:   strings.TrimSpace(r.FormValue("description")),
		Type:          strings.TrimSpace(r.FormValue("type")),
		Facilities:    r.MultipartForm.Value["facilities"],
		KeptImageURLs: r.MultipartForm.Value["imageUrls"],
	}

	in.AdultCount = parseFormInt(verr, r, "adultCount")
	in.ChildCount = parseFormInt(verr, r, "childCount")
	in.StarRating = parseFormInt(verr, r, "starRating")
	if v := r.FormValue("pricePerNight"); v == "" {
		verr.Add("pricePerNight", "is required")
	} else if f, err := strconv.ParseFloat(v, 64); err != nil {
		verr.Add("pricePerNight", "must be a number")
	} else {
		in.PricePerNight = f
	}

	files := r.MultipartForm.File["imageFiles"]
	if len(files) > domain.MaxImageFiles {
		verr.Add("imageFiles", "too many files")
		return app.HotelInput{}, nil, verr
	}
	var uploads []app.ImageUpload
	for _, fh := range files {
		if fh.Size > maxImageFileSize {
			verr.Add("imageFiles", "file exceeds 5MB limit")
			break
		}
		f, err := fh.Open()
		if err != nil {
			verr.Add("imageFiles", "unreadable file")
			break
		}
		data := make([]byte, fh.Size)
		_, err = io.ReadFull(f, data)
		_ = f.Close()
		if err != nil {
			verr.Add("imageFiles", "unreadable file")
			break
		}
		uploads = append(uploads, app.ImageUpload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	if !verr.Empty() {
		return app.HotelInput{}, nil, verr
	}
	return in, uploads, nil
}

func parseFormInt(verr *domain.ValidationError, r *http.Request, field string) int {
	v := r.FormValue(field)
	if v == "" {
		verr.Add(field, "is required")
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		verr.Add(field, "must be an integer")
		return 0
	}
	return n
}

// parseDate accepts bare ISO dates and full RFC3339 timestamps, normalized to
// midnight UTC.
func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, v); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, err
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
