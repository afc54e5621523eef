package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"stayfinder/internal/app"
	"stayfinder/internal/domain"
)

type Handlers struct {
	Search   *app.SearchService
	Listings *app.ListingService
	Bookings *app.BookingService
	Checker  *app.AvailabilityChecker
	Users    *app.UserService
	Verify   domain.TokenVerifier
}

type problem struct {
	Type   string            `json:"type"`
	Title  string            `json:"title"`
	Status int               `json:"status"`
	Detail string            `json:"detail,omitempty"`
	Reason string            `json:"reason,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Post("/api/users/register", h.register)

	s.mux.Get("/api/hotels/search", h.search)
	s.mux.Get("/api/hotels/{id}", h.getHotel)

	s.mux.Group(func(r chi.Router) {
		r.Use(RequireAuth(h.Verify))

		r.Put("/api/users/me", h.updateProfile)

		r.Post("/api/hotels/{id}/bookings", h.book)

		r.Route("/api/my-hotels", func(r chi.Router) {
			r.Get("/", h.listMyHotels)
			r.Post("/", h.createHotel)
			r.Get("/{id}", h.getMyHotel)
			r.Put("/{id}", h.updateHotel)
		})
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	writeProblemFull(w, problem{Type: "about:blank", Title: title, Status: status, Detail: detail})
}

func writeProblemFull(w http.ResponseWriter, p problem) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	if err := json.NewEncoder(w).Encode(p); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// writeError maps the domain error taxonomy onto problem responses. Internal
// causes are logged, never echoed.
func writeError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		writeProblemFull(w, problem{
			Type: "about:blank", Title: "Validation Failed",
			Status: http.StatusBadRequest, Errors: verr.Fields,
		})
		return
	}
	var aerr *domain.AvailabilityError
	if errors.As(err, &aerr) {
		writeProblemFull(w, problem{
			Type: "about:blank", Title: "Not Bookable",
			Status: http.StatusBadRequest, Reason: aerr.Reason,
		})
		return
	}
	if errors.Is(err, domain.ErrNotFound) {
		writeProblem(w, http.StatusNotFound, "Not Found", "resource not found")
		return
	}
	if errors.Is(err, domain.ErrEmailTaken) {
		writeProblem(w, http.StatusConflict, "Conflict", "email already registered")
		return
	}
	var uerr *domain.UpstreamError
	if errors.As(err, &uerr) {
		log.Error().Err(err).Msg("upstream failure")
		writeProblem(w, http.StatusBadGateway, "Upstream Failure", "request could not be completed")
		return
	}
	log.Error().Err(err).Msg("internal error")
	writeProblem(w, http.StatusInternalServerError, "Internal Error", "something went wrong")
}

// ---- public surface ----

func (h *Handlers) search(w http.ResponseWriter, r *http.Request) {
	req, verr := parseSearchRequest(r)
	if verr != nil {
		writeError(w, verr)
		return
	}
	res, err := h.Search.Search(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, searchJSON{Data: toHotelsJSON(res.Data), Pagination: res.Pagination})
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	hotel, err := h.Search.GetHotel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toHotelJSON(hotel))
}

// ---- bookings ----

func (h *Handlers) book(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(r)
	if !ok {
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "no principal")
		return
	}

	var body bookingBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	req, verr := body.toRequest(r.Header.Get("Idempotency-Key"))
	if verr != nil {
		writeError(w, verr)
		return
	}

	hotelID := chi.URLParam(r, "id")
	hotel, err := h.Bookings.Hotel(r.Context(), hotelID)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Checker.Check(hotel, req.Dates, req.Occupancy); err != nil {
		writeError(w, err)
		return
	}

	booking, err := h.Bookings.Record(r.Context(), hotelID, p, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toBookingJSON(hotelID, booking))
}

// ---- owner surface ----

func (h *Handlers) listMyHotels(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r)
	hotels, err := h.Listings.ListOwned(r.Context(), p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toHotelsJSON(hotels))
}

func (h *Handlers) getMyHotel(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r)
	hotel, err := h.Listings.GetOwned(r.Context(), p, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toHotelJSON(hotel))
}

func (h *Handlers) createHotel(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r)
	in, files, verr := parseHotelForm(r)
	if verr != nil {
		writeError(w, verr)
		return
	}
	hotel, err := h.Listings.Create(r.Context(), p, in, files)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toHotelJSON(hotel))
}

func (h *Handlers) updateHotel(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r)
	in, files, verr := parseHotelForm(r)
	if verr != nil {
		writeError(w, verr)
		return
	}
	hotel, err := h.Listings.Update(r.Context(), p, chi.URLParam(r, "id"), in, files)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toHotelJSON(hotel))
}

// ---- users ----

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	u, err := h.Users.Register(r.Context(), app.RegisterInput{
		Email: body.Email, Password: body.Password,
		FirstName: body.FirstName, LastName: body.LastName,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUserJSON(u))
}

func (h *Handlers) updateProfile(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r)
	var body struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Password  string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	u, err := h.Users.UpdateProfile(r.Context(), p, app.ProfileUpdate{
		FirstName: body.FirstName, LastName: body.LastName, Password: body.Password,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserJSON(u))
}
