package app

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"stayfinder/internal/domain"
)

// HotelInput is the typed owner submission; the boundary has already coerced
// stringified numerics, Validate enforces the business rules.
type HotelInput struct {
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

	// KeptImageURLs are the existing images the client chose to keep on update.
	KeptImageURLs []string
}

func (in HotelInput) Validate() error {
	verr := domain.NewValidationError()
	requireText(verr, "name", in.Name)
	requireText(verr, "city", in.City)
	requireText(verr, "country", in.Country)
	requireText(verr, "description", in.Description)
	requireText(verr, "type", in.Type)
	if len(in.Facilities) == 0 {
		verr.Add("facilities", "is required")
	}
	if in.PricePerNight <= 0 {
		verr.Add("pricePerNight", "must be a positive number")
	}
	if in.StarRating < domain.MinStarRating || in.StarRating > domain.MaxStarRating {
		verr.Add("starRating", fmt.Sprintf("must be between %d and %d", domain.MinStarRating, domain.MaxStarRating))
	}
	if in.AdultCount < 0 {
		verr.Add("adultCount", "must not be negative")
	}
	if in.ChildCount < 0 {
		verr.Add("childCount", "must not be negative")
	}
	return verr.OrNil()
}

func requireText(verr *domain.ValidationError, field, v string) {
	if v == "" {
		verr.Add(field, "is required")
	}
}

// ImageUpload is one multipart file, already size-bounded by the boundary.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ListingService owns the hotel mutation contract. The owner id always comes
// from the authenticated principal, never from the submission.
type ListingService struct {
	repo          domain.HotelRepository
	images        domain.ImageStore
	cache         domain.Cache
	uploadTimeout time.Duration
}

func NewListingService(r domain.HotelRepository, img domain.ImageStore, c domain.Cache, uploadTimeout time.Duration) *ListingService {
	return &ListingService{repo: r, images: img, cache: c, uploadTimeout: uploadTimeout}
}

func (s *ListingService) Create(ctx context.Context, p domain.Principal, in HotelInput, files []ImageUpload) (domain.Hotel, error) {
	if err := in.Validate(); err != nil {
		return domain.Hotel{}, err
	}

	urls, err := s.uploadAll(ctx, files)
	if err != nil {
		return domain.Hotel{}, err
	}

	h := domain.Hotel{
		ID:            uuid.NewString(),
		OwnerID:       p.UserID,
		Name:          in.Name,
		City:          in.City,
		Country:       in.Country,
		Description:   in.Description,
		Type:          in.Type,
		AdultCount:    in.AdultCount,
		ChildCount:    in.ChildCount,
		Facilities:    in.Facilities,
		PricePerNight: in.PricePerNight,
		StarRating:    in.StarRating,
		ImageURLs:     urls,
		LastUpdated:   time.Now().UTC(),
	}
	if err := s.repo.CreateHotel(ctx, h); err != nil {
		return domain.Hotel{}, err
	}
	log.Info().Str("hotel_id", h.ID).Str("owner_id", p.UserID).Msg("hotel created")
	return h, nil
}

// Update merges images kept-then-new: kept URLs stay in their existing
// relative order, fresh uploads are appended after them.
func (s *ListingService) Update(ctx context.Context, p domain.Principal, hotelID string, in HotelInput, files []ImageUpload) (domain.Hotel, error) {
	existing, err := s.repo.GetOwnedHotel(ctx, hotelID, p.UserID)
	if err != nil {
		return domain.Hotel{}, err
	}
	if err := in.Validate(); err != nil {
		return domain.Hotel{}, err
	}

	uploaded, err := s.uploadAll(ctx, files)
	if err != nil {
		return domain.Hotel{}, err
	}

	h := existing
	h.Name = in.Name
	h.City = in.City
	h.Country = in.Country
	h.Description = in.Description
	h.Type = in.Type
	h.AdultCount = in.AdultCount
	h.ChildCount = in.ChildCount
	h.Facilities = in.Facilities
	h.PricePerNight = in.PricePerNight
	h.StarRating = in.StarRating
	h.ImageURLs = append(append([]string{}, in.KeptImageURLs...), uploaded...)
	h.LastUpdated = time.Now().UTC()

	if err := s.repo.UpdateHotel(ctx, h); err != nil {
		return domain.Hotel{}, err
	}
	invalidateHotel(ctx, s.cache, h.ID)
	log.Info().Str("hotel_id", h.ID).Str("owner_id", p.UserID).Msg("hotel updated")
	return h, nil
}

func (s *ListingService) ListOwned(ctx context.Context, p domain.Principal) ([]domain.Hotel, error) {
	return s.repo.ListOwnedHotels(ctx, p.UserID)
}

func (s *ListingService) GetOwned(ctx context.Context, p domain.Principal, hotelID string) (domain.Hotel, error) {
	return s.repo.GetOwnedHotel(ctx, hotelID, p.UserID)
}

// uploadAll pushes every file concurrently and joins all-or-nothing: a single
// rejected upload fails the whole request. Result order follows file order.
func (s *ListingService) uploadAll(ctx context.Context, files []ImageUpload) ([]string, error) {
	if len(files) == 0 {
		return nil, nil
	}
	if len(files) > domain.MaxImageFiles {
		verr := domain.NewValidationError()
		verr.Add("imageFiles", fmt.Sprintf("at most %d images per request", domain.MaxImageFiles))
		return nil, verr
	}

	ctx, cancel := context.WithTimeout(ctx, s.uploadTimeout)
	defer cancel()

	urls := make([]string, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			name := uuid.NewString() + path.Ext(f.Filename)
			url, err := s.images.Upload(gctx, name, f.ContentType, f.Data)
			if err != nil {
				return &domain.UpstreamError{Op: "image upload", Err: err}
			}
			urls[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return urls, nil
}
