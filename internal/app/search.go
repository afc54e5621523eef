package app

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"stayfinder/internal/domain"
)

// SearchService composes filtered/sorted/paginated views over a listing
// snapshot. The pipeline itself is pure; the repo snapshot and the cache are
// the only I/O.
type SearchService struct {
	repo     domain.HotelRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewSearchService(r domain.HotelRepository, c domain.Cache, ttl time.Duration) *SearchService {
	return &SearchService{repo: r, cache: c, cacheTTL: ttl}
}

func (s *SearchService) Search(ctx context.Context, req domain.SearchRequest) (domain.SearchResult, error) {
	key := searchKey(req)
	var out domain.SearchResult
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}

	snap, err := s.repo.Snapshot(ctx)
	if err != nil {
		return domain.SearchResult{}, err
	}
	out = apply(snap, req)

	_ = s.cache.Set(ctx, key, out, s.cacheTTL)
	return out, nil
}

// GetHotel is the public (owner-unscoped) detail read.
func (s *SearchService) GetHotel(ctx context.Context, id string) (domain.Hotel, error) {
	key := "hotel:" + id
	var h domain.Hotel
	if ok, _ := s.cache.Get(ctx, key, &h); ok {
		return h, nil
	}
	h, err := s.repo.GetHotel(ctx, id)
	if err != nil {
		return domain.Hotel{}, err
	}
	_ = s.cache.Set(ctx, key, h, s.cacheTTL)
	return h, nil
}

// searchKey hashes the canonical request so equivalent searches share a cache
// entry. Search entries are TTL-bounded rather than invalidated per write;
// results tolerating short staleness is an accepted property of this domain.
func searchKey(req domain.SearchRequest) string {
	b, _ := json.Marshal(struct {
		D  string
		St []int
		Ty []string
		Fa []string
		MP *float64
		So domain.SortKey
		Pg int
	}{req.Destination, req.Stars, req.Types, req.Facilities, req.MaxPrice, req.Sort, req.Page})
	sum := sha1.Sum(b)
	return "search:" + hex.EncodeToString(sum[:])
}

// apply runs the full filter -> sort -> paginate pipeline over a snapshot.
// The snapshot arrives in insertion order, which is the stable tie-break for
// every sort key.
func apply(snapshot []domain.Hotel, req domain.SearchRequest) domain.SearchResult {
	filtered := make([]domain.Hotel, 0, len(snapshot))
	for _, h := range snapshot {
		if matches(h, req) {
			filtered = append(filtered, h)
		}
	}

	sortHotels(filtered, req.Sort)

	total := len(filtered)
	pages := (total + domain.PageSize - 1) / domain.PageSize
	if pages < 1 {
		pages = 1
	}
	page := req.Page
	if page < 1 {
		page = 1
	}

	skip := (page - 1) * domain.PageSize
	var data []domain.Hotel
	if skip < total {
		end := skip + domain.PageSize
		if end > total {
			end = total
		}
		data = append(data, filtered[skip:end]...)
	}

	return domain.SearchResult{
		Data:       data,
		Pagination: domain.Pagination{Total: total, Page: page, Pages: pages},
	}
}

// matches AND-combines facet predicates; stars/types are OR within the facet,
// facilities require a superset.
func matches(h domain.Hotel, req domain.SearchRequest) bool {
	if d := strings.TrimSpace(req.Destination); d != "" {
		needle := strings.ToLower(d)
		if !strings.Contains(strings.ToLower(h.City), needle) &&
			!strings.Contains(strings.ToLower(h.Country), needle) {
			return false
		}
	}
	if len(req.Stars) > 0 && !containsInt(req.Stars, h.StarRating) {
		return false
	}
	if len(req.Types) > 0 && !containsStr(req.Types, h.Type) {
		return false
	}
	for _, f := range req.Facilities {
		if !h.HasFacility(f) {
			return false
		}
	}
	if req.MaxPrice != nil && h.PricePerNight > *req.MaxPrice {
		return false
	}
	return true
}

func sortHotels(hs []domain.Hotel, key domain.SortKey) {
	switch key {
	case domain.SortStars:
		sort.SliceStable(hs, func(i, j int) bool { return hs[i].StarRating > hs[j].StarRating })
	case domain.SortPrice, domain.SortPriceAsc:
		sort.SliceStable(hs, func(i, j int) bool { return hs[i].PricePerNight < hs[j].PricePerNight })
	case domain.SortPriceDesc:
		sort.SliceStable(hs, func(i, j int) bool { return hs[i].PricePerNight > hs[j].PricePerNight })
	default:
		sort.SliceStable(hs, func(i, j int) bool { return hs[i].LastUpdated.Before(hs[j].LastUpdated) })
	}
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

func containsStr(xs []string, v string) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

// invalidateHotel drops the detail cache for one hotel after a write.
func invalidateHotel(ctx context.Context, cache domain.Cache, id string) {
	if cache == nil {
		return
	}
	_ = cache.Del(ctx, fmt.Sprintf("hotel:%s", id))
}
