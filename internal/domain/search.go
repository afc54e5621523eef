package domain

// PageSize is the fixed search page size.
const PageSize = 5

type SortKey string

const (
	SortDefault   SortKey = ""                 // ascending by lastUpdated
	SortStars     SortKey = "starRating"       // descending by star rating
	SortPrice     SortKey = "pricePerNight"    // ascending by price
	SortPriceAsc  SortKey = "pricePerNightAsc" // ascending by price
	SortPriceDesc SortKey = "pricePerNightDesc"
)

func (k SortKey) Valid() bool {
	switch k {
	case SortDefault, SortStars, SortPrice, SortPriceAsc, SortPriceDesc:
		return true
	}
	return false
}

// SearchRequest is a well-typed search; boundary parsing rejects malformed
// numerics before one of these is built.
type SearchRequest struct {
	Destination string
	Dates       DateRange
	Occupancy   Occupancy
	Stars       []int
	Types       []string
	Facilities  []string
	MaxPrice    *float64
	Sort        SortKey
	Page        int
}

type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Pages int `json:"pages"`
}

type SearchResult struct {
	Data       []Hotel    `json:"data"`
	Pagination Pagination `json:"pagination"`
}
