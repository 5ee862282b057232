package cafe

import (
	"sort"
	"strings"

	"github.com/BruksfildServices01/ratemycafe/internal/domain/review"
	"github.com/BruksfildServices01/ratemycafe/internal/httperr"
	"github.com/BruksfildServices01/ratemycafe/internal/models"
)

// TopN is the length of the "most reviewed" and "highest rated" views.
const TopN = 5

type SortMode string

const (
	SortAlphabetical SortMode = "alphabetical"
	SortMostReviewed SortMode = "most_reviewed"
	SortHighestRated SortMode = "highest_rated"
)

func ParseSortMode(s string) (SortMode, error) {
	switch SortMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortAlphabetical:
		return SortAlphabetical, nil
	case SortMostReviewed:
		return SortMostReviewed, nil
	case SortHighestRated:
		return SortHighestRated, nil
	}
	return "", httperr.ErrBusinessMsg("invalid_sort", "Unknown sort mode.")
}

// Stats are the raw review aggregates of one cafe.
type Stats struct {
	Count int
	Sum   int
}

func (s Stats) Average() float64 {
	return review.Average(s.Sum, s.Count)
}

type Distance struct {
	Km    float64 `json:"km"`
	Label string  `json:"label"`
}

type Listing struct {
	Cafe          models.Cafe `json:"cafe"`
	ReviewCount   int         `json:"review_count"`
	AverageRating float64     `json:"average_rating"`
	Distance      *Distance   `json:"distance,omitempty"`
}

// BuildListings joins cafes with their review stats and, when origin is
// known, the distance to every cafe that has coordinates.
func BuildListings(cafes []models.Cafe, stats map[string]Stats, origin *Point) []Listing {
	out := make([]Listing, 0, len(cafes))
	for _, c := range cafes {
		s := stats[c.ID]
		l := Listing{
			Cafe:          c,
			ReviewCount:   s.Count,
			AverageRating: s.Average(),
		}
		if origin != nil && c.HasCoordinates() {
			km := HaversineKm(*origin, Point{Lat: *c.Lat, Lng: *c.Lng})
			l.Distance = &Distance{Km: km, Label: FormatDistance(km)}
		}
		out = append(out, l)
	}
	return out
}

// Search keeps the listings whose name contains query, ignoring case.
func Search(listings []Listing, query string) []Listing {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return listings
	}

	out := make([]Listing, 0, len(listings))
	for _, l := range listings {
		if strings.Contains(strings.ToLower(l.Cafe.Name), q) {
			out = append(out, l)
		}
	}
	return out
}

// Rank orders a copy of listings by mode. Ties fall back to the cafe id so
// the order never depends on the input order. The two top views are cut to TopN.
func Rank(listings []Listing, mode SortMode) []Listing {
	out := make([]Listing, len(listings))
	copy(out, listings)

	byID := func(i, j int) bool { return out[i].Cafe.ID < out[j].Cafe.ID }

	switch mode {
	case SortMostReviewed:
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].ReviewCount != out[j].ReviewCount {
				return out[i].ReviewCount > out[j].ReviewCount
			}
			return byID(i, j)
		})
	case SortHighestRated:
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].AverageRating != out[j].AverageRating {
				return out[i].AverageRating > out[j].AverageRating
			}
			return byID(i, j)
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			ni, nj := strings.ToLower(out[i].Cafe.Name), strings.ToLower(out[j].Cafe.Name)
			if ni != nj {
				return ni < nj
			}
			return byID(i, j)
		})
		return out
	}

	if len(out) > TopN {
		out = out[:TopN]
	}
	return out
}
