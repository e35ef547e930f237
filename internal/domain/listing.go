package domain

import (
	"cmp"
	"slices"
	"strings"
)

type SortKey string

const (
	SortNone   SortKey = ""
	SortRating SortKey = "rating"
	SortPrice  SortKey = "price"
)

func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortNone, SortRating, SortPrice:
		return k, nil
	}
	return SortNone, invalid(ErrInvalidInput, "sort must be one of: rating, price")
}

// FilterHotels returns the hotels whose name or location contains query
// (case-insensitive), ordered by sort. The input slice is never modified and
// equal keys keep their input order.
func FilterHotels(hotels []Hotel, query string, sort SortKey) []Hotel {
	out := make([]Hotel, 0, len(hotels))
	if strings.TrimSpace(query) == "" {
		out = append(out, hotels...)
	} else {
		q := strings.ToLower(query)
		for _, h := range hotels {
			if strings.Contains(strings.ToLower(h.Name), q) ||
				strings.Contains(strings.ToLower(h.Location), q) {
				out = append(out, h)
			}
		}
	}

	switch sort {
	case SortRating:
		slices.SortStableFunc(out, func(a, b Hotel) int { return cmp.Compare(b.Rating, a.Rating) })
	case SortPrice:
		slices.SortStableFunc(out, func(a, b Hotel) int { return cmp.Compare(a.Price, b.Price) })
	}
	return out
}
