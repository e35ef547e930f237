package domain

import (
	"math"
	"slices"
	"strings"
	"time"
)

type Review struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	UserID    string    `json:"userId" bson:"userId"`
	Author    string    `json:"userName" bson:"userName"`
	HotelID   string    `json:"hotelId" bson:"hotelId"`
	Rating    int       `json:"rating" bson:"rating"`
	Comment   string    `json:"comment" bson:"comment"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

type ReviewSummary struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}

const anonymousAuthor = "Anonymous"

func NewReview(p Principal, hotelID string, rating int, comment string, now time.Time) (Review, error) {
	if rating < 1 || rating > 5 {
		return Review{}, invalid(ErrInvalidReview, "rating must be between 1 and 5")
	}
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return Review{}, invalid(ErrInvalidReview, "please write a comment")
	}
	author := strings.TrimSpace(p.Name)
	if author == "" {
		author = anonymousAuthor
	}
	return Review{
		UserID:    p.UserID,
		Author:    author,
		HotelID:   hotelID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: now,
	}, nil
}

func SortReviewsNewestFirst(in []Review) []Review {
	out := slices.Clone(in)
	slices.SortStableFunc(out, func(a, b Review) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out
}

// SummarizeReviews averages ratings, rounded to one decimal.
func SummarizeReviews(rs []Review) ReviewSummary {
	if len(rs) == 0 {
		return ReviewSummary{}
	}
	total := 0
	for _, r := range rs {
		total += r.Rating
	}
	avg := float64(total) / float64(len(rs))
	return ReviewSummary{Count: len(rs), Average: math.Round(avg*10) / 10}
}
