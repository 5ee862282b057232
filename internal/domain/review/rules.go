package review

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/BruksfildServices01/ratemycafe/internal/httperr"
)

const (
	MinRating        = 1
	MaxRating        = 5
	MaxCommentLength = 500
)

// ===============================
// Validations
// ===============================

func ValidateRating(rating int) error {
	if rating == 0 {
		return httperr.ErrBusinessMsg("rating_required", "Please select a rating")
	}
	if rating < MinRating || rating > MaxRating {
		return httperr.ErrBusinessMsg("invalid_rating", "Rating must be between 1 and 5")
	}
	return nil
}

// NormalizeComment trims comment and checks its length in characters.
func NormalizeComment(comment string) (string, error) {
	comment = strings.TrimSpace(comment)
	if utf8.RuneCountInString(comment) > MaxCommentLength {
		return "", httperr.ErrBusinessMsg("comment_too_long", "Comment must be 500 characters or less")
	}
	return comment, nil
}

// NormalizeEditedComment is NormalizeComment for edits, where an empty
// comment is rejected.
func NormalizeEditedComment(comment string) (string, error) {
	c, err := NormalizeComment(comment)
	if err != nil {
		return "", err
	}
	if c == "" {
		return "", httperr.ErrBusinessMsg("comment_required", "Comment cannot be empty")
	}
	return c, nil
}

// CanModify reports whether viewerID may edit or delete a review written by authorID.
func CanModify(viewerID, authorID string) bool {
	return viewerID != "" && viewerID == authorID
}

// Summary is the rating breakdown shown on a cafe page.
type Summary struct {
	Count         int     `json:"count"`
	AverageRating float64 `json:"average_rating"`
	// Distribution[i] counts the reviews with rating i+1.
	Distribution [MaxRating]int `json:"distribution"`
}

// Reviewer is the signed-in author as the session knows them.
type Reviewer struct {
	ID       string
	FullName string
}

// Counts reports whether a stored rating takes part in counts and averages.
// Aggregate queries apply the same bounds.
func Counts(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}

// Average is the mean rating rounded to one decimal, 0.0 without reviews.
func Average(sum, count int) float64 {
	if count == 0 {
		return 0
	}
	return math.Round(float64(sum)/float64(count)*10) / 10
}

// Summarize counts ratings per star value.
func Summarize(ratings []int) Summary {
	var s Summary
	sum := 0
	for _, r := range ratings {
		if !Counts(r) {
			continue
		}
		s.Distribution[r-1]++
		s.Count++
		sum += r
	}
	s.AverageRating = Average(sum, s.Count)
	return s
}
