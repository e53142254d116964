package entities

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// MaxTextLength is the maximum length of a book title or author, in characters.
const MaxTextLength = 250

// ErrInvalidRating indicates a rating that is not a finite number
var ErrInvalidRating = errors.New("invalid rating")

// ParseRating parses a submitted rating. Only finite numbers are accepted.
func ParseRating(raw string) (float64, error) {
	rating, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(rating) || math.IsInf(rating, 0) {
		return 0, ErrInvalidRating
	}
	return rating, nil
}

// TextTooLong reports whether value exceeds the title and author column size.
func TextTooLong(value string) bool {
	return utf8.RuneCountInString(value) > MaxTextLength
}
