package dataset

import (
	"strings"
	"time"

	"listingdash/adapters/csvframe"
	"listingdash/domain/listing"
)

// PriceCapQuantile is the quantile of positive prices above which rows are dropped
const PriceCapQuantile = 0.99

var reviewDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
}

// Clean drops non-positive prices and prices above the positive-price P99,
// parses last_review and derives price_per_review. Row order is preserved.
func Clean(records []csvframe.Record, sourcePath string) *listing.Dataset {
	positive := make([]csvframe.Record, 0, len(records))
	prices := make([]float64, 0, len(records))
	for _, r := range records {
		if r.Price > 0 {
			positive = append(positive, r)
			prices = append(prices, r.Price)
		}
	}

	threshold := Quantile(prices, PriceCapQuantile)

	cleaned := make([]listing.Listing, 0, len(positive))
	for _, r := range positive {
		if !(r.Price <= threshold) {
			continue
		}
		l := r.Listing
		l.LastReview = ParseReviewDate(r.LastReview)
		l.PricePerReview = l.Price / float64(l.NumberOfReviews+1)
		cleaned = append(cleaned, l)
	}

	if len(prices) == 0 {
		threshold = 0
	}
	return listing.NewDataset(cleaned, sourcePath, len(records), threshold)
}

// ParseReviewDate returns nil for empty or unparseable values
func ParseReviewDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range reviewDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}
