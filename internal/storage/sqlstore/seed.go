package sqlstore

import (
	"context"
	"fmt"

	"propwise/internal/domain"
)

// SeedListings is the starter data set: ten Pune listings, prices in lakhs.
var SeedListings = []domain.Listing{
	{Location: "Aundh", Sqft: 1200, Bath: 2, BHK: 2, ListedPrice: 75},
	{Location: "Baner", Sqft: 1500, Bath: 3, BHK: 3, ListedPrice: 120},
	{Location: "Wakad", Sqft: 1000, Bath: 2, BHK: 2, ListedPrice: 65},
	{Location: "Kothrud", Sqft: 1800, Bath: 3, BHK: 3, ListedPrice: 140},
	{Location: "Hinjewadi", Sqft: 900, Bath: 2, BHK: 2, ListedPrice: 55},
	{Location: "Viman Nagar", Sqft: 1300, Bath: 2, BHK: 3, ListedPrice: 95},
	{Location: "Pimpri", Sqft: 850, Bath: 1, BHK: 2, ListedPrice: 45},
	{Location: "Kharadi", Sqft: 1100, Bath: 2, BHK: 2, ListedPrice: 78},
	{Location: "Hadapsar", Sqft: 1050, Bath: 2, BHK: 2, ListedPrice: 72},
	{Location: "Sinhagad Road", Sqft: 1250, Bath: 2, BHK: 3, ListedPrice: 88},
}

// Seed inserts SeedListings when the properties table is empty.
// It returns the number of rows inserted.
func (r *Repo) Seed(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countListingsSQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("seed: count: %w", err)
	}
	if n > 0 {
		return 0, nil
	}
	for _, l := range SeedListings {
		if _, err := r.InsertListing(ctx, l); err != nil {
			return 0, fmt.Errorf("seed: %w", err)
		}
	}
	return len(SeedListings), nil
}
