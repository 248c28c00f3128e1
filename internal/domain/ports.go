package domain

import (
	"context"
	"io"
)

type ListingRepository interface {
	// Write paths
	InsertListing(ctx context.Context, l Listing) (int64, error)
	InsertInquiry(ctx context.Context, i Inquiry) (int64, error)

	// Read paths
	GetListing(ctx context.Context, id int64) (Listing, error)
	FindListings(ctx context.Context, f ListingFilter) (ListingPage, error)
	AllListings(ctx context.Context) ([]Listing, error)
	DistinctLocations(ctx context.Context) ([]string, error)
	ListInquiries(ctx context.Context) ([]InquiryView, error)
}

// PriceModel is the pre-trained regression model.
type PriceModel interface {
	PredictPrice(location string, sqft float64, bath, bhk int) (float64, error)
	// Locations lists the locations the model has a one-hot column for.
	Locations() []string
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

type ImageStore interface {
	// Save stores the upload and returns the sanitized file name it was written under.
	Save(name string, r io.Reader) (string, error)
}

type ChartRenderer interface {
	Render(ctx context.Context, charts []Chart) error
}

type InquiryNotifier interface {
	InquiryCreated(ctx context.Context, iv InquiryView) error
}

// Read models & queries

type SortKey string

const (
	SortNewest    SortKey = "new"
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
)

// PageSize is the fixed number of listings on one page.
const PageSize = 9

type ListingFilter struct {
	Q        string // substring of location
	Location string // exact location
	BHK      *int
	MinPrice *float64
	MaxPrice *float64
	Sort     SortKey
	Page     int // 1-based
}

type ListingPage struct {
	Items      []Listing
	Total      int
	Page       int
	TotalPages int
}

// TotalPages is never below 1, even for an empty result.
func TotalPages(total int) int {
	if total <= 0 {
		return 1
	}
	return (total + PageSize - 1) / PageSize
}
