package app

import (
	"context"
	"fmt"
	"time"

	"propwise/internal/domain"
)

const locationsKey = "locations"

type ListingService struct {
	repo     domain.ListingRepository
	model    domain.PriceModel
	cache    domain.Cache // optional
	cacheTTL time.Duration
	images   domain.ImageStore
	notifier domain.InquiryNotifier
}

func NewListingService(r domain.ListingRepository, m domain.PriceModel, c domain.Cache, ttl time.Duration,
	images domain.ImageStore, n domain.InquiryNotifier) *ListingService {
	return &ListingService{repo: r, model: m, cache: c, cacheTTL: ttl, images: images, notifier: n}
}

// BrowseResult is one annotated page of listings plus the location filter choices.
type BrowseResult struct {
	Items      []domain.Appraisal
	Total      int
	Page       int
	TotalPages int
	Locations  []string
}

func (s *ListingService) Browse(ctx context.Context, f domain.ListingFilter) (BrowseResult, error) {
	page, err := s.repo.FindListings(ctx, f)
	if err != nil {
		return BrowseResult{}, fmt.Errorf("find listings: %w", err)
	}
	items, err := s.appraiseAll(page.Items)
	if err != nil {
		return BrowseResult{}, err
	}
	locs, err := s.distinctLocations(ctx)
	if err != nil {
		return BrowseResult{}, err
	}
	return BrowseResult{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		TotalPages: page.TotalPages,
		Locations:  locs,
	}, nil
}

// EstimateInput is a one-off prediction request from the browse page.
type EstimateInput struct {
	Location    string
	Sqft        float64
	Bath        int
	BHK         int
	ListedPrice float64
}

type Estimate struct {
	PredictedPrice float64
	Recommendation domain.Recommendation
}

func (s *ListingService) Estimate(in EstimateInput) (Estimate, error) {
	predicted, err := s.model.PredictPrice(in.Location, in.Sqft, in.Bath, in.BHK)
	if err != nil {
		return Estimate{}, fmt.Errorf("predict: %w", err)
	}
	rec, err := PriceRecommendation(in.ListedPrice, predicted)
	if err != nil {
		return Estimate{}, err
	}
	return Estimate{PredictedPrice: round2(predicted), Recommendation: rec}, nil
}

// Detail returns the annotated listing, or domain.ErrNotFound.
func (s *ListingService) Detail(ctx context.Context, id int64) (domain.Appraisal, error) {
	l, err := s.repo.GetListing(ctx, id)
	if err != nil {
		return domain.Appraisal{}, err
	}
	return Appraise(s.model, l)
}

// LocationChoices lists the locations offered on the add form: the model's
// own locations, or the stored ones when the model has none.
func (s *ListingService) LocationChoices(ctx context.Context) ([]string, error) {
	if locs := s.model.Locations(); len(locs) > 0 {
		return locs, nil
	}
	return s.distinctLocations(ctx)
}

func (s *ListingService) Inquiries(ctx context.Context) ([]domain.InquiryView, error) {
	return s.repo.ListInquiries(ctx)
}

func (s *ListingService) appraiseAll(ls []domain.Listing) ([]domain.Appraisal, error) {
	out := make([]domain.Appraisal, 0, len(ls))
	for _, l := range ls {
		a, err := Appraise(s.model, l)
		if err != nil {
			return nil, fmt.Errorf("appraise listing %d: %w", l.ID, err)
		}
		out = append(out, a)
	}
	return out, nil
}

func (s *ListingService) distinctLocations(ctx context.Context) ([]string, error) {
	var locs []string
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, locationsKey, &locs); ok {
			return locs, nil
		}
	}
	locs, err := s.repo.DistinctLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("distinct locations: %w", err)
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, locationsKey, locs, int(s.cacheTTL.Seconds()))
	}
	return locs, nil
}
