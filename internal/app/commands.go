package app

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"propwise/internal/domain"
)

// SubmitInquiry stores an inquiry for an existing listing and then notifies
// listeners. Notification failures are logged only.
func (s *ListingService) SubmitInquiry(ctx context.Context, in domain.Inquiry) (domain.Appraisal, error) {
	l, err := s.repo.GetListing(ctx, in.PropertyID)
	if err != nil {
		return domain.Appraisal{}, err
	}
	id, err := s.repo.InsertInquiry(ctx, in)
	if err != nil {
		return domain.Appraisal{}, fmt.Errorf("insert inquiry: %w", err)
	}
	in.ID = id

	if s.notifier != nil {
		iv := domain.InquiryView{
			Inquiry:     in,
			Location:    l.Location,
			Sqft:        l.Sqft,
			BHK:         l.BHK,
			Bath:        l.Bath,
			ListedPrice: l.ListedPrice,
		}
		if err := s.notifier.InquiryCreated(ctx, iv); err != nil {
			log.Warn().Err(err).Int64("inquiry_id", id).Msg("inquiry notification failed")
		}
	}
	return Appraise(s.model, l)
}

// Upload is an optional file attached to a new listing.
type Upload struct {
	Name string
	Body io.Reader
}

// AddListing stores the image (if any) and the listing, returning the new id.
func (s *ListingService) AddListing(ctx context.Context, l domain.Listing, img *Upload) (int64, error) {
	l.Image = nil
	if img != nil && img.Name != "" {
		if s.images == nil {
			return 0, fmt.Errorf("image upload not configured")
		}
		name, err := s.images.Save(img.Name, img.Body)
		if err != nil {
			return 0, fmt.Errorf("save image: %w", err)
		}
		l.Image = &name
	}
	id, err := s.repo.InsertListing(ctx, l)
	if err != nil {
		return 0, fmt.Errorf("insert listing: %w", err)
	}
	// a new listing may add a location
	if s.cache != nil {
		_ = s.cache.Del(ctx, locationsKey)
	}
	return id, nil
}
