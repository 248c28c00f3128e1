package notify

import (
	"context"

	"github.com/rs/zerolog/log"

	"propwise/internal/domain"
)

// Noop logs the inquiry and publishes nothing. Used when RABBITMQ_URL is unset.
type Noop struct{}

func (Noop) InquiryCreated(ctx context.Context, iv domain.InquiryView) error {
	log.Debug().Int64("inquiry_id", iv.ID).Int64("property_id", iv.PropertyID).Msg("inquiry notification skipped")
	return nil
}
