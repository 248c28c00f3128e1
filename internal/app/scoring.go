package app

import (
	"errors"
	"math"

	"propwise/internal/domain"
)

// Fixed thresholds. Not configurable.
const (
	recommendationBand = 10.0 // percent either side of the estimate

	excellentRatio = 0.90
	goodRatio      = 0.97
	fairRatio      = 1.10

	neutralScore = 50
)

// PriceRecommendation compares the listed price to the estimate.
// A non-positive estimate has no meaningful percentage difference and is
// reported as ErrNonPositivePrediction rather than guessed at.
func PriceRecommendation(listed, predicted float64) (domain.Recommendation, error) {
	if predicted <= 0 {
		return "", domain.ErrNonPositivePrediction
	}
	pct := (listed - predicted) / predicted * 100
	switch {
	case pct < -recommendationBand:
		return domain.Underpriced, nil
	case pct > recommendationBand:
		return domain.Overpriced, nil
	default:
		return domain.FairlyPriced, nil
	}
}

// InvestmentScore maps the discount to a 0..100 score; 10% under the estimate is 70.
func InvestmentScore(listed, predicted float64) int {
	if predicted <= 0 {
		return neutralScore
	}
	diffRatio := (predicted - listed) / predicted
	score := neutralScore + diffRatio*200
	score = math.Max(0, math.Min(100, score))
	return int(math.Round(score))
}

func DealRating(listed, predicted float64) domain.DealRating {
	if predicted <= 0 {
		return domain.DealFair
	}
	ratio := listed / predicted
	switch {
	case ratio <= excellentRatio:
		return domain.DealExcellent
	case ratio <= goodRatio:
		return domain.DealGood
	case ratio <= fairRatio:
		return domain.DealFair
	default:
		return domain.DealOverpriced
	}
}

var dealClasses = map[domain.DealRating]string{
	domain.DealExcellent:  "deal-excellent",
	domain.DealGood:       "deal-good",
	domain.DealFair:       "deal-fair",
	domain.DealOverpriced: "deal-overpriced",
}

// DealClass is the CSS tag for a rating; unknown ratings look like Fair.
func DealClass(r domain.DealRating) string {
	if c, ok := dealClasses[r]; ok {
		return c
	}
	return dealClasses[domain.DealFair]
}

// Appraise runs the model for l and derives every annotation from the estimate.
// A non-positive estimate still yields an appraisal, marked NoEstimate with the
// neutral score and rating, so one odd listing never hides the others.
func Appraise(m domain.PriceModel, l domain.Listing) (domain.Appraisal, error) {
	predicted, err := m.PredictPrice(l.Location, l.Sqft, l.Bath, l.BHK)
	if err != nil {
		return domain.Appraisal{}, err
	}
	rec, err := PriceRecommendation(l.ListedPrice, predicted)
	if errors.Is(err, domain.ErrNonPositivePrediction) {
		rec = domain.NoEstimate
	} else if err != nil {
		return domain.Appraisal{}, err
	}
	rating := DealRating(l.ListedPrice, predicted)
	return domain.Appraisal{
		Listing:         l,
		PredictedPrice:  round2(predicted),
		Recommendation:  rec,
		DealRating:      rating,
		DealClass:       DealClass(rating),
		InvestmentScore: InvestmentScore(l.ListedPrice, predicted),
	}, nil
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
