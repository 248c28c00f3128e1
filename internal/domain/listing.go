package domain

// Listing is one advertised property. Prices are in lakhs.
type Listing struct {
	ID          int64
	Location    string
	Sqft        float64
	Bath        int
	BHK         int
	ListedPrice float64
	Image       *string // file name under the upload dir
}

type Recommendation string

const (
	Underpriced  Recommendation = "Underpriced"
	FairlyPriced Recommendation = "Fairly Priced"
	Overpriced   Recommendation = "Overpriced"

	// NoEstimate marks a listing whose model estimate is not positive.
	NoEstimate Recommendation = "No estimate"
)

type DealRating string

const (
	DealExcellent  DealRating = "Excellent"
	DealGood       DealRating = "Good"
	DealFair       DealRating = "Fair"
	DealOverpriced DealRating = "Overpriced"
)

// Appraisal is a Listing annotated with the model estimate.
// Always recomputed from the listing; never persisted or cached.
type Appraisal struct {
	Listing
	PredictedPrice  float64
	Recommendation  Recommendation
	DealRating      DealRating
	DealClass       string
	InvestmentScore int
}
