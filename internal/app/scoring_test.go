package app_test

import (
	"errors"
	"testing"

	"propwise/internal/app"
	"propwise/internal/domain"
)

func TestPriceRecommendation(t *testing.T) {
	cases := []struct {
		listed, predicted float64
		want              domain.Recommendation
	}{
		{80, 100, domain.Underpriced},  // -20%
		{89, 100, domain.Underpriced},  // -11%
		{90, 100, domain.FairlyPriced}, // -10% is inside the band
		{100, 100, domain.FairlyPriced},
		{110, 100, domain.FairlyPriced}, // +10%
		{111, 100, domain.Overpriced},
		{150, 100, domain.Overpriced},
	}
	for _, c := range cases {
		got, err := app.PriceRecommendation(c.listed, c.predicted)
		if err != nil {
			t.Fatalf("(%v,%v): unexpected err %v", c.listed, c.predicted, err)
		}
		if got != c.want {
			t.Errorf("(%v,%v): got %q, want %q", c.listed, c.predicted, got, c.want)
		}
	}
}

func TestPriceRecommendation_NonPositivePrediction(t *testing.T) {
	for _, p := range []float64{0, -5} {
		if _, err := app.PriceRecommendation(50, p); !errors.Is(err, domain.ErrNonPositivePrediction) {
			t.Fatalf("predicted=%v: expected ErrNonPositivePrediction, got %v", p, err)
		}
	}
}

func TestInvestmentScore(t *testing.T) {
	cases := []struct {
		listed, predicted float64
		want              int
	}{
		{90, 100, 70},
		{100, 100, 50},
		{150, 100, 0},  // clamped
		{60, 100, 100}, // 50+80 clamped
		{75, 100, 100}, // exactly 100
		{95, 100, 60},
		{42, 0, 50},
		{42, -3, 50},
	}
	for _, c := range cases {
		if got := app.InvestmentScore(c.listed, c.predicted); got != c.want {
			t.Errorf("(%v,%v): got %d, want %d", c.listed, c.predicted, got, c.want)
		}
	}
}

func TestInvestmentScore_Monotonic(t *testing.T) {
	prev := -1
	for listed := 200.0; listed >= 0; listed -= 2.5 {
		s := app.InvestmentScore(listed, 100)
		if s < prev {
			t.Fatalf("score decreased at listed=%v: %d < %d", listed, s, prev)
		}
		if s < 0 || s > 100 {
			t.Fatalf("score out of range: %d", s)
		}
		prev = s
	}
}

func TestDealRating_Boundaries(t *testing.T) {
	cases := []struct {
		listed float64
		want   domain.DealRating
	}{
		{90, domain.DealExcellent},
		{90.1, domain.DealGood},
		{97, domain.DealGood},
		{97.1, domain.DealFair},
		{110, domain.DealFair},
		{110.1, domain.DealOverpriced},
	}
	for _, c := range cases {
		if got := app.DealRating(c.listed, 100); got != c.want {
			t.Errorf("ratio %.3f: got %q, want %q", c.listed/100, got, c.want)
		}
	}
	if got := app.DealRating(10, 0); got != domain.DealFair {
		t.Errorf("predicted=0: got %q, want Fair", got)
	}
}

func TestDealClass(t *testing.T) {
	want := map[domain.DealRating]string{
		domain.DealExcellent:  "deal-excellent",
		domain.DealGood:       "deal-good",
		domain.DealFair:       "deal-fair",
		domain.DealOverpriced: "deal-overpriced",
		"Legendary":           "deal-fair",
		"":                    "deal-fair",
	}
	for r, w := range want {
		if got := app.DealClass(r); got != w {
			t.Errorf("%q: got %q, want %q", r, got, w)
		}
	}
}

func TestAppraise(t *testing.T) {
	m := &fakeModel{price: 100.004}
	a, err := app.Appraise(m, domain.Listing{ID: 7, Location: "Aundh", Sqft: 1200, Bath: 2, BHK: 2, ListedPrice: 80})
	if err != nil {
		t.Fatalf("Appraise: %v", err)
	}
	if a.ID != 7 || a.PredictedPrice != 100 {
		t.Fatalf("unexpected appraisal: %+v", a)
	}
	if a.Recommendation != domain.Underpriced || a.DealRating != domain.DealExcellent || a.DealClass != "deal-excellent" {
		t.Fatalf("unexpected labels: %+v", a)
	}
	if a.InvestmentScore != 90 {
		t.Fatalf("score: %d", a.InvestmentScore)
	}
	if m.lastLocation != "Aundh" || m.lastBHK != 2 {
		t.Fatalf("model called with wrong inputs: %+v", m)
	}

}

func TestAppraise_NonPositiveEstimateIsMarkedNotFatal(t *testing.T) {
	for _, p := range []float64{0, -9.4} {
		a, err := app.Appraise(&fakeModel{price: p}, domain.Listing{ID: 11, ListedPrice: 5})
		if err != nil {
			t.Fatalf("predicted=%v: unexpected err %v", p, err)
		}
		if a.Recommendation != domain.NoEstimate || a.DealRating != domain.DealFair || a.InvestmentScore != 50 {
			t.Fatalf("predicted=%v: unexpected appraisal %+v", p, a)
		}
	}
}
