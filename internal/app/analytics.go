package app

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"propwise/internal/domain"
)

// Chart files, overwritten on every view.
const (
	ChartLocationAvg    = "loc_avg.png"
	ChartBHKAvg         = "bhk_avg.png"
	ChartRecCounts      = "rec_counts.png"
	ChartLocationPrice  = "location_price.png"
	ChartPriceHistogram = "price_distribution.png"

	topLocations       = 10
	priceHistogramBins = 15
)

type AnalyticsService struct {
	repo   domain.ListingRepository
	model  domain.PriceModel
	charts domain.ChartRenderer
	now    func() time.Time
}

func NewAnalyticsService(r domain.ListingRepository, m domain.PriceModel, c domain.ChartRenderer) *AnalyticsService {
	return &AnalyticsService{repo: r, model: m, charts: c, now: time.Now}
}

// Dashboard summarises the recommendation mix over every listing.
type Dashboard struct {
	Total   int
	Under   int
	Fair    int
	Over    int
	Version string // cache buster for chart URLs
}

// LabeledValue is one bar of an aggregate.
type LabeledValue struct {
	Label string
	Value float64
}

func (s *AnalyticsService) Dashboard(ctx context.Context) (Dashboard, error) {
	ls, err := s.listings(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	recs := make([]domain.Recommendation, 0, len(ls))
	for _, l := range ls {
		a, err := Appraise(s.model, l)
		if err != nil {
			return Dashboard{}, fmt.Errorf("appraise listing %d: %w", l.ID, err)
		}
		recs = append(recs, a.Recommendation)
	}

	locAvg := TopLocationsByAvgPrice(ls, topLocations)
	// smallest at the bottom of a horizontal chart reads top-down as largest first
	asc := make([]LabeledValue, len(locAvg))
	for i, lv := range locAvg {
		asc[len(locAvg)-1-i] = lv
	}
	bhkAvg := AvgPriceByBHK(ls)
	counts := RecommendationCounts(recs)

	err = s.charts.Render(ctx, []domain.Chart{
		bars(ChartLocationAvg, domain.HorizontalBarChart, "Top 10 Locations by Avg Listed Price",
			"Avg Listed Price (Lakhs)", "Location", asc),
		bars(ChartBHKAvg, domain.BarChart, "BHK vs Avg Listed Price", "BHK", "Avg Listed Price (Lakhs)", bhkAvg),
		bars(ChartRecCounts, domain.BarChart, "AI Recommendation Distribution", "Recommendation", "Count", counts),
	})
	if err != nil {
		return Dashboard{}, fmt.Errorf("render dashboard charts: %w", err)
	}

	d := Dashboard{Total: len(ls), Version: strconv.FormatInt(s.now().Unix(), 10)}
	for _, r := range recs {
		switch r {
		case domain.Underpriced:
			d.Under++
		case domain.FairlyPriced:
			d.Fair++
		case domain.Overpriced:
			d.Over++
		}
	}
	return d, nil
}

// Analytics renders the price-by-location and price distribution charts and
// returns the cache-busting version token.
func (s *AnalyticsService) Analytics(ctx context.Context) (string, error) {
	ls, err := s.listings(ctx)
	if err != nil {
		return "", err
	}
	prices := make([]float64, len(ls))
	for i, l := range ls {
		prices[i] = l.ListedPrice
	}
	loc := bars(ChartLocationPrice, domain.BarChart, "Top 10 Locations by Average Property Price",
		"Location", "Average Price (Lakhs)", TopLocationsByAvgPrice(ls, topLocations))
	loc.Width, loc.Height = 10, 6

	err = s.charts.Render(ctx, []domain.Chart{
		loc,
		{
			File: ChartPriceHistogram, Kind: domain.Histogram,
			Title: "Property Price Distribution", XLabel: "Price (Lakhs)", YLabel: "Number of Properties",
			Values: prices, Bins: priceHistogramBins, Width: 8, Height: 5,
		},
	})
	if err != nil {
		return "", fmt.Errorf("render analytics charts: %w", err)
	}
	return strconv.FormatInt(s.now().Unix(), 10), nil
}

func (s *AnalyticsService) listings(ctx context.Context) ([]domain.Listing, error) {
	ls, err := s.repo.AllListings(ctx)
	if err != nil {
		return nil, fmt.Errorf("all listings: %w", err)
	}
	if len(ls) == 0 {
		return nil, domain.ErrNoListings
	}
	return ls, nil
}

func bars(file string, kind domain.ChartKind, title, x, y string, lvs []LabeledValue) domain.Chart {
	c := domain.Chart{File: file, Kind: kind, Title: title, XLabel: x, YLabel: y}
	for _, lv := range lvs {
		c.Labels = append(c.Labels, lv.Label)
		c.Values = append(c.Values, lv.Value)
	}
	return c
}

// TopLocationsByAvgPrice averages listed price per location and keeps the n
// highest, largest first. Ties are ordered by location name.
func TopLocationsByAvgPrice(ls []domain.Listing, n int) []LabeledValue {
	sum := map[string]float64{}
	cnt := map[string]int{}
	for _, l := range ls {
		sum[l.Location] += l.ListedPrice
		cnt[l.Location]++
	}
	out := make([]LabeledValue, 0, len(sum))
	for loc, total := range sum {
		out = append(out, LabeledValue{Label: loc, Value: total / float64(cnt[loc])})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Label < out[j].Label
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// AvgPriceByBHK averages listed price per bedroom count, ascending by BHK.
func AvgPriceByBHK(ls []domain.Listing) []LabeledValue {
	sum := map[int]float64{}
	cnt := map[int]int{}
	for _, l := range ls {
		sum[l.BHK] += l.ListedPrice
		cnt[l.BHK]++
	}
	keys := make([]int, 0, len(sum))
	for k := range sum {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	out := make([]LabeledValue, 0, len(keys))
	for _, k := range keys {
		out = append(out, LabeledValue{Label: strconv.Itoa(k), Value: sum[k] / float64(cnt[k])})
	}
	return out
}

// RecommendationCounts counts each recommendation, most frequent first.
func RecommendationCounts(recs []domain.Recommendation) []LabeledValue {
	cnt := map[domain.Recommendation]int{}
	for _, r := range recs {
		cnt[r]++
	}
	out := make([]LabeledValue, 0, len(cnt))
	for r, n := range cnt {
		out = append(out, LabeledValue{Label: string(r), Value: float64(n)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Label < out[j].Label
	})
	return out
}
