package app_test

import (
	"context"
	"errors"
	"io"
	"sort"

	"propwise/internal/domain"
)

// ---- fakes ----

type fakeModel struct {
	price        float64
	locations    []string
	lastLocation string
	lastBHK      int
}

func (m *fakeModel) PredictPrice(location string, sqft float64, bath, bhk int) (float64, error) {
	m.lastLocation, m.lastBHK = location, bhk
	return m.price, nil
}
func (m *fakeModel) Locations() []string { return m.locations }

type fakeRepo struct {
	listings       []domain.Listing
	inquiries      []domain.Inquiry
	distinctCalls  int
	lastFilter     domain.ListingFilter
	failInquiryIns bool
}

func (f *fakeRepo) InsertListing(ctx context.Context, l domain.Listing) (int64, error) {
	l.ID = int64(len(f.listings) + 1)
	f.listings = append(f.listings, l)
	return l.ID, nil
}
func (f *fakeRepo) InsertInquiry(ctx context.Context, i domain.Inquiry) (int64, error) {
	if f.failInquiryIns {
		return 0, errors.New("db down")
	}
	i.ID = int64(len(f.inquiries) + 1)
	f.inquiries = append(f.inquiries, i)
	return i.ID, nil
}
func (f *fakeRepo) GetListing(ctx context.Context, id int64) (domain.Listing, error) {
	for _, l := range f.listings {
		if l.ID == id {
			return l, nil
		}
	}
	return domain.Listing{}, domain.ErrNotFound
}
func (f *fakeRepo) FindListings(ctx context.Context, q domain.ListingFilter) (domain.ListingPage, error) {
	f.lastFilter = q
	return domain.ListingPage{Items: f.listings, Total: len(f.listings), Page: 1, TotalPages: domain.TotalPages(len(f.listings))}, nil
}
func (f *fakeRepo) AllListings(ctx context.Context) ([]domain.Listing, error) { return f.listings, nil }
func (f *fakeRepo) DistinctLocations(ctx context.Context) ([]string, error) {
	f.distinctCalls++
	seen := map[string]bool{}
	var out []string
	for _, l := range f.listings {
		if !seen[l.Location] {
			seen[l.Location] = true
			out = append(out, l.Location)
		}
	}
	sort.Strings(out)
	return out, nil
}
func (f *fakeRepo) ListInquiries(ctx context.Context) ([]domain.InquiryView, error) {
	var out []domain.InquiryView
	for i := len(f.inquiries) - 1; i >= 0; i-- {
		out = append(out, domain.InquiryView{Inquiry: f.inquiries[i]})
	}
	return out, nil
}

type fakeCache struct {
	store map[string]any
	dels  []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	if d, ok := dst.(*[]string); ok {
		*d = append([]string(nil), v.([]string)...)
	}
	return true, nil
}
func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}
func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.dels = append(c.dels, key)
	delete(c.store, key)
	return nil
}

type fakeImages struct{ saved map[string]string }

func (f *fakeImages) Save(name string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if f.saved == nil {
		f.saved = map[string]string{}
	}
	f.saved[name] = string(b)
	return "clean-" + name, nil
}

type fakeNotifier struct {
	got []domain.InquiryView
	err error
}

func (n *fakeNotifier) InquiryCreated(ctx context.Context, iv domain.InquiryView) error {
	n.got = append(n.got, iv)
	return n.err
}

type fakeRenderer struct {
	charts []domain.Chart
	err    error
}

func (r *fakeRenderer) Render(ctx context.Context, cs []domain.Chart) error {
	r.charts = append(r.charts, cs...)
	return r.err
}

func (r *fakeRenderer) chart(file string) (domain.Chart, bool) {
	for _, c := range r.charts {
		if c.File == file {
			return c, true
		}
	}
	return domain.Chart{}, false
}

func ptr[T any](v T) *T { return &v }

func seedListings() []domain.Listing {
	return []domain.Listing{
		{ID: 1, Location: "Aundh", Sqft: 1200, Bath: 2, BHK: 2, ListedPrice: 75},
		{ID: 2, Location: "Baner", Sqft: 1500, Bath: 3, BHK: 3, ListedPrice: 120},
		{ID: 3, Location: "Wakad", Sqft: 900, Bath: 2, BHK: 2, ListedPrice: 55},
		{ID: 4, Location: "Baner", Sqft: 1000, Bath: 2, BHK: 2, ListedPrice: 80},
	}
}
