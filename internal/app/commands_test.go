package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"propwise/internal/app"
	"propwise/internal/domain"
)

func TestSubmitInquiry_PersistsAndNotifies(t *testing.T) {
	repo := &fakeRepo{listings: seedListings()}
	n := &fakeNotifier{}
	s := app.NewListingService(repo, &fakeModel{price: 100}, nil, time.Minute, nil, n)

	a, err := s.SubmitInquiry(context.Background(), domain.Inquiry{PropertyID: 3, Name: "Asha", Phone: "98200", Message: "Visit?"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if a.ID != 3 {
		t.Fatalf("returned listing %d", a.ID)
	}
	if len(repo.inquiries) != 1 || repo.inquiries[0].PropertyID != 3 {
		t.Fatalf("inquiries = %+v", repo.inquiries)
	}
	if len(n.got) != 1 || n.got[0].Location != "Wakad" || n.got[0].ID != 1 {
		t.Fatalf("notification = %+v", n.got)
	}
}

func TestSubmitInquiry_NotifierErrorIgnored(t *testing.T) {
	repo := &fakeRepo{listings: seedListings()}
	n := &fakeNotifier{err: errors.New("broker down")}
	s := app.NewListingService(repo, &fakeModel{price: 100}, nil, time.Minute, nil, n)

	if _, err := s.SubmitInquiry(context.Background(), domain.Inquiry{PropertyID: 1, Name: "a", Phone: "1", Message: "m"}); err != nil {
		t.Fatalf("notifier failure leaked: %v", err)
	}
	if len(repo.inquiries) != 1 {
		t.Fatalf("inquiry not stored")
	}
}

func TestSubmitInquiry_UnknownListing(t *testing.T) {
	repo := &fakeRepo{listings: seedListings()}
	n := &fakeNotifier{}
	s := app.NewListingService(repo, &fakeModel{price: 100}, nil, time.Minute, nil, n)

	_, err := s.SubmitInquiry(context.Background(), domain.Inquiry{PropertyID: 42})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(repo.inquiries) != 0 || len(n.got) != 0 {
		t.Fatalf("nothing should be stored or sent")
	}
}

func TestAddListing_WithImageInvalidatesLocations(t *testing.T) {
	repo := &fakeRepo{}
	cache := &fakeCache{store: map[string]any{"locations": []string{"Aundh"}}}
	images := &fakeImages{}
	s := app.NewListingService(repo, &fakeModel{price: 1}, cache, time.Minute, images, nil)

	id, err := s.AddListing(context.Background(),
		domain.Listing{Location: "Wakad", Sqft: 900, Bath: 2, BHK: 2, ListedPrice: 55},
		&app.Upload{Name: "flat.jpg", Body: strings.NewReader("jpegdata")})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if id != 1 {
		t.Fatalf("id = %d", id)
	}
	if img := repo.listings[0].Image; img == nil || *img != "clean-flat.jpg" {
		t.Fatalf("image not stored: %v", img)
	}
	if images.saved["flat.jpg"] != "jpegdata" {
		t.Fatalf("upload body not saved")
	}
	if len(cache.dels) != 1 || cache.dels[0] != "locations" {
		t.Fatalf("cache not invalidated: %v", cache.dels)
	}
}

func TestAddListing_NoImage(t *testing.T) {
	repo := &fakeRepo{}
	s := app.NewListingService(repo, &fakeModel{price: 1}, nil, time.Minute, &fakeImages{}, nil)

	if _, err := s.AddListing(context.Background(), domain.Listing{Location: "Aundh", ListedPrice: 10, Image: ptr("ignored")}, nil); err != nil {
		t.Fatal(err)
	}
	if repo.listings[0].Image != nil {
		t.Fatalf("expected no image, got %q", *repo.listings[0].Image)
	}
}
