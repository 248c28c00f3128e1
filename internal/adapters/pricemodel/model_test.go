package pricemodel_test

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"propwise/internal/adapters/pricemodel"
)

func testModel(t *testing.T) *pricemodel.Model {
	t.Helper()
	m, err := pricemodel.New(
		[]string{"total_sqft", "bath", "bhk", "site_location_Aundh", "site_location_Baner"},
		10,
		[]float64{0.05, 2, 3, 7, 11},
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}

func TestPredictPrice_OneHotLocation(t *testing.T) {
	m := testModel(t)

	got, err := m.PredictPrice("Aundh", 1000, 2, 2)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	// 10 + 50 + 4 + 6 + 7
	if got != 77 {
		t.Fatalf("Aundh: got %v, want 77", got)
	}

	got, _ = m.PredictPrice("Baner", 1000, 2, 2)
	if got != 81 {
		t.Fatalf("Baner: got %v, want 81", got)
	}
}

func TestPredictPrice_UnknownLocationIsSilent(t *testing.T) {
	m := testModel(t)
	got, err := m.PredictPrice("Atlantis", 1000, 2, 2)
	if err != nil {
		t.Fatalf("unknown location should not error: %v", err)
	}
	if got != 70 {
		t.Fatalf("got %v, want 70", got)
	}
}

func TestPredictPrice_NonFiniteSqft(t *testing.T) {
	m := testModel(t)
	if _, err := m.PredictPrice("Aundh", math.NaN(), 2, 2); err == nil {
		t.Fatalf("expected error for NaN sqft")
	}
}

func TestNew_RejectsBadSchemas(t *testing.T) {
	if _, err := pricemodel.New([]string{"total_sqft", "bath"}, 0, []float64{1}); err == nil {
		t.Fatalf("expected length mismatch error")
	}
	if _, err := pricemodel.New([]string{"total_sqft", "bath", "rooms"}, 0, []float64{1, 1, 1}); err == nil {
		t.Fatalf("expected missing bhk error")
	}
	if _, err := pricemodel.New([]string{"total_sqft", "bath", "bhk", "bhk"}, 0, []float64{1, 1, 1, 1}); err == nil {
		t.Fatalf("expected duplicate column error")
	}
}

func TestLocations_SortedWithoutPrefix(t *testing.T) {
	m, err := pricemodel.New(
		[]string{"total_sqft", "bath", "bhk", "site_location_Wakad", "site_location_Aundh"},
		0, []float64{0, 0, 0, 0, 0},
	)
	if err != nil {
		t.Fatal(err)
	}
	got := strings.Join(m.Locations(), ",")
	if got != "Aundh,Wakad" {
		t.Fatalf("locations: %s", got)
	}
}

func TestLoad_ValidatesArtifacts(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		return p
	}
	cols := write("columns.json", `["total_sqft","bath","bhk","site_location_Aundh"]`)
	good := write("model.json", `{"intercept": 1, "coefficients": [0.1, 1, 1, 5]}`)
	bad := write("bad.json", `{"intercept": "one", "coefficients": [0.1, 1, 1, 5]}`)

	m, err := pricemodel.Load(good, cols)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	got, _ := m.PredictPrice("Aundh", 100, 1, 1)
	if math.Abs(got-18) > 1e-9 {
		t.Fatalf("got %v, want 18", got)
	}

	if _, err := pricemodel.Load(bad, cols); err == nil {
		t.Fatalf("expected schema error for string intercept")
	}
	if _, err := pricemodel.Load(filepath.Join(dir, "missing.json"), cols); err == nil {
		t.Fatalf("expected read error")
	}
}

func TestLoad_ShippedArtifact(t *testing.T) {
	m, err := pricemodel.Load("../../../model/model.json", "../../../model/columns.json")
	if err != nil {
		t.Fatalf("Load shipped model: %v", err)
	}
	if len(m.Locations()) != 10 {
		t.Fatalf("expected 10 locations, got %v", m.Locations())
	}
	p, err := m.PredictPrice("Aundh", 1200, 2, 2)
	if err != nil || p <= 0 {
		t.Fatalf("unexpected prediction %v, %v", p, err)
	}
}
