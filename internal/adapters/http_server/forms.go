package httpserver

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"propwise/internal/app"
	"propwise/internal/domain"
)

var validate = validator.New()

// listingForm backs both the estimate form on / and the add form.
type listingForm struct {
	Location    string  `validate:"required"`
	Sqft        float64 `validate:"gt=0"`
	Bath        int     `validate:"gt=0"`
	BHK         int     `validate:"gt=0"`
	ListedPrice float64 `validate:"gt=0"`
}

type inquiryForm struct {
	Name    string `validate:"required,max=200"`
	Phone   string `validate:"required,max=50"`
	Message string `validate:"required"`
}

// formError is a missing or malformed required field. Handlers answer it
// with 500, the same as any other failed request.
type formError struct {
	field string
	err   error
}

func (e *formError) Error() string { return fmt.Sprintf("invalid form field %q: %v", e.field, e.err) }
func (e *formError) Unwrap() error { return e.err }

func parseListingForm(r *http.Request) (listingForm, error) {
	var f listingForm
	var err error
	f.Location = r.FormValue("location")
	if f.Sqft, err = formFloat(r, "sqft"); err != nil {
		return f, err
	}
	if f.Bath, err = formInt(r, "bath"); err != nil {
		return f, err
	}
	if f.BHK, err = formInt(r, "bhk"); err != nil {
		return f, err
	}
	if f.ListedPrice, err = formFloat(r, "listed_price"); err != nil {
		return f, err
	}
	if err := validate.Struct(f); err != nil {
		return f, &formError{field: "listing", err: err}
	}
	return f, nil
}

func (f listingForm) listing() domain.Listing {
	return domain.Listing{Location: f.Location, Sqft: f.Sqft, Bath: f.Bath, BHK: f.BHK, ListedPrice: f.ListedPrice}
}

func (f listingForm) estimate() app.EstimateInput {
	return app.EstimateInput{Location: f.Location, Sqft: f.Sqft, Bath: f.Bath, BHK: f.BHK, ListedPrice: f.ListedPrice}
}

func parseInquiryForm(r *http.Request) (inquiryForm, error) {
	f := inquiryForm{
		Name:    r.FormValue("name"),
		Phone:   r.FormValue("phone"),
		Message: r.FormValue("message"),
	}
	if err := validate.Struct(f); err != nil {
		return f, &formError{field: "inquiry", err: err}
	}
	return f, nil
}

func formFloat(r *http.Request, k string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(r.FormValue(k)), 64)
	if err != nil {
		return 0, &formError{field: k, err: err}
	}
	return v, nil
}

func formInt(r *http.Request, k string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(r.FormValue(k)))
	if err != nil {
		return 0, &formError{field: k, err: err}
	}
	return v, nil
}

// filterParams echoes the raw query values back into the filter controls.
type filterParams struct {
	Q        string
	Location string
	BHK      string
	MinPrice string
	MaxPrice string
	Sort     string
}

// parseFilter reads the browse query string. Empty or unparsable values are
// dropped rather than rejected.
func parseFilter(q url.Values) (domain.ListingFilter, filterParams) {
	p := filterParams{
		Q:        strings.TrimSpace(q.Get("q")),
		Location: strings.TrimSpace(q.Get("location")),
		BHK:      strings.TrimSpace(q.Get("bhk")),
		MinPrice: strings.TrimSpace(q.Get("min_price")),
		MaxPrice: strings.TrimSpace(q.Get("max_price")),
		Sort:     q.Get("sort"),
	}
	f := domain.ListingFilter{Q: p.Q, Location: p.Location, Page: 1}

	if n, err := strconv.Atoi(p.BHK); err == nil {
		f.BHK = &n
	}
	if v, err := strconv.ParseFloat(p.MinPrice, 64); err == nil {
		f.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(p.MaxPrice, 64); err == nil {
		f.MaxPrice = &v
	}
	switch domain.SortKey(p.Sort) {
	case domain.SortPriceAsc, domain.SortPriceDesc:
		f.Sort = domain.SortKey(p.Sort)
	default:
		f.Sort = domain.SortNewest
		p.Sort = string(domain.SortNewest)
	}
	if n, err := strconv.Atoi(q.Get("page")); err == nil && n > 1 {
		f.Page = n
	}
	return f, p
}
