// internal/adapters/http_server/handlers.go
package httpserver

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"propwise/internal/adapters/observability"
	"propwise/internal/app"
	"propwise/internal/domain"
)

const (
	msgNotFound      = "Property not found"
	msgNoProperties  = "No properties found in database"
	msgNoData        = "No data available"
	msgInquirySent   = "Inquiry sent successfully!"
	msgListingPosted = "Property posted successfully!"

	maxUploadBytes = 10 << 20
)

type Handlers struct {
	Listings  *app.ListingService
	Analytics *app.AnalyticsService
	Views     *Views
}

// MountHandlers registers the site. staticDir is served under /static/.
func (s *Server) MountHandlers(h *Handlers, staticDir string) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))

	s.mux.Get("/", h.home)
	s.mux.Get("/property/{id}", h.property)
	s.mux.Get("/dashboard", h.dashboard)
	s.mux.Get("/analytics", h.analytics)
	s.mux.Get("/add", h.addForm)
	s.mux.Get("/admin/inquiries", h.adminInquiries)

	s.mux.Group(func(r chi.Router) {
		r.Use(RateLimit(s.writeRPS))
		r.Post("/", h.home)
		r.Post("/property/{id}", h.property)
		r.Post("/add", h.addListing)
	})
}

type homeView struct {
	app.BrowseResult
	Estimate *app.Estimate
	Filter   filterParams
	PrevURL  string
	NextURL  string
}

func (h *Handlers) home(w http.ResponseWriter, r *http.Request) {
	var est *app.Estimate
	if r.Method == http.MethodPost {
		f, err := parseListingForm(r)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		e, err := h.Listings.Estimate(f.estimate())
		if err != nil {
			h.fail(w, r, err)
			return
		}
		est = &e
	}

	filter, params := parseFilter(r.URL.Query())
	res, err := h.Listings.Browse(r.Context(), filter)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	v := homeView{BrowseResult: res, Estimate: est, Filter: params}
	if res.Page > 1 {
		v.PrevURL = pageURL(r.URL.Query(), res.Page-1)
	}
	if res.Page < res.TotalPages {
		v.NextURL = pageURL(r.URL.Query(), res.Page+1)
	}
	h.Views.render(w, http.StatusOK, "home", v)
}

func pageURL(q url.Values, page int) string {
	q.Set("page", strconv.Itoa(page))
	return "/?" + q.Encode()
}

type propertyView struct {
	P       domain.Appraisal
	Success string
}

func (h *Handlers) property(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeText(w, http.StatusNotFound, msgNotFound)
		return
	}

	var v propertyView
	if r.Method == http.MethodPost {
		f, err := parseInquiryForm(r)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		v.P, err = h.Listings.SubmitInquiry(r.Context(), domain.Inquiry{PropertyID: id, Name: f.Name, Phone: f.Phone, Message: f.Message})
		if err != nil {
			h.fail(w, r, err)
			return
		}
		observability.ObserveInquiry()
		v.Success = msgInquirySent
	} else {
		v.P, err = h.Listings.Detail(r.Context(), id)
		if err != nil {
			h.fail(w, r, err)
			return
		}
	}
	h.Views.render(w, http.StatusOK, "property", v)
}

func (h *Handlers) dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.Analytics.Dashboard(r.Context())
	if errors.Is(err, domain.ErrNoListings) {
		writeText(w, http.StatusNotFound, msgNoProperties)
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.Views.render(w, http.StatusOK, "dashboard", d)
}

func (h *Handlers) analytics(w http.ResponseWriter, r *http.Request) {
	ver, err := h.Analytics.Analytics(r.Context())
	if errors.Is(err, domain.ErrNoListings) {
		writeText(w, http.StatusOK, msgNoData)
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.Views.render(w, http.StatusOK, "analytics", struct{ Version string }{ver})
}

type addView struct {
	Msg       string
	Locations []string
}

func (h *Handlers) addForm(w http.ResponseWriter, r *http.Request) {
	h.renderAdd(w, r, "")
}

func (h *Handlers) addListing(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		h.fail(w, r, err)
		return
	}
	f, err := parseListingForm(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var up *app.Upload
	file, hdr, err := r.FormFile("image")
	switch {
	case err == nil:
		defer file.Close()
		up = &app.Upload{Name: hdr.Filename, Body: file}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		h.fail(w, r, err)
		return
	}

	id, err := h.Listings.AddListing(r.Context(), f.listing(), up)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	log.Info().Int64("listing_id", id).Str("location", f.Location).Msg("listing added")
	h.renderAdd(w, r, msgListingPosted)
}

func (h *Handlers) renderAdd(w http.ResponseWriter, r *http.Request, msg string) {
	locs, err := h.Listings.LocationChoices(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.Views.render(w, http.StatusOK, "add", addView{Msg: msg, Locations: locs})
}

func (h *Handlers) adminInquiries(w http.ResponseWriter, r *http.Request) {
	iv, err := h.Listings.Inquiries(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.Views.render(w, http.StatusOK, "admin_inquiries", struct{ Inquiries []domain.InquiryView }{iv})
}

// fail maps service errors to plain-text responses.
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		writeText(w, http.StatusNotFound, msgNotFound)
		return
	}
	log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	writeText(w, http.StatusInternalServerError, "Internal Server Error")
}
