package httpserver

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = []string{"home", "property", "add", "admin_inquiries", "dashboard", "analytics"}

// Prices are shown the way buyers in Pune read them.
var inPrinter = message.NewPrinter(language.MustParse("en-IN"))

var funcs = template.FuncMap{
	"price": func(v float64) string { return inPrinter.Sprintf("%.2f", v) },
}

// Views holds one parsed template set per page, each layered on base.html.
type Views struct{ t map[string]*template.Template }

func LoadViews() (*Views, error) {
	v := &Views{t: make(map[string]*template.Template, len(pages))}
	for _, p := range pages {
		t, err := template.New(p).Funcs(funcs).ParseFS(templateFS, "templates/base.html", "templates/"+p+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", p, err)
		}
		v.t[p] = t
	}
	return v, nil
}

// render buffers the page; a template error becomes a plain 500.
func (v *Views) render(w http.ResponseWriter, status int, page string, data any) {
	t, ok := v.t[page]
	if !ok {
		writeText(w, http.StatusInternalServerError, "unknown page")
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		log.Error().Err(err).Str("page", page).Msg("render template failed")
		writeText(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Error().Err(err).Str("page", page).Msg("write page failed")
	}
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(msg)); err != nil {
		log.Error().Err(err).Msg("write text response failed")
	}
}
