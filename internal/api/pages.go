package api

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/san-kum/phytosim/internal/analysis"
	"github.com/san-kum/phytosim/internal/content"
	"github.com/san-kum/phytosim/internal/viz"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.New("pages").Funcs(template.FuncMap{
	"num":           viz.Number,
	"pct":           viz.Percent,
	"fallbackImage": func() string { return content.FallbackImage },
}).ParseFS(templateFS, "templates/*.html"))

type pageData struct {
	Title       string
	Biomass     string
	Contaminant string
	Threshold   string
	Horizon     string
	Articles    []content.Article

	Interpretation string
	Error          string
	Reached        bool
	Summary        analysis.Summary
	ChartURL       string
}

// renderPage executes into a buffer first so a template error never leaves
// a half-written page behind.
func renderPage(w http.ResponseWriter, r *http.Request, status int, name string, data pageData) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		log.Error().Err(err).Str("template", name).Str("request_id", RequestIDFromContext(r.Context())).Msg("failed to render page")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Error().Err(err).Msg("failed to write page")
	}
}
