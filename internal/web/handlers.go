package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/justestif/emotify/internal/analysis"
	"github.com/justestif/emotify/internal/config"
	"github.com/justestif/emotify/internal/errmsg"
	"github.com/justestif/emotify/internal/report"
	"github.com/justestif/emotify/internal/song"
)

const (
	pageTitle       = "Emotify - Song Emotion Detector"
	topEmotions     = 3
	busyMessage     = "An analysis is already running. Please wait for it to finish."
	inputMessage    = "Please enter both artist name and song title."
	notFoundHint    = "Please check the artist and song name."
)

// Runner runs one analysis cycle.
type Runner interface {
	Run(ctx context.Context, artist, title string) (*report.Report, error)
	ConfigError() error
}

// Handlers contains HTTP handlers for the web application.
type Handlers struct {
	runner    Runner
	visitors  *VisitorStore
	templates *Templates
	status    APIStatus
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(runner Runner, visitors *VisitorStore, templates *Templates, status APIStatus) *Handlers {
	if err := runner.ConfigError(); err != nil && status.ConfigError == "" {
		status.ConfigError = errmsg.Format(errmsg.OpLoadConfig, err)
	}
	return &Handlers{
		runner:    runner,
		visitors:  visitors,
		templates: templates,
		status:    status,
	}
}

func (h *Handlers) pageData(r *http.Request) PageData {
	return PageData{
		Title:       pageTitle,
		CurrentPath: r.URL.Path,
		Status:      h.status,
	}
}

// Home handles the home page (GET /).
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	data := HomePageData{PageData: h.pageData(r)}
	h.render(w, http.StatusOK, "home", data)
}

// Analyze runs an analysis for the posted artist and title (POST /analyze).
// HTMX requests get the results fragment; others get the full page.
func (h *Handlers) Analyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	form := FormData{
		Artist: r.PostFormValue("artist"),
		Title:  r.PostFormValue("title"),
	}

	visitor := h.visitors.Identify(w, r)
	if !h.visitors.TryAcquire(visitor) {
		h.renderResult(w, r, http.StatusConflict, form, &ResultData{
			Error: &FlashMessage{Type: "warning", Message: busyMessage},
		})
		return
	}
	defer h.visitors.Release(visitor)

	rep, err := h.runner.Run(r.Context(), form.Artist, form.Title)
	if err != nil {
		status, result := errorResult(err, form.subject())
		h.renderResult(w, r, status, form, result)
		return
	}

	result, err := newResultData(rep)
	if err != nil {
		log.Printf("web: building result %s: %v", rep.ID, err)
		http.Error(w, errmsg.Format(errmsg.OpRenderPage, err), http.StatusInternalServerError)
		return
	}
	h.renderResult(w, r, http.StatusOK, form, result)
}

// Health reports liveness and configuration (GET /health).
func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	body := map[string]any{
		"status":          "ok",
		"search_provider": h.status.SearchProvider,
		"ready":           h.status.Ready(),
		"busy_visitors":   h.visitors.Busy(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("web: encoding health: %v", err)
	}
}

func (h *Handlers) renderResult(w http.ResponseWriter, r *http.Request, status int, form FormData, result *ResultData) {
	if r.Header.Get("HX-Request") == "true" {
		h.renderPartial(w, status, "results", result)
		return
	}

	data := HomePageData{
		PageData: h.pageData(r),
		Form:     form,
		Result:   result,
	}
	h.render(w, status, "home", data)
}

// render buffers the page so a template error can still produce a 500.
func (h *Handlers) render(w http.ResponseWriter, status int, page string, data any) {
	var buf bytes.Buffer
	if err := h.templates.Render(&buf, page, data); err != nil {
		log.Printf("web: rendering %s: %v", page, err)
		http.Error(w, "Failed to render template", http.StatusInternalServerError)
		return
	}
	writeHTML(w, status, buf.Bytes())
}

func (h *Handlers) renderPartial(w http.ResponseWriter, status int, partial string, data any) {
	var buf bytes.Buffer
	if err := h.templates.RenderPartial(&buf, partial, data); err != nil {
		log.Printf("web: rendering partial %s: %v", partial, err)
		http.Error(w, "Failed to render template", http.StatusInternalServerError)
		return
	}
	writeHTML(w, status, buf.Bytes())
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func newResultData(rep *report.Report) (*ResultData, error) {
	charts, err := BuildCharts(rep).JSON()
	if err != nil {
		return nil, err
	}
	return &ResultData{
		Report:  rep,
		Ranked:  rep.Scores.Ranked(),
		Top:     rep.Scores.Top(topEmotions),
		Summary: report.FormatSummary(rep),
		Charts:  charts,
	}, nil
}

// errorResult maps a cycle error to an HTTP status and a user-facing message.
// subject names the requested song in search messages.
func errorResult(err error, subject string) (int, *ResultData) {
	flash := func(msg string) *ResultData {
		return &ResultData{Error: &FlashMessage{Type: "error", Message: msg}}
	}

	var malformed *analysis.MalformedResponseError
	switch {
	case errors.Is(err, config.ErrMissingSecret):
		return http.StatusServiceUnavailable, flash(errmsg.Format(errmsg.OpLoadConfig, err))
	case errors.Is(err, report.ErrInvalidInput):
		return http.StatusBadRequest, &ResultData{Error: &FlashMessage{Type: "warning", Message: inputMessage}}
	case errors.Is(err, song.ErrNotFound):
		return http.StatusNotFound, flash(errmsg.FormatWith(errmsg.OpSearchSong, subject, song.ErrNotFound)+". "+notFoundHint)
	case errors.As(err, &malformed):
		result := flash(errmsg.Format(errmsg.OpAnalyzeSong, err))
		result.Raw = malformed.Raw
		return http.StatusBadGateway, result
	case errors.Is(err, analysis.ErrProviderFailure):
		return http.StatusBadGateway, flash(errmsg.Format(errmsg.OpAnalyzeSong, err))
	case errors.Is(err, song.ErrSearchFailed):
		return http.StatusBadGateway, flash(errmsg.FormatWith(errmsg.OpSearchSong, subject, err))
	}

	log.Printf("web: unexpected analysis error: %v", err)
	return http.StatusInternalServerError, flash(errmsg.Format(errmsg.OpAnalyzeSong, err))
}
