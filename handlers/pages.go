// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/danielhkuo/giftquiz/catalog"
	"github.com/danielhkuo/giftquiz/cliparse"
	"github.com/danielhkuo/giftquiz/middleware"
	"github.com/danielhkuo/giftquiz/models"
	"github.com/danielhkuo/giftquiz/scoring"
	"github.com/danielhkuo/giftquiz/session"
	"github.com/danielhkuo/giftquiz/views"
)

// PageResolver turns the raw {page} path segment into a page number in
// [1, totalPages].
type PageResolver func(raw string, totalPages int) int

// PageHandler renders the HTML screens.
type PageHandler struct {
	app      *App
	sessions *session.Manager
	views    *views.Renderer
	cfg      cliparse.Config
	resolve  PageResolver
	now      func() time.Time
}

func NewPageHandler(app *App, sessions *session.Manager, renderer *views.Renderer, cfg cliparse.Config, resolve PageResolver) *PageHandler {
	return &PageHandler{
		app:      app,
		sessions: sessions,
		views:    renderer,
		cfg:      cfg,
		resolve:  resolve,
		now:      time.Now,
	}
}

// Home handles GET / and every unknown path
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.catalog(w, r); !ok {
		return
	}

	st := h.state(r)
	home := views.BuildHome(st.Progress(), st.Meta(), h.now())
	h.render(w, http.StatusOK, views.TemplateHome, h.page("Home", views.ScreenHome, st, nil, home))
}

// Quiz handles GET /quiz and GET /quiz/{page}
func (h *PageHandler) Quiz(w http.ResponseWriter, r *http.Request) {
	cat, ok := h.catalog(w, r)
	if !ok {
		return
	}

	totalPages := cat.TotalPages()
	page := h.resolve(r.PathValue("page"), totalPages)
	start, end := cat.PageBounds(page)

	st := h.state(r)
	progress := st.Progress()
	quiz := views.BuildQuiz(cat.Questions[start:end], start, st.Answers(), page, totalPages, views.RandomMotivation())

	title := fmt.Sprintf("Questionnaire · Page %d", page)
	h.render(w, http.StatusOK, views.TemplateQuiz, h.page(title, views.ScreenQuiz, st, &progress, quiz))
}

// SaveQuiz handles POST /quiz/{page}
// Records the radio values posted from the page, then follows the goto field.
func (h *PageHandler) SaveQuiz(w http.ResponseWriter, r *http.Request) {
	cat, ok := h.catalog(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderError(w, http.StatusBadRequest, views.ErrorView{
			Heading: "Invalid form",
			Message: "The answers could not be read. Please try again.",
		})
		return
	}

	totalPages := cat.TotalPages()
	page := h.resolve(r.PathValue("page"), totalPages)
	start, end := cat.PageBounds(page)

	device := middleware.DeviceID(r.Context())
	st := h.sessions.State(r.Context(), device)

	changed := 0
	for i := start; i < end; i++ {
		raw := r.PostFormValue("q" + strconv.Itoa(i))
		if raw == "" {
			continue
		}
		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 || value > models.MaxAnswer {
			slog.Warn("ignoring invalid answer", "index", i, "value", raw)
			continue
		}
		if st.Answer(i) == models.Answer(value) {
			continue
		}
		if err := st.SetAnswer(i, models.Answer(value)); err != nil {
			slog.Warn("failed to record answer", "index", i, "error", err)
			continue
		}
		changed++
	}
	if changed > 0 {
		h.sessions.SchedulePersist(device)
	}

	http.Redirect(w, r, h.quizTarget(r.PostFormValue("goto"), page, totalPages), http.StatusSeeOther)
}

func (h *PageHandler) quizTarget(target string, page, totalPages int) string {
	switch target {
	case "prev":
		return fmt.Sprintf("/quiz/%d", max(page-1, 1))
	case "next":
		if page >= totalPages {
			return "/results"
		}
		return fmt.Sprintf("/quiz/%d", page+1)
	case "finish":
		return "/results"
	case "":
		return fmt.Sprintf("/quiz/%d", page)
	default:
		return fmt.Sprintf("/quiz/%d", h.resolve(target, totalPages))
	}
}

// Results handles GET /results
func (h *PageHandler) Results(w http.ResponseWriter, r *http.Request) {
	cat, ok := h.catalog(w, r)
	if !ok {
		return
	}

	st := h.state(r)
	results := h.results(cat, st)
	h.render(w, http.StatusOK, views.TemplateResults, h.page("Results", views.ScreenResults, st, nil, results))
}

// Print handles GET /results/print
func (h *PageHandler) Print(w http.ResponseWriter, r *http.Request) {
	cat, ok := h.catalog(w, r)
	if !ok {
		return
	}

	st := h.state(r)
	report := views.BuildPrint(h.results(cat, st), h.now(), h.baseURL(r))
	h.render(w, http.StatusOK, views.TemplatePrint, h.page("Report", views.ScreenResults, st, nil, report))
}

func (h *PageHandler) results(cat *catalog.Catalog, st *session.State) views.ResultsView {
	answers := st.Answers()
	records := scoring.Compute(cat.Questions, cat.Gifts, answers)
	return views.BuildResults(records, answers.Count(), len(answers))
}

// baseURL is the configured public URL, or the request's scheme and host.
func (h *PageHandler) baseURL(r *http.Request) string {
	if h.cfg.BaseURL != "" {
		return h.cfg.BaseURL
	}
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

// Gifts handles GET /gifts
func (h *PageHandler) Gifts(w http.ResponseWriter, r *http.Request) {
	cat, ok := h.catalog(w, r)
	if !ok {
		return
	}

	st := h.state(r)
	h.render(w, http.StatusOK, views.TemplateGifts, h.page("Gifts", views.ScreenGifts, st, nil, views.BuildGifts(cat.Gifts)))
}

// ConfirmReset handles GET /reset
func (h *PageHandler) ConfirmReset(w http.ResponseWriter, r *http.Request) {
	st := h.state(r)
	h.render(w, http.StatusOK, views.TemplateReset, h.page("Reset", views.ScreenNone, st, nil, st.Progress()))
}

// Reset handles POST /reset
// Answers are deleted only when the form carries confirm=yes.
func (h *PageHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil || r.PostFormValue("confirm") != "yes" {
		http.Redirect(w, r, "/reset", http.StatusSeeOther)
		return
	}

	// The in-memory state is reset even if storage fails; Clear logs it.
	_ = h.sessions.Clear(r.Context(), middleware.DeviceID(r.Context()))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Reload handles POST /reload
// Retries loading the datasets after a failure.
func (h *PageHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Load(r.Context()); err != nil {
		h.renderLoadError(w)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *PageHandler) catalog(w http.ResponseWriter, r *http.Request) (*catalog.Catalog, bool) {
	cat, err := h.app.Catalog()
	if err != nil {
		h.renderLoadError(w)
		return nil, false
	}
	return cat, true
}

func (h *PageHandler) renderLoadError(w http.ResponseWriter) {
	h.renderError(w, http.StatusServiceUnavailable, views.ErrorView{
		Heading: "Error loading data",
		Message: "The questionnaire could not be loaded. Please try again.",
		Reload:  true,
	})
}

func (h *PageHandler) renderError(w http.ResponseWriter, status int, ev views.ErrorView) {
	h.render(w, status, views.TemplateError, h.page("Error", views.ScreenNone, nil, nil, ev))
}

func (h *PageHandler) state(r *http.Request) *session.State {
	return h.sessions.State(r.Context(), middleware.DeviceID(r.Context()))
}

func (h *PageHandler) page(title string, screen views.Screen, st *session.State, progress *models.Progress, content any) views.Page {
	p := views.Page{
		Title:    title,
		Screen:   screen,
		Nav:      views.BuildNav(screen),
		Progress: progress,
		Content:  content,
	}
	if st != nil {
		p.Notices = st.TakeNotices()
	}
	return p
}

// render buffers the page so a template failure can still become a 500.
func (h *PageHandler) render(w http.ResponseWriter, status int, name string, page views.Page) {
	var buf bytes.Buffer
	if err := h.views.Render(&buf, name, page); err != nil {
		slog.Error("failed to render page", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write page", "template", name, "error", err)
	}
}
