// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"math"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/danielhkuo/giftquiz/cliparse"
	"github.com/danielhkuo/giftquiz/handlers"
	"github.com/danielhkuo/giftquiz/middleware"
	"github.com/danielhkuo/giftquiz/session"
	"github.com/danielhkuo/giftquiz/views"
)

func NewRouter(app *handlers.App, sessions *session.Manager, toucher middleware.Toucher, renderer *views.Renderer, cfg cliparse.Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimw.Recoverer)

	// Initialize handlers
	pageHandler := handlers.NewPageHandler(app, sessions, renderer, cfg, ResolvePage)
	answerHandler := handlers.NewAnswerHandler(app, sessions)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Device(cfg.DeviceSalt, toucher))

		// Screens
		r.Get("/", pageHandler.Home)
		r.Get("/quiz", pageHandler.Quiz)
		r.Get("/quiz/{page}", pageHandler.Quiz)
		r.Post("/quiz/{page}", pageHandler.SaveQuiz)
		r.Get("/results", pageHandler.Results)
		r.Get("/results/print", pageHandler.Print)
		r.Get("/gifts", pageHandler.Gifts)

		// Actions
		r.Get("/reset", pageHandler.ConfirmReset)
		r.Post("/reset", pageHandler.Reset)
		r.Post("/reload", pageHandler.Reload)

		// Answer API
		r.Post("/api/answers", answerHandler.RecordAnswer)
		r.Get("/api/answers", answerHandler.GetAnswers)
		r.Get("/api/progress", answerHandler.GetProgress)

		// Unknown paths fall back to a screen, Home by default
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			if Screen(r.URL.Path) == views.ScreenQuiz {
				r.SetPathValue("page", quizSegment(r.URL.Path))
				pageHandler.Quiz(w, r)
				return
			}
			pageHandler.Home(w, r)
		})
	})

	return r
}

// Screen maps a path to the screen that renders it. Anything unknown is Home.
func Screen(path string) views.Screen {
	switch {
	case path == "/quiz" || strings.HasPrefix(path, "/quiz/"):
		return views.ScreenQuiz
	case path == "/results":
		return views.ScreenResults
	case path == "/gifts":
		return views.ScreenGifts
	default:
		return views.ScreenHome
	}
}

func quizSegment(path string) string {
	rest, ok := strings.CutPrefix(path, "/quiz/")
	if !ok {
		return ""
	}
	segment, _, _ := strings.Cut(rest, "/")
	return segment
}

// ResolvePage reads a page number the way a lenient integer parse does:
// optional leading whitespace and sign, then the leading digits. A missing
// number or 0 means page 1. The result is clamped to [1, totalPages].
func ResolvePage(raw string, totalPages int) int {
	s := strings.TrimLeft(raw, " \t\n\r")

	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	page, digits := 0, 0
	for _, c := range s {
		if c < '0' || c > '9' {
			break
		}
		digits++
		if page <= (math.MaxInt-9)/10 {
			page = page*10 + int(c-'0')
		}
	}
	if digits == 0 || page == 0 {
		page = 1
	}
	if neg {
		page = -page
	}

	if totalPages < 1 {
		return 1
	}
	return max(1, min(page, totalPages))
}
