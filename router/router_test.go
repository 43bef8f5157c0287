// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/danielhkuo/giftquiz/catalog"
	"github.com/danielhkuo/giftquiz/handlers"
	"github.com/danielhkuo/giftquiz/middleware"
	"github.com/danielhkuo/giftquiz/models"
	"github.com/danielhkuo/giftquiz/session"
	"github.com/danielhkuo/giftquiz/testutil"
	"github.com/danielhkuo/giftquiz/views"
)

func newTestRouter(t *testing.T, app *handlers.App) (*chi.Mux, *session.Manager) {
	t.Helper()

	store := testutil.SetupTestStore(t)
	renderer, err := views.New()
	if err != nil {
		t.Fatalf("Failed to parse templates: %v", err)
	}
	// Long delay: writes only happen on Flush.
	sessions := session.NewManager(store, models.TotalQuestions, time.Hour)

	return NewRouter(app, sessions, store, renderer, testutil.GetTestConfig()), sessions
}

func loadedApp() *handlers.App {
	cat := testutil.TestCatalog()
	return handlers.NewLoadedApp(cat, func(ctx context.Context) (*catalog.Catalog, error) {
		return cat, nil
	})
}

// deviceCookie performs a request and returns the device cookie it was issued.
func deviceCookie(t *testing.T, mux http.Handler) *http.Cookie {
	t.Helper()

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.DeviceCookie {
			return c
		}
	}
	t.Fatal("No device cookie issued")
	return nil
}

func serve(mux http.Handler, req *http.Request, cookie *http.Cookie) *httptest.ResponseRecorder {
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	mux, _ := newTestRouter(t, loadedApp())

	w := serve(mux, httptest.NewRequest("GET", "/health", nil), nil)

	testutil.AssertStatus(t, w, http.StatusOK)
	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestHomeEndpoint(t *testing.T) {
	mux, _ := newTestRouter(t, loadedApp())

	w := serve(mux, httptest.NewRequest("GET", "/", nil), nil)

	testutil.AssertStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), "Start Questionnaire") {
		t.Error("Expected start button on home page")
	}
	if len(w.Result().Cookies()) == 0 {
		t.Error("Expected a device cookie to be issued")
	}
}

func TestRouteExistence(t *testing.T) {
	mux, _ := newTestRouter(t, loadedApp())

	testCases := []struct {
		method string
		path   string
		status int
	}{
		{"GET", "/", http.StatusOK},
		{"GET", "/quiz", http.StatusOK},
		{"GET", "/quiz/2", http.StatusOK},
		{"GET", "/results", http.StatusOK},
		{"GET", "/results/print", http.StatusOK},
		{"GET", "/gifts", http.StatusOK},
		{"GET", "/reset", http.StatusOK},
		{"GET", "/api/progress", http.StatusOK},
		{"GET", "/api/answers", http.StatusOK},
		{"POST", "/reset", http.StatusSeeOther},
		{"POST", "/quiz/1", http.StatusSeeOther},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := serve(mux, httptest.NewRequest(tc.method, tc.path, nil), nil)
			testutil.AssertStatus(t, w, tc.status)
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	mux, _ := newTestRouter(t, loadedApp())

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},  // Only GET is defined
		{"DELETE", "/reset"}, // Only GET and POST are defined
		{"PUT", "/api/answers"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := serve(mux, httptest.NewRequest(tc.method, tc.path, nil), nil)
			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestUnknownPathFallsBackToHome(t *testing.T) {
	mux, _ := newTestRouter(t, loadedApp())

	for _, path := range []string{"/nope", "/results/extra", "/gifts/1"} {
		t.Run(path, func(t *testing.T) {
			w := serve(mux, httptest.NewRequest("GET", path, nil), nil)
			testutil.AssertStatus(t, w, http.StatusOK)
			if !strings.Contains(w.Body.String(), "startQuizBtn") {
				t.Errorf("Expected home page for %s", path)
			}
		})
	}
}

func TestQuizPageClamping(t *testing.T) {
	mux, _ := newTestRouter(t, loadedApp())

	testCases := []struct {
		path string
		page string
	}{
		{"/quiz", "1"},
		{"/quiz/3", "3"},
		{"/quiz/999", "10"},
		{"/quiz/abc", "1"},
		{"/quiz/0", "1"},
		{"/quiz/-4", "1"},
		{"/quiz/7xyz", "7"},
		{"/quiz/4/extra", "4"},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			w := serve(mux, httptest.NewRequest("GET", tc.path, nil), nil)
			testutil.AssertStatus(t, w, http.StatusOK)

			want := `<span id="currentPage">` + tc.page + `</span>`
			if !strings.Contains(w.Body.String(), want) {
				t.Errorf("Expected page %s for %s", tc.page, tc.path)
			}
		})
	}
}

func TestResolvePage(t *testing.T) {
	testCases := []struct {
		raw   string
		total int
		want  int
	}{
		{"", 10, 1},
		{"1", 10, 1},
		{"5", 10, 5},
		{"10", 10, 10},
		{"999", 10, 10},
		{"abc", 10, 1},
		{"0", 10, 1},
		{"-3", 10, 1},
		{"+6", 10, 6},
		{" 8", 10, 8},
		{"3.9", 10, 3},
		{"2e5", 10, 2},
		{"99999999999999999999999", 10, 10},
		{"4", 0, 1},
	}

	for _, tc := range testCases {
		if got := ResolvePage(tc.raw, tc.total); got != tc.want {
			t.Errorf("ResolvePage(%q, %d) = %d, want %d", tc.raw, tc.total, got, tc.want)
		}
	}
}

func TestScreen(t *testing.T) {
	testCases := []struct {
		path string
		want views.Screen
	}{
		{"/", views.ScreenHome},
		{"", views.ScreenHome},
		{"/quiz", views.ScreenQuiz},
		{"/quiz/3", views.ScreenQuiz},
		{"/quizzes", views.ScreenHome},
		{"/results", views.ScreenResults},
		{"/gifts", views.ScreenGifts},
		{"/unknown", views.ScreenHome},
	}

	for _, tc := range testCases {
		if got := Screen(tc.path); got != tc.want {
			t.Errorf("Screen(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

func TestAnswerFlow(t *testing.T) {
	mux, _ := newTestRouter(t, loadedApp())
	cookie := deviceCookie(t, mux)

	w := serve(mux, testutil.MakeRequest("POST", "/api/answers", map[string]int{"index": 0, "value": 3}, nil), cookie)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.RecordAnswerResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Progress.Answered != 1 || resp.Progress.Total != 133 || resp.Progress.Percent != 1 {
		t.Errorf("Unexpected progress: %+v", resp.Progress)
	}

	w = serve(mux, httptest.NewRequest("GET", "/api/progress", nil), cookie)
	var progress models.Progress
	testutil.AssertJSON(t, w, &progress)
	if progress.Answered != 1 {
		t.Errorf("Expected 1 answered for the same device, got %d", progress.Answered)
	}

	// A different device starts empty
	w = serve(mux, httptest.NewRequest("GET", "/api/progress", nil), nil)
	testutil.AssertJSON(t, w, &progress)
	if progress.Answered != 0 {
		t.Errorf("Expected a new device to start empty, got %d", progress.Answered)
	}
}

func TestQuizFormSubmission(t *testing.T) {
	mux, sessions := newTestRouter(t, loadedApp())
	cookie := deviceCookie(t, mux)

	form := url.Values{"q14": {"2"}, "q15": {"3"}, "q0": {"1"}, "goto": {"next"}}
	req := httptest.NewRequest("POST", "/quiz/2", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := serve(mux, req, cookie)

	testutil.AssertStatus(t, w, http.StatusSeeOther)
	if loc := w.Header().Get("Location"); loc != "/quiz/3" {
		t.Errorf("Expected redirect to /quiz/3, got %s", loc)
	}
	if sessions.Pending() != 1 {
		t.Errorf("Expected one scheduled save, got %d", sessions.Pending())
	}

	w = serve(mux, httptest.NewRequest("GET", "/api/answers", nil), cookie)
	var resp models.AnswersResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Answers[14] != 2 || resp.Answers[15] != 3 {
		t.Errorf("Expected page answers saved, got %v %v", resp.Answers[14], resp.Answers[15])
	}
	// q0 is not on page 2
	if resp.Answers[0].Answered() {
		t.Error("Expected answers outside the page to be ignored")
	}
}

func TestResetFlow(t *testing.T) {
	mux, _ := newTestRouter(t, loadedApp())
	cookie := deviceCookie(t, mux)

	serve(mux, testutil.MakeRequest("POST", "/api/answers", map[string]int{"index": 5, "value": 2}, nil), cookie)

	postForm := func(values url.Values) *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/reset", strings.NewReader(values.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return serve(mux, req, cookie)
	}

	t.Run("without confirmation", func(t *testing.T) {
		w := postForm(url.Values{})
		if loc := w.Header().Get("Location"); loc != "/reset" {
			t.Errorf("Expected redirect back to /reset, got %s", loc)
		}

		var progress models.Progress
		testutil.AssertJSON(t, serve(mux, httptest.NewRequest("GET", "/api/progress", nil), cookie), &progress)
		if progress.Answered != 1 {
			t.Errorf("Expected answers kept, got %d", progress.Answered)
		}
	})

	t.Run("confirmed", func(t *testing.T) {
		w := postForm(url.Values{"confirm": {"yes"}})
		if loc := w.Header().Get("Location"); loc != "/" {
			t.Errorf("Expected redirect to /, got %s", loc)
		}

		home := serve(mux, httptest.NewRequest("GET", "/", nil), cookie)
		body := home.Body.String()
		if !strings.Contains(body, "All answers have been deleted") {
			t.Error("Expected deletion notice on home page")
		}
		if !strings.Contains(body, "Start Questionnaire") {
			t.Error("Expected start label after reset")
		}
	})
}

func TestFailedStateAndReload(t *testing.T) {
	cat := testutil.TestCatalog()
	calls := 0
	app := handlers.NewApp(func(ctx context.Context) (*catalog.Catalog, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("connection refused")
		}
		return cat, nil
	})
	_ = app.Load(context.Background())

	mux, _ := newTestRouter(t, app)

	for _, path := range []string{"/", "/quiz/1", "/results", "/gifts"} {
		w := serve(mux, httptest.NewRequest("GET", path, nil), nil)
		testutil.AssertStatus(t, w, http.StatusServiceUnavailable)
		if !strings.Contains(w.Body.String(), "Error loading data") {
			t.Errorf("Expected load error page for %s", path)
		}
	}

	w := serve(mux, testutil.MakeRequest("POST", "/api/answers", map[string]int{"index": 0, "value": 1}, nil), nil)
	testutil.AssertStatus(t, w, http.StatusServiceUnavailable)

	w = serve(mux, httptest.NewRequest("POST", "/reload", nil), nil)
	testutil.AssertStatus(t, w, http.StatusSeeOther)

	w = serve(mux, httptest.NewRequest("GET", "/", nil), nil)
	testutil.AssertStatus(t, w, http.StatusOK)
}
