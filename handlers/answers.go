// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/danielhkuo/giftquiz/middleware"
	"github.com/danielhkuo/giftquiz/models"
	"github.com/danielhkuo/giftquiz/session"
)

// AnswerHandler serves the JSON answer API.
type AnswerHandler struct {
	app      *App
	sessions *session.Manager
	validate *validator.Validate
}

func NewAnswerHandler(app *App, sessions *session.Manager) *AnswerHandler {
	return &AnswerHandler{
		app:      app,
		sessions: sessions,
		validate: validator.New(),
	}
}

// RecordAnswer handles POST /api/answers
// Records one answer, schedules a debounced save and returns the progress.
func (h *AnswerHandler) RecordAnswer(w http.ResponseWriter, r *http.Request) {
	if _, err := h.app.Catalog(); err != nil {
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Datasets not loaded")
		return
	}

	var req models.RecordAnswerRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	device := middleware.DeviceID(r.Context())
	st := h.sessions.State(r.Context(), device)
	if err := st.SetAnswer(*req.Index, models.Answer(*req.Value)); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	h.sessions.SchedulePersist(device)

	middleware.JSONResponse(w, http.StatusOK, models.RecordAnswerResponse{
		Index:    *req.Index,
		Value:    *req.Value,
		Progress: st.Progress(),
	})
}

// GetProgress handles GET /api/progress
func (h *AnswerHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	st := h.sessions.State(r.Context(), middleware.DeviceID(r.Context()))
	middleware.JSONResponse(w, http.StatusOK, st.Progress())
}

// GetAnswers handles GET /api/answers
// With ?download=1 the response is served as an attachment for the report
// command.
func (h *AnswerHandler) GetAnswers(w http.ResponseWriter, r *http.Request) {
	st := h.sessions.State(r.Context(), middleware.DeviceID(r.Context()))

	if r.URL.Query().Get("download") != "" {
		w.Header().Set("Content-Disposition", `attachment; filename="giftquiz-answers.json"`)
	}
	middleware.JSONResponse(w, http.StatusOK, models.AnswersResponse{
		Answers:  st.Answers(),
		Meta:     st.Meta(),
		Progress: st.Progress(),
	})
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", field, e.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s", field, e.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", field))
		}
	}
	return strings.Join(msgs, "; ")
}
