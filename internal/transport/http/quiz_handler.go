package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"quizzz-service/internal/app"
)

func (a *API) handleCreateQuiz(w http.ResponseWriter, r *http.Request) {
	var input app.QuizInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		a.writeJSON(w, http.StatusBadRequest, errorPayload{Error: "invalid quiz payload"})
		return
	}
	if strings.TrimSpace(input.Title) == "" {
		a.writeJSON(w, http.StatusBadRequest, errorPayload{Error: "title is required"})
		return
	}
	quiz, err := a.quizzes.Create(r.Context(), input)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusCreated, quiz)
}

func (a *API) handleListQuizzes(w http.ResponseWriter, r *http.Request) {
	summaries, err := a.quizzes.List(r.Context())
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, summaries)
}

func (a *API) handleGetQuiz(w http.ResponseWriter, r *http.Request) {
	quiz, err := a.quizzes.Get(r.Context(), chi.URLParam(r, "quizID"))
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, quiz)
}

func (a *API) handleUpdateQuiz(w http.ResponseWriter, r *http.Request) {
	var input app.QuizInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		a.writeJSON(w, http.StatusBadRequest, errorPayload{Error: "invalid quiz payload"})
		return
	}
	quiz, err := a.quizzes.Update(r.Context(), chi.URLParam(r, "quizID"), input)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, quiz)
}

func (a *API) handleDeleteQuiz(w http.ResponseWriter, r *http.Request) {
	if err := a.quizzes.Delete(r.Context(), chi.URLParam(r, "quizID")); err != nil {
		a.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
