package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"quizzz-service/internal/domain"
)

type startPlayRequest struct {
	QuizID string `json:"quizId"`
}

type answerRequest struct {
	QuestionID string `json:"questionId"`
	OptionID   string `json:"optionId"`
}

type answerResponse struct {
	Response domain.Response    `json:"response"`
	Session  domain.PlaySession `json:"session"`
	Score    int                `json:"score"`
}

func (a *API) handleStartPlay(w http.ResponseWriter, r *http.Request) {
	var req startPlayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.QuizID == "" {
		a.writeJSON(w, http.StatusBadRequest, errorPayload{Error: "quizId is required"})
		return
	}
	session, err := a.plays.Start(r.Context(), req.QuizID)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusCreated, session)
}

func (a *API) handleGetPlay(w http.ResponseWriter, r *http.Request) {
	session, err := a.plays.Get(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, session)
}

func (a *API) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.QuestionID == "" || req.OptionID == "" {
		a.writeJSON(w, http.StatusBadRequest, errorPayload{Error: "questionId and optionId are required"})
		return
	}
	response, session, err := a.plays.Answer(r.Context(), chi.URLParam(r, "sessionID"), req.QuestionID, req.OptionID)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, answerResponse{
		Response: response,
		Session:  session,
		Score:    session.Score(),
	})
}

func (a *API) handlePause(w http.ResponseWriter, r *http.Request) {
	session, err := a.plays.Pause(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, session)
}

func (a *API) handleResume(w http.ResponseWriter, r *http.Request) {
	session, err := a.plays.Resume(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, session)
}
