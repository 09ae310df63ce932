// Package http exposes the quiz service over REST plus a websocket progress
// feed for play sessions.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"quizzz-service/internal/app"
	"quizzz-service/internal/domain"
	"quizzz-service/internal/extract"
)

// API wires the application services into an HTTP router.
type API struct {
	quizzes   *app.QuizService
	plays     *app.PlayService
	extractor *extract.Extractor
	logger    *slog.Logger
}

func NewAPI(quizzes *app.QuizService, plays *app.PlayService, extractor *extract.Extractor, logger *slog.Logger) *API {
	if logger == nil {
		logger = slog.Default()
	}
	return &API{
		quizzes:   quizzes,
		plays:     plays,
		extractor: extractor,
		logger:    logger,
	}
}

// Router builds the chi router with all endpoints mounted.
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/imports", a.handleImport)

		r.Route("/quizzes", func(r chi.Router) {
			r.Post("/", a.handleCreateQuiz)
			r.Get("/", a.handleListQuizzes)
			r.Get("/{quizID}", a.handleGetQuiz)
			r.Put("/{quizID}", a.handleUpdateQuiz)
			r.Delete("/{quizID}", a.handleDeleteQuiz)
		})

		r.Route("/plays", func(r chi.Router) {
			r.Post("/", a.handleStartPlay)
			r.Get("/{sessionID}", a.handleGetPlay)
			r.Post("/{sessionID}/answers", a.handleAnswer)
			r.Post("/{sessionID}/pause", a.handlePause)
			r.Post("/{sessionID}/resume", a.handleResume)
			r.Get("/{sessionID}/ws", a.handlePlayWS)
		})
	})

	return r
}

type errorPayload struct {
	Error string `json:"error"`
}

func (a *API) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.logger.Error("encode response", "error", err)
	}
}

func (a *API) writeError(w http.ResponseWriter, err error) {
	a.writeJSON(w, statusFor(err), errorPayload{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrQuizNotFound),
		errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrQuestionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnreadableDocument),
		errors.Is(err, domain.ErrEmptyDocument),
		errors.Is(err, domain.ErrOptionNotFound):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrDocumentTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, domain.ErrSessionCompleted),
		errors.Is(err, domain.ErrSessionPaused),
		errors.Is(err, domain.ErrQuestionAnswered):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
