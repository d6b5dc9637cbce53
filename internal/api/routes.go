package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rmarques/quizdesk/internal/services"
	"github.com/rmarques/quizdesk/internal/store"
)

// Server is the display-collaborator boundary: a local HTTP API the UI
// drives one question at a time.
type Server struct {
	QuizService services.QuizService
	Reader      *store.Reader
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/questions", s.handleBrowseQuestions)

		r.Route("/quiz", func(r chi.Router) {
			r.Get("/choices", s.handleChoices)
			r.Post("/", s.handleStartQuiz)
			r.Get("/", s.handleQuizState)
			r.Get("/question", s.handleCurrentQuestion)
			r.Post("/answer", s.handleSubmitAnswer)
			r.Post("/advance", s.handleAdvance)
			r.Post("/close", s.handleCloseQuiz)
			r.Get("/result", s.handleResult)
		})
	})

	return r
}
