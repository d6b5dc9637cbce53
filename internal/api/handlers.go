package api

import (
	"net/http"
	"strconv"

	apperrors "github.com/rmarques/quizdesk/internal/errors"
	"github.com/rmarques/quizdesk/internal/logger"
	"github.com/rmarques/quizdesk/internal/models"
	"github.com/rmarques/quizdesk/internal/store"
)

func (s *Server) handleChoices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.QuizService.Choices(r.Context()))
}

type startQuizRequest struct {
	Total int `json:"total"`
}

func (s *Server) handleStartQuiz(w http.ResponseWriter, r *http.Request) {
	var req startQuizRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	state, err := s.QuizService.Start(r.Context(), req.Total)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, state)
}

func (s *Server) handleQuizState(w http.ResponseWriter, r *http.Request) {
	state, err := s.QuizService.State(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, state)
}

func (s *Server) handleCurrentQuestion(w http.ResponseWriter, r *http.Request) {
	view, err := s.QuizService.CurrentQuestion(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

type answerRequest struct {
	Label string `json:"label"`
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	feedback, err := s.QuizService.Submit(r.Context(), req.Label)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, feedback)
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	state, err := s.QuizService.Advance(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, state)
}

func (s *Server) handleCloseQuiz(w http.ResponseWriter, r *http.Request) {
	if err := s.QuizService.Abort(r.Context()); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]bool{"closed": true})
}

func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	result, err := s.QuizService.Result(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleBrowseQuestions(w http.ResponseWriter, r *http.Request) {
	storeName := r.URL.Query().Get("store")
	if storeName == "" {
		storeName = store.Specific
	}

	filter := models.QuestionFilter{
		Search: r.URL.Query().Get("search"),
		Source: r.URL.Query().Get("source"),
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			handleError(w, r, apperrors.NewBadRequestError("limit must be an integer"))
			return
		}
		filter.Limit = n
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			handleError(w, r, apperrors.NewBadRequestError("offset must be an integer"))
			return
		}
		filter.Offset = n
	}

	questions, total, err := s.QuizService.BrowseQuestions(r.Context(), storeName, filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"store":     storeName,
		"total":     total,
		"questions": questions,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	stores := map[string]string{}
	healthy := true
	for _, name := range store.Names {
		if err := s.Reader.Ping(r.Context(), name); err != nil {
			log.Warn("store %s unreachable: %v", name, err)
			stores[name] = "unavailable"
			healthy = false
			continue
		}
		stores[name] = "ok"
	}

	// Degraded, not down: quizzes still run with the remaining pool.
	state := "ok"
	if !healthy {
		state = "degraded"
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"status": state,
		"stores": stores,
	})
}
