package quiz

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rmarques/quizdesk/internal/models"
)

// ErrFinished is returned when an operation needs an active session but the
// walk has already reached the end or was closed.
var ErrFinished = errors.New("quiz session is finished")

// ErrActive is returned by Finalize while the session is still running.
var ErrActive = errors.New("quiz session is still active")

// Session walks a learner through a selected sequence of questions, one at
// a time, tallying correct answers. States are Active(position) and
// Finished; Submit and Advance are no-ops once Finished, mirroring the
// double-click protection of the interactive flow.
type Session struct {
	id        string
	questions []models.Question
	position  int
	correct   int
	active    bool
	cfg       Config
}

// NewSession creates a session over the selected sequence. An empty
// sequence starts out already finished.
func NewSession(questions []models.Question, cfg Config) *Session {
	return &Session{
		id:        uuid.NewString(),
		questions: questions,
		active:    len(questions) > 0,
		cfg:       cfg,
	}
}

func (s *Session) ID() string    { return s.id }
func (s *Session) Len() int      { return len(s.questions) }
func (s *Session) Position() int { return s.position }
func (s *Session) Correct() int  { return s.correct }

// Finished reports whether the session reached its terminal state.
func (s *Session) Finished() bool { return !s.active }

// Current returns the question at the current position.
func (s *Session) Current() (models.Question, error) {
	if !s.active {
		return models.Question{}, ErrFinished
	}
	return s.questions[s.position], nil
}

// Submit compares the answer label against the current question's correct
// label, case-insensitively, and tallies a correct answer on a match. It
// does not advance the position. Once finished it is a no-op.
func (s *Session) Submit(label string) bool {
	if !s.active {
		return false
	}
	correct := strings.EqualFold(strings.TrimSpace(label), s.questions[s.position].Answer)
	if correct {
		s.correct++
	}
	return correct
}

// Advance moves to the next question, transitioning to Finished when the
// end of the sequence is reached. Once finished it is a no-op.
func (s *Session) Advance() {
	if !s.active {
		return
	}
	s.position++
	if s.position >= len(s.questions) {
		s.active = false
	}
}

// Close forces the session into its terminal state. Idempotent.
func (s *Session) Close() {
	s.active = false
}

// Finalize computes the performance result. Valid only once Finished.
func (s *Session) Finalize() (Performance, error) {
	if s.active {
		return Performance{}, ErrActive
	}
	return Evaluate(s.correct, len(s.questions), s.cfg), nil
}
