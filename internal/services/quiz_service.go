package services

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"

	apperrors "github.com/rmarques/quizdesk/internal/errors"
	"github.com/rmarques/quizdesk/internal/logger"
	"github.com/rmarques/quizdesk/internal/models"
	"github.com/rmarques/quizdesk/internal/quiz"
	"github.com/rmarques/quizdesk/internal/store"
)

// quizChoices are the totals offered on the entry screen. The core itself
// only requires a positive total.
var quizChoices = []int{10, 20, 30, 40, 50}

// QuizService handles quiz-run business logic: preparing the selected
// sequence and driving the walk through it.
type QuizService interface {
	Choices(ctx context.Context) models.QuizChoices
	Start(ctx context.Context, total int) (*models.QuizState, error)
	State(ctx context.Context) (*models.QuizState, error)
	CurrentQuestion(ctx context.Context) (*models.QuestionView, error)
	Submit(ctx context.Context, label string) (*models.AnswerFeedback, error)
	Advance(ctx context.Context) (*models.QuizState, error)
	Abort(ctx context.Context) error
	Result(ctx context.Context) (*quiz.Performance, error)
	BrowseQuestions(ctx context.Context, storeName string, filter models.QuestionFilter) ([]models.Question, int, error)
}

type quizService struct {
	reader       *store.Reader
	cfg          quiz.Config
	defaultCount int
	newRand      func() *rand.Rand

	// One learner, one run: the single active session lives here. The HTTP
	// boundary is concurrent, so access is serialized.
	mu      sync.Mutex
	session *quiz.Session
	notices []string
}

// Option configures a quizService.
type Option func(*quizService)

// WithRand overrides the random source factory, for reproducible runs.
func WithRand(newRand func() *rand.Rand) Option {
	return func(s *quizService) { s.newRand = newRand }
}

// NewQuizService creates a new QuizService
func NewQuizService(reader *store.Reader, cfg quiz.Config, defaultCount int, opts ...Option) QuizService {
	s := &quizService{
		reader:       reader,
		cfg:          cfg,
		defaultCount: defaultCount,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *quizService) Choices(ctx context.Context) models.QuizChoices {
	choices := make([]int, len(quizChoices))
	copy(choices, quizChoices)
	return models.QuizChoices{Choices: choices, Default: s.defaultCount}
}

func (s *quizService) Start(ctx context.Context, total int) (*models.QuizState, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting quiz: total=%d", total)

	if total <= 0 {
		return nil, apperrors.NewValidationError("total", "requested question count must be positive")
	}

	// Store failures degrade to empty pools; they never abort the run.
	specific, general, notices := s.reader.LoadAll(ctx)
	for _, n := range notices {
		log.Warn("%s", n)
	}

	sampler := quiz.NewSampler(s.newRand(), s.cfg.SpecificRatio)
	selected := sampler.Select(specific, general, total)
	if len(selected) < total {
		log.Warn("only %d of %d requested questions available", len(selected), total)
	}

	session := quiz.NewSession(selected, s.cfg)

	s.mu.Lock()
	if s.session != nil && !s.session.Finished() {
		log.Info("replacing active quiz session: id=%s", s.session.ID())
		s.session.Close()
	}
	s.session = session
	s.notices = notices
	s.mu.Unlock()

	log.Info("quiz session started: id=%s, requested=%d, selected=%d", session.ID(), total, len(selected))
	return s.stateOf(session, notices), nil
}

func (s *quizService) State(ctx context.Context) (*models.QuizState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.activeLocked()
	if err != nil {
		return nil, err
	}
	return s.stateOf(session, s.notices), nil
}

func (s *quizService) CurrentQuestion(ctx context.Context) (*models.QuestionView, error) {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.activeLocked()
	if err != nil {
		return nil, err
	}

	q, err := session.Current()
	if errors.Is(err, quiz.ErrFinished) {
		log.Debug("current question requested after quiz finished")
		return nil, apperrors.NewValidationError("session", "quiz is already finished")
	}
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	return &models.QuestionView{
		Index:     session.Position() + 1,
		Total:     session.Len(),
		Number:    q.Number,
		Statement: q.Statement,
		Options:   q.Options(),
		Source:    q.Source,
	}, nil
}

func (s *quizService) Submit(ctx context.Context, label string) (*models.AnswerFeedback, error) {
	log := logger.FromContext(ctx)

	if !validLabel(label) {
		return nil, apperrors.NewValidationError("label", "must be one of a, b, c, d")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.activeLocked()
	if err != nil {
		return nil, err
	}

	// Submitting after the walk ended is a no-op, not an error.
	if session.Finished() {
		log.Debug("submit ignored, quiz finished: id=%s", session.ID())
		return &models.AnswerFeedback{Finished: true}, nil
	}

	q, _ := session.Current()
	correct := session.Submit(label)
	log.Debug("answer submitted: id=%s, position=%d, correct=%v", session.ID(), session.Position(), correct)

	return &models.AnswerFeedback{
		Correct:      correct,
		CorrectLabel: strings.ToLower(q.Answer),
	}, nil
}

func (s *quizService) Advance(ctx context.Context) (*models.QuizState, error) {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.activeLocked()
	if err != nil {
		return nil, err
	}

	session.Advance()
	if session.Finished() {
		log.Info("quiz session finished: id=%s, correct=%d/%d", session.ID(), session.Correct(), session.Len())
	}
	return s.stateOf(session, s.notices), nil
}

func (s *quizService) Abort(ctx context.Context) error {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.activeLocked()
	if err != nil {
		return err
	}

	session.Close()
	log.Info("quiz session aborted: id=%s", session.ID())
	return nil
}

func (s *quizService) Result(ctx context.Context) (*quiz.Performance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.activeLocked()
	if err != nil {
		return nil, err
	}

	p, err := session.Finalize()
	if errors.Is(err, quiz.ErrActive) {
		return nil, apperrors.NewValidationError("session", "quiz is still in progress")
	}
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &p, nil
}

func (s *quizService) BrowseQuestions(ctx context.Context, storeName string, filter models.QuestionFilter) ([]models.Question, int, error) {
	return s.reader.List(ctx, storeName, filter)
}

// activeLocked returns the current session; callers hold s.mu.
func (s *quizService) activeLocked() (*quiz.Session, error) {
	if s.session == nil {
		return nil, apperrors.NewNotFoundError("quiz session", "none started")
	}
	return s.session, nil
}

func (s *quizService) stateOf(session *quiz.Session, notices []string) *models.QuizState {
	return &models.QuizState{
		SessionID: session.ID(),
		Total:     session.Len(),
		Position:  session.Position(),
		Correct:   session.Correct(),
		Finished:  session.Finished(),
		Notices:   notices,
	}
}

func validLabel(label string) bool {
	label = strings.ToLower(strings.TrimSpace(label))
	for _, l := range models.Labels {
		if label == l {
			return true
		}
	}
	return false
}
