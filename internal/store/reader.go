package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	apperrors "github.com/rmarques/quizdesk/internal/errors"
	"github.com/rmarques/quizdesk/internal/logger"
	"github.com/rmarques/quizdesk/internal/models"
	"github.com/rmarques/quizdesk/internal/repository"
	"github.com/rmarques/quizdesk/internal/repository/sqlite"
)

// Store names. The application knows exactly two question stores.
const (
	Specific = "specific"
	General  = "general"
)

// Names lists the known store names in sampling order.
var Names = []string{Specific, General}

// Reader reads question stores with a scoped handle per call: each read
// opens the database, queries it and closes it before returning, on every
// exit path. The stores are pre-populated and accessed read-only.
type Reader struct {
	paths map[string]string
}

func NewReader(specificPath, generalPath string) *Reader {
	return &Reader{paths: map[string]string{
		Specific: specificPath,
		General:  generalPath,
	}}
}

func (r *Reader) open(name string) (*sql.DB, error) {
	path, ok := r.paths[name]
	if !ok {
		return nil, apperrors.NewValidationError("store", fmt.Sprintf("unknown store %q", name))
	}
	dsn := fmt.Sprintf("file:%s?mode=ro&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, apperrors.NewStoreUnavailableError(name, err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// withRepo runs fn against a freshly opened store and guarantees the handle
// is released before returning.
func (r *Reader) withRepo(name string, fn func(repository.QuestionRepository) error) error {
	db, err := r.open(name)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(sqlite.NewQuestionRepository(db))
}

// Load returns all questions from the named store in native row order.
// Any open, query or scan failure becomes a STORE_UNAVAILABLE error.
func (r *Reader) Load(ctx context.Context, name string) ([]models.Question, error) {
	log := logger.FromContext(ctx).WithPrefix("store")
	log.Debug("loading store: %s", name)

	var questions []models.Question
	err := r.withRepo(name, func(repo repository.QuestionRepository) error {
		var err error
		questions, err = repo.All(ctx)
		if err != nil {
			return apperrors.NewStoreUnavailableError(name, err)
		}
		return nil
	})
	if err != nil {
		log.Warn("store %s unavailable: %v", name, err)
		return nil, err
	}
	for _, q := range questions {
		if !q.ValidAnswer() {
			log.Warn("store %s: question %d has invalid answer label %q", name, q.ID, q.Answer)
		}
	}
	log.Debug("store %s loaded: %d questions", name, len(questions))
	return questions, nil
}

// LoadAll reads both stores. A failed store is reported as a notice and
// contributes an empty pool; LoadAll itself never fails.
func (r *Reader) LoadAll(ctx context.Context) (specific, general []models.Question, notices []string) {
	var err error
	specific, err = r.Load(ctx, Specific)
	if err != nil {
		notices = append(notices, fmt.Sprintf("store %q could not be read; continuing without it", Specific))
	}
	general, err = r.Load(ctx, General)
	if err != nil {
		notices = append(notices, fmt.Sprintf("store %q could not be read; continuing without it", General))
	}
	return specific, general, notices
}

// List returns a filtered page of questions from the named store.
func (r *Reader) List(ctx context.Context, name string, filter models.QuestionFilter) ([]models.Question, int, error) {
	log := logger.FromContext(ctx).WithPrefix("store")
	log.Debug("listing store %s: search=%q, limit=%d, offset=%d", name, filter.Search, filter.Limit, filter.Offset)

	var (
		questions []models.Question
		total     int
	)
	err := r.withRepo(name, func(repo repository.QuestionRepository) error {
		var err error
		if questions, err = repo.List(ctx, filter); err != nil {
			return apperrors.NewStoreUnavailableError(name, err)
		}
		if total, err = repo.Count(ctx, filter); err != nil {
			return apperrors.NewStoreUnavailableError(name, err)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return questions, total, nil
}

// Ping verifies the named store can be opened and queried.
func (r *Reader) Ping(ctx context.Context, name string) error {
	return r.withRepo(name, func(repo repository.QuestionRepository) error {
		if _, err := repo.Count(ctx, models.QuestionFilter{}); err != nil {
			return apperrors.NewStoreUnavailableError(name, err)
		}
		return nil
	})
}
