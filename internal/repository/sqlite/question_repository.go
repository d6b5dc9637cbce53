package sqlite

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/rmarques/quizdesk/internal/logger"
	"github.com/rmarques/quizdesk/internal/models"
	"github.com/rmarques/quizdesk/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

var questionColumns = []string{
	"id", "number", "statement", "option_a", "option_b", "option_c", "option_d", "source", "answer",
}

type questionRepository struct {
	db *sql.DB
}

// NewQuestionRepository creates a new QuestionRepository implementation
func NewQuestionRepository(db *sql.DB) repository.QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) All(ctx context.Context) ([]models.Question, error) {
	log := logger.FromContext(ctx).WithPrefix("question_repo")
	log.Debug("loading all questions")

	// No ORDER BY: callers rely on native row order.
	rows, err := r.db.QueryContext(ctx, `
SELECT id, number, statement, option_a, option_b, option_c, option_d, source, answer
FROM questions
`)
	if err != nil {
		log.Error("failed to query questions: %v", err)
		return nil, err
	}
	defer rows.Close()

	questions, err := scanQuestions(rows)
	if err != nil {
		log.Error("failed to scan question rows: %v", err)
		return nil, err
	}
	log.Debug("loaded %d questions", len(questions))
	return questions, nil
}

func (r *questionRepository) List(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error) {
	log := logger.FromContext(ctx).WithPrefix("question_repo")
	log.Debug("listing questions with filter: search=%q, source=%q", filter.Search, filter.Source)

	query := sqlBuilder.Select(questionColumns...).From("questions")
	query = applyFilter(query, filter)
	query = query.OrderBy("number ASC")

	// Pagination
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query = query.Limit(uint64(limit)).Offset(uint64(offset))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list questions: %v", err)
		return nil, err
	}
	defer rows.Close()

	questions, err := scanQuestions(rows)
	if err != nil {
		log.Error("failed to scan question rows: %v", err)
		return nil, err
	}
	log.Debug("found %d questions", len(questions))
	return questions, nil
}

func (r *questionRepository) Count(ctx context.Context, filter models.QuestionFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("question_repo")
	log.Debug("counting questions with filter: search=%q, source=%q", filter.Search, filter.Source)

	query := sqlBuilder.Select("COUNT(*)").From("questions")
	query = applyFilter(query, filter)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count questions: %v", err)
		return 0, err
	}
	return count, nil
}

func applyFilter(query squirrel.SelectBuilder, filter models.QuestionFilter) squirrel.SelectBuilder {
	if filter.Search != "" {
		query = query.Where(squirrel.Like{"statement": "%" + filter.Search + "%"})
	}
	if filter.Source != "" {
		query = query.Where(squirrel.Eq{"source": filter.Source})
	}
	return query
}

func scanQuestions(rows *sql.Rows) ([]models.Question, error) {
	var questions []models.Question
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.Number, &q.Statement, &q.OptionA, &q.OptionB, &q.OptionC, &q.OptionD, &q.Source, &q.Answer); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}
