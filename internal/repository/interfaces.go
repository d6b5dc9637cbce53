package repository

import (
	"context"

	"github.com/rmarques/quizdesk/internal/models"
)

// QuestionRepository handles question data access for a single store.
type QuestionRepository interface {
	// All returns every question in the store's native row order.
	All(ctx context.Context) ([]models.Question, error)
	List(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error)
	Count(ctx context.Context, filter models.QuestionFilter) (int, error)
}
