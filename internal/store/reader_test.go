package store_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/rmarques/quizdesk/internal/errors"
	"github.com/rmarques/quizdesk/internal/models"
	"github.com/rmarques/quizdesk/internal/store"
	"github.com/rmarques/quizdesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appErrorCode(t *testing.T, err error) string {
	t.Helper()
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	return appErr.Code
}

func TestLoad(t *testing.T) {
	specificPath := testutil.NewStoreFile(t, testutil.Questions("specific", 3)...)
	generalPath := testutil.NewStoreFile(t, testutil.Questions("general", 2)...)
	reader := store.NewReader(specificPath, generalPath)

	specific, err := reader.Load(context.Background(), store.Specific)
	require.NoError(t, err)
	require.Len(t, specific, 3)
	assert.Equal(t, "specific", specific[0].Source)
	assert.Equal(t, 1, specific[0].Number, "native row order is preserved")

	general, err := reader.Load(context.Background(), store.General)
	require.NoError(t, err)
	assert.Len(t, general, 2)
}

func TestLoad_UnknownStore(t *testing.T) {
	reader := store.NewReader("a.db", "b.db")

	_, err := reader.Load(context.Background(), "bonus")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeValidation, appErrorCode(t, err))
}

func TestLoad_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.db")
	reader := store.NewReader(missing, missing)

	_, err := reader.Load(context.Background(), store.Specific)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeStoreUnavailable, appErrorCode(t, err))
}

func TestLoad_MalformedStore(t *testing.T) {
	bogus := filepath.Join(t.TempDir(), "bogus.db")
	require.NoError(t, os.WriteFile(bogus, []byte("this is not a sqlite database"), 0o644))
	reader := store.NewReader(bogus, bogus)

	_, err := reader.Load(context.Background(), store.Specific)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeStoreUnavailable, appErrorCode(t, err))
}

func TestLoadAll_DegradesToEmptyPool(t *testing.T) {
	specificPath := testutil.NewStoreFile(t, testutil.Questions("specific", 4)...)
	missing := filepath.Join(t.TempDir(), "gone.db")
	reader := store.NewReader(specificPath, missing)

	specific, general, notices := reader.LoadAll(context.Background())

	assert.Len(t, specific, 4)
	assert.Empty(t, general, "a failed store reads as zero questions")
	require.Len(t, notices, 1)
	assert.Contains(t, notices[0], "general")
}

func TestList(t *testing.T) {
	questions := testutil.Questions("specific", 5)
	questions[0].Statement = "something unique"
	path := testutil.NewStoreFile(t, questions...)
	reader := store.NewReader(path, path)

	got, total, err := reader.List(context.Background(), store.Specific, models.QuestionFilter{Search: "unique"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, got, 1)
	assert.Equal(t, "something unique", got[0].Statement)
}

func TestPing(t *testing.T) {
	path := testutil.NewStoreFile(t)
	reader := store.NewReader(path, filepath.Join(t.TempDir(), "gone.db"))

	assert.NoError(t, reader.Ping(context.Background(), store.Specific))

	err := reader.Ping(context.Background(), store.General)
	require.Error(t, err)
	var appErr *apperrors.AppError
	assert.True(t, errors.As(err, &appErr))
}
