package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rmarques/quizdesk/internal/models"
	"github.com/stretchr/testify/require"
)

// questionSchema mirrors the fixed schema of the pre-populated question
// stores. Production code never creates it; tests do.
const questionSchema = `
CREATE TABLE questions (
    id        INTEGER PRIMARY KEY,
    number    INTEGER NOT NULL,
    statement TEXT NOT NULL,
    option_a  TEXT NOT NULL,
    option_b  TEXT NOT NULL,
    option_c  TEXT NOT NULL,
    option_d  TEXT NOT NULL,
    source    TEXT NOT NULL,
    answer    TEXT NOT NULL
);
`

// NewTestDB creates an in-memory SQLite database with the question store
// schema applied.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:?_busy_timeout=5000")
	require.NoError(t, err)

	_, err = db.Exec(questionSchema)
	require.NoError(t, err, "failed to create questions schema")

	return db
}

// SeedQuestions inserts questions preserving the given order as row order.
func SeedQuestions(t *testing.T, db *sql.DB, questions ...models.Question) {
	t.Helper()

	for _, q := range questions {
		_, err := db.Exec(`
			INSERT INTO questions (id, number, statement, option_a, option_b, option_c, option_d, source, answer)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, q.ID, q.Number, q.Statement, q.OptionA, q.OptionB, q.OptionC, q.OptionD, q.Source, q.Answer)
		require.NoError(t, err, "failed to seed question %d", q.ID)
	}
}

// NewStoreFile creates an on-disk store in the test's temp dir, seeds it and
// returns its path. The file outlives the connection so the scoped reader
// can open it per call.
func NewStoreFile(t *testing.T, questions ...models.Question) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "questions.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer MustClose(t, db)

	_, err = db.Exec(questionSchema)
	require.NoError(t, err)
	SeedQuestions(t, db, questions...)

	return path
}

// Questions builds n questions for one source pool, numbered from 1.
func Questions(source string, n int) []models.Question {
	out := make([]models.Question, n)
	for i := range out {
		out[i] = models.Question{
			ID:        int64(i + 1),
			Number:    i + 1,
			Statement: source + " statement",
			OptionA:   "alpha",
			OptionB:   "beta",
			OptionC:   "gamma",
			OptionD:   "delta",
			Source:    source,
			Answer:    models.LabelB,
		}
	}
	return out
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	t.Helper()
	require.NoError(t, closer.Close())
}
