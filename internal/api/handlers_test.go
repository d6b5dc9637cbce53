package api_test

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rmarques/quizdesk/internal/api"
	"github.com/rmarques/quizdesk/internal/quiz"
	"github.com/rmarques/quizdesk/internal/services"
	"github.com/rmarques/quizdesk/internal/store"
	"github.com/rmarques/quizdesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	reader := store.NewReader(
		testutil.NewStoreFile(t, testutil.Questions("specific", 20)...),
		testutil.NewStoreFile(t, testutil.Questions("general", 20)...),
	)
	svc := services.NewQuizService(reader, quiz.DefaultConfig(), 40, services.WithRand(func() *rand.Rand {
		return rand.New(rand.NewSource(1))
	}))
	srv := &api.Server{QuizService: svc, Reader: reader}
	return srv.Routes()
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reqBody bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&reqBody).Encode(body))
	}
	req := httptest.NewRequest(method, path, &reqBody)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	out := map[string]any{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func TestQuizFlow(t *testing.T) {
	handler := newTestServer(t)

	rec, body := doJSON(t, handler, http.MethodPost, "/api/quiz", map[string]int{"total": 4})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 4.0, body["total"])
	assert.NotEmpty(t, body["session_id"])

	for i := 0; i < 4; i++ {
		rec, body = doJSON(t, handler, http.MethodGet, "/api/quiz/question", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, float64(i+1), body["index"])
		options, ok := body["options"].(map[string]any)
		require.True(t, ok)
		assert.Len(t, options, 4)
		assert.NotContains(t, body, "answer", "the correct label must stay hidden")

		rec, body = doJSON(t, handler, http.MethodPost, "/api/quiz/answer", map[string]string{"label": "b"})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, body["correct"])

		rec, _ = doJSON(t, handler, http.MethodPost, "/api/quiz/advance", nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec, body = doJSON(t, handler, http.MethodGet, "/api/quiz/result", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 100.0, body["percentage"])
	assert.Equal(t, "excellent", body["tier"])
	assert.NotEmpty(t, body["message"])
}

func TestStartQuiz_InvalidTotal(t *testing.T) {
	handler := newTestServer(t)

	rec, body := doJSON(t, handler, http.MethodPost, "/api/quiz", map[string]int{"total": 0})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	errObj, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", errObj["code"])
}

func TestResult_WithoutSession(t *testing.T) {
	handler := newTestServer(t)

	rec, _ := doJSON(t, handler, http.MethodGet, "/api/quiz/result", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChoices(t *testing.T) {
	handler := newTestServer(t)

	rec, body := doJSON(t, handler, http.MethodGet, "/api/quiz/choices", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 40.0, body["default"])
	assert.Len(t, body["choices"], 5)
}

func TestHealth(t *testing.T) {
	handler := newTestServer(t)

	rec, body := doJSON(t, handler, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
	stores, ok := body["stores"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ok", stores["specific"])
	assert.Equal(t, "ok", stores["general"])
}

func TestBrowseQuestions(t *testing.T) {
	handler := newTestServer(t)

	rec, body := doJSON(t, handler, http.MethodGet, "/api/questions?store=general&limit=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 20.0, body["total"])
	questions, ok := body["questions"].([]any)
	require.True(t, ok)
	assert.Len(t, questions, 5)
}
