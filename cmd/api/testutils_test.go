package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aoideee/bookshelf-api/internal/data"
)

// testResponse mirrors envelope but keeps data raw so each test can decode
// the shape it expects.
type testResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func testClock() func() time.Time {
	t := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}

func newTestApplication(t *testing.T) *applicationDependencies {
	t.Helper()

	var cfg serverConfig
	cfg.port = 9000
	cfg.environment = "development"

	return &applicationDependencies{
		config: cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		models: data.NewModels(data.WithClock(testClock())),
	}
}

// do sends a request through the full middleware chain and decodes the envelope.
func do(t *testing.T, h http.Handler, method, target string, body any) (*httptest.ResponseRecorder, testResponse) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		js, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(js)
	}

	rr := httptest.NewRecorder()
	r := httptest.NewRequest(method, target, reader)
	if reader != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	h.ServeHTTP(rr, r)

	var resp testResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), rr.Body.String())
	return rr, resp
}

func bookPayload(name string, pageCount, readPage int, reading bool) map[string]any {
	return map[string]any{
		"name":      name,
		"year":      2010,
		"author":    "John Doe",
		"summary":   "Lorem ipsum dolor sit amet",
		"publisher": "Dicoding Indonesia",
		"pageCount": pageCount,
		"readPage":  readPage,
		"reading":   reading,
	}
}

// createBook adds a book over HTTP and returns its id.
func createBook(t *testing.T, h http.Handler, body map[string]any) string {
	t.Helper()

	rr, resp := do(t, h, http.MethodPost, "/books", body)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var created struct {
		BookID string `json:"bookId"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &created))
	require.NotEmpty(t, created.BookID)
	return created.BookID
}
