package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/ats-scanner/internal/keywords"
	"github.com/jonathan/ats-scanner/internal/server/middleware"
	"github.com/jonathan/ats-scanner/internal/server/ratelimit"
	"github.com/jonathan/ats-scanner/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	if cfg.RateLimit == nil {
		cfg.RateLimit = &ratelimit.Config{Enabled: false}
	}
	s, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(s.rateLimiter.Stop)
	return s
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

func TestNew_InvalidOptions(t *testing.T) {
	_, err := New(Config{Options: keywords.Options{MinWordLength: -1}, RateLimit: &ratelimit.Config{}})
	require.Error(t, err)
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, Config{})

	w := do(t, s, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestTaxonomyEndpoint(t *testing.T) {
	s := newTestServer(t, Config{})

	w := do(t, s, http.MethodGet, "/taxonomy", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp TaxonomyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Categories)
	assert.Equal(t, keywords.DefaultTaxonomy().CategoryNames()[0], resp.Categories[0].Name)
	assert.Equal(t, 1.2, resp.Categories[0].Weight)
}

func TestExtractEndpoint(t *testing.T) {
	s := newTestServer(t, Config{})

	w := do(t, s, http.MethodPost, "/extract", `{"text": "Python python PYTHON and Go"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var result types.ExtractionResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, []string{"go", "python"}, result.Keywords)
	assert.Equal(t, 3, result.Frequency["python"])
	assert.Equal(t, 2, result.Matches)
}

func TestExtractEndpoint_RequestOptions(t *testing.T) {
	s := newTestServer(t, Config{})

	w := do(t, s, http.MethodPost, "/extract", `{"text": "python python python go", "options": {"score_cap_per_keyword": 2}}`)
	require.Equal(t, http.StatusOK, w.Code)

	var result types.ExtractionResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 3, result.Score)
}

func TestExtractEndpoint_Errors(t *testing.T) {
	s := newTestServer(t, Config{})

	tests := []struct {
		name     string
		body     string
		contains string
	}{
		{"invalid JSON", `{"text": `, "invalid request body"},
		{"unknown field", `{"text": "go", "extra": 1}`, "unknown field"},
		{"trailing data", `{"text": "go"} {}`, "trailing data"},
		{"missing text", `{}`, "text - is required"},
		{"invalid options", `{"text": "go", "options": {"min_word_length": 5, "max_word_length": 3}}`, "MaxWordLength"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, http.MethodPost, "/extract", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, decodeError(t, w), tt.contains)
		})
	}
}

func TestScanEndpoint_InlineJob(t *testing.T) {
	s := newTestServer(t, Config{})

	body := `{"document": "React developer with Docker", "job_description": "React, Docker, Kubernetes, AWS, Python"}`
	w := do(t, s, http.MethodPost, "/scan", body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp ScanResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	_, err := uuid.Parse(resp.ScanID)
	assert.NoError(t, err)
	assert.Equal(t, 40, resp.Result.MatchPercentage)
	assert.Equal(t, types.RatingFair, resp.Result.Rating)
	assert.Equal(t, []string{"docker", "react"}, resp.Result.Matched)
	assert.Equal(t, []string{"aws", "kubernetes", "python"}, resp.Result.Missing)
	require.Len(t, resp.Targets.Targets, 3)
	assert.Equal(t, "python", resp.Targets.Targets[0].Keyword)
}

func TestScanEndpoint_JobURL(t *testing.T) {
	posting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><main><ul><li>Go</li><li>PostgreSQL</li></ul></main></body></html>`))
	}))
	defer posting.Close()

	s := newTestServer(t, Config{FetchCacheTTL: time.Minute})

	w := do(t, s, http.MethodPost, "/scan", `{"document": "Go developer", "job_url": "`+posting.URL+`"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp ScanResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, posting.URL, resp.JobSource)
	assert.Equal(t, []string{"go"}, resp.Result.Matched)
	assert.Equal(t, []string{"postgresql"}, resp.Result.Missing)
	assert.Equal(t, 1, s.fetcher.Len())
}

func TestScanEndpoint_JobURLUpstreamError(t *testing.T) {
	posting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer posting.Close()

	s := newTestServer(t, Config{})

	w := do(t, s, http.MethodPost, "/scan", `{"document": "Go", "job_url": "`+posting.URL+`"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestScanEndpoint_ValidationErrors(t *testing.T) {
	s := newTestServer(t, Config{})

	w := do(t, s, http.MethodPost, "/scan", `{"document": "Go"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w), "job_description or job_url is required")

	w = do(t, s, http.MethodPost, "/scan", `{"job_description": "Go"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func multipartBody(t *testing.T, filename, content, job string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if filename != "" {
		fw, err := mw.CreateFormFile("resume", filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	if job != "" {
		require.NoError(t, mw.WriteField("job_description", job))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func doUpload(s *Server, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/scan/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestScanUploadEndpoint(t *testing.T) {
	s := newTestServer(t, Config{})

	body, contentType := multipartBody(t, "resume.md", "# Jane\n- Go\n- Terraform", "Go, Terraform and Redis")
	w := doUpload(s, body, contentType)
	require.Equal(t, http.StatusOK, w.Code)

	var resp ScanResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"go", "terraform"}, resp.Result.Matched)
	assert.Equal(t, []string{"redis"}, resp.Result.Missing)
	assert.Equal(t, 67, resp.Result.MatchPercentage)
}

func TestScanUploadEndpoint_Errors(t *testing.T) {
	s := newTestServer(t, Config{})

	body, contentType := multipartBody(t, "resume.rtf", "{\\rtf1 Go}", "Go")
	w := doUpload(s, body, contentType)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, decodeError(t, w), "unsupported file type")

	body, contentType = multipartBody(t, "", "", "Go")
	w = doUpload(s, body, contentType)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w), "resume")

	body, contentType = multipartBody(t, "resume.txt", "Go", "")
	w = doUpload(s, body, contentType)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w), "job_description")
}

func TestScanUploadEndpoint_TooLarge(t *testing.T) {
	s := newTestServer(t, Config{MaxUploadBytes: 1024})

	body, contentType := multipartBody(t, "resume.txt", strings.Repeat("Go ", 2000), "Go")
	w := doUpload(s, body, contentType)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t, Config{})

	w := do(t, s, http.MethodGet, "/scan", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestCORSMiddleware(t *testing.T) {
	s := newTestServer(t, Config{})

	w := do(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Methods"))
}

func TestCORSMiddleware_OPTIONS(t *testing.T) {
	s := newTestServer(t, Config{})

	w := do(t, s, http.MethodOptions, "/scan", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, w.Body.Len())
}

func TestRateLimitMiddleware(t *testing.T) {
	s := newTestServer(t, Config{RateLimit: &ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		EndpointConfigs: []ratelimit.EndpointConfig{
			{Path: "/extract", Method: "POST", Limit: 2, Window: time.Minute, Burst: 2},
		},
	}})

	for i := 0; i < 2; i++ {
		w := do(t, s, http.MethodPost, "/extract", `{"text": "go"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	w := do(t, s, http.MethodPost, "/extract", `{"text": "go"}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "30", w.Header().Get("Retry-After"))
	assert.Equal(t, "rate_limit_exceeded", decodeError(t, w))

	// Health checks stay available
	w = do(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoggingMiddleware_PassesThrough(t *testing.T) {
	s := newTestServer(t, Config{})

	handler := s.withLogging(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, "short and stout", w.Body.String())
}

func TestRequestIDHeader_Echoed(t *testing.T) {
	s := newTestServer(t, Config{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(middleware.RequestIDHeader, "trace-123")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, "trace-123", w.Header().Get(middleware.RequestIDHeader))
}

func TestJSONResponse(t *testing.T) {
	s := newTestServer(t, Config{})
	w := httptest.NewRecorder()

	s.jsonResponse(w, http.StatusCreated, map[string]int{"n": 1})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"n": 1}`, w.Body.String())
}

func TestFailRequest_HidesInternalErrors(t *testing.T) {
	s := newTestServer(t, Config{})
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/x", nil).WithContext(middleware.WithRequestID(context.Background(), "abc"))

	s.failRequest(w, r, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", decodeError(t, w))
}
