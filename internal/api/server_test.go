package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mharker/docrank/internal/config"
	"github.com/mharker/docrank/internal/pipeline"
	"github.com/mharker/docrank/internal/rank"
)

func testServer(t *testing.T, apiKey string) *Server {
	t.Helper()

	cfg := config.Load()
	cfg.APIKey = apiKey
	cfg.WorkerCount = 2
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	orch := pipeline.NewOrchestrator(cfg, log)
	ctx, cancel := context.WithCancel(context.Background())
	orch.Start(ctx)
	t.Cleanup(func() {
		cancel()
		orch.Stop()
	})

	analyzer := rank.NewAnalyzer(rank.DefaultConfig(), log)
	return NewServer(orch, analyzer, log, cfg)
}

func multipartFile(t *testing.T, field, filename string, content []byte, extra map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatal(err)
	}
	for k, v := range extra {
		if err := w.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, w.FormDataContentType()
}

func TestHealthEndpoint(t *testing.T) {
	srv := testServer(t, "")

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestOutlineUploadAndPoll(t *testing.T) {
	srv := testServer(t, "")

	body, contentType := multipartFile(t, "file", "notes.txt",
		[]byte("A paragraph of text.\n\nAnother paragraph.\n"), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/outline", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
	}

	var accepted struct {
		JobID   string `json:"job_id"`
		PollURL string `json:"poll_url"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &accepted); err != nil {
		t.Fatal(err)
	}
	if accepted.JobID == "" || accepted.PollURL == "" {
		t.Fatalf("expected job id and poll url, got %+v", accepted)
	}

	deadline := time.After(5 * time.Second)
	for {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, accepted.PollURL, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 on poll, got %d", rec.Code)
		}

		var snap pipeline.JobSnapshot
		if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
			t.Fatal(err)
		}
		if snap.Status == pipeline.StatusCompleted {
			if snap.Outline == nil {
				t.Fatal("expected outline in completed job")
			}
			return
		}
		if snap.Status == pipeline.StatusFailed {
			t.Fatalf("job failed: %v", snap.Errors)
		}
		select {
		case <-deadline:
			t.Fatalf("job did not finish, status %s", snap.Status)
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestOutlineRejectsUnsupportedType(t *testing.T) {
	srv := testServer(t, "")

	body, contentType := multipartFile(t, "file", "image.png", []byte{0x89}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/outline", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestOutlineStatusNotFound(t *testing.T) {
	srv := testServer(t, "")

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/outline/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAuthMiddleware_WhenKeyConfigured(t *testing.T) {
	srv := testServer(t, "secret-key")

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON error body, got content type %q", ct)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body["error"] == "" {
		t.Errorf("expected error field in body, got %q", rec.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	req.Header.Set("Authorization", "Bearer wrong-key")
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with wrong token, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	req.Header.Set("Authorization", "Bearer secret-key")
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with valid token, got %d", rec.Code)
	}

	// Health stays public.
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected public health endpoint, got %d", rec.Code)
	}
}

func TestAnalyzeEndpoint(t *testing.T) {
	srv := testServer(t, "")

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("files", "finance.txt")
	if err != nil {
		t.Fatal(err)
	}
	part.Write([]byte("Quarterly revenue grew with strong growth in recurring revenue and market data. Revenue trends and performance forecasts support the growth analysis presented in this review."))
	w.WriteField("persona", "Investment analyst")
	w.WriteField("job_to_be_done", "Analyze revenue trends and growth forecasts")
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result rank.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if result.Metadata.Persona != "Investment analyst" {
		t.Errorf("expected persona echoed, got %q", result.Metadata.Persona)
	}
}

func TestAnalyzeRequiresSpecFields(t *testing.T) {
	srv := testServer(t, "")

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	w.WriteField("persona", "analyst")
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
