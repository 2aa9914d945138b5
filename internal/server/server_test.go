package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ocrdesk/ocrdesk/internal/api"
)

func newTestServer(t *testing.T, backendURL string) http.Handler {
	t.Helper()
	s, err := New(Config{
		Backend: api.NewClient(backendURL),
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return s.httpServer.Handler
}

func multipartBody(t *testing.T, names ...string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, n := range names {
		part, err := mw.CreateFormFile("files", n)
		if err != nil {
			t.Fatal(err)
		}
		part.Write([]byte("data-" + n))
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestHandleIndex(t *testing.T) {
	handler := newTestServer(t, "http://127.0.0.1:0")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ocrdesk") {
		t.Error("expected upload page body")
	}
}

func TestHandleProcess(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"ocr_result":{"text":"Hello","average_confidence":92.5,
			"page_count":2,"total_words":1,"total_characters":5,"is_scanned":true,
			"pages":[{"page_number":1,"confidence":95,"word_count":1,"text":"Hello"},
			         {"page_number":2,"confidence":90,"word_count":0,"text":""}]}}]}`))
	}))
	defer backend.Close()

	handler := newTestServer(t, backend.URL)

	body, contentType := multipartBody(t, "a.pdf")
	req := httptest.NewRequest(http.MethodPost, "/process", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp processResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Text != "Hello" {
		t.Errorf("expected raw text Hello, got %q", resp.Text)
	}
	for _, want := range []string{"92.5%", "tier-good", "Scanned document", "Per-page breakdown"} {
		if !strings.Contains(resp.HTML, want) {
			t.Errorf("rendered fragment missing %q", want)
		}
	}
}

func TestHandleProcessEscapesPageText(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"ocr_result":{"text":"x",
			"pages":[{"page_number":1,"confidence":80,"word_count":1,"text":"<script>alert(1)</script>"},
			         {"page_number":2,"confidence":80,"word_count":0,"text":""}]}}]}`))
	}))
	defer backend.Close()

	handler := newTestServer(t, backend.URL)

	body, contentType := multipartBody(t, "a.pdf")
	req := httptest.NewRequest(http.MethodPost, "/process", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var resp processResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if strings.Contains(resp.HTML, "<script>") {
		t.Error("page text was not escaped in rendered fragment")
	}
	if !strings.Contains(resp.HTML, "&lt;script&gt;") {
		t.Error("expected escaped script tag in fragment")
	}
}

func TestHandleProcessForwardsDetail(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		w.Write([]byte(`{"detail":"file too large"}`))
	}))
	defer backend.Close()

	handler := newTestServer(t, backend.URL)

	body, contentType := multipartBody(t, "a.pdf")
	req := httptest.NewRequest(http.MethodPost, "/process", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected backend status forwarded, got %d", rec.Code)
	}
	var detail struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &detail); err != nil {
		t.Fatalf("failed to decode error payload: %v", err)
	}
	if detail.Detail != "file too large" {
		t.Errorf("expected detail forwarded, got %q", detail.Detail)
	}
}

func TestHandleProcessNoFiles(t *testing.T) {
	handler := newTestServer(t, "http://127.0.0.1:0")

	body, contentType := multipartBody(t)
	req := httptest.NewRequest(http.MethodPost, "/process", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandleHealthDegraded(t *testing.T) {
	handler := newTestServer(t, "http://127.0.0.1:0")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 when backend unreachable, got %d", rec.Code)
	}
}
