package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/ocrdesk/ocrdesk/internal/api"
	"github.com/ocrdesk/ocrdesk/internal/ocr"
	"github.com/ocrdesk/ocrdesk/internal/render"
	"github.com/ocrdesk/ocrdesk/internal/selection"
)

// maxUploadMemory bounds the in-memory portion of multipart parsing.
const maxUploadMemory = 500 << 20 // 500MB

// processResponse is the JSON envelope returned to the browser. HTML is
// the rendered result fragment; Text carries the raw extracted text for
// the copy/download actions.
type processResponse struct {
	HTML    string `json:"html"`
	Text    string `json:"text"`
	Elapsed string `json:"elapsed"`
}

// resultFragment is the template data for templates/result.html. All
// OCR-derived text is pre-escaped with render.EscapeText before being
// marked as safe HTML.
type resultFragment struct {
	Summary   render.Summary
	FullText  template.HTML
	Elapsed   string
	ShowPages bool
	Pages     []fragmentPage
}

type fragmentPage struct {
	Number          int
	ConfidenceLabel string
	Tier            ocr.Tier
	WordCount       int
	Text            template.HTML
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "index.html", nil); err != nil {
		s.logger.Error("failed to render index", "error", err)
	}
}

// handleProcess receives the browser's multipart submission, forwards it
// to the OCR backend, and returns the rendered result for the first
// document. Failures of any kind come back as a single {detail} payload.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeDetail(w, http.StatusBadRequest, fmt.Sprintf("failed to parse form: %v", err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		writeDetail(w, http.StatusBadRequest, "no files uploaded")
		return
	}

	files := make([]selection.File, 0, len(headers))
	for _, fh := range headers {
		fh := fh
		files = append(files, selection.File{
			Name:        fh.Filename,
			Size:        fh.Size,
			ContentType: fh.Header.Get("Content-Type"),
			Open: func() (io.ReadCloser, error) {
				return fh.Open()
			},
		})
	}

	started := time.Now()
	resp, err := s.backend.Process(r.Context(), files, s.processOptions())
	if err != nil {
		status := http.StatusBadGateway
		var srvErr *api.ServerError
		if errors.As(err, &srvErr) {
			status = srvErr.StatusCode
		}
		s.logger.Error("backend submission failed", "files", len(files), "error", err)
		writeDetail(w, status, err.Error())
		return
	}
	if len(resp.Results) == 0 || resp.Results[0].OCRResult == nil {
		writeDetail(w, http.StatusBadGateway, "no results returned")
		return
	}
	elapsed := fmt.Sprintf("%.1f", time.Since(started).Seconds())

	result := resp.Results[0].OCRResult
	vm := render.Build(result)

	frag := resultFragment{
		Summary:   vm.Summary,
		FullText:  template.HTML(render.EscapeText(vm.Text)),
		Elapsed:   elapsed,
		ShowPages: vm.ShowPages,
	}
	for _, p := range vm.Pages {
		frag.Pages = append(frag.Pages, fragmentPage{
			Number:          p.Number,
			ConfidenceLabel: p.ConfidenceLabel,
			Tier:            p.Tier,
			WordCount:       p.WordCount,
			Text:            template.HTML(p.EscapedText),
		})
	}

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "result.html", frag); err != nil {
		s.logger.Error("failed to render result", "error", err)
		writeDetail(w, http.StatusInternalServerError, "failed to render result")
		return
	}

	s.logger.Info("submission rendered",
		"files", len(files),
		"pages", result.EffectivePageCount(),
		"confidence", result.Confidence(),
		"elapsed_seconds", elapsed)

	writeJSON(w, http.StatusOK, processResponse{
		HTML:    buf.String(),
		Text:    result.Text,
		Elapsed: elapsed,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{"status": "ok", "backend": "ok"}
	if err := s.backend.Health(r.Context()); err != nil {
		resp["status"] = "degraded"
		resp["backend"] = "unreachable"
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeDetail writes an error payload in the backend's {detail} shape so
// the frontend handles local and forwarded failures identically.
func writeDetail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ocr.ErrorResponse{Detail: msg})
}
