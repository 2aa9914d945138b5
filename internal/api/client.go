// Package api is the HTTP client for the OCR processing backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/ocrdesk/ocrdesk/internal/ocr"
	"github.com/ocrdesk/ocrdesk/internal/selection"
)

// fileField is the multipart field name the backend expects, one part
// per submitted file.
const fileField = "files"

// ServerError is a non-2xx response from the backend. Detail carries the
// server-provided message when the error body contained one.
type ServerError struct {
	StatusCode int
	Detail     string
}

func (e *ServerError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// Client is an HTTP client for the OCR backend API.
type Client struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithAuthToken sets a bearer token attached to every request.
func WithAuthToken(token string) Option {
	return func(c *Client) { c.authToken = token }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a new backend client.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Minute, // Long timeout for large uploads
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ProcessOptions are the optional form fields of POST /ocr/process.
type ProcessOptions struct {
	Engine     string
	Language   string
	Preprocess *bool
	MergePDFs  bool
}

// Process submits the pending files as one multipart request and returns
// the parsed response. The response body is validated against the
// embedded process-response schema before decoding.
func (c *Client) Process(ctx context.Context, files []selection.File, opts ProcessOptions) (*ocr.ProcessResponse, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to submit")
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for _, f := range files {
		part, err := mw.CreateFormFile(fileField, f.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to create form file: %w", err)
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", f.Name, err)
		}
		_, err = io.Copy(part, rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", f.Name, err)
		}
	}

	if opts.Engine != "" {
		mw.WriteField("engine", opts.Engine)
	}
	if opts.Language != "" {
		mw.WriteField("language", opts.Language)
	}
	if opts.Preprocess != nil {
		mw.WriteField("preprocess", strconv.FormatBool(*opts.Preprocess))
	}
	if opts.MergePDFs {
		mw.WriteField("merge_pdfs", "true")
	}

	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ocr/process", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	if err := validateProcessResponse(body); err != nil {
		return nil, err
	}

	var resp ocr.ProcessResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &resp, nil
}

// Engines returns the OCR engines the backend reports.
func (c *Client) Engines(ctx context.Context) (*ocr.EnginesResponse, error) {
	var resp ocr.EnginesResponse
	if err := c.get(ctx, "/ocr/engines", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Task returns the status of a processing task.
func (c *Client) Task(ctx context.Context, id string) (*ocr.TaskStatus, error) {
	var resp ocr.TaskStatus
	if err := c.get(ctx, "/ocr/task/"+id, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Tasks lists processing tasks.
func (c *Client) Tasks(ctx context.Context, limit, offset int) (*ocr.TaskList, error) {
	var resp ocr.TaskList
	path := fmt.Sprintf("/ocr/tasks?limit=%d&offset=%d", limit, offset)
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteTask removes a processing task.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/ocr/task/"+id, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	_, err = c.do(req)
	return err
}

// Health checks backend health.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	_, err = c.do(req)
	return err
}

// BaseURL returns the backend base URL the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) get(ctx context.Context, path string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	body, err := c.do(req)
	if err != nil {
		return err
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// do executes the request and returns the response body, converting
// non-2xx statuses into *ServerError with the backend's detail message
// when one is present.
func (c *Client) do(req *http.Request) ([]byte, error) {
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		srvErr := &ServerError{StatusCode: resp.StatusCode}
		var errResp ocr.ErrorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Detail != "" {
			srvErr.Detail = errResp.Detail
		}
		return nil, srvErr
	}

	return body, nil
}
