// Package api is the REST client every console service goes through. It
// wraps the HTTP verbs, sends and decodes JSON, and logs failed calls once
// with the same classification for every caller.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// TokenSource returns the bearer token attached to each request.
type TokenSource func() (string, error)

type Client struct {
	baseURL string
	http    *http.Client
	headers map[string]string
	token   TokenSource
	logger  *log.Logger
}

type Option func(*Client)

// WithTimeout sets the blanket per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying client (its Timeout is kept).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithHeader(key, value string) Option {
	return func(c *Client) { c.headers[key] = value }
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.token = ts }
}

func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		headers: map[string]string{"Accept": "application/json"},
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

// File is one file part of a multipart request.
type File struct {
	Field    string
	Name     string
	Contents io.Reader
}

// PostMultipart sends fields and file as multipart/form-data.
func (c *Client) PostMultipart(ctx context.Context, path string, file File, fields map[string]string, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(file.Field, file.Name)
	if err != nil {
		return c.setupFailed(http.MethodPost, path, err)
	}
	if _, err := io.Copy(part, file.Contents); err != nil {
		return c.setupFailed(http.MethodPost, path, err)
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return c.setupFailed(http.MethodPost, path, err)
		}
	}
	if err := mw.Close(); err != nil {
		return c.setupFailed(http.MethodPost, path, err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, &buf)
	if err != nil {
		return c.setupFailed(http.MethodPost, path, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.send(req, path, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return c.setupFailed(method, path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := c.newRequest(ctx, method, path, reader)
	if err != nil {
		return c.setupFailed(method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, path, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	if c.token != nil {
		tok, err := c.token()
		if err != nil {
			return nil, fmt.Errorf("token: %w", err)
		}
		if tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	return req, nil
}

func (c *Client) send(req *http.Request, path string, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Printf("[ERROR] %s %s: No response received from server: %v", req.Method, path, err)
		return &Error{Method: req.Method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Printf("[ERROR] %s %s: reading response: %v", req.Method, path, err)
		return &Error{Method: req.Method, Path: path, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{
			Method:     req.Method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    serverMessage(body),
		}
		c.logger.Printf("[ERROR] %s %s: %s", req.Method, path, Classify(apiErr))
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		c.logger.Printf("[ERROR] %s %s: decoding response: %v", req.Method, path, err)
		return &Error{Method: req.Method, Path: path, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (c *Client) setupFailed(method, path string, err error) error {
	c.logger.Printf("[ERROR] %s %s: Error setting up request: %v", method, path, err)
	return &Error{Method: method, Path: path, Err: err}
}

func serverMessage(body []byte) string {
	var e struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &e) == nil {
		if e.Error != "" {
			return e.Error
		}
		if e.Message != "" {
			return e.Message
		}
	}
	return strings.TrimSpace(string(body))
}

// Error is returned for every failed call. StatusCode is 0 when no response
// was received.
type Error struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	switch {
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
	case e.StatusCode != 0 && e.Err == nil:
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	default:
		return fmt.Sprintf("%s %s: request failed", e.Method, e.Path)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Classify returns the log line for a failed call.
func Classify(err error) string {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return "An error occurred: " + err.Error()
	}
	switch apiErr.StatusCode {
	case 0:
		return "No response received from server"
	case http.StatusForbidden:
		return "Forbidden: You do not have permission to access this resource"
	case http.StatusNotFound:
		return "Resource not found"
	case http.StatusInternalServerError:
		return "Internal server error"
	default:
		return fmt.Sprintf("An error occurred: Request failed with status code %d", apiErr.StatusCode)
	}
}

// StatusCode extracts the HTTP status from err, 0 if there is none.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
