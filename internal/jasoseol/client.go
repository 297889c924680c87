package jasoseol

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/p-shah256/jasoseol/pkg/logger"
	"github.com/p-shah256/jasoseol/pkg/types"
)

const (
	DefaultBaseURL = "https://jasoseol.com"
	QuestionPath   = "/employment/employment_question.json"

	userAgent = "Mozilla/5.0"
)

// Client talks to jasoseol.com on behalf of an existing browser session.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient replaces the underlying client. Its Jar is overwritten by the
// jar passed to NewClient unless that jar is nil.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient returns a client whose requests carry the cookies in jar.
func NewClient(jar http.CookieJar, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if jar != nil {
		hc := *c.httpClient
		hc.Jar = jar
		c.httpClient = &hc
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchEmploymentQuestions posts the resume id and returns the raw JSON value of
// employment_question, exactly as the server sent it. A response without that
// key yields nil and no error. The HTTP status is not checked.
func (c *Client) FetchEmploymentQuestions(ctx context.Context, resumeID int) (json.RawMessage, error) {
	ctx, requestID := logger.EnsureRequestID(ctx)
	url := c.baseURL + QuestionPath

	reqBody, err := json.Marshal(types.QuestionRequest{EmploymentResumeID: resumeID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	slog.DebugContext(ctx, "Fetching employment questions", "resume_id", resumeID, "url", url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	logAttrs := []any{
		"resume_id", resumeID,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
		"request_id", requestID,
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.WarnContext(ctx, "Employment question request returned non-2xx status", logAttrs...)
	} else {
		slog.DebugContext(ctx, "Employment question request completed", logAttrs...)
	}

	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("failed to decode response: invalid JSON (status %d)", resp.StatusCode)
	}

	question := gjson.GetBytes(body, "employment_question")
	if !question.Exists() {
		return nil, nil
	}
	return json.RawMessage(question.Raw), nil
}
