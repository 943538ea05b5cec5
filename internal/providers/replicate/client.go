package replicate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"mockupgen/internal/domain"
)

// API is the prediction surface the pipeline depends on.
type API interface {
	Create(ctx context.Context, prompt string) (*Prediction, error)
	Get(ctx context.Context, id string) (*Prediction, error)
}

type Options struct {
	BaseURL      string
	APIToken     string
	ModelVersion string
	HTTPClient   *http.Client
	Timeout      time.Duration
}

// Client talks to the Replicate predictions API. It performs no retries;
// failures propagate immediately to the caller.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	version    string
}

func NewClient(opts Options) *Client {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = "https://api.replicate.com/v1"
	}
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 60 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &Client{
		httpClient: client,
		baseURL:    base,
		token:      strings.TrimSpace(opts.APIToken),
		version:    strings.TrimSpace(opts.ModelVersion),
	}
}

type createRequest struct {
	Version string `json:"version"`
	Input   struct {
		Prompt string `json:"prompt"`
	} `json:"input"`
}

// Create submits a generation request and returns the provider's handle in
// whatever state the provider reports.
func (c *Client) Create(ctx context.Context, prompt string) (*Prediction, error) {
	if c == nil {
		return nil, errors.New("replicate: client not configured")
	}
	if c.token == "" {
		return nil, fmt.Errorf("replicate: api token missing: %w", domain.ErrProviderRejected)
	}
	var payload createRequest
	payload.Version = c.version
	payload.Input.Prompt = prompt
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predictions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Token "+c.token)

	return c.do(req, "create")
}

// Get retrieves the current status of a prediction by id.
func (c *Client) Get(ctx context.Context, id string) (*Prediction, error) {
	if c == nil {
		return nil, errors.New("replicate: client not configured")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/predictions/"+id, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Token "+c.token)

	return c.do(req, "get")
}

func (c *Client) do(req *http.Request, op string) (*Prediction, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("replicate: %s: %w: %w", op, domain.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("replicate: %s: http %d: %s: %w", op, resp.StatusCode, strings.TrimSpace(string(detail)), domain.ErrProviderRejected)
	}

	var pred Prediction
	if err := json.NewDecoder(resp.Body).Decode(&pred); err != nil {
		return nil, fmt.Errorf("replicate: %s: decode response: %w", op, err)
	}
	if pred.ID == "" {
		return nil, fmt.Errorf("replicate: %s: response missing prediction id: %w", op, domain.ErrProviderRejected)
	}
	return &pred, nil
}

var _ API = (*Client)(nil)
