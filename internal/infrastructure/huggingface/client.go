package huggingface

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

	"golang.org/x/time/rate"

	"SentimentScanner/internal/config"
	"SentimentScanner/internal/domain"
	"SentimentScanner/internal/ports"
)

const (
	defaultTimeout = 30 * time.Second
	maxErrorBody   = 1024
)

// ErrEmptyResponse is returned when the model answers with no class scores.
var ErrEmptyResponse = errors.New("classifier returned no scores")

// Client calls a hosted text-classification model over the inference API.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
	limiter  *rate.Limiter
}

var _ ports.Classifier = (*Client)(nil)

type request struct {
	Inputs     string            `json:"inputs"`
	Parameters requestParameters `json:"parameters"`
	Options    requestOptions    `json:"options"`
}

type requestParameters struct {
	TopK *int `json:"top_k"`
}

type requestOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

type apiError struct {
	Error string `json:"error"`
}

// NewClient creates a reusable HTTP client. A nil client gets the configured timeout;
// RequestsPerSecond at or below zero disables client-side throttling.
func NewClient(cfg config.ClassifierConfig, client *http.Client) *Client {
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	limit := rate.Inf
	burst := 1
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
		if cfg.Concurrency > 1 {
			burst = cfg.Concurrency
		}
	}

	return &Client{
		endpoint: cfg.Endpoint,
		token:    cfg.APIToken,
		http:     client,
		limiter:  rate.NewLimiter(limit, burst),
	}
}

// Classify asks the model for every class probability of text.
func (c *Client) Classify(ctx context.Context, text string) ([]domain.ClassScore, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("wait for rate limiter: %w", err)
	}

	body, err := json.Marshal(request{
		Inputs:  text,
		Options: requestOptions{WaitForModel: true},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("unexpected status %s: %s", resp.Status, strings.TrimSpace(string(raw)))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return parseScores(raw)
}

// parseScores accepts both the nested [[...]] shape returned for a single input
// and a flat [...] list.
func parseScores(raw []byte) ([]domain.ClassScore, error) {
	trimmed := bytes.TrimSpace(raw)

	var failure apiError
	if len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &failure); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		if failure.Error != "" {
			return nil, fmt.Errorf("classifier error: %s", failure.Error)
		}
		return nil, fmt.Errorf("decode response: unexpected object")
	}

	var nested [][]domain.ClassScore
	if err := json.Unmarshal(trimmed, &nested); err == nil {
		if len(nested) == 0 || len(nested[0]) == 0 {
			return nil, ErrEmptyResponse
		}
		return nested[0], nil
	}

	var flat []domain.ClassScore
	if err := json.Unmarshal(trimmed, &flat); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(flat) == 0 {
		return nil, ErrEmptyResponse
	}
	return flat, nil
}
