// SPDX-License-Identifier: Apache-2.0

package generator

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	httplib "github.com/maskstream/csvmask/internal/http"
	"github.com/maskstream/csvmask/internal/json"
)

// HTTPGenerator talks to a text generation service over HTTP. Every call is
// a single synchronous request with a bounded timeout and no retries; any
// failure is reported as ErrGeneratorUnavailable.
type HTTPGenerator struct {
	client  httplib.Client
	url     string
	model   string
	timeout time.Duration
}

type Config struct {
	// URL is the base URL of the generation service.
	URL string
	// Model is the model identifier sent with every generation request.
	Model string
	// Timeout bounds each generation call. Defaults to 3s.
	Timeout time.Duration
}

type Option func(g *HTTPGenerator)

const (
	defaultTimeout = 3 * time.Second

	generatePath = "/api/v1/generate"
)

type generateRequest struct {
	Kind  string `json:"kind"`
	Model string `json:"model"`
}

type generateResponse struct {
	Text string `json:"text"`
}

func NewHTTPGenerator(cfg *Config, opts ...Option) (*HTTPGenerator, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("generation service URL is required")
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	g := &HTTPGenerator{
		client:  &http.Client{Timeout: timeout},
		url:     strings.TrimSuffix(cfg.URL, "/"),
		model:   cfg.Model,
		timeout: timeout,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// WithClient overrides the internal http client. Used mostly in tests.
func WithClient(c httplib.Client) Option {
	return func(g *HTTPGenerator) {
		g.client = c
	}
}

func (g *HTTPGenerator) Generate(ctx context.Context, kind Kind) (string, error) {
	switch kind {
	case Name, Email:
	default:
		return "", fmt.Errorf("%q: %w", kind, ErrUnsupportedKind)
	}

	body, err := json.Marshal(&generateRequest{
		Kind:  string(kind),
		Model: g.model,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling generation request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url+generatePath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGeneratorUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: unexpected status code %d", ErrGeneratorUnavailable, resp.StatusCode)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %w", ErrGeneratorUnavailable, err)
	}

	var genResp generateResponse
	if err := json.Unmarshal(respBody, &genResp); err != nil {
		return "", fmt.Errorf("%w: decoding response: %w", ErrGeneratorUnavailable, err)
	}

	text := strings.TrimSpace(genResp.Text)
	if text == "" {
		return "", fmt.Errorf("%w: empty response text", ErrGeneratorUnavailable)
	}

	return text, nil
}

func (g *HTTPGenerator) Close() error {
	return nil
}
