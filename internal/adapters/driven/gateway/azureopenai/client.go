// Package azureopenai implements the InferenceGateway port against the
// Azure OpenAI chat completions API. Every call requests a JSON object
// response and decodes it into the caller's schema type; replies that
// do not conform are surfaced as schema violations so the core can
// degrade instead of propagating malformed model output.
package azureopenai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/culturebridge-labs/culturebridge/internal/core/domain"
	"github.com/culturebridge-labs/culturebridge/internal/core/ports/driven"
)

const (
	defaultAPIVersion = "2024-02-01"
	defaultRPS        = 2
	defaultMaxTokens  = 1024
)

// Config holds the connection settings for one Azure OpenAI deployment.
type Config struct {
	// Endpoint is the resource base URL, e.g. https://myres.openai.azure.com.
	Endpoint string

	// APIKey authenticates requests.
	APIKey string

	// Deployment is the model deployment name.
	Deployment string

	// APIVersion selects the API surface. Defaults to defaultAPIVersion.
	APIVersion string

	// RequestsPerSecond caps the client-side request rate. Defaults to 2.
	RequestsPerSecond float64

	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// Client is an InferenceGateway backed by Azure OpenAI.
type Client struct {
	cfg        Config
	httpClient *http.Client
	limiter    *rate.Limiter
}

var _ driven.InferenceGateway = (*Client)(nil)

// New validates the config and creates a client. No network calls are
// made here; use Ping to verify reachability.
func New(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("azureopenai: endpoint is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("azureopenai: api key is required")
	}
	if cfg.Deployment == "" {
		return nil, fmt.Errorf("azureopenai: deployment is required")
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = defaultAPIVersion
	}
	if cfg.RequestsPerSecond == 0 {
		cfg.RequestsPerSecond = defaultRPS
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages       []chatMessage   `json:"messages"`
	MaxTokens      int             `json:"max_tokens"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends a chat completion request for the role's system
// behaviour and decodes the JSON reply into out.
func (c *Client) Complete(ctx context.Context, req driven.InferenceRequest, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return classifyTransportError(err)
	}

	contextJSON, err := json.Marshal(req.Context)
	if err != nil {
		return fmt.Errorf("azureopenai: marshaling context: %w", err)
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxTokens
	}
	body, err := json.Marshal(chatRequest{
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt(req.Role)},
			{Role: "user", Content: string(contextJSON)},
		},
		MaxTokens:      maxTokens,
		Temperature:    req.Temperature,
		ResponseFormat: &responseFormat{Type: "json_object"},
	})
	if err != nil {
		return fmt.Errorf("azureopenai: marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		c.cfg.Endpoint, c.cfg.Deployment, c.cfg.APIVersion)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("azureopenai: building request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("api-key", c.cfg.APIKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return classifyTransportError(err)
	}
	defer resp.Body.Close()

	if err := classifyStatus(resp.StatusCode); err != nil {
		io.Copy(io.Discard, resp.Body)
		return err
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return fmt.Errorf("%w: decoding response envelope: %v", domain.ErrGatewaySchema, err)
	}
	if len(chat.Choices) == 0 {
		return fmt.Errorf("%w: response has no choices", domain.ErrGatewaySchema)
	}
	if err := json.Unmarshal([]byte(chat.Choices[0].Message.Content), out); err != nil {
		return fmt.Errorf("%w: decoding model output: %v", domain.ErrGatewaySchema, err)
	}
	return nil
}

// ModelName returns the configured deployment name.
func (c *Client) ModelName() string {
	return c.cfg.Deployment
}

// Ping sends a minimal completion to verify credentials and reachability.
func (c *Client) Ping(ctx context.Context) error {
	var out map[string]any
	return c.Complete(ctx, driven.InferenceRequest{
		Role:      driven.RoleCulturalAnalyst,
		Context:   map[string]string{"ping": "ping"},
		MaxTokens: 16,
	}, &out)
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

func systemPrompt(role string) string {
	switch role {
	case driven.RoleCulturalAnalyst:
		return "You are a cross-cultural consumer behavior analyst. " +
			"Given a resolved cultural behavior profile and product context, " +
			"write a short narrative summary of the market's purchase behavior tendencies. " +
			"Describe population-level tendencies, never universal traits. " +
			"Respond with a JSON object: {\"narrative\": string}."
	case driven.RoleCopywriter:
		return "You are an e-commerce copywriter adapting storefront copy to a cultural behavior profile. " +
			"Rewrite the baseline copy per the profile and UX adaptations. " +
			"Every element must include a rationale referencing the dimension that motivated it. " +
			"Respond with a JSON object with keys cta_primary, cta_secondary, value_proposition, " +
			"urgency_text, social_proof_text (each {\"text\": string, \"rationale\": string}) " +
			"and microcopy (array of {\"location\", \"text\", \"rationale\"})."
	default:
		return "Respond with a JSON object."
	}
}

func classifyTransportError(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", domain.ErrGatewayTimeout, err)
	case errors.Is(err, context.Canceled):
		return err
	default:
		return fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, err)
	}
}

func classifyStatus(status int) error {
	switch {
	case status == http.StatusOK:
		return nil
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("%w: status %d", domain.ErrGatewayRateLimited, status)
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		return fmt.Errorf("%w: status %d", domain.ErrGatewayTimeout, status)
	case status >= 500:
		return fmt.Errorf("%w: status %d", domain.ErrGatewayUnavailable, status)
	default:
		return fmt.Errorf("%w: unexpected status %d", domain.ErrGatewayUnavailable, status)
	}
}
