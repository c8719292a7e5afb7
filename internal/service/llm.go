package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/redis/go-redis/v9"

	"github.com/annapurna-ai/backend/config"
)

// Failure kinds for inference calls. All of them surface to API clients as a
// single "estimation failed" outcome; the distinction is kept for logs and
// tests.
var (
	// ErrTransport marks network-level failures: endpoint unreachable,
	// connection reset, client timeout.
	ErrTransport = errors.New("inference transport failure")
	// ErrEndpoint marks failures reported by the endpoint itself: non-200
	// status, safety block, empty candidate list.
	ErrEndpoint = errors.New("inference endpoint failure")
	// ErrSchemaValidation marks responses that arrived but do not conform to
	// the declared output schema. Such responses are never partially trusted.
	ErrSchemaValidation = errors.New("inference response schema validation failure")
)

// InlineImage carries image bytes for a multimodal prompt, base64-encoded the
// way the generativelanguage API expects inline_data.
type InlineImage struct {
	MIMEType string
	Data     string
}

// GenerativeClient is the minimal surface the estimation layer needs from the
// inference endpoint. Implementations must be stateless per call.
type GenerativeClient interface {
	// Generate sends a prompt (and optional inline image) to the given model
	// and returns the raw JSON text of the model's response.
	Generate(ctx context.Context, model, prompt string, image *InlineImage) (string, error)
}

// GeminiClient calls the Google Generative Language REST API.
type GeminiClient struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
	redis  *redis.Client
}

// NewGeminiClient creates a client from configuration. The Redis client is
// optional and only used to cache the model catalog.
func NewGeminiClient(cfg *config.Config, redisClient *redis.Client) (*GeminiClient, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY or GEMINI_API_KEY_FILE must be set")
	}

	return &GeminiClient{
		apiKey: cfg.GeminiAPIKey,
		apiURL: strings.TrimRight(cfg.GeminiAPIURL, "/"),
		model:  cfg.GeminiModel,
		client: &http.Client{Timeout: cfg.InferenceTimeout},
		redis:  redisClient,
	}, nil
}

// DefaultModel returns the configured fallback model identifier.
func (c *GeminiClient) DefaultModel() string {
	return c.model
}

type geminiPart struct {
	Text       string        `json:"text,omitempty"`
	InlineData *geminiInline `json:"inline_data,omitempty"`
}

type geminiInline struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiGenerationConfig struct {
	Temperature      float64 `json:"temperature"`
	ResponseMIMEType string  `json:"responseMimeType"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Generate implements GenerativeClient against the generateContent endpoint.
// The response is requested as JSON; the returned string is the raw model
// output, not yet validated against any schema.
func (c *GeminiClient) Generate(ctx context.Context, model, prompt string, image *InlineImage) (string, error) {
	if model == "" {
		model = c.model
	}

	parts := []geminiPart{{Text: prompt}}
	if image != nil {
		parts = append(parts, geminiPart{InlineData: &geminiInline{
			MIMEType: image.MIMEType,
			Data:     image.Data,
		}})
	}

	reqBody := geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: parts}},
		GenerationConfig: geminiGenerationConfig{
			Temperature:      0.7,
			ResponseMIMEType: "application/json",
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		c.apiURL, url.PathEscape(model), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", ErrTransport, err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("[GeminiClient] API request failed with status %d: %s", resp.StatusCode, string(body))
		return "", fmt.Errorf("%w: status %d", ErrEndpoint, resp.StatusCode)
	}

	var result geminiResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("%w: malformed response envelope: %v", ErrEndpoint, err)
	}

	if result.PromptFeedback.BlockReason != "" {
		log.Printf("[GeminiClient] prompt blocked: %s", result.PromptFeedback.BlockReason)
		return "", fmt.Errorf("%w: prompt blocked (%s)", ErrEndpoint, result.PromptFeedback.BlockReason)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: no candidates in response", ErrEndpoint)
	}

	var text strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	return text.String(), nil
}

// ModelInfo describes one selectable inference model.
type ModelInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
}

const (
	modelCatalogCacheKey = "ai:models"
	modelCatalogCacheTTL = time.Hour
)

// ListModels fetches the available model catalog. The result is cached in
// Redis; when the catalog endpoint or the credential is unavailable the
// documented fallback list is returned instead of an error, so a
// misconfigured key degrades the model picker but never the whole UI.
func (c *GeminiClient) ListModels(ctx context.Context) []ModelInfo {
	if c.redis != nil {
		if data, err := c.redis.Get(ctx, modelCatalogCacheKey).Bytes(); err == nil {
			var cached []ModelInfo
			if err := json.Unmarshal(data, &cached); err == nil && len(cached) > 0 {
				return cached
			}
		}
	}

	models, err := c.fetchModels(ctx)
	if err != nil {
		log.Printf("[GeminiClient] model catalog fetch failed, using defaults: %v", err)
		return DefaultModels()
	}

	if c.redis != nil {
		if data, err := json.Marshal(models); err == nil {
			if err := c.redis.Set(ctx, modelCatalogCacheKey, data, modelCatalogCacheTTL).Err(); err != nil {
				log.Printf("[GeminiClient] failed to cache model catalog: %v", err)
			}
		}
	}

	return models
}

func (c *GeminiClient) fetchModels(ctx context.Context) ([]ModelInfo, error) {
	var listing struct {
		Models []struct {
			Name                       string   `json:"name"`
			DisplayName                string   `json:"displayName"`
			Description                string   `json:"description"`
			SupportedGenerationMethods []string `json:"supportedGenerationMethods"`
		} `json:"models"`
	}

	endpoint := fmt.Sprintf("%s/models?key=%s", c.apiURL, url.QueryEscape(c.apiKey))

	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
			if err != nil {
				return err
			}
			resp, err := c.client.Do(req)
			if err != nil {
				return err
			}
			defer func() { _ = resp.Body.Close() }()

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("model listing failed with status %d", resp.StatusCode)
			}
			return json.NewDecoder(resp.Body).Decode(&listing)
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
	)
	if err != nil {
		return nil, err
	}

	var models []ModelInfo
	for _, m := range listing.Models {
		supported := false
		for _, method := range m.SupportedGenerationMethods {
			if method == "generateContent" {
				supported = true
				break
			}
		}
		if !supported {
			continue
		}
		models = append(models, ModelInfo{
			Name:        strings.TrimPrefix(m.Name, "models/"),
			DisplayName: m.DisplayName,
			Description: m.Description,
		})
	}

	if len(models) == 0 {
		return nil, fmt.Errorf("no usable models in catalog")
	}
	return models, nil
}

// DefaultModels is the fallback catalog used when the listing endpoint cannot
// be reached or the credential is missing.
func DefaultModels() []ModelInfo {
	return []ModelInfo{
		{Name: "gemini-2.5-flash", DisplayName: "Gemini 2.5 Flash (Recommended)", Description: "Balanced speed and accuracy"},
		{Name: "gemini-2.5-flash-lite", DisplayName: "Gemini 2.5 Flash-Lite", Description: "Lighter, faster variant for high-volume use"},
		{Name: "gemini-2.5-pro", DisplayName: "Gemini 2.5 Pro", Description: "Most capable, slower"},
		{Name: "gemini-2.0-flash", DisplayName: "Gemini 2.0 Flash", Description: "Fast multimodal model"},
		{Name: "gemini-flash-latest", DisplayName: "Gemini Flash (Auto-Latest)", Description: "Tracks the latest Flash release"},
	}
}

// disabledClient stands in when no API key is configured. Every call fails
// as an endpoint error so handlers return the uniform failure envelope
// instead of panicking on a nil client.
type disabledClient struct{}

// NewDisabledClient returns a GenerativeClient whose calls always fail.
func NewDisabledClient() GenerativeClient {
	return disabledClient{}
}

func (disabledClient) Generate(ctx context.Context, model, prompt string, image *InlineImage) (string, error) {
	return "", fmt.Errorf("%w: no API key configured", ErrEndpoint)
}
