package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/NeuralTrust/TrustMod/pkg/infra/httpx"
	"github.com/sirupsen/logrus"
)

const (
	OpenAIModerationURL = "https://api.openai.com/v1/moderations"
	DefaultModel        = "omni-moderation-latest"
	maxErrorBody        = 512
)

type Config struct {
	APIKey   string
	Model    string
	Endpoint string
	Timeout  time.Duration
}

type moderationRequest struct {
	Input []moderationInput `json:"input"`
	Model string            `json:"model,omitempty"`
}

type moderationInput struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type moderationResponse struct {
	ID      string             `json:"id"`
	Model   string             `json:"model"`
	Results []moderationResult `json:"results"`
}

type moderationResult struct {
	Flagged        bool               `json:"flagged"`
	CategoryScores map[string]float64 `json:"category_scores"`
}

type openAIModerationClient struct {
	client  httpx.Client
	breaker httpx.CircuitBreaker
	logger  *logrus.Logger
	cfg     Config
}

func NewOpenAIModerationClient(
	logger *logrus.Logger,
	client httpx.Client,
	breaker httpx.CircuitBreaker,
	cfg Config,
) Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = OpenAIModerationURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	return &openAIModerationClient{
		client:  client,
		breaker: breaker,
		logger:  logger,
		cfg:     cfg,
	}
}

func (c *openAIModerationClient) ScoreCategories(ctx context.Context, input Input) (Scores, error) {
	inputs := make([]moderationInput, 0, 2)
	if strings.TrimSpace(input.Text) != "" {
		inputs = append(inputs, moderationInput{Type: "text", Text: input.Text})
	}
	if input.ImageURL != "" {
		inputs = append(inputs, moderationInput{Type: "image_url", ImageURL: &imageURL{URL: input.ImageURL}})
	}
	if len(inputs) == 0 {
		return Scores{}, nil
	}

	body, err := json.Marshal(moderationRequest{Input: inputs, Model: c.cfg.Model})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode request: %v", ErrClassificationFailed, err)
	}

	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	var parsed moderationResponse
	err = c.breaker.Execute(func() error {
		var callErr error
		parsed, callErr = c.call(ctx, body)
		return callErr
	})
	if err != nil {
		c.logger.WithError(err).Warn("openai moderation request failed")
		return nil, fmt.Errorf("%w: %v", ErrClassificationFailed, err)
	}

	if len(parsed.Results) == 0 {
		return nil, fmt.Errorf("%w: no moderation results returned", ErrClassificationFailed)
	}

	scores := make(Scores)
	for _, result := range parsed.Results {
		for category, score := range result.CategoryScores {
			if current, ok := scores[category]; !ok || score > current {
				scores[category] = score
			}
		}
	}
	return scores, nil
}

func (c *openAIModerationClient) call(ctx context.Context, body []byte) (moderationResponse, error) {
	var parsed moderationResponse

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return parsed, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return parsed, fmt.Errorf("failed to call moderation endpoint: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return parsed, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if len(respBody) > maxErrorBody {
			respBody = respBody[:maxErrorBody]
		}
		return parsed, fmt.Errorf("moderation endpoint returned status %d: %s", resp.StatusCode, string(respBody))
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return parsed, fmt.Errorf("failed to decode moderation response: %w", err)
	}
	return parsed, nil
}
