package gemini

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/NeuralTrust/TrustMod/pkg/infra/providers"
	"google.golang.org/genai"
)

const defaultModel = "gemini-2.0-flash"

type client struct {
	mu      sync.Mutex
	clients map[string]*genai.Client
}

func NewGeminiClient() providers.Client {
	return &client{
		clients: make(map[string]*genai.Client),
	}
}

func (c *client) Ask(
	ctx context.Context,
	config *providers.Config,
	prompt string,
) (*providers.CompletionResponse, error) {
	if config.Credentials.ApiKey == "" {
		return nil, providers.ErrMissingAPIKey
	}

	genaiClient, err := c.getOrCreateClient(ctx, config.Credentials)
	if err != nil {
		return nil, err
	}

	model := config.Model
	if model == "" {
		model = defaultModel
	}

	var parts []*genai.Part
	if config.SystemPrompt != "" {
		parts = append(parts, &genai.Part{
			Text: config.SystemPrompt,
		})
	}
	if len(config.Instructions) > 0 {
		parts = append(parts, &genai.Part{
			Text: providers.FormatInstructions(config.Instructions),
		})
	}

	genConfig := &genai.GenerateContentConfig{}
	if len(parts) > 0 {
		genConfig.SystemInstruction = &genai.Content{
			Parts: parts,
			Role:  "system",
		}
	}
	if config.Temperature != nil {
		t := float32(*config.Temperature)
		genConfig.Temperature = &t
	}
	if config.MaxTokens > 0 {
		genConfig.MaxOutputTokens = int32(config.MaxTokens)
	}

	result, err := genaiClient.Models.GenerateContent(ctx, model, genai.Text(prompt), genConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	responseText := providers.StripCodeFence(result.Text())
	if responseText == "" {
		return nil, providers.ErrNoCompletion
	}

	resp := &providers.CompletionResponse{
		ID:       fmt.Sprintf("gemini-%d", time.Now().UnixNano()),
		Model:    model,
		Response: responseText,
	}
	if result.UsageMetadata != nil {
		resp.Usage = providers.Usage{
			PromptTokens:     int(result.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(result.UsageMetadata.TotalTokenCount),
		}
	}
	return resp, nil
}

func (c *client) getOrCreateClient(ctx context.Context, creds providers.Credentials) (*genai.Client, error) {
	key := providers.PoolKey(creds)

	c.mu.Lock()
	defer c.mu.Unlock()
	if cli, ok := c.clients[key]; ok {
		return cli, nil
	}

	cfg := &genai.ClientConfig{
		APIKey:  creds.ApiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if creds.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: creds.BaseURL}
	}
	cli, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	c.clients[key] = cli
	return cli, nil
}
