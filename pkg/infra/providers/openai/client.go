package openai

import (
	"context"
	"fmt"
	"sync"

	"github.com/NeuralTrust/TrustMod/pkg/infra/providers"
	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"golang.org/x/sync/singleflight"
)

type client struct {
	clientPool *sync.Map
	sf         singleflight.Group
}

func NewOpenaiClient() providers.Client {
	return &client{
		clientPool: &sync.Map{},
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
	if config.Model == "" {
		return nil, providers.ErrMissingModel
	}

	openaiClient := c.getOrCreateClient(config.Credentials)

	var messages []openai.ChatCompletionMessageParamUnion
	if config.SystemPrompt != "" {
		messages = append(messages, openai.SystemMessage(config.SystemPrompt))
	}
	if len(config.Instructions) > 0 {
		messages = append(messages, openai.UserMessage(providers.FormatInstructions(config.Instructions)))
	}
	if prompt != "" {
		messages = append(messages, openai.UserMessage(prompt))
	}

	params := openai.ChatCompletionNewParams{
		Model:    config.Model,
		Messages: messages,
	}
	if config.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(config.MaxTokens))
	}
	if config.Temperature != nil {
		params.Temperature = openai.Float(*config.Temperature)
	}

	resp, err := openaiClient.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("OpenAI request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, providers.ErrNoCompletion
	}

	return &providers.CompletionResponse{
		ID:       resp.ID,
		Model:    resp.Model,
		Response: resp.Choices[0].Message.Content,
		Usage: providers.Usage{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:      int(resp.Usage.TotalTokens),
		},
	}, nil
}

func (c *client) getOrCreateClient(creds providers.Credentials) *openai.Client {
	key := providers.PoolKey(creds)
	if v, ok := c.clientPool.Load(key); ok {
		if cli, ok := v.(*openai.Client); ok {
			return cli
		}
	}
	v, _, _ := c.sf.Do(key, func() (any, error) {
		if v, ok := c.clientPool.Load(key); ok {
			return v, nil
		}
		opts := []option.RequestOption{option.WithAPIKey(creds.ApiKey)}
		if creds.BaseURL != "" {
			opts = append(opts, option.WithBaseURL(creds.BaseURL))
		}
		cli := openai.NewClient(opts...)
		c.clientPool.Store(key, &cli)
		return &cli, nil
	})
	cli, _ := v.(*openai.Client)
	return cli
}
