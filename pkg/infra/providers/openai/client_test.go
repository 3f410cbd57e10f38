package openai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/NeuralTrust/TrustMod/pkg/infra/providers"
	"github.com/NeuralTrust/TrustMod/pkg/infra/providers/openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsk_MissingAPIKey(t *testing.T) {
	client := openai.NewOpenaiClient()

	resp, err := client.Ask(context.Background(), &providers.Config{Model: "gpt-4o-mini"}, "test prompt")

	assert.ErrorIs(t, err, providers.ErrMissingAPIKey)
	assert.Nil(t, resp)
}

func TestAsk_MissingModel(t *testing.T) {
	client := openai.NewOpenaiClient()

	resp, err := client.Ask(context.Background(), &providers.Config{
		Credentials: providers.Credentials{ApiKey: "test-api-key"},
	}, "test prompt")

	assert.ErrorIs(t, err, providers.ErrMissingModel)
	assert.Nil(t, resp)
}

func TestAsk_ChatCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-api-key", r.Header.Get("Authorization"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-4o-mini", body["model"])
		assert.Equal(t, float64(0), body["temperature"])
		messages, _ := body["messages"].([]interface{})
		assert.Len(t, messages, 2)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "gpt-4o-mini",
			"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "{\"allowed\": true}"}}],
			"usage": {"prompt_tokens": 12, "completion_tokens": 5, "total_tokens": 17}
		}`))
	}))
	defer server.Close()

	zero := 0.0
	resp, err := openai.NewOpenaiClient().Ask(context.Background(), &providers.Config{
		Credentials:  providers.Credentials{ApiKey: "test-api-key", BaseURL: server.URL + "/"},
		Model:        "gpt-4o-mini",
		Temperature:  &zero,
		SystemPrompt: "you moderate chats",
	}, "Message: hello")

	require.NoError(t, err)
	assert.Equal(t, "chatcmpl-1", resp.ID)
	assert.Equal(t, `{"allowed": true}`, resp.Response)
	assert.Equal(t, 17, resp.Usage.TotalTokens)
}
