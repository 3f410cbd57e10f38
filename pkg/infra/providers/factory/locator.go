package factory

import (
	"fmt"
	"strings"
	"sync"

	"github.com/NeuralTrust/TrustMod/pkg/infra/providers"
	"github.com/NeuralTrust/TrustMod/pkg/infra/providers/anthropic"
	"github.com/NeuralTrust/TrustMod/pkg/infra/providers/gemini"
	"github.com/NeuralTrust/TrustMod/pkg/infra/providers/openai"
)

const (
	ProviderOpenAI    = "openai"
	ProviderGoogle    = "google"
	ProviderAnthropic = "anthropic"
)

//go:generate mockery --name=ProviderLocator --dir=. --output=./mocks --filename=provider_locator_mock.go --case=underscore --with-expecter

type ProviderLocator interface {
	Get(provider string) (providers.Client, error)
}

type providerLocator struct {
	mu      sync.Mutex
	clients map[string]providers.Client
}

func NewProviderLocator() ProviderLocator {
	return &providerLocator{
		clients: make(map[string]providers.Client),
	}
}

func (f *providerLocator) Get(provider string) (providers.Client, error) {
	name := strings.ToLower(strings.TrimSpace(provider))
	if name == "" {
		name = ProviderOpenAI
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.clients[name]; ok {
		return c, nil
	}

	var c providers.Client
	switch name {
	case ProviderOpenAI:
		c = openai.NewOpenaiClient()
	case ProviderGoogle:
		c = gemini.NewGeminiClient()
	case ProviderAnthropic:
		c = anthropic.NewAnthropicClient()
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
	f.clients[name] = c
	return c, nil
}
