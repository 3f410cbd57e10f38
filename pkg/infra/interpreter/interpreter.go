package interpreter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/NeuralTrust/TrustMod/pkg/infra/providers"
	"github.com/NeuralTrust/TrustMod/pkg/infra/providers/factory"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fastjson"
)

var (
	ErrMalformedResponse = errors.New("malformed interpreter response")
	ErrNoRules           = errors.New("no rules to interpret")
)

type Config struct {
	Provider    string
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
}

type Request struct {
	Rules    []string
	Text     string
	HasText  bool
	Hint     string
	InThread bool
}

type Verdict struct {
	Allowed bool
	Reason  string
}

//go:generate mockery --name=Interpreter --dir=. --output=./mocks --filename=interpreter_mock.go --case=underscore --with-expecter
type Interpreter interface {
	Interpret(ctx context.Context, req Request) (Verdict, error)
}

type llmInterpreter struct {
	logger  *logrus.Logger
	locator factory.ProviderLocator
	cfg     Config
}

func NewInterpreter(logger *logrus.Logger, locator factory.ProviderLocator, cfg Config) Interpreter {
	return &llmInterpreter{
		logger:  logger,
		locator: locator,
		cfg:     cfg,
	}
}

// Interpret asks the configured LLM whether the message is allowed under the
// given rules. A response that cannot be read as a verdict yields an allowed
// verdict together with ErrMalformedResponse.
func (i *llmInterpreter) Interpret(ctx context.Context, req Request) (Verdict, error) {
	if len(req.Rules) == 0 {
		return Verdict{Allowed: true}, ErrNoRules
	}

	client, err := i.locator.Get(i.cfg.Provider)
	if err != nil {
		return Verdict{Allowed: true}, fmt.Errorf("failed to get llm provider: %w", err)
	}

	temperature := i.cfg.Temperature
	start := time.Now()
	resp, err := client.Ask(ctx, &providers.Config{
		Credentials: providers.Credentials{
			ApiKey:  i.cfg.APIKey,
			BaseURL: i.cfg.BaseURL,
		},
		Model:        i.cfg.Model,
		MaxTokens:    i.cfg.MaxTokens,
		Temperature:  &temperature,
		SystemPrompt: SystemPrompt,
	}, UserMessage(req))
	if err != nil {
		return Verdict{Allowed: true}, fmt.Errorf("failed to call llm provider: %w", err)
	}
	if resp == nil {
		return Verdict{Allowed: true}, fmt.Errorf("%w: empty response", ErrMalformedResponse)
	}
	i.logger.WithFields(logrus.Fields{
		"provider": i.cfg.Provider,
		"model":    resp.Model,
		"tokens":   resp.Usage.TotalTokens,
		"duration": time.Since(start).Seconds(),
	}).Debug("rule interpretation completed")

	return ParseVerdict(resp.Response)
}

// ParseVerdict reads {"allowed": bool, "reason": string}, optionally wrapped
// in a markdown code fence.
func ParseVerdict(raw string) (Verdict, error) {
	var p fastjson.Parser
	v, err := p.Parse(providers.StripCodeFence(raw))
	if err != nil {
		return Verdict{Allowed: true}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	allowed := v.Get("allowed")
	if allowed == nil {
		return Verdict{Allowed: true}, fmt.Errorf("%w: missing allowed", ErrMalformedResponse)
	}
	ok, err := allowed.Bool()
	if err != nil {
		return Verdict{Allowed: true}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return Verdict{
		Allowed: ok,
		Reason:  string(v.GetStringBytes("reason")),
	}, nil
}
