package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/NeuralTrust/TrustMod/pkg/domain/message"
	"github.com/NeuralTrust/TrustMod/pkg/domain/scope"
	"github.com/NeuralTrust/TrustMod/pkg/infra/httpx"
	"github.com/sirupsen/logrus"
)

const maxErrorBody = 512

type envelope struct {
	Scope scope.Scope `json:"scope"`
	Args  interface{} `json:"args,omitempty"`
}

type statusResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message,omitempty"`
}

type eventsResponse struct {
	Kind   string                  `json:"kind"`
	Events []message.TimelineEvent `json:"events"`
}

type httpClient struct {
	logger     *logrus.Logger
	client     httpx.Client
	scope      scope.Scope
	apiGateway string
	authToken  string
}

func newHTTPClient(logger *logrus.Logger, client httpx.Client, s scope.Scope, apiGateway, authToken string) Client {
	return &httpClient{
		logger:     logger,
		client:     client,
		scope:      s,
		apiGateway: strings.TrimRight(apiGateway, "/"),
		authToken:  authToken,
	}
}

func (c *httpClient) Scope() scope.Scope {
	return c.scope
}

func (c *httpClient) ChatSummary(ctx context.Context) (*ChatSummary, error) {
	var out ChatSummary
	if err := c.post(ctx, "chat_summary", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) CommunitySummary(ctx context.Context, community scope.Scope) (*CommunitySummary, error) {
	var out CommunitySummary
	args := map[string]string{"community_id": community.CommunityID}
	if err := c.post(ctx, "community_summary", args, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) ChatEvents(ctx context.Context, window EventsWindow, thread *int64) ([]message.TimelineEvent, error) {
	args := struct {
		EventsWindow
		Thread *int64 `json:"thread,omitempty"`
	}{window, thread}
	var out eventsResponse
	if err := c.post(ctx, "chat_events", args, &out); err != nil {
		return nil, err
	}
	return out.Events, nil
}

func (c *httpClient) SendMessage(ctx context.Context, msg OutgoingMessage) error {
	return c.expectSuccess(ctx, "send_message", msg)
}

func (c *httpClient) AddReaction(ctx context.Context, messageID, reaction string, thread *int64) error {
	return c.expectSuccess(ctx, "add_reaction", map[string]interface{}{
		"message_id": messageID,
		"reaction":   reaction,
		"thread":     thread,
	})
}

func (c *httpClient) DeleteMessages(ctx context.Context, messageIDs []string, thread *int64) error {
	return c.expectSuccess(ctx, "delete_messages", map[string]interface{}{
		"message_ids": messageIDs,
		"thread":      thread,
	})
}

func (c *httpClient) expectSuccess(ctx context.Context, op string, args interface{}) error {
	var out statusResponse
	if err := c.post(ctx, op, args, &out); err != nil {
		return err
	}
	if out.Kind != "" && out.Kind != "success" {
		return fmt.Errorf("%w: %s returned %s: %s", ErrPlatform, op, out.Kind, out.Message)
	}
	return nil
}

func (c *httpClient) post(ctx context.Context, op string, args interface{}, out interface{}) error {
	body, err := json.Marshal(envelope{Scope: c.scope, Args: args})
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", op, err)
	}

	url := fmt.Sprintf("%s/bot/%s", c.apiGateway, op)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Encoding", "br, gzip, zstd, deflate")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPlatform, op, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", op, err)
	}
	respBody, err = httpx.DecodeBody(resp.Header.Get("Content-Encoding"), respBody)
	if err != nil {
		return fmt.Errorf("failed to decode %s response: %w", op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if len(respBody) > maxErrorBody {
			respBody = respBody[:maxErrorBody]
		}
		c.logger.WithFields(logrus.Fields{
			"operation": op,
			"status":    resp.StatusCode,
			"scope":     c.scope.String(),
		}).Warn("platform request rejected")
		return fmt.Errorf("%w: %s returned status %d: %s", ErrPlatform, op, resp.StatusCode, string(respBody))
	}
	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", op, err)
	}
	return nil
}
