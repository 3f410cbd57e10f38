package server

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/NeuralTrust/TrustMod/pkg/config"
	handlers "github.com/NeuralTrust/TrustMod/pkg/handlers/http"
	"github.com/NeuralTrust/TrustMod/pkg/middleware"
	"github.com/NeuralTrust/TrustMod/pkg/server/router"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticHandler int

func (h staticHandler) Handle(c *fiber.Ctx) error {
	return c.SendStatus(int(h))
}

func newTestServer(t *testing.T) *BotServer {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	transport := &handlers.HandlerTransport{
		NotifyHandler:        staticHandler(fiber.StatusOK),
		ExecuteHandler:       staticHandler(fiber.StatusAccepted),
		BotDefinitionHandler: handlers.NewBotDefinitionHandler(),
		GetVersionHandler:    handlers.NewGetVersionHandler(logger),
	}
	return NewBotServer(BotServerDI{
		Config: &config.Config{},
		Logger: logger,
		Routers: []router.ServerRouter{
			router.NewBotRouter(middleware.NewTransport(middleware.NewRequestLoggerMiddleware(logger)), transport),
		},
	})
}

func TestBotServer_Routes(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		method string
		path   string
		status int
	}{
		{method: "GET", path: "/health", status: fiber.StatusOK},
		{method: "GET", path: "/version", status: fiber.StatusOK},
		{method: "GET", path: "/bot_definition", status: fiber.StatusOK},
		{method: "POST", path: "/notify", status: fiber.StatusOK},
		{method: "POST", path: "/execute", status: fiber.StatusAccepted},
		{method: "GET", path: "/metrics", status: fiber.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			resp, err := s.Router.Test(httptest.NewRequest(tt.method, tt.path, nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestMetricsApp(t *testing.T) {
	resp, err := newMetricsApp().Test(httptest.NewRequest("GET", "/metrics", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestBotRouter_RequiresTransport(t *testing.T) {
	err := router.NewBotRouter(nil, nil).BuildRoutes(fiber.New())
	assert.ErrorIs(t, err, router.ErrInvalidHandlerTransport)
}
