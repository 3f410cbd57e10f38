package server

import (
	"errors"
	"fmt"

	"github.com/NeuralTrust/TrustMod/pkg/config"
	"github.com/NeuralTrust/TrustMod/pkg/server/router"
	"github.com/sirupsen/logrus"
)

type (
	BotServerDI struct {
		Config  *config.Config
		Logger  *logrus.Logger
		Routers []router.ServerRouter
	}
	BotServer struct {
		*BaseServer
	}
)

func NewBotServer(di BotServerDI) *BotServer {
	s := &BotServer{BaseServer: NewBaseServer(di.Config, di.Logger)}
	s.setupHealthCheck()
	s.WithRouters(di.Routers...)
	return s
}

func (s *BotServer) Run() error {
	s.setupMetricsEndpoint()
	addr := fmt.Sprintf("%s:%d", s.Config.Server.Host, s.Config.Server.Port)
	s.Logger.WithField("addr", addr).Info("starting bot server")
	return s.Router.Listen(addr)
}

func (s *BotServer) Shutdown() error {
	return errors.Join(s.Router.Shutdown(), s.shutdownMetrics())
}
