package platform

import (
	"github.com/NeuralTrust/TrustMod/pkg/domain/scope"
	"github.com/NeuralTrust/TrustMod/pkg/infra/auth/jwt"
	"github.com/NeuralTrust/TrustMod/pkg/infra/httpx"
	"github.com/sirupsen/logrus"
)

//go:generate mockery --name=Factory --dir=. --output=./mocks --filename=factory_mock.go --case=underscore --with-expecter
type Factory interface {
	// ForCommand acts with the permissions granted to the command initiator.
	ForCommand(claims *jwt.CommandClaims) Client
	// ForInstallation acts autonomously with the permissions granted at install time.
	ForInstallation(s scope.Scope, apiGateway string) Client
}

type factory struct {
	logger    *logrus.Logger
	client    httpx.Client
	authToken string
}

func NewFactory(logger *logrus.Logger, client httpx.Client, authToken string) Factory {
	return &factory{
		logger:    logger,
		client:    client,
		authToken: authToken,
	}
}

func (f *factory) ForCommand(claims *jwt.CommandClaims) Client {
	return newHTTPClient(f.logger, f.client, claims.Scope, claims.BotAPIGateway, f.authToken)
}

func (f *factory) ForInstallation(s scope.Scope, apiGateway string) Client {
	return newHTTPClient(f.logger, f.client, s, apiGateway, f.authToken)
}
