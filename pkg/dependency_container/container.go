package dependency_container

import (
	"fmt"

	"github.com/NeuralTrust/TrustMod/pkg/app/command"
	"github.com/NeuralTrust/TrustMod/pkg/app/moderation"
	"github.com/NeuralTrust/TrustMod/pkg/app/notify"
	"github.com/NeuralTrust/TrustMod/pkg/app/policy"
	"github.com/NeuralTrust/TrustMod/pkg/app/report"
	"github.com/NeuralTrust/TrustMod/pkg/config"
	handlers "github.com/NeuralTrust/TrustMod/pkg/handlers/http"
	"github.com/NeuralTrust/TrustMod/pkg/infra/auth/jwt"
	"github.com/NeuralTrust/TrustMod/pkg/infra/cache"
	"github.com/NeuralTrust/TrustMod/pkg/infra/classifier"
	"github.com/NeuralTrust/TrustMod/pkg/infra/database"
	"github.com/NeuralTrust/TrustMod/pkg/infra/exporter"
	"github.com/NeuralTrust/TrustMod/pkg/infra/exporter/kafka"
	"github.com/NeuralTrust/TrustMod/pkg/infra/httpx"
	"github.com/NeuralTrust/TrustMod/pkg/infra/interpreter"
	"github.com/NeuralTrust/TrustMod/pkg/infra/platform"
	providersFactory "github.com/NeuralTrust/TrustMod/pkg/infra/providers/factory"
	"github.com/NeuralTrust/TrustMod/pkg/infra/repository"
	"github.com/NeuralTrust/TrustMod/pkg/middleware"
	"github.com/NeuralTrust/TrustMod/pkg/version"
	"github.com/sirupsen/logrus"
)

type Container struct {
	Cache               cache.Client
	Exporter            exporter.Exporter
	Moderator           moderation.Moderator
	Dispatcher          command.Dispatcher
	NotifyHandler       notify.Handler
	HandlerTransport    *handlers.HandlerTransport
	MiddlewareTransport *middleware.Transport
}

func NewContainer(cfg *config.Config, logger *logrus.Logger, db *database.DB) (*Container, error) {
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	cacheClient, err := cache.NewClient(cache.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		TLS:      cfg.Redis.TLS,
	}, logger)
	if err != nil {
		return nil, err
	}

	verifier, err := jwt.NewVerifier(cfg.Bot.PublicKey)
	if err != nil {
		return nil, err
	}

	decisionExporter, err := newExporter(cfg.Kafka, logger)
	if err != nil {
		return nil, err
	}

	// repositories
	policyRepository := repository.NewPolicyRepository(db.DB)
	moderationRepository := repository.NewModerationEventRepository(db.DB)
	reportRepository := repository.NewReportRepository(db.DB)
	installationRepository := repository.NewInstallationRepository(db.DB)

	// outbound clients
	userAgent := fmt.Sprintf("%s/%s", version.AppName, version.Version)
	classifierHTTP := httpx.NewFastHTTPClient(httpx.WithTimeout(cfg.Classifier.Timeout), httpx.WithUserAgent(userAgent))
	platformHTTP := httpx.NewFastHTTPClient(httpx.WithTimeout(cfg.Bot.RequestTimeout), httpx.WithUserAgent(userAgent))

	categoryClassifier := classifier.NewOpenAIModerationClient(
		logger,
		classifierHTTP,
		httpx.NewCircuitBreaker(logger, "openai-moderation", cfg.Classifier.BreakerTimeout, cfg.Classifier.MaxFailures),
		classifier.Config{
			APIKey:   cfg.Classifier.APIKey,
			Model:    cfg.Classifier.Model,
			Endpoint: cfg.Classifier.Endpoint,
			Timeout:  cfg.Classifier.Timeout,
		},
	)
	ruleInterpreter := interpreter.NewInterpreter(logger, providersFactory.NewProviderLocator(), interpreter.Config{
		Provider:    cfg.Interpreter.Provider,
		APIKey:      cfg.Interpreter.APIKey,
		BaseURL:     cfg.Interpreter.BaseURL,
		Model:       cfg.Interpreter.Model,
		Temperature: cfg.Interpreter.Temperature,
		MaxTokens:   cfg.Interpreter.MaxTokens,
	})
	platformFactory := platform.NewFactory(logger, platformHTTP, cfg.Bot.AuthToken)

	// services
	policyService := policy.NewService(logger, policyRepository, cacheClient, cfg.Redis.PolicyTTL)
	engine := moderation.NewEngine(logger, categoryClassifier, ruleInterpreter, moderation.EngineConfig{
		BotID:            cfg.Bot.ID,
		ImageURLTemplate: cfg.Bot.ImageURLTemplate,
	})
	moderator := moderation.NewModerator(
		logger,
		policyService,
		moderationRepository,
		engine,
		moderation.NewExecutor(logger),
		decisionExporter,
	)
	reporter := report.NewReporter(logger, installationRepository, reportRepository, platformFactory, moderator)
	dispatcher := command.NewDispatcher(logger, policyService, moderationRepository, reporter)
	notifyHandler := notify.NewHandler(logger, installationRepository, policyService, platformFactory, moderator, cfg.Bot.ID)

	handlerTransport := &handlers.HandlerTransport{
		NotifyHandler:        handlers.NewNotifyHandler(logger, verifier, notifyHandler),
		ExecuteHandler:       handlers.NewExecuteHandler(logger, verifier, platformFactory, dispatcher),
		BotDefinitionHandler: handlers.NewBotDefinitionHandler(),
		GetVersionHandler:    handlers.NewGetVersionHandler(logger),
	}
	middlewareTransport := middleware.NewTransport(
		middleware.NewPanicRecoverMiddleware(logger),
		middleware.NewRequestLoggerMiddleware(logger),
	)

	return &Container{
		Cache:               cacheClient,
		Exporter:            decisionExporter,
		Moderator:           moderator,
		Dispatcher:          dispatcher,
		NotifyHandler:       notifyHandler,
		HandlerTransport:    handlerTransport,
		MiddlewareTransport: middlewareTransport,
	}, nil
}

func newExporter(cfg config.KafkaConfig, logger *logrus.Logger) (exporter.Exporter, error) {
	if !cfg.Enabled {
		logger.Info("decision export disabled")
		return exporter.NewNoop(), nil
	}
	kafkaExporter, err := kafka.NewExporter(kafka.Config{
		Host:  cfg.Host,
		Port:  cfg.Port,
		Topic: cfg.Topic,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka exporter: %w", err)
	}
	logger.WithField("topic", cfg.Topic).Info("exporting moderation decisions to kafka")
	return kafkaExporter, nil
}

// Close releases the connections the container opened.
func (c *Container) Close() error {
	c.Exporter.Close()
	return c.Cache.Close()
}
