package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/NeuralTrust/TrustMod/pkg/app/moderation"
	"github.com/NeuralTrust/TrustMod/pkg/app/policy"
	domainErrors "github.com/NeuralTrust/TrustMod/pkg/domain/errors"
	"github.com/NeuralTrust/TrustMod/pkg/domain/installation"
	domainModeration "github.com/NeuralTrust/TrustMod/pkg/domain/moderation"
	"github.com/NeuralTrust/TrustMod/pkg/infra/auth/jwt"
	"github.com/NeuralTrust/TrustMod/pkg/infra/platform"
	"github.com/sirupsen/logrus"
)

var ErrMissingLocation = errors.New("notification has no location")

//go:generate mockery --name=Handler --dir=. --output=./mocks --filename=handler_mock.go --case=underscore --with-expecter
type Handler interface {
	Handle(ctx context.Context, claims *jwt.NotificationClaims) error
}

type handler struct {
	logger        *logrus.Logger
	installations installation.Repository
	policies      policy.Service
	factory       platform.Factory
	moderator     moderation.Moderator
	botID         string
}

func NewHandler(
	logger *logrus.Logger,
	installations installation.Repository,
	policies policy.Service,
	factory platform.Factory,
	moderator moderation.Moderator,
	botID string,
) Handler {
	return &handler{
		logger:        logger,
		installations: installations,
		policies:      policies,
		factory:       factory,
		moderator:     moderator,
		botID:         botID,
	}
}

func (h *handler) Handle(ctx context.Context, claims *jwt.NotificationClaims) error {
	switch claims.Kind {
	case jwt.NotificationBotInstalled:
		return h.installed(ctx, claims)
	case jwt.NotificationBotUninstalled:
		return h.uninstalled(ctx, claims)
	case jwt.NotificationBotChatEvent:
		return h.chatEvent(ctx, claims)
	default:
		h.logger.WithField("kind", claims.Kind).Debug("ignoring notification")
		return nil
	}
}

func (h *handler) installed(ctx context.Context, claims *jwt.NotificationClaims) error {
	if claims.Location == nil {
		return ErrMissingLocation
	}
	location := claims.Location.Location().Key()
	inst, err := installation.New(
		location,
		claims.APIGateway,
		claims.GrantedCommandPermissions,
		claims.GrantedAutonomousPermissions,
	)
	if err != nil {
		return fmt.Errorf("invalid installation: %w", err)
	}
	if err := h.installations.Save(ctx, inst); err != nil {
		return fmt.Errorf("failed to save installation: %w", err)
	}
	h.logger.WithFields(logrus.Fields{
		"location":    claims.Location.String(),
		"api_gateway": claims.APIGateway,
	}).Info("bot installed")
	return nil
}

func (h *handler) uninstalled(ctx context.Context, claims *jwt.NotificationClaims) error {
	if claims.Location == nil {
		return ErrMissingLocation
	}
	location := claims.Location.Location().Key()
	log := h.logger.WithField("location", claims.Location.String())

	// Redelivered uninstalls find nothing to delete.
	if err := h.installations.Delete(ctx, location); err != nil {
		if !domainErrors.IsNotFoundError(err) {
			return fmt.Errorf("failed to delete installation: %w", err)
		}
		log.Debug("installation already removed")
	}
	if err := h.policies.InvalidateLocation(ctx, location); err != nil {
		return err
	}
	log.Info("bot uninstalled")
	return nil
}

func (h *handler) chatEvent(ctx context.Context, claims *jwt.NotificationClaims) error {
	if claims.Chat == nil || claims.Event == nil {
		return nil
	}
	ev, ok := claims.Event.MessageEvent()
	if !ok {
		return nil
	}
	if h.botID != "" && claims.InitiatedBy == h.botID {
		return nil
	}
	log := h.logger.WithFields(logrus.Fields{
		"scope":      claims.Chat.String(),
		"message_id": ev.Message.ID,
	})

	gateway := claims.APIGateway
	if gateway == "" {
		inst, err := h.installations.Get(ctx, claims.Chat.Location().Key())
		if err != nil {
			return fmt.Errorf("failed to load installation: %w", err)
		}
		gateway = inst.APIGateway
	}

	client := h.factory.ForInstallation(*claims.Chat, gateway)
	status, err := h.moderator.Moderate(ctx, moderation.Request{
		Client: client,
		Event:  ev,
		Thread: claims.Thread,
		Source: domainModeration.SourceAutomated,
	})
	if err != nil {
		return err
	}
	log.WithField("status", status).Debug("chat event handled")
	return nil
}
