package http

import (
	"strings"

	"github.com/NeuralTrust/TrustMod/pkg/app/notify"
	"github.com/NeuralTrust/TrustMod/pkg/infra/auth/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type notifyHandler struct {
	logger   *logrus.Logger
	verifier jwt.Verifier
	handler  notify.Handler
}

func NewNotifyHandler(logger *logrus.Logger, verifier jwt.Verifier, handler notify.Handler) Handler {
	return &notifyHandler{
		logger:   logger,
		verifier: verifier,
		handler:  handler,
	}
}

// Handle receives the signed notification token as the raw request body.
func (h *notifyHandler) Handle(c *fiber.Ctx) error {
	token := strings.TrimSpace(string(c.Body()))
	claims, err := h.verifier.VerifyNotification(token)
	if err != nil {
		h.logger.WithError(err).Warn("failed to parse bot event")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to parse bot event",
			"error":   err.Error(),
		})
	}

	if err := h.handler.Handle(c.Context(), claims); err != nil {
		h.logger.WithError(err).WithField("kind", claims.Kind).Error("failed to handle bot event")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to handle bot event",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "all good"})
}
