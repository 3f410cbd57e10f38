package http

import (
	"errors"

	"github.com/NeuralTrust/TrustMod/pkg/app/command"
	"github.com/NeuralTrust/TrustMod/pkg/infra/auth/jwt"
	"github.com/NeuralTrust/TrustMod/pkg/infra/platform"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const CommandTokenHeader = "x-oc-jwt"

type executeHandler struct {
	logger     *logrus.Logger
	verifier   jwt.Verifier
	factory    platform.Factory
	dispatcher command.Dispatcher
}

func NewExecuteHandler(
	logger *logrus.Logger,
	verifier jwt.Verifier,
	factory platform.Factory,
	dispatcher command.Dispatcher,
) Handler {
	return &executeHandler{
		logger:     logger,
		verifier:   verifier,
		factory:    factory,
		dispatcher: dispatcher,
	}
}

func (h *executeHandler) Handle(c *fiber.Ctx) error {
	token := c.Get(CommandTokenHeader)
	if token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing x-oc-jwt header"})
	}

	claims, err := h.verifier.VerifyCommand(token)
	if err != nil {
		h.logger.WithError(err).Warn("rejected command token")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid command token"})
	}

	resp, err := h.dispatcher.Execute(c.Context(), h.factory.ForCommand(claims), claims)
	if err != nil {
		if errors.Is(err, command.ErrCommandNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to execute command"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": resp})
}
