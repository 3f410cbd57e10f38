package http

import (
	"github.com/NeuralTrust/TrustMod/pkg/app/command"
	"github.com/gofiber/fiber/v2"
)

type botDefinitionHandler struct {
	definition command.BotDefinition
}

func NewBotDefinitionHandler() Handler {
	return &botDefinitionHandler{definition: command.Schema()}
}

func (h *botDefinitionHandler) Handle(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.definition)
}
