package http

import "github.com/gofiber/fiber/v2"

type Handler interface {
	Handle(ctx *fiber.Ctx) error
}

type HandlerTransport struct {
	NotifyHandler        Handler
	ExecuteHandler       Handler
	BotDefinitionHandler Handler
	GetVersionHandler    Handler
}
