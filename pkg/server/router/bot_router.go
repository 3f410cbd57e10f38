package router

import (
	handlers "github.com/NeuralTrust/TrustMod/pkg/handlers/http"
	"github.com/NeuralTrust/TrustMod/pkg/middleware"
	"github.com/gofiber/fiber/v2"
)

type botRouter struct {
	middlewareTransport *middleware.Transport
	handlerTransport    *handlers.HandlerTransport
}

func NewBotRouter(
	middlewareTransport *middleware.Transport,
	handlerTransport *handlers.HandlerTransport,
) ServerRouter {
	return &botRouter{
		middlewareTransport: middlewareTransport,
		handlerTransport:    handlerTransport,
	}
}

func (r *botRouter) BuildRoutes(router *fiber.App) error {
	if r.handlerTransport == nil {
		return ErrInvalidHandlerTransport
	}
	if r.middlewareTransport != nil {
		if mws := r.middlewareTransport.GetMiddlewares(); len(mws) > 0 {
			router.Use(mws...)
		}
	}

	router.Get("/version", r.handlerTransport.GetVersionHandler.Handle)
	router.Get("/bot_definition", r.handlerTransport.BotDefinitionHandler.Handle)
	router.Post("/notify", r.handlerTransport.NotifyHandler.Handle)
	router.Post("/execute", r.handlerTransport.ExecuteHandler.Handle)
	return nil
}
