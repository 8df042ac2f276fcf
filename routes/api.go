package routes

import (
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/anderskate/async-sms-sending/handlers"
)

// RegisterRoutes registers all routes: the viewer page, the submission
// endpoint, the status websocket and the service surface.
func RegisterRoutes(
	e *echo.Echo,
	healthHandler *handlers.HealthHandler,
	sendHandler *handlers.SendHandler,
	streamHandler *handlers.StreamHandler,
) {
	e.GET("/health", healthHandler.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	e.File("/", "templates/index.html")
	e.POST("/send/", sendHandler.SendSms)
	e.GET("/ws", streamHandler.StatusStream)
}
