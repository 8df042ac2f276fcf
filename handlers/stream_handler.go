package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/anderskate/async-sms-sending/internal/domain"
	"github.com/anderskate/async-sms-sending/internal/publisher"
	"github.com/anderskate/async-sms-sending/pkg/logger"
)

// StreamHandler upgrades viewer connections and hands each one to its own
// publisher loop.
type StreamHandler struct {
	publisher *publisher.Publisher
	upgrader  websocket.Upgrader
}

func NewStreamHandler(pub *publisher.Publisher) *StreamHandler {
	return &StreamHandler{
		publisher: pub,
		upgrader: websocket.Upgrader{
			// The viewer page is served from this same origin.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// StatusStream godoc
// @Summary Mailing status stream
// @Description Websocket endpoint; pushes a full status snapshot every publish interval until the viewer disconnects
// @Tags mailings
// @Router /ws [get]
func (h *StreamHandler) StatusStream(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return fmt.Errorf("failed to upgrade connection: %w", err)
	}
	defer conn.Close()

	if err := h.publisher.Run(c.Request().Context(), &wsSubscriber{conn: conn}); err != nil {
		// A write error means the peer went away; that ends only this loop.
		logger.Warnf("Status stream closed: %v", err)
	}

	return nil
}

// wsSubscriber adapts one websocket connection to the publisher's
// Subscriber contract.
type wsSubscriber struct {
	conn *websocket.Conn
}

func (s *wsSubscriber) SendSnapshot(_ context.Context, snapshot domain.StatusSnapshot) error {
	return s.conn.WriteJSON(snapshot)
}
