package http

import (
	"context"

	"talkpro/internal/domain"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// UpgradeWebSocket func - Middleware refusing plain HTTP requests on socket routes
func (hdl *HTTPHandler) UpgradeWebSocket(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return c.Status(fiber.StatusUpgradeRequired).JSON(ResponseBody{Status: BadRequest})
	}
	return c.Next()
}

// InterviewSocket func - Streams an interview over a WebSocket connection.
// The session id comes from the :id route parameter and the caller from RequireUser.
func (hdl *HTTPHandler) InterviewSocket() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		sessionID := conn.Params("id")
		user, _ := conn.Locals(localsUserID).(string)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		emit := func(frame domain.ServerFrame) error {
			return conn.WriteJSON(frame)
		}

		if !hdl.channel.Open(ctx, sessionID, user, emit) {
			return
		}
		logrus.Infof("WebSocket opened for session %s", sessionID)

		for {
			var frame domain.ClientFrame
			if err := conn.ReadJSON(&frame); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					logrus.Warnf("WebSocket read for session %s failed: %v", sessionID, err)
				}
				return
			}

			closed, err := hdl.channel.Handle(ctx, sessionID, user, frame, emit)
			if err != nil {
				logrus.Warnf("WebSocket write for session %s failed: %v", sessionID, err)
				return
			}
			if closed {
				logrus.Infof("WebSocket closed for session %s", sessionID)
				return
			}
		}
	})
}
