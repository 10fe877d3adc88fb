package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"forkcast/internal/realtime"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients authenticate with the Bearer token; origin
	// checking is left to the deployment's reverse proxy.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// GET /api/ws
//
// Upgrades to a websocket that receives refresh nudges for the user's
// household. The socket is write-only from the server's perspective;
// the read loop exists solely to detect disconnects.
func (s *Server) serveWS(c *gin.Context) {
	sess, _, ok := s.session(c)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}

	client := &realtime.Client{HouseholdID: sess.HouseholdID, Conn: conn}
	s.hub.Register(client)

	go func() {
		defer s.hub.Unregister(client)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
