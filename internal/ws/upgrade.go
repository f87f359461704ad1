package ws

import (
	"net/http"
	"time"

	"cinebox/config"
	"cinebox/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// UpgradeFeedWS upgrades the connection for the live subscription
// stream: ledger snapshots, inbox updates and ban transitions are pushed
// here on every committed mutation. The snapshot callback supplies the
// initial state so a reconnecting device is current immediately.
func UpgradeFeedWS(cfg *config.JWTConfig, hub *Hub, snapshot func(userID uint) (interface{}, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		token := c.Query("token")
		if token == "" {
			conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"token required"}`))
			return
		}
		claims, err := auth.ParseAccessToken(cfg, token)
		if err != nil {
			conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"invalid token"}`))
			return
		}
		stream := hub.Attach(claims.UserID)
		defer stream.Close()
		if snapshot != nil {
			// The snapshot goes to this stream only; the identity's
			// other devices are already current.
			if initial, err := snapshot(claims.UserID); err == nil {
				stream.Push(initial)
			}
		}
		go writePump(stream, conn)
		readPump(conn)
	}
}

// writePump copies frames from the stream to the connection.
func writePump(s *Stream, conn *websocket.Conn) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-s.Out():
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func readPump(conn *websocket.Conn) {
	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			break
		}
	}
}
