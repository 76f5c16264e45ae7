package ws

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/chathaven/chathaven/internal/app"
	"github.com/chathaven/chathaven/internal/config"
	"github.com/chathaven/chathaven/internal/domain"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ChatWSController accepts chat connections and runs their pumps. Each
// connection gets a fresh handle; the client-token cookie is only a
// logging breadcrumb across tabs and reconnects.
type ChatWSController struct {
	Engine *app.Engine
	Hub    *Hub
	Cfg    *config.Config
}

func NewChatWSController(engine *app.Engine, hub *Hub, cfg *config.Config) *ChatWSController {
	return &ChatWSController{Engine: engine, Hub: hub, Cfg: cfg}
}

func (ctl *ChatWSController) HandleChat(ctx context.Context, c *gin.Context) {
	token := c.GetString("client_token")
	log.Info().Str("module", "ws").Str("client_token", token).Msg("new WS connection")

	socket, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "ws").Msg("ws upgrade")
		return
	}
	socket.SetReadLimit(ctl.Cfg.ReadLimit)

	id := domain.UserID(uuid.NewString())
	conn := &Conn{
		ws:   socket,
		send: make(chan []byte, ctl.Cfg.SendBuffer),
	}

	ctl.Hub.Bind(id, conn)
	sess := ctl.Engine.NewSession(id)

	go ctl.writePump(ctx, id, conn)
	go ctl.readPump(ctx, sess, conn)
}
