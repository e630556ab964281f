package api

import (
	"encoding/json"
	"net/http"
	"time"

	"TradeMind/internal/domain/models"
	xhttp "TradeMind/pkg/http"
	xlogger "TradeMind/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	wsReadLimit    = 512
	wsReadTimeout  = 60 * time.Second
	wsWriteTimeout = 10 * time.Second
)

var (
	upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}
	validate = validator.New()
)

// RiskSocket evaluates settled slider readings server side. The rate limit
// applies to opening a session, not to its messages. Messages are handled
// strictly in order; every reply is written before the next read.
func (h *PagesEchoHandler) RiskSocket(c echo.Context) error {
	if h.limiter != nil && !h.limiter.Allow(c.RealIP()) {
		return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("rate limit exceeded"))
	}
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade has already answered the client.
		h.logger.Warn("ws upgrade failed", xlogger.Error(err))
		return nil
	}
	remote := c.RealIP()
	h.logger.Debug("ws risk session opened", xlogger.String("remote", remote))
	h.readPump(conn, remote)
	return nil
}

func (h *PagesEchoHandler) readPump(conn *websocket.Conn, remote string) {
	defer func() {
		conn.Close()
		h.logger.Debug("ws risk session closed", xlogger.String("remote", remote))
	}()

	conn.SetReadLimit(wsReadLimit)
	conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	})

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("ws risk read error", xlogger.Error(err))
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(wsReadTimeout))

		reply := h.riskReply(msg)
		conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err := conn.WriteJSON(reply); err != nil {
			h.logger.Warn("ws risk write error", xlogger.Error(err))
			return
		}
	}
}

func (h *PagesEchoHandler) riskReply(msg []byte) models.RiskReply {
	var in models.RiskMessage
	if err := json.Unmarshal(msg, &in); err != nil {
		return models.RiskReply{Error: "invalid message: " + err.Error()}
	}
	if err := validate.Struct(&in); err != nil {
		return models.RiskReply{Error: "value must be a number between 0 and 15"}
	}
	d, err := h.risk.Evaluate(*in.Value)
	if err != nil {
		return models.RiskReply{Error: err.Error()}
	}
	return models.RiskReply{RiskDisplay: &d}
}
