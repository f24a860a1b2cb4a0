package handlers

import (
	"net/http"
	"strconv"
	"time"

	"securewatch/internal/dialog"
	"securewatch/internal/progress"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	maxMsgSize       = 1 << 12 // 4 KB
	defaultInterval  = 250 * time.Millisecond
	maxInterval      = 10 * time.Second
	maxIntervalMilli = 10_000 // 10s in ms
)

// Envelope types sent on the progress stream.
const (
	wsTypeProgress  = "progress"
	wsTypeCompleted = "completed"
	wsTypeClosed    = "closed"
)

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

var upgrader = websocket.Upgrader{
	// The stream sits behind the bearer-token middleware.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary      Apply-fix progress stream
// @Description  WebSocket. Sends {"type":"progress"} envelopes until the run completes or the dialog is closed.
// @Tags         dialogs
// @Param        sid          path   string  true   "Fix dialog session id"
// @Param        interval     query  string  false  "Push interval, e.g. 500ms (max 10s)"
// @Param        interval_ms  query  int     false  "Push interval in ms"
// @Router       /ws/dialogs/{sid} [get]
// @Security     BearerAuth
func (h *Handler) wsFixProgress(c *gin.Context) {
	sid := c.Param("sid")
	fd, err := h.services.Dialogs.FixDialog(sid)
	if err != nil {
		h.respondError(c, err, errLoadDialog, "ws_fix_dialog_failed", "sid", sid)
		return
	}
	interval := h.parseInterval(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	// Configure read limits and pong handler to extend read deadline.
	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Reader goroutine to handle control frames and detect disconnects.
	done := make(chan struct{})
	go h.startReader(conn, done)

	ticker := time.NewTicker(interval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ping.Stop()
	}()

	// A run's Updates channel is closed once; remember it so a finished run
	// does not wake the loop again.
	var seen <-chan struct{}
	updates := fd.Updates()

	for {
		finished, err := h.sendProgress(conn, fd)
		if err != nil {
			if h.log != nil {
				h.log.Infow("ws_write_failed", "sid", sid, "err", err)
			}
			return
		}
		if finished {
			h.closeStream(conn)
			return
		}

		select {
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		case <-updates:
			seen, updates = updates, nil
		case <-ticker.C:
			if ch := fd.Updates(); ch != seen {
				updates = ch
			}
		}
	}
}

// sendProgress writes the current snapshot. It reports true once the stream
// has nothing more to say: the run completed or the dialog was closed.
func (h *Handler) sendProgress(conn *websocket.Conn, fd *dialog.FixDialog) (bool, error) {
	v := fd.View()
	snap := fd.Progress()

	typ := wsTypeProgress
	switch {
	case v.State == dialog.StateClosed:
		typ = wsTypeClosed
	case snap.State == progress.StateCompleted:
		typ = wsTypeCompleted
	}

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(wsEnvelope{Type: typ, Data: snap}); err != nil {
		return false, err
	}
	return typ != wsTypeProgress, nil
}

func (h *Handler) closeStream(conn *websocket.Conn) {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}

// parseInterval reads ?interval=2s or ?interval_ms=2000 with bounds.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 && d <= maxInterval {
			return d
		}
	}

	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 && v <= maxIntervalMilli {
			return time.Duration(v) * time.Millisecond
		}
	}

	return defaultInterval
}

// startReader drains incoming messages to handle control frames and detect closure.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if h.log != nil {
				h.log.Infow("ws_read_closed", "err", err)
			}
			return
		}
	}
}
