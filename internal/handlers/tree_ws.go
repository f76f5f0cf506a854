package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vancomm/pcview/internal/solution"
	"github.com/vancomm/pcview/internal/viewer"
)

// render builds the reply for a path received over the socket.
func render(v *viewer.Viewer, tree *solution.Tree, text string) SocketMessage {
	msg := SocketMessage{Path: text}
	path, err := solution.ParsePath(text)
	if err != nil {
		msg.Error = err.Error()
		return msg
	}
	view, err := v.Display(tree, path)
	if err != nil {
		msg.Error = err.Error()
		return msg
	}
	fragment, err := view.Fragment()
	if err != nil {
		msg.Error = fmt.Sprintf("unable to render fragment: %s", err)
		return msg
	}
	msg.HTML = string(fragment)
	return msg
}

// Connect upgrades to a websocket over which the client sends paths and
// receives the fragment of each node.
func (h *TreeHandler) Connect(w http.ResponseWriter, r *http.Request) {
	row, tree, ok := h.load(w, r)
	if !ok {
		return
	}

	c, err := h.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("unable to upgrade", slog.Any("error", err))
		return
	}
	defer c.Close()

	v := h.viewer(row.TreeId)
	logger := h.logger.With(slog.Int64("treeId", row.TreeId))
	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("abnormal ws break", slog.Any("error", err))
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}
		text := strings.TrimSpace(string(message))
		logger.Debug("\t> " + text)

		msg := render(v, tree, text)
		if msg.Error != "" {
			logger.Debug("unable to display node", slog.String("path", text), slog.String("error", msg.Error))
		}

		c.SetWriteDeadline(time.Now().Add(h.ws.WriteTimeout))
		if err := c.WriteJSON(msg); err != nil {
			logger.Error("unable to write json", slog.Any("error", err))
			break
		}
	}
}
