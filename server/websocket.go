package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/touchpad-gestures/gesturecli/utils"
)

type wsConnection struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func newUpgrader(enableCORS bool) *websocket.Upgrader {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}

	if enableCORS {
		upgrader.CheckOrigin = func(r *http.Request) bool {
			return true
		}
	} else {
		upgrader.CheckOrigin = isSameOrigin
	}

	return &upgrader
}

// webSocketHandler serves the same methods as /rpc, one request per text
// message. A host can keep a single connection open and stream gestures.
func (s *Server) webSocketHandler() http.Handler {
	upgrader := newUpgrader(s.config.EnableCORS)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			utils.Warn("WebSocket upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		wsConn := &wsConnection{conn: conn}

		for {
			messageType, message, err := conn.ReadMessage()
			if err != nil {
				// connection closed or error
				utils.Verbose("WebSocket connection closed: %v", err)
				break
			}

			if messageType != websocket.TextMessage {
				_ = wsConn.sendError(nil, ErrCodeInvalidRequest, errTitleInvalidReq, "only text messages accepted for requests")
				continue
			}

			s.handleWSMessage(wsConn, message)
		}
	})
}

func isSameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}

	return originURL.Host == r.Host
}

func (s *Server) handleWSMessage(wsConn *wsConnection, message []byte) {
	var req JSONRPCRequest
	if err := json.Unmarshal(message, &req); err != nil {
		_ = wsConn.sendError(nil, ErrCodeParseError, errTitleParse, errMsgParse)
		return
	}

	if rerr := validateJSONRPCRequest(req); rerr != nil {
		_ = wsConn.sendError(req.ID, rerr.code, rerr.message, rerr.data)
		return
	}

	result, rerr := s.call(req)
	if rerr != nil {
		_ = wsConn.sendError(req.ID, rerr.code, rerr.message, rerr.data)
		return
	}

	_ = wsConn.sendResponse(req.ID, result)
}

func (wsc *wsConnection) sendResponse(id interface{}, result interface{}) error {
	response := JSONRPCResponse{
		JSONRPC: "2.0",
		Result:  result,
		ID:      id,
	}
	return wsc.sendJSON(response)
}

func (wsc *wsConnection) sendError(id interface{}, code int, message string, data interface{}) error {
	response := JSONRPCResponse{
		JSONRPC: "2.0",
		Error: map[string]interface{}{
			"code":    code,
			"message": message,
			"data":    data,
		},
		ID: id,
	}
	return wsc.sendJSON(response)
}

func (wsc *wsConnection) sendJSON(v interface{}) error {
	wsc.writeMu.Lock()
	defer wsc.writeMu.Unlock()
	return wsc.conn.WriteJSON(v)
}
