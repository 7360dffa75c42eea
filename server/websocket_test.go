package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/touchpad-gestures/gesturecli/source"
)

func setupWebSocketServer(t *testing.T, config Config) (*testServer, *httptest.Server, string) {
	s := newTestServer(t, config)
	server := httptest.NewServer(s.Handler())
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	return s, server, wsURL
}

func connectWebSocket(t *testing.T, url string) *websocket.Conn {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err, "should connect to WebSocket")
	return conn
}

func sendJSONRPCRequest(t *testing.T, conn *websocket.Conn, req JSONRPCRequest) {
	err := conn.WriteJSON(req)
	require.NoError(t, err, "should send request")
}

func readJSONRPCResponse(t *testing.T, conn *websocket.Conn) JSONRPCResponse {
	var resp JSONRPCResponse
	err := conn.ReadJSON(&resp)
	require.NoError(t, err, "should read response")
	return resp
}

func TestWebSocket_ValidRequest(t *testing.T) {
	_, server, wsURL := setupWebSocketServer(t, Config{})
	defer server.Close()

	conn := connectWebSocket(t, wsURL)
	defer conn.Close()

	sendJSONRPCRequest(t, conn, JSONRPCRequest{
		JSONRPC: "2.0",
		Method:  "actions",
		Params:  json.RawMessage(`{}`),
		ID:      1,
	})
	resp := readJSONRPCResponse(t, conn)

	assert.Equal(t, "2.0", resp.JSONRPC)
	assert.Equal(t, 1, int(resp.ID.(float64)))
	assert.Nil(t, resp.Error)
	assert.NotNil(t, resp.Result)
}

func TestWebSocket_ValidationErrors(t *testing.T) {
	_, server, wsURL := setupWebSocketServer(t, Config{})
	defer server.Close()

	conn := connectWebSocket(t, wsURL)
	defer conn.Close()

	tests := []struct {
		name     string
		req      JSONRPCRequest
		wantCode int
		wantData string
	}{
		{"wrong version", JSONRPCRequest{JSONRPC: "1.0", Method: "actions", ID: 1}, ErrCodeInvalidRequest, errMsgInvalidJSONRPC},
		{"missing id", JSONRPCRequest{JSONRPC: "2.0", Method: "actions"}, ErrCodeInvalidRequest, errMsgIDRequired},
		{"missing method", JSONRPCRequest{JSONRPC: "2.0", ID: 2}, ErrCodeInvalidRequest, errMsgMethodRequired},
		{"unknown method", JSONRPCRequest{JSONRPC: "2.0", Method: "screencapture", ID: 3}, ErrCodeMethodNotFound, "Method 'screencapture' not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sendJSONRPCRequest(t, conn, tt.req)
			resp := readJSONRPCResponse(t, conn)

			errorMap, ok := resp.Error.(map[string]interface{})
			require.True(t, ok)
			assert.Equal(t, float64(tt.wantCode), errorMap["code"])
			assert.Equal(t, tt.wantData, errorMap["data"])
		})
	}
}

func TestWebSocket_InvalidJSON(t *testing.T) {
	_, server, wsURL := setupWebSocketServer(t, Config{})
	defer server.Close()

	conn := connectWebSocket(t, wsURL)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{invalid json}")))
	resp := readJSONRPCResponse(t, conn)

	errorMap := resp.Error.(map[string]interface{})
	assert.Equal(t, float64(ErrCodeParseError), errorMap["code"])
	assert.Nil(t, resp.ID)
}

func TestWebSocket_BinaryMessageRejected(t *testing.T) {
	_, server, wsURL := setupWebSocketServer(t, Config{})
	defer server.Close()

	conn := connectWebSocket(t, wsURL)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte(`{"jsonrpc":"2.0"}`)))
	resp := readJSONRPCResponse(t, conn)

	errorMap := resp.Error.(map[string]interface{})
	assert.Equal(t, float64(ErrCodeInvalidRequest), errorMap["code"])
	assert.Equal(t, "only text messages accepted for requests", errorMap["data"])
}

func TestWebSocket_StreamsGestureSession(t *testing.T) {
	s, server, wsURL := setupWebSocketServer(t, Config{Source: source.KindDirectPhase})
	defer server.Close()

	conn := connectWebSocket(t, wsURL)
	defer conn.Close()

	messages := []string{
		`{"phase":"begin","fingers":3}`,
		`{"phase":"update","fingers":3,"dx":-10}`,
		`{"phase":"end","fingers":3,"dx":-45,"dy":4}`,
	}

	var last JSONRPCResponse
	for i, params := range messages {
		sendJSONRPCRequest(t, conn, JSONRPCRequest{
			JSONRPC: "2.0",
			Method:  "gesture",
			Params:  json.RawMessage(params),
			ID:      i + 1,
		})
		last = readJSONRPCResponse(t, conn)
		require.Nil(t, last.Error)
	}

	outcome := last.Result.(map[string]interface{})["outcome"].(map[string]interface{})
	assert.Equal(t, "workspace-right", outcome["action"])
	assert.Equal(t, true, outcome["dispatched"])
	assert.Zero(t, s.desktop.overview)
}

func TestWebSocket_StringID(t *testing.T) {
	_, server, wsURL := setupWebSocketServer(t, Config{})
	defer server.Close()

	conn := connectWebSocket(t, wsURL)
	defer conn.Close()

	sendJSONRPCRequest(t, conn, JSONRPCRequest{JSONRPC: "2.0", Method: "bindings", ID: "string-id-123"})
	resp := readJSONRPCResponse(t, conn)

	assert.Equal(t, "string-id-123", resp.ID)
	assert.Nil(t, resp.Error)
}

func TestWebSocket_RequiresToken(t *testing.T) {
	_, server, wsURL := setupWebSocketServer(t, Config{Token: "secret"})
	defer server.Close()

	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, http.Header{"Authorization": {"Bearer secret"}})
	require.NoError(t, err)
	conn.Close()
}

func TestWebSocket_ConcurrentConnections(t *testing.T) {
	_, server, wsURL := setupWebSocketServer(t, Config{})
	defer server.Close()

	numConnections := 5
	done := make(chan bool, numConnections)

	for i := 0; i < numConnections; i++ {
		go func(id int) {
			conn := connectWebSocket(t, wsURL)
			defer conn.Close()

			sendJSONRPCRequest(t, conn, JSONRPCRequest{
				JSONRPC: "2.0",
				Method:  "classify",
				Params:  json.RawMessage(`{"fingers":3,"dx":0,"dy":0}`),
				ID:      id,
			})
			resp := readJSONRPCResponse(t, conn)

			assert.Equal(t, id, int(resp.ID.(float64)))
			assert.Nil(t, resp.Error)

			done <- true
		}(i)
	}

	for i := 0; i < numConnections; i++ {
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatalf("connection %d timed out", i)
		}
	}
}

func TestValidateJSONRPCRequest(t *testing.T) {
	assert.Nil(t, validateJSONRPCRequest(JSONRPCRequest{JSONRPC: "2.0", Method: "actions", ID: 1}))

	err := validateJSONRPCRequest(JSONRPCRequest{JSONRPC: "2.0", Method: "actions"})
	require.NotNil(t, err)
	assert.Equal(t, ErrCodeInvalidRequest, err.code)
	assert.Equal(t, errTitleInvalidReq, err.message)
	assert.Equal(t, errMsgIDRequired, err.data)
}

func TestNewUpgrader(t *testing.T) {
	req := &http.Request{Header: http.Header{}, Host: "localhost:12000"}
	req.Header.Set("Origin", "http://any-origin.com")

	assert.True(t, newUpgrader(true).CheckOrigin(req))
	assert.False(t, newUpgrader(false).CheckOrigin(req))
}

func TestIsSameOrigin(t *testing.T) {
	tests := []struct {
		name     string
		origin   string
		host     string
		expected bool
	}{
		{"no origin header", "", "localhost:8080", true},
		{"same origin", "http://localhost:8080", "localhost:8080", true},
		{"different origin", "http://other.com", "localhost:8080", false},
		{"invalid origin url", "://invalid", "localhost:8080", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &http.Request{
				Header: http.Header{},
				Host:   tt.host,
			}
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}

			assert.Equal(t, tt.expected, isSameOrigin(req))
		})
	}
}
