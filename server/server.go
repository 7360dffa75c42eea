package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/touchpad-gestures/gesturecli/commands"
	"github.com/touchpad-gestures/gesturecli/pipeline"
	"github.com/touchpad-gestures/gesturecli/source"
	"github.com/touchpad-gestures/gesturecli/types"
	"github.com/touchpad-gestures/gesturecli/utils"
)

const (
	// Parse error: Invalid JSON was received by the server
	ErrCodeParseError = -32700

	// Invalid Request: The JSON sent is not a valid Request object
	ErrCodeInvalidRequest = -32600

	// Method not found: The method does not exist / is not available
	ErrCodeMethodNotFound = -32601

	// Server error: Internal JSON-RPC error
	ErrCodeServerError = -32000

	// Invalid params: Invalid method parameters
	ErrCodeInvalidParams = -32602

	// Internal error: Internal JSON-RPC error
	ErrCodeInternalError = -32603
)

const (
	errTitleParse        = "Parse error"
	errTitleInvalidReq   = "Invalid Request"
	errTitleMethodNotFnd = "Method not found"
	errTitleServer       = "Server error"
	errMsgParse          = "expecting jsonrpc payload"
	errMsgInvalidJSONRPC = "'jsonrpc' must be '2.0'"
	errMsgIDRequired     = "'id' field is required"
	errMsgMethodRequired = "'method' is required"
	errMsgUnauthorized   = "missing or invalid bearer token"
)

const (
	shutdownMethod      = "server.shutdown"
	shutdownGracePeriod = 5 * time.Second
)

// Server timeouts
const (
	ReadTimeout  = 10 * time.Second
	WriteTimeout = 10 * time.Second
	IdleTimeout  = 120 * time.Second
)

var okResponse = map[string]interface{}{"status": "ok"}

type JSONRPCRequest struct {
	// these fields are all omitempty, so we can report back to client if they are missing
	JSONRPC string          `json:"jsonrpc,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      interface{}     `json:"id,omitempty"`
}

// JSONRPCResponse represents a JSON-RPC response
type JSONRPCResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	Result  interface{} `json:"result,omitempty"`
	Error   interface{} `json:"error,omitempty"`
	ID      interface{} `json:"id"`
}

type rpcError struct {
	code    int
	message string
	data    string
}

// Config controls how the server is started.
type Config struct {
	Addr       string
	EnableCORS bool
	Source     source.Kind
	// Token, when set, must be presented as "Authorization: Bearer <token>".
	Token string
}

// Server feeds host gesture messages into one pipeline and exposes the
// operator commands over JSON-RPC.
type Server struct {
	env     *commands.Env
	adapter *source.Adapter
	config  Config

	// serializes host messages so a session is never interleaved with another
	feedMu  sync.Mutex
	outcome *pipeline.Outcome

	shutdown chan struct{}
	once     sync.Once
}

// New builds a server around env. The gesture source kind is fixed for the
// lifetime of the server.
func New(env *commands.Env, config Config) (*Server, error) {
	if config.Source == "" {
		config.Source = source.KindDirectPhase
	}

	s := &Server{
		env:      env,
		config:   config,
		shutdown: make(chan struct{}),
	}

	adapter, err := source.ForKind(config.Source, s.handleSample)
	if err != nil {
		return nil, err
	}
	s.adapter = adapter
	return s, nil
}

func (s *Server) handleSample(sample types.GestureSample) {
	out := s.env.Pipeline.Handle(sample)
	if sample.IsTerminal() {
		s.outcome = &out
	}
}

// Handler returns the HTTP handler serving /, /rpc and /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", sendBanner)
	mux.Handle("/rpc", s.authMiddleware(http.HandlerFunc(s.handleJSONRPC)))
	mux.Handle("/ws", s.authMiddleware(s.webSocketHandler()))

	var handler http.Handler = mux
	if s.config.EnableCORS {
		handler = corsMiddleware(mux)
	}
	return handler
}

// corsMiddleware handles CORS preflight requests and adds CORS headers to responses.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	if s.config.Token == "" {
		return next
	}

	expected := "Bearer " + s.config.Token
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != expected {
			http.Error(w, errMsgUnauthorized, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// NormalizeAddr turns a bare port into ":port".
func NormalizeAddr(addr string) (string, error) {
	if strings.Contains(addr, ":") {
		return addr, nil
	}

	port, err := strconv.Atoi(addr)
	if err != nil {
		return "", fmt.Errorf("invalid port: %v", err)
	}
	return fmt.Sprintf(":%d", port), nil
}

// ListenAndServe runs until the listener fails or server.shutdown is called.
func (s *Server) ListenAndServe() error {
	addr, err := NormalizeAddr(s.config.Addr)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
		IdleTimeout:  IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		utils.Info("Starting server on http://%s (%s gesture source)...", server.Addr, s.adapter.Kind())
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-s.shutdown:
		utils.Info("Shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownGracePeriod)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// Shutdown asks ListenAndServe to stop.
func (s *Server) Shutdown() {
	s.once.Do(func() {
		close(s.shutdown)
	})
}

// Done is closed once Shutdown has been called.
func (s *Server) Done() <-chan struct{} {
	return s.shutdown
}

func validateJSONRPCRequest(req JSONRPCRequest) *rpcError {
	if req.JSONRPC != "2.0" {
		return &rpcError{ErrCodeInvalidRequest, errTitleInvalidReq, errMsgInvalidJSONRPC}
	}
	if req.ID == nil {
		return &rpcError{ErrCodeInvalidRequest, errTitleInvalidReq, errMsgIDRequired}
	}
	if req.Method == "" {
		return &rpcError{ErrCodeInvalidRequest, errTitleInvalidReq, errMsgMethodRequired}
	}
	return nil
}

// call runs a validated request and returns either a result or an error.
func (s *Server) call(req JSONRPCRequest) (interface{}, *rpcError) {
	utils.Verbose("Request ID: %v, Method: %s, Params: %s", req.ID, req.Method, string(req.Params))

	handler, exists := s.MethodRegistry()[req.Method]
	if !exists {
		return nil, &rpcError{ErrCodeMethodNotFound, errTitleMethodNotFnd, fmt.Sprintf("Method '%s' not found", req.Method)}
	}

	result, err := handler(req.Params)
	if err != nil {
		utils.Verbose("Error executing method %s: %v", req.Method, err)
		code := ErrCodeServerError
		if errors.Is(err, errInvalidParams) {
			code = ErrCodeInvalidParams
		}
		return nil, &rpcError{code, errTitleServer, err.Error()}
	}
	return result, nil
}

func (s *Server) handleJSONRPC(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req JSONRPCRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSONRPCError(w, nil, ErrCodeParseError, errTitleParse, errMsgParse)
		return
	}

	if rerr := validateJSONRPCRequest(req); rerr != nil {
		sendJSONRPCError(w, req.ID, rerr.code, rerr.message, rerr.data)
		return
	}

	result, rerr := s.call(req)
	if rerr != nil {
		sendJSONRPCError(w, req.ID, rerr.code, rerr.message, rerr.data)
		return
	}

	sendJSONRPCResponse(w, req.ID, result)
}

func sendJSONRPCResponse(w http.ResponseWriter, id interface{}, result interface{}) {
	response := JSONRPCResponse{
		JSONRPC: "2.0",
		Result:  result,
		ID:      id,
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response)
}

func sendJSONRPCError(w http.ResponseWriter, id interface{}, code int, message string, data interface{}) {
	response := JSONRPCResponse{
		JSONRPC: "2.0",
		Error: map[string]interface{}{
			"code":    code,
			"message": message,
			"data":    data,
		},
		ID: id,
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response)
}

func sendBanner(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(okResponse)
}
