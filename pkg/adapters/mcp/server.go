// Package mcp exposes the conversation engine as a Model Context Protocol
// server so agent hosts can drive provisioning dialogues as tools.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/provisio/provisio/internal/logging"
	"github.com/provisio/provisio/pkg/domain"
	"github.com/provisio/provisio/pkg/flow"
	"github.com/provisio/provisio/pkg/ports"
)

// Server wraps the conversation engine and exposes it over MCP.
type Server struct {
	engine    ports.ConversationEngine
	flows     *flow.Registry
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer builds the MCP server with the conversation tools and the
// resource catalog registered.
func NewServer(engine ports.ConversationEngine, flows *flow.Registry, version string, opts ...Option) *Server {
	s := &Server{
		engine:    engine,
		flows:     flows,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("provisio-mcp", version),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	startTool := mcp.NewTool("start_session",
		mcp.WithDescription("Start a new provisioning conversation. Returns the welcome turn with the resource-type menu."),
		mcp.WithOutputSchema[domain.TurnResult](),
	)
	s.mcpServer.AddTool(startTool, mcp.NewStructuredToolHandler(s.handleStartSession))

	sendTool := mcp.NewTool("send_message",
		mcp.WithDescription("Send one message to a provisioning conversation. When the turn confirms creation, the execute follow-up runs automatically and the final outcome is returned."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID from start_session")),
		mcp.WithString("message", mcp.Required(), mcp.Description("User message for this turn")),
		mcp.WithOutputSchema[domain.TurnResult](),
	)
	s.mcpServer.AddTool(sendTool, mcp.NewStructuredToolHandler(s.handleSendMessage))

	s.mcpServer.AddTool(mcp.NewTool("get_session",
		mcp.WithDescription("Inspect the state and accumulated configuration of a session."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
	), s.handleGetSession)

	s.mcpServer.AddTool(mcp.NewTool("end_session",
		mcp.WithDescription("Delete a provisioning session."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
	), s.handleEndSession)

	s.mcpServer.AddTool(mcp.NewTool("list_regions",
		mcp.WithDescription("List the accepted Azure region names."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, _ := json.Marshal(map[string]any{
			"regions": flow.Regions,
			"popular": flow.PopularRegions,
		})
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handleStartSession(ctx context.Context, request mcp.CallToolRequest, _ map[string]any) (domain.TurnResult, error) {
	res, err := s.engine.StartSession(ctx)
	if err != nil {
		return domain.TurnResult{}, fmt.Errorf("start session failed: %w", err)
	}
	return res, nil
}

func (s *Server) handleSendMessage(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (domain.TurnResult, error) {
	sessionID, _ := args["session_id"].(string)
	message, _ := args["message"].(string)
	if sessionID == "" {
		return domain.TurnResult{}, errors.New("session_id is required")
	}

	res, err := s.engine.Turn(ctx, sessionID, message)
	if err != nil {
		return domain.TurnResult{}, fmt.Errorf("turn failed: %w", err)
	}
	if res.PendingExecution {
		res, err = s.engine.Turn(ctx, sessionID, domain.ExecuteMessage)
		if err != nil {
			return domain.TurnResult{}, fmt.Errorf("execution turn failed: %w", err)
		}
	}
	return res, nil
}

func (s *Server) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := request.GetString("session_id", "")
	sess, err := s.engine.Session(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("get session failed: %v", err)), nil
	}
	jsonBytes, _ := json.Marshal(map[string]any{
		"session_id": sess.ID,
		"state":      sess.State,
		"summary":    sess.Summary(),
	})
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleEndSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := request.GetString("session_id", "")
	if err := s.engine.DeleteSession(ctx, sessionID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("end session failed: %v", err)), nil
	}
	return mcp.NewToolResultText(`{"status":"deleted"}`), nil
}

func (s *Server) registerResources() {
	// The catalog resource describes every provisionable type and its
	// question sequence, so agents can plan answers before starting a session.
	s.mcpServer.AddResource(mcp.NewResource("provisio://catalog", "Provisionable Resource Catalog",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		type stepInfo struct {
			Field   string   `json:"field"`
			Prompt  string   `json:"prompt"`
			Options []string `json:"options,omitempty"`
			Default string   `json:"default,omitempty"`
		}
		catalog := make(map[string]any, len(domain.ResourceTypes()))
		for _, rt := range domain.ResourceTypes() {
			steps := s.flows.Steps(rt)
			infos := make([]stepInfo, len(steps))
			for i, st := range steps {
				infos[i] = stepInfo{Field: st.Field, Prompt: st.Prompt, Options: st.Menu(nil), Default: st.Default}
			}
			catalog[string(rt)] = map[string]any{
				"label":         rt.Label(),
				"provider_type": rt.ProviderType(),
				"steps":         infos,
			}
		}
		jsonBytes, err := json.Marshal(catalog)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal catalog: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "provisio://catalog",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
