package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/lqip"
)

// Server handles MCP protocol communication
type Server struct {
	gen            *lqip.Generator
	log            *zap.Logger
	maxConcurrency int
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Option configures a Server.
type Option func(*Server)

// WithGenerator sets the placeholder generator used by the tools.
func WithGenerator(g *lqip.Generator) Option {
	return func(s *Server) { s.gen = g }
}

// WithLogger sets the server logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithMaxConcurrency bounds the number of requests handled at once.
// Values below 1 are ignored.
func WithMaxConcurrency(n int) Option {
	return func(s *Server) {
		if n >= 1 {
			s.maxConcurrency = n
		}
	}
}

// New creates a new MCP server instance
func New(opts ...Option) *Server {
	s := &Server{
		log:            zap.NewNop(),
		maxConcurrency: 4,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.gen == nil {
		s.gen = lqip.New(lqip.WithLogger(s.log))
	}
	return s
}

// syncEncoder serializes writes of responses produced by concurrent handlers.
type syncEncoder struct {
	mu  sync.Mutex
	enc *json.Encoder
}

func (e *syncEncoder) Encode(v interface{}) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.enc.Encode(v)
}

// Run reads JSON-RPC requests line by line from in and writes responses to
// out until in is exhausted.
//
// Each request is handled on its own goroutine in an errgroup limited to the
// configured concurrency, so responses may be written out of request order.
// Tool failures are reported to the client as JSON-RPC errors. Any other
// failure in a handler goroutine, such as a broken output stream, cancels
// the group and is returned by Run; nothing is dropped silently.
func (s *Server) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	// Increase buffer size for large requests
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	encoder := &syncEncoder{enc: json.NewEncoder(out)}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrency)

	for ctx.Err() == nil && scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.log.Warn("failed to parse request", zap.Error(err))
			continue
		}

		g.Go(func() error {
			resp := s.handleRequest(ctx, &req)
			if resp == nil {
				return nil
			}
			if err := encoder.Encode(resp); err != nil {
				return fmt.Errorf("failed to encode response: %w", err)
			}
			return nil
		})
	}
	scanErr := scanner.Err()

	if err := g.Wait(); err != nil {
		return err
	}
	if scanErr != nil {
		return fmt.Errorf("scanner error: %w", scanErr)
	}
	return nil
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(ctx context.Context, req *MCPRequest) *MCPResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(ctx, req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    -32601,
				Message: fmt.Sprintf("Method not found: %s", req.Method),
			},
		}
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "lqip-mcp",
				"version": lqip.Version,
			},
		},
	}
}
