package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/ironsheep/blur-gate/internal/blur"
	"github.com/ironsheep/blur-gate/internal/imaging"
	"github.com/ironsheep/blur-gate/internal/transform"
)

// Version is reported in the initialize handshake and by the CLI.
const Version = "0.1.0"

// Server handles MCP protocol communication
type Server struct {
	cache *imaging.ImageCache
	cfg   blur.Config

	// pipeline worker, see startPipelineWorker
	pipeMu  sync.Mutex
	pipeIn  chan transform.Request
	pipeOut chan transform.Response
	cancel  context.CancelFunc
	done    chan struct{}
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

// New creates a new MCP server instance scoring with cfg. The server owns a
// pipeline worker goroutine until Close is called.
func New(cfg blur.Config) *Server {
	s := &Server{
		cache: imaging.NewImageCache(),
		cfg:   cfg,
	}
	s.startPipelineWorker()
	return s
}

// startPipelineWorker runs image_pipeline requests through transform.Serve
// on a dedicated goroutine, the same path a remote worker would take.
func (s *Server) startPipelineWorker() {
	ctx, cancel := context.WithCancel(context.Background())
	s.pipeIn = make(chan transform.Request)
	s.pipeOut = make(chan transform.Response)
	s.cancel = cancel
	s.done = make(chan struct{})
	go func() {
		defer close(s.done)
		if err := transform.Serve(ctx, s.pipeIn, s.pipeOut); err != nil && err != context.Canceled {
			log.Printf("Pipeline worker stopped: %v", err)
		}
	}()
}

// runPipeline hands req to the worker and waits for its response.
func (s *Server) runPipeline(req transform.Request) (transform.Response, error) {
	s.pipeMu.Lock()
	defer s.pipeMu.Unlock()
	select {
	case s.pipeIn <- req:
	case <-s.done:
		return transform.Response{}, fmt.Errorf("pipeline worker is not running")
	}
	select {
	case resp := <-s.pipeOut:
		return resp, nil
	case <-s.done:
		return transform.Response{}, fmt.Errorf("pipeline worker is not running")
	}
}

// Close stops the pipeline worker. It is safe to call more than once.
func (s *Server) Close() {
	s.cancel()
	<-s.done
}

// Run starts the MCP server, reading from stdin and writing to stdout
func (s *Server) Run() error {
	return s.RunIO(os.Stdin, os.Stdout)
}

// RunIO serves line-delimited JSON-RPC requests from r, writing responses
// to w until r is exhausted.
func (s *Server) RunIO(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	// Increase buffer size for large requests
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	encoder := json.NewEncoder(w)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			log.Printf("Failed to parse request: %v", err)
			continue
		}

		resp := s.handleRequest(&req)
		if resp != nil {
			if err := encoder.Encode(resp); err != nil {
				log.Printf("Failed to encode response: %v", err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
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
				"name":    "blur-gate",
				"version": Version,
			},
		},
	}
}
