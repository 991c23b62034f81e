package mcpserver

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/logscrub/logscrub"
	"github.com/logscrub/logscrub/core"
)

// Server exposes the record transforms as MCP tools over stdio, so MCP
// clients can scrub data before it leaves their boundary. Stdout
// carries the protocol; all diagnostics go to the logger on stderr.
type Server struct {
	mcp *server.MCPServer
	log zerolog.Logger
}

// New creates the server and registers the tool set
func New(log zerolog.Logger) *Server {
	s := &Server{
		mcp: server.NewMCPServer(
			"logscrub",
			logscrub.Version,
			server.WithToolCapabilities(true),
			server.WithLogging(),
		),
		log: log,
	}
	s.registerTools()
	return s
}

// ServeStdio blocks serving MCP requests until the client disconnects
func (s *Server) ServeStdio() error {
	s.log.Info().Str("version", logscrub.Version).Msg("starting MCP stdio server")
	return server.ServeStdio(s.mcp)
}

func (s *Server) registerTools() {
	scrubTool := mcp.Tool{
		Name:        "scrub_record",
		Description: "Anonymize one JSON record while preserving its structure",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"record": map[string]interface{}{
					"type":        "string",
					"description": "The JSON document to scrub",
				},
				"preserve_ids": map[string]interface{}{
					"type":        "boolean",
					"description": "Replace ID-like fields with stable digests instead of filler",
				},
			},
			Required: []string{"record"},
		},
	}
	s.mcp.AddTool(scrubTool, s.handleScrub)

	structureTool := mcp.Tool{
		Name:        "structure_record",
		Description: "Replace every scalar in a JSON record with its type placeholder",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"record": map[string]interface{}{
					"type":        "string",
					"description": "The JSON document to reduce to a structure outline",
				},
			},
			Required: []string{"record"},
		},
	}
	s.mcp.AddTool(structureTool, s.handleStructure)

	extractTool := mcp.Tool{
		Name:        "extract_records",
		Description: "Extract embedded JSON payloads from an export batch",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"batch": map[string]interface{}{
					"type":        "string",
					"description": "A JSON array of wrapper records",
				},
				"field": map[string]interface{}{
					"type":        "string",
					"description": "Wrapper field holding the embedded JSON (default @rawstring)",
				},
			},
			Required: []string{"batch"},
		},
	}
	s.mcp.AddTool(extractTool, s.handleExtract)
}

func (s *Server) handleScrub(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	record, ok := req.Params.Arguments["record"].(string)
	if !ok || record == "" {
		return errorResult("record argument must be a non-empty string"), nil
	}
	preserveIDs, _ := req.Params.Arguments["preserve_ids"].(bool)

	policy := core.DefaultPolicy()
	policy.PreserveIDs = preserveIDs

	out, _, err := logscrub.TransformString(record, policy)
	if err != nil {
		return errorResult(fmt.Sprintf("scrub failed: %v", err)), nil
	}
	return textResult(out), nil
}

func (s *Server) handleStructure(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	record, ok := req.Params.Arguments["record"].(string)
	if !ok || record == "" {
		return errorResult("record argument must be a non-empty string"), nil
	}

	policy := core.DefaultPolicy()
	policy.Mode = core.ModeStructure

	out, _, err := logscrub.TransformString(record, policy)
	if err != nil {
		return errorResult(fmt.Sprintf("structure failed: %v", err)), nil
	}
	return textResult(out), nil
}

// extractResponse is the JSON body returned by extract_records
type extractResponse struct {
	Records []any      `json:"records"`
	Stats   core.Stats `json:"stats"`
}

func (s *Server) handleExtract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	batch, ok := req.Params.Arguments["batch"].(string)
	if !ok || batch == "" {
		return errorResult("batch argument must be a non-empty string"), nil
	}

	extractor := core.NewExtractor().WithLogger(s.log)
	if field, ok := req.Params.Arguments["field"].(string); ok && field != "" {
		extractor.Field = field
	}

	values, stats, err := extractor.Extract([]byte(batch))
	if err != nil {
		return errorResult(fmt.Sprintf("extraction failed: %v", err)), nil
	}

	body, err := json.Marshal(extractResponse{Records: values, Stats: stats})
	if err != nil {
		return errorResult(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return textResult(string(body)), nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
		IsError: true,
	}
}
