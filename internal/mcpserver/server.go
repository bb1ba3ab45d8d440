// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Othala tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/othala/internal/apperr"
	"github.com/starford/othala/internal/homeservice"
	"github.com/starford/othala/internal/models"
	"github.com/starford/othala/internal/store"
)

// Server wraps the MCP server with Othala tools.
type Server struct {
	mcp *server.MCPServer
	svc *homeservice.Service
}

// New creates a new MCP server with all Othala tools registered.
func New(svc *homeservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Othala",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_homes",
		mcp.WithDescription("List every recorded home with its id and address."),
		mcp.WithString("city", mcp.Description("Optional city filter")),
	), s.listHomes)

	s.mcp.AddTool(mcp.NewTool("get_home",
		mcp.WithDescription("Read one home record in full, including its scores."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Home id")),
	), s.getHome)

	s.mcp.AddTool(mcp.NewTool("add_home",
		mcp.WithDescription("Record a new candidate home. The draft MUST follow the "+
			"canonical JSON draft format (info object with a non-blank address, photo "+
			"list, score entries keyed by rubric category and name). Read the contract "+
			"first via the get_draft_contract tool or the othala://draft-format resource."),
		mcp.WithString("draft", mcp.Required(), mcp.Description("JSON home draft following the Othala draft contract")),
	), s.addHome)

	s.mcp.AddTool(mcp.NewTool("delete_home",
		mcp.WithDescription("Delete a home record by id."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Home id")),
	), s.deleteHome)

	s.mcp.AddTool(mcp.NewTool("get_rubric",
		mcp.WithDescription("Return the loaded scoring rubric: categories, criteria, weights, and kinds."),
	), s.getRubric)

	s.mcp.AddTool(mcp.NewTool("score_summary",
		mcp.WithDescription("Compare all homes: category subtotals, pass/fail tally, and overall weighted score per home."),
	), s.scoreSummary)

	s.mcp.AddTool(mcp.NewTool("get_draft_contract",
		mcp.WithDescription("Returns the canonical Othala home draft format contract. "+
			"Call this before adding homes to ensure correct structure."),
	), s.getDraftContract)

	// Resource: draft format contract.
	s.mcp.AddResource(
		mcp.NewResource("othala://draft-format", "Home Draft Contract",
			mcp.WithResourceDescription("Canonical JSON draft format that add_home accepts."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readDraftFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) listHomes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	city := ""
	if c, err := req.RequireString("city"); err == nil {
		city = c
	}
	homes, _, err := s.svc.List(ctx, store.Filter{City: city})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(homes) == 0 {
		return mcp.NewToolResultText("no homes recorded"), nil
	}
	var lines []string
	for _, h := range homes {
		lines = append(lines, fmt.Sprintf("%d: %s (%s, %s)", h.ID, h.Info.Address, h.Info.City, h.Info.Builder))
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) getHome(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireInt("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rec, err := s.svc.Get(ctx, int64(id))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("not found: %d", id)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(rec, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) addHome(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("draft")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var draft models.HomeDraft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid draft JSON: %v", err)), nil
	}
	rec, err := s.svc.Create(ctx, draft)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("created: %d (%s)", rec.ID, rec.Info.Address)), nil
}

func (s *Server) deleteHome(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireInt("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.svc.Delete(ctx, int64(id)); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("not found: %d", id)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("deleted: %d", id)), nil
}

func (s *Server) getRubric(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	r := s.svc.Rubric()
	out, _ := json.MarshalIndent(map[string]any{
		"categories":   r.Categories(),
		"criteria":     r.Criteria(),
		"max_possible": r.MaxPossibleScore(),
	}, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) scoreSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rows, _, err := s.svc.Summaries(ctx, store.Filter{})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(rows) == 0 {
		return mcp.NewToolResultText("no homes recorded"), nil
	}
	out, _ := json.MarshalIndent(rows, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getDraftContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(DraftFormatContract), nil
}

func (s *Server) readDraftFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "othala://draft-format",
			MIMEType: "text/markdown",
			Text:     DraftFormatContract,
		},
	}, nil
}
