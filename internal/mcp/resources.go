package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

const (
	stateURI         = "webbuilder://state"
	pageURIPrefix    = "webbuilder://page/"
	pageElementsPath = "/elements"
)

func (s *Server) registerResources() {
	// ── webbuilder://state ─────────────────────────────
	s.mcp.AddResource(mcp.NewResource(
		stateURI,
		"Editor State",
		mcp.WithResourceDescription("Pages, current page and selection"),
		mcp.WithMIMEType("application/json"),
	), s.handleStateResource)

	// ── webbuilder://page/{pageId}/elements ────────────
	s.mcp.AddResourceTemplate(
		mcp.NewResourceTemplate(
			pageURIPrefix+"{pageId}"+pageElementsPath,
			"Elements on a Page",
			mcp.WithTemplateMIMEType("application/json"),
		),
		s.handlePageElementsResource,
	)
}

func (s *Server) handleStateResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(s.store.State(), "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      stateURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (s *Server) handlePageElementsResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	pageID := extractPageIDFromURI(uri)
	if pageID == "" {
		return nil, fmt.Errorf("could not extract pageId from URI: %s", uri)
	}
	page := s.store.State().Page(pageID)
	if page == nil {
		return nil, fmt.Errorf("page %s not found", pageID)
	}

	data, err := json.MarshalIndent(summarizeElements(page.Elements), "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// extractPageIDFromURI maps webbuilder://page/abc-123/elements to abc-123.
func extractPageIDFromURI(uri string) string {
	if !strings.HasPrefix(uri, pageURIPrefix) || !strings.HasSuffix(uri, pageElementsPath) {
		return ""
	}
	id := strings.TrimSuffix(strings.TrimPrefix(uri, pageURIPrefix), pageElementsPath)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
