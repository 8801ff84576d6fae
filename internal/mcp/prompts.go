package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPrompts() {
	s.mcp.AddPrompt(mcp.NewPrompt("landing_page",
		mcp.WithPromptDescription("Guide through building a landing page with a hero, a call to action and a linked page"),
		mcp.WithArgument("product",
			mcp.ArgumentDescription("Product or topic the page is about"),
			mcp.RequiredArgument(),
		),
	), s.handleLandingPagePrompt)

	s.mcp.AddPrompt(mcp.NewPrompt("api_button",
		mcp.WithPromptDescription("Add a button that calls an API in preview mode"),
		mcp.WithArgument("endpoint",
			mcp.ArgumentDescription("URL the button should GET"),
			mcp.RequiredArgument(),
		),
	), s.handleAPIButtonPrompt)
}

func (s *Server) handleLandingPagePrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	product := req.Params.Arguments["product"]
	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Build a landing page for: %s", product),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf(`Build a landing page for "%s". Follow these steps:

1. Use add_page to create a page named "%s" and a second page named "Contact"
2. Switch back to the "%s" page with switch_page
3. Use drop_palette_item to add a text element, then update_element to set a headline
4. Add an image with add_element and an absolute style so it is placed automatically
5. Add a button whose linkToPageId points to the Contact page
6. Read webbuilder://state to check the result

Keep flow elements in reading order with reorder_elements.`, product, product, product),
				},
			},
		},
	}, nil
}

func (s *Server) handleAPIButtonPrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	endpoint := req.Params.Arguments["endpoint"]
	return &mcp.GetPromptResult{
		Description: "Add an API button",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf(`Add a button to the current page that calls %s:

1. drop_palette_item with type "button"
2. update_element on the new id with {"content": "Load data", "apiEndpoint": "%s"}
3. preview_click on the button to check the response`, endpoint, endpoint),
				},
			},
		},
	}, nil
}
