package wordpress

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/futuretea/wordpress-mcp-server/pkg/toolset"
	"github.com/futuretea/wordpress-mcp-server/pkg/toolset/handler"
)

// Toolset implements the WordPress posts toolset
type Toolset struct{}

var _ toolset.Toolset = (*Toolset)(nil)

// GetName returns the name of the toolset
func (t *Toolset) GetName() string {
	return "wordpress"
}

// GetDescription returns the description of the toolset
func (t *Toolset) GetDescription() string {
	return "Create, list and update WordPress posts through the REST API"
}

var formatProperty = map[string]any{
	"type":        "string",
	"description": "Output format: json or yaml",
	"enum":        []string{handler.FormatJSON, handler.FormatYAML},
	"default":     handler.FormatJSON,
}

// GetTools returns the tools provided by this toolset
func (t *Toolset) GetTools(client interface{}) []toolset.ServerTool {
	return []toolset.ServerTool{
		{
			Tool: mcp.Tool{
				Name:        "create_post",
				Description: "Create a new WordPress post",
				InputSchema: mcp.ToolInputSchema{
					Type: "object",
					Properties: map[string]any{
						handler.ParamTitle: map[string]any{
							"type":        "string",
							"description": "Post title",
						},
						handler.ParamContent: map[string]any{
							"type":        "string",
							"description": "Post content (HTML or block markup)",
						},
						handler.ParamStatus: map[string]any{
							"type":        "string",
							"description": "Post status, e.g. draft, publish, pending, private",
							"default":     "draft",
						},
						handler.ParamFormat: formatProperty,
					},
					Required: []string{handler.ParamTitle, handler.ParamContent},
				},
			},
			Annotations: toolset.ToolAnnotations{
				ReadOnlyHint:      handler.BoolPtr(false),
				DestructiveHint:   handler.BoolPtr(false),
				RequiresWordPress: handler.BoolPtr(true),
			},
			Handler: createPostHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "get_posts",
				Description: "List WordPress posts",
				InputSchema: mcp.ToolInputSchema{
					Type: "object",
					Properties: map[string]any{
						handler.ParamPerPage: map[string]any{
							"type":        "integer",
							"description": "Number of posts per page",
							"default":     10,
						},
						handler.ParamPage: map[string]any{
							"type":        "integer",
							"description": "Page number (starting from 1)",
							"default":     1,
						},
						handler.ParamFormat: formatProperty,
					},
				},
			},
			Annotations: toolset.ToolAnnotations{
				ReadOnlyHint:      handler.BoolPtr(true),
				RequiresWordPress: handler.BoolPtr(true),
			},
			Handler: getPostsHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "update_post",
				Description: "Update an existing WordPress post. Only the fields given are changed",
				InputSchema: mcp.ToolInputSchema{
					Type: "object",
					Properties: map[string]any{
						handler.ParamPostID: map[string]any{
							"type":        "integer",
							"description": "ID of the post to update",
						},
						handler.ParamTitle: map[string]any{
							"type":        "string",
							"description": "New post title",
						},
						handler.ParamContent: map[string]any{
							"type":        "string",
							"description": "New post content",
						},
						handler.ParamStatus: map[string]any{
							"type":        "string",
							"description": "New post status",
						},
						handler.ParamFormat: formatProperty,
					},
					Required: []string{handler.ParamPostID},
				},
			},
			Annotations: toolset.ToolAnnotations{
				ReadOnlyHint:      handler.BoolPtr(false),
				DestructiveHint:   handler.BoolPtr(false),
				RequiresWordPress: handler.BoolPtr(true),
			},
			Handler: updatePostHandler,
		},
	}
}
