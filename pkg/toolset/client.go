package toolset

import (
	"github.com/futuretea/wordpress-mcp-server/pkg/client/wordpress"
	"github.com/futuretea/wordpress-mcp-server/pkg/toolset/handler"
)

// ValidatePostService validates and returns the WordPress post service.
// Returns ErrWordPressNotConfigured if the client is nil or of another type.
func ValidatePostService(client interface{}) (*wordpress.PostService, error) {
	svc, ok := client.(*wordpress.PostService)
	if !ok || svc == nil {
		return nil, handler.ErrWordPressNotConfigured
	}
	return svc, nil
}
