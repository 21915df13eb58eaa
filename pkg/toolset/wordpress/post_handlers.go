package wordpress

import (
	"context"

	wpclient "github.com/futuretea/wordpress-mcp-server/pkg/client/wordpress"
	"github.com/futuretea/wordpress-mcp-server/pkg/toolset"
	"github.com/futuretea/wordpress-mcp-server/pkg/toolset/handler"
	"github.com/futuretea/wordpress-mcp-server/pkg/toolset/paramutil"
)

// formatResponse renders the upstream response. Upstream HTTP errors are
// formatted like any other value and are not tool errors.
func formatResponse(resp *wpclient.Response, format string) (string, error) {
	return handler.FormatValue(resp.Value(), format)
}

// createPostHandler handles the create_post tool.
func createPostHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	if err := paramutil.CheckWritable(params); err != nil {
		return "", err
	}

	svc, err := toolset.ValidatePostService(client)
	if err != nil {
		return "", err
	}

	format, err := paramutil.ExtractAndValidateFormat(params)
	if err != nil {
		return "", err
	}

	title, err := paramutil.ExtractPresentString(params, handler.ParamTitle)
	if err != nil {
		return "", err
	}
	content, err := paramutil.ExtractPresentString(params, handler.ParamContent)
	if err != nil {
		return "", err
	}
	status := paramutil.ExtractOptionalStringWithDefault(params, handler.ParamStatus, wpclient.DefaultPostStatus)

	resp, err := svc.CreatePost(ctx, title, content, status)
	if err != nil {
		return "", err
	}
	return formatResponse(resp, format)
}

// getPostsHandler handles the get_posts tool.
func getPostsHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	svc, err := toolset.ValidatePostService(client)
	if err != nil {
		return "", err
	}

	format, err := paramutil.ExtractAndValidateFormat(params)
	if err != nil {
		return "", err
	}

	perPage, err := paramutil.ExtractInt64(params, handler.ParamPerPage, wpclient.DefaultPerPage)
	if err != nil {
		return "", err
	}
	page, err := paramutil.ExtractInt64(params, handler.ParamPage, wpclient.DefaultPage)
	if err != nil {
		return "", err
	}

	resp, err := svc.GetPosts(ctx, perPage, page)
	if err != nil {
		return "", err
	}
	return formatResponse(resp, format)
}

// updatePostHandler handles the update_post tool.
// Empty strings for title, content or status count as not provided.
func updatePostHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	if err := paramutil.CheckWritable(params); err != nil {
		return "", err
	}

	svc, err := toolset.ValidatePostService(client)
	if err != nil {
		return "", err
	}

	format, err := paramutil.ExtractAndValidateFormat(params)
	if err != nil {
		return "", err
	}

	postID, err := paramutil.ExtractRequiredID(params, handler.ParamPostID)
	if err != nil {
		return "", err
	}

	update := wpclient.PostUpdate{
		Title:   paramutil.ExtractNonEmptyString(params, handler.ParamTitle),
		Content: paramutil.ExtractNonEmptyString(params, handler.ParamContent),
		Status:  paramutil.ExtractNonEmptyString(params, handler.ParamStatus),
	}

	resp, err := svc.UpdatePost(ctx, postID, update)
	if err != nil {
		return "", err
	}
	return formatResponse(resp, format)
}
