package wordpress

import (
	"context"
	"fmt"

	"github.com/futuretea/wordpress-mcp-server/pkg/core/credentials"
)

// Post defaults
const (
	DefaultPostStatus = "draft"
	DefaultPerPage    = 10
	DefaultPage       = 1
)

// Requester performs a single REST call. *Client implements it.
type Requester interface {
	Request(ctx context.Context, desc RequestDescriptor, creds credentials.Credentials) (*Response, error)
}

var _ Requester = (*Client)(nil)

// PostUpdate holds the fields to change on an existing post. A nil field is
// left out of the request entirely.
type PostUpdate struct {
	Title   *string
	Content *string
	Status  *string
}

// Payload returns the request payload containing only the provided fields.
func (u PostUpdate) Payload() map[string]any {
	payload := map[string]any{}
	if u.Title != nil {
		payload["title"] = *u.Title
	}
	if u.Content != nil {
		payload["content"] = *u.Content
	}
	if u.Status != nil {
		payload["status"] = *u.Status
	}
	return payload
}

// PostService exposes the post operations. Credentials are resolved on every
// call.
type PostService struct {
	client   Requester
	resolver credentials.Resolver
}

// NewPostService creates a PostService
func NewPostService(client Requester, resolver credentials.Resolver) *PostService {
	return &PostService{client: client, resolver: resolver}
}

func (s *PostService) do(ctx context.Context, desc RequestDescriptor) (*Response, error) {
	var creds credentials.Credentials
	if s.resolver != nil {
		creds = s.resolver.Resolve()
	}
	return s.client.Request(ctx, desc, creds)
}

// CreatePost creates a post. An empty status defaults to "draft".
func (s *PostService) CreatePost(ctx context.Context, title, content, status string) (*Response, error) {
	if status == "" {
		status = DefaultPostStatus
	}
	return s.do(ctx, RequestDescriptor{
		Endpoint: "/posts",
		Method:   MethodPost,
		Payload: map[string]any{
			"title":   title,
			"content": content,
			"status":  status,
		},
	})
}

// GetPosts lists posts. perPage and page are sent as given; WordPress
// rejects out-of-range values itself.
func (s *PostService) GetPosts(ctx context.Context, perPage, page int64) (*Response, error) {
	return s.do(ctx, RequestDescriptor{
		Endpoint: "/posts",
		Method:   MethodGet,
		Payload: map[string]any{
			"per_page": perPage,
			"page":     page,
		},
	})
}

// UpdatePost updates the provided fields of post postID. WordPress accepts
// POST for updates on /posts/{id}.
func (s *PostService) UpdatePost(ctx context.Context, postID int64, update PostUpdate) (*Response, error) {
	return s.do(ctx, RequestDescriptor{
		Endpoint: fmt.Sprintf("/posts/%d", postID),
		Method:   MethodPost,
		Payload:  update.Payload(),
	})
}
