// Package wordpress provides the MCP tools for managing WordPress posts.
//
// Tools:
//   - create_post: create a new post (draft by default)
//   - get_posts: list posts with per_page/page pagination
//   - update_post: update the title, content or status of a post
package wordpress
