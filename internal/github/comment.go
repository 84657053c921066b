package github

import (
	"context"
	"fmt"

	"github.com/google/go-github/v68/github"
)

// PostComment publishes the markdown report as a comment on an issue or
// pull request. Publishing is best-effort from the gate's point of view;
// the caller decides whether a failure here is fatal.
func (c *Client) PostComment(ctx context.Context, owner, repo string, number int, body string) error {
	if c == nil || c.Client == nil {
		return fmt.Errorf("github client is nil")
	}
	if body == "" {
		return fmt.Errorf("comment body must not be empty")
	}

	comment := &github.IssueComment{Body: github.Ptr(body)}
	_, _, err := c.Client.Issues.CreateComment(ctx, owner, repo, number, comment)
	if err != nil {
		return fmt.Errorf("post comment to %s/%s#%d: %w", owner, repo, number, err)
	}
	return nil
}
