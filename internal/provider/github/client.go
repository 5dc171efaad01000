package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v57/github"
	"github.com/lucasgio/gam/internal/provider/common"
	"golang.org/x/oauth2"
)

type Client struct {
	client *github.Client
}

func NewClient(token string) *Client {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Source: ts,
			Base:   common.NewLoggingTransport(nil),
		},
	}

	return &Client{client: github.NewClient(httpClient)}
}

// NewClientWithBaseURL points the client at another API root, such as a
// GitHub Enterprise instance or a test server.
func NewClientWithBaseURL(token, baseURL string) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub API URL %q: %w", baseURL, err)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	c := NewClient(token)
	c.client.BaseURL = u
	return c, nil
}

// ListKeys returns every public key of the authenticated user.
func (c *Client) ListKeys(ctx context.Context) ([]*github.Key, error) {
	opts := &github.ListOptions{PerPage: 100}
	var all []*github.Key
	for {
		keys, resp, err := c.client.Users.ListKeys(ctx, "", opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list keys: %w", err)
		}
		all = append(all, keys...)
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return all, nil
}

func (c *Client) CreateKey(ctx context.Context, title, key string) (*github.Key, error) {
	created, _, err := c.client.Users.CreateKey(ctx, &github.Key{
		Title: github.String(title),
		Key:   github.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create key: %s: %w", common.ExtractErrorMessage(err), err)
	}
	return created, nil
}
