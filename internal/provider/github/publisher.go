package github

import (
	"context"
	"strings"

	"github.com/google/go-github/v57/github"
	"github.com/lucasgio/gam/internal/domain"
	"github.com/lucasgio/gam/internal/logger"
	"github.com/lucasgio/gam/internal/provider/common"
)

// Publisher uploads account public keys to the token owner's GitHub
// account.
type Publisher struct {
	client *Client
	token  string
}

func NewPublisher(token string) *Publisher {
	return &Publisher{client: NewClient(token), token: token}
}

func NewPublisherWithClient(token string, client *Client) *Publisher {
	return &Publisher{client: client, token: token}
}

func (p *Publisher) PublishKey(ctx context.Context, title, publicKey string) (*domain.PublishedKey, error) {
	if p.token == "" {
		return nil, domain.ErrMissingToken
	}

	material := keyMaterial(publicKey)
	logger.Log("GitHub: Checking existing keys for %s", title)
	keys, err := p.client.ListKeys(ctx)
	if err != nil {
		logger.LogError("GITHUB_LIST_KEYS", title, err)
		return nil, err
	}

	for _, k := range keys {
		if keyMaterial(k.GetKey()) == material {
			logger.Log("GitHub: Key already present as #%d (%s)", k.GetID(), k.GetTitle())
			published := convertKey(k)
			published.AlreadyPresent = true
			return published, nil
		}
	}

	created, err := p.client.CreateKey(ctx, title, strings.TrimSpace(publicKey))
	if err != nil {
		logger.LogError("GITHUB_CREATE_KEY", title, err)
		return nil, err
	}

	logger.Log("GitHub: Uploaded key #%d as %s", created.GetID(), title)
	return convertKey(created), nil
}

func convertKey(k *github.Key) *domain.PublishedKey {
	return &domain.PublishedKey{
		ID:    common.Deref(k.ID),
		Title: common.Deref(k.Title),
		Key:   common.Deref(k.Key),
		URL:   common.Deref(k.URL),
	}
}

// keyMaterial drops the comment from an authorized_keys line; GitHub
// stores keys without it.
func keyMaterial(line string) string {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return strings.TrimSpace(line)
	}
	return fields[0] + " " + fields[1]
}
