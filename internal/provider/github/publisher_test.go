package github

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/lucasgio/gam/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPublicKey = "ssh-ed25519 AAAAC3NzaC1lZDI1NTE5AAAAIFakeKeyMaterialForTests me@corp.com\n"

type fakeGitHub struct {
	mu       sync.Mutex
	keys     []map[string]interface{}
	posts    int
	lastAuth string
}

func (f *fakeGitHub) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/user/keys", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.lastAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")

		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(f.keys)
		case http.MethodPost:
			f.posts++
			var body map[string]interface{}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			created := map[string]interface{}{
				"id":    100 + len(f.keys),
				"title": body["title"],
				"key":   body["key"],
				"url":   "https://api.github.com/user/keys/101",
			}
			f.keys = append(f.keys, created)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(created)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	return mux
}

func newTestPublisher(t *testing.T, fake *fakeGitHub, token string) *Publisher {
	t.Helper()
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	client, err := NewClientWithBaseURL(token, srv.URL)
	require.NoError(t, err)
	return NewPublisherWithClient(token, client)
}

func TestPublishKeyCreatesNewKey(t *testing.T) {
	fake := &fakeGitHub{}
	p := newTestPublisher(t, fake, "ghp_test")

	got, err := p.PublishKey(context.Background(), "gam work", testPublicKey)
	require.NoError(t, err)

	assert.False(t, got.AlreadyPresent)
	assert.Equal(t, int64(100), got.ID)
	assert.Equal(t, "gam work", got.Title)
	assert.Equal(t, "ssh-ed25519 AAAAC3NzaC1lZDI1NTE5AAAAIFakeKeyMaterialForTests me@corp.com", got.Key)
	assert.Equal(t, 1, fake.posts)
	assert.Equal(t, "Bearer ghp_test", fake.lastAuth)
}

func TestPublishKeyDetectsExistingKey(t *testing.T) {
	fake := &fakeGitHub{
		keys: []map[string]interface{}{
			{"id": 7, "title": "laptop", "key": "ssh-ed25519 AAAAC3NzaC1lZDI1NTE5AAAAIFakeKeyMaterialForTests"},
		},
	}
	p := newTestPublisher(t, fake, "ghp_test")

	got, err := p.PublishKey(context.Background(), "gam work", testPublicKey)
	require.NoError(t, err)

	assert.True(t, got.AlreadyPresent)
	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, "laptop", got.Title)
	assert.Equal(t, 0, fake.posts)
}

func TestPublishKeyWithoutToken(t *testing.T) {
	fake := &fakeGitHub{}
	p := newTestPublisher(t, fake, "")

	_, err := p.PublishKey(context.Background(), "gam work", testPublicKey)
	assert.True(t, errors.Is(err, domain.ErrMissingToken))
	assert.Equal(t, 0, fake.posts)
}

func TestPublishKeyAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Bad credentials"}`))
	}))
	defer srv.Close()

	client, err := NewClientWithBaseURL("ghp_bad", srv.URL)
	require.NoError(t, err)
	p := NewPublisherWithClient("ghp_bad", client)

	_, err = p.PublishKey(context.Background(), "gam work", testPublicKey)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bad credentials")
}

func TestKeyMaterial(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "with comment", in: "ssh-ed25519 AAAA me@corp.com\n", want: "ssh-ed25519 AAAA"},
		{name: "without comment", in: "ssh-ed25519 AAAA", want: "ssh-ed25519 AAAA"},
		{name: "comment with spaces", in: "ssh-ed25519 AAAA work laptop", want: "ssh-ed25519 AAAA"},
		{name: "garbage", in: "  junk  ", want: "junk"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, keyMaterial(tt.in))
		})
	}
}
