package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T, userInfoJSON string) (*httptest.Server, ProviderConfig) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"at-1","token_type":"bearer"}`))
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(userInfoJSON))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server, ProviderConfig{
		ClientID:     "client-1",
		ClientSecret: "secret",
		RedirectURL:  "https://meetlink.example/auth/callback",
		AuthURL:      server.URL + "/authorize",
		TokenURL:     server.URL + "/token",
		UserInfoURL:  server.URL + "/userinfo",
		Scopes:       []string{"openid", "profile", "email"},
	}
}

func TestOAuthProvider_AuthCodeURL(t *testing.T) {
	_, cfg := newTestProvider(t, `{}`)
	provider := NewOAuthProvider(cfg)

	u := provider.AuthCodeURL("state-123")
	assert.Contains(t, u, "/authorize")
	assert.Contains(t, u, "state=state-123")
	assert.Contains(t, u, "client_id=client-1")
}

func TestOAuthProvider_Exchange(t *testing.T) {
	_, cfg := newTestProvider(t, `{
		"sub": "auth-1",
		"email": "minji@example.com",
		"name": "Kim Minji",
		"picture": "https://cdn.example.com/minji.jpg",
		"profile": "https://www.linkedin.com/in/kim-minji"
	}`)
	provider := NewOAuthProvider(cfg)

	identity, err := provider.Exchange(context.Background(), "code-1")
	require.NoError(t, err)
	assert.Equal(t, "auth-1", identity.ID)
	assert.Equal(t, "minji@example.com", identity.Email)
	assert.Equal(t, "Kim Minji", identity.Name)
	assert.Equal(t, "https://cdn.example.com/minji.jpg", identity.PictureURL)
	assert.Equal(t, "https://www.linkedin.com/in/kim-minji", identity.ProfileLink)
}

func TestOAuthProvider_Exchange_AlternateClaims(t *testing.T) {
	_, cfg := newTestProvider(t, `{
		"id": "auth-2",
		"full_name": "John Doe",
		"avatar_url": "https://cdn.example.com/john.jpg"
	}`)
	provider := NewOAuthProvider(cfg)

	identity, err := provider.Exchange(context.Background(), "code-1")
	require.NoError(t, err)
	assert.Equal(t, "auth-2", identity.ID)
	assert.Equal(t, "John Doe", identity.Name)
	assert.Equal(t, "https://cdn.example.com/john.jpg", identity.PictureURL)
}

func TestOAuthProvider_Exchange_NoSubject(t *testing.T) {
	_, cfg := newTestProvider(t, `{"email": "nobody@example.com"}`)
	provider := NewOAuthProvider(cfg)

	_, err := provider.Exchange(context.Background(), "code-1")
	require.Error(t, err)
}
