package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"

	"meetlink/internal/domain"
)

// ProviderConfig holds the settings for an OAuth2/OIDC login provider.
type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	AuthURL      string
	TokenURL     string
	UserInfoURL  string
	Scopes       []string
}

type oauthProvider struct {
	config      *oauth2.Config
	userInfoURL string
}

// NewOAuthProvider returns an IdentityProvider backed by a standard OAuth2
// authorization-code flow with a userinfo endpoint.
func NewOAuthProvider(cfg ProviderConfig) domain.IdentityProvider {
	return &oauthProvider{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.AuthURL,
				TokenURL: cfg.TokenURL,
			},
		},
		userInfoURL: cfg.UserInfoURL,
	}
}

func (p *oauthProvider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state)
}

// userInfo covers the claim names the supported providers return. Some send
// full_name/avatar_url instead of the standard name/picture.
type userInfo struct {
	Sub       string `json:"sub"`
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	FullName  string `json:"full_name"`
	Picture   string `json:"picture"`
	AvatarURL string `json:"avatar_url"`
	Profile   string `json:"profile"`
}

func (p *oauthProvider) Exchange(ctx context.Context, code string) (*domain.Identity, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build userinfo request: %w", err)
	}
	resp, err := p.config.Client(ctx, token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch userinfo: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo returned status %d", resp.StatusCode)
	}

	var info userInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode userinfo: %w", err)
	}

	id := info.Sub
	if id == "" {
		id = info.ID
	}
	if id == "" {
		return nil, fmt.Errorf("userinfo has no subject")
	}
	name := info.Name
	if name == "" {
		name = info.FullName
	}
	picture := info.Picture
	if picture == "" {
		picture = info.AvatarURL
	}
	return &domain.Identity{
		ID:          id,
		Email:       info.Email,
		Name:        name,
		PictureURL:  picture,
		ProfileLink: info.Profile,
	}, nil
}
