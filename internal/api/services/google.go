package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/syneepse/ResumeFix/internal/config"
	"github.com/syneepse/ResumeFix/internal/repositories"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

func NewGoogleOAuthConfig(cfg config.GoogleConfig) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

// GoogleProvider runs the authorization code flow against Google.
type GoogleProvider struct {
	oauth *oauth2.Config
}

func NewGoogleProvider(cfg config.GoogleConfig) *GoogleProvider {
	return &GoogleProvider{oauth: NewGoogleOAuthConfig(cfg)}
}

// Configured reports whether client credentials were provided.
func (p *GoogleProvider) Configured() bool {
	return p.oauth.ClientID != "" && p.oauth.ClientSecret != ""
}

func (p *GoogleProvider) AuthCodeURL(state string) string {
	return p.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// FetchProfile exchanges the code and reads the user's profile from the userinfo API.
func (p *GoogleProvider) FetchProfile(ctx context.Context, code string) (*repositories.GoogleProfile, error) {
	token, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange failed: %w", err)
	}

	svc, err := oauth2api.NewService(ctx, option.WithHTTPClient(p.oauth.Client(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("failed to create userinfo client: %w", err)
	}

	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}
	if info.Id == "" || info.Email == "" {
		return nil, errors.New("google profile is missing id or email")
	}

	return &repositories.GoogleProfile{
		Subject:   info.Id,
		Email:     info.Email,
		Name:      info.Name,
		AvatarURL: info.Picture,
	}, nil
}
