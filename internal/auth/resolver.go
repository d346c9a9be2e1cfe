package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/syneepse/ResumeFix/internal/config"
)

// TokenCookie is where browser sessions keep the bearer token.
const TokenCookie = "token"

// Resolver establishes who is calling. Each deployment runs exactly one implementation.
type Resolver interface {
	Resolve(r *http.Request) (Identity, error)
}

// HeaderResolver trusts an identity header set by the front-end proxy.
type HeaderResolver struct {
	Header string
}

func (h HeaderResolver) Resolve(r *http.Request) (Identity, error) {
	value := strings.TrimSpace(r.Header.Get(h.Header))
	if value == "" {
		return Identity{}, ErrMissingCredential
	}
	return Identity{Value: value}, nil
}

// BearerResolver reads a session token from the Authorization header. The token cookie
// is only honoured on safe methods, so a cross-site form post never carries a session.
type BearerResolver struct {
	Tokens *TokenManager
}

func (b BearerResolver) Resolve(r *http.Request) (Identity, error) {
	raw := bearerToken(r)
	if raw == "" {
		return Identity{}, ErrMissingCredential
	}

	claims, err := b.Tokens.Verify(raw)
	if err != nil {
		return Identity{}, err
	}

	accountID, err := uuid.Parse(claims.AccountID)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}
	return Identity{
		AccountID: accountID,
		Value:     claims.Email,
		Email:     claims.Email,
		Name:      claims.Name,
	}, nil
}

func bearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if !safeMethod(r.Method) {
		return ""
	}
	if c, err := r.Cookie(TokenCookie); err == nil {
		return c.Value
	}
	return ""
}

func safeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// NewResolver picks the resolver for the configured mode.
func NewResolver(cfg config.AuthConfig, tokens *TokenManager) (Resolver, error) {
	switch cfg.Mode {
	case config.AuthModeHeader:
		return HeaderResolver{Header: cfg.Header}, nil
	case config.AuthModeBearer:
		return BearerResolver{Tokens: tokens}, nil
	default:
		return nil, fmt.Errorf("unknown auth mode %q", cfg.Mode)
	}
}
