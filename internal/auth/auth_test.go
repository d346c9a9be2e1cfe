package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syneepse/ResumeFix/internal/config"
	"github.com/syneepse/ResumeFix/internal/models"
)

func testAccount() *models.Account {
	name := "Jane Smith"
	return &models.Account{ID: uuid.New(), Email: "jane@example.com", Name: &name}
}

func newTokens(ttl time.Duration) *TokenManager {
	return NewTokenManager(config.JWTConfig{Secret: "test-secret", TTL: ttl, Issuer: "resumefix"})
}

func TestTokenManager_IssueAndVerify(t *testing.T) {
	tokens := newTokens(2 * time.Hour)
	account := testAccount()

	signed, expires, err := tokens.Issue(account)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), expires, 5*time.Second)

	claims, err := tokens.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, account.ID.String(), claims.AccountID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, "Jane Smith", claims.Name)
}

func TestTokenManager_Expired(t *testing.T) {
	tokens := newTokens(-time.Minute)

	signed, _, err := tokens.Issue(testAccount())
	require.NoError(t, err)

	_, err = tokens.Verify(signed)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenManager_RejectsForeignTokens(t *testing.T) {
	tokens := newTokens(time.Hour)

	other := NewTokenManager(config.JWTConfig{Secret: "other-secret", TTL: time.Hour, Issuer: "resumefix"})
	signed, _, err := other.Issue(testAccount())
	require.NoError(t, err)
	_, err = tokens.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"userId": uuid.NewString()})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = tokens.Verify(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tokens.Verify("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestHeaderResolver(t *testing.T) {
	resolver := HeaderResolver{Header: "X-User-Id"}

	req := httptest.NewRequest(http.MethodGet, "/resumes", nil)
	_, err := resolver.Resolve(req)
	assert.ErrorIs(t, err, ErrMissingCredential)

	req.Header.Set("X-User-Id", "  jane@example.com ")
	id, err := resolver.Resolve(req)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", id.Value)
	assert.False(t, id.HasAccount())
}

func TestBearerResolver(t *testing.T) {
	tokens := newTokens(time.Hour)
	resolver := BearerResolver{Tokens: tokens}
	account := testAccount()
	signed, _, err := tokens.Issue(account)
	require.NoError(t, err)

	t.Run("authorization header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/resumes", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		id, err := resolver.Resolve(req)
		require.NoError(t, err)
		assert.Equal(t, account.ID, id.AccountID)
		assert.True(t, id.HasAccount())
	})

	t.Run("cookie fallback", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/resumes", nil)
		req.AddCookie(&http.Cookie{Name: TokenCookie, Value: signed})
		id, err := resolver.Resolve(req)
		require.NoError(t, err)
		assert.Equal(t, account.ID, id.AccountID)
	})

	t.Run("cookie ignored on state-changing requests", func(t *testing.T) {
		for _, method := range []string{http.MethodPost, http.MethodDelete} {
			req := httptest.NewRequest(method, "/resumes/upload", nil)
			req.AddCookie(&http.Cookie{Name: TokenCookie, Value: signed})
			_, err := resolver.Resolve(req)
			assert.ErrorIs(t, err, ErrMissingCredential, method)
		}
	})

	t.Run("missing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/resumes", nil)
		_, err := resolver.Resolve(req)
		assert.ErrorIs(t, err, ErrMissingCredential)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/resumes", nil)
		req.Header.Set("Authorization", "Basic Zm9vOmJhcg==")
		_, err := resolver.Resolve(req)
		assert.ErrorIs(t, err, ErrMissingCredential)
	})

	t.Run("tampered", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/resumes", nil)
		req.Header.Set("Authorization", "Bearer "+signed+"x")
		_, err := resolver.Resolve(req)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestNewResolver(t *testing.T) {
	r, err := NewResolver(config.AuthConfig{Mode: config.AuthModeHeader, Header: "X-User-Id"}, nil)
	require.NoError(t, err)
	assert.IsType(t, HeaderResolver{}, r)

	r, err = NewResolver(config.AuthConfig{Mode: config.AuthModeBearer}, newTokens(time.Hour))
	require.NoError(t, err)
	assert.IsType(t, BearerResolver{}, r)

	_, err = NewResolver(config.AuthConfig{Mode: "both"}, nil)
	assert.Error(t, err)
}

func TestDeriveKey(t *testing.T) {
	a, err := DeriveKey("secret", "oauth-state")
	require.NoError(t, err)
	b, err := DeriveKey("secret", "oauth-state")
	require.NoError(t, err)
	c, err := DeriveKey("secret", "other")
	require.NoError(t, err)

	assert.Len(t, a, 32)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
