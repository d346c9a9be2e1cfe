package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/syneepse/ResumeFix/internal/auth"
	"github.com/syneepse/ResumeFix/internal/logger"
	"github.com/syneepse/ResumeFix/internal/models"
	"github.com/syneepse/ResumeFix/internal/repositories"
	"github.com/syneepse/ResumeFix/internal/resumes"
	"github.com/syneepse/ResumeFix/internal/utils"
)

const stateCookie = "oauth_state"

// Sign-in flows the front end can start from. The flow picks the page errors land on.
const (
	flowLogin    = "login"
	flowRegister = "register"
)

func signInFlow(v string) string {
	if v == flowRegister {
		return flowRegister
	}
	return flowLogin
}

// OAuthProvider is the external identity provider behind the login redirect.
type OAuthProvider interface {
	AuthCodeURL(state string) string
	FetchProfile(ctx context.Context, code string) (*repositories.GoogleProfile, error)
}

// AccountResolver finds the account behind a gate identity.
type AccountResolver interface {
	Account(ctx context.Context, id auth.Identity) (*models.Account, error)
}

type AuthHandler struct {
	provider       OAuthProvider
	accounts       *repositories.AccountRepository
	resolver       AccountResolver
	tokens         *auth.TokenManager
	states         *StateSigner
	frontendOrigin string
	secure         bool
	log            *logger.Logger
}

type AuthHandlerConfig struct {
	Provider       OAuthProvider
	Accounts       *repositories.AccountRepository
	Resolver       AccountResolver
	Tokens         *auth.TokenManager
	States         *StateSigner
	FrontendOrigin string
	Secure         bool
	Logger         *logger.Logger
}

func NewAuthHandler(c AuthHandlerConfig) *AuthHandler {
	return &AuthHandler{
		provider:       c.Provider,
		accounts:       c.Accounts,
		resolver:       c.Resolver,
		tokens:         c.Tokens,
		states:         c.States,
		frontendOrigin: c.FrontendOrigin,
		secure:         c.Secure,
		log:            c.Logger.WithComponent("auth_handler"),
	}
}

// GET /auth/google
// HandleGoogleLogin godoc
// @Summary Start Google sign-in
// @Description Redirects to the Google consent screen with a signed, expiring state.
// @Tags Auth
// @Param redirect query string false "Sign-in flow" Enums(login, register)
// @Success 307
// @Router /auth/google [get]
func (h *AuthHandler) HandleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	flow := signInFlow(r.URL.Query().Get("redirect"))

	state, err := h.states.Generate(map[string]string{"flow": flow})
	if err != nil {
		h.log.Error().Err(err).Msg("failed to generate oauth state")
		utils.ErrorResponse(w, http.StatusInternalServerError, "Failed to generate OAuth state", err.Error())
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/auth/google",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, h.provider.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// GET /auth/google/callback
// HandleGoogleCallback godoc
// @Summary Google sign-in callback
// @Description Exchanges the code, creates or updates the account, sets the session cookie and redirects to the front end with the token.
// @Tags Auth
// @Param state query string true "OAuth state"
// @Param code query string true "Authorization code"
// @Success 307
// @Failure 400 {object} utils.ErrorPayload "Invalid OAuth state"
// @Router /auth/google/callback [get]
func (h *AuthHandler) HandleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	state := r.FormValue("state")
	cookie, err := r.Cookie(stateCookie)
	if err != nil || cookie.Value != state {
		utils.ErrorResponse(w, http.StatusBadRequest, "Invalid OAuth state")
		return
	}
	stateData, err := h.states.Decode(state)
	if err != nil {
		utils.ErrorResponse(w, http.StatusBadRequest, "Invalid OAuth state")
		return
	}
	flow := signInFlow(stateData["flow"])
	http.SetCookie(w, &http.Cookie{Name: stateCookie, Value: "", Path: "/auth/google", MaxAge: -1})

	if reason := r.FormValue("error"); reason != "" {
		h.redirectFrontend(w, r, "/"+flow, url.Values{"error": {reason}})
		return
	}

	profile, err := h.provider.FetchProfile(r.Context(), r.FormValue("code"))
	if err != nil {
		h.log.Error().Err(err).Msg("google sign-in failed")
		utils.ErrorResponse(w, http.StatusBadGateway, "Google sign-in failed", err.Error())
		return
	}

	account, err := h.accounts.UpsertGoogleLogin(r.Context(), *profile)
	if err != nil {
		h.log.Error().Err(err).Str("email", profile.Email).Msg("failed to upsert account")
		utils.ErrorResponse(w, http.StatusInternalServerError, "Failed to save account", err.Error())
		return
	}

	tokenString, expires, err := h.tokens.Issue(account)
	if err != nil {
		utils.ErrorResponse(w, http.StatusInternalServerError, "Failed to create JWT", err.Error())
		return
	}

	h.setSessionCookie(w, tokenString, int(time.Until(expires).Seconds()))
	h.log.Info().Str("account_id", account.ID.String()).Str("flow", flow).Msg("user signed in with google")
	h.redirectFrontend(w, r, "/auth/callback", url.Values{"token": {tokenString}, "flow": {flow}})
}

// GET /auth/me
// Me godoc
// @Summary Current account
// @Tags Auth
// @Produce json
// @Success 200 {object} models.Account
// @Failure 401 {object} utils.ErrorPayload
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())

	account, err := h.resolver.Account(r.Context(), id)
	if err != nil {
		if errors.Is(err, resumes.ErrAccountNotFound) {
			utils.ErrorResponse(w, http.StatusNotFound, "Account not found")
			return
		}
		utils.ErrorResponse(w, http.StatusInternalServerError, "Failed to load account", err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, account)
}

// POST /auth/logout
// Logout godoc
// @Summary Clear the session cookie
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.Payload
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.setSessionCookie(w, "", -1)
	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Logged out successfully",
	})
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, value string, maxAge int) {
	sameSite := http.SameSiteLaxMode
	if h.secure {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     auth.TokenCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   h.secure,
		HttpOnly: true,
		SameSite: sameSite,
	})
}

func (h *AuthHandler) redirectFrontend(w http.ResponseWriter, r *http.Request, path string, query url.Values) {
	http.Redirect(w, r, h.frontendOrigin+path+"?"+query.Encode(), http.StatusTemporaryRedirect)
}
