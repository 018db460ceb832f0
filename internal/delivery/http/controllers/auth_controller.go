package controllers

import (
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"meetlink/internal/delivery/http/helpers"
	"meetlink/internal/domain"
	"meetlink/internal/i18n"
	"meetlink/internal/services"
)

const stateCookieName = "meetlink_oauth_state"

type AuthController struct {
	Logger      *slog.Logger
	Provider    domain.IdentityProvider
	Issuer      domain.TokenIssuer
	TokenExpiry time.Duration
}

func NewAuthController(logger *slog.Logger, provider domain.IdentityProvider, issuer domain.TokenIssuer, tokenExpiry time.Duration) *AuthController {
	return &AuthController{
		Logger:      logger,
		Provider:    provider,
		Issuer:      issuer,
		TokenExpiry: tokenExpiry,
	}
}

// loginState rides through the provider round trip. The nonce is mirrored in a
// cookie to bind the callback to the browser that started the flow; the
// redirect is the in-app path to continue to after login.
type loginState struct {
	Nonce    string `json:"n"`
	Redirect string `json:"r,omitempty"`
}

func encodeState(s loginState) string {
	raw, _ := json.Marshal(s)
	return base64.RawURLEncoding.EncodeToString(raw)
}

func decodeState(encoded string) (loginState, bool) {
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return loginState{}, false
	}
	var s loginState
	if err := json.Unmarshal(raw, &s); err != nil || s.Nonce == "" {
		return loginState{}, false
	}
	return s, true
}

// safeRedirect keeps the continuation on this site. Anything that is not an
// absolute in-app path is dropped.
func safeRedirect(redirect string) string {
	if strings.HasPrefix(redirect, "/") && !strings.HasPrefix(redirect, "//") {
		return redirect
	}
	return ""
}

// Login godoc
// @Summary Start the social login flow
// @Description Redirects the browser to the login provider's authorization page. The optional redirect query parameter names the in-app path to continue to after login; it is carried through the provider round trip in the state parameter.
// @Tags auth
// @Param redirect query string false "In-app path to continue to after login"
// @Success 302 {string} string "Redirect to the provider"
// @Router /auth/login [get]
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	state := loginState{
		Nonce:    uuid.NewString(),
		Redirect: safeRedirect(r.URL.Query().Get("redirect")),
	}
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state.Nonce,
		Path:     "/auth",
		MaxAge:   600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, c.Provider.AuthCodeURL(encodeState(state)), http.StatusFound)
}

// LoginResult is the response body for GET /auth/callback.
type LoginResult struct {
	Token        string               `json:"token"`
	Identity     *domain.Identity     `json:"identity"`
	ProfileDraft *domain.ProfileDraft `json:"profile_draft"`
	Redirect     string               `json:"redirect,omitempty"`
}

// CallbackSuccessResponse is the success response envelope for GET /auth/callback (200).
type CallbackSuccessResponse struct {
	Data  *LoginResult      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// Callback godoc
// @Summary Complete the social login flow
// @Description Exchanges the provider's authorization code for a session token. The response includes a profile draft pre-filled from the provider's claims and the in-app path the login flow started from.
// @Tags auth
// @Produce json
// @Param code query string true "Authorization code from the provider"
// @Param state query string true "Opaque state issued by /auth/login"
// @Success 200 {object} controllers.CallbackSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized (state mismatch)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/callback [get]
func (c *AuthController) Callback(w http.ResponseWriter, r *http.Request) {
	lang := i18n.FromRequest(r)

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, errParam)
		return
	}
	code := r.URL.Query().Get("code")
	if code == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing code")
		return
	}
	state, ok := decodeState(r.URL.Query().Get("state"))
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid state")
		return
	}
	cookie, err := r.Cookie(stateCookieName)
	if err != nil || cookie.Value != state.Nonce {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "state mismatch")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    "",
		Path:     "/auth",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	identity, err := c.Provider.Exchange(r.Context(), code)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "code exchange failed", "err", err)
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, i18n.T(lang, "login_required"))
		return
	}

	token, err := c.Issuer.Issue(identity.ID, identity.Email, c.TokenExpiry)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "token issue failed", "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, i18n.T(lang, "server_error"))
		return
	}

	helpers.WriteJSONSuccess(w, http.StatusOK, &LoginResult{
		Token:        token,
		Identity:     identity,
		ProfileDraft: services.DraftFromIdentity(identity),
		Redirect:     state.Redirect,
	})
}
