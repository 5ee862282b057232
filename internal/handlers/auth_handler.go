package handlers

import (
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/markbates/goth/gothic"

	"github.com/BruksfildServices01/ratemycafe/internal/auth"
	"github.com/BruksfildServices01/ratemycafe/internal/httperr"
	"github.com/BruksfildServices01/ratemycafe/internal/httpresp"
	"github.com/BruksfildServices01/ratemycafe/internal/locale"
)

// returnCookie remembers where to land after the provider round trip.
const returnCookie = "ratemycafe_return"

const magicLinkSent = "Magic link sent to your email!"

// ======================================================
// HANDLER
// ======================================================

type AuthHandler struct {
	auth       *auth.Service
	sessions   *auth.Sessions
	lr         *locale.Router
	providers  []string
	adminEmail string
	secure     bool
}

func NewAuthHandler(
	svc *auth.Service,
	sessions *auth.Sessions,
	lr *locale.Router,
	providers []string,
	adminEmail string,
	secure bool,
) *AuthHandler {
	return &AuthHandler{
		auth:       svc,
		sessions:   sessions,
		lr:         lr,
		providers:  providers,
		adminEmail: adminEmail,
		secure:     secure,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type magicLinkRequest struct {
	Email  string `json:"email" form:"email"`
	Next   string `json:"next" form:"next"`
	Locale string `json:"locale" form:"locale"`
}

// ======================================================
// OAUTH
// ======================================================

// GET /auth/:provider?next=&locale=
func (h *AuthHandler) BeginOAuth(c *gin.Context) {
	provider := c.Param("provider")
	if !slices.Contains(h.providers, provider) {
		httperr.NotFound(c, "provider_not_found", "Unknown sign-in provider.")
		return
	}

	ret := url.Values{}
	ret.Set("next", safeNext(c.Query("next")))
	ret.Set("locale", h.localeOf(c.Query("locale")))
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(returnCookie, ret.Encode(), 600, "/", "", h.secure, true)

	gothic.BeginAuthHandler(c.Writer, gothic.GetContextWithProvider(c.Request, provider))
}

// GET /auth/:provider/callback
func (h *AuthHandler) OAuthCallback(c *gin.Context) {
	provider := c.Param("provider")
	next, l := h.popReturn(c)

	gu, err := gothic.CompleteUserAuth(c.Writer, gothic.GetContextWithProvider(c.Request, provider))
	if err != nil {
		slog.Warn("oauth callback failed", "provider", provider, "error", err)
		h.signInFailed(c, l, "Sign in failed. Please try again.")
		return
	}

	sess, err := h.auth.CompleteOAuth(c.Request.Context(), gu)
	if err != nil {
		slog.Error("oauth user upsert failed", "provider", provider, "error", err)
		h.signInFailed(c, l, httperr.Message(err, "sign in"))
		return
	}

	if err := h.sessions.Start(c.Writer, c.Request, *sess); err != nil {
		slog.Error("session start failed", "error", err)
		h.signInFailed(c, l, "Sign in failed. Please try again.")
		return
	}

	h.land(c, next, l)
}

// ======================================================
// MAGIC LINK
// ======================================================

// POST /auth/magic-link
func (h *AuthHandler) RequestMagicLink(c *gin.Context) {
	var req magicLinkRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.FromError(c, errInvalidBody, "invalid_request", "send magic link")
		return
	}
	l := h.localeOf(req.Locale)

	err := h.auth.RequestMagicLink(c.Request.Context(), req.Email, safeNext(req.Next))
	if wantsJSON(c) {
		if err != nil {
			httperr.FromError(c, err, "magic_link_failed", "send magic link")
			return
		}
		httpresp.OK(c, gin.H{"message": magicLinkSent})
		return
	}

	target := h.lr.Path(l, "/sign-in")
	q := url.Values{}
	if req.Next != "" {
		q.Set("next", safeNext(req.Next))
	}
	if err != nil {
		q.Set("error", httperr.Message(err, "send magic link"))
	} else {
		q.Set("flash", magicLinkSent)
	}
	c.Redirect(http.StatusSeeOther, target+"?"+q.Encode())
}

// GET /auth/magic-link/verify?token=&next=
func (h *AuthHandler) VerifyMagicLink(c *gin.Context) {
	next := safeNext(c.Query("next"))
	l, _ := h.lr.Split(next)

	sess, err := h.auth.VerifyMagicLink(c.Request.Context(), c.Query("token"))
	if err != nil {
		if !auth.IsLinkError(err) {
			slog.Error("magic link verify failed", "error", err)
		}
		h.signInFailed(c, l, httperr.Message(err, "sign in"))
		return
	}

	if err := h.sessions.Start(c.Writer, c.Request, *sess); err != nil {
		slog.Error("session start failed", "error", err)
		h.signInFailed(c, l, "Sign in failed. Please try again.")
		return
	}

	h.land(c, next, l)
}

// ======================================================
// SESSION
// ======================================================

// POST /auth/sign-out
func (h *AuthHandler) SignOut(c *gin.Context) {
	sess := currentSession(c)
	if err := h.sessions.End(c.Writer, c.Request); err != nil {
		slog.Warn("session end failed", "error", err)
	}
	h.auth.SignedOut(sess)

	if wantsJSON(c) {
		httpresp.NoContent(c)
		return
	}
	c.Redirect(http.StatusSeeOther, h.lr.Path(h.localeOf(c.PostForm("locale")), "/"))
}

// GET /api/v1/session
func (h *AuthHandler) Session(c *gin.Context) {
	sess := currentSession(c)
	httpresp.OK(c, gin.H{
		"session":  sess,
		"is_admin": sess.IsAdmin(h.adminEmail),
	})
}

// ======================================================
// HELPERS
// ======================================================

func (h *AuthHandler) localeOf(l string) string {
	if locale.IsSupported(l) {
		return l
	}
	return h.lr.Default()
}

func (h *AuthHandler) popReturn(c *gin.Context) (string, string) {
	raw, err := c.Cookie(returnCookie)
	c.SetCookie(returnCookie, "", -1, "/", "", h.secure, true)
	if err != nil {
		return "", h.lr.Default()
	}
	vals, err := url.ParseQuery(raw)
	if err != nil {
		return "", h.lr.Default()
	}
	return safeNext(vals.Get("next")), h.localeOf(vals.Get("locale"))
}

// land redirects to next, or the home page of locale l.
func (h *AuthHandler) land(c *gin.Context, next, l string) {
	if next == "" || strings.HasSuffix(next, "/sign-in") {
		next = h.lr.Path(l, "/")
	}
	c.Redirect(http.StatusFound, next)
}

func (h *AuthHandler) signInFailed(c *gin.Context, l, message string) {
	c.Redirect(http.StatusFound, h.lr.Path(l, "/sign-in")+"?"+url.Values{"error": {message}}.Encode())
}
