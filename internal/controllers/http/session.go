package http

import (
	"net/http"

	"farmer-market/internal/auth"
	"farmer-market/internal/domain"

	"github.com/gin-gonic/gin"
)

const (
	sessionCookie = "session"
	principalKey  = "principal"
)

var loginRequired = map[domain.Role]string{
	domain.RoleFarmer: "Please login as farmer.",
	domain.RoleBuyer:  "Please login as buyer.",
	domain.RoleAdmin:  "Admin only.",
}

// loadSession attaches the verified principal, if any, to the context.
// A token that no longer resolves is dropped.
func (h *Handler) loadSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(sessionCookie)
		if err == nil && raw != "" {
			p, err := h.auth.ResolveSession(c.Request.Context(), raw)
			if err == nil {
				c.Set(principalKey, p)
			} else {
				h.clearSession(c)
			}
		}
		c.Next()
	}
}

func requireRole(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principalFrom(c)
		if !ok || !p.Has(role) {
			setFlash(c, "warning", loginRequired[role])
			c.Redirect(http.StatusFound, "/"+string(role)+"/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func principalFrom(c *gin.Context) (auth.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return auth.Principal{}, false
	}
	p, ok := v.(auth.Principal)
	return p, ok
}

func (h *Handler) startSession(c *gin.Context, p auth.Principal) error {
	token, err := h.auth.IssueSession(p)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, token, int(h.auth.SessionTTL().Seconds()), "/", "", h.secureCookies, true)
	return nil
}

func (h *Handler) clearSession(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, "", -1, "/", "", h.secureCookies, true)
}

func bodyLimit(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if n > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}
		c.Next()
	}
}
