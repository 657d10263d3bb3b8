package http

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	flashCookie  = "flash"
	flashPending = "flash.pending"
)

type flash struct {
	Category string `json:"c"`
	Message  string `json:"m"`
}

// setFlash queues a one-shot message. It survives a redirect in a cookie
// and is also visible to a page rendered in the same request.
func setFlash(c *gin.Context, category, message string) {
	queued := append(pendingFlashes(c), flash{Category: category, Message: message})
	c.Set(flashPending, queued)

	b, err := json.Marshal(queued)
	if err != nil {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, base64.RawURLEncoding.EncodeToString(b), 0, "/", "", false, true)
}

func pendingFlashes(c *gin.Context) []flash {
	if v, ok := c.Get(flashPending); ok {
		if fs, ok := v.([]flash); ok {
			return fs
		}
	}
	return nil
}

// popFlashes returns queued messages and clears the cookie.
func popFlashes(c *gin.Context) []flash {
	out := pendingFlashes(c)
	if out == nil {
		if raw, err := c.Cookie(flashCookie); err == nil && raw != "" {
			if b, err := base64.RawURLEncoding.DecodeString(raw); err == nil {
				_ = json.Unmarshal(b, &out)
			}
		}
	}
	c.Set(flashPending, []flash(nil))
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	return out
}
