package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const langCookie = "lang"

var translations = map[string]map[string]string{
	"en": {
		"title":  "Centralized Farmer System",
		"farmer": "Farmer",
		"buyer":  "Buyer",
		"admin":  "Admin",
		"logout": "Logout",
	},
	"kn": {
		"title":  "ಕೇಂದ್ರೀಕೃತ ರೈತ ವ್ಯವಸ್ಥೆ",
		"farmer": "ರೈತ",
		"buyer":  "ಖರೀದಿದಾರ",
		"admin":  "ನಿರ್ವಾಹಕ",
		"logout": "ಲಾಗ್ ಔಟ್",
	},
}

// translate falls back to English, then to the key itself.
func translate(lang, key string) string {
	dict, ok := translations[lang]
	if !ok {
		dict = translations["en"]
	}
	if v, ok := dict[key]; ok {
		return v
	}
	return key
}

func langOf(c *gin.Context) string {
	if v, err := c.Cookie(langCookie); err == nil && v == "kn" {
		return "kn"
	}
	return "en"
}

func (h *Handler) SetLang(c *gin.Context) {
	lang := "en"
	if c.Param("code") == "kn" {
		lang = "kn"
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(langCookie, lang, 365*24*3600, "/", "", h.secureCookies, true)
	c.Redirect(http.StatusFound, backTo(c, "/"))
}

// backTo returns the Referer when it points at this host, else fallback.
func backTo(c *gin.Context, fallback string) string {
	ref := c.Request.Referer()
	if ref == "" {
		return fallback
	}
	u, err := c.Request.URL.Parse(ref)
	if err != nil || (u.Host != "" && u.Host != c.Request.Host) {
		return fallback
	}
	return u.RequestURI()
}
