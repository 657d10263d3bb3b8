package http

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strconv"

	"farmer-market/internal/services"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html static
var assets embed.FS

var templateFuncs = template.FuncMap{
	"t": translate,
	"money": func(v float64) string {
		return fmt.Sprintf("%.2f", v)
	},
	"stars": func(v float64) string {
		return fmt.Sprintf("%.1f", v)
	},
}

func (h *Handler) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Lang"] = langOf(c)
	data["Flashes"] = popFlashes(c)
	if p, ok := principalFrom(c); ok {
		data["User"] = p
	}
	c.HTML(status, name, data)
}

func redirect(c *gin.Context, to string) {
	c.Redirect(http.StatusFound, to)
}

// flashError turns a service error into a user-facing flash. Unknown
// errors are logged and shown generically.
func flashError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		setFlash(c, "danger", "Upload too large.")
	case errors.Is(err, services.ErrInvalidCredentials):
		setFlash(c, "danger", "Invalid credentials")
	case errors.Is(err, services.ErrDuplicateEmail):
		setFlash(c, "danger", "Email already in use.")
	case errors.Is(err, services.ErrUnavailable):
		setFlash(c, "danger", "Item not available.")
	case errors.Is(err, services.ErrEmptyCart):
		setFlash(c, "warning", "Cart is empty or items unavailable.")
	case errors.Is(err, services.ErrInvalidPrice):
		setFlash(c, "danger", "Price must be a positive number.")
	case errors.Is(err, services.ErrInvalidRating):
		setFlash(c, "danger", "Rating must be between 1 and 5.")
	case errors.Is(err, services.ErrInvalidImage):
		setFlash(c, "danger", "Unsupported image. Allowed: png, jpg, jpeg, gif, webp.")
	case errors.Is(err, services.ErrAdminProtected):
		setFlash(c, "danger", "Admin accounts cannot be removed.")
	case errors.Is(err, services.ErrProductNotFound):
		setFlash(c, "danger", "Product not found.")
	case errors.Is(err, services.ErrMissingFields):
		setFlash(c, "danger", "Please fill in the required fields.")
	case errors.Is(err, services.ErrInvalidRole):
		setFlash(c, "danger", "Not allowed for this account.")
	default:
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		setFlash(c, "danger", "Something went wrong")
	}
}

// idParam parses a numeric path segment; a malformed id is a 404.
func idParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return 0, false
	}
	return id, true
}
