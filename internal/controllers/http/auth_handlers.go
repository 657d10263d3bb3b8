package http

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"farmer-market/internal/auth"
	"farmer-market/internal/domain"
	"farmer-market/internal/services"

	"github.com/gin-gonic/gin"
)

// accountPage serves both login and registration for farmers and buyers.
const accountPage = "account.html"

func (h *Handler) registerPage(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.render(c, http.StatusOK, accountPage, gin.H{"Mode": "register", "Role": role})
	}
}

func (h *Handler) loginPage(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.render(c, http.StatusOK, accountPage, gin.H{"Mode": "login", "Role": role})
	}
}

func (h *Handler) Register(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form RegisterForm
		if err := c.ShouldBind(&form); err != nil {
			flashError(c, err)
			h.render(c, http.StatusBadRequest, accountPage, gin.H{"Mode": "register", "Role": role})
			return
		}

		_, err := h.auth.Register(c.Request.Context(), role, form.Name, form.Email, form.Phone, form.Password)
		if err != nil {
			flashError(c, err)
			h.render(c, http.StatusOK, accountPage, gin.H{"Mode": "register", "Role": role})
			return
		}

		label := strings.ToUpper(string(role[:1])) + string(role[1:])
		setFlash(c, "success", label+" registered! Please login.")
		redirect(c, "/"+string(role)+"/login")
	}
}

func (h *Handler) Login(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form LoginForm
		_ = c.ShouldBind(&form)

		p, err := h.auth.Login(c.Request.Context(), form.EmailOrPhone, form.Password, role)
		if err != nil {
			flashError(c, err)
			h.render(c, http.StatusOK, accountPage, gin.H{"Mode": "login", "Role": role})
			return
		}
		if !h.signIn(c, p) {
			return
		}
		redirect(c, "/"+string(role)+"/dashboard")
	}
}

func (h *Handler) AdminLoginPage(c *gin.Context) {
	h.render(c, http.StatusOK, "admin_login.html", nil)
}

func (h *Handler) AdminLogin(c *gin.Context) {
	var form AdminLoginForm
	_ = c.ShouldBind(&form)

	p, err := h.auth.Login(c.Request.Context(), form.Email, form.Password, domain.RoleAdmin)
	if errors.Is(err, services.ErrInvalidCredentials) {
		setFlash(c, "danger", "Invalid admin credentials")
		h.render(c, http.StatusOK, "admin_login.html", nil)
		return
	}
	if err != nil {
		flashError(c, err)
		h.render(c, http.StatusOK, "admin_login.html", nil)
		return
	}
	if !h.signIn(c, p) {
		return
	}
	if p.Provider == auth.ProviderDeveloper {
		setFlash(c, "success", "Developer admin logged in successfully!")
	}
	redirect(c, "/admin/dashboard")
}

func (h *Handler) signIn(c *gin.Context, p auth.Principal) bool {
	if err := h.startSession(c, p); err != nil {
		log.Printf("issue session for %s %d: %v", p.Role, p.UserID, err)
		setFlash(c, "danger", "Something went wrong")
		redirect(c, "/")
		return false
	}
	return true
}

func (h *Handler) Logout(c *gin.Context) {
	h.clearSession(c)
	redirect(c, "/")
}
