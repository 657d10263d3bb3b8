package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) AdminDashboard(c *gin.Context) {
	o, err := h.admin.Overview(c.Request.Context())
	if err != nil {
		flashError(c, err)
		h.render(c, http.StatusOK, "admin_dashboard.html", nil)
		return
	}
	h.render(c, http.StatusOK, "admin_dashboard.html", gin.H{"Users": o.Users, "Products": o.Products})
}

func (h *Handler) AdminDeleteUser(c *gin.Context) {
	uid, ok := idParam(c, "uid")
	if !ok {
		return
	}
	if err := h.admin.DeleteUser(c.Request.Context(), uid); err != nil {
		flashError(c, err)
	} else {
		setFlash(c, "info", "User removed.")
	}
	redirect(c, "/admin/dashboard")
}

func (h *Handler) AdminDeleteProduct(c *gin.Context) {
	pid, ok := idParam(c, "pid")
	if !ok {
		return
	}
	if err := h.admin.DeleteProduct(c.Request.Context(), pid); err != nil {
		flashError(c, err)
	} else {
		setFlash(c, "info", "Product removed.")
	}
	redirect(c, "/admin/dashboard")
}
