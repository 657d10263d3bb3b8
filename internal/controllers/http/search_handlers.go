package http

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Suggest(c *gin.Context) {
	var q SearchQuery
	_ = c.ShouldBindQuery(&q)

	out, err := h.search.Suggest(c.Request.Context(), q.Q)
	if err != nil {
		log.Printf("suggest %q: %v", q.Q, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "suggest failed"})
		return
	}
	c.JSON(http.StatusOK, out)
}

// Search renders the buyer product list filtered by q.
func (h *Handler) Search(c *gin.Context) {
	var q SearchQuery
	_ = c.ShouldBindQuery(&q)

	products, err := h.search.Search(c.Request.Context(), q.Q)
	if err != nil {
		flashError(c, err)
	}
	h.render(c, http.StatusOK, "buyer_dashboard.html", gin.H{"Products": products, "Query": q.Q})
}
