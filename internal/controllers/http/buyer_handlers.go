package http

import (
	"net/http"
	"strconv"
	"strings"

	"farmer-market/internal/domain"
	"farmer-market/internal/services"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

func (h *Handler) BuyerDashboard(c *gin.Context) {
	p, _ := principalFrom(c)
	ctx := c.Request.Context()

	var (
		products []domain.ProductListing
		notes    []domain.Notification
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		products, err = h.catalog.ListAvailable(gctx)
		return err
	})
	g.Go(func() (err error) {
		notes, err = h.notes.ListRecent(gctx, p.UserID, 0)
		return err
	})
	if err := g.Wait(); err != nil {
		flashError(c, err)
	}

	h.render(c, http.StatusOK, "buyer_dashboard.html", gin.H{"Products": products, "Notes": notes})
}

func (h *Handler) AddToCart(c *gin.Context) {
	pid, ok := idParam(c, "pid")
	if !ok {
		return
	}
	p, _ := principalFrom(c)

	if err := h.cart.Add(c.Request.Context(), p.UserID, pid); err != nil {
		flashError(c, err)
		redirect(c, "/buyer/dashboard")
		return
	}
	setFlash(c, "success", "Added to cart.")
	redirect(c, "/buyer/cart")
}

func (h *Handler) Cart(c *gin.Context) {
	p, _ := principalFrom(c)
	items, err := h.cart.List(c.Request.Context(), p.UserID)
	if err != nil {
		flashError(c, err)
	}
	h.render(c, http.StatusOK, "cart.html", gin.H{"Items": items})
}

func (h *Handler) RemoveFromCart(c *gin.Context) {
	cartID, ok := idParam(c, "cart_id")
	if !ok {
		return
	}
	p, _ := principalFrom(c)

	if err := h.cart.Remove(c.Request.Context(), p.UserID, cartID); err != nil {
		flashError(c, err)
	} else {
		setFlash(c, "info", "Removed from cart.")
	}
	redirect(c, "/buyer/cart")
}

func (h *Handler) Checkout(c *gin.Context) {
	p, _ := principalFrom(c)

	if _, err := h.cart.Checkout(c.Request.Context(), p.UserID); err != nil {
		flashError(c, err)
		redirect(c, "/buyer/cart")
		return
	}
	setFlash(c, "success", "Order placed! Seller and you have been notified. Items removed from listing.")
	redirect(c, "/buyer/dashboard")
}

func (h *Handler) Review(c *gin.Context) {
	pid, ok := idParam(c, "pid")
	if !ok {
		return
	}
	p, _ := principalFrom(c)

	var form ReviewForm
	_ = c.ShouldBind(&form)

	rating, err := strconv.Atoi(strings.TrimSpace(form.Rating))
	if err != nil {
		err = services.ErrInvalidRating
	} else {
		_, err = h.reviews.Submit(c.Request.Context(), p.UserID, pid, rating, form.Text)
	}

	if err != nil {
		flashError(c, err)
	} else {
		setFlash(c, "success", "Thanks for your review!")
	}
	redirect(c, backTo(c, "/buyer/dashboard"))
}
