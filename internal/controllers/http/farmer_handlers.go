package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"farmer-market/internal/domain"
	"farmer-market/internal/services"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

func (h *Handler) FarmerDashboard(c *gin.Context) {
	p, _ := principalFrom(c)
	ctx := c.Request.Context()

	var (
		products []domain.Product
		notes    []domain.Notification
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		products, err = h.catalog.ListOwn(gctx, p.UserID)
		return err
	})
	g.Go(func() (err error) {
		notes, err = h.notes.ListRecent(gctx, p.UserID, 0)
		return err
	})
	if err := g.Wait(); err != nil {
		flashError(c, err)
	}

	h.render(c, http.StatusOK, "farmer_dashboard.html", gin.H{"Products": products, "Notes": notes})
}

func (h *Handler) AddProductPage(c *gin.Context) {
	h.render(c, http.StatusOK, "add_product.html", nil)
}

func (h *Handler) AddProduct(c *gin.Context) {
	p, _ := principalFrom(c)

	var form ProductForm
	if err := c.ShouldBind(&form); err != nil {
		flashError(c, err)
		h.render(c, http.StatusOK, "add_product.html", gin.H{"Form": form})
		return
	}

	in := services.ProductInput{
		Name:        form.Name,
		Description: form.Description,
		Phone:       form.Phone,
		CameraImage: form.CameraImage,
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(form.Price), 64)
	if err != nil {
		flashError(c, services.ErrInvalidPrice)
		h.render(c, http.StatusOK, "add_product.html", gin.H{"Form": form})
		return
	}
	in.Price = price

	fh, err := c.FormFile("image")
	switch {
	case err == nil:
		in.Image = fh
	case !errors.Is(err, http.ErrMissingFile):
		flashError(c, err)
		h.render(c, http.StatusOK, "add_product.html", gin.H{"Form": form})
		return
	}

	if _, err := h.catalog.Add(c.Request.Context(), p, in); err != nil {
		flashError(c, err)
		h.render(c, http.StatusOK, "add_product.html", gin.H{"Form": form})
		return
	}

	setFlash(c, "success", "Product added!")
	redirect(c, "/farmer/dashboard")
}

func (h *Handler) DeleteOwnProduct(c *gin.Context) {
	pid, ok := idParam(c, "pid")
	if !ok {
		return
	}
	p, _ := principalFrom(c)

	if err := h.catalog.Delete(c.Request.Context(), p.UserID, pid); err != nil {
		flashError(c, err)
	} else {
		setFlash(c, "info", "Product deleted.")
	}
	redirect(c, "/farmer/dashboard")
}
