package http

import (
	"html/template"
	"io/fs"
	"net/http"

	"farmer-market/internal/domain"
	"farmer-market/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	auth    *services.AuthService
	catalog *services.CatalogService
	search  *services.SearchService
	cart    *services.CartService
	reviews *services.ReviewService
	notes   *services.NotificationService
	admin   *services.AdminService

	uploadDir     string
	maxBody       int64
	secureCookies bool
}

type Options struct {
	UploadDir     string
	MaxBodyBytes  int64
	SecureCookies bool
}

func NewHandler(
	authSvc *services.AuthService,
	catalog *services.CatalogService,
	search *services.SearchService,
	cart *services.CartService,
	reviews *services.ReviewService,
	notes *services.NotificationService,
	admin *services.AdminService,
	opts Options,
) *Handler {
	return &Handler{
		auth:          authSvc,
		catalog:       catalog,
		search:        search,
		cart:          cart,
		reviews:       reviews,
		notes:         notes,
		admin:         admin,
		uploadDir:     opts.UploadDir,
		maxBody:       opts.MaxBodyBytes,
		secureCookies: opts.SecureCookies,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) error {
	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(assets, "templates/*.html")
	if err != nil {
		return err
	}
	r.SetHTMLTemplate(tmpl)

	static, err := fs.Sub(assets, "static")
	if err != nil {
		return err
	}
	r.StaticFS("/static", http.FS(static))
	r.Static("/uploads", h.uploadDir)

	r.Use(bodyLimit(h.maxBody), h.loadSession())

	r.GET("/", h.Index)
	r.GET("/healthz", h.Health)
	r.GET("/set-lang/:code", h.SetLang)
	r.GET("/search", h.Search)

	api := r.Group("/api")
	api.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
	}))
	api.GET("/suggest", h.Suggest)

	farmer := r.Group("/farmer")
	farmer.GET("/register", h.registerPage(domain.RoleFarmer))
	farmer.POST("/register", h.Register(domain.RoleFarmer))
	farmer.GET("/login", h.loginPage(domain.RoleFarmer))
	farmer.POST("/login", h.Login(domain.RoleFarmer))
	farmer.GET("/logout", h.Logout)
	{
		authed := farmer.Group("", requireRole(domain.RoleFarmer))
		authed.GET("/dashboard", h.FarmerDashboard)
		authed.GET("/add", h.AddProductPage)
		authed.POST("/add", h.AddProduct)
		authed.GET("/delete/:pid", h.DeleteOwnProduct)
		authed.POST("/delete/:pid", h.DeleteOwnProduct)
	}

	buyer := r.Group("/buyer")
	buyer.GET("/register", h.registerPage(domain.RoleBuyer))
	buyer.POST("/register", h.Register(domain.RoleBuyer))
	buyer.GET("/login", h.loginPage(domain.RoleBuyer))
	buyer.POST("/login", h.Login(domain.RoleBuyer))
	buyer.GET("/logout", h.Logout)
	{
		authed := buyer.Group("", requireRole(domain.RoleBuyer))
		authed.GET("/dashboard", h.BuyerDashboard)
		authed.GET("/add_to_cart/:pid", h.AddToCart)
		authed.GET("/cart", h.Cart)
		authed.GET("/remove_from_cart/:cart_id", h.RemoveFromCart)
		authed.POST("/checkout", h.Checkout)
		authed.POST("/review/:pid", h.Review)
	}

	admin := r.Group("/admin")
	admin.GET("/login", h.AdminLoginPage)
	admin.POST("/login", h.AdminLogin)
	admin.GET("/logout", h.Logout)
	{
		authed := admin.Group("", requireRole(domain.RoleAdmin))
		authed.GET("/dashboard", h.AdminDashboard)
		authed.GET("/delete_user/:uid", h.AdminDeleteUser)
		authed.POST("/delete_user/:uid", h.AdminDeleteUser)
		authed.GET("/delete_product/:pid", h.AdminDeleteProduct)
		authed.POST("/delete_product/:pid", h.AdminDeleteProduct)
	}

	return nil
}

func (h *Handler) Index(c *gin.Context) {
	h.render(c, http.StatusOK, "index.html", nil)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
