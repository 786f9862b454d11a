package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campoverde/agroloja/internal/auth"
	"github.com/campoverde/agroloja/internal/banner"
	"github.com/campoverde/agroloja/internal/cart"
	"github.com/campoverde/agroloja/internal/catalog"
	"github.com/campoverde/agroloja/internal/category"
	"github.com/campoverde/agroloja/internal/checkout"
	"github.com/campoverde/agroloja/internal/config"
	"github.com/campoverde/agroloja/internal/httpx"
	"github.com/campoverde/agroloja/internal/news"
	"github.com/campoverde/agroloja/internal/order"
	"github.com/campoverde/agroloja/internal/partner"
	"github.com/campoverde/agroloja/internal/storage"
)

// deps groups everything the handlers need; it is built once in main and
// injected explicitly, never reached through package globals.
type deps struct {
	cfg        config.Config
	products   catalog.Repository
	categories category.Repository
	banners    banner.Repository
	partners   partner.Repository
	news       news.Repository
	orders     order.Repository
	users      auth.Repository
	carts      cart.Store
	checkout   *checkout.Service
	uploader   *storage.Uploader
}

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("[api] postgres connect: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("[api] postgres ping: %v", err)
	}

	uploader, err := storage.NewUploader(storage.Config{
		Region:    cfg.S3Region,
		Endpoint:  cfg.S3Endpoint,
		Bucket:    cfg.S3Bucket,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
	})
	if err != nil {
		log.Fatalf("[api] s3 session: %v", err)
	}

	orders := order.NewPGRepo(pool)
	users := auth.NewPGRepo(pool)
	d := &deps{
		cfg:        cfg,
		products:   catalog.NewPGRepo(pool),
		categories: category.NewPGRepo(pool),
		banners:    banner.NewPGRepo(pool),
		partners:   partner.NewPGRepo(pool),
		news:       news.NewPGRepo(pool),
		orders:     orders,
		users:      users,
		carts:      cart.NewPGStore(pool),
		checkout:   checkout.NewService(orders, users),
		uploader:   uploader,
	}

	r := newRouter(d)
	log.Printf("[api] listening on %s", cfg.HTTPAddr)
	log.Fatal(r.Run(cfg.HTTPAddr))
}

func newRouter(d *deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger(), httpx.CORS(d.cfg.CORSOrigins))

	r.GET("/healthz", func(c *gin.Context) { c.String(200, "ok") })

	// public storefront and marketing reads
	r.GET("/products", storeProductsHandler(d.products))
	r.GET("/products/:id", productDetailHandler(d.products))
	r.GET("/categories", listCategoriesHandler(d.categories, true))
	r.GET("/subcategories", listSubcategoriesHandler(d.categories, true))
	r.GET("/banners", listBannersHandler(d.banners, true))
	r.GET("/partners", listPartnersHandler(d.partners, true))
	r.GET("/news", publishedNewsHandler(d.news))
	r.GET("/news/:slug", newsDetailHandler(d.news))

	// cart, keyed by X-Cart-Token
	r.GET("/cart", getCartHandler(d.carts))
	r.POST("/cart/items", addCartItemHandler(d.carts, d.products))
	r.PUT("/cart/items/:product_id", updateCartItemHandler(d.carts))
	r.DELETE("/cart/items/:product_id", removeCartItemHandler(d.carts))
	r.DELETE("/cart", clearCartHandler(d.carts))
	r.PUT("/cart/drawer", drawerHandler(d.carts))

	// checkout works for guests; a bearer token links the order and
	// pre-fills the form
	co := r.Group("/checkout", httpx.OptionalAuth(d.cfg.JWTSecret))
	co.GET("/prefill", prefillHandler(d.checkout))
	co.POST("", submitOrderHandler(d))

	// accounts
	r.POST("/auth/register", registerHandler(d.users, d.cfg.JWTSecret))
	r.POST("/auth/login", loginHandler(d.users, d.cfg.JWTSecret))

	me := r.Group("/me", httpx.Auth(d.cfg.JWTSecret))
	me.GET("/profile", getProfileHandler(d.users))
	me.PUT("/profile", updateProfileHandler(d.users))
	me.GET("/orders", myOrdersHandler(d.orders))
	me.GET("/orders/:id", myOrderDetailHandler(d.orders))

	// back-office
	admin := r.Group("/admin", httpx.Auth(d.cfg.JWTSecret), httpx.AdminOnly())
	admin.GET("/dashboard", dashboardHandler(d))
	admin.POST("/uploads", uploadImageHandler(d.uploader))

	admin.GET("/products", adminProductsHandler(d.products))
	admin.GET("/products/search", searchProductsHandler(d.products))
	admin.POST("/products", createProductHandler(d.products))
	admin.PUT("/products/:id", updateProductHandler(d.products))
	admin.DELETE("/products/:id", deleteProductHandler(d.products))

	admin.GET("/categories", listCategoriesHandler(d.categories, false))
	admin.POST("/categories", createCategoryHandler(d.categories))
	admin.PUT("/categories/:id", updateCategoryHandler(d.categories))
	admin.DELETE("/categories/:id", deleteCategoryHandler(d.categories))
	admin.GET("/subcategories", listSubcategoriesHandler(d.categories, false))
	admin.POST("/subcategories", createSubcategoryHandler(d.categories))
	admin.PUT("/subcategories/:id", updateSubcategoryHandler(d.categories))
	admin.DELETE("/subcategories/:id", deleteSubcategoryHandler(d.categories))

	admin.GET("/banners", listBannersHandler(d.banners, false))
	admin.POST("/banners", createBannerHandler(d.banners))
	admin.PUT("/banners/:id", updateBannerHandler(d.banners))
	admin.DELETE("/banners/:id", deleteBannerHandler(d.banners))

	admin.GET("/partners", listPartnersHandler(d.partners, false))
	admin.POST("/partners", createPartnerHandler(d.partners))
	admin.PUT("/partners/:id", updatePartnerHandler(d.partners))
	admin.DELETE("/partners/:id", deletePartnerHandler(d.partners))

	admin.GET("/news", allNewsHandler(d.news))
	admin.POST("/news", createNewsHandler(d.news))
	admin.PUT("/news/:id", updateNewsHandler(d.news))
	admin.DELETE("/news/:id", deleteNewsHandler(d.news))

	admin.GET("/orders", adminOrdersHandler(d.orders))
	admin.GET("/orders/:id", adminOrderDetailHandler(d.orders))
	admin.PUT("/orders/:id/status", updateOrderStatusHandler(d.orders))

	return r
}
