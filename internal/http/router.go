package http

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/MarceliJankowski/pizza-project/internal/http/handlers"
	"github.com/MarceliJankowski/pizza-project/internal/http/middleware"
	"github.com/MarceliJankowski/pizza-project/internal/http/sessioncookie"
	"github.com/MarceliJankowski/pizza-project/internal/modules/cart"
	"github.com/MarceliJankowski/pizza-project/internal/modules/catalog"
	"github.com/MarceliJankowski/pizza-project/internal/modules/orders"
	"github.com/MarceliJankowski/pizza-project/internal/storage"
)

// Deps carries everything the router wires together. Composition is
// explicit: the caller constructs catalog, store, services and codec and
// hands them over; there is no ambient application state.
type Deps struct {
	Logger   *slog.Logger
	Catalog  *catalog.Catalog
	Store    *cart.Store
	Orders   *orders.Service
	Storage  storage.Storage
	Sessions *sessioncookie.Codec

	// LocalUploadDir, when set, is served under /uploads for the local
	// storage driver.
	LocalUploadDir string
}

func NewRouter(d Deps) *gin.Engine {
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(d.Logger),
		middleware.Recovery(d.Logger),
		middleware.ErrorHandler(d.Logger),
		middleware.CartCount(d.Store, d.Sessions),
	)

	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	if d.LocalUploadDir != "" {
		r.Static("/uploads", d.LocalUploadDir)
	}

	catalogH := handlers.NewCatalogHandler(d.Catalog, d.Storage)
	cartH := handlers.NewCartHandler(d.Catalog, d.Store, d.Sessions)
	ordersH := handlers.NewOrdersHandler(d.Store, d.Sessions, d.Orders)

	api := r.Group("/api")
	{
		api.GET("/products", catalogH.List)
		api.GET("/products/:slug", catalogH.Show)

		api.GET("/cart", cartH.Show)
		api.POST("/cart/items", cartH.Add)
		api.PATCH("/cart/items/:id", cartH.UpdateQuantity)
		api.DELETE("/cart/items/:id", cartH.Remove)

		api.POST("/orders", ordersH.Submit)
	}

	return r
}
