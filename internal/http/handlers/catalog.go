package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MarceliJankowski/pizza-project/internal/http/middleware"
	"github.com/MarceliJankowski/pizza-project/internal/modules/catalog"
	"github.com/MarceliJankowski/pizza-project/internal/modules/pricing"
	"github.com/MarceliJankowski/pizza-project/internal/shared/apperr"
	"github.com/MarceliJankowski/pizza-project/internal/storage"
	"github.com/MarceliJankowski/pizza-project/pkg/view"
)

// CatalogHandler serves the menu. The catalog snapshot is immutable
// after startup, so these endpoints read it without locking.
type CatalogHandler struct {
	Catalog *catalog.Catalog
	Storage storage.Storage
}

func NewCatalogHandler(cat *catalog.Catalog, st storage.Storage) *CatalogHandler {
	return &CatalogHandler{Catalog: cat, Storage: st}
}

// List handles GET /api/products.
func (h *CatalogHandler) List(c *gin.Context) {
	products := h.Catalog.Products()

	out := make([]view.Product, 0, len(products))
	for i := range products {
		p := &products[i]
		out = append(out, view.MapProduct(p, h.Storage, defaultPriceCents(p)))
	}
	c.JSON(http.StatusOK, gin.H{"products": out})
}

// Show handles GET /api/products/:slug.
func (h *CatalogHandler) Show(c *gin.Context) {
	p, ok := h.Catalog.GetBySlug(c.Param("slug"))
	if !ok {
		middleware.Fail(c, apperr.NotFoundErr("Product not found."))
		return
	}
	c.JSON(http.StatusOK, view.MapProduct(p, h.Storage, defaultPriceCents(p)))
}

// defaultPriceCents prices the product under its default selection; for
// a well-formed menu this equals the listed base price.
func defaultPriceCents(p *catalog.Product) int {
	conf := pricing.NewConfigurator(p)
	return conf.UnitPriceCents(pricing.DefaultSelection(p))
}
