package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MarceliJankowski/pizza-project/internal/http/middleware"
	"github.com/MarceliJankowski/pizza-project/internal/http/sessioncookie"
	"github.com/MarceliJankowski/pizza-project/internal/http/validation"
	"github.com/MarceliJankowski/pizza-project/internal/modules/cart"
	"github.com/MarceliJankowski/pizza-project/internal/modules/catalog"
	"github.com/MarceliJankowski/pizza-project/internal/modules/pricing"
	"github.com/MarceliJankowski/pizza-project/internal/shared/apperr"
	"github.com/MarceliJankowski/pizza-project/pkg/view"
)

// CartHandler handles the session cart: view, add line, change a line's
// quantity, remove a line.
type CartHandler struct {
	Catalog *catalog.Catalog
	Store   *cart.Store
	CK      *sessioncookie.Codec
}

func NewCartHandler(cat *catalog.Catalog, store *cart.Store, ck *sessioncookie.Codec) *CartHandler {
	return &CartHandler{Catalog: cat, Store: store, CK: ck}
}

// Show handles GET /api/cart. Without a live session it answers an
// empty cart instead of creating one.
func (h *CartHandler) Show(c *gin.Context) {
	id, ok := h.CK.CartID(c)
	if !ok || !h.Store.Has(id) {
		c.JSON(http.StatusOK, view.CartPage{Lines: []view.CartLine{}})
		return
	}

	var page view.CartPage
	if err := h.Store.With(id, func(crt *cart.Cart) error {
		page = view.MapCart(crt)
		return nil
	}); err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

type addLineRequest struct {
	ProductID  string              `json:"productId" binding:"required"`
	Selections map[string][]string `json:"selections"`
	Quantity   int                 `json:"quantity" binding:"required,min=1"`
}

// Add handles POST /api/cart/items.
func (h *CartHandler) Add(c *gin.Context) {
	var req addLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Request body is invalid.", validation.FromBindError(err, &req)))
		return
	}

	p, ok := h.Catalog.Get(req.ProductID)
	if !ok {
		middleware.Fail(c, apperr.NotFoundErr("Product not found."))
		return
	}

	// A missing selections field means "whatever the form shows by
	// default", which has to mirror the default-checked options.
	var sel pricing.Selection
	if req.Selections == nil {
		sel = pricing.DefaultSelection(p)
	} else {
		sel = toSelection(req.Selections)
	}

	id := h.ensureCart(c)

	var page view.CartPage
	var lineID string
	err := h.Store.With(id, func(crt *cart.Cart) error {
		line, err := crt.AddLine(p, sel, req.Quantity)
		if err != nil {
			return err
		}
		lineID = line.ID()
		page = view.MapCart(crt)
		return nil
	})
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"lineId": lineID, "cart": page})
}

type updateLineRequest struct {
	// Quantity arrives as the widget input's raw value; the amount
	// widget itself decides whether it parses and fits the bounds.
	Quantity json.Number `json:"quantity" binding:"required"`
}

// UpdateQuantity handles PATCH /api/cart/items/:id. The edit goes
// through the line's own amount widget, so rejected input still leaves
// the cart recomputed (and unchanged).
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var req updateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Request body is invalid.", validation.FromBindError(err, &req)))
		return
	}

	id, ok := h.CK.CartID(c)
	if !ok {
		middleware.Fail(c, apperr.NotFoundErr("Cart not found."))
		return
	}

	var page view.CartPage
	err := h.Store.With(id, func(crt *cart.Cart) error {
		line, ok := crt.Line(c.Param("id"))
		if !ok {
			return apperr.NotFoundErr("Cart line not found.")
		}
		line.SetQuantity(req.Quantity.String())
		page = view.MapCart(crt)
		return nil
	})
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Remove handles DELETE /api/cart/items/:id.
func (h *CartHandler) Remove(c *gin.Context) {
	id, ok := h.CK.CartID(c)
	if !ok {
		middleware.Fail(c, apperr.NotFoundErr("Cart not found."))
		return
	}

	var page view.CartPage
	err := h.Store.With(id, func(crt *cart.Cart) error {
		line, ok := crt.Line(c.Param("id"))
		if !ok {
			return apperr.NotFoundErr("Cart line not found.")
		}
		if err := line.Remove(); err != nil {
			return err
		}
		page = view.MapCart(crt)
		return nil
	})
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// ensureCart returns the session's cart id, creating cart and cookie on
// first use.
func (h *CartHandler) ensureCart(c *gin.Context) string {
	if id, ok := h.CK.CartID(c); ok && h.Store.Has(id) {
		return id
	}
	id := h.Store.Create()
	h.CK.Set(c, id)
	return id
}

// toSelection converts the wire shape (group -> list of option codes,
// the serialized form state) into the engine's set representation.
func toSelection(in map[string][]string) pricing.Selection {
	sel := make(pricing.Selection, len(in))
	for group, opts := range in {
		set := make(map[string]bool, len(opts))
		for _, o := range opts {
			set[o] = true
		}
		sel[group] = set
	}
	return sel
}
