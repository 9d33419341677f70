package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MarceliJankowski/pizza-project/internal/http/middleware"
	"github.com/MarceliJankowski/pizza-project/internal/http/sessioncookie"
	"github.com/MarceliJankowski/pizza-project/internal/http/validation"
	"github.com/MarceliJankowski/pizza-project/internal/modules/cart"
	"github.com/MarceliJankowski/pizza-project/internal/modules/orders"
	"github.com/MarceliJankowski/pizza-project/internal/shared/apperr"
)

type OrdersHandler struct {
	Store *cart.Store
	CK    *sessioncookie.Codec
	Svc   *orders.Service
}

func NewOrdersHandler(store *cart.Store, ck *sessioncookie.Codec, svc *orders.Service) *OrdersHandler {
	return &OrdersHandler{Store: store, CK: ck, Svc: svc}
}

// Submit handles POST /api/orders: serialize the session cart, dispatch
// it, then retire cart and cookie. The response acknowledges dispatch,
// not delivery; submission is fire-and-forget.
func (h *OrdersHandler) Submit(c *gin.Context) {
	var contact cart.Contact
	if err := c.ShouldBindJSON(&contact); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Contact info is invalid.", validation.FromBindError(err, &contact)))
		return
	}

	id, ok := h.CK.CartID(c)
	if !ok || !h.Store.Has(id) {
		middleware.Fail(c, apperr.InvalidErr("Cart is empty.", nil))
		return
	}

	var ref string
	err := h.Store.With(id, func(crt *cart.Cart) error {
		payload := crt.OrderPayload(contact)

		var err error
		ref, err = h.Svc.Place(c.Request.Context(), contact, payload)
		return err
	})
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	h.Store.Drop(id)
	h.CK.Clear(c)

	c.JSON(http.StatusAccepted, gin.H{"orderRef": ref})
}
