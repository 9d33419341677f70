package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MarceliJankowski/pizza-project/internal/http/sessioncookie"
	"github.com/MarceliJankowski/pizza-project/internal/modules/cart"
)

const HeaderCartCount = "X-Cart-Count"

// CartCount exposes the session cart's item count as a response header
// so the storefront can render its cart badge without an extra request.
func CartCount(store *cart.Store, ck *sessioncookie.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		n := 0
		if id, ok := ck.CartID(c); ok {
			_ = store.With(id, func(crt *cart.Cart) error {
				n = crt.Totals().ItemCount
				return nil
			})
		}
		c.Writer.Header().Set(HeaderCartCount, strconv.Itoa(n))

		c.Next()
	}
}
