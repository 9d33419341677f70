package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarceliJankowski/pizza-project/pkg/view"
)

func TestCartShowWithoutSession(t *testing.T) {
	env := newTestEnv(t)

	var page view.CartPage
	w := env.do(t, http.MethodGet, "/api/cart", nil, nil, &page)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, page.Lines)
	assert.Zero(t, page.TotalCents)
	// No cart gets created just for looking.
	assert.Empty(t, w.Result().Cookies())
}

func TestCartAddWithDefaultSelection(t *testing.T) {
	env := newTestEnv(t)

	var resp struct {
		LineID string        `json:"lineId"`
		Cart   view.CartPage `json:"cart"`
	}
	w := env.do(t, http.MethodPost, "/api/cart/items",
		gin.H{"productId": "p-marg", "quantity": 2}, nil, &resp)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.Len(t, resp.Cart.Lines, 1)

	line := resp.Cart.Lines[0]
	// Omitted selections fall back to the default-checked options, so
	// the unit price equals the listed base price.
	assert.Equal(t, 3000, line.UnitPriceCents)
	assert.Equal(t, 2, line.Quantity)
	assert.Equal(t, 6000, line.LineTotalCents)
	assert.Equal(t, 6000, resp.Cart.SubtotalCents)
	assert.Equal(t, 8000, resp.Cart.TotalCents)

	// First add issues the session cookie.
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "pp_session", cookies[0].Name)
}

func TestCartAddWithExplicitSelections(t *testing.T) {
	env := newTestEnv(t)

	var resp struct {
		Cart view.CartPage `json:"cart"`
	}
	w := env.do(t, http.MethodPost, "/api/cart/items", gin.H{
		"productId":  "p-marg",
		"quantity":   1,
		"selections": gin.H{"toppings": []string{"olives", "cheese"}},
	}, nil, &resp)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.Len(t, resp.Cart.Lines, 1)
	assert.Equal(t, 3300, resp.Cart.Lines[0].UnitPriceCents)
	require.Len(t, resp.Cart.Lines[0].Params, 1)
	assert.Equal(t, []string{"Olives", "Extra cheese"}, resp.Cart.Lines[0].Params[0].Options)
}

func TestCartAddErrors(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		name   string
		body   gin.H
		status int
	}{
		{"unknown product", gin.H{"productId": "p-nope", "quantity": 1}, http.StatusNotFound},
		{"zero quantity", gin.H{"productId": "p-marg", "quantity": 0}, http.StatusBadRequest},
		{"quantity over max", gin.H{"productId": "p-marg", "quantity": 10}, http.StatusBadRequest},
		{"missing product id", gin.H{"quantity": 1}, http.StatusBadRequest},
		{"unknown option", gin.H{
			"productId":  "p-marg",
			"quantity":   1,
			"selections": gin.H{"toppings": []string{"pineapple"}},
		}, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var body struct {
				Error string `json:"error"`
			}
			w := env.do(t, http.MethodPost, "/api/cart/items", tc.body, nil, &body)
			assert.Equal(t, tc.status, w.Code)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestCartSessionRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	cookies, _ := env.addToCart(t, "p-marg", 2)

	var page view.CartPage
	w := env.do(t, http.MethodGet, "/api/cart", nil, cookies, &page)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, page.Lines, 1)
	assert.Equal(t, 2, page.ItemCount)

	// The badge header reflects the session cart.
	assert.Equal(t, "2", w.Header().Get("X-Cart-Count"))

	// A second add with the same cookie lands in the same cart.
	var resp struct {
		Cart view.CartPage `json:"cart"`
	}
	w = env.do(t, http.MethodPost, "/api/cart/items",
		gin.H{"productId": "p-bread", "quantity": 1}, cookies, &resp)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, resp.Cart.Lines, 2)
	assert.Equal(t, 3, resp.Cart.ItemCount)
}

func TestCartUpdateQuantity(t *testing.T) {
	env := newTestEnv(t)
	cookies, lineID := env.addToCart(t, "p-marg", 1)

	var page view.CartPage
	w := env.do(t, http.MethodPatch, "/api/cart/items/"+lineID,
		gin.H{"quantity": 4}, cookies, &page)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 4, page.Lines[0].Quantity)
	assert.Equal(t, 12000, page.SubtotalCents)

	// The widget also takes its value as a string.
	w = env.do(t, http.MethodPatch, "/api/cart/items/"+lineID,
		gin.H{"quantity": "2"}, cookies, &page)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, page.Lines[0].Quantity)

	// A rejected value answers 200 with the cart unchanged.
	w = env.do(t, http.MethodPatch, "/api/cart/items/"+lineID,
		gin.H{"quantity": "42"}, cookies, &page)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, page.Lines[0].Quantity)
	assert.Equal(t, 6000, page.SubtotalCents)
}

func TestCartUpdateQuantityErrors(t *testing.T) {
	env := newTestEnv(t)
	cookies, lineID := env.addToCart(t, "p-marg", 1)

	t.Run("no session", func(t *testing.T) {
		w := env.do(t, http.MethodPatch, "/api/cart/items/"+lineID,
			gin.H{"quantity": 2}, nil, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unknown line", func(t *testing.T) {
		w := env.do(t, http.MethodPatch, "/api/cart/items/no-such-line",
			gin.H{"quantity": 2}, cookies, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCartRemoveLine(t *testing.T) {
	env := newTestEnv(t)
	cookies, lineID := env.addToCart(t, "p-marg", 2)

	var page view.CartPage
	w := env.do(t, http.MethodDelete, "/api/cart/items/"+lineID, nil, cookies, &page)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Empty(t, page.Lines)
	assert.Zero(t, page.SubtotalCents)
	assert.Zero(t, page.DeliveryFeeCents)
	assert.Zero(t, page.TotalCents)

	// Removing again is a 404.
	w = env.do(t, http.MethodDelete, "/api/cart/items/"+lineID, nil, cookies, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
