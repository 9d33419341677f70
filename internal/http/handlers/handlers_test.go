package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/MarceliJankowski/pizza-project/internal/http/middleware"
	"github.com/MarceliJankowski/pizza-project/internal/http/sessioncookie"
	"github.com/MarceliJankowski/pizza-project/internal/modules/cart"
	"github.com/MarceliJankowski/pizza-project/internal/modules/catalog"
	"github.com/MarceliJankowski/pizza-project/internal/modules/orders"
	"github.com/MarceliJankowski/pizza-project/internal/storage"
)

// stubSubmitter satisfies orders.Submitter without any backend.
type stubSubmitter struct {
	mu   sync.Mutex
	refs []string
}

func (s *stubSubmitter) Submit(_ context.Context, ref string, _ cart.OrderPayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refs = append(s.refs, ref)
	return nil
}

func (s *stubSubmitter) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.refs)
}

type testEnv struct {
	engine *gin.Engine
	store  *cart.Store
	ck     *sessioncookie.Codec
	sub    *stubSubmitter
}

func fixtureCatalog() *catalog.Catalog {
	return catalog.FromProducts([]catalog.Product{
		{
			ID:             "p-marg",
			Code:           "margherita",
			Name:           "Margherita",
			Slug:           "margherita",
			BasePriceCents: 3000,
			Groups: []catalog.OptionGroup{
				{
					Code:  "toppings",
					Label: "Toppings",
					Options: []catalog.Option{
						{Code: "olives", Label: "Olives", PriceCents: 200, Default: true, ImageKey: "margherita-olives.png"},
						{Code: "cheese", Label: "Extra cheese", PriceCents: 300},
					},
				},
			},
			Images: []catalog.Image{{StorageKey: "margherita.png"}},
		},
		{
			ID:             "p-bread",
			Code:           "breadsticks",
			Name:           "Breadsticks",
			Slug:           "breadsticks",
			BasePriceCents: 1400,
		},
	})
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cat := fixtureCatalog()
	store := cart.NewStore(cart.DefaultConfig())
	ck := sessioncookie.New([]byte("test-secret-0123456789"), "pp_session", false)
	sub := &stubSubmitter{}
	svc := orders.NewService(sub, nil, "orders@pizza.local", logger)
	st := storage.NewLocal(t.TempDir(), "/uploads")

	cartH := NewCartHandler(cat, store, ck)
	catalogH := NewCatalogHandler(cat, st)
	ordersH := NewOrdersHandler(store, ck, svc)

	r := gin.New()
	r.Use(middleware.ErrorHandler(logger), middleware.CartCount(store, ck))
	r.GET("/api/products", catalogH.List)
	r.GET("/api/products/:slug", catalogH.Show)
	r.GET("/api/cart", cartH.Show)
	r.POST("/api/cart/items", cartH.Add)
	r.PATCH("/api/cart/items/:id", cartH.UpdateQuantity)
	r.DELETE("/api/cart/items/:id", cartH.Remove)
	r.POST("/api/orders", ordersH.Submit)

	return &testEnv{engine: r, store: store, ck: ck, sub: sub}
}

// do issues a request, optionally with a JSON body and session cookies,
// and decodes the JSON response into out when out is non-nil.
func (e *testEnv) do(t *testing.T, method, path string, body any, cookies []*http.Cookie, out any) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)

	if out != nil {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out),
			"response body: %s", w.Body.String())
	}
	return w
}

// addToCart posts a line and returns the session cookies for follow-up
// requests plus the created line id.
func (e *testEnv) addToCart(t *testing.T, productID string, quantity int) ([]*http.Cookie, string) {
	t.Helper()

	var resp struct {
		LineID string `json:"lineId"`
	}
	w := e.do(t, http.MethodPost, "/api/cart/items",
		gin.H{"productId": productID, "quantity": quantity}, nil, &resp)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NotEmpty(t, resp.LineID)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies, resp.LineID
}
