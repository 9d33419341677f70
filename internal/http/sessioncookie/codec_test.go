package sessioncookie

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCodec() *Codec {
	return New([]byte("test-secret-0123456789"), "pp_session", false)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	ck := testCodec()

	v := ck.Encode("cart-42")
	id, err := ck.Decode(v)
	require.NoError(t, err)
	assert.Equal(t, "cart-42", id)
}

func TestDecodeRejectsTampering(t *testing.T) {
	ck := testCodec()
	valid := ck.Encode("cart-42")

	cases := []struct {
		name  string
		value string
	}{
		{"empty", ""},
		{"no signature", "cart-42"},
		{"empty id", "." + strings.SplitN(valid, ".", 2)[1]},
		{"swapped id", "cart-43." + strings.SplitN(valid, ".", 2)[1]},
		{"garbage signature", "cart-42.bm90LWEtc2ln"},
		{"wrong secret", New([]byte("other-secret"), "pp_session", false).Encode("cart-42")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ck.Decode(tc.value)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestCartIDFromRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ck := testCodec()

	newCtx := func(cookie string) (*gin.Context, *httptest.ResponseRecorder) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		if cookie != "" {
			c.Request.AddCookie(&http.Cookie{Name: "pp_session", Value: cookie})
		}
		return c, w
	}

	t.Run("valid cookie", func(t *testing.T) {
		c, _ := newCtx(ck.Encode("cart-42"))
		id, ok := ck.CartID(c)
		assert.True(t, ok)
		assert.Equal(t, "cart-42", id)
	})

	t.Run("no cookie", func(t *testing.T) {
		c, _ := newCtx("")
		_, ok := ck.CartID(c)
		assert.False(t, ok)
	})

	t.Run("tampered cookie is cleared", func(t *testing.T) {
		c, w := newCtx("cart-42.forged")
		_, ok := ck.CartID(c)
		assert.False(t, ok)

		// Clearing shows up as an expired Set-Cookie.
		setCookie := w.Header().Get("Set-Cookie")
		assert.Contains(t, setCookie, "pp_session=")
		assert.Contains(t, setCookie, "Max-Age=0")
	})
}

func TestSetWritesSignedCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ck := testCodec()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	ck.Set(c, "cart-42")

	res := w.Result()
	cookies := res.Cookies()
	require.Len(t, cookies, 1)
	got := cookies[0]
	assert.Equal(t, "pp_session", got.Name)
	assert.True(t, got.HttpOnly)

	id, err := ck.Decode(got.Value)
	require.NoError(t, err)
	assert.Equal(t, "cart-42", id)
}
