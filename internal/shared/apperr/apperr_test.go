package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindsAndStatus(t *testing.T) {
	cases := []struct {
		err    error
		kind   Kind
		status int
	}{
		{ConfigErr("bad bounds"), Config, http.StatusBadRequest},
		{InvalidErr("nope", nil), Invalid, http.StatusBadRequest},
		{NotFoundErr("gone"), NotFound, http.StatusNotFound},
		{Wrap(errors.New("boom")), Internal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.True(t, IsKind(tc.err, tc.kind))
		assert.Equal(t, tc.status, HTTPStatus(tc.err))
	}

	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("plain")))
	assert.False(t, IsKind(errors.New("plain"), Invalid))
}

func TestAsUnwrapsWrappedErrors(t *testing.T) {
	inner := NotFoundErr("cart line not found")
	wrapped := fmt.Errorf("remove line: %w", inner)

	ae, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, NotFound, ae.Kind)
	assert.True(t, IsKind(wrapped, NotFound))
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "Cart is empty.", PublicMessage(InvalidErr("Cart is empty.", nil)))

	// Internal causes never leak.
	assert.Equal(t, "Something went wrong.", PublicMessage(Wrap(errors.New("dsn: secret"))))
	assert.Equal(t, "Something went wrong.", PublicMessage(errors.New("dsn: secret")))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil))
}
