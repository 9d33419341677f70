package cart

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarceliJankowski/pizza-project/internal/modules/pricing"
	"github.com/MarceliJankowski/pizza-project/internal/shared/apperr"
)

func TestStoreCreateAndWith(t *testing.T) {
	s := NewStore(DefaultConfig())

	id := s.Create()
	require.NotEmpty(t, id)
	assert.True(t, s.Has(id))

	err := s.With(id, func(c *Cart) error {
		assert.Equal(t, id, c.ID())
		_, err := c.AddLine(breadsticks(), pricing.Selection{}, 2)
		return err
	})
	require.NoError(t, err)

	// Same cart on the next access.
	err = s.With(id, func(c *Cart) error {
		assert.Equal(t, 2, c.Totals().ItemCount)
		return nil
	})
	require.NoError(t, err)
}

func TestStoreWithUnknownID(t *testing.T) {
	s := NewStore(DefaultConfig())

	err := s.With("nope", func(*Cart) error {
		t.Fatal("fn must not run for an unknown cart")
		return nil
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}

func TestStoreDrop(t *testing.T) {
	s := NewStore(DefaultConfig())
	id := s.Create()

	s.Drop(id)
	assert.False(t, s.Has(id))
	assert.Error(t, s.With(id, func(*Cart) error { return nil }))

	// Dropping twice is harmless.
	s.Drop(id)
}

func TestStoreSerializesCartAccess(t *testing.T) {
	s := NewStore(DefaultConfig())
	id := s.Create()

	const workers = 8
	const perWorker = 5

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				err := s.With(id, func(c *Cart) error {
					_, err := c.AddLine(breadsticks(), pricing.Selection{}, 1)
					return err
				})
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	err := s.With(id, func(c *Cart) error {
		assert.Len(t, c.Lines(), workers*perWorker)
		assert.Equal(t, workers*perWorker, c.Totals().ItemCount)
		return nil
	})
	require.NoError(t, err)
}
