//go:build unit

package listing_test

import (
	"testing"
	"time"

	"ev-carbon-market/internal/domain/listing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPrice(t *testing.T, s string) listing.Price {
	t.Helper()
	p, err := listing.ParsePrice(s)
	require.NoError(t, err)
	return p
}

func TestNewPrice(t *testing.T) {
	tests := []struct {
		name  string
		value string
		errIs error
	}{
		{name: "typical price", value: "19.99"},
		{name: "minimum positive price", value: "0.01"},
		{name: "maximum price", value: "10000"},
		{name: "whole number", value: "500"},
		{name: "zero", value: "0", errIs: listing.ErrPriceOutOfRange},
		{name: "negative", value: "-5", errIs: listing.ErrPriceOutOfRange},
		{name: "above maximum", value: "10000.01", errIs: listing.ErrPriceOutOfRange},
		{name: "three decimal places", value: "9.999", errIs: listing.ErrPriceTooPrecise},
		{name: "trailing zero third place is fine", value: "9.990"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := listing.NewPrice(decimal.RequireFromString(tt.value))
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.True(t, p.Decimal().Equal(decimal.RequireFromString(tt.value)))
		})
	}
}

func TestParsePrice(t *testing.T) {
	t.Run("rejects non-numeric input", func(t *testing.T) {
		_, err := listing.ParsePrice("abc")
		assert.ErrorIs(t, err, listing.ErrInvalidPrice)
	})

	t.Run("formats to two places", func(t *testing.T) {
		p := mustPrice(t, "5")
		assert.Equal(t, "5.00", p.String())
	})
}

func TestListing(t *testing.T) {
	now := time.Now()

	t.Run("new fixed listing starts active", func(t *testing.T) {
		creditID, sellerID := uuid.New(), uuid.New()
		l := listing.NewFixed(creditID, sellerID, mustPrice(t, "42.50"), now)

		assert.NotEqual(t, uuid.Nil, l.ID())
		assert.Equal(t, creditID, l.CreditID())
		assert.Equal(t, listing.TypeFixed, l.Kind())
		assert.Equal(t, listing.StatusActive, l.Status())
		assert.True(t, l.IsActive())
		assert.True(t, l.IsFixed())
		assert.True(t, l.IsOwnedBy(sellerID))
		assert.False(t, l.IsOwnedBy(uuid.New()))
	})

	t.Run("update price on active listing", func(t *testing.T) {
		l := listing.NewFixed(uuid.New(), uuid.New(), mustPrice(t, "10.00"), now)

		require.NoError(t, l.UpdatePrice(mustPrice(t, "12.00"), now))
		assert.Equal(t, "12.00", l.Price().String())
	})

	t.Run("update price rejected once listing left active", func(t *testing.T) {
		l := listing.Reconstruct(
			uuid.New(), uuid.New(), uuid.New(),
			listing.TypeFixed, mustPrice(t, "10.00"), listing.StatusClosed,
			now, now,
		)

		err := l.UpdatePrice(mustPrice(t, "12.00"), now)
		assert.ErrorIs(t, err, listing.ErrInvalidStateTransition)
	})
}
