//go:build unit

package credit_test

import (
	"testing"
	"time"

	"ev-carbon-market/internal/domain/credit"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issueCredit(t *testing.T, co2Kg string) *credit.Credit {
	t.Helper()
	c, err := credit.Issue(uuid.New(), uuid.New(), d(co2Kg), time.Now())
	require.NoError(t, err)
	return c
}

func TestIssue(t *testing.T) {
	t.Run("starts pending at discounted amount", func(t *testing.T) {
		c := issueCredit(t, "11")

		assert.Equal(t, credit.StatusPending, c.Status())
		assert.True(t, c.Amount().Equal(d("0.0077")))
		assert.Nil(t, c.VerifierID())
		assert.Nil(t, c.VerifiedAt())
	})

	t.Run("rejects negative co2", func(t *testing.T) {
		_, err := credit.Issue(uuid.New(), uuid.New(), d("-1"), time.Now())
		assert.ErrorIs(t, err, credit.ErrNegativeCO2)
	})

	t.Run("zero co2 is allowed", func(t *testing.T) {
		c := issueCredit(t, "0")
		assert.True(t, c.Amount().IsZero())
	})
}

func TestCreditLifecycle(t *testing.T) {
	verifier := uuid.New()
	now := time.Now()

	t.Run("approve reprices at full confidence", func(t *testing.T) {
		c := issueCredit(t, "11")

		require.NoError(t, c.Approve(verifier, now))

		assert.Equal(t, credit.StatusVerified, c.Status())
		assert.True(t, c.Amount().Equal(d("0.011")))
		require.NotNil(t, c.VerifierID())
		assert.Equal(t, verifier, *c.VerifierID())
		require.NotNil(t, c.VerifiedAt())
	})

	t.Run("reject zeroes the amount", func(t *testing.T) {
		c := issueCredit(t, "11")

		require.NoError(t, c.Reject(verifier, now))

		assert.Equal(t, credit.StatusRejected, c.Status())
		assert.True(t, c.Amount().IsZero())
	})

	t.Run("full sale path", func(t *testing.T) {
		c := issueCredit(t, "25")

		require.NoError(t, c.Approve(verifier, now))
		require.NoError(t, c.MarkListed(now))
		assert.Equal(t, credit.StatusListed, c.Status())
		require.NotNil(t, c.ListedAt())

		require.NoError(t, c.MarkSold(now))
		assert.Equal(t, credit.StatusSold, c.Status())
		assert.True(t, c.Amount().Equal(d("0.03")))
	})

	t.Run("cancelled listing reverts to verified", func(t *testing.T) {
		c := issueCredit(t, "11")
		require.NoError(t, c.Approve(verifier, now))
		require.NoError(t, c.MarkListed(now))

		require.NoError(t, c.RevertToVerified(now))

		assert.Equal(t, credit.StatusVerified, c.Status())
		assert.Nil(t, c.ListedAt())
	})

	t.Run("refunded sale reverts to listed", func(t *testing.T) {
		c := issueCredit(t, "11")
		require.NoError(t, c.Approve(verifier, now))
		require.NoError(t, c.MarkListed(now))
		require.NoError(t, c.MarkSold(now))

		require.NoError(t, c.RevertToListed(now))
		assert.Equal(t, credit.StatusListed, c.Status())
	})

	t.Run("invalid transitions", func(t *testing.T) {
		tests := []struct {
			name string
			run  func(c *credit.Credit) error
		}{
			{name: "approve twice", run: func(c *credit.Credit) error {
				_ = c.Approve(verifier, now)
				return c.Approve(verifier, now)
			}},
			{name: "reject after approve", run: func(c *credit.Credit) error {
				_ = c.Approve(verifier, now)
				return c.Reject(verifier, now)
			}},
			{name: "list before approval", run: func(c *credit.Credit) error {
				return c.MarkListed(now)
			}},
			{name: "sell before listing", run: func(c *credit.Credit) error {
				_ = c.Approve(verifier, now)
				return c.MarkSold(now)
			}},
			{name: "revert unsold credit", run: func(c *credit.Credit) error {
				return c.RevertToListed(now)
			}},
			{name: "approve rejected credit", run: func(c *credit.Credit) error {
				_ = c.Reject(verifier, now)
				return c.Approve(verifier, now)
			}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				c := issueCredit(t, "11")
				assert.ErrorIs(t, tt.run(c), credit.ErrInvalidStateTransition)
			})
		}
	})
}
