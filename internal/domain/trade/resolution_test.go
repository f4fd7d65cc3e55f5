//go:build unit

package trade_test

import (
	"testing"

	"ev-carbon-market/internal/domain/trade"

	"github.com/stretchr/testify/assert"
)

func TestClassifyResolution(t *testing.T) {
	tests := []struct {
		name       string
		resolution string
		expected   trade.ResolutionOutcome
	}{
		{
			name:       "refund reverses",
			resolution: "Buyer refunded in full",
			expected:   trade.OutcomeCancel,
		},
		{
			name:       "cancel reverses",
			resolution: "Transaction cancelled after review",
			expected:   trade.OutcomeCancel,
		},
		{
			name:       "complete settles",
			resolution: "Reviewed and completed as agreed",
			expected:   trade.OutcomeComplete,
		},
		{
			name:       "proceed settles",
			resolution: "No fault found, proceed with the sale",
			expected:   trade.OutcomeComplete,
		},
		{
			name:       "case insensitive",
			resolution: "PROCEED",
			expected:   trade.OutcomeComplete,
		},
		{
			name:       "cancel wins over complete when both appear",
			resolution: "Cancel the completed transaction",
			expected:   trade.OutcomeCancel,
		},
		{
			name:       "ambiguous text reverses",
			resolution: "Parties reached an agreement",
			expected:   trade.OutcomeCancel,
		},
		{
			name:       "empty text reverses",
			resolution: "",
			expected:   trade.OutcomeCancel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, trade.ClassifyResolution(tt.resolution))
		})
	}
}
