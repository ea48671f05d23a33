package billing

import (
	"errors"
	"testing"

	"github.com/JostinQuilca/FoodApp/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInvoiceStatus(t *testing.T) {
	for _, s := range AllInvoiceStatuses() {
		got, err := ParseInvoiceStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := ParseInvoiceStatus("NOPE")
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))

	_, err = ParseInvoiceStatus("pagada")
	assert.Error(t, err, "matching is exact")
}

func TestInvoiceStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from InvoiceStatus
		to   InvoiceStatus
		want bool
	}{
		{InvoiceStatusIssued, InvoiceStatusPaid, true},
		{InvoiceStatusIssued, InvoiceStatusVoided, true},
		{InvoiceStatusPaid, InvoiceStatusVoided, true},
		{InvoiceStatusPaid, InvoiceStatusIssued, false},
		{InvoiceStatusVoided, InvoiceStatusIssued, false},
		{InvoiceStatusVoided, InvoiceStatusPaid, false},
		{InvoiceStatusIssued, InvoiceStatusIssued, true},
		{InvoiceStatusPaid, InvoiceStatusPaid, true},
		{InvoiceStatusVoided, InvoiceStatusVoided, true},
		{InvoiceStatusIssued, InvoiceStatus("NOPE"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestInvoiceStatus_IsTerminal(t *testing.T) {
	assert.False(t, InvoiceStatusIssued.IsTerminal())
	assert.False(t, InvoiceStatusPaid.IsTerminal())
	assert.True(t, InvoiceStatusVoided.IsTerminal())
}
