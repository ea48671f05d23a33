package billing

import (
	"errors"
	"testing"
	"time"

	"github.com/JostinQuilca/FoodApp/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testIssuedAt = time.Date(2024, 5, 10, 14, 30, 0, 0, time.UTC)

func strPtr(s string) *string {
	return &s
}

func createTestLines(t *testing.T) []InvoiceLine {
	l1, err := NewInvoiceLine(1, "Seco de pollo", 2, dec("10.0"), "")
	require.NoError(t, err)
	l2, err := NewInvoiceLine(2, "Jugo de mora", 1, dec("5.0"), "sin azúcar")
	require.NoError(t, err)
	return []InvoiceLine{l1, l2}
}

func createTestInvoice(t *testing.T) *Invoice {
	lines := createTestLines(t)
	totals, err := ComputeInvoiceTotals([]LineAmount{
		{Quantity: 2, UnitPrice: dec("10.0")},
		{Quantity: 1, UnitPrice: dec("5.0")},
	}, nil)
	require.NoError(t, err)

	inv, err := NewDirectSaleInvoice(IssueParams{
		Number:     "INV-20240510-00001",
		CustomerID: "0912345678",
		IssuedAt:   testIssuedAt,
		Totals:     totals,
		Lines:      lines,
	})
	require.NoError(t, err)
	inv.ID = 1
	return inv
}

// ============================================
// Constructor Tests
// ============================================

func TestNewDirectSaleInvoice(t *testing.T) {
	inv := createTestInvoice(t)

	assert.Equal(t, InvoiceTypeSale, inv.Type)
	assert.Equal(t, InvoiceStatusIssued, inv.Status)
	assert.Equal(t, RecordStateActive, inv.State)
	assert.Nil(t, inv.OrderID)
	assert.Equal(t, testIssuedAt.AddDate(0, 0, 30), inv.DueAt)
	assert.True(t, inv.Subtotal.Equal(dec("25")))
	assert.True(t, inv.Tax.Equal(dec("3")))
	assert.True(t, inv.Total.Equal(dec("28")))
	assert.Len(t, inv.Lines, 2)
	assert.Equal(t, 1, inv.GetVersion())
}

func TestNewDirectSaleInvoice_Rejects(t *testing.T) {
	lines := createTestLines(t)
	good := Totals{Subtotal: dec("25"), Tax: dec("3"), Total: dec("28")}

	tests := []struct {
		name   string
		params IssueParams
		kind   error
	}{
		{"no lines", IssueParams{Number: "INV-20240510-00001", CustomerID: "1", IssuedAt: testIssuedAt, Totals: good}, shared.ErrInvalidInput},
		{"no customer", IssueParams{Number: "INV-20240510-00001", IssuedAt: testIssuedAt, Totals: good, Lines: lines}, shared.ErrInvalidInput},
		{"corrupt number", IssueParams{Number: "INV-X", CustomerID: "1", IssuedAt: testIssuedAt, Totals: good, Lines: lines}, shared.ErrIntegrity},
		{"total mismatch", IssueParams{Number: "INV-20240510-00001", CustomerID: "1", IssuedAt: testIssuedAt,
			Totals: Totals{Subtotal: dec("25"), Tax: dec("3"), Total: dec("29")}, Lines: lines}, shared.ErrIntegrity},
		{"subtotal mismatch", IssueParams{Number: "INV-20240510-00001", CustomerID: "1", IssuedAt: testIssuedAt,
			Totals: Totals{Subtotal: dec("20"), Tax: dec("3"), Total: dec("23")}, Lines: lines}, shared.ErrIntegrity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDirectSaleInvoice(tt.params)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)
		})
	}
}

func TestNewOrderInvoice(t *testing.T) {
	calc := TaxCalculator{Rate: DefaultTaxRate}
	totals := calc.FromSubtotal(dec("100"), nil)

	inv, err := NewOrderInvoice(1, IssueParams{
		Number:      "INV-20240510-00002",
		CustomerID:  "0912345678",
		IssuedAt:    testIssuedAt,
		Totals:      totals,
		Description: "Invoice generated automatically from order #1",
	})
	require.NoError(t, err)

	assert.Equal(t, InvoiceTypeOrder, inv.Type)
	require.NotNil(t, inv.OrderID)
	assert.Equal(t, int64(1), *inv.OrderID)
	assert.True(t, inv.Tax.Equal(dec("12")))
	assert.True(t, inv.Total.Equal(dec("112")))

	_, err = NewOrderInvoice(0, IssueParams{Number: "INV-20240510-00002", CustomerID: "1", IssuedAt: testIssuedAt, Totals: totals})
	assert.Error(t, err)
}

func TestNewInvoiceLine_Rejects(t *testing.T) {
	_, err := NewInvoiceLine(0, "x", 1, dec("1"), "")
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))

	_, err = NewInvoiceLine(1, "x", 0, dec("1"), "")
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))

	_, err = NewInvoiceLine(1, "x", 1, dec("0"), "")
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
}

// ============================================
// State Machine Tests
// ============================================

func TestInvoice_ApplyUpdate(t *testing.T) {
	now := testIssuedAt.Add(time.Hour)

	t.Run("pay an issued invoice", func(t *testing.T) {
		inv := createTestInvoice(t)
		changed, err := inv.ApplyUpdate(InvoicePatch{Status: strPtr("PAGADA")}, now)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, InvoiceStatusPaid, inv.Status)
		assert.Equal(t, 2, inv.GetVersion())

		events := inv.GetDomainEvents()
		require.Len(t, events, 1)
		evt := events[0].(*InvoiceStatusChangedEvent)
		assert.Equal(t, InvoiceStatusIssued, evt.FromStatus)
		assert.Equal(t, InvoiceStatusPaid, evt.ToStatus)
	})

	t.Run("unknown status leaves invoice unchanged", func(t *testing.T) {
		inv := createTestInvoice(t)
		changed, err := inv.ApplyUpdate(InvoicePatch{Status: strPtr("NOPE"), Description: strPtr("changed")}, now)
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
		assert.False(t, changed)
		assert.Equal(t, InvoiceStatusIssued, inv.Status)
		assert.Empty(t, inv.Description)
		assert.Equal(t, 1, inv.GetVersion())
	})

	t.Run("description only", func(t *testing.T) {
		inv := createTestInvoice(t)
		changed, err := inv.ApplyUpdate(InvoicePatch{Description: strPtr("mesa 4")}, now)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, "mesa 4", inv.Description)
		assert.Equal(t, InvoiceStatusIssued, inv.Status)
		assert.Empty(t, inv.GetDomainEvents())
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		inv := createTestInvoice(t)
		changed, err := inv.ApplyUpdate(InvoicePatch{Status: strPtr("EMITIDA")}, now)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, 1, inv.GetVersion())
	})

	t.Run("back to EMITIDA is rejected", func(t *testing.T) {
		inv := createTestInvoice(t)
		_, err := inv.ApplyUpdate(InvoicePatch{Status: strPtr("PAGADA")}, now)
		require.NoError(t, err)

		_, err = inv.ApplyUpdate(InvoicePatch{Status: strPtr("EMITIDA")}, now)
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
		assert.Equal(t, InvoiceStatusPaid, inv.Status)
	})

	t.Run("paid invoice can be voided", func(t *testing.T) {
		inv := createTestInvoice(t)
		_, err := inv.ApplyUpdate(InvoicePatch{Status: strPtr("PAGADA")}, now)
		require.NoError(t, err)
		_, err = inv.ApplyUpdate(InvoicePatch{Status: strPtr("ANULADA")}, now)
		require.NoError(t, err)
		assert.Equal(t, InvoiceStatusVoided, inv.Status)
	})

	t.Run("voided invoice cannot be paid", func(t *testing.T) {
		inv := createTestInvoice(t)
		require.NoError(t, inv.Void(now))
		_, err := inv.ApplyUpdate(InvoicePatch{Status: strPtr("PAGADA")}, now)
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})
}

func TestInvoice_Void(t *testing.T) {
	now := testIssuedAt.Add(time.Hour)
	inv := createTestInvoice(t)

	require.NoError(t, inv.Void(now))
	assert.Equal(t, InvoiceStatusVoided, inv.Status)
	assert.Equal(t, now, inv.UpdatedAt)

	err := inv.Void(now)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	assert.Len(t, inv.GetDomainEvents(), 1)
}

func TestInvoice_RaiseIssued(t *testing.T) {
	inv := createTestInvoice(t)
	inv.RaiseIssued()

	events := inv.GetDomainEvents()
	require.Len(t, events, 1)
	evt := events[0].(*InvoiceIssuedEvent)
	assert.Equal(t, EventTypeInvoiceIssued, evt.EventType())
	assert.Equal(t, int64(1), evt.AggregateID())
	assert.Equal(t, "INV-20240510-00001", evt.Number)
	assert.Equal(t, "28", evt.Total)
}
