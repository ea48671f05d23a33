package billing

import (
	"github.com/JostinQuilca/FoodApp/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DefaultTaxRate is the VAT rate applied when no explicit tax amount is given (12%)
var DefaultTaxRate = decimal.New(12, -2)

// LineAmount is the quantity and unit price of one invoice line
type LineAmount struct {
	Quantity  int64
	UnitPrice decimal.Decimal
}

// Totals holds the computed amounts of an invoice.
// Total always equals Subtotal + Tax exactly.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// ComputeLineSubtotal returns quantity × unitPrice.
// Both factors must be strictly positive.
func ComputeLineSubtotal(quantity int64, unitPrice decimal.Decimal) (decimal.Decimal, error) {
	if quantity <= 0 {
		return decimal.Zero, shared.NewValidationError("INVALID_QUANTITY", "quantity must be positive")
	}
	if !unitPrice.IsPositive() {
		return decimal.Zero, shared.NewValidationError("INVALID_UNIT_PRICE", "unit price must be positive")
	}
	return unitPrice.Mul(decimal.NewFromInt(quantity)), nil
}

// ComputeInvoiceTotals computes the totals of the given lines at DefaultTaxRate.
// See TaxCalculator.Compute.
func ComputeInvoiceTotals(lines []LineAmount, explicitTax *decimal.Decimal) (Totals, error) {
	return TaxCalculator{Rate: DefaultTaxRate}.Compute(lines, explicitTax)
}

// TaxCalculator computes invoice totals at a configurable rate
type TaxCalculator struct {
	Rate decimal.Decimal
}

// NewTaxCalculator creates a calculator for a rate in [0, 1)
func NewTaxCalculator(rate decimal.Decimal) (TaxCalculator, error) {
	if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return TaxCalculator{}, shared.NewValidationError("INVALID_TAX_RATE", "tax rate must be within [0, 1)")
	}
	return TaxCalculator{Rate: rate}, nil
}

// Compute sums the line subtotals and derives tax and total.
// An explicit tax that is present and not negative is used as is (zero included);
// otherwise tax is subtotal × Rate. No intermediate rounding takes place.
func (c TaxCalculator) Compute(lines []LineAmount, explicitTax *decimal.Decimal) (Totals, error) {
	subtotal := decimal.Zero
	for _, l := range lines {
		sub, err := ComputeLineSubtotal(l.Quantity, l.UnitPrice)
		if err != nil {
			return Totals{}, err
		}
		subtotal = subtotal.Add(sub)
	}
	return c.FromSubtotal(subtotal, explicitTax), nil
}

// FromSubtotal derives tax and total from an already known subtotal
func (c TaxCalculator) FromSubtotal(subtotal decimal.Decimal, explicitTax *decimal.Decimal) Totals {
	var tax decimal.Decimal
	if explicitTax != nil && !explicitTax.IsNegative() {
		tax = *explicitTax
	} else {
		tax = subtotal.Mul(c.Rate)
	}
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}

// IsConsistent reports whether Total == Subtotal + Tax
func (t Totals) IsConsistent() bool {
	return t.Total.Equal(t.Subtotal.Add(t.Tax))
}
