// Package billing provides the domain model for customer invoices of the food-ordering platform.
//
// This package implements the invoicing bounded context, which is responsible for:
//   - Computing invoice amounts with exact decimal arithmetic
//   - Allocating day-scoped sequential invoice numbers (INV-YYYYMMDD-NNNNN)
//   - Enforcing the invoice status machine (EMITIDA -> PAGADA / ANULADA)
//
// Key Aggregates:
//   - Invoice: a billing document issued for a direct sale or derived from an order
//
// Value Objects:
//   - Totals: subtotal, tax and total of an invoice
//   - InvoiceNumber: parsed form of a human-readable invoice number
//
// The billing domain integrates with:
//   - Trade domain: orders are the source of PEDIDO invoices
//   - Catalog domain: item names are snapshotted onto invoice lines
//   - Identity domain: the customer and the issuing actor
package billing
