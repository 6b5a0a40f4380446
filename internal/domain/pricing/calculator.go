// Package pricing computes line totals, bill-level discounts and GST
// amounts. Everything here is pure: no storage, no clock, no rounding
// surprises. Amounts stay exact decimals through the pipeline; rounding
// happens half-up to two places once, when a bill is finalized.
package pricing

import (
	"github.com/shopspring/decimal"
	"github.com/stockbook/backend/internal/domain/shared"
)

// DiscountType describes how a bill-level discount is expressed
type DiscountType string

const (
	DiscountNone       DiscountType = "none"
	DiscountPercentage DiscountType = "percentage"
	DiscountAmount     DiscountType = "amount"
)

// IsValid checks if the discount type is a known value
func (d DiscountType) IsValid() bool {
	switch d {
	case DiscountNone, DiscountPercentage, DiscountAmount:
		return true
	}
	return false
}

// TaxType describes how GST is levied on a bill
type TaxType string

const (
	// TaxIGST is a single integrated rate for inter-state supply
	TaxIGST TaxType = "igst"
	// TaxCGSTSGST splits the levy into two co-equal intra-state components
	TaxCGSTSGST TaxType = "cgst_sgst"
)

// IsValid checks if the tax type is a known value
func (t TaxType) IsValid() bool {
	return t == TaxIGST || t == TaxCGSTSGST
}

// Line is one billable row: quantity times unit price, less a discount
// already expressed in currency units.
type Line struct {
	Quantity     int64
	UnitPrice    decimal.Decimal
	LineDiscount decimal.Decimal
}

// Total returns quantity * unitPrice - lineDiscount, exact
func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity)).Sub(l.LineDiscount)
}

// BillDiscount is the bill-level discount descriptor
type BillDiscount struct {
	Type  DiscountType
	Value decimal.Decimal
}

// NoDiscount returns an empty bill discount
func NoDiscount() BillDiscount {
	return BillDiscount{Type: DiscountNone}
}

// TaxConfig is the tax descriptor: either one integrated rate or a
// cgst+sgst pair, all in percent.
type TaxConfig struct {
	Type     TaxType
	IGSTRate decimal.Decimal
	CGSTRate decimal.Decimal
	SGSTRate decimal.Decimal
}

// NoTax returns a zero-rate integrated tax config
func NoTax() TaxConfig {
	return TaxConfig{Type: TaxIGST}
}

// BillTotals is the finalized money breakdown of a bill.
// All fields are rounded half-up to two decimal places.
type BillTotals struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	Taxable        decimal.Decimal
	CGST           decimal.Decimal
	SGST           decimal.Decimal
	IGST           decimal.Decimal
	TaxTotal       decimal.Decimal
	Total          decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// ComputeBill walks the pipeline: line totals, subtotal, bill discount
// (taxable clamped at zero), then tax on the taxable amount.
func ComputeBill(lines []Line, discount BillDiscount, tax TaxConfig) (BillTotals, error) {
	if !discount.Type.IsValid() {
		return BillTotals{}, shared.NewDomainError("INVALID_DISCOUNT_TYPE", "Unknown bill discount type")
	}
	if !tax.Type.IsValid() {
		return BillTotals{}, shared.NewDomainError("INVALID_TAX_TYPE", "Unknown tax type")
	}
	if discount.Value.IsNegative() {
		return BillTotals{}, shared.NewDomainError("INVALID_DISCOUNT", "Discount value cannot be negative")
	}

	subtotal := decimal.Zero
	for _, line := range lines {
		if line.Quantity <= 0 {
			return BillTotals{}, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
		}
		if line.UnitPrice.IsNegative() {
			return BillTotals{}, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
		}
		if line.LineDiscount.IsNegative() {
			return BillTotals{}, shared.NewDomainError("INVALID_DISCOUNT", "Line discount cannot be negative")
		}
		subtotal = subtotal.Add(line.Total())
	}

	var discountAmount decimal.Decimal
	switch discount.Type {
	case DiscountPercentage:
		discountAmount = subtotal.Mul(discount.Value).Div(hundred)
	case DiscountAmount:
		discountAmount = discount.Value
	default:
		discountAmount = decimal.Zero
	}

	taxable := subtotal.Sub(discountAmount)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}

	var cgst, sgst, igst decimal.Decimal
	switch tax.Type {
	case TaxIGST:
		igst = taxable.Mul(tax.IGSTRate).Div(hundred)
	case TaxCGSTSGST:
		cgst = taxable.Mul(tax.CGSTRate).Div(hundred)
		sgst = taxable.Mul(tax.SGSTRate).Div(hundred)
	}
	taxTotal := cgst.Add(sgst).Add(igst)
	total := taxable.Add(taxTotal)

	return BillTotals{
		Subtotal:       subtotal.Round(2),
		DiscountAmount: discountAmount.Round(2),
		Taxable:        taxable.Round(2),
		CGST:           cgst.Round(2),
		SGST:           sgst.Round(2),
		IGST:           igst.Round(2),
		TaxTotal:       taxTotal.Round(2),
		Total:          total.Round(2),
	}, nil
}
