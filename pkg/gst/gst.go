// Package gst holds the pure tax arithmetic for GST-inclusive purchases and
// GST-exclusive sales. Nothing here rounds before storage: callers persist the
// raw figures and round only when assembling report or display output.
package gst

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Split selects how the tax amount of an inclusive total is apportioned
type Split string

const (
	// SplitCGSTSGST halves the tax between the central and state components
	SplitCGSTSGST Split = "cgst_sgst"
	// SplitIGST assigns the full tax to the integrated (inter-state) component
	SplitIGST Split = "igst"
)

// Breakdown is the result of backing GST out of an inclusive total
type Breakdown struct {
	Base      float64
	TaxAmount float64
	CGST      float64
	SGST      float64
	IGST      float64
}

// ConvertInclusiveTotal backs the base amount out of a GST-inclusive total and
// splits the tax per the given mode. The base is recovered by division, never by
// subtracting tax-on-base. A zero rate yields base == total and zero tax exactly.
func ConvertInclusiveTotal(total, ratePercent float64, split Split) Breakdown {
	b := Breakdown{Base: total}
	if ratePercent > 0 {
		b.Base = total / (1 + ratePercent/100)
	}
	b.TaxAmount = total - b.Base

	if split == SplitIGST {
		b.IGST = b.TaxAmount
	} else {
		b.CGST = b.TaxAmount / 2
		b.SGST = b.TaxAmount / 2
	}
	return b
}

// ExclusiveLineTax computes the total and the tax added on top for one order
// line, where the unit price excludes GST.
func ExclusiveLineTax(unitPrice float64, quantity int, ratePercent float64) (lineTotal, taxAmount float64) {
	lineTotal = unitPrice * float64(quantity)
	taxAmount = lineTotal * ratePercent / 100
	return lineTotal, taxAmount
}

// Field names one of the three purchase-entry quantities
type Field string

const (
	FieldQuantity     Field = "quantity"
	FieldTotalPrice   Field = "totalPrice"
	FieldPricePerUnit Field = "pricePerUnit"
)

// TwoOfThree carries the two known purchase-entry fields; exactly one must be nil
type TwoOfThree struct {
	Quantity     *float64
	TotalPrice   *float64
	PricePerUnit *float64
}

var (
	// ErrNeedExactlyTwo is returned when the input does not leave exactly one field to derive
	ErrNeedExactlyTwo = errors.New("gst: exactly two of quantity, totalPrice and pricePerUnit must be set")
	// ErrDivisionByZero is returned when the derivation would divide by zero
	ErrDivisionByZero = errors.New("gst: cannot derive field, divisor is zero")
)

// DeriveThirdField computes the missing one of quantity, total price and price
// per unit from the other two. Quantity rounds to the nearest integer; the money
// fields round to two decimal places. It is a stateless data-entry convenience,
// not a ledger operation.
func DeriveThirdField(known TwoOfThree) (Field, float64, error) {
	set := 0
	if known.Quantity != nil {
		set++
	}
	if known.TotalPrice != nil {
		set++
	}
	if known.PricePerUnit != nil {
		set++
	}
	if set != 2 {
		return "", 0, ErrNeedExactlyTwo
	}

	switch {
	case known.PricePerUnit == nil:
		if *known.Quantity == 0 {
			return "", 0, ErrDivisionByZero
		}
		return FieldPricePerUnit, Round2(*known.TotalPrice / *known.Quantity), nil
	case known.TotalPrice == nil:
		return FieldTotalPrice, Round2(*known.Quantity * *known.PricePerUnit), nil
	default:
		if *known.PricePerUnit == 0 {
			return "", 0, ErrDivisionByZero
		}
		return FieldQuantity, RoundWhole(*known.TotalPrice / *known.PricePerUnit), nil
	}
}

// Round2 rounds to two decimal places. Display/report boundary only.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// RoundWhole rounds to the nearest whole currency unit. Display/report boundary only.
func RoundWhole(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(0).Float64()
	return f
}
