package gst_test

import (
	"testing"

	"github.com/kiranapos/kirana-api/pkg/gst"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertInclusiveTotal_DomesticSplit(t *testing.T) {
	b := gst.ConvertInclusiveTotal(220, 10, gst.SplitCGSTSGST)

	assert.InDelta(t, 200.0, b.Base, 1e-9)
	assert.InDelta(t, 20.0, b.TaxAmount, 1e-9)
	assert.InDelta(t, 10.0, b.CGST, 1e-9)
	assert.InDelta(t, 10.0, b.SGST, 1e-9)
	assert.Zero(t, b.IGST)
}

func TestConvertInclusiveTotal_Interstate(t *testing.T) {
	b := gst.ConvertInclusiveTotal(118, 18, gst.SplitIGST)

	assert.InDelta(t, 100.0, b.Base, 1e-9)
	assert.InDelta(t, 18.0, b.TaxAmount, 1e-9)
	assert.InDelta(t, 18.0, b.IGST, 1e-9)
	assert.Zero(t, b.CGST)
	assert.Zero(t, b.SGST)
}

func TestConvertInclusiveTotal_ZeroRate(t *testing.T) {
	b := gst.ConvertInclusiveTotal(150, 0, gst.SplitCGSTSGST)

	assert.Equal(t, 150.0, b.Base)
	assert.Equal(t, 0.0, b.TaxAmount)
	assert.Equal(t, 0.0, b.CGST)
	assert.Equal(t, 0.0, b.SGST)
}

// base + tax must reassemble the inclusive total for any rate, and the split
// components must always sum to the tax amount.
func TestConvertInclusiveTotal_Properties(t *testing.T) {
	totals := []float64{0, 1, 99.99, 220, 1234.56, 100000}
	rates := []float64{0, 3, 5, 12, 18, 28}

	for _, total := range totals {
		for _, rate := range rates {
			dom := gst.ConvertInclusiveTotal(total, rate, gst.SplitCGSTSGST)
			assert.InDelta(t, total, dom.Base+dom.TaxAmount, 1e-9)
			assert.InDelta(t, dom.TaxAmount, dom.CGST+dom.SGST, 1e-9)
			assert.Equal(t, dom.CGST, dom.SGST)

			inter := gst.ConvertInclusiveTotal(total, rate, gst.SplitIGST)
			assert.InDelta(t, total, inter.Base+inter.TaxAmount, 1e-9)
			assert.Equal(t, inter.TaxAmount, inter.IGST)
			assert.Zero(t, inter.CGST)
			assert.Zero(t, inter.SGST)
		}
	}
}

func TestConvertInclusiveTotal_Idempotent(t *testing.T) {
	first := gst.ConvertInclusiveTotal(220, 10, gst.SplitCGSTSGST)
	second := gst.ConvertInclusiveTotal(220, 10, gst.SplitCGSTSGST)
	assert.Equal(t, first, second)
}

func TestExclusiveLineTax(t *testing.T) {
	lineTotal, tax := gst.ExclusiveLineTax(100, 1, 5)
	assert.Equal(t, 100.0, lineTotal)
	assert.Equal(t, 5.0, tax)

	lineTotal, tax = gst.ExclusiveLineTax(200, 1, 18)
	assert.Equal(t, 200.0, lineTotal)
	assert.Equal(t, 36.0, tax)

	lineTotal, tax = gst.ExclusiveLineTax(49.5, 4, 12)
	assert.InDelta(t, 198.0, lineTotal, 1e-9)
	assert.InDelta(t, 23.76, tax, 1e-9)
}

func TestDeriveThirdField(t *testing.T) {
	qty := 10.0
	total := 200.0
	perUnit := 20.0

	field, v, err := gst.DeriveThirdField(gst.TwoOfThree{Quantity: &qty, TotalPrice: &total})
	require.NoError(t, err)
	assert.Equal(t, gst.FieldPricePerUnit, field)
	assert.Equal(t, 20.0, v)

	field, v, err = gst.DeriveThirdField(gst.TwoOfThree{Quantity: &qty, PricePerUnit: &perUnit})
	require.NoError(t, err)
	assert.Equal(t, gst.FieldTotalPrice, field)
	assert.Equal(t, 200.0, v)

	field, v, err = gst.DeriveThirdField(gst.TwoOfThree{TotalPrice: &total, PricePerUnit: &perUnit})
	require.NoError(t, err)
	assert.Equal(t, gst.FieldQuantity, field)
	assert.Equal(t, 10.0, v)
}

func TestDeriveThirdField_Rounding(t *testing.T) {
	total := 100.0
	perUnit := 30.0

	// 100 / 30 = 3.33... rounds to the nearest whole quantity
	_, v, err := gst.DeriveThirdField(gst.TwoOfThree{TotalPrice: &total, PricePerUnit: &perUnit})
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)

	qty := 3.0
	odd := 33.333
	_, v, err = gst.DeriveThirdField(gst.TwoOfThree{Quantity: &qty, PricePerUnit: &odd})
	require.NoError(t, err)
	assert.Equal(t, 100.0, v) // 99.999 rounds to 2dp
}

func TestDeriveThirdField_Errors(t *testing.T) {
	qty := 10.0
	total := 200.0
	perUnit := 20.0
	zero := 0.0

	_, _, err := gst.DeriveThirdField(gst.TwoOfThree{Quantity: &qty})
	assert.ErrorIs(t, err, gst.ErrNeedExactlyTwo)

	_, _, err = gst.DeriveThirdField(gst.TwoOfThree{Quantity: &qty, TotalPrice: &total, PricePerUnit: &perUnit})
	assert.ErrorIs(t, err, gst.ErrNeedExactlyTwo)

	_, _, err = gst.DeriveThirdField(gst.TwoOfThree{Quantity: &zero, TotalPrice: &total})
	assert.ErrorIs(t, err, gst.ErrDivisionByZero)

	_, _, err = gst.DeriveThirdField(gst.TwoOfThree{TotalPrice: &total, PricePerUnit: &zero})
	assert.ErrorIs(t, err, gst.ErrDivisionByZero)
}

func TestBoundaryRounding(t *testing.T) {
	assert.Equal(t, 1234.0, gst.RoundWhole(1233.5))
	assert.Equal(t, 1233.0, gst.RoundWhole(1233.4))
	assert.Equal(t, 19.99, gst.Round2(19.985))
	assert.Equal(t, 20.0, gst.Round2(19.999))
}
