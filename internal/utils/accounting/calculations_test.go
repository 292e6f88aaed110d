package accounting_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mizanpro/mizan_backend/internal/core/domain"
	"github.com/mizanpro/mizan_backend/internal/utils/accounting"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestComputeEntryTotalsBalanced(t *testing.T) {
	lines := []domain.EntryLine{
		{DebitMAD: d("1200"), CreditMAD: decimal.Zero},
		{DebitMAD: decimal.Zero, CreditMAD: d("1200")},
	}

	debit, credit, balanced := accounting.ComputeEntryTotals(lines)

	assert.True(t, debit.Equal(d("1200")))
	assert.True(t, credit.Equal(d("1200")))
	assert.True(t, balanced)
}

func TestComputeEntryTotalsWithinTolerance(t *testing.T) {
	// A half-centime rounding residue still counts as balanced.
	lines := []domain.EntryLine{
		{DebitMAD: d("100.005")},
		{CreditMAD: d("100.00")},
	}

	_, _, balanced := accounting.ComputeEntryTotals(lines)
	assert.True(t, balanced)
}

func TestComputeEntryTotalsUnbalanced(t *testing.T) {
	lines := []domain.EntryLine{
		{DebitMAD: d("100.02")},
		{CreditMAD: d("100.00")},
	}

	_, _, balanced := accounting.ComputeEntryTotals(lines)
	assert.False(t, balanced)
}

func TestConvertLineToMADDefaultsCurrency(t *testing.T) {
	line := accounting.ConvertLineToMAD(domain.EntryLine{Debit: d("500")})

	assert.Equal(t, "MAD", line.Currency)
	assert.True(t, line.ExchangeRate.Equal(decimal.NewFromInt(1)))
	assert.True(t, line.DebitMAD.Equal(d("500")))
}

func TestConvertLineToMADForeignCurrency(t *testing.T) {
	line := accounting.ConvertLineToMAD(domain.EntryLine{
		Credit:       d("100"),
		Currency:     "EUR",
		ExchangeRate: d("10.857"),
	})

	assert.True(t, line.CreditMAD.Equal(d("1085.70")))
	assert.True(t, line.DebitMAD.IsZero())
}

func TestComputeLineAmountsWithDiscount(t *testing.T) {
	line := accounting.ComputeLineAmounts(domain.InvoiceLine{
		Quantity:     d("10"),
		UnitPrice:    d("100"),
		DiscountRate: d("10"),
		VATRate:      d("20"),
	})

	assert.True(t, line.Subtotal.Equal(d("900")))
	assert.True(t, line.VATAmount.Equal(d("180")))
	assert.True(t, line.Total.Equal(d("1080")))
}

func TestComputeInvoiceTotalsMultiRate(t *testing.T) {
	lines := []domain.InvoiceLine{
		accounting.ComputeLineAmounts(domain.InvoiceLine{Quantity: d("1"), UnitPrice: d("10000"), VATRate: d("20")}),
		accounting.ComputeLineAmounts(domain.InvoiceLine{Quantity: d("1"), UnitPrice: d("1000"), VATRate: d("7")}),
		accounting.ComputeLineAmounts(domain.InvoiceLine{Quantity: d("1"), UnitPrice: d("500"), VATRate: d("14")}),
	}

	totals := accounting.ComputeInvoiceTotals(lines, decimal.Zero)

	assert.True(t, totals.TotalHT.Equal(d("11500")))
	assert.True(t, totals.TotalVAT.Equal(d("2140")))
	assert.True(t, totals.TotalTTC.Equal(d("13640")))

	// One bucket per rate, ordered ascending, summing back to the total.
	require.Len(t, totals.VATBreakdown, 3)
	assert.True(t, totals.VATBreakdown[0].Rate.Equal(d("7")))
	assert.True(t, totals.VATBreakdown[2].Rate.Equal(d("20")))
	sum := decimal.Zero
	for _, b := range totals.VATBreakdown {
		sum = sum.Add(b.Amount)
	}
	assert.True(t, sum.Equal(totals.TotalVAT))
}

func TestComputeInvoiceTotalsGlobalDiscountPerRate(t *testing.T) {
	lines := []domain.InvoiceLine{
		accounting.ComputeLineAmounts(domain.InvoiceLine{Quantity: d("1"), UnitPrice: d("1000"), VATRate: d("20")}),
		accounting.ComputeLineAmounts(domain.InvoiceLine{Quantity: d("1"), UnitPrice: d("1000"), VATRate: d("7")}),
	}

	totals := accounting.ComputeInvoiceTotals(lines, d("10"))

	// Each line's base is discounted before taxing at its own rate.
	assert.True(t, totals.TotalHT.Equal(d("1800")))
	require.Len(t, totals.VATBreakdown, 2)
	assert.True(t, totals.VATBreakdown[0].Base.Equal(d("900")))
	assert.True(t, totals.VATBreakdown[0].Amount.Equal(d("63")))
	assert.True(t, totals.VATBreakdown[1].Amount.Equal(d("180")))
	assert.True(t, totals.TotalVAT.Equal(d("243")))
}

func TestComputeInvoiceTotalsEmpty(t *testing.T) {
	totals := accounting.ComputeInvoiceTotals(nil, decimal.Zero)

	assert.True(t, totals.TotalTTC.IsZero())
	assert.Empty(t, totals.VATBreakdown)
}

func TestScaleDeductible(t *testing.T) {
	assert.True(t, accounting.ScaleDeductible(d("140"), d("70")).Equal(d("98")))
	assert.True(t, accounting.ScaleDeductible(d("200"), d("100")).Equal(d("200")))
	assert.True(t, accounting.ScaleDeductible(d("200"), d("0")).IsZero())
}
