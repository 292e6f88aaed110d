package accounting

import (
	"sort"

	"github.com/mizanpro/mizan_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// ComputeEntryTotals sums the MAD sides of an entry's lines and reports
// whether they balance within the ledger tolerance. This is used by both the
// service (at creation) and validation, so the flag and the gate can never
// disagree.
func ComputeEntryTotals(lines []domain.EntryLine) (totalDebit, totalCredit decimal.Decimal, isBalanced bool) {
	totalDebit = decimal.Zero
	totalCredit = decimal.Zero
	for _, line := range lines {
		totalDebit = totalDebit.Add(line.DebitMAD)
		totalCredit = totalCredit.Add(line.CreditMAD)
	}
	isBalanced = totalDebit.Sub(totalCredit).Abs().LessThan(domain.BalanceTolerance)
	return totalDebit, totalCredit, isBalanced
}

// ConvertLineToMAD fills DebitMAD/CreditMAD from the original-currency
// amounts. MAD lines pass through unchanged; foreign lines are multiplied by
// the line's exchange rate and rounded to the centime.
func ConvertLineToMAD(line domain.EntryLine) domain.EntryLine {
	if line.Currency == "" || line.Currency == "MAD" {
		line.Currency = "MAD"
		line.ExchangeRate = decimal.NewFromInt(1)
		line.DebitMAD = line.Debit
		line.CreditMAD = line.Credit
		return line
	}
	line.DebitMAD = line.Debit.Mul(line.ExchangeRate).Round(2)
	line.CreditMAD = line.Credit.Mul(line.ExchangeRate).Round(2)
	return line
}

// ComputeLineAmounts derives an invoice line's subtotal, VAT amount and total
// from its raw fields.
func ComputeLineAmounts(line domain.InvoiceLine) domain.InvoiceLine {
	discountFactor := decimal.NewFromInt(1).Sub(line.DiscountRate.Div(oneHundred))
	line.Subtotal = line.Quantity.Mul(line.UnitPrice).Mul(discountFactor).Round(2)
	line.VATAmount = line.Subtotal.Mul(line.VATRate).Div(oneHundred).Round(2)
	line.Total = line.Subtotal.Add(line.VATAmount)
	return line
}

// InvoiceTotals is the result of ComputeInvoiceTotals.
type InvoiceTotals struct {
	SubtotalHT   decimal.Decimal
	TotalHT      decimal.Decimal
	TotalVAT     decimal.Decimal
	TotalTTC     decimal.Decimal
	VATBreakdown []domain.VATBucket
}

// ComputeInvoiceTotals computes an invoice's totals from its lines and the
// global discount rate. Lines may carry different statutory VAT rates, so the
// discount-adjusted base of each line is taxed at the line's own rate and
// accumulated into a per-rate bucket before summing; a single multiply over
// the discounted total would misallocate tax across rates.
func ComputeInvoiceTotals(lines []domain.InvoiceLine, globalDiscountRate decimal.Decimal) InvoiceTotals {
	subtotalHT := decimal.Zero
	for _, line := range lines {
		subtotalHT = subtotalHT.Add(line.Subtotal)
	}

	discountFactor := decimal.NewFromInt(1).Sub(globalDiscountRate.Div(oneHundred))
	totalHT := subtotalHT.Mul(discountFactor).Round(2)

	buckets := make(map[string]*domain.VATBucket)
	for _, line := range lines {
		base := line.Subtotal.Mul(discountFactor).Round(2)
		amount := base.Mul(line.VATRate).Div(oneHundred).Round(2)
		key := line.VATRate.String()
		b, ok := buckets[key]
		if !ok {
			b = &domain.VATBucket{Rate: line.VATRate}
			buckets[key] = b
		}
		b.Base = b.Base.Add(base)
		b.Amount = b.Amount.Add(amount)
	}

	breakdown := make([]domain.VATBucket, 0, len(buckets))
	totalVAT := decimal.Zero
	for _, b := range buckets {
		breakdown = append(breakdown, *b)
		totalVAT = totalVAT.Add(b.Amount)
	}
	sort.Slice(breakdown, func(i, j int) bool {
		return breakdown[i].Rate.LessThan(breakdown[j].Rate)
	})

	return InvoiceTotals{
		SubtotalHT:   subtotalHT,
		TotalHT:      totalHT,
		TotalVAT:     totalVAT,
		TotalTTC:     totalHT.Add(totalVAT),
		VATBreakdown: breakdown,
	}
}

// ScaleDeductible applies a line's partial-deduction eligibility to its VAT
// amount: only DeductionRate percent of the input VAT may be reclaimed.
func ScaleDeductible(vatAmount, deductionRate decimal.Decimal) decimal.Decimal {
	return vatAmount.Mul(deductionRate).Div(oneHundred).Round(2)
}
