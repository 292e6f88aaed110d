package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the row representation of a commercial document header.
// VAT breakdown and payments live in their own tables.
type Invoice struct {
	InvoiceID          string          `db:"invoice_id"`
	CompanyID          string          `db:"company_id"`
	Number             string          `db:"number"`
	Type               string          `db:"type"`
	Status             string          `db:"status"`
	ThirdPartyID       string          `db:"third_party_id"`
	IssueDate          time.Time       `db:"issue_date"`
	DueDate            time.Time       `db:"due_date"`
	GlobalDiscountRate decimal.Decimal `db:"global_discount_rate"`
	SubtotalHT         decimal.Decimal `db:"subtotal_ht"`
	TotalHT            decimal.Decimal `db:"total_ht"`
	TotalVAT           decimal.Decimal `db:"total_vat"`
	TotalTTC           decimal.Decimal `db:"total_ttc"`
	AmountPaid         decimal.Decimal `db:"amount_paid"`
	AmountDue          decimal.Decimal `db:"amount_due"`
	ReminderCount      int             `db:"reminder_count"`
	ConvertedToID      *string         `db:"converted_to_id"`
	Notes              string          `db:"notes"`
	AuditFields
}

// InvoiceLine is the row representation of one billed item.
type InvoiceLine struct {
	LineID       string          `db:"line_id"`
	InvoiceID    string          `db:"invoice_id"`
	Description  string          `db:"description"`
	Quantity     decimal.Decimal `db:"quantity"`
	UnitPrice    decimal.Decimal `db:"unit_price"`
	DiscountRate decimal.Decimal `db:"discount_rate"`
	VATRate      decimal.Decimal `db:"vat_rate"`
	Subtotal     decimal.Decimal `db:"subtotal"`
	VATAmount    decimal.Decimal `db:"vat_amount"`
	Total        decimal.Decimal `db:"total"`
}

// InvoiceVATBucket is the row representation of one per-rate VAT aggregate.
type InvoiceVATBucket struct {
	InvoiceID string          `db:"invoice_id"`
	Rate      decimal.Decimal `db:"rate"`
	Base      decimal.Decimal `db:"base"`
	Amount    decimal.Decimal `db:"amount"`
}

// Payment is the row representation of a settlement against an invoice.
type Payment struct {
	PaymentID string          `db:"payment_id"`
	InvoiceID string          `db:"invoice_id"`
	Amount    decimal.Decimal `db:"amount"`
	Method    string          `db:"method"`
	Reference string          `db:"reference"`
	Date      time.Time       `db:"date"`
	AuditFields
}
