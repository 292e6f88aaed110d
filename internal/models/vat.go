package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// VATLine is the row representation of one taxable operation.
type VATLine struct {
	VATLineID     string          `db:"vat_line_id"`
	CompanyID     string          `db:"company_id"`
	Type          string          `db:"type"`
	Rate          int             `db:"rate"`
	BaseAmount    decimal.Decimal `db:"base_amount"`
	VATAmount     decimal.Decimal `db:"vat_amount"`
	DeductionRate decimal.Decimal `db:"deduction_rate"`
	DocumentDate  time.Time       `db:"document_date"`
	DocumentRef   string          `db:"document_ref"`
	InvoiceID     *string         `db:"invoice_id"`
	AuditFields
}

// VATAdjustment is the row representation of a manual declaration correction.
type VATAdjustment struct {
	AdjustmentID  string          `db:"adjustment_id"`
	DeclarationID string          `db:"declaration_id"`
	Label         string          `db:"label"`
	Amount        decimal.Decimal `db:"amount"`
	AuditFields
}

// VATDeclaration is the row representation of a declaration header. The
// per-rate buckets live in vat_declaration_buckets.
type VATDeclaration struct {
	DeclarationID      string          `db:"declaration_id"`
	CompanyID          string          `db:"company_id"`
	Label              string          `db:"label"`
	Regime             string          `db:"regime"`
	StartDate          time.Time       `db:"start_date"`
	EndDate            time.Time       `db:"end_date"`
	Status             string          `db:"status"`
	Locked             bool            `db:"locked"`
	TotalCollectedVAT  decimal.Decimal `db:"total_collected_vat"`
	TotalDeductibleVAT decimal.Decimal `db:"total_deductible_vat"`
	TotalAdjustments   decimal.Decimal `db:"total_adjustments"`
	NetVAT             decimal.Decimal `db:"net_vat"`
	VATCredit          decimal.Decimal `db:"vat_credit"`
	VATToPay           decimal.Decimal `db:"vat_to_pay"`
	AuditFields
}

// VATDeclarationBucket is the row representation of one per-rate aggregate
// on a declaration, in one direction (COLLECTED or DEDUCTIBLE).
type VATDeclarationBucket struct {
	DeclarationID string          `db:"declaration_id"`
	Direction     string          `db:"direction"`
	Rate          int             `db:"rate"`
	Base          decimal.Decimal `db:"base"`
	VATAmount     decimal.Decimal `db:"vat_amount"`
}
