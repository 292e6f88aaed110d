package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// VATLineType is the direction of a VAT line: tax the company collected on
// sales, or tax it paid and may deduct on purchases.
type VATLineType string

const (
	VATCollected  VATLineType = "COLLECTED"
	VATDeductible VATLineType = "DEDUCTIBLE"
)

// StatutoryVATRates are the Moroccan VAT rates a line may carry, in percent.
var StatutoryVATRates = []int{0, 7, 10, 14, 20}

// IsStatutoryVATRate reports whether rate is one of the legal rates.
func IsStatutoryVATRate(rate int) bool {
	for _, r := range StatutoryVATRates {
		if r == rate {
			return true
		}
	}
	return false
}

// VATLine is one taxable operation feeding declarations. Deductible lines
// carry a DeductionRate (percent): certain expense categories only allow a
// fraction of the input VAT to be reclaimed.
type VATLine struct {
	VATLineID     string          `json:"vatLineID"`
	CompanyID     string          `json:"companyID"`
	Type          VATLineType     `json:"type"`
	Rate          int             `json:"rate"` // percent, statutory
	BaseAmount    decimal.Decimal `json:"baseAmount"`
	VATAmount     decimal.Decimal `json:"vatAmount"`
	DeductionRate decimal.Decimal `json:"deductionRate"` // percent, 100 for fully deductible
	DocumentDate  time.Time       `json:"documentDate"`
	DocumentRef   string          `json:"documentRef"` // Invoice number or piece reference
	InvoiceID     *string         `json:"invoiceID,omitempty"`
	AuditFields
}

// VATAdjustment is a manual correction applied on top of the computed net VAT
// (regularizations, prorata corrections). Positive increases VAT due.
type VATAdjustment struct {
	AdjustmentID  string          `json:"adjustmentID"`
	DeclarationID string          `json:"declarationID"`
	Label         string          `json:"label"`
	Amount        decimal.Decimal `json:"amount"`
	AuditFields
}

// VATDeclarationStatus is the lifecycle of a declaration. Locking is an
// orthogonal flag, not a status.
type VATDeclarationStatus string

const (
	DeclarationDraft      VATDeclarationStatus = "DRAFT"
	DeclarationInProgress VATDeclarationStatus = "IN_PROGRESS"
	DeclarationSubmitted  VATDeclarationStatus = "SUBMITTED"
	DeclarationPaid       VATDeclarationStatus = "PAID"
)

// RateTotals is the aggregate for one statutory rate in one direction.
type RateTotals struct {
	Rate      int             `json:"rate"`
	Base      decimal.Decimal `json:"base"`
	VATAmount decimal.Decimal `json:"vatAmount"`
}

// VATDeclaration aggregates the company's VAT lines over a date range into
// per-rate buckets and a net position.
//
//	netVAT   = totalCollectedVAT - totalDeductibleVAT + totalAdjustments
//	vatToPay = netVAT - vatCredit (previous period's carried credit)
//
// A negative vatToPay becomes the credit carried into the next declaration.
type VATDeclaration struct {
	DeclarationID     string               `json:"declarationID"`
	CompanyID         string               `json:"companyID"`
	Label             string               `json:"label"` // e.g. "TVA 2026-01"
	Regime            string               `json:"regime"`
	StartDate         time.Time            `json:"startDate"`
	EndDate           time.Time            `json:"endDate"`
	Status            VATDeclarationStatus `json:"status"`
	Locked            bool                 `json:"locked"`
	Collected         []RateTotals         `json:"collected"`  // one bucket per statutory rate
	Deductible        []RateTotals         `json:"deductible"` // deduction-rate scaled
	TotalCollectedVAT decimal.Decimal      `json:"totalCollectedVAT"`
	TotalDeductibleVAT decimal.Decimal     `json:"totalDeductibleVAT"`
	TotalAdjustments  decimal.Decimal      `json:"totalAdjustments"`
	NetVAT            decimal.Decimal      `json:"netVAT"`
	VATCredit         decimal.Decimal      `json:"vatCredit"` // credit carried in from the previous period
	VATToPay          decimal.Decimal      `json:"vatToPay"`
	AuditFields
}

// declarationTransitions enumerates allowed status moves. Recalculation pulls
// a DRAFT declaration to IN_PROGRESS; submission and payment are caller-driven.
// A declaration cannot be submitted before it has been calculated at least once.
var declarationTransitions = map[VATDeclarationStatus][]VATDeclarationStatus{
	DeclarationDraft:      {DeclarationInProgress},
	DeclarationInProgress: {DeclarationSubmitted},
	DeclarationSubmitted:  {DeclarationPaid},
	DeclarationPaid:       {},
}

// CanTransitionDeclaration reports whether a declaration may move between the
// two statuses.
func CanTransitionDeclaration(from, to VATDeclarationStatus) bool {
	for _, next := range declarationTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
