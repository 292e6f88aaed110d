package dto

import (
	"time"

	"github.com/mizanpro/mizan_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateVATLineRequest records one taxable operation. DeductionRate is only
// meaningful on DEDUCTIBLE lines and defaults to full deductibility.
type CreateVATLineRequest struct {
	Type          domain.VATLineType `json:"type" binding:"required,oneof=COLLECTED DEDUCTIBLE"`
	Rate          int                `json:"rate" binding:"oneof=0 7 10 14 20"`
	BaseAmount    decimal.Decimal    `json:"baseAmount" binding:"required"`
	VATAmount     decimal.Decimal    `json:"vatAmount"`
	DeductionRate *decimal.Decimal   `json:"deductionRate"`
	DocumentDate  time.Time          `json:"documentDate" binding:"required"`
	DocumentRef   string             `json:"documentRef"`
	InvoiceID     *string            `json:"invoiceID"`
}

// CreateDeclarationRequest opens a declaration over a date range.
type CreateDeclarationRequest struct {
	Label     string    `json:"label" binding:"required"`
	Regime    string    `json:"regime" binding:"omitempty,oneof=MENSUEL TRIMESTRIEL"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
}

// CreateAdjustmentRequest records a manual correction on a declaration.
type CreateAdjustmentRequest struct {
	Label  string          `json:"label" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// ChangeDeclarationStatusRequest carries a declaration status transition.
type ChangeDeclarationStatusRequest struct {
	Status domain.VATDeclarationStatus `json:"status" binding:"required,oneof=DRAFT IN_PROGRESS SUBMITTED PAID"`
}

// VATLineResponse mirrors domain.VATLine.
type VATLineResponse struct {
	VATLineID     string             `json:"vatLineID"`
	Type          domain.VATLineType `json:"type"`
	Rate          int                `json:"rate"`
	BaseAmount    decimal.Decimal    `json:"baseAmount"`
	VATAmount     decimal.Decimal    `json:"vatAmount"`
	DeductionRate decimal.Decimal    `json:"deductionRate"`
	DocumentDate  time.Time          `json:"documentDate"`
	DocumentRef   string             `json:"documentRef"`
}

// DeclarationResponse mirrors domain.VATDeclaration.
type DeclarationResponse struct {
	DeclarationID      string                      `json:"declarationID"`
	Label              string                      `json:"label"`
	Regime             string                      `json:"regime"`
	StartDate          time.Time                   `json:"startDate"`
	EndDate            time.Time                   `json:"endDate"`
	Status             domain.VATDeclarationStatus `json:"status"`
	Locked             bool                        `json:"locked"`
	Collected          []domain.RateTotals         `json:"collected"`
	Deductible         []domain.RateTotals         `json:"deductible"`
	TotalCollectedVAT  decimal.Decimal             `json:"totalCollectedVAT"`
	TotalDeductibleVAT decimal.Decimal             `json:"totalDeductibleVAT"`
	TotalAdjustments   decimal.Decimal             `json:"totalAdjustments"`
	NetVAT             decimal.Decimal             `json:"netVAT"`
	VATCredit          decimal.Decimal             `json:"vatCredit"`
	VATToPay           decimal.Decimal             `json:"vatToPay"`
}

// ToVATLineResponse converts a domain.VATLine to its response DTO.
func ToVATLineResponse(l *domain.VATLine) VATLineResponse {
	return VATLineResponse{
		VATLineID:     l.VATLineID,
		Type:          l.Type,
		Rate:          l.Rate,
		BaseAmount:    l.BaseAmount,
		VATAmount:     l.VATAmount,
		DeductionRate: l.DeductionRate,
		DocumentDate:  l.DocumentDate,
		DocumentRef:   l.DocumentRef,
	}
}

// ToDeclarationResponse converts a domain.VATDeclaration to its response DTO.
func ToDeclarationResponse(d *domain.VATDeclaration) DeclarationResponse {
	return DeclarationResponse{
		DeclarationID:      d.DeclarationID,
		Label:              d.Label,
		Regime:             d.Regime,
		StartDate:          d.StartDate,
		EndDate:            d.EndDate,
		Status:             d.Status,
		Locked:             d.Locked,
		Collected:          d.Collected,
		Deductible:         d.Deductible,
		TotalCollectedVAT:  d.TotalCollectedVAT,
		TotalDeductibleVAT: d.TotalDeductibleVAT,
		TotalAdjustments:   d.TotalAdjustments,
		NetVAT:             d.NetVAT,
		VATCredit:          d.VATCredit,
		VATToPay:           d.VATToPay,
	}
}

// ToDeclarationResponses converts a slice of declarations.
func ToDeclarationResponses(ds []domain.VATDeclaration) []DeclarationResponse {
	res := make([]DeclarationResponse, len(ds))
	for i := range ds {
		res[i] = ToDeclarationResponse(&ds[i])
	}
	return res
}
