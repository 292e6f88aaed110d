package dto

import (
	"time"

	"github.com/mizanpro/mizan_backend/internal/core/domain"
)

// CreateFiscalYearRequest opens a new accounting exercise. The twelve monthly
// periods are generated from the start date.
type CreateFiscalYearRequest struct {
	Label     string    `json:"label" binding:"required"`
	StartDate time.Time `json:"startDate" binding:"required"`
}

// FiscalYearResponse mirrors domain.FiscalYear.
type FiscalYearResponse struct {
	FiscalYearID string    `json:"fiscalYearID"`
	Label        string    `json:"label"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	IsClosed     bool      `json:"isClosed"`
}

// PeriodResponse mirrors domain.AccountingPeriod.
type PeriodResponse struct {
	PeriodID     string    `json:"periodID"`
	FiscalYearID string    `json:"fiscalYearID"`
	Label        string    `json:"label"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	IsOpen       bool      `json:"isOpen"`
	IsClosed     bool      `json:"isClosed"`
}

// ToFiscalYearResponse converts a domain.FiscalYear to its response DTO.
func ToFiscalYearResponse(fy *domain.FiscalYear) FiscalYearResponse {
	return FiscalYearResponse{
		FiscalYearID: fy.FiscalYearID,
		Label:        fy.Label,
		StartDate:    fy.StartDate,
		EndDate:      fy.EndDate,
		IsClosed:     fy.IsClosed,
	}
}

// ToPeriodResponse converts a domain.AccountingPeriod to its response DTO.
func ToPeriodResponse(p *domain.AccountingPeriod) PeriodResponse {
	return PeriodResponse{
		PeriodID:     p.PeriodID,
		FiscalYearID: p.FiscalYearID,
		Label:        p.Label,
		StartDate:    p.StartDate,
		EndDate:      p.EndDate,
		IsOpen:       p.IsOpen,
		IsClosed:     p.IsClosed,
	}
}

// ToPeriodResponses converts a slice of periods.
func ToPeriodResponses(periods []domain.AccountingPeriod) []PeriodResponse {
	res := make([]PeriodResponse, len(periods))
	for i := range periods {
		res[i] = ToPeriodResponse(&periods[i])
	}
	return res
}
