package services

import (
	"context"

	"github.com/mizanpro/mizan_backend/internal/core/domain"
	"github.com/mizanpro/mizan_backend/internal/dto"
)

// PeriodSvcFacade manages fiscal years and their monthly periods.
type PeriodSvcFacade interface {
	// CreateFiscalYear persists a fiscal year and generates its 12 monthly
	// periods, all open.
	CreateFiscalYear(ctx context.Context, companyID string, req dto.CreateFiscalYearRequest, creatorUserID string) (*domain.FiscalYear, error)

	// GetPeriodByID retrieves one accounting period.
	GetPeriodByID(ctx context.Context, companyID string, periodID string) (*domain.AccountingPeriod, error)

	// ListFiscalYears retrieves a company's fiscal years, newest first.
	ListFiscalYears(ctx context.Context, companyID string) ([]domain.FiscalYear, error)

	// ListPeriods retrieves a fiscal year's periods in date order.
	ListPeriods(ctx context.Context, companyID string, fiscalYearID string) ([]domain.AccountingPeriod, error)

	// ClosePeriod closes a period and locks its entries. Draft (unvalidated)
	// entries in the period block the close.
	ClosePeriod(ctx context.Context, companyID string, periodID string, userID string) error

	// CloseFiscalYear closes a fiscal year once all its periods are closed.
	CloseFiscalYear(ctx context.Context, companyID string, fiscalYearID string, userID string) error
}
