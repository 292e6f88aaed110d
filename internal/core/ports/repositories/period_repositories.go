package repositories

import (
	"context"
	"time"

	"github.com/mizanpro/mizan_backend/internal/core/domain"
)

// PeriodReader defines read operations for fiscal years and periods.
type PeriodReader interface {
	// FindFiscalYearByID retrieves a fiscal year.
	FindFiscalYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error)

	// FindPeriodByID retrieves an accounting period.
	FindPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error)

	// FindPeriodByDate retrieves the period containing a date for a company.
	FindPeriodByDate(ctx context.Context, companyID string, date time.Time) (*domain.AccountingPeriod, error)

	// ListFiscalYears retrieves a company's fiscal years, newest first.
	ListFiscalYears(ctx context.Context, companyID string) ([]domain.FiscalYear, error)

	// ListPeriods retrieves the periods of a fiscal year in date order.
	ListPeriods(ctx context.Context, fiscalYearID string) ([]domain.AccountingPeriod, error)
}

// PeriodWriter defines write operations for fiscal years and periods.
type PeriodWriter interface {
	// SaveFiscalYear persists a fiscal year and its generated periods atomically.
	SaveFiscalYear(ctx context.Context, year domain.FiscalYear, periods []domain.AccountingPeriod) error

	// UpdatePeriod updates a period's open/closed flags.
	UpdatePeriod(ctx context.Context, period domain.AccountingPeriod) error

	// UpdateFiscalYear updates a fiscal year's closed flag.
	UpdateFiscalYear(ctx context.Context, year domain.FiscalYear) error
}

// PeriodRepositoryFacade combines all period repository interfaces.
type PeriodRepositoryFacade interface {
	PeriodReader
	PeriodWriter
}
