package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mizanpro/mizan_backend/internal/apperrors"
	"github.com/mizanpro/mizan_backend/internal/core/domain"
	portsrepo "github.com/mizanpro/mizan_backend/internal/core/ports/repositories"
	"github.com/mizanpro/mizan_backend/internal/dto"
	"github.com/mizanpro/mizan_backend/internal/middleware"
)

// PeriodService manages fiscal years and their monthly accounting periods.
type PeriodService struct {
	periodRepo portsrepo.PeriodRepositoryFacade
	entryRepo  portsrepo.EntryRepositoryWithTx
}

// NewPeriodService creates a new PeriodService.
func NewPeriodService(periodRepo portsrepo.PeriodRepositoryFacade, entryRepo portsrepo.EntryRepositoryWithTx) *PeriodService {
	return &PeriodService{periodRepo: periodRepo, entryRepo: entryRepo}
}

// CreateFiscalYear persists a fiscal year running twelve months from the
// start date, generating one open period per month.
func (s *PeriodService) CreateFiscalYear(ctx context.Context, companyID string, req dto.CreateFiscalYearRequest, creatorUserID string) (*domain.FiscalYear, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	start := time.Date(req.StartDate.Year(), req.StartDate.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0).Add(-time.Nanosecond)

	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	year := domain.FiscalYear{
		FiscalYearID: uuid.NewString(),
		CompanyID:    companyID,
		Label:        req.Label,
		StartDate:    start,
		EndDate:      end,
		IsClosed:     false,
		AuditFields:  audit,
	}

	periods := make([]domain.AccountingPeriod, 0, 12)
	for m := 0; m < 12; m++ {
		pStart := start.AddDate(0, m, 0)
		pEnd := pStart.AddDate(0, 1, 0).Add(-time.Nanosecond)
		periods = append(periods, domain.AccountingPeriod{
			PeriodID:     uuid.NewString(),
			FiscalYearID: year.FiscalYearID,
			CompanyID:    companyID,
			Label:        pStart.Format("2006-01"),
			StartDate:    pStart,
			EndDate:      pEnd,
			IsOpen:       true,
			IsClosed:     false,
			AuditFields:  audit,
		})
	}

	if err := s.periodRepo.SaveFiscalYear(ctx, year, periods); err != nil {
		logger.Error("Failed to save fiscal year", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, err
	}

	logger.Info("Fiscal year created", slog.String("fiscal_year_id", year.FiscalYearID), slog.String("label", year.Label))
	return &year, nil
}

// GetPeriodByID retrieves one period, scoped to the company.
func (s *PeriodService) GetPeriodByID(ctx context.Context, companyID string, periodID string) (*domain.AccountingPeriod, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return nil, err
	}
	if period.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	return period, nil
}

// ListFiscalYears retrieves a company's fiscal years, newest first.
func (s *PeriodService) ListFiscalYears(ctx context.Context, companyID string) ([]domain.FiscalYear, error) {
	years, err := s.periodRepo.ListFiscalYears(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if years == nil {
		return []domain.FiscalYear{}, nil
	}
	return years, nil
}

// ListPeriods retrieves a fiscal year's periods in date order.
func (s *PeriodService) ListPeriods(ctx context.Context, companyID string, fiscalYearID string) ([]domain.AccountingPeriod, error) {
	year, err := s.periodRepo.FindFiscalYearByID(ctx, fiscalYearID)
	if err != nil {
		return nil, err
	}
	if year.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	periods, err := s.periodRepo.ListPeriods(ctx, fiscalYearID)
	if err != nil {
		return nil, err
	}
	if periods == nil {
		return []domain.AccountingPeriod{}, nil
	}
	return periods, nil
}

// ClosePeriod closes a period and locks every entry in it. Unvalidated
// entries block the close: they must be validated or deleted first.
func (s *PeriodService) ClosePeriod(ctx context.Context, companyID string, periodID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	period, err := s.GetPeriodByID(ctx, companyID, periodID)
	if err != nil {
		return err
	}
	if period.IsClosed {
		return fmt.Errorf("%w: period %s is already closed", apperrors.ErrConflict, period.Label)
	}

	entries, err := s.entryRepo.ListEntriesByPeriod(ctx, periodID, false)
	if err != nil {
		return err
	}
	draftCount := 0
	for _, e := range entries {
		if !e.IsValidated {
			draftCount++
		}
	}
	if draftCount > 0 {
		return fmt.Errorf("%w: %d unvalidated entries in period %s", apperrors.ErrConflict, draftCount, period.Label)
	}

	now := time.Now()
	locked, err := s.entryRepo.LockEntriesByPeriod(ctx, periodID, userID, now)
	if err != nil {
		logger.Error("Failed to lock period entries", slog.String("error", err.Error()), slog.String("period_id", periodID))
		return err
	}

	period.IsOpen = false
	period.IsClosed = true
	period.LastUpdatedAt = now
	period.LastUpdatedBy = userID
	if err := s.periodRepo.UpdatePeriod(ctx, *period); err != nil {
		logger.Error("Failed to close period", slog.String("error", err.Error()), slog.String("period_id", periodID))
		return err
	}

	logger.Info("Period closed", slog.String("period_id", periodID), slog.Int64("entries_locked", locked))
	return nil
}

// CloseFiscalYear closes a fiscal year once every period in it is closed.
func (s *PeriodService) CloseFiscalYear(ctx context.Context, companyID string, fiscalYearID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	year, err := s.periodRepo.FindFiscalYearByID(ctx, fiscalYearID)
	if err != nil {
		return err
	}
	if year.CompanyID != companyID {
		return apperrors.ErrNotFound
	}
	if year.IsClosed {
		return fmt.Errorf("%w: fiscal year %s is already closed", apperrors.ErrConflict, year.Label)
	}

	periods, err := s.periodRepo.ListPeriods(ctx, fiscalYearID)
	if err != nil {
		return err
	}
	for _, p := range periods {
		if !p.IsClosed {
			return fmt.Errorf("%w: period %s is still open", apperrors.ErrConflict, p.Label)
		}
	}

	year.IsClosed = true
	year.LastUpdatedAt = time.Now()
	year.LastUpdatedBy = userID
	if err := s.periodRepo.UpdateFiscalYear(ctx, *year); err != nil {
		logger.Error("Failed to close fiscal year", slog.String("error", err.Error()), slog.String("fiscal_year_id", fiscalYearID))
		return err
	}

	logger.Info("Fiscal year closed", slog.String("fiscal_year_id", fiscalYearID))
	return nil
}
