package services

import (
	"context"
	"errors"
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

// CompanyService manages companies and seeds their reference data: the CGNC
// chart of accounts and the standard journal books.
type CompanyService struct {
	companyRepo portsrepo.CompanyRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	journalRepo portsrepo.JournalRepositoryFacade
}

// NewCompanyService creates a new CompanyService.
func NewCompanyService(companyRepo portsrepo.CompanyRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, journalRepo portsrepo.JournalRepositoryFacade) *CompanyService {
	return &CompanyService{
		companyRepo: companyRepo,
		accountRepo: accountRepo,
		journalRepo: journalRepo,
	}
}

// CreateCompany persists a new company, then seeds its CGNC chart and the
// standard journals (VTE, ACH, BNQ, CSE, OD).
func (s *CompanyService) CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) (*domain.Company, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	company := domain.Company{
		CompanyID: uuid.NewString(),
		Name:      req.Name,
		ICE:       req.ICE,
		IF:        req.IF,
		RC:        req.RC,
		Address:   req.Address,
		City:      req.City,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.companyRepo.SaveCompany(ctx, company); err != nil {
		logger.Error("Failed to save company", slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.seedChart(ctx, company.CompanyID, creatorUserID, now); err != nil {
		logger.Error("Failed to seed chart of accounts", slog.String("error", err.Error()), slog.String("company_id", company.CompanyID))
		return nil, fmt.Errorf("failed to seed chart of accounts: %w", err)
	}

	if err := s.seedJournals(ctx, company.CompanyID, creatorUserID, now); err != nil {
		logger.Error("Failed to seed journals", slog.String("error", err.Error()), slog.String("company_id", company.CompanyID))
		return nil, fmt.Errorf("failed to seed journals: %w", err)
	}

	logger.Info("Company created and seeded", slog.String("company_id", company.CompanyID))
	return &company, nil
}

// seedChart inserts the CGNC chart of accounts for a fresh company.
func (s *CompanyService) seedChart(ctx context.Context, companyID, userID string, now time.Time) error {
	accounts := make([]domain.Account, 0, len(domain.CGNCChart))
	for _, entry := range domain.CGNCChart {
		class := domain.ClassForNumber(entry.Number)
		accounts = append(accounts, domain.Account{
			AccountID:       uuid.NewString(),
			CompanyID:       companyID,
			Number:          entry.Number,
			Label:           entry.Label,
			Class:           class,
			AccountType:     domain.TypeForClass(class),
			IsDetailAccount: entry.IsDetail,
			IsCustom:        false,
			IsActive:        true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		})
	}
	return s.accountRepo.SaveAccounts(ctx, accounts)
}

// seedJournals inserts the standard journal books for a fresh company.
func (s *CompanyService) seedJournals(ctx context.Context, companyID, userID string, now time.Time) error {
	journals := make([]domain.Journal, 0, len(domain.StandardJournals))
	for _, seed := range domain.StandardJournals {
		journals = append(journals, domain.Journal{
			JournalID:       uuid.NewString(),
			CompanyID:       companyID,
			Code:            seed.Code,
			Label:           seed.Label,
			LastEntryNumber: 0,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		})
	}
	return s.journalRepo.SaveJournals(ctx, journals)
}

// GetCompanyByID retrieves a company.
func (s *CompanyService) GetCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find company", slog.String("error", err.Error()), slog.String("company_id", companyID))
		}
		return nil, err
	}
	return company, nil
}

// ListCompanies retrieves all companies.
func (s *CompanyService) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	companies, err := s.companyRepo.ListCompanies(ctx)
	if err != nil {
		logger.Error("Failed to list companies", slog.String("error", err.Error()))
		return nil, err
	}
	if companies == nil {
		return []domain.Company{}, nil
	}
	return companies, nil
}

// UpdateCompany applies the provided fields to a company.
func (s *CompanyService) UpdateCompany(ctx context.Context, companyID string, req dto.UpdateCompanyRequest, userID string) (*domain.Company, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.Address != nil {
		company.Address = *req.Address
	}
	if req.City != nil {
		company.City = *req.City
	}
	company.LastUpdatedAt = time.Now()
	company.LastUpdatedBy = userID

	if err := s.companyRepo.UpdateCompany(ctx, *company); err != nil {
		logger.Error("Failed to update company", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, err
	}
	return company, nil
}
