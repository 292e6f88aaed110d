package services

import (
	"context"

	"github.com/mizanpro/mizan_backend/internal/core/domain"
	"github.com/mizanpro/mizan_backend/internal/dto"
)

// CompanySvcFacade manages companies. Creating a company seeds its CGNC chart
// of accounts and standard journal books.
type CompanySvcFacade interface {
	// CreateCompany persists a new company and seeds its reference data.
	CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) (*domain.Company, error)

	// GetCompanyByID retrieves a company.
	GetCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)

	// ListCompanies retrieves all companies.
	ListCompanies(ctx context.Context) ([]domain.Company, error)

	// UpdateCompany updates a company's details.
	UpdateCompany(ctx context.Context, companyID string, req dto.UpdateCompanyRequest, userID string) (*domain.Company, error)
}
