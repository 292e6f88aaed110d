package services

import (
	"context"

	"github.com/mizanpro/mizan_backend/internal/core/domain"
	"github.com/mizanpro/mizan_backend/internal/dto"
)

// ThirdPartySvcFacade manages the customer/supplier registry.
type ThirdPartySvcFacade interface {
	// CreateThirdParty persists a new customer or supplier.
	CreateThirdParty(ctx context.Context, companyID string, req dto.CreateThirdPartyRequest, creatorUserID string) (*domain.ThirdParty, error)

	// GetThirdPartyByID retrieves a third party.
	GetThirdPartyByID(ctx context.Context, companyID string, thirdPartyID string) (*domain.ThirdParty, error)

	// ListThirdParties retrieves a paginated list, optionally filtered by type.
	ListThirdParties(ctx context.Context, companyID string, params dto.ListThirdPartiesParams) ([]domain.ThirdParty, error)

	// UpdateThirdParty updates a third party's details.
	UpdateThirdParty(ctx context.Context, companyID string, thirdPartyID string, req dto.UpdateThirdPartyRequest, userID string) (*domain.ThirdParty, error)

	// DeactivateThirdParty soft-deactivates a third party.
	DeactivateThirdParty(ctx context.Context, companyID string, thirdPartyID string, userID string) error
}
