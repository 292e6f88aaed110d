package repositories

import (
	"context"
	"time"

	"github.com/mizanpro/mizan_backend/internal/core/domain"
)

// ThirdPartyReader defines read operations for customers and suppliers.
type ThirdPartyReader interface {
	// FindThirdPartyByID retrieves a third party by its unique identifier.
	FindThirdPartyByID(ctx context.Context, thirdPartyID string) (*domain.ThirdParty, error)

	// FindThirdPartyByCode retrieves a third party by its code within a company.
	FindThirdPartyByCode(ctx context.Context, companyID string, code string) (*domain.ThirdParty, error)

	// ListThirdParties retrieves a paginated list, optionally filtered by type.
	ListThirdParties(ctx context.Context, companyID string, tpType *domain.ThirdPartyType, limit int, offset int) ([]domain.ThirdParty, error)

	// CountThirdParties returns how many third parties of a code prefix the
	// company has (code generation).
	CountThirdParties(ctx context.Context, companyID string, codePrefix string) (int64, error)
}

// ThirdPartyWriter defines write operations for customers and suppliers.
type ThirdPartyWriter interface {
	// SaveThirdParty persists a new third party.
	SaveThirdParty(ctx context.Context, tp domain.ThirdParty) error

	// UpdateThirdParty updates an existing third party.
	UpdateThirdParty(ctx context.Context, tp domain.ThirdParty) error

	// DeactivateThirdParty marks a third party as inactive.
	DeactivateThirdParty(ctx context.Context, thirdPartyID string, userID string, now time.Time) error
}

// ThirdPartyRepositoryFacade combines all third-party repository interfaces.
type ThirdPartyRepositoryFacade interface {
	ThirdPartyReader
	ThirdPartyWriter
}
