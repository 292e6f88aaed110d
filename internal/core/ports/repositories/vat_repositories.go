package repositories

import (
	"context"
	"time"

	"github.com/mizanpro/mizan_backend/internal/core/domain"
)

// VATReader defines read operations for VAT lines and declarations.
type VATReader interface {
	// FindDeclarationByID retrieves a declaration with its computed buckets.
	FindDeclarationByID(ctx context.Context, declarationID string) (*domain.VATDeclaration, error)

	// ListDeclarations retrieves a company's declarations, newest first.
	ListDeclarations(ctx context.Context, companyID string) ([]domain.VATDeclaration, error)

	// FindPrecedingDeclaration retrieves the declaration whose period ends
	// last before the given start date, if any (credit carry-forward).
	FindPrecedingDeclaration(ctx context.Context, companyID string, before time.Time) (*domain.VATDeclaration, error)

	// ListVATLinesInRange retrieves VAT lines whose document date falls in
	// [start, end].
	ListVATLinesInRange(ctx context.Context, companyID string, start, end time.Time) ([]domain.VATLine, error)

	// ListAdjustments retrieves the adjustments recorded on a declaration.
	ListAdjustments(ctx context.Context, declarationID string) ([]domain.VATAdjustment, error)
}

// VATWriter defines write operations for VAT lines and declarations.
type VATWriter interface {
	// SaveVATLine persists a collected or deductible line.
	SaveVATLine(ctx context.Context, line domain.VATLine) error

	// DeleteVATLine removes a VAT line.
	DeleteVATLine(ctx context.Context, vatLineID string) error

	// SaveDeclaration persists a new declaration.
	SaveDeclaration(ctx context.Context, decl domain.VATDeclaration) error

	// UpdateDeclaration replaces a declaration's computed totals, buckets,
	// status and lock flag.
	UpdateDeclaration(ctx context.Context, decl domain.VATDeclaration) error

	// SaveAdjustment records a manual adjustment on a declaration.
	SaveAdjustment(ctx context.Context, adj domain.VATAdjustment) error

	// DeleteAdjustment removes an adjustment.
	DeleteAdjustment(ctx context.Context, adjustmentID string) error
}

// VATRepositoryFacade combines all VAT repository interfaces.
type VATRepositoryFacade interface {
	VATReader
	VATWriter
}
