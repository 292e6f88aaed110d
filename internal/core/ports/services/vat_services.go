package services

import (
	"context"

	"github.com/mizanpro/mizan_backend/internal/core/domain"
	"github.com/mizanpro/mizan_backend/internal/dto"
)

// VATSvcFacade manages VAT lines and declarations.
type VATSvcFacade interface {
	// AddVATLine records a collected or deductible line.
	AddVATLine(ctx context.Context, companyID string, req dto.CreateVATLineRequest, creatorUserID string) (*domain.VATLine, error)

	// DeleteVATLine removes a VAT line.
	DeleteVATLine(ctx context.Context, companyID string, vatLineID string, userID string) error

	// CreateDeclaration opens a declaration over a date range.
	CreateDeclaration(ctx context.Context, companyID string, req dto.CreateDeclarationRequest, creatorUserID string) (*domain.VATDeclaration, error)

	// GetDeclarationByID retrieves a declaration with its buckets.
	GetDeclarationByID(ctx context.Context, companyID string, declarationID string) (*domain.VATDeclaration, error)

	// ListDeclarations retrieves a company's declarations, newest first.
	ListDeclarations(ctx context.Context, companyID string) ([]domain.VATDeclaration, error)

	// RecalculateDeclaration aggregates the VAT lines in the declaration's
	// range into per-rate buckets, applies deduction rates and adjustments and
	// the carried credit, and moves a DRAFT declaration to IN_PROGRESS.
	RecalculateDeclaration(ctx context.Context, companyID string, declarationID string, userID string) (*domain.VATDeclaration, error)

	// AddAdjustment records a manual adjustment and recalculates.
	AddAdjustment(ctx context.Context, companyID string, declarationID string, req dto.CreateAdjustmentRequest, userID string) (*domain.VATDeclaration, error)

	// ChangeDeclarationStatus applies a status transition (submit, mark paid).
	ChangeDeclarationStatus(ctx context.Context, companyID string, declarationID string, status domain.VATDeclarationStatus, userID string) (*domain.VATDeclaration, error)

	// LockDeclaration freezes further edits. Orthogonal to status.
	LockDeclaration(ctx context.Context, companyID string, declarationID string, userID string) error

	// GenerateSimplTVAXML serializes the declaration into the SIMPL-TVA
	// submission format.
	GenerateSimplTVAXML(ctx context.Context, companyID string, declarationID string) ([]byte, error)
}
