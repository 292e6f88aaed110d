package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mizanpro/mizan_backend/internal/apperrors"
	"github.com/mizanpro/mizan_backend/internal/core/domain"
	portsrepo "github.com/mizanpro/mizan_backend/internal/core/ports/repositories"
	"github.com/mizanpro/mizan_backend/internal/dto"
	"github.com/mizanpro/mizan_backend/internal/middleware"
	"github.com/mizanpro/mizan_backend/internal/utils/accounting"
	"github.com/mizanpro/mizan_backend/internal/utils/export"
)

var fullDeduction = decimal.NewFromInt(100)

// VATService manages VAT lines, periodic declarations and the SIMPL-TVA
// submission document.
type VATService struct {
	vatRepo     portsrepo.VATRepositoryFacade
	companyRepo portsrepo.CompanyRepositoryFacade
}

// NewVATService creates a new VATService.
func NewVATService(vatRepo portsrepo.VATRepositoryFacade, companyRepo portsrepo.CompanyRepositoryFacade) *VATService {
	return &VATService{vatRepo: vatRepo, companyRepo: companyRepo}
}

// AddVATLine records a collected or deductible line. A missing VAT amount is
// computed from the base; a missing deduction rate means fully deductible.
func (s *VATService) AddVATLine(ctx context.Context, companyID string, req dto.CreateVATLineRequest, creatorUserID string) (*domain.VATLine, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !domain.IsStatutoryVATRate(req.Rate) {
		return nil, fmt.Errorf("%w: non-statutory VAT rate %d", apperrors.ErrValidation, req.Rate)
	}
	if req.BaseAmount.IsNegative() {
		return nil, fmt.Errorf("%w: base amount cannot be negative", apperrors.ErrValidation)
	}

	vatAmount := req.VATAmount
	if vatAmount.IsZero() && req.Rate > 0 {
		vatAmount = req.BaseAmount.Mul(decimal.NewFromInt(int64(req.Rate))).Div(fullDeduction).Round(2)
	}

	deductionRate := fullDeduction
	if req.DeductionRate != nil {
		deductionRate = *req.DeductionRate
		if deductionRate.IsNegative() || deductionRate.GreaterThan(fullDeduction) {
			return nil, fmt.Errorf("%w: deduction rate must lie in [0, 100]", apperrors.ErrValidation)
		}
	}
	if req.Type == domain.VATCollected {
		// Deduction only makes sense on input VAT.
		deductionRate = fullDeduction
	}

	now := time.Now()
	line := domain.VATLine{
		VATLineID:     uuid.NewString(),
		CompanyID:     companyID,
		Type:          req.Type,
		Rate:          req.Rate,
		BaseAmount:    req.BaseAmount,
		VATAmount:     vatAmount,
		DeductionRate: deductionRate,
		DocumentDate:  req.DocumentDate,
		DocumentRef:   req.DocumentRef,
		InvoiceID:     req.InvoiceID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.vatRepo.SaveVATLine(ctx, line); err != nil {
		logger.Error("Failed to save VAT line", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("VAT line recorded",
		slog.String("vat_line_id", line.VATLineID),
		slog.String("type", string(line.Type)),
		slog.Int("rate", line.Rate))
	return &line, nil
}

// DeleteVATLine removes a VAT line.
func (s *VATService) DeleteVATLine(ctx context.Context, companyID string, vatLineID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.vatRepo.DeleteVATLine(ctx, vatLineID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to delete VAT line", slog.String("error", err.Error()), slog.String("vat_line_id", vatLineID))
		}
		return err
	}
	logger.Info("VAT line deleted", slog.String("vat_line_id", vatLineID), slog.String("user_id", userID))
	return nil
}

// CreateDeclaration opens a DRAFT declaration over a date range. Totals stay
// zero until the first recalculation.
func (s *VATService) CreateDeclaration(ctx context.Context, companyID string, req dto.CreateDeclarationRequest, creatorUserID string) (*domain.VATDeclaration, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.EndDate.After(req.StartDate) {
		return nil, fmt.Errorf("%w: declaration end date must follow its start date", apperrors.ErrValidation)
	}

	regime := req.Regime
	if regime == "" {
		regime = "MENSUEL"
	}

	now := time.Now()
	decl := domain.VATDeclaration{
		DeclarationID: uuid.NewString(),
		CompanyID:     companyID,
		Label:         req.Label,
		Regime:        regime,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Status:        domain.DeclarationDraft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.vatRepo.SaveDeclaration(ctx, decl); err != nil {
		logger.Error("Failed to save declaration", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("VAT declaration opened", slog.String("declaration_id", decl.DeclarationID), slog.String("label", decl.Label))
	return &decl, nil
}

// GetDeclarationByID retrieves a declaration with its buckets, scoped to the company.
func (s *VATService) GetDeclarationByID(ctx context.Context, companyID string, declarationID string) (*domain.VATDeclaration, error) {
	decl, err := s.vatRepo.FindDeclarationByID(ctx, declarationID)
	if err != nil {
		return nil, err
	}
	if decl.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	return decl, nil
}

// ListDeclarations retrieves a company's declarations, newest first.
func (s *VATService) ListDeclarations(ctx context.Context, companyID string) ([]domain.VATDeclaration, error) {
	decls, err := s.vatRepo.ListDeclarations(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if decls == nil {
		return []domain.VATDeclaration{}, nil
	}
	return decls, nil
}

// RecalculateDeclaration rebuilds the declaration from scratch: aggregates
// the period's VAT lines into per-rate buckets (deductible lines scaled by
// their deduction rate), sums adjustments, pulls the carried credit from the
// preceding declaration and derives the net position:
//
//	netVAT   = totalCollectedVAT - totalDeductibleVAT + totalAdjustments
//	vatToPay = netVAT - vatCredit
//
// A DRAFT declaration moves to IN_PROGRESS on its first recalculation.
func (s *VATService) RecalculateDeclaration(ctx context.Context, companyID string, declarationID string, userID string) (*domain.VATDeclaration, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	decl, err := s.GetDeclarationByID(ctx, companyID, declarationID)
	if err != nil {
		return nil, err
	}
	if decl.Locked {
		return nil, fmt.Errorf("%w: declaration %s is locked", apperrors.ErrConflict, decl.Label)
	}
	if decl.Status == domain.DeclarationSubmitted || decl.Status == domain.DeclarationPaid {
		return nil, fmt.Errorf("%w: declaration %s has been submitted", apperrors.ErrConflict, decl.Label)
	}

	lines, err := s.vatRepo.ListVATLinesInRange(ctx, companyID, decl.StartDate, decl.EndDate)
	if err != nil {
		return nil, err
	}

	collected := make(map[int]*domain.RateTotals)
	deductible := make(map[int]*domain.RateTotals)
	totalCollected := decimal.Zero
	totalDeductible := decimal.Zero

	for _, l := range lines {
		switch l.Type {
		case domain.VATCollected:
			b := bucketFor(collected, l.Rate)
			b.Base = b.Base.Add(l.BaseAmount)
			b.VATAmount = b.VATAmount.Add(l.VATAmount)
			totalCollected = totalCollected.Add(l.VATAmount)
		case domain.VATDeductible:
			eligible := accounting.ScaleDeductible(l.VATAmount, l.DeductionRate)
			b := bucketFor(deductible, l.Rate)
			b.Base = b.Base.Add(l.BaseAmount)
			b.VATAmount = b.VATAmount.Add(eligible)
			totalDeductible = totalDeductible.Add(eligible)
		}
	}

	adjustments, err := s.vatRepo.ListAdjustments(ctx, declarationID)
	if err != nil {
		return nil, err
	}
	totalAdjustments := decimal.Zero
	for _, a := range adjustments {
		totalAdjustments = totalAdjustments.Add(a.Amount)
	}

	credit := decimal.Zero
	preceding, err := s.vatRepo.FindPrecedingDeclaration(ctx, companyID, decl.StartDate)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if preceding != nil && preceding.VATToPay.IsNegative() {
		credit = preceding.VATToPay.Neg()
	}

	decl.Collected = flattenBuckets(collected)
	decl.Deductible = flattenBuckets(deductible)
	decl.TotalCollectedVAT = totalCollected
	decl.TotalDeductibleVAT = totalDeductible
	decl.TotalAdjustments = totalAdjustments
	decl.NetVAT = totalCollected.Sub(totalDeductible).Add(totalAdjustments)
	decl.VATCredit = credit
	decl.VATToPay = decl.NetVAT.Sub(credit)
	if decl.Status == domain.DeclarationDraft {
		decl.Status = domain.DeclarationInProgress
	}
	decl.LastUpdatedAt = time.Now()
	decl.LastUpdatedBy = userID

	if err := s.vatRepo.UpdateDeclaration(ctx, *decl); err != nil {
		logger.Error("Failed to update declaration", slog.String("error", err.Error()), slog.String("declaration_id", declarationID))
		return nil, err
	}

	logger.Info("Declaration recalculated",
		slog.String("declaration_id", declarationID),
		slog.String("net_vat", decl.NetVAT.String()),
		slog.String("vat_to_pay", decl.VATToPay.String()))
	return decl, nil
}

// bucketFor returns the rate's bucket, creating it on first touch.
func bucketFor(m map[int]*domain.RateTotals, rate int) *domain.RateTotals {
	b, ok := m[rate]
	if !ok {
		b = &domain.RateTotals{Rate: rate, Base: decimal.Zero, VATAmount: decimal.Zero}
		m[rate] = b
	}
	return b
}

// flattenBuckets orders the buckets by statutory rate, skipping untouched rates.
func flattenBuckets(m map[int]*domain.RateTotals) []domain.RateTotals {
	out := make([]domain.RateTotals, 0, len(m))
	for _, rate := range domain.StatutoryVATRates {
		if b, ok := m[rate]; ok {
			out = append(out, *b)
		}
	}
	return out
}

// AddAdjustment records a manual correction and recalculates the declaration.
func (s *VATService) AddAdjustment(ctx context.Context, companyID string, declarationID string, req dto.CreateAdjustmentRequest, userID string) (*domain.VATDeclaration, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	decl, err := s.GetDeclarationByID(ctx, companyID, declarationID)
	if err != nil {
		return nil, err
	}
	if decl.Locked {
		return nil, fmt.Errorf("%w: declaration %s is locked", apperrors.ErrConflict, decl.Label)
	}

	now := time.Now()
	adj := domain.VATAdjustment{
		AdjustmentID:  uuid.NewString(),
		DeclarationID: declarationID,
		Label:         req.Label,
		Amount:        req.Amount,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.vatRepo.SaveAdjustment(ctx, adj); err != nil {
		logger.Error("Failed to save adjustment", slog.String("error", err.Error()), slog.String("declaration_id", declarationID))
		return nil, err
	}

	return s.RecalculateDeclaration(ctx, companyID, declarationID, userID)
}

// ChangeDeclarationStatus applies a lifecycle transition (submit, mark paid).
func (s *VATService) ChangeDeclarationStatus(ctx context.Context, companyID string, declarationID string, status domain.VATDeclarationStatus, userID string) (*domain.VATDeclaration, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	decl, err := s.GetDeclarationByID(ctx, companyID, declarationID)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransitionDeclaration(decl.Status, status) {
		return nil, fmt.Errorf("%w: cannot move declaration %s from %s to %s", apperrors.ErrConflict, decl.Label, decl.Status, status)
	}

	decl.Status = status
	decl.LastUpdatedAt = time.Now()
	decl.LastUpdatedBy = userID
	if err := s.vatRepo.UpdateDeclaration(ctx, *decl); err != nil {
		logger.Error("Failed to change declaration status", slog.String("error", err.Error()), slog.String("declaration_id", declarationID))
		return nil, err
	}

	logger.Info("Declaration status changed", slog.String("declaration_id", declarationID), slog.String("status", string(status)))
	return decl, nil
}

// LockDeclaration freezes further edits. Orthogonal to the status lifecycle.
func (s *VATService) LockDeclaration(ctx context.Context, companyID string, declarationID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	decl, err := s.GetDeclarationByID(ctx, companyID, declarationID)
	if err != nil {
		return err
	}
	if decl.Locked {
		return fmt.Errorf("%w: declaration %s is already locked", apperrors.ErrConflict, decl.Label)
	}

	decl.Locked = true
	decl.LastUpdatedAt = time.Now()
	decl.LastUpdatedBy = userID
	if err := s.vatRepo.UpdateDeclaration(ctx, *decl); err != nil {
		logger.Error("Failed to lock declaration", slog.String("error", err.Error()), slog.String("declaration_id", declarationID))
		return err
	}

	logger.Info("Declaration locked", slog.String("declaration_id", declarationID))
	return nil
}

// GenerateSimplTVAXML serializes the declaration into the SIMPL-TVA
// submission document.
func (s *VATService) GenerateSimplTVAXML(ctx context.Context, companyID string, declarationID string) ([]byte, error) {
	decl, err := s.GetDeclarationByID(ctx, companyID, declarationID)
	if err != nil {
		return nil, err
	}
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return export.SimplTVAXML(decl, company)
}
