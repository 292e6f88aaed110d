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

// ThirdPartyService manages the customer/supplier registry.
type ThirdPartyService struct {
	thirdPartyRepo portsrepo.ThirdPartyRepositoryFacade
}

// NewThirdPartyService creates a new ThirdPartyService.
func NewThirdPartyService(thirdPartyRepo portsrepo.ThirdPartyRepositoryFacade) *ThirdPartyService {
	return &ThirdPartyService{thirdPartyRepo: thirdPartyRepo}
}

// codePrefixFor maps a third-party type to its code prefix. BOTH entities are
// filed under the client series.
func codePrefixFor(t domain.ThirdPartyType) string {
	if t == domain.Supplier {
		return "SUP"
	}
	return "CLI"
}

// CreateThirdParty persists a new customer or supplier with a generated
// sequential code (CLI-0001, SUP-0001, ...).
func (s *ThirdPartyService) CreateThirdParty(ctx context.Context, companyID string, req dto.CreateThirdPartyRequest, creatorUserID string) (*domain.ThirdParty, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	prefix := codePrefixFor(req.Type)
	count, err := s.thirdPartyRepo.CountThirdParties(ctx, companyID, prefix)
	if err != nil {
		return nil, err
	}

	// Walk past any gaps left by out-of-band inserts.
	code := fmt.Sprintf("%s-%04d", prefix, count+1)
	for {
		existing, err := s.thirdPartyRepo.FindThirdPartyByCode(ctx, companyID, code)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				break
			}
			return nil, err
		}
		if existing == nil {
			break
		}
		count++
		code = fmt.Sprintf("%s-%04d", prefix, count+1)
	}

	now := time.Now()
	tp := domain.ThirdParty{
		ThirdPartyID: uuid.NewString(),
		CompanyID:    companyID,
		Type:         req.Type,
		Code:         code,
		Name:         req.Name,
		ICE:          req.ICE,
		IF:           req.IF,
		RC:           req.RC,
		Address:      req.Address,
		Email:        req.Email,
		PaymentTerms: req.PaymentTerms,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.thirdPartyRepo.SaveThirdParty(ctx, tp); err != nil {
		logger.Error("Failed to save third party", slog.String("error", err.Error()), slog.String("name", req.Name))
		return nil, err
	}

	logger.Info("Third party created", slog.String("third_party_id", tp.ThirdPartyID), slog.String("code", tp.Code))
	return &tp, nil
}

// GetThirdPartyByID retrieves a third party, scoped to the company.
func (s *ThirdPartyService) GetThirdPartyByID(ctx context.Context, companyID string, thirdPartyID string) (*domain.ThirdParty, error) {
	tp, err := s.thirdPartyRepo.FindThirdPartyByID(ctx, thirdPartyID)
	if err != nil {
		return nil, err
	}
	if tp.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	return tp, nil
}

// ListThirdParties retrieves a paginated list, optionally filtered by type.
func (s *ThirdPartyService) ListThirdParties(ctx context.Context, companyID string, params dto.ListThirdPartiesParams) ([]domain.ThirdParty, error) {
	tps, err := s.thirdPartyRepo.ListThirdParties(ctx, companyID, params.Type, params.Limit, params.Offset)
	if err != nil {
		return nil, err
	}
	if tps == nil {
		return []domain.ThirdParty{}, nil
	}
	return tps, nil
}

// UpdateThirdParty applies the provided fields. Type and code are immutable.
func (s *ThirdPartyService) UpdateThirdParty(ctx context.Context, companyID string, thirdPartyID string, req dto.UpdateThirdPartyRequest, userID string) (*domain.ThirdParty, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tp, err := s.GetThirdPartyByID(ctx, companyID, thirdPartyID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		tp.Name = *req.Name
	}
	if req.ICE != nil {
		tp.ICE = *req.ICE
	}
	if req.IF != nil {
		tp.IF = *req.IF
	}
	if req.RC != nil {
		tp.RC = *req.RC
	}
	if req.Address != nil {
		tp.Address = *req.Address
	}
	if req.Email != nil {
		tp.Email = *req.Email
	}
	if req.PaymentTerms != nil {
		tp.PaymentTerms = *req.PaymentTerms
	}
	tp.LastUpdatedAt = time.Now()
	tp.LastUpdatedBy = userID

	if err := s.thirdPartyRepo.UpdateThirdParty(ctx, *tp); err != nil {
		logger.Error("Failed to update third party", slog.String("error", err.Error()), slog.String("third_party_id", thirdPartyID))
		return nil, err
	}
	return tp, nil
}

// DeactivateThirdParty soft-deactivates a third party. History stays intact.
func (s *ThirdPartyService) DeactivateThirdParty(ctx context.Context, companyID string, thirdPartyID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.GetThirdPartyByID(ctx, companyID, thirdPartyID); err != nil {
		return err
	}

	if err := s.thirdPartyRepo.DeactivateThirdParty(ctx, thirdPartyID, userID, time.Now()); err != nil {
		logger.Error("Failed to deactivate third party", slog.String("error", err.Error()), slog.String("third_party_id", thirdPartyID))
		return err
	}

	logger.Info("Third party deactivated", slog.String("third_party_id", thirdPartyID))
	return nil
}
