package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/mizanpro/mizan_backend/internal/apperrors"
	"github.com/mizanpro/mizan_backend/internal/core/domain"
	"github.com/mizanpro/mizan_backend/internal/core/services"
	"github.com/mizanpro/mizan_backend/internal/dto"
)

type VATServiceTestSuite struct {
	suite.Suite
	vatRepo     *MockVATRepository
	companyRepo *MockCompanyRepository
	service     *services.VATService
	ctx         context.Context

	companyID string
	decl      domain.VATDeclaration
}

func (s *VATServiceTestSuite) SetupTest() {
	s.vatRepo = new(MockVATRepository)
	s.companyRepo = new(MockCompanyRepository)
	s.service = services.NewVATService(s.vatRepo, s.companyRepo)
	s.ctx = context.Background()

	s.companyID = uuid.NewString()
	s.decl = domain.VATDeclaration{
		DeclarationID: uuid.NewString(),
		CompanyID:     s.companyID,
		Label:         "TVA 2026-01",
		Regime:        "MENSUEL",
		StartDate:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2026, 1, 31, 23, 59, 59, 0, time.UTC),
		Status:        domain.DeclarationDraft,
	}
}

func (s *VATServiceTestSuite) line(typ domain.VATLineType, rate int, base, vat, deduction int64) domain.VATLine {
	return domain.VATLine{
		VATLineID:     uuid.NewString(),
		CompanyID:     s.companyID,
		Type:          typ,
		Rate:          rate,
		BaseAmount:    decimal.NewFromInt(base),
		VATAmount:     decimal.NewFromInt(vat),
		DeductionRate: decimal.NewFromInt(deduction),
		DocumentDate:  time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC),
	}
}

func (s *VATServiceTestSuite) TestAddVATLineComputesMissingAmount() {
	s.vatRepo.On("SaveVATLine", mock.Anything, mock.Anything).Return(nil)

	req := dto.CreateVATLineRequest{
		Type:         domain.VATCollected,
		Rate:         20,
		BaseAmount:   decimal.NewFromInt(1000),
		DocumentDate: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		DocumentRef:  "FAC-2026-0001",
	}
	line, err := s.service.AddVATLine(s.ctx, s.companyID, req, "user-1")

	s.Require().NoError(err)
	s.True(line.VATAmount.Equal(decimal.NewFromInt(200)))
	// Deduction is meaningless on output VAT and is forced to 100.
	s.True(line.DeductionRate.Equal(decimal.NewFromInt(100)))
}

func (s *VATServiceTestSuite) TestAddVATLineRejectsNonStatutoryRate() {
	req := dto.CreateVATLineRequest{
		Type:         domain.VATCollected,
		Rate:         19,
		BaseAmount:   decimal.NewFromInt(1000),
		DocumentDate: time.Now(),
	}
	_, err := s.service.AddVATLine(s.ctx, s.companyID, req, "user-1")

	s.ErrorIs(err, apperrors.ErrValidation)
	s.vatRepo.AssertNotCalled(s.T(), "SaveVATLine", mock.Anything, mock.Anything)
}

func (s *VATServiceTestSuite) TestAddVATLineRejectsOutOfRangeDeduction() {
	bad := decimal.NewFromInt(120)
	req := dto.CreateVATLineRequest{
		Type:          domain.VATDeductible,
		Rate:          20,
		BaseAmount:    decimal.NewFromInt(1000),
		DeductionRate: &bad,
		DocumentDate:  time.Now(),
	}
	_, err := s.service.AddVATLine(s.ctx, s.companyID, req, "user-1")

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *VATServiceTestSuite) TestCreateDeclarationDefaultsToMonthlyRegime() {
	s.vatRepo.On("SaveDeclaration", mock.Anything, mock.Anything).Return(nil)

	req := dto.CreateDeclarationRequest{
		Label:     "TVA 2026-02",
		StartDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 2, 28, 23, 59, 59, 0, time.UTC),
	}
	decl, err := s.service.CreateDeclaration(s.ctx, s.companyID, req, "user-1")

	s.Require().NoError(err)
	s.Equal("MENSUEL", decl.Regime)
	s.Equal(domain.DeclarationDraft, decl.Status)
	s.True(decl.NetVAT.IsZero())
}

func (s *VATServiceTestSuite) TestCreateDeclarationRejectsInvertedRange() {
	req := dto.CreateDeclarationRequest{
		Label:     "TVA 2026-02",
		StartDate: time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	_, err := s.service.CreateDeclaration(s.ctx, s.companyID, req, "user-1")

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *VATServiceTestSuite) TestRecalculateBucketsAndNetVAT() {
	lines := []domain.VATLine{
		s.line(domain.VATCollected, 20, 10000, 2000, 100),
		s.line(domain.VATCollected, 20, 5000, 1000, 100),
		s.line(domain.VATCollected, 10, 2000, 200, 100),
		s.line(domain.VATDeductible, 20, 4000, 800, 100),
		// Partially deductible: only 70% of 140 counts.
		s.line(domain.VATDeductible, 14, 1000, 140, 70),
	}

	s.vatRepo.On("FindDeclarationByID", mock.Anything, s.decl.DeclarationID).Return(&s.decl, nil)
	s.vatRepo.On("ListVATLinesInRange", mock.Anything, s.companyID, s.decl.StartDate, s.decl.EndDate).Return(lines, nil)
	s.vatRepo.On("ListAdjustments", mock.Anything, s.decl.DeclarationID).Return([]domain.VATAdjustment{}, nil)
	s.vatRepo.On("FindPrecedingDeclaration", mock.Anything, s.companyID, s.decl.StartDate).Return(nil, apperrors.ErrNotFound)
	s.vatRepo.On("UpdateDeclaration", mock.Anything, mock.Anything).Return(nil)

	decl, err := s.service.RecalculateDeclaration(s.ctx, s.companyID, s.decl.DeclarationID, "user-1")

	s.Require().NoError(err)

	// Collected buckets in statutory-rate order: 10 then 20.
	s.Require().Len(decl.Collected, 2)
	s.Equal(10, decl.Collected[0].Rate)
	s.True(decl.Collected[0].VATAmount.Equal(decimal.NewFromInt(200)))
	s.Equal(20, decl.Collected[1].Rate)
	s.True(decl.Collected[1].Base.Equal(decimal.NewFromInt(15000)))
	s.True(decl.Collected[1].VATAmount.Equal(decimal.NewFromInt(3000)))

	s.Require().Len(decl.Deductible, 2)
	s.Equal(14, decl.Deductible[0].Rate)
	s.True(decl.Deductible[0].VATAmount.Equal(decimal.NewFromInt(98)))

	s.True(decl.TotalCollectedVAT.Equal(decimal.NewFromInt(3200)))
	s.True(decl.TotalDeductibleVAT.Equal(decimal.NewFromInt(898)))
	s.True(decl.NetVAT.Equal(decimal.NewFromInt(2302)))
	s.True(decl.VATToPay.Equal(decl.NetVAT))
	s.Equal(domain.DeclarationInProgress, decl.Status)
}

func (s *VATServiceTestSuite) TestRecalculateCarriesPrecedingCredit() {
	preceding := domain.VATDeclaration{
		DeclarationID: uuid.NewString(),
		CompanyID:     s.companyID,
		Label:         "TVA 2025-12",
		VATToPay:      decimal.NewFromInt(-500),
	}
	lines := []domain.VATLine{s.line(domain.VATCollected, 20, 10000, 2000, 100)}

	s.vatRepo.On("FindDeclarationByID", mock.Anything, s.decl.DeclarationID).Return(&s.decl, nil)
	s.vatRepo.On("ListVATLinesInRange", mock.Anything, s.companyID, s.decl.StartDate, s.decl.EndDate).Return(lines, nil)
	s.vatRepo.On("ListAdjustments", mock.Anything, s.decl.DeclarationID).Return([]domain.VATAdjustment{}, nil)
	s.vatRepo.On("FindPrecedingDeclaration", mock.Anything, s.companyID, s.decl.StartDate).Return(&preceding, nil)
	s.vatRepo.On("UpdateDeclaration", mock.Anything, mock.Anything).Return(nil)

	decl, err := s.service.RecalculateDeclaration(s.ctx, s.companyID, s.decl.DeclarationID, "user-1")

	s.Require().NoError(err)
	s.True(decl.VATCredit.Equal(decimal.NewFromInt(500)))
	s.True(decl.VATToPay.Equal(decimal.NewFromInt(1500)))
}

func (s *VATServiceTestSuite) TestRecalculateIncludesAdjustments() {
	lines := []domain.VATLine{s.line(domain.VATCollected, 20, 10000, 2000, 100)}
	adjustments := []domain.VATAdjustment{
		{AdjustmentID: uuid.NewString(), DeclarationID: s.decl.DeclarationID, Label: "Régularisation prorata", Amount: decimal.NewFromInt(-150)},
	}

	s.vatRepo.On("FindDeclarationByID", mock.Anything, s.decl.DeclarationID).Return(&s.decl, nil)
	s.vatRepo.On("ListVATLinesInRange", mock.Anything, s.companyID, s.decl.StartDate, s.decl.EndDate).Return(lines, nil)
	s.vatRepo.On("ListAdjustments", mock.Anything, s.decl.DeclarationID).Return(adjustments, nil)
	s.vatRepo.On("FindPrecedingDeclaration", mock.Anything, s.companyID, s.decl.StartDate).Return(nil, apperrors.ErrNotFound)
	s.vatRepo.On("UpdateDeclaration", mock.Anything, mock.Anything).Return(nil)

	decl, err := s.service.RecalculateDeclaration(s.ctx, s.companyID, s.decl.DeclarationID, "user-1")

	s.Require().NoError(err)
	s.True(decl.TotalAdjustments.Equal(decimal.NewFromInt(-150)))
	s.True(decl.NetVAT.Equal(decimal.NewFromInt(1850)))
}

func (s *VATServiceTestSuite) TestRecalculateNegativePositionBecomesCredit() {
	lines := []domain.VATLine{
		s.line(domain.VATCollected, 20, 1000, 200, 100),
		s.line(domain.VATDeductible, 20, 5000, 1000, 100),
	}

	s.vatRepo.On("FindDeclarationByID", mock.Anything, s.decl.DeclarationID).Return(&s.decl, nil)
	s.vatRepo.On("ListVATLinesInRange", mock.Anything, s.companyID, s.decl.StartDate, s.decl.EndDate).Return(lines, nil)
	s.vatRepo.On("ListAdjustments", mock.Anything, s.decl.DeclarationID).Return([]domain.VATAdjustment{}, nil)
	s.vatRepo.On("FindPrecedingDeclaration", mock.Anything, s.companyID, s.decl.StartDate).Return(nil, apperrors.ErrNotFound)
	s.vatRepo.On("UpdateDeclaration", mock.Anything, mock.Anything).Return(nil)

	decl, err := s.service.RecalculateDeclaration(s.ctx, s.companyID, s.decl.DeclarationID, "user-1")

	s.Require().NoError(err)
	s.True(decl.VATToPay.Equal(decimal.NewFromInt(-800)))
}

func (s *VATServiceTestSuite) TestRecalculateLockedRejected() {
	s.decl.Locked = true
	s.vatRepo.On("FindDeclarationByID", mock.Anything, s.decl.DeclarationID).Return(&s.decl, nil)

	_, err := s.service.RecalculateDeclaration(s.ctx, s.companyID, s.decl.DeclarationID, "user-1")

	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *VATServiceTestSuite) TestRecalculateSubmittedRejected() {
	s.decl.Status = domain.DeclarationSubmitted
	s.vatRepo.On("FindDeclarationByID", mock.Anything, s.decl.DeclarationID).Return(&s.decl, nil)

	_, err := s.service.RecalculateDeclaration(s.ctx, s.companyID, s.decl.DeclarationID, "user-1")

	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *VATServiceTestSuite) TestAddAdjustmentTriggersRecalculation() {
	s.vatRepo.On("FindDeclarationByID", mock.Anything, s.decl.DeclarationID).Return(&s.decl, nil)
	s.vatRepo.On("SaveAdjustment", mock.Anything, mock.Anything).Return(nil)
	s.vatRepo.On("ListVATLinesInRange", mock.Anything, s.companyID, s.decl.StartDate, s.decl.EndDate).Return([]domain.VATLine{}, nil)
	s.vatRepo.On("ListAdjustments", mock.Anything, s.decl.DeclarationID).Return([]domain.VATAdjustment{
		{AdjustmentID: uuid.NewString(), DeclarationID: s.decl.DeclarationID, Label: "Correction", Amount: decimal.NewFromInt(75)},
	}, nil)
	s.vatRepo.On("FindPrecedingDeclaration", mock.Anything, s.companyID, s.decl.StartDate).Return(nil, apperrors.ErrNotFound)
	s.vatRepo.On("UpdateDeclaration", mock.Anything, mock.Anything).Return(nil)

	req := dto.CreateAdjustmentRequest{Label: "Correction", Amount: decimal.NewFromInt(75)}
	decl, err := s.service.AddAdjustment(s.ctx, s.companyID, s.decl.DeclarationID, req, "user-1")

	s.Require().NoError(err)
	s.True(decl.NetVAT.Equal(decimal.NewFromInt(75)))
	s.vatRepo.AssertCalled(s.T(), "SaveAdjustment", mock.Anything, mock.Anything)
}

func (s *VATServiceTestSuite) TestChangeStatusFollowsLifecycle() {
	s.decl.Status = domain.DeclarationInProgress
	s.vatRepo.On("FindDeclarationByID", mock.Anything, s.decl.DeclarationID).Return(&s.decl, nil)
	s.vatRepo.On("UpdateDeclaration", mock.Anything, mock.Anything).Return(nil)

	decl, err := s.service.ChangeDeclarationStatus(s.ctx, s.companyID, s.decl.DeclarationID, domain.DeclarationSubmitted, "user-1")

	s.Require().NoError(err)
	s.Equal(domain.DeclarationSubmitted, decl.Status)
}

func (s *VATServiceTestSuite) TestChangeStatusRejectsSubmitBeforeRecalculation() {
	s.vatRepo.On("FindDeclarationByID", mock.Anything, s.decl.DeclarationID).Return(&s.decl, nil)

	_, err := s.service.ChangeDeclarationStatus(s.ctx, s.companyID, s.decl.DeclarationID, domain.DeclarationSubmitted, "user-1")

	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *VATServiceTestSuite) TestChangeStatusRejectsBackwardMove() {
	s.decl.Status = domain.DeclarationSubmitted
	s.vatRepo.On("FindDeclarationByID", mock.Anything, s.decl.DeclarationID).Return(&s.decl, nil)

	_, err := s.service.ChangeDeclarationStatus(s.ctx, s.companyID, s.decl.DeclarationID, domain.DeclarationDraft, "user-1")

	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *VATServiceTestSuite) TestLockDeclarationIsIdempotentConflict() {
	s.vatRepo.On("FindDeclarationByID", mock.Anything, s.decl.DeclarationID).Return(&s.decl, nil)
	s.vatRepo.On("UpdateDeclaration", mock.Anything, mock.Anything).Return(nil)

	s.Require().NoError(s.service.LockDeclaration(s.ctx, s.companyID, s.decl.DeclarationID, "user-1"))

	err := s.service.LockDeclaration(s.ctx, s.companyID, s.decl.DeclarationID, "user-1")
	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *VATServiceTestSuite) TestDeclarationScopedToCompany() {
	s.decl.CompanyID = uuid.NewString()
	s.vatRepo.On("FindDeclarationByID", mock.Anything, s.decl.DeclarationID).Return(&s.decl, nil)

	_, err := s.service.GetDeclarationByID(s.ctx, s.companyID, s.decl.DeclarationID)

	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *VATServiceTestSuite) TestGenerateSimplTVAXML() {
	s.decl.Status = domain.DeclarationInProgress
	s.decl.Collected = []domain.RateTotals{{Rate: 20, Base: decimal.NewFromInt(10000), VATAmount: decimal.NewFromInt(2000)}}
	s.decl.TotalCollectedVAT = decimal.NewFromInt(2000)
	s.decl.NetVAT = decimal.NewFromInt(2000)
	s.decl.VATToPay = decimal.NewFromInt(2000)

	company := domain.Company{
		CompanyID: s.companyID,
		Name:      "Mizan Conseil SARL",
		ICE:       "001234567000089",
		IF:        "12345678",
		RC:        "98765",
	}

	s.vatRepo.On("FindDeclarationByID", mock.Anything, s.decl.DeclarationID).Return(&s.decl, nil)
	s.companyRepo.On("FindCompanyByID", mock.Anything, s.companyID).Return(&company, nil)

	xmlBytes, err := s.service.GenerateSimplTVAXML(s.ctx, s.companyID, s.decl.DeclarationID)

	s.Require().NoError(err)
	s.Contains(string(xmlBytes), "<DeclarationTVA>")
	s.Contains(string(xmlBytes), company.ICE)
}

func TestVATServiceTestSuite(t *testing.T) {
	suite.Run(t, new(VATServiceTestSuite))
}
