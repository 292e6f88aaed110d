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

type InvoiceServiceTestSuite struct {
	suite.Suite
	invoiceRepo    *MockInvoiceRepository
	thirdPartyRepo *MockThirdPartyRepository
	service        *services.InvoiceService
	ctx            context.Context

	companyID  string
	thirdParty domain.ThirdParty
}

func (s *InvoiceServiceTestSuite) SetupTest() {
	s.invoiceRepo = new(MockInvoiceRepository)
	s.thirdPartyRepo = new(MockThirdPartyRepository)
	s.service = services.NewInvoiceService(s.invoiceRepo, s.thirdPartyRepo)
	s.ctx = context.Background()

	s.companyID = uuid.NewString()
	s.thirdParty = domain.ThirdParty{
		ThirdPartyID: uuid.NewString(),
		CompanyID:    s.companyID,
		Type:         domain.Client,
		Code:         "CLI-0001",
		Name:         "Atlas Distribution SARL",
		PaymentTerms: 60,
		IsActive:     true,
	}
}

func (s *InvoiceServiceTestSuite) createRequest() dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		Type:         domain.InvoiceTypeInvoice,
		ThirdPartyID: s.thirdParty.ThirdPartyID,
		IssueDate:    time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Lines: []dto.InvoiceLineRequest{
			{Description: "Prestation de conseil", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(1000), VATRate: decimal.NewFromInt(20)},
			{Description: "Denrées de base", Quantity: decimal.NewFromInt(50), UnitPrice: decimal.NewFromInt(20), VATRate: decimal.NewFromInt(7)},
			{Description: "Transport", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(500), VATRate: decimal.NewFromInt(14)},
		},
	}
}

func (s *InvoiceServiceTestSuite) TestCreateInvoiceMultiRateBreakdown() {
	s.thirdPartyRepo.On("FindThirdPartyByID", mock.Anything, s.thirdParty.ThirdPartyID).Return(&s.thirdParty, nil)
	s.invoiceRepo.On("CountInvoicesForYear", mock.Anything, s.companyID, domain.InvoiceTypeInvoice, 2026).Return(int64(0), nil)
	s.invoiceRepo.On("SaveInvoice", mock.Anything, mock.Anything).Return(nil)

	inv, err := s.service.CreateInvoice(s.ctx, s.companyID, s.createRequest(), "user-1")

	s.Require().NoError(err)
	s.Equal("FAC-2026-0001", inv.Number)
	s.Equal(domain.InvoiceDraft, inv.Status)

	// HT 10000 + 1000 + 500, VAT 2000 + 70 + 70.
	s.True(inv.TotalHT.Equal(decimal.NewFromInt(11500)))
	s.True(inv.TotalVAT.Equal(decimal.NewFromInt(2140)))
	s.True(inv.TotalTTC.Equal(decimal.NewFromInt(13640)))
	s.True(inv.AmountDue.Equal(inv.TotalTTC))

	// One bucket per rate, and the buckets sum back to the invoice VAT.
	s.Require().Len(inv.VATBreakdown, 3)
	sum := decimal.Zero
	for _, b := range inv.VATBreakdown {
		sum = sum.Add(b.Amount)
	}
	s.True(sum.Equal(inv.TotalVAT))

	// Due date defaults to issue date plus the third party's payment terms.
	s.Equal(time.Date(2026, 5, 9, 0, 0, 0, 0, time.UTC), inv.DueDate)
}

func (s *InvoiceServiceTestSuite) TestCreateInvoiceNonStatutoryRateRejected() {
	req := s.createRequest()
	req.Lines[0].VATRate = decimal.NewFromInt(19)

	s.thirdPartyRepo.On("FindThirdPartyByID", mock.Anything, s.thirdParty.ThirdPartyID).Return(&s.thirdParty, nil)

	_, err := s.service.CreateInvoice(s.ctx, s.companyID, req, "user-1")

	s.ErrorIs(err, apperrors.ErrValidation)
	s.invoiceRepo.AssertNotCalled(s.T(), "SaveInvoice", mock.Anything, mock.Anything)
}

func (s *InvoiceServiceTestSuite) TestCreateInvoiceInactiveThirdPartyRejected() {
	s.thirdParty.IsActive = false
	s.thirdPartyRepo.On("FindThirdPartyByID", mock.Anything, s.thirdParty.ThirdPartyID).Return(&s.thirdParty, nil)

	_, err := s.service.CreateInvoice(s.ctx, s.companyID, s.createRequest(), "user-1")

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *InvoiceServiceTestSuite) TestQuoteNumberUsesItsOwnSeries() {
	req := s.createRequest()
	req.Type = domain.InvoiceTypeQuote

	s.thirdPartyRepo.On("FindThirdPartyByID", mock.Anything, s.thirdParty.ThirdPartyID).Return(&s.thirdParty, nil)
	s.invoiceRepo.On("CountInvoicesForYear", mock.Anything, s.companyID, domain.InvoiceTypeQuote, 2026).Return(int64(11), nil)
	s.invoiceRepo.On("SaveInvoice", mock.Anything, mock.Anything).Return(nil)

	inv, err := s.service.CreateInvoice(s.ctx, s.companyID, req, "user-1")

	s.Require().NoError(err)
	s.Equal("DEV-2026-0012", inv.Number)
}

// sentInvoice returns a SENT invoice totalling 1200 TTC with no payments.
func (s *InvoiceServiceTestSuite) sentInvoice() *domain.Invoice {
	invoiceID := uuid.NewString()
	inv := &domain.Invoice{
		InvoiceID:    invoiceID,
		CompanyID:    s.companyID,
		Number:       "FAC-2026-0042",
		Type:         domain.InvoiceTypeInvoice,
		Status:       domain.InvoiceSent,
		ThirdPartyID: s.thirdParty.ThirdPartyID,
		IssueDate:    time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		DueDate:      time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC),
		Lines: []domain.InvoiceLine{
			{
				LineID:    uuid.NewString(),
				InvoiceID: invoiceID,
				Quantity:  decimal.NewFromInt(1),
				UnitPrice: decimal.NewFromInt(1000),
				VATRate:   decimal.NewFromInt(20),
				Subtotal:  decimal.NewFromInt(1000),
				VATAmount: decimal.NewFromInt(200),
				Total:     decimal.NewFromInt(1200),
			},
		},
		SubtotalHT: decimal.NewFromInt(1000),
		TotalHT:    decimal.NewFromInt(1000),
		TotalVAT:   decimal.NewFromInt(200),
		TotalTTC:   decimal.NewFromInt(1200),
		AmountDue:  decimal.NewFromInt(1200),
	}
	return inv
}

func (s *InvoiceServiceTestSuite) TestAddPaymentPartialThenSettled() {
	inv := s.sentInvoice()
	s.invoiceRepo.On("FindInvoiceByID", mock.Anything, inv.InvoiceID).Return(inv, nil)
	s.invoiceRepo.On("SavePayment", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	partial := dto.AddPaymentRequest{Amount: decimal.NewFromInt(500), Method: "virement", Date: time.Now()}
	updated, err := s.service.AddPayment(s.ctx, s.companyID, inv.InvoiceID, partial, "user-1")

	s.Require().NoError(err)
	s.Equal(domain.InvoicePartiallyPaid, updated.Status)
	s.True(updated.AmountPaid.Equal(decimal.NewFromInt(500)))
	s.True(updated.AmountDue.Equal(decimal.NewFromInt(700)))
	s.True(updated.AmountDue.Equal(updated.TotalTTC.Sub(updated.AmountPaid)))

	rest := dto.AddPaymentRequest{Amount: decimal.NewFromInt(700), Method: "chèque", Date: time.Now()}
	settled, err := s.service.AddPayment(s.ctx, s.companyID, inv.InvoiceID, rest, "user-1")

	s.Require().NoError(err)
	s.Equal(domain.InvoicePaid, settled.Status)
	s.True(settled.AmountDue.IsZero())
}

func (s *InvoiceServiceTestSuite) TestAddPaymentOverpaymentAccepted() {
	inv := s.sentInvoice()
	s.invoiceRepo.On("FindInvoiceByID", mock.Anything, inv.InvoiceID).Return(inv, nil)
	s.invoiceRepo.On("SavePayment", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	req := dto.AddPaymentRequest{Amount: decimal.NewFromInt(1500), Method: "virement", Date: time.Now()}
	updated, err := s.service.AddPayment(s.ctx, s.companyID, inv.InvoiceID, req, "user-1")

	s.Require().NoError(err)
	s.Equal(domain.InvoicePaid, updated.Status)
	s.True(updated.AmountDue.Equal(decimal.NewFromInt(-300)))
}

func (s *InvoiceServiceTestSuite) TestAddPaymentOnCancelledRejected() {
	inv := s.sentInvoice()
	inv.Status = domain.InvoiceCancelled
	s.invoiceRepo.On("FindInvoiceByID", mock.Anything, inv.InvoiceID).Return(inv, nil)

	req := dto.AddPaymentRequest{Amount: decimal.NewFromInt(100), Method: "espèces", Date: time.Now()}
	_, err := s.service.AddPayment(s.ctx, s.companyID, inv.InvoiceID, req, "user-1")

	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *InvoiceServiceTestSuite) TestDeleteLastPaymentFallsBackToSent() {
	inv := s.sentInvoice()
	paymentID := uuid.NewString()
	inv.Status = domain.InvoicePaid
	inv.Payments = []domain.Payment{{PaymentID: paymentID, InvoiceID: inv.InvoiceID, Amount: decimal.NewFromInt(1200)}}
	inv.AmountPaid = decimal.NewFromInt(1200)
	inv.AmountDue = decimal.Zero

	s.invoiceRepo.On("FindInvoiceByID", mock.Anything, inv.InvoiceID).Return(inv, nil)
	s.invoiceRepo.On("DeletePayment", mock.Anything, paymentID, mock.Anything).Return(nil)

	updated, err := s.service.DeletePayment(s.ctx, s.companyID, inv.InvoiceID, paymentID, "user-1")

	s.Require().NoError(err)
	s.Equal(domain.InvoiceSent, updated.Status)
	s.True(updated.AmountDue.Equal(updated.TotalTTC))
	s.Empty(updated.Payments)
}

func (s *InvoiceServiceTestSuite) TestConvertQuoteToInvoice() {
	quote := s.sentInvoice()
	quote.Type = domain.InvoiceTypeQuote
	quote.Number = "DEV-2026-0003"

	s.invoiceRepo.On("FindInvoiceByID", mock.Anything, quote.InvoiceID).Return(quote, nil)
	s.thirdPartyRepo.On("FindThirdPartyByID", mock.Anything, s.thirdParty.ThirdPartyID).Return(&s.thirdParty, nil)
	s.invoiceRepo.On("CountInvoicesForYear", mock.Anything, s.companyID, domain.InvoiceTypeInvoice, mock.Anything).Return(int64(4), nil)
	s.invoiceRepo.On("SaveInvoice", mock.Anything, mock.Anything).Return(nil)
	s.invoiceRepo.On("UpdateInvoiceStatus", mock.Anything, quote.InvoiceID, domain.InvoiceConverted, mock.Anything, "user-1", mock.Anything).Return(nil)

	inv, err := s.service.ConvertQuoteToInvoice(s.ctx, s.companyID, quote.InvoiceID, "user-1")

	s.Require().NoError(err)
	s.Equal(domain.InvoiceTypeInvoice, inv.Type)
	s.Equal(domain.InvoiceDraft, inv.Status)
	s.NotEqual(quote.InvoiceID, inv.InvoiceID)
	s.True(inv.TotalTTC.Equal(quote.TotalTTC))
	s.Require().Len(inv.Lines, 1)
	s.NotEqual(quote.Lines[0].LineID, inv.Lines[0].LineID)
	s.invoiceRepo.AssertCalled(s.T(), "UpdateInvoiceStatus", mock.Anything, quote.InvoiceID, domain.InvoiceConverted, mock.Anything, "user-1", mock.Anything)
}

func (s *InvoiceServiceTestSuite) TestConvertNonQuoteRejected() {
	inv := s.sentInvoice()
	s.invoiceRepo.On("FindInvoiceByID", mock.Anything, inv.InvoiceID).Return(inv, nil)

	_, err := s.service.ConvertQuoteToInvoice(s.ctx, s.companyID, inv.InvoiceID, "user-1")

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *InvoiceServiceTestSuite) TestConvertPaidQuoteRejected() {
	quote := s.sentInvoice()
	quote.Type = domain.InvoiceTypeQuote
	quote.Status = domain.InvoicePaid
	s.invoiceRepo.On("FindInvoiceByID", mock.Anything, quote.InvoiceID).Return(quote, nil)

	_, err := s.service.ConvertQuoteToInvoice(s.ctx, s.companyID, quote.InvoiceID, "user-1")

	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *InvoiceServiceTestSuite) TestChangeStatusToConvertedRejected() {
	inv := s.sentInvoice()
	s.invoiceRepo.On("FindInvoiceByID", mock.Anything, inv.InvoiceID).Return(inv, nil)

	_, err := s.service.ChangeInvoiceStatus(s.ctx, s.companyID, inv.InvoiceID, domain.InvoiceConverted, "user-1")

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *InvoiceServiceTestSuite) TestChangeStatusIllegalTransitionRejected() {
	inv := s.sentInvoice()
	inv.Status = domain.InvoicePaid
	s.invoiceRepo.On("FindInvoiceByID", mock.Anything, inv.InvoiceID).Return(inv, nil)

	_, err := s.service.ChangeInvoiceStatus(s.ctx, s.companyID, inv.InvoiceID, domain.InvoiceSent, "user-1")

	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *InvoiceServiceTestSuite) TestChangeStatusPaidToCancelled() {
	inv := s.sentInvoice()
	inv.Status = domain.InvoicePaid
	s.invoiceRepo.On("FindInvoiceByID", mock.Anything, inv.InvoiceID).Return(inv, nil)
	s.invoiceRepo.On("UpdateInvoiceStatus", mock.Anything, inv.InvoiceID, domain.InvoiceCancelled, mock.Anything, "user-1", mock.Anything).Return(nil)

	updated, err := s.service.ChangeInvoiceStatus(s.ctx, s.companyID, inv.InvoiceID, domain.InvoiceCancelled, "user-1")

	s.Require().NoError(err)
	s.Equal(domain.InvoiceCancelled, updated.Status)
}

func (s *InvoiceServiceTestSuite) TestOverdueLevelsDerivedFromAge() {
	now := time.Now()
	recent := s.sentInvoice()
	recent.DueDate = now.AddDate(0, 0, -10)
	moderate := s.sentInvoice()
	moderate.DueDate = now.AddDate(0, 0, -45)
	severe := s.sentInvoice()
	severe.DueDate = now.AddDate(0, 0, -90)
	paid := s.sentInvoice()
	paid.Status = domain.InvoicePaid
	paid.DueDate = now.AddDate(0, 0, -90)

	s.invoiceRepo.On("ListUnsettledInvoicesDueBefore", mock.Anything, s.companyID, mock.Anything).
		Return([]domain.Invoice{*recent, *moderate, *severe, *paid}, nil)

	overdue, err := s.service.GetOverdueInvoices(s.ctx, s.companyID)

	s.Require().NoError(err)
	s.Require().Len(overdue, 3)
	s.Equal(domain.OverdueRecent, overdue[0].Level)
	s.Equal(domain.OverdueModerate, overdue[1].Level)
	s.Equal(domain.OverdueSevere, overdue[2].Level)
	s.InDelta(45, overdue[1].DaysOverdue, 1)
}

func (s *InvoiceServiceTestSuite) TestOverdueIncludesPastDueDraft() {
	now := time.Now()
	draft := s.sentInvoice()
	draft.Status = domain.InvoiceDraft
	draft.DueDate = now.AddDate(0, 0, -10)

	s.invoiceRepo.On("ListUnsettledInvoicesDueBefore", mock.Anything, s.companyID, mock.Anything).
		Return([]domain.Invoice{*draft}, nil)

	overdue, err := s.service.GetOverdueInvoices(s.ctx, s.companyID)

	s.Require().NoError(err)
	s.Require().Len(overdue, 1)
	s.Equal(draft.InvoiceID, overdue[0].Invoice.InvoiceID)
	s.True(overdue[0].Invoice.IsOverdue)
}

func (s *InvoiceServiceTestSuite) TestGetOverdueInvoicesByLevel() {
	now := time.Now()
	recent := s.sentInvoice()
	recent.DueDate = now.AddDate(0, 0, -5)
	severe := s.sentInvoice()
	severe.DueDate = now.AddDate(0, 0, -100)

	s.invoiceRepo.On("ListUnsettledInvoicesDueBefore", mock.Anything, s.companyID, mock.Anything).
		Return([]domain.Invoice{*recent, *severe}, nil)

	overdue, err := s.service.GetOverdueInvoicesByLevel(s.ctx, s.companyID, domain.OverdueSevere)

	s.Require().NoError(err)
	s.Require().Len(overdue, 1)
	s.Equal(severe.InvoiceID, overdue[0].Invoice.InvoiceID)
}

func (s *InvoiceServiceTestSuite) TestUpdateNonDraftRejected() {
	inv := s.sentInvoice()
	s.invoiceRepo.On("FindInvoiceByID", mock.Anything, inv.InvoiceID).Return(inv, nil)

	notes := "mise à jour"
	_, err := s.service.UpdateInvoice(s.ctx, s.companyID, inv.InvoiceID, dto.UpdateInvoiceRequest{Notes: &notes}, "user-1")

	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *InvoiceServiceTestSuite) TestRecordReminderRequiresOverdue() {
	inv := s.sentInvoice()
	inv.DueDate = time.Now().AddDate(0, 0, 15)
	s.invoiceRepo.On("FindInvoiceByID", mock.Anything, inv.InvoiceID).Return(inv, nil)

	err := s.service.RecordReminder(s.ctx, s.companyID, inv.InvoiceID, "user-1")

	s.ErrorIs(err, apperrors.ErrValidation)
	s.invoiceRepo.AssertNotCalled(s.T(), "IncrementReminderCount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *InvoiceServiceTestSuite) TestInvoiceScopedToCompany() {
	inv := s.sentInvoice()
	inv.CompanyID = uuid.NewString()
	s.invoiceRepo.On("FindInvoiceByID", mock.Anything, inv.InvoiceID).Return(inv, nil)

	_, err := s.service.GetInvoiceByID(s.ctx, s.companyID, inv.InvoiceID)

	s.ErrorIs(err, apperrors.ErrNotFound)
}

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
