package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/mizanpro/mizan_backend/internal/apperrors"
	"github.com/mizanpro/mizan_backend/internal/core/domain"
	"github.com/mizanpro/mizan_backend/internal/core/services"
	"github.com/mizanpro/mizan_backend/internal/dto"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	entryRepo   *MockEntryRepository
	journalRepo *MockJournalRepository
	accountRepo *MockAccountRepository
	periodRepo  *MockPeriodRepository
	service     *services.LedgerService
	ctx         context.Context

	companyID string
	journal   domain.Journal
	period    domain.AccountingPeriod
}

func (s *LedgerServiceTestSuite) SetupTest() {
	s.entryRepo = new(MockEntryRepository)
	s.journalRepo = new(MockJournalRepository)
	s.accountRepo = new(MockAccountRepository)
	s.periodRepo = new(MockPeriodRepository)
	s.service = services.NewLedgerService(s.entryRepo, s.journalRepo, s.accountRepo, s.periodRepo)
	s.ctx = context.Background()

	s.companyID = uuid.NewString()
	s.journal = domain.Journal{
		JournalID: uuid.NewString(),
		CompanyID: s.companyID,
		Code:      "VTE",
		Label:     "Journal des ventes",
	}
	s.period = domain.AccountingPeriod{
		PeriodID:  uuid.NewString(),
		CompanyID: s.companyID,
		Label:     "2026-01",
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 1, 31, 23, 59, 59, 0, time.UTC),
		IsOpen:    true,
	}
}

func (s *LedgerServiceTestSuite) balancedRequest() dto.CreateEntryRequest {
	return dto.CreateEntryRequest{
		JournalID:   s.journal.JournalID,
		EntryDate:   time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		Description: "Vente de marchandises",
		Lines: []dto.EntryLineRequest{
			{AccountID: "acc-client", Label: "Client", Debit: decimal.NewFromInt(1200)},
			{AccountID: "acc-vente", Label: "Vente", Credit: decimal.NewFromInt(1200)},
		},
	}
}

func (s *LedgerServiceTestSuite) expectNumbering(seq int64) {
	s.entryRepo.On("Begin", mock.Anything).Return(nil, nil)
	s.entryRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil)
	s.entryRepo.On("Commit", mock.Anything, mock.Anything).Return(nil)
	s.journalRepo.On("NextEntryNumberInTx", mock.Anything, mock.Anything, s.journal.JournalID).Return(seq, nil)
}

func (s *LedgerServiceTestSuite) TestCreateEntryBalanced() {
	s.journalRepo.On("FindJournalByID", mock.Anything, s.journal.JournalID).Return(&s.journal, nil)
	s.periodRepo.On("FindPeriodByDate", mock.Anything, s.companyID, mock.Anything).Return(&s.period, nil)
	s.expectNumbering(1)
	s.entryRepo.On("SaveEntryInTx", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	entry, err := s.service.CreateEntry(s.ctx, s.companyID, s.balancedRequest(), "user-1")

	s.Require().NoError(err)
	s.Equal("VTE000001", entry.EntryNumber)
	s.True(entry.IsBalanced)
	s.False(entry.IsValidated)
	s.True(entry.TotalDebit.Equal(decimal.NewFromInt(1200)))
	s.True(entry.TotalCredit.Equal(decimal.NewFromInt(1200)))
	s.Equal(s.period.PeriodID, entry.PeriodID)
	s.entryRepo.AssertExpectations(s.T())
}

func (s *LedgerServiceTestSuite) TestCreateEntryUnbalancedIsAcceptedAsDraft() {
	req := s.balancedRequest()
	req.Lines[1].Credit = decimal.NewFromInt(1100)

	s.journalRepo.On("FindJournalByID", mock.Anything, s.journal.JournalID).Return(&s.journal, nil)
	s.periodRepo.On("FindPeriodByDate", mock.Anything, s.companyID, mock.Anything).Return(&s.period, nil)
	s.expectNumbering(7)
	s.entryRepo.On("SaveEntryInTx", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	entry, err := s.service.CreateEntry(s.ctx, s.companyID, req, "user-1")

	s.Require().NoError(err)
	s.Equal("VTE000007", entry.EntryNumber)
	s.False(entry.IsBalanced)
}

func (s *LedgerServiceTestSuite) TestCreateEntryRejectsLineWithBothSides() {
	req := s.balancedRequest()
	req.Lines[0].Credit = decimal.NewFromInt(5)

	s.journalRepo.On("FindJournalByID", mock.Anything, s.journal.JournalID).Return(&s.journal, nil)
	s.periodRepo.On("FindPeriodByDate", mock.Anything, s.companyID, mock.Anything).Return(&s.period, nil)

	_, err := s.service.CreateEntry(s.ctx, s.companyID, req, "user-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *LedgerServiceTestSuite) TestCreateEntryClosedPeriod() {
	closed := s.period
	closed.IsOpen = false
	closed.IsClosed = true

	s.journalRepo.On("FindJournalByID", mock.Anything, s.journal.JournalID).Return(&s.journal, nil)
	s.periodRepo.On("FindPeriodByDate", mock.Anything, s.companyID, mock.Anything).Return(&closed, nil)

	_, err := s.service.CreateEntry(s.ctx, s.companyID, s.balancedRequest(), "user-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *LedgerServiceTestSuite) TestCreateEntryForeignCurrencyConvertsToMAD() {
	rate := decimal.NewFromFloat(10.85)
	req := dto.CreateEntryRequest{
		JournalID:   s.journal.JournalID,
		EntryDate:   time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC),
		Description: "Facture export",
		Lines: []dto.EntryLineRequest{
			{AccountID: "acc-client", Debit: decimal.NewFromInt(100), Currency: "EUR", ExchangeRate: &rate},
			{AccountID: "acc-vente", Credit: decimal.NewFromInt(100), Currency: "EUR", ExchangeRate: &rate},
		},
	}

	s.journalRepo.On("FindJournalByID", mock.Anything, s.journal.JournalID).Return(&s.journal, nil)
	s.periodRepo.On("FindPeriodByDate", mock.Anything, s.companyID, mock.Anything).Return(&s.period, nil)
	s.expectNumbering(2)
	s.entryRepo.On("SaveEntryInTx", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	entry, err := s.service.CreateEntry(s.ctx, s.companyID, req, "user-1")

	s.Require().NoError(err)
	s.True(entry.Lines[0].DebitMAD.Equal(decimal.NewFromInt(1085)))
	s.True(entry.IsBalanced)
}

func (s *LedgerServiceTestSuite) validEntry() *domain.Entry {
	entryID := uuid.NewString()
	return &domain.Entry{
		EntryID:     entryID,
		CompanyID:   s.companyID,
		JournalID:   s.journal.JournalID,
		EntryNumber: "VTE000003",
		EntryDate:   time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		PeriodID:    s.period.PeriodID,
		Description: "Vente",
		Lines: []domain.EntryLine{
			{LineID: uuid.NewString(), EntryID: entryID, AccountID: "acc-client", Debit: decimal.NewFromInt(1200), DebitMAD: decimal.NewFromInt(1200), Currency: "MAD", CreditMAD: decimal.Zero, Credit: decimal.Zero},
			{LineID: uuid.NewString(), EntryID: entryID, AccountID: "acc-vente", Credit: decimal.NewFromInt(1200), CreditMAD: decimal.NewFromInt(1200), Currency: "MAD", DebitMAD: decimal.Zero, Debit: decimal.Zero},
		},
		TotalDebit:  decimal.NewFromInt(1200),
		TotalCredit: decimal.NewFromInt(1200),
		IsBalanced:  true,
	}
}

func (s *LedgerServiceTestSuite) detailAccounts() map[string]domain.Account {
	return map[string]domain.Account{
		"acc-client": {AccountID: "acc-client", CompanyID: s.companyID, Number: "3421", Label: "Clients", IsDetailAccount: true, IsActive: true},
		"acc-vente":  {AccountID: "acc-vente", CompanyID: s.companyID, Number: "7111", Label: "Ventes de marchandises", IsDetailAccount: true, IsActive: true},
	}
}

func (s *LedgerServiceTestSuite) TestValidateEntrySuccess() {
	entry := s.validEntry()
	s.entryRepo.On("FindEntryByID", mock.Anything, entry.EntryID).Return(entry, nil)
	s.accountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).Return(s.detailAccounts(), nil)
	s.periodRepo.On("FindPeriodByID", mock.Anything, s.period.PeriodID).Return(&s.period, nil)
	s.entryRepo.On("MarkEntryValidated", mock.Anything, entry.EntryID, "user-1", mock.Anything).Return(nil)

	issues, err := s.service.ValidateEntry(s.ctx, s.companyID, entry.EntryID, "user-1")

	s.Require().NoError(err)
	s.Empty(issues)
	s.entryRepo.AssertCalled(s.T(), "MarkEntryValidated", mock.Anything, entry.EntryID, "user-1", mock.Anything)
}

func (s *LedgerServiceTestSuite) TestValidateEntryReportsEveryIssue() {
	entry := s.validEntry()
	entry.Lines[1].CreditMAD = decimal.NewFromInt(1100) // unbalanced
	accounts := s.detailAccounts()
	inactive := accounts["acc-vente"]
	inactive.IsActive = false
	accounts["acc-vente"] = inactive

	s.entryRepo.On("FindEntryByID", mock.Anything, entry.EntryID).Return(entry, nil)
	s.accountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).Return(accounts, nil)
	s.periodRepo.On("FindPeriodByID", mock.Anything, s.period.PeriodID).Return(&s.period, nil)

	issues, err := s.service.ValidateEntry(s.ctx, s.companyID, entry.EntryID, "user-1")

	s.Require().NoError(err)
	s.Len(issues, 2)
	s.entryRepo.AssertNotCalled(s.T(), "MarkEntryValidated", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestValidateEntryAlreadyValidated() {
	entry := s.validEntry()
	entry.IsValidated = true
	s.entryRepo.On("FindEntryByID", mock.Anything, entry.EntryID).Return(entry, nil)

	_, err := s.service.ValidateEntry(s.ctx, s.companyID, entry.EntryID, "user-1")

	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *LedgerServiceTestSuite) TestDeleteValidatedEntryRejected() {
	entry := s.validEntry()
	entry.IsValidated = true
	s.entryRepo.On("FindEntryByID", mock.Anything, entry.EntryID).Return(entry, nil)

	err := s.service.DeleteEntry(s.ctx, s.companyID, entry.EntryID, "user-1")

	s.ErrorIs(err, apperrors.ErrConflict)
	s.entryRepo.AssertNotCalled(s.T(), "DeleteEntry", mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestReverseEntrySwapsSides() {
	entry := s.validEntry()
	entry.IsValidated = true

	s.entryRepo.On("FindEntryByID", mock.Anything, entry.EntryID).Return(entry, nil)
	s.journalRepo.On("FindJournalByID", mock.Anything, s.journal.JournalID).Return(&s.journal, nil)
	s.periodRepo.On("FindPeriodByDate", mock.Anything, s.companyID, mock.Anything).Return(&s.period, nil)
	s.expectNumbering(4)

	var saved domain.Entry
	s.entryRepo.On("SaveEntryInTx", mock.Anything, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(2).(domain.Entry)
	}).Return(nil)

	reversal, err := s.service.ReverseEntry(s.ctx, s.companyID, entry.EntryID, "user-1")

	s.Require().NoError(err)
	s.Equal("VTE000004", reversal.EntryNumber)
	s.True(reversal.IsValidated)
	s.Require().NotNil(reversal.ReversalOfEntryID)
	s.Equal(entry.EntryID, *reversal.ReversalOfEntryID)
	s.True(saved.Lines[0].CreditMAD.Equal(decimal.NewFromInt(1200)))
	s.True(saved.Lines[1].DebitMAD.Equal(decimal.NewFromInt(1200)))
	s.True(saved.IsBalanced)
}

func (s *LedgerServiceTestSuite) TestReverseDraftEntryRejected() {
	entry := s.validEntry()
	s.entryRepo.On("FindEntryByID", mock.Anything, entry.EntryID).Return(entry, nil)

	_, err := s.service.ReverseEntry(s.ctx, s.companyID, entry.EntryID, "user-1")

	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *LedgerServiceTestSuite) TestGetBalanceAggregatesValidatedEntries() {
	entry := s.validEntry()
	entry.IsValidated = true
	s.period.CompanyID = s.companyID

	s.periodRepo.On("FindPeriodByID", mock.Anything, s.period.PeriodID).Return(&s.period, nil)
	s.entryRepo.On("ListEntriesByPeriod", mock.Anything, s.period.PeriodID, true).Return([]domain.Entry{*entry}, nil)
	s.accountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).Return(s.detailAccounts(), nil)

	balance, err := s.service.GetBalance(s.ctx, s.companyID, s.period.PeriodID)

	s.Require().NoError(err)
	s.Require().Len(balance.Rows, 2)
	s.True(balance.IsBalanced)
	s.True(balance.GrandTotalDebit.Equal(balance.GrandTotalCredit))

	// Rows come back ordered by account number.
	s.Equal("3421", balance.Rows[0].AccountNumber)
	s.True(balance.Rows[0].ClosingDebit.Equal(decimal.NewFromInt(1200)))
	s.Equal("7111", balance.Rows[1].AccountNumber)
	s.True(balance.Rows[1].ClosingCredit.Equal(decimal.NewFromInt(1200)))
}

func (s *LedgerServiceTestSuite) TestGetBalanceIsDeterministic() {
	entry := s.validEntry()
	entry.IsValidated = true

	s.periodRepo.On("FindPeriodByID", mock.Anything, s.period.PeriodID).Return(&s.period, nil)
	s.entryRepo.On("ListEntriesByPeriod", mock.Anything, s.period.PeriodID, true).Return([]domain.Entry{*entry}, nil)
	s.accountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).Return(s.detailAccounts(), nil)

	first, err := s.service.GetBalance(s.ctx, s.companyID, s.period.PeriodID)
	s.Require().NoError(err)
	second, err := s.service.GetBalance(s.ctx, s.companyID, s.period.PeriodID)
	s.Require().NoError(err)

	s.True(first.GrandTotalDebit.Equal(second.GrandTotalDebit))
	s.True(first.GrandTotalCredit.Equal(second.GrandTotalCredit))
	s.Equal(len(first.Rows), len(second.Rows))
}

func (s *LedgerServiceTestSuite) TestGetGeneralLedgerRunningBalance() {
	e1 := s.validEntry()
	e1.IsValidated = true
	e2 := s.validEntry()
	e2.IsValidated = true
	e2.EntryNumber = "VTE000004"
	e2.EntryDate = e1.EntryDate.AddDate(0, 0, 2)

	s.periodRepo.On("FindPeriodByID", mock.Anything, s.period.PeriodID).Return(&s.period, nil)
	s.entryRepo.On("ListEntriesByPeriod", mock.Anything, s.period.PeriodID, true).Return([]domain.Entry{*e2, *e1}, nil)
	s.accountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).Return(s.detailAccounts(), nil)

	accountID := "acc-client"
	ledger, err := s.service.GetGeneralLedger(s.ctx, s.companyID, s.period.PeriodID, &accountID)

	s.Require().NoError(err)
	s.Require().Len(ledger.Lines, 2)
	// Date order despite the repo returning newest first.
	s.Equal("VTE000003", ledger.Lines[0].EntryNumber)
	s.True(ledger.Lines[0].RunningBalance.Equal(decimal.NewFromInt(1200)))
	s.True(ledger.Lines[1].RunningBalance.Equal(decimal.NewFromInt(2400)))
	s.True(ledger.TotalDebit.Equal(decimal.NewFromInt(2400)))
}

func (s *LedgerServiceTestSuite) TestGetEntryScopedToCompany() {
	entry := s.validEntry()
	entry.CompanyID = uuid.NewString()
	s.entryRepo.On("FindEntryByID", mock.Anything, entry.EntryID).Return(entry, nil)

	_, err := s.service.GetEntryByID(s.ctx, s.companyID, entry.EntryID)

	assert.ErrorIs(s.T(), err, apperrors.ErrNotFound)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
