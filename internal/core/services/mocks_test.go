package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"github.com/mizanpro/mizan_backend/internal/core/domain"
	portsrepo "github.com/mizanpro/mizan_backend/internal/core/ports/repositories"
)

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByNumber(ctx context.Context, companyID string, number string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, companyID string, class int, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, companyID, class, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) SaveAccounts(ctx context.Context, accounts []domain.Account) error {
	args := m.Called(ctx, accounts)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

// --- Mock JournalRepository ---

type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) FindJournalByCode(ctx context.Context, companyID string, code string) (*domain.Journal, error) {
	args := m.Called(ctx, companyID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) ListJournals(ctx context.Context, companyID string) ([]domain.Journal, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal) error {
	args := m.Called(ctx, journal)
	return args.Error(0)
}

func (m *MockJournalRepository) SaveJournals(ctx context.Context, journals []domain.Journal) error {
	args := m.Called(ctx, journals)
	return args.Error(0)
}

func (m *MockJournalRepository) NextEntryNumberInTx(ctx context.Context, tx pgx.Tx, journalID string) (int64, error) {
	args := m.Called(ctx, tx, journalID)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock EntryRepository ---

type MockEntryRepository struct {
	mock.Mock
}

var _ portsrepo.EntryRepositoryWithTx = (*MockEntryRepository)(nil)

func (m *MockEntryRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockEntryRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockEntryRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockEntryRepository) ListEntriesByPeriod(ctx context.Context, periodID string, validatedOnly bool) ([]domain.Entry, error) {
	args := m.Called(ctx, periodID, validatedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entry), args.Error(1)
}

func (m *MockEntryRepository) ListEntries(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.Entry, *string, error) {
	args := m.Called(ctx, companyID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		v := args.Get(1).(string)
		token = &v
	}
	return args.Get(0).([]domain.Entry), token, args.Error(2)
}

func (m *MockEntryRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.Entry) error {
	args := m.Called(ctx, tx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) UpdateEntry(ctx context.Context, entry domain.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) MarkEntryValidated(ctx context.Context, entryID string, userID string, now time.Time) error {
	args := m.Called(ctx, entryID, userID, now)
	return args.Error(0)
}

func (m *MockEntryRepository) LockEntriesByPeriod(ctx context.Context, periodID string, userID string, now time.Time) (int64, error) {
	args := m.Called(ctx, periodID, userID, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEntryRepository) DeleteEntry(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

// --- Mock PeriodRepository ---

type MockPeriodRepository struct {
	mock.Mock
}

var _ portsrepo.PeriodRepositoryFacade = (*MockPeriodRepository)(nil)

func (m *MockPeriodRepository) FindFiscalYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error) {
	args := m.Called(ctx, fiscalYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}

func (m *MockPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodRepository) FindPeriodByDate(ctx context.Context, companyID string, date time.Time) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, companyID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodRepository) ListFiscalYears(ctx context.Context, companyID string) ([]domain.FiscalYear, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalYear), args.Error(1)
}

func (m *MockPeriodRepository) ListPeriods(ctx context.Context, fiscalYearID string) ([]domain.AccountingPeriod, error) {
	args := m.Called(ctx, fiscalYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodRepository) SaveFiscalYear(ctx context.Context, year domain.FiscalYear, periods []domain.AccountingPeriod) error {
	args := m.Called(ctx, year, periods)
	return args.Error(0)
}

func (m *MockPeriodRepository) UpdatePeriod(ctx context.Context, period domain.AccountingPeriod) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *MockPeriodRepository) UpdateFiscalYear(ctx context.Context, year domain.FiscalYear) error {
	args := m.Called(ctx, year)
	return args.Error(0)
}

// --- Mock ThirdPartyRepository ---

type MockThirdPartyRepository struct {
	mock.Mock
}

var _ portsrepo.ThirdPartyRepositoryFacade = (*MockThirdPartyRepository)(nil)

func (m *MockThirdPartyRepository) FindThirdPartyByID(ctx context.Context, thirdPartyID string) (*domain.ThirdParty, error) {
	args := m.Called(ctx, thirdPartyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ThirdParty), args.Error(1)
}

func (m *MockThirdPartyRepository) FindThirdPartyByCode(ctx context.Context, companyID string, code string) (*domain.ThirdParty, error) {
	args := m.Called(ctx, companyID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ThirdParty), args.Error(1)
}

func (m *MockThirdPartyRepository) ListThirdParties(ctx context.Context, companyID string, tpType *domain.ThirdPartyType, limit int, offset int) ([]domain.ThirdParty, error) {
	args := m.Called(ctx, companyID, tpType, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ThirdParty), args.Error(1)
}

func (m *MockThirdPartyRepository) CountThirdParties(ctx context.Context, companyID string, codePrefix string) (int64, error) {
	args := m.Called(ctx, companyID, codePrefix)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockThirdPartyRepository) SaveThirdParty(ctx context.Context, tp domain.ThirdParty) error {
	args := m.Called(ctx, tp)
	return args.Error(0)
}

func (m *MockThirdPartyRepository) UpdateThirdParty(ctx context.Context, tp domain.ThirdParty) error {
	args := m.Called(ctx, tp)
	return args.Error(0)
}

func (m *MockThirdPartyRepository) DeactivateThirdParty(ctx context.Context, thirdPartyID string, userID string, now time.Time) error {
	args := m.Called(ctx, thirdPartyID, userID, now)
	return args.Error(0)
}

// --- Mock InvoiceRepository ---

type MockInvoiceRepository struct {
	mock.Mock
}

var _ portsrepo.InvoiceRepositoryFacade = (*MockInvoiceRepository)(nil)

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoices(ctx context.Context, companyID string, typ *domain.InvoiceType, status *domain.InvoiceStatus, limit int, offset int) ([]domain.Invoice, error) {
	args := m.Called(ctx, companyID, typ, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListUnsettledInvoicesDueBefore(ctx context.Context, companyID string, cutoff time.Time) ([]domain.Invoice, error) {
	args := m.Called(ctx, companyID, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) CountInvoicesForYear(ctx context.Context, companyID string, typ domain.InvoiceType, year int) (int64, error) {
	args := m.Called(ctx, companyID, typ, year)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, convertedToID *string, userID string, now time.Time) error {
	args := m.Called(ctx, invoiceID, status, convertedToID, userID, now)
	return args.Error(0)
}

func (m *MockInvoiceRepository) SavePayment(ctx context.Context, payment domain.Payment, invoice domain.Invoice) error {
	args := m.Called(ctx, payment, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) DeletePayment(ctx context.Context, paymentID string, invoice domain.Invoice) error {
	args := m.Called(ctx, paymentID, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) IncrementReminderCount(ctx context.Context, invoiceID string, userID string, now time.Time) error {
	args := m.Called(ctx, invoiceID, userID, now)
	return args.Error(0)
}

// --- Mock VATRepository ---

type MockVATRepository struct {
	mock.Mock
}

var _ portsrepo.VATRepositoryFacade = (*MockVATRepository)(nil)

func (m *MockVATRepository) FindDeclarationByID(ctx context.Context, declarationID string) (*domain.VATDeclaration, error) {
	args := m.Called(ctx, declarationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VATDeclaration), args.Error(1)
}

func (m *MockVATRepository) ListDeclarations(ctx context.Context, companyID string) ([]domain.VATDeclaration, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VATDeclaration), args.Error(1)
}

func (m *MockVATRepository) FindPrecedingDeclaration(ctx context.Context, companyID string, before time.Time) (*domain.VATDeclaration, error) {
	args := m.Called(ctx, companyID, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VATDeclaration), args.Error(1)
}

func (m *MockVATRepository) ListVATLinesInRange(ctx context.Context, companyID string, start, end time.Time) ([]domain.VATLine, error) {
	args := m.Called(ctx, companyID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VATLine), args.Error(1)
}

func (m *MockVATRepository) ListAdjustments(ctx context.Context, declarationID string) ([]domain.VATAdjustment, error) {
	args := m.Called(ctx, declarationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VATAdjustment), args.Error(1)
}

func (m *MockVATRepository) SaveVATLine(ctx context.Context, line domain.VATLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockVATRepository) DeleteVATLine(ctx context.Context, vatLineID string) error {
	args := m.Called(ctx, vatLineID)
	return args.Error(0)
}

func (m *MockVATRepository) SaveDeclaration(ctx context.Context, decl domain.VATDeclaration) error {
	args := m.Called(ctx, decl)
	return args.Error(0)
}

func (m *MockVATRepository) UpdateDeclaration(ctx context.Context, decl domain.VATDeclaration) error {
	args := m.Called(ctx, decl)
	return args.Error(0)
}

func (m *MockVATRepository) SaveAdjustment(ctx context.Context, adj domain.VATAdjustment) error {
	args := m.Called(ctx, adj)
	return args.Error(0)
}

func (m *MockVATRepository) DeleteAdjustment(ctx context.Context, adjustmentID string) error {
	args := m.Called(ctx, adjustmentID)
	return args.Error(0)
}

// --- Mock CompanyRepository ---

type MockCompanyRepository struct {
	mock.Mock
}

var _ portsrepo.CompanyRepositoryFacade = (*MockCompanyRepository)(nil)

func (m *MockCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockCompanyRepository) UpdateCompany(ctx context.Context, company domain.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
