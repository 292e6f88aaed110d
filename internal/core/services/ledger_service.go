package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mizanpro/mizan_backend/internal/apperrors"
	"github.com/mizanpro/mizan_backend/internal/core/domain"
	portsrepo "github.com/mizanpro/mizan_backend/internal/core/ports/repositories"
	"github.com/mizanpro/mizan_backend/internal/dto"
	"github.com/mizanpro/mizan_backend/internal/middleware"
	"github.com/mizanpro/mizan_backend/internal/utils/accounting"
)

// LedgerService owns journal entries and the reports derived from them.
// Entries follow a draft-then-validate lifecycle: creation accepts an
// unbalanced draft and only flags it, validation is the gate every report
// sits behind.
type LedgerService struct {
	entryRepo   portsrepo.EntryRepositoryWithTx
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	periodRepo  portsrepo.PeriodRepositoryFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(entryRepo portsrepo.EntryRepositoryWithTx, journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, periodRepo portsrepo.PeriodRepositoryFacade) *LedgerService {
	return &LedgerService{
		entryRepo:   entryRepo,
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		periodRepo:  periodRepo,
	}
}

// buildLines converts request lines into domain lines with MAD amounts,
// rejecting lines that carry both a debit and a credit, or neither.
func buildLines(entryID string, reqLines []dto.EntryLineRequest) ([]domain.EntryLine, error) {
	lines := make([]domain.EntryLine, 0, len(reqLines))
	for i, rl := range reqLines {
		debitSet := rl.Debit.IsPositive()
		creditSet := rl.Credit.IsPositive()
		if rl.Debit.IsNegative() || rl.Credit.IsNegative() {
			return nil, fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrValidation, i+1)
		}
		if debitSet == creditSet {
			return nil, fmt.Errorf("%w: line %d must carry either a debit or a credit", apperrors.ErrValidation, i+1)
		}

		line := domain.EntryLine{
			LineID:    uuid.NewString(),
			EntryID:   entryID,
			AccountID: rl.AccountID,
			Label:     rl.Label,
			Debit:     rl.Debit,
			Credit:    rl.Credit,
			Currency:  rl.Currency,
		}
		if rl.ExchangeRate != nil {
			line.ExchangeRate = *rl.ExchangeRate
		}
		if line.Currency != "" && line.Currency != "MAD" && line.ExchangeRate.IsZero() {
			return nil, fmt.Errorf("%w: line %d needs an exchange rate for currency %s", apperrors.ErrValidation, i+1, line.Currency)
		}
		lines = append(lines, accounting.ConvertLineToMAD(line))
	}
	return lines, nil
}

// CreateEntry persists a draft entry. The entry number is drawn from the
// journal counter inside a transaction; totals and the balanced flag are
// computed but an unbalanced draft is accepted.
func (s *LedgerService) CreateEntry(ctx context.Context, companyID string, req dto.CreateEntryRequest, creatorUserID string) (*domain.Entry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	journal, err := s.journalRepo.FindJournalByID(ctx, req.JournalID)
	if err != nil {
		return nil, err
	}
	if journal.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}

	period, err := s.periodRepo.FindPeriodByDate(ctx, companyID, req.EntryDate)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no accounting period covers %s", apperrors.ErrValidation, req.EntryDate.Format("2006-01-02"))
		}
		return nil, err
	}
	if period.IsClosed {
		return nil, fmt.Errorf("%w: period %s is closed", apperrors.ErrConflict, period.Label)
	}

	entryID := uuid.NewString()
	lines, err := buildLines(entryID, req.Lines)
	if err != nil {
		return nil, err
	}

	totalDebit, totalCredit, isBalanced := accounting.ComputeEntryTotals(lines)
	now := time.Now()

	entry := domain.Entry{
		EntryID:     entryID,
		CompanyID:   companyID,
		JournalID:   journal.JournalID,
		EntryDate:   req.EntryDate,
		PeriodID:    period.PeriodID,
		Reference:   req.Reference,
		Description: req.Description,
		Lines:       lines,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
		IsBalanced:  isBalanced,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	tx, err := s.entryRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.entryRepo.Rollback(ctx, tx)

	seq, err := s.journalRepo.NextEntryNumberInTx(ctx, tx, journal.JournalID)
	if err != nil {
		logger.Error("Failed to draw entry number", slog.String("error", err.Error()), slog.String("journal_id", journal.JournalID))
		return nil, err
	}
	entry.EntryNumber = fmt.Sprintf("%s%06d", journal.Code, seq)

	if err := s.entryRepo.SaveEntryInTx(ctx, tx, entry); err != nil {
		logger.Error("Failed to save entry", slog.String("error", err.Error()), slog.String("entry_id", entry.EntryID))
		return nil, err
	}
	if err := s.entryRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	if !isBalanced {
		logger.Warn("Draft entry created unbalanced",
			slog.String("entry_id", entry.EntryID),
			slog.String("total_debit", totalDebit.String()),
			slog.String("total_credit", totalCredit.String()))
	} else {
		logger.Info("Entry created", slog.String("entry_id", entry.EntryID), slog.String("entry_number", entry.EntryNumber))
	}
	return &entry, nil
}

// GetEntryByID retrieves an entry with its lines, scoped to the company.
func (s *LedgerService) GetEntryByID(ctx context.Context, companyID string, entryID string) (*domain.Entry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	return entry, nil
}

// ListEntries retrieves a page of a company's entries with the continuation token.
func (s *LedgerService) ListEntries(ctx context.Context, companyID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	entries, nextToken, err := s.entryRepo.ListEntries(ctx, companyID, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	return &dto.ListEntriesResponse{
		Entries:   dto.ToEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

// ListJournals retrieves the company's journal books.
func (s *LedgerService) ListJournals(ctx context.Context, companyID string) ([]domain.Journal, error) {
	journals, err := s.journalRepo.ListJournals(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if journals == nil {
		return []domain.Journal{}, nil
	}
	return journals, nil
}

// UpdateEntry replaces a draft entry's lines and metadata. Validated or
// locked entries reject edits; they can only be amended by reversal.
func (s *LedgerService) UpdateEntry(ctx context.Context, companyID string, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.Entry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.GetEntryByID(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.IsLocked {
		return nil, fmt.Errorf("%w: entry %s is locked", apperrors.ErrConflict, entry.EntryNumber)
	}
	if entry.IsValidated {
		return nil, fmt.Errorf("%w: entry %s is validated, amend it with a reversal", apperrors.ErrConflict, entry.EntryNumber)
	}

	if req.EntryDate != nil {
		period, err := s.periodRepo.FindPeriodByDate(ctx, companyID, *req.EntryDate)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: no accounting period covers %s", apperrors.ErrValidation, req.EntryDate.Format("2006-01-02"))
			}
			return nil, err
		}
		if period.IsClosed {
			return nil, fmt.Errorf("%w: period %s is closed", apperrors.ErrConflict, period.Label)
		}
		entry.EntryDate = *req.EntryDate
		entry.PeriodID = period.PeriodID
	}
	if req.Reference != nil {
		entry.Reference = *req.Reference
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}
	if req.Lines != nil {
		lines, err := buildLines(entry.EntryID, req.Lines)
		if err != nil {
			return nil, err
		}
		entry.Lines = lines
	}

	entry.TotalDebit, entry.TotalCredit, entry.IsBalanced = accounting.ComputeEntryTotals(entry.Lines)
	entry.LastUpdatedAt = time.Now()
	entry.LastUpdatedBy = userID

	if err := s.entryRepo.UpdateEntry(ctx, *entry); err != nil {
		logger.Error("Failed to update entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, err
	}
	return entry, nil
}

// ValidateEntry re-checks the draft against current account and period state
// and marks it validated when every check passes. The returned list holds one
// issue per failed check; an empty list means the entry is now validated.
func (s *LedgerService) ValidateEntry(ctx context.Context, companyID string, entryID string, userID string) ([]domain.ValidationIssue, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.GetEntryByID(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.IsValidated {
		return nil, fmt.Errorf("%w: entry %s is already validated", apperrors.ErrConflict, entry.EntryNumber)
	}
	if entry.IsLocked {
		return nil, fmt.Errorf("%w: entry %s is locked", apperrors.ErrConflict, entry.EntryNumber)
	}

	var issues []domain.ValidationIssue

	totalDebit, totalCredit, isBalanced := accounting.ComputeEntryTotals(entry.Lines)
	if !isBalanced {
		issues = append(issues, domain.ValidationIssue{
			Field:   "lines",
			Message: fmt.Sprintf("entry is unbalanced: debit %s vs credit %s", totalDebit.StringFixed(2), totalCredit.StringFixed(2)),
		})
	}

	accountIDs := make([]string, 0, len(entry.Lines))
	for _, l := range entry.Lines {
		accountIDs = append(accountIDs, l.AccountID)
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, err
	}
	for i, l := range entry.Lines {
		acc, ok := accounts[l.AccountID]
		if !ok || acc.CompanyID != companyID {
			issues = append(issues, domain.ValidationIssue{
				Field:   fmt.Sprintf("lines[%d].accountID", i),
				Message: "account does not exist",
			})
			continue
		}
		if !acc.IsActive {
			issues = append(issues, domain.ValidationIssue{
				Field:   fmt.Sprintf("lines[%d].accountID", i),
				Message: fmt.Sprintf("account %s is inactive", acc.Number),
			})
		}
		if !acc.IsDetailAccount {
			issues = append(issues, domain.ValidationIssue{
				Field:   fmt.Sprintf("lines[%d].accountID", i),
				Message: fmt.Sprintf("account %s is not a detail account", acc.Number),
			})
		}
	}

	period, err := s.periodRepo.FindPeriodByID(ctx, entry.PeriodID)
	if err != nil {
		return nil, err
	}
	if period.IsClosed {
		issues = append(issues, domain.ValidationIssue{
			Field:   "entryDate",
			Message: fmt.Sprintf("period %s is closed", period.Label),
		})
	}

	if len(issues) > 0 {
		logger.Info("Entry validation failed", slog.String("entry_id", entryID), slog.Int("issues", len(issues)))
		return issues, nil
	}

	if err := s.entryRepo.MarkEntryValidated(ctx, entryID, userID, time.Now()); err != nil {
		logger.Error("Failed to mark entry validated", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, err
	}

	logger.Info("Entry validated", slog.String("entry_id", entryID), slog.String("entry_number", entry.EntryNumber))
	return nil, nil
}

// ReverseEntry creates a validated counter-entry cancelling a validated one:
// same lines with debit and credit swapped, dated today, numbered from the
// same journal.
func (s *LedgerService) ReverseEntry(ctx context.Context, companyID string, entryID string, userID string) (*domain.Entry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.GetEntryByID(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}
	if !original.IsValidated {
		return nil, fmt.Errorf("%w: only validated entries can be reversed", apperrors.ErrConflict)
	}

	journal, err := s.journalRepo.FindJournalByID(ctx, original.JournalID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	period, err := s.periodRepo.FindPeriodByDate(ctx, companyID, now)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no open accounting period covers today", apperrors.ErrValidation)
		}
		return nil, err
	}
	if period.IsClosed {
		return nil, fmt.Errorf("%w: period %s is closed", apperrors.ErrConflict, period.Label)
	}

	reversalID := uuid.NewString()
	lines := make([]domain.EntryLine, 0, len(original.Lines))
	for _, l := range original.Lines {
		lines = append(lines, domain.EntryLine{
			LineID:       uuid.NewString(),
			EntryID:      reversalID,
			AccountID:    l.AccountID,
			Label:        l.Label,
			Debit:        l.Credit,
			Credit:       l.Debit,
			Currency:     l.Currency,
			ExchangeRate: l.ExchangeRate,
			DebitMAD:     l.CreditMAD,
			CreditMAD:    l.DebitMAD,
		})
	}
	totalDebit, totalCredit, isBalanced := accounting.ComputeEntryTotals(lines)

	reversal := domain.Entry{
		EntryID:           reversalID,
		CompanyID:         companyID,
		JournalID:         original.JournalID,
		EntryDate:         now,
		PeriodID:          period.PeriodID,
		Reference:         original.Reference,
		Description:       fmt.Sprintf("Extourne de %s", original.EntryNumber),
		Lines:             lines,
		TotalDebit:        totalDebit,
		TotalCredit:       totalCredit,
		IsBalanced:        isBalanced,
		IsValidated:       true,
		ReversalOfEntryID: &original.EntryID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	tx, err := s.entryRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.entryRepo.Rollback(ctx, tx)

	seq, err := s.journalRepo.NextEntryNumberInTx(ctx, tx, journal.JournalID)
	if err != nil {
		return nil, err
	}
	reversal.EntryNumber = fmt.Sprintf("%s%06d", journal.Code, seq)

	if err := s.entryRepo.SaveEntryInTx(ctx, tx, reversal); err != nil {
		logger.Error("Failed to save reversal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, err
	}
	if err := s.entryRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Entry reversed",
		slog.String("entry_id", original.EntryID),
		slog.String("reversal_entry_id", reversal.EntryID),
		slog.String("reversal_number", reversal.EntryNumber))
	return &reversal, nil
}

// DeleteEntry removes a draft entry. Validated and locked entries are
// immutable history.
func (s *LedgerService) DeleteEntry(ctx context.Context, companyID string, entryID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.GetEntryByID(ctx, companyID, entryID)
	if err != nil {
		return err
	}
	if entry.IsValidated || entry.IsLocked {
		return fmt.Errorf("%w: entry %s is no longer a draft", apperrors.ErrConflict, entry.EntryNumber)
	}

	if err := s.entryRepo.DeleteEntry(ctx, entryID); err != nil {
		logger.Error("Failed to delete entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return err
	}

	logger.Info("Draft entry deleted", slog.String("entry_id", entryID), slog.String("user_id", userID))
	return nil
}

// GetBalance computes the trial balance of a period from validated entries
// only. Each detail account touched in the period gets one row; the grand
// totals must balance when every contributing entry does.
func (s *LedgerService) GetBalance(ctx context.Context, companyID string, periodID string) (*domain.Balance, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return nil, err
	}
	if period.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}

	entries, err := s.entryRepo.ListEntriesByPeriod(ctx, periodID, true)
	if err != nil {
		return nil, err
	}

	type agg struct {
		debit  decimal.Decimal
		credit decimal.Decimal
	}
	totals := make(map[string]*agg)
	accountIDs := make([]string, 0)
	for _, e := range entries {
		for _, l := range e.Lines {
			a, ok := totals[l.AccountID]
			if !ok {
				a = &agg{debit: decimal.Zero, credit: decimal.Zero}
				totals[l.AccountID] = a
				accountIDs = append(accountIDs, l.AccountID)
			}
			a.debit = a.debit.Add(l.DebitMAD)
			a.credit = a.credit.Add(l.CreditMAD)
		}
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, err
	}

	balance := &domain.Balance{
		PeriodID:           periodID,
		Rows:               make([]domain.BalanceRow, 0, len(totals)),
		GrandTotalDebit:    decimal.Zero,
		GrandTotalCredit:   decimal.Zero,
		GrandClosingDebit:  decimal.Zero,
		GrandClosingCredit: decimal.Zero,
	}
	for accountID, a := range totals {
		acc := accounts[accountID]
		row := domain.BalanceRow{
			AccountID:     accountID,
			AccountNumber: acc.Number,
			AccountLabel:  acc.Label,
			TotalDebit:    a.debit,
			TotalCredit:   a.credit,
			ClosingDebit:  decimal.Zero,
			ClosingCredit: decimal.Zero,
		}
		net := a.debit.Sub(a.credit)
		if net.IsPositive() {
			row.ClosingDebit = net
		} else {
			row.ClosingCredit = net.Neg()
		}
		balance.Rows = append(balance.Rows, row)
		balance.GrandTotalDebit = balance.GrandTotalDebit.Add(row.TotalDebit)
		balance.GrandTotalCredit = balance.GrandTotalCredit.Add(row.TotalCredit)
		balance.GrandClosingDebit = balance.GrandClosingDebit.Add(row.ClosingDebit)
		balance.GrandClosingCredit = balance.GrandClosingCredit.Add(row.ClosingCredit)
	}
	sort.Slice(balance.Rows, func(i, j int) bool {
		return balance.Rows[i].AccountNumber < balance.Rows[j].AccountNumber
	})
	balance.IsBalanced = balance.GrandTotalDebit.Sub(balance.GrandTotalCredit).Abs().LessThan(domain.BalanceTolerance)

	return balance, nil
}

// GetGeneralLedger flattens a period's validated lines in entry date order
// with a running balance, optionally restricted to one account.
func (s *LedgerService) GetGeneralLedger(ctx context.Context, companyID string, periodID string, accountID *string) (*domain.GeneralLedger, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return nil, err
	}
	if period.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}

	entries, err := s.entryRepo.ListEntriesByPeriod(ctx, periodID, true)
	if err != nil {
		return nil, err
	}

	accountIDs := make([]string, 0)
	seen := make(map[string]struct{})
	for _, e := range entries {
		for _, l := range e.Lines {
			if _, ok := seen[l.AccountID]; !ok {
				seen[l.AccountID] = struct{}{}
				accountIDs = append(accountIDs, l.AccountID)
			}
		}
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, err
	}

	ledger := &domain.GeneralLedger{
		PeriodID:    periodID,
		Lines:       make([]domain.LedgerLine, 0),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	if accountID != nil {
		ledger.AccountID = *accountID
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].EntryDate.Equal(entries[j].EntryDate) {
			return entries[i].EntryNumber < entries[j].EntryNumber
		}
		return entries[i].EntryDate.Before(entries[j].EntryDate)
	})

	running := decimal.Zero
	for _, e := range entries {
		for _, l := range e.Lines {
			if accountID != nil && l.AccountID != *accountID {
				continue
			}
			running = running.Add(l.DebitMAD).Sub(l.CreditMAD)
			ledger.Lines = append(ledger.Lines, domain.LedgerLine{
				EntryID:        e.EntryID,
				EntryNumber:    e.EntryNumber,
				EntryDate:      e.EntryDate,
				AccountID:      l.AccountID,
				AccountNumber:  accounts[l.AccountID].Number,
				Label:          l.Label,
				Debit:          l.DebitMAD,
				Credit:         l.CreditMAD,
				RunningBalance: running,
			})
			ledger.TotalDebit = ledger.TotalDebit.Add(l.DebitMAD)
			ledger.TotalCredit = ledger.TotalCredit.Add(l.CreditMAD)
		}
	}

	return ledger, nil
}
