package services

import (
	"context"
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
)

// numberPrefixes maps document types to their number series prefix.
var numberPrefixes = map[domain.InvoiceType]string{
	domain.InvoiceTypeInvoice:      "FAC",
	domain.InvoiceTypeQuote:        "DEV",
	domain.InvoiceTypeCreditNote:   "AVR",
	domain.InvoiceTypeProforma:     "PRO",
	domain.InvoiceTypePurchase:     "FACH",
	domain.InvoiceTypeDeliveryNote: "BL",
}

// InvoiceService manages commercial documents, their payments and the derived
// overdue view.
type InvoiceService struct {
	invoiceRepo    portsrepo.InvoiceRepositoryFacade
	thirdPartyRepo portsrepo.ThirdPartyRepositoryFacade
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(invoiceRepo portsrepo.InvoiceRepositoryFacade, thirdPartyRepo portsrepo.ThirdPartyRepositoryFacade) *InvoiceService {
	return &InvoiceService{invoiceRepo: invoiceRepo, thirdPartyRepo: thirdPartyRepo}
}

// buildInvoiceLines computes each requested line's amounts, rejecting
// non-statutory VAT rates.
func buildInvoiceLines(invoiceID string, reqLines []dto.InvoiceLineRequest) ([]domain.InvoiceLine, error) {
	lines := make([]domain.InvoiceLine, 0, len(reqLines))
	for i, rl := range reqLines {
		if !rl.VATRate.IsInteger() || !domain.IsStatutoryVATRate(int(rl.VATRate.IntPart())) {
			return nil, fmt.Errorf("%w: line %d carries non-statutory VAT rate %s", apperrors.ErrValidation, i+1, rl.VATRate.String())
		}
		if rl.Quantity.IsNegative() || rl.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: line %d has a negative quantity or price", apperrors.ErrValidation, i+1)
		}
		line := domain.InvoiceLine{
			LineID:       uuid.NewString(),
			InvoiceID:    invoiceID,
			Description:  rl.Description,
			Quantity:     rl.Quantity,
			UnitPrice:    rl.UnitPrice,
			DiscountRate: rl.DiscountRate,
			VATRate:      rl.VATRate,
		}
		lines = append(lines, accounting.ComputeLineAmounts(line))
	}
	return lines, nil
}

// applyTotals recomputes an invoice's totals, breakdown and amount due from
// its lines and current payments.
func applyTotals(inv *domain.Invoice) {
	totals := accounting.ComputeInvoiceTotals(inv.Lines, inv.GlobalDiscountRate)
	inv.SubtotalHT = totals.SubtotalHT
	inv.TotalHT = totals.TotalHT
	inv.TotalVAT = totals.TotalVAT
	inv.TotalTTC = totals.TotalTTC
	inv.VATBreakdown = totals.VATBreakdown

	paid := decimal.Zero
	for _, p := range inv.Payments {
		paid = paid.Add(p.Amount)
	}
	inv.AmountPaid = paid
	inv.AmountDue = inv.TotalTTC.Sub(paid)
}

// CreateInvoice persists a new document. The number is drawn from the
// per-type yearly series; the due date falls back to the third party's
// payment terms.
func (s *InvoiceService) CreateInvoice(ctx context.Context, companyID string, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tp, err := s.thirdPartyRepo.FindThirdPartyByID(ctx, req.ThirdPartyID)
	if err != nil {
		return nil, err
	}
	if tp.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	if !tp.IsActive {
		return nil, fmt.Errorf("%w: third party %s is inactive", apperrors.ErrValidation, tp.Code)
	}

	invoiceID := uuid.NewString()
	lines, err := buildInvoiceLines(invoiceID, req.Lines)
	if err != nil {
		return nil, err
	}

	year := req.IssueDate.Year()
	count, err := s.invoiceRepo.CountInvoicesForYear(ctx, companyID, req.Type, year)
	if err != nil {
		return nil, err
	}
	number := fmt.Sprintf("%s-%d-%04d", numberPrefixes[req.Type], year, count+1)

	dueDate := req.IssueDate.AddDate(0, 0, tp.PaymentTerms)
	if req.DueDate != nil {
		dueDate = *req.DueDate
	}

	now := time.Now()
	inv := domain.Invoice{
		InvoiceID:          invoiceID,
		CompanyID:          companyID,
		Number:             number,
		Type:               req.Type,
		Status:             domain.InvoiceDraft,
		ThirdPartyID:       req.ThirdPartyID,
		IssueDate:          req.IssueDate,
		DueDate:            dueDate,
		Lines:              lines,
		GlobalDiscountRate: req.GlobalDiscountRate,
		Notes:              req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	applyTotals(&inv)

	if err := s.invoiceRepo.SaveInvoice(ctx, inv); err != nil {
		logger.Error("Failed to save invoice", slog.String("error", err.Error()), slog.String("number", number))
		return nil, err
	}

	logger.Info("Document created", slog.String("invoice_id", inv.InvoiceID), slog.String("number", inv.Number), slog.String("type", string(inv.Type)))
	return &inv, nil
}

// GetInvoiceByID retrieves an invoice with lines and payments, scoped to the company.
func (s *InvoiceService) GetInvoiceByID(ctx context.Context, companyID string, invoiceID string) (*domain.Invoice, error) {
	inv, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	return inv, nil
}

// ListInvoices retrieves a paginated list of a company's documents.
func (s *InvoiceService) ListInvoices(ctx context.Context, companyID string, params dto.ListInvoicesParams) ([]domain.Invoice, error) {
	invs, err := s.invoiceRepo.ListInvoices(ctx, companyID, params.Type, params.Status, params.Limit, params.Offset)
	if err != nil {
		return nil, err
	}
	if invs == nil {
		return []domain.Invoice{}, nil
	}
	return invs, nil
}

// GetOverdueInvoices retrieves every unsettled invoice past its due date with
// its derived aging level. Overdue is never stored, always computed.
func (s *InvoiceService) GetOverdueInvoices(ctx context.Context, companyID string) ([]dto.OverdueInvoice, error) {
	now := time.Now()
	invs, err := s.invoiceRepo.ListUnsettledInvoicesDueBefore(ctx, companyID, now)
	if err != nil {
		return nil, err
	}

	overdue := make([]dto.OverdueInvoice, 0, len(invs))
	for i := range invs {
		inv := &invs[i]
		if !inv.IsOverdue(now) {
			continue
		}
		overdue = append(overdue, dto.OverdueInvoice{
			Invoice:     dto.ToInvoiceResponse(inv, now),
			DaysOverdue: int(now.Sub(inv.DueDate).Hours() / 24),
			Level:       domain.OverdueLevelFor(inv.DueDate, now),
		})
	}
	return overdue, nil
}

// GetOverdueInvoicesByLevel restricts GetOverdueInvoices to one aging level.
func (s *InvoiceService) GetOverdueInvoicesByLevel(ctx context.Context, companyID string, level domain.OverdueLevel) ([]dto.OverdueInvoice, error) {
	all, err := s.GetOverdueInvoices(ctx, companyID)
	if err != nil {
		return nil, err
	}
	filtered := make([]dto.OverdueInvoice, 0, len(all))
	for _, o := range all {
		if o.Level == level {
			filtered = append(filtered, o)
		}
	}
	return filtered, nil
}

// UpdateInvoice replaces a draft document's mutable data and recomputes its
// totals. Only drafts may be edited.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, companyID string, invoiceID string, req dto.UpdateInvoiceRequest, userID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	inv, err := s.GetInvoiceByID(ctx, companyID, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.Status != domain.InvoiceDraft {
		return nil, fmt.Errorf("%w: document %s is no longer a draft", apperrors.ErrConflict, inv.Number)
	}

	if req.IssueDate != nil {
		inv.IssueDate = *req.IssueDate
	}
	if req.DueDate != nil {
		inv.DueDate = *req.DueDate
	}
	if req.Lines != nil {
		lines, err := buildInvoiceLines(inv.InvoiceID, req.Lines)
		if err != nil {
			return nil, err
		}
		inv.Lines = lines
	}
	if req.GlobalDiscountRate != nil {
		inv.GlobalDiscountRate = *req.GlobalDiscountRate
	}
	if req.Notes != nil {
		inv.Notes = *req.Notes
	}
	applyTotals(inv)
	inv.LastUpdatedAt = time.Now()
	inv.LastUpdatedBy = userID

	if err := s.invoiceRepo.UpdateInvoice(ctx, *inv); err != nil {
		logger.Error("Failed to update invoice", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		return nil, err
	}
	return inv, nil
}

// ChangeInvoiceStatus applies a caller-driven transition (send, mark viewed,
// cancel). Payment-derived statuses come from AddPayment/DeletePayment, and
// CONVERTED only from ConvertQuoteToInvoice.
func (s *InvoiceService) ChangeInvoiceStatus(ctx context.Context, companyID string, invoiceID string, status domain.InvoiceStatus, userID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	inv, err := s.GetInvoiceByID(ctx, companyID, invoiceID)
	if err != nil {
		return nil, err
	}
	if status == domain.InvoiceConverted {
		return nil, fmt.Errorf("%w: conversion happens through quote conversion, not a status change", apperrors.ErrValidation)
	}
	if !domain.CanTransition(inv.Type, inv.Status, status) {
		return nil, fmt.Errorf("%w: cannot move %s from %s to %s", apperrors.ErrConflict, inv.Number, inv.Status, status)
	}

	now := time.Now()
	if err := s.invoiceRepo.UpdateInvoiceStatus(ctx, invoiceID, status, nil, userID, now); err != nil {
		logger.Error("Failed to change invoice status", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		return nil, err
	}
	inv.Status = status
	inv.LastUpdatedAt = now
	inv.LastUpdatedBy = userID

	logger.Info("Document status changed", slog.String("invoice_id", invoiceID), slog.String("status", string(status)))
	return inv, nil
}

// AddPayment records a settlement and derives the stored status: PAID once
// nothing is due, PARTIALLY_PAID while something is. Overpayment is accepted
// and leaves a negative amount due.
func (s *InvoiceService) AddPayment(ctx context.Context, companyID string, invoiceID string, req dto.AddPaymentRequest, userID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	inv, err := s.GetInvoiceByID(ctx, companyID, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.Status == domain.InvoiceCancelled || inv.Status == domain.InvoiceConverted {
		return nil, fmt.Errorf("%w: document %s does not accept payments", apperrors.ErrConflict, inv.Number)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now()
	payment := domain.Payment{
		PaymentID: uuid.NewString(),
		InvoiceID: invoiceID,
		Amount:    req.Amount,
		Method:    req.Method,
		Reference: req.Reference,
		Date:      req.Date,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	inv.Payments = append(inv.Payments, payment)
	applyTotals(inv)
	inv.Status = paymentStatus(inv)
	inv.LastUpdatedAt = now
	inv.LastUpdatedBy = userID

	if err := s.invoiceRepo.SavePayment(ctx, payment, *inv); err != nil {
		logger.Error("Failed to save payment", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		return nil, err
	}

	logger.Info("Payment recorded",
		slog.String("invoice_id", invoiceID),
		slog.String("amount", req.Amount.String()),
		slog.String("status", string(inv.Status)))
	return inv, nil
}

// DeletePayment removes a payment and re-derives the invoice's state.
func (s *InvoiceService) DeletePayment(ctx context.Context, companyID string, invoiceID string, paymentID string, userID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	inv, err := s.GetInvoiceByID(ctx, companyID, invoiceID)
	if err != nil {
		return nil, err
	}

	found := false
	remaining := make([]domain.Payment, 0, len(inv.Payments))
	for _, p := range inv.Payments {
		if p.PaymentID == paymentID {
			found = true
			continue
		}
		remaining = append(remaining, p)
	}
	if !found {
		return nil, fmt.Errorf("%w: payment %s", apperrors.ErrNotFound, paymentID)
	}

	inv.Payments = remaining
	applyTotals(inv)
	inv.Status = paymentStatus(inv)
	inv.LastUpdatedAt = time.Now()
	inv.LastUpdatedBy = userID

	if err := s.invoiceRepo.DeletePayment(ctx, paymentID, *inv); err != nil {
		logger.Error("Failed to delete payment", slog.String("error", err.Error()), slog.String("payment_id", paymentID))
		return nil, err
	}

	logger.Info("Payment deleted", slog.String("invoice_id", invoiceID), slog.String("payment_id", paymentID))
	return inv, nil
}

// paymentStatus derives the stored status from the payment state, keeping the
// current status when no payment has been recorded.
func paymentStatus(inv *domain.Invoice) domain.InvoiceStatus {
	switch {
	case inv.AmountPaid.IsPositive() && !inv.AmountDue.IsPositive():
		return domain.InvoicePaid
	case inv.AmountPaid.IsPositive():
		return domain.InvoicePartiallyPaid
	case inv.Status == domain.InvoicePaid || inv.Status == domain.InvoicePartiallyPaid:
		// Last payment removed: fall back to SENT.
		return domain.InvoiceSent
	default:
		return inv.Status
	}
}

// ConvertQuoteToInvoice clones an accepted quote into a new draft invoice and
// marks the quote CONVERTED. One-way; the quote keeps a link to the invoice.
func (s *InvoiceService) ConvertQuoteToInvoice(ctx context.Context, companyID string, quoteID string, userID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	quote, err := s.GetInvoiceByID(ctx, companyID, quoteID)
	if err != nil {
		return nil, err
	}
	if quote.Type != domain.InvoiceTypeQuote {
		return nil, fmt.Errorf("%w: document %s is not a quote", apperrors.ErrValidation, quote.Number)
	}
	if !domain.CanTransition(quote.Type, quote.Status, domain.InvoiceConverted) {
		return nil, fmt.Errorf("%w: quote %s cannot be converted from status %s", apperrors.ErrConflict, quote.Number, quote.Status)
	}

	tp, err := s.thirdPartyRepo.FindThirdPartyByID(ctx, quote.ThirdPartyID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	year := now.Year()
	count, err := s.invoiceRepo.CountInvoicesForYear(ctx, companyID, domain.InvoiceTypeInvoice, year)
	if err != nil {
		return nil, err
	}

	invoiceID := uuid.NewString()
	lines := make([]domain.InvoiceLine, 0, len(quote.Lines))
	for _, l := range quote.Lines {
		l.LineID = uuid.NewString()
		l.InvoiceID = invoiceID
		lines = append(lines, l)
	}

	inv := domain.Invoice{
		InvoiceID:          invoiceID,
		CompanyID:          companyID,
		Number:             fmt.Sprintf("%s-%d-%04d", numberPrefixes[domain.InvoiceTypeInvoice], year, count+1),
		Type:               domain.InvoiceTypeInvoice,
		Status:             domain.InvoiceDraft,
		ThirdPartyID:       quote.ThirdPartyID,
		IssueDate:          now,
		DueDate:            now.AddDate(0, 0, tp.PaymentTerms),
		Lines:              lines,
		GlobalDiscountRate: quote.GlobalDiscountRate,
		Notes:              quote.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	applyTotals(&inv)

	if err := s.invoiceRepo.SaveInvoice(ctx, inv); err != nil {
		logger.Error("Failed to save converted invoice", slog.String("error", err.Error()), slog.String("quote_id", quoteID))
		return nil, err
	}
	if err := s.invoiceRepo.UpdateInvoiceStatus(ctx, quoteID, domain.InvoiceConverted, &inv.InvoiceID, userID, now); err != nil {
		logger.Error("Failed to mark quote converted", slog.String("error", err.Error()), slog.String("quote_id", quoteID))
		return nil, err
	}

	logger.Info("Quote converted",
		slog.String("quote_id", quoteID),
		slog.String("invoice_id", inv.InvoiceID),
		slog.String("invoice_number", inv.Number))
	return &inv, nil
}

// RecordReminder bumps the reminder counter of an overdue invoice.
func (s *InvoiceService) RecordReminder(ctx context.Context, companyID string, invoiceID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	inv, err := s.GetInvoiceByID(ctx, companyID, invoiceID)
	if err != nil {
		return err
	}
	if !inv.IsOverdue(time.Now()) {
		return fmt.Errorf("%w: document %s is not overdue", apperrors.ErrValidation, inv.Number)
	}

	if err := s.invoiceRepo.IncrementReminderCount(ctx, invoiceID, userID, time.Now()); err != nil {
		logger.Error("Failed to record reminder", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		return err
	}

	logger.Info("Reminder recorded", slog.String("invoice_id", invoiceID), slog.Int("reminder_count", inv.ReminderCount+1))
	return nil
}
