// Package export serializes the reporting views into the exchange formats
// accountants actually consume: CSV for spreadsheets, SIMPL-TVA XML for the
// tax administration portal.
package export

import (
	"bytes"
	"encoding/csv"

	"github.com/mizanpro/mizan_backend/internal/core/domain"
)

// BalanceCSV renders a trial balance as CSV with a fixed header row.
// Amounts are written with two decimals.
func BalanceCSV(balance *domain.Balance) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"Compte", "Intitulé", "Total Débit", "Total Crédit", "Solde Débiteur", "Solde Créditeur"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, row := range balance.Rows {
		record := []string{
			row.AccountNumber,
			row.AccountLabel,
			row.TotalDebit.StringFixed(2),
			row.TotalCredit.StringFixed(2),
			row.ClosingDebit.StringFixed(2),
			row.ClosingCredit.StringFixed(2),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	totals := []string{
		"TOTAL",
		"",
		balance.GrandTotalDebit.StringFixed(2),
		balance.GrandTotalCredit.StringFixed(2),
		balance.GrandClosingDebit.StringFixed(2),
		balance.GrandClosingCredit.StringFixed(2),
	}
	if err := w.Write(totals); err != nil {
		return nil, err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GeneralLedgerCSV renders a general ledger view as CSV, one row per movement
// in date order with the running balance.
func GeneralLedgerCSV(ledger *domain.GeneralLedger) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"Date", "N° Écriture", "Compte", "Libellé", "Débit", "Crédit", "Solde"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, line := range ledger.Lines {
		record := []string{
			line.EntryDate.Format("2006-01-02"),
			line.EntryNumber,
			line.AccountNumber,
			line.Label,
			line.Debit.StringFixed(2),
			line.Credit.StringFixed(2),
			line.RunningBalance.StringFixed(2),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	totals := []string{
		"",
		"",
		"TOTAL",
		"",
		ledger.TotalDebit.StringFixed(2),
		ledger.TotalCredit.StringFixed(2),
		"",
	}
	if err := w.Write(totals); err != nil {
		return nil, err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
