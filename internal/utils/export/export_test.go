package export

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mizanpro/mizan_backend/internal/core/domain"
)

func TestBalanceCSV(t *testing.T) {
	balance := &domain.Balance{
		PeriodID: "p1",
		Rows: []domain.BalanceRow{
			{
				AccountNumber: "3421",
				AccountLabel:  "Clients",
				TotalDebit:    decimal.NewFromInt(1200),
				TotalCredit:   decimal.NewFromInt(200),
				ClosingDebit:  decimal.NewFromInt(1000),
				ClosingCredit: decimal.Zero,
			},
			{
				AccountNumber: "7111",
				AccountLabel:  "Ventes de marchandises",
				TotalDebit:    decimal.Zero,
				TotalCredit:   decimal.NewFromInt(1000),
				ClosingDebit:  decimal.Zero,
				ClosingCredit: decimal.NewFromInt(1000),
			},
		},
		GrandTotalDebit:    decimal.NewFromInt(1200),
		GrandTotalCredit:   decimal.NewFromInt(1200),
		GrandClosingDebit:  decimal.NewFromInt(1000),
		GrandClosingCredit: decimal.NewFromInt(1000),
		IsBalanced:         true,
	}

	out, err := BalanceCSV(balance)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 4) // header + 2 rows + totals
	assert.Equal(t, "Compte,Intitulé,Total Débit,Total Crédit,Solde Débiteur,Solde Créditeur", lines[0])
	assert.Equal(t, "3421,Clients,1200.00,200.00,1000.00,0.00", lines[1])
	assert.True(t, strings.HasPrefix(lines[3], "TOTAL,"))
	assert.Contains(t, lines[3], "1200.00")
}

func TestGeneralLedgerCSV(t *testing.T) {
	ledger := &domain.GeneralLedger{
		PeriodID: "p1",
		Lines: []domain.LedgerLine{
			{
				EntryNumber:    "VTE000001",
				EntryDate:      time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
				AccountNumber:  "3421",
				Label:          "Facture FAC-2026-0001",
				Debit:          decimal.NewFromInt(1200),
				Credit:         decimal.Zero,
				RunningBalance: decimal.NewFromInt(1200),
			},
		},
		TotalDebit:  decimal.NewFromInt(1200),
		TotalCredit: decimal.Zero,
	}

	out, err := GeneralLedgerCSV(ledger)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "2026-01-15,VTE000001,3421,Facture FAC-2026-0001,1200.00,0.00,1200.00", lines[1])
}

func TestGeneralLedgerCSVQuotesEmbeddedCommas(t *testing.T) {
	ledger := &domain.GeneralLedger{
		Lines: []domain.LedgerLine{
			{
				EntryNumber:    "OD000001",
				EntryDate:      time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
				AccountNumber:  "6111",
				Label:          "Achats, divers",
				Debit:          decimal.NewFromInt(50),
				Credit:         decimal.Zero,
				RunningBalance: decimal.NewFromInt(50),
			},
		},
		TotalDebit: decimal.NewFromInt(50),
	}

	out, err := GeneralLedgerCSV(ledger)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"Achats, divers"`)
}

func TestSimplTVAXML(t *testing.T) {
	decl := &domain.VATDeclaration{
		DeclarationID: "d1",
		Label:         "TVA 2026-01",
		Regime:        "MENSUEL",
		StartDate:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
		Collected: []domain.RateTotals{
			{Rate: 20, Base: decimal.NewFromInt(10000), VATAmount: decimal.NewFromInt(2000)},
		},
		Deductible: []domain.RateTotals{
			{Rate: 20, Base: decimal.NewFromInt(3000), VATAmount: decimal.NewFromInt(600)},
		},
		TotalCollectedVAT:  decimal.NewFromInt(2000),
		TotalDeductibleVAT: decimal.NewFromInt(600),
		TotalAdjustments:   decimal.Zero,
		NetVAT:             decimal.NewFromInt(1400),
		VATCredit:          decimal.Zero,
		VATToPay:           decimal.NewFromInt(1400),
	}
	company := &domain.Company{
		Name: "Atlas Négoce SARL",
		ICE:  "001234567000089",
		IF:   "45678901",
		RC:   "123456",
	}

	out, err := SimplTVAXML(decl, company)
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, "<DeclarationTVA>")
	assert.Contains(t, s, "<ICE>001234567000089</ICE>")
	assert.Contains(t, s, "<Regime>MENSUEL</Regime>")
	assert.Contains(t, s, "<Du>2026-01-01</Du>")
	assert.Contains(t, s, `<Taux Taux="20">`)
	assert.Contains(t, s, "<TVANette>1400.00</TVANette>")
	assert.Contains(t, s, "<TVAAPayer>1400.00</TVAAPayer>")

	// Unused statutory rates still appear, zero-filled.
	assert.Contains(t, s, `<Taux Taux="7">`)
	assert.Contains(t, s, `<Taux Taux="14">`)
}
