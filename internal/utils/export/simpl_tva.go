package export

import (
	"encoding/xml"
	"fmt"

	"github.com/mizanpro/mizan_backend/internal/core/domain"
)

// simplTVADeclaration is the root of the SIMPL-TVA submission document.
// Tag names follow the tax portal's fixed schema; amounts carry two decimals.
type simplTVADeclaration struct {
	XMLName        xml.Name       `xml:"DeclarationTVA"`
	Identifiant    identification `xml:"Identification"`
	Periode        periode        `xml:"Periode"`
	ChiffreAffaire []tauxBlock    `xml:"ChiffreAffaires>Taux"`
	Deductions     []tauxBlock    `xml:"Deductions>Taux"`
	Totaux         totaux         `xml:"Totaux"`
}

type identification struct {
	RaisonSociale string `xml:"RaisonSociale"`
	ICE           string `xml:"ICE"`
	IF            string `xml:"IF"`
	RC            string `xml:"RC,omitempty"`
	Regime        string `xml:"Regime"`
}

type periode struct {
	Du string `xml:"Du"`
	Au string `xml:"Au"`
}

type tauxBlock struct {
	Taux    int    `xml:"Taux,attr"`
	Base    string `xml:"Base"`
	Montant string `xml:"MontantTVA"`
}

type totaux struct {
	TotalTVACollectee  string `xml:"TotalTVACollectee"`
	TotalTVADeductible string `xml:"TotalTVADeductible"`
	Regularisations    string `xml:"Regularisations"`
	TVANette           string `xml:"TVANette"`
	CreditReporte      string `xml:"CreditReporte"`
	TVAAPayer          string `xml:"TVAAPayer"`
}

// SimplTVAXML serializes a declaration for submission to the tax portal.
// Every statutory rate appears in both directions, zero-filled when unused,
// because the portal rejects documents with missing rate blocks.
func SimplTVAXML(decl *domain.VATDeclaration, company *domain.Company) ([]byte, error) {
	doc := simplTVADeclaration{
		Identifiant: identification{
			RaisonSociale: company.Name,
			ICE:           company.ICE,
			IF:            company.IF,
			RC:            company.RC,
			Regime:        decl.Regime,
		},
		Periode: periode{
			Du: decl.StartDate.Format("2006-01-02"),
			Au: decl.EndDate.Format("2006-01-02"),
		},
		ChiffreAffaire: rateBlocks(decl.Collected),
		Deductions:     rateBlocks(decl.Deductible),
		Totaux: totaux{
			TotalTVACollectee:  decl.TotalCollectedVAT.StringFixed(2),
			TotalTVADeductible: decl.TotalDeductibleVAT.StringFixed(2),
			Regularisations:    decl.TotalAdjustments.StringFixed(2),
			TVANette:           decl.NetVAT.StringFixed(2),
			CreditReporte:      decl.VATCredit.StringFixed(2),
			TVAAPayer:          decl.VATToPay.StringFixed(2),
		},
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal SIMPL-TVA document: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}

// rateBlocks expands per-rate totals into one block per statutory rate.
func rateBlocks(totals []domain.RateTotals) []tauxBlock {
	byRate := make(map[int]domain.RateTotals, len(totals))
	for _, rt := range totals {
		byRate[rt.Rate] = rt
	}

	blocks := make([]tauxBlock, 0, len(domain.StatutoryVATRates))
	for _, rate := range domain.StatutoryVATRates {
		rt := byRate[rate]
		blocks = append(blocks, tauxBlock{
			Taux:    rate,
			Base:    rt.Base.StringFixed(2),
			Montant: rt.VATAmount.StringFixed(2),
		})
	}
	return blocks
}
