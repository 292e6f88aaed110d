package domain

// ChartEntry is one row of the seeded CGNC chart of accounts.
type ChartEntry struct {
	Number   string
	Label    string
	IsDetail bool
}

// CGNCChart is the chart of accounts seeded for every new company, following
// the Code Général de Normalisation Comptable. Parent accounts aggregate;
// detail accounts receive entry lines. Companies extend it with custom
// accounts later.
var CGNCChart = []ChartEntry{
	// Classe 1 : comptes de financement permanent
	{Number: "11", Label: "Capitaux propres", IsDetail: false},
	{Number: "1111", Label: "Capital social", IsDetail: true},
	{Number: "1140", Label: "Réserve légale", IsDetail: true},
	{Number: "1191", Label: "Résultat net de l'exercice", IsDetail: true},
	{Number: "14", Label: "Dettes de financement", IsDetail: false},
	{Number: "1481", Label: "Emprunts auprès des établissements de crédit", IsDetail: true},

	// Classe 2 : comptes d'actif immobilisé
	{Number: "22", Label: "Immobilisations incorporelles", IsDetail: false},
	{Number: "2220", Label: "Brevets, marques, droits et valeurs similaires", IsDetail: true},
	{Number: "23", Label: "Immobilisations corporelles", IsDetail: false},
	{Number: "2332", Label: "Matériel et outillage", IsDetail: true},
	{Number: "2340", Label: "Matériel de transport", IsDetail: true},
	{Number: "2351", Label: "Mobilier de bureau", IsDetail: true},
	{Number: "2355", Label: "Matériel informatique", IsDetail: true},
	{Number: "28", Label: "Amortissements des immobilisations", IsDetail: false},
	{Number: "2832", Label: "Amortissements du matériel et outillage", IsDetail: true},

	// Classe 3 : comptes d'actif circulant
	{Number: "31", Label: "Stocks", IsDetail: false},
	{Number: "3111", Label: "Marchandises", IsDetail: true},
	{Number: "34", Label: "Créances de l'actif circulant", IsDetail: false},
	{Number: "3421", Label: "Clients", IsDetail: true},
	{Number: "3424", Label: "Clients douteux ou litigieux", IsDetail: true},
	{Number: "3455", Label: "État - TVA récupérable", IsDetail: true},
	{Number: "34551", Label: "État - TVA récupérable sur immobilisations", IsDetail: true},
	{Number: "34552", Label: "État - TVA récupérable sur charges", IsDetail: true},
	{Number: "3456", Label: "État - crédit de TVA", IsDetail: true},

	// Classe 4 : comptes de passif circulant
	{Number: "44", Label: "Dettes du passif circulant", IsDetail: false},
	{Number: "4411", Label: "Fournisseurs", IsDetail: true},
	{Number: "4432", Label: "Rémunérations dues au personnel", IsDetail: true},
	{Number: "4441", Label: "Caisse Nationale de Sécurité Sociale", IsDetail: true},
	{Number: "4452", Label: "État - impôts, taxes et assimilés", IsDetail: true},
	{Number: "4455", Label: "État - TVA facturée", IsDetail: true},
	{Number: "4456", Label: "État - TVA due", IsDetail: true},

	// Classe 5 : comptes de trésorerie
	{Number: "51", Label: "Trésorerie - actif", IsDetail: false},
	{Number: "5141", Label: "Banques (solde débiteur)", IsDetail: true},
	{Number: "5161", Label: "Caisse", IsDetail: true},

	// Classe 6 : comptes de charges
	{Number: "61", Label: "Charges d'exploitation", IsDetail: false},
	{Number: "6111", Label: "Achats de marchandises", IsDetail: true},
	{Number: "6125", Label: "Achats non stockés de matières et fournitures", IsDetail: true},
	{Number: "6131", Label: "Locations et charges locatives", IsDetail: true},
	{Number: "6134", Label: "Primes d'assurances", IsDetail: true},
	{Number: "6167", Label: "Services bancaires", IsDetail: true},
	{Number: "6171", Label: "Rémunérations du personnel", IsDetail: true},
	{Number: "6174", Label: "Charges sociales", IsDetail: true},
	{Number: "6311", Label: "Intérêts des emprunts et dettes", IsDetail: true},

	// Classe 7 : comptes de produits
	{Number: "71", Label: "Produits d'exploitation", IsDetail: false},
	{Number: "7111", Label: "Ventes de marchandises au Maroc", IsDetail: true},
	{Number: "7121", Label: "Ventes de biens produits au Maroc", IsDetail: true},
	{Number: "7124", Label: "Ventes de services au Maroc", IsDetail: true},
	{Number: "7381", Label: "Intérêts et produits assimilés", IsDetail: true},

	// Classe 8 : comptes spéciaux
	{Number: "8100", Label: "Résultat d'exploitation", IsDetail: true},
}
