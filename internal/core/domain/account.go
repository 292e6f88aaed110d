package domain

// AccountType is the fundamental accounting nature of an account, derived from
// its CGNC class.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
	Special   AccountType = "SPECIAL"
)

// Account is a node of the CGNC chart of accounts.
// Only detail accounts may receive entry lines; parent accounts exist for
// aggregation and presentation.
type Account struct {
	AccountID       string      `json:"accountID"` // Primary Key (UUID)
	CompanyID       string      `json:"companyID"` // FK -> companies.company_id
	Number          string      `json:"number"`    // Hierarchical CGNC number, e.g. "6111". Unique per company.
	Label           string      `json:"label"`
	Class           int         `json:"class"` // 1-8, always the first digit of Number
	AccountType     AccountType `json:"accountType"`
	IsDetailAccount bool        `json:"isDetailAccount"` // Only detail accounts accept entry lines
	IsCustom        bool        `json:"isCustom"`        // Added after the seeded chart
	IsActive        bool        `json:"isActive"`        // Accounts are never deleted, only deactivated
	AuditFields
}

// ClassForNumber derives the CGNC class from an account number.
// Returns 0 when the number does not start with a digit 1-8.
func ClassForNumber(number string) int {
	if number == "" {
		return 0
	}
	c := int(number[0] - '0')
	if c < 1 || c > 8 {
		return 0
	}
	return c
}

// TypeForClass maps a CGNC class to its accounting nature.
//
//	1 financement permanent -> EQUITY
//	2 actif immobilisé      -> ASSET
//	3 actif circulant       -> ASSET
//	4 passif circulant      -> LIABILITY
//	5 trésorerie            -> ASSET
//	6 charges               -> EXPENSE
//	7 produits              -> REVENUE
//	8 comptes spéciaux      -> SPECIAL
func TypeForClass(class int) AccountType {
	switch class {
	case 1:
		return Equity
	case 2, 3, 5:
		return Asset
	case 4:
		return Liability
	case 6:
		return Expense
	case 7:
		return Revenue
	case 8:
		return Special
	default:
		return ""
	}
}
