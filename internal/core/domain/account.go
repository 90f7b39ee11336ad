package domain

import "regexp"

// VatCode is a bookkeeping VAT code used in posting proposals.
type VatCode string

// VAT codes used by the chart of accounts and business rules.
const (
	VatHigh          VatCode = "HIGH"
	VatMedium        VatCode = "MEDIUM"
	VatLow           VatCode = "LOW"
	VatExempt        VatCode = "EXEMPT"
	VatReverseCharge VatCode = "REVERSE_CHARGE"
)

// AccountType classifies an account by what it records.
type AccountType string

// Account types.
const (
	AccountAsset     AccountType = "asset"
	AccountLiability AccountType = "liability"
	AccountEquity    AccountType = "equity"
	AccountIncome    AccountType = "income"
	AccountExpense   AccountType = "expense"
)

var accountIDPattern = regexp.MustCompile(`^\d{4}$`)

// ChartOfAccountsEntry is one account of the Norwegian standard chart
// of accounts (NS 4102).
type ChartOfAccountsEntry struct {
	// AccountID is the 4-digit account number (e.g. "7140").
	AccountID string `json:"account_id"`

	// AccountLabel is the account name.
	AccountLabel string `json:"account_label"`

	// AccountClass is the leading digit class, "1" through "8".
	AccountClass string `json:"account_class"`

	// AccountClassLabel is the Norwegian class label
	// (Eiendeler, Egenkapital og gjeld, Inntekter, Kostnader, Finansposter).
	AccountClassLabel string `json:"account_class_label"`

	// AccountGroup and AccountGroupLabel narrow the class, when set.
	AccountGroup      string `json:"account_group,omitempty"`
	AccountGroupLabel string `json:"account_group_label,omitempty"`

	// Description explains what is posted to the account.
	Description string `json:"description"`

	// Type classifies the account.
	Type AccountType `json:"account_type"`

	// NormalBalance is "debit" or "credit".
	NormalBalance string `json:"normal_balance"`

	// IsStandard is true for accounts defined by NS 4102 itself.
	IsStandard bool `json:"is_standard"`

	// IsActive is false for retired accounts kept for history.
	IsActive bool `json:"is_active"`

	// Examples lists typical postings.
	Examples []string `json:"examples,omitempty"`

	// RelatedVatCodes lists VAT codes commonly used with the account.
	RelatedVatCodes []VatCode `json:"related_vat_codes,omitempty"`
}

// Validate checks the NS 4102 shape: 4-digit id whose leading digit
// matches the class, a label and a balance direction.
func (e ChartOfAccountsEntry) Validate() error {
	if !accountIDPattern.MatchString(e.AccountID) {
		return ErrInvalidRecord
	}
	if e.AccountClass == "" || e.AccountID[:1] != e.AccountClass {
		return ErrInvalidRecord
	}
	if e.AccountLabel == "" || e.Description == "" {
		return ErrInvalidRecord
	}
	if e.NormalBalance != "debit" && e.NormalBalance != "credit" {
		return ErrInvalidRecord
	}
	switch e.Type {
	case AccountAsset, AccountLiability, AccountEquity, AccountIncome, AccountExpense:
		return nil
	default:
		return ErrInvalidRecord
	}
}
