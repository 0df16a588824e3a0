package domain

// AccountType defines the fundamental accounting type of an account,
// following the PCGE class naming.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// Account is one node of the chart of accounts. Codes follow a hierarchical
// prefix scheme: "10" -> "101" -> "1011". Only accounts with a code of four
// or more characters accept postings.
type Account struct {
	AccountID      int64       `json:"accountID"`
	Code           string      `json:"code"`
	Name           string      `json:"name"`
	ParentID       *int64      `json:"parentID,omitempty"` // self-reference, nil for roots
	Level          int         `json:"level"`              // derived: len(code)
	IsPostable     bool        `json:"isPostable"`         // derived: len(code) >= 4
	AccountType    AccountType `json:"accountType"`
	OrganizationID int64       `json:"organizationID"`
	AuditFields
}

// AccountNode is an Account plus its resolved children, used for the
// chart-of-accounts tree view. Leaves carry a nil Children slice so the
// serialized form has no empty collections.
type AccountNode struct {
	Account
	Children []*AccountNode `json:"children,omitempty"`
}
