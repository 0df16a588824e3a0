package dto

// CreateAccountRequest creates one chart-of-accounts node. Level and the
// postable flag are derived from the code, never supplied.
type CreateAccountRequest struct {
	Code        string `json:"code" binding:"required"`
	Name        string `json:"name" binding:"required"`
	ParentID    *int64 `json:"parentID"`
	AccountType string `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
}

// UpdateAccountRequest applies the same derivation in place.
type UpdateAccountRequest struct {
	Code        string `json:"code" binding:"required"`
	Name        string `json:"name" binding:"required"`
	ParentID    *int64 `json:"parentID"`
	AccountType string `json:"accountType" binding:"omitempty,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
}
