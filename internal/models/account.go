package models

import "time"

// Account is the database representation of a chart-of-accounts row.
type Account struct {
	AccountID      int64
	Code           string
	Name           string
	ParentID       *int64
	Level          int
	IsPostable     bool
	AccountType    string
	OrganizationID int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
