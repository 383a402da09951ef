package dto

// CreateAccountRequest is the payload for get-or-create of a ledger account.
type CreateAccountRequest struct {
	Code        string `json:"code" binding:"required"`
	Name        string `json:"name" binding:"required"`
	AccountType string `json:"accountType" binding:"required"`
	ParentCode  string `json:"parentCode"`
}

// UpdateAccountRequest carries the mutable account fields.
type UpdateAccountRequest struct {
	Name     *string `json:"name"`
	IsActive *bool   `json:"isActive"`
}
