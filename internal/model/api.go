package model

// Response is the JSON envelope for all API responses
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// CreateUserRequest represents the request body for registering a user
type CreateUserRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// CreateDepositRequest represents the request body for recording a deposit
type CreateDepositRequest struct {
	Amount int64 `json:"amount" binding:"required"`
}

// CreateWithdrawRequest represents the request body for requesting a payout
type CreateWithdrawRequest struct {
	Amount float64 `json:"amount" binding:"required"`
}

// ResolveWithdrawRequest represents the admin request body that settles a
// pending withdraw request
type ResolveWithdrawRequest struct {
	Index   int  `json:"index"`
	Approve bool `json:"approve"`
}
