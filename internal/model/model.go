package model

const (
	// Withdraw request statuses
	WithdrawStatusPending  = "pending"
	WithdrawStatusSuccess  = "success"
	WithdrawStatusRejected = "rejected"
)

// Deposit is a single confirmed top-up. Amounts are whole stars.
type Deposit struct {
	Amount int64 `json:"amount"`
	Time   int64 `json:"time"`
}

// WithdrawRequest is a user-initiated payout request. Status is the only
// field that ever changes after the entry is appended, and it changes at
// most once: pending -> success or pending -> rejected.
type WithdrawRequest struct {
	Amount float64 `json:"amount"`
	Time   int64   `json:"time"`
	Status string  `json:"status"`
}

// MiningLog records one successful mining claim.
type MiningLog struct {
	Amount float64 `json:"amount"`
	Time   int64   `json:"time"`
}

// UserLedger is the full durable record for one user: spendable balance,
// the timestamp of the last successful claim (0 before the first one) and
// three append-only event logs. Timestamps are unix seconds.
type UserLedger struct {
	Balance          float64           `json:"balance"`
	LastClaim        int64             `json:"last_claim"`
	Deposits         []Deposit         `json:"deposits"`
	WithdrawRequests []WithdrawRequest `json:"withdraw_requests"`
	MiningLogs       []MiningLog       `json:"mining_logs"`
}

// NewUserLedger returns an empty ledger. Slices are allocated so the record
// round-trips through JSON as [] rather than null.
func NewUserLedger() *UserLedger {
	return &UserLedger{
		Deposits:         []Deposit{},
		WithdrawRequests: []WithdrawRequest{},
		MiningLogs:       []MiningLog{},
	}
}

// TotalDeposited returns the cumulative deposit amount. It feeds the tier
// lookup only; it is not a spendable balance.
func (u *UserLedger) TotalDeposited() int64 {
	var total int64
	for _, d := range u.Deposits {
		total += d.Amount
	}
	return total
}

// Clone returns a deep copy of the ledger. The service snapshots a record
// before mutating it so a failed persist can restore the original.
func (u *UserLedger) Clone() *UserLedger {
	c := &UserLedger{
		Balance:          u.Balance,
		LastClaim:        u.LastClaim,
		Deposits:         make([]Deposit, len(u.Deposits)),
		WithdrawRequests: make([]WithdrawRequest, len(u.WithdrawRequests)),
		MiningLogs:       make([]MiningLog, len(u.MiningLogs)),
	}
	copy(c.Deposits, u.Deposits)
	copy(c.WithdrawRequests, u.WithdrawRequests)
	copy(c.MiningLogs, u.MiningLogs)
	return c
}
