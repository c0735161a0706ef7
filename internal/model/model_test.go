package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalDeposited(t *testing.T) {
	u := NewUserLedger()
	assert.Equal(t, int64(0), u.TotalDeposited())

	u.Deposits = append(u.Deposits, Deposit{Amount: 10000, Time: 1}, Deposit{Amount: 250, Time: 2})
	assert.Equal(t, int64(10250), u.TotalDeposited())
}

func TestCloneIsIndependent(t *testing.T) {
	u := NewUserLedger()
	u.Balance = 5
	u.Deposits = append(u.Deposits, Deposit{Amount: 100, Time: 1})
	u.WithdrawRequests = append(u.WithdrawRequests, WithdrawRequest{Amount: 3, Time: 2, Status: WithdrawStatusPending})

	c := u.Clone()
	require.Equal(t, u, c)

	u.Balance = 99
	u.Deposits = append(u.Deposits, Deposit{Amount: 1, Time: 3})
	u.WithdrawRequests[0].Status = WithdrawStatusSuccess

	assert.Equal(t, float64(5), c.Balance)
	assert.Len(t, c.Deposits, 1)
	assert.Equal(t, WithdrawStatusPending, c.WithdrawRequests[0].Status)
}

func TestNewUserLedgerMarshalsEmptyLogs(t *testing.T) {
	data, err := json.Marshal(NewUserLedger())
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"balance": 0,
		"last_claim": 0,
		"deposits": [],
		"withdraw_requests": [],
		"mining_logs": []
	}`, string(data))
}
