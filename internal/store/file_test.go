package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starledger/internal/model"
)

func testUsers() map[string]*model.UserLedger {
	alice := model.NewUserLedger()
	alice.Balance = 10002
	alice.LastClaim = 28800
	alice.Deposits = append(alice.Deposits, model.Deposit{Amount: 10000, Time: 0})
	alice.WithdrawRequests = append(alice.WithdrawRequests,
		model.WithdrawRequest{Amount: 5, Time: 100, Status: model.WithdrawStatusPending})
	alice.MiningLogs = append(alice.MiningLogs, model.MiningLog{Amount: 2, Time: 28800})

	bob := model.NewUserLedger()
	bob.Balance = 0.5

	return map[string]*model.UserLedger{"alice": alice, "bob": bob}
}

func TestFileStoreLoadFirstRun(t *testing.T) {
	f := NewFileStore(filepath.Join(t.TempDir(), "ledger.json"))

	users, err := f.Load()
	require.NoError(t, err)
	assert.Empty(t, users, "missing file is a first run, not an error")
}

func TestFileStoreRoundTrip(t *testing.T) {
	f := NewFileStore(filepath.Join(t.TempDir(), "ledger.json"))
	users := testUsers()

	require.NoError(t, f.Save(users))

	loaded, err := f.Load()
	require.NoError(t, err)
	assert.Equal(t, users, loaded)
}

func TestFileStoreSaveReplacesSnapshot(t *testing.T) {
	f := NewFileStore(filepath.Join(t.TempDir(), "ledger.json"))

	require.NoError(t, f.Save(testUsers()))

	carol := model.NewUserLedger()
	carol.Balance = 7
	next := map[string]*model.UserLedger{"carol": carol}
	require.NoError(t, f.Save(next))

	loaded, err := f.Load()
	require.NoError(t, err)
	assert.Equal(t, next, loaded, "Save overwrites the prior contents in full")
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	f := NewFileStore(filepath.Join(dir, "ledger.json"))

	require.NoError(t, f.Save(testUsers()))
	require.NoError(t, f.Save(testUsers()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ledger.json", entries[0].Name())
}

func TestFileStoreLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewFileStore(path).Load()
	assert.Error(t, err)
}
