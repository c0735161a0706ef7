package ledger

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrUserNotFound        = errors.New("user not found")
	ErrWithdrawNotFound    = errors.New("withdraw request not found")
	ErrWithdrawSettled     = errors.New("withdraw request already settled")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// ClaimNotReadyError is returned by Claim while the cooldown is still
// running. Remaining is the exact wait left.
type ClaimNotReadyError struct {
	Remaining time.Duration
}

func (e *ClaimNotReadyError) Error() string {
	return fmt.Sprintf("claim not ready, %s remaining", FormatCooldown(e.Remaining))
}

// PersistError wraps a store failure. The operation that triggered the save
// has already been rolled back in memory when this is returned.
type PersistError struct {
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist ledger: %v", e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

// FormatCooldown renders a wait as H:MM:SS, the form both front ends show.
func FormatCooldown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
}
