package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatCooldown(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00"},
		{-time.Minute, "00:00:00"},
		{time.Second, "00:00:01"},
		{90 * time.Second, "00:01:30"},
		{8 * time.Hour, "08:00:00"},
		{8*time.Hour - time.Second, "07:59:59"},
		{26*time.Hour + 3*time.Minute + 4*time.Second, "26:03:04"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCooldown(tt.d))
	}
}

func TestClaimNotReadyErrorMessage(t *testing.T) {
	err := &ClaimNotReadyError{Remaining: 8*time.Hour - 2*time.Second}
	assert.Equal(t, "claim not ready, 07:59:58 remaining", err.Error())
}
