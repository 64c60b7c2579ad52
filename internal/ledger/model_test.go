package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlatformFee(t *testing.T) {
	tests := []struct {
		name       string
		gross      int64
		feePercent int
		wantFee    int64
	}{
		{"five percent of 100k", 100000, 5, 5000},
		{"five percent of 200k", 200000, 5, 10000},
		{"five percent of 50k", 50000, 5, 2500},
		{"rounds half up", 99999, 5, 5000}, // 4999.95 -> 5000
		{"rounds down below half", 10009, 5, 500},
		{"zero percent", 100000, 0, 0},
		{"full percent", 100000, 100, 100000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee := PlatformFee(tt.gross, tt.feePercent)
			assert.Equal(t, tt.wantFee, fee)

			// seller share plus fee must reconstruct the gross exactly
			assert.Equal(t, tt.gross, (tt.gross-fee)+fee)
		})
	}
}

func TestEntryStatusValid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusAvailable.Valid())
	assert.False(t, EntryStatus("paid").Valid())
	assert.False(t, EntryStatus("").Valid())
}
