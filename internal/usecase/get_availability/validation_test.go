package get_availability

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRequest(t *testing.T) {
	now := time.Date(2026, 10, 16, 23, 59, 0, 0, time.UTC)
	tenantID := uuid.New()

	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{"valid single day today", Request{TenantID: tenantID, StartDate: "2026-10-16", EndDate: "2026-10-16"}, nil},
		{"valid 31 days", Request{TenantID: tenantID, StartDate: "2026-10-16", EndDate: "2026-11-15"}, nil},
		{"32 days", Request{TenantID: tenantID, StartDate: "2026-10-16", EndDate: "2026-11-16"}, ErrRangeTooLong},
		{"missing tenant", Request{StartDate: "2026-10-16", EndDate: "2026-10-16"}, ErrInvalidInput},
		{"missing start", Request{TenantID: tenantID, EndDate: "2026-10-16"}, ErrInvalidInput},
		{"missing end", Request{TenantID: tenantID, StartDate: "2026-10-16"}, ErrInvalidInput},
		{"bad format", Request{TenantID: tenantID, StartDate: "16.10.2026", EndDate: "2026-10-16"}, ErrInvalidInput},
		{"bad calendar date", Request{TenantID: tenantID, StartDate: "2026-02-30", EndDate: "2026-03-01"}, ErrInvalidInput},
		{"end before start", Request{TenantID: tenantID, StartDate: "2026-10-20", EndDate: "2026-10-19"}, ErrInvalidRange},
		{"yesterday", Request{TenantID: tenantID, StartDate: "2026-10-15", EndDate: "2026-10-16"}, ErrDateInPast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			start, end, err := validateRequest(&req, now)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, time.UTC, start.Location())
			assert.False(t, end.Before(start))
		})
	}
}

func TestValidateRange_CheckedInOrder(t *testing.T) {
	now := time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	// длинный период в прошлом отклоняется по длине раньше, чем по дате
	err := validateRange(start, start.AddDate(0, 2, 0), now)
	assert.ErrorIs(t, err, ErrRangeTooLong)
}
