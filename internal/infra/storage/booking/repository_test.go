package booking

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

func TestBuildGetByTenantInRange(t *testing.T) {
	tenantID := uuid.New()
	start := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	rng := domain.NewInterval(start, start.AddDate(0, 0, 2))

	query, args, err := buildGetByTenantInRange(tenantID, rng)
	require.NoError(t, err)

	assert.Contains(t, query, "FROM bookings")
	assert.Contains(t, query, "tenant_id = $1")
	assert.Contains(t, query, "start_date_time < $2")
	assert.Contains(t, query, "end_date_time > $3")
	assert.Contains(t, query, "ORDER BY start_date_time ASC")
	assert.NotContains(t, query, "status =")

	require.Len(t, args, 3)
	assert.Equal(t, tenantID, args[0])
	assert.Equal(t, rng.End, args[1])
	assert.Equal(t, rng.Start, args[2])
}
