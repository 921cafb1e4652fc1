package get_working_hours

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedule"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedule/models"
)

type fakeService struct {
	resp *models.WorkingHoursListResponse
	err  error
}

func (f *fakeService) GetWorkingHours(_ context.Context, tenantID uuid.UUID) (*models.WorkingHoursListResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.resp.TenantID = tenantID
	return f.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc ScheduleService, tenantID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tenants/"+tenantID+"/working-hours", nil)
	req = mux.SetURLVars(req, map[string]string{"tenantId": tenantID})
	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, req)
	return rec
}

func TestHandler(t *testing.T) {
	tenantID := uuid.New()

	t.Run("ok", func(t *testing.T) {
		svc := &fakeService{resp: &models.WorkingHoursListResponse{
			WorkingHours: []models.WorkingHoursResponse{
				{DayOfWeek: 0, StartTime: "00:00", EndTime: "00:00", IsDayOff: true, MaxConcurrentBookings: 1},
			},
		}}

		rec := serve(svc, tenantID.String())
		require.Equal(t, http.StatusOK, rec.Code)

		var body models.WorkingHoursListResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, tenantID, body.TenantID)
		require.Len(t, body.WorkingHours, 1)
		assert.True(t, body.WorkingHours[0].IsDayOff)
		assert.NotContains(t, rec.Body.String(), `"id"`)
	})

	t.Run("invalid tenant", func(t *testing.T) {
		rec := serve(&fakeService{}, "not-a-uuid")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("tenant not found", func(t *testing.T) {
		rec := serve(&fakeService{err: schedule.ErrTenantNotFound}, tenantID.String())
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("internal", func(t *testing.T) {
		rec := serve(&fakeService{err: errors.New("db down")}, tenantID.String())
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "db down")
	})
}
