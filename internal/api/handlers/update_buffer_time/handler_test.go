package update_buffer_time

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedule"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedule/models"
)

type fakeService struct {
	err error
	req *models.UpdateBufferTimeRequest
}

func (f *fakeService) UpdateBufferTime(_ context.Context, req *models.UpdateBufferTimeRequest) (*models.BufferTimeResponse, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.BufferTimeResponse{
		ID:            uuid.New(),
		TenantID:      req.TenantID,
		CategoryID:    req.CategoryID,
		BeforeMinutes: req.BeforeMinutes,
		AfterMinutes:  req.AfterMinutes,
	}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc ScheduleService, tenantID string, userID *uuid.UUID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, "/api/v1/tenants/"+tenantID+"/buffer-times", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"tenantId": tenantID})
	if userID != nil {
		req = req.WithContext(middleware.WithUserID(req.Context(), *userID))
	}
	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, req)
	return rec
}

func TestHandler(t *testing.T) {
	tenantID := uuid.New()
	userID := uuid.New()
	categoryID := uuid.New()

	t.Run("global buffer", func(t *testing.T) {
		svc := &fakeService{}

		rec := serve(svc, tenantID.String(), &userID, `{"beforeMinutes":15,"afterMinutes":10}`)
		require.Equal(t, http.StatusOK, rec.Code)

		require.NotNil(t, svc.req)
		assert.Nil(t, svc.req.CategoryID)
		assert.Equal(t, 15, svc.req.BeforeMinutes)
		assert.Equal(t, 10, svc.req.AfterMinutes)
		assert.Equal(t, userID, svc.req.UserID)
	})

	t.Run("category buffer", func(t *testing.T) {
		svc := &fakeService{}

		rec := serve(svc, tenantID.String(), &userID, `{"categoryId":"`+categoryID.String()+`","beforeMinutes":0,"afterMinutes":30}`)
		require.Equal(t, http.StatusOK, rec.Code)

		require.NotNil(t, svc.req.CategoryID)
		assert.Equal(t, categoryID, *svc.req.CategoryID)
		assert.Contains(t, rec.Body.String(), categoryID.String())
	})

	body := `{"beforeMinutes":5,"afterMinutes":5}`
	tests := []struct {
		name       string
		tenantID   string
		userID     *uuid.UUID
		body       string
		svcErr     error
		wantStatus int
	}{
		{name: "invalid tenant", tenantID: "t", userID: &userID, body: body, wantStatus: http.StatusBadRequest},
		{name: "missing user", tenantID: tenantID.String(), body: body, wantStatus: http.StatusUnauthorized},
		{name: "bad category", tenantID: tenantID.String(), userID: &userID, body: `{"categoryId":"cat"}`, wantStatus: http.StatusBadRequest},
		{name: "invalid data", tenantID: tenantID.String(), userID: &userID, body: body, svcErr: schedule.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "tenant not found", tenantID: tenantID.String(), userID: &userID, body: body, svcErr: schedule.ErrTenantNotFound, wantStatus: http.StatusNotFound},
		{name: "internal", tenantID: tenantID.String(), userID: &userID, body: body, svcErr: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.svcErr}, tt.tenantID, tt.userID, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
