package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wardrobe-backend/internal/models"
)

// fakeSMSLogStore records the pagination arguments it was called with
type fakeSMSLogStore struct {
	logs      []models.SMSLog
	err       error
	gotLimit  int
	gotOffset int
}

func (s *fakeSMSLogStore) List(ctx context.Context, limit, offset int) ([]models.SMSLog, error) {
	s.gotLimit = limit
	s.gotOffset = offset
	return s.logs, s.err
}

func TestSMSLogList_DefaultsAndEnvelope(t *testing.T) {
	store := &fakeSMSLogStore{logs: []models.SMSLog{
		{ID: 1, Phone: "9166677888", MessageType: models.SMSTypeOTP, Status: models.SMSStatusSent},
	}}
	h := NewSMSLogHandler(store)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/sms-logs", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 50, store.gotLimit)
	assert.Equal(t, 0, store.gotOffset)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(50), body["limit"])
	assert.Equal(t, float64(0), body["offset"])
	assert.Len(t, body["logs"], 1)
}

func TestSMSLogList_ClampsPagination(t *testing.T) {
	cases := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"oversized limit", "?limit=500&offset=20", 50, 20},
		{"negative values", "?limit=-1&offset=-5", 50, 0},
		{"in range", "?limit=10&offset=30", 10, 30},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeSMSLogStore{}
			h := NewSMSLogHandler(store)

			req := httptest.NewRequest(http.MethodGet, "/api/admin/sms-logs"+tc.query, nil)
			rec := httptest.NewRecorder()
			h.List(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tc.wantLimit, store.gotLimit)
			assert.Equal(t, tc.wantOffset, store.gotOffset)
		})
	}
}

func TestSMSLogList_StoreError(t *testing.T) {
	store := &fakeSMSLogStore{err: errors.New("connection refused")}
	h := NewSMSLogHandler(store)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/sms-logs", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Failed to fetch SMS logs", body["message"])
}
