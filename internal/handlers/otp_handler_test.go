package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wardrobe-backend/internal/models"
	"wardrobe-backend/internal/services"
	"wardrobe-backend/internal/sms"
)

// memOTPStore is an in-memory services.OTPStore for handler tests
type memOTPStore struct {
	rows   []*models.OTP
	nextID int
}

func (s *memOTPStore) Issue(ctx context.Context, otp *models.OTP) error {
	for _, row := range s.rows {
		if row.PhoneNumber == otp.PhoneNumber {
			row.IsValid = false
		}
	}
	s.nextID++
	otp.ID = s.nextID
	otp.CreatedAt = time.Now().UTC()
	copied := *otp
	s.rows = append(s.rows, &copied)
	return nil
}

func (s *memOTPStore) GetLatestValid(ctx context.Context, phoneNumber string) (*models.OTP, error) {
	for i := len(s.rows) - 1; i >= 0; i-- {
		if s.rows[i].PhoneNumber == phoneNumber && s.rows[i].IsValid {
			copied := *s.rows[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *memOTPStore) IncrementAttempts(ctx context.Context, id int) error {
	for _, row := range s.rows {
		if row.ID == id {
			row.Attempts++
		}
	}
	return nil
}

func (s *memOTPStore) Invalidate(ctx context.Context, id int) error {
	for _, row := range s.rows {
		if row.ID == id {
			row.IsValid = false
		}
	}
	return nil
}

func (s *memOTPStore) Consume(ctx context.Context, id int, validatedAt time.Time) error {
	for _, row := range s.rows {
		if row.ID == id {
			row.IsValid = false
			at := validatedAt
			row.ValidatedAt = &at
		}
	}
	return nil
}

func newTestOTPHandler() (*OTPHandler, *memOTPStore) {
	store := &memOTPStore{}
	svc := services.NewOTPService(store, sms.NewMockSMSService())
	svc.ExposeCode = true
	return NewOTPHandler(svc), store
}

func postJSON(t *testing.T, handler http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestOTPHandler_Send(t *testing.T) {
	handler, _ := newTestOTPHandler()

	rec := postJSON(t, handler.Send, models.SendOTPRequest{
		PhoneNumber: "9876543210",
		CountryCode: "+91",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.SendOTPResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "OTP sent successfully", resp.Message)
	assert.Len(t, resp.OTPForTesting, 4)
}

func TestOTPHandler_Send_MissingInput(t *testing.T) {
	handler, store := newTestOTPHandler()

	for _, req := range []models.SendOTPRequest{
		{PhoneNumber: "9876543210"},
		{CountryCode: "+91"},
		{},
	} {
		rec := postJSON(t, handler.Send, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Phone number and country code are required", resp["message"])
	}

	// No record is created on input errors
	assert.Empty(t, store.rows)
}

func TestOTPHandler_Send_HidesCodeWithoutExposeFlag(t *testing.T) {
	handler, _ := newTestOTPHandler()
	handler.OTPService.ExposeCode = false

	rec := postJSON(t, handler.Send, models.SendOTPRequest{
		PhoneNumber: "9876543210",
		CountryCode: "+91",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "otpForTesting")
}

func TestOTPHandler_Validate_Success(t *testing.T) {
	handler, _ := newTestOTPHandler()

	sendRec := postJSON(t, handler.Send, models.SendOTPRequest{
		PhoneNumber: "9876543210",
		CountryCode: "+91",
	})
	var sent models.SendOTPResponse
	require.NoError(t, json.Unmarshal(sendRec.Body.Bytes(), &sent))

	rec := postJSON(t, handler.Validate, models.ValidateOTPRequest{
		PhoneNumber: "9876543210",
		CountryCode: "+91",
		OTP:         sent.OTPForTesting,
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.ValidateOTPResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.True(t, resp.Valid)
	assert.Equal(t, "OTP validated successfully", resp.Message)
}

func TestOTPHandler_Validate_NotFoundIs404(t *testing.T) {
	handler, _ := newTestOTPHandler()

	rec := postJSON(t, handler.Validate, models.ValidateOTPRequest{
		PhoneNumber: "9876543210",
		CountryCode: "+91",
		OTP:         "1234",
	})

	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp models.ValidateOTPResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.False(t, resp.Valid)
	assert.Equal(t, "No valid OTP found. Please request a new one.", resp.Message)
}

func TestOTPHandler_Validate_MismatchIs400(t *testing.T) {
	handler, _ := newTestOTPHandler()

	sendRec := postJSON(t, handler.Send, models.SendOTPRequest{
		PhoneNumber: "9876543210",
		CountryCode: "+91",
	})
	var sent models.SendOTPResponse
	require.NoError(t, json.Unmarshal(sendRec.Body.Bytes(), &sent))

	wrong := "1234"
	if wrong == sent.OTPForTesting {
		wrong = "5678"
	}

	rec := postJSON(t, handler.Validate, models.ValidateOTPRequest{
		PhoneNumber: "9876543210",
		CountryCode: "+91",
		OTP:         wrong,
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.ValidateOTPResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Incorrect OTP. Please try again.", resp.Message)
}

func TestOTPHandler_Validate_MissingInput(t *testing.T) {
	handler, _ := newTestOTPHandler()

	rec := postJSON(t, handler.Validate, models.ValidateOTPRequest{
		PhoneNumber: "9876543210",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.ValidateOTPResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Phone number, country code, and OTP are required", resp.Message)
}
