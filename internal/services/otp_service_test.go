package services

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wardrobe-backend/internal/models"
	"wardrobe-backend/internal/sms"
)

// fakeOTPStore keeps OTP rows in memory with the same semantics as the
// Postgres repository: Issue invalidates outstanding rows for the number,
// GetLatestValid returns the newest valid row or nil.
type fakeOTPStore struct {
	rows   []*models.OTP
	nextID int
}

func newFakeOTPStore() *fakeOTPStore {
	return &fakeOTPStore{nextID: 1}
}

func (s *fakeOTPStore) Issue(ctx context.Context, otp *models.OTP) error {
	for _, row := range s.rows {
		if row.PhoneNumber == otp.PhoneNumber && row.IsValid {
			row.IsValid = false
		}
	}
	otp.ID = s.nextID
	s.nextID++
	otp.CreatedAt = time.Now().UTC()
	copied := *otp
	s.rows = append(s.rows, &copied)
	return nil
}

func (s *fakeOTPStore) GetLatestValid(ctx context.Context, phoneNumber string) (*models.OTP, error) {
	var latest *models.OTP
	for _, row := range s.rows {
		if row.PhoneNumber != phoneNumber || !row.IsValid {
			continue
		}
		if latest == nil || row.CreatedAt.After(latest.CreatedAt) {
			latest = row
		}
	}
	if latest == nil {
		return nil, nil
	}
	copied := *latest
	return &copied, nil
}

func (s *fakeOTPStore) IncrementAttempts(ctx context.Context, id int) error {
	for _, row := range s.rows {
		if row.ID == id {
			row.Attempts++
		}
	}
	return nil
}

func (s *fakeOTPStore) Invalidate(ctx context.Context, id int) error {
	for _, row := range s.rows {
		if row.ID == id {
			row.IsValid = false
		}
	}
	return nil
}

func (s *fakeOTPStore) Consume(ctx context.Context, id int, validatedAt time.Time) error {
	for _, row := range s.rows {
		if row.ID == id {
			row.IsValid = false
			at := validatedAt
			row.ValidatedAt = &at
		}
	}
	return nil
}

func (s *fakeOTPStore) validCount(phoneNumber string) int {
	n := 0
	for _, row := range s.rows {
		if row.PhoneNumber == phoneNumber && row.IsValid {
			n++
		}
	}
	return n
}

func newTestOTPService(store *fakeOTPStore) *OTPService {
	svc := NewOTPService(store, sms.NewMockSMSService())
	svc.ExposeCode = true
	return svc
}

func TestGenerateOTP_FixedWidthRange(t *testing.T) {
	svc := newTestOTPService(newFakeOTPStore())

	for i := 0; i < 200; i++ {
		code := svc.GenerateOTP()
		require.Len(t, code, 4)
		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 1000)
		assert.LessOrEqual(t, n, 9999)
	}
}

func TestCorrelationKey_Concatenation(t *testing.T) {
	assert.Equal(t, "+919876543210", CorrelationKey("+91", "9876543210"))
	assert.Equal(t, "19876543210", CorrelationKey("1", "9876543210"))
}

func TestSend_SupersedesOutstandingCode(t *testing.T) {
	store := newFakeOTPStore()
	svc := newTestOTPService(store)
	ctx := context.Background()

	first, err := svc.Send(ctx, "9876543210", "+91")
	require.NoError(t, err)
	second, err := svc.Send(ctx, "9876543210", "+91")
	require.NoError(t, err)

	// Only the newest code is outstanding
	assert.Equal(t, 1, store.validCount("+919876543210"))

	status, err := svc.Validate(ctx, "9876543210", "+91", first.Code)
	require.NoError(t, err)

	// The superseded code can still collide with the new one by value
	if first.Code == second.Code {
		assert.Equal(t, ValidationOK, status)
	} else {
		assert.Equal(t, ValidationMismatch, status)
	}
}

func TestValidate_RoundTrip(t *testing.T) {
	store := newFakeOTPStore()
	svc := newTestOTPService(store)
	ctx := context.Background()

	otp, err := svc.Send(ctx, "9876543210", "+91")
	require.NoError(t, err)

	status, err := svc.Validate(ctx, "9876543210", "+91", otp.Code)
	require.NoError(t, err)
	assert.Equal(t, ValidationOK, status)
	assert.Equal(t, "OTP validated successfully", status.Message())
}

func TestValidate_ExactlyOnceConsumption(t *testing.T) {
	store := newFakeOTPStore()
	svc := newTestOTPService(store)
	ctx := context.Background()

	otp, err := svc.Send(ctx, "9876543210", "+91")
	require.NoError(t, err)

	status, err := svc.Validate(ctx, "9876543210", "+91", otp.Code)
	require.NoError(t, err)
	require.Equal(t, ValidationOK, status)

	// Replaying the same code finds no outstanding record
	status, err = svc.Validate(ctx, "9876543210", "+91", otp.Code)
	require.NoError(t, err)
	assert.Equal(t, ValidationNotFound, status)
	assert.Equal(t, "No valid OTP found. Please request a new one.", status.Message())
}

func TestValidate_NoOutstandingCode(t *testing.T) {
	svc := newTestOTPService(newFakeOTPStore())

	status, err := svc.Validate(context.Background(), "9876543210", "+91", "1234")
	require.NoError(t, err)
	assert.Equal(t, ValidationNotFound, status)
}

func TestValidate_AttemptBudget(t *testing.T) {
	store := newFakeOTPStore()
	svc := newTestOTPService(store)
	ctx := context.Background()

	otp, err := svc.Send(ctx, "9876543210", "+91")
	require.NoError(t, err)

	wrong := "1234"
	if wrong == otp.Code {
		wrong = "5678"
	}

	// First three wrong submissions each read as a plain mismatch
	for i := 0; i < 3; i++ {
		status, err := svc.Validate(ctx, "9876543210", "+91", wrong)
		require.NoError(t, err)
		assert.Equal(t, ValidationMismatch, status, "attempt %d", i+1)
		assert.Equal(t, "Incorrect OTP. Please try again.", status.Message())
	}

	// The fourth hits the exhausted budget and invalidates the record
	status, err := svc.Validate(ctx, "9876543210", "+91", wrong)
	require.NoError(t, err)
	assert.Equal(t, ValidationLocked, status)
	assert.Equal(t, "Too many attempts. Please request a new OTP.", status.Message())
	assert.Equal(t, 0, store.validCount("+919876543210"))

	// Even the correct code is refused now
	status, err = svc.Validate(ctx, "9876543210", "+91", otp.Code)
	require.NoError(t, err)
	assert.Equal(t, ValidationNotFound, status)
}

func TestValidate_LockoutDoesNotConsumeCorrectCode(t *testing.T) {
	store := newFakeOTPStore()
	svc := newTestOTPService(store)
	ctx := context.Background()

	otp, err := svc.Send(ctx, "9876543210", "+91")
	require.NoError(t, err)

	wrong := "1234"
	if wrong == otp.Code {
		wrong = "5678"
	}

	// Two wrong attempts leave one left in the budget
	for i := 0; i < 2; i++ {
		status, err := svc.Validate(ctx, "9876543210", "+91", wrong)
		require.NoError(t, err)
		require.Equal(t, ValidationMismatch, status)
	}

	status, err := svc.Validate(ctx, "9876543210", "+91", otp.Code)
	require.NoError(t, err)
	assert.Equal(t, ValidationOK, status)
}

func TestValidate_Expiry(t *testing.T) {
	store := newFakeOTPStore()
	svc := newTestOTPService(store)
	ctx := context.Background()

	otp, err := svc.Send(ctx, "9876543210", "+91")
	require.NoError(t, err)

	// Advance the clock past the expiry window
	svc.now = func() time.Time {
		return otp.ExpiresAt.Add(time.Second)
	}

	status, err := svc.Validate(ctx, "9876543210", "+91", otp.Code)
	require.NoError(t, err)
	assert.Equal(t, ValidationExpired, status)
	assert.Equal(t, "OTP has expired. Please request a new one.", status.Message())

	// The expired row was invalidated, so a retry reads not-found
	status, err = svc.Validate(ctx, "9876543210", "+91", otp.Code)
	require.NoError(t, err)
	assert.Equal(t, ValidationNotFound, status)
}

func TestValidate_ExpiryCheckedBeforeLockout(t *testing.T) {
	store := newFakeOTPStore()
	svc := newTestOTPService(store)
	ctx := context.Background()

	otp, err := svc.Send(ctx, "9876543210", "+91")
	require.NoError(t, err)

	wrong := "1234"
	if wrong == otp.Code {
		wrong = "5678"
	}
	for i := 0; i < 3; i++ {
		_, err := svc.Validate(ctx, "9876543210", "+91", wrong)
		require.NoError(t, err)
	}

	svc.now = func() time.Time {
		return otp.ExpiresAt.Add(time.Second)
	}

	// Expired and exhausted: expiry wins
	status, err := svc.Validate(ctx, "9876543210", "+91", otp.Code)
	require.NoError(t, err)
	assert.Equal(t, ValidationExpired, status)
}

func TestValidate_FormatRejectedBeforeLookup(t *testing.T) {
	store := newFakeOTPStore()
	svc := newTestOTPService(store)
	ctx := context.Background()

	otp, err := svc.Send(ctx, "9876543210", "+91")
	require.NoError(t, err)

	for _, code := range []string{"", "12", "12345", "12a4", "abcd"} {
		status, err := svc.Validate(ctx, "9876543210", "+91", code)
		require.NoError(t, err)
		assert.Equal(t, ValidationBadFormat, status, "code %q", code)
	}

	// Malformed submissions never touch the attempt counter
	row, err := store.GetLatestValid(ctx, "+919876543210")
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, 0, row.Attempts)
	assert.Equal(t, otp.Code, row.Code)
}

func TestValidate_ConfiguredAttemptBudget(t *testing.T) {
	store := newFakeOTPStore()
	svc := newTestOTPService(store)
	svc.MaxAttempts = 1
	ctx := context.Background()

	otp, err := svc.Send(ctx, "9876543210", "+91")
	require.NoError(t, err)

	wrong := "1234"
	if wrong == otp.Code {
		wrong = "5678"
	}

	status, err := svc.Validate(ctx, "9876543210", "+91", wrong)
	require.NoError(t, err)
	require.Equal(t, ValidationMismatch, status)

	// With a budget of one, the second call hits the lockout gate
	status, err = svc.Validate(ctx, "9876543210", "+91", otp.Code)
	require.NoError(t, err)
	assert.Equal(t, ValidationLocked, status)
}

func TestSend_ConfiguredExpiryWindow(t *testing.T) {
	store := newFakeOTPStore()
	svc := newTestOTPService(store)
	svc.ExpiryMinutes = 10

	issued := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	otp, err := svc.Send(context.Background(), "9876543210", "+91")
	require.NoError(t, err)
	assert.Equal(t, issued.Add(10*time.Minute), otp.ExpiresAt)

	// Still valid past the default 5-minute window
	svc.now = func() time.Time { return issued.Add(7 * time.Minute) }
	status, err := svc.Validate(context.Background(), "9876543210", "+91", otp.Code)
	require.NoError(t, err)
	assert.Equal(t, ValidationOK, status)
}

func TestValidate_MismatchIncrementsOnlyAttempts(t *testing.T) {
	store := newFakeOTPStore()
	svc := newTestOTPService(store)
	ctx := context.Background()

	otp, err := svc.Send(ctx, "9876543210", "+91")
	require.NoError(t, err)

	wrong := "1234"
	if wrong == otp.Code {
		wrong = "5678"
	}
	status, err := svc.Validate(ctx, "9876543210", "+91", wrong)
	require.NoError(t, err)
	require.Equal(t, ValidationMismatch, status)

	row, err := store.GetLatestValid(ctx, "+919876543210")
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, 1, row.Attempts)
	assert.True(t, row.IsValid)
	assert.Nil(t, row.ValidatedAt)
}
