package otpclient

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wardrobe-backend/internal/models"
)

// scriptedBackend fakes the OTP endpoints with a known current code
type scriptedBackend struct {
	code          string
	sendCalls     int
	validateCalls int
	sendFails     bool
}

func (b *scriptedBackend) SendOTP(ctx context.Context, phoneNumber, countryCode string) (*models.SendOTPResponse, error) {
	b.sendCalls++
	if b.sendFails {
		return &models.SendOTPResponse{Success: false, Message: "Failed to generate OTP"}, nil
	}
	return &models.SendOTPResponse{Success: true, Message: "OTP sent successfully"}, nil
}

func (b *scriptedBackend) ValidateOTP(ctx context.Context, phoneNumber, countryCode, otp string) (*models.ValidateOTPResponse, error) {
	b.validateCalls++
	if otp == b.code {
		return &models.ValidateOTPResponse{
			Success: true,
			Message: "OTP validated successfully",
			Valid:   true,
		}, nil
	}
	return &models.ValidateOTPResponse{
		Success: false,
		Message: "Incorrect OTP. Please try again.",
	}, nil
}

func newTestVerifier(code string) (*Verifier, *scriptedBackend) {
	backend := &scriptedBackend{code: code}
	return NewVerifier(backend, backend, "9876543210", "+91"), backend
}

func enter(t *testing.T, v *Verifier, digits string) {
	t.Helper()
	for _, ch := range digits {
		require.NoError(t, v.EnterDigit(context.Background(), ch))
	}
}

func TestVerifier_FocusAdvancesOnEntry(t *testing.T) {
	v, _ := newTestVerifier("1234")

	assert.Equal(t, 0, v.Focus())
	enter(t, v, "1")
	assert.Equal(t, 1, v.Focus())
	enter(t, v, "2")
	assert.Equal(t, 2, v.Focus())
	assert.Equal(t, "12", v.Code())
}

func TestVerifier_BackspaceRetreatsWhenEmpty(t *testing.T) {
	v, _ := newTestVerifier("1234")

	enter(t, v, "12")
	// Focus sits on the empty third box; backspace moves back and clears
	v.Backspace()
	assert.Equal(t, 1, v.Focus())
	assert.Equal(t, "1", v.Code())

	// Now the focused box is empty again
	v.Backspace()
	assert.Equal(t, 0, v.Focus())
	assert.Equal(t, "", v.Code())
}

func TestVerifier_AutoSubmitOnFullBuffer(t *testing.T) {
	v, backend := newTestVerifier("1234")

	enter(t, v, "123")
	assert.Equal(t, 0, backend.validateCalls)

	enter(t, v, "4")
	assert.Equal(t, 1, backend.validateCalls)
	assert.True(t, v.Verified())
	assert.Equal(t, "OTP validated successfully", v.Message())
}

func TestVerifier_AutoSubmitExactlyOnce(t *testing.T) {
	v, backend := newTestVerifier("1234")

	enter(t, v, "1234")
	require.Equal(t, 1, backend.validateCalls)

	// Further input after a successful verification is ignored
	enter(t, v, "9")
	require.NoError(t, v.Submit(context.Background()))
	assert.Equal(t, 1, backend.validateCalls)
}

func TestVerifier_WrongCodeShowsServerMessage(t *testing.T) {
	v, backend := newTestVerifier("1234")

	enter(t, v, "9999")
	assert.Equal(t, 1, backend.validateCalls)
	assert.False(t, v.Verified())
	assert.Equal(t, "Incorrect OTP. Please try again.", v.Message())

	// Clearing and re-entering triggers a fresh attempt
	for i := 0; i < 4; i++ {
		v.Backspace()
	}
	enter(t, v, "1234")
	assert.Equal(t, 2, backend.validateCalls)
	assert.True(t, v.Verified())
}

func TestVerifier_LocalFormatErrorSkipsNetwork(t *testing.T) {
	v, backend := newTestVerifier("1234")

	enter(t, v, "12")
	require.NoError(t, v.Submit(context.Background()))

	assert.Equal(t, 0, backend.validateCalls)
	assert.Equal(t, "Please enter a valid 4-digit OTP", v.Message())
}

func TestVerifier_NonDigitInputIgnored(t *testing.T) {
	v, _ := newTestVerifier("1234")

	require.NoError(t, v.EnterDigit(context.Background(), 'a'))
	require.NoError(t, v.EnterDigit(context.Background(), ' '))
	assert.Equal(t, "", v.Code())
	assert.Equal(t, 0, v.Focus())
}

func TestVerifier_CountdownUnlocksResend(t *testing.T) {
	v, _ := newTestVerifier("1234")

	assert.Equal(t, ResendCooldownSeconds, v.Remaining())
	assert.False(t, v.CanResend())

	for i := 0; i < ResendCooldownSeconds-1; i++ {
		v.Tick()
	}
	assert.Equal(t, 1, v.Remaining())
	assert.False(t, v.CanResend())

	v.Tick()
	assert.Equal(t, 0, v.Remaining())
	assert.True(t, v.CanResend())

	// Further ticks stay at zero
	v.Tick()
	assert.Equal(t, 0, v.Remaining())
}

func TestVerifier_ResendBlockedDuringCountdown(t *testing.T) {
	v, backend := newTestVerifier("1234")

	require.NoError(t, v.Resend(context.Background()))
	assert.Equal(t, 0, backend.sendCalls)
}

func TestVerifier_ResendClearsBufferAndRestartsCountdown(t *testing.T) {
	v, backend := newTestVerifier("1234")

	enter(t, v, "99")
	for i := 0; i < ResendCooldownSeconds; i++ {
		v.Tick()
	}
	require.True(t, v.CanResend())

	require.NoError(t, v.Resend(context.Background()))
	assert.Equal(t, 1, backend.sendCalls)
	assert.Equal(t, "", v.Code())
	assert.Equal(t, 0, v.Focus())
	assert.Equal(t, ResendCooldownSeconds, v.Remaining())
	assert.False(t, v.CanResend())
}

func TestVerifier_ResendFailureKeepsState(t *testing.T) {
	v, backend := newTestVerifier("1234")
	backend.sendFails = true

	for i := 0; i < ResendCooldownSeconds; i++ {
		v.Tick()
	}
	err := v.Resend(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Failed to generate OTP", v.Message())
	// Resend stays available after a failed attempt
	assert.True(t, v.CanResend())
}

func TestVerifier_SixDigitVariant(t *testing.T) {
	backend := &scriptedBackend{code: "123456"}
	v := NewVerifier(backend, backend, "9876543210", "+91")
	v.SetWidth(6)

	enter(t, v, "12345")
	assert.Equal(t, 0, backend.validateCalls)

	enter(t, v, "6")
	assert.Equal(t, 1, backend.validateCalls)
	assert.True(t, v.Verified())
}
