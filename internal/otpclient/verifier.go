package otpclient

import (
	"context"
	"fmt"
	"strings"

	"wardrobe-backend/internal/models"
)

const (
	// DefaultCodeWidth matches the 4-box input of the mobile client
	DefaultCodeWidth = 4

	// ResendCooldownSeconds is the countdown seed before resend unlocks
	ResendCooldownSeconds = 32
)

// Sender issues a fresh code for a phone number
type Sender interface {
	SendOTP(ctx context.Context, phoneNumber, countryCode string) (*models.SendOTPResponse, error)
}

// Validator submits one verification attempt
type Validator interface {
	ValidateOTP(ctx context.Context, phoneNumber, countryCode, otp string) (*models.ValidateOTPResponse, error)
}

// Verifier drives the OTP entry flow: a fixed-width digit buffer with
// forward/backward focus movement, auto-submit when the buffer fills, and
// a one-second-resolution resend countdown. It is cooperative and
// single-threaded: the caller delivers key events and clock ticks from
// one goroutine. At most one validation call is in flight at a time.
type Verifier struct {
	sender    Sender
	validator Validator

	phoneNumber string
	countryCode string

	width  int
	digits []string
	focus  int

	remaining int
	canResend bool

	validating bool
	resending  bool
	verified   bool
	message    string
}

func NewVerifier(sender Sender, validator Validator, phoneNumber, countryCode string) *Verifier {
	v := &Verifier{
		sender:      sender,
		validator:   validator,
		phoneNumber: phoneNumber,
		countryCode: countryCode,
		width:       DefaultCodeWidth,
	}
	v.Reset()
	return v
}

// SetWidth switches to the alternate 6-digit input variant. Resets the
// buffer and countdown.
func (v *Verifier) SetWidth(width int) {
	if width > 0 {
		v.width = width
		v.Reset()
	}
}

// Reset clears the buffer and restarts the resend countdown, as when the
// verification screen is (re)opened.
func (v *Verifier) Reset() {
	v.digits = make([]string, v.width)
	v.focus = 0
	v.remaining = ResendCooldownSeconds
	v.canResend = false
	v.verified = false
	v.message = ""
}

// EnterDigit places one digit at the focused position and advances focus.
// Filling the last position triggers validation automatically, exactly
// once per fill. Non-digit input is ignored.
func (v *Verifier) EnterDigit(ctx context.Context, ch rune) error {
	if ch < '0' || ch > '9' {
		return nil
	}
	if v.validating || v.verified {
		return nil
	}

	v.digits[v.focus] = string(ch)
	v.message = ""

	if v.focus < v.width-1 {
		v.focus++
		return nil
	}
	return v.submit(ctx)
}

// Backspace clears the focused position, or moves focus back when the
// position is already empty.
func (v *Verifier) Backspace() {
	if v.validating {
		return
	}
	if v.digits[v.focus] == "" && v.focus > 0 {
		v.focus--
	}
	v.digits[v.focus] = ""
	v.message = ""
}

// Submit validates whatever is currently in the buffer, for an explicit
// verify button press.
func (v *Verifier) Submit(ctx context.Context) error {
	return v.submit(ctx)
}

func (v *Verifier) submit(ctx context.Context) error {
	if v.validating || v.verified {
		return nil
	}

	code := v.Code()
	if msg := checkFormat(code, v.width); msg != "" {
		v.message = msg
		return nil
	}

	v.validating = true
	defer func() { v.validating = false }()

	resp, err := v.validator.ValidateOTP(ctx, v.phoneNumber, v.countryCode, code)
	if err != nil {
		v.message = err.Error()
		return err
	}

	if resp.Success && resp.Valid {
		v.verified = true
		v.message = resp.Message
		return nil
	}

	if resp.Message != "" {
		v.message = resp.Message
	} else {
		v.message = "Incorrect OTP. Please try again."
	}
	return nil
}

// Tick advances the countdown by one second. Resend unlocks at zero.
func (v *Verifier) Tick() {
	if v.remaining > 0 {
		v.remaining--
		if v.remaining == 0 {
			v.canResend = true
		}
	}
}

// Resend requests a fresh code. Only permitted once the countdown has
// reached zero; success clears the buffer and restarts the countdown.
func (v *Verifier) Resend(ctx context.Context) error {
	if !v.canResend || v.resending {
		return nil
	}

	v.resending = true
	defer func() { v.resending = false }()

	resp, err := v.sender.SendOTP(ctx, v.phoneNumber, v.countryCode)
	if err != nil {
		v.message = err.Error()
		return err
	}
	if !resp.Success {
		if resp.Message != "" {
			v.message = resp.Message
		} else {
			v.message = "Failed to resend OTP"
		}
		return fmt.Errorf("resend rejected: %s", v.message)
	}

	v.Reset()
	return nil
}

// Code returns the buffer contents joined in order
func (v *Verifier) Code() string {
	return strings.Join(v.digits, "")
}

// Focus returns the index of the active input position
func (v *Verifier) Focus() int { return v.focus }

// Remaining returns the countdown seconds left before resend unlocks
func (v *Verifier) Remaining() int { return v.remaining }

// CanResend reports whether the countdown has finished
func (v *Verifier) CanResend() bool { return v.canResend }

// Verified reports whether a validation attempt succeeded
func (v *Verifier) Verified() bool { return v.verified }

// Message returns the current user-facing status line: the server's
// message verbatim, or a local format error.
func (v *Verifier) Message() string { return v.message }

// checkFormat rejects codes of the wrong length or with non-digit
// characters before any network call is made.
func checkFormat(code string, width int) string {
	if len(code) != width {
		return fmt.Sprintf("Please enter a valid %d-digit OTP", width)
	}
	for _, ch := range code {
		if ch < '0' || ch > '9' {
			return fmt.Sprintf("Please enter a valid %d-digit OTP", width)
		}
	}
	return ""
}
