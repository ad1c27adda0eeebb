package models

import "time"

// OTP represents a one-time passcode issued for phone number verification.
// The phone_number column stores the correlation key: country code and
// national number concatenated with no normalization.
type OTP struct {
	ID          int        `json:"id"`
	PhoneNumber string     `json:"phone_number"`
	CountryCode string     `json:"country_code"`
	Code        string     `json:"-"` // Never expose the code in JSON responses
	IsValid     bool       `json:"is_valid"`
	Attempts    int        `json:"attempts"`
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   time.Time  `json:"expires_at"`
	ValidatedAt *time.Time `json:"validated_at,omitempty"`
}

// SendOTPRequest is the POST /api/otp/send payload
type SendOTPRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	CountryCode string `json:"countryCode"`
}

// SendOTPResponse reports issuance. OTPForTesting is only populated when
// the mock SMS provider is active, never in production.
type SendOTPResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	OTPForTesting string `json:"otpForTesting,omitempty"`
}

// ValidateOTPRequest is the POST /api/otp/validate payload
type ValidateOTPRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	CountryCode string `json:"countryCode"`
	OTP         string `json:"otp"`
}

// ValidateOTPResponse reports the outcome of a verification attempt
type ValidateOTPResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Valid   bool   `json:"valid"`
}
