package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"time"

	"wardrobe-backend/internal/models"
	"wardrobe-backend/internal/sms"
	"wardrobe-backend/internal/timeutil"
)

const (
	OTPLength        = 4
	OTPExpiryMinutes = 5
	MaxOTPAttempts   = 3
)

// OTPStore is the persistence surface the OTP flow needs. Implemented by
// repositories.OTPRepository.
type OTPStore interface {
	Issue(ctx context.Context, otp *models.OTP) error
	GetLatestValid(ctx context.Context, phoneNumber string) (*models.OTP, error)
	IncrementAttempts(ctx context.Context, id int) error
	Invalidate(ctx context.Context, id int) error
	Consume(ctx context.Context, id int, validatedAt time.Time) error
}

// ValidationStatus is the closed set of outcomes a verification attempt
// can have. Store failures are reported separately as errors.
type ValidationStatus int

const (
	ValidationOK ValidationStatus = iota
	ValidationBadFormat
	ValidationNotFound
	ValidationExpired
	ValidationLocked
	ValidationMismatch
)

// Message returns the user-facing string for this outcome
func (s ValidationStatus) Message() string {
	switch s {
	case ValidationOK:
		return "OTP validated successfully"
	case ValidationBadFormat:
		return fmt.Sprintf("Please enter a valid %d-digit OTP", OTPLength)
	case ValidationNotFound:
		return "No valid OTP found. Please request a new one."
	case ValidationExpired:
		return "OTP has expired. Please request a new one."
	case ValidationLocked:
		return "Too many attempts. Please request a new OTP."
	case ValidationMismatch:
		return "Incorrect OTP. Please try again."
	}
	return "Internal server error"
}

type OTPService struct {
	Store      OTPStore
	SMSService sms.SMSProvider

	// ExposeCode controls whether issued codes are returned in the
	// otpForTesting response field. Only enabled with the mock provider.
	ExposeCode bool

	// ExpiryMinutes and MaxAttempts default to the package constants and
	// are overridden from the otp config section at startup.
	ExpiryMinutes int
	MaxAttempts   int

	now func() time.Time
}

func NewOTPService(store OTPStore, smsService sms.SMSProvider) *OTPService {
	return &OTPService{
		Store:         store,
		SMSService:    smsService,
		ExpiryMinutes: OTPExpiryMinutes,
		MaxAttempts:   MaxOTPAttempts,
		now:           timeutil.Now,
	}
}

// GenerateOTP creates a secure fixed-width numeric code (1000-9999)
func (s *OTPService) GenerateOTP() string {
	max := big.NewInt(9000)
	n, _ := rand.Int(rand.Reader, max)
	return fmt.Sprintf("%04d", n.Int64()+1000)
}

// CorrelationKey builds the lookup key: country code and national number
// concatenated directly, no normalization. Callers pass digits only.
func CorrelationKey(countryCode, phoneNumber string) string {
	return countryCode + phoneNumber
}

// Send issues a new OTP for the phone number. Any outstanding code for the
// same number is invalidated in the same transaction as the insert. SMS
// dispatch failure is logged but does not fail the issuance; the mock
// provider prints the code instead of sending it.
func (s *OTPService) Send(ctx context.Context, phoneNumber, countryCode string) (*models.OTP, error) {
	fullNumber := CorrelationKey(countryCode, phoneNumber)

	otp := &models.OTP{
		PhoneNumber: fullNumber,
		CountryCode: countryCode,
		Code:        s.GenerateOTP(),
		IsValid:     true,
		ExpiresAt:   s.now().Add(time.Duration(s.ExpiryMinutes) * time.Minute),
	}

	if err := s.Store.Issue(ctx, otp); err != nil {
		return nil, fmt.Errorf("failed to create OTP record: %w", err)
	}

	if err := s.SMSService.SendOTP(fullNumber, otp.Code); err != nil {
		log.Printf("[OTP] SMS dispatch failed for %s: %v", fullNumber, err)
	}

	return otp, nil
}

// Validate runs one verification attempt against the most recent
// outstanding code for the phone number.
//
// Branch order matters: format, existence, expiry, attempt budget, code
// comparison. Each terminal branch performs at most one mutation. A
// mismatch only increments the counter; the attempt budget is enforced at
// the start of the next call, so the third wrong submission still reads
// "incorrect" and the fourth reads "too many attempts".
func (s *OTPService) Validate(ctx context.Context, phoneNumber, countryCode, code string) (ValidationStatus, error) {
	// Reject malformed codes before any store lookup
	if !validOTPFormat(code) {
		return ValidationBadFormat, nil
	}

	fullNumber := CorrelationKey(countryCode, phoneNumber)

	otp, err := s.Store.GetLatestValid(ctx, fullNumber)
	if err != nil {
		return 0, fmt.Errorf("failed to look up OTP: %w", err)
	}
	if otp == nil {
		return ValidationNotFound, nil
	}

	if s.now().After(otp.ExpiresAt) {
		if err := s.Store.Invalidate(ctx, otp.ID); err != nil {
			return 0, fmt.Errorf("failed to invalidate expired OTP: %w", err)
		}
		return ValidationExpired, nil
	}

	if otp.Attempts >= s.MaxAttempts {
		if err := s.Store.Invalidate(ctx, otp.ID); err != nil {
			return 0, fmt.Errorf("failed to invalidate locked OTP: %w", err)
		}
		return ValidationLocked, nil
	}

	if otp.Code != code {
		if err := s.Store.IncrementAttempts(ctx, otp.ID); err != nil {
			return 0, fmt.Errorf("failed to record OTP attempt: %w", err)
		}
		return ValidationMismatch, nil
	}

	if err := s.Store.Consume(ctx, otp.ID, s.now()); err != nil {
		return 0, fmt.Errorf("failed to consume OTP: %w", err)
	}

	return ValidationOK, nil
}

func validOTPFormat(code string) bool {
	if len(code) != OTPLength {
		return false
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
