package sms

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"wardrobe-backend/internal/models"
)

// SMSProvider is an interface for sending SMS messages
type SMSProvider interface {
	SendOTP(phone, otp string) error
	SetLogRepository(repo SMSLogRepo)
}

// SMSLogRepo interface for logging
type SMSLogRepo interface {
	Create(ctx context.Context, log *models.SMSLog) error
}

func otpMessage(otp string) string {
	return fmt.Sprintf("Your verification code is %s. Valid for 5 minutes. Do not share this code with anyone.", otp)
}

// Fast2SMSService implements SMSProvider for Fast2SMS (India)
type Fast2SMSService struct {
	APIKey  string
	LogRepo SMSLogRepo
	client  *http.Client
}

func NewFast2SMSService(apiKey string) *Fast2SMSService {
	return &Fast2SMSService{
		APIKey: apiKey,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *Fast2SMSService) SetLogRepository(repo SMSLogRepo) {
	s.LogRepo = repo
}

// SendOTP sends an OTP code via the Fast2SMS quick route
func (s *Fast2SMSService) SendOTP(phone, otp string) error {
	message := otpMessage(otp)

	apiURL := fmt.Sprintf(
		"https://www.fast2sms.com/dev/bulkV2?authorization=%s&route=q&message=%s&language=english&flash=0&numbers=%s",
		url.QueryEscape(s.APIKey),
		url.QueryEscape(message),
		url.QueryEscape(phone),
	)

	smsLog := &models.SMSLog{
		Phone:       phone,
		MessageType: models.SMSTypeOTP,
		Message:     message,
		Status:      models.SMSStatusPending,
	}

	req, err := http.NewRequest("GET", apiURL, nil)
	if err != nil {
		smsLog.Status = models.SMSStatusFailed
		smsLog.ErrorMessage = err.Error()
		s.logSMS(smsLog)
		return fmt.Errorf("failed to create SMS request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		smsLog.Status = models.SMSStatusFailed
		smsLog.ErrorMessage = err.Error()
		s.logSMS(smsLog)
		return fmt.Errorf("failed to send SMS: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		smsLog.Status = models.SMSStatusFailed
		smsLog.ErrorMessage = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, string(body))
		s.logSMS(smsLog)
		return fmt.Errorf("SMS API error (status %d): %s", resp.StatusCode, string(body))
	}

	// Fast2SMS signals API-level failure inside a 200 response
	if strings.Contains(string(body), `"return":false`) {
		smsLog.Status = models.SMSStatusFailed
		smsLog.ErrorMessage = string(body)
		s.logSMS(smsLog)
		return fmt.Errorf("SMS API error: %s", string(body))
	}

	smsLog.Status = models.SMSStatusSent
	s.logSMS(smsLog)

	return nil
}

// logSMS logs the SMS to database without blocking the send path
func (s *Fast2SMSService) logSMS(log *models.SMSLog) {
	if s.LogRepo == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.LogRepo.Create(ctx, log)
	}()
}

// MockSMSService is a mock implementation for development (prints the OTP
// to the console instead of dispatching it)
type MockSMSService struct {
	LogRepo SMSLogRepo
}

func NewMockSMSService() *MockSMSService {
	return &MockSMSService{}
}

func (s *MockSMSService) SetLogRepository(repo SMSLogRepo) {
	s.LogRepo = repo
}

func (s *MockSMSService) SendOTP(phone, otp string) error {
	message := otpMessage(otp)

	fmt.Printf("\n========== MOCK SMS ==========\n")
	fmt.Printf("To: %s\n", phone)
	fmt.Printf("Message: %s\n", message)
	fmt.Printf("==============================\n\n")

	if s.LogRepo != nil {
		smsLog := &models.SMSLog{
			Phone:       phone,
			MessageType: models.SMSTypeOTP,
			Message:     message,
			Status:      models.SMSStatusSent,
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			s.LogRepo.Create(ctx, smsLog)
		}()
	}

	return nil
}
