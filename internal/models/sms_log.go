package models

import "time"

// SMSLog represents a sent SMS message
type SMSLog struct {
	ID           int       `json:"id"`
	Phone        string    `json:"phone"`
	MessageType  string    `json:"message_type"`
	Message      string    `json:"message"`
	Status       string    `json:"status"`
	ErrorMessage string    `json:"error_message,omitempty"`
	ReferenceID  string    `json:"reference_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// SMS message types
const (
	SMSTypeOTP = "otp"
)

// SMS status types
const (
	SMSStatusPending = "pending"
	SMSStatusSent    = "sent"
	SMSStatusFailed  = "failed"
)
