// Package otpclient is the client half of the phone verification flow:
// an HTTP client for the OTP endpoints and a cooperative coordinator that
// drives the digit-entry, auto-submit and resend-countdown behavior.
package otpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"wardrobe-backend/internal/models"
)

// Client calls the OTP endpoints. Responses with status 400 or 404 carry
// a user-facing message and are returned as values, not errors; anything
// else non-2xx is an error.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL:    baseURL,
		Token:      token,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// SendOTP requests a fresh code for the phone number
func (c *Client) SendOTP(ctx context.Context, phoneNumber, countryCode string) (*models.SendOTPResponse, error) {
	body := models.SendOTPRequest{
		PhoneNumber: phoneNumber,
		CountryCode: countryCode,
	}

	var resp models.SendOTPResponse
	status, err := c.post(ctx, "/api/otp/send", body, &resp)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		if resp.Message != "" {
			return nil, fmt.Errorf("%s", resp.Message)
		}
		return nil, fmt.Errorf("failed to send OTP: status %d", status)
	}
	return &resp, nil
}

// ValidateOTP submits one verification attempt. A 400 or 404 response is
// a normal outcome (wrong code, expired, locked out); the decoded body is
// returned so the caller can show the server's message verbatim.
func (c *Client) ValidateOTP(ctx context.Context, phoneNumber, countryCode, otp string) (*models.ValidateOTPResponse, error) {
	body := models.ValidateOTPRequest{
		PhoneNumber: phoneNumber,
		CountryCode: countryCode,
		OTP:         otp,
	}

	var resp models.ValidateOTPResponse
	status, err := c.post(ctx, "/api/otp/validate", body, &resp)
	if err != nil {
		return nil, err
	}
	switch status {
	case http.StatusOK, http.StatusBadRequest, http.StatusNotFound:
		return &resp, nil
	}
	if resp.Message != "" {
		return nil, fmt.Errorf("%s", resp.Message)
	}
	return nil, fmt.Errorf("failed to validate OTP: status %d", status)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) (int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("decoding response: %w", err)
	}
	return resp.StatusCode, nil
}
