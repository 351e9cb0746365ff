// Package sms wraps the Twilio Verify API used for phone number
// verification. Codes are generated and checked by Twilio itself; this
// client only relays the requests.
package sms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pedefood/pedefood-backend/config"
)

const verifyBaseURL = "https://verify.twilio.com/v2"

// Verification is the subset of Twilio's verification resource we use.
type Verification struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
	To     string `json:"to"`
}

// VerificationCheck is the result of a code check. Status is "approved"
// when the submitted code matches.
type VerificationCheck struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
	Valid  bool   `json:"valid"`
}

type Client struct {
	cfg        config.TwilioConfig
	httpClient *http.Client
}

func NewClient(cfg config.TwilioConfig) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// StartVerification asks Twilio to send an SMS code to the given number.
func (c *Client) StartVerification(ctx context.Context, phoneNumber string) (*Verification, error) {
	form := url.Values{}
	form.Set("To", phoneNumber)
	form.Set("Channel", "sms")

	endpoint := fmt.Sprintf("%s/Services/%s/Verifications", verifyBaseURL, c.cfg.VerifyServiceSID)

	var verification Verification
	if err := c.postForm(ctx, endpoint, form, &verification); err != nil {
		return nil, fmt.Errorf("failed to start verification: %w", err)
	}
	return &verification, nil
}

// CheckVerification submits a user-entered code for validation.
func (c *Client) CheckVerification(ctx context.Context, phoneNumber, code string) (*VerificationCheck, error) {
	form := url.Values{}
	form.Set("To", phoneNumber)
	form.Set("Code", code)

	endpoint := fmt.Sprintf("%s/Services/%s/VerificationCheck", verifyBaseURL, c.cfg.VerifyServiceSID)

	var check VerificationCheck
	if err := c.postForm(ctx, endpoint, form, &check); err != nil {
		return nil, fmt.Errorf("failed to check verification: %w", err)
	}
	check.Valid = check.Status == "approved"
	return &check, nil
}

func (c *Client) postForm(ctx context.Context, endpoint string, form url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.cfg.AccountSID, c.cfg.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("twilio returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}
