package client

import (
	"fmt"
	"strings"

	"github.com/eagd-org/donation-server/internal/domain"
)

// DonationSubmission is the public form payload.
type DonationSubmission struct {
	FullName        string   `json:"full_name"`
	Phone           string   `json:"phone"`
	Email           string   `json:"email,omitempty"`
	City            string   `json:"city,omitempty"`
	Address         string   `json:"address,omitempty"`
	HelpOptions     []string `json:"help_options,omitempty"`
	DeviceType      string   `json:"device_type,omitempty"`
	DeviceCondition string   `json:"device_condition,omitempty"`
	DeviceBrand     string   `json:"device_brand,omitempty"`
	DeviceModel     string   `json:"device_model,omitempty"`
	DeviceContent   string   `json:"device_content,omitempty"`
	EstimatedValue  string   `json:"estimated_value,omitempty"`
	DeviceAge       string   `json:"device_age,omitempty"`
	Message         string   `json:"message,omitempty"`
	PrivacyPolicy   bool     `json:"privacy_policy"`
}

// Validate mirrors the server-side rules so a form can reject obviously bad
// input before the round trip. The server stays authoritative.
func (s DonationSubmission) Validate() error {
	if len(strings.TrimSpace(s.FullName)) < 2 {
		return fmt.Errorf("full_name must be at least 2 characters")
	}
	if len(strings.TrimSpace(s.Phone)) < 10 {
		return fmt.Errorf("phone must be at least 10 characters")
	}
	if !s.PrivacyPolicy {
		return fmt.Errorf("privacy_policy must be accepted")
	}
	for _, opt := range s.HelpOptions {
		if !domain.HelpOption(opt).Valid() {
			return fmt.Errorf("invalid help option %q", opt)
		}
	}
	if !domain.DeviceType(s.DeviceType).Valid() {
		return fmt.Errorf("invalid device type %q", s.DeviceType)
	}
	if !domain.DeviceCondition(s.DeviceCondition).Valid() {
		return fmt.Errorf("invalid device condition %q", s.DeviceCondition)
	}
	if !domain.EstimatedValue(s.EstimatedValue).Valid() {
		return fmt.Errorf("invalid estimated value %q", s.EstimatedValue)
	}
	if !domain.DeviceAge(s.DeviceAge).Valid() {
		return fmt.Errorf("invalid device age %q", s.DeviceAge)
	}
	return nil
}
