package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"mangaart/internal/config"
	"mangaart/internal/domain"
)

// EmailJSService relays inquiries through the EmailJS REST API, using the
// same template the landing page was built around.
type EmailJSService struct {
	cfg    *config.EmailJSConfig
	client *http.Client
}

// NewEmailJSService creates an EmailJS notifier. A nil client gets a default
// one with a 10 second timeout.
func NewEmailJSService(cfg *config.EmailJSConfig, client *http.Client) *EmailJSService {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &EmailJSService{cfg: cfg, client: client}
}

type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

// Notify posts the inquiry as template parameters
func (s *EmailJSService) Notify(ctx context.Context, n domain.Notification) error {
	if s.cfg.ServiceID == "" || s.cfg.TemplateID == "" || s.cfg.PublicKey == "" {
		return fmt.Errorf("EmailJS not properly configured")
	}

	payload := emailJSRequest{
		ServiceID:   s.cfg.ServiceID,
		TemplateID:  s.cfg.TemplateID,
		UserID:      s.cfg.PublicKey,
		AccessToken: s.cfg.PrivateKey,
		TemplateParams: map[string]string{
			"name":         n.Name,
			"phone_number": n.Phone,
			"country":      n.Country,
			"message":      n.Message,
			"inquiry_id":   strconv.FormatUint(uint64(n.InquiryID), 10),
		},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request data: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.Endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send EmailJS request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("EmailJS API error (status %d): %s", resp.StatusCode, bytes.TrimSpace(body))
	}
	return nil
}

// Provider returns "emailjs"
func (s *EmailJSService) Provider() string {
	return config.ProviderEmailJS
}
