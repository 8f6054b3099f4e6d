package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/amirasaad/invest/pkg/config"
	"github.com/amirasaad/invest/pkg/domain"
)

// RecaptchaVerifier checks tokens against a reCAPTCHA compatible
// siteverify endpoint.
type RecaptchaVerifier struct {
	secret     string
	verifyURL  string
	httpClient *http.Client
	logger     *slog.Logger
}

type siteVerifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

func NewRecaptchaVerifier(cfg *config.Captcha, logger *slog.Logger) *RecaptchaVerifier {
	return &RecaptchaVerifier{
		secret:     cfg.Secret,
		verifyURL:  cfg.URL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.With("provider", "captcha"),
	}
}

// Enabled reports whether a secret is configured. Without one every token
// is accepted.
func (v *RecaptchaVerifier) Enabled() bool { return v.secret != "" }

// Verify returns domain.ErrCaptchaFailed when the token is rejected.
func (v *RecaptchaVerifier) Verify(ctx context.Context, token, remoteIP string) error {
	if !v.Enabled() {
		return nil
	}
	if token == "" {
		return fmt.Errorf("missing token: %w", domain.ErrCaptchaFailed)
	}
	form := url.Values{"secret": {v.secret}, "response": {token}}
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("captcha request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("captcha endpoint returned status %d", resp.StatusCode)
	}
	var out siteVerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if !out.Success {
		v.logger.Info("captcha rejected", "codes", out.ErrorCodes)
		return domain.ErrCaptchaFailed
	}
	return nil
}
