package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"mangaart/internal/config"
	"mangaart/internal/domain"
)

// Notifier relays a stored inquiry to the people who answer it
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification) error
	Provider() string
}

// NewNotifier creates the notifier selected by NOTIFY_PROVIDER
func NewNotifier(cfg *config.Config, log *zap.Logger) (Notifier, error) {
	switch cfg.Notify.Provider {
	case config.ProviderSMTP:
		return NewEmailService(&cfg.Email, cfg.Notify.Recipient), nil
	case config.ProviderEmailJS:
		return NewEmailJSService(&cfg.EmailJS, nil), nil
	case config.ProviderConsole, "":
		return NewConsoleNotifier(log), nil
	default:
		return nil, fmt.Errorf("unsupported notification provider: %s", cfg.Notify.Provider)
	}
}

// ConsoleNotifier only logs; used in development
type ConsoleNotifier struct {
	log *zap.Logger
}

// NewConsoleNotifier creates a console notifier
func NewConsoleNotifier(log *zap.Logger) *ConsoleNotifier {
	return &ConsoleNotifier{log: log}
}

func (c *ConsoleNotifier) Notify(ctx context.Context, n domain.Notification) error {
	c.log.Info("new inquiry",
		zap.Uint("inquiry_id", n.InquiryID),
		zap.String("name", n.Name),
		zap.String("country", n.Country),
	)
	return nil
}

func (c *ConsoleNotifier) Provider() string {
	return config.ProviderConsole
}
