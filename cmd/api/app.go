package main

import (
	"go.uber.org/zap"

	"mangaart/internal/config"
	"mangaart/internal/database"
	"mangaart/internal/server"
	"mangaart/internal/services"
)

// app holds the wired components of the API process
type app struct {
	store     database.Store
	inquiries *services.InquiryService
	api       *server.Server
}

// newApp wires storage, notification and transport, each with its own
// named logger.
func newApp(cfg *config.Config, log *zap.Logger) (*app, error) {
	store, err := database.Open(cfg, log.Named("database"))
	if err != nil {
		return nil, err
	}

	notifier, err := services.NewNotifier(cfg, log.Named("notify"))
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	inquiries := services.NewInquiryService(store, notifier, log.Named("inquiry"), cfg.Notify.Timeout)
	health := services.NewHealthService(cfg.App.Name, store)

	return &app{
		store:     store,
		inquiries: inquiries,
		api:       server.New(cfg, inquiries, health, log.Named("http")),
	}, nil
}
