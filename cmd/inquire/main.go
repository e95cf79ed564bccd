package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mangaart/internal/config"
	"mangaart/internal/database"
	"mangaart/internal/form"
	"mangaart/internal/services"
	"mangaart/pkg/client"
)

type options struct {
	api    string
	direct bool
	values map[string]*string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{values: make(map[string]*string, len(form.Fields))}

	cmd := &cobra.Command{
		Use:   "inquire",
		Short: "Submit an inquiry to the Manga Art API",
		Long: `Submit an inquiry the way the landing page form does.

By default the inquiry is posted to a running API. With --direct it is
submitted in-process against the database configured in the environment.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cmd, opts)
		},
	}

	defaultAPI := os.Getenv("INQUIRE_API")
	if defaultAPI == "" {
		defaultAPI = "http://localhost:8000"
	}
	cmd.Flags().StringVar(&opts.api, "api", defaultAPI, "base URL of the inquiry API")
	cmd.Flags().BoolVar(&opts.direct, "direct", false, "submit in-process instead of over HTTP")
	for _, field := range form.Fields {
		opts.values[field] = cmd.Flags().String(field, "", "inquiry "+field)
	}
	return cmd
}

func run(ctx context.Context, cmd *cobra.Command, opts *options) error {
	submitter, cleanup, err := newSubmitter(opts)
	if err != nil {
		return err
	}
	defer cleanup()

	ctrl := form.NewController(submitter)
	for _, field := range form.Fields {
		if err := ctrl.Set(field, *opts.values[field]); err != nil {
			return err
		}
	}

	inquiry, err := ctrl.Submit(ctx)
	out := cmd.OutOrStdout()
	if err != nil {
		state := ctrl.State()
		for _, field := range form.Fields {
			if reason, ok := state.FieldErrors[field]; ok {
				fmt.Fprintf(cmd.ErrOrStderr(), "  %-8s %s\n", field+":", reason)
			}
		}
		if state.GeneralError != "" {
			fmt.Fprintln(cmd.ErrOrStderr(), state.GeneralError)
		}
		return err
	}

	fmt.Fprintf(out, "Inquiry #%d received at %s\n", inquiry.ID, inquiry.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	return nil
}

// newSubmitter returns the HTTP client, or with --direct an in-process
// service over the configured store.
func newSubmitter(opts *options) (form.Submitter, func(), error) {
	if !opts.direct {
		return client.New(opts.api), func() {}, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return nil, nil, err
	}

	return newDirectSubmitter(cfg, log)
}

// newDirectSubmitter wires the in-process service, each component with its
// own named logger.
func newDirectSubmitter(cfg *config.Config, log *zap.Logger) (*services.InquiryService, func(), error) {
	store, err := database.Open(cfg, log.Named("database"))
	if err != nil {
		return nil, nil, err
	}
	notifier, err := services.NewNotifier(cfg, log.Named("notify"))
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	svc := services.NewInquiryService(store, notifier, log.Named("inquiry"), cfg.Notify.Timeout)
	return svc, func() {
		svc.Wait()
		if err := store.Close(); err != nil {
			log.Warn("failed to close store", zap.Error(err))
		}
		_ = log.Sync()
	}, nil
}
