package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"mangaart/internal/config"
	"mangaart/internal/database"
	"mangaart/internal/domain"
	"mangaart/internal/server"
	"mangaart/internal/services"
)

func newAPI(t *testing.T) string {
	t.Helper()
	log := zap.NewNop()
	store := database.NewMemoryStore()
	svc := services.NewInquiryService(store, nil, log, time.Second)
	cfg := &config.Config{App: config.AppConfig{Name: "Manga Art API", Env: "test"}}
	ts := httptest.NewServer(server.New(cfg, svc, services.NewHealthService(cfg.App.Name, store), log).Handler())
	t.Cleanup(ts.Close)
	return ts.URL
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestInquireSubmits(t *testing.T) {
	out, _, err := execute(t,
		"--api", newAPI(t),
		"--name", "Lina",
		"--email", "lina@example.com",
		"--phone", "٠١٢٣",
		"--country", "Tunisia",
		"--message", "Interested in lessons",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Inquiry #1 received")
}

func TestInquirePrintsFieldErrors(t *testing.T) {
	_, stderr, err := execute(t,
		"--api", newAPI(t),
		"--name", "Lina",
		"--email", "nope",
	)
	require.Error(t, err)
	assert.Contains(t, stderr, "email:")
	assert.Contains(t, stderr, "must be a valid email address")
	assert.Contains(t, stderr, "phone is required")
	assert.NotContains(t, stderr, "name:")
}

func TestDirectSubmitterNamesComponentLoggers(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	cfg := &config.Config{
		App:    config.AppConfig{Name: "Manga Art API", Env: "test"},
		Notify: config.NotifyConfig{Provider: config.ProviderConsole},
	}

	svc, cleanup, err := newDirectSubmitter(cfg, zap.New(core))
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), domain.Candidate{
		Name: "Lina", Email: "lina@example.com", Phone: "0123", Country: "Tunisia", Message: "hi",
	})
	require.NoError(t, err)
	cleanup()

	names := map[string]string{}
	for _, e := range logs.All() {
		names[e.Message] = e.LoggerName
	}
	assert.Equal(t, "database", names["DATABASE_URL not set; using in-memory store, inquiries are lost on restart"])
	assert.Equal(t, "inquiry", names["submit accepted"])
	assert.Equal(t, "notify", names["new inquiry"])
}
