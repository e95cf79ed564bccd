package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mangaart/internal/config"
	"mangaart/internal/database"
	"mangaart/internal/domain"
	"mangaart/internal/form"
	"mangaart/internal/server"
	"mangaart/internal/services"
	"mangaart/pkg/client"
	apperrors "mangaart/pkg/errors"
)

func newAPI(t *testing.T) *httptest.Server {
	t.Helper()
	log := zap.NewNop()
	store := database.NewMemoryStore()
	svc := services.NewInquiryService(store, nil, log, time.Second)
	cfg := &config.Config{
		App:  config.AppConfig{Name: "Manga Art API", Env: "test"},
		CORS: config.CORSConfig{AllowedOrigins: []string{"*"}},
	}
	ts := httptest.NewServer(server.New(cfg, svc, services.NewHealthService(cfg.App.Name, store), log).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func lina() domain.Candidate {
	return domain.Candidate{
		Name:    "Lina",
		Email:   "lina@example.com",
		Phone:   "٠١٢٣",
		Country: "Tunisia",
		Message: "Interested in lessons",
	}
}

func TestSubmitRoundTrip(t *testing.T) {
	c := client.New(newAPI(t).URL + "/")

	got, err := c.Submit(context.Background(), lina())
	require.NoError(t, err)
	assert.Equal(t, uint(1), got.ID)
	assert.Equal(t, "0123", got.Phone)
}

func TestSubmitFieldErrors(t *testing.T) {
	c := client.New(newAPI(t).URL)

	candidate := lina()
	candidate.Email = "nope"
	candidate.Country = " "

	_, err := c.Submit(context.Background(), candidate)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, []apperrors.FieldError{
		{Field: "email", Reason: "must be a valid email address"},
		{Field: "country", Reason: "country is required"},
	}, apperrors.FieldsOf(err))
}

func TestSubmitStorageError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"code":    string(apperrors.ErrCodeStorageFailed),
			"message": "inquiry could not be saved, please try again later",
		})
	}))
	defer ts.Close()

	_, err := client.New(ts.URL).Submit(context.Background(), lina())
	require.Error(t, err)
	assert.True(t, apperrors.IsStorage(err))
}

func TestSubmitUnexpectedResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer ts.Close()

	_, err := client.New(ts.URL, client.WithHTTPClient(ts.Client())).Submit(context.Background(), lina())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInternalError, apperrors.CodeOf(err))
	assert.Contains(t, err.Error(), "status 502")
}

func TestControllerOverHTTP(t *testing.T) {
	ctrl := form.NewController(client.New(newAPI(t).URL))
	require.NoError(t, ctrl.Set(form.FieldName, "Lina"))
	require.NoError(t, ctrl.Set(form.FieldEmail, "lina.example.com"))
	require.NoError(t, ctrl.Set(form.FieldPhone, "٠١٢٣"))
	require.NoError(t, ctrl.Set(form.FieldCountry, "Tunisia"))
	require.NoError(t, ctrl.Set(form.FieldMessage, "hi"))

	_, err := ctrl.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, form.StatusFailed, ctrl.State().Status)
	assert.Contains(t, ctrl.State().FieldErrors, "email")

	require.NoError(t, ctrl.Set(form.FieldEmail, "lina@example.com"))
	got, err := ctrl.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0123", got.Phone)
	assert.Equal(t, form.StatusSucceeded, ctrl.State().Status)
	assert.Equal(t, domain.Candidate{}, ctrl.Values())
}
