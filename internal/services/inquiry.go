package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"mangaart/internal/database"
	"mangaart/internal/domain"
	"mangaart/internal/metrics"
	apperrors "mangaart/pkg/errors"
)

// Submission outcomes, as recorded in metrics
const (
	resultAccepted      = "accepted"
	resultInvalid       = "invalid"
	resultStorageFailed = "storage_failed"
)

const defaultNotifyTimeout = 10 * time.Second

// InquiryService accepts inquiries: normalize, validate, store, then relay.
type InquiryService struct {
	store         database.Store
	notifier      Notifier
	log           *zap.Logger
	notifyTimeout time.Duration

	pending sync.WaitGroup
}

// NewInquiryService creates a new inquiry service. A nil notifier disables
// relaying.
func NewInquiryService(store database.Store, notifier Notifier, log *zap.Logger, notifyTimeout time.Duration) *InquiryService {
	if notifyTimeout <= 0 {
		notifyTimeout = defaultNotifyTimeout
	}
	return &InquiryService{
		store:         store,
		notifier:      notifier,
		log:           log,
		notifyTimeout: notifyTimeout,
	}
}

// Submit validates and stores one inquiry. Validation failures come back as
// VALIDATION_ERROR with per-field reasons and never reach the store; store
// failures come back as STORAGE_FAILED. Once stored, the inquiry is accepted
// regardless of what happens to the notification.
func (s *InquiryService) Submit(ctx context.Context, c domain.Candidate) (*domain.Inquiry, error) {
	c = c.Normalize()

	inquiry, err := c.Validate()
	if err != nil {
		s.log.Info("submit rejected", zap.Error(err))
		metrics.RecordSubmission(resultInvalid)
		return nil, err
	}

	stored, err := s.store.Create(ctx, inquiry)
	if err != nil {
		s.log.Error("submit failed: storage error", zap.String("store", s.store.Kind()), zap.Error(err))
		metrics.RecordSubmission(resultStorageFailed)
		return nil, apperrors.Wrap(apperrors.ErrCodeStorageFailed, "failed to save inquiry", err)
	}

	s.log.Info("submit accepted",
		zap.Uint("inquiry_id", stored.ID),
		zap.String("store", s.store.Kind()),
	)
	metrics.RecordSubmission(resultAccepted)

	s.notify(ctx, stored)

	result := *stored
	return &result, nil
}

// notify relays the stored inquiry in the background. Its outcome is only
// logged; nothing it does can reach the submitter.
func (s *InquiryService) notify(ctx context.Context, stored *domain.Inquiry) {
	if s.notifier == nil {
		return
	}

	n := domain.NotificationFor(stored)
	provider := s.notifier.Provider()
	ctx = context.WithoutCancel(ctx)

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()

		err := s.dispatch(ctx, n)
		metrics.RecordNotification(provider, err)
		if err != nil {
			s.log.Warn("notification failed",
				zap.Uint("inquiry_id", n.InquiryID),
				zap.String("provider", provider),
				zap.Error(apperrors.Wrap(apperrors.ErrCodeNotificationFailed, "relay failed", err)),
			)
			return
		}
		s.log.Info("notification sent", zap.Uint("inquiry_id", n.InquiryID), zap.String("provider", provider))
	}()
}

func (s *InquiryService) dispatch(ctx context.Context, n domain.Notification) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("notifier panicked: %v", r)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, s.notifyTimeout)
	defer cancel()
	return s.notifier.Notify(ctx, n)
}

// Wait blocks until every notification started so far has finished
func (s *InquiryService) Wait() {
	s.pending.Wait()
}
