// Package notify implements the outbound message outbox: handlers enqueue
// rows, a background dispatcher drains them over SMTP with bounded retries
// and an audit trail of every attempt.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/hotelworks/hotelops/internal/domain"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service drains the notification outbox.
type Service struct {
	db         *gorm.DB
	repo       NotificationRepository
	logRepo    NotificationLogRepository
	mailer     Mailer
	pool       *ants.Pool
	syncTicker *time.Ticker
	stopChan   chan struct{}
	stopOnce   sync.Once
}

// NewService creates a new outbox dispatcher. workers bounds the number of
// concurrent SMTP sends.
func NewService(db *gorm.DB, repo NotificationRepository, logRepo NotificationLogRepository, mailer Mailer, workers int) (*Service, error) {
	if workers <= 0 {
		workers = 8
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, err
	}
	return &Service{
		db:       db,
		repo:     repo,
		logRepo:  logRepo,
		mailer:   mailer,
		pool:     pool,
		stopChan: make(chan struct{}),
	}, nil
}

// Start begins periodic dispatch of pending rows.
func (s *Service) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 1 * time.Minute
	}
	s.syncTicker = time.NewTicker(interval)
	go s.dispatchLoop(ctx)

	zap.L().Info("notification dispatcher started",
		zap.Duration("dispatch_interval", interval),
	)
}

// Stop gracefully stops the dispatcher.
func (s *Service) Stop() {
	s.stopOnce.Do(func() {
		if s.syncTicker != nil {
			s.syncTicker.Stop()
		}
		close(s.stopChan)
		s.pool.Release()
		zap.L().Info("notification dispatcher stopped")
	})
}

func (s *Service) dispatchLoop(ctx context.Context) {
	for {
		select {
		case <-s.syncTicker.C:
			s.DispatchPending(ctx)
		case <-s.stopChan:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Enqueue records a pending notification for later delivery.
func (s *Service) Enqueue(ctx context.Context, n *domain.Notification) error {
	if n.Channel == "" {
		n.Channel = "email"
	}
	n.Status = domain.NotifyPending
	return s.repo.Create(ctx, n)
}

// DispatchPending sends all pending rows plus a bounded batch of
// previously failed ones.
func (s *Service) DispatchPending(ctx context.Context) {
	pending, err := s.repo.GetPending(ctx, 100)
	if err != nil {
		zap.L().Error("failed to load pending notifications", zap.Error(err))
		return
	}

	failed, err := s.repo.GetFailed(ctx, 50)
	if err == nil && len(failed) > 0 {
		zap.L().Debug("retrying failed notifications", zap.Int("count", len(failed)))
		pending = append(pending, failed...)
	}

	if len(pending) == 0 {
		return
	}
	zap.L().Debug("dispatching notifications", zap.Int("count", len(pending)))

	var wg sync.WaitGroup
	for _, n := range pending {
		n := n
		wg.Add(1)
		if err := s.pool.Submit(func() {
			defer wg.Done()
			s.deliver(ctx, n)
		}); err != nil {
			wg.Done()
			zap.L().Error("failed to submit notification job", zap.Error(err))
		}
	}
	wg.Wait()
}

// deliver sends one row and records the result.
func (s *Service) deliver(ctx context.Context, n *domain.Notification) {
	if n.Recipient == "" {
		s.markFailed(ctx, n, "recipient missing")
		return
	}

	if err := s.mailer.Send(n.Recipient, n.Subject, n.Body); err != nil {
		s.markFailed(ctx, n, err.Error())
		if err := s.repo.IncrementRetry(ctx, n.ID); err != nil {
			zap.L().Error("failed to increment retry", zap.Error(err))
		}
		return
	}

	now := time.Now()
	n.Status = domain.NotifySent
	n.SentAt = &now
	n.ErrorMsg = ""
	if err := s.repo.Update(ctx, n); err != nil {
		zap.L().Error("failed to update notification status",
			zap.Int64("notification_id", n.ID),
			zap.Error(err),
		)
		return
	}
	s.logAttempt(ctx, n, "sent", "success", "")

	zap.L().Info("notification sent",
		zap.String("recipient", n.Recipient),
		zap.String("subject", n.Subject),
	)
}

func (s *Service) markFailed(ctx context.Context, n *domain.Notification, errMsg string) {
	if err := s.repo.UpdateStatus(ctx, n.ID, domain.NotifyFailed, errMsg); err != nil {
		zap.L().Error("failed to update error status", zap.Error(err))
	}
	s.logAttempt(ctx, n, "failed", "failure", errMsg)
}

func (s *Service) logAttempt(ctx context.Context, n *domain.Notification, action, status, errMsg string) {
	log := &domain.NotificationLog{
		NotificationId: n.ID,
		Action:         action,
		Status:         status,
		ErrorMsg:       errMsg,
		ExecutedAt:     time.Now(),
	}
	if err := s.logRepo.Create(ctx, log); err != nil {
		zap.L().Warn("failed to create notification log", zap.Error(err))
	}
}
