package notify

import (
	"context"
	"sync"
	"testing"

	"github.com/hotelworks/hotelops/internal/domain"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	mu   sync.Mutex
	rows map[int64]*domain.Notification
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{rows: make(map[int64]*domain.Notification)}
}

func (r *memoryRepo) Create(_ context.Context, n *domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[n.ID] = n
	return nil
}

func (r *memoryRepo) Update(_ context.Context, n *domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[n.ID] = n
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id int64) (*domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.rows[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return n, nil
}

func (r *memoryRepo) GetPending(_ context.Context, limit int) ([]*domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Notification
	for _, n := range r.rows {
		if n.Status == domain.NotifyPending && len(out) < limit {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *memoryRepo) GetFailed(_ context.Context, limit int) ([]*domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Notification
	for _, n := range r.rows {
		if n.Status == domain.NotifyFailed && n.RetryCount < 3 && len(out) < limit {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *memoryRepo) UpdateStatus(_ context.Context, id int64, status, errorMsg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n, ok := r.rows[id]; ok {
		n.Status = status
		n.ErrorMsg = errorMsg
	}
	return nil
}

func (r *memoryRepo) IncrementRetry(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n, ok := r.rows[id]; ok {
		n.RetryCount++
	}
	return nil
}

func (r *memoryRepo) List(_ context.Context, _ map[string]interface{}, _, _ int) ([]*domain.Notification, int64, error) {
	return nil, 0, nil
}

type memoryLogRepo struct {
	mu   sync.Mutex
	logs []*domain.NotificationLog
}

func (r *memoryLogRepo) Create(_ context.Context, log *domain.NotificationLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, log)
	return nil
}

func (r *memoryLogRepo) GetByNotificationID(_ context.Context, id int64) ([]*domain.NotificationLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.NotificationLog
	for _, l := range r.logs {
		if l.NotificationId == id {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *memoryLogRepo) DeleteOlderThan(_ context.Context, _ int) error { return nil }

type fakeMailer struct {
	mu     sync.Mutex
	sent   []string
	failOn string
}

func (m *fakeMailer) Send(recipient, _, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if recipient == m.failOn {
		return errors.New("smtp refused")
	}
	m.sent = append(m.sent, recipient)
	return nil
}

func TestDispatchPendingSendsAndMarksSent(t *testing.T) {
	repo := newMemoryRepo()
	logRepo := &memoryLogRepo{}
	mailer := &fakeMailer{}

	svc, err := NewService(nil, repo, logRepo, mailer, 4)
	require.NoError(t, err)
	defer svc.Stop()

	ctx := context.Background()
	require.NoError(t, svc.Enqueue(ctx, &domain.Notification{
		ID:        1,
		Recipient: "guest@example.com",
		Subject:   "Booking confirmation",
	}))

	svc.DispatchPending(ctx)

	n, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.NotifySent, n.Status)
	require.NotNil(t, n.SentAt)
	assert.Contains(t, mailer.sent, "guest@example.com")

	logs, err := logRepo.GetByNotificationID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "sent", logs[0].Action)
}

func TestDispatchPendingMarksFailureAndRetries(t *testing.T) {
	repo := newMemoryRepo()
	logRepo := &memoryLogRepo{}
	mailer := &fakeMailer{failOn: "broken@example.com"}

	svc, err := NewService(nil, repo, logRepo, mailer, 2)
	require.NoError(t, err)
	defer svc.Stop()

	ctx := context.Background()
	require.NoError(t, svc.Enqueue(ctx, &domain.Notification{
		ID:        7,
		Recipient: "broken@example.com",
		Subject:   "Receipt",
	}))

	svc.DispatchPending(ctx)

	n, err := repo.GetByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, domain.NotifyFailed, n.Status)
	assert.Equal(t, 1, n.RetryCount)
	assert.Equal(t, "smtp refused", n.ErrorMsg)

	// A failed row with retry budget left is picked up again.
	svc.DispatchPending(ctx)
	n, _ = repo.GetByID(ctx, 7)
	assert.Equal(t, 2, n.RetryCount)
}

func TestDispatchPendingRejectsMissingRecipient(t *testing.T) {
	repo := newMemoryRepo()
	logRepo := &memoryLogRepo{}
	mailer := &fakeMailer{}

	svc, err := NewService(nil, repo, logRepo, mailer, 2)
	require.NoError(t, err)
	defer svc.Stop()

	ctx := context.Background()
	require.NoError(t, svc.Enqueue(ctx, &domain.Notification{ID: 9, Subject: "orphan"}))

	svc.DispatchPending(ctx)

	n, _ := repo.GetByID(ctx, 9)
	assert.Equal(t, domain.NotifyFailed, n.Status)
	assert.Empty(t, mailer.sent)
}
