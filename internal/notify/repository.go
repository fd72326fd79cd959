package notify

import (
	"context"

	"github.com/hotelworks/hotelops/internal/domain"
	"gorm.io/gorm"
)

// NotificationRepository handles database operations for outbox rows
type NotificationRepository interface {
	// Create inserts a new outbox row
	Create(ctx context.Context, n *domain.Notification) error

	// Update updates an existing row
	Update(ctx context.Context, n *domain.Notification) error

	// GetByID retrieves a row by ID
	GetByID(ctx context.Context, id int64) (*domain.Notification, error)

	// GetPending retrieves pending rows (status = 'pending')
	GetPending(ctx context.Context, limit int) ([]*domain.Notification, error)

	// GetFailed retrieves failed rows still within the retry budget
	GetFailed(ctx context.Context, limit int) ([]*domain.Notification, error)

	// UpdateStatus updates the status and error message of a row
	UpdateStatus(ctx context.Context, id int64, status, errorMsg string) error

	// IncrementRetry increments the retry counter
	IncrementRetry(ctx context.Context, id int64) error

	// List retrieves rows with pagination
	List(ctx context.Context, filter map[string]interface{}, page, pageSize int) ([]*domain.Notification, int64, error)
}

// NotificationLogRepository handles database operations for delivery audit logs
type NotificationLogRepository interface {
	// Create inserts a new audit log entry
	Create(ctx context.Context, log *domain.NotificationLog) error

	// GetByNotificationID retrieves all logs for one outbox row
	GetByNotificationID(ctx context.Context, id int64) ([]*domain.NotificationLog, error)

	// DeleteOlderThan removes logs older than N days
	DeleteOlderThan(ctx context.Context, days int) error
}

// GormNotificationRepository is the GORM implementation of NotificationRepository
type GormNotificationRepository struct {
	DB *gorm.DB
}

func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{DB: db}
}

func (r *GormNotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	return r.DB.WithContext(ctx).Create(n).Error
}

func (r *GormNotificationRepository) Update(ctx context.Context, n *domain.Notification) error {
	return r.DB.WithContext(ctx).Save(n).Error
}

func (r *GormNotificationRepository) GetByID(ctx context.Context, id int64) (*domain.Notification, error) {
	var n domain.Notification
	err := r.DB.WithContext(ctx).First(&n, id).Error
	return &n, err
}

func (r *GormNotificationRepository) GetPending(ctx context.Context, limit int) ([]*domain.Notification, error) {
	var rows []*domain.Notification
	err := r.DB.WithContext(ctx).
		Where("status = ?", domain.NotifyPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *GormNotificationRepository) GetFailed(ctx context.Context, limit int) ([]*domain.Notification, error) {
	var rows []*domain.Notification
	err := r.DB.WithContext(ctx).
		Where("status = ?", domain.NotifyFailed).
		Where("retry_count < 3").
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *GormNotificationRepository) UpdateStatus(ctx context.Context, id int64, status, errorMsg string) error {
	return r.DB.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":    status,
			"error_msg": errorMsg,
		}).Error
}

func (r *GormNotificationRepository) IncrementRetry(ctx context.Context, id int64) error {
	return r.DB.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("id = ?", id).
		Update("retry_count", gorm.Expr("retry_count + 1")).Error
}

func (r *GormNotificationRepository) List(ctx context.Context, filter map[string]interface{}, page, pageSize int) ([]*domain.Notification, int64, error) {
	var rows []*domain.Notification
	var total int64

	query := r.DB.WithContext(ctx)
	for key, value := range filter {
		if value != nil && value != "" {
			query = query.Where(key+" = ?", value)
		}
	}

	if err := query.Model(&domain.Notification{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&rows).Error
	return rows, total, err
}

// GormNotificationLogRepository is the GORM implementation of NotificationLogRepository
type GormNotificationLogRepository struct {
	DB *gorm.DB
}

func NewGormNotificationLogRepository(db *gorm.DB) *GormNotificationLogRepository {
	return &GormNotificationLogRepository{DB: db}
}

func (r *GormNotificationLogRepository) Create(ctx context.Context, log *domain.NotificationLog) error {
	return r.DB.WithContext(ctx).Create(log).Error
}

func (r *GormNotificationLogRepository) GetByNotificationID(ctx context.Context, id int64) ([]*domain.NotificationLog, error) {
	var logs []*domain.NotificationLog
	err := r.DB.WithContext(ctx).
		Where("notification_id = ?", id).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}

func (r *GormNotificationLogRepository) DeleteOlderThan(ctx context.Context, days int) error {
	return r.DB.WithContext(ctx).
		Where("created_at < NOW() - (? * INTERVAL '1 day')", days).
		Delete(&domain.NotificationLog{}).Error
}
