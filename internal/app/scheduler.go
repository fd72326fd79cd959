package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hotelworks/hotelops/internal/domain"
	"github.com/hotelworks/hotelops/pkg/common"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

// SchedulerService runs enabled schedulers periodically
func (a *Application) StartSchedulerService(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				a.runSchedulers(ctx)
			}
		}
	}()
}

// runSchedulers executes enabled schedulers that are due
func (a *Application) runSchedulers(ctx context.Context) {
	var schedulers []domain.OpsScheduler
	a.gormDB.Where("status = ?", "enabled").Find(&schedulers)
	now := time.Now()
	for _, sched := range schedulers {
		if sched.NextRunAt.IsZero() || now.After(sched.NextRunAt) || now.Equal(sched.NextRunAt) {
			a.runSchedulerTask(ctx, &sched)
			a.gormDB.Model(&domain.OpsScheduler{}).
				Where("id = ?", sched.ID).
				Update("next_run_at", now.Add(time.Duration(sched.Interval)*time.Second))
		}
	}
}

// RunSchedulerNow executes one scheduler immediately, regardless of its
// next_run_at, and reschedules it from now.
func (a *Application) RunSchedulerNow(id int64) error {
	var sched domain.OpsScheduler
	if err := a.gormDB.Where("id = ?", id).First(&sched).Error; err != nil {
		return err
	}
	a.runSchedulerTask(context.Background(), &sched)
	return a.gormDB.Model(&domain.OpsScheduler{}).
		Where("id = ?", sched.ID).
		Update("next_run_at", time.Now().Add(time.Duration(sched.Interval)*time.Second)).Error
}

func (a *Application) runSchedulerTask(ctx context.Context, sched *domain.OpsScheduler) {
	var result, message string
	switch sched.TaskType {
	case "membership_expiry":
		result, message = a.runMembershipExpiry(sched)
	case "booking_sweep":
		result, message = a.runBookingSweep(ctx, sched)
	case "notify_dispatch":
		result, message = a.runNotifyDispatch(ctx, sched)
	default:
		result, message = "failed", fmt.Sprintf("unknown task type %s", sched.TaskType)
		zap.L().Warn("scheduler has unknown task type",
			zap.Int64("scheduler_id", sched.ID),
			zap.String("task_type", sched.TaskType))
	}

	a.gormDB.Model(&domain.OpsScheduler{}).Where("id = ?", sched.ID).Updates(map[string]interface{}{
		"last_run_at":  time.Now(),
		"last_result":  result,
		"last_message": message,
	})
}

// runMembershipExpiry marks active memberships past their end date as expired.
func (a *Application) runMembershipExpiry(sched *domain.OpsScheduler) (string, string) {
	tx := a.gormDB.Model(&domain.Membership{}).
		Where("status = ? and end_date < ?", domain.MembershipActive, time.Now()).
		Updates(map[string]interface{}{
			"status":     domain.MembershipExpired,
			"updated_at": time.Now(),
		})
	if tx.Error != nil {
		zap.L().Error("membership expiry sweep failed", zap.Error(tx.Error))
		return "failed", tx.Error.Error()
	}
	if tx.RowsAffected > 0 {
		zap.L().Info("expired memberships", zap.Int64("count", tx.RowsAffected))
	}
	return "success", fmt.Sprintf("%d memberships expired", tx.RowsAffected)
}

type bookingSweepConfig struct {
	GraceHours int `mapstructure:"grace_hours"`
}

// runBookingSweep flags checked-in bookings whose check-out time plus the
// grace period has passed, and alerts reception through the outbox.
func (a *Application) runBookingSweep(ctx context.Context, sched *domain.OpsScheduler) (string, string) {
	cfg := bookingSweepConfig{GraceHours: 2}
	if sched.Config != "" {
		var raw map[string]interface{}
		if err := json.Unmarshal([]byte(sched.Config), &raw); err == nil {
			decoder, derr := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
				WeaklyTypedInput: true,
				Result:           &cfg,
			})
			if derr == nil {
				_ = decoder.Decode(raw)
			}
		}
	}

	cutoff := time.Now().Add(-time.Duration(cfg.GraceHours) * time.Hour)
	var overdue []domain.Booking
	if err := a.gormDB.Where("status = ? and check_out < ?", domain.BookingCheckedIn, cutoff).
		Find(&overdue).Error; err != nil {
		zap.L().Error("booking sweep query failed", zap.Error(err))
		return "failed", err.Error()
	}

	if len(overdue) == 0 {
		return "success", "no overdue bookings"
	}

	reception := a.GetSettingsStringValue("notify", "ReceptionEmail")
	for _, booking := range overdue {
		zap.L().Warn("booking overdue for check-out",
			zap.Int64("booking_id", booking.ID),
			zap.Time("check_out", booking.CheckOut))
		if reception == "" || a.notifier == nil {
			continue
		}
		err := a.notifier.Enqueue(ctx, &domain.Notification{
			ID:         common.UUIDint64(),
			Channel:    "email",
			Recipient:  reception,
			Subject:    fmt.Sprintf("Booking %s overdue for check-out", booking.Reference),
			Body: fmt.Sprintf("Booking %s (room id %d) was due out at %s and is still checked in.",
				booking.Reference, booking.RoomId, common.FmtDatetime(booking.CheckOut)),
			SourceType: domain.SourceBooking,
			SourceId:   booking.ID,
			Status:     domain.NotifyPending,
		})
		if err != nil {
			zap.L().Error("failed to enqueue overdue booking alert",
				zap.Int64("booking_id", booking.ID), zap.Error(err))
		}
	}
	return "success", fmt.Sprintf("%d overdue bookings flagged", len(overdue))
}

func (a *Application) runNotifyDispatch(ctx context.Context, sched *domain.OpsScheduler) (string, string) {
	if a.notifier == nil {
		return "failed", "notifier not initialized"
	}
	a.notifier.DispatchPending(ctx)
	return "success", "outbox dispatched"
}
