package app

import (
	"context"
	"fmt"

	"github.com/hotelworks/hotelops/internal/billing"
	"github.com/hotelworks/hotelops/internal/domain"
	"github.com/hotelworks/hotelops/pkg/common"
	"go.uber.org/zap"
)

// Domain event topics published by the admin API handlers.
const (
	TopicBookingCreated = "booking.created"
	TopicReceiptIssued  = "receipt.issued"
)

// subscribeEvents wires the in-process bus to the notification outbox. The
// handlers run asynchronously so request handlers never block on email work.
func (a *Application) subscribeEvents() {
	if err := a.bus.SubscribeAsync(TopicBookingCreated, a.onBookingCreated, false); err != nil {
		zap.L().Error("failed to subscribe booking.created", zap.Error(err))
	}
	if err := a.bus.SubscribeAsync(TopicReceiptIssued, a.onReceiptIssued, false); err != nil {
		zap.L().Error("failed to subscribe receipt.issued", zap.Error(err))
	}
}

func (a *Application) onBookingCreated(bookingID int64) {
	if !a.GetSettingsBoolValue("notify", "GuestEmailEnabled") || a.notifier == nil {
		return
	}

	var booking domain.Booking
	if err := a.gormDB.Where("id = ?", bookingID).First(&booking).Error; err != nil {
		zap.L().Error("booking.created handler: booking not found",
			zap.Int64("booking_id", bookingID), zap.Error(err))
		return
	}

	var guest domain.Guest
	if err := a.gormDB.Where("id = ?", booking.GuestId).First(&guest).Error; err != nil || guest.Email == "" {
		return
	}

	hotel := a.GetSettingsStringValue("system", "HotelName")
	body := fmt.Sprintf("Dear %s,\n\nYour booking %s at %s is confirmed.\nCheck-in: %s\nCheck-out: %s\nNights: %d\nTotal: %s\n",
		guest.Name, booking.Reference, hotel,
		common.FmtDatetime(booking.CheckIn), common.FmtDatetime(booking.CheckOut),
		booking.Nights, billing.FormatAmount(booking.TotalAmount))

	err := a.notifier.Enqueue(context.Background(), &domain.Notification{
		ID:         common.UUIDint64(),
		Channel:    "email",
		Recipient:  guest.Email,
		Subject:    fmt.Sprintf("Booking confirmation %s", booking.Reference),
		Body:       body,
		SourceType: domain.SourceBooking,
		SourceId:   booking.ID,
		Status:     domain.NotifyPending,
	})
	if err != nil {
		zap.L().Error("failed to enqueue booking confirmation",
			zap.Int64("booking_id", booking.ID), zap.Error(err))
	}
}

func (a *Application) onReceiptIssued(receiptID int64) {
	if !a.GetSettingsBoolValue("notify", "GuestEmailEnabled") || a.notifier == nil {
		return
	}

	var receipt domain.Receipt
	if err := a.gormDB.Where("id = ?", receiptID).First(&receipt).Error; err != nil {
		zap.L().Error("receipt.issued handler: receipt not found",
			zap.Int64("receipt_id", receiptID), zap.Error(err))
		return
	}

	var guest domain.Guest
	if err := a.gormDB.Where("id = ?", receipt.GuestId).First(&guest).Error; err != nil || guest.Email == "" {
		return
	}

	hotel := a.GetSettingsStringValue("system", "HotelName")
	body := fmt.Sprintf("Dear %s,\n\nWe received your payment of %s (%s).\nReceipt: %s\nIssued: %s\n\n%s\n",
		guest.Name, billing.FormatAmount(receipt.Amount), receipt.Method,
		receipt.Reference, common.FmtDatetime(receipt.IssuedAt), hotel)

	err := a.notifier.Enqueue(context.Background(), &domain.Notification{
		ID:         common.UUIDint64(),
		Channel:    "email",
		Recipient:  guest.Email,
		Subject:    fmt.Sprintf("Payment receipt %s", receipt.Reference),
		Body:       body,
		SourceType: domain.SourceReceipt,
		SourceId:   receipt.ID,
		Status:     domain.NotifyPending,
	})
	if err != nil {
		zap.L().Error("failed to enqueue receipt email",
			zap.Int64("receipt_id", receipt.ID), zap.Error(err))
	}
}
