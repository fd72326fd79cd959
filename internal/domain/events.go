package domain

import "time"

// Event hall models. Halls can be chartered by the hour or by the day; the
// charge type on a booking picks which rate applies.

type EventHall struct {
	ID         int64     `json:"id,string" form:"id"`
	Name       string    `gorm:"index" json:"name" form:"name"`
	Capacity   int       `json:"capacity" form:"capacity"`
	HourlyRate float64   `json:"hourly_rate" form:"hourly_rate"`
	DailyRate  float64   `json:"daily_rate" form:"daily_rate"`
	Status     string    `gorm:"index" json:"status" form:"status"` // enabled/disabled
	Remark     string    `json:"remark" form:"remark"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (EventHall) TableName() string {
	return "event_hall"
}

type EventBooking struct {
	ID            int64     `json:"id,string" form:"id"`
	HallId        int64     `gorm:"index" json:"hall_id,string" form:"hall_id"`
	GuestId       int64     `gorm:"index" json:"guest_id,string" form:"guest_id"`
	Title         string    `json:"title" form:"title"`
	StartAt       time.Time `json:"start_at" form:"start_at"`
	EndAt         time.Time `json:"end_at" form:"end_at"`
	ChargeType    string    `json:"charge_type" form:"charge_type"` // hourly/daily
	Status        string    `gorm:"index" json:"status" form:"status"`
	TotalAmount   float64   `json:"total_amount" form:"total_amount"`
	PaidAmount    float64   `json:"paid_amount" form:"paid_amount"`
	PaymentStatus string    `gorm:"index" json:"payment_status" form:"payment_status"`
	Reference     string    `gorm:"index" json:"reference" form:"reference"`
	Remark        string    `json:"remark" form:"remark"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (EventBooking) TableName() string {
	return "event_booking"
}

const (
	ChargeHourly = "hourly"
	ChargeDaily  = "daily"

	EventScheduled = "scheduled"
	EventOngoing   = "ongoing"
	EventCompleted = "completed"
	EventCancelled = "cancelled"
)
