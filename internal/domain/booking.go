package domain

import "time"

// Booking is a room reservation. TotalAmount and PaidAmount form the
// authoritative charge for the stay; PaymentStatus is derived from them
// whenever a payment is recorded.
type Booking struct {
	ID            int64     `json:"id,string" form:"id"`
	GuestId       int64     `gorm:"index" json:"guest_id,string" form:"guest_id"`
	RoomId        int64     `gorm:"index" json:"room_id,string" form:"room_id"`
	CheckIn       time.Time `json:"check_in" form:"check_in"`
	CheckOut      time.Time `json:"check_out" form:"check_out"`
	Nights        int       `json:"nights" form:"nights"`
	Status        string    `gorm:"index" json:"status" form:"status"` // reserved/checked_in/checked_out/cancelled
	TotalAmount   float64   `json:"total_amount" form:"total_amount"`
	PaidAmount    float64   `json:"paid_amount" form:"paid_amount"`
	PaymentStatus string    `gorm:"index" json:"payment_status" form:"payment_status"` // paid/partial/unpaid
	Reference     string    `gorm:"index" json:"reference" form:"reference"`
	Remark        string    `json:"remark" form:"remark"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Booking) TableName() string {
	return "booking"
}

const (
	BookingReserved   = "reserved"
	BookingCheckedIn  = "checked_in"
	BookingCheckedOut = "checked_out"
	BookingCancelled  = "cancelled"
)
