package domain

import "time"

// Receipt records one payment against a booking, laundry order, membership
// or event booking. The source row keeps the running paid_amount; receipts
// are the immutable payment trail behind it.
type Receipt struct {
	ID          int64     `json:"id,string" form:"id"`
	Reference   string    `gorm:"index" json:"reference" form:"reference"`
	SourceType  string    `gorm:"index" json:"source_type" form:"source_type"` // booking/laundry/membership/event
	SourceId    int64     `gorm:"index" json:"source_id,string" form:"source_id"`
	GuestId     int64     `gorm:"index" json:"guest_id,string" form:"guest_id"`
	Amount      float64   `json:"amount" form:"amount"`
	Method      string    `json:"method" form:"method"` // cash/card/transfer/gateway
	GatewayRef  string    `json:"gateway_ref" form:"gateway_ref"`
	IssuedBy    string    `json:"issued_by" form:"issued_by"`
	IssuedAt    time.Time `gorm:"index" json:"issued_at" form:"issued_at"`
	Remark      string    `json:"remark" form:"remark"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Receipt) TableName() string {
	return "receipt"
}

const (
	SourceBooking    = "booking"
	SourceLaundry    = "laundry"
	SourceMembership = "membership"
	SourceEvent      = "event"
	SourceReceipt    = "receipt"
)
