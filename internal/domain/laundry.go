package domain

import "time"

// Laundry module related models.
//
// The price list is a two-axis catalog: a clothing category crossed with a
// service type yields one unit price. An order item may select several
// services for the same garment; its effective unit price is their sum.

type LaundryCategory struct {
	ID        int64     `json:"id,string" form:"id"`
	Name      string    `gorm:"index" json:"name" form:"name"`
	Remark    string    `json:"remark" form:"remark"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (LaundryCategory) TableName() string {
	return "laundry_category"
}

type LaundryService struct {
	ID        int64     `json:"id,string" form:"id"`
	Name      string    `gorm:"index" json:"name" form:"name"` // wash/iron/dry_clean/starch
	Remark    string    `json:"remark" form:"remark"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (LaundryService) TableName() string {
	return "laundry_service"
}

// LaundryPrice is one cell of the category x service price matrix.
type LaundryPrice struct {
	ID         int64     `json:"id,string" form:"id"`
	CategoryId int64     `gorm:"index;uniqueIndex:idx_laundry_cat_svc" json:"category_id,string" form:"category_id"`
	ServiceId  int64     `gorm:"uniqueIndex:idx_laundry_cat_svc" json:"service_id,string" form:"service_id"`
	Price      float64   `json:"price" form:"price"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (LaundryPrice) TableName() string {
	return "laundry_price"
}

type LaundryOrder struct {
	ID            int64     `json:"id,string" form:"id"`
	GuestId       int64     `gorm:"index" json:"guest_id,string" form:"guest_id"`
	BookingId     int64     `gorm:"index" json:"booking_id,string" form:"booking_id"` // 0 for walk-in orders
	Status        string    `gorm:"index" json:"status" form:"status"`                // received/processing/ready/delivered/cancelled
	TotalAmount   float64   `json:"total_amount" form:"total_amount"`
	PaidAmount    float64   `json:"paid_amount" form:"paid_amount"`
	PaymentStatus string    `gorm:"index" json:"payment_status" form:"payment_status"`
	Reference     string    `gorm:"index" json:"reference" form:"reference"`
	Remark        string    `json:"remark" form:"remark"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (LaundryOrder) TableName() string {
	return "laundry_order"
}

// LaundryOrderItem is one garment line. ServiceIds holds the selected
// service ids as a JSON array; UnitPrice is the sum of their catalog prices
// at order time.
type LaundryOrderItem struct {
	ID         int64     `json:"id,string" form:"id"`
	OrderId    int64     `gorm:"index" json:"order_id,string" form:"order_id"`
	CategoryId int64     `json:"category_id,string" form:"category_id"`
	ServiceIds string    `gorm:"type:text" json:"service_ids" form:"service_ids"`
	Quantity   int       `json:"quantity" form:"quantity"`
	UnitPrice  float64   `json:"unit_price" form:"unit_price"`
	LineTotal  float64   `json:"line_total" form:"line_total"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (LaundryOrderItem) TableName() string {
	return "laundry_order_item"
}

const (
	LaundryReceived   = "received"
	LaundryProcessing = "processing"
	LaundryReady      = "ready"
	LaundryDelivered  = "delivered"
	LaundryCancelled  = "cancelled"
)
