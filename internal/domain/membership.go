package domain

import "time"

// Gym and pool membership models. Both facilities share one plan/membership
// shape distinguished by the Facility field.

type MembershipPlan struct {
	ID           int64     `json:"id,string" form:"id"`
	Facility     string    `gorm:"index" json:"facility" form:"facility"` // gym/pool
	Name         string    `gorm:"index" json:"name" form:"name"`
	DurationDays int       `json:"duration_days" form:"duration_days"`
	Price        float64   `json:"price" form:"price"`
	Remark       string    `json:"remark" form:"remark"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (MembershipPlan) TableName() string {
	return "membership_plan"
}

type Membership struct {
	ID            int64     `json:"id,string" form:"id"`
	GuestId       int64     `gorm:"index" json:"guest_id,string" form:"guest_id"`
	PlanId        int64     `gorm:"index" json:"plan_id,string" form:"plan_id"`
	Facility      string    `gorm:"index" json:"facility" form:"facility"`
	StartDate     time.Time `json:"start_date" form:"start_date"`
	EndDate       time.Time `gorm:"index" json:"end_date" form:"end_date"`
	Status        string    `gorm:"index" json:"status" form:"status"` // active/expired/cancelled
	TotalAmount   float64   `json:"total_amount" form:"total_amount"`
	PaidAmount    float64   `json:"paid_amount" form:"paid_amount"`
	PaymentStatus string    `gorm:"index" json:"payment_status" form:"payment_status"`
	Reference     string    `gorm:"index" json:"reference" form:"reference"`
	Remark        string    `json:"remark" form:"remark"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Membership) TableName() string {
	return "membership"
}

const (
	FacilityGym  = "gym"
	FacilityPool = "pool"

	MembershipActive    = "active"
	MembershipExpired   = "expired"
	MembershipCancelled = "cancelled"
)
