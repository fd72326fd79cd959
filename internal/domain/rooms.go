package domain

import "time"

// Room module related models

// RoomType defines a bookable room category and its nightly base rate.
type RoomType struct {
	ID        int64     `json:"id,string" form:"id"`
	Name      string    `gorm:"index" json:"name" form:"name"`
	BaseRate  float64   `json:"base_rate" form:"base_rate"` // price per night in display currency units
	Capacity  int       `json:"capacity" form:"capacity"`
	Remark    string    `json:"remark" form:"remark"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (RoomType) TableName() string {
	return "room_type"
}

// Room is a physical room on a floor.
type Room struct {
	ID         int64     `json:"id,string" form:"id"`
	RoomTypeId int64     `gorm:"index" json:"room_type_id,string" form:"room_type_id"`
	Number     string    `gorm:"index" json:"number" form:"number"`
	Floor      int       `json:"floor" form:"floor"`
	Status     string    `gorm:"index" json:"status" form:"status"` // available/occupied/maintenance
	Remark     string    `json:"remark" form:"remark"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Room) TableName() string {
	return "room"
}

const (
	RoomAvailable   = "available"
	RoomOccupied    = "occupied"
	RoomMaintenance = "maintenance"
)
