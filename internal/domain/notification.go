package domain

import "time"

// Notification is a pending outbound message in the delivery outbox.
// Rows stay "pending" until the dispatcher sends them; failed rows are
// retried a limited number of times.
type Notification struct {
	ID         int64      `json:"id,string" gorm:"primaryKey"`
	Channel    string     `json:"channel"`                         // email
	Recipient  string     `json:"recipient"`
	Subject    string     `json:"subject"`
	Body       string     `gorm:"type:text" json:"body"`
	SourceType string     `gorm:"index" json:"source_type"`        // booking/laundry/membership/event/receipt
	SourceId   int64      `gorm:"index" json:"source_id,string"`
	Status     string     `gorm:"index" json:"status"`             // pending/sent/failed
	ErrorMsg   string     `json:"error_msg"`
	RetryCount int        `json:"retry_count" gorm:"default:0"`
	SentAt     *time.Time `json:"sent_at"`
	CreatedAt  time.Time  `json:"created_at" gorm:"index"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// TableName specifies the table name
func (Notification) TableName() string {
	return "notification"
}

// NotificationLog is the audit trail of delivery attempts.
type NotificationLog struct {
	ID             int64     `json:"id,string" gorm:"primaryKey"`
	NotificationId int64     `json:"notification_id,string" gorm:"index"`
	Action         string    `json:"action"` // sent/failed
	Status         string    `json:"status"` // success/failure
	ErrorMsg       string    `json:"error_msg"`
	ExecutedAt     time.Time `json:"executed_at"`
	CreatedAt      time.Time `json:"created_at" gorm:"index"`
}

// TableName specifies the table name
func (NotificationLog) TableName() string {
	return "notification_log"
}

const (
	NotifyPending = "pending"
	NotifySent    = "sent"
	NotifyFailed  = "failed"
)
