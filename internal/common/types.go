package common

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type NotificationType string

const (
	FriendRequestType   NotificationType = "friend_request"
	FriendAcceptedType  NotificationType = "friend_accepted"
	FriendRejectedType  NotificationType = "friend_rejected"
	FriendCancelledType NotificationType = "friend_cancelled"
	SystemType          NotificationType = "system"
)

type NotificationStatus string

const (
	StatusPending   NotificationStatus = "pending"
	StatusSent      NotificationStatus = "sent"
	StatusDelivered NotificationStatus = "delivered"
	StatusFailed    NotificationStatus = "failed"
	StatusRead      NotificationStatus = "read"
)

type NotificationMetadata map[string]interface{}

// Value stores the metadata as a JSON column.
func (m NotificationMetadata) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *NotificationMetadata) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported metadata type %T", value)
	}
	return json.Unmarshal(raw, m)
}

type NotificationEvent struct {
	Type          NotificationType
	UserID        string
	TriggerUserID *string
	Header        string
	Content       string
	Priority      int
	Metadata      NotificationMetadata
	CreatedAt     time.Time
}

type NotificationResponse struct {
	ID        string               `json:"id"`
	Type      string               `json:"type"`
	Header    string               `json:"header"`
	Content   string               `json:"content"`
	Status    string               `json:"status"`
	Priority  int                  `json:"priority"`
	Metadata  NotificationMetadata `json:"metadata,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
	ReadAt    *time.Time           `json:"read_at,omitempty"`
}
