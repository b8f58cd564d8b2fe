package models

import "time"

type NotificationCategory string

const (
	NotificationSuccess NotificationCategory = "success"
	NotificationError   NotificationCategory = "error"
	NotificationInfo    NotificationCategory = "info"
)

// Icon tags understood by the storefront UI.
const (
	IconCart  = "cart"
	IconHeart = "heart"
)

// Notification is an ephemeral confirmation message. It is never
// persisted and is dropped automatically after the configured TTL.
type Notification struct {
	ID        string               `json:"id"`
	Message   string               `json:"message"`
	Category  NotificationCategory `json:"category"`
	Icon      string               `json:"icon,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
}
