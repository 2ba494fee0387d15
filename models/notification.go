package models

import "time"

// NotificationType classifies the severity of a notification
type NotificationType string

const (
	NotificationInfo     NotificationType = "INFO"
	NotificationWarning  NotificationType = "WARNING"
	NotificationCritical NotificationType = "CRITICAL"
	NotificationSuccess  NotificationType = "SUCCESS"
)

// IsValid returns true for a known notification type
func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationInfo, NotificationWarning, NotificationCritical, NotificationSuccess:
		return true
	}
	return false
}

// AppNotification is a generated alert instance held in the in-process
// notification store. It is addressed to exactly one of RoleID or UserID.
type AppNotification struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	IsRead    bool             `json:"isRead"`
	CreatedAt time.Time        `json:"createdAt"`
	TargetURL string           `json:"targetUrl,omitempty"`
	RoleID    string           `json:"roleId,omitempty"`
	UserID    string           `json:"userId,omitempty"`
}
