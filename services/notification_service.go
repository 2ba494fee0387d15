package services

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sultan-bakery/sultan-orders-api/models"
)

// MaxStoredNotifications caps the store at the newest entries; the oldest are
// evicted first.
const MaxStoredNotifications = 100

// NotificationStore holds generated notifications in process memory and routes
// them to their audience by role or by user. The store is local to one running
// process; two concurrent instances do not share delivery or read state.
type NotificationStore struct {
	mu            sync.Mutex
	notifications []models.AppNotification
}

var notificationStoreInstance *NotificationStore

// InitNotificationStore initializes the process-wide notification store
func InitNotificationStore() *NotificationStore {
	notificationStoreInstance = NewNotificationStore()
	return notificationStoreInstance
}

// GetNotificationStore returns the initialized notification store instance
func GetNotificationStore() *NotificationStore {
	return notificationStoreInstance
}

// SetNotificationStore sets the notification store instance (primarily for testing)
func SetNotificationStore(store *NotificationStore) {
	notificationStoreInstance = store
}

// NewNotificationStore creates an empty store
func NewNotificationStore() *NotificationStore {
	return &NotificationStore{}
}

// Create assigns defaults, prepends the notification and trims the store to
// the cap. Missing type defaults to INFO, isRead to false, createdAt to now.
func (s *NotificationStore) Create(n models.AppNotification) models.AppNotification {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Type == "" {
		n.Type = models.NotificationInfo
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	n.IsRead = false

	s.mu.Lock()
	defer s.mu.Unlock()

	s.notifications = append([]models.AppNotification{n}, s.notifications...)
	if len(s.notifications) > MaxStoredNotifications {
		s.notifications = s.notifications[:MaxStoredNotifications]
	}

	return n
}

// ListFor returns the notifications addressed to the user directly or to the
// user's role, newest first.
func (s *NotificationStore) ListFor(user *models.User) []models.AppNotification {
	if user == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []models.AppNotification
	for _, n := range s.notifications {
		if (n.UserID != "" && n.UserID == user.ID) || (n.RoleID != "" && n.RoleID == user.RoleID) {
			matched = append(matched, n)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	return matched
}

// MarkRead marks a notification as read. Idempotent: unknown ids and
// already-read notifications are no-ops.
func (s *NotificationStore) MarkRead(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].IsRead = true
			return
		}
	}
}

// Len returns the number of stored notifications
func (s *NotificationStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.notifications)
}

// Clear removes all notifications (used by backup restore and tests)
func (s *NotificationStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = nil
}
