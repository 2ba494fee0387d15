package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sultan-bakery/sultan-orders-api/models"
	"gorm.io/gorm"
)

func intPtr(v int) *int { return &v }

func statusPtr(s models.OrderStatus) *models.OrderStatus { return &s }

func seedTimeRule(t *testing.T, db *gorm.DB, minutesBefore int, roles ...string) models.AlertRule {
	t.Helper()

	rule := models.AlertRule{
		Name:            "Due soon",
		IsActive:        true,
		TriggerType:     models.TriggerTimeBeforeDue,
		MinutesBefore:   intPtr(minutesBefore),
		TargetRoles:     roles,
		MessageTemplate: "Order {id} for {customer} is due soon",
	}
	require.NoError(t, db.Create(&rule).Error)
	return rule
}

func seedDueOrder(t *testing.T, db *gorm.DB, due time.Time, status models.OrderStatus) models.Order {
	t.Helper()

	order := models.Order{
		CustomerName:  "Umm Khaled",
		CustomerPhone: "0559876543",
		Description:   "Birthday cake, chocolate",
		DueDate:       due,
		Status:        status,
		TotalAmount:   50,
		PaidAmount:    50,
		History:       []models.StatusChange{},
	}
	order.Recalculate()
	require.NoError(t, db.Create(&order).Error)
	return order
}

func TestTimeRuleFiresOncePerOrder(t *testing.T) {
	db := setupServiceTestDB(t)
	store := NewNotificationStore()
	engine := NewAlertEngine(db, store, 10*time.Second)

	now := time.Now()
	seedTimeRule(t, db, 60, "reception_role", "factory_role")
	order := seedDueOrder(t, db, now.Add(59*time.Minute), models.StatusRegistered)

	require.NoError(t, engine.EvaluateOnce(now))
	assert.Equal(t, 2, store.Len(), "one notification per target role")

	reception := &models.User{ID: "u1", RoleID: "reception_role"}
	listed := store.ListFor(reception)
	require.Len(t, listed, 1)
	assert.Equal(t, "Due soon", listed[0].Title)
	assert.Equal(t, models.NotificationWarning, listed[0].Type)
	assert.Contains(t, listed[0].Message, order.ID)
	assert.Contains(t, listed[0].Message, "Umm Khaled")
	assert.Equal(t, "/orders/"+order.ID, listed[0].TargetURL)

	// Subsequent ticks within the window emit nothing further
	require.NoError(t, engine.EvaluateOnce(now.Add(10*time.Second)))
	require.NoError(t, engine.EvaluateOnce(now.Add(20*time.Second)))
	assert.Equal(t, 2, store.Len())
}

func TestTimeRuleAdmissionWindow(t *testing.T) {
	db := setupServiceTestDB(t)
	seedTimeRule(t, db, 60, "reception_role")

	tests := []struct {
		name       string
		dueIn      time.Duration
		shouldFire bool
	}{
		{"Well before the threshold", 3 * time.Hour, false},
		{"Exactly at the threshold", 60 * time.Minute, true},
		{"Just inside the window", 59 * time.Minute, true},
		{"Below the window", 58 * time.Minute, false},
	}

	now := time.Now()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewNotificationStore()
			engine := NewAlertEngine(db, store, 10*time.Second)

			order := seedDueOrder(t, db, now.Add(tt.dueIn), models.StatusRegistered)
			defer db.Unscoped().Delete(&order)

			require.NoError(t, engine.EvaluateOnce(now))
			if tt.shouldFire {
				assert.Equal(t, 1, store.Len())
			} else {
				assert.Equal(t, 0, store.Len())
			}
		})
	}
}

func TestTimeRuleOverdueIsCritical(t *testing.T) {
	db := setupServiceTestDB(t)
	store := NewNotificationStore()
	engine := NewAlertEngine(db, store, 10*time.Second)

	now := time.Now()
	seedTimeRule(t, db, 0, "reception_role")
	seedDueOrder(t, db, now.Add(-30*time.Second), models.StatusRegistered)

	require.NoError(t, engine.EvaluateOnce(now))

	reception := &models.User{ID: "u1", RoleID: "reception_role"}
	listed := store.ListFor(reception)
	require.Len(t, listed, 1)
	assert.Equal(t, models.NotificationCritical, listed[0].Type)
}

func TestTimeRuleSkipsDeliveredOrders(t *testing.T) {
	db := setupServiceTestDB(t)
	store := NewNotificationStore()
	engine := NewAlertEngine(db, store, 10*time.Second)

	now := time.Now()
	seedTimeRule(t, db, 60, "reception_role")
	seedDueOrder(t, db, now.Add(59*time.Minute), models.StatusDelivered)

	require.NoError(t, engine.EvaluateOnce(now))
	assert.Equal(t, 0, store.Len())
}

func TestStatusRuleFiresOncePerOrderAndStatus(t *testing.T) {
	db := setupServiceTestDB(t)
	store := NewNotificationStore()
	engine := NewAlertEngine(db, store, 10*time.Second)

	rule := models.AlertRule{
		Name:            "Ready for transfer",
		IsActive:        true,
		TriggerType:     models.TriggerStatusChange,
		TargetStatus:    statusPtr(models.StatusPrepared),
		TargetRoles:     []string{"reception_role"},
		MessageTemplate: "Order {id} for {customer} is now {status}",
	}
	require.NoError(t, db.Create(&rule).Error)

	now := time.Now()
	order := seedDueOrder(t, db, now.Add(2*time.Hour), models.StatusPrepared)

	require.NoError(t, engine.EvaluateOnce(now))
	assert.Equal(t, 1, store.Len())

	reception := &models.User{ID: "u1", RoleID: "reception_role"}
	listed := store.ListFor(reception)
	require.Len(t, listed, 1)
	assert.Equal(t, models.NotificationInfo, listed[0].Type)
	assert.Contains(t, listed[0].Message, models.StatusPrepared.Label())

	// Re-running while still PREPARED emits nothing further
	require.NoError(t, engine.EvaluateOnce(now.Add(10*time.Second)))
	assert.Equal(t, 1, store.Len())

	// Nor does evaluation after the order has moved on
	require.NoError(t, db.Model(&order).Update("status", models.StatusTransferred).Error)
	require.NoError(t, engine.EvaluateOnce(now.Add(20*time.Second)))
	assert.Equal(t, 1, store.Len())
}

func TestMalformedRulesAreInert(t *testing.T) {
	db := setupServiceTestDB(t)
	store := NewNotificationStore()
	engine := NewAlertEngine(db, store, 10*time.Second)

	now := time.Now()
	seedDueOrder(t, db, now.Add(30*time.Minute), models.StatusPrepared)

	// A time rule without minutesBefore and a status rule without targetStatus
	rules := []models.AlertRule{
		{
			Name:            "broken time rule",
			IsActive:        true,
			TriggerType:     models.TriggerTimeBeforeDue,
			TargetRoles:     []string{"reception_role"},
			MessageTemplate: "x",
		},
		{
			Name:            "broken status rule",
			IsActive:        true,
			TriggerType:     models.TriggerStatusChange,
			TargetRoles:     []string{"reception_role"},
			MessageTemplate: "x",
		},
	}
	require.NoError(t, db.Create(&rules).Error)

	require.NoError(t, engine.EvaluateOnce(now))
	assert.Equal(t, 0, store.Len(), "malformed rules must be skipped silently")
}

func TestInactiveRulesAreSkipped(t *testing.T) {
	db := setupServiceTestDB(t)
	store := NewNotificationStore()
	engine := NewAlertEngine(db, store, 10*time.Second)

	now := time.Now()
	rule := seedTimeRule(t, db, 60, "reception_role")
	require.NoError(t, db.Model(&rule).Update("is_active", false).Error)
	seedDueOrder(t, db, now.Add(59*time.Minute), models.StatusRegistered)

	require.NoError(t, engine.EvaluateOnce(now))
	assert.Equal(t, 0, store.Len())
}

func TestEngineStartStop(t *testing.T) {
	db := setupServiceTestDB(t)
	store := NewNotificationStore()
	engine := NewAlertEngine(db, store, 10*time.Millisecond)

	engine.Start(t.Context())
	time.Sleep(50 * time.Millisecond)
	engine.Stop()

	// Stop is safe to call when the loop has already ended
	engineNeverStarted := NewAlertEngine(db, store, time.Second)
	engineNeverStarted.Stop()
}
