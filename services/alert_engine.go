package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/sultan-bakery/sultan-orders-api/models"
	"gorm.io/gorm"
)

// AlertEngine evaluates all active alert rules against the live order set on a
// fixed interval and emits notifications through the notification store.
//
// Delivery is eventual: a status transition is only noticed on the next tick.
// The dedup set is process-local and resets on restart, so a rule can re-fire
// after a full restart and two concurrent instances can each fire once.
type AlertEngine struct {
	db       *gorm.DB
	store    *NotificationStore
	interval time.Duration

	mu   sync.Mutex
	sent map[string]struct{}

	cancel context.CancelFunc
	done   chan struct{}
}

// NewAlertEngine creates an engine with the given evaluation cadence.
// The cadence must be finer than the 2-minute admission window of time-based
// rules for them to fire exactly once; the default of 10 seconds satisfies this.
func NewAlertEngine(db *gorm.DB, store *NotificationStore, interval time.Duration) *AlertEngine {
	return &AlertEngine{
		db:       db,
		store:    store,
		interval: interval,
		sent:     make(map[string]struct{}),
	}
}

// Start launches the recurring evaluation loop. Ticks are serialized: the
// next evaluation only starts after the fixed interval elapses. The loop ends
// when ctx is canceled or Stop is called.
func (e *AlertEngine) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.done = make(chan struct{})

	go func() {
		defer close(e.done)

		ticker := time.NewTicker(e.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := e.EvaluateOnce(time.Now()); err != nil {
					log.Printf("Alert evaluation tick failed: %v", err)
				}
			}
		}
	}()
}

// Stop cancels the evaluation loop and waits for the current tick to finish
func (e *AlertEngine) Stop() {
	if e.cancel == nil {
		return
	}
	e.cancel()
	<-e.done
}

// EvaluateOnce runs a single full sweep of all active rules against all
// orders. A fetch error aborts the tick; notifications emitted before the
// error stand. Malformed rules are skipped silently.
func (e *AlertEngine) EvaluateOnce(now time.Time) error {
	var rules []models.AlertRule
	if err := e.db.Where("is_active = ?", true).Find(&rules).Error; err != nil {
		return fmt.Errorf("failed to load alert rules: %w", err)
	}

	var orders []models.Order
	if err := e.db.Find(&orders).Error; err != nil {
		return fmt.Errorf("failed to load orders: %w", err)
	}

	for _, rule := range rules {
		switch rule.TriggerType {
		case models.TriggerTimeBeforeDue:
			e.evaluateTimeRule(rule, orders, now)
		case models.TriggerStatusChange:
			e.evaluateStatusRule(rule, orders)
		}
	}

	return nil
}

// evaluateTimeRule fires when an order's due time crosses the rule threshold.
// The admission window is (minutesBefore-2, minutesBefore]: with a cadence
// finer than two minutes the rule fires at most once per order as the
// countdown passes the threshold.
func (e *AlertEngine) evaluateTimeRule(rule models.AlertRule, orders []models.Order, now time.Time) {
	if rule.MinutesBefore == nil {
		return // malformed rule, skip
	}
	minutesBefore := *rule.MinutesBefore

	for _, order := range orders {
		if order.Status == models.StatusDelivered {
			continue
		}

		// Floor, not truncate: an order 30 seconds overdue is at -1 minutes
		diffMinutes := int(math.Floor(order.DueDate.Sub(now).Minutes()))
		if diffMinutes > minutesBefore || diffMinutes <= minutesBefore-2 {
			continue
		}

		key := fmt.Sprintf("%s-%s", rule.ID, order.ID)
		if !e.markSent(key) {
			continue
		}

		notifType := models.NotificationWarning
		if diffMinutes < 0 {
			notifType = models.NotificationCritical
		}

		e.fire(rule, order, notifType, "")
	}
}

// evaluateStatusRule fires when an order currently sits in the rule's target
// status. The dedup key includes the status, so a rule+order pair fires at
// most once per status.
func (e *AlertEngine) evaluateStatusRule(rule models.AlertRule, orders []models.Order) {
	if rule.TargetStatus == nil {
		return // malformed rule, skip
	}
	target := *rule.TargetStatus

	for _, order := range orders {
		if order.Status != target {
			continue
		}

		key := fmt.Sprintf("status-alert-%s-%s-%s", rule.ID, order.ID, order.Status)
		if !e.markSent(key) {
			continue
		}

		e.fire(rule, order, models.NotificationInfo, target.Label())
	}
}

// markSent records the dedup key; returns false if it was already present
func (e *AlertEngine) markSent(key string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, already := e.sent[key]; already {
		return false
	}
	e.sent[key] = struct{}{}
	return true
}

// fire renders the message template and creates one notification per target role
func (e *AlertEngine) fire(rule models.AlertRule, order models.Order, notifType models.NotificationType, statusLabel string) {
	message := strings.ReplaceAll(rule.MessageTemplate, "{id}", order.ID)
	message = strings.ReplaceAll(message, "{customer}", order.CustomerName)
	message = strings.ReplaceAll(message, "{status}", statusLabel)

	for _, roleID := range rule.TargetRoles {
		e.store.Create(models.AppNotification{
			Title:     rule.Name,
			Message:   message,
			Type:      notifType,
			RoleID:    roleID,
			TargetURL: "/orders/" + order.ID,
		})
	}
}
