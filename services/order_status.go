package services

import (
	"fmt"
	"time"

	"github.com/sultan-bakery/sultan-orders-api/models"
	"gorm.io/gorm"
)

// Transition describes one edge of the fulfillment pipeline
type Transition struct {
	Next     models.OrderStatus
	Required models.Permission
}

// transitions is the full table of legal moves. The pipeline is strictly
// linear: no branches, no skips, no backward edges. DELIVERED is terminal.
var transitions = map[models.OrderStatus]Transition{
	models.StatusDraft:       {Next: models.StatusRegistered, Required: models.PermMoveToRegistered},
	models.StatusRegistered:  {Next: models.StatusInCreation, Required: models.PermMoveToInCreation},
	models.StatusInCreation:  {Next: models.StatusPrepared, Required: models.PermMoveToPrepared},
	models.StatusPrepared:    {Next: models.StatusTransferred, Required: models.PermMoveToTransferred},
	models.StatusTransferred: {Next: models.StatusDelivered, Required: models.PermMoveToDelivered},
}

// NextTransition returns the table entry for the given status, or ok=false
// when the status is terminal.
func NextTransition(status models.OrderStatus) (Transition, bool) {
	t, ok := transitions[status]
	return t, ok
}

// OrderStatusService moves orders through the pipeline, enforcing the
// transition table and the permission required by each edge.
type OrderStatusService struct {
	db    *gorm.DB
	perms *PermissionService
}

// NewOrderStatusService creates the state machine service
func NewOrderStatusService(db *gorm.DB, perms *PermissionService) *OrderStatusService {
	return &OrderStatusService{db: db, perms: perms}
}

// Advance moves the order to the next pipeline stage on behalf of actor.
// It appends a history entry, updates status and updatedAt, and persists the
// order in a single-row update. It does not emit notifications; the alert
// engine observes status by polling, so status-change alerts arrive on its
// next evaluation tick rather than synchronously with the transition.
func (s *OrderStatusService) Advance(order *models.Order, actor *models.User) error {
	transition, ok := NextTransition(order.Status)
	if !ok {
		return ErrNoNextState
	}

	if !s.perms.HasPermission(actor, transition.Required) {
		return ErrForbidden
	}

	now := time.Now()
	order.AppendHistory(transition.Next, now, "status update")
	order.Status = transition.Next
	order.UpdatedAt = now

	if err := s.db.Save(order).Error; err != nil {
		return fmt.Errorf("failed to persist order %s: %w", order.ID, err)
	}

	return nil
}

// AdvanceByID loads an order and advances it. Returns ErrNotFound when the id
// does not resolve.
func (s *OrderStatusService) AdvanceByID(orderID string, actor *models.User) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, "id = ?", orderID).Error; err != nil {
		return nil, ErrNotFound
	}

	if err := s.Advance(&order, actor); err != nil {
		return nil, err
	}

	return &order, nil
}
