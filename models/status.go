package models

// OrderStatus represents a stage in the fixed fulfillment pipeline
type OrderStatus string

const (
	StatusDraft       OrderStatus = "DRAFT"
	StatusRegistered  OrderStatus = "REGISTERED"
	StatusInCreation  OrderStatus = "IN_CREATION"
	StatusPrepared    OrderStatus = "PREPARED"
	StatusTransferred OrderStatus = "TRANSFERRED"
	StatusDelivered   OrderStatus = "DELIVERED"
)

// AllStatuses lists every pipeline stage in order
var AllStatuses = []OrderStatus{
	StatusDraft,
	StatusRegistered,
	StatusInCreation,
	StatusPrepared,
	StatusTransferred,
	StatusDelivered,
}

// statusLabels maps each status to its human-readable display label
var statusLabels = map[OrderStatus]string{
	StatusDraft:       "Draft (being entered)",
	StatusRegistered:  "Order registered",
	StatusInCreation:  "In creation",
	StatusPrepared:    "Prepared",
	StatusTransferred: "Transferred to shop",
	StatusDelivered:   "Delivered",
}

// IsValid returns true if the status is one of the six pipeline stages
func (s OrderStatus) IsValid() bool {
	_, ok := statusLabels[s]
	return ok
}

// IsTerminal returns true for the final pipeline stage
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered
}

// Label returns the display label for the status
func (s OrderStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}
