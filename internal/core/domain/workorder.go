package domain

import (
	"errors"
	"time"
)

// OrderStatus represents the lifecycle state of a work order.
type OrderStatus string

const (
	StatusPending    OrderStatus = "PENDING"
	StatusInProgress OrderStatus = "IN_PROGRESS"
	StatusCompleted  OrderStatus = "COMPLETED"
	StatusVerified   OrderStatus = "VERIFIED"
	StatusBlocked    OrderStatus = "BLOCKED"
)

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusVerified, StatusBlocked:
		return true
	}
	return false
}

// validTransitions defines the allowed state machine transitions. It is only
// consulted when strict transition mode is enabled; by default any status may
// follow any other (inherited behaviour, kept behind a configuration hook).
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusInProgress, StatusBlocked},
	StatusInProgress: {StatusCompleted, StatusBlocked},
	StatusCompleted:  {StatusVerified},
	StatusBlocked:    {StatusPending, StatusInProgress},
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Priority classifies the urgency of a work order.
type Priority string

const (
	PriorityCritical Priority = "CRITICAL"
	PriorityHigh     Priority = "HIGH"
	PriorityMedium   Priority = "MEDIUM"
	PriorityLow      Priority = "LOW"
)

var ErrOrderNotFound = errors.New("work order not found")
var ErrInvalidTransition = errors.New("invalid status transition")
var ErrVersionConflict = errors.New("work order was modified concurrently")

// Location is the site a work order takes place at.
type Location struct {
	Lat     float64 `json:"lat" bson:"lat"`
	Lng     float64 `json:"lng" bson:"lng"`
	Address string  `json:"address" bson:"address"`
}

// WorkOrder is the core aggregate root.
//
// Invariants: ID and DueDate are fixed at creation; Status == COMPLETED
// implies CompletedAt is set and EvidenceImages holds at least one entry.
// Version increments on every full-document edit (optimistic locking).
type WorkOrder struct {
	ID              string      `json:"id" bson:"_id"`
	Title           string      `json:"title" bson:"title"`
	Description     string      `json:"description" bson:"description"`
	Location        Location    `json:"location" bson:"location"`
	Priority        Priority    `json:"priority" bson:"priority"`
	Status          OrderStatus `json:"status" bson:"status"`
	AssignedToID    string      `json:"assigned_to_id" bson:"assigned_to_id"`
	CreatedAt       time.Time   `json:"created_at" bson:"created_at"`
	DueDate         time.Time   `json:"due_date" bson:"due_date"`
	CompletedAt     *time.Time  `json:"completed_at,omitempty" bson:"completed_at,omitempty"`
	ReferenceImages []string    `json:"reference_images" bson:"reference_images"`
	EvidenceImages  []string    `json:"evidence_images" bson:"evidence_images"`
	AIAnalysisLog   string      `json:"ai_analysis_log,omitempty" bson:"ai_analysis_log,omitempty"`
	SLAHours        int         `json:"sla_hours" bson:"sla_hours"`
	Value           float64     `json:"value" bson:"value"`
	TechnicalNotes  string      `json:"technical_notes" bson:"technical_notes"`
	RequiredNorms   []string    `json:"required_norms" bson:"required_norms"`
	Version         int64       `json:"version" bson:"version"`
}

// OrderEvent records a single status mutation for the audit trail.
type OrderEvent struct {
	OrderID   string
	Status    OrderStatus
	Actor     string
	Timestamp time.Time
}
