package ports

import (
	"context"
	"time"

	"github.com/omnicorp/fieldops-api/internal/core/domain"
)

// ListOrdersFilter carries all query parameters for listing work orders.
type ListOrdersFilter struct {
	AssignedToID string // empty = no filter; non-empty = scoped to one technician
	Status       string // optional: filter by lifecycle status
	Priority     string // optional: filter by priority
	Search       string // optional: partial match on id or title
	Page         int    // 1-based
	Limit        int    // max rows per page (capped at 100 by service)
}

// OrderRepository defines persistence operations for work orders.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.WorkOrder) error
	FindByID(ctx context.Context, id string) (*domain.WorkOrder, error)
	// List returns a page of orders matching filter, newest first, and the total count.
	List(ctx context.Context, filter ListOrdersFilter) ([]*domain.WorkOrder, int64, error)
	// UpdateStatus replaces the status field of the matching order.
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
	// Complete atomically sets COMPLETED status, the completion timestamp, the
	// single-element evidence list, and the analysis log. Re-invocation
	// overwrites any prior evidence.
	Complete(ctx context.Context, id string, completedAt time.Time, evidenceImage, analysisLog string) error
	// Replace swaps the whole document iff the stored version matches
	// expectedVersion, bumping the version by one and writing it back
	// through o. Returns domain.ErrVersionConflict on a stale read.
	Replace(ctx context.Context, o *domain.WorkOrder, expectedVersion int64) error
	Delete(ctx context.Context, id string) error
}

// AuditRepository persists order events to the audit trail.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.OrderEvent) error
}
