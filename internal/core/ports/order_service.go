package ports

import (
	"context"

	"github.com/omnicorp/fieldops-api/internal/core/domain"
)

// CreateOrderInput carries all data needed to create a new work order.
// ID, status, creation time, and due date are derived by the service.
type CreateOrderInput struct {
	Title           string
	Description     string
	Location        LocationInput
	Priority        string
	AssignedToID    string
	ReferenceImages []string
	SLAHours        int
	Value           float64
	TechnicalNotes  string
	RequiredNorms   []string
}

// LocationInput holds the site of a work order.
type LocationInput struct {
	Lat     float64
	Lng     float64
	Address string
}

// EditOrderInput carries the mutable fields for a full-replacement edit.
// ID, creation time, due date, and completion evidence are preserved from the
// stored record. Version is the version the caller read; a mismatch with the
// stored version aborts the edit.
type EditOrderInput struct {
	ID              string
	Title           string
	Description     string
	Location        LocationInput
	Priority        string
	AssignedToID    string
	ReferenceImages []string
	SLAHours        int
	Value           float64
	TechnicalNotes  string
	RequiredNorms   []string
	Version         int64
}

// ListOrdersInput carries all parameters for the list endpoint.
type ListOrdersInput struct {
	AssignedToID string
	Status       string
	Priority     string
	Search       string
	Page         int
	Limit        int
}

// ListOrdersResult is returned by ListOrders.
type ListOrdersResult struct {
	Items      []*domain.WorkOrder
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// OrderService defines use-case operations for work orders.
type OrderService interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.WorkOrder, error)
	GetOrder(ctx context.Context, id string) (*domain.WorkOrder, error)
	ListOrders(ctx context.Context, input ListOrdersInput) (*ListOrdersResult, error)
	// UpdateStatus replaces the order's status. Transition legality is only
	// checked when strict mode is configured.
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, actor string) error
	// CompleteOrder marks the order COMPLETED with the given photographic
	// evidence and analysis text, overwriting any prior completion.
	CompleteOrder(ctx context.Context, id, evidenceImage, analysisLog, actor string) error
	EditOrder(ctx context.Context, input EditOrderInput) (*domain.WorkOrder, error)
	DeleteOrder(ctx context.Context, id string) error
	ScheduleURL(ctx context.Context) (string, error)
	UpdateScheduleURL(ctx context.Context, url string) error
}
