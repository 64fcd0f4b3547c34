package service

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/omnicorp/fieldops-api/internal/api/metrics"
	"github.com/omnicorp/fieldops-api/internal/core/domain"
	"github.com/omnicorp/fieldops-api/internal/core/ports"
)

// ScheduleStore persists the external schedule URL under its fixed key (Redis).
type ScheduleStore interface {
	Set(ctx context.Context, url string) error
	Get(ctx context.Context) (string, error)
}

// EventSink receives order events for asynchronous audit recording.
type EventSink interface {
	Enqueue(event domain.OrderEvent)
}

// OrderOptions tunes order behaviour.
type OrderOptions struct {
	// StrictTransitions enforces the status state machine. Off by default:
	// the legacy behaviour accepts any status at any time.
	StrictTransitions bool
}

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// OrderService implements the work-order lifecycle.
type OrderService struct {
	repo     ports.OrderRepository
	schedule ScheduleStore
	events   EventSink
	opts     OrderOptions
	log      zerolog.Logger
}

func NewOrderService(
	repo ports.OrderRepository,
	schedule ScheduleStore,
	events EventSink,
	opts OrderOptions,
	log zerolog.Logger,
) *OrderService {
	return &OrderService{repo: repo, schedule: schedule, events: events, opts: opts, log: log}
}

// CreateOrder builds and persists a new work order. The id and due date are
// derived here: the due date is fixed at creation time plus the SLA window and
// is never recomputed by later edits.
func (s *OrderService) CreateOrder(ctx context.Context, input ports.CreateOrderInput) (*domain.WorkOrder, error) {
	now := stampNow()
	slaHours := input.SLAHours
	if slaHours <= 0 {
		slaHours = 24
	}

	order := &domain.WorkOrder{
		ID:          generateOrderID(now),
		Title:       input.Title,
		Description: input.Description,
		Location: domain.Location{
			Lat:     input.Location.Lat,
			Lng:     input.Location.Lng,
			Address: input.Location.Address,
		},
		Priority:        domain.Priority(input.Priority),
		Status:          domain.StatusPending,
		AssignedToID:    input.AssignedToID,
		CreatedAt:       now,
		DueDate:         now.Add(time.Duration(slaHours) * time.Hour),
		ReferenceImages: input.ReferenceImages,
		EvidenceImages:  []string{},
		SLAHours:        slaHours,
		Value:           input.Value,
		TechnicalNotes:  input.TechnicalNotes,
		RequiredNorms:   input.RequiredNorms,
		Version:         1,
	}
	if order.ReferenceImages == nil {
		order.ReferenceImages = []string{}
	}
	if order.RequiredNorms == nil {
		order.RequiredNorms = []string{}
	}

	if err := s.repo.Create(ctx, order); err != nil {
		s.log.Error().Err(err).Msg("failed to create work order")
		return nil, err
	}

	metrics.OrdersCreatedTotal.WithLabelValues(string(order.Priority)).Inc()
	s.emit(order.ID, order.Status, "system")
	s.log.Info().Str("order_id", order.ID).Str("priority", string(order.Priority)).Msg("work order created")
	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.WorkOrder, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *OrderService) ListOrders(ctx context.Context, input ports.ListOrdersInput) (*ports.ListOrdersResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	items, total, err := s.repo.List(ctx, ports.ListOrdersFilter{
		AssignedToID: input.AssignedToID,
		Status:       input.Status,
		Priority:     input.Priority,
		Search:       input.Search,
		Page:         page,
		Limit:        limit,
	})
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.ListOrdersResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// UpdateStatus replaces the status field of the matching order. In strict mode
// the transition must be legal per the domain state machine; otherwise any
// status may follow any other.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, actor string) error {
	if !status.Valid() {
		return fmt.Errorf("update status: unknown status %q", status)
	}

	if s.opts.StrictTransitions {
		current, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !current.Status.CanTransitionTo(status) {
			return fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, current.Status, status)
		}
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	metrics.OrderStatusTransitionsTotal.WithLabelValues(string(status)).Inc()
	s.emit(id, status, actor)
	s.log.Info().Str("order_id", id).Str("status", string(status)).Msg("order status updated")
	return nil
}

// CompleteOrder marks the order COMPLETED, stamps the completion time, and
// replaces the evidence list with the single given image. Re-invoking with
// different arguments overwrites rather than accumulates.
func (s *OrderService) CompleteOrder(ctx context.Context, id, evidenceImage, analysisLog, actor string) error {
	if evidenceImage == "" {
		return fmt.Errorf("complete order: evidence image is required")
	}

	if err := s.repo.Complete(ctx, id, stampNow(), evidenceImage, analysisLog); err != nil {
		return err
	}

	metrics.OrdersCompletedTotal.Inc()
	s.emit(id, domain.StatusCompleted, actor)
	s.log.Info().Str("order_id", id).Msg("work order completed")
	return nil
}

// EditOrder replaces the mutable fields of the matching order. The id,
// creation time, due date, and completion evidence are carried over from the
// stored record; the stored version must match the version the caller read.
func (s *OrderService) EditOrder(ctx context.Context, input ports.EditOrderInput) (*domain.WorkOrder, error) {
	current, err := s.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	updated := *current
	updated.Title = input.Title
	updated.Description = input.Description
	updated.Location = domain.Location{
		Lat:     input.Location.Lat,
		Lng:     input.Location.Lng,
		Address: input.Location.Address,
	}
	updated.Priority = domain.Priority(input.Priority)
	updated.AssignedToID = input.AssignedToID
	updated.SLAHours = input.SLAHours
	updated.Value = input.Value
	updated.TechnicalNotes = input.TechnicalNotes
	if input.ReferenceImages != nil {
		updated.ReferenceImages = input.ReferenceImages
	}
	if input.RequiredNorms != nil {
		updated.RequiredNorms = input.RequiredNorms
	}

	if err := s.repo.Replace(ctx, &updated, input.Version); err != nil {
		return nil, err
	}

	s.log.Info().Str("order_id", updated.ID).Int64("version", updated.Version).Msg("work order edited")
	return &updated, nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("order_id", id).Msg("work order deleted")
	return nil
}

func (s *OrderService) ScheduleURL(ctx context.Context) (string, error) {
	return s.schedule.Get(ctx)
}

// UpdateScheduleURL stores the free-text URL used to embed the external
// schedule view. No validation of URL shape is performed.
func (s *OrderService) UpdateScheduleURL(ctx context.Context, url string) error {
	return s.schedule.Set(ctx, url)
}

func (s *OrderService) emit(orderID string, status domain.OrderStatus, actor string) {
	if s.events == nil {
		return
	}
	s.events.Enqueue(domain.OrderEvent{
		OrderID:   orderID,
		Status:    status,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
	})
}

// generateOrderID returns an order id in the format OS-<year>-<4 digits>.
func generateOrderID(now time.Time) string {
	var b [2]byte
	n := uint16(now.UnixNano() & 0xFFFF)
	if _, err := rand.Read(b[:]); err == nil {
		n = binary.BigEndian.Uint16(b[:])
	}
	return fmt.Sprintf("OS-%d-%04d", now.Year(), 1000+int(n)%9000)
}
