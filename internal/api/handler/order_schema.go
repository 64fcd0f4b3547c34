package handler

import "github.com/omnicorp/fieldops-api/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type locationRequest struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address" validate:"required"`
}

type createOrderRequest struct {
	Title           string          `json:"title"        validate:"required"`
	Description     string          `json:"description"`
	Location        locationRequest `json:"location"     validate:"required"`
	Priority        string          `json:"priority"     validate:"required,oneof=CRITICAL HIGH MEDIUM LOW"`
	AssignedToID    string          `json:"assigned_to_id" validate:"required"`
	ReferenceImages []string        `json:"reference_images"`
	SLAHours        int             `json:"sla_hours"    validate:"omitempty,gt=0"`
	Value           float64         `json:"value"`
	TechnicalNotes  string          `json:"technical_notes"`
	RequiredNorms   []string        `json:"required_norms"`
}

// editOrderRequest is a full replacement of the mutable fields; id, creation
// time, due date, and completion evidence are preserved server-side.
type editOrderRequest struct {
	Title           string          `json:"title"        validate:"required"`
	Description     string          `json:"description"`
	Location        locationRequest `json:"location"     validate:"required"`
	Priority        string          `json:"priority"     validate:"required,oneof=CRITICAL HIGH MEDIUM LOW"`
	AssignedToID    string          `json:"assigned_to_id" validate:"required"`
	ReferenceImages []string        `json:"reference_images"`
	SLAHours        int             `json:"sla_hours"    validate:"required,gt=0"`
	Value           float64         `json:"value"`
	TechnicalNotes  string          `json:"technical_notes"`
	RequiredNorms   []string        `json:"required_norms"`
	Version         int64           `json:"version"      validate:"required,gt=0"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING IN_PROGRESS COMPLETED VERIFIED BLOCKED"`
}

type completeOrderRequest struct {
	EvidenceImage string `json:"evidence_image" validate:"required"`
	AnalysisLog   string `json:"analysis_log"`
}

// scheduleURLRequest carries the free-text URL of the external schedule view.
// No validation of URL shape is performed.
type scheduleURLRequest struct {
	URL string `json:"url"`
}

type scheduleURLResponse struct {
	URL string `json:"url"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listOrdersResponse struct {
	Data       []*domain.WorkOrder `json:"data"`
	Pagination paginationResponse  `json:"pagination"`
}
