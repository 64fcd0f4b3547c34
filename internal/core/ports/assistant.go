package ports

import (
	"context"

	"github.com/omnicorp/fieldops-api/internal/core/domain"
)

// ChatTurn is a single entry in the assistant conversation transcript.
type ChatTurn struct {
	Role string // "user" or "model"
	Text string
}

// AssistantGateway is the external generative-text/vision collaborator.
// Implementations receive read-only order snapshots and never mutate stores.
type AssistantGateway interface {
	// GenerateReply returns the model's answer to userMessage given the prior
	// transcript and, when non-nil, the selected order as context.
	GenerateReply(ctx context.Context, history []ChatTurn, order *domain.WorkOrder, userMessage string) (string, error)
	// AnalyzeEvidence returns a text analysis of a base64-encoded JPEG
	// evidence photo for the given order.
	AnalyzeEvidence(ctx context.Context, jpegBase64 string, order *domain.WorkOrder) (string, error)
}

// ChatInput carries one assistant interaction.
type ChatInput struct {
	History []ChatTurn
	OrderID string // optional: empty selects global support mode
	Message string
}

// AssistantService wraps the gateway with context loading and failure fallbacks.
type AssistantService interface {
	// Chat returns the generated reply, or a fixed fallback string when the
	// gateway fails. Gateway errors are never propagated.
	Chat(ctx context.Context, input ChatInput) (string, error)
	// AnalyzeEvidence returns the generated analysis for a completion photo,
	// or a fixed fallback string when the gateway fails.
	AnalyzeEvidence(ctx context.Context, orderID, jpegBase64 string) (string, error)
}
