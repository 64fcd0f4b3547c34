package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/omnicorp/fieldops-api/internal/api/metrics"
	"github.com/omnicorp/fieldops-api/internal/core/domain"
	"github.com/omnicorp/fieldops-api/internal/core/ports"
)

// Fixed user-visible fallback strings, returned verbatim whenever the gateway
// fails or yields no text. Gateway errors are logged and never propagated.
const (
	fallbackChatFailure   = "ALERTA CRÍTICO OMNI: Falha na conexão com o módulo cognitivo central. Tente novamente."
	fallbackChatEmpty     = "Sistema OMNI: A resposta foi processada, mas nenhum texto foi gerado. Verifique a conexão."
	fallbackVisionFailure = "Alerta do Sistema OMNI: Diagnóstico visual falhou."
	fallbackVisionEmpty   = "Análise visual concluída sem retorno de texto."
)

// Generative calls can take several seconds; bound them so a slow provider
// cannot pin request goroutines.
const gatewayTimeout = 10 * time.Second

// AssistantService forwards order context to the assistant gateway and shields
// callers from its failures.
type AssistantService struct {
	gateway ports.AssistantGateway
	orders  ports.OrderRepository
	log     zerolog.Logger
}

func NewAssistantService(gateway ports.AssistantGateway, orders ports.OrderRepository, log zerolog.Logger) *AssistantService {
	return &AssistantService{gateway: gateway, orders: orders, log: log}
}

// Chat returns the generated reply for one conversation turn. When an order id
// is supplied, the order's fields are forwarded as read-only context; a lookup
// failure is the only error surfaced to the caller.
func (s *AssistantService) Chat(ctx context.Context, input ports.ChatInput) (string, error) {
	order, err := s.loadContext(ctx, input.OrderID)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, gatewayTimeout)
	defer cancel()

	reply, err := s.gateway.GenerateReply(ctx, input.History, order, input.Message)
	if err != nil {
		metrics.AssistantRequestsTotal.WithLabelValues("chat", "error").Inc()
		s.log.Error().Err(err).Str("order_id", input.OrderID).Msg("assistant chat failed")
		return fallbackChatFailure, nil
	}
	if reply == "" {
		metrics.AssistantRequestsTotal.WithLabelValues("chat", "empty").Inc()
		return fallbackChatEmpty, nil
	}

	metrics.AssistantRequestsTotal.WithLabelValues("chat", "ok").Inc()
	return reply, nil
}

// AnalyzeEvidence returns the generated quality analysis of a completion photo.
func (s *AssistantService) AnalyzeEvidence(ctx context.Context, orderID, jpegBase64 string) (string, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, gatewayTimeout)
	defer cancel()

	analysis, err := s.gateway.AnalyzeEvidence(ctx, jpegBase64, order)
	if err != nil {
		metrics.AssistantRequestsTotal.WithLabelValues("evidence", "error").Inc()
		s.log.Error().Err(err).Str("order_id", orderID).Msg("evidence analysis failed")
		return fallbackVisionFailure, nil
	}
	if analysis == "" {
		metrics.AssistantRequestsTotal.WithLabelValues("evidence", "empty").Inc()
		return fallbackVisionEmpty, nil
	}

	metrics.AssistantRequestsTotal.WithLabelValues("evidence", "ok").Inc()
	return analysis, nil
}

func (s *AssistantService) loadContext(ctx context.Context, orderID string) (*domain.WorkOrder, error) {
	if orderID == "" {
		return nil, nil // global support mode
	}
	return s.orders.FindByID(ctx, orderID)
}
