package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/omnicorp/fieldops-api/internal/core/ports"
)

// AssistantHandler handles assistant chat and evidence-analysis requests.
type AssistantHandler struct {
	assistant ports.AssistantService
}

func NewAssistantHandler(assistant ports.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistant: assistant}
}

type chatTurnRequest struct {
	Role string `json:"role" validate:"required,oneof=user model"`
	Text string `json:"text" validate:"required"`
}

type chatRequest struct {
	History []chatTurnRequest `json:"history" validate:"dive"`
	OrderID string            `json:"order_id"`
	Message string            `json:"message" validate:"required"`
}

type analyzeEvidenceRequest struct {
	OrderID string `json:"order_id" validate:"required"`
	Image   string `json:"image"    validate:"required"` // base64-encoded JPEG
}

type assistantResponse struct {
	Reply string `json:"reply"`
}

// Chat handles POST /v1/assistant/chat. Gateway failures surface as a fixed
// fallback reply with a 200, never as an error.
//
// @Summary      Ask the assistant
// @Tags         assistant
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      chatRequest  true  "Transcript, optional order context, and new message"
// @Success      200   {object}  assistantResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/assistant/chat [post]
func (h *AssistantHandler) Chat(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	history := make([]ports.ChatTurn, 0, len(req.History))
	for _, turn := range req.History {
		history = append(history, ports.ChatTurn{Role: turn.Role, Text: turn.Text})
	}

	reply, err := h.assistant.Chat(c.Request().Context(), ports.ChatInput{
		History: history,
		OrderID: req.OrderID,
		Message: req.Message,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, assistantResponse{Reply: reply})
}

// AnalyzeEvidence handles POST /v1/assistant/evidence.
//
// @Summary      Analyze a completion photo
// @Tags         assistant
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      analyzeEvidenceRequest  true  "Order id and base64 JPEG"
// @Success      200   {object}  assistantResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/assistant/evidence [post]
func (h *AssistantHandler) AnalyzeEvidence(c echo.Context) error {
	var req analyzeEvidenceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	analysis, err := h.assistant.AnalyzeEvidence(c.Request().Context(), req.OrderID, req.Image)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, assistantResponse{Reply: analysis})
}
