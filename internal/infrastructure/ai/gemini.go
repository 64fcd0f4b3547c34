// Package ai contains the Gemini adapter behind the AssistantGateway port.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/omnicorp/fieldops-api/internal/core/domain"
	"github.com/omnicorp/fieldops-api/internal/core/ports"
)

var _ ports.AssistantGateway = (*GeminiGateway)(nil)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s"

// GeminiGateway implements AssistantGateway by calling the Gemini REST API.
type GeminiGateway struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewGeminiGateway constructs the adapter. model is typically "gemini-2.5-flash".
func NewGeminiGateway(apiKey, model string) *GeminiGateway {
	return &GeminiGateway{
		apiKey:  apiKey,
		model:   model,
		baseURL: geminiBaseURL,
		httpClient: &http.Client{
			Timeout: 20 * time.Second, // network timeout; callers also apply WithTimeout
		},
	}
}

// ---------------------------------------------------------------------------
// Gemini wire types
// ---------------------------------------------------------------------------

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  *genConfig      `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

type genConfig struct {
	Temperature float32 `json:"temperature"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ---------------------------------------------------------------------------
// Prompts (product copy, PT-BR)
// ---------------------------------------------------------------------------

func chatSystemInstruction(order *domain.WorkOrder) string {
	var ctx string
	if order != nil {
		ctx = fmt.Sprintf(`Você está atualmente auxiliando na Ordem de Serviço ID: %s
Título: %s
Descrição: %s
Localização: %s (Lat: %g, Lng: %g)
Prioridade: %s
Horas SLA: %d
Notas Técnicas: %s
Normas Obrigatórias (Conformidade Estrita): %s
Status: %s`,
			order.ID, order.Title, order.Description,
			order.Location.Address, order.Location.Lat, order.Location.Lng,
			order.Priority, order.SLAHours, order.TechnicalNotes,
			strings.Join(order.RequiredNorms, ", "), order.Status)
	} else {
		ctx = `Nenhuma Ordem de Serviço específica selecionada. Você está no Modo de Suporte Global.
Você pode responder perguntas sobre normas gerais de segurança (NR-10, NR-35), protocolos da empresa e melhores práticas de engenharia civil/elétrica.`
	}

	return fmt.Sprintf(`IDENTIDADE:
Você é o OMNI (Operational Master Network Intelligence), uma IA de suporte de engenharia avançada para técnicos de campo.
Seu tom é profissional, conciso, autoritário, porém prestativo, e obcecado por segurança.

CONTEXTO ATUAL:
%s

REGRAS DE ENGAJAMENTO:
1. SEGURANÇA EM PRIMEIRO LUGAR: Se o usuário perguntar sobre procedimentos, SEMPRE comece citando os EPIs obrigatórios e NRs relevantes.
2. CONSCIÊNCIA DE CONTEXTO: Use a localização e notas técnicas para dar conselhos específicos.
3. ESTILO CHECKLIST: Quando solicitado um "como fazer", forneça listas numeradas.
4. RELATÓRIOS: Se solicitado a escrever um relatório, gere um texto formal e conciso adequado para um log de auditoria.
5. IDIOMA: Responda em Português (PT-BR).`, ctx)
}

func evidencePrompt(order *domain.WorkOrder) string {
	return fmt.Sprintf(`ATUE COMO: Auditor de Garantia de Qualidade OMNI.

CONTEXTO:
Analisando evidência para Ordem de Serviço: %s (#%s)
Descrição: %s

TAREFA:
1. Relevância: A imagem mostra o trabalho descrito?
2. Qualidade: Avalie a execução (Baixa/Média/Alta).
3. Segurança: Detecte quaisquer violações visíveis de segurança (falta de EPI, ambiente inseguro).
4. Resumo: Uma frase concisa para o log do banco de dados.

IDIOMA: Português (PT-BR).`, order.Title, order.ID, order.Description)
}

// ---------------------------------------------------------------------------
// Port implementation
// ---------------------------------------------------------------------------

// GenerateReply forwards the transcript plus the new user message, with the
// selected order interpolated into the system instruction when present.
func (g *GeminiGateway) GenerateReply(ctx context.Context, history []ports.ChatTurn, order *domain.WorkOrder, userMessage string) (string, error) {
	contents := make([]geminiContent, 0, len(history)+1)
	for _, turn := range history {
		contents = append(contents, geminiContent{
			Role:  turn.Role,
			Parts: []geminiPart{{Text: turn.Text}},
		})
	}
	contents = append(contents, geminiContent{
		Role:  "user",
		Parts: []geminiPart{{Text: userMessage}},
	})

	payload := geminiRequest{
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: chatSystemInstruction(order)}},
		},
		Contents: contents,
		// Lower temperature for more deterministic, professional replies.
		GenerationConfig: &genConfig{Temperature: 0.4},
	}

	return g.generate(ctx, payload)
}

// AnalyzeEvidence submits the completion photo with the QA-auditor prompt.
func (g *GeminiGateway) AnalyzeEvidence(ctx context.Context, jpegBase64 string, order *domain.WorkOrder) (string, error) {
	payload := geminiRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{
				{InlineData: &inlineData{MIMEType: "image/jpeg", Data: jpegBase64}},
				{Text: evidencePrompt(order)},
			},
		}},
	}

	return g.generate(ctx, payload)
}

func (g *GeminiGateway) generate(ctx context.Context, payload geminiRequest) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("gemini: API key not configured")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("gemini: marshal request: %w", err)
	}

	url := fmt.Sprintf(g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("gemini: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini: http call: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("gemini: read response: %w", err)
	}

	var gemResp geminiResponse
	if resp.StatusCode != http.StatusOK {
		if jsonErr := json.Unmarshal(rawBody, &gemResp); jsonErr == nil && gemResp.Error != nil {
			return "", fmt.Errorf("gemini: error %d: %s", gemResp.Error.Code, gemResp.Error.Message)
		}
		return "", fmt.Errorf("gemini: HTTP %d", resp.StatusCode)
	}

	if err := json.Unmarshal(rawBody, &gemResp); err != nil {
		return "", fmt.Errorf("gemini: decode response: %w", err)
	}
	if len(gemResp.Candidates) == 0 || len(gemResp.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}

	return strings.TrimSpace(gemResp.Candidates[0].Content.Parts[0].Text), nil
}
