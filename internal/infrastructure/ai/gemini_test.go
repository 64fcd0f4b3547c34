package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/omnicorp/fieldops-api/internal/core/domain"
	"github.com/omnicorp/fieldops-api/internal/core/ports"
)

func newTestGateway(serverURL string) *GeminiGateway {
	g := NewGeminiGateway("test-key", "gemini-2.5-flash")
	g.baseURL = serverURL + "/models/%s:generateContent?key=%s"
	return g
}

func replyServer(t *testing.T, text string, capture *geminiRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if capture != nil {
			if err := json.NewDecoder(r.Body).Decode(capture); err != nil {
				t.Errorf("decode request: %v", err)
			}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
			},
		})
	}))
}

func TestGenerateReply_ReturnsCandidateText(t *testing.T) {
	srv := replyServer(t, "  Verifique o disjuntor principal.  ", nil)
	defer srv.Close()

	g := newTestGateway(srv.URL)
	reply, err := g.GenerateReply(context.Background(), nil, nil, "o que fazer?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "Verifique o disjuntor principal." {
		t.Errorf("reply must be trimmed, got %q", reply)
	}
}

func TestGenerateReply_BuildsTranscriptAndSystemInstruction(t *testing.T) {
	var captured geminiRequest
	srv := replyServer(t, "ok", &captured)
	defer srv.Close()

	g := newTestGateway(srv.URL)
	order := &domain.WorkOrder{ID: "OS-2026-4821", Title: "Troca de disjuntor", RequiredNorms: []string{"NR-10"}}
	history := []ports.ChatTurn{
		{Role: "user", Text: "qual o status?"},
		{Role: "model", Text: "em andamento"},
	}

	if _, err := g.GenerateReply(context.Background(), history, order, "e agora?"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(captured.Contents) != 3 {
		t.Fatalf("expected 2 history turns + 1 message, got %d", len(captured.Contents))
	}
	last := captured.Contents[2]
	if last.Role != "user" || last.Parts[0].Text != "e agora?" {
		t.Errorf("unexpected final turn: %+v", last)
	}

	if captured.SystemInstruction == nil {
		t.Fatal("system instruction must be set")
	}
	instruction := captured.SystemInstruction.Parts[0].Text
	if !strings.Contains(instruction, "OS-2026-4821") || !strings.Contains(instruction, "NR-10") {
		t.Error("system instruction must interpolate the order context")
	}
	if captured.GenerationConfig == nil || captured.GenerationConfig.Temperature != 0.4 {
		t.Errorf("unexpected generation config: %+v", captured.GenerationConfig)
	}
}

func TestGenerateReply_GlobalModeInstruction(t *testing.T) {
	var captured geminiRequest
	srv := replyServer(t, "ok", &captured)
	defer srv.Close()

	g := newTestGateway(srv.URL)
	if _, err := g.GenerateReply(context.Background(), nil, nil, "oi"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	instruction := captured.SystemInstruction.Parts[0].Text
	if !strings.Contains(instruction, "Modo de Suporte Global") {
		t.Error("nil order must select the global support instruction")
	}
}

func TestGenerateReply_APIErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"API key not valid"}}`))
	}))
	defer srv.Close()

	g := newTestGateway(srv.URL)
	_, err := g.GenerateReply(context.Background(), nil, nil, "oi")
	if err == nil || !strings.Contains(err.Error(), "API key not valid") {
		t.Fatalf("expected API error message, got %v", err)
	}
}

func TestGenerateReply_NoCandidatesIsEmptyNotError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	g := newTestGateway(srv.URL)
	reply, err := g.GenerateReply(context.Background(), nil, nil, "oi")
	if err != nil {
		t.Fatalf("empty candidates must not be an error: %v", err)
	}
	if reply != "" {
		t.Errorf("expected empty reply, got %q", reply)
	}
}

func TestGenerate_MissingAPIKey(t *testing.T) {
	g := NewGeminiGateway("", "gemini-2.5-flash")
	if _, err := g.GenerateReply(context.Background(), nil, nil, "oi"); err == nil {
		t.Fatal("missing API key must be an error")
	}
}

func TestAnalyzeEvidence_SendsInlineImage(t *testing.T) {
	var captured geminiRequest
	srv := replyServer(t, "Execução de alta qualidade.", &captured)
	defer srv.Close()

	g := newTestGateway(srv.URL)
	order := &domain.WorkOrder{ID: "OS-2026-4821", Title: "Troca de disjuntor", Description: "Painel térreo"}

	analysis, err := g.AnalyzeEvidence(context.Background(), "base64-jpeg-bytes", order)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if analysis != "Execução de alta qualidade." {
		t.Errorf("unexpected analysis: %q", analysis)
	}

	if len(captured.Contents) != 1 || len(captured.Contents[0].Parts) != 2 {
		t.Fatalf("expected one content with image + prompt parts, got %+v", captured.Contents)
	}
	img := captured.Contents[0].Parts[0].InlineData
	if img == nil || img.MIMEType != "image/jpeg" || img.Data != "base64-jpeg-bytes" {
		t.Errorf("unexpected inline image: %+v", img)
	}
	prompt := captured.Contents[0].Parts[1].Text
	if !strings.Contains(prompt, "OS-2026-4821") || !strings.Contains(prompt, "Auditor") {
		t.Error("prompt must embed the order context and the QA-auditor framing")
	}
}
