package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/resuforge/rewriter/internal/core/domain"
)

// Style prompts carried over from the rewrite prompt design: keep the
// model conservative unless the caller opts in to a stronger tone.
var stylePrompts = map[domain.Style]string{
	domain.StyleSafe:     "Keep it professional.",
	domain.StyleBold:     "Use strong action verbs.",
	domain.StyleCreative: "Use engaging language.",
}

// OllamaProvider implements Transformer against an Ollama /api/chat
// endpoint.
type OllamaProvider struct {
	name       string
	endpoint   string
	model      string
	httpClient *http.Client
}

// NewOllamaProvider creates a new Ollama-backed transformer.
// The client timeout is a transport safety net; per-attempt wall-clock
// budgets are enforced by the invoker through the request context.
func NewOllamaProvider(endpoint, model string, timeout time.Duration) *OllamaProvider {
	return &OllamaProvider{
		name:     "ollama",
		endpoint: strings.TrimRight(endpoint, "/"),
		model:    model,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

func (p *OllamaProvider) Name() string { return p.name }

// Transform sends one chat completion request and returns the model's
// reply verbatim (trimmed). Length violations are the caller's problem.
func (p *OllamaProvider) Transform(ctx context.Context, req Request) (string, error) {
	prompt := buildPrompt(req)

	reqBody := map[string]any{
		"model":  p.model,
		"stream": false,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint+"/api/chat", bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("chat call: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var chatResp struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if chatResp.Error != "" {
		return "", fmt.Errorf("ollama error: %s", chatResp.Error)
	}

	content := strings.TrimSpace(chatResp.Message.Content)
	if content == "" {
		return "", fmt.Errorf("ollama returned empty content")
	}
	return content, nil
}

// Health checks reachability of the Ollama endpoint.
func (p *OllamaProvider) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint+"/api/tags", nil)
	if err != nil {
		return err
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ollama unreachable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama health http %d", resp.StatusCode)
	}
	return nil
}

func buildPrompt(req Request) string {
	stylePrompt, ok := stylePrompts[req.Style]
	if !ok {
		stylePrompt = stylePrompts[domain.StyleSafe]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Rewrite this resume bullet to include: %s.\n\n", strings.Join(req.Keywords, ", "))
	b.WriteString("Constraints:\n")
	fmt.Fprintf(&b, "1. MUST be under %d chars\n", req.MaxChars)
	b.WriteString("2. Do NOT make up facts\n")
	fmt.Fprintf(&b, "3. %s\n", stylePrompt)
	b.WriteString("4. Return ONLY the rewritten bullet\n\n")
	fmt.Fprintf(&b, "Original: %q\n", req.Text)
	return b.String()
}
