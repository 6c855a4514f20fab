// Package llm implements the generative backend that synthesizes full
// article bodies from candidate items.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"habernexus/internal/config"
	"habernexus/internal/domain"
	"habernexus/internal/ports"
)

const excerptRunes = 200

// GeminiClient implements ports.ContentGenerator against the Gemini
// generateContent REST API.
type GeminiClient struct {
	endpoint   string
	model      string
	apiKey     string
	httpClient *http.Client
}

var _ ports.ContentGenerator = (*GeminiClient)(nil)

// NewGeminiClient builds a client from configuration.
func NewGeminiClient(cfg config.GeminiConfig) *GeminiClient {
	return &GeminiClient{
		endpoint: strings.TrimSuffix(cfg.Endpoint, "/"),
		model:    cfg.Model,
		apiKey:   cfg.APIKey,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// Generate builds a persona-conditioned prompt, invokes the backend and
// derives the excerpt. The model's output is persisted as-is; no length or
// language validation happens here — this is the trust boundary with the
// external service.
func (c *GeminiClient) Generate(ctx context.Context, item domain.CandidateItem, persona domain.PersonaAuthor) (domain.GeneratedText, error) {
	if c.apiKey == "" || c.endpoint == "" || c.model == "" {
		return domain.GeneratedText{}, &domain.GenerationError{Err: errors.New("gemini client misconfigured")}
	}

	content, err := c.generateText(ctx, buildPrompt(item, persona))
	if err != nil {
		return domain.GeneratedText{}, &domain.GenerationError{Err: err}
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.GeneratedText{}, &domain.GenerationError{Err: errors.New("empty response")}
	}

	return domain.GeneratedText{Content: content, Excerpt: Excerpt(content)}, nil
}

// Excerpt returns the first 200 runes of content with a literal ellipsis
// suffix. The suffix is unconditional — shorter content still gets it — and
// the serving layer relies on that.
func Excerpt(content string) string {
	r := []rune(content)
	if len(r) > excerptRunes {
		r = r[:excerptRunes]
	}
	return string(r) + "..."
}

func buildPrompt(item domain.CandidateItem, persona domain.PersonaAuthor) string {
	return fmt.Sprintf(`Sen %s adında bir gazeteci ve %s konusunda uzmansın. %s

Aşağıdaki haber başlığı ve özeti için profesyonel bir haber makalesi yaz:

Başlık: %s
Özet: %s

Lütfen:
1. Kendi üslubunla, %s alanındaki uzmanlığını yansıtarak yaz
2. En az 500 kelimelik detaylı bir makale oluştur
3. Objektif ve bilgilendirici ol
4. Türkçe dilbilgisi kurallarına uy
5. Sadece makale içeriğini döndür, başlık veya meta bilgi ekleme

Makale:`,
		persona.Name, persona.Specialty, persona.Bio,
		item.Title, item.Description,
		persona.Specialty)
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

func (c *GeminiClient) generateText(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.endpoint, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("gemini error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var gResp geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&gResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if gResp.Error != nil {
		return "", fmt.Errorf("gemini error (%d): %s", gResp.Error.Code, gResp.Error.Message)
	}
	if len(gResp.Candidates) == 0 || len(gResp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("no candidates in response")
	}

	return gResp.Candidates[0].Content.Parts[0].Text, nil
}
