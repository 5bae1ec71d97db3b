package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiClient implementa CompletionClient contra la API generateContent de Gemini.
// No guarda estado entre llamadas y puede usarse de forma concurrente.
type GeminiClient struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	logger  *zap.Logger
}

// NewGeminiClient construye un cliente HTTP apuntando a la API de Gemini.
// El timeout por request lo define el caller via context.
func NewGeminiClient(baseURL, apiKey, model string, httpClient *http.Client, logger *zap.Logger) *GeminiClient {
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GeminiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  httpClient,
		logger:  logger,
	}
}

// Model devuelve el modelo configurado.
func (c *GeminiClient) Model() string {
	return c.model
}

func (c *GeminiClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	reqBody := generateRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: req.Instructions}}},
			{Role: "model", Parts: []part{{Text: req.Acknowledgment}}},
			{Role: "user", Parts: []part{{Text: req.Message}}},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", remoteErr("marshal request", err)
	}

	endpoint := c.baseURL + "/models/" + url.PathEscape(c.model) + ":generateContent"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", remoteErr("create request", err)
	}
	httpReq.Header.Set("x-goog-api-key", c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", remoteErr("do request", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", remoteErr("read response", err)
	}

	if resp.StatusCode >= 400 {
		c.logger.Warn("gemini error status",
			zap.Int("status", resp.StatusCode),
			zap.String("body", truncate(string(respBody), 512)),
		)
		return "", fmt.Errorf("%w: http status=%d", ErrRemoteUnavailable, resp.StatusCode)
	}

	var gr generateResponse
	if err := json.Unmarshal(respBody, &gr); err != nil {
		return "", remoteErr("unmarshal response", err)
	}

	if gr.Error != nil {
		return "", fmt.Errorf("%w: api error %s: %s", ErrRemoteUnavailable, gr.Error.Status, gr.Error.Message)
	}
	if gr.PromptFeedback != nil && gr.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: prompt blocked: %s", ErrRemoteUnavailable, gr.PromptFeedback.BlockReason)
	}
	if len(gr.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", ErrRemoteUnavailable)
	}

	var sb strings.Builder
	for _, p := range gr.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	text := cleanCompletionText(sb.String())
	if text == "" {
		return "", fmt.Errorf("%w: empty response (finish_reason=%s)", ErrRemoteUnavailable, gr.Candidates[0].FinishReason)
	}

	c.logger.Debug("gemini completion",
		zap.String("model", c.model),
		zap.Duration("latency", time.Since(start)),
		zap.Int("chars", len(text)),
	)
	return text, nil
}

func remoteErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrRemoteUnavailable, op, err)
}

// cleanCompletionText quita BOM y espacios sobrantes, dejando el markdown intacto.
func cleanCompletionText(raw string) string {
	s := strings.TrimPrefix(raw, "\uFEFF")
	return strings.TrimSpace(s)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback,omitempty"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}
