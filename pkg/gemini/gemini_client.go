package gemini

import (
	"Health-Kitchen-Backend/domain"
	"Health-Kitchen-Backend/internal/utils"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

var ErrNotConfigured = errors.New("GEMINI_API_KEY is not set")

var (
	objectPattern = regexp.MustCompile(`(?s)\{.*\}`)
	arrayPattern  = regexp.MustCompile(`(?s)\[.*\]`)
)

type (
	GeminiClient interface {
		GenerateContent(ctx context.Context, parts []Part, cfg GenerationConfig) (string, error)
	}

	Part struct {
		Text       string      `json:"text,omitempty"`
		InlineData *InlineData `json:"inline_data,omitempty"`
	}

	InlineData struct {
		MimeType string `json:"mime_type"`
		Data     string `json:"data"`
	}

	GenerationConfig struct {
		Temperature float64 `json:"temperature"`
		TopP        float64 `json:"topP"`
		TopK        int     `json:"topK"`
	}

	geminiClient struct {
		httpClient *http.Client
		baseURL    string
		model      string
		apiKey     string
	}
)

// NewGeminiClient reads GEMINI_* settings from config.
func NewGeminiClient() GeminiClient {
	return NewGeminiClientWith(
		&http.Client{Timeout: 30 * time.Second},
		utils.GetConfig("GEMINI_URL"),
		utils.GetConfig("GEMINI_MODEL"),
		utils.GetConfig("GEMINI_API_KEY"),
	)
}

func NewGeminiClientWith(httpClient *http.Client, baseURL, model, apiKey string) GeminiClient {
	return &geminiClient{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		model:      model,
		apiKey:     apiKey,
	}
}

// GenerateContent sends one generateContent request and returns the text of
// the first candidate part.
func (c *geminiClient) GenerateContent(ctx context.Context, parts []Part, cfg GenerationConfig) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}

	requestBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": parts},
		},
		"generationConfig": cfg,
	}

	requestJSON, err := json.Marshal(requestBody)
	if err != nil {
		return "", err
	}

	geminiURL := fmt.Sprintf("%s/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, geminiURL, bytes.NewBuffer(requestJSON))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: %s - %s", domain.ErrGeminiAPIFailed, resp.Status, string(bodyBytes))
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return "", err
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", domain.ErrGeminiAPIFailed
	}

	return geminiResp.Candidates[0].Content.Parts[0].Text, nil
}

// ExtractObject pulls the outermost JSON object out of a model reply,
// dropping markdown fences and surrounding prose.
func ExtractObject(text string) string {
	return extract(text, objectPattern)
}

// ExtractArray is ExtractObject for a top-level JSON array.
func ExtractArray(text string) string {
	return extract(text, arrayPattern)
}

func extract(text string, pattern *regexp.Regexp) string {
	text = stripFences(text)
	if match := pattern.FindString(text); match != "" {
		return match
	}
	return text
}

func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	return strings.TrimSpace(text)
}
