package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"
)

// Client реализует доступ к OpenAI-совместимому API (Bothub).
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient создаёт экземпляр клиента.
// Таймаут короткий и без повторов: при сбое пайплайн модерации сам
// подставляет безопасный fallback-результат.
func NewClient(baseURL, model string, timeout time.Duration) *Client {
	apiKey := os.Getenv("BOTHUB_ACCESS_TOKEN")
	if apiKey == "" {
		apiKey = os.Getenv("AI_API_KEY")
	}

	if model == "" {
		model = "gpt-4o-mini"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ChatCompletion выполняет запрос к chat/completions и возвращает текст ответа.
func (c *Client) ChatCompletion(ctx context.Context, messages []map[string]any, maxTokens int, temperature float64) (string, error) {
	if c.baseURL == "" {
		return "", fmt.Errorf("ai: baseURL не задан")
	}

	payload := map[string]any{
		"model":       c.model,
		"messages":    messages,
		"max_tokens":  maxTokens,
		"temperature": temperature,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := c.baseURL
	if !strings.HasSuffix(url, "/") {
		url += "/"
	}
	url += "chat/completions"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errorBody map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&errorBody)
		return "", fmt.Errorf("ai: код ответа %d: %v", resp.StatusCode, errorBody)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("ai: пустой ответ")
	}

	return result.Choices[0].Message.Content, nil
}

// CompleteText отправляет один текстовый промпт с низкой температурой.
func (c *Client) CompleteText(ctx context.Context, prompt string, maxTokens int) (string, error) {
	messages := []map[string]any{
		{"role": "user", "content": prompt},
	}
	return c.ChatCompletion(ctx, messages, maxTokens, moderationTemperature)
}

// CompleteWithImages отправляет промпт вместе со списком URL изображений
// (формат vision-контента chat/completions).
func (c *Client) CompleteWithImages(ctx context.Context, prompt string, imageURLs []string, maxTokens int) (string, error) {
	content := []map[string]any{
		{"type": "text", "text": prompt},
	}
	for _, url := range imageURLs {
		content = append(content, map[string]any{
			"type":      "image_url",
			"image_url": map[string]any{"url": url},
		})
	}

	messages := []map[string]any{
		{"role": "user", "content": content},
	}
	return c.ChatCompletion(ctx, messages, maxTokens, moderationTemperature)
}

// parseJSONFromText пытается извлечь JSON объект из текста, который может
// содержать markdown или пояснения вокруг.
func parseJSONFromText(text string) (map[string]interface{}, bool) {
	result := make(map[string]interface{})

	jsonStart := strings.Index(text, "{")
	jsonEnd := strings.LastIndex(text, "}")
	if jsonStart != -1 && jsonEnd != -1 && jsonEnd > jsonStart {
		jsonStr := text[jsonStart : jsonEnd+1]
		if err := json.Unmarshal([]byte(jsonStr), &result); err == nil {
			return result, true
		}
	}

	if strings.Contains(text, "```") {
		codeBlockMatch := regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)\\s*```").FindStringSubmatch(text)
		if len(codeBlockMatch) > 1 {
			if err := json.Unmarshal([]byte(codeBlockMatch[1]), &result); err == nil {
				return result, true
			}
		}
	}

	return nil, false
}
