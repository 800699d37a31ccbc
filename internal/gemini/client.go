// Package gemini: обёртка над google.golang.org/genai: один вызов GenerateContent
// и перевод ошибок апстрима в errs.
package gemini

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/uniconnect/ama-service/pkg/errs"
)

const DefaultModel = "gemini-1.5-flash"

type Config struct {
	APIKey  string
	Model   string
	BaseURL string // для тестов; пусто: прод endpoint
}

type Client struct {
	client *genai.Client
	model  string
}

func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errs.New(errs.ErrUpstreamAuth, "Gemini API key is not set")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions.BaseURL = cfg.BaseURL
	}
	c, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, err
	}
	return &Client{client: c, model: cfg.Model}, nil
}

// Generate отправляет промпт и возвращает текст ответа модели.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", MapError(err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errs.New(errs.ErrUpstream, "AI returned an empty response")
	}
	return text, nil
}

const (
	msgInvalidKey = "Invalid API key. Please check your Gemini API configuration."
	msgQuota      = "API quota exceeded. Please try again later."
	msgUpstream   = "AI generation failed"
)

// MapError: неверный ключ -> ErrUpstreamAuth, квота -> ErrUpstreamQuota, прочее -> ErrUpstream.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	var e *errs.Error
	if errors.As(err, &e) {
		return err
	}

	code, status := 0, ""
	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	switch {
	case errors.As(err, &apiErr):
		code, status = apiErr.Code, apiErr.Status
	case errors.As(err, &apiErrPtr):
		code, status = apiErrPtr.Code, apiErrPtr.Status
	}

	text := err.Error()
	switch {
	case code == http.StatusUnauthorized, code == http.StatusForbidden,
		strings.Contains(text, "API_KEY_INVALID"), strings.Contains(strings.ToLower(text), "api key not valid"):
		return errs.Wrap(errs.ErrUpstreamAuth, msgInvalidKey, err)
	case code == http.StatusTooManyRequests, status == "RESOURCE_EXHAUSTED",
		strings.Contains(text, "QUOTA_EXCEEDED"), strings.Contains(text, "RESOURCE_EXHAUSTED"):
		return errs.Wrap(errs.ErrUpstreamQuota, msgQuota, err)
	default:
		return errs.Wrap(errs.ErrUpstream, msgUpstream, err)
	}
}
