package letter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"janconnect/internal/logging"
	"janconnect/internal/report"
)

// DefaultModel is used when the user config names no model.
const DefaultModel = "gemini-1.5-flash"

// ErrNotConfigured signals that no API credential is configured. Callers
// that see it are expected to fall back to template generation.
var ErrNotConfigured = errors.New("letter backend not configured: set GEMINI_API_KEY")

// Client wraps the Gemini API for letter generation. A Client built
// without a credential is still usable: IsReady reports false and every
// call returns ErrNotConfigured.
type Client struct {
	inner   *genai.Client
	model   string
	timeout time.Duration
}

// NewClient constructs the API client. A missing key is not an error;
// the client simply reports itself not ready.
func NewClient(ctx context.Context, apiKey, model string, timeout time.Duration) (*Client, error) {
	if model == "" {
		model = DefaultModel
	}
	c := &Client{model: model, timeout: timeout}
	if strings.TrimSpace(apiKey) == "" {
		logging.LetterWarn("no Gemini API key configured, AI generation disabled")
		return c, nil
	}

	inner, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		logging.LetterError("failed to initialize Gemini client: %v", err)
		return c, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	c.inner = inner
	logging.Letter("Gemini client ready, model=%s", model)
	return c, nil
}

// IsReady reports whether a credential is configured and client
// construction succeeded. Checked before every call.
func (c *Client) IsReady() bool {
	return c != nil && c.inner != nil
}

// Generate produces the complete letter in one call.
func (c *Client) Generate(ctx context.Context, rec *report.Record) (string, error) {
	if !c.IsReady() {
		return "", ErrNotConfigured
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	prompt := BuildPrompt(rec, time.Now())
	timer := logging.StartTimer(logging.CategoryAPI, "generate_letter")
	defer timer.Stop()

	resp, err := c.inner.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}, nil)
	if err != nil {
		logging.APIError("letter generation failed: %v", err)
		return "", fmt.Errorf("letter generation failed: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", errors.New("letter generation returned empty response")
	}
	logging.APIDebug("generated %d chars", len(text))
	return text, nil
}

// GenerateStream produces the letter incrementally. It returns a content
// channel of text chunks and an error channel with at most one entry;
// both close when the stream ends. Cancelling ctx stops delivery.
func (c *Client) GenerateStream(ctx context.Context, rec *report.Record) (<-chan string, <-chan error) {
	contentChan := make(chan string, 100)
	errorChan := make(chan error, 1)

	go func() {
		defer close(contentChan)
		defer close(errorChan)

		if !c.IsReady() {
			errorChan <- ErrNotConfigured
			return
		}

		// Apply the default timeout when the caller set no deadline.
		if _, hasDeadline := ctx.Deadline(); !hasDeadline {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, c.timeout)
			defer cancel()
		}

		prompt := BuildPrompt(rec, time.Now())
		logging.APIDebug("streaming letter generation, model=%s", c.model)

		total := 0
		for resp, err := range c.inner.Models.GenerateContentStream(ctx, c.model,
			[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}, nil) {
			if err != nil {
				logging.APIError("letter stream failed after %d chars: %v", total, err)
				errorChan <- fmt.Errorf("letter stream failed: %w", err)
				return
			}
			chunk := resp.Text()
			if chunk == "" {
				continue
			}
			total += len(chunk)
			select {
			case contentChan <- chunk:
			case <-ctx.Done():
				errorChan <- ctx.Err()
				return
			}
		}
		logging.APIDebug("stream complete, %d chars", total)
	}()

	return contentChan, errorChan
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.timeout)
}
