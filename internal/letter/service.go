package letter

import (
	"context"
	"errors"
	"time"

	"janconnect/internal/logging"
	"janconnect/internal/report"
)

// Mode records which path produced a letter.
type Mode string

const (
	// ModeAI means the Gemini API produced the text.
	ModeAI Mode = "ai"
	// ModeTemplate means the deterministic fallback produced it.
	ModeTemplate Mode = "template"
)

// Result carries the generated text, which path produced it, and an
// optional non-blocking advisory for the user (set when the AI path was
// attempted but fell back).
type Result struct {
	Text     string
	Mode     Mode
	Advisory string
}

// Service is the letter generation entry point. Generate never fails for
// the unavailable-backend case: the template fallback has no external
// dependency, so a letter always comes back.
type Service struct {
	client *Client
}

// NewService wraps a client. The client may be not-ready; the service
// still works in template mode.
func NewService(client *Client) *Service {
	return &Service{client: client}
}

// Ready reports whether the AI path is available.
func (s *Service) Ready() bool {
	return s.client.IsReady()
}

// Generate produces letter text for the record, preferring the AI path
// and falling back to templates on unavailability or call failure.
func (s *Service) Generate(ctx context.Context, rec *report.Record) (Result, error) {
	if !s.client.IsReady() {
		logging.Letter("backend not configured, using template generation")
		return Result{
			Text:     Fallback(rec, time.Now()),
			Mode:     ModeTemplate,
			Advisory: "AI service not configured. Letter was generated from templates.",
		}, nil
	}

	text, err := s.client.Generate(ctx, rec)
	if err != nil {
		// Caller-requested cancellation is the one error that must
		// not be papered over with a fallback letter.
		if errors.Is(err, context.Canceled) {
			return Result{}, err
		}
		logging.LetterWarn("AI generation failed, using template fallback: %v", err)
		return Result{
			Text:     Fallback(rec, time.Now()),
			Mode:     ModeTemplate,
			Advisory: "AI generation failed. Letter was generated from templates instead.",
		}, nil
	}
	return Result{Text: text, Mode: ModeAI}, nil
}

// Stream produces the letter incrementally through onChunk and returns
// the accumulated result. When the AI stream is unavailable or fails
// before completing, it falls back to a whole template letter delivered
// as a single chunk.
func (s *Service) Stream(ctx context.Context, rec *report.Record, onChunk func(string)) (Result, error) {
	if s.client.IsReady() {
		contentChan, errorChan := s.client.GenerateStream(ctx, rec)

		var full []byte
		for chunk := range contentChan {
			full = append(full, chunk...)
			if onChunk != nil {
				onChunk(chunk)
			}
		}
		if err := <-errorChan; err != nil {
			if errors.Is(err, context.Canceled) {
				return Result{}, err
			}
			logging.LetterWarn("streaming failed, using template fallback: %v", err)
		} else {
			return Result{Text: string(full), Mode: ModeAI}, nil
		}
	}

	res := Result{
		Text:     Fallback(rec, time.Now()),
		Mode:     ModeTemplate,
		Advisory: "AI streaming unavailable. Letter was generated from templates.",
	}
	if onChunk != nil {
		onChunk(res.Text)
	}
	return res, nil
}
