// Package llm wraps the external text, chat and image generation providers.
package llm

import (
	"context"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Message is one turn of a chat-completions conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// TextGenerator produces free text or JSON from a single prompt.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	// GenerateJSON asks the provider for a JSON document and strips markdown fences from the reply.
	GenerateJSON(ctx context.Context, prompt string) (string, error)
	Model() string
}

// ChatCompleter answers a list of chat messages.
type ChatCompleter interface {
	Complete(ctx context.Context, messages []Message) (string, error)
	Model() string
}

// Image is a generated picture.
type Image struct {
	Data     []byte
	MimeType string
}

// ImageGenerator renders an image from a text prompt.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (Image, error)
	Model() string
}

// newHTTPClient returns a traced client with the given timeout.
func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}
