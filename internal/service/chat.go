package service

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"coverapi/internal/apperror"
	"coverapi/internal/cache"
	"coverapi/internal/llm"
)

const providerGemini = "gemini"

// ChatInput is one message sent to the career assistant.
type ChatInput struct {
	Message string
	UserID  string
	Context string
}

// ChatResult is the assistant answer with its static metadata.
type ChatResult struct {
	Response  string    `json:"response"`
	Provider  string    `json:"provider"`
	Model     string    `json:"model"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatService answers career questions with the text generation provider.
type ChatService interface {
	Chat(ctx context.Context, in ChatInput) (*ChatResult, error)
}

type chatService struct {
	text  llm.TextGenerator
	cache cache.Cache
	log   logrus.FieldLogger
	now   func() time.Time
}

func NewChatService(text llm.TextGenerator, c cache.Cache, log logrus.FieldLogger) ChatService {
	return &chatService{text: text, cache: c, log: log, now: time.Now}
}

type cachedChat struct {
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

func chatPrompt(in ChatInput) string {
	var b strings.Builder
	b.WriteString("Tu es un assistant de carrière bienveillant, spécialisé dans la recherche d'emploi, les CV et les lettres de motivation. Réponds en français de manière concise et actionnable.\n\n")
	if c := strings.TrimSpace(in.Context); c != "" {
		b.WriteString("Contexte :\n")
		b.WriteString(c)
		b.WriteString("\n\n")
	}
	b.WriteString("Question de l'utilisateur :\n")
	b.WriteString(in.Message)
	return b.String()
}

func (s *chatService) Chat(ctx context.Context, in ChatInput) (*ChatResult, error) {
	if strings.TrimSpace(in.Message) == "" {
		return nil, apperror.Validation("message", "Message requis")
	}

	resp, err := s.text.Generate(ctx, chatPrompt(in))
	if err != nil {
		return nil, apperror.Dependency("Gemini", err)
	}

	now := s.now().UTC()
	if in.UserID != "" {
		key := cache.ChatKey(in.UserID, now)
		if err := s.cache.Set(ctx, key, cachedChat{Message: in.Message, Response: resp, Timestamp: now}, resultTTL); err != nil {
			s.log.WithError(err).WithField("cache_key", key.String()).Warn("chat cache write failed")
		}
	}

	return &ChatResult{Response: resp, Provider: providerGemini, Model: s.text.Model(), Timestamp: now}, nil
}
