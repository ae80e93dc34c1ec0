package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"coverapi/internal/llm"
)

type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func (m *MockTextGenerator) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func (m *MockTextGenerator) Model() string { return "gemini-test" }

type MockChatCompleter struct {
	mock.Mock
}

func (m *MockChatCompleter) Complete(ctx context.Context, messages []llm.Message) (string, error) {
	args := m.Called(ctx, messages)
	return args.String(0), args.Error(1)
}

func (m *MockChatCompleter) Model() string { return "groq-test" }

type MockImageGenerator struct {
	mock.Mock
}

func (m *MockImageGenerator) GenerateImage(ctx context.Context, prompt string) (llm.Image, error) {
	args := m.Called(ctx, prompt)
	return args.Get(0).(llm.Image), args.Error(1)
}

func (m *MockImageGenerator) Model() string { return "image-test" }
