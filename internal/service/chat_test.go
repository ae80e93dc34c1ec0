package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"coverapi/internal/apperror"
	cacheMocks "coverapi/internal/cache/mocks"
	llmMocks "coverapi/internal/llm/mocks"
)

func newChatService(t *testing.T) (*chatService, *llmMocks.MockTextGenerator, *cacheMocks.MockCache) {
	t.Helper()
	log, _ := test.NewNullLogger()
	text := new(llmMocks.MockTextGenerator)
	c := new(cacheMocks.MockCache)
	svc := NewChatService(text, c, log).(*chatService)
	svc.now = func() time.Time { return fixedTime }
	return svc, text, c
}

func TestChatService_Chat(t *testing.T) {
	ctx := context.Background()
	svc, text, c := newChatService(t)

	text.On("Generate", ctx, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "Comment relancer un recruteur ?") && strings.Contains(p, "Contexte :\nposte de SRE")
	})).Return("Envoyez un email court.", nil)
	c.On("Set", ctx, "chat:u1:1741343400000", mock.Anything, time.Hour).Return(nil)

	res, err := svc.Chat(ctx, ChatInput{Message: "Comment relancer un recruteur ?", UserID: "u1", Context: "poste de SRE"})
	require.NoError(t, err)
	assert.Equal(t, "Envoyez un email court.", res.Response)
	assert.Equal(t, "gemini", res.Provider)
	assert.Equal(t, "gemini-test", res.Model)
	assert.Equal(t, fixedTime, res.Timestamp)
	c.AssertExpectations(t)
}

func TestChatService_AnonymousIsNotCached(t *testing.T) {
	ctx := context.Background()
	svc, text, c := newChatService(t)
	text.On("Generate", ctx, mock.Anything).Return("ok", nil)

	_, err := svc.Chat(ctx, ChatInput{Message: "hello"})
	require.NoError(t, err)
	c.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestChatService_Errors(t *testing.T) {
	ctx := context.Background()

	svc, _, _ := newChatService(t)
	_, err := svc.Chat(ctx, ChatInput{Message: "  "})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	svc, text, _ := newChatService(t)
	text.On("Generate", ctx, mock.Anything).Return("", errors.New("quota"))
	_, err = svc.Chat(ctx, ChatInput{Message: "hello", UserID: "u1"})
	assert.Equal(t, apperror.KindDependency, apperror.KindOf(err))
	assert.NotContains(t, apperror.PublicMessage(err), "quota")
}
