package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"coverapi/internal/model"
	"coverapi/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*service.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Session), args.Error(1)
}

func (m *MockAuthService) Register(ctx context.Context, in service.RegisterInput) (*model.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) ProviderAuth(ctx context.Context, in service.ProviderAuthInput) (*service.ProviderSession, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ProviderSession), args.Error(1)
}

func (m *MockAuthService) VerifyToken(ctx context.Context, token string) (*model.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAuthService) Me(ctx context.Context, userID string) (*model.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

type MockCoverLetterService struct {
	mock.Mock
}

func (m *MockCoverLetterService) List(ctx context.Context) ([]model.CoverLetter, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CoverLetter), args.Error(1)
}

func (m *MockCoverLetterService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCoverLetterService) Create(ctx context.Context, l *model.CoverLetter) (*model.CoverLetter, error) {
	args := m.Called(ctx, l)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CoverLetter), args.Error(1)
}

type MockCVService struct {
	mock.Mock
}

func (m *MockCVService) Save(ctx context.Context, fields map[string]any) (*model.CVRecord, error) {
	args := m.Called(ctx, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CVRecord), args.Error(1)
}

func (m *MockCVService) Get(ctx context.Context, id string) (*model.CVRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CVRecord), args.Error(1)
}

func (m *MockCVService) List(ctx context.Context) ([]model.CVRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CVRecord), args.Error(1)
}

type MockFileService struct {
	mock.Mock
}

func (m *MockFileService) Upload(ctx context.Context, in service.UploadInput) (*model.UploadedFile, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UploadedFile), args.Error(1)
}

func (m *MockFileService) Delete(ctx context.Context, fileID, userID string) error {
	args := m.Called(ctx, fileID, userID)
	return args.Error(0)
}

func (m *MockFileService) List(ctx context.Context, userID string) ([]model.UploadedFile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UploadedFile), args.Error(1)
}

type MockGenerationService struct {
	mock.Mock
}

func (m *MockGenerationService) Generate(ctx context.Context, req service.GenerationRequest) (*service.GenerationResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.GenerationResult), args.Error(1)
}

type MockChatService struct {
	mock.Mock
}

func (m *MockChatService) Chat(ctx context.Context, in service.ChatInput) (*service.ChatResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ChatResult), args.Error(1)
}

type MockHeadshotService struct {
	mock.Mock
}

func (m *MockHeadshotService) Generate(ctx context.Context, in service.HeadshotInput) (*service.HeadshotResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.HeadshotResult), args.Error(1)
}

type MockInsightService struct {
	mock.Mock
}

func (m *MockInsightService) Predict(ctx context.Context, in service.InsightInput) (*service.InsightResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.InsightResult), args.Error(1)
}

type MockAnalyticsService struct {
	mock.Mock
}

func (m *MockAnalyticsService) Realtime(ctx context.Context) (*model.RealtimeAnalytics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RealtimeAnalytics), args.Error(1)
}

func (m *MockAnalyticsService) Stats(ctx context.Context, from time.Time) (model.Stats, error) {
	args := m.Called(ctx, from)
	return args.Get(0).(model.Stats), args.Error(1)
}

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Generate(ctx context.Context, in service.ReportInput) (*service.GeneratedReport, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.GeneratedReport), args.Error(1)
}
