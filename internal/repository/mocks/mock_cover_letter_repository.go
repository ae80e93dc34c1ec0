package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"coverapi/internal/model"
)

type MockCoverLetterRepository struct {
	mock.Mock
}

func (m *MockCoverLetterRepository) Create(ctx context.Context, l *model.CoverLetter) (*model.CoverLetter, error) {
	args := m.Called(ctx, l)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CoverLetter), args.Error(1)
}

func (m *MockCoverLetterRepository) List(ctx context.Context) ([]model.CoverLetter, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CoverLetter), args.Error(1)
}

func (m *MockCoverLetterRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
