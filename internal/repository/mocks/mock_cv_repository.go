package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"coverapi/internal/model"
)

type MockCVRepository struct {
	mock.Mock
}

func (m *MockCVRepository) Create(ctx context.Context, cv *model.CVRecord) (*model.CVRecord, error) {
	args := m.Called(ctx, cv)
	var err error
	if f, ok := args.Get(1).(func(context.Context, *model.CVRecord) error); ok {
		err = f(ctx, cv)
	} else {
		err = args.Error(1)
	}
	if f, ok := args.Get(0).(func(context.Context, *model.CVRecord) *model.CVRecord); ok {
		return f(ctx, cv), err
	}
	if args.Get(0) == nil {
		return nil, err
	}
	return args.Get(0).(*model.CVRecord), err
}

func (m *MockCVRepository) FindByID(ctx context.Context, id string) (*model.CVRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CVRecord), args.Error(1)
}

func (m *MockCVRepository) List(ctx context.Context) ([]model.CVRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CVRecord), args.Error(1)
}
