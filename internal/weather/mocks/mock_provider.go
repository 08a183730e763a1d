package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"weatherapp/internal/weather"
)

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Current(ctx context.Context, city string) (*weather.Observation, error) {
	args := m.Called(ctx, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*weather.Observation), args.Error(1)
}
