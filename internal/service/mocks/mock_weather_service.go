package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"weatherapp/internal/model"
)

type MockWeatherService struct {
	mock.Mock
}

func (m *MockWeatherService) Lookup(ctx context.Context, city string) (*model.Report, error) {
	args := m.Called(ctx, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Report), args.Error(1)
}
