package mock

import (
	"context"
	"io"

	"billed/pkg/types"

	"github.com/stretchr/testify/mock"
)

type Backend struct {
	mock.Mock
}

func (m *Backend) Get(ctx context.Context) ([]types.Bill, error) {
	args := m.Called(ctx)
	bills, _ := args.Get(0).([]types.Bill)
	return bills, args.Error(1)
}

func (m *Backend) Post(ctx context.Context, bill *types.Bill) ([]types.Bill, error) {
	args := m.Called(ctx, bill)
	bills, _ := args.Get(0).([]types.Bill)
	return bills, args.Error(1)
}

func (m *Backend) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	args := m.Called(ctx, key, body, contentType)
	return args.String(0), args.Error(1)
}
