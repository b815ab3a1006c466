package bank

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockBankUseCase is a mock implementation of the BankUseCaseInterface
type MockBankUseCase struct {
	mock.Mock
}

func (m *MockBankUseCase) RegisterKey(ctx context.Context, userID, apiKey string) (string, error) {
	args := m.Called(ctx, userID, apiKey)
	return args.String(0), args.Error(1)
}

func (m *MockBankUseCase) DeleteKey(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockBankUseCase) ViewReport(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}
