package torn

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Zcross091/torncity-bank-bot/models"
)

// MockTornClient implements the clients.TornClient interface for testing
type MockTornClient struct {
	mock.Mock
}

func (m *MockTornClient) FetchUserData(
	ctx context.Context,
	selections []string,
	apiKey string,
) (*models.TornUser, error) {
	args := m.Called(ctx, selections, apiKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TornUser), args.Error(1)
}
