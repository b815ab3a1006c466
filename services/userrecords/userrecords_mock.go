package userrecords

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"github.com/Zcross091/torncity-bank-bot/models"
)

// MockUserRecordsService is a mock implementation of the UserRecordsService interface
type MockUserRecordsService struct {
	mock.Mock
}

func (m *MockUserRecordsService) Register(ctx context.Context, userID, apiKey string) (*models.UserRecord, error) {
	args := m.Called(ctx, userID, apiKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserRecord), args.Error(1)
}

func (m *MockUserRecordsService) Delete(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRecordsService) GetUserRecord(
	ctx context.Context,
	userID string,
) (mo.Option[*models.UserRecord], error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(mo.Option[*models.UserRecord]), args.Error(1)
}

// MockUserRecordsRepository is a mock implementation of the UserRecordsRepository interface
type MockUserRecordsRepository struct {
	mock.Mock
}

func (m *MockUserRecordsRepository) GetUserRecord(
	ctx context.Context,
	userID string,
) (mo.Option[*models.UserRecord], error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(mo.Option[*models.UserRecord]), args.Error(1)
}

func (m *MockUserRecordsRepository) UpsertUserRecord(ctx context.Context, userID string, record models.UserRecord) error {
	args := m.Called(ctx, userID, record)
	return args.Error(0)
}

func (m *MockUserRecordsRepository) DeleteUserRecord(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}
