package reports

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Zcross091/torncity-bank-bot/models"
)

// MockReportsService is a mock implementation of the ReportsService interface
type MockReportsService struct {
	mock.Mock
}

func (m *MockReportsService) BuildReport(ctx context.Context, record *models.UserRecord) (*models.Report, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Report), args.Error(1)
}

func (m *MockReportsService) RenderReport(report *models.Report) string {
	args := m.Called(report)
	return args.String(0)
}
