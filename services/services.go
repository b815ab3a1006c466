package services

import (
	"context"

	"github.com/samber/mo"

	"github.com/Zcross091/torncity-bank-bot/models"
)

// UserRecordsRepository is the key-value contract every user record backend implements
type UserRecordsRepository interface {
	GetUserRecord(ctx context.Context, userID string) (mo.Option[*models.UserRecord], error)
	UpsertUserRecord(ctx context.Context, userID string, record models.UserRecord) error
	DeleteUserRecord(ctx context.Context, userID string) (bool, error)
}

// UserRecordsService defines the interface for API key registration
type UserRecordsService interface {
	Register(ctx context.Context, userID, apiKey string) (*models.UserRecord, error)
	Delete(ctx context.Context, userID string) (bool, error)
	GetUserRecord(ctx context.Context, userID string) (mo.Option[*models.UserRecord], error)
}

// ReportsService defines the interface for bank report generation
type ReportsService interface {
	BuildReport(ctx context.Context, record *models.UserRecord) (*models.Report, error)
	RenderReport(report *models.Report) string
}
