package usecases

import "context"

// BankUseCaseInterface maps the bot's slash commands onto user-facing replies
type BankUseCaseInterface interface {
	RegisterKey(ctx context.Context, userID, apiKey string) (string, error)
	DeleteKey(ctx context.Context, userID string) (string, error)
	ViewReport(ctx context.Context, userID string) (string, error)
}
