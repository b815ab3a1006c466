package clients

import (
	"context"

	"github.com/Zcross091/torncity-bank-bot/models"
)

// TornClient fetches user data from the Torn API
type TornClient interface {
	FetchUserData(ctx context.Context, selections []string, apiKey string) (*models.TornUser, error)
}
