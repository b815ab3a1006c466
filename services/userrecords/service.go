package userrecords

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/mo"

	"github.com/Zcross091/torncity-bank-bot/clients"
	"github.com/Zcross091/torncity-bank-bot/core"
	"github.com/Zcross091/torncity-bank-bot/core/log"
	"github.com/Zcross091/torncity-bank-bot/models"
	"github.com/Zcross091/torncity-bank-bot/services"
)

const unknownPlayerName = "Unknown"

type UserRecordsService struct {
	repo       services.UserRecordsRepository
	tornClient clients.TornClient
}

func NewUserRecordsService(repo services.UserRecordsRepository, tornClient clients.TornClient) *UserRecordsService {
	return &UserRecordsService{
		repo:       repo,
		tornClient: tornClient,
	}
}

// Register validates the API key against Torn and stores it for the user,
// replacing any key registered before. Nothing is stored if validation fails.
func (s *UserRecordsService) Register(ctx context.Context, userID, apiKey string) (*models.UserRecord, error) {
	log.Info("📋 Starting to register API key for user %s", userID)

	if userID == "" {
		return nil, fmt.Errorf("user_id cannot be empty")
	}

	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, fmt.Errorf("%w: api key cannot be empty", core.ErrInvalidCredential)
	}

	tornUser, err := s.tornClient.FetchUserData(ctx, []string{models.SelectionBasic}, apiKey)
	if err != nil {
		log.Warn("⚠️ Torn rejected API key for user %s: %v", userID, err)
		return nil, fmt.Errorf("%w: %w", core.ErrInvalidCredential, err)
	}

	playerName := tornUser.Name
	if playerName == "" {
		playerName = unknownPlayerName
	}

	record := models.UserRecord{
		Key:        apiKey,
		PlayerName: playerName,
	}
	if err := s.repo.UpsertUserRecord(ctx, userID, record); err != nil {
		return nil, fmt.Errorf("failed to store user record: %w", err)
	}

	log.Info("📋 Completed successfully - registered API key for user %s as %s", userID, playerName)
	return &record, nil
}

// Delete removes the user's record. It reports whether anything was removed.
func (s *UserRecordsService) Delete(ctx context.Context, userID string) (bool, error) {
	log.Info("📋 Starting to delete API key for user %s", userID)

	if userID == "" {
		return false, fmt.Errorf("user_id cannot be empty")
	}

	deleted, err := s.repo.DeleteUserRecord(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete user record: %w", err)
	}

	log.Info("📋 Completed successfully - deleted=%t for user %s", deleted, userID)
	return deleted, nil
}

func (s *UserRecordsService) GetUserRecord(ctx context.Context, userID string) (mo.Option[*models.UserRecord], error) {
	if userID == "" {
		return mo.None[*models.UserRecord](), fmt.Errorf("user_id cannot be empty")
	}

	maybeRecord, err := s.repo.GetUserRecord(ctx, userID)
	if err != nil {
		return mo.None[*models.UserRecord](), fmt.Errorf("failed to get user record: %w", err)
	}
	return maybeRecord, nil
}
