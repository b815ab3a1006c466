package bank

import (
	"context"
	"errors"
	"fmt"

	"github.com/Zcross091/torncity-bank-bot/core"
	"github.com/Zcross091/torncity-bank-bot/core/log"
	"github.com/Zcross091/torncity-bank-bot/models"
	"github.com/Zcross091/torncity-bank-bot/services"
)

// User facing replies
const (
	MsgInvalidKey      = "❌ Invalid Torn API key. Please check and try again."
	MsgKeySavedFormat  = "✅ Your API key has been saved, **%s**!"
	MsgKeyRemoved      = "🗑️ Your Torn API key has been removed."
	MsgNoKeySaved      = "⚠️ You don't have an API key saved."
	MsgRegisterFirst   = "⚠️ You must register first using `/key <your_torn_api_key>`"
	MsgFetchFailed     = "❌ Failed to fetch Torn logs. Try again later."
	MsgSomethingWrong  = "❌ Something went wrong, please try again later."
	MsgUseSlashCommand = "⚠️ Please use the slash command `/bank` instead."
)

// BankUseCase handles the key registration and bank report commands
type BankUseCase struct {
	userRecordsService services.UserRecordsService
	reportsService     services.ReportsService
}

func NewBankUseCase(
	userRecordsService services.UserRecordsService,
	reportsService services.ReportsService,
) *BankUseCase {
	return &BankUseCase{
		userRecordsService: userRecordsService,
		reportsService:     reportsService,
	}
}

// RegisterKey validates and stores the user's API key. A rejected key is a
// normal reply, not an error; the returned error is reserved for failures the
// user cannot fix.
func (u *BankUseCase) RegisterKey(ctx context.Context, userID, apiKey string) (string, error) {
	record, err := u.userRecordsService.Register(ctx, userID, apiKey)
	if err != nil {
		if errors.Is(err, core.ErrInvalidCredential) {
			return MsgInvalidKey, nil
		}
		log.Error("❌ Failed to register API key for user %s: %v", userID, err)
		return MsgSomethingWrong, err
	}

	return fmt.Sprintf(MsgKeySavedFormat, record.PlayerName), nil
}

func (u *BankUseCase) DeleteKey(ctx context.Context, userID string) (string, error) {
	deleted, err := u.userRecordsService.Delete(ctx, userID)
	if err != nil {
		log.Error("❌ Failed to delete API key for user %s: %v", userID, err)
		return MsgSomethingWrong, err
	}

	if !deleted {
		return MsgNoKeySaved, nil
	}
	return MsgKeyRemoved, nil
}

// ViewReport renders the user's bank report. Unregistered users are told to
// register and no Torn call is made.
func (u *BankUseCase) ViewReport(ctx context.Context, userID string) (string, error) {
	record, err := u.registeredRecord(ctx, userID)
	if err != nil {
		if errors.Is(err, core.ErrNotRegistered) {
			return MsgRegisterFirst, nil
		}
		log.Error("❌ Failed to look up API key for user %s: %v", userID, err)
		return MsgSomethingWrong, err
	}

	report, err := u.reportsService.BuildReport(ctx, record)
	if err != nil {
		if errors.Is(err, core.ErrRemoteFetch) {
			log.Warn("⚠️ Failed to fetch Torn data for user %s: %v", userID, err)
			return MsgFetchFailed, nil
		}
		log.Error("❌ Failed to build report for user %s: %v", userID, err)
		return MsgSomethingWrong, err
	}

	return u.reportsService.RenderReport(report), nil
}

// registeredRecord returns the stored record or core.ErrNotRegistered
func (u *BankUseCase) registeredRecord(ctx context.Context, userID string) (*models.UserRecord, error) {
	maybeRecord, err := u.userRecordsService.GetUserRecord(ctx, userID)
	if err != nil {
		return nil, err
	}

	record, ok := maybeRecord.Get()
	if !ok {
		return nil, fmt.Errorf("%w: user %s", core.ErrNotRegistered, userID)
	}
	return record, nil
}
