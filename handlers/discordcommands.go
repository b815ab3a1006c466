package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/gammazero/workerpool"

	"github.com/Zcross091/torncity-bank-bot/core"
	"github.com/Zcross091/torncity-bank-bot/core/log"
	"github.com/Zcross091/torncity-bank-bot/middleware"
	"github.com/Zcross091/torncity-bank-bot/usecases"
	"github.com/Zcross091/torncity-bank-bot/usecases/bank"
)

const (
	CommandKey       = "key"
	CommandDeleteKey = "deletekey"
	CommandBank      = "bank"

	optionAPIKey = "api_key"

	legacyBankPrefix   = "!bank"
	legacyReplyTimeout = 10 * time.Second
)

// commandFunc handles one slash command and returns the ephemeral reply
type commandFunc func(ctx context.Context, userID string, options map[string]string) (string, error)

type DiscordCommandsHandler struct {
	session         *discordgo.Session
	bankUseCase     usecases.BankUseCaseInterface
	alertMiddleware *middleware.ErrorAlertMiddleware
	guildID         string
	commands        map[string]commandFunc
	// commands run one at a time so the store sees one writer
	workerPool *workerpool.WorkerPool
}

func NewDiscordCommandsHandler(
	botToken string,
	guildID string,
	bankUseCase usecases.BankUseCaseInterface,
	alertMiddleware *middleware.ErrorAlertMiddleware,
) (*DiscordCommandsHandler, error) {
	session, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	handler := &DiscordCommandsHandler{
		session:         session,
		bankUseCase:     bankUseCase,
		alertMiddleware: alertMiddleware,
		guildID:         guildID,
		workerPool:      workerpool.New(1),
	}
	handler.commands = map[string]commandFunc{
		CommandKey:       handler.handleKeyCommand,
		CommandDeleteKey: handler.handleDeleteKeyCommand,
		CommandBank:      handler.handleBankCommand,
	}

	session.AddHandler(handler.handleReadyEvent)
	session.AddHandler(handler.handleInteractionCreatedEvent)
	session.AddHandler(handler.handleMessageCreatedEvent)

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages

	return handler, nil
}

// CommandDefinitions returns the slash commands the bot registers with Discord
func CommandDefinitions() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        CommandKey,
			Description: "Register your limited access Torn API key",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        optionAPIKey,
					Description: "Your limited access Torn API key",
					Required:    true,
				},
			},
		},
		{
			Name:        CommandDeleteKey,
			Description: "Remove your saved Torn API key",
		},
		{
			Name:        CommandBank,
			Description: "View your last 2 months of Torn money transactions",
		},
	}
}

// StartBot opens the Discord connection and starts listening for events
func (h *DiscordCommandsHandler) StartBot() error {
	if err := h.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}

	log.Info("🤖 Discord bot is now running and listening for commands")
	return nil
}

// StopBot waits for queued commands and closes the Discord connection
func (h *DiscordCommandsHandler) StopBot() {
	h.workerPool.StopWait()
	if err := h.session.Close(); err != nil {
		log.Warn("⚠️ Failed to close Discord session: %v", err)
	}
}

// HandleCommand runs the named command for the user and returns the reply text
func (h *DiscordCommandsHandler) HandleCommand(
	ctx context.Context,
	commandName, userID string,
	options map[string]string,
) (string, error) {
	command, ok := h.commands[commandName]
	if !ok {
		return "", fmt.Errorf("unknown command %q", commandName)
	}

	var reply string
	err := h.alertMiddleware.WrapCommandHandler(commandName, func() error {
		var err error
		reply, err = command(ctx, userID, options)
		return err
	})()
	if reply == "" {
		reply = bank.MsgSomethingWrong
	}
	return reply, err
}

func (h *DiscordCommandsHandler) handleKeyCommand(
	ctx context.Context,
	userID string,
	options map[string]string,
) (string, error) {
	return h.bankUseCase.RegisterKey(ctx, userID, options[optionAPIKey])
}

func (h *DiscordCommandsHandler) handleDeleteKeyCommand(
	ctx context.Context,
	userID string,
	_ map[string]string,
) (string, error) {
	return h.bankUseCase.DeleteKey(ctx, userID)
}

func (h *DiscordCommandsHandler) handleBankCommand(
	ctx context.Context,
	userID string,
	_ map[string]string,
) (string, error) {
	return h.bankUseCase.ViewReport(ctx, userID)
}

func (h *DiscordCommandsHandler) handleReadyEvent(s *discordgo.Session, r *discordgo.Ready) {
	log.Info("✅ Logged in as %s#%s", r.User.Username, r.User.Discriminator)

	registered, err := s.ApplicationCommandBulkOverwrite(r.User.ID, h.guildID, CommandDefinitions())
	if err != nil {
		log.Error("❌ Failed to register slash commands: %v", err)
		return
	}
	log.Info("✅ Commands synced (%d registered)", len(registered))
}

func (h *DiscordCommandsHandler) handleInteractionCreatedEvent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	data := i.ApplicationCommandData()
	userID := interactionUserID(i)
	commandID := core.NewID("cmd")
	logger := log.WithFields(map[string]any{
		"command_id": commandID,
		"command":    data.Name,
		"user_id":    userID,
	})
	logger.Info("📨 Slash command received")

	// Acknowledge right away, the reply is sent as a follow-up once the command
	// gets its turn in the worker pool
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		logger.WithError(err).Error("❌ Failed to acknowledge interaction")
		return
	}

	options := commandOptions(data.Options)
	h.workerPool.Submit(func() {
		start := time.Now()
		reply, err := h.HandleCommand(context.Background(), data.Name, userID, options)
		if err != nil {
			logger.WithError(err).Error("❌ Command failed")
		}

		_, err = s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
			Content: reply,
			Flags:   discordgo.MessageFlagsEphemeral,
		})
		if err != nil {
			logger.WithError(err).Error("❌ Failed to send command reply")
			return
		}
		logger.WithField("duration_ms", time.Since(start).Milliseconds()).Info("✅ Command completed")
	})
}

// handleMessageCreatedEvent points users of the old prefix command at /bank
func (h *DiscordCommandsHandler) handleMessageCreatedEvent(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || !isLegacyBankCommand(m.Content) {
		return
	}

	msg, err := s.ChannelMessageSend(m.ChannelID, bank.MsgUseSlashCommand)
	if err != nil {
		log.Error("❌ Failed to send slash command hint: %v", err)
		return
	}

	time.AfterFunc(legacyReplyTimeout, func() {
		if err := s.ChannelMessageDelete(msg.ChannelID, msg.ID); err != nil {
			log.Warn("⚠️ Failed to delete slash command hint: %v", err)
		}
	})
}

// interactionUserID returns the invoking user for both guild and DM interactions
func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func commandOptions(options []*discordgo.ApplicationCommandInteractionDataOption) map[string]string {
	values := make(map[string]string, len(options))
	for _, option := range options {
		if option.Type == discordgo.ApplicationCommandOptionString {
			values[option.Name] = option.StringValue()
		}
	}
	return values
}

func isLegacyBankCommand(content string) bool {
	fields := strings.Fields(strings.ToLower(content))
	return len(fields) > 0 && fields[0] == legacyBankPrefix
}
