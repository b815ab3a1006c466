package middleware

import (
	"context"
	"crypto/md5"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/slack-go/slack"

	"github.com/Zcross091/torncity-bank-bot/core/log"
)

type SlackAlertConfig struct {
	WebhookURL  string
	Environment string
	AppName     string
	LogsURL     string
}

type ErrorAlertMiddleware struct {
	config        SlackAlertConfig
	alertedErrors map[string]time.Time // hash -> last alert time
	mutex         sync.Mutex
	alertCooldown time.Duration
}

func NewErrorAlertMiddleware(config SlackAlertConfig) *ErrorAlertMiddleware {
	return &ErrorAlertMiddleware{
		config:        config,
		alertedErrors: make(map[string]time.Time),
		alertCooldown: 10 * time.Minute, // same error alerts at most once per 10min
	}
}

// HTTP Middleware - wraps HTTP handlers
func (m *ErrorAlertMiddleware) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer m.recoverAndAlert(fmt.Sprintf("HTTP %s %s", r.Method, r.URL.Path))
		next.ServeHTTP(w, r)
	})
}

// WrapCommandHandler reports errors and panics raised while handling a bot command
func (m *ErrorAlertMiddleware) WrapCommandHandler(commandName string, handler func() error) func() error {
	return func() error {
		defer m.recoverAndAlert(fmt.Sprintf("Command /%s", commandName))

		if err := handler(); err != nil {
			m.alertOnError(err, fmt.Sprintf("Command /%s", commandName))
			return err
		}
		return nil
	}
}

func (m *ErrorAlertMiddleware) alertOnError(err error, context string) {
	errorMsg := fmt.Sprintf("%s: %v", context, err)
	hash := fmt.Sprintf("%x", md5.Sum([]byte(errorMsg)))

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if lastAlert, exists := m.alertedErrors[hash]; exists {
		if time.Since(lastAlert) < m.alertCooldown {
			return
		}
	}

	go m.sendSlackAlert(errorMsg, context)
	m.alertedErrors[hash] = time.Now()
}

func (m *ErrorAlertMiddleware) recoverAndAlert(context string) {
	if r := recover(); r != nil {
		errorMsg := fmt.Sprintf("%s: PANIC - %v", context, r)
		log.Error("❌ %s", errorMsg)
		go m.sendSlackAlert(errorMsg, context+" (PANIC)")
	}
}

func (m *ErrorAlertMiddleware) sendSlackAlert(errorMsg, alertContext string) {
	if m.config.WebhookURL == "" {
		return // Slack alerts disabled
	}

	envPrefix := ""
	if m.config.Environment == "dev" {
		envPrefix = "[dev] "
	}

	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject(
			slack.PlainTextType,
			fmt.Sprintf("🚨 %s[%s] Error Alert", envPrefix, m.config.AppName),
			true,
			false,
		)),
		slack.NewSectionBlock(nil, []*slack.TextBlockObject{
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Service:* %s", m.config.AppName), false, false),
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Environment:* %s", m.config.Environment), false, false),
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Context:* %s", alertContext), false, false),
		}, nil),
		slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Error:*\n```%s```", errorMsg), false, false),
			nil,
			nil,
		),
	}
	if m.config.LogsURL != "" {
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("🔗 <%s|View Logs>", m.config.LogsURL), false, false),
			nil,
			nil,
		))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	msg := &slack.WebhookMessage{
		Text:   errorMsg,
		Blocks: &slack.Blocks{BlockSet: blocks},
	}
	if err := slack.PostWebhookContext(ctx, m.config.WebhookURL, msg); err != nil {
		log.Error("❌ Failed to send Slack alert: %v", err)
	}
}
