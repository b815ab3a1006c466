package reports

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/Zcross091/torncity-bank-bot/models"
)

const (
	timestampLayout    = "2006-01-02 15:04"
	noTransactionsLine = "No relevant money transactions found in the past 2 months."
)

// RenderReport formats a report as a Discord markdown message
func (s *ReportsService) RenderReport(report *models.Report) string {
	return RenderReport(report)
}

func RenderReport(report *models.Report) string {
	lines := []string{
		fmt.Sprintf("💳 **%s's Bank Report (Last 2 Months)**", report.PlayerName),
		"",
	}

	if len(report.Entries) == 0 {
		lines = append(lines, noTransactionsLine)
	}
	for _, entry := range report.Entries {
		lines = append(lines, renderEntry(entry))
	}

	if total, ok := report.Networth.Get(); ok {
		lines = append(lines, "", fmt.Sprintf("💰 **Networth:** $%s", humanize.Comma(networthDollars(total))))
	}

	return strings.Join(lines, "\n")
}

func renderEntry(entry models.TransactionEntry) string {
	timestamp := time.Unix(entry.Timestamp, 0).UTC().Format(timestampLayout)
	if entry.Category == "" {
		return fmt.Sprintf("• **%s** — %s", timestamp, entry.Title)
	}
	return fmt.Sprintf("• **%s** — %s (%s)", timestamp, entry.Title, entry.Category)
}
