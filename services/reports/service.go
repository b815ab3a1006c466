package reports

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/samber/mo"
	"github.com/shopspring/decimal"

	"github.com/Zcross091/torncity-bank-bot/clients"
	"github.com/Zcross091/torncity-bank-bot/core"
	"github.com/Zcross091/torncity-bank-bot/core/log"
	"github.com/Zcross091/torncity-bank-bot/models"
)

const (
	// LookbackWindow is how far back the report looks for transactions
	LookbackWindow = 60 * 24 * time.Hour
	// MaxEntries caps the number of transactions in a report, older matches are dropped
	MaxEntries = 25
)

// moneyKeywords select log entries that moved money, matched against the lower-cased title
var moneyKeywords = []string{"paid", "deposit", "withdraw", "sold", "received", "sent"}

var reportSelections = []string{models.SelectionLog, models.SelectionNetworth}

type ReportsService struct {
	tornClient clients.TornClient
	now        func() time.Time
}

func NewReportsService(tornClient clients.TornClient) *ReportsService {
	return &ReportsService{
		tornClient: tornClient,
		now:        time.Now,
	}
}

// NewReportsServiceWithClock is NewReportsService with a fixed time source
func NewReportsServiceWithClock(tornClient clients.TornClient, now func() time.Time) *ReportsService {
	return &ReportsService{
		tornClient: tornClient,
		now:        now,
	}
}

// BuildReport fetches log and networth in a single call and filters the log
// down to recent money transactions
func (s *ReportsService) BuildReport(ctx context.Context, record *models.UserRecord) (*models.Report, error) {
	log.Info("📋 Starting to build bank report for %s", record.PlayerName)

	tornUser, err := s.tornClient.FetchUserData(ctx, reportSelections, record.Key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrRemoteFetch, err)
	}

	now := s.now().UTC()
	report := &models.Report{
		PlayerName:  record.PlayerName,
		GeneratedAt: now,
		Entries:     FilterTransactions(tornUser.Log, now),
		Networth: mo.TupleToOption(
			tornUser.Networth.OrEmpty().Total,
			tornUser.Networth.IsPresent(),
		),
	}

	log.Info("📋 Completed successfully - built bank report with %d entries", len(report.Entries))
	return report, nil
}

// FilterTransactions keeps entries newer than now-LookbackWindow whose title
// mentions money, newest first, capped at MaxEntries
func FilterTransactions(entries map[string]models.TransactionEntry, now time.Time) []models.TransactionEntry {
	cutoff := now.Add(-LookbackWindow)

	filtered := make([]models.TransactionEntry, 0, len(entries))
	for id, entry := range entries {
		if time.Unix(entry.Timestamp, 0).Before(cutoff) {
			continue
		}
		if !isMoneyTransaction(entry.Title) {
			continue
		}
		entry.ID = id
		filtered = append(filtered, entry)
	}

	sort.Slice(filtered, func(i, j int) bool {
		if filtered[i].Timestamp != filtered[j].Timestamp {
			return filtered[i].Timestamp > filtered[j].Timestamp
		}
		return filtered[i].ID < filtered[j].ID
	})

	if len(filtered) > MaxEntries {
		filtered = filtered[:MaxEntries]
	}
	return filtered
}

func isMoneyTransaction(title string) bool {
	lowered := strings.ToLower(title)
	for _, keyword := range moneyKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

// networthDollars rounds a networth total to whole dollars, halves to even
func networthDollars(total decimal.Decimal) int64 {
	return total.RoundBank(0).IntPart()
}
