package reports

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/samber/mo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tornclient "github.com/Zcross091/torncity-bank-bot/clients/torn"
	"github.com/Zcross091/torncity-bank-bot/core"
	"github.com/Zcross091/torncity-bank-bot/models"
)

var testNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

const day = 24 * time.Hour

func entryAt(title string, age time.Duration) models.TransactionEntry {
	return models.TransactionEntry{
		Timestamp: testNow.Add(-age).Unix(),
		Title:     title,
		Category:  "Money",
	}
}

func setupReportsTest() (*ReportsService, *tornclient.MockTornClient) {
	tornClient := new(tornclient.MockTornClient)
	return NewReportsServiceWithClock(tornClient, func() time.Time { return testNow }), tornClient
}

func TestFilterTransactions_KeywordAndWindow(t *testing.T) {
	entries := map[string]models.TransactionEntry{
		"a": entryAt("Received payment", 1*day),
		"b": entryAt("Joined faction", 1*day),
		"c": entryAt("Paid bounty", 90*day),
		"d": entryAt("Bank DEPOSIT", 3*day),
		"e": entryAt("Item sold", 59*day),
		"f": entryAt("Money sent", 61*day),
	}

	filtered := FilterTransactions(entries, testNow)

	ids := make([]string, 0, len(filtered))
	for _, entry := range filtered {
		ids = append(ids, entry.ID)
	}
	assert.Equal(t, []string{"a", "d", "e"}, ids)
}

func TestFilterTransactions_CutoffIsInclusive(t *testing.T) {
	entries := map[string]models.TransactionEntry{
		"edge": entryAt("Withdraw from vault", LookbackWindow),
	}

	filtered := FilterTransactions(entries, testNow)

	require.Len(t, filtered, 1)
	assert.Equal(t, "edge", filtered[0].ID)
}

func TestFilterTransactions_SubSecondClockExcludesEntryPastCutoff(t *testing.T) {
	entries := map[string]models.TransactionEntry{
		"edge":  entryAt("Withdraw from vault", LookbackWindow),
		"fresh": entryAt("Withdraw from vault", LookbackWindow-time.Second),
	}

	filtered := FilterTransactions(entries, testNow.Add(700*time.Millisecond))

	require.Len(t, filtered, 1)
	assert.Equal(t, "fresh", filtered[0].ID)
}

func TestFilterTransactions_SortedNewestFirstAndCapped(t *testing.T) {
	entries := map[string]models.TransactionEntry{}
	for i := 0; i < 40; i++ {
		entries[fmt.Sprintf("id-%02d", i)] = entryAt("Received money", time.Duration(i)*time.Hour)
	}
	entries["old"] = entryAt("Received money", 70*day)

	filtered := FilterTransactions(entries, testNow)

	require.Len(t, filtered, MaxEntries)
	assert.Equal(t, "id-00", filtered[0].ID)
	assert.Equal(t, "id-24", filtered[MaxEntries-1].ID)
	seen := map[string]bool{}
	for i, entry := range filtered {
		assert.False(t, seen[entry.ID], "entry %s appears twice", entry.ID)
		seen[entry.ID] = true
		if i > 0 {
			assert.GreaterOrEqual(t, filtered[i-1].Timestamp, entry.Timestamp)
		}
	}
}

func TestFilterTransactions_Empty(t *testing.T) {
	assert.Empty(t, FilterTransactions(nil, testNow))
}

func TestReportsService_BuildReport(t *testing.T) {
	service, tornClient := setupReportsTest()
	ctx := context.Background()
	record := &models.UserRecord{Key: "key", PlayerName: "Chedburn"}

	tornClient.On("FetchUserData", ctx, []string{"log", "networth"}, "key").Return(&models.TornUser{
		Log: map[string]models.TransactionEntry{
			"a": entryAt("Received payment", 1*day),
			"b": entryAt("Joined faction", 1*day),
		},
		Networth: mo.Some(models.Networth{Total: decimal.NewFromFloat(1234567.6)}),
	}, nil)

	report, err := service.BuildReport(ctx, record)

	require.NoError(t, err)
	assert.Equal(t, "Chedburn", report.PlayerName)
	assert.Equal(t, testNow, report.GeneratedAt)
	require.Len(t, report.Entries, 1)
	assert.Equal(t, "Received payment", report.Entries[0].Title)
	total, ok := report.Networth.Get()
	require.True(t, ok)
	assert.True(t, decimal.NewFromFloat(1234567.6).Equal(total))
	tornClient.AssertExpectations(t)
}

func TestReportsService_BuildReport_MissingSections(t *testing.T) {
	service, tornClient := setupReportsTest()
	ctx := context.Background()

	tornClient.On("FetchUserData", ctx, []string{"log", "networth"}, "key").Return(&models.TornUser{}, nil)

	report, err := service.BuildReport(ctx, &models.UserRecord{Key: "key", PlayerName: "P"})

	require.NoError(t, err)
	assert.Empty(t, report.Entries)
	assert.True(t, report.Networth.IsAbsent())

	rendered := service.RenderReport(report)
	assert.Contains(t, rendered, "No relevant money transactions found in the past 2 months.")
	assert.NotContains(t, rendered, "Networth")
}

func TestReportsService_BuildReport_FetchFailure(t *testing.T) {
	service, tornClient := setupReportsTest()
	ctx := context.Background()
	cause := &core.HTTPStatusError{StatusCode: 502, Body: "bad gateway"}

	tornClient.On("FetchUserData", ctx, []string{"log", "networth"}, "key").Return(nil, cause)

	report, err := service.BuildReport(ctx, &models.UserRecord{Key: "key", PlayerName: "P"})

	assert.Nil(t, report)
	assert.ErrorIs(t, err, core.ErrRemoteFetch)
	assert.ErrorIs(t, err, cause)
}

func TestRenderReport(t *testing.T) {
	report := &models.Report{
		PlayerName: "Chedburn",
		Entries: []models.TransactionEntry{
			{ID: "a", Timestamp: time.Date(2026, 10, 18, 9, 5, 0, 0, time.UTC).Unix(), Title: "Received payment", Category: "Money"},
			{ID: "b", Timestamp: time.Date(2026, 10, 1, 23, 59, 0, 0, time.UTC).Unix(), Title: "Bank deposit"},
		},
		Networth: mo.Some(decimal.RequireFromString("9876543.5")),
	}

	expected := strings.Join([]string{
		"💳 **Chedburn's Bank Report (Last 2 Months)**",
		"",
		"• **2026-10-18 09:05** — Received payment (Money)",
		"• **2026-10-01 23:59** — Bank deposit",
		"",
		"💰 **Networth:** $9,876,544",
	}, "\n")

	assert.Equal(t, expected, RenderReport(report))
}

func TestNetworthDollars_RoundsHalfToEven(t *testing.T) {
	tests := []struct {
		total    string
		expected int64
	}{
		{total: "2.5", expected: 2},
		{total: "3.5", expected: 4},
		{total: "1234566.5", expected: 1234566},
		{total: "1234567.49", expected: 1234567},
		{total: "1234567.51", expected: 1234568},
	}

	for _, tt := range tests {
		t.Run(tt.total, func(t *testing.T) {
			assert.Equal(t, tt.expected, networthDollars(decimal.RequireFromString(tt.total)))
		})
	}
}

func TestRenderReport_NoTransactionsWithNetworth(t *testing.T) {
	report := &models.Report{
		PlayerName: "P",
		Networth:   mo.Some(decimal.NewFromInt(0)),
	}

	expected := strings.Join([]string{
		"💳 **P's Bank Report (Last 2 Months)**",
		"",
		"No relevant money transactions found in the past 2 months.",
		"",
		"💰 **Networth:** $0",
	}, "\n")

	assert.Equal(t, expected, RenderReport(report))
}
