package models

import (
	"time"

	"github.com/samber/mo"
	"github.com/shopspring/decimal"
)

// Report is the filtered bank digest shown by /bank
type Report struct {
	PlayerName  string
	GeneratedAt time.Time
	Entries     []TransactionEntry
	Networth    mo.Option[decimal.Decimal]
}
