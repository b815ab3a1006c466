package models

import (
	"github.com/samber/mo"
	"github.com/shopspring/decimal"
)

// Torn API selections understood by the client
const (
	SelectionBasic    = "basic"
	SelectionLog      = "log"
	SelectionNetworth = "networth"
)

// TransactionEntry is one entry of the Torn user log
type TransactionEntry struct {
	ID        string `json:"-"`
	Timestamp int64  `json:"timestamp"`
	Title     string `json:"title"`
	Category  string `json:"category"`
}

type Networth struct {
	Total decimal.Decimal `json:"total"`
}

// TornUser is the parsed response of a /user call. Sections that were not
// requested or not returned are left empty.
type TornUser struct {
	PlayerID int64
	Name     string
	Log      map[string]TransactionEntry
	Networth mo.Option[Networth]
}
