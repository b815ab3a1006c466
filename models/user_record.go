package models

// UserRecord links a Discord user to a Torn account. The JSON field names
// match the data file layout: {"<discord user id>": {"key": "...", "player": "..."}}
type UserRecord struct {
	Key        string `db:"api_key"     json:"key"`
	PlayerName string `db:"player_name" json:"player"`
}

// UserRecords is the full user id -> record mapping held by the store
type UserRecords map[string]UserRecord
