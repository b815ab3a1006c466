package torn

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/samber/mo"

	"github.com/Zcross091/torncity-bank-bot/clients"
	"github.com/Zcross091/torncity-bank-bot/core"
	"github.com/Zcross091/torncity-bank-bot/core/log"
	"github.com/Zcross091/torncity-bank-bot/models"
)

const (
	DefaultAPIBaseURL = "https://api.torn.com"
	DefaultComment    = "bankbot"
)

// TornClient implements the clients.TornClient interface
type TornClient struct {
	httpClient *http.Client
	baseURL    string
	// comment is sent with every request and shows up in the key owner's API access log
	comment string
}

// NewTornClient creates a new Torn API client
func NewTornClient(httpClient *http.Client, baseURL, comment string) clients.TornClient {
	if baseURL == "" {
		baseURL = DefaultAPIBaseURL
	}
	if comment == "" {
		comment = DefaultComment
	}
	return &TornClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		comment:    comment,
	}
}

// userResponse mirrors the parts of the /user payload we read.
// Log is kept raw because Torn sends [] instead of {} for an empty log.
type userResponse struct {
	Error    *core.TornAPIError `json:"error"`
	PlayerID int64              `json:"player_id"`
	Name     string             `json:"name"`
	Log      json.RawMessage    `json:"log"`
	Networth *models.Networth   `json:"networth"`
}

// FetchUserData issues a single GET /user/ call for the given selections.
// Non-200 responses return a *core.HTTPStatusError, error payloads a *core.TornAPIError.
func (c *TornClient) FetchUserData(
	ctx context.Context,
	selections []string,
	apiKey string,
) (*models.TornUser, error) {
	log.Debug("📋 Starting to fetch Torn user data with selections %v", selections)

	query := url.Values{}
	query.Set("selections", strings.Join(selections, ","))
	query.Set("key", apiKey)
	query.Set("comment", c.comment)
	requestURL := c.baseURL + "/user/?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Torn request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// *url.Error carries the full request URL, key included
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, fmt.Errorf("failed to execute Torn request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read Torn response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &core.HTTPStatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var payload userResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode Torn response: %w", err)
	}

	if payload.Error != nil {
		return nil, payload.Error
	}

	entries, err := decodeLog(payload.Log)
	if err != nil {
		return nil, err
	}

	user := &models.TornUser{
		PlayerID: payload.PlayerID,
		Name:     payload.Name,
		Log:      entries,
		Networth: mo.PointerToOption(payload.Networth),
	}

	log.Debug("📋 Completed successfully - fetched Torn user data with %d log entries", len(entries))
	return user, nil
}

func decodeLog(raw json.RawMessage) (map[string]models.TransactionEntry, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		// absent, null or the empty-array form
		return map[string]models.TransactionEntry{}, nil
	}

	entries := map[string]models.TransactionEntry{}
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode Torn log: %w", err)
	}

	for id, entry := range entries {
		entry.ID = id
		entries[id] = entry
	}
	return entries, nil
}
