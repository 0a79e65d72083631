// Package cloudsync backs up the state document to a Supabase table over the
// PostgREST API. An unconfigured client is valid and performs no requests, so
// the rest of the application never needs to know whether sync is enabled.
package cloudsync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/akoskinen/liftblock/internal/plan"
)

const tableName = "liftblock_data"

type row struct {
	ProfileID string          `json:"profile_id"`
	StateData json.RawMessage `json:"state_data"`
	UpdatedAt string          `json:"updated_at"`
}

// Client talks to a Supabase project's REST endpoint with the anon key.
type Client struct {
	baseURL string
	anonKey string
	http    *http.Client
	logger  *slog.Logger
}

// New creates a sync client. Empty baseURL or anonKey yields an unconfigured
// client whose methods are no-ops.
func New(baseURL, anonKey string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		anonKey: anonKey,
		http:    &http.Client{Timeout: 15 * time.Second},
		logger:  logger,
	}
}

// Configured reports whether the client has credentials.
func (c *Client) Configured() bool {
	return c.baseURL != "" && c.anonKey != ""
}

// ProfileID returns the document's sync identity, minting and storing a new
// anonymous UUID on first use.
func ProfileID(st *plan.State) string {
	if st.SyncUserID == "" {
		st.SyncUserID = uuid.NewString()
	}
	return st.SyncUserID
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/rest/v1/"+path, body)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+c.anonKey)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// Push upserts the state document keyed by its sync identity.
func (c *Client) Push(ctx context.Context, st *plan.State) error {
	if !c.Configured() {
		return nil
	}

	document, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	payload, err := json.Marshal(row{
		ProfileID: ProfileID(st),
		StateData: document,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("encode row: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, tableName+"?on_conflict=profile_id", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Prefer", "resolution=merge-duplicates")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("push state: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.LogAttrs(ctx, slog.LevelWarn, "close response body", slog.Any("error", err))
		}
	}()
	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("push state: %s: %s", resp.Status, detail)
	}

	c.logger.LogAttrs(ctx, slog.LevelDebug, "pushed state to cloud",
		slog.String("profileId", st.SyncUserID))
	return nil
}

// Pull fetches the cloud copy of the document with the given sync identity.
// A missing row returns plan.ErrNotFound.
func (c *Client) Pull(ctx context.Context, profileID string) (*plan.State, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("cloud sync is not configured")
	}

	query := url.Values{
		"select":     {"state_data,updated_at"},
		"profile_id": {"eq." + profileID},
		"limit":      {"1"},
	}
	req, err := c.newRequest(ctx, http.MethodGet, tableName+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pull state: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.LogAttrs(ctx, slog.LevelWarn, "close response body", slog.Any("error", err))
		}
	}()
	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("pull state: %s: %s", resp.Status, detail)
	}

	var rows []row
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no cloud data for profile %s: %w", profileID, plan.ErrNotFound)
	}

	var st plan.State
	if err := json.Unmarshal(rows[0].StateData, &st); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	st.SyncUserID = profileID
	st.Normalize()
	return &st, nil
}
