// Package client talks to the catalog API: public listing fetches, admin
// login, and bearer-authenticated mutations. It also owns the persisted
// session.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wh33les/HusbandsGames/internal/catalog"
)

// requestTimeout bounds every API call so a hung server cannot leave the
// UI loading forever.
const requestTimeout = 15 * time.Second

// Client is the API client. It restores any persisted session at
// construction time and keeps it in memory afterwards.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      *SessionStore
	session    *Session
	log        *logrus.Entry
}

// New creates a client for the given base URL and restores the persisted
// session, if any.
func New(baseURL string, store *SessionStore) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: requestTimeout},
		store:      store,
		log:        logrus.WithField("component", "api_client"),
	}
	if store != nil {
		c.session = store.Restore()
	}
	return c
}

// Session returns the active session, or nil when logged out.
func (c *Client) Session() *Session {
	return c.session
}

// IsAdmin reports whether a session is active.
func (c *Client) IsAdmin() bool {
	return c.session != nil
}

// FetchAll loads the full listing. On success the caller replaces its
// entire local record set with the result; there is no merging.
func (c *Client) FetchAll(ctx context.Context) ([]catalog.Game, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/games/", nil)
	if err != nil {
		return nil, fmt.Errorf("build listing request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch games: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Status: resp.StatusCode}
	}

	var games []catalog.Game
	if err := json.NewDecoder(resp.Body).Decode(&games); err != nil {
		return nil, fmt.Errorf("decode games listing: %w", err)
	}
	return games, nil
}

// Login authenticates and persists the session. Any non-2xx response
// reports the same ErrInvalidCredentials regardless of the cause.
func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	body, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		return nil, fmt.Errorf("encode login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.WithError(err).Warn("Login request failed")
		return nil, ErrInvalidCredentials
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, ErrInvalidCredentials
	}

	var loginResp struct {
		AccessToken string `json:"access_token"`
		User        User   `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil || loginResp.AccessToken == "" {
		c.log.WithError(err).Warn("Login response malformed")
		return nil, ErrInvalidCredentials
	}

	session := Session{Token: loginResp.AccessToken, User: loginResp.User}
	if c.store != nil {
		if err := c.store.Save(session); err != nil {
			return nil, fmt.Errorf("persist session: %w", err)
		}
	}
	c.session = &session
	return &session, nil
}

// Logout drops the session from memory and durable storage. The token is
// simply discarded; the server keeps no session state to revoke.
func (c *Client) Logout() {
	c.session = nil
	if c.store != nil {
		c.store.Clear()
	}
}

// Form carries the raw field inputs of an add or edit. Numeric fields
// stay text until validated; empty means "not provided".
type Form struct {
	Title       string
	Platform    string
	Genre       string
	ReleaseYear string
	Price       string
	Region      string
	Publisher   string
	Opened      bool
}

// gamePayload is the mutation body: the record fields minus id and
// created_at, which only the server assigns. Opened is always explicit
// because a boolean has no empty form representation.
type gamePayload struct {
	Title       string   `json:"title"`
	Platform    *string  `json:"platform,omitempty"`
	Genre       *string  `json:"genre,omitempty"`
	ReleaseYear *int     `json:"release_year,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Region      *string  `json:"region,omitempty"`
	Publisher   *string  `json:"publisher,omitempty"`
	Opened      bool     `json:"opened"`
}

func (f Form) payload() (gamePayload, error) {
	p := gamePayload{
		Title:     strings.TrimSpace(f.Title),
		Platform:  optString(f.Platform),
		Genre:     optString(f.Genre),
		Region:    optString(f.Region),
		Publisher: optString(f.Publisher),
		Opened:    f.Opened,
	}
	if year := strings.TrimSpace(f.ReleaseYear); year != "" {
		n, err := strconv.Atoi(year)
		if err != nil {
			return p, fmt.Errorf("release year must be a number: %q", year)
		}
		p.ReleaseYear = &n
	}
	if price := strings.TrimSpace(f.Price); price != "" {
		v, err := strconv.ParseFloat(price, 64)
		if err != nil {
			return p, fmt.Errorf("price must be a number: %q", price)
		}
		p.Price = &v
	}
	return p, nil
}

func optString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Create posts a new record. Any client-side id is structurally
// impossible to send; the server assigns id and created_at and the
// returned record is what the caller appends to its local set.
func (c *Client) Create(ctx context.Context, form Form) (*catalog.Game, error) {
	payload, err := form.payload()
	if err != nil {
		return nil, err
	}
	if payload.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	return c.mutate(ctx, http.MethodPost, c.baseURL+"/admin/games", "create", payload)
}

// Update merges the form over the existing record and sends the full
// field set: a non-empty form value wins, an empty one falls back to the
// stored value, so omitting a field never erases it. The returned record
// replaces the local copy in place.
func (c *Client) Update(ctx context.Context, existing catalog.Game, form Form) (*catalog.Game, error) {
	payload, err := form.payload()
	if err != nil {
		return nil, err
	}
	if payload.Title == "" {
		payload.Title = existing.Title
	}
	if payload.Platform == nil {
		payload.Platform = existing.Platform
	}
	if payload.Genre == nil {
		payload.Genre = existing.Genre
	}
	if payload.ReleaseYear == nil {
		payload.ReleaseYear = existing.ReleaseYear
	}
	if payload.Price == nil {
		payload.Price = existing.Price
	}
	if payload.Region == nil {
		payload.Region = existing.Region
	}
	if payload.Publisher == nil {
		payload.Publisher = existing.Publisher
	}

	url := fmt.Sprintf("%s/admin/games/%d", c.baseURL, existing.ID)
	return c.mutate(ctx, http.MethodPut, url, "update", payload)
}

// Delete removes a record. Callers must have confirmed with the user
// before calling; on success they filter the id out of the local set.
func (c *Client) Delete(ctx context.Context, id int64) error {
	if !c.IsAdmin() {
		return ErrNotAdmin
	}

	url := fmt.Sprintf("%s/admin/games/%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("build delete request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.session.Token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &MutationError{Op: "delete", Status: resp.StatusCode, Body: readBody(resp.Body)}
	}
	return nil
}

func (c *Client) mutate(ctx context.Context, method, url, op string, payload gamePayload) (*catalog.Game, error) {
	if !c.IsAdmin() {
		return nil, ErrNotAdmin
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.session.Token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s game: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &MutationError{Op: op, Status: resp.StatusCode, Body: readBody(resp.Body)}
	}

	var game catalog.Game
	if err := json.NewDecoder(resp.Body).Decode(&game); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", op, err)
	}
	return &game, nil
}

func readBody(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(raw))
}
