// Package client is a Go SDK for the dockit API. It attaches the
// bearer token in one place, decodes the response envelope, and keeps
// the current session in a snapshot store callers can subscribe to.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var (
	ErrUnauthorized = errors.New("client: unauthorized")
	ErrForbidden    = errors.New("client: forbidden")
	ErrNotFound     = errors.New("client: not found")
	ErrConflict     = errors.New("client: conflict")
)

// APIError carries the server's message for statuses without a
// dedicated sentinel.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("client: api error %d: %s", e.Status, e.Message)
}

type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Type     string `json:"type"`
	Company  string `json:"company"`
	Verified bool   `json:"verified"`
}

type Ship struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	DWT         int      `json:"dwt"`
	CurrentPort string   `json:"currentPort"`
	Owner       string   `json:"owner"`
	Images      []string `json:"images"`
	OwnerID     int64    `json:"ownerId"`
}

type Match struct {
	ID        int64     `json:"id"`
	ShipID    int64     `json:"shipId"`
	UserID    int64     `json:"userId"`
	CargoID   *int64    `json:"cargoId"`
	Status    string    `json:"status"`
	MatchedAt time.Time `json:"matchedAt"`
	Ship      *Ship     `json:"ship,omitempty"`
}

type Client struct {
	base     string
	http     *http.Client
	sessions *SessionStore
	tokens   TokenStore
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTokenStore persists the bearer token across processes.
func WithTokenStore(ts TokenStore) Option {
	return func(c *Client) { c.tokens = ts }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		base:     strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: 15 * time.Second},
		sessions: NewSessionStore(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Sessions exposes the snapshot store for subscriptions.
func (c *Client) Sessions() *SessionStore { return c.sessions }

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// do performs one API call. The bearer token, when a session is
// active, is attached here and nowhere else.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s, ok := c.sessions.Current(); ok {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()

	var env envelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		return fmt.Errorf("client: decoding response: %w", err)
	}
	if res.StatusCode >= 400 {
		switch res.StatusCode {
		case http.StatusUnauthorized:
			return ErrUnauthorized
		case http.StatusForbidden:
			return ErrForbidden
		case http.StatusNotFound:
			return ErrNotFound
		case http.StatusConflict:
			return ErrConflict
		}
		return &APIError{Status: res.StatusCode, Message: env.Message}
	}
	if out != nil && env.Data != nil {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}

type authPayload struct {
	User      User      `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type RegisterParams struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Type     string `json:"type"`
	Company  string `json:"company,omitempty"`
}

func (c *Client) Register(ctx context.Context, p RegisterParams) (User, error) {
	var payload authPayload
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", p, &payload); err != nil {
		return User{}, err
	}
	c.startSession(payload)
	return payload.User, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (User, error) {
	var payload authPayload
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &payload); err != nil {
		return User{}, err
	}
	c.startSession(payload)
	return payload.User, nil
}

func (c *Client) startSession(p authPayload) {
	c.sessions.Set(Session{User: p.User, Token: p.Token, ExpiresAt: p.ExpiresAt})
	if c.tokens != nil {
		_ = c.tokens.Save(p.Token)
	}
}

// Restore replays a persisted token against the profile endpoint. An
// invalid or stale token is discarded rather than kept around.
func (c *Client) Restore(ctx context.Context) (User, error) {
	if c.tokens == nil {
		return User{}, ErrUnauthorized
	}
	token, err := c.tokens.Load()
	if err != nil || token == "" {
		return User{}, ErrUnauthorized
	}
	c.sessions.Set(Session{Token: token})

	var payload struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &payload); err != nil {
		c.sessions.Clear()
		_ = c.tokens.Clear()
		return User{}, err
	}
	if s, ok := c.sessions.Current(); ok {
		c.sessions.Set(Session{User: payload.User, Token: s.Token, ExpiresAt: s.ExpiresAt})
	}
	return payload.User, nil
}

func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
	c.sessions.Clear()
	if c.tokens != nil {
		_ = c.tokens.Clear()
	}
	return err
}

func (c *Client) Me(ctx context.Context) (User, error) {
	var payload struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &payload); err != nil {
		return User{}, err
	}
	return payload.User, nil
}

type ShipFilters struct {
	Type   string
	MinDWT int
	MaxDWT int
	Port   string
}

func (c *Client) Ships(ctx context.Context, f ShipFilters) ([]Ship, error) {
	q := url.Values{}
	if f.Type != "" {
		q.Set("type", f.Type)
	}
	if f.MinDWT > 0 {
		q.Set("minDwt", strconv.Itoa(f.MinDWT))
	}
	if f.MaxDWT > 0 {
		q.Set("maxDwt", strconv.Itoa(f.MaxDWT))
	}
	if f.Port != "" {
		q.Set("port", f.Port)
	}
	path := "/api/ships"
	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}

	var ships []Ship
	if err := c.do(ctx, http.MethodGet, path, nil, &ships); err != nil {
		return nil, err
	}
	return ships, nil
}

type CreateShipParams struct {
	Name              string         `json:"name"`
	Type              string         `json:"type"`
	DWT               int            `json:"dwt"`
	CurrentPort       string         `json:"currentPort"`
	NextAvailableDate string         `json:"nextAvailableDate"`
	Lat               float64        `json:"lat,omitempty"`
	Lng               float64        `json:"lng,omitempty"`
	Images            []string       `json:"images,omitempty"`
	Specifications    map[string]any `json:"specifications,omitempty"`
	RatePerDay        *int           `json:"ratePerDay,omitempty"`
}

// CreateShip lists a vessel under the authenticated shipowner.
func (c *Client) CreateShip(ctx context.Context, p CreateShipParams) (Ship, error) {
	var ship Ship
	if err := c.do(ctx, http.MethodPost, "/api/ships", p, &ship); err != nil {
		return Ship{}, err
	}
	return ship, nil
}

// Swipe records interest in a ship, the write behind the swipe deck.
func (c *Client) Swipe(ctx context.Context, shipID int64, cargoID *int64) (Match, error) {
	body := map[string]any{"shipId": shipID}
	if cargoID != nil {
		body["cargoId"] = *cargoID
	}
	var m Match
	if err := c.do(ctx, http.MethodPost, "/api/matches", body, &m); err != nil {
		return Match{}, err
	}
	return m, nil
}

func (c *Client) MyMatches(ctx context.Context) ([]Match, error) {
	var matches []Match
	if err := c.do(ctx, http.MethodGet, "/api/matches/my", nil, &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

func (c *Client) UpdateMatchStatus(ctx context.Context, matchID int64, status string) (Match, error) {
	var m Match
	path := "/api/matches/" + strconv.FormatInt(matchID, 10) + "/status"
	if err := c.do(ctx, http.MethodPut, path, map[string]string{"status": status}, &m); err != nil {
		return Match{}, err
	}
	return m, nil
}
