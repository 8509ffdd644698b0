package cardapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/spellforge/cardcrawl/internal/logger"
)

// Config configures a Client.
type Config struct {
	BaseURL     string
	Username    string
	Password    string
	Email       string
	DisplayName string
	Timeout     time.Duration
}

// Client talks to the card catalog API with a bearer token credential.
// It performs no internal retries; callers decide what a failure means.
type Client struct {
	http *resty.Client
	cfg  Config
	log  logger.Interface
}

// New creates a Client. The token is empty until Authenticate succeeds.
func New(cfg Config, log logger.Interface) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")

	return &Client{
		http: httpClient,
		cfg:  cfg,
		log:  log.WithComponent("cardapi"),
	}
}

// Authenticate obtains a bearer token: login first, and when the
// account does not exist yet, register and log in again. All later
// calls carry the token unchanged.
func (c *Client) Authenticate(ctx context.Context) error {
	token, loginErr := c.login(ctx)
	if loginErr == nil {
		c.http.SetAuthToken(token)
		return nil
	}

	c.log.Info("login failed, attempting registration", "username", c.cfg.Username)

	if registerErr := c.register(ctx); registerErr != nil {
		return fmt.Errorf("register: %w", registerErr)
	}

	token, loginErr = c.login(ctx)
	if loginErr != nil {
		return fmt.Errorf("login after registration: %w", loginErr)
	}

	c.http.SetAuthToken(token)
	return nil
}

// login exchanges the configured credentials for a token.
func (c *Client) login(ctx context.Context) (string, error) {
	var auth AuthResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(AuthRequest{Username: c.cfg.Username, Password: c.cfg.Password}).
		SetResult(&auth).
		Post("/auth/login")
	if err != nil {
		return "", fmt.Errorf("login request: %w", err)
	}

	if resp.StatusCode() != http.StatusOK || auth.Token == "" {
		return "", fmt.Errorf("login status %d: %w", resp.StatusCode(), ErrUnauthorized)
	}

	return auth.Token, nil
}

// register creates the import account.
func (c *Client) register(ctx context.Context) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(RegisterRequest{
			Username:    c.cfg.Username,
			Email:       c.cfg.Email,
			Password:    c.cfg.Password,
			DisplayName: c.cfg.DisplayName,
		}).
		Post("/auth/register")
	if err != nil {
		return fmt.Errorf("register request: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("register status %d: %w", resp.StatusCode(), ErrUnauthorized)
	}

	return nil
}

// CreateCard submits one record. A 2xx response is success; 4xx is a
// ValidationError carrying the rejected payload verbatim; anything
// else is a StatusError.
func (c *Client) CreateCard(ctx context.Context, req CreateCardRequest) (*Card, error) {
	var card Card

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&card).
		Post("/cards")
	if err != nil {
		return nil, fmt.Errorf("create card request: %w", err)
	}

	switch {
	case resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices:
		return &card, nil
	case resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden:
		return nil, fmt.Errorf("create card status %d: %w", resp.StatusCode(), ErrUnauthorized)
	case resp.StatusCode() >= http.StatusBadRequest && resp.StatusCode() < http.StatusInternalServerError:
		return nil, &ValidationError{
			StatusCode: resp.StatusCode(),
			Body:       resp.String(),
			Payload:    marshalPayload(req),
		}
	default:
		return nil, &StatusError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}
}

// ListCards fetches stored cards up to limit.
func (c *Client) ListCards(ctx context.Context, limit int) ([]Card, error) {
	var list ListCardsResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("limit", fmt.Sprintf("%d", limit)).
		SetResult(&list).
		Get("/cards")
	if err != nil {
		return nil, fmt.Errorf("list cards request: %w", err)
	}

	switch {
	case resp.StatusCode() == http.StatusOK:
		return list.Cards, nil
	case resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden:
		return nil, fmt.Errorf("list cards status %d: %w", resp.StatusCode(), ErrUnauthorized)
	default:
		return nil, &StatusError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}
}

// UpdateWeaponType sets the structured weapon type on a stored card.
func (c *Client) UpdateWeaponType(ctx context.Context, cardID, weaponType string) error {
	req := UpdateWeaponTypeRequest{WeaponType: weaponType}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		Put("/cards/" + cardID)
	if err != nil {
		return fmt.Errorf("update card request: %w", err)
	}

	switch {
	case resp.StatusCode() == http.StatusOK:
		return nil
	case resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden:
		return fmt.Errorf("update card status %d: %w", resp.StatusCode(), ErrUnauthorized)
	case resp.StatusCode() >= http.StatusBadRequest && resp.StatusCode() < http.StatusInternalServerError:
		return &ValidationError{
			StatusCode: resp.StatusCode(),
			Body:       resp.String(),
			Payload:    marshalPayload(req),
		}
	default:
		return &StatusError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}
}

// marshalPayload renders a request body for diagnostic logging.
func marshalPayload(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(data)
}
