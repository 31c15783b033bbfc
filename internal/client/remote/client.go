// Package remote is the HTTP client for the Vitrine service: JSON bodies, a
// fixed per-request deadline with cancellation, and typed failures so
// callers can tell a timeout from a rejection from a transport error. No
// retries at this layer; callers degrade instead.
package remote

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
	"sync"
	"time"

	"github.com/vitrine-app/vitrine/internal/client/models"
	"github.com/vitrine-app/vitrine/internal/logging"
)

// DefaultTimeout is the fixed per-request budget; the request is cancelled
// when it elapses.
const DefaultTimeout = 8 * time.Second

// ErrTimeout marks a request cancelled by the deadline, distinct from a
// server rejection or a generic transport failure. Match with errors.Is.
var ErrTimeout = errors.New("network timeout")

// StatusError is a non-2xx response, carrying the status code.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server rejected request: %s", e.Status)
}

// Client issues requests against the service base URL.
type Client struct {
	baseURL string
	http    *http.Client
	log     logging.Logger

	// Timeout is the per-request budget. Defaults to DefaultTimeout.
	Timeout time.Duration

	mu    sync.Mutex
	token string
}

func New(baseURL string, log logging.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		log:     log,
		Timeout: DefaultTimeout,
	}
}

// SetToken installs the bearer token attached to subsequent requests; an
// empty token clears it.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) bearer() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%s %s: %w", method, path, ErrTimeout)
		}
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Ping probes reachability; any response, even a rejection, means the
// service is reachable.
func (c *Client) Ping(ctx context.Context) error {
	err := c.do(ctx, http.MethodGet, "/feed", nil, nil, nil)
	var se *StatusError
	if errors.As(err, &se) {
		return nil
	}
	return err
}

// Bulk public reads used by background sync.

func (c *Client) Feed(ctx context.Context) ([]models.Exhibit, error) {
	var out []models.Exhibit
	if err := c.do(ctx, http.MethodGet, "/feed", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Users(ctx context.Context) ([]models.UserProfile, error) {
	var out []models.UserProfile
	if err := c.do(ctx, http.MethodGet, "/users", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Wishlist(ctx context.Context) ([]models.WishlistItem, error) {
	var out []models.WishlistItem
	if err := c.do(ctx, http.MethodGet, "/wishlist", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Collections(ctx context.Context) ([]models.Collection, error) {
	var out []models.Collection
	if err := c.do(ctx, http.MethodGet, "/collections", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Guestbook(ctx context.Context) ([]models.GuestbookEntry, error) {
	var out []models.GuestbookEntry
	if err := c.do(ctx, http.MethodGet, "/guestbook", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UserSync is the per-user supplementary payload of GET /sync.
type UserSync struct {
	Users       []models.UserProfile `json:"users"`
	Collections []models.Collection  `json:"collections"`
}

func (c *Client) SyncForUser(ctx context.Context, username string) (*UserSync, error) {
	var out UserSync
	q := url.Values{"username": {username}}
	if err := c.do(ctx, http.MethodGet, "/sync", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Private per-user reads.

func (c *Client) Notifications(ctx context.Context, username string) ([]models.Notification, error) {
	var out []models.Notification
	q := url.Values{"username": {username}}
	if err := c.do(ctx, http.MethodGet, "/notifications", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Messages(ctx context.Context, username string) ([]models.Message, error) {
	var out []models.Message
	q := url.Values{"username": {username}}
	if err := c.do(ctx, http.MethodGet, "/messages", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Upsert propagation for mutated entities.

func (c *Client) PushExhibit(ctx context.Context, e *models.Exhibit) error {
	return c.do(ctx, http.MethodPost, "/exhibits", nil, e, nil)
}

func (c *Client) PushCollection(ctx context.Context, v *models.Collection) error {
	return c.do(ctx, http.MethodPost, "/collections", nil, v, nil)
}

func (c *Client) PushUser(ctx context.Context, v *models.UserProfile) error {
	return c.do(ctx, http.MethodPost, "/users", nil, v, nil)
}

func (c *Client) PushWishlistItem(ctx context.Context, v *models.WishlistItem) error {
	return c.do(ctx, http.MethodPost, "/wishlist", nil, v, nil)
}

func (c *Client) PushGuestbookEntry(ctx context.Context, v *models.GuestbookEntry) error {
	return c.do(ctx, http.MethodPost, "/guestbook", nil, v, nil)
}

func (c *Client) PushMessage(ctx context.Context, v *models.Message) error {
	return c.do(ctx, http.MethodPost, "/messages", nil, v, nil)
}

func (c *Client) PushNotification(ctx context.Context, v *models.Notification) error {
	return c.do(ctx, http.MethodPost, "/notifications", nil, v, nil)
}

// Deletion propagation.

func (c *Client) DropExhibit(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/exhibits/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) DropCollection(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/collections/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) DropWishlistItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/wishlist/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) DropGuestbookEntry(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/guestbook/"+url.PathEscape(id), nil, nil, nil)
}

// Detail fetches used to upgrade lite records.

func (c *Client) ExhibitDetail(ctx context.Context, id string) (*models.Exhibit, error) {
	var out models.Exhibit
	if err := c.do(ctx, http.MethodGet, "/exhibits/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	out.Lite = false
	return &out, nil
}

func (c *Client) CollectionDetail(ctx context.Context, id string) (*models.Collection, error) {
	var out models.Collection
	if err := c.do(ctx, http.MethodGet, "/collections/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
