package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// TokenSource yields the current bearer token, read fresh on every request
// so a token swapped by login/logout is picked up immediately.
type TokenSource func() (string, bool)

// Client talks to the shopping-list HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	token     TokenSource
}

const (
	defaultUserAgent      = "superlist/0.1"
	defaultRequestTimeout = 10 * time.Second
)

// NewClient builds a Client for the given server URL. token may be nil for
// a client that only performs the unauthenticated auth endpoints.
func NewClient(serverURL string, token TokenSource, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(serverURL)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
		token:     token,
	}, nil
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	return c.authenticate(ctx, "/auth/login", email, password)
}

// Register creates an account and returns its bearer token.
func (c *Client) Register(ctx context.Context, email, password string) (string, error) {
	return c.authenticate(ctx, "/auth/register", email, password)
}

func (c *Client) authenticate(ctx context.Context, path, email, password string) (string, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var payload struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, path, body, &payload); err != nil {
		return "", err
	}
	if payload.Token == "" {
		return "", &Error{Message: "server returned no token"}
	}
	return payload.Token, nil
}

// ListLists retrieves the caller's lists in server order.
func (c *Client) ListLists(ctx context.Context) ([]ListSummary, error) {
	var payload []ListSummary
	if err := c.do(ctx, http.MethodGet, "/lists/", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// CreateList creates a list and returns the server's view of it.
func (c *Client) CreateList(ctx context.Context, name string, totalValue float64, ownerID int64) (*ListSummary, error) {
	body := struct {
		Name       string  `json:"name"`
		TotalValue float64 `json:"totalValue"`
		UserID     int64   `json:"userId,omitempty"`
	}{Name: name, TotalValue: totalValue, UserID: ownerID}

	var payload ListSummary
	if err := c.do(ctx, http.MethodPost, "/lists/", body, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// UpdateList replaces a list's mutable fields and returns the updated summary.
func (c *Client) UpdateList(ctx context.Context, id int64, fields ListFields) (*ListSummary, error) {
	var payload ListSummary
	if err := c.do(ctx, http.MethodPut, "/lists/"+strconv.FormatInt(id, 10), fields, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// DeleteList removes a list and all of its products.
func (c *Client) DeleteList(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/lists/"+strconv.FormatInt(id, 10), nil, nil)
}

// GetListDetail retrieves one list's metadata together with its products.
func (c *Client) GetListDetail(ctx context.Context, id int64) (*ListDetail, error) {
	var payload ListDetail
	if err := c.do(ctx, http.MethodGet, "/lists/list/"+strconv.FormatInt(id, 10), nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// CreateProduct adds a product to a list.
func (c *Client) CreateProduct(ctx context.Context, listID, ownerID int64, fields ProductFields) (*Product, error) {
	body := struct {
		Name     string  `json:"name"`
		Price    float64 `json:"price"`
		Quantity int     `json:"quantity"`
		ListID   int64   `json:"listId"`
		UserID   int64   `json:"userId"`
	}{Name: fields.Name, Price: fields.Price, Quantity: fields.Quantity, ListID: listID, UserID: ownerID}

	var payload Product
	if err := c.do(ctx, http.MethodPost, "/products/", body, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// UpdateProduct replaces a product's mutable fields.
func (c *Client) UpdateProduct(ctx context.Context, id int64, fields ProductFields) (*Product, error) {
	var payload Product
	if err := c.do(ctx, http.MethodPut, "/products/"+strconv.FormatInt(id, 10), fields, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// DeleteProduct removes a product from its list.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/products/"+strconv.FormatInt(id, 10), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	rel := &url.URL{Path: path}
	reqURL := c.baseURL.ResolveReference(rel)

	var reqBody *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != nil {
		if token, ok := c.token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Message: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeError extracts the server's message from an error response body.
// Servers in the wild use either {"message": ...} or {"error": ...}.
func decodeError(resp *http.Response) error {
	var payload struct {
		Message string `json:"message"`
		Err     string `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&payload)

	message := payload.Message
	if message == "" {
		message = payload.Err
	}
	return &Error{Status: resp.StatusCode, Message: message}
}

func parseBaseURL(serverURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(serverURL)
	if trimmed == "" {
		return nil, fmt.Errorf("server url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse server url %q: %w", serverURL, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
