// Package cartapi implements typed clients for the storefront backend
// endpoints the engine consumes: server cart mutation and fetch, promo
// validation, and order submission. Responses are validated at the
// boundary and failures are classified into pkg/errors codes.
package cartapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/adilzhan-dev/orda-storefront/pkg/config"
	pkgerrors "github.com/adilzhan-dev/orda-storefront/pkg/errors"
	"github.com/adilzhan-dev/orda-storefront/pkg/session"
	"github.com/go-playground/validator/v10"
)

const errorBodyReadLimit int64 = 1024

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// Client talks to the storefront backend over JSON/HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     *session.TokenStore
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient builds the backend client. tokens may be nil for flows that
// never authenticate.
func NewClient(cfg config.APIConfig, tokens *session.TokenStore, opts ...Option) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("api base url is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	client := &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		tokens:     tokens,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

// AddToCart adds (or, with a negative quantity, decrements) a server cart line.
func (c *Client) AddToCart(ctx context.Context, req AddToCartRequest) error {
	return c.do(ctx, http.MethodPost, "/cart/items", req, nil)
}

// RemoveFromCart drops a server cart line.
func (c *Client) RemoveFromCart(ctx context.Context, req RemoveFromCartRequest) error {
	return c.do(ctx, http.MethodDelete, "/cart/items", req, nil)
}

// FetchCart returns the authoritative server cart.
func (c *Client) FetchCart(ctx context.Context) (*FetchCartResponse, error) {
	var resp FetchCartResponse
	if err := c.do(ctx, http.MethodGet, "/cart", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ValidatePromo validates a normalized promo code. Rejections are typed:
// CodeNotFound for unknown codes, CodeConflict for codes this user already
// redeemed, CodeValidation for any other rejection.
func (c *Client) ValidatePromo(ctx context.Context, req ValidatePromoRequest) (*ValidatePromoResponse, error) {
	var resp ValidatePromoResponse
	if err := c.doClassified(ctx, http.MethodPost, "/promo/validate", req, &resp, classifyPromoStatus); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SubmitOrder creates the order from the checkout payload.
func (c *Client) SubmitOrder(ctx context.Context, payload OrderPayload) (*SubmitOrderResponse, error) {
	if err := validate.Struct(payload); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order payload")
	}
	var resp SubmitOrderResponse
	if err := c.do(ctx, http.MethodPost, "/orders", payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	return c.doClassified(ctx, method, path, body, dest, classifyStatus)
}

func (c *Client) doClassified(ctx context.Context, method, path string, body, dest any, classify func(int, string) error) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "cart api client not configured")
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marshal request")
		}
		reader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build request")
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token, ok := c.tokens.Token(ctx); ok {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("execute %s %s", method, path))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		return classify(resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode response")
	}
	if err := validate.Struct(dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "malformed response")
	}
	return nil
}

func classifyStatus(status int, body string) error {
	cause := fmt.Errorf("status %d: %s", status, body)
	switch {
	case status == http.StatusUnauthorized:
		return pkgerrors.Wrap(pkgerrors.CodeUnauthorized, cause, "request rejected")
	case status == http.StatusNotFound:
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, cause, "resource not found")
	case status == http.StatusConflict:
		return pkgerrors.Wrap(pkgerrors.CodeConflict, cause, "request conflicted")
	case status >= http.StatusBadRequest && status < http.StatusInternalServerError:
		return pkgerrors.Wrap(pkgerrors.CodeValidation, cause, "request invalid")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, cause, "backend unavailable")
}

func classifyPromoStatus(status int, body string) error {
	cause := fmt.Errorf("status %d: %s", status, body)
	switch {
	case status == http.StatusNotFound:
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, cause, "promo code not found")
	case status == http.StatusConflict:
		return pkgerrors.Wrap(pkgerrors.CodeConflict, cause, "promo code already used")
	case status >= http.StatusBadRequest && status < http.StatusInternalServerError:
		return pkgerrors.Wrap(pkgerrors.CodeValidation, cause, "promo code invalid")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, cause, "promo validation unavailable")
}
