package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// ErrMissingAPIKey is returned before any outbound call when the client
// was constructed without a credential.
var ErrMissingAPIKey = errors.New("exchange rate api key is not configured")

// ResultError means the provider answered with a parseable JSON body whose
// result field is not "success". Body carries the upstream payload verbatim
// for diagnosis.
type ResultError struct {
	Result string
	Body   json.RawMessage
}

func (e *ResultError) Error() string {
	return fmt.Sprintf("upstream returned non-success result %q", e.Result)
}

// Client calls the exchange-rate provider with a server-held credential.
// Error messages never include the request URL, which embeds the key.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
}

func NewClient(httpClient *http.Client, baseURL, apiKey string) *Client {
	return &Client{
		http:    httpClient,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
	}
}

// SupportedCodes fetches the provider's currency catalog and returns the
// response body verbatim.
func (c *Client) SupportedCodes(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "codes")
}

// LatestRates fetches the latest rate table for the given base currency
// and returns the response body verbatim.
func (c *Client) LatestRates(ctx context.Context, base string) (json.RawMessage, error) {
	return c.get(ctx, "latest/"+base)
}

type envelope struct {
	Result string `json:"result"`
}

func (c *Client) get(ctx context.Context, subpath string) (json.RawMessage, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	u, err := url.Parse(c.baseURL + "/" + c.apiKey + "/" + subpath)
	if err != nil {
		return nil, fmt.Errorf("failed to build upstream URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create upstream request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request failed: %w", redactKey(err, c.apiKey))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read upstream response: %w", err)
	}

	// The provider reports errors as JSON with a non-success result and a
	// non-2xx status. Anything that does not decode is a transport-class
	// failure regardless of status.
	var env envelope
	if jsonErr := json.Unmarshal(body, &env); jsonErr != nil {
		return nil, fmt.Errorf("failed to decode upstream response (status %d): %w", resp.StatusCode, jsonErr)
	}
	if env.Result != "success" {
		return nil, &ResultError{Result: env.Result, Body: json.RawMessage(body)}
	}
	return json.RawMessage(body), nil
}

// redactKey strips the credential from transport errors, which embed the
// full request URL.
func redactKey(err error, key string) error {
	msg := strings.ReplaceAll(err.Error(), key, "***")
	return errors.New(msg)
}
