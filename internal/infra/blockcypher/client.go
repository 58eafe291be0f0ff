// Package blockcypher implements the typed HTTP client for the BlockCypher
// REST API. Every domain-level request (wallets, transactions, forwarding
// addresses, webhook registrations) is translated into a call against the
// per-network base URL with the API token attached, and every response is
// decoded into an explicit struct rather than a loose map.
package blockcypher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-retryablehttp"

	transporthttp "github.com/satstack/paywatch/internal/pkg/transport/http"
)

// defaultBaseURL is the root of the provider's v1 API.
const defaultBaseURL = "https://api.blockcypher.com/v1"

// networkPath is the coin/chain pair forming a network's URL segments.
type networkPath struct {
	coin  string
	chain string
}

// networkPaths maps the network symbols accepted by the gateway to the
// coin/chain segments of the provider URL.
var networkPaths = map[string]networkPath{
	"btc":         {coin: "btc", chain: "main"},
	"btc-testnet": {coin: "btc", chain: "test3"},
	"ltc":         {coin: "ltc", chain: "main"},
	"doge":        {coin: "doge", chain: "main"},
	"dash":        {coin: "dash", chain: "main"},
	"bcy":         {coin: "bcy", chain: "test"},
}

// SupportedNetworks returns the network symbols the client can address.
func SupportedNetworks() []string {
	return []string{"btc", "btc-testnet", "ltc", "doge", "dash", "bcy"}
}

// Client issues requests against one network of the BlockCypher API.
type Client struct {
	baseURL string
	token   string
	http    *retryablehttp.Client
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying retryable HTTP client, e.g. to
// apply the configured provider timeout and retry knobs.
func WithHTTPClient(hc *retryablehttp.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithBaseURL overrides the provider root URL. Used by tests.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(base, "/") + c.baseURL[len(defaultBaseURL):]
	}
}

// New creates a client for the given network symbol. The token is attached
// as a query parameter on every request. It returns ErrUnsupportedNetwork
// for symbols outside the mapping and an error when no token is provided.
func New(network, token string, opts ...Option) (*Client, error) {
	np, ok := networkPaths[network]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedNetwork, network)
	}

	if token == "" {
		return nil, fmt.Errorf("blockcypher: api token is required")
	}

	c := &Client{
		baseURL: fmt.Sprintf("%s/%s/%s", defaultBaseURL, np.coin, np.chain),
		token:   token,
		http:    transporthttp.NewClient(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// do performs a single provider call: it builds the URL with the token and
// extra query parameters, encodes the optional body as JSON, classifies
// non-2xx statuses into the typed error taxonomy, and decodes the response
// into out when it is non-nil.
func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, body, out any) error {
	target, err := url.Parse(c.baseURL + "/" + strings.TrimPrefix(endpoint, "/"))
	if err != nil {
		return err
	}

	values := target.Query()
	values.Set("token", c.token)
	for key, params := range query {
		for _, param := range params {
			values.Add(key, param)
		}
	}
	target.RawQuery = values.Encode()

	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		payload = bytes.NewReader(encoded)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, target.String(), payload)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var detail apiError
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		_ = json.Unmarshal(raw, &detail)

		return classifyStatus(resp.StatusCode, detail.Error)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("blockcypher: decoding %s %s response: %w", method, endpoint, err)
	}

	return nil
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, endpoint, query, nil, out)
}

func (c *Client) post(ctx context.Context, endpoint string, body, out any) error {
	return c.do(ctx, http.MethodPost, endpoint, nil, body, out)
}

func (c *Client) delete(ctx context.Context, endpoint string, body any) error {
	return c.do(ctx, http.MethodDelete, endpoint, nil, body, nil)
}
