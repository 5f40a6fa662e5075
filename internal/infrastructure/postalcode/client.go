// Package postalcode resolves Brazilian postal codes (CEP) to addresses
// through the ViaCEP web service.
package postalcode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/optica/backend/internal/domain/shared/mask"
	"github.com/optica/backend/internal/domain/shared/valueobject"
)

const maxResponseBytes = 64 << 10

// Client queries the lookup service. Every call issues one independent
// request; there is no retry and no cache. Safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

// NewClient creates a new lookup client
func NewClient(cfg *Config, logger *zap.Logger, opts ...Option) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{},
		logger:     logger.Named("postalcode"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Lookup returns the address for code, or nil when there is no result for
// any reason. Failures are logged, never returned.
func (c *Client) Lookup(ctx context.Context, code string) *valueobject.Address {
	r := c.Resolve(ctx, code)
	if !r.Found() {
		return nil
	}
	return r.Address
}

// Resolve looks code up and reports which of the three outcomes occurred.
// Codes without exactly 8 digits are not-found without any request.
func (c *Client) Resolve(ctx context.Context, code string) Result {
	digits := mask.Unmask(code)
	if len(digits) != mask.KindPostalCode.MaxDigits() {
		return Result{Status: StatusNotFound, Err: ErrInvalidCode}
	}

	body, err := c.fetch(ctx, digits)
	if err != nil {
		c.logger.Warn("postal code lookup failed",
			zap.String("cep", digits),
			zap.Error(err),
		)
		return Result{Status: StatusUnavailable, Err: err}
	}

	if body.Erro {
		c.logger.Debug("postal code not found", zap.String("cep", digits))
		return Result{Status: StatusNotFound}
	}

	addr, err := toAddress(digits, body)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		c.logger.Warn("postal code lookup returned an unusable address",
			zap.String("cep", digits),
			zap.Error(err),
		)
		return Result{Status: StatusUnavailable, Err: err}
	}

	return Result{Status: StatusFound, Address: &addr}
}

func (c *Client) fetch(ctx context.Context, digits string) (*viaCEPResponse, error) {
	endpoint := c.baseURL + "/ws/" + digits + "/json/"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("postalcode: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return nil, fmt.Errorf("%w: HTTP %d", ErrServiceUnavailable, resp.StatusCode)
	}

	var body viaCEPResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return &body, nil
}

func toAddress(digits string, body *viaCEPResponse) (valueobject.Address, error) {
	cep := mask.Unmask(body.CEP)
	if cep == "" {
		cep = digits
	}
	return valueobject.NewAddress(body.Logradouro, body.Bairro, body.Localidade, body.UF,
		valueobject.WithComplement(body.Complemento),
		valueobject.WithPostalCode(cep),
	)
}
