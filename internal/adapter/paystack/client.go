package paystack

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/darkahs/storefront/internal/domain/model"
)

var (
	// ErrMissingSecret indicates the gateway credential is not configured.
	// This is a configuration fault, not a verification failure.
	ErrMissingSecret = errors.New("paystack secret is not configured")

	// ErrUnavailable indicates a transport problem talking to the gateway.
	// The caller may retry verification later; no order is created.
	ErrUnavailable = errors.New("payment gateway unavailable")

	// ErrBadResponse indicates the gateway returned an undecodable body.
	ErrBadResponse = errors.New("malformed gateway response")
)

// RejectedError reports a definitive non-success transaction outcome.
type RejectedError struct {
	Status  string
	Message string
}

func (e RejectedError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("payment rejected: %s", e.Message)
	}
	return fmt.Sprintf("payment status: %s", e.Status)
}

// Client exposes operations to query the payment gateway.
type Client interface {
	Verify(ctx context.Context, reference string) (*model.Payment, error)
}

// HTTPClient implements Client via the Paystack verification API.
type HTTPClient struct {
	baseURL    *url.URL
	secret     string
	httpClient *http.Client
	logger     *slog.Logger
}

// verifyResponse mirrors the JSON envelope returned by the gateway.
type verifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status    string          `json:"status"`
		Reference string          `json:"reference"`
		Amount    int64           `json:"amount"`
		Metadata  json.RawMessage `json:"metadata"`
	} `json:"data"`
}

// NewHTTPClient creates a gateway client with a bounded request timeout.
func NewHTTPClient(baseURL, secret string, timeout time.Duration, logger *slog.Logger) (*HTTPClient, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse gateway url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("gateway url must be absolute")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL: parsed,
		secret:  secret,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Verify asks the gateway for the authoritative outcome of a transaction.
// It never persists anything; a rejected or unreachable verification leaves
// no trace beyond the log.
func (c *HTTPClient) Verify(ctx context.Context, reference string) (*model.Payment, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/transaction/verify/", reference)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.secret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	// The gateway answers unknown references and failed charges with the
	// same envelope shape, so decode before looking at the status code.
	var data verifyResponse
	if err := json.Unmarshal(body, &data); err != nil {
		c.logger.Error("gateway response not decodable",
			slog.Int("status", resp.StatusCode),
			slog.String("reference", reference),
		)
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	if !data.Status {
		return nil, RejectedError{Message: data.Message}
	}
	if data.Data.Status != model.PaymentStatusSuccess {
		return nil, RejectedError{Status: data.Data.Status}
	}

	payment := &model.Payment{
		Reference:   data.Data.Reference,
		Status:      data.Data.Status,
		AmountMinor: data.Data.Amount,
		Metadata:    data.Data.Metadata,
	}
	if payment.Reference == "" {
		payment.Reference = reference
	}
	return payment, nil
}
