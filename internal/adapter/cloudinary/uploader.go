package cloudinary

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/darkahs/storefront/internal/pkg/metrics"
	"github.com/darkahs/storefront/internal/pkg/retry"
)

// ErrNotConfigured indicates no upload endpoint was provided.
var ErrNotConfigured = errors.New("image host is not configured")

// uploadFolder groups product images on the image host.
const uploadFolder = "darkahs_product_images"

// Uploader pushes an image to the external image host and returns its URL.
type Uploader interface {
	Upload(ctx context.Context, data []byte, filename string) (string, error)
}

// HTTPUploader implements Uploader against the Cloudinary upload API.
// Transient upload failures are retried per the injected policy.
type HTTPUploader struct {
	endpoint   *url.URL
	httpClient *http.Client
	policy     retry.Policy
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// uploadResponse mirrors the JSON payload from the image host.
type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// NewHTTPUploader creates an uploader for the given endpoint.
func NewHTTPUploader(endpoint string, policy retry.Policy, logger *slog.Logger, m *metrics.Metrics) (*HTTPUploader, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse upload url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("upload url must be absolute")
	}
	return &HTTPUploader{
		endpoint: parsed,
		policy:   policy,
		logger:   logger,
		metrics:  m,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// Upload pushes image bytes to the host, retrying per the policy.
func (u *HTTPUploader) Upload(ctx context.Context, data []byte, filename string) (string, error) {
	var (
		hostedURL string
		attempt   int
	)
	err := u.policy.Do(ctx, func() error {
		attempt++
		if attempt > 1 {
			u.metrics.UploadRetried()
			u.logger.Info("retrying image upload",
				slog.String("filename", filename),
				slog.Int("attempt", attempt),
			)
		}
		result, err := u.uploadOnce(ctx, data, filename)
		if err != nil {
			return err
		}
		hostedURL = result
		return nil
	})
	if err != nil {
		u.metrics.UploadFailed()
		return "", fmt.Errorf("upload %s: %w", filename, err)
	}
	return hostedURL, nil
}

func (u *HTTPUploader) uploadOnce(ctx context.Context, data []byte, filename string) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	if err := writer.WriteField("folder", uploadFolder); err != nil {
		return "", err
	}
	if err := writer.WriteField("public_id", filename); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint.String(), &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var result uploadResponse
	if err := json.Unmarshal(payload, &result); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || result.SecureURL == "" {
		if result.Error.Message != "" {
			return "", fmt.Errorf("image host: %s", result.Error.Message)
		}
		return "", fmt.Errorf("image host: %s", resp.Status)
	}
	return result.SecureURL, nil
}

// Disabled is an Uploader used when no image host is configured.
type Disabled struct{}

func (Disabled) Upload(context.Context, []byte, string) (string, error) {
	return "", ErrNotConfigured
}
