package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// DefaultEndpoint is where the classification service listens by default.
const DefaultEndpoint = "http://127.0.0.1:5000/predict"

// ErrNoResults is returned when a 2xx response carries null instead of an array.
var ErrNoResults = errors.New("decode response: classification service returned null")

// StatusError reports a response outside the 2xx range.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("classification service returned %s", e.Status)
}

// Client posts email bodies to the classification service.
type Client struct {
	endpoint string
	http     *http.Client
	logger   *zap.Logger
}

// NewClient returns a client for endpoint. A nil httpClient means
// http.DefaultClient; there is no request timeout beyond ctx.
func NewClient(endpoint string, httpClient *http.Client, logger *zap.Logger) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{endpoint: endpoint, http: httpClient, logger: logger}
}

// Endpoint returns the URL requests are posted to.
func (c *Client) Endpoint() string { return c.endpoint }

// Classify sends emails in a single request and returns whatever the service
// answered. The result count is not checked against len(emails).
func (c *Client) Classify(ctx context.Context, emails []string) ([]Result, error) {
	body, err := json.Marshal(request{Emails: emails})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("Posting emails for classification",
		zap.String("endpoint", c.endpoint), zap.Int("emails", len(emails)))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", c.endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	var results []Result
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if results == nil {
		return nil, ErrNoResults // Body was JSON null
	}
	c.logger.Info("Emails classified",
		zap.Int("sent", len(emails)), zap.Int("received", len(results)))
	return results, nil
}
