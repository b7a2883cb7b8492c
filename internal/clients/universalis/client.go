package universalis

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/projectdesert/backend/internal/httpx"
	"github.com/projectdesert/backend/internal/logger"
)

// Client fetches daily Mass readings from the Universalis JSONP endpoint.
type Client interface {
	FetchMass(ctx context.Context, day time.Time) (json.RawMessage, error)
}

type client struct {
	log        *logger.Logger
	httpClient *http.Client
	baseURL    string
}

var (
	jsonpPrefix = regexp.MustCompile(`^universalisCallback\(`)
	jsonpSuffix = regexp.MustCompile(`\);\s*$`)
)

func NewClient(log *logger.Logger) Client {
	return &client{
		log:        log.With("client", "UniversalisClient"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    "https://www.universalis.com",
	}
}

// FetchMass gets the readings for day, stripping the JSONP wrapper. A
// retryable failure is attempted once more before surfacing.
func (c *client) FetchMass(ctx context.Context, day time.Time) (json.RawMessage, error) {
	url := fmt.Sprintf("%s/%s/jsonpmass.js", c.baseURL, day.Format("20060102"))

	raw, err := c.fetch(ctx, url)
	if err != nil && httpx.IsRetryableError(err) {
		c.log.Warn("Retrying readings fetch after transient failure", "url", url, "error", err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(httpx.JitterSleep(500 * time.Millisecond)):
		}
		raw, err = c.fetch(ctx, url)
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

type statusError struct {
	status int
}

func (e *statusError) Error() string       { return fmt.Sprintf("universalis returned status %d", e.status) }
func (e *statusError) HTTPStatusCode() int { return e.status }

func (c *client) fetch(ctx context.Context, url string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	stripped := jsonpPrefix.ReplaceAll(body, nil)
	stripped = jsonpSuffix.ReplaceAll(stripped, nil)

	if !json.Valid(stripped) {
		return nil, fmt.Errorf("universalis payload is not valid JSON after unwrapping")
	}
	return json.RawMessage(stripped), nil
}
