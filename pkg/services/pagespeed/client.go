package pagespeed

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/perf-tools/lightaudit/pkg/models/domain"
)

const DefaultEndpoint = "https://www.googleapis.com/pagespeedonline/v5/runPagespeed"

// ErrInvalidResponse marks a response body that could not be decoded as a
// PageSpeed report.
var ErrInvalidResponse = errors.New("pagespeed: response is not a valid report")

type Settings struct {
	APIKey     string
	Endpoint   string
	HTTPClient *http.Client
}

// Client issues PageSpeed Insights runs. One outbound GET per call, no
// retries, no caching.
type Client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

func NewClient(settings Settings) *Client {
	if settings.Endpoint == "" {
		settings.Endpoint = DefaultEndpoint
	}
	if settings.HTTPClient == nil {
		settings.HTTPClient = http.DefaultClient
	}
	return &Client{
		apiKey:     settings.APIKey,
		endpoint:   settings.Endpoint,
		httpClient: settings.HTTPClient,
	}
}

func (c *Client) Run(ctx context.Context, siteURL string) (*domain.AuditReport, error) {
	query := url.Values{}
	query.Set("url", siteURL)
	query.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("pagespeed: failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pagespeed: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("pagespeed: unexpected status %d: %s", resp.StatusCode, body)
	}

	report, err := decodeReport(resp.Body)
	if err != nil {
		return nil, err
	}
	return report, nil
}

// decodeReport pulls lighthouseResult.audits out of the response and decodes
// the entries one by one with a token stream, so the report keeps the order
// the API emitted them in. json.Unmarshal into a map would lose it.
func decodeReport(r io.Reader) (*domain.AuditReport, error) {
	var envelope struct {
		LighthouseResult struct {
			Audits json.RawMessage `json:"audits"`
		} `json:"lighthouseResult"`
	}
	if err := json.NewDecoder(r).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	report := &domain.AuditReport{}
	if len(envelope.LighthouseResult.Audits) == 0 {
		return report, nil
	}

	dec := json.NewDecoder(bytes.NewReader(envelope.LighthouseResult.Audits))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: audits is not an object", ErrInvalidResponse)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
		id, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected audit key %v", ErrInvalidResponse, keyTok)
		}

		var entry struct {
			Title         string             `json:"title"`
			MetricSavings map[string]float64 `json:"metricSavings"`
		}
		if err := dec.Decode(&entry); err != nil {
			return nil, fmt.Errorf("%w: audit %q: %v", ErrInvalidResponse, id, err)
		}

		report.Audits = append(report.Audits, domain.Audit{
			ID:            id,
			Title:         entry.Title,
			MetricSavings: entry.MetricSavings,
		})
	}

	return report, nil
}
