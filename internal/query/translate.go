package query

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// TranslateClient is a thin relay to the external natural-language to
// filter translation service. The parsing itself happens remotely; this
// client only ships the query and decodes the filter that comes back.
type TranslateClient struct {
	URL        string
	Key        string
	HTTPClient *http.Client
}

// NewTranslateClient creates a client for the given inference endpoint.
func NewTranslateClient(url, key string) *TranslateClient {
	return &TranslateClient{
		URL:        url,
		Key:        key,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

const promptTemplate = `Extract filter as JSON.
Query: "%s"
Return: { "attribute": "", "operator": "", "value": "" }`

// Translate sends the natural-language query and returns the extracted
// filter.
func (c *TranslateClient) Translate(ctx context.Context, text string) (Filter, error) {
	payload, err := json.Marshal(map[string]string{
		"inputs": fmt.Sprintf(promptTemplate, text),
	})
	if err != nil {
		return Filter{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(payload))
	if err != nil {
		return Filter{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Key != "" {
		req.Header.Set("Authorization", "Bearer "+c.Key)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return Filter{}, fmt.Errorf("translate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Filter{}, fmt.Errorf("translate: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Filter{}, fmt.Errorf("translate: %w", err)
	}

	var f Filter
	if err := json.Unmarshal(body, &f); err != nil {
		return Filter{}, fmt.Errorf("translate: bad filter payload: %w", err)
	}
	return f, nil
}
