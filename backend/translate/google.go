package translate

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const sourceLanguage = "en"

// Client calls the public Google translate endpoint (the "gtx" API, no key
// required). Every failure is reported as "no translation available": the
// caller falls back to the primary language, never the error path.
type Client struct {
	endpoint string
	http     *http.Client
	logger   *log.Logger
}

func NewClient(endpoint string, timeout time.Duration, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.Default()
	}
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// Translate returns the text translated into target, or ok=false when the
// service is unreachable, times out, or answers with something unusable.
func (c *Client) Translate(ctx context.Context, text, target string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return "", false
	}

	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", sourceLanguage)
	params.Set("tl", target)
	params.Set("dt", "t")
	params.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		c.logger.Printf("translation request for %q failed: %v", text, err)
		return "", false
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Printf("translation failed for %q: %v", text, err)
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Printf("translation failed for %q: status %d", text, resp.StatusCode)
		return "", false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Printf("translation failed for %q: %v", text, err)
		return "", false
	}

	translated, ok := parseResponse(body)
	if !ok {
		c.logger.Printf("translation failed for %q: unexpected response shape", text)
	}
	return translated, ok
}

// parseResponse unpacks the gtx payload: a nested array whose first element
// lists segments, each segment an array starting with the translated text.
func parseResponse(body []byte) (string, bool) {
	var payload []any
	if err := json.Unmarshal(body, &payload); err != nil || len(payload) == 0 {
		return "", false
	}

	segments, ok := payload[0].([]any)
	if !ok {
		return "", false
	}

	var sb strings.Builder
	for _, raw := range segments {
		segment, ok := raw.([]any)
		if !ok || len(segment) == 0 {
			continue
		}
		if part, ok := segment[0].(string); ok {
			sb.WriteString(part)
		}
	}

	result := sb.String()
	if result == "" {
		return "", false
	}
	return result, true
}
