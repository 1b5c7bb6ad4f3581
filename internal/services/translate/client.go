package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultEndpoint = "https://translate.googleapis.com/translate_a/single"

// Client translates text through the public Google translate endpoint.
type Client struct {
	endpoint string
	source   string
	target   string
	http     *http.Client
}

// NewClient creates a translation client for the source/target language pair.
func NewClient(endpoint, source, target string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	if source == "" {
		source = "auto"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		source:   source,
		target:   target,
		http:     &http.Client{Timeout: timeout},
	}
}

// Translate returns text rendered into the client's target language. An empty
// input passes through unchanged.
func (c *Client) Translate(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	query := url.Values{}
	query.Set("client", "gtx")
	query.Set("sl", c.source)
	query.Set("tl", c.target)
	query.Set("dt", "t")
	query.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("build translate request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("translate request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("translate endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read translate response: %w", err)
	}
	return decodeResponse(body)
}

// decodeResponse extracts the translated text from the gtx response, which is
// a nested array: [[["translated","original",...],...],...].
func decodeResponse(body []byte) (string, error) {
	var payload []any
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("decode translate response: %w", err)
	}
	if len(payload) == 0 {
		return "", fmt.Errorf("empty translate response")
	}
	segments, ok := payload[0].([]any)
	if !ok {
		return "", fmt.Errorf("unexpected translate response shape")
	}

	var b strings.Builder
	for _, segment := range segments {
		parts, ok := segment.([]any)
		if !ok || len(parts) == 0 {
			continue
		}
		if text, ok := parts[0].(string); ok {
			b.WriteString(text)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("translate response carried no text")
	}
	return b.String(), nil
}
