package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Whomi996/zed-loc"
)

// defaultGoogleBaseURL is the anonymous web endpoint. It needs no API key
// but throttles aggressively; pair this provider with rate limiting.
const defaultGoogleBaseURL = "https://translate.googleapis.com"

// GoogleProvider implements MTProvider using the anonymous Google Translate
// web endpoint.
type GoogleProvider struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

// GoogleConfig holds configuration for the Google provider.
type GoogleConfig struct {
	HTTPClient *http.Client  // Custom HTTP client (optional)
	BaseURL    string        // Endpoint override, used in tests
	Timeout    time.Duration // Request timeout (default: 20s)
	UserAgent  string        // User-Agent header (default: browser-like)
}

// NewGoogleProvider creates a new Google Translate provider.
func NewGoogleProvider(cfg GoogleConfig) *GoogleProvider {
	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 20 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultGoogleBaseURL
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		// The anonymous endpoint rejects non-browser agents.
		userAgent = "Mozilla/5.0"
	}

	return &GoogleProvider{
		client:    client,
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
	}
}

// Translate translates each text with a separate request; the anonymous
// endpoint accepts only one string per call.
func (p *GoogleProvider) Translate(ctx context.Context, req TranslateRequest) ([]string, error) {
	results := make([]string, 0, len(req.Texts))
	for _, text := range req.Texts {
		out, err := p.translateOne(ctx, text, req.SourceLang, req.TargetLang)
		if err != nil {
			return nil, err
		}
		results = append(results, out)
	}
	return results, nil
}

func (p *GoogleProvider) translateOne(ctx context.Context, text, source, target string) (string, error) {
	if source == "" {
		source = "en"
	}

	q := url.Values{}
	q.Set("client", "gtx")
	q.Set("sl", source)
	q.Set("tl", target)
	q.Set("dt", "t")
	q.Set("q", text)

	endpoint := p.baseURL + "/translate_a/single?" + q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", &zedloc.ProviderError{
			Message:   "building translate request",
			Cause:     err,
			Retryable: false,
		}
	}
	httpReq.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", &zedloc.ProviderError{
			Message:   "translate request failed",
			Cause:     err,
			Retryable: true,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &zedloc.ProviderError{
			Message:   fmt.Sprintf("translate endpoint returned %d", resp.StatusCode),
			Retryable: resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &zedloc.ProviderError{
			Message:   "reading translate response",
			Cause:     err,
			Retryable: true,
		}
	}

	out, err := parseGoogleResponse(body)
	if err != nil {
		return "", err
	}

	out = strings.TrimSpace(out)
	if out == "" {
		// Empty responses happen under throttling; worth another attempt.
		return "", &zedloc.ProviderError{
			Message:   "empty translation",
			Retryable: true,
		}
	}

	return out, nil
}

// parseGoogleResponse extracts the translated text from the endpoint's
// undocumented response shape: the first element is a list of segments,
// each segment a list whose first element is the translated fragment.
func parseGoogleResponse(body []byte) (string, error) {
	var data []json.RawMessage
	if err := json.Unmarshal(body, &data); err != nil || len(data) == 0 {
		return "", &zedloc.ProviderError{
			Message:   "unexpected translate response shape",
			Cause:     err,
			Retryable: false,
		}
	}

	var segments [][]json.RawMessage
	if err := json.Unmarshal(data[0], &segments); err != nil {
		return "", &zedloc.ProviderError{
			Message:   "unexpected translate segment shape",
			Cause:     err,
			Retryable: false,
		}
	}

	var sb strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		var fragment string
		if err := json.Unmarshal(seg[0], &fragment); err != nil {
			continue
		}
		sb.WriteString(fragment)
	}

	return sb.String(), nil
}

// Verify GoogleProvider implements MTProvider
var _ MTProvider = (*GoogleProvider)(nil)
