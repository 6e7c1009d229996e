// Package googletrans fetches translations from the public Google Translate
// endpoint (the same unauthenticated API the web widget uses).
package googletrans

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vocaquiz/backend/internal/domain"
)

const defaultBaseURL = "https://translate.googleapis.com"

// Provider translates single words via the translate_a/single endpoint.
type Provider struct {
	baseURL    string
	sourceLang string
	targetLang string
	httpClient *http.Client
	log        *slog.Logger
}

// New creates a Provider for the given language pair.
func New(baseURL, sourceLang, targetLang string, timeout time.Duration, logger *slog.Logger) *Provider {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Provider{
		baseURL:    baseURL,
		sourceLang: sourceLang,
		targetLang: targetLang,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "googletrans"),
	}
}

// Translate returns the translation of text into the target language.
// Any failure surfaces as domain.ErrTranslationUnavailable so callers can
// degrade instead of propagating transport details.
func (p *Provider) Translate(ctx context.Context, text string) (string, error) {
	reqURL := p.baseURL + "/translate_a/single?" + url.Values{
		"client": {"gtx"},
		"sl":     {p.sourceLang},
		"tl":     {p.targetLang},
		"dt":     {"t"},
		"q":      {text},
	}.Encode()

	p.log.DebugContext(ctx, "translate request", slog.String("text", text))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("googletrans: create request: %w", err)
	}

	resp, err := p.doWithRetry(ctx, req, text)
	if err != nil {
		p.log.ErrorContext(ctx, "translate request failed",
			slog.String("text", text), slog.String("error", err.Error()))
		return "", fmt.Errorf("googletrans: %w: %w", domain.ErrTranslationUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("googletrans: %w: status %d", domain.ErrTranslationUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("googletrans: %w: read body: %w", domain.ErrTranslationUnavailable, err)
	}

	translated, err := parseResponse(body)
	if err != nil {
		return "", fmt.Errorf("googletrans: %w: %w", domain.ErrTranslationUnavailable, err)
	}

	p.log.DebugContext(ctx, "translate response",
		slog.String("text", text), slog.String("translated", translated))

	return translated, nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (p *Provider) doWithRetry(ctx context.Context, req *http.Request, text string) (*http.Response, error) {
	resp, err := p.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	// Don't retry if context is already cancelled.
	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	p.log.WarnContext(ctx, "translate retry", slog.String("text", text), slog.String("reason", reason))

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	time.Sleep(500 * time.Millisecond)

	resp, err = p.httpClient.Do(req)
	return resp, err
}

// parseResponse extracts the translated text from the endpoint's nested-array
// payload: element [0] is a list of segments, each segment's [0] is the
// translated chunk. Segments are concatenated.
func parseResponse(body []byte) (string, error) {
	var payload []json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("decode payload: %w", err)
	}
	if len(payload) == 0 {
		return "", fmt.Errorf("empty payload")
	}

	var segments [][]json.RawMessage
	if err := json.Unmarshal(payload[0], &segments); err != nil {
		return "", fmt.Errorf("decode segments: %w", err)
	}

	var sb strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		var chunk string
		if err := json.Unmarshal(seg[0], &chunk); err != nil {
			return "", fmt.Errorf("decode segment text: %w", err)
		}
		sb.WriteString(chunk)
	}

	if sb.Len() == 0 {
		return "", fmt.Errorf("no translation in payload")
	}

	return sb.String(), nil
}
