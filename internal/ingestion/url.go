package ingestion

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonathan/ats-scanner/internal/fetch"
	log "github.com/sirupsen/logrus"
)

var (
	// ErrHTTPRequestFailed is returned when the page cannot be fetched
	ErrHTTPRequestFailed = errors.New("HTTP request failed")
	// ErrContentExtractionFailed is returned when no text can be extracted from the page
	ErrContentExtractionFailed = errors.New("content extraction failed")
)

// URLOptions controls how a job posting page is retrieved.
type URLOptions struct {
	// UseBrowser re-renders pages whose static HTML yields too little text.
	UseBrowser bool
	// Fetcher serves repeated URLs from memory. Nil fetches every time.
	Fetcher *fetch.CachedFetcher
	// Render overrides the headless browser. Nil uses fetch.BrowserSimple.
	Render fetch.RenderFunc
}

// IngestFromURL fetches a job posting, extracts its text with platform-specific
// selectors, cleans it, and returns cleaned text with metadata.
func IngestFromURL(ctx context.Context, urlStr string, opts URLOptions) (string, *Metadata, error) {
	platform := fetch.DetectPlatform(urlStr)
	logger := log.WithFields(log.Fields{"url": urlStr, "platform": platform})
	logger.Debug("ingesting job posting")

	html, err := fetchHTML(ctx, urlStr, opts.Fetcher)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}

	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)

	textContent, err := fetch.ExtractMainText(html, contentSelectors, noiseSelectors...)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}
	logger.WithField("chars", len(textContent)).Debug("extracted page text")

	if opts.UseBrowser && fetch.ShouldUseBrowser(textContent) {
		logger.WithField("min_chars", fetch.MinContentLength).Info("page text too short, rendering with browser")
		textContent = renderFallback(ctx, urlStr, opts.Render, textContent, contentSelectors, noiseSelectors, logger)
	}

	cleanedText := CleanText(textContent)
	if cleanedText == "" {
		return "", nil, fmt.Errorf("%w: no text found at %s", ErrContentExtractionFailed, urlStr)
	}

	metadata := NewMetadata(cleanedText, urlStr, FormatURL)
	metadata.Platform = string(platform)
	return cleanedText, metadata, nil
}

func fetchHTML(ctx context.Context, urlStr string, cache *fetch.CachedFetcher) (string, error) {
	if cache != nil {
		result, err := cache.Fetch(ctx, urlStr)
		if err != nil {
			return "", err
		}
		return result.HTML, nil
	}
	result, err := fetch.URL(ctx, urlStr, nil)
	if err != nil {
		return "", err
	}
	return result.HTML, nil
}

// renderFallback returns the browser-rendered text, or current when rendering
// or extraction fails.
func renderFallback(ctx context.Context, urlStr string, render fetch.RenderFunc, current string,
	contentSelectors, noiseSelectors []string, logger *log.Entry) string {
	if render == nil {
		render = fetch.BrowserSimple
	}

	html, err := render(ctx, urlStr)
	if err != nil {
		logger.WithError(err).Warn("browser rendering failed, using HTTP content")
		return current
	}

	text, err := fetch.ExtractMainText(html, contentSelectors, noiseSelectors...)
	if err != nil {
		logger.WithError(err).Warn("browser content extraction failed, using HTTP content")
		return current
	}
	logger.WithField("chars", len(text)).Debug("extracted rendered text")
	return text
}
