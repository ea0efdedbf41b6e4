package webscrape

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
)

var emailPattern = regexp.MustCompile(`(?i)[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}`)

type Config struct {
	Timeout      time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"15s"`
	MaxBodyBytes int64         `envconfig:"MAX_BODY_BYTES" split_words:"true" default:"2097152"`
}

// Scraper fetches a company homepage and extracts the first email-like
// string. It is strictly best-effort: every failure mode yields "".
type Scraper struct {
	httpClient   *http.Client
	maxBodyBytes int64
}

func NewScraper(cfg Config) *Scraper {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	maxBodyBytes := cfg.MaxBodyBytes
	if maxBodyBytes <= 0 {
		maxBodyBytes = 2 << 20
	}

	return &Scraper{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		maxBodyBytes: maxBodyBytes,
	}
}

// FindEmail fetches rawURL and returns the first email found, preferring
// mailto links over body text. Returns "" for any fetch or parse failure.
func (s *Scraper) FindEmail(ctx context.Context, rawURL string) string {
	target := normalizeURL(rawURL)
	if target == "" {
		return ""
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		log.Debug().Str("url", rawURL).Err(err).Msg("skip email scrape: bad url")
		return ""
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Debug().Str("url", target).Err(err).Msg("skip email scrape: fetch failed")
		return ""
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBodyBytes))
	if err != nil {
		log.Debug().Str("url", target).Err(err).Msg("skip email scrape: read failed")
		return ""
	}

	return extractEmail(body)
}

// normalizeURL defaults a missing scheme to https and rejects anything that
// still does not parse as an absolute URL.
func normalizeURL(rawURL string) string {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return ""
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return ""
	}
	if parsed.Scheme == "" {
		trimmed = "https://" + trimmed
		if parsed, err = url.Parse(trimmed); err != nil {
			return ""
		}
	}
	if parsed.Host == "" {
		return ""
	}
	return trimmed
}

func extractEmail(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		// Not HTML we can parse; fall back to a raw scan.
		return emailPattern.FindString(string(body))
	}

	email := ""
	doc.Find("a[href^='mailto:']").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, ok := sel.Attr("href")
		if !ok {
			return true
		}
		addr := strings.TrimPrefix(href, "mailto:")
		if i := strings.IndexAny(addr, "?&"); i >= 0 {
			addr = addr[:i]
		}
		if m := emailPattern.FindString(addr); m != "" {
			email = m
			return false
		}
		return true
	})
	if email != "" {
		return email
	}

	if m := emailPattern.FindString(doc.Text()); m != "" {
		return m
	}
	return emailPattern.FindString(string(body))
}
