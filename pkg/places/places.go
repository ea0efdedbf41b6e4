package places

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/tanpawarit/Poolive-Lead-Generation-Agent/agent/contract"
)

const (
	searchFieldMask = "places.id,places.displayName,places.formattedAddress,places.location,places.types"
	detailFieldMask = "id,displayName,formattedAddress,addressComponents," +
		"nationalPhoneNumber,internationalPhoneNumber,websiteUri,googleMapsUri"

	// Upstream error bodies are truncated to this many bytes before logging.
	bodySnippetLimit = 800
)

type Config struct {
	BaseURL      string        `envconfig:"BASE_URL" split_words:"true" default:"https://places.googleapis.com/v1"`
	APIKey       string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Timeout      time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
	MaxResults   int           `envconfig:"MAX_RESULTS" split_words:"true" default:"50"`
	LanguageCode string        `envconfig:"LANGUAGE_CODE" split_words:"true" default:"en"`
	RadiusMeters int           `envconfig:"RADIUS_METERS" split_words:"true" default:"32187"`
}

// Place is the detail bag returned by the places API. Fields the upstream
// omits stay zero-valued.
type Place struct {
	ID                       string             `json:"id"`
	DisplayName              LocalizedText      `json:"displayName"`
	FormattedAddress         string             `json:"formattedAddress"`
	AddressComponents        []AddressComponent `json:"addressComponents"`
	NationalPhoneNumber      string             `json:"nationalPhoneNumber"`
	InternationalPhoneNumber string             `json:"internationalPhoneNumber"`
	WebsiteURI               string             `json:"websiteUri"`
	GoogleMapsURI            string             `json:"googleMapsUri"`
	Location                 *LatLng            `json:"location,omitempty"`
}

type LocalizedText struct {
	Text string `json:"text"`
}

type AddressComponent struct {
	LongText  string   `json:"longText"`
	ShortText string   `json:"shortText"`
	Types     []string `json:"types"`
}

type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Client talks to the Google Places API (v1). Construct with NewClient so
// the API key and limits are threaded in rather than read from globals.
type Client struct {
	baseURL      string
	apiKey       string
	maxResults   int
	languageCode string
	httpClient   *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("places base url is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid places base url: %w", err)
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("places api key is required")
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 50
	}

	languageCode := strings.TrimSpace(cfg.LanguageCode)
	if languageCode == "" {
		languageCode = "en"
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL:      baseURL,
		apiKey:       apiKey,
		maxResults:   maxResults,
		languageCode: languageCode,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

func MustNewClient(cfg Config) *Client {
	client, err := NewClient(cfg)
	if err != nil {
		panic(err)
	}
	return client
}

type searchTextRequest struct {
	TextQuery      string `json:"textQuery"`
	LanguageCode   string `json:"languageCode"`
	MaxResultCount int    `json:"maxResultCount,omitempty"`
}

type searchTextResponse struct {
	Places []Place `json:"places"`
}

// SearchCandidates runs a text search and returns the place IDs in the
// order the upstream ranked them. Zero results is not an error.
func (c *Client) SearchCandidates(ctx context.Context, query string) ([]string, error) {
	resp, err := c.searchText(ctx, query)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(resp.Places))
	for _, p := range resp.Places {
		if p.ID != "" {
			ids = append(ids, p.ID)
		}
	}
	return ids, nil
}

// Geocode resolves a free-form query to the coordinate of its best match.
func (c *Client) Geocode(ctx context.Context, query string) (float64, float64, error) {
	resp, err := c.searchText(ctx, query)
	if err != nil {
		return 0, 0, err
	}
	if len(resp.Places) == 0 || resp.Places[0].Location == nil {
		return 0, 0, fmt.Errorf("no location found for query %q", query)
	}
	loc := resp.Places[0].Location
	return loc.Latitude, loc.Longitude, nil
}

func (c *Client) searchText(ctx context.Context, query string) (*searchTextResponse, error) {
	payload, err := json.Marshal(searchTextRequest{
		TextQuery:      query,
		LanguageCode:   c.languageCode,
		MaxResultCount: c.maxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal search request: %w", err)
	}

	endpoint := c.baseURL + "/places:searchText"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.setAuthHeaders(req, searchFieldMask)

	body, err := c.do(req, "places:searchText")
	if err != nil {
		return nil, err
	}

	var out searchTextResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return &out, nil
}

// Details fetches the full detail bag for one place ID.
func (c *Client) Details(ctx context.Context, placeID string) (Place, error) {
	id := strings.TrimSpace(placeID)
	if id == "" {
		return Place{}, fmt.Errorf("%w: place id is empty", contractx.ErrValidation)
	}

	endpoint := c.baseURL + "/places/" + url.PathEscape(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Place{}, fmt.Errorf("build details request: %w", err)
	}
	c.setAuthHeaders(req, detailFieldMask)

	body, err := c.do(req, "places/"+id)
	if err != nil {
		return Place{}, err
	}

	var out Place
	if err := json.Unmarshal(body, &out); err != nil {
		return Place{}, fmt.Errorf("decode details response: %w", err)
	}
	return out, nil
}

func (c *Client) setAuthHeaders(req *http.Request, fieldMask string) {
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", fieldMask)
}

func (c *Client) do(req *http.Request, endpoint string) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", contractx.ErrUpstream, endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet := truncate(string(body), bodySnippetLimit)
		log.Error().
			Str("endpoint", endpoint).
			Int("status", resp.StatusCode).
			Str("body", snippet).
			Msg("places request failed")
		return nil, &contractx.UpstreamError{
			Endpoint:    endpoint,
			Status:      resp.StatusCode,
			BodySnippet: snippet,
		}
	}

	return body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
