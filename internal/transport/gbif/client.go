// Package gbif looks up occurrence photos for a species via the GBIF
// occurrence-search API.
package gbif

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Client queries the GBIF occurrence API for still images.
type Client struct {
	baseURL    string
	maxImages  int
	httpClient *http.Client
	logger     *zap.Logger
}

// Config holds GBIF client settings.
type Config struct {
	BaseURL   string
	MaxImages int
	Timeout   time.Duration
	Logger    *zap.Logger
}

// NewClient creates a GBIF occurrence client.
func NewClient(cfg *Config) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		maxImages:  cfg.MaxImages,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     cfg.Logger,
	}
}

// occurrenceResponse is the subset of the GBIF payload we read.
type occurrenceResponse struct {
	Results []struct {
		Media []struct {
			Type       string `json:"type"`
			Identifier string `json:"identifier"`
		} `json:"media"`
	} `json:"results"`
}

// ImagesFor returns up to MaxImages occurrence photo URLs for the given
// scientific name.
func (c *Client) ImagesFor(ctx context.Context, species string) ([]string, error) {
	params := url.Values{}
	params.Set("scientificName", species)
	params.Set("mediaType", "StillImage")
	params.Set("limit", strconv.Itoa(c.maxImages))

	endpoint := c.baseURL + "/v1/occurrence/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("occurrence search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("occurrence search: unexpected status %d", resp.StatusCode)
	}

	var body occurrenceResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode occurrence response: %w", err)
	}

	urls := make([]string, 0, c.maxImages)
	for _, r := range body.Results {
		for _, m := range r.Media {
			if m.Identifier == "" {
				continue
			}
			urls = append(urls, m.Identifier)
			if len(urls) >= c.maxImages {
				return urls, nil
			}
		}
	}
	return urls, nil
}
