package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/time/rate"

	"github.com/forgo/gather/internal/model"
)

// PlacesConfig holds place-search client settings
type PlacesConfig struct {
	BaseURL    string
	Language   string
	Limit      int
	Rate       float64 // requests per second
	HTTPClient *http.Client
}

// PlacesClient queries a Nominatim-compatible place-search service.
// Requests are throttled; the public instance allows about one per second.
type PlacesClient struct {
	base     string
	language string
	limit    int
	limiter  *rate.Limiter
	http     *http.Client
}

// NewPlacesClient creates a place-search client
func NewPlacesClient(cfg PlacesConfig) *PlacesClient {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	limit := cfg.Limit
	if limit <= 0 {
		limit = 6
	}
	r := rate.Inf
	if cfg.Rate > 0 {
		r = rate.Limit(cfg.Rate)
	}
	return &PlacesClient{
		base:     strings.TrimRight(cfg.BaseURL, "/"),
		language: cfg.Language,
		limit:    limit,
		limiter:  rate.NewLimiter(r, 1),
		http:     hc,
	}
}

// nominatimPlace is one search result or a reverse lookup reply
type nominatimPlace struct {
	PlaceID     json.Number `json:"place_id"`
	DisplayName string      `json:"display_name"`
	Lat         string      `json:"lat"`
	Lon         string      `json:"lon"`
	Error       string      `json:"error"`
}

func (p nominatimPlace) place(raw json.RawMessage) (model.Place, error) {
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return model.Place{}, fmt.Errorf("latitude %q: %w", p.Lat, err)
	}
	lon, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return model.Place{}, fmt.Errorf("longitude %q: %w", p.Lon, err)
	}
	return model.Place{
		ID:        p.PlaceID.String(),
		Address:   p.DisplayName,
		Latitude:  lat,
		Longitude: lon,
		Raw:       raw,
	}, nil
}

// Search resolves free text to candidate places
func (c *PlacesClient) Search(ctx context.Context, text string) ([]model.Place, error) {
	query := url.Values{}
	query.Set("format", "json")
	query.Set("addressdetails", "1")
	query.Set("q", text)
	query.Set("limit", strconv.Itoa(c.limit))

	var raw []json.RawMessage
	if err := c.get(ctx, "/search", query, &raw); err != nil {
		return nil, err
	}

	places := make([]model.Place, 0, len(raw))
	for _, item := range raw {
		var np nominatimPlace
		if err := json.Unmarshal(item, &np); err != nil {
			continue
		}
		p, err := np.place(item)
		if err != nil {
			continue
		}
		places = append(places, p)
	}
	return places, nil
}

// Reverse resolves coordinates to the nearest address
func (c *PlacesClient) Reverse(ctx context.Context, lat, lon float64) (model.Place, error) {
	query := url.Values{}
	query.Set("format", "json")
	query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))

	var raw json.RawMessage
	if err := c.get(ctx, "/reverse", query, &raw); err != nil {
		return model.Place{}, err
	}
	var np nominatimPlace
	if err := json.Unmarshal(raw, &np); err != nil {
		return model.Place{}, model.NewNetworkError(err)
	}
	if np.Error != "" {
		return model.Place{}, model.NewRejectionError(http.StatusOK, np.Error)
	}
	if np.DisplayName == "" {
		return model.Place{}, model.NewRejectionError(http.StatusOK, "no address at this location")
	}
	return model.Place{
		ID:        np.PlaceID.String(),
		Address:   np.DisplayName,
		Latitude:  lat,
		Longitude: lon,
		Raw:       raw,
	}, nil
}

func (c *PlacesClient) get(ctx context.Context, path string, query url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return model.NewNetworkError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build place request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.language != "" {
		req.Header.Set("Accept-Language", c.language)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return model.NewNetworkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return responseError(resp)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.NewNetworkError(err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return model.NewNetworkError(fmt.Errorf("decode place response: %w", err))
	}
	return nil
}
