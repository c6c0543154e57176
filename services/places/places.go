package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// defaultFields is what the storefront needs from a place lookup.
var defaultFields = []string{
	"name",
	"formatted_address",
	"formatted_phone_number",
	"website",
	"opening_hours",
	"rating",
	"photos",
	"place_id",
}

// Client fetches business metadata from the Google Places API.
type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client

	logger *zap.Logger
}

func NewClient(apiKey string, logger *zap.Logger) *Client {
	return &Client{
		APIKey:     apiKey,
		BaseURL:    "https://maps.googleapis.com",
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

// Configured reports whether place lookups can be made.
func (c *Client) Configured() bool {
	return c.APIKey != ""
}

// BusinessInfo is the formatted business metadata served to the storefront.
type BusinessInfo struct {
	Name         string   `json:"name"`
	Address      string   `json:"address"`
	Phone        string   `json:"phone"`
	Website      string   `json:"website"`
	Rating       float64  `json:"rating"`
	OpeningHours []string `json:"openingHours"`
	Photos       []string `json:"photos"`
	PlaceID      string   `json:"placeId"`
	LastUpdated  string   `json:"lastUpdated"`
}

type detailsResponse struct {
	Result struct {
		Name                 string  `json:"name"`
		FormattedAddress     string  `json:"formatted_address"`
		FormattedPhoneNumber string  `json:"formatted_phone_number"`
		Website              string  `json:"website"`
		Rating               float64 `json:"rating"`
		OpeningHours         struct {
			WeekdayText []string `json:"weekday_text"`
		} `json:"opening_hours"`
		Photos []struct {
			PhotoReference string `json:"photo_reference"`
		} `json:"photos"`
		PlaceID string `json:"place_id"`
	} `json:"result"`
	Status string `json:"status"`
}

// BusinessInfo fetches and formats place details, falling back to the static
// default when the lookup is unconfigured or fails. The storefront never sees
// a hard error from this path.
func (c *Client) BusinessInfo(ctx context.Context, placeID string) BusinessInfo {
	if !c.Configured() || placeID == "" {
		return DefaultBusinessInfo()
	}

	details, err := c.details(ctx, placeID, defaultFields)
	if err != nil {
		c.logger.Warn("place details lookup failed, serving defaults",
			zap.String("placeId", placeID),
			zap.Error(err))
		return DefaultBusinessInfo()
	}
	return c.format(details)
}

func (c *Client) details(ctx context.Context, placeID string, fields []string) (*detailsResponse, error) {
	q := url.Values{}
	q.Set("place_id", placeID)
	q.Set("fields", strings.Join(fields, ","))
	q.Set("key", c.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.BaseURL+"/maps/api/place/details/json?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("places: status %d", resp.StatusCode)
	}

	var details detailsResponse
	if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
		return nil, err
	}
	if details.Status != "OK" {
		return nil, fmt.Errorf("places: api status %s", details.Status)
	}
	return &details, nil
}

func (c *Client) format(d *detailsResponse) BusinessInfo {
	info := BusinessInfo{
		Name:         d.Result.Name,
		Address:      d.Result.FormattedAddress,
		Phone:        d.Result.FormattedPhoneNumber,
		Website:      d.Result.Website,
		Rating:       d.Result.Rating,
		OpeningHours: d.Result.OpeningHours.WeekdayText,
		PlaceID:      d.Result.PlaceID,
		LastUpdated:  time.Now().UTC().Format(time.RFC3339),
	}
	for i, photo := range d.Result.Photos {
		if i == 5 {
			break
		}
		info.Photos = append(info.Photos,
			fmt.Sprintf("%s/maps/api/place/photo?maxwidth=400&photo_reference=%s&key=%s",
				c.BaseURL, photo.PhotoReference, c.APIKey))
	}
	return info
}

// DefaultBusinessInfo is served whenever the live lookup is unavailable.
func DefaultBusinessInfo() BusinessInfo {
	return BusinessInfo{
		Name:    "Heavenly Nails & Beauty Salon",
		Address: "123 Beauty Lane, Spa City, SC 12345",
		Phone:   "(555) 123-NAILS",
		Website: "https://heavenlynails.com",
		Rating:  4.8,
		OpeningHours: []string{
			"Monday: 9:00 AM - 7:00 PM",
			"Tuesday: 9:00 AM - 7:00 PM",
			"Wednesday: 9:00 AM - 7:00 PM",
			"Thursday: 9:00 AM - 7:00 PM",
			"Friday: 9:00 AM - 8:00 PM",
			"Saturday: 8:00 AM - 6:00 PM",
			"Sunday: Closed",
		},
		PlaceID:     "default-beauty-salon",
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
	}
}
