package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"notamadmin/internal/observability"
)

// ErrInvalidWeatherData marks a weather reply without a usable description.
var ErrInvalidWeatherData = errors.New("invalid or missing weather data")

type WeatherReport struct {
	Description string
	WindSpeed   float64
}

type WeatherClient interface {
	Fetch(ctx context.Context, location string) (WeatherReport, error)
}

type weatherClient struct {
	webhookCaller
	webhookURL string
}

func NewWeatherClient(client *http.Client, webhookURL string, metrics *observability.Metrics) WeatherClient {
	return &weatherClient{
		webhookCaller: webhookCaller{client: client, metrics: metrics},
		webhookURL:    webhookURL,
	}
}

type weatherResponse struct {
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Wind *struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
}

// Fetch asks the weather webhook for current conditions at location, in
// metric units.
func (c *weatherClient) Fetch(ctx context.Context, location string) (WeatherReport, error) {
	u, err := url.Parse(c.webhookURL)
	if err != nil {
		return WeatherReport{}, fmt.Errorf("parse weather webhook url: %w", err)
	}
	q := u.Query()
	q.Set("city", location)
	q.Set("units", "metric")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return WeatherReport{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	body, err := c.do(req, webhookWeather)
	if err != nil {
		return WeatherReport{}, err
	}

	var resp weatherResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return WeatherReport{}, fmt.Errorf("%w: decode response: %v", ErrInvalidWeatherData, err)
	}
	if len(resp.Weather) == 0 || strings.TrimSpace(resp.Weather[0].Description) == "" {
		return WeatherReport{}, ErrInvalidWeatherData
	}

	report := WeatherReport{Description: resp.Weather[0].Description}
	if resp.Wind != nil && resp.Wind.Speed != nil {
		report.WindSpeed = *resp.Wind.Speed
	}
	return report, nil
}
