package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// WeatherReport is the local conditions snippet shown on brand pages.
type WeatherReport struct {
	Temperature int    `json:"temperature"`
	Condition   string `json:"condition"`
	Description string `json:"description"`
	City        string `json:"city"`
	State       string `json:"state"`
}

// WeatherProvider serves weather by ZIP code.
type WeatherProvider interface {
	WeatherByZip(ctx context.Context, zip string) (WeatherReport, error)
}

type regionClimate struct {
	baseTemp int
	city     string
	state    string
}

var climateByPrefix = map[string]regionClimate{
	"27": {68, "Raleigh", "NC"},
	"28": {70, "Charlotte", "NC"},
	"29": {72, "Columbia", "SC"},
	"37": {65, "Nashville", "TN"},
	"38": {67, "Memphis", "TN"},
	"30": {75, "Atlanta", "GA"},
	"31": {77, "Savannah", "GA"},
	"32": {82, "Jacksonville", "FL"},
	"33": {84, "Miami", "FL"},
	"34": {80, "Tampa", "FL"},
	"35": {70, "Birmingham", "AL"},
	"36": {68, "Mobile", "AL"},
}

// MockWeatherProvider derives deterministic conditions from the ZIP's
// region and the current season.
type MockWeatherProvider struct {
	now func() time.Time
}

// NewMockWeatherProvider creates the mock provider.
func NewMockWeatherProvider() *MockWeatherProvider {
	return &MockWeatherProvider{now: time.Now}
}

// WeatherByZip synthesizes a report for the ZIP's region.
func (p *MockWeatherProvider) WeatherByZip(ctx context.Context, zip string) (WeatherReport, error) {
	if len(zip) < 2 {
		return WeatherReport{}, fmt.Errorf("providers: zip too short: %q", zip)
	}
	climate, ok := climateByPrefix[zip[:2]]
	if !ok {
		climate = regionClimate{70, "Charlotte", "NC"}
	}

	temp := climate.baseTemp + seasonalAdjustment(p.now().Month())
	condition, description := conditionFor(temp, zip[:2])
	return WeatherReport{
		Temperature: temp,
		Condition:   condition,
		Description: description,
		City:        climate.city,
		State:       climate.state,
	}, nil
}

func seasonalAdjustment(m time.Month) int {
	switch {
	case m >= time.March && m <= time.May:
		return 0
	case m >= time.June && m <= time.August:
		return 15
	case m >= time.September && m <= time.November:
		return -5
	default:
		return -20
	}
}

func conditionFor(temp int, prefix string) (string, string) {
	mountainous := prefix == "28" || prefix == "37"
	switch {
	case temp > 85:
		return "Hot", "Hot and sunny"
	case temp > 75:
		return "Warm", "Warm and pleasant"
	case temp > 60:
		if mountainous {
			return "Mild", "Mild with some clouds"
		}
		return "Mild", "Mild and comfortable"
	case temp > 45:
		return "Cool", "Cool and crisp"
	default:
		return "Cold", "Cold weather"
	}
}

const weatherKeyPrefix = "weather:zip:"

// CachedWeatherProvider wraps a provider with a redis cache keyed by ZIP.
type CachedWeatherProvider struct {
	inner WeatherProvider
	redis *redis.Client
	ttl   time.Duration
}

// NewCachedWeatherProvider wraps inner with a cache. A nil redis client
// passes calls straight through.
func NewCachedWeatherProvider(inner WeatherProvider, redisClient *redis.Client, ttl time.Duration) *CachedWeatherProvider {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &CachedWeatherProvider{inner: inner, redis: redisClient, ttl: ttl}
}

// WeatherByZip serves from cache when possible. Cache errors fall back to
// the inner provider.
func (p *CachedWeatherProvider) WeatherByZip(ctx context.Context, zip string) (WeatherReport, error) {
	if p.redis == nil {
		return p.inner.WeatherByZip(ctx, zip)
	}

	key := weatherKeyPrefix + zip
	data, err := p.redis.Get(ctx, key).Bytes()
	if err == nil {
		var cached WeatherReport
		if jsonErr := json.Unmarshal(data, &cached); jsonErr == nil {
			return cached, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		return p.inner.WeatherByZip(ctx, zip)
	}

	report, err := p.inner.WeatherByZip(ctx, zip)
	if err != nil {
		return WeatherReport{}, err
	}
	if data, err := json.Marshal(report); err == nil {
		p.redis.Set(ctx, key, data, p.ttl)
	}
	return report, nil
}
