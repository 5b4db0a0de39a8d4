// Package placesapi supplies candidate places for review queries. It prefers
// the place pool service and degrades to an embedded pool when the service is
// unreachable, so query generation never halts the validator.
package placesapi

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/bytedance/sonic"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog/log"

	"github.com/tranmanhhung/sn111/internal/config"
)

type PlacesInterface interface {
	SamplePlace(ctx context.Context) (Place, error)
}

// Place is one queryable location from the pool.
type Place struct {
	PlaceID  string `json:"place_id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Locale   string `json:"locale"`
}

type samplePlaceResponse struct {
	Success bool  `json:"success"`
	Place   Place `json:"place"`
}

type Places struct {
	cfg        *config.PlacesEnvConfig
	httpClient *retryablehttp.Client
}

func NewPlaces(cfg *config.PlacesEnvConfig) (*Places, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.HTTPClient.Timeout = cfg.PlacesTimeout
	client.Logger = nil

	return &Places{
		cfg:        cfg,
		httpClient: client,
	}, nil
}

// SamplePlace returns one place to query, from the pool service when it
// responds and from the embedded fallback pool otherwise.
func (p *Places) SamplePlace(ctx context.Context) (Place, error) {
	place, err := p.sampleRemote(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("place pool service unavailable, using embedded pool")
		return sampleFallback()
	}
	return place, nil
}

func (p *Places) sampleRemote(ctx context.Context) (Place, error) {
	url := p.cfg.PlacesAPIUrl + "/places/sample"
	req, err := retryablehttp.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return Place{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return Place{}, fmt.Errorf("sample place: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return Place{}, fmt.Errorf("sample place returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Place{}, fmt.Errorf("read response: %w", err)
	}

	var out samplePlaceResponse
	if err := sonic.Unmarshal(body, &out); err != nil {
		return Place{}, fmt.Errorf("unmarshal response: %w", err)
	}
	if !out.Success || out.Place.PlaceID == "" {
		return Place{}, fmt.Errorf("place pool returned no place")
	}

	return out.Place, nil
}

func sampleFallback() (Place, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(fallbackPool))))
	if err != nil {
		return Place{}, fmt.Errorf("sample fallback pool: %w", err)
	}
	return fallbackPool[n.Int64()], nil
}
