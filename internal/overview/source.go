package overview

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"registry/internal/domain"
)

// HTTPSource fetches the override map from the JSON override endpoint of a
// registry server.
type HTTPSource struct {
	URL    string
	Token  string // sent as a bearer token when set
	Client *http.Client
}

// NewHTTPSource returns a source for url with a bounded client.
func NewHTTPSource(url, token string) *HTTPSource {
	return &HTTPSource{URL: url, Token: token, Client: &http.Client{Timeout: 30 * time.Second}}
}

func (s *HTTPSource) Overrides(ctx context.Context) (domain.OverrideMap, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("overrides: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if s.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("overrides: fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("overrides: unexpected status %d", resp.StatusCode)
	}
	var m domain.OverrideMap
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		return nil, fmt.Errorf("overrides: decode: %w", err)
	}
	return m, nil
}
