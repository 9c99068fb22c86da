package assets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// DDragon is a plain client for the static data CDN, no authentication needed.
type DDragon struct {
	baseURL    string
	httpClient *http.Client
}

// NewDDragon creates a client for the given base url, DDragonURL on production.
func NewDDragon(baseURL string) *DDragon {
	if baseURL == "" {
		baseURL = DDragonURL
	}

	return &DDragon{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// BaseURL returns the CDN root.
func (d *DDragon) BaseURL() string {
	return d.baseURL
}

// getJSON fetches a path and decodes it.
func (d *DDragon) getJSON(ctx context.Context, path string, out any) error {
	url := d.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("couldn't create the request: %w", err)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("couldn't get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ddragon returned status code %d on URL %s", resp.StatusCode, url)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("couldn't convert the body to json: %w", err)
	}
	return nil
}

// GetVersions returns every patch version, the latest first.
func (d *DDragon) GetVersions(ctx context.Context) ([]string, error) {
	var versions []string
	if err := d.getJSON(ctx, "/api/versions.json", &versions); err != nil {
		return nil, err
	}

	if len(versions) == 0 {
		return nil, errors.New("no versions available")
	}
	return versions, nil
}

// manifestPath formats the path of a data manifest.
func manifestPath(version string, language string, manifest string) string {
	return fmt.Sprintf("/cdn/%s/data/%s/%s.json", version, language, manifest)
}
