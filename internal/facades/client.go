package facades

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 8 * time.Second

// Opt configures a provider facade.
type Opt func(*httpFacade)

// WithBaseURL overrides the provider endpoint.
func WithBaseURL(baseURL string) Opt {
	return func(f *httpFacade) {
		if strings.TrimSpace(baseURL) != "" {
			f.baseURL = baseURL
		}
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) Opt {
	return func(f *httpFacade) {
		if client != nil {
			f.client = client
		}
	}
}

// httpFacade holds what every provider needs to issue a JSON GET.
type httpFacade struct {
	name    string
	baseURL string
	client  *http.Client
}

func newHTTPFacade(name, baseURL string, opts ...Opt) httpFacade {
	f := httpFacade{
		name:    name,
		baseURL: baseURL,
		client:  &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// Name returns the provider name used in results and cache keys.
func (f *httpFacade) Name() string {
	return f.name
}

func (f *httpFacade) getJSON(ctx context.Context, params url.Values, out interface{}) error {
	endpoint := f.baseURL
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", f.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s: status %d", f.name, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", f.name, err)
	}
	return nil
}
