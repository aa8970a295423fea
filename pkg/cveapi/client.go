// Package cveapi is a client for the CVE Services REST API operated by MITRE.
// It covers CVE ID reservation, record publishing and rejection, paged ID
// listing and organization user management. Record payloads are normalized
// and schema-validated through pkg/cverecord before submission.
package cveapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/xerrors"
)

// Deployment environments of CVE Services.
const (
	EnvProd = "prod"
	EnvDev  = "dev"
	EnvTest = "test"
)

// Envs maps environment names to their base API URLs.
var Envs = map[string]string{
	EnvProd: "https://cveawg.mitre.org/api/",
	EnvDev:  "https://cveawg-dev.mitre.org/api/",
	EnvTest: "https://cveawg-test.mitre.org/api/",
}

// Credential headers expected by CVE Services on every request.
const (
	headerAPIKey  = "CVE-API-KEY"
	headerAPIOrg  = "CVE-API-ORG"
	headerAPIUser = "CVE-API-USER"
)

const requestTimeout = 60 * time.Second

// Options configures optional Client behavior. A zero value targets the
// production environment with a default HTTP client.
type Options struct {
	// Env selects a named deployment environment. Defaults to prod.
	Env string
	// URL overrides the environment base URL entirely.
	URL string
	// HTTPClient replaces the default client. The default applies a fixed
	// 60 second timeout to every request.
	HTTPClient *http.Client
}

// Client is a CVE Services API client for a single organization user. It
// holds only immutable credentials, so distinct instances can be used from
// concurrent goroutines independently.
type Client struct {
	username string
	org      string
	apiKey   string

	baseURL    *url.URL
	httpClient *http.Client
}

// New returns a client authenticating as username within org. The base URL
// is resolved from opts: an explicit URL wins over the named environment;
// an unknown environment with no URL override is a configuration error.
func New(username, org, apiKey string, opts Options) (*Client, error) {
	rawURL := opts.URL
	if rawURL == "" {
		env := opts.Env
		if env == "" {
			env = EnvProd
		}
		rawURL = Envs[env]
		if rawURL == "" {
			return nil, xerrors.Errorf("missing CVE API URL for environment %q", env)
		}
	}
	baseURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, xerrors.Errorf("invalid CVE API URL %q: %w", rawURL, err)
	}
	if !strings.HasSuffix(baseURL.Path, "/") {
		baseURL.Path += "/"
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}

	return &Client{
		username:   username,
		org:        org,
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: httpClient,
	}, nil
}

// Org returns the organization short name the client authenticates as.
func (c *Client) Org() string {
	return c.org
}

// APIError is a non-2xx response from CVE Services.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	body := strings.TrimSpace(e.Body)
	if len(body) > 1024 {
		body = body[:1024] + "..."
	}
	if body == "" {
		return fmt.Sprintf("CVE Services responded with %s", e.Status)
	}
	return fmt.Sprintf("CVE Services responded with %s: %s", e.Status, body)
}

// do sends one request and decodes the JSON response. All client operations
// funnel through here; there is no retry and no concurrency.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, body interface{}) (map[string]interface{}, error) {
	u := c.baseURL.JoinPath(path)
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, xerrors.Errorf("unable to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return nil, xerrors.Errorf("unable to build request for %s: %w", path, err)
	}
	req.Header.Set(headerAPIKey, c.apiKey)
	req.Header.Set(headerAPIOrg, c.org)
	req.Header.Set(headerAPIUser, c.username)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, xerrors.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, xerrors.Errorf("unable to read response from %s: %w", path, err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(data),
		}
	}
	if len(data) == 0 {
		return nil, nil
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, xerrors.Errorf("unable to decode response from %s: %w", path, err)
	}
	return decoded, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (map[string]interface{}, error) {
	return c.do(ctx, http.MethodGet, path, params, nil)
}

func (c *Client) post(ctx context.Context, path string, params url.Values, body interface{}) (map[string]interface{}, error) {
	return c.do(ctx, http.MethodPost, path, params, body)
}

func (c *Client) put(ctx context.Context, path string, params url.Values, body interface{}) (map[string]interface{}, error) {
	return c.do(ctx, http.MethodPut, path, params, body)
}
