package cveapi_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sthagen/RedHatProductSecurity-cvelib/pkg/cveapi"
)

func newTestClient(t *testing.T, handler http.Handler) *cveapi.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := cveapi.New("jdoe", "acme", "secret-key", cveapi.Options{URL: srv.URL})
	require.NoError(t, err)
	return client
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		opts    cveapi.Options
		wantErr string
	}{
		{
			name: "defaults to prod",
			opts: cveapi.Options{},
		},
		{
			name: "known environment",
			opts: cveapi.Options{Env: cveapi.EnvTest},
		},
		{
			name: "explicit URL override",
			opts: cveapi.Options{URL: "http://localhost:8080/api/"},
		},
		{
			name: "URL override wins over unknown environment",
			opts: cveapi.Options{Env: "sandbox", URL: "http://localhost:8080/api/"},
		},
		{
			name:    "unknown environment without URL",
			opts:    cveapi.Options{Env: "sandbox"},
			wantErr: `missing CVE API URL for environment "sandbox"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := cveapi.New("jdoe", "acme", "secret-key", tt.opts)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "acme", client.Org())
		})
	}
}

func TestClientSendsCredentialHeaders(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret-key", r.Header.Get("CVE-API-KEY"))
		assert.Equal(t, "acme", r.Header.Get("CVE-API-ORG"))
		assert.Equal(t, "jdoe", r.Header.Get("CVE-API-USER"))
		w.Write([]byte(`{}`))
	}))

	_, err := client.Quota(context.Background())
	require.NoError(t, err)
}

func TestClientSurfacesAPIErrors(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "CVE_RECORD_DNE"}`))
	}))

	_, err := client.ShowCVERecord(context.Background(), "CVE-2024-0001")

	var apiErr *cveapi.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Contains(t, apiErr.Error(), "CVE_RECORD_DNE")
}

func TestClientSurfacesTransportErrors(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	client, err := cveapi.New("jdoe", "acme", "secret-key", cveapi.Options{URL: srv.URL})
	require.NoError(t, err)
	srv.Close()

	_, err = client.Quota(context.Background())
	require.Error(t, err)

	var apiErr *cveapi.APIError
	assert.False(t, errors.As(err, &apiErr))
}
