package geocode_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"parkflow/config"
	"parkflow/infras/geocode"
	"parkflow/infras/otel/mocks"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, handler http.HandlerFunc) geocode.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.External.Geocode.BaseURL = server.URL
	cfg.External.Geocode.UserAgent = "parkflow-test"
	cfg.External.Geocode.Language = "en"
	cfg.External.Geocode.TimeoutSeconds = 2

	return geocode.New(cfg, mocks.NewOtel())
}

func TestReverse(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "-6.914744", r.URL.Query().Get("lat"))
		assert.Equal(t, "107.609810", r.URL.Query().Get("lon"))
		assert.Equal(t, "en", r.URL.Query().Get("accept-language"))
		assert.Equal(t, "parkflow-test", r.Header.Get("User-Agent"))

		_, _ = w.Write([]byte(`{"display_name":"Braga, Sumur Bandung, Bandung, West Java, Indonesia"}`))
	})

	place, err := client.Reverse(context.Background(), -6.914744, 107.60981)

	require.NoError(t, err)
	assert.Equal(t, "Braga, Sumur Bandung", place.Short)
	assert.Equal(t, "Braga, Sumur Bandung, Bandung, West Java, Indonesia", place.DisplayName)
}

func TestReverse_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr error
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
			wantErr: geocode.ErrUpstream,
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{`))
			},
			wantErr: geocode.ErrUpstream,
		},
		{
			name: "no result",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"error":"Unable to geocode"}`))
			},
			wantErr: geocode.ErrNoResult,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newClient(t, tt.handler).Reverse(context.Background(), 1, 1)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestShorten(t *testing.T) {
	assert.Equal(t, "Braga, Bandung", geocode.Shorten("Braga, Bandung, West Java"))
	assert.Equal(t, "Braga, Bandung", geocode.Shorten("Braga, Bandung"))
	assert.Equal(t, "Braga", geocode.Shorten("Braga"))
	assert.Equal(t, "", geocode.Shorten(""))
}
