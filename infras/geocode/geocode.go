package geocode

//go:generate go run go.uber.org/mock/mockgen -source=./geocode.go -destination=./mocks/geocode_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"parkflow/config"
	"parkflow/infras/otel"
	"parkflow/shared/constant"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	reversePath     = "/reverse"
	otelAttrLat     = "geocode.lat"
	otelAttrLng     = "geocode.lng"
	otelAttrStatus  = "http.status_code"
	addressSep      = ", "
	coordinateDigit = 6
)

var (
	ErrUpstream = errors.New("geocoding service unavailable")
	ErrNoResult = errors.New("no address found for position")
)

type Place struct {
	DisplayName string `json:"display_name"`
	Short       string `json:"short"`
}

type Client interface {
	Reverse(ctx context.Context, lat, lng float64) (Place, error)
}

type nominatim struct {
	cfg    *config.Config
	http   *http.Client
	otel   otel.Otel
	base   string
	agent  string
	locale string
}

func New(cfg *config.Config, otel otel.Otel) Client {
	timeout := time.Duration(cfg.External.Geocode.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &nominatim{
		cfg:    cfg,
		http:   &http.Client{Timeout: timeout},
		otel:   otel,
		base:   strings.TrimSuffix(cfg.External.Geocode.BaseURL, "/"),
		agent:  cfg.External.Geocode.UserAgent,
		locale: cfg.External.Geocode.Language,
	}
}

func (n *nominatim) Reverse(ctx context.Context, lat, lng float64) (place Place, err error) {
	ctx, scope := n.otel.NewScope(ctx, constant.OtelGeocodeScopeName, constant.OtelGeocodeScopeName+".Reverse")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttributes(map[string]any{
		otelAttrLat: lat,
		otelAttrLng: lng,
	})

	query := url.Values{}
	query.Set("format", "jsonv2")
	query.Set("lat", strconv.FormatFloat(lat, 'f', coordinateDigit, 64))
	query.Set("lon", strconv.FormatFloat(lng, 'f', coordinateDigit, 64))
	query.Set("accept-language", n.locale)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.base+reversePath+"?"+query.Encode(), nil)
	if err != nil {
		return place, fmt.Errorf("failed to build geocode request: %w", err)
	}

	req.Header.Set(constant.RequestHeaderUserAgent, n.agent)

	resp, err := n.http.Do(req)
	if err != nil {
		log.Warn().Err(err).Msg("reverse geocode request failed")

		return place, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer resp.Body.Close()

	scope.SetAttribute(otelAttrStatus, resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		return place, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var body struct {
		DisplayName string `json:"display_name"`
		Error       string `json:"error"`
	}

	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return place, fmt.Errorf("%w: decode response: %w", ErrUpstream, err)
	}

	if body.DisplayName == "" {
		return place, ErrNoResult
	}

	return Place{
		DisplayName: body.DisplayName,
		Short:       Shorten(body.DisplayName),
	}, nil
}

// Shorten keeps the first two components of a display name ("area, city").
func Shorten(displayName string) string {
	parts := strings.SplitN(displayName, addressSep, 3)

	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	default:
		if parts[1] == "" {
			return parts[0]
		}

		return parts[0] + addressSep + parts[1]
	}
}
