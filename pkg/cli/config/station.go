package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/gdstation/pkg/domain/types"
	"github.com/m-mizutani/gdstation/pkg/infra/station"
)

type Station struct {
	url          string
	apiEndpoint  string
	authEndpoint string
	apiKey       types.StationAPIKey
	apiSecret    types.StationAPISecret `masq:"secret"`
	httpProxy    string
	httpsProxy   string
	timeout      time.Duration
	metatag      types.ClientMetatag
}

func (x *Station) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "station-url",
			Usage:       "Station base URL",
			Category:    "Station",
			Destination: &x.url,
			Sources:     cli.EnvVars("GDSTATION_STATION_URL", "TRUSTAR_URL"),
		},
		&cli.StringFlag{
			Name:        "station-api-endpoint",
			Usage:       "Station API endpoint (default: <station-url>/api/1.3)",
			Category:    "Station",
			Destination: &x.apiEndpoint,
			Sources:     cli.EnvVars("GDSTATION_STATION_API_ENDPOINT", "API_ENDPOINT"),
		},
		&cli.StringFlag{
			Name:        "station-auth-endpoint",
			Usage:       "Station OAuth2 token endpoint (default: <station-url>/oauth/token)",
			Category:    "Station",
			Destination: &x.authEndpoint,
			Sources:     cli.EnvVars("GDSTATION_STATION_AUTH_ENDPOINT", "AUTH_ENDPOINT"),
		},
		&cli.StringFlag{
			Name:        "station-api-key",
			Usage:       "Station API key",
			Category:    "Station",
			Destination: (*string)(&x.apiKey),
			Sources:     cli.EnvVars("GDSTATION_STATION_API_KEY", "USER_API_KEY", "API_KEY"),
		},
		&cli.StringFlag{
			Name:        "station-api-secret",
			Usage:       "Station API secret",
			Category:    "Station",
			Destination: (*string)(&x.apiSecret),
			Sources:     cli.EnvVars("GDSTATION_STATION_API_SECRET", "USER_API_SECRET", "API_SECRET"),
		},
		&cli.StringFlag{
			Name:        "station-http-proxy",
			Usage:       "Proxy URL for plain HTTP requests to Station",
			Category:    "Station",
			Destination: &x.httpProxy,
			Sources:     cli.EnvVars("GDSTATION_STATION_HTTP_PROXY", "HTTP_PROXY"),
		},
		&cli.StringFlag{
			Name:        "station-https-proxy",
			Usage:       "Proxy URL for HTTPS requests to Station",
			Category:    "Station",
			Destination: &x.httpsProxy,
			Sources:     cli.EnvVars("GDSTATION_STATION_HTTPS_PROXY", "HTTPS_PROXY"),
		},
		&cli.DurationFlag{
			Name:        "station-timeout",
			Usage:       "Timeout of a single Station request",
			Category:    "Station",
			Value:       station.DefaultTimeout,
			Destination: &x.timeout,
			Sources:     cli.EnvVars("GDSTATION_STATION_TIMEOUT"),
		},
		&cli.StringFlag{
			Name:        "station-client-metatag",
			Usage:       "Client-Metatag header sent to Station",
			Category:    "Station",
			Value:       string(types.DefaultClientMetatag),
			Destination: (*string)(&x.metatag),
			Sources:     cli.EnvVars("GDSTATION_STATION_CLIENT_METATAG"),
		},
	}
}

func (x *Station) NewClient(ctx context.Context) (*station.Client, error) {
	return station.New(ctx, x.url, x.apiKey, x.apiSecret,
		station.WithAPIEndpoint(x.apiEndpoint),
		station.WithAuthEndpoint(x.authEndpoint),
		station.WithProxy(x.httpProxy, x.httpsProxy),
		station.WithTimeout(x.timeout),
		station.WithClientMetatag(x.metatag),
	)
}

func (x Station) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("URL", x.url),
		slog.String("APIEndpoint", x.apiEndpoint),
		slog.String("AuthEndpoint", x.authEndpoint),
		slog.Int("APIKey.len", len(x.apiKey)),
		slog.Int("APISecret.len", len(x.apiSecret)),
		slog.String("HTTPProxy", x.httpProxy),
		slog.String("HTTPSProxy", x.httpsProxy),
		slog.Duration("Timeout", x.timeout),
		slog.Any("Metatag", x.metatag),
	)
}
