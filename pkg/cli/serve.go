package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/gdstation/pkg/cli/config"
	"github.com/m-mizutani/gdstation/pkg/controller/server"
	"github.com/m-mizutani/gdstation/pkg/domain/types"
	"github.com/m-mizutani/gdstation/pkg/utils/logging"
)

func serveCommand() *cli.Command {
	var (
		addr        string
		apiKey      types.ServerAPIKey
		maxBodySize int64

		station  config.Station
		upsert   config.Upsert
		bigQuery config.BigQuery
		sentry   config.Sentry
	)
	serveFlags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Binding address",
			Value:       "127.0.0.1:8000",
			Sources:     cli.EnvVars("GDSTATION_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "api-key",
			Usage:       "Require this key in the X-API-Key header of POST /finding",
			Sources:     cli.EnvVars("GDSTATION_SERVER_API_KEY"),
			Destination: (*string)(&apiKey),
		},
		&cli.Int64Flag{
			Name:        "max-body-size",
			Usage:       "Maximum size of a finding request body in bytes",
			Value:       server.DefaultMaxBodySize,
			Sources:     cli.EnvVars("GDSTATION_MAX_BODY_SIZE"),
			Destination: &maxBodySize,
		},
	}

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Server mode",
		Flags: slice.Flatten(
			serveFlags,
			station.Flags(),
			upsert.Flags(),
			bigQuery.Flags(),
			sentry.Flags(),
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			logging.Default().Info("starting serve",
				slog.Any("Addr", addr),
				slog.Any("APIKey", apiKey),
				slog.Any("Station", station),
				slog.Any("Upsert", upsert),
				slog.Any("BigQuery", bigQuery),
				slog.Any("Sentry", sentry),
			)

			if err := sentry.Configure(ctx); err != nil {
				return err
			}
			if err := upsert.Validate(); err != nil {
				return err
			}

			stationClient, err := station.NewClient(ctx)
			if err != nil {
				return err
			}
			uc, err := newUseCase(ctx, stationClient, &upsert, &bigQuery, true)
			if err != nil {
				return err
			}

			s := server.New(uc,
				server.WithAPIKey(apiKey),
				server.WithMaxBodySize(maxBodySize),
			)

			serverErr := make(chan error, 1)
			httpServer := &http.Server{
				Addr:    addr,
				Handler: s.Mux(),

				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       30 * time.Second,
				// verification may wait for the saved report
				WriteTimeout: 120 * time.Second,
			}

			go func() {
				logging.Default().Info("starting http server", "addr", addr)
				if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
					serverErr <- goerr.Wrap(err, "failed to listen and serve")
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-serverErr:
				return err

			case sig := <-quit:
				logging.Default().Info("shutting down server", "signal", sig)

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := httpServer.Shutdown(ctx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server")
				}
			}

			return nil
		},
	}
}
