package cli

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"time"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
	"github.com/smartspend/backend/pkg/router"
)

type serveCmd struct {
	app  *App
	port string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "run the HTTP API" }
func (*serveCmd) Usage() string {
	return `smartspend serve [-port <port>]

  Serves the JSON API until the process is interrupted.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.port, "port", "", "Port to listen on, overrides PORT")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	port := c.port
	if port == "" {
		port = c.app.Config.Port
	}

	r, teardown, err := router.Config(c.app.Config.APIURL)
	defer teardown()
	if err != nil {
		log.Error().Err(err).Msg("router could not be configured")
		return subcommands.ExitFailure
	}
	router.AttachRoutes(c.app.Controller(), r.Group("/"))

	srv := &http.Server{
		Addr:              net.JoinHostPort("", port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown")
		}
	}()

	log.Info().Str("addr", srv.Addr).Msg("listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("server stopped")
		return subcommands.ExitFailure
	}

	// Try once more to write changes that could not be saved
	if err := c.app.Ledger.PersistError(); err != nil {
		if err := c.app.Ledger.Save(context.Background()); err != nil {
			log.Error().Err(err).Msg("unsaved ledger changes are lost")
			return subcommands.ExitFailure
		}
	}

	return subcommands.ExitSuccess
}
