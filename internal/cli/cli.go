// Package cli implements the smartspend subcommands.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/smartspend/backend/internal/config"
	"github.com/smartspend/backend/pkg/auth"
	"github.com/smartspend/backend/pkg/controllers"
	"github.com/smartspend/backend/pkg/insight"
	"github.com/smartspend/backend/pkg/ledger"
)

// App holds the opened ledger and everything the commands need.
type App struct {
	Config   config.Config
	Ledger   *ledger.Store
	Auth     *auth.Gate
	Insights *insight.Generator
	Health   controllers.Pinger

	// Out receives command output. Defaults to os.Stdout.
	Out io.Writer
}

// Register adds all commands to the commander.
func Register(c *subcommands.Commander, app *App) {
	c.Register(&serveCmd{app: app}, "")
	c.Register(&balanceCmd{app: app}, "reports")
	c.Register(&reportCmd{app: app}, "reports")
	c.Register(&insightCmd{app: app}, "reports")
	c.Register(&exportCmd{app: app}, "reports")
}

// Controller returns the HTTP controller for the app.
func (a *App) Controller() controllers.Controller {
	return controllers.Controller{
		Ledger:   a.Ledger,
		Auth:     a.Auth,
		Insights: a.Insights,
		Health:   a.Health,
		Currency: a.Config.Currency,
	}
}

func (a *App) out() io.Writer {
	if a.Out == nil {
		return os.Stdout
	}
	return a.Out
}

// printMarkdown renders markdown for the terminal. With raw set, or if
// rendering fails, the markdown is printed as is.
func (a *App) printMarkdown(md string, raw bool) {
	if !raw {
		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
		if err == nil {
			out, err := r.Render(md)
			if err == nil {
				md = out
			}
		}
	}

	fmt.Fprint(a.out(), md)
}
