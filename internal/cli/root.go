// Package cli implements the registryctl operator commands.
package cli

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"registry/internal/domain"
	"registry/internal/domain/columncfg"
)

// App holds what the commands need. OpenOverviews is called lazily so that
// commands without storage do not connect anywhere.
type App struct {
	Catalogue     columncfg.Catalogue
	JWTSecret     string
	Logger        zerolog.Logger
	Now           func() time.Time
	OpenOverviews func(ctx context.Context) (domain.OverviewRepository, func(), error)
}

func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "registryctl",
		Short:         "Operator tools for the donor registry",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newExportCmd(app),
		newTokenCmd(app),
	)

	return root
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}
