package main

import (
	"context"
	"os"

	"github.com/lshigami/Tamarin/config"
	"github.com/lshigami/Tamarin/internal/cli"
	"github.com/lshigami/Tamarin/internal/client"
	"github.com/lshigami/Tamarin/internal/draft"
	"github.com/lshigami/Tamarin/internal/logger"
	"github.com/lshigami/Tamarin/internal/service"
	"github.com/lshigami/Tamarin/internal/session"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
)

func main() {
	logger.Init()

	exitCode := 0
	app := fx.New(
		fx.NopLogger,

		// Core application components
		fx.Provide(
			config.NewConfig,
			NewSessionStore,
			NewAPIClient,
			NewDraftRepository,
		),

		// Services layer
		fx.Provide(
			func(api *client.Client) service.ExamCatalogService {
				return service.NewExamCatalogService(api)
			},
		),

		// Presentation layer
		fx.Provide(
			func(cfg *config.Config, store *session.Store, api *client.Client, catalog service.ExamCatalogService, drafts *draft.Repository) *cli.CLI {
				return cli.New(cfg, store, api, catalog, drafts, os.Stdin, os.Stdout)
			},
		),

		fx.Invoke(func(c *cli.CLI, shutdowner fx.Shutdowner) {
			if err := c.Run(context.Background(), os.Args[1:]); err != nil {
				log.Error().Err(err).Msg("Command failed")
				exitCode = 1
			}
			_ = shutdowner.Shutdown()
		}),
	)

	app.Run()
	os.Exit(exitCode)
}

func NewSessionStore(cfg *config.Config) *session.Store {
	return session.NewStore(cfg.Session.File)
}

func NewAPIClient(cfg *config.Config, store *session.Store) *client.Client {
	return client.New(cfg, store)
}

func NewDraftRepository(cfg *config.Config) (*draft.Repository, error) {
	return draft.NewRepository(cfg.Draft.Dir)
}
