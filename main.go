package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tanpawarit/Poolive-Lead-Generation-Agent/agent/leads"
	promptx "github.com/tanpawarit/Poolive-Lead-Generation-Agent/agent/prompt"
	runnerx "github.com/tanpawarit/Poolive-Lead-Generation-Agent/agent/runner"
	toolx "github.com/tanpawarit/Poolive-Lead-Generation-Agent/agent/tool"
	configx "github.com/tanpawarit/Poolive-Lead-Generation-Agent/pkg/config"
	_ "github.com/tanpawarit/Poolive-Lead-Generation-Agent/pkg/logger/autoload"
	openrouterx "github.com/tanpawarit/Poolive-Lead-Generation-Agent/pkg/openrouter"
	placesx "github.com/tanpawarit/Poolive-Lead-Generation-Agent/pkg/places"
	webscrapex "github.com/tanpawarit/Poolive-Lead-Generation-Agent/pkg/webscrape"
)

type AppConfig struct {
	DataDir      string        `envconfig:"DATA_DIR" split_words:"true" default:"data"`
	CollectDelay time.Duration `envconfig:"COLLECT_DELAY" split_words:"true" default:"200ms"`
}

func main() {
	appCfg := configx.MustNew[AppConfig]("")

	placesCfg := configx.MustNew[placesx.Config]("PLACES")
	placesClient := placesx.MustNewClient(*placesCfg)

	scrapeCfg := configx.MustNew[webscrapex.Config]("SCRAPE")
	scraper := webscrapex.NewScraper(*scrapeCfg)

	collector := leads.NewCollector(placesClient, scraper, appCfg.CollectDelay)

	infos, executor := toolx.Build(toolx.Dependencies{
		Collector: collector,
		DataDir:   appCfg.DataDir,
	})

	openRouterCfg := configx.MustNew[openrouterx.Config]("OPENROUTER")
	openRouterClient := openrouterx.NewClient(*openRouterCfg)
	if openRouterClient == nil {
		panic("failed to initialize openrouter client")
	}

	agent, err := runnerx.New(openRouterClient, runnerx.Options{
		Model:        openRouterCfg.Model,
		Temperature:  openRouterCfg.Temperature,
		SystemPrompt: promptx.System(),
	}, infos, executor)
	if err != nil {
		panic(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("model", openRouterCfg.Model).Msg("pool lead agent ready")
	if err := agent.Run(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("agent stopped")
	}
}
