package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"palauncher/internal/api"
	"palauncher/internal/app"
	"palauncher/internal/config"
	"palauncher/internal/install"
	"palauncher/internal/runner"
	"palauncher/internal/storage"
	"palauncher/internal/update"
	"palauncher/internal/ws"
)

func main() {
	log.Info("starting PlanarAlly Plus launcher daemon")

	dataDir, err := config.DataDir()
	if err != nil {
		log.Fatal("could not determine data directory", "err", err)
	}

	cfg, err := config.Load(dataDir)
	if err != nil {
		log.Fatal("could not load configuration", "err", err)
	}

	log.Info("using data directory", "path", dataDir)
	log.Info("using database", "path", cfg.DatabasePath)

	store, err := storage.NewGormStore(cfg.DatabasePath)
	if err != nil {
		log.Fatal("could not open database", "err", err)
	}

	hub := ws.NewHub(cfg.LogHistorySize)
	go hub.Run()

	dev := os.Getenv("PALAUNCHER_DEV") == "1"
	resolver := install.NewResolver(dataDir, dev)
	updaterOrch := update.NewOrchestrator(dataDir, resolver, hub, store)
	supervisor := runner.NewSupervisor(resolver, updaterOrch, hub)

	container := &app.Container{
		DataDir:    dataDir,
		Resolver:   resolver,
		Updater:    updaterOrch,
		Supervisor: supervisor,
		Hub:        hub,
		Store:      store,
	}

	apiServer := api.NewAPIServer(container, func() {
		supervisor.Kill()
		os.Exit(0)
	})

	listenAddr := fmt.Sprintf(":%d", cfg.APIPort)
	log.Info("API server listening", "addr", listenAddr)

	if err := apiServer.Start(listenAddr); err != nil {
		log.Fatal("API error", "err", err)
	}
}
