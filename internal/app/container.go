package app

import (
	"palauncher/internal/domain"
	"palauncher/internal/install"
	"palauncher/internal/runner"
	"palauncher/internal/update"
	"palauncher/internal/ws"
)

type Container struct {
	DataDir    string
	Resolver   *install.Resolver
	Updater    *update.Orchestrator
	Supervisor *runner.Supervisor
	Hub        *ws.Hub
	Store      domain.UpdateRepository
}
