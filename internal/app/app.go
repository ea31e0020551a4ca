package app

import (
	"go.uber.org/fx"

	"github.com/nhoyhub/orderhub/internal/auth"
	"github.com/nhoyhub/orderhub/internal/config"
	"github.com/nhoyhub/orderhub/internal/logger"
	"github.com/nhoyhub/orderhub/internal/observability"
	repositoryorder "github.com/nhoyhub/orderhub/internal/repository/order"
	repositorysettings "github.com/nhoyhub/orderhub/internal/repository/settings"
	"github.com/nhoyhub/orderhub/internal/seeder"
	httpserver "github.com/nhoyhub/orderhub/internal/server/http"
	serviceorder "github.com/nhoyhub/orderhub/internal/service/order"
	servicesettings "github.com/nhoyhub/orderhub/internal/service/settings"
	"github.com/nhoyhub/orderhub/internal/storage"
	transporthttp "github.com/nhoyhub/orderhub/internal/transport/http"
)

// Core provides the foundational modules shared across executables.
var Core = fx.Options(
	config.Module,
	logger.Module,
	observability.Module,
	storage.Module,
	auth.Module,
	repositoryorder.Module,
	repositorysettings.Module,
	serviceorder.Module,
	servicesettings.Module,
)

// HTTP wires the HTTP transport on top of the core modules, including the
// startup seeding of the in-memory order store.
var HTTP = fx.Options(
	Core,
	seeder.Module,
	httpserver.Module,
	transporthttp.Module,
)

// Module is the default application wiring.
var Module = HTTP
