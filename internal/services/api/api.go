// Package api provides the HTTP API for the application
package api

import (
	"courtclock/internal/platform/config"
	"courtclock/internal/platform/logger"
	"courtclock/internal/platform/metrics"
	phttp "courtclock/internal/platform/net/http"
	"courtclock/internal/platform/store"

	"courtclock/internal/modkit"
	"courtclock/internal/modkit/httpkit"
	"courtclock/internal/modkit/module"
	"courtclock/internal/modkit/swaggerkit"

	deadlinesmod "courtclock/internal/services/api/deadlines/module"
	holidaysmod "courtclock/internal/services/api/holidays/module"
	metamod "courtclock/internal/services/api/meta/module"
)

// Options are the API options
type Options struct {
	// Config is the root view; modules read their own prefixes from it
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	Stack          httpkit.StackOptions
	EnableSwagger  bool
	EnableProfiler bool
	EnableMetrics  bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	deps := modkit.Deps{Cfg: opt.Config}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
	}

	// holidays owns the catalog; deadlines consumes it through ports
	holidays := holidaysmod.New(deps)
	ports := module.MustPortsOf[holidaysmod.Ports](holidays)

	mods := []module.Module{
		metamod.New(deps),
		holidays,
		deadlinesmod.New(deps, modkit.WithPorts(ports)),
	}

	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
	if opt.EnableMetrics {
		r.Handle("/metrics", metrics.Handler())
	}

	httpkit.MountAPIV1(r, httpkit.CommonStack(opt.Stack), func(api httpkit.Router) {
		for _, m := range mods {
			m.MountRoutes(api)
		}
	})
}
