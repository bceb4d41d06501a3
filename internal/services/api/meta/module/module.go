// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	"courtclock/internal/core/version"
	modkit "courtclock/internal/modkit"
	"courtclock/internal/modkit/httpkit"
	str "courtclock/internal/platform/strings"

	metahttp "courtclock/internal/services/api/meta/http"
)

// Module implements the modkit.Module interface
type Module struct {
	deps  modkit.Deps
	built modkit.Built

	startedAt time.Time
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	m := &Module{deps: deps, startedAt: time.Now()}

	// a nil TxRunner must stay an untyped nil so ready reports skipped
	var pg any
	if deps.HasPG() {
		pg = deps.PG
	}
	readyTimeout := deps.Cfg.Prefix("CORE_API_").MayDuration("READY_TIMEOUT", 2*time.Second)

	external := b.Register
	b.Register = func(r httpkit.Router) {
		metahttp.Register(r, metahttp.Deps{
			ServiceName:  version.Info().Service,
			StartedAt:    m.startedAt,
			PG:           pg,
			ReadyTimeout: readyTimeout,
		})
		external(r)
	}
	m.built = b
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) { m.built.Mount(r) }

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.built.Name, "meta") }

// Prefix implements the modkit.Module interface
func (m *Module) Prefix() string { return str.MustPrefix(m.built.Prefix) }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
