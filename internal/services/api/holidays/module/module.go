// Package module wires holidays into the API using modkit
package module

import (
	"time"

	modkit "courtclock/internal/modkit"
	"courtclock/internal/modkit/httpkit"
	str "courtclock/internal/platform/strings"
	holidayshttp "courtclock/internal/services/api/holidays/http"
	holidaysrepo "courtclock/internal/services/api/holidays/repo"
	holidayssvc "courtclock/internal/services/api/holidays/service"
)

// Module implements the modkit.Module interface
type Module struct {
	deps  modkit.Deps
	built modkit.Built
	ports Ports

	svc holidayssvc.Service
}

// New constructs a holidays module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("holidays"), modkit.WithPrefix("/holidays")}, opts...)...)

	writeTimeout := deps.Cfg.Prefix("DEADLINES_").MayDuration("HOLIDAY_WRITE_TIMEOUT", 10*time.Second)
	svc := holidayssvc.New(deps.PG, holidaysrepo.NewPG(), writeTimeout)

	m := &Module{deps: deps, svc: svc}
	m.ports = Ports{Holidays: svc, Zones: svc}

	external := b.Register
	b.Register = func(r httpkit.Router) {
		holidayshttp.Register(r, m.svc)
		external(r)
	}
	m.built = b
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) { m.built.Mount(r) }

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.built.Name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.built.Prefix) }
