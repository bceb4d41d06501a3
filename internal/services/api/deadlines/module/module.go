// Package module wires deadlines into the API using modkit
package module

import (
	"courtclock/internal/core/deadline"
	modkit "courtclock/internal/modkit"
	"courtclock/internal/modkit/httpkit"
	"courtclock/internal/modkit/module"
	str "courtclock/internal/platform/strings"
	deadlinesdomain "courtclock/internal/services/api/deadlines/domain"
	deadlineshttp "courtclock/internal/services/api/deadlines/http"
	deadlinesrepo "courtclock/internal/services/api/deadlines/repo"
	deadlinessvc "courtclock/internal/services/api/deadlines/service"
)

// Module implements the modkit.Module interface
type Module struct {
	deps  modkit.Deps
	built modkit.Built

	svc deadlinessvc.Service
}

// New constructs a deadlines module
// Holiday and zone lookups come in as ports (deadline.HolidaySource, deadlines domain.ZoneLookup)
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("deadlines"), modkit.WithPrefix("/deadlines")}, opts...)...)

	holidays, _ := module.From[deadline.HolidaySource](b.Ports)
	zones, _ := module.From[deadlinesdomain.ZoneLookup](b.Ports)
	if holidays == nil {
		deps.Log.Warn().Msg("deadlines: no holiday source wired; court and custom methods will warn")
	}

	svc := deadlinessvc.New(deps.PG, deadlinesrepo.NewPG(), holidays, zones, deadlinessvc.ConfigFromEnv(deps.Cfg))
	m := &Module{deps: deps, svc: svc}

	external := b.Register
	b.Register = func(r httpkit.Router) {
		deadlineshttp.Register(r, m.svc)
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

// Ports returns nothing; deadlines is a leaf module
func (m *Module) Ports() any { return nil }
