// Package modkit provides module wiring and core deps
package modkit

import (
	"courtclock/internal/modkit/repokit"
	"courtclock/internal/platform/config"
	"courtclock/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
}

// HasPG reports whether a Postgres seam was wired
func (d Deps) HasPG() bool { return d.PG != nil }
