package modkit

import (
	"courtclock/internal/modkit/module"
)

// Module is the common surface for API modules that mount routes and expose ports
type Module = module.Module

// Builder constructs a Module from shared deps and options
// feature modules expose New(deps Deps, opts ...Option) Module
type Builder func(Deps, ...Option) Module
