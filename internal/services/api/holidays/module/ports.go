package module

import (
	"courtclock/internal/core/deadline"
	"courtclock/internal/services/api/holidays/domain"
)

// Ports are what the holidays module offers other modules
type Ports struct {
	Holidays deadline.HolidaySource
	Zones    domain.ZonePort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
