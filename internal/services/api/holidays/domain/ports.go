package domain

import "context"

// ServicePort defines the service contract for holidays
type ServicePort interface {
	List(ctx context.Context, in ListInput) ([]Holiday, error)
	Federal(ctx context.Context, in YearInput) ([]FederalHoliday, error)
	Seed(ctx context.Context, in SeedInput) (SeedResult, error)
	Import(ctx context.Context, in ImportInput) (ImportResult, error)
}

// ZonePort resolves a jurisdiction's IANA time zone
type ZonePort interface {
	TimeZone(ctx context.Context, jurisdictionID string) (string, error)
}
