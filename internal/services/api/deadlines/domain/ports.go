package domain

import "context"

// ServicePort defines the service contract for deadlines
type ServicePort interface {
	Calculate(ctx context.Context, in CalculateRequest) (CalculateResponse, error)
	Bulk(ctx context.Context, in BulkInput) (BulkResponse, error)
	Save(ctx context.Context, in SaveInput) (AuditRecord, error)
	ICS(ctx context.Context, in ICSInput) ([]byte, error)
}

// ZoneLookup resolves a jurisdiction's IANA time zone
type ZoneLookup interface {
	TimeZone(ctx context.Context, jurisdictionID string) (string, error)
}
