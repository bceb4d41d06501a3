// Package domain holds DTOs for holidays http and service contracts
package domain

// ListInput selects the holidays observed in a jurisdiction during one year
type ListInput struct {
	JurisdictionID string `json:"jurisdiction_id,omitempty" validate:"omitempty,max=64" example:"ca-superior"`
	Year           int    `json:"year" validate:"required,gte=1900,lte=2200" example:"2024"`
}

// YearInput names a single year
type YearInput struct {
	Year int `json:"year" validate:"required,gte=1900,lte=2200" example:"2024"`
}

// SeedInput is an inclusive range of years to seed federal holidays for
type SeedInput struct {
	From int `json:"from" validate:"required,gte=1900,lte=2200" example:"2024"`
	To   int `json:"to" validate:"required,gte=1900,lte=2200,gtefield=From" example:"2030"`
}

// Holiday is the wire form of a stored holiday
type Holiday struct {
	ID            string   `json:"id,omitempty"`
	Date          string   `json:"date" example:"2024-11-28"`
	Name          string   `json:"name" example:"Thanksgiving Day"`
	Type          string   `json:"type" example:"FEDERAL"`
	Jurisdictions []string `json:"jurisdictions"`
	AffectsCourts bool     `json:"affects_courts"`
	IsActive      bool     `json:"is_active"`
}

// FederalHoliday is one generated federal holiday
type FederalHoliday struct {
	Name string `json:"name" example:"New Year's Day"`
	Date string `json:"date" example:"2024-01-01"`
}

// SeedResult counts rows written by a seed or import
type SeedResult struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

// Jurisdiction is a venue whose holidays and settings govern calculations
type Jurisdiction struct {
	ID            string            `json:"id" yaml:"id" validate:"required,max=64"`
	Name          string            `json:"name" yaml:"name" validate:"required,max=200"`
	TimeZone      string            `json:"time_zone,omitempty" yaml:"time_zone" validate:"omitempty,timezone"`
	BusinessHours map[string]string `json:"business_hours,omitempty" yaml:"business_hours"`
	Settings      map[string]any    `json:"settings,omitempty" yaml:"settings"`
}

// HolidayInput is one holiday row in an import file
// AffectsCourts and IsActive default to true when omitted
type HolidayInput struct {
	Date          string   `json:"date" yaml:"date" validate:"required,isodate"`
	Name          string   `json:"name" yaml:"name" validate:"required,max=200"`
	Type          string   `json:"type" yaml:"type" validate:"required,oneof=FEDERAL STATE COURT CUSTOM"`
	Jurisdictions []string `json:"jurisdictions,omitempty" yaml:"jurisdictions" validate:"dive,required,max=64"`
	AffectsCourts *bool    `json:"affects_courts,omitempty" yaml:"affects_courts"`
	IsActive      *bool    `json:"is_active,omitempty" yaml:"is_active"`
}

// ImportInput is a batch of jurisdictions and holidays, from a request body or a YAML file
type ImportInput struct {
	Jurisdictions []Jurisdiction `json:"jurisdictions,omitempty" yaml:"jurisdictions" validate:"dive"`
	Holidays      []HolidayInput `json:"holidays,omitempty" yaml:"holidays" validate:"max=5000,dive"`
}

// ImportResult reports an import
type ImportResult struct {
	Jurisdictions int `json:"jurisdictions"`
	SeedResult
}
