package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire and storage format for civil dates such as the
// acquisition date.
const DateLayout = "2006-01-02"

// Asset statuses offered by the client. Status is free text; these are the
// suggested values.
const (
	StatusActive      = "Activo"
	StatusMaintenance = "En mantenimiento"
	StatusRetired     = "Baja"
)

type Asset struct {
	ID               int64
	Name             string
	Category         string
	Status           string
	Location         string
	Description      string
	Observation      string
	Quantity         int
	AcquisitionDate  time.Time
	InitialCost      decimal.Decimal
	DepreciationRate decimal.NullDecimal
	RegisteredAt     time.Time
	AssignedUserID   *int64
	AssignedUserName string
}

// AssetFilter narrows an asset listing. Zero-valued fields are ignored.
type AssetFilter struct {
	Category       string
	Status         string
	Location       string
	AssignedUserID *int64
	Query          string
}

// Catalog names a lookup list offered to the client when classifying an
// asset.
type Catalog string

const (
	CatalogCategories Catalog = "categories"
	CatalogLocations  Catalog = "locations"
)

// CatalogEntry is one named value of a Catalog.
type CatalogEntry struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

type LogEntry struct {
	ID        int64
	UserName  string
	Action    string
	CreatedAt time.Time
}

// Civil truncates t to midnight UTC of its calendar date.
func Civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD civil date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
