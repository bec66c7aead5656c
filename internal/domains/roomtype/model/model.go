package model

import (
	"stay/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "room_types"
	EntityName = "room_type"

	FieldID           = "id"
	FieldPropertyID   = "property_id"
	FieldName         = "name"
	FieldDescription  = "description"
	FieldNightlyRate  = "nightly_rate"
	FieldMaxAdults    = "max_adults"
	FieldMaxChildren  = "max_children"
	FieldMaxOccupancy = "max_occupancy"
	FieldActive       = "active"
)

// RoomType is one bookable room category of a property. Its nightly
// rate and occupancy ceilings are captured into a booking draft when
// the workflow starts.
type RoomType struct {
	ID           string          `db:"id"`
	PropertyID   string          `db:"property_id"`
	Name         string          `db:"name"`
	Description  string          `db:"description"`
	NightlyRate  decimal.Decimal `db:"nightly_rate"`
	MaxAdults    int             `db:"max_adults"`
	MaxChildren  int             `db:"max_children"`
	MaxOccupancy int             `db:"max_occupancy"`
	Active       bool            `db:"active"`
	model.Metadata
}
