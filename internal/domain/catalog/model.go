// Package catalog defines the parsed in-memory device catalog consumed by
// the specification resolvers, and the precomputed lookup index built over
// it.  Catalog loading and parsing mechanics live in
// internal/infrastructure/catalogstore; this package only reads
// already-built structures and never mutates them after indexing.
package catalog

import (
	"time"

	"github.com/turtacn/FireCircuit-Intelligence/internal/domain/device"
)

// Record is one concrete catalog entry: a single orderable device variant
// at one rating token.
type Record struct {
	SKU         string `json:"sku"`
	PartCode    string `json:"partCode,omitempty"`
	Description string `json:"description"`

	// Amps is the alarm current draw in amperes.
	Amps float64 `json:"current"`

	// StandbyAmps is the supervisory current draw in amperes.
	StandbyAmps float64 `json:"standbyCurrent,omitempty"`

	// Watts is the speaker tap wattage for audio appliances.
	Watts float64 `json:"watts,omitempty"`

	UnitLoads           int                        `json:"unitLoads"`
	TTapCompatible      bool                       `json:"ttapCompatible"`
	Mounting            device.Mounting            `json:"mounting"`
	EnvironmentalRating device.EnvironmentalRating `json:"environmentalRating"`
	ULListed            bool                       `json:"ulListed"`
}

// RatingSet is the innermost nesting level: records keyed by the
// candela-or-sensitivity token ("15", "75", "110", "FIXED_135F", ...).
type RatingSet struct {
	Ratings map[string]Record `json:"ratings"`
}

// EnvironmentGroup groups rating sets by environmental rating name.
type EnvironmentGroup struct {
	Environments map[string]RatingSet `json:"environments"`
}

// TypeGroup groups environment groups by mounting name.
type TypeGroup struct {
	Mountings map[string]EnvironmentGroup `json:"mountings"`
}

// Family is one device family: canonical type tokens mapped to their
// mounting/environmental variants.
type Family struct {
	DeviceTypes map[string]TypeGroup `json:"deviceTypes"`
}

// FamilyRef is the target of a family alias.
type FamilyRef struct {
	Family string `json:"family"`
}

// FamilyMapping is the coarse alias table mapping loose family descriptions
// ("detectors", "av devices") to canonical family names.
type FamilyMapping struct {
	Mappings map[string]FamilyRef `json:"mappings"`
}

// Catalog is the parsed catalog for one device class.
type Catalog struct {
	Version        string            `json:"version"`
	LastUpdated    time.Time         `json:"lastUpdated"`
	DeviceFamilies map[string]Family `json:"deviceFamilies"`
	FamilyMapping  FamilyMapping     `json:"familyMapping"`
}

// Bundle carries the two per-class catalogs the engine resolves against.
type Bundle struct {
	Notification *Catalog `json:"notification"`
	Initiating   *Catalog `json:"initiating"`
}
